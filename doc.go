// Package plume persists plain-text notes as Markdown files with a small
// frontmatter header, one file per note.
//
// # Philosophy
//
// Plume treats the filesystem as the database. A vault is just a directory;
// every note inside it is an ordinary Markdown file you can open, grep, back
// up or sync with any tool you already use. The library never hides data in
// a sidecar index or a binary blob, so the vault stays legible without Plume.
//
// # Features
//
//   - Strict frontmatter codec: four known keys, explicit errors naming
//     whatever is missing, unknown keys ignored for forward compatibility.
//   - Atomic writes: notes are staged to a temporary file and renamed into
//     place, so a crash never leaves a half-written note behind.
//   - Tolerant listing: a corrupt file is logged and skipped, never fatal.
//   - Live watching: changes made by other programs surface as typed events.
//
// # Usage
//
//	svc, err := plume.Open("/home/ana/Documents/Plume")
//	if err != nil {
//		log.Fatal(err)
//	}
//	note, err := svc.CreateNote(ctx, "Groceries", "milk, eggs")
//
// The returned [core.Service] carries all note operations. Open creates the
// vault directory when it does not exist yet.
package plume
