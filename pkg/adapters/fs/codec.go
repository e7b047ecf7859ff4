package fs

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/plumenotes/plume/pkg/core"
)

// Frontmatter header keys. modifiedAt is the wire name of UpdatedAt.
const (
	keyID       = "id"
	keyTitle    = "title"
	keyCreated  = "createdAt"
	keyModified = "modifiedAt"
)

const delimiter = "---"

// TimestampLayout is RFC 3339 with fixed nine-digit fractional seconds,
// always UTC. The zero padding keeps every serialized instant the same
// width, so the textual forms sort in time order.
const TimestampLayout = "2006-01-02T15:04:05.000000000Z07:00"

// EncodeNote renders a note in its on-disk form: the four-key frontmatter
// header, a blank line, then the content verbatim.
func EncodeNote(n core.Note) []byte {
	var b strings.Builder
	b.WriteString(delimiter + "\n")
	fmt.Fprintf(&b, "%s: %s\n", keyID, n.ID)
	fmt.Fprintf(&b, "%s: %s\n", keyTitle, escapeTitle(n.Title))
	fmt.Fprintf(&b, "%s: %s\n", keyCreated, n.CreatedAt.UTC().Format(TimestampLayout))
	fmt.Fprintf(&b, "%s: %s\n", keyModified, n.UpdatedAt.UTC().Format(TimestampLayout))
	b.WriteString(delimiter + "\n\n")
	b.WriteString(n.Content)
	return []byte(b.String())
}

// DecodeNote parses the on-disk form strictly. All four header keys must
// resolve to usable values; otherwise it fails with a *core.FrontmatterError
// naming every field that did not. Files in the vault are always written by
// EncodeNote, so a missing or unclosed header is corruption, not a format
// variant to fall back from.
func DecodeNote(data []byte) (core.Note, error) {
	text := strings.TrimSpace(string(data))
	lines := strings.Split(text, "\n")

	// Locate the header block. The first line must be the opening
	// delimiter and a closing delimiter must follow; anything else leaves
	// the header empty and fails the required-field check below.
	headerEnd := -1
	if strings.TrimSuffix(lines[0], "\r") == delimiter {
		for i := 1; i < len(lines); i++ {
			if strings.TrimSuffix(lines[i], "\r") == delimiter {
				headerEnd = i
				break
			}
		}
	}
	if headerEnd == -1 {
		return core.Note{}, &core.FrontmatterError{
			Missing: []string{keyID, keyTitle, keyCreated, keyModified},
		}
	}

	var (
		id          uuid.UUID
		title       string
		created     time.Time
		modified    time.Time
		hasID       bool
		hasTitle    bool
		hasCreated  bool
		hasModified bool
	)

	for _, raw := range lines[1:headerEnd] {
		line := strings.TrimSuffix(raw, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		// Split on the first colon only; values may contain colons.
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		// Repeated keys overwrite; an unparseable value counts as absent.
		switch key {
		case keyID:
			parsed, err := uuid.Parse(value)
			hasID = err == nil
			if hasID {
				id = parsed
			}
		case keyTitle:
			title = unescapeTitle(value)
			hasTitle = true
		case keyCreated:
			t, err := time.Parse(TimestampLayout, value)
			hasCreated = err == nil
			if hasCreated {
				created = t
			}
		case keyModified:
			t, err := time.Parse(TimestampLayout, value)
			hasModified = err == nil
			if hasModified {
				modified = t
			}
		}
	}

	var missing []string
	if !hasID {
		missing = append(missing, keyID)
	}
	if !hasTitle {
		missing = append(missing, keyTitle)
	}
	if !hasCreated {
		missing = append(missing, keyCreated)
	}
	if !hasModified {
		missing = append(missing, keyModified)
	}
	if len(missing) > 0 {
		return core.Note{}, &core.FrontmatterError{Missing: missing}
	}

	body := strings.TrimSpace(strings.Join(lines[headerEnd+1:], "\n"))

	return core.Note{
		ID:        id,
		Title:     title,
		Content:   body,
		CreatedAt: created,
		UpdatedAt: modified,
	}, nil
}

// escapeTitle keeps the header single-line parseable: titles containing
// a colon, double quote, or newline, or padded with leading or trailing
// whitespace, are wrapped in double quotes with interior quotes
// backslash-escaped. Padding must be wrapped too or the decoder's value
// trim would eat it. Anything else is emitted verbatim.
func escapeTitle(title string) string {
	if !strings.ContainsAny(title, ":\"\n") && strings.TrimSpace(title) == title {
		return title
	}
	return `"` + strings.ReplaceAll(title, `"`, `\"`) + `"`
}

// unescapeTitle reverses escapeTitle: strip one layer of wrapping quotes
// when both ends carry them, then restore escaped quotes.
func unescapeTitle(v string) string {
	if len(v) >= 2 && strings.HasPrefix(v, `"`) && strings.HasSuffix(v, `"`) {
		v = v[1 : len(v)-1]
		v = strings.ReplaceAll(v, `\"`, `"`)
	}
	return v
}
