package core

import (
	"errors"
	"fmt"
	"strings"
)

// Storage error taxonomy. Callers match with errors.Is / errors.As.
var (
	// ErrNotFound is returned when updating or deleting a note that has
	// no file in the vault.
	ErrNotFound = errors.New("note not found")

	// ErrExists is returned when creating a note whose file already exists.
	ErrExists = errors.New("note already exists")

	// ErrInvalidFrontmatter is returned when a stored file fails strict
	// decoding. The concrete *FrontmatterError names the fields that did
	// not resolve.
	ErrInvalidFrontmatter = errors.New("invalid frontmatter")

	// ErrEncode is reserved for serialization failures. The codec cannot
	// currently fail for any in-memory note; the kind exists so callers
	// can program against the full taxonomy.
	ErrEncode = errors.New("note encoding failed")
)

// FrontmatterError reports a note file whose header is absent or
// incomplete. Missing lists every required key that did not resolve to
// a usable value.
type FrontmatterError struct {
	Missing []string
}

func (e *FrontmatterError) Error() string {
	return fmt.Sprintf("invalid frontmatter: missing %s", strings.Join(e.Missing, ", "))
}

func (e *FrontmatterError) Unwrap() error { return ErrInvalidFrontmatter }

// StorageError wraps a filesystem failure with the operation and path it
// occurred on, in the manner of os.PathError.
type StorageError struct {
	Op   string
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	return e.Op + " " + e.Path + ": " + e.Err.Error()
}

func (e *StorageError) Unwrap() error { return e.Err }
