package core

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository defines the contract for storing and retrieving notes.
// Adhering to this interface keeps the core independent of the
// underlying storage mechanism.
type Repository interface {
	// Initialize ensures the underlying storage is ready (e.g. create
	// the notes directory).
	Initialize(ctx context.Context) error

	// Create persists a new note. It fails with ErrExists if a note
	// with the same ID is already stored.
	Create(ctx context.Context, n Note) error

	// Get retrieves a note by ID. The boolean reports presence; an
	// absent note is not an error.
	Get(ctx context.Context, id uuid.UUID) (Note, bool, error)

	// Update overwrites an existing note. It fails with ErrNotFound if
	// the note is not stored.
	Update(ctx context.Context, n Note) error

	// Delete removes a note by ID. It fails with ErrNotFound if the
	// note is not stored.
	Delete(ctx context.Context, id uuid.UUID) error

	// List returns all decodable notes, newest update first. Files that
	// fail to decode are logged and skipped, never fatal.
	List(ctx context.Context) ([]Note, error)

	// Search returns the notes whose title or content contains query,
	// case-insensitively. An empty query matches everything.
	Search(ctx context.Context, query string) ([]Note, error)

	// ModifiedSince returns the notes updated strictly after t.
	ModifiedSince(ctx context.Context, t time.Time) ([]Note, error)
}

// Watchable is implemented by repositories that can emit change events.
type Watchable interface {
	// Watch emits events for notes matching pattern until ctx is done.
	// The channel is closed on shutdown.
	Watch(ctx context.Context, pattern string) (<-chan Event, error)
}

// EventType represents the type of change observed in the vault.
type EventType string

const (
	EventCreate EventType = "CREATE"
	EventModify EventType = "MODIFY"
	EventDelete EventType = "DELETE"
)

// Event represents a change to a single note.
type Event struct {
	Type      EventType
	ID        uuid.UUID
	Timestamp int64 // Unix timestamp
}

// String renders the event for logs. It also satisfies lifecycle.Event,
// so watch channels can bridge into lifecycle sources.
func (e Event) String() string {
	return string(e.Type) + " " + e.ID.String()
}
