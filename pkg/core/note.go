// Package core holds the note domain model and the storage contracts.
package core

import (
	"time"

	"github.com/google/uuid"
)

// Note is the central entity of the domain: one plain-text note.
// It is agnostic to how it is stored; adapters map it to their format.
type Note struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewNote creates a Note with a fresh identity and both timestamps set
// to the same instant, in UTC.
func NewNote(title, content string) Note {
	now := time.Now().UTC()
	return Note{
		ID:        uuid.New(),
		Title:     title,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Touch marks the note as modified now.
func (n *Note) Touch() {
	n.UpdatedAt = time.Now().UTC()
}
