package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Service handles the business rules for notes: input validation and the
// read-modify-write cycle for updates. Everything else passes through to
// the Repository.
type Service struct {
	repo Repository
}

// NewService creates a new Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func validateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return errors.New("note title cannot be empty")
	}
	if strings.ContainsRune(title, '\n') {
		return errors.New("note title cannot span multiple lines")
	}
	return nil
}

// CreateNote validates the input, builds the note and persists it.
func (s *Service) CreateNote(ctx context.Context, title, content string) (Note, error) {
	if err := validateTitle(title); err != nil {
		return Note{}, err
	}
	n := NewNote(title, content)
	if err := s.repo.Create(ctx, n); err != nil {
		return Note{}, err
	}
	return n, nil
}

// GetNote retrieves a note. The boolean reports presence.
func (s *Service) GetNote(ctx context.Context, id uuid.UUID) (Note, bool, error) {
	return s.repo.Get(ctx, id)
}

// UpdateNote applies a new title and content to a stored note and bumps
// its update time.
func (s *Service) UpdateNote(ctx context.Context, id uuid.UUID, title, content string) (Note, error) {
	if err := validateTitle(title); err != nil {
		return Note{}, err
	}
	n, ok, err := s.repo.Get(ctx, id)
	if err != nil {
		return Note{}, err
	}
	if !ok {
		return Note{}, fmt.Errorf("update %s: %w", id, ErrNotFound)
	}
	n.Title = title
	n.Content = content
	n.Touch()
	if err := s.repo.Update(ctx, n); err != nil {
		return Note{}, err
	}
	return n, nil
}

// DeleteNote removes a note.
func (s *Service) DeleteNote(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// ListNotes retrieves all notes, newest update first.
func (s *Service) ListNotes(ctx context.Context) ([]Note, error) {
	return s.repo.List(ctx)
}

// SearchNotes retrieves the notes matching query.
func (s *Service) SearchNotes(ctx context.Context, query string) ([]Note, error) {
	return s.repo.Search(ctx, query)
}

// NotesModifiedSince retrieves the notes updated strictly after t.
func (s *Service) NotesModifiedSince(ctx context.Context, t time.Time) ([]Note, error) {
	return s.repo.ModifiedSince(ctx, t)
}

// Watch observes changes in the repository if supported.
func (s *Service) Watch(ctx context.Context, pattern string) (<-chan Event, error) {
	w, ok := s.repo.(Watchable)
	if !ok {
		return nil, errors.New("repository does not support watching")
	}
	return w.Watch(ctx, pattern)
}
