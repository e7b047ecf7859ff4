package core_test

import (
	"context"
	"errors"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/plumenotes/plume/pkg/core"
)

// MockRepository implements core.Repository in memory.
// It deliberately does NOT implement core.Watchable to test the fallback error.
type MockRepository struct {
	notes map[uuid.UUID]core.Note
}

func NewMockRepository() *MockRepository {
	return &MockRepository{
		notes: make(map[uuid.UUID]core.Note),
	}
}

func (m *MockRepository) Initialize(ctx context.Context) error { return nil }

func (m *MockRepository) Create(ctx context.Context, n core.Note) error {
	if _, ok := m.notes[n.ID]; ok {
		return core.ErrExists
	}
	m.notes[n.ID] = n
	return nil
}

func (m *MockRepository) Get(ctx context.Context, id uuid.UUID) (core.Note, bool, error) {
	n, ok := m.notes[id]
	return n, ok, nil
}

func (m *MockRepository) Update(ctx context.Context, n core.Note) error {
	if _, ok := m.notes[n.ID]; !ok {
		return core.ErrNotFound
	}
	m.notes[n.ID] = n
	return nil
}

func (m *MockRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := m.notes[id]; !ok {
		return core.ErrNotFound
	}
	delete(m.notes, id)
	return nil
}

func (m *MockRepository) List(ctx context.Context) ([]core.Note, error) {
	var notes []core.Note
	for _, n := range m.notes {
		notes = append(notes, n)
	}
	// Sort for deterministic tests
	sort.Slice(notes, func(i, j int) bool {
		return notes[i].ID.String() < notes[j].ID.String()
	})
	return notes, nil
}

func (m *MockRepository) Search(ctx context.Context, query string) ([]core.Note, error) {
	all, _ := m.List(ctx)
	if query == "" {
		return all, nil
	}
	q := strings.ToLower(query)
	var out []core.Note
	for _, n := range all {
		if strings.Contains(strings.ToLower(n.Title), q) || strings.Contains(strings.ToLower(n.Content), q) {
			out = append(out, n)
		}
	}
	return out, nil
}

func (m *MockRepository) ModifiedSince(ctx context.Context, t time.Time) ([]core.Note, error) {
	all, _ := m.List(ctx)
	var out []core.Note
	for _, n := range all {
		if n.UpdatedAt.After(t) {
			out = append(out, n)
		}
	}
	return out, nil
}

func TestService_CRUD(t *testing.T) {
	repo := NewMockRepository()
	service := core.NewService(repo)
	ctx := context.TODO()

	// 1. Create
	n, err := service.CreateNote(ctx, "First note", "hello")
	if err != nil {
		t.Fatalf("CreateNote failed: %v", err)
	}
	if n.ID == uuid.Nil {
		t.Fatal("CreateNote returned a note without an ID")
	}

	// 2. Get
	got, ok, err := service.GetNote(ctx, n.ID)
	if err != nil {
		t.Fatalf("GetNote failed: %v", err)
	}
	if !ok {
		t.Fatal("GetNote reported the created note as absent")
	}
	if got.Content != "hello" {
		t.Errorf("expected content 'hello', got '%s'", got.Content)
	}

	// 3. Update
	time.Sleep(5 * time.Millisecond)
	updated, err := service.UpdateNote(ctx, n.ID, "First note", "hello again")
	if err != nil {
		t.Fatalf("UpdateNote failed: %v", err)
	}
	if updated.Content != "hello again" {
		t.Errorf("expected updated content, got '%s'", updated.Content)
	}
	if !updated.UpdatedAt.After(n.UpdatedAt) {
		t.Error("UpdateNote did not bump UpdatedAt")
	}
	if !updated.CreatedAt.Equal(n.CreatedAt) {
		t.Error("UpdateNote must not change CreatedAt")
	}

	// 4. List
	_, _ = service.CreateNote(ctx, "Second note", "")
	notes, err := service.ListNotes(ctx)
	if err != nil {
		t.Fatalf("ListNotes failed: %v", err)
	}
	if len(notes) != 2 {
		t.Errorf("expected 2 notes, got %d", len(notes))
	}

	// 5. Delete
	if err := service.DeleteNote(ctx, n.ID); err != nil {
		t.Fatalf("DeleteNote failed: %v", err)
	}
	_, ok, err = service.GetNote(ctx, n.ID)
	if err != nil {
		t.Fatalf("GetNote after delete failed: %v", err)
	}
	if ok {
		t.Error("expected note to be absent after deletion")
	}
}

func TestService_TitleValidation(t *testing.T) {
	repo := NewMockRepository()
	service := core.NewService(repo)
	ctx := context.TODO()

	if _, err := service.CreateNote(ctx, "", "body"); err == nil {
		t.Error("expected error for empty title")
	}
	if _, err := service.CreateNote(ctx, "   ", "body"); err == nil {
		t.Error("expected error for blank title")
	}
	if _, err := service.CreateNote(ctx, "two\nlines", "body"); err == nil {
		t.Error("expected error for multiline title")
	}

	n, err := service.CreateNote(ctx, "ok", "body")
	if err != nil {
		t.Fatalf("CreateNote failed: %v", err)
	}
	if _, err := service.UpdateNote(ctx, n.ID, "", "body"); err == nil {
		t.Error("expected error for empty title on update")
	}
}

func TestService_UpdateMissing(t *testing.T) {
	repo := NewMockRepository()
	service := core.NewService(repo)
	ctx := context.TODO()

	_, err := service.UpdateNote(ctx, uuid.New(), "title", "body")
	if !errors.Is(err, core.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestService_Watch_Unsupported(t *testing.T) {
	repo := NewMockRepository()
	service := core.NewService(repo)
	ctx := context.TODO()

	_, err := service.Watch(ctx, "*")
	if err == nil {
		t.Fatal("expected error for non-watchable repo")
	}
	if err.Error() != "repository does not support watching" {
		t.Errorf("unexpected error msg: %v", err)
	}
}

// componentRepo makes the mock introspectable so State can report its type.
type componentRepo struct{ *MockRepository }

func (componentRepo) ComponentType() string { return "mock-store" }

func (componentRepo) State() any { return nil }

func TestService_State(t *testing.T) {
	plain := core.NewService(NewMockRepository())

	state, ok := plain.State().(core.ServiceState)
	if !ok {
		t.Fatalf("State returned %T, want core.ServiceState", plain.State())
	}
	if state.RepositoryType != "repository" {
		t.Errorf("expected generic repository type, got %q", state.RepositoryType)
	}
	if plain.ComponentType() != "service" {
		t.Errorf("unexpected component type %q", plain.ComponentType())
	}

	named := core.NewService(componentRepo{NewMockRepository()})
	state = named.State().(core.ServiceState)
	if state.RepositoryType != "mock-store" {
		t.Errorf("expected repository to report its own type, got %q", state.RepositoryType)
	}
}

func TestService_SearchAndModifiedSince(t *testing.T) {
	repo := NewMockRepository()
	service := core.NewService(repo)
	ctx := context.TODO()

	older := core.NewNote("Shopping List", "apples and pears")
	older.UpdatedAt = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	if err := repo.Create(ctx, older); err != nil {
		t.Fatal(err)
	}
	newer := core.NewNote("Journal", "a quiet day")
	newer.UpdatedAt = time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	if err := repo.Create(ctx, newer); err != nil {
		t.Fatal(err)
	}

	found, err := service.SearchNotes(ctx, "PEARS")
	if err != nil {
		t.Fatalf("SearchNotes failed: %v", err)
	}
	if len(found) != 1 || found[0].ID != older.ID {
		t.Errorf("expected only the shopping list, got %d notes", len(found))
	}

	recent, err := service.NotesModifiedSince(ctx, time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("NotesModifiedSince failed: %v", err)
	}
	if len(recent) != 1 || recent[0].ID != newer.ID {
		t.Errorf("expected only the journal, got %d notes", len(recent))
	}
}
