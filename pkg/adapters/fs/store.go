// Package fs provides a filesystem-backed implementation of
// core.Repository: one frontmatter file per note in a single flat
// directory, atomic writes, and fault-tolerant listing.
package fs

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/natefinch/atomic"

	"github.com/plumenotes/plume/pkg/core"
)

// DefaultExtension is the file extension for note files in the vault.
const DefaultExtension = ".md"

// Store implements core.Repository over a directory of note files, one
// file per note, named by the note's canonical UUID. A single mutex
// serializes all public operations; the store is safe for concurrent use
// within one process and makes no cross-process guarantees.
type Store struct {
	Path string

	mu            sync.Mutex
	config        Config
	watcherActive bool
}

// Config holds the configuration for the filesystem store.
type Config struct {
	Path      string
	Extension string       // defaults to DefaultExtension
	Logger    *slog.Logger // defaults to slog.Default()
}

// NewStore creates a filesystem-backed note store. Call Initialize
// before use.
func NewStore(config Config) *Store {
	if config.Extension == "" {
		config.Extension = DefaultExtension
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	return &Store{
		Path:   config.Path,
		config: config,
	}
}

// Initialize creates the vault directory if it is missing. It fails when
// the path exists as something other than a directory. No scanning or
// index building happens here; every operation reads the directory fresh.
func (s *Store) Initialize(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if info, err := os.Stat(s.Path); err == nil && !info.IsDir() {
		return &core.StorageError{Op: "initialize", Path: s.Path, Err: errors.New("vault path is not a directory")}
	}
	if err := os.MkdirAll(s.Path, 0755); err != nil {
		return &core.StorageError{Op: "initialize", Path: s.Path, Err: err}
	}
	return nil
}

// NotePath returns the file path a note with the given ID is stored at.
func (s *Store) NotePath(id uuid.UUID) string {
	return filepath.Join(s.Path, id.String()+s.config.Extension)
}

// Create persists a new note. It fails with core.ErrExists if the note's
// file is already present; nothing is written in that case.
func (s *Store) Create(ctx context.Context, n core.Note) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.NotePath(n.ID)
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("create %s: %w", n.ID, core.ErrExists)
	} else if !os.IsNotExist(err) {
		return &core.StorageError{Op: "create", Path: path, Err: err}
	}

	return s.write("create", path, n)
}

// Get retrieves a note by ID. An absent file is reported through the
// boolean, not an error; a file that exists but fails to decode is an
// error.
func (s *Store) Get(ctx context.Context, id uuid.UUID) (core.Note, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.NotePath(id)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return core.Note{}, false, nil
		}
		return core.Note{}, false, &core.StorageError{Op: "read", Path: path, Err: err}
	}

	n, err := DecodeNote(data)
	if err != nil {
		return core.Note{}, false, fmt.Errorf("failed to decode note %s: %w", filepath.Base(path), err)
	}
	return n, true, nil
}

// Update overwrites an existing note in place. There is no upsert: a
// missing file fails with core.ErrNotFound before anything is written.
func (s *Store) Update(ctx context.Context, n core.Note) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.NotePath(n.ID)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("update %s: %w", n.ID, core.ErrNotFound)
		}
		return &core.StorageError{Op: "update", Path: path, Err: err}
	}

	return s.write("update", path, n)
}

// Delete removes a note's file. It fails with core.ErrNotFound if the
// file is absent.
func (s *Store) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.NotePath(id)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("delete %s: %w", id, core.ErrNotFound)
		}
		return &core.StorageError{Op: "delete", Path: path, Err: err}
	}

	if err := os.Remove(path); err != nil {
		return &core.StorageError{Op: "delete", Path: path, Err: err}
	}
	return nil
}

// List returns every decodable note in the vault, newest update first.
// A file that cannot be read or decoded is logged and skipped, so one
// corrupt note never takes down the listing. Only failure to enumerate
// the directory itself is fatal.
func (s *Store) List(ctx context.Context) ([]core.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.list()
}

// list assumes s.mu is held.
func (s *Store) list() ([]core.Note, error) {
	entries, err := os.ReadDir(s.Path)
	if err != nil {
		return nil, &core.StorageError{Op: "list", Path: s.Path, Err: err}
	}

	var notes []core.Note
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != s.config.Extension {
			continue
		}

		path := filepath.Join(s.Path, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			s.config.Logger.Warn("skipping unreadable note file", "path", path, "error", err)
			continue
		}

		n, err := DecodeNote(data)
		if err != nil {
			s.config.Logger.Warn("skipping corrupt note file", "path", path, "error", err)
			continue
		}

		notes = append(notes, n)
	}

	// Newest update first; the stable sort keeps directory order for ties.
	sort.SliceStable(notes, func(i, j int) bool {
		return notes[i].UpdatedAt.After(notes[j].UpdatedAt)
	})

	return notes, nil
}

// Search returns the notes whose title or content contains query,
// case-insensitively. An empty query returns everything, in List order.
func (s *Store) Search(ctx context.Context, query string) ([]core.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	notes, err := s.list()
	if err != nil || query == "" {
		return notes, err
	}

	q := strings.ToLower(query)
	var matched []core.Note
	for _, n := range notes {
		if strings.Contains(strings.ToLower(n.Title), q) || strings.Contains(strings.ToLower(n.Content), q) {
			matched = append(matched, n)
		}
	}
	return matched, nil
}

// ModifiedSince returns the notes updated strictly after t, in List order.
func (s *Store) ModifiedSince(ctx context.Context, t time.Time) ([]core.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	notes, err := s.list()
	if err != nil {
		return nil, err
	}

	var recent []core.Note
	for _, n := range notes {
		if n.UpdatedAt.After(t) {
			recent = append(recent, n)
		}
	}
	return recent, nil
}

// write encodes the note and lands it atomically: the bytes go to a temp
// file in the vault directory first and are renamed into place, so
// readers never observe a partially written note.
func (s *Store) write(op, path string, n core.Note) error {
	if err := atomic.WriteFile(path, bytes.NewReader(EncodeNote(n))); err != nil {
		return &core.StorageError{Op: op, Path: path, Err: err}
	}
	return nil
}

var _ core.Repository = (*Store)(nil)
