package fs

import (
	"os"
	"path/filepath"

	"github.com/aretw0/introspection"
)

// StoreState exposes internal state for observability.
type StoreState struct {
	Path          string `json:"path"`
	Extension     string `json:"extension"`
	NoteCount     int    `json:"note_count"`
	WatcherActive bool   `json:"watcher_active"`
}

// State implements introspection.Introspectable. The note count is read
// from the directory on demand; the store keeps no index.
func (s *Store) State() any {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	if entries, err := os.ReadDir(s.Path); err == nil {
		for _, entry := range entries {
			if !entry.IsDir() && filepath.Ext(entry.Name()) == s.config.Extension {
				count++
			}
		}
	}

	return StoreState{
		Path:          s.Path,
		Extension:     s.config.Extension,
		NoteCount:     count,
		WatcherActive: s.watcherActive,
	}
}

// ComponentType implements introspection.Component.
func (s *Store) ComponentType() string {
	return "fs-store"
}

var _ introspection.Introspectable = (*Store)(nil)
var _ introspection.Component = (*Store)(nil)

func (s *Store) setWatcherActive(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.watcherActive = active
}
