package fs_test

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"sync"
	"testing"

	"github.com/plumenotes/plume/pkg/adapters/fs"
	"github.com/plumenotes/plume/pkg/core"
)

// TestConcurrentWriters verifies that parallel creates all land and none
// corrupt each other.
func TestConcurrentWriters(t *testing.T) {
	store := fs.NewStore(fs.Config{
		Path:   filepath.Join(t.TempDir(), "vault"),
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	ctx := context.Background()
	if err := store.Initialize(ctx); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}

	const writers = 16

	var wg sync.WaitGroup
	errs := make(chan error, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			n := core.NewNote("concurrent", "body")
			if err := store.Create(ctx, n); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("concurrent create failed: %v", err)
	}

	notes, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(notes) != writers {
		t.Errorf("expected %d notes, got %d", writers, len(notes))
	}
}

// TestConcurrentReadersAndWriters interleaves reads, listings and writes.
// The store's mutex must keep every operation consistent.
func TestConcurrentReadersAndWriters(t *testing.T) {
	store := fs.NewStore(fs.Config{
		Path:   filepath.Join(t.TempDir(), "vault"),
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	ctx := context.Background()
	if err := store.Initialize(ctx); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}

	seed := core.NewNote("seed", "v0")
	if err := store.Create(ctx, seed); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	var wg sync.WaitGroup
	errs := make(chan error, 64)

	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			n := seed
			n.Content = "rewritten"
			n.Touch()
			if err := store.Update(ctx, n); err != nil {
				errs <- err
			}
		}()
		go func() {
			defer wg.Done()
			if _, _, err := store.Get(ctx, seed.ID); err != nil {
				errs <- err
			}
			if _, err := store.List(ctx); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("concurrent operation failed: %v", err)
	}

	got, ok, err := store.Get(ctx, seed.ID)
	if err != nil || !ok {
		t.Fatalf("Get after stampede: ok=%v err=%v", ok, err)
	}
	if got.Content != "rewritten" {
		t.Errorf("expected settled content, got %q", got.Content)
	}
}
