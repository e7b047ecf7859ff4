package fs

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/aretw0/lifecycle/pkg/core/worker"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"
	"github.com/zeebo/xxh3"

	"github.com/plumenotes/plume/pkg/core"
)

// eventBufferSize is the capacity of the channel returned by Watch.
const eventBufferSize = 64

// debounceWindow coalesces the raw event bursts one logical save produces.
const debounceWindow = 50 * time.Millisecond

// Watch emits change events for note files in the vault until ctx is
// done. Desktop front-ends use it to notice external edits (other
// editors, file sync tools). Pattern is a doublestar glob matched against
// file names; empty or "*" matches every note. The returned channel is
// closed on shutdown.
func (s *Store) Watch(ctx context.Context, pattern string) (<-chan core.Event, error) {
	events := make(chan core.Event, eventBufferSize)
	w := newWatchWorker(s, pattern, events)
	if err := w.Start(ctx); err != nil {
		return nil, err
	}

	lifecycle.Go(ctx, func(ctx context.Context) error {
		<-ctx.Done()
		stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = w.Stop(stopCtx)
		close(events)
		return nil
	}, lifecycle.WithErrorHandler(func(err error) {
		s.config.Logger.Error("watcher shutdown failed", "error", err)
	}))

	return events, nil
}

var _ core.Watchable = (*Store)(nil)

type watchWorker struct {
	*worker.BaseWorker
	store     *Store
	pattern   string
	events    chan<- core.Event
	watcher   *fsnotify.Watcher
	debouncer *debouncer
	hashes    map[string]uint64
	cancel    context.CancelFunc
}

func newWatchWorker(store *Store, pattern string, events chan<- core.Event) *watchWorker {
	return &watchWorker{
		BaseWorker: worker.NewBaseWorker("vault-watcher"),
		store:      store,
		pattern:    pattern,
		events:     events,
		hashes:     make(map[string]uint64),
	}
}

func (w *watchWorker) Start(ctx context.Context) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	status := w.State().Status
	if status != worker.StatusCreated && status != worker.StatusPending {
		return fmt.Errorf("vault watcher already started (status: %s)", status)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	// The vault is flat; a single watch on the directory covers it.
	if err := watcher.Add(w.store.Path); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("failed to watch vault directory: %w", err)
	}

	w.watcher = watcher
	w.debouncer = newDebouncer(debounceWindow)
	w.seedHashes()
	w.store.setWatcherActive(true)

	runCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	w.SetStatus(worker.StatusRunning)
	return w.StartFunc(runCtx, w.run)
}

func (w *watchWorker) Stop(ctx context.Context) error {
	if w.cancel != nil {
		w.StopRequested = true
		w.cancel()
	}

	return w.BaseWorker.Stop(ctx)
}

func (w *watchWorker) State() worker.State {
	return w.ExportState(func(s *worker.State) {
		s.Metadata = map[string]string{
			worker.MetadataType: string(worker.TypeGoroutine),
		}
	})
}

// seedHashes records the content hash of every note file present at
// start. A known path lets classify treat a rename into place as a
// modification, and an unchanged rewrite as no event at all.
func (w *watchWorker) seedHashes() {
	entries, err := os.ReadDir(w.store.Path)
	if err != nil {
		return
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != w.store.config.Extension {
			continue
		}
		path := filepath.Join(w.store.Path, entry.Name())
		if data, err := os.ReadFile(path); err == nil {
			w.hashes[path] = xxh3.Hash(data)
		}
	}
}

// run pumps fsnotify events through the debouncer until stopped.
func (w *watchWorker) run(ctx context.Context) (err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			panicErr := fmt.Errorf("vault watcher panic: %v", recovered)

			var stack string
			if w.store.config.Logger.Enabled(ctx, slog.LevelDebug) {
				stack = string(debug.Stack())
			}

			if stack != "" {
				w.store.config.Logger.Error("vault watcher panic",
					"error", panicErr,
					"stack", stack,
				)
			} else {
				w.store.config.Logger.Error("vault watcher panic", "error", panicErr)
			}
		}
	}()
	defer w.store.setWatcherActive(false)
	defer w.watcher.Close()

	err = w.eventLoop(ctx)

	// Wait for in-flight debounce timers so the caller can close the
	// events channel without racing them.
	w.debouncer.stopAndWait(5 * time.Second)

	return err
}

func (w *watchWorker) eventLoop(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				if w.StopRequested || ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("fsnotify events channel closed")
			}
			w.processEvent(ctx, event)

		case wErr, ok := <-w.watcher.Errors:
			if !ok {
				if w.StopRequested || ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("fsnotify errors channel closed")
			}
			w.store.config.Logger.Error("fsnotify error", "error", wErr)
		}
	}
}

// processEvent filters, classifies and debounces one filesystem event.
func (w *watchWorker) processEvent(ctx context.Context, event fsnotify.Event) {
	logger := w.store.config.Logger
	logger.Debug("event received", "name", event.Name, "op", event.Op.String())

	if w.shouldIgnore(event) {
		return
	}

	id, err := resolveID(event.Name, w.store.config.Extension)
	if err != nil {
		logger.Debug("ignoring non-note file", "path", event.Name, "error", err)
		return
	}

	eType := w.classify(event)
	if eType == "" {
		return
	}

	w.send(ctx, core.Event{
		Type:      eType,
		ID:        id,
		Timestamp: time.Now().Unix(),
	})
}

// shouldIgnore drops events for files that are not notes: hidden files,
// foreign extensions (including the random-suffixed temp files atomic
// writes leave briefly), and names outside the watch pattern.
func (w *watchWorker) shouldIgnore(event fsnotify.Event) bool {
	base := filepath.Base(event.Name)
	if strings.HasPrefix(base, ".") {
		return true
	}
	if filepath.Ext(base) != w.store.config.Extension {
		return true
	}
	if w.pattern != "" && w.pattern != "*" {
		match, err := doublestar.Match(w.pattern, base)
		if err != nil || !match {
			return true
		}
	}
	return false
}

// classify maps a raw fsnotify op onto a note event. Atomic updates land
// as renames into place, so a create over a known path is a modification,
// and a write that leaves the content hash unchanged is suppressed.
func (w *watchWorker) classify(event fsnotify.Event) core.EventType {
	switch {
	case event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename):
		delete(w.hashes, event.Name)
		return core.EventDelete

	case event.Has(fsnotify.Create) || event.Has(fsnotify.Write):
		prev, known := w.hashes[event.Name]
		data, err := os.ReadFile(event.Name)
		if err != nil {
			// The file vanished again between the event and the read;
			// the trailing remove event reports it.
			return ""
		}
		sum := xxh3.Hash(data)
		w.hashes[event.Name] = sum
		if !known {
			return core.EventCreate
		}
		if sum == prev {
			return ""
		}
		return core.EventModify

	default:
		return ""
	}
}

// send enqueues the event via the debouncer. The recover guards against
// the events channel closing during shutdown while a timer is mid-flight.
func (w *watchWorker) send(ctx context.Context, event core.Event) {
	w.debouncer.add(event, func(e core.Event) {
		defer func() {
			_ = recover()
		}()
		select {
		case w.events <- e:
		case <-ctx.Done():
		}
	})
}

// resolveID derives the note ID from a vault file name.
func resolveID(path, ext string) (uuid.UUID, error) {
	stem := strings.TrimSuffix(filepath.Base(path), ext)
	return uuid.Parse(stem)
}
