package fs

import (
	"sync"
	"time"

	"github.com/plumenotes/plume/pkg/core"
)

// debouncer coalesces bursts of events: only the last event per note and
// type within the window fires. Editors and the store's own atomic writes
// commonly produce several raw filesystem events for one logical change.
type debouncer struct {
	window time.Duration

	mu      sync.Mutex
	timers  map[string]*time.Timer
	stopped bool
	wg      sync.WaitGroup
}

func newDebouncer(window time.Duration) *debouncer {
	return &debouncer{
		window: window,
		timers: make(map[string]*time.Timer),
	}
}

// add schedules fire for the event after the window, replacing any timer
// still pending for the same note and type.
func (d *debouncer) add(e core.Event, fire func(core.Event)) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}

	key := e.ID.String() + "/" + string(e.Type)
	if t, ok := d.timers[key]; ok {
		if t.Stop() {
			d.wg.Done()
		}
	}

	d.wg.Add(1)
	d.timers[key] = time.AfterFunc(d.window, func() {
		defer d.wg.Done()
		d.mu.Lock()
		delete(d.timers, key)
		d.mu.Unlock()
		fire(e)
	})
}

// stopAndWait rejects further events and waits for all in-flight timers
// to fire, up to the given timeout. Callers may close the event channel
// safely once it returns.
func (d *debouncer) stopAndWait(timeout time.Duration) {
	d.mu.Lock()
	d.stopped = true
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(timeout):
	}
}
