// Package lifecycle adapts vault change notifications to
// aretw0/lifecycle sources, so applications already composing lifecycle
// workers can supervise a note watcher like any other component.
package lifecycle

import (
	"context"

	"github.com/aretw0/lifecycle"

	"github.com/plumenotes/plume/pkg/core"
)

// NewSource wraps a Watch channel as a lifecycle.Source. The source
// forwards until the upstream channel closes or the context ends, then
// closes its own channel.
func NewSource(watch <-chan core.Event) lifecycle.Source {
	return &watchSource{
		upstream: watch,
		bridged:  make(chan lifecycle.Event),
	}
}

// watchSource republishes core events under the lifecycle.Event
// interface, which core.Event satisfies through String.
type watchSource struct {
	upstream <-chan core.Event
	bridged  chan lifecycle.Event
}

func (s *watchSource) Events() <-chan lifecycle.Event { return s.bridged }

// Start runs the forwarder under lifecycle.Go so the bridge is tracked
// like any other managed task.
func (s *watchSource) Start(ctx context.Context) error {
	lifecycle.Go(ctx, s.forward)
	return nil
}

func (s *watchSource) forward(ctx context.Context) error {
	defer close(s.bridged)
	for {
		var (
			e  core.Event
			ok bool
		)
		select {
		case e, ok = <-s.upstream:
			if !ok {
				return nil
			}
		case <-ctx.Done():
			return nil
		}

		select {
		case s.bridged <- e:
		case <-ctx.Done():
			return nil
		}
	}
}
