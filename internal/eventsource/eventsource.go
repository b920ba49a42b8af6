// Package eventsource feeds simulation events to a handler, either from a
// fixed list or from a kafka topic.
package eventsource

import (
	"context"

	"github.com/reverendhomer/zoc/pkg/core"
)

// Handler consumes one event. A returned error stops the source.
type Handler func(core.Event) error

// Source delivers events in order until it is exhausted, ctx is done or the
// handler fails.
type Source interface {
	Run(ctx context.Context, handle Handler) error
}

// Static replays a fixed event list.
type Static struct {
	Events []core.Event
}

// NewStatic creates a source over events.
func NewStatic(events []core.Event) *Static {
	return &Static{Events: events}
}

func (s *Static) Run(ctx context.Context, handle Handler) error {
	for _, ev := range s.Events {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := handle(ev); err != nil {
			return err
		}
	}
	return nil
}
