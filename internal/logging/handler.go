package logging

import (
	"context"
	"errors"
	"log/slog"
)

// FanoutHandler delivers each record to every sink enabled for its level.
// A failing sink does not keep the record from the others.
type FanoutHandler struct {
	sinks []slog.Handler
}

// NewFanoutHandler drops nil sinks.
func NewFanoutHandler(sinks ...slog.Handler) *FanoutHandler {
	h := &FanoutHandler{}
	for _, s := range sinks {
		if s != nil {
			h.sinks = append(h.sinks, s)
		}
	}
	return h
}

func (h *FanoutHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, s := range h.sinks {
		if s.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

// Handle returns the joined errors of the sinks that failed.
func (h *FanoutHandler) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, s := range h.sinks {
		if !s.Enabled(ctx, r.Level) {
			continue
		}
		if err := s.Handle(ctx, r.Clone()); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (h *FanoutHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return h.each(func(s slog.Handler) slog.Handler { return s.WithAttrs(attrs) })
}

func (h *FanoutHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	return h.each(func(s slog.Handler) slog.Handler { return s.WithGroup(name) })
}

func (h *FanoutHandler) each(fn func(slog.Handler) slog.Handler) *FanoutHandler {
	out := &FanoutHandler{sinks: make([]slog.Handler, len(h.sinks))}
	for i, s := range h.sinks {
		out.sinks[i] = fn(s)
	}
	return out
}

// StateFunc reports the simulation state to attach to a record, such as the
// current turn and active player. It is called once per record.
type StateFunc func() []slog.Attr

// StateHandler adds the attributes of a StateFunc to every record. They are
// always top level, even for loggers derived with WithGroup.
type StateHandler struct {
	root  slog.Handler
	state StateFunc
	// attrs and groups added after root, replayed in order
	steps []step
}

type step struct {
	group string
	attrs []slog.Attr
}

// NewStateHandler wraps inner.
func NewStateHandler(inner slog.Handler, state StateFunc) *StateHandler {
	return &StateHandler{root: inner, state: state}
}

func (h *StateHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.root.Enabled(ctx, level)
}

func (h *StateHandler) Handle(ctx context.Context, r slog.Record) error {
	inner := h.root
	if h.state != nil {
		if attrs := h.state(); len(attrs) > 0 {
			inner = inner.WithAttrs(attrs)
		}
	}
	for _, s := range h.steps {
		if s.group != "" {
			inner = inner.WithGroup(s.group)
		} else {
			inner = inner.WithAttrs(s.attrs)
		}
	}
	return inner.Handle(ctx, r)
}

func (h *StateHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	return h.with(step{attrs: attrs})
}

func (h *StateHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	return h.with(step{group: name})
}

func (h *StateHandler) with(s step) *StateHandler {
	steps := make([]step, len(h.steps), len(h.steps)+1)
	copy(steps, h.steps)
	return &StateHandler{root: h.root, state: h.state, steps: append(steps, s)}
}
