package dispatcher

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/reverendhomer/zoc/pkg/core"
)

// HandlerFunc processes an event.
type HandlerFunc func(core.Event) error

// Logger interface for pluggable logging.
type Logger interface {
	Debug(msg string, keysAndValues ...any)
	Info(msg string, keysAndValues ...any)
	Error(msg string, keysAndValues ...any)
}

// Option configures handler registration.
type Option func(*config)

type config struct {
	logged bool
}

// Logged adds debug logging to the handler.
func Logged() Option {
	return func(c *config) {
		c.logged = true
	}
}

// Dispatcher routes events to registered handlers by kind. Handlers run
// synchronously on the caller's goroutine, so events are handled in the order
// they are dispatched.
type Dispatcher struct {
	handlers map[core.EventKind]HandlerFunc
	logger   Logger
	metrics  instruments
}

// New creates a new Dispatcher with the given logger.
// Uses the global OTel meter provider (no-op if not configured).
func New(logger Logger) (*Dispatcher, error) {
	return NewWithMeterProvider(logger, nil)
}

// NewWithMeterProvider is New with an explicit meter provider.
func NewWithMeterProvider(logger Logger, mp metric.MeterProvider) (*Dispatcher, error) {
	in, err := newInstruments(mp)
	if err != nil {
		return nil, err
	}
	return &Dispatcher{
		handlers: make(map[core.EventKind]HandlerFunc),
		logger:   logger,
		metrics:  in,
	}, nil
}

// Register adds a handler for the given kind with optional configuration.
// A later registration for the same kind replaces the earlier one.
func (d *Dispatcher) Register(kind core.EventKind, h HandlerFunc, opts ...Option) {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}

	handler := d.withMetrics(kind, h)

	if cfg.logged {
		handler = d.withLogging(kind, handler)
	}

	d.handlers[kind] = handler
}

// Dispatch routes an event to its registered handler.
func (d *Dispatcher) Dispatch(e core.Event) error {
	h, ok := d.handlers[e.Kind()]
	if !ok {
		return fmt.Errorf("%w: no handler for %q", core.ErrUnclassifiedEvent, e.Kind())
	}
	return h(e)
}

// HasHandler returns true if a handler is registered for the kind.
func (d *Dispatcher) HasHandler(kind core.EventKind) bool {
	_, ok := d.handlers[kind]
	return ok
}

func (d *Dispatcher) withMetrics(kind core.EventKind, h HandlerFunc) HandlerFunc {
	kindAttr := metric.WithAttributes(attribute.String("kind", string(kind)))

	return func(e core.Event) error {
		start := time.Now()
		err := h(e)

		ctx := context.Background()
		d.metrics.duration.Record(ctx, float64(time.Since(start).Microseconds())/1000, kindAttr)
		d.metrics.processed.Add(ctx, 1, kindAttr)
		if err != nil {
			d.metrics.failed.Add(ctx, 1, kindAttr)
		}
		return err
	}
}

func (d *Dispatcher) withLogging(kind core.EventKind, h HandlerFunc) HandlerFunc {
	return func(e core.Event) error {
		start := time.Now()
		d.logger.Debug("handling event", "kind", kind)

		err := h(e)

		if err != nil {
			d.logger.Error("event failed", "kind", kind, "duration", time.Since(start), "error", err)
		} else {
			d.logger.Debug("event complete", "kind", kind, "duration", time.Since(start))
		}

		return err
	}
}
