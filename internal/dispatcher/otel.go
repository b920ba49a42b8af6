package dispatcher

import (
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/reverendhomer/zoc/internal/dispatcher"

// Metric names, all recorded with a "kind" attribute.
const (
	MetricProcessed = "dispatcher.events.processed"
	MetricFailed    = "dispatcher.events.failed"
	MetricDuration  = "dispatcher.event.duration"
)

type instruments struct {
	processed metric.Int64Counter
	failed    metric.Int64Counter
	duration  metric.Float64Histogram
}

func newInstruments(mp metric.MeterProvider) (instruments, error) {
	if mp == nil {
		mp = otel.GetMeterProvider()
	}
	m := mp.Meter(instrumentationName)

	var (
		in  instruments
		err error
	)
	in.processed, err = m.Int64Counter(MetricProcessed,
		metric.WithDescription("Total events processed"),
	)
	if err != nil {
		return in, fmt.Errorf("creating processed counter: %w", err)
	}
	in.failed, err = m.Int64Counter(MetricFailed,
		metric.WithDescription("Total events whose handler returned an error"),
	)
	if err != nil {
		return in, fmt.Errorf("creating failed counter: %w", err)
	}
	in.duration, err = m.Float64Histogram(MetricDuration,
		metric.WithDescription("Time spent handling one event"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return in, fmt.Errorf("creating duration histogram: %w", err)
	}
	return in, nil
}
