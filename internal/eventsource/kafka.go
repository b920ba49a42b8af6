package eventsource

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/reverendhomer/zoc/internal/config"
	"github.com/reverendhomer/zoc/pkg/core"
)

// MessageReader is the subset of *kafka.Reader used by Kafka.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Kafka reads JSON event envelopes from a topic. An offset is committed only
// after its event was handled, so a restart resumes at the first unhandled event.
type Kafka struct {
	reader MessageReader
	log    *slog.Logger
}

// NewKafka creates a consumer group reader for cfg.
func NewKafka(cfg config.KafkaConfig, log *slog.Logger) *Kafka {
	return NewKafkaWithReader(kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Brokers,
		Topic:    cfg.Topic,
		GroupID:  cfg.GroupID,
		MinBytes: 1,
		MaxBytes: 10e6,
		MaxWait:  time.Second,
	}), log)
}

// NewKafkaWithReader wraps an existing reader.
func NewKafkaWithReader(r MessageReader, log *slog.Logger) *Kafka {
	if log == nil {
		log = slog.Default()
	}
	return &Kafka{reader: r, log: log.With("component", "kafka")}
}

// Run consumes until ctx is done. A message that cannot be decoded stops the
// run: skipping it would leave the fog maps out of step with the simulation.
func (k *Kafka) Run(ctx context.Context, handle Handler) error {
	for {
		m, err := k.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) {
				k.log.Info("Consumer stopped", "reason", ctx.Err())
				return nil
			}
			return fmt.Errorf("fetch message: %w", err)
		}

		ev, err := core.DecodeEvent(m.Value)
		if err != nil {
			return fmt.Errorf("partition %d offset %d: %w", m.Partition, m.Offset, err)
		}
		if err := handle(ev); err != nil {
			return err
		}
		// the handled event must be committed even if ctx was cancelled meanwhile
		if err := k.reader.CommitMessages(context.WithoutCancel(ctx), m); err != nil {
			return fmt.Errorf("commit offset %d: %w", m.Offset, err)
		}
	}
}

// Close closes the reader.
func (k *Kafka) Close() error {
	return k.reader.Close()
}

// MessageWriter is the subset of *kafka.Writer used by Publisher.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher writes events to a topic as JSON envelopes.
type Publisher struct {
	writer MessageWriter
}

// NewPublisher creates a writer for cfg's topic.
func NewPublisher(cfg config.KafkaConfig) *Publisher {
	return NewPublisherWithWriter(&kafka.Writer{
		Addr:     kafka.TCP(cfg.Brokers...),
		Topic:    cfg.Topic,
		Balancer: &kafka.LeastBytes{},
	})
}

// NewPublisherWithWriter wraps an existing writer.
func NewPublisherWithWriter(w MessageWriter) *Publisher {
	return &Publisher{writer: w}
}

// Publish writes events in order. All messages share key so they land on one
// partition and keep their order.
func (p *Publisher) Publish(ctx context.Context, key string, events []core.Event) error {
	msgs := make([]kafka.Message, 0, len(events))
	for i, ev := range events {
		data, err := core.EncodeEvent(ev)
		if err != nil {
			return fmt.Errorf("event %d: %w", i, err)
		}
		msgs = append(msgs, kafka.Message{Key: []byte(key), Value: data})
	}
	if err := p.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("write %d messages: %w", len(msgs), err)
	}
	return nil
}

// Close closes the writer.
func (p *Publisher) Close() error {
	return p.writer.Close()
}
