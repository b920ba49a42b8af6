// Package influxstore records fog summaries as InfluxDB points.
package influxstore

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/reverendhomer/zoc/internal/config"
	"github.com/reverendhomer/zoc/internal/influx"
	"github.com/reverendhomer/zoc/pkg/core"
)

// Backend implements storage.Backend on top of influx.Manager.
type Backend struct {
	manager *influx.Manager
	session *core.SessionInfo
	log     *slog.Logger
}

// New creates a backend; the connection is opened by Init.
func New(cfg config.InfluxConfig, log *slog.Logger) *Backend {
	if log == nil {
		log = slog.Default()
	}
	log = log.With("component", "influxstore")
	return &Backend{
		manager: influx.NewManager(cfg, log),
		log:     log,
	}
}

func (b *Backend) Init() error {
	return b.manager.Connect(context.Background())
}

func (b *Backend) Close() error {
	return b.manager.Close()
}

func (b *Backend) StartSession(info *core.SessionInfo) error {
	b.session = info
	b.log.Info("Session started", "session", info.ID, "remote", b.manager.IsValid)
	return nil
}

// EndSession flushes buffered points; the session itself is only a tag.
func (b *Backend) EndSession() error {
	if b.session == nil {
		return fmt.Errorf("no session started")
	}
	b.session = nil
	return b.manager.Flush()
}

func (b *Backend) RecordVisibility(s *core.VisibilityStats) error {
	if b.session == nil {
		return fmt.Errorf("no session started")
	}
	return b.manager.WritePoint(influx.VisibilityPoint(s))
}
