// internal/storage/factory.go
package storage

import (
	"fmt"
	"log/slog"

	"github.com/reverendhomer/zoc/internal/config"
	"github.com/reverendhomer/zoc/internal/storage/gormstore"
	"github.com/reverendhomer/zoc/internal/storage/influxstore"
	"github.com/reverendhomer/zoc/internal/storage/memory"
)

// NewBackend creates a storage backend based on configuration
func NewBackend(cfg config.StorageConfig, log *slog.Logger) (Backend, error) {
	switch cfg.Type {
	case "postgres":
		return gormstore.New(gormstore.Dependencies{
			Dialect:       gormstore.DialectPostgres,
			Postgres:      cfg.Postgres,
			FlushInterval: cfg.FlushInterval,
			Logger:        log,
		}), nil
	case "sqlite":
		return gormstore.New(gormstore.Dependencies{
			Dialect:       gormstore.DialectSqlite,
			Sqlite:        cfg.Sqlite,
			FlushInterval: cfg.FlushInterval,
			Logger:        log,
		}), nil
	case "influx":
		return influxstore.New(cfg.Influx, log), nil
	case "memory":
		return memory.New(cfg.Memory), nil
	default:
		return nil, fmt.Errorf("unknown storage type: %s", cfg.Type)
	}
}
