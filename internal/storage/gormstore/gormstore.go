// Package gormstore implements the storage.Backend interface on GORM with an
// internal queue drained by a background writer goroutine. The same backend
// serves sqlite and postgres.
package gormstore

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/reverendhomer/zoc/internal/config"
	"github.com/reverendhomer/zoc/internal/database"
	"github.com/reverendhomer/zoc/internal/model"
	"github.com/reverendhomer/zoc/internal/model/convert"
	"github.com/reverendhomer/zoc/internal/queue"
	"github.com/reverendhomer/zoc/pkg/core"
	"gorm.io/gorm"
)

// Dialect selects the database the backend connects to when no DB is injected.
type Dialect string

const (
	DialectSqlite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

const (
	defaultFlushInterval = time.Second
	// rows per insert transaction; a full batch also triggers an early flush
	writeBatchSize = 500
)

// ErrNoSession is returned when rows are recorded before StartSession.
var ErrNoSession = errors.New("no session started")

// Dependencies holds all dependencies for the GORM storage backend.
type Dependencies struct {
	// DB is used as-is when set; otherwise Init opens one for Dialect.
	DB            *gorm.DB
	Dialect       Dialect
	Sqlite        config.SqliteConfig
	Postgres      config.PostgresConfig
	FlushInterval time.Duration
	Logger        *slog.Logger
}

// Backend implements storage.Backend using GORM with queue-based batch writes.
type Backend struct {
	deps   Dependencies
	db     *gorm.DB
	log    *slog.Logger
	turns  *queue.Queue[model.VisibilityTurn]
	dumper *database.Dumper

	session   model.Session
	sessionID atomic.Uint64

	writeMu  sync.Mutex
	stopChan chan struct{}
	done     chan struct{}
}

// New creates a new GORM storage backend.
func New(deps Dependencies) *Backend {
	log := deps.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Backend{
		deps:  deps,
		log:   log.With("component", "gormstore"),
		turns: queue.New[model.VisibilityTurn](writeBatchSize),
	}
}

// Init opens the database if needed, migrates the schema and starts the DB writer goroutine.
func (b *Backend) Init() error {
	b.db = b.deps.DB
	if b.db == nil {
		db, err := b.open()
		if err != nil {
			return err
		}
		b.db = db
	}

	b.log.Info("Migrating schema")
	if err := b.db.AutoMigrate(model.DatabaseModels...); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	if b.deps.Dialect == DialectSqlite && b.deps.DB == nil && b.deps.Sqlite.Path == "" && b.deps.Sqlite.DumpPath != "" {
		b.dumper = database.StartDumper(b.db, b.deps.Sqlite.DumpPath, b.deps.Sqlite.DumpInterval, b.log)
	}

	b.stopChan = make(chan struct{})
	b.done = make(chan struct{})
	b.startDBWriter()
	return nil
}

func (b *Backend) open() (*gorm.DB, error) {
	switch b.deps.Dialect {
	case DialectPostgres:
		db, err := database.GetPostgresDB(b.deps.Postgres, b.log)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		return db, nil
	case DialectSqlite:
		db, err := database.GetSqliteDB(b.deps.Sqlite.Path, b.log)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite: %w", err)
		}
		return db, nil
	default:
		return nil, fmt.Errorf("unsupported dialect: %q", b.deps.Dialect)
	}
}

// Close stops the DB writer goroutine, writes any queued rows and, for an
// in-memory sqlite database, the final disk dump.
func (b *Backend) Close() error {
	if b.stopChan == nil {
		return nil
	}
	close(b.stopChan)
	<-b.done
	b.stopChan = nil

	err := b.Flush()
	if b.dumper != nil {
		b.dumper.Stop()
		b.dumper = nil
	}
	return err
}

// StartSession inserts the session row; later turns reference its key.
func (b *Backend) StartSession(info *core.SessionInfo) error {
	row := convert.CoreToSession(*info)
	if err := b.db.Create(&row).Error; err != nil {
		return fmt.Errorf("failed to insert session: %w", err)
	}
	b.session = row
	b.sessionID.Store(uint64(row.ID))
	b.log.Info("Session started", "session", info.ID, "key", row.ID)
	return nil
}

// EndSession writes queued rows and stamps the session end time.
func (b *Backend) EndSession() error {
	if b.sessionID.Load() == 0 {
		return ErrNoSession
	}
	if err := b.Flush(); err != nil {
		return err
	}
	now := time.Now()
	if err := b.db.Model(&model.Session{}).Where("id = ?", b.session.ID).Update("end_time", now).Error; err != nil {
		return fmt.Errorf("failed to close session: %w", err)
	}
	b.sessionID.Store(0)
	return nil
}

// RecordVisibility converts and queues a visibility row.
func (b *Backend) RecordVisibility(s *core.VisibilityStats) error {
	id := b.sessionID.Load()
	if id == 0 {
		return ErrNoSession
	}
	b.turns.Push(convert.CoreToVisibilityTurn(*s, uint(id)))
	return nil
}

// Flush writes every queued row. A batch that fails is re-queued.
func (b *Backend) Flush() error {
	b.writeMu.Lock()
	defer b.writeMu.Unlock()
	return writeQueue(b.db, b.turns)
}

// Turns reads back the recorded rows of the current (or last) session for player.
func (b *Backend) Turns(player core.PlayerID) ([]core.VisibilityStats, error) {
	var rows []model.VisibilityTurn
	err := b.db.Where("session_id = ? AND player_id = ?", b.session.ID, int32(player)).
		Order("turn, id").Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query visibility turns: %w", err)
	}
	out := make([]core.VisibilityStats, 0, len(rows))
	for _, r := range rows {
		out = append(out, convert.VisibilityTurnToCore(r, b.session.SessionID))
	}
	return out, nil
}

// writeQueue drains q into the database in batches of writeBatchSize, one
// transaction per batch. A failed batch goes back to the front of the queue.
func writeQueue[T any](db *gorm.DB, q *queue.Queue[T]) error {
	for {
		items := q.Drain(writeBatchSize)
		if len(items) == 0 {
			return nil
		}
		tx := db.Begin()
		if err := tx.Create(&items).Error; err != nil {
			tx.Rollback()
			q.Requeue(items)
			return fmt.Errorf("failed to write %d rows: %w", len(items), err)
		}
		if err := tx.Commit().Error; err != nil {
			q.Requeue(items)
			return fmt.Errorf("failed to commit %d rows: %w", len(items), err)
		}
	}
}

// startDBWriter starts the background goroutine that periodically drains the queue into the DB.
func (b *Backend) startDBWriter() {
	interval := b.deps.FlushInterval
	if interval <= 0 {
		interval = defaultFlushInterval
	}

	go func() {
		defer close(b.done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-b.stopChan:
				return
			case <-ticker.C:
				if err := b.Flush(); err != nil {
					b.log.Error("DB writer failed", "error", err)
				}
			case <-b.turns.Ready():
				if err := b.Flush(); err != nil {
					b.log.Error("DB writer failed", "error", err)
				}
			}
		}
	}()
}
