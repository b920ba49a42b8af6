// internal/storage/memory/memory.go
package memory

import (
	"fmt"
	"slices"
	"sync"

	"github.com/reverendhomer/zoc/internal/config"
	"github.com/reverendhomer/zoc/pkg/core"
)

// PlayerRecord groups every visibility summary recorded for one player
type PlayerRecord struct {
	PlayerID core.PlayerID
	Turns    []core.VisibilityStats
}

// Backend stores session data in memory and exports to JSON
type Backend struct {
	cfg     config.MemoryConfig
	session *core.SessionInfo

	players map[core.PlayerID]*PlayerRecord

	lastExportPath string
	mu             sync.RWMutex
}

// New creates a new memory backend
func New(cfg config.MemoryConfig) *Backend {
	return &Backend{
		cfg:     cfg,
		players: make(map[core.PlayerID]*PlayerRecord),
	}
}

// Init initializes the backend
func (b *Backend) Init() error {
	return nil
}

// Close cleans up resources
func (b *Backend) Close() error {
	return nil
}

// StartSession begins recording a new session
func (b *Backend) StartSession(info *core.SessionInfo) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.session = info
	b.players = make(map[core.PlayerID]*PlayerRecord, len(info.Players))
	for _, id := range info.Players {
		b.players[id] = &PlayerRecord{PlayerID: id}
	}
	b.lastExportPath = ""
	return nil
}

// EndSession finalizes and exports the session data
func (b *Backend) EndSession() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.session == nil {
		return fmt.Errorf("no session started")
	}
	return b.exportJSON()
}

// RecordVisibility appends a summary to the player's record
func (b *Backend) RecordVisibility(s *core.VisibilityStats) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	rec, ok := b.players[s.PlayerID]
	if !ok {
		rec = &PlayerRecord{PlayerID: s.PlayerID}
		b.players[s.PlayerID] = rec
	}
	stats := *s
	stats.SpottedUnits = slices.Clone(s.SpottedUnits)
	rec.Turns = append(rec.Turns, stats)
	return nil
}

// Turns returns a copy of the summaries recorded for player.
func (b *Backend) Turns(player core.PlayerID) []core.VisibilityStats {
	b.mu.RLock()
	defer b.mu.RUnlock()

	rec, ok := b.players[player]
	if !ok {
		return nil
	}
	return slices.Clone(rec.Turns)
}

// GetExportedFilePath returns the path of the last export
func (b *Backend) GetExportedFilePath() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lastExportPath
}
