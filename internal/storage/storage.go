// internal/storage/storage.go
package storage

import "github.com/reverendhomer/zoc/pkg/core"

// Backend is the interface all visibility stats stores must satisfy
type Backend interface {
	// Lifecycle
	Init() error
	Close() error

	// Session management
	StartSession(info *core.SessionInfo) error
	EndSession() error

	// RecordVisibility stores one player's fog summary for a turn.
	RecordVisibility(s *core.VisibilityStats) error
}

// Exportable is an optional interface for backends that write a file
// when a session ends.
type Exportable interface {
	GetExportedFilePath() string
}
