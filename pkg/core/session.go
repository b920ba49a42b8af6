// pkg/core/session.go
package core

import "time"

// SessionInfo describes a recorded game session.
type SessionInfo struct {
	ID        string
	Name      string
	MapSize   Size2
	Players   []PlayerID
	StartTime time.Time
}

// VisibilityStats summarizes one player's fog map at the start of one of their turns.
type VisibilityStats struct {
	SessionID string
	PlayerID  PlayerID
	Turn      int
	Time      time.Time

	Excellent int
	Normal    int
	Hidden    int

	// SpottedUnits are the enemy units the player can currently see.
	SpottedUnits []UnitID
}
