package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

////////////////////////
// DATABASE STRUCTURES //
////////////////////////

// DatabaseModels is a list of all the structs exported here which represent tables in the database schema
var DatabaseModels = []interface{}{
	&Session{},
	&VisibilityTurn{},
}

// Session is one recorded game. SessionID is the uuid assigned when the
// session context was created.
type Session struct {
	gorm.Model
	SessionID string         `json:"sessionId" gorm:"size:64;uniqueIndex:idx_session_uuid"`
	Name      string         `json:"name" gorm:"size:200"`
	MapWidth  int            `json:"mapWidth"`
	MapHeight int            `json:"mapHeight"`
	Players   datatypes.JSON `json:"players"`
	StartTime time.Time      `json:"startTime" gorm:"index:idx_session_start"`
	EndTime   *time.Time     `json:"endTime"`

	VisibilityTurns []VisibilityTurn
}

func (*Session) TableName() string {
	return "sessions"
}

// VisibilityTurn is a player's fog summary at the start of one of their turns
type VisibilityTurn struct {
	ID        uint      `json:"id" gorm:"primarykey;autoIncrement;"`
	Time      time.Time `json:"time"`
	SessionID uint      `json:"sessionId" gorm:"index:idx_visibility_session_id"`
	Session   Session   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;foreignkey:SessionID;"`
	PlayerID  int32     `json:"playerId" gorm:"index:idx_visibility_player"`
	Turn      int       `json:"turn"`

	Excellent int `json:"excellent"`
	Normal    int `json:"normal"`
	Hidden    int `json:"hidden"`

	SpottedUnits datatypes.JSON `json:"spottedUnits"` // enemy unit ids visible to the player
}

func (*VisibilityTurn) TableName() string {
	return "visibility_turns"
}
