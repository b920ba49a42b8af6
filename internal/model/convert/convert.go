package convert

import (
	"encoding/json"

	"github.com/reverendhomer/zoc/internal/model"
	"github.com/reverendhomer/zoc/pkg/core"
)

// SessionToCore converts a GORM Session to a core.SessionInfo.
func SessionToCore(s model.Session) core.SessionInfo {
	var players []core.PlayerID
	if len(s.Players) > 0 {
		_ = json.Unmarshal(s.Players, &players)
	}
	return core.SessionInfo{
		ID:        s.SessionID,
		Name:      s.Name,
		MapSize:   core.Size2{W: s.MapWidth, H: s.MapHeight},
		Players:   players,
		StartTime: s.StartTime,
	}
}

// VisibilityTurnToCore converts a GORM VisibilityTurn to a core.VisibilityStats.
// sessionID is the uuid of the owning session.
func VisibilityTurnToCore(v model.VisibilityTurn, sessionID string) core.VisibilityStats {
	var spotted []core.UnitID
	if len(v.SpottedUnits) > 0 {
		_ = json.Unmarshal(v.SpottedUnits, &spotted)
	}
	return core.VisibilityStats{
		SessionID:    sessionID,
		PlayerID:     core.PlayerID(v.PlayerID),
		Turn:         v.Turn,
		Time:         v.Time,
		Excellent:    v.Excellent,
		Normal:       v.Normal,
		Hidden:       v.Hidden,
		SpottedUnits: spotted,
	}
}
