// Package convert provides functions to convert between GORM models and core models
package convert

import (
	"encoding/json"

	"github.com/reverendhomer/zoc/internal/model"
	"github.com/reverendhomer/zoc/pkg/core"
	"gorm.io/datatypes"
)

// idsToJSON converts a slice of ids to datatypes.JSON for DB storage.
func idsToJSON[T ~int32](ids []T) datatypes.JSON {
	if len(ids) == 0 {
		return datatypes.JSON("[]")
	}
	data, _ := json.Marshal(ids)
	return datatypes.JSON(data)
}

// CoreToSession converts a core.SessionInfo to a GORM model.Session.
func CoreToSession(s core.SessionInfo) model.Session {
	return model.Session{
		SessionID: s.ID,
		Name:      s.Name,
		MapWidth:  s.MapSize.W,
		MapHeight: s.MapSize.H,
		Players:   idsToJSON(s.Players),
		StartTime: s.StartTime,
	}
}

// CoreToVisibilityTurn converts a core.VisibilityStats to a GORM model.VisibilityTurn.
// SessionID is the database key of the owning session row, not the uuid.
func CoreToVisibilityTurn(s core.VisibilityStats, sessionID uint) model.VisibilityTurn {
	return model.VisibilityTurn{
		Time:         s.Time,
		SessionID:    sessionID,
		PlayerID:     int32(s.PlayerID),
		Turn:         s.Turn,
		Excellent:    s.Excellent,
		Normal:       s.Normal,
		Hidden:       s.Hidden,
		SpottedUnits: idsToJSON(s.SpottedUnits),
	}
}
