// pkg/core/codec.go
package core

import (
	"encoding/json"
	"fmt"
)

// EventRecord is the flat wire form of an event, shared by the JSON envelope
// used on the message bus and by scenario files. Only the fields relevant to
// Kind are set.
type EventRecord struct {
	Kind EventKind `json:"kind" yaml:"kind"`

	Unit     UnitID     `json:"unit,omitempty" yaml:"unit,omitempty"`
	Player   PlayerID   `json:"player,omitempty" yaml:"player,omitempty"`
	Type     UnitTypeID `json:"type,omitempty" yaml:"type,omitempty"`
	Pos      *MapPos    `json:"pos,omitempty" yaml:"pos,omitempty"`
	Path     []MapPos   `json:"path,omitempty" yaml:"path,omitempty"`
	OldID    PlayerID   `json:"old_player,omitempty" yaml:"old_player,omitempty"`
	NewID    PlayerID   `json:"new_player,omitempty" yaml:"new_player,omitempty"`
	Attacker UnitID     `json:"attacker,omitempty" yaml:"attacker,omitempty"`
	Defender UnitID     `json:"defender,omitempty" yaml:"defender,omitempty"`
	Killed   int        `json:"killed,omitempty" yaml:"killed,omitempty"`
}

// ToEvent converts the record into its typed event.
func (r EventRecord) ToEvent() (Event, error) {
	switch r.Kind {
	case KindMove:
		if len(r.Path) == 0 {
			return nil, fmt.Errorf("move of unit %d: empty path", r.Unit)
		}
		return MoveEvent{UnitID: r.Unit, Path: NewPath(r.Path...)}, nil
	case KindEndTurn:
		return EndTurnEvent{OldID: r.OldID, NewID: r.NewID}, nil
	case KindCreateUnit:
		if r.Pos == nil {
			return nil, fmt.Errorf("create of unit %d: missing pos", r.Unit)
		}
		return CreateUnitEvent{UnitID: r.Unit, PlayerID: r.Player, TypeID: r.Type, Pos: *r.Pos}, nil
	case KindAttackUnit:
		if r.Killed < 0 {
			return nil, fmt.Errorf("attack on unit %d: negative killed count %d", r.Defender, r.Killed)
		}
		return AttackUnitEvent{AttackerID: r.Attacker, DefenderID: r.Defender, Killed: r.Killed}, nil
	case KindShowUnit:
		if r.Pos == nil {
			return nil, fmt.Errorf("show of unit %d: missing pos", r.Unit)
		}
		return ShowUnitEvent{UnitID: r.Unit, PlayerID: r.Player, TypeID: r.Type, Pos: *r.Pos}, nil
	case KindHideUnit:
		return HideUnitEvent{UnitID: r.Unit}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnclassifiedEvent, r.Kind)
	}
}

// RecordOf converts a typed event into its wire form.
func RecordOf(e Event) (EventRecord, error) {
	switch ev := e.(type) {
	case MoveEvent:
		path := make([]MapPos, len(ev.Path.Nodes))
		for i, n := range ev.Path.Nodes {
			path[i] = n.Pos
		}
		return EventRecord{Kind: KindMove, Unit: ev.UnitID, Path: path}, nil
	case EndTurnEvent:
		return EventRecord{Kind: KindEndTurn, OldID: ev.OldID, NewID: ev.NewID}, nil
	case CreateUnitEvent:
		pos := ev.Pos
		return EventRecord{Kind: KindCreateUnit, Unit: ev.UnitID, Player: ev.PlayerID, Type: ev.TypeID, Pos: &pos}, nil
	case AttackUnitEvent:
		return EventRecord{Kind: KindAttackUnit, Attacker: ev.AttackerID, Defender: ev.DefenderID, Killed: ev.Killed}, nil
	case ShowUnitEvent:
		pos := ev.Pos
		return EventRecord{Kind: KindShowUnit, Unit: ev.UnitID, Player: ev.PlayerID, Type: ev.TypeID, Pos: &pos}, nil
	case HideUnitEvent:
		return EventRecord{Kind: KindHideUnit, Unit: ev.UnitID}, nil
	default:
		return EventRecord{}, fmt.Errorf("%w: %T", ErrUnclassifiedEvent, e)
	}
}

// EncodeEvent serializes an event as a JSON envelope.
func EncodeEvent(e Event) ([]byte, error) {
	rec, err := RecordOf(e)
	if err != nil {
		return nil, err
	}
	return json.Marshal(rec)
}

// DecodeEvent parses a JSON envelope produced by EncodeEvent.
func DecodeEvent(data []byte) (Event, error) {
	var rec EventRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("error unmarshalling event: %w", err)
	}
	return rec.ToEvent()
}
