package fow

import (
	"fmt"
	"iter"

	"github.com/reverendhomer/zoc/internal/grid"
	"github.com/reverendhomer/zoc/pkg/core"
)

// State is the read-only simulation state the reducer derives visibility from.
// It must already reflect the event being applied.
type State interface {
	TypeLookup
	Terrain() *grid.Map[core.Terrain]
	Unit(id core.UnitID) (core.Unit, bool)
	Units() iter.Seq[core.Unit]
}

// AffectsVisibility reports whether events of kind k can change a fog map.
// The second result is false for kinds nobody has classified yet.
func AffectsVisibility(k core.EventKind) (affects, known bool) {
	switch k {
	case core.KindMove, core.KindEndTurn, core.KindCreateUnit:
		return true, true
	case core.KindAttackUnit, core.KindShowUnit, core.KindHideUnit:
		return false, true
	default:
		return false, false
	}
}

// ApplyEvent updates f for a single event.
//
// A move sweeps from every waypoint of the path so tiles seen only in passing
// are revealed. The owner's end of turn triggers a full Reset, which drops
// stale marks left by units that have since moved or died.
//
// Errors wrapping core.ErrUnknownUnitID or core.ErrUnknownUnitType mean the
// event stream and st have desynchronized and must be treated as fatal.
func ApplyEvent(f *Fow, st State, ev core.Event) error {
	switch e := ev.(type) {
	case core.MoveEvent:
		unit, ok := st.Unit(e.UnitID)
		if !ok {
			return fmt.Errorf("%w: move of unit %d", core.ErrUnknownUnitID, e.UnitID)
		}
		if unit.PlayerID != f.playerID {
			return nil
		}
		for _, node := range e.Path.Nodes {
			if err := f.ProjectUnitFrom(st.Terrain(), st, unit, node.Pos); err != nil {
				return fmt.Errorf("move of unit %d: %w", e.UnitID, err)
			}
		}
		return nil

	case core.EndTurnEvent:
		if e.NewID != f.playerID {
			return nil
		}
		return f.Reset(st.Terrain(), st, st.Units())

	case core.CreateUnitEvent:
		unit, ok := st.Unit(e.UnitID)
		if !ok {
			return fmt.Errorf("%w: create of unit %d", core.ErrUnknownUnitID, e.UnitID)
		}
		if e.PlayerID != f.playerID {
			return nil
		}
		if err := f.ProjectUnit(st.Terrain(), st, unit); err != nil {
			return fmt.Errorf("create of unit %d: %w", e.UnitID, err)
		}
		return nil

	case core.AttackUnitEvent, core.ShowUnitEvent, core.HideUnitEvent:
		// visibility is derived from positions only
		return nil

	default:
		return fmt.Errorf("%w: %T", core.ErrUnclassifiedEvent, ev)
	}
}
