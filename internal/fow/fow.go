// Package fow maintains per-player fog of war over the tile grid.
//
// A Fow is updated incrementally as units move or appear, which can only raise
// tile visibility. Reset recomputes it from scratch and is the only operation
// that lowers visibility; the event reducer calls it at the start of the
// owner's turn.
package fow

import (
	"fmt"
	"iter"

	"github.com/reverendhomer/zoc/internal/fov"
	"github.com/reverendhomer/zoc/internal/geo"
	"github.com/reverendhomer/zoc/internal/grid"
	"github.com/reverendhomer/zoc/pkg/core"
)

// TypeLookup resolves unit types.
type TypeLookup interface {
	UnitType(id core.UnitTypeID) (core.UnitType, bool)
}

// Fow is the fog of war of one player. It is not safe for concurrent use.
type Fow struct {
	tiles    *grid.Map[core.TileVisibility]
	playerID core.PlayerID
}

// New creates a fog map with every tile at VisibilityNone.
func New(size core.Size2, playerID core.PlayerID) *Fow {
	return &Fow{
		tiles:    grid.New(size, core.VisibilityNone),
		playerID: playerID,
	}
}

// PlayerID returns the owning player.
func (f *Fow) PlayerID() core.PlayerID {
	return f.playerID
}

// Size returns the map dimensions.
func (f *Fow) Size() core.Size2 {
	return f.tiles.Size()
}

// Level returns the stored visibility of pos.
func (f *Fow) Level(pos core.MapPos) (core.TileVisibility, error) {
	return f.tiles.At(pos)
}

// IsTileVisible reports whether pos is observed at any quality.
func (f *Fow) IsTileVisible(pos core.MapPos) (bool, error) {
	v, err := f.tiles.At(pos)
	if err != nil {
		return false, err
	}
	return v.Rank() >= core.VisibilityNormal.Rank(), nil
}

// IsVisible reports whether a unit of type ut standing on pos is spotted.
// Infantry keeps its cover on tiles seen only at Normal quality; vehicles do not.
func (f *Fow) IsVisible(ut core.UnitType, pos core.MapPos) (bool, error) {
	v, err := f.tiles.At(pos)
	if err != nil {
		return false, err
	}
	switch v {
	case core.VisibilityExcellent:
		return true, nil
	case core.VisibilityNormal:
		return ut.Class != core.ClassInfantry, nil
	default:
		return false, nil
	}
}

// Clear resets every tile to VisibilityNone.
func (f *Fow) Clear() {
	f.tiles.Fill(core.VisibilityNone)
}

// ProjectUnit merges what unit sees from its own position.
func (f *Fow) ProjectUnit(terrain fov.Terrain, types TypeLookup, unit core.Unit) error {
	return f.ProjectUnitFrom(terrain, types, unit, unit.Pos)
}

// ProjectUnitFrom merges what unit would see standing on origin. Every tile
// keeps the better of its current level and the computed one.
func (f *Fow) ProjectUnitFrom(terrain fov.Terrain, types TypeLookup, unit core.Unit, origin core.MapPos) error {
	ut, ok := types.UnitType(unit.TypeID)
	if !ok {
		return fmt.Errorf("%w: unit %d has type %d", core.ErrUnknownUnitType, unit.ID, unit.TypeID)
	}
	return project(f.tiles, terrain, ut, origin)
}

func project(dst *grid.Map[core.TileVisibility], terrain fov.Terrain, ut core.UnitType, origin core.MapPos) error {
	if !dst.Contains(origin) {
		return fmt.Errorf("%w: projection origin %v", core.ErrInvalidPosition, origin)
	}
	tiles, err := fov.Sweep(terrain, origin, ut.LosRange)
	if err != nil {
		return err
	}
	for pos := range tiles {
		if !dst.Contains(pos) {
			continue
		}
		vis := Classify(geo.Distance(origin, pos), terrain.Get(pos), ut)
		dst.Set(pos, core.MaxVisibility(dst.Get(pos), vis))
	}
	return nil
}

// Reset recomputes the map from every unit owned by this player. Units of
// other players are skipped. On error the previous levels are kept.
func (f *Fow) Reset(terrain fov.Terrain, types TypeLookup, units iter.Seq[core.Unit]) error {
	next := grid.New(f.tiles.Size(), core.VisibilityNone)
	for u := range units {
		if u.PlayerID != f.playerID {
			continue
		}
		ut, ok := types.UnitType(u.TypeID)
		if !ok {
			return fmt.Errorf("reset fog of player %d: %w: unit %d has type %d",
				f.playerID, core.ErrUnknownUnitType, u.ID, u.TypeID)
		}
		if err := project(next, terrain, ut, u.Pos); err != nil {
			return fmt.Errorf("reset fog of player %d: %w", f.playerID, err)
		}
	}
	f.tiles = next
	return nil
}

// Stats counts tiles per visibility level.
func (f *Fow) Stats() (excellent, normal, hidden int) {
	for _, v := range f.tiles.All() {
		switch v {
		case core.VisibilityExcellent:
			excellent++
		case core.VisibilityNormal:
			normal++
		default:
			hidden++
		}
	}
	return excellent, normal, hidden
}

// Snapshot returns a copy of the current levels.
func (f *Fow) Snapshot() *grid.Map[core.TileVisibility] {
	return f.tiles.Clone()
}
