package fow

import "github.com/reverendhomer/zoc/pkg/core"

// Classify returns the quality at which a unit of type ut sees a tile of the
// given terrain at the given distance. Range boundaries are inclusive.
func Classify(distance int, terrain core.Terrain, ut core.UnitType) core.TileVisibility {
	switch {
	case distance <= ut.CoverLosRange:
		return core.VisibilityExcellent
	case distance <= ut.LosRange:
		if terrain == core.TerrainTrees {
			return core.VisibilityNormal
		}
		return core.VisibilityExcellent
	default:
		return core.VisibilityNone
	}
}
