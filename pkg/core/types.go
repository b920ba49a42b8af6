// pkg/core/types.go
package core

import "fmt"

// PlayerID identifies a player (side) in a game session.
type PlayerID int32

// UnitID identifies a unit. Ids are assigned by the simulation and never reused.
type UnitID int32

// UnitTypeID references an entry in the unit type table.
type UnitTypeID int32

// MapPos is a tile position in odd-r offset coordinates.
// X is the column, Y is the row; odd rows are shifted half a tile right.
type MapPos struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

func (p MapPos) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Size2 is the dimensions of a map in tiles.
type Size2 struct {
	W int `json:"w" yaml:"w"`
	H int `json:"h" yaml:"h"`
}

// Area returns the number of tiles.
func (s Size2) Area() int {
	return s.W * s.H
}

// Terrain classifies a single tile.
type Terrain uint8

const (
	TerrainPlain Terrain = iota // open ground
	TerrainTrees                // forest, partial cover
)

// BlocksSight reports whether a tile of this terrain hides the tiles behind it.
func (t Terrain) BlocksSight() bool {
	return t == TerrainTrees
}

func (t Terrain) String() string {
	switch t {
	case TerrainPlain:
		return "plain"
	case TerrainTrees:
		return "trees"
	default:
		return fmt.Sprintf("terrain(%d)", uint8(t))
	}
}
