// pkg/core/visibility.go
package core

import "fmt"

// TileVisibility is how well a tile is currently observed by a player.
// Levels are compared through Rank, never through their numeric value.
type TileVisibility uint8

const (
	VisibilityNone TileVisibility = iota
	VisibilityNormal
	VisibilityExcellent
)

// Rank orders visibility levels: None < Normal < Excellent.
func (v TileVisibility) Rank() int {
	switch v {
	case VisibilityExcellent:
		return 2
	case VisibilityNormal:
		return 1
	case VisibilityNone:
		return 0
	default:
		return -1
	}
}

// MaxVisibility returns the better of two levels.
func MaxVisibility(a, b TileVisibility) TileVisibility {
	if b.Rank() > a.Rank() {
		return b
	}
	return a
}

func (v TileVisibility) String() string {
	switch v {
	case VisibilityNone:
		return "none"
	case VisibilityNormal:
		return "normal"
	case VisibilityExcellent:
		return "excellent"
	default:
		return fmt.Sprintf("visibility(%d)", uint8(v))
	}
}
