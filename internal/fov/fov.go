// Package fov computes the tiles in line of sight of an origin tile.
package fov

import (
	"fmt"
	"iter"

	"github.com/reverendhomer/zoc/internal/geo"
	"github.com/reverendhomer/zoc/pkg/core"
)

// Terrain is the read-only map view the sweep consumes.
// *grid.Map[core.Terrain] satisfies it.
type Terrain interface {
	Contains(pos core.MapPos) bool
	Get(pos core.MapPos) core.Terrain
}

// Sweep returns the tiles within radius of origin that are not occluded.
// A tile is occluded when any tile strictly between it and origin on the hex
// line blocks sight; the blocking tile itself is still visible.
//
// Tiles are yielded exactly once, row by row, so the order is stable for a
// given input. The sequence can be ranged over any number of times.
func Sweep(t Terrain, origin core.MapPos, radius int) (iter.Seq[core.MapPos], error) {
	if !t.Contains(origin) {
		return nil, fmt.Errorf("%w: sweep origin %v", core.ErrInvalidPosition, origin)
	}
	if radius < 0 {
		radius = 0
	}

	return func(yield func(core.MapPos) bool) {
		for y := origin.Y - radius; y <= origin.Y+radius; y++ {
			for x := origin.X - radius; x <= origin.X+radius; x++ {
				pos := core.MapPos{X: x, Y: y}
				if !t.Contains(pos) || geo.Distance(origin, pos) > radius {
					continue
				}
				if !InLineOfSight(t, origin, pos) {
					continue
				}
				if !yield(pos) {
					return
				}
			}
		}
	}, nil
}

// InLineOfSight reports whether nothing between from and to blocks sight.
// The line may clip off the map near its edges; such tiles never block.
func InLineOfSight(t Terrain, from, to core.MapPos) bool {
	line := geo.Line(from, to)
	if len(line) <= 2 {
		return true
	}
	for _, p := range line[1 : len(line)-1] {
		if t.Contains(p) && t.Get(p).BlocksSight() {
			return false
		}
	}
	return true
}
