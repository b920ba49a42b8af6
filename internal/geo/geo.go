package geo

import (
	"math"

	"github.com/reverendhomer/zoc/pkg/core"
)

// HEX GRID
// Tiles are addressed in odd-r offset coordinates (core.MapPos): rows are
// horizontal, odd rows are shifted half a tile right. All distance and line
// math happens in cube coordinates, where q+r+s == 0.

// Cube is a hex position in cube coordinates.
type Cube struct {
	Q, R, S int
}

// directions in axial form, clockwise from east.
var directions = [6]Cube{
	{1, 0, -1}, {1, -1, 0}, {0, -1, 1},
	{-1, 0, 1}, {-1, 1, 0}, {0, 1, -1},
}

// ToCube converts an offset position to cube coordinates.
func ToCube(p core.MapPos) Cube {
	q := p.X - (p.Y-(p.Y&1))/2
	r := p.Y
	return Cube{Q: q, R: r, S: -q - r}
}

// FromCube converts cube coordinates back to an offset position.
func FromCube(c Cube) core.MapPos {
	return core.MapPos{
		X: c.Q + (c.R-(c.R&1))/2,
		Y: c.R,
	}
}

// Distance returns the number of hex steps between two tiles.
func Distance(a, b core.MapPos) int {
	ac, bc := ToCube(a), ToCube(b)
	return (abs(ac.Q-bc.Q) + abs(ac.R-bc.R) + abs(ac.S-bc.S)) / 2
}

// Neighbors returns the six tiles adjacent to p. Positions may lie off the map.
func Neighbors(p core.MapPos) [6]core.MapPos {
	c := ToCube(p)
	var out [6]core.MapPos
	for i, d := range directions {
		out[i] = FromCube(Cube{Q: c.Q + d.Q, R: c.R + d.R, S: c.S + d.S})
	}
	return out
}

// Line returns the tiles crossed by a straight line from a to b, both ends
// included. The start is nudged off tile edges so ties always break the same way.
func Line(a, b core.MapPos) []core.MapPos {
	n := Distance(a, b)
	if n == 0 {
		return []core.MapPos{a}
	}

	ac, bc := ToCube(a), ToCube(b)
	aq := float64(ac.Q) + 1e-6
	ar := float64(ac.R) + 2e-6
	as := float64(ac.S) - 3e-6

	out := make([]core.MapPos, 0, n+1)
	for i := 0; i <= n; i++ {
		t := float64(i) / float64(n)
		c := cubeRound(
			lerp(aq, float64(bc.Q), t),
			lerp(ar, float64(bc.R), t),
			lerp(as, float64(bc.S), t),
		)
		out = append(out, FromCube(c))
	}
	return out
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// cubeRound snaps fractional cube coordinates to the nearest hex, fixing the
// component with the largest rounding error so q+r+s stays zero.
func cubeRound(fq, fr, fs float64) Cube {
	q := math.Round(fq)
	r := math.Round(fr)
	s := math.Round(fs)

	dq := math.Abs(q - fq)
	dr := math.Abs(r - fr)
	ds := math.Abs(s - fs)

	switch {
	case dq > dr && dq > ds:
		q = -r - s
	case dr > ds:
		r = -q - s
	default:
		s = -q - r
	}
	return Cube{Q: int(q), R: int(r), S: int(s)}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
