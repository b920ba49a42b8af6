package geo

import (
	"testing"

	"github.com/reverendhomer/zoc/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCubeRoundTrip(t *testing.T) {
	for y := -3; y <= 3; y++ {
		for x := -3; x <= 3; x++ {
			p := core.MapPos{X: x, Y: y}
			c := ToCube(p)
			assert.Equal(t, 0, c.Q+c.R+c.S, "cube invariant for %v", p)
			assert.Equal(t, p, FromCube(c))
		}
	}
}

func TestDistance(t *testing.T) {
	tests := []struct {
		name string
		a, b core.MapPos
		want int
	}{
		{"same tile", core.MapPos{X: 5, Y: 5}, core.MapPos{X: 5, Y: 5}, 0},
		{"east", core.MapPos{X: 5, Y: 5}, core.MapPos{X: 6, Y: 5}, 1},
		{"two west", core.MapPos{X: 5, Y: 5}, core.MapPos{X: 3, Y: 5}, 2},
		{"odd row down-right", core.MapPos{X: 5, Y: 5}, core.MapPos{X: 6, Y: 6}, 1},
		{"odd row down-left", core.MapPos{X: 5, Y: 5}, core.MapPos{X: 5, Y: 6}, 1},
		{"even row down-left", core.MapPos{X: 2, Y: 2}, core.MapPos{X: 1, Y: 3}, 1},
		{"even row down-right", core.MapPos{X: 2, Y: 2}, core.MapPos{X: 2, Y: 3}, 1},
		{"straight down two rows", core.MapPos{X: 5, Y: 5}, core.MapPos{X: 5, Y: 7}, 2},
		{"far", core.MapPos{X: 0, Y: 0}, core.MapPos{X: 3, Y: 4}, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Distance(tt.a, tt.b))
			assert.Equal(t, tt.want, Distance(tt.b, tt.a))
		})
	}
}

func TestNeighbors_AllAtDistanceOne(t *testing.T) {
	for _, origin := range []core.MapPos{{X: 4, Y: 4}, {X: 4, Y: 5}, {X: 0, Y: 0}} {
		seen := map[core.MapPos]bool{}
		for _, n := range Neighbors(origin) {
			assert.Equal(t, 1, Distance(origin, n), "neighbor %v of %v", n, origin)
			seen[n] = true
		}
		assert.Len(t, seen, 6)
	}
}

func TestLine(t *testing.T) {
	a := core.MapPos{X: 1, Y: 1}
	b := core.MapPos{X: 6, Y: 4}

	line := Line(a, b)
	require.Len(t, line, Distance(a, b)+1)
	assert.Equal(t, a, line[0])
	assert.Equal(t, b, line[len(line)-1])

	for i := 1; i < len(line); i++ {
		assert.Equal(t, 1, Distance(line[i-1], line[i]), "steps must be adjacent")
	}
}

func TestLine_SameTile(t *testing.T) {
	p := core.MapPos{X: 3, Y: 3}
	assert.Equal(t, []core.MapPos{p}, Line(p, p))
}

func TestLine_Deterministic(t *testing.T) {
	a := core.MapPos{X: 0, Y: 0}
	b := core.MapPos{X: 4, Y: 2}
	assert.Equal(t, Line(a, b), Line(a, b))
}
