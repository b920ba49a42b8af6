package fov

import (
	"slices"
	"testing"

	"github.com/reverendhomer/zoc/internal/geo"
	"github.com/reverendhomer/zoc/internal/grid"
	"github.com/reverendhomer/zoc/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openMap(w, h int) *grid.Map[core.Terrain] {
	return grid.New(core.Size2{W: w, H: h}, core.TerrainPlain)
}

func collect(t *testing.T, terrain Terrain, origin core.MapPos, radius int) []core.MapPos {
	t.Helper()
	seq, err := Sweep(terrain, origin, radius)
	require.NoError(t, err)
	return slices.Collect(seq)
}

func TestSweep_RadiusZeroVisitsOrigin(t *testing.T) {
	origin := core.MapPos{X: 3, Y: 3}
	got := collect(t, openMap(7, 7), origin, 0)
	assert.Equal(t, []core.MapPos{origin}, got)
}

func TestSweep_OpenGroundMatchesHexArea(t *testing.T) {
	origin := core.MapPos{X: 5, Y: 5}
	got := collect(t, openMap(11, 11), origin, 2)

	// 1 + 6 + 12 tiles within two steps on an unobstructed hex grid
	assert.Len(t, got, 19)
	for _, p := range got {
		assert.LessOrEqual(t, geo.Distance(origin, p), 2)
	}
}

func TestSweep_VisitsEachTileOnce(t *testing.T) {
	got := collect(t, openMap(9, 9), core.MapPos{X: 4, Y: 4}, 3)

	seen := map[core.MapPos]int{}
	for _, p := range got {
		seen[p]++
	}
	for p, n := range seen {
		assert.Equal(t, 1, n, "tile %v visited %d times", p, n)
	}
}

func TestSweep_ClipsAtMapEdge(t *testing.T) {
	m := openMap(4, 4)
	got := collect(t, m, core.MapPos{X: 0, Y: 0}, 2)

	require.NotEmpty(t, got)
	for _, p := range got {
		assert.True(t, m.Contains(p), "tile %v is off the map", p)
	}
}

func TestSweep_InvalidOrigin(t *testing.T) {
	_, err := Sweep(openMap(3, 3), core.MapPos{X: 3, Y: 0}, 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrInvalidPosition)
}

func TestSweep_Deterministic(t *testing.T) {
	m := openMap(10, 10)
	m.Set(core.MapPos{X: 5, Y: 4}, core.TerrainTrees)
	origin := core.MapPos{X: 4, Y: 4}

	seq, err := Sweep(m, origin, 4)
	require.NoError(t, err)
	assert.Equal(t, slices.Collect(seq), slices.Collect(seq), "sequence must be restartable")
	assert.Equal(t, collect(t, m, origin, 4), collect(t, m, origin, 4))
}

func TestSweep_TreesHideTilesBehind(t *testing.T) {
	m := openMap(10, 3)
	origin := core.MapPos{X: 1, Y: 1}
	trees := core.MapPos{X: 3, Y: 1}
	behind := core.MapPos{X: 5, Y: 1}
	m.Set(trees, core.TerrainTrees)

	got := collect(t, m, origin, 5)

	assert.Contains(t, got, trees, "the blocking tile itself is visible")
	assert.NotContains(t, got, behind)
	assert.Contains(t, got, core.MapPos{X: 2, Y: 1})
}

func TestSweep_StopsWhenConsumerStops(t *testing.T) {
	seq, err := Sweep(openMap(9, 9), core.MapPos{X: 4, Y: 4}, 3)
	require.NoError(t, err)

	n := 0
	for range seq {
		n++
		if n == 3 {
			break
		}
	}
	assert.Equal(t, 3, n)
}

func TestInLineOfSight_Adjacent(t *testing.T) {
	m := openMap(5, 5)
	m.Set(core.MapPos{X: 3, Y: 2}, core.TerrainTrees)

	assert.True(t, InLineOfSight(m, core.MapPos{X: 2, Y: 2}, core.MapPos{X: 3, Y: 2}))
	assert.True(t, InLineOfSight(m, core.MapPos{X: 2, Y: 2}, core.MapPos{X: 2, Y: 2}))
}
