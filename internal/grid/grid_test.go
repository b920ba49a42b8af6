package grid

import (
	"slices"
	"testing"

	"github.com/reverendhomer/zoc/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_FillsEveryTile(t *testing.T) {
	m := New(core.Size2{W: 3, H: 2}, 7)

	assert.Equal(t, core.Size2{W: 3, H: 2}, m.Size())
	for pos := range m.Positions() {
		assert.Equal(t, 7, m.Get(pos))
	}
}

func TestContains(t *testing.T) {
	m := New(core.Size2{W: 4, H: 3}, false)

	tests := []struct {
		pos  core.MapPos
		want bool
	}{
		{core.MapPos{X: 0, Y: 0}, true},
		{core.MapPos{X: 3, Y: 2}, true},
		{core.MapPos{X: 4, Y: 2}, false},
		{core.MapPos{X: 3, Y: 3}, false},
		{core.MapPos{X: -1, Y: 0}, false},
		{core.MapPos{X: 0, Y: -1}, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, m.Contains(tt.pos), "pos %v", tt.pos)
	}
}

func TestAt_OutOfBounds(t *testing.T) {
	m := New(core.Size2{W: 2, H: 2}, "x")

	_, err := m.At(core.MapPos{X: 2, Y: 0})
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrInvalidPosition)

	v, err := m.At(core.MapPos{X: 1, Y: 1})
	require.NoError(t, err)
	assert.Equal(t, "x", v)
}

func TestSetGet(t *testing.T) {
	m := New(core.Size2{W: 3, H: 3}, 0)
	m.Set(core.MapPos{X: 2, Y: 1}, 42)

	assert.Equal(t, 42, m.Get(core.MapPos{X: 2, Y: 1}))
	assert.Equal(t, 0, m.Get(core.MapPos{X: 1, Y: 2}))
}

func TestPositions_RowMajor(t *testing.T) {
	m := New(core.Size2{W: 2, H: 2}, 0)

	got := slices.Collect(m.Positions())
	assert.Equal(t, []core.MapPos{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}}, got)
}

func TestAll_MatchesGet(t *testing.T) {
	m := New(core.Size2{W: 3, H: 2}, 0)
	m.Set(core.MapPos{X: 1, Y: 1}, 5)

	n := 0
	for pos, v := range m.All() {
		assert.Equal(t, m.Get(pos), v)
		n++
	}
	assert.Equal(t, 6, n)
}

func TestClone_IsIndependent(t *testing.T) {
	m := New(core.Size2{W: 2, H: 2}, 1)
	c := m.Clone()
	c.Set(core.MapPos{X: 0, Y: 0}, 9)

	assert.Equal(t, 1, m.Get(core.MapPos{X: 0, Y: 0}))
	assert.Equal(t, 9, c.Get(core.MapPos{X: 0, Y: 0}))
}
