// Package grid provides a dense rectangular tile container keyed by map position.
package grid

import (
	"fmt"
	"iter"

	"github.com/reverendhomer/zoc/pkg/core"
)

// Map stores one value per tile, row-major.
type Map[T any] struct {
	size  core.Size2
	tiles []T
}

// New creates a map of the given size with every tile set to fill.
func New[T any](size core.Size2, fill T) *Map[T] {
	if size.W < 0 || size.H < 0 {
		size = core.Size2{}
	}
	m := &Map[T]{
		size:  size,
		tiles: make([]T, size.Area()),
	}
	m.Fill(fill)
	return m
}

// Size returns the map dimensions.
func (m *Map[T]) Size() core.Size2 {
	return m.size
}

// Contains reports whether pos lies on the map.
func (m *Map[T]) Contains(pos core.MapPos) bool {
	return pos.X >= 0 && pos.Y >= 0 && pos.X < m.size.W && pos.Y < m.size.H
}

// At returns the value at pos, or core.ErrInvalidPosition when pos is off the map.
func (m *Map[T]) At(pos core.MapPos) (T, error) {
	if !m.Contains(pos) {
		var zero T
		return zero, fmt.Errorf("%w: %v outside %dx%d", core.ErrInvalidPosition, pos, m.size.W, m.size.H)
	}
	return m.tiles[m.index(pos)], nil
}

// Get returns the value at pos. pos must be on the map.
func (m *Map[T]) Get(pos core.MapPos) T {
	return m.tiles[m.index(pos)]
}

// Set stores v at pos. pos must be on the map.
func (m *Map[T]) Set(pos core.MapPos, v T) {
	m.tiles[m.index(pos)] = v
}

// Fill sets every tile to v.
func (m *Map[T]) Fill(v T) {
	for i := range m.tiles {
		m.tiles[i] = v
	}
}

// Positions yields every position on the map, row by row.
func (m *Map[T]) Positions() iter.Seq[core.MapPos] {
	return func(yield func(core.MapPos) bool) {
		for y := 0; y < m.size.H; y++ {
			for x := 0; x < m.size.W; x++ {
				if !yield(core.MapPos{X: x, Y: y}) {
					return
				}
			}
		}
	}
}

// All yields every position with its value, row by row.
func (m *Map[T]) All() iter.Seq2[core.MapPos, T] {
	return func(yield func(core.MapPos, T) bool) {
		for i, v := range m.tiles {
			if !yield(core.MapPos{X: i % m.size.W, Y: i / m.size.W}, v) {
				return
			}
		}
	}
}

// Clone returns a deep copy.
func (m *Map[T]) Clone() *Map[T] {
	tiles := make([]T, len(m.tiles))
	copy(tiles, m.tiles)
	return &Map[T]{size: m.size, tiles: tiles}
}

func (m *Map[T]) index(pos core.MapPos) int {
	return pos.Y*m.size.W + pos.X
}
