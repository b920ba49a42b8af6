package fow

import (
	"iter"
	"maps"
	"slices"

	"github.com/reverendhomer/zoc/internal/grid"
	"github.com/reverendhomer/zoc/pkg/core"
)

const (
	playerOne core.PlayerID = 1
	playerTwo core.PlayerID = 2

	typeRifles core.UnitTypeID = 1
	typeTank   core.UnitTypeID = 2
	typeScout  core.UnitTypeID = 3
)

var (
	riflesType = core.UnitType{ID: typeRifles, Name: "rifles", LosRange: 2, CoverLosRange: 1, Class: core.ClassInfantry}
	tankType   = core.UnitType{ID: typeTank, Name: "tank", LosRange: 1, CoverLosRange: 0, Class: core.ClassVehicle}
	scoutType  = core.UnitType{ID: typeScout, Name: "scout", LosRange: 5, CoverLosRange: 2, Class: core.ClassInfantry}
)

// fakeState is a minimal State backed by plain maps.
type fakeState struct {
	terrain *grid.Map[core.Terrain]
	units   map[core.UnitID]core.Unit
	types   map[core.UnitTypeID]core.UnitType
}

func newFakeState(w, h int) *fakeState {
	return &fakeState{
		terrain: grid.New(core.Size2{W: w, H: h}, core.TerrainPlain),
		units:   map[core.UnitID]core.Unit{},
		types: map[core.UnitTypeID]core.UnitType{
			typeRifles: riflesType,
			typeTank:   tankType,
			typeScout:  scoutType,
		},
	}
}

func (s *fakeState) Terrain() *grid.Map[core.Terrain] { return s.terrain }

func (s *fakeState) Unit(id core.UnitID) (core.Unit, bool) {
	u, ok := s.units[id]
	return u, ok
}

func (s *fakeState) Units() iter.Seq[core.Unit] {
	return func(yield func(core.Unit) bool) {
		for _, id := range slices.Sorted(maps.Keys(s.units)) {
			if !yield(s.units[id]) {
				return
			}
		}
	}
}

func (s *fakeState) UnitType(id core.UnitTypeID) (core.UnitType, bool) {
	ut, ok := s.types[id]
	return ut, ok
}

func (s *fakeState) add(u core.Unit) core.Unit {
	s.units[u.ID] = u
	return u
}
