// Package session holds the simulation state of one game session: the terrain,
// the authoritative unit collection and the unit type table.
package session

import (
	"fmt"
	"iter"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/reverendhomer/zoc/internal/cache"
	"github.com/reverendhomer/zoc/internal/grid"
	"github.com/reverendhomer/zoc/pkg/core"
)

// Context is the state of the current session. The terrain is immutable once
// the session starts; units change as events are applied.
type Context struct {
	mu      sync.RWMutex
	info    core.SessionInfo
	terrain *grid.Map[core.Terrain]
	units   *cache.UnitCache
	types   *cache.TypeTable

	active core.PlayerID
	turn   int
}

// New creates a session on the given terrain. The first player is active.
func New(name string, terrain *grid.Map[core.Terrain], types *cache.TypeTable, players []core.PlayerID) (*Context, error) {
	if len(players) == 0 {
		return nil, fmt.Errorf("session %q has no players", name)
	}
	return &Context{
		info: core.SessionInfo{
			ID:        uuid.NewString(),
			Name:      name,
			MapSize:   terrain.Size(),
			Players:   slices.Clone(players),
			StartTime: time.Now(),
		},
		terrain: terrain,
		units:   cache.NewUnitCache(),
		types:   types,
		active:  players[0],
		turn:    1,
	}, nil
}

// Info returns the session description.
func (c *Context) Info() core.SessionInfo {
	return c.info
}

// Players returns the players in turn order.
func (c *Context) Players() []core.PlayerID {
	return slices.Clone(c.info.Players)
}

// Terrain returns the map.
func (c *Context) Terrain() *grid.Map[core.Terrain] {
	return c.terrain
}

// Unit returns a unit by id.
func (c *Context) Unit(id core.UnitID) (core.Unit, bool) {
	return c.units.Get(id)
}

// Units yields every unit ordered by id.
func (c *Context) Units() iter.Seq[core.Unit] {
	return c.units.All()
}

// UnitType returns a unit type by id.
func (c *Context) UnitType(id core.UnitTypeID) (core.UnitType, bool) {
	return c.types.UnitType(id)
}

// ActivePlayer returns the player whose turn it is.
func (c *Context) ActivePlayer() core.PlayerID {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.active
}

// Turn returns the current turn number, starting at 1.
func (c *Context) Turn() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.turn
}

// AddUnit places a unit on the map before the first event.
func (c *Context) AddUnit(u core.Unit) error {
	if !c.terrain.Contains(u.Pos) {
		return fmt.Errorf("%w: unit %d at %v", core.ErrInvalidPosition, u.ID, u.Pos)
	}
	ut, ok := c.types.UnitType(u.TypeID)
	if !ok {
		return fmt.Errorf("%w: unit %d has type %d", core.ErrUnknownUnitType, u.ID, u.TypeID)
	}
	if u.Count == 0 {
		u.Count = max(ut.Count, 1)
	}
	return c.units.Add(u)
}

// Apply mirrors the state change the simulation makes for ev. It must run
// before the event reaches the fog reducers.
func (c *Context) Apply(ev core.Event) error {
	switch e := ev.(type) {
	case core.MoveEvent:
		unit, ok := c.units.Get(e.UnitID)
		if !ok {
			return fmt.Errorf("%w: move of unit %d", core.ErrUnknownUnitID, e.UnitID)
		}
		dest, ok := e.Path.Destination()
		if !ok {
			return fmt.Errorf("move of unit %d: empty path", e.UnitID)
		}
		for _, n := range e.Path.Nodes {
			if !c.terrain.Contains(n.Pos) {
				return fmt.Errorf("%w: move of unit %d through %v", core.ErrInvalidPosition, e.UnitID, n.Pos)
			}
		}
		unit.Pos = dest
		return c.units.Update(unit)

	case core.EndTurnEvent:
		if !slices.Contains(c.info.Players, e.NewID) {
			return fmt.Errorf("end turn: unknown player %d", e.NewID)
		}
		c.mu.Lock()
		defer c.mu.Unlock()
		c.active = e.NewID
		if e.NewID == c.info.Players[0] {
			c.turn++
		}
		return nil

	case core.CreateUnitEvent:
		return c.AddUnit(core.Unit{
			ID:       e.UnitID,
			PlayerID: e.PlayerID,
			TypeID:   e.TypeID,
			Pos:      e.Pos,
		})

	case core.AttackUnitEvent:
		if e.Killed < 0 {
			return fmt.Errorf("attack on unit %d: negative killed count %d", e.DefenderID, e.Killed)
		}
		defender, ok := c.units.Get(e.DefenderID)
		if !ok {
			return fmt.Errorf("%w: attack on unit %d", core.ErrUnknownUnitID, e.DefenderID)
		}
		defender.Count -= e.Killed
		if defender.Count <= 0 {
			c.units.Remove(defender.ID)
			return nil
		}
		return c.units.Update(defender)

	case core.ShowUnitEvent, core.HideUnitEvent:
		return nil

	default:
		return fmt.Errorf("%w: %T", core.ErrUnclassifiedEvent, ev)
	}
}
