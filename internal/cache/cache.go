package cache

import (
	"fmt"
	"iter"
	"maps"
	"slices"
	"sync"

	"github.com/reverendhomer/zoc/pkg/core"
)

// UnitCache holds every unit currently on the map, keyed by id.
// It mirrors the authoritative simulation and is read by the fog reducers.
type UnitCache struct {
	m     sync.RWMutex
	units map[core.UnitID]core.Unit
}

func NewUnitCache() *UnitCache {
	return &UnitCache{
		units: make(map[core.UnitID]core.Unit),
	}
}

func (c *UnitCache) Reset() {
	c.m.Lock()
	defer c.m.Unlock()
	c.units = make(map[core.UnitID]core.Unit)
}

func (c *UnitCache) Get(id core.UnitID) (core.Unit, bool) {
	c.m.RLock()
	defer c.m.RUnlock()
	u, ok := c.units[id]
	return u, ok
}

// Add registers a new unit. Ids are never reused, so adding an existing id fails.
func (c *UnitCache) Add(u core.Unit) error {
	c.m.Lock()
	defer c.m.Unlock()
	if _, ok := c.units[u.ID]; ok {
		return fmt.Errorf("unit %d already exists", u.ID)
	}
	c.units[u.ID] = u
	return nil
}

// Update replaces a known unit.
func (c *UnitCache) Update(u core.Unit) error {
	c.m.Lock()
	defer c.m.Unlock()
	if _, ok := c.units[u.ID]; !ok {
		return fmt.Errorf("%w: %d", core.ErrUnknownUnitID, u.ID)
	}
	c.units[u.ID] = u
	return nil
}

func (c *UnitCache) Remove(id core.UnitID) {
	c.m.Lock()
	defer c.m.Unlock()
	delete(c.units, id)
}

func (c *UnitCache) Len() int {
	c.m.RLock()
	defer c.m.RUnlock()
	return len(c.units)
}

// All yields a snapshot of the units ordered by id.
func (c *UnitCache) All() iter.Seq[core.Unit] {
	c.m.RLock()
	units := make([]core.Unit, 0, len(c.units))
	for _, id := range slices.Sorted(maps.Keys(c.units)) {
		units = append(units, c.units[id])
	}
	c.m.RUnlock()
	return slices.Values(units)
}
