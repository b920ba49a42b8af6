package cache

import (
	"sync"

	"github.com/reverendhomer/zoc/pkg/core"
)

// TypeTable maps unit type ids to their reference data for the current session
type TypeTable struct {
	mu    sync.RWMutex
	types map[core.UnitTypeID]core.UnitType
}

// NewTypeTable creates a new TypeTable
func NewTypeTable() *TypeTable {
	return &TypeTable{
		types: make(map[core.UnitTypeID]core.UnitType),
	}
}

// UnitType retrieves a unit type by id
func (c *TypeTable) UnitType(id core.UnitTypeID) (core.UnitType, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ut, ok := c.types[id]
	return ut, ok
}

// Set stores a unit type under its own id
func (c *TypeTable) Set(ut core.UnitType) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.types[ut.ID] = ut
}

// Reset clears all unit types from the table
func (c *TypeTable) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.types = make(map[core.UnitTypeID]core.UnitType)
}
