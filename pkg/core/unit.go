// pkg/core/unit.go
package core

import "fmt"

// UnitClass decides how a unit is spotted on partially visible tiles.
type UnitClass uint8

const (
	ClassInfantry UnitClass = iota
	ClassVehicle
)

func (c UnitClass) String() string {
	switch c {
	case ClassInfantry:
		return "infantry"
	case ClassVehicle:
		return "vehicle"
	default:
		return fmt.Sprintf("class(%d)", uint8(c))
	}
}

// ParseUnitClass converts a class name as written in scenario files.
func ParseUnitClass(s string) (UnitClass, error) {
	switch s {
	case "infantry":
		return ClassInfantry, nil
	case "vehicle":
		return ClassVehicle, nil
	default:
		return 0, fmt.Errorf("unknown unit class %q", s)
	}
}

// UnitType is read-only reference data shared by all units of a kind.
type UnitType struct {
	ID   UnitTypeID
	Name string

	// LosRange is the maximum sight distance in tiles.
	LosRange int
	// CoverLosRange is the distance within which every tile is seen
	// at Excellent quality regardless of terrain.
	CoverLosRange int

	Class UnitClass
	// Count is the number of soldiers or vehicles a fresh unit starts with.
	Count int
}

// Unit is a unit on the map. ID is the simulation's identifier for it.
type Unit struct {
	ID       UnitID
	PlayerID PlayerID
	TypeID   UnitTypeID
	Pos      MapPos
	Count    int
}
