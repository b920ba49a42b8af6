// pkg/core/errors.go
package core

import "errors"

var (
	// ErrInvalidPosition is returned for a query or sweep target outside the map.
	ErrInvalidPosition = errors.New("invalid position")

	// ErrUnknownUnitID means an event references a unit absent from the unit
	// collection. The event stream and the collection have desynchronized; callers
	// must treat it as fatal.
	ErrUnknownUnitID = errors.New("unknown unit id")

	// ErrUnknownUnitType means a unit references a type missing from the type table.
	ErrUnknownUnitType = errors.New("unknown unit type")

	// ErrUnclassifiedEvent is returned for an event kind that has not been
	// classified as either affecting visibility or inert.
	ErrUnclassifiedEvent = errors.New("unclassified event kind")
)
