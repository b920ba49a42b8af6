// pkg/core/events.go
package core

// EventKind names an event type on the wire and in the dispatcher.
type EventKind string

const (
	KindMove       EventKind = "move"
	KindEndTurn    EventKind = "end_turn"
	KindCreateUnit EventKind = "create_unit"
	KindAttackUnit EventKind = "attack_unit"
	KindShowUnit   EventKind = "show_unit"
	KindHideUnit   EventKind = "hide_unit"
)

// EventKinds lists every kind the simulation emits.
var EventKinds = []EventKind{
	KindMove,
	KindEndTurn,
	KindCreateUnit,
	KindAttackUnit,
	KindShowUnit,
	KindHideUnit,
}

// Event is a single entry of the simulation's event log.
type Event interface {
	Kind() EventKind
}

// PathNode is one waypoint of a move. Cost is the move points spent to reach it.
type PathNode struct {
	Pos  MapPos `json:"pos" yaml:"pos"`
	Cost int    `json:"cost,omitempty" yaml:"cost,omitempty"`
}

// Path is an ordered route, starting tile first.
type Path struct {
	Nodes []PathNode `json:"nodes" yaml:"nodes"`
}

// NewPath builds a zero-cost path through the given positions.
func NewPath(positions ...MapPos) Path {
	nodes := make([]PathNode, len(positions))
	for i, p := range positions {
		nodes[i] = PathNode{Pos: p}
	}
	return Path{Nodes: nodes}
}

// Destination returns the last waypoint. ok is false for an empty path.
func (p Path) Destination() (MapPos, bool) {
	if len(p.Nodes) == 0 {
		return MapPos{}, false
	}
	return p.Nodes[len(p.Nodes)-1].Pos, true
}

// MoveEvent moves a unit along Path.
type MoveEvent struct {
	UnitID UnitID
	Path   Path
}

// EndTurnEvent passes control from OldID to NewID.
type EndTurnEvent struct {
	OldID PlayerID
	NewID PlayerID
}

// CreateUnitEvent places a new unit on the map.
type CreateUnitEvent struct {
	UnitID   UnitID
	PlayerID PlayerID
	TypeID   UnitTypeID
	Pos      MapPos
}

// AttackUnitEvent reports an attack. Killed is the number of soldiers or
// vehicles the defender lost.
type AttackUnitEvent struct {
	AttackerID UnitID
	DefenderID UnitID
	Killed     int
}

// ShowUnitEvent reveals an enemy unit to the players it concerns.
type ShowUnitEvent struct {
	UnitID   UnitID
	PlayerID PlayerID
	TypeID   UnitTypeID
	Pos      MapPos
}

// HideUnitEvent hides a previously shown enemy unit.
type HideUnitEvent struct {
	UnitID UnitID
}

func (MoveEvent) Kind() EventKind       { return KindMove }
func (EndTurnEvent) Kind() EventKind    { return KindEndTurn }
func (CreateUnitEvent) Kind() EventKind { return KindCreateUnit }
func (AttackUnitEvent) Kind() EventKind { return KindAttackUnit }
func (ShowUnitEvent) Kind() EventKind   { return KindShowUnit }
func (HideUnitEvent) Kind() EventKind   { return KindHideUnit }
