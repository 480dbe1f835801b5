package graph

import "strings"

// Direction is the flowchart layout direction.
type Direction string

// Supported layout directions.
const (
	DirectionTD Direction = "TD" // top-down
	DirectionTB Direction = "TB" // top-bottom (alias of TD)
	DirectionBT Direction = "BT" // bottom-top
	DirectionLR Direction = "LR" // left-right
	DirectionRL Direction = "RL" // right-left
)

// DefaultDirection is used when neither the graph nor the caller picks one.
const DefaultDirection = DirectionLR

var directions = []Direction{DirectionTD, DirectionTB, DirectionBT, DirectionLR, DirectionRL}

// ParseDirection maps raw onto a Direction, ignoring case and surrounding space.
// The boolean is false when raw is not a known direction.
func ParseDirection(raw string) (Direction, bool) {
	d := Direction(strings.ToUpper(strings.TrimSpace(raw)))
	for _, known := range directions {
		if d == known {
			return d, true
		}
	}
	return "", false
}

// Valid reports whether d is one of the supported directions.
func (d Direction) Valid() bool {
	for _, known := range directions {
		if d == known {
			return true
		}
	}
	return false
}

// NodeType distinguishes protocol states from events.
type NodeType string

// Node types.
const (
	NodeState NodeType = "state"
	NodeEvent NodeType = "event"
)

// ParseNodeType maps raw onto a NodeType. Unknown input yields NodeState
// and false, so callers can observe the coercion.
func ParseNodeType(raw string) (NodeType, bool) {
	switch NodeType(strings.ToLower(strings.TrimSpace(raw))) {
	case NodeState:
		return NodeState, true
	case NodeEvent:
		return NodeEvent, true
	}
	return NodeState, false
}

// Valid reports whether t is exactly "state" or "event".
func (t NodeType) Valid() bool { return t == NodeState || t == NodeEvent }

// EdgeType distinguishes triggers from conditions.
type EdgeType string

// Edge types.
const (
	EdgeTrigger   EdgeType = "trigger"
	EdgeCondition EdgeType = "condition"
)

// ParseEdgeType maps raw onto an EdgeType. Unknown input yields EdgeTrigger
// and false.
func ParseEdgeType(raw string) (EdgeType, bool) {
	switch EdgeType(strings.ToLower(strings.TrimSpace(raw))) {
	case EdgeTrigger:
		return EdgeTrigger, true
	case EdgeCondition:
		return EdgeCondition, true
	}
	return EdgeTrigger, false
}

// Valid reports whether t is exactly "trigger" or "condition".
func (t EdgeType) Valid() bool { return t == EdgeTrigger || t == EdgeCondition }
