// Package graph defines the procedure graph model shared by the notation
// converter, the validators and the JSON codecs.
//
// # Overview
//
// A [Graph] describes one 3GPP procedure as a state machine:
//
//   - [Node]: a protocol state or event, keyed by a unique ID
//   - [Edge]: a directed trigger or condition between two nodes
//   - [Direction]: the flowchart layout direction (TD, TB, BT, LR, RL)
//
// Node order is significant: it drives label assignment in the notation
// encoder and therefore round-trip stability.
//
// # Absent vs Empty
//
// A nil Nodes or Edges slice means the field was absent from the source
// document. Encoders and validators treat that as a whole-graph failure,
// while empty (non-nil) slices are a valid empty graph. Use [New] to get a
// graph with empty slices.
//
// # Enumerations
//
// [ParseNodeType], [ParseEdgeType] and [ParseDirection] map raw strings onto
// the enumerations. The type parsers never fail: unknown values fall back to
// [NodeState] or [EdgeTrigger], and the boolean result reports whether the
// input was recognized so callers can count coercions.
//
// # Procedures
//
// A [Procedure] wraps the original graph extracted from the specification
// together with the edited graph and the commit history of accepted edits.
package graph
