// Package validate checks procedure graphs against the graph schema.
//
// [Graph] validates an in-memory graph; [JSON] validates a raw JSON document
// and additionally reports fields of the wrong JSON type. Both apply the same
// rules and produce the same messages:
//
//   - nodes and edges must be present arrays; otherwise validation stops
//     with that single error
//   - every node needs an id, a type of state or event and a non-empty
//     description
//   - every edge needs from, to, a type of trigger or condition and a
//     non-empty description
//   - edge endpoints must name an existing node, reported once per endpoint
//   - node ids must be unique
//
// Messages are addressed by array index, e.g.
//
//	Invalid node at index 2: Missing required field: id, Missing or invalid description: must be a string
//	Invalid edge at index 0: 'to' node "S2" does not exist
package validate
