// Package nodelink exports procedure graphs as Graphviz DOT source.
//
// # Usage
//
//	dot := nodelink.ToDOT(g, nodelink.Options{Detailed: true})
//	if err := nodelink.CheckDOT(dot); err != nil {
//	    log.Fatal(err)
//	}
//
// # Options
//
// The [Options] struct controls DOT generation:
//
//   - Detailed: node labels include the description, section reference and
//     entity; edge labels include the edge type
//
// # DOT Format
//
// States are rounded boxes, events are ellipses. Edges are labelled with
// their description and drawn dashed for conditions. The graph direction
// maps onto rankdir (TD becomes TB). Edges with an endpoint missing from
// the node list are dropped, like in notation encoding.
//
// # Dependencies
//
// [CheckDOT] uses [github.com/goccy/go-graphviz] to parse and lay out the
// generated source in-process.
package nodelink
