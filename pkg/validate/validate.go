package validate

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/matzehuels/procflow/pkg/errors"
	"github.com/matzehuels/procflow/pkg/graph"
	"github.com/matzehuels/procflow/pkg/observability"
)

// Messages for whole-document failures.
const (
	msgNotObject  = "Invalid data: must be an object"
	msgNodesArray = "Invalid graph content: nodes must be an array"
	msgEdgesArray = "Invalid graph content: edges must be an array"
)

// Result is the outcome of a validation.
type Result struct {
	Valid  bool
	Errors []string
}

// Error joins all messages with newlines.
func (r Result) Error() string { return strings.Join(r.Errors, "\n") }

// Err returns nil for a valid result, else an INVALID_GRAPH error carrying
// every message as a detail.
func (r Result) Err() error {
	if r.Valid {
		return nil
	}
	return errors.New(errors.ErrCodeInvalidGraph, "graph validation failed with %d error(s)", len(r.Errors)).
		WithDetails(slices.Clone(r.Errors))
}

// field is a string-valued item field as found in the input.
type field struct {
	value     string
	present   bool
	wrongType bool
}

func stringField(s string) field { return field{value: s, present: s != ""} }

type nodeItem struct {
	notObject     bool
	id, typ, desc field
}

type edgeItem struct {
	notObject           bool
	from, to, typ, desc field
}

// Graph validates g. A nil graph, or a nil Nodes or Edges slice, fails
// immediately with a single error.
func Graph(g *graph.Graph) Result {
	start := time.Now()
	if g == nil {
		return finish(start, []string{msgNotObject})
	}
	if g.Nodes == nil {
		return finish(start, []string{msgNodesArray})
	}
	if g.Edges == nil {
		return finish(start, []string{msgEdgesArray})
	}

	nodes := make([]nodeItem, len(g.Nodes))
	for i, n := range g.Nodes {
		nodes[i] = nodeItem{id: stringField(n.ID), typ: stringField(string(n.Type)), desc: stringField(n.Description)}
	}
	edges := make([]edgeItem, len(g.Edges))
	for i, e := range g.Edges {
		edges[i] = edgeItem{
			from: stringField(e.From),
			to:   stringField(e.To),
			typ:  stringField(string(e.Type)),
			desc: stringField(e.Description),
		}
	}
	return finish(start, check(nodes, edges))
}

func finish(start time.Time, errs []string) Result {
	observability.Convert().OnValidate(len(errs), time.Since(start))
	return Result{Valid: len(errs) == 0, Errors: errs}
}

func check(nodes []nodeItem, edges []edgeItem) []string {
	var errs []string
	firstIndex := make(map[string]int, len(nodes))

	for i, n := range nodes {
		if n.notObject {
			errs = append(errs, fmt.Sprintf("Invalid node at index %d: must be an object", i))
			continue
		}
		var reasons []string
		reasons = appendID(reasons, "id", n.id)
		switch {
		case !n.typ.present:
			reasons = append(reasons, "Missing required field: type")
		case n.typ.wrongType || !graph.NodeType(n.typ.value).Valid():
			reasons = append(reasons, fmt.Sprintf("Invalid node type: %s. Must be either 'state' or 'event'", n.typ.value))
		}
		reasons = appendDescription(reasons, n.desc)

		if n.id.present && !n.id.wrongType {
			if j, dup := firstIndex[n.id.value]; dup {
				reasons = append(reasons, fmt.Sprintf("Duplicate id %q (first defined at index %d)", n.id.value, j))
			} else {
				firstIndex[n.id.value] = i
			}
		}
		if len(reasons) > 0 {
			errs = append(errs, fmt.Sprintf("Invalid node at index %d: %s", i, strings.Join(reasons, ", ")))
		}
	}

	for i, e := range edges {
		if e.notObject {
			errs = append(errs, fmt.Sprintf("Invalid edge at index %d: must be an object", i))
			continue
		}
		var reasons []string
		reasons = appendID(reasons, "from", e.from)
		reasons = appendID(reasons, "to", e.to)
		switch {
		case !e.typ.present:
			reasons = append(reasons, "Missing required field: type")
		case e.typ.wrongType || !graph.EdgeType(e.typ.value).Valid():
			reasons = append(reasons, fmt.Sprintf("Invalid edge type: %s. Must be either 'trigger' or 'condition'", e.typ.value))
		}
		reasons = appendDescription(reasons, e.desc)
		if len(reasons) > 0 {
			errs = append(errs, fmt.Sprintf("Invalid edge at index %d: %s", i, strings.Join(reasons, ", ")))
		}

		for _, end := range []struct {
			name string
			f    field
		}{{"from", e.from}, {"to", e.to}} {
			if _, ok := firstIndex[end.f.value]; !ok || end.f.wrongType {
				errs = append(errs, fmt.Sprintf("Invalid edge at index %d: '%s' node %q does not exist", i, end.name, end.f.value))
			}
		}
	}
	return errs
}

func appendID(reasons []string, name string, f field) []string {
	switch {
	case !f.present:
		return append(reasons, "Missing required field: "+name)
	case f.wrongType:
		return append(reasons, fmt.Sprintf("Invalid %s: must be a string", name))
	}
	return reasons
}

func appendDescription(reasons []string, f field) []string {
	if !f.present || f.wrongType {
		return append(reasons, "Missing or invalid description: must be a string")
	}
	return reasons
}
