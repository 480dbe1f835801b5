package graph

import (
	"maps"
	"slices"
	"time"
)

// Node is a protocol state or event.
//
// SectionReference and TextReference tie the node to the specification
// passage it was extracted from. Entity and Properties are optional
// summaries shown inside the node in diagram notation.
type Node struct {
	ID               string
	Type             NodeType
	Description      string
	SectionReference string
	TextReference    string
	Entity           string
	Properties       map[string]string
}

// Edge is a directed trigger or condition between two nodes.
// From and To reference node IDs in the same graph.
type Edge struct {
	From             string
	To               string
	Type             EdgeType
	Description      string
	SectionReference string
	TextReference    string
}

// Graph is an ordered set of nodes and edges describing one procedure.
//
// A nil Nodes or Edges slice means the field is absent; see the package
// documentation. Graph is a plain value: callers replace it wholesale
// rather than editing it concurrently.
type Graph struct {
	Nodes         []Node
	Edges         []Edge
	Direction     Direction
	ProcedureName string
}

// New returns an empty graph with non-nil slices and [DefaultDirection].
func New() *Graph {
	return &Graph{
		Nodes:     []Node{},
		Edges:     []Edge{},
		Direction: DefaultDirection,
	}
}

// NodeByID returns the first node with the given ID.
func (g *Graph) NodeByID(id string) (Node, bool) {
	for _, n := range g.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// NodeIDs returns node IDs in graph order.
func (g *Graph) NodeIDs() []string {
	ids := make([]string, len(g.Nodes))
	for i, n := range g.Nodes {
		ids[i] = n.ID
	}
	return ids
}

// Clone returns a deep copy of g. Nil slices stay nil.
func (g *Graph) Clone() *Graph {
	if g == nil {
		return nil
	}
	out := *g
	if g.Nodes != nil {
		out.Nodes = make([]Node, len(g.Nodes))
		for i, n := range g.Nodes {
			n.Properties = maps.Clone(n.Properties)
			out.Nodes[i] = n
		}
	}
	out.Edges = slices.Clone(g.Edges)
	return &out
}

// Commit records one accepted edit of a procedure graph.
type Commit struct {
	ID      string
	Title   string
	Message string
	Time    time.Time
}

// Procedure is a stored procedure document: the graph extracted from the
// specification, the latest edited graph and the history of accepted edits.
type Procedure struct {
	ID       string
	Name     string
	Entity   string
	Document string
	Section  string
	Original *Graph
	Edited   *Graph
	Commits  []Commit
}

// Current returns the edited graph when one exists, else the original.
func (p *Procedure) Current() *Graph {
	if p.Edited != nil {
		return p.Edited
	}
	return p.Original
}

// Clone returns a deep copy of p.
func (p *Procedure) Clone() *Procedure {
	if p == nil {
		return nil
	}
	out := *p
	out.Original = p.Original.Clone()
	out.Edited = p.Edited.Clone()
	out.Commits = slices.Clone(p.Commits)
	return &out
}
