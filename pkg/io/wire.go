package io

import (
	"time"

	"github.com/matzehuels/procflow/pkg/graph"
)

type graphDoc struct {
	ProcedureName string `json:"procedure_name,omitempty"`
	Direction     string `json:"direction,omitempty"`
	Nodes         []node `json:"nodes"`
	Edges         []edge `json:"edges"`
}

type node struct {
	ID               string            `json:"id"`
	Type             string            `json:"type"`
	Description      string            `json:"description"`
	SectionReference string            `json:"section_reference,omitempty"`
	TextReference    string            `json:"text_reference,omitempty"`
	Entity           string            `json:"entity,omitempty"`
	Properties       map[string]string `json:"properties,omitempty"`
}

type edge struct {
	From             string `json:"from"`
	FromNode         string `json:"from_node,omitempty"`
	To               string `json:"to"`
	Type             string `json:"type"`
	Description      string `json:"description"`
	SectionReference string `json:"section_reference,omitempty"`
	TextReference    string `json:"text_reference,omitempty"`
}

type procedureDoc struct {
	ID       string    `json:"id"`
	Name     string    `json:"name,omitempty"`
	Entity   string    `json:"entity,omitempty"`
	Document string    `json:"document,omitempty"`
	Section  string    `json:"section,omitempty"`
	Original *graphDoc `json:"original_graph,omitempty"`
	Edited   *graphDoc `json:"edited_graph,omitempty"`
	Commits  []commit  `json:"commits,omitempty"`
}

type commit struct {
	ID      string    `json:"id"`
	Title   string    `json:"title"`
	Message string    `json:"message,omitempty"`
	Time    time.Time `json:"time"`
}

func toGraphDoc(g *graph.Graph) *graphDoc {
	if g == nil {
		return nil
	}
	out := &graphDoc{
		ProcedureName: g.ProcedureName,
		Direction:     string(g.Direction),
	}
	if g.Nodes != nil {
		out.Nodes = make([]node, len(g.Nodes))
		for i, n := range g.Nodes {
			out.Nodes[i] = node{
				ID:               n.ID,
				Type:             string(n.Type),
				Description:      n.Description,
				SectionReference: n.SectionReference,
				TextReference:    n.TextReference,
				Entity:           n.Entity,
				Properties:       n.Properties,
			}
		}
	}
	if g.Edges != nil {
		out.Edges = make([]edge, len(g.Edges))
		for i, e := range g.Edges {
			out.Edges[i] = edge{
				From:             e.From,
				To:               e.To,
				Type:             string(e.Type),
				Description:      e.Description,
				SectionReference: e.SectionReference,
				TextReference:    e.TextReference,
			}
		}
	}
	return out
}

func fromGraphDoc(d *graphDoc) *graph.Graph {
	if d == nil {
		return nil
	}
	g := &graph.Graph{
		ProcedureName: d.ProcedureName,
		Direction:     graph.Direction(d.Direction),
	}
	if d.Nodes != nil {
		g.Nodes = make([]graph.Node, len(d.Nodes))
		for i, n := range d.Nodes {
			g.Nodes[i] = graph.Node{
				ID:               n.ID,
				Type:             graph.NodeType(n.Type),
				Description:      n.Description,
				SectionReference: n.SectionReference,
				TextReference:    n.TextReference,
				Entity:           n.Entity,
				Properties:       n.Properties,
			}
		}
	}
	if d.Edges != nil {
		g.Edges = make([]graph.Edge, len(d.Edges))
		for i, e := range d.Edges {
			from := e.From
			if from == "" {
				from = e.FromNode
			}
			g.Edges[i] = graph.Edge{
				From:             from,
				To:               e.To,
				Type:             graph.EdgeType(e.Type),
				Description:      e.Description,
				SectionReference: e.SectionReference,
				TextReference:    e.TextReference,
			}
		}
	}
	return g
}

func toProcedureDoc(p *graph.Procedure) procedureDoc {
	out := procedureDoc{
		ID:       p.ID,
		Name:     p.Name,
		Entity:   p.Entity,
		Document: p.Document,
		Section:  p.Section,
		Original: toGraphDoc(p.Original),
		Edited:   toGraphDoc(p.Edited),
	}
	for _, c := range p.Commits {
		out.Commits = append(out.Commits, commit{ID: c.ID, Title: c.Title, Message: c.Message, Time: c.Time})
	}
	return out
}

func fromProcedureDoc(d procedureDoc) *graph.Procedure {
	p := &graph.Procedure{
		ID:       d.ID,
		Name:     d.Name,
		Entity:   d.Entity,
		Document: d.Document,
		Section:  d.Section,
		Original: fromGraphDoc(d.Original),
		Edited:   fromGraphDoc(d.Edited),
	}
	for _, c := range d.Commits {
		p.Commits = append(p.Commits, graph.Commit{ID: c.ID, Title: c.Title, Message: c.Message, Time: c.Time})
	}
	return p
}
