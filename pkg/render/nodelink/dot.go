package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/procflow/pkg/graph"
)

// Options configures DOT generation.
type Options struct {
	// Detailed adds descriptions and references to labels.
	// When false, nodes show only their ID and edges their description.
	Detailed bool
}

// ToDOT converts a procedure graph to Graphviz DOT source.
// A nil graph yields an empty digraph.
func ToDOT(g *graph.Graph, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	if g == nil {
		buf.WriteString("}\n")
		return buf.String()
	}
	fmt.Fprintf(&buf, "  rankdir=%s;\n", rankdir(g.Direction))
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	if g.ProcedureName != "" {
		fmt.Fprintf(&buf, "  label=%q;\n", g.ProcedureName)
	}
	buf.WriteString("\n")

	ids := make(map[string]bool, len(g.Nodes))
	for _, n := range g.Nodes {
		ids[n.ID] = true
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(nodeAttrs(n, opts.Detailed), ", "))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges {
		if !ids[e.From] || !ids[e.To] {
			continue
		}
		attrs := edgeAttrs(e, opts.Detailed)
		if len(attrs) == 0 {
			fmt.Fprintf(&buf, "  %q -> %q;\n", e.From, e.To)
			continue
		}
		fmt.Fprintf(&buf, "  %q -> %q [%s];\n", e.From, e.To, strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func rankdir(d graph.Direction) string {
	parsed, ok := graph.ParseDirection(string(d))
	switch {
	case !ok:
		return string(graph.DefaultDirection)
	case parsed == graph.DirectionTD:
		return string(graph.DirectionTB)
	}
	return string(parsed)
}

func nodeAttrs(n graph.Node, detailed bool) []string {
	shape, fill := "box", "\"#ffccff\""
	if n.Type == graph.NodeEvent {
		shape, fill = "ellipse", "\"#bbbbff\""
	}
	return []string{
		fmt.Sprintf("label=%q", nodeLabel(n, detailed)),
		"shape=" + shape,
		"fillcolor=" + fill,
	}
}

func nodeLabel(n graph.Node, detailed bool) string {
	if !detailed {
		return n.ID
	}
	var parts []string
	if n.Description != "" {
		parts = append(parts, n.Description)
	}
	if n.SectionReference != "" {
		parts = append(parts, "§ "+n.SectionReference)
	}
	if n.Entity != "" {
		parts = append(parts, "entity: "+n.Entity)
	}
	for _, k := range slices.Sorted(maps.Keys(n.Properties)) {
		parts = append(parts, fmt.Sprintf("%s: %s", k, n.Properties[k]))
	}
	if len(parts) == 0 {
		return n.ID
	}
	return n.ID + "\n" + strings.Join(parts, "\n")
}

func edgeAttrs(e graph.Edge, detailed bool) []string {
	var attrs []string
	label := e.Description
	if detailed && e.Type != "" {
		label = fmt.Sprintf("[%s] %s", e.Type, label)
	}
	if label = strings.TrimSpace(label); label != "" {
		attrs = append(attrs, fmt.Sprintf("label=%q", label))
	}
	if e.Type == graph.EdgeCondition {
		attrs = append(attrs, "style=dashed")
	}
	return attrs
}

// CheckDOT parses and lays out dot with Graphviz, reporting malformed
// source.
func CheckDOT(dot string) error {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	if err := gv.Render(ctx, g, graphviz.SVG, io.Discard); err != nil {
		return fmt.Errorf("layout: %w", err)
	}
	return nil
}
