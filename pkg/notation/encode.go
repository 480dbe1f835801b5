package notation

import (
	"bytes"
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/procflow/pkg/errors"
	"github.com/matzehuels/procflow/pkg/graph"
	"github.com/matzehuels/procflow/pkg/observability"
)

// StyleProp is one CSS-like property of a class definition.
type StyleProp struct {
	Key   string
	Value string
}

// ClassDef is a named style emitted as a classDef line.
type ClassDef struct {
	Name  string
	Props []StyleProp
}

// Options configures [Encode].
type Options struct {
	// Direction overrides the graph direction when set.
	Direction graph.Direction
	// Styles are emitted in order. Nil means [DefaultStyles]; an empty
	// non-nil slice emits no class definitions.
	Styles []ClassDef
	// Logger receives warnings about skipped edges. Nil means log.Default().
	Logger *log.Logger
}

// DefaultStyles returns the state and event class definitions.
func DefaultStyles() []ClassDef {
	return []ClassDef{
		{Name: string(graph.NodeState), Props: []StyleProp{
			{"fill", "#f9f"}, {"stroke", "#333"}, {"stroke-width", "2px"}, {"color", "#000"}, {"font-size", "50px"},
		}},
		{Name: string(graph.NodeEvent), Props: []StyleProp{
			{"fill", "#bbf"}, {"stroke", "#333"}, {"stroke-width", "2px"}, {"color", "#000"}, {"font-size", "50px"},
		}},
	}
}

// DefaultOptions returns options with the default styles and no direction
// override.
func DefaultOptions() Options {
	return Options{Styles: DefaultStyles()}
}

// Encode renders g as flowchart notation.
//
// It fails only when g, g.Nodes or g.Edges is nil, or when opts.Direction is
// set to an unknown value. Edges referencing a node ID that is not in the
// graph are skipped with a warning.
//
// Text is written on one line: newlines in IDs, descriptions and
// references become spaces and do not survive a round trip.
func Encode(g *graph.Graph, opts Options) (string, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	if g == nil || g.Nodes == nil || g.Edges == nil {
		logger.Warn("invalid graph data: nodes and edges are required")
		return "", errors.New(errors.ErrCodeInvalidGraph, "invalid graph data: nodes and edges are required")
	}
	if opts.Direction != "" && !opts.Direction.Valid() {
		return "", errors.New(errors.ErrCodeInvalidDirection, "unknown direction %q", opts.Direction)
	}

	start := time.Now()
	styles := opts.Styles
	if styles == nil {
		styles = DefaultStyles()
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "flowchart %s\n", resolveDirection(g, opts, logger))
	if name := strings.TrimSpace(flatten(g.ProcedureName)); name != "" {
		fmt.Fprintf(&buf, "    %%%% %s: %s\n", keyProcedure, name)
	}
	for _, c := range styles {
		writeClassDef(&buf, c)
	}
	buf.WriteString("\n")

	labels := make(map[string]string, len(g.Nodes))
	for i, n := range g.Nodes {
		label := LabelForIndex(i)
		labels[n.ID] = label
		writeNode(&buf, label, n)
	}

	skipped := 0
	for _, e := range g.Edges {
		from, okFrom := labels[e.From]
		to, okTo := labels[e.To]
		if !okFrom || !okTo {
			skipped++
			logger.Warn("skipping edge with unknown endpoint", "from", e.From, "to", e.To)
			continue
		}
		writeEdge(&buf, from, to, e)
	}

	observability.Convert().OnEncode(len(g.Nodes), len(g.Edges)-skipped, skipped, time.Since(start))
	return buf.String(), nil
}

func resolveDirection(g *graph.Graph, opts Options, logger *log.Logger) graph.Direction {
	if opts.Direction != "" {
		return opts.Direction
	}
	if g.Direction != "" {
		if d, ok := graph.ParseDirection(string(g.Direction)); ok {
			return d
		}
		logger.Warn("unknown graph direction, using default", "direction", g.Direction, "default", graph.DefaultDirection)
	}
	return graph.DefaultDirection
}

func writeClassDef(buf *bytes.Buffer, c ClassDef) {
	props := make([]string, len(c.Props))
	for i, p := range c.Props {
		props[i] = p.Key + ":" + p.Value
	}
	fmt.Fprintf(buf, "    classDef %s %s\n", c.Name, strings.Join(props, ","))
}

func writeNode(buf *bytes.Buffer, label string, n graph.Node) {
	content := escape(nodeContent(n))
	if n.Type == graph.NodeEvent {
		fmt.Fprintf(buf, "    %s((\"%s\")):::%s\n", label, content, graph.NodeEvent)
	} else {
		fmt.Fprintf(buf, "    %s[\"%s\"]:::%s\n", label, content, graph.NodeState)
	}
	if n.Description != "" {
		nodeType := n.Type
		if nodeType != graph.NodeEvent {
			nodeType = graph.NodeState
		}
		writeComment(buf, keyType, string(nodeType))
		writeComment(buf, keyDescription, n.Description)
	}
	writeComment(buf, keySectionReference, n.SectionReference)
	writeComment(buf, keyTextReference, n.TextReference)
}

// nodeContent is the text shown inside a node: the ID, then the entity and
// properties, separated by <br>. "&" and "<" in segments are written as
// "&amp;" and "&lt;".
func nodeContent(n graph.Node) string {
	parts := []string{escapeSegment(strings.TrimSpace(n.ID))}
	if n.Entity != "" {
		parts = append(parts, "entity: "+escapeSegment(n.Entity))
	}
	for _, k := range slices.Sorted(maps.Keys(n.Properties)) {
		parts = append(parts, escapeSegment(k)+": "+escapeSegment(n.Properties[k]))
	}
	return strings.Join(parts, "<br>")
}

func writeEdge(buf *bytes.Buffer, from, to string, e graph.Edge) {
	if e.Description != "" {
		fmt.Fprintf(buf, "    %s -->|\"%s\"| %s\n", from, escape(e.Description), to)
	} else {
		fmt.Fprintf(buf, "    %s --> %s\n", from, to)
	}
	writeComment(buf, keyType, string(e.Type))
	writeComment(buf, keyDescription, e.Description)
	writeComment(buf, keySectionReference, e.SectionReference)
	writeComment(buf, keyTextReference, e.TextReference)
}

func writeComment(buf *bytes.Buffer, key, value string) {
	value = strings.TrimSpace(flatten(value))
	if value == "" {
		return
	}
	fmt.Fprintf(buf, "    %%%% %s: %s\n", key, value)
}
