package notation

import (
	"fmt"
	"strings"
	"time"

	"github.com/matzehuels/procflow/pkg/errors"
	"github.com/matzehuels/procflow/pkg/graph"
	"github.com/matzehuels/procflow/pkg/observability"
)

// Report describes what the lenient decoder tolerated.
type Report struct {
	// Coercions counts Type comments that named an unknown type.
	Coercions int
	// UnresolvedLabels lists edge endpoint labels with no node definition,
	// in order of first appearance.
	UnresolvedLabels []string
	// SkippedLines holds the 1-based numbers of non-blank lines that were
	// not recognised.
	SkippedLines []int
}

// LineError is an unrecognised line reported by [DecodeStrict].
type LineError struct {
	Line    int
	Content string
}

func (e LineError) Error() string {
	return fmt.Sprintf("Line %d: Invalid node or edge format - \"%s\"", e.Line, e.Content)
}

type scanState int

const (
	stateStart scanState = iota
	stateSawNode
	stateSawEdge
)

// decoder holds the single-pass scanner state. current indexes into the
// nodes or edges slice selected by state.
type decoder struct {
	g       *graph.Graph
	labels  map[string]string
	state   scanState
	current int
	sawDir  bool
	report  Report
}

// Decode parses flowchart notation into a graph. It never fails: anything
// it cannot interpret is skipped or coerced. See [DecodeWithReport].
func Decode(text string) *graph.Graph {
	g, _ := DecodeWithReport(text)
	return g
}

// DecodeWithReport is like [Decode] and also reports what was tolerated.
func DecodeWithReport(text string) (*graph.Graph, Report) {
	start := time.Now()
	d := &decoder{
		g:      graph.New(),
		labels: make(map[string]string),
	}
	for i, line := range splitLines(text) {
		d.scanLine(i+1, line)
	}
	observability.Convert().OnDecode(len(d.g.Nodes), len(d.g.Edges), d.report.Coercions, time.Since(start))
	return d.g, d.report
}

// DecodeStrict decodes text and fails with an INVALID_NOTATION error listing
// every unrecognised non-comment line. The partially decoded graph is
// returned alongside the error.
func DecodeStrict(text string) (*graph.Graph, error) {
	g, report := DecodeWithReport(text)
	if len(report.SkippedLines) == 0 {
		return g, nil
	}
	lines := splitLines(text)
	details := make([]string, 0, len(report.SkippedLines))
	for _, n := range report.SkippedLines {
		if strings.HasPrefix(lines[n-1], "%%") {
			continue
		}
		details = append(details, LineError{Line: n, Content: lines[n-1]}.Error())
	}
	if len(details) == 0 {
		return g, nil
	}
	return g, errors.New(errors.ErrCodeInvalidNotation, "%d unrecognised line(s)", len(details)).WithDetails(details)
}

func (d *decoder) scanLine(n int, line string) {
	switch {
	case line == "":
	case isHeader(line):
		d.header(line)
	case classDefRe.MatchString(line):
	case d.node(line):
	case d.edge(line):
	case strings.HasPrefix(line, "%%"):
		if !d.comment(line) {
			d.report.SkippedLines = append(d.report.SkippedLines, n)
		}
	default:
		d.report.SkippedLines = append(d.report.SkippedLines, n)
	}
}

func (d *decoder) header(line string) {
	if d.sawDir {
		return
	}
	m := headerRe.FindStringSubmatch(line)
	if m == nil || m[1] == "" {
		return
	}
	if dir, ok := graph.ParseDirection(m[1]); ok {
		d.g.Direction = dir
		d.sawDir = true
	}
}

func (d *decoder) node(line string) bool {
	m := looseNodeRe.FindStringSubmatch(line)
	if m == nil {
		return false
	}
	label, open, content, class := m[1], m[2], m[3], m[6]
	if content == "" {
		content = strings.TrimSpace(m[4])
	} else {
		content = unescape(content)
	}

	var n graph.Node
	parseContent(content, &n)
	switch {
	case class != "":
		t, ok := graph.ParseNodeType(class)
		if !ok {
			d.coerce("node class", class)
		}
		n.Type = t
	case open == "((":
		n.Type = graph.NodeEvent
	default:
		n.Type = graph.NodeState
	}

	d.labels[label] = n.ID
	d.g.Nodes = append(d.g.Nodes, n)
	d.state, d.current = stateSawNode, len(d.g.Nodes)-1
	return true
}

// parseContent splits node content on <br>: the first segment is the ID,
// "entity: x" sets the entity and other "key: value" segments become
// properties. Segments are unescaped after splitting.
func parseContent(content string, n *graph.Node) {
	segments := brRe.Split(content, -1)
	n.ID = unescapeSegment(strings.TrimSpace(segments[0]))
	for _, seg := range segments[1:] {
		key, value, ok := strings.Cut(seg, ":")
		if !ok {
			continue
		}
		key, value = strings.TrimSpace(key), strings.TrimSpace(value)
		if key == "" {
			continue
		}
		key, value = unescapeSegment(key), unescapeSegment(value)
		if key == "entity" {
			n.Entity = value
			continue
		}
		if n.Properties == nil {
			n.Properties = make(map[string]string)
		}
		n.Properties[key] = value
	}
}

func (d *decoder) edge(line string) bool {
	m := looseEdgeRe.FindStringSubmatch(line)
	if m == nil {
		return false
	}
	desc := unescape(m[2])
	if m[2] == "" {
		desc = m[3]
	}
	desc = strings.TrimSpace(htmlTagRe.ReplaceAllString(desc, ""))

	d.g.Edges = append(d.g.Edges, graph.Edge{
		From:        d.resolve(m[1]),
		To:          d.resolve(m[4]),
		Type:        graph.EdgeTrigger,
		Description: desc,
	})
	d.state, d.current = stateSawEdge, len(d.g.Edges)-1
	return true
}

func (d *decoder) resolve(label string) string {
	if id, ok := d.labels[label]; ok {
		return id
	}
	for _, l := range d.report.UnresolvedLabels {
		if l == label {
			return label
		}
	}
	d.report.UnresolvedLabels = append(d.report.UnresolvedLabels, label)
	return label
}

// comment applies a metadata comment and reports whether it was recognised.
func (d *decoder) comment(line string) bool {
	m := commentRe.FindStringSubmatch(line)
	if m == nil {
		return false
	}
	key, value := m[1], strings.TrimSpace(m[2])

	if strings.EqualFold(key, keyProcedure) {
		if d.g.ProcedureName == "" {
			d.g.ProcedureName = value
		}
		return true
	}

	switch d.state {
	case stateSawNode:
		return d.applyNode(&d.g.Nodes[d.current], key, value)
	case stateSawEdge:
		return d.applyEdge(&d.g.Edges[d.current], key, value)
	}
	return false
}

func (d *decoder) applyNode(n *graph.Node, key, value string) bool {
	switch {
	case strings.EqualFold(key, keyType):
		t, ok := graph.ParseNodeType(value)
		if !ok {
			d.coerce("node type", value)
		}
		n.Type = t
	case strings.EqualFold(key, keyDescription):
		n.Description = value
	case strings.EqualFold(key, keySectionReference):
		n.SectionReference = value
	case strings.EqualFold(key, keyTextReference):
		n.TextReference = value
	default:
		return false
	}
	return true
}

func (d *decoder) applyEdge(e *graph.Edge, key, value string) bool {
	switch {
	case strings.EqualFold(key, keyType):
		t, ok := graph.ParseEdgeType(value)
		if !ok {
			d.coerce("edge type", value)
		}
		e.Type = t
	case strings.EqualFold(key, keyDescription):
		e.Description = value
	case strings.EqualFold(key, keySectionReference):
		e.SectionReference = value
	case strings.EqualFold(key, keyTextReference):
		e.TextReference = value
	default:
		return false
	}
	return true
}

func (d *decoder) coerce(kind, raw string) {
	d.report.Coercions++
	observability.Convert().OnCoercion(kind, raw)
}
