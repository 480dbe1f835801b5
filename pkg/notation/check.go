package notation

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/matzehuels/procflow/pkg/errors"
	"github.com/matzehuels/procflow/pkg/graph"
	"github.com/matzehuels/procflow/pkg/observability"
)

// CheckResult is the outcome of [Check].
type CheckResult struct {
	Valid  bool
	Errors []string
}

// Err returns nil when the text is valid, else an INVALID_NOTATION error
// carrying every message as a detail.
func (r CheckResult) Err() error {
	if r.Valid {
		return nil
	}
	return errors.New(errors.ErrCodeInvalidNotation, "syntax check failed with %d error(s)", len(r.Errors)).
		WithDetails(slices.Clone(r.Errors))
}

type elementKind string

const (
	kindNode elementKind = "node"
	kindEdge elementKind = "edge"
)

// element is a node or edge definition awaiting its metadata comments.
type element struct {
	kind  elementKind
	name  string // node label, or "A --> B" for edges
	line  int
	class string // declared :::class, nodes only
	seen  map[string]bool
}

type checker struct {
	errs      []string
	current   *element
	types     map[string]string // element name -> first declared Type
	defined   map[string]bool   // node labels
	endpoints []endpointRef
	sawHeader bool
}

type endpointRef struct {
	label string
	line  int
}

// Check validates user-authored notation line by line. It reports every
// problem it finds, never stopping at the first.
//
// Type conflicts are tracked per element rather than per definition line:
// a node by its label, an edge by "A --> B". Two differently written lines
// defining the same node therefore conflict when their Types differ.
func Check(text string) CheckResult {
	start := time.Now()
	c := &checker{
		types:   make(map[string]string),
		defined: make(map[string]bool),
	}
	for i, line := range splitLines(text) {
		c.line(i+1, line)
	}
	c.flush()
	for _, ref := range c.endpoints {
		if !c.defined[ref.label] {
			c.errorf(ref.line, "Edge references undefined node %q", ref.label)
		}
	}
	if !c.sawHeader {
		c.errs = append([]string{"Missing flowchart declaration"}, c.errs...)
	}

	observability.Convert().OnCheck(len(c.errs), time.Since(start))
	return CheckResult{Valid: len(c.errs) == 0, Errors: c.errs}
}

func (c *checker) errorf(line int, format string, args ...any) {
	c.errs = append(c.errs, fmt.Sprintf("Line %d: ", line)+fmt.Sprintf(format, args...))
}

func (c *checker) line(n int, line string) {
	switch {
	case line == "":
	case strings.HasPrefix(line, "flowchart"):
		c.sawHeader = true
		c.header(n, line)
	case classDefRe.MatchString(line):
	case strings.HasPrefix(line, "%%"):
		c.comment(n, line)
	default:
		if !c.node(n, line) && !c.edge(n, line) {
			c.errorf(n, "Invalid node or edge format - \"%s\"", line)
		}
	}
}

func (c *checker) header(n int, line string) {
	fields := strings.Fields(line)
	if fields[0] != "flowchart" || len(fields) != 2 || !graph.Direction(fields[1]).Valid() {
		c.errorf(n, "Invalid flowchart direction - \"%s\"", line)
	}
}

func (c *checker) node(n int, line string) bool {
	m := strictNodeRe.FindStringSubmatch(line)
	if m == nil {
		return false
	}
	label, class := m[1], m[4]
	isEvent := strings.HasPrefix(line[len(label):], "((")

	switch graph.NodeType(class) {
	case "":
	case graph.NodeState:
		if isEvent {
			c.errorf(n, "Node declared as state must use square brackets - \"%s\"", line)
		}
	case graph.NodeEvent:
		if !isEvent {
			c.errorf(n, "Node declared as event must use double parentheses - \"%s\"", line)
		}
	default:
		c.errorf(n, "Unknown node class %q - \"%s\"", class, line)
	}

	c.defined[label] = true
	c.begin(&element{kind: kindNode, name: label, line: n, class: class})
	return true
}

func (c *checker) edge(n int, line string) bool {
	m := strictEdgeRe.FindStringSubmatch(line)
	if m == nil {
		return false
	}
	from, to := m[1], m[3]
	c.endpoints = append(c.endpoints, endpointRef{from, n}, endpointRef{to, n})
	c.begin(&element{kind: kindEdge, name: from + " --> " + to, line: n})
	return true
}

func (c *checker) begin(e *element) {
	c.flush()
	e.seen = make(map[string]bool, len(metadataKeys))
	c.current = e
}

// flush reports the metadata the current element never received.
func (c *checker) flush() {
	e := c.current
	if e == nil {
		return
	}
	for _, key := range metadataKeys {
		if !e.seen[key] {
			c.errorf(e.line, "Missing %s for %s %q", key, e.kind, e.name)
		}
	}
	c.current = nil
}

func (c *checker) comment(n int, line string) {
	m := commentRe.FindStringSubmatch(line)
	if m != nil && m[1] == keyProcedure {
		return
	}
	if m == nil || !slices.Contains(metadataKeys, m[1]) {
		c.errorf(n, "Invalid comment format - \"%s\" (expected one of %s)", line, strings.Join(metadataKeys, ", "))
		return
	}
	e := c.current
	if e == nil {
		c.errorf(n, "Metadata comment without a preceding node or edge - \"%s\"", line)
		return
	}

	key, value := m[1], strings.TrimSpace(m[2])
	if value != "" {
		e.seen[key] = true
	}
	if key != keyType || value == "" {
		return
	}
	c.checkType(n, e, value)
}

func (c *checker) checkType(n int, e *element, value string) {
	switch e.kind {
	case kindNode:
		if !graph.NodeType(value).Valid() {
			c.errorf(n, "Invalid Type %q for node %q: must be state or event", value, e.name)
		} else if e.class != "" && graph.NodeType(e.class).Valid() && e.class != value {
			c.errorf(n, "Type %q does not match class %q for node %q", value, e.class, e.name)
		}
	case kindEdge:
		if !graph.EdgeType(value).Valid() {
			c.errorf(n, "Invalid Type %q for edge %q: must be trigger or condition", value, e.name)
		}
	}

	key := string(e.kind) + ":" + e.name
	if prev, ok := c.types[key]; ok && prev != value {
		c.errorf(n, "Type conflict for %s %q: %q was declared before, got %q", e.kind, e.name, prev, value)
		return
	}
	c.types[key] = value
}
