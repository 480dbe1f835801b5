package nodelink

import (
	"strings"
	"testing"

	"github.com/matzehuels/procflow/pkg/graph"
)

func sampleGraph() *graph.Graph {
	return &graph.Graph{
		ProcedureName: "Registration",
		Direction:     graph.DirectionTD,
		Nodes: []graph.Node{
			{ID: "IDLE", Type: graph.NodeState, Description: "idle", SectionReference: "5.1"},
			{ID: "GO", Type: graph.NodeEvent, Description: `say "go"`},
		},
		Edges: []graph.Edge{
			{From: "IDLE", To: "GO", Type: graph.EdgeTrigger, Description: "start"},
			{From: "GO", To: "IDLE", Type: graph.EdgeCondition},
			{From: "GO", To: "missing", Type: graph.EdgeTrigger},
		},
	}
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(sampleGraph(), Options{})

	for _, want := range []string{
		"digraph G {\n",
		"  rankdir=TB;\n",
		"  label=\"Registration\";\n",
		`  "IDLE" [label="IDLE", shape=box, fillcolor="#ffccff"];`,
		`  "GO" [label="GO", shape=ellipse, fillcolor="#bbbbff"];`,
		`  "IDLE" -> "GO" [label="start"];`,
		`  "GO" -> "IDLE" [style=dashed];`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() missing %q:\n%s", want, dot)
		}
	}
	if strings.Contains(dot, "missing") {
		t.Error("ToDOT() should drop edges to unknown nodes")
	}
}

func TestToDOTDetailed(t *testing.T) {
	dot := ToDOT(sampleGraph(), Options{Detailed: true})
	for _, want := range []string{
		`label="IDLE\nidle\n§ 5.1"`,
		`label="GO\nsay \"go\""`,
		`label="[trigger] start"`,
		`label="[condition]"`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT(detailed) missing %q:\n%s", want, dot)
		}
	}
}

func TestRankdir(t *testing.T) {
	tests := []struct {
		in   graph.Direction
		want string
	}{
		{graph.DirectionTD, "TB"},
		{graph.DirectionTB, "TB"},
		{graph.DirectionBT, "BT"},
		{graph.DirectionRL, "RL"},
		{"lr", "LR"},
		{"", "LR"},
		{"XY", "LR"},
	}
	for _, tt := range tests {
		if got := rankdir(tt.in); got != tt.want {
			t.Errorf("rankdir(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestToDOTNil(t *testing.T) {
	if got := ToDOT(nil, Options{}); got != "digraph G {\n}\n" {
		t.Errorf("ToDOT(nil) = %q", got)
	}
}

func TestCheckDOT(t *testing.T) {
	if err := CheckDOT(ToDOT(sampleGraph(), Options{Detailed: true})); err != nil {
		t.Errorf("CheckDOT(ToDOT()) error: %v", err)
	}
	if err := CheckDOT("digraph G { a -> "); err == nil {
		t.Error("CheckDOT() should reject malformed source")
	}
}
