package notation

import (
	"io"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/procflow/pkg/errors"
	"github.com/matzehuels/procflow/pkg/graph"
	"github.com/matzehuels/procflow/pkg/observability"
)

func quietOptions() Options {
	return Options{Styles: []ClassDef{}, Logger: log.New(io.Discard)}
}

func registrationGraph() *graph.Graph {
	return &graph.Graph{
		ProcedureName: "Initial Registration",
		Direction:     graph.DirectionLR,
		Nodes: []graph.Node{
			{
				ID:               "5GMM-DEREGISTERED",
				Type:             graph.NodeState,
				Description:      "UE is not registered",
				SectionReference: "5.5.1.2",
				TextReference:    "The UE is deregistered",
			},
			{
				ID:               "REGISTRATION REQUEST",
				Type:             graph.NodeEvent,
				Description:      "UE sends REGISTRATION REQUEST",
				SectionReference: "5.5.1.2.2",
				TextReference:    "The UE shall send",
			},
		},
		Edges: []graph.Edge{
			{
				From:             "5GMM-DEREGISTERED",
				To:               "REGISTRATION REQUEST",
				Type:             graph.EdgeTrigger,
				Description:      "UE initiates registration",
				SectionReference: "5.5.1.2.2",
				TextReference:    "initiates the registration procedure",
			},
		},
	}
}

func TestEncode(t *testing.T) {
	got, err := Encode(registrationGraph(), quietOptions())
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}

	want := `flowchart LR
    %% Procedure: Initial Registration

    A["5GMM-DEREGISTERED"]:::state
    %% Type: state
    %% Description: UE is not registered
    %% Section_Reference: 5.5.1.2
    %% Text_Reference: The UE is deregistered
    B(("REGISTRATION REQUEST")):::event
    %% Type: event
    %% Description: UE sends REGISTRATION REQUEST
    %% Section_Reference: 5.5.1.2.2
    %% Text_Reference: The UE shall send
    A -->|"UE initiates registration"| B
    %% Type: trigger
    %% Description: UE initiates registration
    %% Section_Reference: 5.5.1.2.2
    %% Text_Reference: initiates the registration procedure
`
	if got != want {
		t.Errorf("Encode() =\n%s\nwant\n%s", got, want)
	}
}

func TestEncodeDefaultStyles(t *testing.T) {
	got, err := Encode(registrationGraph(), Options{Logger: log.New(io.Discard)})
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	for _, line := range []string{
		"    classDef state fill:#f9f,stroke:#333,stroke-width:2px,color:#000,font-size:50px\n",
		"    classDef event fill:#bbf,stroke:#333,stroke-width:2px,color:#000,font-size:50px\n",
	} {
		if !strings.Contains(got, line) {
			t.Errorf("Encode() missing %q", line)
		}
	}
	if strings.Index(got, "classDef state") > strings.Index(got, "classDef event") {
		t.Error("Encode() should emit styles in slice order")
	}
}

func TestEncodeCustomStyles(t *testing.T) {
	opts := quietOptions()
	opts.Styles = []ClassDef{{Name: "state", Props: []StyleProp{{"fill", "#fff"}}}}

	got, err := Encode(graph.New(), opts)
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	want := "flowchart LR\n    classDef state fill:#fff\n\n"
	if got != want {
		t.Errorf("Encode() = %q, want %q", got, want)
	}
}

func TestEncodeInvalidGraph(t *testing.T) {
	tests := []struct {
		name string
		g    *graph.Graph
	}{
		{"nil graph", nil},
		{"nil nodes", &graph.Graph{Edges: []graph.Edge{}}},
		{"nil edges", &graph.Graph{Nodes: []graph.Node{}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Encode(tt.g, quietOptions())
			if !errors.Is(err, errors.ErrCodeInvalidGraph) {
				t.Errorf("Encode() error = %v, want %s", err, errors.ErrCodeInvalidGraph)
			}
			if got != "" {
				t.Errorf("Encode() = %q, want empty", got)
			}
		})
	}
}

func TestEncodeDirection(t *testing.T) {
	tests := []struct {
		name   string
		option graph.Direction
		graph  graph.Direction
		want   string
	}{
		{"default", "", "", "flowchart LR\n"},
		{"graph", "", graph.DirectionTD, "flowchart TD\n"},
		{"graph lowercase", "", "bt", "flowchart BT\n"},
		{"unknown graph direction", "", "XY", "flowchart LR\n"},
		{"option wins", graph.DirectionRL, graph.DirectionTD, "flowchart RL\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := graph.New()
			g.Direction = tt.graph
			opts := quietOptions()
			opts.Direction = tt.option

			got, err := Encode(g, opts)
			if err != nil {
				t.Fatalf("Encode() error: %v", err)
			}
			if !strings.HasPrefix(got, tt.want) {
				t.Errorf("Encode() = %q, want prefix %q", got, tt.want)
			}
		})
	}
}

func TestEncodeInvalidDirectionOption(t *testing.T) {
	opts := quietOptions()
	opts.Direction = "sideways"
	if _, err := Encode(graph.New(), opts); !errors.Is(err, errors.ErrCodeInvalidDirection) {
		t.Errorf("Encode() error = %v, want %s", err, errors.ErrCodeInvalidDirection)
	}
}

type encodeRecorder struct {
	observability.NoopConvertHooks
	nodes, edges, skipped int
}

func (r *encodeRecorder) OnEncode(nodes, edges, skipped int, _ time.Duration) {
	r.nodes, r.edges, r.skipped = nodes, edges, skipped
}

func TestEncodeSkipsDanglingEdge(t *testing.T) {
	rec := &encodeRecorder{}
	observability.SetConvertHooks(rec)
	defer observability.Reset()

	g := registrationGraph()
	g.Edges = append(g.Edges, graph.Edge{From: "5GMM-DEREGISTERED", To: "missing", Type: graph.EdgeTrigger})

	got, err := Encode(g, quietOptions())
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	if n := strings.Count(got, "-->"); n != 1 {
		t.Errorf("Encode() emitted %d edges, want 1", n)
	}
	if rec.nodes != 2 || rec.edges != 1 || rec.skipped != 1 {
		t.Errorf("OnEncode(%d, %d, %d), want (2, 1, 1)", rec.nodes, rec.edges, rec.skipped)
	}
}

func TestEncodeNodeContent(t *testing.T) {
	tests := []struct {
		name string
		node graph.Node
		want string
	}{
		{
			name: "state",
			node: graph.Node{ID: "  IDLE  ", Type: graph.NodeState},
			want: `    A["IDLE"]:::state`,
		},
		{
			name: "untyped is state",
			node: graph.Node{ID: "IDLE"},
			want: `    A["IDLE"]:::state`,
		},
		{
			name: "event",
			node: graph.Node{ID: "TIMEOUT", Type: graph.NodeEvent},
			want: `    A(("TIMEOUT")):::event`,
		},
		{
			name: "quotes escaped",
			node: graph.Node{ID: `say "hi"`, Type: graph.NodeState},
			want: `    A["say \"hi\""]:::state`,
		},
		{
			name: "entity and sorted properties",
			node: graph.Node{
				ID:         "REGISTERED",
				Entity:     "UE",
				Properties: map[string]string{"timer": "T3510", "cause": "#7"},
			},
			want: `    A["REGISTERED<br>entity: UE<br>cause: #7<br>timer: T3510"]:::state`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := graph.New()
			g.Nodes = []graph.Node{tt.node}
			got, err := Encode(g, quietOptions())
			if err != nil {
				t.Fatalf("Encode() error: %v", err)
			}
			if !strings.Contains(got, tt.want+"\n") {
				t.Errorf("Encode() =\n%s\nwant line %q", got, tt.want)
			}
		})
	}
}

func TestEncodeMetadataComments(t *testing.T) {
	g := graph.New()
	g.Nodes = []graph.Node{
		{ID: "A", Type: graph.NodeState},
		{ID: "B", Type: graph.NodeEvent, Description: "line one\nline two"},
	}
	g.Edges = []graph.Edge{{From: "A", To: "B"}}

	got, err := Encode(g, quietOptions())
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	want := `flowchart LR

    A["A"]:::state
    B(("B")):::event
    %% Type: event
    %% Description: line one line two
    A --> B
`
	if got != want {
		t.Errorf("Encode() =\n%s\nwant\n%s", got, want)
	}
}

func TestEncodeLabelsPastZ(t *testing.T) {
	g := graph.New()
	for i := range 27 {
		g.Nodes = append(g.Nodes, graph.Node{ID: "N" + LabelForIndex(i), Type: graph.NodeState})
	}
	g.Edges = []graph.Edge{{From: "NA", To: "NAA", Type: graph.EdgeTrigger}}

	got, err := Encode(g, quietOptions())
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	if !strings.Contains(got, `    AA["NAA"]:::state`) {
		t.Error("27th node should be labelled AA")
	}
	if !strings.Contains(got, "    A --> AA\n") {
		t.Errorf("Encode() =\n%s\nwant edge A --> AA", got)
	}
}

func TestEncodeDeterministic(t *testing.T) {
	g := registrationGraph()
	g.Nodes[0].Properties = map[string]string{"b": "2", "a": "1", "c": "3"}

	first, err := Encode(g, DefaultOptions())
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	for range 20 {
		got, _ := Encode(g, DefaultOptions())
		if got != first {
			t.Fatalf("Encode() not deterministic:\n%s\nvs\n%s", got, first)
		}
	}
}

func TestEncodeFlattensMultilineText(t *testing.T) {
	g := &graph.Graph{
		Nodes: []graph.Node{{
			ID:            "IDLE\nWAIT",
			Type:          graph.NodeState,
			Description:   "first\r\nsecond",
			TextReference: "a\nb",
		}},
		Edges: []graph.Edge{},
	}
	got, err := Encode(g, quietOptions())
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	for _, want := range []string{
		"    A[\"IDLE WAIT\"]:::state\n",
		"    %% Description: first second\n",
		"    %% Text_Reference: a b\n",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Encode() missing %q:\n%s", want, got)
		}
	}

	back := Decode(got)
	if len(back.Nodes) != 1 || back.Nodes[0].ID != "IDLE WAIT" || back.Nodes[0].Description != "first second" {
		t.Errorf("Decode(Encode(g)).Nodes = %+v", back.Nodes)
	}
}
