package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/procflow/pkg/errors"
	"github.com/matzehuels/procflow/pkg/observability"
)

const registrationJSON = `{
  "procedure_name": "Initial Registration",
  "direction": "LR",
  "nodes": [
    {"id": "5GMM-DEREGISTERED", "type": "state", "description": "UE is not registered",
     "section_reference": "5.5.1.2", "text_reference": "The UE is deregistered"},
    {"id": "REGISTRATION REQUEST", "type": "event", "description": "UE sends REGISTRATION REQUEST",
     "section_reference": "5.5.1.2.2", "text_reference": "The UE shall send"}
  ],
  "edges": [
    {"from": "5GMM-DEREGISTERED", "to": "REGISTRATION REQUEST", "type": "trigger",
     "description": "UE initiates registration", "section_reference": "5.5.1.2.2",
     "text_reference": "initiates the registration procedure"}
  ]
}`

const registrationNotation = `flowchart LR
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

// testEnv isolates a command run from the user's config and data dirs.
type testEnv struct {
	t        *testing.T
	dir      string
	storeDir string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	t.Cleanup(observability.Reset)

	prevOut, prevIn := out, stdin
	t.Cleanup(func() { out, stdin = prevOut, prevIn })

	return &testEnv{t: t, dir: dir, storeDir: filepath.Join(dir, "store")}
}

// file writes content to name under the env dir and returns its path.
func (e *testEnv) file(name, content string) string {
	e.t.Helper()
	path := filepath.Join(e.dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		e.t.Fatalf("write %s: %v", name, err)
	}
	return path
}

// run executes the CLI with input on stdin and returns the primary output
// and the status output.
func (e *testEnv) run(input string, args ...string) (string, string, error) {
	e.t.Helper()
	var stdout, status bytes.Buffer
	out, stdin = &status, strings.NewReader(input)

	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	root.SetOut(&stdout)
	root.SetErr(io.Discard)
	root.SetArgs(append([]string{"--store", e.storeDir}, args...))
	err := root.ExecuteContext(context.Background())
	return stdout.String(), status.String(), err
}

func TestEncodeCommand(t *testing.T) {
	env := newTestEnv(t)
	path := env.file("reg.json", registrationJSON)

	got, _, err := env.run("", "encode", "--no-styles", path)
	if err != nil {
		t.Fatalf("encode error: %v", err)
	}
	if got != registrationNotation {
		t.Errorf("encode =\n%s\nwant\n%s", got, registrationNotation)
	}
}

func TestEncodeCommandStdinAndOutput(t *testing.T) {
	env := newTestEnv(t)
	dest := filepath.Join(env.dir, "reg.mmd")

	_, status, err := env.run(registrationJSON, "encode", "-d", "TD", "-o", dest)
	if err != nil {
		t.Fatalf("encode error: %v", err)
	}
	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !strings.HasPrefix(string(data), "flowchart TD\n") {
		t.Errorf("output starts %q, want flowchart TD header", strings.SplitN(string(data), "\n", 2)[0])
	}
	if !strings.Contains(string(data), "classDef state ") {
		t.Error("output should contain default classDefs")
	}
	if !strings.Contains(status, dest) {
		t.Errorf("status = %q, want output path", status)
	}
}

func TestEncodeCommandBadDirection(t *testing.T) {
	env := newTestEnv(t)
	_, _, err := env.run(registrationJSON, "encode", "--direction", "UP")
	if !errors.Is(err, errors.ErrCodeInvalidDirection) {
		t.Errorf("encode error = %v, want %s", err, errors.ErrCodeInvalidDirection)
	}
}

func TestEncodeCommandMalformedJSON(t *testing.T) {
	env := newTestEnv(t)
	_, _, err := env.run("{not json", "encode")
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("encode error = %v, want %s", err, errors.ErrCodeInvalidFormat)
	}
}

func TestEncodeCommandConfigStyles(t *testing.T) {
	env := newTestEnv(t)
	cfg := env.file("procflow.toml", `
direction = "BT"

[styles.state]
fill = "#fff"
`)
	got, _, err := env.run(registrationJSON, "--config", cfg, "encode")
	if err != nil {
		t.Fatalf("encode error: %v", err)
	}
	if !strings.HasPrefix(got, "flowchart BT\n") {
		t.Errorf("encode header = %q, want flowchart BT", strings.SplitN(got, "\n", 2)[0])
	}
	if !strings.Contains(got, "    classDef state fill:#fff\n") {
		t.Errorf("encode output missing configured classDef:\n%s", got)
	}
	if strings.Contains(got, "classDef event") {
		t.Errorf("encode output should only carry configured classes:\n%s", got)
	}
}

func TestDecodeCommand(t *testing.T) {
	env := newTestEnv(t)
	got, _, err := env.run(registrationNotation, "decode")
	if err != nil {
		t.Fatalf("decode error: %v", err)
	}
	for _, want := range []string{
		`"procedure_name": "Initial Registration"`,
		`"id": "REGISTRATION REQUEST"`,
		`"type": "event"`,
		`"from": "5GMM-DEREGISTERED"`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("decode output missing %s:\n%s", want, got)
		}
	}
}

func TestDecodeCommandStrict(t *testing.T) {
	env := newTestEnv(t)
	input := "flowchart TD\n    garbage here\n"

	if _, _, err := env.run(input, "decode"); err != nil {
		t.Errorf("lenient decode error = %v, want nil", err)
	}

	_, status, err := env.run(input, "decode", "--strict")
	if !errors.Is(err, errors.ErrCodeInvalidNotation) {
		t.Fatalf("strict decode error = %v, want %s", err, errors.ErrCodeInvalidNotation)
	}
	if want := `Line 2: Invalid node or edge format - "garbage here"`; !strings.Contains(status, want) {
		t.Errorf("status = %q, want %q", status, want)
	}
}

func TestCheckCommand(t *testing.T) {
	env := newTestEnv(t)

	_, status, err := env.run(registrationNotation, "check")
	if err != nil {
		t.Fatalf("check error on valid notation: %v", err)
	}
	if !strings.Contains(status, "Notation is valid") {
		t.Errorf("status = %q, want success", status)
	}

	_, status, err = env.run("    A[\"IDLE\"]:::state\n", "check")
	if !errors.Is(err, errors.ErrCodeInvalidNotation) {
		t.Fatalf("check error = %v, want %s", err, errors.ErrCodeInvalidNotation)
	}
	if !strings.Contains(status, "Missing flowchart declaration") {
		t.Errorf("status = %q, want missing declaration", status)
	}
}

func TestValidateCommand(t *testing.T) {
	env := newTestEnv(t)

	if _, _, err := env.run(registrationJSON, "validate"); err != nil {
		t.Errorf("validate error on valid graph: %v", err)
	}

	bad := `{"nodes": [{"id": "A", "type": "state", "description": "a"}],
	         "edges": [{"from": "A", "to": "Z", "type": "trigger", "description": "x"}]}`
	_, status, err := env.run(bad, "validate")
	if !errors.Is(err, errors.ErrCodeInvalidGraph) {
		t.Fatalf("validate error = %v, want %s", err, errors.ErrCodeInvalidGraph)
	}
	if want := `'to' node "Z" does not exist`; !strings.Contains(status, want) {
		t.Errorf("status = %q, want %q", status, want)
	}

	if _, _, err := env.run(registrationNotation, "validate", "--notation"); err != nil {
		t.Errorf("validate --notation error: %v", err)
	}
}

func TestFmtCommand(t *testing.T) {
	env := newTestEnv(t)
	path := env.file("messy.mmd", "flowchart TD\nA[\"X\"]:::state\n\n      A --> A\n")

	got, _, err := env.run("", "fmt", path)
	if err != nil {
		t.Fatalf("fmt error: %v", err)
	}
	want := "flowchart TD\n    A[\"X\"]:::state\n    A --> A\n"
	if got != want {
		t.Errorf("fmt = %q, want %q", got, want)
	}

	if _, _, err := env.run("", "fmt", "-w", path); err != nil {
		t.Fatalf("fmt -w error: %v", err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != want {
		t.Errorf("fmt -w wrote %q, want %q", data, want)
	}
}

func TestDiffCommand(t *testing.T) {
	env := newTestEnv(t)
	oldPath := env.file("old.mmd", "flowchart TD\n    A --> B\n")
	newPath := env.file("new.mmd", "flowchart TD\n    A --> C\n")

	_, status, err := env.run("", "diff", oldPath, newPath)
	if err != nil {
		t.Fatalf("diff error: %v", err)
	}
	if !strings.Contains(status, "+    2  A --> C") || !strings.Contains(status, "-    2  A --> B") {
		t.Errorf("diff status = %q", status)
	}

	_, status, _ = env.run("", "diff", oldPath, oldPath)
	if !strings.Contains(status, "No changes") {
		t.Errorf("diff status = %q, want no changes", status)
	}
}

func TestDotCommand(t *testing.T) {
	env := newTestEnv(t)

	got, _, err := env.run(registrationJSON, "dot")
	if err != nil {
		t.Fatalf("dot error: %v", err)
	}
	if !strings.HasPrefix(got, "digraph G {") || !strings.Contains(got, "rankdir=LR;") {
		t.Errorf("dot output =\n%s", got)
	}

	got, _, err = env.run(registrationNotation, "dot", "--notation", "--check")
	if err != nil {
		t.Fatalf("dot --notation --check error: %v", err)
	}
	if !strings.Contains(got, `"5GMM-DEREGISTERED" -> "REGISTRATION REQUEST"`) {
		t.Errorf("dot output missing edge:\n%s", got)
	}
}

func TestProcedureLifecycle(t *testing.T) {
	env := newTestEnv(t)
	graphPath := env.file("initial-registration.json", registrationJSON)

	_, status, err := env.run("", "list")
	if err != nil {
		t.Fatalf("list error: %v", err)
	}
	if !strings.Contains(status, "No procedures") {
		t.Errorf("list on empty store = %q", status)
	}

	if _, _, err := env.run("", "import", graphPath, "--entity", "UE", "--document", "TS 24.501"); err != nil {
		t.Fatalf("import error: %v", err)
	}
	if _, _, err := env.run("", "import", graphPath); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("second import error = %v, want %s", err, errors.ErrCodeInvalidInput)
	}

	_, status, err = env.run("", "list")
	if err != nil {
		t.Fatalf("list error: %v", err)
	}
	if !strings.Contains(status, "initial-registration") || !strings.Contains(status, "Initial Registration") {
		t.Errorf("list = %q, want imported procedure", status)
	}

	text, _, err := env.run("", "show", "--no-styles", "initial-registration")
	if err != nil {
		t.Fatalf("show error: %v", err)
	}
	if text != registrationNotation {
		t.Errorf("show =\n%s\nwant\n%s", text, registrationNotation)
	}

	edited := strings.Replace(text, "UE is not registered", "UE is deregistered", 2)
	_, status, err = env.run(edited, "apply", "initial-registration", "-t", "Reword state")
	if err != nil {
		t.Fatalf("apply error: %v", err)
	}
	if !strings.Contains(status, "Applied") || !strings.Contains(status, "1 commits") {
		t.Errorf("apply status = %q", status)
	}

	text, _, _ = env.run("", "show", "--no-styles", "initial-registration")
	if !strings.Contains(text, "%% Description: UE is deregistered") {
		t.Errorf("show after apply =\n%s", text)
	}
	text, _, _ = env.run("", "show", "--no-styles", "--original", "initial-registration")
	if text != registrationNotation {
		t.Errorf("show --original =\n%s\nwant\n%s", text, registrationNotation)
	}

	_, status, err = env.run("", "show", "--commits", "initial-registration")
	if err != nil {
		t.Fatalf("show --commits error: %v", err)
	}
	if !strings.Contains(status, "Reword state") || !strings.Contains(status, "TS 24.501") {
		t.Errorf("show --commits = %q", status)
	}
}

func TestApplyCommandRejects(t *testing.T) {
	env := newTestEnv(t)
	graphPath := env.file("reg.json", registrationJSON)
	if _, _, err := env.run("", "import", graphPath); err != nil {
		t.Fatalf("import error: %v", err)
	}

	broken := strings.Replace(registrationNotation, "%% Type: event", "%% Type: event\n    nonsense", 1)
	_, status, err := env.run(broken, "apply", "reg")
	if !errors.Is(err, errors.ErrCodeInvalidNotation) {
		t.Fatalf("apply error = %v, want %s", err, errors.ErrCodeInvalidNotation)
	}
	if !strings.Contains(status, "Invalid node or edge format") {
		t.Errorf("apply status = %q, want line problem", status)
	}

	text, _, _ := env.run("", "show", "--no-styles", "reg")
	if text != registrationNotation {
		t.Errorf("rejected apply changed the procedure:\n%s", text)
	}
}

func TestShowCommandMissing(t *testing.T) {
	env := newTestEnv(t)
	_, _, err := env.run("", "show", "nope")
	if !errors.Is(err, errors.ErrCodeProcedureNotFound) {
		t.Errorf("show error = %v, want %s", err, errors.ErrCodeProcedureNotFound)
	}
}

func TestCompletionCommand(t *testing.T) {
	env := newTestEnv(t)
	got, _, err := env.run("", "completion", "bash")
	if err != nil {
		t.Fatalf("completion error: %v", err)
	}
	if !strings.Contains(got, "procflow") {
		t.Error("bash completion should mention procflow")
	}
}
