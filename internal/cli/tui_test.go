package cli

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/procflow/pkg/graph"
)

func pickList() []*graph.Procedure {
	return []*graph.Procedure{
		{ID: "initial-registration", Name: "Initial Registration", Entity: "UE", Original: graph.New()},
		{ID: "service-request", Name: "Service Request", Original: graph.New(), Edited: graph.New(),
			Commits: []graph.Commit{{ID: "c1", Title: "Edit", Time: time.Now().Add(-2 * time.Hour)}}},
	}
}

func key(s string) tea.KeyMsg {
	switch s {
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestProcedureListModelNavigation(t *testing.T) {
	var m tea.Model = NewProcedureListModel(pickList())

	m, _ = m.Update(key("down"))
	m, _ = m.Update(key("down"))
	if got := m.(ProcedureListModel).Cursor; got != 1 {
		t.Errorf("Cursor after two downs = %d, want 1", got)
	}
	m, _ = m.Update(key("k"))
	if got := m.(ProcedureListModel).Cursor; got != 0 {
		t.Errorf("Cursor after up = %d, want 0", got)
	}

	m, _ = m.Update(key("j"))
	m, cmd := m.Update(key("enter"))
	if cmd == nil {
		t.Error("enter should quit")
	}
	sel := m.(ProcedureListModel).Selected
	if sel == nil || sel.ID != "service-request" {
		t.Errorf("Selected = %+v, want service-request", sel)
	}
}

func TestProcedureListModelQuit(t *testing.T) {
	m, cmd := NewProcedureListModel(pickList()).Update(key("q"))
	if cmd == nil {
		t.Error("q should quit")
	}
	if m.(ProcedureListModel).Selected != nil {
		t.Error("quit should not select")
	}
}

func TestProcedureListModelView(t *testing.T) {
	view := NewProcedureListModel(pickList()).View()
	for _, want := range []string{"Select Procedure", "initial-registration", "Service Request", "2h ago", "[1/2]"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q:\n%s", want, view)
		}
	}
}

func TestFormatRelativeTime(t *testing.T) {
	tests := []struct {
		ago  time.Duration
		want string
	}{
		{5 * time.Minute, "5m ago"},
		{3 * time.Hour, "3h ago"},
		{50 * time.Hour, "2d ago"},
	}
	for _, tt := range tests {
		if got := formatRelativeTime(time.Now().Add(-tt.ago)); got != tt.want {
			t.Errorf("formatRelativeTime(-%v) = %q, want %q", tt.ago, got, tt.want)
		}
	}

	old := time.Date(2020, 3, 4, 0, 0, 0, 0, time.UTC)
	if got := formatRelativeTime(old); got != "Mar 4, 2020" {
		t.Errorf("formatRelativeTime(%v) = %q", old, got)
	}
}
