package cli

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/procflow/pkg/graph"
)

var listDimStyle = lipgloss.NewStyle().Foreground(colorDim)

// =============================================================================
// ProcedureListModel - Interactive procedure selection
// =============================================================================

// ProcedureListModel is the bubbletea model for interactive procedure selection.
type ProcedureListModel struct {
	Procedures []*graph.Procedure
	Cursor     int
	Selected   *graph.Procedure
	Height     int
	Offset     int
}

// NewProcedureListModel creates a new procedure list model.
func NewProcedureListModel(procs []*graph.Procedure) ProcedureListModel {
	return ProcedureListModel{
		Procedures: procs,
		Height:     15,
	}
}

func (m ProcedureListModel) Init() tea.Cmd {
	return nil
}

func (m ProcedureListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Procedures)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			if len(m.Procedures) == 0 {
				return m, tea.Quit
			}
			m.Selected = m.Procedures[m.Cursor]
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-6, 5)
	}
	return m, nil
}

func (m ProcedureListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Procedure"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Procedures))
	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, append([]string{cursor}, procedureRow(m.Procedures[i])...))
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "ID", "Name", "Entity", "Edited", "Updated").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			base := lipgloss.NewStyle()
			if col >= 4 {
				base = base.Foreground(colorDim)
			}
			if m.Offset+row == m.Cursor {
				return base.Foreground(colorGreen).Bold(true)
			}
			return base
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	if len(m.Procedures) > 0 {
		b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Procedures))))
	}

	return b.String()
}

// procedureRow is the table row shared by list and pick.
func procedureRow(p *graph.Procedure) []string {
	edited := "—"
	if p.Edited != nil {
		edited = "✓"
	}
	updated := "—"
	if n := len(p.Commits); n > 0 {
		updated = formatRelativeTime(p.Commits[n-1].Time)
	}
	entity := p.Entity
	if entity == "" {
		entity = "—"
	}
	return []string{p.ID, p.Name, entity, edited, updated}
}

// =============================================================================
// Helpers
// =============================================================================

func formatRelativeTime(t time.Time) string {
	diff := time.Since(t)

	switch {
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	case diff < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	default:
		return t.Format("Jan 2, 2006")
	}
}
