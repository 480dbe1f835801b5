package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/procflow/pkg/errors"
	"github.com/matzehuels/procflow/pkg/graph"
	pio "github.com/matzehuels/procflow/pkg/io"
	"github.com/matzehuels/procflow/pkg/pipeline"
	"github.com/matzehuels/procflow/pkg/store"
	"github.com/matzehuels/procflow/pkg/validate"
)

// listCommand creates the list command.
func (c *CLI) listCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored procedures",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := c.newStore()
			if err != nil {
				return err
			}
			procs, err := st.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(procs) == 0 {
				printInfo("No procedures in %s", st.Dir())
				printNextStep("Add one with", appName+" import graph.json --id <id>")
				return nil
			}

			rows := make([][]string, len(procs))
			for i, p := range procs {
				rows[i] = procedureRow(p)
			}
			headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
			t := table.New().
				Border(lipgloss.RoundedBorder()).
				BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
				Headers("ID", "Name", "Entity", "Edited", "Updated").
				Rows(rows...).
				StyleFunc(func(row, col int) lipgloss.Style {
					if row == -1 {
						return headerStyle
					}
					if col == 0 {
						return lipgloss.NewStyle().Foreground(colorCyan)
					}
					return lipgloss.NewStyle()
				})
			fmt.Fprintln(out, t.Render())
			return nil
		},
	}
}

// importCommand creates the import command, which adds a graph JSON file to
// the store as a new procedure.
func (c *CLI) importCommand() *cobra.Command {
	var (
		id       string
		name     string
		entity   string
		document string
		section  string
		force    bool
	)

	cmd := &cobra.Command{
		Use:   "import <graph.json>",
		Short: "Add a graph to the procedure store",
		Long: `Add a graph to the procedure store.

The graph is validated before it is stored as the procedure's original
graph. The id defaults to the file name without extension. Importing over
an existing procedure requires --force and discards its edit history.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			prog := newProgress(loggerFromContext(ctx))
			data, err := readInput(args[0])
			if err != nil {
				return err
			}
			if res := validate.JSON(data); !res.Valid {
				printProblems(res.Errors)
				return res.Err()
			}
			g, err := pio.ReadJSON(strings.NewReader(string(data)))
			if err != nil {
				return errors.Wrap(errors.ErrCodeInvalidFormat, err, "read graph")
			}

			if id == "" {
				id = strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
			}
			if err := errors.ValidateProcedureID(id); err != nil {
				return err
			}
			if name == "" {
				name = g.ProcedureName
			}

			st, err := c.newStore()
			if err != nil {
				return err
			}
			if _, err := st.Fetch(ctx, id); err == nil && !force {
				return errors.New(errors.ErrCodeInvalidInput, "procedure %s already exists (use --force to replace it)", id)
			}

			p := &graph.Procedure{
				ID:       id,
				Name:     name,
				Entity:   entity,
				Document: document,
				Section:  section,
				Original: g,
			}
			if err := st.Put(ctx, p); err != nil {
				return err
			}
			prog.done("imported " + id)
			printSuccess("Imported %s", StyleHighlight.Render(id))
			printStats(len(g.Nodes), len(g.Edges), 0)
			printNextStep("Edit it with", fmt.Sprintf("%s show %s > %s.mmd", appName, id, id))
			return nil
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "procedure id (default file name)")
	cmd.Flags().StringVar(&name, "name", "", "procedure name (default the graph's procedure_name)")
	cmd.Flags().StringVar(&entity, "entity", "", "network entity, e.g. UE or AMF")
	cmd.Flags().StringVar(&document, "document", "", "source document, e.g. TS 24.501")
	cmd.Flags().StringVar(&section, "section", "", "source section, e.g. 5.5.1.2")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "replace an existing procedure")

	return cmd
}

// showCommand creates the show command, which prints a procedure's current
// graph as notation.
func (c *CLI) showCommand() *cobra.Command {
	var (
		commits   bool
		original  bool
		direction string
		noStyles  bool
	)

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Print a stored procedure as flowchart notation",
		Long: `Print a stored procedure as flowchart notation.

Prints the latest edited graph, or the original graph when the procedure
has not been edited. Redirect the output to a file, edit it and hand it
back with apply.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			runner, err := c.newRunner()
			if err != nil {
				return err
			}
			if commits {
				p, err := runner.Store.Fetch(ctx, args[0])
				if err != nil {
					return err
				}
				printCommits(p)
				return nil
			}

			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			opts, err := cfg.encodeOptions(direction, noStyles)
			if err != nil {
				return err
			}
			if original {
				p, err := runner.Store.Fetch(ctx, args[0])
				if err != nil {
					return err
				}
				p.Edited = nil
				runner = pipeline.NewRunner(store.NewMemoryStore(p), c.Logger)
			}

			text, _, err := runner.Load(ctx, args[0], opts)
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), text)
			return err
		},
	}

	cmd.Flags().BoolVar(&commits, "commits", false, "list the edit history instead")
	cmd.Flags().BoolVar(&original, "original", false, "print the original graph")
	cmd.Flags().StringVarP(&direction, "direction", "d", "", "layout direction: TD, TB, BT, LR, RL")
	cmd.Flags().BoolVar(&noStyles, "no-styles", false, "omit classDef lines")

	return cmd
}

// applyCommand creates the apply command, which runs edited notation
// through check, decode and validate and stores it as a new commit.
func (c *CLI) applyCommand() *cobra.Command {
	var (
		title   string
		message string
	)

	cmd := &cobra.Command{
		Use:   "apply <id> [diagram.mmd]",
		Short: "Store edited notation as the procedure's new graph",
		Long: `Store edited notation as the procedure's new graph.

The text is syntax-checked, decoded and validated. Every problem found by
the failing stage is printed and nothing is stored. On success the graph
becomes the procedure's edited graph and a commit is recorded.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			data, err := readInput(argOrStdin(args[1:]))
			if err != nil {
				return err
			}
			runner, err := c.newRunner()
			if err != nil {
				return err
			}
			if title == "" {
				title = "Edit " + id
			}

			res, err := runner.Apply(cmd.Context(), id, string(data), pipeline.NewCommit(title, message))
			if err != nil {
				printProblems(errors.GetDetails(err))
				return err
			}
			if labels := res.Report.UnresolvedLabels; len(labels) > 0 {
				printWarning("Edges reference undefined labels: %s", strings.Join(labels, ", "))
			}
			printSuccess("Applied %s to %s", StyleHighlight.Render(shortID(res.Commit.ID)), StyleHighlight.Render(id))
			printStats(res.Stats.NodeCount, res.Stats.EdgeCount, len(res.Procedure.Commits))
			return nil
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "commit title (default \"Edit <id>\")")
	cmd.Flags().StringVarP(&message, "message", "m", "", "commit message")

	return cmd
}

// pickCommand creates the pick command, an interactive procedure browser.
func (c *CLI) pickCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "pick",
		Short: "Choose a stored procedure interactively and print it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			runner, err := c.newRunner()
			if err != nil {
				return err
			}
			procs, err := runner.Store.List(ctx)
			if err != nil {
				return err
			}
			if len(procs) == 0 {
				printInfo("No procedures to pick from")
				return nil
			}

			final, err := tea.NewProgram(NewProcedureListModel(procs), tea.WithContext(ctx), tea.WithOutput(os.Stderr)).Run()
			if err != nil {
				return fmt.Errorf("picker: %w", err)
			}
			sel := final.(ProcedureListModel).Selected
			if sel == nil {
				return nil
			}

			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			opts, err := cfg.encodeOptions("", false)
			if err != nil {
				return err
			}
			text, _, err := runner.Load(ctx, sel.ID, opts)
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), text)
			return err
		},
	}
}

// printCommits lists a procedure's edit history, newest first.
func printCommits(p *graph.Procedure) {
	fmt.Fprintln(out, StyleTitle.Render(p.Name)+" "+StyleDim.Render(p.ID))
	if p.Document != "" || p.Section != "" {
		printKeyValue("Source", strings.TrimSpace(p.Document+" "+p.Section))
	}
	if len(p.Commits) == 0 {
		printInfo("No edits yet")
		return
	}
	for i := len(p.Commits) - 1; i >= 0; i-- {
		cm := p.Commits[i]
		fmt.Fprintln(out, StyleHighlight.Render(shortID(cm.ID))+" "+cm.Title+" "+StyleDim.Render(formatRelativeTime(cm.Time)))
		if cm.Message != "" {
			printDetail("%s", cm.Message)
		}
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
