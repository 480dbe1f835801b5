package cli

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/procflow/pkg/errors"
	"github.com/matzehuels/procflow/pkg/graph"
	pio "github.com/matzehuels/procflow/pkg/io"
	"github.com/matzehuels/procflow/pkg/notation"
	"github.com/matzehuels/procflow/pkg/render/nodelink"
	"github.com/matzehuels/procflow/pkg/validate"
)

// encodeCommand creates the encode command: graph JSON to notation.
func (c *CLI) encodeCommand() *cobra.Command {
	var (
		output    string
		direction string
		noStyles  bool
	)

	cmd := &cobra.Command{
		Use:   "encode [graph.json]",
		Short: "Convert graph JSON to flowchart notation",
		Long: `Convert graph JSON to flowchart notation.

Reads a graph document (or stdin) and writes notation text. Styles and the
default direction come from the config file; --direction overrides it.
Edges whose endpoint is not a node are skipped with a warning.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			opts, err := cfg.encodeOptions(direction, noStyles)
			if err != nil {
				return err
			}
			opts.Logger = loggerFromContext(cmd.Context())

			data, err := readInput(argOrStdin(args))
			if err != nil {
				return err
			}
			g, err := pio.ReadJSON(bytes.NewReader(data))
			if err != nil {
				return errors.Wrap(errors.ErrCodeInvalidFormat, err, "read graph")
			}
			text, err := notation.Encode(g, opts)
			if err != nil {
				return err
			}
			return writeOutput(cmd.OutOrStdout(), output, []byte(text))
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVarP(&direction, "direction", "d", "", "layout direction: TD, TB, BT, LR, RL")
	cmd.Flags().BoolVar(&noStyles, "no-styles", false, "omit classDef lines")

	return cmd
}

// decodeCommand creates the decode command: notation to graph JSON.
func (c *CLI) decodeCommand() *cobra.Command {
	var (
		output string
		strict bool
	)

	cmd := &cobra.Command{
		Use:   "decode [diagram.mmd]",
		Short: "Convert flowchart notation to graph JSON",
		Long: `Convert flowchart notation to graph JSON.

Decoding is lenient: unknown lines are skipped, unknown types fall back to
state or trigger, and edges to undefined labels keep the raw label. Each
case is logged as a warning. With --strict, any unrecognised line fails the
command.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			data, err := readInput(argOrStdin(args))
			if err != nil {
				return err
			}

			var g *graph.Graph
			if strict {
				if g, err = notation.DecodeStrict(string(data)); err != nil {
					printProblems(errors.GetDetails(err))
					return err
				}
			} else {
				var report notation.Report
				g, report = notation.DecodeWithReport(string(data))
				if len(report.UnresolvedLabels) > 0 {
					logger.Warn("edges reference undefined labels", "labels", strings.Join(report.UnresolvedLabels, ", "))
				}
				if len(report.SkippedLines) > 0 {
					logger.Warn("skipped unrecognised lines", "lines", report.SkippedLines)
				}
			}

			var buf bytes.Buffer
			if err := pio.WriteJSON(g, &buf); err != nil {
				return err
			}
			return writeOutput(cmd.OutOrStdout(), output, buf.Bytes())
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().BoolVar(&strict, "strict", false, "fail on unrecognised lines")

	return cmd
}

// checkCommand creates the check command for hand-written notation.
func (c *CLI) checkCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check [diagram.mmd]",
		Short: "Check flowchart notation line by line",
		Long: `Check flowchart notation line by line.

Reports every problem with its line number: malformed lines, shapes that
disagree with their class, unknown comment keys, missing or conflicting
Type, Description, Section_Reference and Text_Reference metadata, and
edges to undefined nodes.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(argOrStdin(args))
			if err != nil {
				return err
			}
			res := notation.Check(string(data))
			if !res.Valid {
				printProblems(res.Errors)
				return res.Err()
			}
			printSuccess("Notation is valid")
			return nil
		},
	}
}

// validateCommand creates the validate command for graph JSON.
func (c *CLI) validateCommand() *cobra.Command {
	var fromNotation bool

	cmd := &cobra.Command{
		Use:   "validate [graph.json]",
		Short: "Validate a graph against the schema",
		Long: `Validate a graph against the schema.

Checks required fields, type values, unique node ids and that every edge
endpoint names a node. With --notation the input is decoded from flowchart
notation first.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(argOrStdin(args))
			if err != nil {
				return err
			}
			var res validate.Result
			if fromNotation {
				res = validate.Graph(notation.Decode(string(data)))
			} else {
				res = validate.JSON(data)
			}
			if !res.Valid {
				printProblems(res.Errors)
				return res.Err()
			}
			printSuccess("Graph is valid")
			return nil
		},
	}

	cmd.Flags().BoolVar(&fromNotation, "notation", false, "input is flowchart notation")

	return cmd
}

// fmtCommand creates the fmt command.
func (c *CLI) fmtCommand() *cobra.Command {
	var write bool

	cmd := &cobra.Command{
		Use:   "fmt [diagram.mmd]",
		Short: "Normalise notation indentation",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := argOrStdin(args)
			data, err := readInput(path)
			if err != nil {
				return err
			}
			formatted := notation.Format(string(data))
			if write && path != "-" {
				return writeOutput(cmd.OutOrStdout(), path, []byte(formatted))
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), formatted)
			return err
		},
	}

	cmd.Flags().BoolVarP(&write, "write", "w", false, "write result to the source file")

	return cmd
}

// diffCommand creates the diff command.
func (c *CLI) diffCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "diff <old.mmd> <new.mmd>",
		Short: "Show lines added and removed between two notation files",
		Long: `Show lines added and removed between two notation files.

Lines are compared after trimming, as a set: reordering lines is not a
change. Line numbers refer to the new file for additions and the old file
for removals.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			oldData, err := readInput(args[0])
			if err != nil {
				return err
			}
			newData, err := readInput(args[1])
			if err != nil {
				return err
			}
			changes := notation.Diff(string(oldData), string(newData))
			if len(changes) == 0 {
				printInfo("No changes")
				return nil
			}
			for _, ch := range changes {
				printChange(ch.Kind == notation.Added, ch.Line, ch.Content)
			}
			return nil
		},
	}
}

// dotCommand creates the dot command for Graphviz export.
func (c *CLI) dotCommand() *cobra.Command {
	var (
		output       string
		detailed     bool
		check        bool
		fromNotation bool
	)

	cmd := &cobra.Command{
		Use:   "dot [graph.json]",
		Short: "Export a graph as Graphviz DOT",
		Long: `Export a graph as Graphviz DOT.

States become boxes and events ellipses; condition edges are dashed. With
--check the generated source is parsed and laid out with Graphviz before
it is written.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(argOrStdin(args))
			if err != nil {
				return err
			}
			var g *graph.Graph
			if fromNotation {
				g = notation.Decode(string(data))
			} else if g, err = pio.ReadJSON(bytes.NewReader(data)); err != nil {
				return errors.Wrap(errors.ErrCodeInvalidFormat, err, "read graph")
			}

			dot := nodelink.ToDOT(g, nodelink.Options{Detailed: detailed})
			if check {
				spinner := newSpinnerWithContext(cmd.Context(), "Checking DOT with Graphviz...")
				spinner.Start()
				err := nodelink.CheckDOT(dot)
				spinner.Stop()
				if err != nil {
					return errors.Wrap(errors.ErrCodeInternal, err, "generated DOT is invalid")
				}
			}
			return writeOutput(cmd.OutOrStdout(), output, []byte(dot))
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "include descriptions and references in labels")
	cmd.Flags().BoolVar(&check, "check", false, "verify the output with Graphviz")
	cmd.Flags().BoolVar(&fromNotation, "notation", false, "input is flowchart notation")

	return cmd
}
