// Package cli implements the procflow command-line interface.
//
// # Commands
//
// Conversion commands work on files or stdin:
//   - encode: graph JSON to flowchart notation
//   - decode: flowchart notation to graph JSON
//   - check: syntax-check hand-written notation
//   - validate: schema-check graph JSON
//   - fmt, diff: notation editing helpers
//   - dot: Graphviz export
//
// Procedure commands work against the local procedure store:
//   - list, import, show, apply, pick
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context.
package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/procflow/pkg/buildinfo"
	"github.com/matzehuels/procflow/pkg/observability"
	"github.com/matzehuels/procflow/pkg/pipeline"
	"github.com/matzehuels/procflow/pkg/store"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "procflow"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// StoreDir overrides the procedure store directory.
	StoreDir string
	// ConfigPath overrides the config file location.
	ConfigPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "procflow converts procedure graphs to and from flowchart notation",
		Long: `procflow converts 3GPP procedure state-machine graphs to and from a
flowchart notation, checks hand-edited notation line by line, validates
graphs and keeps a local store of procedures with their edit history.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			observability.SetConvertHooks(&logHooks{logger: c.Logger})
			observability.SetPipelineHooks(&logHooks{logger: c.Logger})
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.StoreDir, "store", "", "procedure store directory (default $XDG_DATA_HOME/procflow/procedures)")
	root.PersistentFlags().StringVar(&c.ConfigPath, "config", "", "config file (default $XDG_CONFIG_HOME/procflow/config.toml)")

	// Register all subcommands
	root.AddCommand(c.encodeCommand())
	root.AddCommand(c.decodeCommand())
	root.AddCommand(c.checkCommand())
	root.AddCommand(c.validateCommand())
	root.AddCommand(c.fmtCommand())
	root.AddCommand(c.diffCommand())
	root.AddCommand(c.dotCommand())
	root.AddCommand(c.listCommand())
	root.AddCommand(c.importCommand())
	root.AddCommand(c.showCommand())
	root.AddCommand(c.applyCommand())
	root.AddCommand(c.pickCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newStore opens the procedure store: --store, then the config file, then
// the XDG data directory.
func (c *CLI) newStore() (*store.FileStore, error) {
	dir := c.StoreDir
	if dir == "" {
		cfg, err := c.loadConfig()
		if err != nil {
			return nil, err
		}
		dir = cfg.Store
	}
	if dir == "" {
		var err error
		if dir, err = dataDir(); err != nil {
			return nil, err
		}
	}
	c.Logger.Debug("opening store", "dir", dir)
	return store.NewFileStore(dir)
}

// newRunner creates a pipeline runner over the procedure store.
func (c *CLI) newRunner() (*pipeline.Runner, error) {
	st, err := c.newStore()
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(st, c.Logger), nil
}

// =============================================================================
// Paths
// =============================================================================

// dataDir returns the store directory using XDG standard (~/.local/share/procflow/procedures).
func dataDir() (string, error) {
	if dataHome := os.Getenv("XDG_DATA_HOME"); dataHome != "" {
		return filepath.Join(dataHome, appName, "procedures"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "share", appName, "procedures"), nil
}

// configDir returns the config directory using XDG standard (~/.config/procflow).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}
