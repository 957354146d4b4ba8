// Package cli implements the boxtree command-line interface.
//
// # Commands
//
//   - render: draw a tree as text, or export it as DOT, SVG or JSON
//   - view: browse a tree in an interactive terminal viewer
//   - validate: check that an input describes a single-rooted acyclic graph
//   - serve: render trees over HTTP
//   - cache: inspect and clear the SVG render cache
//   - completion: generate shell completion scripts
//
// Every command that reads a tree takes a file argument; "-" or no argument
// reads standard input.
//
// # Configuration
//
// Defaults come from $XDG_CONFIG_HOME/boxtree/config.toml (or the file named
// by --config). Flags given on the command line override the file.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context; status lines go to stderr so that stdout
// carries only the diagram.
package cli

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/boxtree/pkg/buildinfo"
	"github.com/matzehuels/boxtree/pkg/cache"
	"github.com/matzehuels/boxtree/pkg/pipeline"
)

// appName is the application name used for directories and display.
const appName = "boxtree"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	out        io.Writer // diagrams
	in         io.Reader // trees read from "-"
	configPath string
	config     Config
}

// New creates a new CLI instance whose logger writes to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		out:    os.Stdout,
		in:     os.Stdin,
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
		Short: "boxtree draws trees with box-drawing characters",
		Long: `boxtree renders trees read from edge lists, JSON, YAML or TOML as compact
box-drawing diagrams, either top-down or left-to-right, and exports them to
Graphviz DOT, SVG or JSON.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(c.configPath, cmd.Flags().Changed("config"))
			if err != nil {
				return err
			}
			c.config = cfg
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/boxtree/config.toml)")

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.viewCommand())
	root.AddCommand(c.validateCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// newRunner creates a pipeline runner backed by the configured cache.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	store, err := c.openCache(noCache)
	if err != nil {
		return nil, err
	}
	r := pipeline.NewRunner(store, loggerFromContext(ctx))
	if c.config.Cache.TTL > 0 {
		r.TTL = c.config.Cache.TTL
	}
	return r, nil
}

func (c *CLI) openCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache("--no-cache"), nil
	}
	store, err := cache.Open(c.config.Cache)
	if err != nil {
		c.Logger.Warn("cache disabled", "err", err)
		return cache.NewNullCache(err.Error()), nil
	}
	return store, nil
}
