package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	errs "github.com/matzehuels/boxtree/pkg/errors"
	"github.com/matzehuels/boxtree/pkg/pipeline"
)

// treeFlags holds the flags shared by every command that reads a tree.
type treeFlags struct {
	inputFormat string
	root        string
	breakCycles bool
	reduce      bool
}

func (f *treeFlags) register(fs *pflag.FlagSet) {
	fs.StringVarP(&f.inputFormat, "input-format", "i", "", "input format: auto (default), edges, json, yaml, toml")
	fs.StringVar(&f.root, "root", "", "draw the tree from this node ID")
	fs.BoolVar(&f.breakCycles, "break-cycles", false, "remove back edges instead of failing on cycles")
	fs.BoolVar(&f.reduce, "reduce", false, "remove transitive edges before drawing")
}

// apply overlays the flags the user actually set onto opts.
func (f *treeFlags) apply(fs *pflag.FlagSet, opts *pipeline.Options) {
	if fs.Changed("input-format") {
		opts.InputFormat = f.inputFormat
	}
	if fs.Changed("root") {
		opts.Root = f.root
	}
	if fs.Changed("break-cycles") {
		opts.BreakCycles = f.breakCycles
	}
	if fs.Changed("reduce") {
		opts.Reduce = f.reduce
	}
}

// layoutFlags holds the flags that shape the text diagram.
type layoutFlags struct {
	horizontal  bool
	orientation string
	label       string
	trim        bool
	maxNodes    int
}

func (f *layoutFlags) register(fs *pflag.FlagSet) {
	fs.BoolVarP(&f.horizontal, "horizontal", "H", false, "draw left-to-right (same as --orientation horizontal)")
	fs.StringVar(&f.orientation, "orientation", "", "layout orientation: vertical (default), horizontal")
	fs.StringVar(&f.label, "label", "", "node text: label (default), id")
	fs.BoolVar(&f.trim, "trim", false, "strip trailing spaces from every line")
	fs.IntVar(&f.maxNodes, "max-nodes", 0, "refuse text diagrams that expand past this many nodes (default 100000)")
}

func (f *layoutFlags) apply(fs *pflag.FlagSet, opts *pipeline.Options) error {
	if fs.Changed("orientation") {
		opts.Orientation = f.orientation
	}
	if fs.Changed("horizontal") {
		if fs.Changed("orientation") && f.horizontal != (f.orientation == pipeline.OrientationHorizontal) {
			return errs.New(errs.ErrCodeInvalidOrientation, "--horizontal conflicts with --orientation %s", f.orientation)
		}
		if f.horizontal {
			opts.Orientation = pipeline.OrientationHorizontal
		} else {
			opts.Orientation = pipeline.OrientationVertical
		}
	}
	if fs.Changed("label") {
		opts.Label = f.label
	}
	if fs.Changed("trim") {
		opts.Trim = f.trim
	}
	if fs.Changed("max-nodes") {
		if f.maxNodes < 0 {
			return errs.New(errs.ErrCodeInvalidInput, "--max-nodes must not be negative, got %d", f.maxNodes)
		}
		opts.MaxNodes = f.maxNodes
	}
	return nil
}

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	tree    treeFlags
	layout  layoutFlags
	format  string
	output  string
	noCache bool
}

// renderCommand creates the render command, which writes a diagram to stdout
// or to the file named by --output.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Draw a tree as text, DOT, SVG or JSON",
		Long: `Draw a tree read from file (or stdin when file is "-" or missing).

The input format is taken from --input-format, then from the file extension
(.edges, .txt, .json, .yaml, .yml, .toml), and finally sniffed from the
content.`,
		Example: `  boxtree render deps.edges
  boxtree render -H tree.yaml
  cat tree.json | boxtree render --root app -f svg -o tree.svg`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			po, err := c.renderOptions(cmd, &opts)
			if err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args, po, &opts)
		},
	}

	opts.tree.register(cmd.Flags())
	opts.layout.register(cmd.Flags())
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: text (default), dot, svg, json")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write to file instead of stdout")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the SVG render cache")

	completeFlagValues(cmd)
	return cmd
}

// renderOptions merges config defaults with the flags set on cmd.
func (c *CLI) renderOptions(cmd *cobra.Command, opts *renderOpts) (pipeline.Options, error) {
	po := c.config.options()
	fs := cmd.Flags()
	opts.tree.apply(fs, &po)
	if err := opts.layout.apply(fs, &po); err != nil {
		return po, err
	}
	if fs.Changed("format") {
		po.OutputFormat = opts.format
	}
	po.NoCache = opts.noCache
	return po, nil
}

func (c *CLI) runRender(ctx context.Context, args []string, po pipeline.Options, opts *renderOpts) error {
	logger := loggerFromContext(ctx)
	po.Logger = logger

	src, err := c.openInput(args, &po)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, po.NoCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	run := newRunLog(logger, po.Source)
	var spinner *Spinner
	if opts.output != "" && po.OutputFormat == pipeline.FormatSVG {
		spinner = newSpinnerWithContext(ctx, "Rendering SVG...")
		spinner.Start()
	}

	res, err := runner.Execute(ctx, src, po)
	if spinner != nil {
		spinner.Stop()
	}
	if err != nil {
		return err
	}
	run.done(po.OutputFormat, res)

	if opts.output == "" {
		_, err := c.out.Write(res.Output)
		return err
	}
	if err := os.WriteFile(opts.output, res.Output, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", opts.output, err)
	}
	printSuccess("Rendered %s", po.Source)
	printFile(opts.output)
	printStats(res.Stats.NodeCount, res.Stats.EdgeCount, res.Stats.CacheHit)
	return nil
}
