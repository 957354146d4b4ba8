package pipeline

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/boxtree/pkg/cache"
	"github.com/matzehuels/boxtree/pkg/dag"
	"github.com/matzehuels/boxtree/pkg/dag/transform"
	errs "github.com/matzehuels/boxtree/pkg/errors"
	bio "github.com/matzehuels/boxtree/pkg/io"
	"github.com/matzehuels/boxtree/pkg/observability"
)

// Runner executes the pipeline. It holds no per-run state, so one Runner can
// serve concurrent requests with different options.
type Runner struct {
	Cache  cache.Cache
	TTL    time.Duration
	Logger *log.Logger
}

// NewRunner creates a runner. A nil cache disables caching; a nil logger
// falls back to log.Default.
func NewRunner(c cache.Cache, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache("no cache configured")
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		TTL:    cache.DefaultTTL,
		Logger: logger,
	}
}

// Execute runs parse → prepare → render on src.
func (r *Runner) Execute(ctx context.Context, src io.Reader, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	parseStart := time.Now()
	g, err := r.Parse(ctx, src, opts)
	if err != nil {
		return nil, err
	}
	parseTime := time.Since(parseStart)

	opts.Logger.Info("parsed tree",
		"source", opts.Source,
		"nodes", g.NodeCount(),
		"edges", g.EdgeCount(),
		"duration", parseTime)

	res, err := r.Prepare(ctx, g, opts)
	if err != nil {
		return nil, err
	}
	res.Stats.ParseTime = parseTime

	if err := r.Render(ctx, res, opts); err != nil {
		return nil, err
	}

	opts.Logger.Info("rendered diagram",
		"format", opts.OutputFormat,
		"orientation", opts.Orientation,
		"bytes", res.Stats.Bytes,
		"cached", res.Stats.CacheHit,
		"duration", res.Stats.RenderTime)

	return res, nil
}

// Parse decodes src in opts.InputFormat. Decoding failures are returned as
// INVALID_INPUT unless the importer already attached a more specific code.
func (r *Runner) Parse(ctx context.Context, src io.Reader, opts Options) (*dag.DAG, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	hooks := observability.Pipeline()
	hooks.OnParseStart(ctx, opts.InputFormat, opts.Source)
	start := time.Now()

	g, err := bio.Read(src, bio.Format(opts.InputFormat))
	if err != nil && errs.GetCode(err) == "" {
		err = errs.Wrap(errs.ErrCodeInvalidInput, err, "parse %s", opts.Source)
	}

	nodes := 0
	if g != nil {
		nodes = g.NodeCount()
	}
	hooks.OnParseComplete(ctx, opts.InputFormat, opts.Source, nodes, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return g, nil
}

// Prepare applies the graph transforms selected in opts, rejects cycles and
// resolves the root. g is modified in place.
func (r *Runner) Prepare(ctx context.Context, g *dag.DAG, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	hooks := observability.Pipeline()
	start := time.Now()
	res := &Result{Graph: g}

	if opts.BreakCycles {
		t := time.Now()
		res.Removed = transform.BreakCycles(g)
		res.Stats.CycleEdges = len(res.Removed)
		hooks.OnTransform(ctx, "break-cycles", len(res.Removed), time.Since(t))
		for _, e := range res.Removed {
			opts.Logger.Warn("removed cycle edge", "from", e.From, "to", e.To)
		}
	}

	if err := g.Validate(); err != nil {
		if errors.Is(err, dag.ErrGraphHasCycle) {
			return nil, errs.Wrap(errs.ErrCodeCycle, err, "cycle %s", strings.Join(g.FindCycle(), " -> "))
		}
		return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "invalid graph")
	}

	if opts.Reduce {
		t := time.Now()
		res.Stats.ReducedEdges = transform.TransitiveReduction(g)
		hooks.OnTransform(ctx, "reduce", res.Stats.ReducedEdges, time.Since(t))
		opts.Logger.Debug("transitive reduction", "removed", res.Stats.ReducedEdges)
	}

	root, err := resolveRoot(g, opts.Root)
	if err != nil {
		return nil, err
	}
	res.Root = root
	res.Stats.NodeCount = g.NodeCount()
	res.Stats.EdgeCount = g.EdgeCount()
	res.Stats.TreeNodes = g.TreeSize(root)
	res.Stats.PrepareTime = time.Since(start)
	return res, nil
}

// resolveRoot returns want if it names a node, or the graph's single source
// when want is empty.
func resolveRoot(g *dag.DAG, want string) (string, error) {
	if want != "" {
		if _, ok := g.Node(want); !ok {
			return "", errs.New(errs.ErrCodeUnknownRoot, "root %q is not in the graph", want)
		}
		return want, nil
	}

	n, err := g.Root()
	switch {
	case err == nil:
		return n.ID, nil
	case errors.Is(err, dag.ErrMultipleRoots):
		ids := make([]string, 0)
		for _, s := range g.Sources() {
			ids = append(ids, s.ID)
		}
		return "", errs.Wrap(errs.ErrCodeMultipleRoots, err, "candidates: %s (pick one with --root)", strings.Join(ids, ", "))
	case errors.Is(err, dag.ErrNoRoot):
		if g.NodeCount() == 0 {
			return "", errs.Wrap(errs.ErrCodeNoRoot, err, "the input is empty")
		}
		return "", errs.Wrap(errs.ErrCodeNoRoot, err, "every node has a parent")
	default:
		return "", errs.Wrap(errs.ErrCodeInternal, err, "resolve root")
	}
}

// Render produces res.Output in opts.OutputFormat from a prepared result.
func (r *Runner) Render(ctx context.Context, res *Result, opts Options) error {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.OutputFormat)
	start := time.Now()

	out, hit, err := r.render(ctx, res, opts)

	res.Stats.RenderTime = time.Since(start)
	hooks.OnRenderComplete(ctx, opts.OutputFormat, len(out), res.Stats.RenderTime, err)
	if err != nil {
		return err
	}
	res.Output = out
	res.Stats.Bytes = len(out)
	res.Stats.CacheHit = hit
	return nil
}

func (r *Runner) render(ctx context.Context, res *Result, opts Options) ([]byte, bool, error) {
	switch opts.OutputFormat {
	case FormatText:
		text, err := Text(ctx, res.Graph, res.Root, opts)
		if err != nil {
			return nil, false, err
		}
		res.Stats.Lines = strings.Count(text, "\n") + 1
		return []byte(text + "\n"), false, nil
	case FormatDOT:
		return []byte(dotSource(res.Graph, opts)), false, nil
	case FormatSVG:
		return r.renderSVG(ctx, res.Graph, opts)
	case FormatJSON:
		var buf strings.Builder
		if err := bio.WriteJSON(res.Graph, &buf); err != nil {
			return nil, false, errs.Wrap(errs.ErrCodeInternal, err, "write json")
		}
		return []byte(buf.String()), false, nil
	default:
		return nil, false, ValidateFormat(opts.OutputFormat)
	}
}

// Close releases the runner's cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
