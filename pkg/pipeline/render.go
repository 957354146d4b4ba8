package pipeline

import (
	"context"
	"strings"
	"time"

	"github.com/matzehuels/boxtree/pkg/cache"
	"github.com/matzehuels/boxtree/pkg/dag"
	errs "github.com/matzehuels/boxtree/pkg/errors"
	"github.com/matzehuels/boxtree/pkg/observability"
	"github.com/matzehuels/boxtree/pkg/render/nodelink"
	"github.com/matzehuels/boxtree/pkg/tree"
)

// Text draws the tree rooted at root in the orientation and label mode of
// opts. Lines are joined with "\n" without a trailing newline; with
// opts.Trim, trailing blanks are removed from every line. Trees that expand
// to more than opts.MaxNodes nodes are rejected before any layout work.
func Text(ctx context.Context, g *dag.DAG, root string, opts Options) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	t, err := g.Tree(root)
	if err != nil {
		return "", errs.Wrap(errs.ErrCodeUnknownRoot, err, "root %q", root)
	}
	limit := opts.MaxNodes
	if limit <= 0 {
		limit = DefaultMaxNodes
	}
	if size := g.TreeSize(root); size > limit {
		return "", errs.New(errs.ErrCodeTreeTooLarge,
			"tree from %q expands to %d nodes (limit %d); export as dot, svg or json instead", root, size, limit)
	}

	stringify := dag.TreeNode.Label
	if opts.Label == LabelID {
		stringify = dag.TreeNode.ID
	}

	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, opts.Orientation, g.NodeCount())
	start := time.Now()

	var lines []string
	if opts.IsHorizontal() {
		lines = tree.HorizontalLines(t, stringify)
	} else {
		lines = tree.VerticalColumn(t, stringify)
	}
	if opts.Trim {
		trimmed := make([]string, len(lines))
		for i, line := range lines {
			trimmed[i] = strings.TrimRight(line, " ")
		}
		lines = trimmed
	}

	hooks.OnLayoutComplete(ctx, opts.Orientation, len(lines), time.Since(start), nil)
	return strings.Join(lines, "\n"), nil
}

func dotSource(g *dag.DAG, opts Options) string {
	return nodelink.ToDOT(g, nodelink.Options{Horizontal: opts.IsHorizontal()})
}

// renderSVG renders through Graphviz, consulting the cache first. Cache
// failures are logged and never fail the render.
func (r *Runner) renderSVG(ctx context.Context, g *dag.DAG, opts Options) ([]byte, bool, error) {
	dot := dotSource(g, opts)
	key := cache.Key("svg", dot)
	if nc, ok := r.Cache.(*cache.NullCache); ok {
		opts.Logger.Debug("svg cache disabled", "reason", nc.Reason())
	}

	if !opts.NoCache {
		data, hit, err := r.Cache.Get(ctx, key)
		if err != nil {
			opts.Logger.Warn("cache read failed", "err", err)
		} else if hit {
			opts.Logger.Debug("svg cache hit", "key", key)
			return data, true, nil
		}
	}

	svg, err := nodelink.RenderSVG(ctx, dot)
	if err != nil {
		return nil, false, errs.Wrap(errs.ErrCodeInternal, err, "render svg")
	}

	if !opts.NoCache {
		if err := r.Cache.Set(ctx, key, svg, r.TTL); err != nil {
			opts.Logger.Warn("cache write failed", "err", err)
		}
	}
	return svg, false, nil
}
