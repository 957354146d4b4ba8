package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/boxtree/pkg/pipeline"
)

// newLogger creates the stderr logger used by every command. Timestamps look
// like "14:32:01.45".
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// runLog times one pipeline run from input to output.
type runLog struct {
	logger *log.Logger
	source string
	start  time.Time
}

func newRunLog(l *log.Logger, source string) *runLog {
	return &runLog{logger: l, source: source, start: time.Now()}
}

// done logs a debug summary of res with per-stage timings.
func (r *runLog) done(format string, res *pipeline.Result) {
	r.logger.Debug("rendered",
		"source", r.source,
		"format", format,
		"nodes", res.Stats.NodeCount,
		"edges", res.Stats.EdgeCount,
		"drawn", res.Stats.TreeNodes,
		"bytes", res.Stats.Bytes,
		"cached", res.Stats.CacheHit,
		"parse", res.Stats.ParseTime.Round(time.Microsecond),
		"prepare", res.Stats.PrepareTime.Round(time.Microsecond),
		"render", res.Stats.RenderTime.Round(time.Microsecond),
		"total", time.Since(r.start).Round(time.Millisecond),
	)
}

type ctxKey int

const loggerKey ctxKey = 0

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext returns the logger attached to ctx, or log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
