package curves

import (
	"context"
	"log/slog"
	"runtime"
	"strconv"

	"golang.org/x/sync/errgroup"
)

// BatchResult is the outcome of plotting one expression in a batch. Exactly
// one of Graph and Err is non-nil.
type BatchResult struct {
	Expr  string
	Graph *Graph
	Err   error
}

// BatchTooLargeError is an error indicating a batch with more expressions
// than the engine allows.
type BatchTooLargeError struct {
	Len, Max int
}

func (err *BatchTooLargeError) Error() string {
	return "batch of " + strconv.Itoa(err.Len) + " expressions exceeds limit of " + strconv.Itoa(err.Max)
}

// PlotBatch plots several expressions in parallel with the same request.
// Failure to plot one expression is reported in its result and does not affect
// the others. Expressions which have not started when ctx ends fail with the
// context's error; those already running finish normally.
func (e *Engine) PlotBatch(ctx context.Context, srcs []string, req Request) ([]BatchResult, error) {
	if e.cfg.maxbatch > 0 && len(srcs) > e.cfg.maxbatch {
		return nil, &BatchTooLargeError{Len: len(srcs), Max: e.cfg.maxbatch}
	}
	r := make([]BatchResult, len(srcs))
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, src := range srcs {
		r[i].Expr = src
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				Logger().Warn("skipped expression", slog.String("expr", src), slog.Any("err", err))
				r[i].Err = err
				return nil
			}
			r[i].Graph, r[i].Err = e.Plot(src, req)
			return nil
		})
	}
	// No goroutine returns an error.
	_ = g.Wait()
	return r, nil
}
