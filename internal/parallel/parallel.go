// Package parallel fans independent work items out over a bounded set of
// goroutines.
//
// It is meant for work that shares no mutable state, such as evaluating
// separate computation graphs. A single autodiff graph must never be handed
// to more than one goroutine.
package parallel

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Config controls parallel execution behavior.
type Config struct {
	Enabled    bool // Whether parallel execution is enabled.
	NumWorkers int  // Maximum number of concurrent goroutines.
}

// DefaultConfig returns sensible defaults based on CPU count.
func DefaultConfig() Config {
	n := runtime.NumCPU()
	return Config{
		Enabled:    n > 1,
		NumWorkers: n,
	}
}

// WithWorkers returns a config limited to n workers.
// n <= 1 disables parallelism.
func WithWorkers(n int) Config {
	return Config{Enabled: n > 1, NumWorkers: n}
}

// ForEach calls f(ctx, i) for i in [0, n).
//
// The first error cancels the context passed to the remaining calls and is
// returned once all started calls finish. Items not yet started when the
// context is done are skipped. Falls back to sequential execution when
// parallelism is disabled.
func ForEach(ctx context.Context, n int, f func(ctx context.Context, i int) error, cfg Config) error {
	if !cfg.Enabled || cfg.NumWorkers <= 1 || n <= 1 {
		for i := range n {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := f(ctx, i); err != nil {
				return err
			}
		}
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.NumWorkers)
	for i := range n {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return f(gctx, i)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}
