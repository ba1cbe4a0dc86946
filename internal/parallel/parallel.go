// Package parallel splits index ranges across a bounded set of goroutines.
//
// It backs the large elementwise loops in ndarray. Small ranges run inline on
// the calling goroutine.
package parallel

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Config controls parallel execution behavior.
type Config struct {
	Enabled      bool // Whether parallel execution is enabled.
	NumWorkers   int  // Number of worker goroutines to use.
	MinChunkSize int  // Minimum items per goroutine to avoid overhead.
}

// DefaultConfig returns sensible defaults based on CPU count.
func DefaultConfig() Config {
	n := runtime.NumCPU()
	return Config{
		Enabled:      n > 1,
		NumWorkers:   n,
		MinChunkSize: 4096,
	}
}

// Sequential returns a Config that always runs inline.
func Sequential() Config {
	return Config{NumWorkers: 1, MinChunkSize: 1}
}

// chunk returns the per-goroutine range length, or 0 if n should run inline.
func (c Config) chunk(n int) int {
	if !c.Enabled || c.NumWorkers < 2 || n < 2*max(c.MinChunkSize, 1) {
		return 0
	}
	return max((n+c.NumWorkers-1)/c.NumWorkers, c.MinChunkSize)
}

// Range calls f on disjoint half-open ranges covering [0, n).
// f must only touch state owned by its range.
func Range(n int, f func(start, end int), cfg Config) {
	size := cfg.chunk(n)
	if size == 0 {
		if n > 0 {
			f(0, n)
		}
		return
	}

	var g errgroup.Group
	g.SetLimit(cfg.NumWorkers)
	for start := 0; start < n; start += size {
		end := min(start+size, n)
		g.Go(func() error {
			f(start, end)
			return nil
		})
	}
	_ = g.Wait()
}

// For executes f(i) for i in [0, n).
func For(n int, f func(i int), cfg Config) {
	Range(n, func(start, end int) {
		for i := start; i < end; i++ {
			f(i)
		}
	}, cfg)
}

// ForErr executes f(ctx, i) for i in [0, n) and returns the first error.
// The context passed to f is cancelled once any call fails; remaining
// calls observe the cancellation and are skipped.
func ForErr(ctx context.Context, n int, f func(ctx context.Context, i int) error, cfg Config) error {
	workers := 1
	if cfg.Enabled && cfg.NumWorkers > 1 {
		workers = cfg.NumWorkers
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
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
