// Package parallel runs independent index-addressed work items concurrently.
//
// Each item must touch its own state only. Work items that build computation
// graphs must build a separate graph per item.
package parallel

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/ouroboros-ml/ouroboros/internal/envconfig"
)

// Config controls parallel execution behavior.
type Config struct {
	Enabled      bool // Whether parallel execution is enabled.
	NumWorkers   int  // Maximum concurrent chunks.
	MinChunkSize int  // Minimum items per goroutine.
}

// DefaultConfig sizes the pool from OUROBOROS_PARALLEL.
func DefaultConfig() Config {
	n := int(envconfig.Parallel())
	return Config{
		Enabled:      n > 1,
		NumWorkers:   n,
		MinChunkSize: 8,
	}
}

// For executes f(i) for i in [0, n), stopping at the first error.
// Falls back to sequential execution if parallelism is disabled or n is too small.
func For(ctx context.Context, n int, f func(i int) error, cfg Config) error {
	if !cfg.Enabled || cfg.NumWorkers < 2 || n < cfg.MinChunkSize {
		for i := 0; i < n; i++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := f(i); err != nil {
				return err
			}
		}
		return nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.NumWorkers)
	chunkSize := max((n+cfg.NumWorkers-1)/cfg.NumWorkers, cfg.MinChunkSize, 1)

	for start := 0; start < n; start += chunkSize {
		start := start
		end := min(start+chunkSize, n)
		g.Go(func() error {
			for i := start; i < end; i++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				if err := f(i); err != nil {
					return err
				}
			}
			return nil
		})
	}
	return g.Wait()
}
