package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/ouroboros-ml/ouroboros/internal/envconfig"
	"github.com/ouroboros-ml/ouroboros/internal/funcs"
	"github.com/ouroboros-ml/ouroboros/internal/gradcheck"
	"github.com/ouroboros-ml/ouroboros/internal/parallel"
	"github.com/ouroboros-ml/ouroboros/internal/tensor"
)

// CheckHandler compares reverse-mode gradients with finite differences for
// the named functions (all of them when none are given). Each function is
// checked on its own graph, concurrently. It fails if any check fails.
func CheckHandler(cmd *cobra.Command, args []string) error {
	names := args
	if len(names) == 0 {
		names = funcs.Names()
	}

	entries := make([]funcs.Entry, len(names))
	for i, name := range names {
		e, err := funcs.Lookup(name)
		if err != nil {
			return err
		}
		entries[i] = e
	}

	opts := gradcheck.DefaultOptions()
	if eps, _ := cmd.Flags().GetFloat64("epsilon"); eps > 0 {
		opts.Epsilon = eps
	}
	if tol, _ := cmd.Flags().GetFloat64("tolerance"); tol > 0 {
		opts.Tolerance = tol
	}
	if len(entries) > 1 {
		// Functions already run concurrently.
		opts.Parallel = parallel.Config{}
	}

	inputs := make([]*tensor.Array, len(entries))
	for i, e := range entries {
		x, err := parseInput(cmd, e)
		if err != nil {
			return fmt.Errorf("%s: %w", e.Name, err)
		}
		inputs[i] = x.Data()
	}

	reports := make([]gradcheck.Report, len(entries))
	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(int(envconfig.Parallel()))
	for i, e := range entries {
		i, e := i, e
		g.Go(func() error {
			r, err := gradcheck.CompareContext(ctx, e.Fn, inputs[i], opts)
			if err != nil {
				return fmt.Errorf("%s: %w", e.Name, err)
			}
			reports[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	var data [][]string
	var failed int
	for i, r := range reports {
		status := "ok"
		if !r.Passed {
			status = "FAIL"
			failed++
		}
		data = append(data, []string{
			entries[i].Name,
			strconv.FormatFloat(r.MaxAbsError, 'e', 2, 64),
			strconv.FormatFloat(r.Tolerance, 'e', 2, 64),
			status,
		})
	}

	table := newTable(cmd.OutOrStdout(), []string{"FUNCTION", "MAX ABS ERROR", "TOLERANCE", "STATUS"})
	table.AppendBulk(data)
	table.Render()

	if failed > 0 {
		return fmt.Errorf("%d of %d gradient checks failed", failed, len(reports))
	}
	return nil
}
