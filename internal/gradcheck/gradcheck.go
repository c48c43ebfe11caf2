// Package gradcheck verifies reverse-mode gradients against central finite
// differences.
//
// For each element x[i] the numerical estimate is
//
//	(sum(f(x + eps*e_i)) - sum(f(x - eps*e_i))) / (2*eps)
//
// Every evaluation builds its own graph, so elements are estimated
// concurrently (see package parallel).
package gradcheck

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/ouroboros-ml/ouroboros/internal/autodiff"
	"github.com/ouroboros-ml/ouroboros/internal/envconfig"
	"github.com/ouroboros-ml/ouroboros/internal/parallel"
	"github.com/ouroboros-ml/ouroboros/internal/tensor"
)

// ErrInvalidOptions is returned for a non-positive epsilon or negative tolerance.
var ErrInvalidOptions = errors.New("invalid gradcheck options")

// Options configures a comparison.
type Options struct {
	Epsilon   float64 // central-difference step
	Tolerance float64 // maximum accepted absolute error
	Parallel  parallel.Config
}

// DefaultOptions reads OUROBOROS_EPSILON, OUROBOROS_TOLERANCE and
// OUROBOROS_PARALLEL.
func DefaultOptions() Options {
	return Options{
		Epsilon:   envconfig.Epsilon(),
		Tolerance: envconfig.Tolerance(),
		Parallel:  parallel.DefaultConfig(),
	}
}

// Report is the outcome of Compare.
type Report struct {
	Value       float64       // sum(f(x))
	Analytic    *tensor.Array // reverse-mode gradient
	Numerical   *tensor.Array // finite-difference estimate
	MaxAbsError float64
	Tolerance   float64
	Passed      bool
}

// Numerical estimates the gradient of sum(fn(x)) at x with central differences.
func Numerical(fn autodiff.Func, x *tensor.Array, eps float64) (*tensor.Array, error) {
	return numerical(context.Background(), fn, x, eps, parallel.DefaultConfig())
}

func numerical(ctx context.Context, fn autodiff.Func, x *tensor.Array, eps float64, cfg parallel.Config) (*tensor.Array, error) {
	if eps <= 0 {
		return nil, fmt.Errorf("%w: epsilon %g", ErrInvalidOptions, eps)
	}

	grad := tensor.Zeros(x.Shape())
	out := grad.Data()
	err := parallel.For(ctx, x.NumElements(), func(i int) error {
		plus, err := perturbed(fn, x, i, eps)
		if err != nil {
			return err
		}
		minus, err := perturbed(fn, x, i, -eps)
		if err != nil {
			return err
		}
		out[i] = (plus - minus) / (2 * eps)
		return nil
	}, cfg)
	if err != nil {
		return nil, err
	}
	return grad, nil
}

// perturbed evaluates sum(fn(x)) with x[i] shifted by delta.
func perturbed(fn autodiff.Func, x *tensor.Array, i int, delta float64) (float64, error) {
	xp := x.Clone()
	xp.Data()[i] += delta
	return evaluate(fn, autodiff.NewLeaf(xp))
}

func evaluate(fn autodiff.Func, x *autodiff.Value) (float64, error) {
	y, err := fn(x)
	if err != nil {
		return 0, err
	}
	if y == nil {
		return 0, errors.New("function returned a nil value")
	}
	return tensor.Sum(y.Data()), nil
}

// Compare computes the reverse-mode gradient of fn at x and checks it against
// the numerical estimate.
func Compare(fn autodiff.Func, x *tensor.Array, opts Options) (Report, error) {
	return CompareContext(context.Background(), fn, x, opts)
}

// CompareContext is Compare with a context that cancels the numerical estimate.
func CompareContext(ctx context.Context, fn autodiff.Func, x *tensor.Array, opts Options) (Report, error) {
	if opts.Tolerance < 0 {
		return Report{}, fmt.Errorf("%w: tolerance %g", ErrInvalidOptions, opts.Tolerance)
	}

	leaf := autodiff.NewLeaf(x.Clone())
	y, err := fn(leaf)
	if err != nil {
		return Report{}, fmt.Errorf("evaluate: %w", err)
	}
	if y == nil {
		return Report{}, errors.New("evaluate: function returned a nil value")
	}
	if err := y.Backward(); err != nil {
		return Report{}, fmt.Errorf("backward: %w", err)
	}
	analytic := leaf.Grad()

	numeric, err := numerical(ctx, fn, x, opts.Epsilon, opts.Parallel)
	if err != nil {
		return Report{}, fmt.Errorf("numerical: %w", err)
	}

	maxErr, err := tensor.MaxAbsDiff(analytic, numeric)
	if err != nil {
		return Report{}, err
	}

	r := Report{
		Value:       tensor.Sum(y.Data()),
		Analytic:    analytic,
		Numerical:   numeric,
		MaxAbsError: maxErr,
		Tolerance:   opts.Tolerance,
		Passed:      !math.IsNaN(maxErr) && maxErr <= opts.Tolerance,
	}
	slog.Debug("gradcheck", "shape", x.Shape(), "max_abs_error", maxErr, "passed", r.Passed)
	return r, nil
}
