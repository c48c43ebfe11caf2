package autodiff

import (
	"fmt"

	"github.com/ouroboros-ml/ouroboros/internal/tensor"
)

// Func is a differentiable function built from the operators in this package.
type Func func(x *Value) (*Value, error)

// GradientOf evaluates fn at x and returns the gradient of fn's output
// (summed over its elements) with respect to x.
//
// If x is already a *Value its gradient accumulates as with Backward;
// otherwise x is promoted to a fresh leaf.
func GradientOf(fn Func, x any) (*tensor.Array, error) {
	in, err := AsValue(x)
	if err != nil {
		return nil, err
	}
	out, err := fn(in)
	if err != nil {
		return nil, err
	}
	if out == nil {
		return nil, errNilFunctionValue
	}
	if err := out.Backward(); err != nil {
		return nil, err
	}
	return in.Grad(), nil
}

// HessianOf is not supported: second derivatives are out of scope.
// It always returns an error wrapping ErrNotImplemented.
func HessianOf(fn Func, x any) (*tensor.Array, error) {
	return nil, fmt.Errorf("hessian: %w", ErrNotImplemented)
}
