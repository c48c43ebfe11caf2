package ops

import (
	"fmt"
	"strconv"

	"github.com/ouroboros-ml/ouroboros/internal/tensor"
)

// PowOp raises its single input to a constant exponent: output = a ** k.
//
// Backward pass:
//   - d(a**k)/da = k * a**(k-1), so grad_a = k * a**(k-1) * outputGrad
//
// The exponent is not a graph node and receives no gradient.
type PowOp struct {
	Exponent float64
}

// NewPowOp creates a new PowOp.
func NewPowOp(k float64) PowOp {
	return PowOp{Exponent: k}
}

// Kind returns KindPow.
func (PowOp) Kind() Kind { return KindPow }

// Symbol returns the exponent label, e.g. "**2".
func (op PowOp) Symbol() string {
	return "**" + strconv.FormatFloat(op.Exponent, 'g', -1, 64)
}

// Forward computes a ** k.
func (op PowOp) Forward(inputs []*tensor.Array) (*tensor.Array, error) {
	if len(inputs) != 1 {
		return nil, fmt.Errorf("pow expects 1 input, got %d", len(inputs))
	}
	return tensor.Pow(inputs[0], op.Exponent), nil
}

// Backward computes the input gradient for the power rule.
func (op PowOp) Backward(outputGrad *tensor.Array, inputs []*tensor.Array) ([]*tensor.Array, error) {
	if len(inputs) != 1 {
		return nil, fmt.Errorf("pow expects 1 input, got %d", len(inputs))
	}

	local := tensor.Scale(tensor.Pow(inputs[0], op.Exponent-1), op.Exponent)
	grad, err := tensor.Mul(local, outputGrad)
	if err != nil {
		return nil, err
	}
	if grad, err = reduceBroadcast(grad, inputs[0].Shape()); err != nil {
		return nil, err
	}
	return []*tensor.Array{grad}, nil
}
