package ops

import "github.com/ouroboros-ml/ouroboros/internal/tensor"

// MulOp represents an element-wise multiplication operation: output = a * b.
//
// Backward pass:
//   - d(a*b)/da = b, so grad_a = outputGrad * b
//   - d(a*b)/db = a, so grad_b = outputGrad * a
type MulOp struct{}

// Kind returns KindMul.
func (MulOp) Kind() Kind { return KindMul }

// Symbol returns "*".
func (MulOp) Symbol() string { return "*" }

// Forward computes a * b.
func (MulOp) Forward(inputs []*tensor.Array) (*tensor.Array, error) {
	a, b, err := binary(inputs)
	if err != nil {
		return nil, err
	}
	return tensor.Mul(a, b)
}

// Backward computes input gradients for multiplication.
func (MulOp) Backward(outputGrad *tensor.Array, inputs []*tensor.Array) ([]*tensor.Array, error) {
	a, b, err := binary(inputs)
	if err != nil {
		return nil, err
	}

	// grad_a = outputGrad * b
	gradA, err := tensor.Mul(b, outputGrad)
	if err != nil {
		return nil, err
	}
	if gradA, err = reduceBroadcast(gradA, a.Shape()); err != nil {
		return nil, err
	}

	// grad_b = outputGrad * a
	gradB, err := tensor.Mul(a, outputGrad)
	if err != nil {
		return nil, err
	}
	if gradB, err = reduceBroadcast(gradB, b.Shape()); err != nil {
		return nil, err
	}

	return []*tensor.Array{gradA, gradB}, nil
}
