package ops

import "github.com/ouroboros-ml/ouroboros/internal/tensor"

// AddOp represents an element-wise addition operation: output = a + b.
//
// Backward pass:
//   - d(a+b)/da = 1, so grad_a = outputGrad
//   - d(a+b)/db = 1, so grad_b = outputGrad
//
// If broadcasting was used in the forward pass, gradients are reduced
// (summed) along the broadcast dimensions to match input shapes.
type AddOp struct{}

// Kind returns KindAdd.
func (AddOp) Kind() Kind { return KindAdd }

// Symbol returns "+".
func (AddOp) Symbol() string { return "+" }

// Forward computes a + b.
func (AddOp) Forward(inputs []*tensor.Array) (*tensor.Array, error) {
	a, b, err := binary(inputs)
	if err != nil {
		return nil, err
	}
	return tensor.Add(a, b)
}

// Backward computes input gradients for addition.
// Since d(a+b)/da = d(a+b)/db = 1, the gradient flows equally to both inputs.
func (AddOp) Backward(outputGrad *tensor.Array, inputs []*tensor.Array) ([]*tensor.Array, error) {
	a, b, err := binary(inputs)
	if err != nil {
		return nil, err
	}

	gradA, err := reduceBroadcast(outputGrad, a.Shape())
	if err != nil {
		return nil, err
	}
	gradB, err := reduceBroadcast(outputGrad, b.Shape())
	if err != nil {
		return nil, err
	}
	return []*tensor.Array{gradA, gradB}, nil
}
