package ops

import (
	"fmt"

	"github.com/ouroboros-ml/ouroboros/internal/tensor"
)

// reduceBroadcast reduces a gradient to match the target shape.
// This is necessary when broadcasting was used in the forward pass.
//
// Example:
//
//	Forward: a[3,1] + b[3,4] -> c[3,4]  (a was broadcast along dim 1)
//	Backward: grad_c[3,4] -> grad_a[3,1] (sum along dim 1)
//
// A result that already has the target shape is cloned so that contributions
// to different inputs never alias each other.
func reduceBroadcast(grad *tensor.Array, targetShape tensor.Shape) (*tensor.Array, error) {
	return tensor.SumTo(grad, targetShape)
}

func binary(inputs []*tensor.Array) (a, b *tensor.Array, err error) {
	if len(inputs) != 2 {
		return nil, nil, fmt.Errorf("binary operation expects 2 inputs, got %d", len(inputs))
	}
	return inputs[0], inputs[1], nil
}
