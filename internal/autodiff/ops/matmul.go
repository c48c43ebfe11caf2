package ops

import "github.com/ouroboros-ml/ouroboros/internal/tensor"

// MatMulOp represents a matrix multiplication operation: output = a @ b.
//
// Backward pass:
//   - scalar output (vector @ vector): grad_a = outputGrad * b, grad_b = a * outputGrad
//   - otherwise: grad_a = outputGrad @ b^T, grad_b = a^T @ outputGrad
//
// Rank-1 operands are promoted to a row (a) or column (b) matrix before the
// matrix rule is applied. The result is reshaped back to the operand's shape.
type MatMulOp struct{}

// Kind returns KindMatMul.
func (MatMulOp) Kind() Kind { return KindMatMul }

// Symbol returns "@".
func (MatMulOp) Symbol() string { return "@" }

// Forward computes a @ b.
func (MatMulOp) Forward(inputs []*tensor.Array) (*tensor.Array, error) {
	a, b, err := binary(inputs)
	if err != nil {
		return nil, err
	}
	return tensor.MatMul(a, b)
}

// Backward computes input gradients for matrix multiplication.
func (MatMulOp) Backward(outputGrad *tensor.Array, inputs []*tensor.Array) ([]*tensor.Array, error) {
	a, b, err := binary(inputs)
	if err != nil {
		return nil, err
	}

	if outputGrad.Ndim() == 0 {
		gradA, err := tensor.Mul(outputGrad, b)
		if err != nil {
			return nil, err
		}
		gradB, err := tensor.Mul(a, outputGrad)
		if err != nil {
			return nil, err
		}
		return []*tensor.Array{gradA, gradB}, nil
	}

	am := tensor.AsMatrix(a, true)
	bm := tensor.AsMatrix(b, false)
	gm, err := outputGrad.Reshape(tensor.Shape{am.Shape()[0], bm.Shape()[1]})
	if err != nil {
		return nil, err
	}

	// grad_a = outputGrad @ b^T
	gradA, err := tensor.MatMul(gm, tensor.Transpose(bm))
	if err != nil {
		return nil, err
	}
	if gradA, err = gradA.Reshape(a.Shape()); err != nil {
		return nil, err
	}

	// grad_b = a^T @ outputGrad
	gradB, err := tensor.MatMul(tensor.Transpose(am), gm)
	if err != nil {
		return nil, err
	}
	if gradB, err = gradB.Reshape(b.Shape()); err != nil {
		return nil, err
	}

	return []*tensor.Array{gradA, gradB}, nil
}
