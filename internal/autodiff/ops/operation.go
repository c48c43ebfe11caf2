// Package ops defines the differentiable operations recorded on graph nodes.
//
// Each operation is a small tagged variant: a Kind plus only the data its
// gradient rule needs. It provides:
//   - Forward: computes the output payload from the input payloads
//   - Backward: computes the contribution to each input's gradient
//
// Supported operations:
//   - LeafOp: input node, no gradient rule
//   - AddOp: element-wise addition (d(a+b)/da = 1, d(a+b)/db = 1)
//   - MulOp: element-wise multiplication (d(a*b)/da = b, d(a*b)/db = a)
//   - PowOp: power by a constant (d(a**k)/da = k*a**(k-1))
//   - MatMulOp: matrix product (d(A@B)/dA = grad@B^T, d(A@B)/dB = A^T@grad)
//
// Negation, subtraction and division are compositions of these and have no
// operation of their own.
package ops

import "github.com/ouroboros-ml/ouroboros/internal/tensor"

// Kind tags the variant of an Operation.
type Kind int

// Operation kinds.
const (
	KindLeaf Kind = iota
	KindAdd
	KindMul
	KindPow
	KindMatMul
)

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case KindLeaf:
		return "leaf"
	case KindAdd:
		return "add"
	case KindMul:
		return "mul"
	case KindPow:
		return "pow"
	case KindMatMul:
		return "matmul"
	default:
		return "unknown"
	}
}

// Operation represents a differentiable operation in the computation graph.
// Operations hold no references to graph nodes; inputs are supplied as
// payloads by the caller, in the order they were passed to Forward.
type Operation interface {
	// Kind returns the variant tag.
	Kind() Kind

	// Symbol returns the diagnostic label of the operation ("" for leaves).
	Symbol() string

	// Forward computes the output payload.
	Forward(inputs []*tensor.Array) (*tensor.Array, error)

	// Backward computes the gradient contribution for each input, given the
	// output gradient. Each returned array has the shape of its input.
	//
	// Example for AddOp:
	//   inputs: [a, b]
	//   outputGrad: dL/d(a+b)
	//   returns: [dL/d(a+b), dL/d(a+b)] (gradient flows equally to both inputs)
	Backward(outputGrad *tensor.Array, inputs []*tensor.Array) ([]*tensor.Array, error)
}
