// Package autodiff implements reverse-mode automatic differentiation over a
// dynamic computation graph.
//
// Every operator allocates a new Value that records its inputs and the
// operation that produced it. Calling Backward on any Value walks the graph in
// reverse topological order and accumulates gradients into every Value that
// contributed to it.
//
// Example:
//
//	a := autodiff.MustValue(2.0)
//	b := a.Add(a)
//	c := b.Mul(b)
//	if err := c.Backward(); err != nil { ... }
//	fmt.Println(a.Grad()) // 16
//
// A graph is not safe for concurrent use: gradient accumulation is not atomic.
// Independent graphs may be built and differentiated on separate goroutines.
package autodiff

import (
	"fmt"

	"github.com/ouroboros-ml/ouroboros/internal/autodiff/ops"
	"github.com/ouroboros-ml/ouroboros/internal/tensor"
)

// Value is a node of the computation graph: a payload, its gradient
// accumulator, and the record of how it was produced.
//
// payload, inputs and op never change after construction. grad starts at
// zero and is mutated only by gradient accumulation.
type Value struct {
	payload *tensor.Array
	grad    *tensor.Array
	inputs  []*Value // operands in call order, duplicates kept
	op      ops.Operation

	// origin is set on transposed views. A view shares inputs, op and gradient
	// storage with its origin and is never a graph entity of its own.
	origin *Value
}

// NewLeaf wraps an array as an input node with a zero gradient.
// The array is used as-is; callers must not modify it afterwards.
func NewLeaf(payload *tensor.Array) *Value {
	return &Value{
		payload: payload,
		grad:    tensor.Zeros(payload.Shape()),
		op:      ops.LeafOp{},
	}
}

// newResult allocates the output node of an operation.
func newResult(payload *tensor.Array, op ops.Operation, inputs ...*Value) *Value {
	return &Value{
		payload: payload,
		grad:    tensor.Zeros(payload.Shape()),
		inputs:  inputs,
		op:      op,
	}
}

// node resolves a transposed view to the graph entity that owns its storage.
func (v *Value) node() *Value {
	for v.origin != nil {
		v = v.origin
	}
	return v
}

// Data returns the forward-computed payload. It must not be modified.
func (v *Value) Data() *tensor.Array {
	return v.payload
}

// Shape returns the payload's shape.
func (v *Value) Shape() tensor.Shape {
	return v.payload.Shape()
}

// Grad returns a copy of the accumulated gradient, shaped like the payload.
func (v *Value) Grad() *tensor.Array {
	if v.origin != nil {
		return tensor.Transpose(v.origin.Grad())
	}
	return v.grad.Clone()
}

// Op returns the label of the operation that produced the value ("" for leaves).
func (v *Value) Op() string {
	return v.node().op.Symbol()
}

// Kind returns the tag of the operation that produced the value.
func (v *Value) Kind() ops.Kind {
	return v.node().op.Kind()
}

// IsLeaf reports whether the value has no parents.
func (v *Value) IsLeaf() bool {
	return len(v.node().inputs) == 0
}

// Parents returns the distinct nodes this value was derived from, in operand
// order. Transposed operands are reported as their origin.
func (v *Value) Parents() []*Value {
	inputs := v.node().inputs
	parents := make([]*Value, 0, len(inputs))
	for _, in := range inputs {
		p := in.node()
		seen := false
		for _, q := range parents {
			if q == p {
				seen = true
				break
			}
		}
		if !seen {
			parents = append(parents, p)
		}
	}
	return parents
}

// ZeroGrad resets this value's gradient to zero.
func (v *Value) ZeroGrad() {
	v.node().grad.Fill(0)
}

// String implements fmt.Stringer.
func (v *Value) String() string {
	return fmt.Sprintf("Value(data=%v, grad=%v)", v.payload, v.Grad())
}

// accumulate adds a contribution into the gradient. Views forward the
// contribution, transposed back, to their origin.
func (v *Value) accumulate(g *tensor.Array) error {
	if v.origin != nil {
		return v.origin.accumulate(tensor.Transpose(g))
	}
	return v.grad.Accumulate(g)
}
