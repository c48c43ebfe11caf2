package autodiff

import (
	"fmt"

	"github.com/ouroboros-ml/ouroboros/internal/autodiff/ops"
	"github.com/ouroboros-ml/ouroboros/internal/tensor"
)

// apply runs the forward pass of op and records the result node.
func apply(op ops.Operation, inputs ...*Value) (*Value, error) {
	payloads := make([]*tensor.Array, len(inputs))
	for i, in := range inputs {
		payloads[i] = in.payload
	}
	out, err := op.Forward(payloads)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op.Kind(), err)
	}
	return newResult(out, op, inputs...), nil
}

// Add returns a + b with broadcasting.
func Add(a, b any) (*Value, error) {
	va, vb, err := coerce2(a, b)
	if err != nil {
		return nil, err
	}
	return apply(ops.AddOp{}, va, vb)
}

// Mul returns the element-wise product a * b with broadcasting.
func Mul(a, b any) (*Value, error) {
	va, vb, err := coerce2(a, b)
	if err != nil {
		return nil, err
	}
	return apply(ops.MulOp{}, va, vb)
}

// Pow returns a ** k. The exponent must be a plain Go number; anything else,
// including a *Value, fails with ErrInvalidExponent.
func Pow(a, k any) (*Value, error) {
	exp, ok := scalarOf(k)
	if !ok {
		return nil, fmt.Errorf("%w: got %T", ErrInvalidExponent, k)
	}
	va, err := AsValue(a)
	if err != nil {
		return nil, err
	}
	return apply(ops.NewPowOp(exp), va)
}

// Neg returns -a, computed as a * full(a.shape, -1).
func Neg(a any) (*Value, error) {
	va, err := AsValue(a)
	if err != nil {
		return nil, err
	}
	return Mul(va, tensor.Full(va.Shape(), -1))
}

// Sub returns a - b, computed as a + (-b).
func Sub(a, b any) (*Value, error) {
	vb, err := Neg(b)
	if err != nil {
		return nil, err
	}
	return Add(a, vb)
}

// Div returns a / b, computed as a * b**-1.
func Div(a, b any) (*Value, error) {
	inv, err := Pow(b, -1)
	if err != nil {
		return nil, err
	}
	return Mul(a, inv)
}

// MatMul returns the matrix product a @ b for operands of rank 1 or 2.
// A vector-vector product yields a 0-dimensional value.
func MatMul(a, b any) (*Value, error) {
	va, vb, err := coerce2(a, b)
	if err != nil {
		return nil, err
	}
	return apply(ops.MatMulOp{}, va, vb)
}

// Transpose returns a view of a with its axes reversed.
//
// The view is not a node of its own: it reports the same parents and
// operation as a, and gradient accumulated into it lands in a's gradient.
func Transpose(a any) (*Value, error) {
	va, err := AsValue(a)
	if err != nil {
		return nil, err
	}
	return &Value{
		payload: tensor.Transpose(va.payload),
		origin:  va,
	}, nil
}

func must(v *Value, err error) *Value {
	if err != nil {
		panic(err)
	}
	return v
}

// The methods below mirror the package functions for chaining. They panic
// where the functions return an error.

// Add returns v + other.
func (v *Value) Add(other any) *Value { return must(Add(v, other)) }

// Mul returns v * other.
func (v *Value) Mul(other any) *Value { return must(Mul(v, other)) }

// Pow returns v ** k.
func (v *Value) Pow(k any) *Value { return must(Pow(v, k)) }

// Neg returns -v.
func (v *Value) Neg() *Value { return must(Neg(v)) }

// Sub returns v - other.
func (v *Value) Sub(other any) *Value { return must(Sub(v, other)) }

// Div returns v / other.
func (v *Value) Div(other any) *Value { return must(Div(v, other)) }

// MatMul returns v @ other.
func (v *Value) MatMul(other any) *Value { return must(MatMul(v, other)) }

// T returns the transposed view of v.
func (v *Value) T() *Value { return must(Transpose(v)) }

// RAdd returns other + v.
func (v *Value) RAdd(other any) *Value { return must(Add(v, other)) }

// RMul returns other * v.
func (v *Value) RMul(other any) *Value { return must(Mul(v, other)) }

// RSub returns other - v, computed as other + (-v).
func (v *Value) RSub(other any) *Value {
	return must(Add(other, v.Neg()))
}

// RDiv returns other / v, computed as other * v**-1.
func (v *Value) RDiv(other any) *Value {
	return must(Mul(other, v.Pow(-1)))
}

// RMatMul returns other @ v.
func (v *Value) RMatMul(other any) *Value { return must(MatMul(other, v)) }
