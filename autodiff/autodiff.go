// Copyright 2025 Ouroboros Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package autodiff provides reverse-mode automatic differentiation.
//
// Arithmetic on Values records a computation graph. Backward walks that graph
// in reverse topological order and accumulates the gradient of the output
// into every Value it depends on.
//
// Example:
//
//	import "github.com/ouroboros-ml/ouroboros/autodiff"
//
//	func main() {
//	    u := autodiff.MustValue([]float64{1, 2, 3})
//	    v := autodiff.MustValue([]float64{4, 5, 6})
//
//	    out := u.MatMul(v) // 32
//	    if err := out.Backward(); err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println(u.Grad()) // [4 5 6]
//	}
package autodiff

import (
	"github.com/ouroboros-ml/ouroboros/internal/autodiff"
	"github.com/ouroboros-ml/ouroboros/internal/autodiff/ops"
	"github.com/ouroboros-ml/ouroboros/internal/tensor"
)

// Value is a node of the computation graph.
type Value = autodiff.Value

// Func is a differentiable function of one Value.
type Func = autodiff.Func

// Kind tags the operation that produced a Value.
type Kind = ops.Kind

// Operation kinds.
const (
	KindLeaf   Kind = ops.KindLeaf
	KindAdd    Kind = ops.KindAdd
	KindMul    Kind = ops.KindMul
	KindPow    Kind = ops.KindPow
	KindMatMul Kind = ops.KindMatMul
)

// Errors returned by graph construction and differentiation.
var (
	ErrUnsupportedType = autodiff.ErrUnsupportedType
	ErrInvalidExponent = autodiff.ErrInvalidExponent
	ErrNotImplemented  = autodiff.ErrNotImplemented
	ErrShapeMismatch   = autodiff.ErrShapeMismatch
	ErrRaggedSequence  = autodiff.ErrRaggedSequence
)

// AsValue promotes x to a Value. Values are returned unchanged; numbers,
// arrays and nested slices become new leaves.
func AsValue(x any) (*Value, error) {
	return autodiff.AsValue(x)
}

// MustValue is like AsValue but panics on error.
func MustValue(x any) *Value {
	return autodiff.MustValue(x)
}

// NewLeaf wraps an array as an input Value.
func NewLeaf(a *tensor.Array) *Value {
	return autodiff.NewLeaf(a)
}

// Add returns a + b.
func Add(a, b any) (*Value, error) { return autodiff.Add(a, b) }

// Mul returns the elementwise product a * b.
func Mul(a, b any) (*Value, error) { return autodiff.Mul(a, b) }

// Pow returns a ** k for a real scalar k.
func Pow(a, k any) (*Value, error) { return autodiff.Pow(a, k) }

// Neg returns -a.
func Neg(a any) (*Value, error) { return autodiff.Neg(a) }

// Sub returns a - b.
func Sub(a, b any) (*Value, error) { return autodiff.Sub(a, b) }

// Div returns a / b.
func Div(a, b any) (*Value, error) { return autodiff.Div(a, b) }

// MatMul returns the matrix product a @ b.
func MatMul(a, b any) (*Value, error) { return autodiff.MatMul(a, b) }

// Transpose returns a transposed view of a.
func Transpose(a any) (*Value, error) { return autodiff.Transpose(a) }

// GradientOf returns the gradient of fn at x.
func GradientOf(fn Func, x any) (*tensor.Array, error) {
	return autodiff.GradientOf(fn, x)
}

// HessianOf always fails with ErrNotImplemented.
func HessianOf(fn Func, x any) (*tensor.Array, error) {
	return autodiff.HessianOf(fn, x)
}
