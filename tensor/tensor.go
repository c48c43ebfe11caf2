// Copyright 2025 Ouroboros Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/ouroboros-ml/ouroboros/internal/tensor"
)

// Type aliases for public API

// Shape represents the dimensions of an array.
// Example: Shape{2, 3, 4} represents a 3D array with dimensions 2×3×4.
// An empty Shape is a 0-dimensional scalar.
type Shape = tensor.Shape

// Array is a dense row-major float64 array.
type Array = tensor.Array

// Errors returned by array operations.
var (
	ErrShapeMismatch  = tensor.ErrShapeMismatch
	ErrInvalidShape   = tensor.ErrInvalidShape
	ErrRaggedSequence = tensor.ErrRaggedSequence
	ErrNotNumeric     = tensor.ErrNotNumeric
)

// Creation functions

// FromSlice creates an array from a copy of data with the given shape.
func FromSlice(data []float64, shape Shape) (*Array, error) {
	return tensor.FromSlice(data, shape)
}

// FromNested creates an array from a number or a rectangular nested slice of
// numbers.
func FromNested(v any) (*Array, error) {
	return tensor.FromNested(v)
}

// Zeros creates an array filled with zeros.
func Zeros(shape Shape) *Array {
	return tensor.Zeros(shape)
}

// Ones creates an array filled with ones.
func Ones(shape Shape) *Array {
	return tensor.Ones(shape)
}

// Full creates an array filled with value.
func Full(shape Shape, value float64) *Array {
	return tensor.Full(shape, value)
}

// Scalar creates a 0-dimensional array.
func Scalar(v float64) *Array {
	return tensor.Scalar(v)
}

// Operations

// BroadcastShapes returns the broadcast result shape of a and b and whether
// broadcasting is needed.
func BroadcastShapes(a, b Shape) (Shape, bool, error) {
	return tensor.BroadcastShapes(a, b)
}

// Add returns a + b with broadcasting.
func Add(a, b *Array) (*Array, error) {
	return tensor.Add(a, b)
}

// Sub returns a - b with broadcasting.
func Sub(a, b *Array) (*Array, error) {
	return tensor.Sub(a, b)
}

// Mul returns the elementwise product with broadcasting.
func Mul(a, b *Array) (*Array, error) {
	return tensor.Mul(a, b)
}

// Pow raises every element to the power k.
func Pow(a *Array, k float64) *Array {
	return tensor.Pow(a, k)
}

// Neg returns -a.
func Neg(a *Array) *Array {
	return tensor.Neg(a)
}

// Sum returns the sum of all elements.
func Sum(a *Array) float64 {
	return tensor.Sum(a)
}

// SumTo sums a over broadcast axes so the result has the target shape.
func SumTo(a *Array, target Shape) (*Array, error) {
	return tensor.SumTo(a, target)
}

// MatMul returns the matrix product with NumPy semantics for 1-D and 2-D
// operands.
func MatMul(a, b *Array) (*Array, error) {
	return tensor.MatMul(a, b)
}

// Transpose reverses the axes of a.
func Transpose(a *Array) *Array {
	return tensor.Transpose(a)
}

// MaxAbsDiff returns the largest absolute elementwise difference of two
// arrays of the same shape.
func MaxAbsDiff(a, b *Array) (float64, error) {
	return tensor.MaxAbsDiff(a, b)
}
