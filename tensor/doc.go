// Copyright 2025 Ouroboros Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the N-dimensional float64 arrays that autodiff
// values carry as payloads.
//
// # Overview
//
// Arrays are dense, row-major and immutable once handed to the autodiff
// package. This package provides:
//   - Construction from slices, nested sequences and fill values
//   - NumPy-style broadcasting for elementwise operations
//   - Matrix products and transposition backed by gonum
//
// # Basic Usage
//
//	import "github.com/ouroboros-ml/ouroboros/tensor"
//
//	func main() {
//	    x, _ := tensor.FromNested([][]float64{{1, 2}, {3, 4}})
//	    y := tensor.Ones(tensor.Shape{2})
//
//	    z, _ := tensor.Add(x, y)         // broadcasts y over rows
//	    p, _ := tensor.MatMul(x, tensor.Transpose(x))
//	}
//
// # Precision
//
// Every array stores float64. There is no dtype parameter.
//
// # Broadcasting
//
// Shapes are aligned from the trailing dimension. Two dimensions are
// compatible when they are equal or one of them is 1:
//
//	(2, 3) + (3,)   -> (2, 3)
//	(4, 1) * (1, 5) -> (4, 5)
//	(2, 3) + (2,)   -> ErrShapeMismatch
package tensor
