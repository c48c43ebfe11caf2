// Copyright 2025 Ouroboros Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ouroboros-ml/ouroboros/tensor"
)

func TestPublicAPI_Creation(t *testing.T) {
	x, err := tensor.FromNested([][]float64{{1, 2}, {3, 4}})
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{2, 2}, x.Shape())

	y, err := tensor.FromSlice([]float64{1, 2, 3, 4}, tensor.Shape{2, 2})
	require.NoError(t, err)
	assert.True(t, x.Equal(y))

	assert.Equal(t, 0.0, tensor.Sum(tensor.Zeros(tensor.Shape{3})))
	assert.Equal(t, 3.0, tensor.Sum(tensor.Ones(tensor.Shape{3})))
	assert.Equal(t, 2.5, tensor.Scalar(2.5).Item())
	assert.Equal(t, []float64{7, 7}, tensor.Full(tensor.Shape{2}, 7).Data())
}

func TestPublicAPI_Errors(t *testing.T) {
	_, err := tensor.FromNested([][]float64{{1}, {2, 3}})
	assert.ErrorIs(t, err, tensor.ErrRaggedSequence)

	_, err = tensor.FromNested([]string{"a"})
	assert.ErrorIs(t, err, tensor.ErrNotNumeric)

	_, err = tensor.FromNested([]float64{})
	assert.ErrorIs(t, err, tensor.ErrInvalidShape)

	_, _, err = tensor.BroadcastShapes(tensor.Shape{2, 3}, tensor.Shape{2})
	assert.ErrorIs(t, err, tensor.ErrShapeMismatch)
}

func TestPublicAPI_Operations(t *testing.T) {
	x, err := tensor.FromNested([][]float64{{1, 2}, {3, 4}})
	require.NoError(t, err)
	row := tensor.Ones(tensor.Shape{2})

	sum, err := tensor.Add(x, row)
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 3, 4, 5}, sum.Data())

	diff, err := tensor.Sub(x, row)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1, 2, 3}, diff.Data())

	prod, err := tensor.Mul(x, x)
	require.NoError(t, err)
	assert.True(t, prod.Equal(tensor.Pow(x, 2)))
	assert.Equal(t, []float64{-1, -2, -3, -4}, tensor.Neg(x).Data())

	reduced, err := tensor.SumTo(x, tensor.Shape{2})
	require.NoError(t, err)
	assert.Equal(t, []float64{4, 6}, reduced.Data())

	xt := tensor.Transpose(x)
	assert.Equal(t, []float64{1, 3, 2, 4}, xt.Data())

	gram, err := tensor.MatMul(x, xt)
	require.NoError(t, err)
	assert.Equal(t, []float64{5, 11, 11, 25}, gram.Data())

	d, err := tensor.MaxAbsDiff(x, xt)
	require.NoError(t, err)
	assert.Equal(t, 1.0, d)
}
