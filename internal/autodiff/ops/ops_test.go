package ops

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ouroboros-ml/ouroboros/internal/tensor"
)

func arr(t *testing.T, v any) *tensor.Array {
	t.Helper()
	a, err := tensor.FromNested(v)
	require.NoError(t, err)
	return a
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "leaf", KindLeaf.String())
	assert.Equal(t, "add", KindAdd.String())
	assert.Equal(t, "mul", KindMul.String())
	assert.Equal(t, "pow", KindPow.String())
	assert.Equal(t, "matmul", KindMatMul.String())
	assert.Equal(t, "unknown", Kind(99).String())
}

func TestSymbols(t *testing.T) {
	assert.Equal(t, "", LeafOp{}.Symbol())
	assert.Equal(t, "+", AddOp{}.Symbol())
	assert.Equal(t, "*", MulOp{}.Symbol())
	assert.Equal(t, "@", MatMulOp{}.Symbol())
	assert.Equal(t, "**2", NewPowOp(2).Symbol())
	assert.Equal(t, "**-1", NewPowOp(-1).Symbol())
	assert.Equal(t, "**0.5", NewPowOp(0.5).Symbol())
}

func TestLeafOp(t *testing.T) {
	grads, err := LeafOp{}.Backward(tensor.Ones(tensor.Shape{2}), nil)
	require.NoError(t, err)
	assert.Nil(t, grads)

	_, err = LeafOp{}.Forward(nil)
	assert.Error(t, err)
}

func TestAddOp_Backward(t *testing.T) {
	a := arr(t, []float64{1, 2, 3})
	b := arr(t, []float64{4, 5, 6})
	grad := arr(t, []float64{1, 10, 100})

	grads, err := AddOp{}.Backward(grad, []*tensor.Array{a, b})
	require.NoError(t, err)
	require.Len(t, grads, 2)
	assert.Equal(t, []float64{1, 10, 100}, grads[0].Data())
	assert.Equal(t, []float64{1, 10, 100}, grads[1].Data())
	assert.NotSame(t, grads[0], grads[1], "contributions must not alias")
}

func TestAddOp_BroadcastBackward(t *testing.T) {
	a := arr(t, [][]float64{{1}, {2}})
	b := arr(t, []float64{1, 2, 3})
	grad := tensor.Ones(tensor.Shape{2, 3})

	out, err := AddOp{}.Forward([]*tensor.Array{a, b})
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{2, 3}, out.Shape())

	grads, err := AddOp{}.Backward(grad, []*tensor.Array{a, b})
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{2, 1}, grads[0].Shape())
	assert.Equal(t, []float64{3, 3}, grads[0].Data())
	assert.Equal(t, tensor.Shape{3}, grads[1].Shape())
	assert.Equal(t, []float64{2, 2, 2}, grads[1].Data())
}

func TestMulOp_Backward(t *testing.T) {
	a := arr(t, []float64{2, 3})
	b := arr(t, []float64{5, 7})
	grad := arr(t, []float64{1, 2})

	grads, err := MulOp{}.Backward(grad, []*tensor.Array{a, b})
	require.NoError(t, err)
	assert.Equal(t, []float64{5, 14}, grads[0].Data())
	assert.Equal(t, []float64{2, 6}, grads[1].Data())
}

func TestMulOp_ScalarBroadcastBackward(t *testing.T) {
	s := tensor.Scalar(3)
	v := arr(t, []float64{1, 2, 3})

	grads, err := MulOp{}.Backward(tensor.Ones(tensor.Shape{3}), []*tensor.Array{s, v})
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{}, grads[0].Shape())
	assert.Equal(t, 6.0, grads[0].Item())
	assert.Equal(t, []float64{3, 3, 3}, grads[1].Data())
}

func TestPowOp(t *testing.T) {
	a := arr(t, []float64{3, 2})
	op := NewPowOp(2)

	out, err := op.Forward([]*tensor.Array{a})
	require.NoError(t, err)
	assert.Equal(t, []float64{9, 4}, out.Data())

	grads, err := op.Backward(tensor.Ones(tensor.Shape{2}), []*tensor.Array{a})
	require.NoError(t, err)
	require.Len(t, grads, 1)
	assert.Equal(t, []float64{6, 4}, grads[0].Data())

	_, err = op.Backward(tensor.Ones(tensor.Shape{2}), []*tensor.Array{a, a})
	assert.Error(t, err)
}

func TestPowOp_NegativeExponent(t *testing.T) {
	a := arr(t, []float64{2})
	grads, err := NewPowOp(-1).Backward(tensor.Ones(tensor.Shape{1}), []*tensor.Array{a})
	require.NoError(t, err)
	assert.InDelta(t, -0.25, grads[0].Item(), 1e-12)
}

func TestMatMulOp_VectorDot(t *testing.T) {
	u := arr(t, []float64{1, 2, 3})
	v := arr(t, []float64{4, 5, 6})

	out, err := MatMulOp{}.Forward([]*tensor.Array{u, v})
	require.NoError(t, err)
	assert.Equal(t, 32.0, out.Item())

	grads, err := MatMulOp{}.Backward(tensor.Scalar(1), []*tensor.Array{u, v})
	require.NoError(t, err)
	assert.Equal(t, []float64{4, 5, 6}, grads[0].Data())
	assert.Equal(t, []float64{1, 2, 3}, grads[1].Data())
}

func TestMatMulOp_Matrices(t *testing.T) {
	a := arr(t, [][]float64{{1, 2}, {3, 4}})
	b := arr(t, [][]float64{{5, 6}, {7, 8}})
	grad := tensor.Ones(tensor.Shape{2, 2})

	grads, err := MatMulOp{}.Backward(grad, []*tensor.Array{a, b})
	require.NoError(t, err)
	// grad_a = 1 @ b^T: each row is the row sums of b
	assert.Equal(t, []float64{11, 15, 11, 15}, grads[0].Data())
	// grad_b = a^T @ 1: each column is the column sums of a
	assert.Equal(t, []float64{4, 4, 6, 6}, grads[1].Data())
}

func TestMatMulOp_MixedRanks(t *testing.T) {
	m := arr(t, [][]float64{{1, 2, 3}, {4, 5, 6}})
	x := arr(t, []float64{1, 1, 1})
	y := arr(t, []float64{1, 2})

	// (2,3) @ (3) -> (2)
	grads, err := MatMulOp{}.Backward(tensor.Ones(tensor.Shape{2}), []*tensor.Array{m, x})
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{2, 3}, grads[0].Shape())
	assert.Equal(t, []float64{1, 1, 1, 1, 1, 1}, grads[0].Data())
	assert.Equal(t, tensor.Shape{3}, grads[1].Shape())
	assert.Equal(t, []float64{5, 7, 9}, grads[1].Data())

	// (2) @ (2,3) -> (3)
	grads, err = MatMulOp{}.Backward(tensor.Ones(tensor.Shape{3}), []*tensor.Array{y, m})
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{2}, grads[0].Shape())
	assert.Equal(t, []float64{6, 15}, grads[0].Data())
	assert.Equal(t, tensor.Shape{2, 3}, grads[1].Shape())
	assert.Equal(t, []float64{1, 1, 1, 2, 2, 2}, grads[1].Data())
}

func TestBinary_WrongArity(t *testing.T) {
	a := arr(t, []float64{1})
	_, err := AddOp{}.Forward([]*tensor.Array{a})
	assert.Error(t, err)
	_, err = MulOp{}.Backward(a, []*tensor.Array{a})
	assert.Error(t, err)
	_, err = MatMulOp{}.Forward(nil)
	assert.Error(t, err)
}
