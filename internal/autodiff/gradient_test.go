package autodiff_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ouroboros-ml/ouroboros/internal/autodiff"
)

func TestGradientOf(t *testing.T) {
	square := func(x *autodiff.Value) (*autodiff.Value, error) {
		return autodiff.Pow(x, 2)
	}

	g, err := autodiff.GradientOf(square, 3)
	require.NoError(t, err)
	assert.Equal(t, 6.0, g.Item())

	g, err = autodiff.GradientOf(square, []float64{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 4, 6}, g.Data())
}

func TestGradientOf_DotProduct(t *testing.T) {
	v := []float64{4, 5, 6}
	dot := func(u *autodiff.Value) (*autodiff.Value, error) {
		return autodiff.MatMul(u, v)
	}

	g, err := autodiff.GradientOf(dot, []float64{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, []float64{4, 5, 6}, g.Data())
}

func TestGradientOf_ExistingValueAccumulates(t *testing.T) {
	x := autodiff.MustValue(2.0)
	double := func(x *autodiff.Value) (*autodiff.Value, error) {
		return autodiff.Add(x, x)
	}

	_, err := autodiff.GradientOf(double, x)
	require.NoError(t, err)
	g, err := autodiff.GradientOf(double, x)
	require.NoError(t, err)
	assert.Equal(t, 4.0, g.Item())
}

func TestGradientOf_Errors(t *testing.T) {
	identity := func(x *autodiff.Value) (*autodiff.Value, error) { return x, nil }

	_, err := autodiff.GradientOf(identity, "x")
	assert.ErrorIs(t, err, autodiff.ErrUnsupportedType)

	boom := errors.New("boom")
	_, err = autodiff.GradientOf(func(*autodiff.Value) (*autodiff.Value, error) { return nil, boom }, 1)
	assert.ErrorIs(t, err, boom)

	_, err = autodiff.GradientOf(func(*autodiff.Value) (*autodiff.Value, error) { return nil, nil }, 1)
	assert.Error(t, err)

	g, err := autodiff.GradientOf(identity, 5)
	require.NoError(t, err)
	assert.Equal(t, 1.0, g.Item())
}

func TestHessianOf_NotImplemented(t *testing.T) {
	square := func(x *autodiff.Value) (*autodiff.Value, error) { return autodiff.Pow(x, 2) }

	for _, x := range []any{1.0, []float64{1, 2}, "anything", nil} {
		h, err := autodiff.HessianOf(square, x)
		assert.Nil(t, h)
		assert.ErrorIs(t, err, autodiff.ErrNotImplemented)
	}
}

func TestTopologicalOrder_ParentsBeforeConsumers(t *testing.T) {
	a := autodiff.MustValue(1.0)
	b := autodiff.MustValue(2.0)
	c := a.Mul(b)
	d := c.Add(a)
	e := d.Mul(c).Sub(b.Pow(2))

	order := e.TopologicalOrder()
	require.NotEmpty(t, order)
	assert.Same(t, e, order[len(order)-1], "root is last")

	pos := make(map[*autodiff.Value]int, len(order))
	for i, n := range order {
		_, dup := pos[n]
		require.False(t, dup, "node visited twice")
		pos[n] = i
	}
	for _, n := range order {
		for _, p := range n.Parents() {
			pp, ok := pos[p]
			require.True(t, ok, "parent missing from order")
			assert.Less(t, pp, pos[n], "parent must precede consumer")
		}
	}
	for _, n := range []*autodiff.Value{a, b, c, d} {
		assert.Contains(t, pos, n)
	}
}

func TestTopologicalOrder_IdentityNotValue(t *testing.T) {
	a := autodiff.MustValue(1.0)
	b := autodiff.MustValue(1.0)

	order := a.Add(b).TopologicalOrder()
	assert.Len(t, order, 3, "equal payloads are still distinct nodes")
}

func TestTopologicalOrder_ViewResolvesToOrigin(t *testing.T) {
	a := autodiff.MustValue([][]float64{{1, 2}})
	c := a.T().Mul(a.T())

	order := c.TopologicalOrder()
	assert.Len(t, order, 2)
	assert.Same(t, a, order[0])
}
