package tensor

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Add performs element-wise addition with broadcasting.
//
// Example:
//
//	a := tensor.Ones(tensor.Shape{3, 1})
//	b := tensor.Ones(tensor.Shape{3, 5})
//	c, _ := tensor.Add(a, b) // Shape: [3, 5] (broadcasted)
func Add(a, b *Array) (*Array, error) {
	return elementwise(a, b, floats.AddTo, func(x, y float64) float64 { return x + y })
}

// Sub performs element-wise subtraction with broadcasting.
func Sub(a, b *Array) (*Array, error) {
	return elementwise(a, b, floats.SubTo, func(x, y float64) float64 { return x - y })
}

// Mul performs element-wise multiplication with broadcasting.
func Mul(a, b *Array) (*Array, error) {
	return elementwise(a, b, floats.MulTo, func(x, y float64) float64 { return x * y })
}

// Pow raises every element to the power k.
func Pow(a *Array, k float64) *Array {
	out := a.Clone()
	for i, v := range out.data {
		out.data[i] = math.Pow(v, k)
	}
	return out
}

// Scale multiplies every element by c.
func Scale(a *Array, c float64) *Array {
	out := a.Clone()
	floats.Scale(c, out.data)
	return out
}

// Neg returns -a.
func Neg(a *Array) *Array {
	return Scale(a, -1)
}

// Sum returns the sum of all elements.
func Sum(a *Array) float64 {
	return floats.Sum(a.data)
}

// elementwise applies a binary function under broadcasting. When both shapes
// are identical the flat fast path is used.
func elementwise(
	a, b *Array,
	fast func(dst, s, t []float64) []float64,
	fn func(x, y float64) float64,
) (*Array, error) {
	if a.shape.Equal(b.shape) {
		out := &Array{shape: a.shape.Clone(), data: make([]float64, len(a.data))}
		fast(out.data, a.data, b.data)
		return out, nil
	}

	shape, _, err := BroadcastShapes(a.shape, b.shape)
	if err != nil {
		return nil, err
	}

	out := Zeros(shape)
	aStrides := broadcastStrides(a.shape, shape)
	bStrides := broadcastStrides(b.shape, shape)
	forEachIndex(shape, func(flat int, idx []int) {
		out.data[flat] = fn(a.data[offsetOf(idx, aStrides)], b.data[offsetOf(idx, bStrides)])
	})
	return out, nil
}

// SumTo reduces a broadcast result back to target by summing over the axes
// that broadcasting expanded. target must be broadcast-compatible with a's
// shape and must not be larger than it.
//
// Example:
//
//	Forward: a[3,1] + b[3,4] -> c[3,4]  (a was broadcast along dim 1)
//	Backward: SumTo(grad_c[3,4], [3,1]) -> grad_a[3,1] (sum along dim 1)
func SumTo(a *Array, target Shape) (*Array, error) {
	if a.shape.Equal(target) {
		return a.Clone(), nil
	}

	full, _, err := BroadcastShapes(target, a.shape)
	if err != nil || !full.Equal(a.shape) {
		return nil, fmt.Errorf("%w: cannot reduce %v to %v", ErrShapeMismatch, a.shape, target)
	}

	out := Zeros(target)
	strides := broadcastStrides(target, a.shape)
	forEachIndex(a.shape, func(flat int, idx []int) {
		out.data[offsetOf(idx, strides)] += a.data[flat]
	})
	return out, nil
}

// MatMul performs matrix multiplication with NumPy matmul semantics for
// operands of rank 1 or 2:
//
//   - (K) @ (K)       → scalar
//   - (M, K) @ (K)    → (M)
//   - (K) @ (K, N)    → (N)
//   - (M, K) @ (K, N) → (M, N)
//
// Higher ranks and scalars are rejected with ErrShapeMismatch.
func MatMul(a, b *Array) (*Array, error) {
	if a.Ndim() < 1 || a.Ndim() > 2 || b.Ndim() < 1 || b.Ndim() > 2 {
		return nil, fmt.Errorf("%w: matmul supports rank 1 or 2 operands, got %v @ %v", ErrShapeMismatch, a.shape, b.shape)
	}

	am := AsMatrix(a, true)
	bm := AsMatrix(b, false)
	m, k := am.shape[0], am.shape[1]
	k2, n := bm.shape[0], bm.shape[1]
	if k != k2 {
		return nil, fmt.Errorf("%w: matmul inner dimensions differ: %v @ %v", ErrShapeMismatch, a.shape, b.shape)
	}

	var prod mat.Dense
	prod.Mul(mat.NewDense(m, k, am.data), mat.NewDense(k, n, bm.data))

	var shape Shape
	switch {
	case a.Ndim() == 1 && b.Ndim() == 1:
		shape = Shape{}
	case a.Ndim() == 1:
		shape = Shape{n}
	case b.Ndim() == 1:
		shape = Shape{m}
	default:
		shape = Shape{m, n}
	}
	return &Array{shape: shape, data: denseData(&prod)}, nil
}

// AsMatrix views a rank-1 array as a row (asRow) or column matrix.
// Rank-2 arrays are returned unchanged. The result shares a's buffer.
func AsMatrix(a *Array, asRow bool) *Array {
	if a.Ndim() != 1 {
		return a
	}
	if asRow {
		return &Array{shape: Shape{1, a.shape[0]}, data: a.data}
	}
	return &Array{shape: Shape{a.shape[0], 1}, data: a.data}
}

// Transpose reverses the order of the axes. Rank 0 and rank 1 arrays are
// returned as copies. Rank 2 transposes go through gonum.
func Transpose(a *Array) *Array {
	switch a.Ndim() {
	case 0, 1:
		return a.Clone()
	case 2:
		r, c := a.shape[0], a.shape[1]
		t := mat.DenseCopyOf(mat.NewDense(r, c, a.data).T())
		return &Array{shape: Shape{c, r}, data: denseData(t)}
	}

	shape := a.shape.Reversed()
	out := Zeros(shape)
	src := a.shape.ComputeStrides()
	strides := make([]int, len(src))
	for i, s := range src {
		strides[len(src)-1-i] = s
	}
	forEachIndex(shape, func(flat int, idx []int) {
		out.data[flat] = a.data[offsetOf(idx, strides)]
	})
	return out
}

// denseData copies a gonum matrix into a compact row-major slice.
func denseData(d *mat.Dense) []float64 {
	raw := d.RawMatrix()
	if raw.Stride == raw.Cols {
		out := make([]float64, raw.Rows*raw.Cols)
		copy(out, raw.Data)
		return out
	}
	out := make([]float64, 0, raw.Rows*raw.Cols)
	for i := 0; i < raw.Rows; i++ {
		out = append(out, raw.Data[i*raw.Stride:i*raw.Stride+raw.Cols]...)
	}
	return out
}

// forEachIndex calls fn for every multi-index of shape in row-major order.
// idx is reused between calls.
func forEachIndex(shape Shape, fn func(flat int, idx []int)) {
	idx := make([]int, len(shape))
	n := shape.NumElements()
	for flat := 0; flat < n; flat++ {
		fn(flat, idx)
		for d := len(shape) - 1; d >= 0; d-- {
			idx[d]++
			if idx[d] < shape[d] {
				break
			}
			idx[d] = 0
		}
	}
}

func offsetOf(idx, strides []int) int {
	off := 0
	for i, ix := range idx {
		off += ix * strides[i]
	}
	return off
}
