// Package tensor provides the dense float64 N-dimensional array used as the
// payload and gradient storage of the autodiff graph.
//
// Precision is fixed at float64 for every array. Elementwise operations follow
// NumPy broadcasting rules (see BroadcastShapes); matrix products are computed
// with gonum.
package tensor

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// Array is a dense, row-major float64 array.
type Array struct {
	shape Shape
	data  []float64
}

// FromSlice creates an array of the given shape backed by a copy of data.
//
// Example:
//
//	a, err := tensor.FromSlice([]float64{1, 2, 3, 4}, tensor.Shape{2, 2})
func FromSlice(data []float64, shape Shape) (*Array, error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	if len(data) != shape.NumElements() {
		return nil, fmt.Errorf("%w: %d elements cannot fill shape %v", ErrShapeMismatch, len(data), shape)
	}
	buf := make([]float64, len(data))
	copy(buf, data)
	return &Array{shape: shape.Clone(), data: buf}, nil
}

// Shape returns a copy of the array's shape.
func (a *Array) Shape() Shape {
	return a.shape.Clone()
}

// Ndim returns the number of dimensions (0 for a scalar).
func (a *Array) Ndim() int {
	return len(a.shape)
}

// NumElements returns the number of stored elements.
func (a *Array) NumElements() int {
	return len(a.data)
}

// Data returns the underlying row-major buffer. Writes are visible to the array.
func (a *Array) Data() []float64 {
	return a.data
}

// Item returns the single value of a one-element array.
// Panics if the array holds more than one element.
func (a *Array) Item() float64 {
	if len(a.data) != 1 {
		panic(fmt.Sprintf("tensor: Item called on array of shape %v", a.shape))
	}
	return a.data[0]
}

// At returns the element at the given multi-index.
// Panics if the index has the wrong rank or is out of range.
func (a *Array) At(idx ...int) float64 {
	if len(idx) != len(a.shape) {
		panic(fmt.Sprintf("tensor: index %v has rank %d, array has shape %v", idx, len(idx), a.shape))
	}
	strides := a.shape.ComputeStrides()
	offset := 0
	for i, ix := range idx {
		if ix < 0 || ix >= a.shape[i] {
			panic(fmt.Sprintf("tensor: index %v out of range for shape %v", idx, a.shape))
		}
		offset += ix * strides[i]
	}
	return a.data[offset]
}

// Clone returns a deep copy of the array.
func (a *Array) Clone() *Array {
	data := make([]float64, len(a.data))
	copy(data, a.data)
	return &Array{shape: a.shape.Clone(), data: data}
}

// Reshape returns a copy of the array with a new shape holding the same number of elements.
func (a *Array) Reshape(shape Shape) (*Array, error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	if shape.NumElements() != len(a.data) {
		return nil, fmt.Errorf("%w: cannot reshape %v into %v", ErrShapeMismatch, a.shape, shape)
	}
	out := a.Clone()
	out.shape = shape.Clone()
	return out, nil
}

// Accumulate adds other into a in place. Shapes must match exactly.
func (a *Array) Accumulate(other *Array) error {
	if !a.shape.Equal(other.shape) {
		return fmt.Errorf("%w: cannot accumulate %v into %v", ErrShapeMismatch, other.shape, a.shape)
	}
	floats.Add(a.data, other.data)
	return nil
}

// Fill sets every element to v.
func (a *Array) Fill(v float64) {
	for i := range a.data {
		a.data[i] = v
	}
}

// Equal reports whether both arrays have the same shape and identical elements.
func (a *Array) Equal(other *Array) bool {
	return a.shape.Equal(other.shape) && floats.Equal(a.data, other.data)
}

// AllClose reports whether both arrays have the same shape and every pair of
// elements differs by at most tol (absolute or relative).
func (a *Array) AllClose(other *Array, tol float64) bool {
	return a.shape.Equal(other.shape) && floats.EqualApprox(a.data, other.data, tol)
}

// MaxAbsDiff returns the largest absolute elementwise difference.
// Shapes must match exactly. The result is NaN if either array holds a NaN.
func MaxAbsDiff(a, b *Array) (float64, error) {
	if !a.shape.Equal(b.shape) {
		return 0, fmt.Errorf("%w: %v vs %v", ErrShapeMismatch, a.shape, b.shape)
	}
	if floats.HasNaN(a.data) || floats.HasNaN(b.data) {
		return math.NaN(), nil
	}
	return floats.Distance(a.data, b.data, math.Inf(1)), nil
}

// String renders the array in nested-bracket form, e.g. [[1 2] [3 4]].
func (a *Array) String() string {
	if len(a.shape) == 0 {
		return fmt.Sprintf("%g", a.data[0])
	}
	var sb strings.Builder
	a.format(&sb, 0, 0)
	return sb.String()
}

func (a *Array) format(sb *strings.Builder, dim, offset int) {
	stride := Shape(a.shape[dim+1:]).NumElements()
	sb.WriteByte('[')
	for i := 0; i < a.shape[dim]; i++ {
		if i > 0 {
			sb.WriteByte(' ')
		}
		if dim == len(a.shape)-1 {
			fmt.Fprintf(sb, "%g", a.data[offset+i])
		} else {
			a.format(sb, dim+1, offset+i*stride)
		}
	}
	sb.WriteByte(']')
}
