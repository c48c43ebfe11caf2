package tensor

import (
	"fmt"
	"reflect"
)

// Zeros creates an array filled with zeros.
// Panics if the shape is invalid.
//
// Example:
//
//	z := tensor.Zeros(tensor.Shape{3, 4})
func Zeros(shape Shape) *Array {
	if err := shape.Validate(); err != nil {
		panic(err)
	}
	return &Array{shape: shape.Clone(), data: make([]float64, shape.NumElements())}
}

// Ones creates an array filled with ones.
func Ones(shape Shape) *Array {
	return Full(shape, 1)
}

// Full creates an array filled with a specific value.
//
// Example:
//
//	neg := tensor.Full(tensor.Shape{2, 2}, -1)
func Full(shape Shape, value float64) *Array {
	a := Zeros(shape)
	a.Fill(value)
	return a
}

// Scalar creates a 0-dimensional array holding v.
func Scalar(v float64) *Array {
	return &Array{shape: Shape{}, data: []float64{v}}
}

// FromNested builds an array from a number or an arbitrarily nested slice
// (or Go array) of numbers, such as []float64, [][]int or []any{[]any{1, 2}}.
// Every level of nesting must be rectangular.
func FromNested(v any) (*Array, error) {
	if v == nil {
		return nil, fmt.Errorf("%w: <nil>", ErrNotNumeric)
	}
	rv := reflect.ValueOf(v)

	shape, err := nestedShape(rv)
	if err != nil {
		return nil, err
	}
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("empty sequence: %w", err)
	}

	data := make([]float64, 0, shape.NumElements())
	data, err = flatten(rv, shape, data)
	if err != nil {
		return nil, err
	}
	return &Array{shape: shape, data: data}, nil
}

// nestedShape derives the shape by following the first element at each level.
func nestedShape(rv reflect.Value) (Shape, error) {
	var shape Shape
	for {
		rv = unwrap(rv)
		switch rv.Kind() {
		case reflect.Slice, reflect.Array:
			shape = append(shape, rv.Len())
			if rv.Len() == 0 {
				return shape, nil
			}
			rv = rv.Index(0)
		default:
			if _, ok := numeric(rv); !ok {
				return nil, fmt.Errorf("%w: %s", ErrNotNumeric, describe(rv))
			}
			return shape, nil
		}
	}
}

// flatten appends the elements of rv in row-major order, checking every
// sub-sequence against shape.
func flatten(rv reflect.Value, shape Shape, dst []float64) ([]float64, error) {
	rv = unwrap(rv)
	if len(shape) == 0 {
		f, ok := numeric(rv)
		if !ok {
			if isSequence(rv) {
				return nil, fmt.Errorf("%w: unexpected nesting", ErrRaggedSequence)
			}
			return nil, fmt.Errorf("%w: %s", ErrNotNumeric, describe(rv))
		}
		return append(dst, f), nil
	}

	if !isSequence(rv) {
		return nil, fmt.Errorf("%w: expected sequence of length %d, got %s", ErrRaggedSequence, shape[0], describe(rv))
	}
	if rv.Len() != shape[0] {
		return nil, fmt.Errorf("%w: expected length %d, got %d", ErrRaggedSequence, shape[0], rv.Len())
	}

	var err error
	for i := 0; i < rv.Len(); i++ {
		dst, err = flatten(rv.Index(i), shape[1:], dst)
		if err != nil {
			return nil, err
		}
	}
	return dst, nil
}

func unwrap(rv reflect.Value) reflect.Value {
	for rv.Kind() == reflect.Interface && !rv.IsNil() {
		rv = rv.Elem()
	}
	return rv
}

func isSequence(rv reflect.Value) bool {
	return rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array
}

func numeric(rv reflect.Value) (float64, bool) {
	switch rv.Kind() {
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	default:
		return 0, false
	}
}

func describe(rv reflect.Value) string {
	if !rv.IsValid() {
		return "<nil>"
	}
	return rv.Type().String()
}
