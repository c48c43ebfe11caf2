package autodiff

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/ouroboros-ml/ouroboros/internal/tensor"
)

// AsValue promotes x to a graph node.
//
// Accepted inputs:
//   - *Value: returned unchanged (same identity, so gradients reach it)
//   - *tensor.Array, tensor.Array: wrapped as a leaf holding a copy
//   - float32, float64 and every signed and unsigned integer type: 0-d leaf
//   - nested slices or Go arrays of numbers: leaf built by tensor.FromNested
//
// Anything else fails with ErrUnsupportedType. Ragged sequences fail with
// ErrRaggedSequence.
func AsValue(x any) (*Value, error) {
	switch x := x.(type) {
	case *Value:
		if x == nil {
			return nil, fmt.Errorf("%w: nil *Value", ErrUnsupportedType)
		}
		return x, nil
	case *tensor.Array:
		if x == nil || x.NumElements() == 0 {
			return nil, fmt.Errorf("%w: empty *tensor.Array", ErrUnsupportedType)
		}
		return NewLeaf(x.Clone()), nil
	case tensor.Array:
		if x.NumElements() == 0 {
			return nil, fmt.Errorf("%w: zero tensor.Array", ErrUnsupportedType)
		}
		return NewLeaf(x.Clone()), nil
	case float64:
		return NewLeaf(tensor.Scalar(x)), nil
	case float32:
		return NewLeaf(tensor.Scalar(float64(x))), nil
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		f, _ := scalarOf(x)
		return NewLeaf(tensor.Scalar(f)), nil
	case nil:
		return nil, fmt.Errorf("%w: <nil>", ErrUnsupportedType)
	}

	if k := reflect.TypeOf(x).Kind(); k != reflect.Slice && k != reflect.Array {
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedType, x)
	}
	arr, err := tensor.FromNested(x)
	switch {
	case errors.Is(err, tensor.ErrNotNumeric):
		return nil, fmt.Errorf("%w: %T: %v", ErrUnsupportedType, x, err)
	case err != nil:
		return nil, err
	}
	return NewLeaf(arr), nil
}

// MustValue is like AsValue but panics on error.
func MustValue(x any) *Value {
	v, err := AsValue(x)
	if err != nil {
		panic(err)
	}
	return v
}

// scalarOf converts a plain Go number to float64.
func scalarOf(x any) (float64, bool) {
	switch x := x.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int8:
		return float64(x), true
	case int16:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case uint:
		return float64(x), true
	case uint8:
		return float64(x), true
	case uint16:
		return float64(x), true
	case uint32:
		return float64(x), true
	case uint64:
		return float64(x), true
	default:
		return 0, false
	}
}

func coerce2(a, b any) (*Value, *Value, error) {
	va, err := AsValue(a)
	if err != nil {
		return nil, nil, err
	}
	vb, err := AsValue(b)
	if err != nil {
		return nil, nil, err
	}
	return va, vb, nil
}
