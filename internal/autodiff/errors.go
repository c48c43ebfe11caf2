package autodiff

import (
	"errors"

	"github.com/ouroboros-ml/ouroboros/internal/tensor"
)

// Common errors.
var (
	ErrUnsupportedType  = errors.New("unsupported type")
	ErrInvalidExponent  = errors.New("exponent must be a scalar number")
	ErrNotImplemented   = errors.New("not implemented")
	ErrShapeMismatch    = tensor.ErrShapeMismatch
	ErrRaggedSequence   = tensor.ErrRaggedSequence
	errNilFunctionValue = errors.New("function returned a nil value")
)
