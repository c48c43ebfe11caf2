package tensor

import "errors"

// Common errors.
var (
	ErrShapeMismatch  = errors.New("shape mismatch")
	ErrInvalidShape   = errors.New("invalid shape")
	ErrRaggedSequence = errors.New("ragged nested sequence")
	ErrNotNumeric     = errors.New("element is not numeric")
)
