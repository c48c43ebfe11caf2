package ops

import (
	"errors"

	"github.com/ouroboros-ml/ouroboros/internal/tensor"
)

// LeafOp marks an input node. It has no inputs and no gradient rule.
type LeafOp struct{}

// Kind returns KindLeaf.
func (LeafOp) Kind() Kind { return KindLeaf }

// Symbol returns the empty label.
func (LeafOp) Symbol() string { return "" }

// Forward is never meaningful for a leaf.
func (LeafOp) Forward([]*tensor.Array) (*tensor.Array, error) {
	return nil, errors.New("leaf has no forward computation")
}

// Backward contributes nothing.
func (LeafOp) Backward(*tensor.Array, []*tensor.Array) ([]*tensor.Array, error) {
	return nil, nil
}
