package tensor

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShape_NumElements(t *testing.T) {
	assert.Equal(t, 1, Shape{}.NumElements(), "scalar has one element")
	assert.Equal(t, 3, Shape{3}.NumElements())
	assert.Equal(t, 24, Shape{2, 3, 4}.NumElements())
}

func TestShape_Validate(t *testing.T) {
	require.NoError(t, Shape{}.Validate())
	require.NoError(t, Shape{2, 3}.Validate())

	err := Shape{2, 0}.Validate()
	require.ErrorIs(t, err, ErrInvalidShape)
	assert.ErrorIs(t, Shape{-1}.Validate(), ErrInvalidShape)
}

func TestShape_ComputeStrides(t *testing.T) {
	if diff := cmp.Diff([]int{12, 4, 1}, Shape{2, 3, 4}.ComputeStrides()); diff != "" {
		t.Errorf("strides mismatch (-want +got):\n%s", diff)
	}
	assert.Empty(t, Shape{}.ComputeStrides())
}

func TestShape_Reversed(t *testing.T) {
	s := Shape{2, 3, 4}
	assert.Equal(t, Shape{4, 3, 2}, s.Reversed())
	assert.Equal(t, Shape{2, 3, 4}, s, "Reversed must not modify the receiver")
}

func TestBroadcastShapes(t *testing.T) {
	tests := []struct {
		name      string
		a, b      Shape
		want      Shape
		broadcast bool
		wantErr   bool
	}{
		{"equal", Shape{3, 5}, Shape{3, 5}, Shape{3, 5}, false, false},
		{"column", Shape{3, 1}, Shape{3, 5}, Shape{3, 5}, true, false},
		{"row", Shape{1, 5}, Shape{3, 5}, Shape{3, 5}, true, false},
		{"scalar", Shape{}, Shape{2, 2}, Shape{2, 2}, true, false},
		{"leading", Shape{5}, Shape{4, 5}, Shape{4, 5}, true, false},
		{"incompatible", Shape{3, 4}, Shape{3, 5}, nil, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, broadcast, err := BroadcastShapes(tt.a, tt.b)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrShapeMismatch)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.broadcast, broadcast)
		})
	}
}

func TestBroadcastStrides(t *testing.T) {
	assert.Equal(t, []int{0, 1}, broadcastStrides(Shape{5}, Shape{4, 5}))
	assert.Equal(t, []int{1, 0}, broadcastStrides(Shape{3, 1}, Shape{3, 5}))
	assert.Equal(t, []int{0, 0}, broadcastStrides(Shape{}, Shape{2, 2}))
}
