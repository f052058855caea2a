package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestArray3(t *testing.T) {
	{ // Row major layout
		A := NewArray3[float32](2, 3, 4)
		assert.Equal(t, []int{2, 3, 4}, A.Shape())
		assert.Equal(t, 24, A.Len())
		assert.Equal(t, 0, A.Index(0, 0, 0))
		assert.Equal(t, 1, A.Index(0, 0, 1))
		assert.Equal(t, 4, A.Index(0, 1, 0))
		assert.Equal(t, 12, A.Index(1, 0, 0))
		assert.Equal(t, 23, A.Index(1, 2, 3))
		A.Set(1, 2, 3, 9)
		assert.Equal(t, float32(9), A.At(1, 2, 3))
		assert.Equal(t, float32(9), A.Data[23])
		assert.Panics(t, func() { A.At(2, 0, 0) })
		assert.Panics(t, func() { A.At(0, -1, 0) })
	}
	{ // Fill
		A := NewArray3Fill[uint32](3, 1, 2, 7)
		assert.True(t, A.All(func(v uint32) bool { return v == 7 }))
		A.Fill(1)
		assert.True(t, A.All(func(v uint32) bool { return v == 1 }))
	}
	{ // Degenerate axes
		A := NewArray3[float32](0, 5, 5)
		assert.Equal(t, []int{0, 5, 5}, A.Shape())
		assert.Equal(t, 0, A.Len())
		assert.True(t, A.All(func(v float32) bool { return false }))
		assert.Panics(t, func() { A.At(0, 0, 0) })
	}
}

func TestArray4(t *testing.T) {
	A := NewArray4[int8](12, 2, 2, 2)
	assert.Equal(t, []int{12, 2, 2, 2}, A.Shape())
	assert.Equal(t, 96, A.Len())
	assert.Equal(t, 8, A.Index(1, 0, 0, 0))
	A.Set(5, 1, 0, 1, 1)
	S := A.Slab(5)
	assert.Equal(t, []int{2, 2, 2}, S.Shape())
	assert.Equal(t, int8(1), S.At(1, 0, 1))
	// Slabs share storage
	S.Set(0, 0, 0, 3)
	assert.Equal(t, int8(3), A.At(5, 0, 0, 0))
	assert.Equal(t, int8(0), A.At(4, 1, 1, 1))
	assert.Equal(t, int8(0), A.At(6, 0, 0, 0))
	assert.Panics(t, func() { A.Slab(12) })

	E := NewArray4Fill[complex64](0, 3, 3, 3, 1)
	assert.Equal(t, []int{0, 3, 3, 3}, E.Shape())
	assert.Equal(t, 0, E.Len())
}

func TestCheckedVolume(t *testing.T) {
	assert.Equal(t, 60, CheckedVolume(3, 4, 5))
	assert.Equal(t, 0, CheckedVolume(3, 0, 5))
	assert.Equal(t, 1, CheckedVolume())
	assert.Panics(t, func() { CheckedVolume(3, -1, 5) })
	assert.Panics(t, func() { CheckedVolume(0, -1) })
	assert.Panics(t, func() { CheckedVolume(math.MaxInt32, math.MaxInt32, math.MaxInt32) })
}
