package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatrix(t *testing.T) {
	// Allocation and zero fill
	{
		M := NewMatrix(3, 5)
		nr, nc := M.Dims()
		assert.Equal(t, 3, nr)
		assert.Equal(t, 5, nc)
		assert.True(t, M.IsZero())
		assert.False(t, M.IsEmpty())
		M.Set(2, 4, 7)
		assert.Equal(t, 7., M.At(2, 4))
		assert.False(t, M.IsZero())
		assert.Equal(t, []float64{0, 0, 0, 0, 7}, M.Row(2))
	}
	// Provided data
	{
		M := NewMatrix(2, 3, []float64{
			1, 2, 3,
			4, 5, 6,
		})
		assert.Equal(t, 6., M.At(1, 2))
		M.SetRow(0, []float64{9, 9, 9})
		assert.Equal(t, []float64{9, 9, 9, 4, 5, 6}, M.RawMatrix().Data)
		assert.Panics(t, func() { NewMatrix(2, 2, []float64{1}) })
	}
	// Read only protection
	{
		M := NewMatrix(1, 5)
		M.SetReadOnly("UpdateCoeffsE")
		assert.PanicsWithError(t, "attempt to write to a read only matrix named: \"UpdateCoeffsE\"",
			func() { M.Set(0, 0, 1) })
		M.SetWritable()
		assert.NotPanics(t, func() { M.Set(0, 0, 1) })
	}
	// Zero values
	{
		var M Matrix
		assert.True(t, M.IsEmpty())
		nr, nc := M.Dims()
		assert.Equal(t, 0, nr+nc)
		assert.Panics(t, func() { NewMatrix(0, 5) })
	}
}

func TestCMatrix(t *testing.T) {
	{
		C := NewCMatrix(3, 6)
		nr, nc := C.Dims()
		assert.Equal(t, 3, nr)
		assert.Equal(t, 6, nc)
		assert.True(t, C.IsZero())
		C.Set(1, 5, complex(0.5, 2))
		assert.Equal(t, complex(0.5, 2), C.At(1, 5))
		assert.False(t, C.IsZero())
	}
	{ // A zero width table keeps its row count
		C := NewCMatrix(4, 0)
		nr, nc := C.Dims()
		assert.Equal(t, 4, nr)
		assert.Equal(t, 0, nc)
		assert.True(t, C.IsEmpty())
		assert.True(t, C.IsZero())
	}
	assert.Panics(t, func() { NewCMatrix(-1, 2) })
}
