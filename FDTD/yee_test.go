package FDTD

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/gofdtd/types"
)

func TestComponent(t *testing.T) {
	assert.Equal(t, [3]int{1, 0, 0}, Ex.Stagger())
	assert.Equal(t, [3]int{0, 1, 0}, Ey.Stagger())
	assert.Equal(t, [3]int{0, 0, 1}, Ez.Stagger())
	assert.Equal(t, [3]int{0, 1, 1}, Hx.Stagger())
	assert.Equal(t, [3]int{1, 0, 1}, Hy.Stagger())
	assert.Equal(t, [3]int{1, 1, 0}, Hz.Stagger())
	for c := Ex; c <= Hz; c++ {
		parsed, err := ParseComponent(c.String())
		require.NoError(t, err)
		assert.Equal(t, c, parsed)
		assert.Equal(t, c < 3, c.IsElectric())
	}
	assert.Equal(t, types.Y, Hy.Axis())
	_, err := ParseComponent("Jz")
	assert.True(t, errors.Is(err, ErrConfiguration))
}

func TestEEdges(t *testing.T) {
	var (
		nx, ny, nz = 3, 4, 5
		seen       = make(map[[4]int]bool)
	)
	for n, e := range EEdges {
		assert.Equal(t, types.Axis(n/4), e.Axis, "edge %d", n)
		assert.Equal(t, 0, e.Offset[e.Axis], "edge %d has an offset along its own axis", n)
		// Every edge of every cell lands inside its field array
		for i := 0; i < nx; i++ {
			for j := 0; j < ny; j++ {
				for k := 0; k < nz; k++ {
					si, sj, sk := e.Sample(i, j, k)
					s := e.Component().Shape(nx, ny, nz)
					require.True(t, si < s[0] && sj < s[1] && sk < s[2],
						"edge %d of cell (%d,%d,%d) maps outside %v", n, i, j, k, e.Component())
				}
			}
		}
		si, sj, sk := e.Sample(0, 0, 0)
		key := [4]int{int(e.Axis), si, sj, sk}
		assert.False(t, seen[key], "edge %d duplicates another edge", n)
		seen[key] = true
	}
	assert.Len(t, seen, NumEEdges)
}

func TestHFaces(t *testing.T) {
	var (
		nx, ny, nz = 2, 3, 4
		expected   = []Component{Hx, Hx, Hy, Hy, Hz, Hz}
	)
	for n, f := range HFaces {
		assert.Equal(t, types.Face(n), f.Face)
		assert.Equal(t, expected[n], f.Component())
		for i := 0; i < nx; i++ {
			for j := 0; j < ny; j++ {
				for k := 0; k < nz; k++ {
					si, sj, sk := f.Sample(i, j, k)
					s := f.Component().Shape(nx, ny, nz)
					require.True(t, si < s[0] && sj < s[1] && sk < s[2])
				}
			}
		}
	}
	si, sj, sk := HFaces[types.ZPlus].Sample(1, 1, 1)
	assert.Equal(t, [3]int{1, 1, 2}, [3]int{si, sj, sk})
	si, sj, sk = HFaces[types.YMinus].Sample(1, 1, 1)
	assert.Equal(t, [3]int{1, 1, 1}, [3]int{si, sj, sk})
}

func TestGridTablesMatchArrays(t *testing.T) {
	g := newQuietGrid(2, 2, 2)
	require.NoError(t, g.AllocateFieldArrays())
	assert.Equal(t, len(EEdges), g.RigidE.N0)
	assert.Equal(t, len(HFaces), g.RigidH.N0)
	assert.Equal(t, NumComponents, g.ID.N0)
	// Marking an edge through the table
	g.RigidE.Set(7, 1, 1, 1, 1)
	assert.Equal(t, int8(1), g.RigidE.Slab(7).At(1, 1, 1))
	assert.Equal(t, int8(0), g.RigidE.Slab(6).At(1, 1, 1))
}
