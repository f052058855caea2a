package FDTD

import (
	"fmt"
	"strings"

	"github.com/notargets/gofdtd/types"
)

/*
Component identifies one of the six field components. Its value is also the leading
index of the grid's ID array, so ID.Slab(int(Hy)) holds the material seen by Hy.
*/
type Component uint8

const (
	Ex Component = iota
	Ey
	Ez
	Hx
	Hy
	Hz
)

const NumComponents = 6

func (c Component) String() string {
	return [...]string{"Ex", "Ey", "Ez", "Hx", "Hy", "Hz"}[c]
}

func (c Component) Axis() types.Axis { return types.Axis(c % 3) }
func (c Component) IsElectric() bool { return c < Hx }

var ComponentNameMap = map[string]Component{
	"ex": Ex, "ey": Ey, "ez": Ez,
	"hx": Hx, "hy": Hy, "hz": Hz,
}

func ParseComponent(name string) (c Component, err error) {
	var ok bool
	if c, ok = ComponentNameMap[strings.ToLower(strings.TrimSpace(name))]; !ok {
		err = fmt.Errorf("unknown field component %q: %w", name, ErrConfiguration)
	}
	return
}

/*
Stagger returns, per axis, 1 where the component sits half a cell off the nodes and
0 where it sits on them. An E component is offset along its own axis only, an H
component along the two axes transverse to it. Along an offset axis the grid holds
one fewer sample than nodes.
*/
func (c Component) Stagger() (s [3]int) {
	a := c.Axis()
	for i := range s {
		onAxis := types.Axis(i) == a
		if c.IsElectric() == onAxis {
			s[i] = 1
		}
	}
	return
}

// Shape is the array shape of the component for a grid of nx*ny*nz cells
func (c Component) Shape(nx, ny, nz int) [3]int {
	s := c.Stagger()
	return [3]int{nx + 1 - s[0], ny + 1 - s[1], nz + 1 - s[2]}
}

/*
EEdge describes one of the twelve E-field edges of a Yee cell. The rigidE array
stores, at the cell's origin node (i,j,k), one flag per edge in this order:

	 0-3   x directed, (j,k) offsets (0,0) (1,0) (0,1) (1,1)
	 4-7   y directed, (i,k) offsets (0,0) (1,0) (0,1) (1,1)
	 8-11  z directed, (i,j) offsets (0,0) (1,0) (0,1) (1,1)
*/
type EEdge struct {
	Axis   types.Axis
	Offset [3]int // Offset of the edge's start node from the cell origin
}

const NumEEdges = 12

var EEdges = [NumEEdges]EEdge{
	{types.X, [3]int{0, 0, 0}},
	{types.X, [3]int{0, 1, 0}},
	{types.X, [3]int{0, 0, 1}},
	{types.X, [3]int{0, 1, 1}},
	{types.Y, [3]int{0, 0, 0}},
	{types.Y, [3]int{1, 0, 0}},
	{types.Y, [3]int{0, 0, 1}},
	{types.Y, [3]int{1, 0, 1}},
	{types.Z, [3]int{0, 0, 0}},
	{types.Z, [3]int{1, 0, 0}},
	{types.Z, [3]int{0, 1, 0}},
	{types.Z, [3]int{1, 1, 0}},
}

// Component returns the E component sampled along the edge
func (e EEdge) Component() Component { return Component(e.Axis) }

// Sample returns the index into the edge's field array for the cell at (i,j,k)
func (e EEdge) Sample(i, j, k int) (si, sj, sk int) {
	return i + e.Offset[0], j + e.Offset[1], k + e.Offset[2]
}

/*
HFace describes one of the six faces of a Yee cell, each carrying the H component
normal to it at its centre. The rigidH array uses the domain face ordering,
-x, +x, -y, +y, -z, +z, for its leading index.
*/
type HFace struct {
	Face types.Face
}

const NumHFaces = 6

var HFaces = [NumHFaces]HFace{
	{types.XMinus}, {types.XPlus},
	{types.YMinus}, {types.YPlus},
	{types.ZMinus}, {types.ZPlus},
}

func (f HFace) Component() Component { return Hx + Component(f.Face.Axis()) }

func (f HFace) Sample(i, j, k int) (si, sj, sk int) {
	si, sj, sk = i, j, k
	if f.Face.Upper() {
		switch f.Face.Axis() {
		case types.X:
			si++
		case types.Y:
			sj++
		case types.Z:
			sk++
		}
	}
	return
}
