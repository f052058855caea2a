package FDTD

import (
	"math/bits"
)

// Element sizes in bytes of the grid's storage types
const (
	sizeID      = 4 // uint32
	sizeRigid   = 1 // int8
	sizeField   = 4 // float32
	sizeAux     = 8 // complex64
	sizeCoeff   = 8 // float64
	sizeCCoeff  = 16
	coeffsPerEq = 5
)

// byteCounter accumulates products of dimensions and records overflow instead of wrapping
type byteCounter struct {
	total    uint64
	overflow bool
}

func (b *byteCounter) add(elemSize int, dims ...int) {
	var (
		prod = uint64(elemSize)
		hi   uint64
	)
	for _, d := range dims {
		if d < 0 {
			b.overflow = true
			return
		}
		hi, prod = bits.Mul64(prod, uint64(d))
		if hi != 0 {
			b.overflow = true
			return
		}
	}
	var carry uint64
	b.total, carry = bits.Add64(b.total, prod, 0)
	if carry != 0 {
		b.overflow = true
	}
}

// FieldArraysBytes estimates the storage of the geometry and field arrays of an nx*ny*nz grid
func FieldArraysBytes(nx, ny, nz int) (bytes uint64, overflow bool) {
	var (
		b          byteCounter
		ni, nj, nk = nx + 1, ny + 1, nz + 1
	)
	b.add(sizeID, ni, nj, nk)
	b.add(sizeID, NumComponents, ni, nj, nk)
	b.add(sizeRigid, NumEEdges, ni, nj, nk)
	b.add(sizeRigid, NumHFaces, ni, nj, nk)
	for c := Ex; c <= Hz; c++ {
		s := c.Shape(nx, ny, nz)
		b.add(sizeField, s[0], s[1], s[2])
	}
	return b.total, b.overflow
}

func UpdateCoefficientsBytes(materialCount int) (bytes uint64, overflow bool) {
	var b byteCounter
	b.add(sizeCoeff, 2, materialCount, coeffsPerEq)
	return b.total, b.overflow
}

func DispersiveStorageBytes(nx, ny, nz, materialCount, maxPoles int) (bytes uint64, overflow bool) {
	var b byteCounter
	for c := Ex; c <= Ez; c++ {
		s := c.Shape(nx, ny, nz)
		b.add(sizeAux, maxPoles, s[0], s[1], s[2])
	}
	b.add(sizeCCoeff, materialCount, 3, maxPoles)
	return b.total, b.overflow
}
