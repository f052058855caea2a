package utils

import (
	"fmt"

	"gonum.org/v1/gonum/blas/blas64"
	"gonum.org/v1/gonum/mat"
)

// Matrix is a named, optionally read-only real table backed by a gonum Dense.
type Matrix struct {
	M        *mat.Dense
	readOnly bool
	name     string
}

func NewMatrix(nr, nc int, dataO ...[]float64) (R Matrix) {
	var m *mat.Dense
	if nr < 1 || nc < 1 {
		panic(fmt.Errorf("NewMatrix requires positive dimensions, have nr,nc = %v,%v", nr, nc))
	}
	if len(dataO) != 0 {
		if len(dataO[0]) != nr*nc {
			err := fmt.Errorf("mismatch in allocation: NewMatrix nr,nc = %v,%v, len(data[0]) = %v", nr, nc, len(dataO[0]))
			panic(err)
		}
		m = mat.NewDense(nr, nc, dataO[0])
	} else {
		m = mat.NewDense(nr, nc, make([]float64, CheckedVolume(nr, nc)))
	}
	R = Matrix{
		m,
		false,
		"unnamed - hint: pass a variable name to SetReadOnly()",
	}
	return
}

// Dims, At and T minimally satisfy the mat.Matrix interface.
func (m Matrix) Dims() (r, c int) {
	if m.M == nil {
		return 0, 0
	}
	return m.M.Dims()
}
func (m Matrix) At(i, j int) float64       { return m.M.At(i, j) }
func (m Matrix) T() mat.Matrix             { return m.M.T() }
func (m Matrix) RawMatrix() blas64.General { return m.M.RawMatrix() }
func (m Matrix) IsEmpty() bool             { return m.M == nil }

func (m *Matrix) SetReadOnly(name ...string) Matrix {
	if len(name) != 0 {
		m.name = name[0]
	}
	m.readOnly = true
	return *m
}

func (m *Matrix) SetWritable() Matrix {
	m.readOnly = false
	return *m
}

func (m Matrix) Set(i, j int, val float64) Matrix { // Changes receiver
	m.checkWritable()
	m.M.Set(i, j, val)
	return m
}

func (m Matrix) SetRow(i int, data []float64) Matrix { // Changes receiver
	m.checkWritable()
	m.M.SetRow(i, data)
	return m
}

func (m Matrix) Row(i int) (row []float64) {
	_, nc := m.Dims()
	row = make([]float64, nc)
	copy(row, m.M.RawRowView(i))
	return
}

func (m Matrix) IsZero() bool {
	if m.M == nil {
		return true
	}
	for _, val := range m.RawMatrix().Data {
		if val != 0 {
			return false
		}
	}
	return true
}

func (m Matrix) checkWritable() {
	if m.readOnly {
		err := fmt.Errorf("attempt to write to a read only matrix named: \"%v\"", m.name)
		panic(err)
	}
}

/*
CMatrix is the complex counterpart of Matrix, backed by a gonum CDense.
gonum cannot represent a matrix with a zero dimension, so the shape is carried
separately and M stays nil when either dimension is zero.
*/
type CMatrix struct {
	M      *mat.CDense
	nr, nc int
}

func NewCMatrix(nr, nc int) (R CMatrix) {
	if nr < 0 || nc < 0 {
		panic(fmt.Errorf("NewCMatrix requires non-negative dimensions, have nr,nc = %v,%v", nr, nc))
	}
	R = CMatrix{nr: nr, nc: nc}
	if nr*nc != 0 {
		R.M = mat.NewCDense(nr, nc, make([]complex128, CheckedVolume(nr, nc)))
	}
	return
}

func (m CMatrix) Dims() (r, c int)             { return m.nr, m.nc }
func (m CMatrix) At(i, j int) complex128       { return m.M.At(i, j) }
func (m CMatrix) Set(i, j int, val complex128) { m.M.Set(i, j, val) }
func (m CMatrix) IsEmpty() bool                { return m.M == nil }

func (m CMatrix) IsZero() bool {
	if m.M == nil {
		return true
	}
	for _, val := range m.M.RawCMatrix().Data {
		if val != 0 {
			return false
		}
	}
	return true
}
