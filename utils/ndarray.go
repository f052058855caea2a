package utils

import "fmt"

/*
Array3 and Array4 hold grid data in one flat slice, row major (last index fastest),
the same layout a numpy array in C order has. An axis of length zero is legal and
produces an empty array that still reports its full shape.
*/
type Array3[T any] struct {
	Ni, Nj, Nk int
	Data       []T
}

func NewArray3[T any](ni, nj, nk int) (A Array3[T]) {
	A = Array3[T]{
		Ni: ni, Nj: nj, Nk: nk,
		Data: make([]T, CheckedVolume(ni, nj, nk)),
	}
	return
}

// NewArray3Fill allocates and sets every element to val
func NewArray3Fill[T any](ni, nj, nk int, val T) (A Array3[T]) {
	A = NewArray3[T](ni, nj, nk)
	A.Fill(val)
	return
}

func (A Array3[T]) Shape() []int { return []int{A.Ni, A.Nj, A.Nk} }
func (A Array3[T]) Len() int     { return len(A.Data) }

func (A Array3[T]) Index(i, j, k int) int {
	if i < 0 || i >= A.Ni || j < 0 || j >= A.Nj || k < 0 || k >= A.Nk {
		panic(fmt.Errorf("index (%d,%d,%d) out of bounds for shape %v", i, j, k, A.Shape()))
	}
	return (i*A.Nj+j)*A.Nk + k
}

func (A Array3[T]) At(i, j, k int) T {
	return A.Data[A.Index(i, j, k)]
}

func (A Array3[T]) Set(i, j, k int, val T) Array3[T] { // Changes receiver data
	A.Data[A.Index(i, j, k)] = val
	return A
}

func (A Array3[T]) Fill(val T) Array3[T] { // Changes receiver data
	for i := range A.Data {
		A.Data[i] = val
	}
	return A
}

// All reports whether every element satisfies f, true for an empty array
func (A Array3[T]) All(f func(val T) bool) bool {
	for _, val := range A.Data {
		if !f(val) {
			return false
		}
	}
	return true
}

type Array4[T any] struct {
	N0         int
	Ni, Nj, Nk int
	Data       []T
}

func NewArray4[T any](n0, ni, nj, nk int) (A Array4[T]) {
	A = Array4[T]{
		N0: n0,
		Ni: ni, Nj: nj, Nk: nk,
		Data: make([]T, CheckedVolume(n0, ni, nj, nk)),
	}
	return
}

func NewArray4Fill[T any](n0, ni, nj, nk int, val T) (A Array4[T]) {
	A = NewArray4[T](n0, ni, nj, nk)
	A.Fill(val)
	return
}

func (A Array4[T]) Shape() []int { return []int{A.N0, A.Ni, A.Nj, A.Nk} }
func (A Array4[T]) Len() int     { return len(A.Data) }

func (A Array4[T]) Index(n, i, j, k int) int {
	if n < 0 || n >= A.N0 || i < 0 || i >= A.Ni || j < 0 || j >= A.Nj || k < 0 || k >= A.Nk {
		panic(fmt.Errorf("index (%d,%d,%d,%d) out of bounds for shape %v", n, i, j, k, A.Shape()))
	}
	return ((n*A.Ni+i)*A.Nj+j)*A.Nk + k
}

func (A Array4[T]) At(n, i, j, k int) T {
	return A.Data[A.Index(n, i, j, k)]
}

func (A Array4[T]) Set(n, i, j, k int, val T) Array4[T] { // Changes receiver data
	A.Data[A.Index(n, i, j, k)] = val
	return A
}

func (A Array4[T]) Fill(val T) Array4[T] { // Changes receiver data
	for i := range A.Data {
		A.Data[i] = val
	}
	return A
}

// Slab returns the 3D array at leading index n, sharing storage with the receiver
func (A Array4[T]) Slab(n int) (S Array3[T]) {
	if n < 0 || n >= A.N0 {
		panic(fmt.Errorf("slab %d out of bounds, leading dimension is %d", n, A.N0))
	}
	var (
		vol = A.Ni * A.Nj * A.Nk
	)
	S = Array3[T]{
		Ni: A.Ni, Nj: A.Nj, Nk: A.Nk,
		Data: A.Data[n*vol : (n+1)*vol : (n+1)*vol],
	}
	return
}

func (A Array4[T]) All(f func(val T) bool) bool {
	for _, val := range A.Data {
		if !f(val) {
			return false
		}
	}
	return true
}

/*
CheckedVolume returns the product of the dimensions, panicking on a negative
dimension or when the product overflows an int. Either case means the array can
never be allocated, which callers treat as fatal.
*/
func CheckedVolume(dims ...int) (vol int) {
	var (
		maxInt = int(^uint(0) >> 1)
	)
	vol = 1
	for _, d := range dims {
		if d < 0 {
			panic(fmt.Errorf("negative dimension in shape %v", dims))
		}
	}
	for _, d := range dims {
		if d == 0 {
			return 0
		}
	}
	for _, d := range dims {
		if vol > maxInt/d {
			panic(fmt.Errorf("shape %v overflows addressable element count", dims))
		}
		vol *= d
	}
	return
}
