package utils

import (
	"fmt"

	"gonum.org/v1/gonum/blas/blas64"
	"gonum.org/v1/gonum/mat"
)

type Matrix struct {
	M *mat.Dense
}

func NewMatrix(nr, nc int, dataO ...[]float64) (R Matrix) {
	var m *mat.Dense
	if len(dataO) != 0 {
		if len(dataO[0]) != nr*nc {
			err := fmt.Errorf("mismatch in allocation: NewMatrix nr,nc = %v,%v, len(data[0]) = %v", nr, nc, len(dataO[0]))
			panic(err)
		}
		m = mat.NewDense(nr, nc, dataO[0])
	} else {
		m = mat.NewDense(nr, nc, make([]float64, nr*nc))
	}
	R = Matrix{m}
	return
}

// Dims, At and T minimally satisfy the mat.Matrix interface.
func (m Matrix) Dims() (r, c int)          { return m.M.Dims() }
func (m Matrix) At(i, j int) float64       { return m.M.At(i, j) }
func (m Matrix) T() mat.Matrix             { return m.M.T() }
func (m Matrix) RawMatrix() blas64.General { return m.M.RawMatrix() }
func (m Matrix) Set(i, j int, val float64) { m.M.Set(i, j, val) }

func (m Matrix) Data() []float64 { return m.M.RawMatrix().Data }

func NewIdentity(n int) (R Matrix) {
	R = NewMatrix(n, n)
	for i := 0; i < n; i++ {
		R.Set(i, i, 1)
	}
	return
}

func NewDiagMatrix(d []float64) (R Matrix) {
	R = NewMatrix(len(d), len(d))
	for i, val := range d {
		R.Set(i, i, val)
	}
	return
}

// Chainable methods, named returns in the style of the rest of the library

func (m Matrix) Copy() (R Matrix) { // Does not change receiver
	var (
		nr, nc = m.Dims()
		data   = m.Data()
		dataR  = make([]float64, nr*nc)
	)
	copy(dataR, data)
	R = NewMatrix(nr, nc, dataR)
	return
}

func (m Matrix) Transpose() (R Matrix) { // Does not change receiver
	var (
		nr, nc = m.Dims()
	)
	R = NewMatrix(nc, nr)
	for i := 0; i < nr; i++ {
		for j := 0; j < nc; j++ {
			R.Set(j, i, m.At(i, j))
		}
	}
	return
}

func (m Matrix) Mul(A Matrix) (R Matrix) { // Does not change receiver
	var (
		nrM, _ = m.M.Dims()
		_, ncA = A.M.Dims()
	)
	R = NewMatrix(nrM, ncA)
	R.M.Mul(m.M, A.M)
	return
}

func (m Matrix) Scale(a float64) Matrix { // Changes receiver
	var (
		data = m.Data()
	)
	for i := range data {
		data[i] *= a
	}
	return m
}

func (m Matrix) Add(A Matrix) Matrix { // Changes receiver
	var (
		data  = m.Data()
		dataA = A.Data()
	)
	if len(data) != len(dataA) {
		panic(fmt.Errorf("dimension mismatch in Add: %v vs %v", len(data), len(dataA)))
	}
	for i := range data {
		data[i] += dataA[i]
	}
	return m
}

func (m Matrix) Subtract(A Matrix) Matrix { // Changes receiver
	var (
		data  = m.Data()
		dataA = A.Data()
	)
	if len(data) != len(dataA) {
		panic(fmt.Errorf("dimension mismatch in Subtract: %v vs %v", len(data), len(dataA)))
	}
	for i := range data {
		data[i] -= dataA[i]
	}
	return m
}

func (m Matrix) ElMul(A Matrix) Matrix { // Changes receiver
	var (
		data  = m.Data()
		dataA = A.Data()
	)
	for i := range data {
		data[i] *= dataA[i]
	}
	return m
}

func (m Matrix) Apply(f func(float64) float64) Matrix { // Changes receiver
	var (
		data = m.Data()
	)
	for i, val := range data {
		data[i] = f(val)
	}
	return m
}

func (m Matrix) Slice(I, K, J, L int) (R Matrix) { // Does not change receiver
	var (
		nrR = K - I
		ncR = L - J
	)
	R = NewMatrix(nrR, ncR)
	for i := I; i < K; i++ {
		for j := J; j < L; j++ {
			R.Set(i-I, j-J, m.At(i, j))
		}
	}
	return
}

func (m Matrix) Inverse() (R Matrix) {
	var (
		nr, nc = m.Dims()
	)
	if nr != nc {
		panic(fmt.Errorf("cannot invert non-square matrix: nr,nc = %v,%v", nr, nc))
	}
	R = NewMatrix(nr, nc)
	if err := R.M.Inverse(m.M); err != nil {
		panic(err)
	}
	return
}

// Diagonal extracts the diagonal at the given offset, positive offsets
// being above the main diagonal.
func (m Matrix) Diagonal(offset int) (d []float64) {
	var (
		nr, nc = m.Dims()
	)
	for i := 0; i < nr; i++ {
		j := i + offset
		if j >= 0 && j < nc {
			d = append(d, m.At(i, j))
		}
	}
	return
}

func (m Matrix) Max() (max float64) {
	var (
		data = m.Data()
	)
	max = data[0]
	for _, val := range data {
		if val > max {
			max = val
		}
	}
	return
}

func (m Matrix) Min() (min float64) {
	var (
		data = m.Data()
	)
	min = data[0]
	for _, val := range data {
		if val < min {
			min = val
		}
	}
	return
}
