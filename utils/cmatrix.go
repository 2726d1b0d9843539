package utils

import (
	"fmt"
	"math"
	"math/cmplx"
)

// CMatrix is a row-major complex valued matrix. Spectral coefficients of
// fields with a Fourier axis are complex, and gonum's dense types are real,
// so products with real operator matrices are delegated to gonum by
// splitting into real and imaginary parts.
type CMatrix struct {
	nr, nc int
	Data   []complex128
}

func NewCMatrix(nr, nc int, dataO ...[]complex128) (R CMatrix) {
	if len(dataO) != 0 {
		if len(dataO[0]) != nr*nc {
			err := fmt.Errorf("mismatch in allocation: NewCMatrix nr,nc = %v,%v, len(data[0]) = %v", nr, nc, len(dataO[0]))
			panic(err)
		}
		R = CMatrix{nr, nc, dataO[0]}
	} else {
		R = CMatrix{nr, nc, make([]complex128, nr*nc)}
	}
	return
}

func (m CMatrix) Dims() (r, c int)            { return m.nr, m.nc }
func (m CMatrix) At(i, j int) complex128      { return m.Data[i*m.nc+j] }
func (m CMatrix) Set(i, j int, val complex128) { m.Data[i*m.nc+j] = val }

// Row returns the backing slice of row i, writable.
func (m CMatrix) Row(i int) []complex128 { return m.Data[i*m.nc : (i+1)*m.nc] }

func (m CMatrix) Copy() (R CMatrix) {
	data := make([]complex128, len(m.Data))
	copy(data, m.Data)
	R = CMatrix{m.nr, m.nc, data}
	return
}

func (m CMatrix) Zero() CMatrix {
	for i := range m.Data {
		m.Data[i] = 0
	}
	return m
}

func (m CMatrix) Assign(A CMatrix) CMatrix {
	m.checkSame(A)
	copy(m.Data, A.Data)
	return m
}

func (m CMatrix) Scale(a complex128) CMatrix {
	for i := range m.Data {
		m.Data[i] *= a
	}
	return m
}

func (m CMatrix) Add(A CMatrix) CMatrix {
	m.checkSame(A)
	for i := range m.Data {
		m.Data[i] += A.Data[i]
	}
	return m
}

func (m CMatrix) Subtract(A CMatrix) CMatrix {
	m.checkSame(A)
	for i := range m.Data {
		m.Data[i] -= A.Data[i]
	}
	return m
}

// AddScaled accumulates a*A into the receiver without an intermediate copy.
func (m CMatrix) AddScaled(A CMatrix, a complex128) CMatrix {
	m.checkSame(A)
	for i := range m.Data {
		m.Data[i] += a * A.Data[i]
	}
	return m
}

func (m CMatrix) Real() (R Matrix) {
	R = NewMatrix(m.nr, m.nc)
	data := R.Data()
	for i, v := range m.Data {
		data[i] = real(v)
	}
	return
}

func (m CMatrix) Imag() (R Matrix) {
	R = NewMatrix(m.nr, m.nc)
	data := R.Data()
	for i, v := range m.Data {
		data[i] = imag(v)
	}
	return
}

func (m CMatrix) SetParts(re, im Matrix) CMatrix {
	var (
		dRe = re.Data()
		dIm = im.Data()
	)
	if len(dRe) != len(m.Data) || len(dIm) != len(m.Data) {
		panic(fmt.Errorf("dimension mismatch in SetParts: %v vs %v, %v", len(m.Data), len(dRe), len(dIm)))
	}
	for i := range m.Data {
		m.Data[i] = complex(dRe[i], dIm[i])
	}
	return m
}

// MulLeft computes A*m for a real A, via two real gonum multiplies.
func (m CMatrix) MulLeft(A Matrix) (R CMatrix) {
	var (
		nrA, _ = A.Dims()
	)
	re := A.Mul(m.Real())
	im := A.Mul(m.Imag())
	R = NewCMatrix(nrA, m.nc)
	R.SetParts(re, im)
	return
}

func (m CMatrix) L2Norm() (norm float64) {
	for _, v := range m.Data {
		norm += real(v)*real(v) + imag(v)*imag(v)
	}
	return math.Sqrt(norm)
}

func (m CMatrix) HasNaN() bool {
	for _, v := range m.Data {
		if cmplx.IsNaN(v) {
			return true
		}
	}
	return false
}

func (m CMatrix) checkSame(A CMatrix) {
	if m.nr != A.nr || m.nc != A.nc {
		panic(fmt.Errorf("dimension mismatch: %v,%v vs %v,%v", m.nr, m.nc, A.nr, A.nc))
	}
}
