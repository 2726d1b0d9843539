package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCMatrixMulLeft(t *testing.T) {
	var (
		A = NewMatrix(2, 2, []float64{1, 2, 3, 4})
		m = NewCMatrix(2, 1, []complex128{1 + 2i, 3 - 1i})
	)
	R := A.Mul(m.Real())
	I := A.Mul(m.Imag())
	got := m.MulLeft(A)
	assert.True(t, near(real(got.At(0, 0)), R.At(0, 0), 1e-14))
	assert.True(t, near(imag(got.At(0, 0)), I.At(0, 0), 1e-14))
	assert.True(t, near(real(got.At(1, 0)), 15, 1e-14)) // 3*1 + 4*3
	assert.True(t, near(imag(got.At(1, 0)), 2, 1e-14))  // 3*2 + 4*(-1)
}

func TestCMatrixAddScaled(t *testing.T) {
	m := NewCMatrix(2, 2, []complex128{1, 2, 3, 4})
	a := NewCMatrix(2, 2, []complex128{1i, 1i, 1i, 1i})
	m.AddScaled(a, 2)
	assert.Equal(t, complex128(1+2i), m.At(0, 0))
	assert.Equal(t, complex128(4+2i), m.At(1, 1))
}

func TestCMatrixParts(t *testing.T) {
	m := NewCMatrix(2, 2)
	re := NewMatrix(2, 2, []float64{1, 2, 3, 4})
	im := NewMatrix(2, 2, []float64{5, 6, 7, 8})
	m.SetParts(re, im)
	assert.Equal(t, complex128(1+5i), m.At(0, 0))
	assert.Equal(t, re.Data(), m.Real().Data())
	assert.Equal(t, im.Data(), m.Imag().Data())
}

func TestCMatrixNormNaN(t *testing.T) {
	m := NewCMatrix(1, 2, []complex128{3, 4i})
	assert.True(t, near(m.L2Norm(), 5, 1e-14))
	assert.False(t, m.HasNaN())
	m.Data[0] = complex(math.NaN(), 0)
	assert.True(t, m.HasNaN())
}

func TestCMatrixAssignChecks(t *testing.T) {
	m := NewCMatrix(2, 2)
	assert.Panics(t, func() { m.Assign(NewCMatrix(3, 2)) })
}
