package solver

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/flowphys/chebdns/utils"
)

func near(a, b, tol float64) (l bool) {
	if math.Abs(a-b) < tol {
		l = true
	}
	return
}

func approxEqM(t *testing.T, got utils.Matrix, expected []float64, tol float64) {
	t.Helper()
	data := got.Data()
	assert.Equal(t, len(expected), len(data))
	for i := range expected {
		assert.Truef(t, near(data[i], expected[i], tol),
			"index %d: got %v expected %v", i, data[i], expected[i])
	}
}

// bandedTestMatrix is a well conditioned four-diagonal matrix.
func bandedTestMatrix(n int) (A utils.Matrix) {
	A = utils.NewMatrix(n, n)
	for i := 0; i < n; i++ {
		j := float64(i + 1)
		A.Set(i, i, 0.5*j)
		if i > 1 {
			A.Set(i, i-2, 10*j)
		}
		if i < n-2 {
			A.Set(i, i+2, 1.5*j)
		}
		if i < n-4 {
			A.Set(i, i+4, 2.5*j)
		}
	}
	return
}

func TestFdmaSolve(t *testing.T) {
	var (
		n = 6
		A = bandedTestMatrix(n)
		f = NewFdmaFromMatrix(A).Sweep()
		b = make([]float64, n)
	)
	for i := range b {
		b[i] = float64(i)
	}
	x := append([]float64(nil), b...)
	f.SolveLane(x)
	// Recover b = A*x
	recover := A.Mul(utils.NewMatrix(n, 1, x))
	for i := 0; i < n; i++ {
		assert.Truef(t, near(recover.At(i, 0), b[i], 1e-3),
			"row %d: got %v expected %v", i, recover.At(i, 0), b[i])
	}
}

func TestFdmaSolveMulti(t *testing.T) {
	// Lane-wise solve along both axes against the dense product
	var (
		n = 8
		A = bandedTestMatrix(n)
		f = NewFdmaFromMatrix(A).Sweep()
		B = utils.NewMatrix(n, 3)
	)
	for i := 0; i < n; i++ {
		for j := 0; j < 3; j++ {
			B.Set(i, j, float64(i+j*7))
		}
	}
	X := f.Solve(B, 0)
	recover := A.Mul(X)
	for i := 0; i < n; i++ {
		for j := 0; j < 3; j++ {
			assert.True(t, near(recover.At(i, j), B.At(i, j), 1e-3))
		}
	}
}

func TestFdmaAddScaled(t *testing.T) {
	var (
		n   = 6
		A   = bandedTestMatrix(n)
		C   = utils.NewIdentity(n)
		lam = 2.5
	)
	f := NewFdmaFromMatrix(A).AddScaled(NewFdmaFromMatrix(C), lam).Sweep()
	b := []float64{1, -1, 2, -2, 3, -3}
	x := append([]float64(nil), b...)
	f.SolveLane(x)
	// Recover against the dense A + lam*I
	dense := A.Copy().Add(utils.NewIdentity(n).Scale(lam))
	recover := dense.Mul(utils.NewMatrix(n, 1, x))
	for i := 0; i < n; i++ {
		assert.True(t, near(recover.At(i, 0), b[i], 1e-3))
	}
}

func TestFdmaPanics(t *testing.T) {
	A := bandedTestMatrix(6)
	f := NewFdmaFromMatrix(A)
	// solve before sweep
	assert.Panics(t, func() { f.SolveLane(make([]float64, 6)) })
	// wrong lane size
	f.Sweep()
	assert.Panics(t, func() { f.SolveLane(make([]float64, 5)) })
	// combining factorized matrices
	assert.Panics(t, func() { f.AddScaled(NewFdmaFromMatrix(A), 1) })
}
