package solver

import (
	"fmt"

	"github.com/flowphys/chebdns/utils"
)

// Fdma is a banded matrix with nonzero diagonals at offsets -2, 0, +2
// and +4, the structure every Chebyshev Poisson and Helmholtz operator
// reduces to. Sweep factorizes in place with a specialized forward
// elimination; after the sweep, Solve back-substitutes any number of
// right-hand sides in O(n) each.
type Fdma struct {
	N     int
	Low2  []float64 // offset -2, length n-2
	Dia   []float64 // offset  0, length n
	Up1   []float64 // offset +2, length n-2
	Up2   []float64 // offset +4, length n-4
	swept bool
}

func NewFdma(low2, dia, up1, up2 []float64) (f *Fdma) {
	var (
		n = len(dia)
	)
	if n < 4 {
		panic(fmt.Errorf("banded system of size %d is too small, need at least 4", n))
	}
	if len(low2) != n-2 || len(up1) != n-2 || len(up2) != n-4 {
		panic(fmt.Errorf("diagonal lengths %d,%d,%d inconsistent with size %d",
			len(low2), len(up1), len(up2), n))
	}
	f = &Fdma{N: n, Low2: low2, Dia: dia, Up1: up1, Up2: up2}
	return
}

// NewFdmaFromMatrix extracts the four diagonals of a square matrix;
// entries off the band are ignored.
func NewFdmaFromMatrix(A utils.Matrix) (f *Fdma) {
	var (
		nr, nc = A.Dims()
	)
	if nr != nc {
		panic(fmt.Errorf("banded extraction needs a square matrix, got %d x %d", nr, nc))
	}
	var (
		n    = nr
		low2 = make([]float64, n-2)
		dia  = make([]float64, n)
		up1  = make([]float64, n-2)
		up2  = make([]float64, n-4)
	)
	for i := 0; i < n; i++ {
		dia[i] = A.At(i, i)
	}
	for i := 0; i < n-2; i++ {
		low2[i] = A.At(i+2, i)
		up1[i] = A.At(i, i+2)
	}
	for i := 0; i < n-4; i++ {
		up2[i] = A.At(i, i+4)
	}
	f = NewFdma(low2, dia, up1, up2)
	return
}

func (f *Fdma) Copy() (R *Fdma) {
	R = &Fdma{
		N:     f.N,
		Low2:  append([]float64(nil), f.Low2...),
		Dia:   append([]float64(nil), f.Dia...),
		Up1:   append([]float64(nil), f.Up1...),
		Up2:   append([]float64(nil), f.Up2...),
		swept: f.swept,
	}
	return
}

// AddScaled returns the unswept sum f + lam*C, keeping the band layout.
// Both operands must be unswept.
func (f *Fdma) AddScaled(C *Fdma, lam float64) (R *Fdma) {
	if f.swept || C.swept {
		panic("cannot combine factorized banded matrices")
	}
	if f.N != C.N {
		panic(fmt.Errorf("dimension mismatch: %d vs %d", f.N, C.N))
	}
	R = f.Copy()
	for i := range R.Low2 {
		R.Low2[i] += lam * C.Low2[i]
	}
	for i := range R.Dia {
		R.Dia[i] += lam * C.Dia[i]
	}
	for i := range R.Up1 {
		R.Up1[i] += lam * C.Up1[i]
	}
	for i := range R.Up2 {
		R.Up2[i] += lam * C.Up2[i]
	}
	return
}

// Sweep runs the forward elimination once; the multipliers overwrite
// Low2 and the pivots overwrite Dia.
func (f *Fdma) Sweep() *Fdma {
	if f.swept {
		return f
	}
	var (
		n = f.N
	)
	for i := 2; i < n; i++ {
		l := f.Low2[i-2] / f.Dia[i-2]
		f.Dia[i] -= l * f.Up1[i-2]
		if i <= n-3 {
			f.Up1[i] -= l * f.Up2[i-2]
		}
		f.Low2[i-2] = l
	}
	f.swept = true
	return f
}

// SolveLane back-substitutes a single right-hand side in place.
func (f *Fdma) SolveLane(b []float64) {
	if !f.swept {
		panic("banded solve before sweep")
	}
	var (
		n = f.N
	)
	if len(b) != n {
		panic(fmt.Errorf("size mismatch in banded solve, got %d expected %d", len(b), n))
	}
	for i := 2; i < n; i++ {
		b[i] -= f.Low2[i-2] * b[i-2]
	}
	b[n-1] /= f.Dia[n-1]
	b[n-2] /= f.Dia[n-2]
	b[n-3] = (b[n-3] - f.Up1[n-3]*b[n-1]) / f.Dia[n-3]
	b[n-4] = (b[n-4] - f.Up1[n-4]*b[n-2]) / f.Dia[n-4]
	for i := n - 5; i >= 0; i-- {
		b[i] = (b[i] - f.Up1[i]*b[i+2] - f.Up2[i]*b[i+4]) / f.Dia[i]
	}
}

// Solve back-substitutes every lane of in along axis, returning a new
// array.
func (f *Fdma) Solve(in utils.Matrix, axis int) (out utils.Matrix) {
	var (
		nr, nc = in.Dims()
	)
	out = in.Copy()
	if axis == 1 {
		if nc != f.N {
			panic(fmt.Errorf("size mismatch in banded solve, got %d expected %d", nc, f.N))
		}
		for i := 0; i < nr; i++ {
			f.SolveLane(out.M.RawRowView(i))
		}
		return
	}
	if nr != f.N {
		panic(fmt.Errorf("size mismatch in banded solve, got %d expected %d", nr, f.N))
	}
	lane := make([]float64, f.N)
	for j := 0; j < nc; j++ {
		for i := 0; i < f.N; i++ {
			lane[i] = out.At(i, j)
		}
		f.SolveLane(lane)
		for i := 0; i < f.N; i++ {
			out.Set(i, j, lane[i])
		}
	}
	return
}
