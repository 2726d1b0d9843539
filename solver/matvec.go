package solver

import (
	"fmt"

	"github.com/james-bowman/sparse"

	"github.com/flowphys/chebdns/utils"
)

// MatVec premultiplies right-hand sides by a sparse operator along one
// axis of a 2-D array. The operators here are banded restriction
// matrices (pseudo-inverse rows, stencil mass), so they are assembled
// as a DOK and stored CSR.
type MatVec struct {
	nr, nc int
	csr    *sparse.CSR
}

// NewMatVec sparsifies A, dropping entries below tol in magnitude.
func NewMatVec(A utils.Matrix, tol float64) (mv *MatVec) {
	var (
		nr, nc = A.Dims()
		dok    = sparse.NewDOK(nr, nc)
	)
	for i := 0; i < nr; i++ {
		for j := 0; j < nc; j++ {
			if v := A.At(i, j); v > tol || v < -tol {
				dok.Set(i, j, v)
			}
		}
	}
	mv = &MatVec{nr: nr, nc: nc, csr: dok.ToCSR()}
	return
}

func (mv *MatVec) Dims() (nr, nc int) { return mv.nr, mv.nc }

// applyLane computes dst = csr*src.
func (mv *MatVec) applyLane(src, dst []float64) {
	if len(src) != mv.nc || len(dst) != mv.nr {
		panic(fmt.Errorf("size mismatch in matvec, got %d expected %d", len(src), mv.nc))
	}
	for i := range dst {
		dst[i] = 0
	}
	mv.csr.DoNonZero(func(i, j int, v float64) {
		dst[i] += v * src[j]
	})
}

// Apply multiplies every lane of in along axis, returning a new array
// with the lane extent changed from nc to nr.
func (mv *MatVec) Apply(in utils.Matrix, axis int) (out utils.Matrix) {
	var (
		inR, inC = in.Dims()
	)
	if axis == 1 {
		if inC != mv.nc {
			panic(fmt.Errorf("size mismatch in matvec, got %d expected %d", inC, mv.nc))
		}
		out = utils.NewMatrix(inR, mv.nr)
		src := make([]float64, mv.nc)
		for i := 0; i < inR; i++ {
			copy(src, in.M.RawRowView(i))
			mv.applyLane(src, out.M.RawRowView(i))
		}
		return
	}
	if inR != mv.nc {
		panic(fmt.Errorf("size mismatch in matvec, got %d expected %d", inR, mv.nc))
	}
	out = utils.NewMatrix(mv.nr, inC)
	var (
		src = make([]float64, mv.nc)
		dst = make([]float64, mv.nr)
	)
	for j := 0; j < inC; j++ {
		for i := 0; i < inR; i++ {
			src[i] = in.At(i, j)
		}
		mv.applyLane(src, dst)
		for i := 0; i < mv.nr; i++ {
			out.Set(i, j, dst[i])
		}
	}
	return
}

// ApplyC applies the real operator to a complex array by parts.
func (mv *MatVec) ApplyC(in utils.CMatrix, axis int) (out utils.CMatrix) {
	var (
		re = mv.Apply(in.Real(), axis)
		im = mv.Apply(in.Imag(), axis)
	)
	nr, nc := re.Dims()
	out = utils.NewCMatrix(nr, nc)
	out.SetParts(re, im)
	return
}
