package solver

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/flowphys/chebdns/bases"
	"github.com/flowphys/chebdns/utils"
)

const singularEps = 1e-10

// Poisson solves c*Lap(u) = f on a tensor product space. Per axis the
// operator pair (A, C) feeds the tensor solver: a Fourier axis
// contributes the diagonal Laplacian directly, a Chebyshev axis is
// premultiplied by the banded pseudo-inverse so that every matrix stays
// inside the four-diagonal band.
//
// With a zero-wavenumber Fourier mode on axis 0 the operator is
// singular; the eigenvalues are then shifted by a tiny epsilon, a notice
// is logged once at construction, and the free mean mode of the solution
// is pinned to zero.
type Poisson struct {
	rank     int
	mv       [2]*MatVec
	tensor   *FdmaTensor
	singular bool
}

// chebAxisMats builds the banded operator blocks of a (composite)
// Chebyshev axis. A pure Chebyshev mass is sliced to columns 2: so the
// blocks stay square.
func chebAxisMats(b bases.Operator) (eyeM, pinvM utils.Matrix, mv *MatVec) {
	var (
		n    = b.LenPhys()
		M    = b.Mass()
		eye  = b.LaplaceInvEye()
		pinv = b.LaplaceInv()
	)
	if b.LenSpec() == n {
		M = M.Slice(0, n, 2, n)
	}
	eyeM = eye.Mul(M)
	pinvM = eye.Mul(pinv).Mul(M)
	mv = NewMatVec(pinv.Slice(2, n, 0, n), 1e-14)
	return
}

func NewPoisson(ops []bases.Operator, c [2]float64) (po *Poisson) {
	po = &Poisson{rank: len(ops)}
	switch len(ops) {
	case 1:
		if ops[0].IsDiag() {
			panic("1-D poisson on a periodic axis is singular")
		}
		eyeM, _, mv := chebAxisMats(ops[0])
		po.mv[0] = mv
		po.tensor = NewFdmaTensor1(eyeM.Scale(c[0]))
	case 2:
		var A, C [2]utils.Matrix
		for i, b := range ops {
			if b.IsDiag() {
				A[i] = b.Laplace().Scale(c[i])
				C[i] = b.Mass()
				continue
			}
			eyeM, pinvM, mv := chebAxisMats(b)
			A[i] = eyeM.Scale(c[i])
			C[i] = pinvM
			po.mv[i] = mv
		}
		po.tensor = NewFdmaTensor2(A[0], C[0], A[1], C[1], ops[0].IsDiag())
		if math.Abs(po.tensor.Lam0[0]) < singularEps {
			for i := range po.tensor.Lam0 {
				po.tensor.Lam0[i] -= singularEps
			}
			po.singular = true
			zap.S().Infof("poisson operator is singular, shifting eigenvalues by %.1e and pinning the mean mode", singularEps)
		}
	default:
		panic(fmt.Errorf("unsupported poisson rank %d", len(ops)))
	}
	return
}

// Solve takes the right-hand side in orthogonal spectral space and
// returns the solution in composite spectral space.
func (po *Poisson) Solve(in utils.CMatrix) (out utils.CMatrix) {
	buf := in
	for axis, mv := range po.mv {
		if mv != nil {
			buf = mv.ApplyC(buf, axis)
		}
	}
	out = po.tensor.SolveC(buf)
	if po.singular {
		out.Set(0, 0, 0)
	}
	return
}

// SolveReal is Solve for real coefficient spaces.
func (po *Poisson) SolveReal(in utils.Matrix) (out utils.Matrix) {
	buf := in
	for axis, mv := range po.mv {
		if mv != nil {
			buf = mv.Apply(buf, axis)
		}
	}
	out = po.tensor.Solve(buf)
	if po.singular {
		out.Set(0, 0, 0)
	}
	return
}
