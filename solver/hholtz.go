package solver

import (
	"fmt"

	"github.com/flowphys/chebdns/bases"
	"github.com/flowphys/chebdns/utils"
)

// Hholtz solves (I - c*Lap) u = f on a tensor product space, the
// implicit step of diffusion. The assembly premultiplies by the banded
// pseudo-inverse like Poisson but keeps the mass term, which lands on
// the inner axes; the outermost axis carries only its Laplacian block.
// The pseudo-inverse is applied before the mass matrix, the two do not
// commute.
type Hholtz struct {
	rank   int
	mv     [2]*MatVec
	tensor *FdmaTensor
}

func NewHholtz(ops []bases.Operator, c [2]float64) (hh *Hholtz) {
	hh = &Hholtz{rank: len(ops)}
	switch len(ops) {
	case 1:
		b := ops[0]
		if b.IsDiag() {
			A := b.Mass().Subtract(b.Laplace().Scale(c[0]))
			hh.tensor = NewFdmaTensor1(A)
			return
		}
		eyeM, pinvM, mv := chebAxisMats(b)
		hh.mv[0] = mv
		hh.tensor = NewFdmaTensor1(pinvM.Subtract(eyeM.Scale(c[0])))
	case 2:
		var A, C [2]utils.Matrix
		for i, b := range ops {
			outer := i == 1
			if b.IsDiag() {
				C[i] = b.Mass()
				if outer {
					A[i] = b.Laplace().Scale(-c[i])
				} else {
					A[i] = b.Mass().Subtract(b.Laplace().Scale(c[i]))
				}
				continue
			}
			eyeM, pinvM, mv := chebAxisMats(b)
			C[i] = pinvM
			if outer {
				A[i] = eyeM.Scale(-c[i])
			} else {
				A[i] = pinvM.Copy().Subtract(eyeM.Scale(c[i]))
			}
			hh.mv[i] = mv
		}
		hh.tensor = NewFdmaTensor2(A[0], C[0], A[1], C[1], ops[0].IsDiag())
	default:
		panic(fmt.Errorf("unsupported helmholtz rank %d", len(ops)))
	}
	return
}

// Solve takes the right-hand side in orthogonal spectral space and
// returns the solution in composite spectral space.
func (hh *Hholtz) Solve(in utils.CMatrix) (out utils.CMatrix) {
	buf := in
	for axis, mv := range hh.mv {
		if mv != nil {
			buf = mv.ApplyC(buf, axis)
		}
	}
	out = hh.tensor.SolveC(buf)
	return
}

// SolveReal is Solve for real coefficient spaces.
func (hh *Hholtz) SolveReal(in utils.Matrix) (out utils.Matrix) {
	buf := in
	for axis, mv := range hh.mv {
		if mv != nil {
			buf = mv.Apply(buf, axis)
		}
	}
	out = hh.tensor.Solve(buf)
	return
}
