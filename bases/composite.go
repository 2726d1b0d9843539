package bases

import (
	"github.com/flowphys/chebdns/utils"
)

// BoundaryKind selects the homogeneous boundary condition a composite
// Chebyshev basis satisfies at x = -1 and x = 1.
type BoundaryKind int

const (
	DirichletBC BoundaryKind = iota
	NeumannBC
)

// CompositeChebyshev is a basis of stenciled combinations of Chebyshev
// polynomials satisfying homogeneous boundary conditions term by term.
// Its spectral size is two less than the physical size; transforms
// route through the orthogonal parent.
type CompositeChebyshev struct {
	N, M    int
	Kind    BoundaryKind
	parent  *Chebyshev
	stencil *StencilChebyshev
}

func NewChebDirichlet(n int) *CompositeChebyshev {
	return newComposite(n, DirichletBC, NewStencilDirichlet(n))
}

func NewChebNeumann(n int) *CompositeChebyshev {
	return newComposite(n, NeumannBC, NewStencilNeumann(n))
}

func newComposite(n int, kind BoundaryKind, st *StencilChebyshev) *CompositeChebyshev {
	st.check()
	return &CompositeChebyshev{
		N:       n,
		M:       st.M,
		Kind:    kind,
		parent:  NewChebyshev(n),
		stencil: st,
	}
}

func (cc *CompositeChebyshev) LenPhys() int { return cc.N }
func (cc *CompositeChebyshev) LenSpec() int { return cc.M }
func (cc *CompositeChebyshev) IsDiag() bool { return false }

func (cc *CompositeChebyshev) Coords() utils.Vector { return cc.parent.X }

// Stencil exposes the underlying sparse transform, used for boundary
// condition lifting.
func (cc *CompositeChebyshev) Stencil() *StencilChebyshev { return cc.stencil }

// Forward composes the parent transform with the least squares
// projection onto the composite space.
func (cc *CompositeChebyshev) Forward(v, vhat utils.Matrix, axis int) {
	eachLane(v, vhat, axis, cc.N, cc.M, "composite forward", func(src, dst []float64) {
		p := make([]float64, cc.N)
		cc.parent.forwardLane(src, p)
		cc.stencil.fromParentLane(p, dst)
	})
}

func (cc *CompositeChebyshev) Backward(vhat, v utils.Matrix, axis int) {
	eachLane(vhat, v, axis, cc.M, cc.N, "composite backward", func(src, dst []float64) {
		p := make([]float64, cc.N)
		cc.stencil.toParentLane(src, p)
		cc.parent.backwardLane(p, dst)
	})
}

// Differentiate maps composite coefficients to parent space derivative
// coefficients; differentiation leaves the composite space.
func (cc *CompositeChebyshev) Differentiate(in, out utils.Matrix, nTimes, axis int) {
	eachLane(in, out, axis, cc.M, cc.N, "composite differentiate", func(src, dst []float64) {
		cc.stencil.toParentLane(src, dst)
		differentiateLane(dst, nTimes)
	})
}

func (cc *CompositeChebyshev) ForwardC(v, vhat utils.CMatrix, axis int) {
	eachLaneC(v, vhat, axis, cc.N, cc.M, "composite forward", func(src, dst []float64) {
		p := make([]float64, cc.N)
		cc.parent.forwardLane(src, p)
		cc.stencil.fromParentLane(p, dst)
	})
}

func (cc *CompositeChebyshev) BackwardC(vhat, v utils.CMatrix, axis int) {
	eachLaneC(vhat, v, axis, cc.M, cc.N, "composite backward", func(src, dst []float64) {
		p := make([]float64, cc.N)
		cc.stencil.toParentLane(src, p)
		cc.parent.backwardLane(p, dst)
	})
}

func (cc *CompositeChebyshev) DifferentiateC(in, out utils.CMatrix, nTimes, axis int) {
	eachLaneC(in, out, axis, cc.M, cc.N, "composite differentiate", func(src, dst []float64) {
		cc.stencil.toParentLane(src, dst)
		differentiateLane(dst, nTimes)
	})
}

func (cc *CompositeChebyshev) ToParent(in, out utils.Matrix, axis int) {
	eachLane(in, out, axis, cc.M, cc.N, "composite to_parent", cc.stencil.toParentLane)
}

func (cc *CompositeChebyshev) FromParent(in, out utils.Matrix, axis int) {
	eachLane(in, out, axis, cc.N, cc.M, "composite from_parent", cc.stencil.fromParentLane)
}

func (cc *CompositeChebyshev) ToParentC(in, out utils.CMatrix, axis int) {
	eachLaneC(in, out, axis, cc.M, cc.N, "composite to_parent", cc.stencil.toParentLane)
}

func (cc *CompositeChebyshev) FromParentC(in, out utils.CMatrix, axis int) {
	eachLaneC(in, out, axis, cc.N, cc.M, "composite from_parent", cc.stencil.fromParentLane)
}

// Mass is the stencil itself: parent coefficients of each composite mode.
func (cc *CompositeChebyshev) Mass() utils.Matrix { return cc.stencil.DenseMatrix() }

func (cc *CompositeChebyshev) Laplace() utils.Matrix       { return cc.parent.Laplace() }
func (cc *CompositeChebyshev) LaplaceInv() utils.Matrix    { return cc.parent.LaplaceInv() }
func (cc *CompositeChebyshev) LaplaceInvEye() utils.Matrix { return cc.parent.LaplaceInvEye() }
