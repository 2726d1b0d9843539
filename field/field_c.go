package field

import (
	"github.com/flowphys/chebdns/bases"
	"github.com/flowphys/chebdns/utils"
)

// Space2C pairs a Fourier axis 0 with a real basis on axis 1, the
// layout of a channel that is periodic in x and wall-bounded in y.
type Space2C struct {
	X *bases.FourierR2C
	Y bases.Base
}

func NewSpace2C(x *bases.FourierR2C, y bases.Base) Space2C {
	return Space2C{X: x, Y: y}
}

func (sp Space2C) ShapePhys() (n0, n1 int) {
	return sp.X.LenPhys(), sp.Y.LenPhys()
}

func (sp Space2C) ShapeSpec() (m0, m1 int) {
	return sp.X.LenSpec(), sp.Y.LenSpec()
}

// Field2C is a scalar field with complex spectral coefficients. The
// physical values stay real; only the spectral side carries the Fourier
// modes.
type Field2C struct {
	Space Space2C
	V     utils.Matrix
	Vhat  utils.CMatrix
}

func NewField2C(sp Space2C) (f *Field2C) {
	var (
		n0, n1 = sp.ShapePhys()
		m0, m1 = sp.ShapeSpec()
	)
	f = &Field2C{
		Space: sp,
		V:     utils.NewMatrix(n0, n1),
		Vhat:  utils.NewCMatrix(m0, m1),
	}
	return
}

func (f *Field2C) Forward() {
	var (
		_, n1 = f.Space.ShapePhys()
		m0, _ = f.Space.ShapeSpec()
		buf   = utils.NewCMatrix(m0, n1)
	)
	f.Space.X.Forward(f.V, buf, 0)
	f.Space.Y.ForwardC(buf, f.Vhat, 1)
}

func (f *Field2C) Backward() {
	var (
		_, n1 = f.Space.ShapePhys()
		m0, _ = f.Space.ShapeSpec()
		buf   = utils.NewCMatrix(m0, n1)
	)
	f.Space.Y.BackwardC(f.Vhat, buf, 1)
	f.Space.X.Backward(buf, f.V, 0)
}

// ToOrtho expands axis 1 to its orthogonal parent; the Fourier axis is
// already orthogonal.
func (f *Field2C) ToOrtho() (ortho utils.CMatrix) {
	var (
		_, n1 = f.Space.ShapePhys()
		m0, _ = f.Space.ShapeSpec()
	)
	ortho = utils.NewCMatrix(m0, n1)
	f.Space.Y.ToParentC(f.Vhat, ortho, 1)
	return
}

func (f *Field2C) FromOrtho(ortho utils.CMatrix) {
	f.Space.Y.FromParentC(ortho, f.Vhat, 1)
}

// Grad returns the mixed derivative in orthogonal spectral space,
// divided by scale[i]^deriv[i].
func (f *Field2C) Grad(deriv [2]int, scale [2]float64) (ortho utils.CMatrix) {
	var (
		_, n1 = f.Space.ShapePhys()
		m0, _ = f.Space.ShapeSpec()
	)
	ortho = utils.NewCMatrix(m0, n1)
	f.Space.Y.DifferentiateC(f.Vhat, ortho, deriv[1], 1)
	if deriv[0] > 0 {
		f.Space.X.DifferentiateC(ortho, ortho, deriv[0], 0)
	}
	applyGradScaleC(ortho, deriv, scale)
	return
}

func applyGradScaleC(m utils.CMatrix, deriv [2]int, scale [2]float64) {
	fac := 1.0
	for i := 0; i < 2; i++ {
		for d := 0; d < deriv[i]; d++ {
			fac /= scale[i]
		}
	}
	if fac != 1.0 {
		m.Scale(complex(fac, 0))
	}
}

// L2NormSpec returns the l2 norm of the spectral coefficients, used by
// the integrator's blow-up check on the divergence field.
func (f *Field2C) L2NormSpec() float64 { return f.Vhat.L2Norm() }

// HasNaN reports whether any spectral coefficient is NaN.
func (f *Field2C) HasNaN() bool { return f.Vhat.HasNaN() }
