package field

import (
	"github.com/flowphys/chebdns/bases"
	"github.com/flowphys/chebdns/utils"
)

// Space2 pairs two real bases spanning a 2-D tensor product domain.
// Axis 0 varies along rows, axis 1 along columns.
type Space2 struct {
	Bases [2]bases.Base
}

func NewSpace2(b0, b1 bases.Base) Space2 {
	return Space2{Bases: [2]bases.Base{b0, b1}}
}

func (sp Space2) ShapePhys() (n0, n1 int) {
	return sp.Bases[0].LenPhys(), sp.Bases[1].LenPhys()
}

func (sp Space2) ShapeSpec() (m0, m1 int) {
	return sp.Bases[0].LenSpec(), sp.Bases[1].LenSpec()
}

// Field2 is a scalar field with real coefficients. V holds physical
// values on the tensor product grid, Vhat the composite spectral
// coefficients; after a transform only the written side is meaningful.
type Field2 struct {
	Space Space2
	V     utils.Matrix
	Vhat  utils.Matrix
}

func NewField2(sp Space2) (f *Field2) {
	var (
		n0, n1 = sp.ShapePhys()
		m0, m1 = sp.ShapeSpec()
	)
	f = &Field2{
		Space: sp,
		V:     utils.NewMatrix(n0, n1),
		Vhat:  utils.NewMatrix(m0, m1),
	}
	return
}

func (f *Field2) Forward() {
	var (
		b      = f.Space.Bases
		_, n1  = f.Space.ShapePhys()
		m0, _  = f.Space.ShapeSpec()
		buf    = utils.NewMatrix(m0, n1)
	)
	b[0].Forward(f.V, buf, 0)
	b[1].Forward(buf, f.Vhat, 1)
}

func (f *Field2) Backward() {
	var (
		b      = f.Space.Bases
		_, n1  = f.Space.ShapePhys()
		m0, _  = f.Space.ShapeSpec()
		buf    = utils.NewMatrix(m0, n1)
	)
	b[1].Backward(f.Vhat, buf, 1)
	b[0].Backward(buf, f.V, 0)
}

// ToOrtho maps the composite coefficients to the orthogonal parent
// spaces of both axes.
func (f *Field2) ToOrtho() (ortho utils.Matrix) {
	var (
		b      = f.Space.Bases
		n0, n1 = f.Space.ShapePhys()
		_, m1  = f.Space.ShapeSpec()
		buf    = utils.NewMatrix(n0, m1)
	)
	ortho = utils.NewMatrix(n0, n1)
	b[0].ToParent(f.Vhat, buf, 0)
	b[1].ToParent(buf, ortho, 1)
	return
}

// FromOrtho projects orthogonal parent coefficients back onto the
// composite spaces, overwriting Vhat.
func (f *Field2) FromOrtho(ortho utils.Matrix) {
	var (
		b      = f.Space.Bases
		_, n1  = f.Space.ShapePhys()
		m0, _  = f.Space.ShapeSpec()
		buf    = utils.NewMatrix(m0, n1)
	)
	b[0].FromParent(ortho, buf, 0)
	b[1].FromParent(buf, f.Vhat, 1)
}

// Grad returns the mixed derivative prescribed by deriv in orthogonal
// spectral space, divided by scale[i]^deriv[i] to account for the
// physical extent of each axis.
func (f *Field2) Grad(deriv [2]int, scale [2]float64) (ortho utils.Matrix) {
	var (
		b      = f.Space.Bases
		n0, n1 = f.Space.ShapePhys()
		_, m1  = f.Space.ShapeSpec()
		buf    = utils.NewMatrix(n0, m1)
	)
	ortho = utils.NewMatrix(n0, n1)
	b[0].Differentiate(f.Vhat, buf, deriv[0], 0)
	b[1].Differentiate(buf, ortho, deriv[1], 1)
	applyGradScale(ortho, deriv, scale)
	return
}

func applyGradScale(m utils.Matrix, deriv [2]int, scale [2]float64) {
	fac := 1.0
	for i := 0; i < 2; i++ {
		for d := 0; d < deriv[i]; d++ {
			fac /= scale[i]
		}
	}
	if fac != 1.0 {
		m.Scale(fac)
	}
}
