package solver

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/flowphys/chebdns/bases"
	"github.com/flowphys/chebdns/field"
	"github.com/flowphys/chebdns/utils"
)

func TestPoisson1D(t *testing.T) {
	var (
		cd = bases.NewChebDirichlet(8)
		po = NewPoisson([]bases.Operator{cd}, [2]float64{1, 1})
		b  = utils.NewMatrix(8, 1, []float64{1, 2, 3, 4, 5, 6, 7, 8})
	)
	x := po.SolveReal(b)
	expected := []float64{0.1042, 0.0809, 0.0625, 0.0393, -0.0417, -0.0357}
	for i := range expected {
		assert.Truef(t, near(x.At(i, 0), expected[i], 1e-3),
			"row %d: got %v expected %v", i, x.At(i, 0), expected[i])
	}
}

func poisson2DRhs() (b utils.Matrix) {
	b = utils.NewMatrix(8, 7)
	for i := 0; i < 8; i++ {
		for j := 0; j < 7; j++ {
			b.Set(i, j, float64(j+1))
		}
	}
	return
}

var poisson2DSolution = []float64{
	0.01869736, 0.0244178, 0.01403203, -0.0202917, -0.0196697,
	-0.0027890, -0.004035, -0.0059870, -0.0023490, -0.0046850,
	-0.0023900, -0.007947, -0.0085570, -0.0189310, -0.0223680,
	-0.0038940, -0.006622, -0.0096270, -0.0079020, -0.0120490,
	0.00025400, -0.006752, -0.0082940, -0.0316230, -0.0361640,
	-0.0001120, -0.004374, -0.0066430, -0.0216410, -0.0262570,
}

func TestPoisson2D(t *testing.T) {
	var (
		cd0 = bases.NewChebDirichlet(8)
		cd1 = bases.NewChebDirichlet(7)
		po  = NewPoisson([]bases.Operator{cd0, cd1}, [2]float64{1, 1})
	)
	x := po.SolveReal(poisson2DRhs())
	approxEqM(t, x, poisson2DSolution, 1e-3)
}

func TestPoisson2DComplex(t *testing.T) {
	// Real operators act on the parts independently, so b+ib solves to
	// y+iy.
	var (
		cd0 = bases.NewChebDirichlet(8)
		cd1 = bases.NewChebDirichlet(7)
		po  = NewPoisson([]bases.Operator{cd0, cd1}, [2]float64{1, 1})
		rhs = poisson2DRhs()
		b   = utils.NewCMatrix(8, 7)
	)
	b.SetParts(rhs, rhs)
	x := po.Solve(b)
	for i := 0; i < 6; i++ {
		for j := 0; j < 5; j++ {
			want := poisson2DSolution[i*5+j]
			assert.True(t, near(real(x.At(i, j)), want, 1e-3))
			assert.True(t, near(imag(x.At(i, j)), want, 1e-3))
		}
	}
}

func TestPoisson2DAnalytic(t *testing.T) {
	// Lap(u) = f with u = cos(pi/2 x) cos(pi/2 y), so solving with f = u
	// returns u scaled by -1/(2 (pi/2)^2).
	var (
		cd0 = bases.NewChebDirichlet(8)
		cd1 = bases.NewChebDirichlet(7)
		po  = NewPoisson([]bases.Operator{cd0, cd1}, [2]float64{1, 1})
		f   = field.NewField2(field.NewSpace2(cd0, cd1))
		x   = cd0.Coords()
		y   = cd1.Coords()
		n   = math.Pi / 2
	)
	expected := utils.NewMatrix(8, 7)
	for i := 0; i < 8; i++ {
		for j := 0; j < 7; j++ {
			f.V.Set(i, j, math.Cos(n*x.AtVec(i))*math.Cos(n*y.AtVec(j)))
			expected.Set(i, j, -1/(n*n*2)*f.V.At(i, j))
		}
	}
	f.Forward()
	f.Vhat = po.SolveReal(f.ToOrtho())
	f.Backward()
	approxEqM(t, f.V, expected.Data(), 1e-3)
}

func TestPoisson2DFourierCheb(t *testing.T) {
	// Periodic x wall-bounded space; the zero wavenumber makes the
	// operator singular, which the solver resolves by shifting the
	// eigenvalues and pinning the mean mode.
	var (
		fo = bases.NewFourierR2C(16)
		cd = bases.NewChebDirichlet(7)
		po = NewPoisson([]bases.Operator{fo, cd}, [2]float64{1, 1})
		f  = field.NewField2C(field.NewSpace2C(fo, cd))
		x  = fo.Coords()
		y  = cd.Coords()
		n  = math.Pi / 2
	)
	assert.True(t, po.singular)
	expected := utils.NewMatrix(16, 7)
	for i := 0; i < 16; i++ {
		for j := 0; j < 7; j++ {
			f.V.Set(i, j, math.Cos(x.AtVec(i))*math.Cos(n*y.AtVec(j)))
			expected.Set(i, j, -1/(1+n*n)*f.V.At(i, j))
		}
	}
	f.Forward()
	f.Vhat = po.Solve(f.ToOrtho())
	f.Backward()
	approxEqM(t, f.V, expected.Data(), 1e-3)
}
