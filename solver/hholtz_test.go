package solver

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/flowphys/chebdns/bases"
	"github.com/flowphys/chebdns/field"
	"github.com/flowphys/chebdns/utils"
)

func TestHholtz1DCheb(t *testing.T) {
	// (I - Lap) u = f with u = cos(pi/2 x), f = (1 + (pi/2)^2) u
	var (
		nx = 16
		cd = bases.NewChebDirichlet(nx)
		hh = NewHholtz([]bases.Operator{cd}, [2]float64{1, 1})
		x  = cd.Coords()
		n  = math.Pi / 2
	)
	var (
		v     = utils.NewMatrix(nx, 1)
		vhat  = utils.NewMatrix(nx-2, 1)
		ortho = utils.NewMatrix(nx, 1)
		back  = utils.NewMatrix(nx, 1)
	)
	for i := 0; i < nx; i++ {
		v.Set(i, 0, (1+n*n)*math.Cos(n*x.AtVec(i)))
	}
	cd.Forward(v, vhat, 0)
	cd.ToParent(vhat, ortho, 0)
	sol := hh.SolveReal(ortho)
	cd.Backward(sol, back, 0)
	for i := 0; i < nx; i++ {
		assert.Truef(t, near(back.At(i, 0), math.Cos(n*x.AtVec(i)), 1e-4),
			"node %d: got %v expected %v", i, back.At(i, 0), math.Cos(n*x.AtVec(i)))
	}
}

func TestHholtz1DFourier(t *testing.T) {
	// (I - Lap) u = f with u = cos(2x), f = 5 u
	var (
		nx = 16
		fo = bases.NewFourierR2C(nx)
		hh = NewHholtz([]bases.Operator{fo}, [2]float64{1, 1})
		x  = fo.Coords()
	)
	var (
		v    = utils.NewMatrix(nx, 1)
		vhat = utils.NewCMatrix(fo.LenSpec(), 1)
		back = utils.NewMatrix(nx, 1)
	)
	for i := 0; i < nx; i++ {
		v.Set(i, 0, 5*math.Cos(2*x.AtVec(i)))
	}
	fo.Forward(v, vhat, 0)
	sol := hh.Solve(vhat)
	fo.Backward(sol, back, 0)
	for i := 0; i < nx; i++ {
		assert.True(t, near(back.At(i, 0), math.Cos(2*x.AtVec(i)), 1e-8))
	}
}

func TestHholtz2DAnalytic(t *testing.T) {
	// (I - Lap) u = f with u = cos(pi/2 x) cos(pi/2 y),
	// f = (1 + 2 (pi/2)^2) u
	var (
		cd0 = bases.NewChebDirichlet(16)
		cd1 = bases.NewChebDirichlet(15)
		hh  = NewHholtz([]bases.Operator{cd0, cd1}, [2]float64{1, 1})
		f   = field.NewField2(field.NewSpace2(cd0, cd1))
		x   = cd0.Coords()
		y   = cd1.Coords()
		n   = math.Pi / 2
	)
	expected := utils.NewMatrix(16, 15)
	for i := 0; i < 16; i++ {
		for j := 0; j < 15; j++ {
			u := math.Cos(n*x.AtVec(i)) * math.Cos(n*y.AtVec(j))
			f.V.Set(i, j, (1+2*n*n)*u)
			expected.Set(i, j, u)
		}
	}
	f.Forward()
	f.Vhat = hh.SolveReal(f.ToOrtho())
	f.Backward()
	approxEqM(t, f.V, expected.Data(), 1e-4)
}

func TestHholtz2DFourierCheb(t *testing.T) {
	// (I - Lap) u = f with u = cos(x) cos(pi/2 y), f = (2 + (pi/2)^2) u
	var (
		fo = bases.NewFourierR2C(16)
		cd = bases.NewChebDirichlet(15)
		hh = NewHholtz([]bases.Operator{fo, cd}, [2]float64{1, 1})
		f  = field.NewField2C(field.NewSpace2C(fo, cd))
		x  = fo.Coords()
		y  = cd.Coords()
		n  = math.Pi / 2
	)
	expected := utils.NewMatrix(16, 15)
	for i := 0; i < 16; i++ {
		for j := 0; j < 15; j++ {
			u := math.Cos(x.AtVec(i)) * math.Cos(n*y.AtVec(j))
			f.V.Set(i, j, (2+n*n)*u)
			expected.Set(i, j, u)
		}
	}
	f.Forward()
	f.Vhat = hh.Solve(f.ToOrtho())
	f.Backward()
	approxEqM(t, f.V, expected.Data(), 1e-4)
}

func TestHholtzDiffusionLimit(t *testing.T) {
	// With c = 0 the operator reduces to the identity on the composite
	// space.
	var (
		cd = bases.NewChebDirichlet(10)
		hh = NewHholtz([]bases.Operator{cd}, [2]float64{0, 0})
		v  = utils.NewMatrix(10, 1)
	)
	for i := 0; i < 10; i++ {
		v.Set(i, 0, math.Sin(float64(i)))
	}
	var (
		vhat  = utils.NewMatrix(8, 1)
		ortho = utils.NewMatrix(10, 1)
	)
	cd.Forward(v, vhat, 0)
	// Dirichlet walls force v onto the composite space first
	cd.Backward(vhat, v, 0)
	cd.Forward(v, vhat, 0)
	cd.ToParent(vhat, ortho, 0)
	sol := hh.SolveReal(ortho)
	approxEqM(t, sol, vhat.Data(), 1e-8)
}
