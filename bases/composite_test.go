package bases

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/flowphys/chebdns/utils"
)

func TestChebDirichletDifferentiate(t *testing.T) {
	// Second derivative of composite coefficients 0..23, output in
	// parent space. Axis 0
	{
		cd := NewChebDirichlet(8)
		in := iota2D(6, 4)
		out := utils.NewMatrix(8, 4)
		cd.Differentiate(in, out, 2, 0)
		approxEq(t, out, []float64{
			-1440.0, -1548.0, -1656.0, -1764.0,
			-5568.0, -5904.0, -6240.0, -6576.0,
			-2688.0, -2880.0, -3072.0, -3264.0,
			-4960.0, -5240.0, -5520.0, -5800.0,
			-1920.0, -2040.0, -2160.0, -2280.0,
			-3360.0, -3528.0, -3696.0, -3864.0,
			0.0, 0.0, 0.0, 0.0,
			0.0, 0.0, 0.0, 0.0,
		}, 1e-3)
	}
	// Axis 1
	{
		cd := NewChebDirichlet(6)
		in := iota2D(6, 4)
		out := utils.NewMatrix(6, 6)
		cd.Differentiate(in, out, 2, 1)
		approxEq(t, out, []float64{
			-56.0, -312.0, -96.0, -240.0, 0.0, 0.0,
			-184.0, -792.0, -288.0, -560.0, 0.0, 0.0,
			-312.0, -1272.0, -480.0, -880.0, 0.0, 0.0,
			-440.0, -1752.0, -672.0, -1200.0, 0.0, 0.0,
			-568.0, -2232.0, -864.0, -1520.0, 0.0, 0.0,
			-696.0, -2712.0, -1056.0, -1840.0, 0.0, 0.0,
		}, 1e-3)
	}
}

func TestChebNeumannDifferentiate(t *testing.T) {
	// Axis 0
	{
		cn := NewChebNeumann(8)
		in := iota2D(6, 4)
		out := utils.NewMatrix(8, 4)
		cn.Differentiate(in, out, 2, 0)
		approxEq(t, out, []float64{
			-288.0, -308.0, -328.0, -348.0,
			-1269.6381, -1342.9333, -1416.2286, -1489.5238,
			-693.3333, -742.6667, -792.0, -841.3333,
			-1602.74286, -1694.4, -1786.0571, -1877.71428,
			-853.3333, -906.6667, -960.0, -1013.333,
			-1714.2857, -1800.0, -1885.7143, -1971.4286,
			0.0, 0.0, 0.0, 0.0,
			0.0, 0.0, 0.0, 0.0,
		}, 1e-3)
	}
	// Axis 1
	{
		cn := NewChebNeumann(6)
		in := iota2D(6, 4)
		out := utils.NewMatrix(6, 6)
		cn.Differentiate(in, out, 2, 1)
		approxEq(t, out, []float64{
			-8.0, -60.2667, -24.0, -86.4, 0.0, 0.0,
			-24.0, -147.7333, -72.0, -201.6, 0.0, 0.0,
			-40.0, -235.2, -120.0, -316.8, 0.0, 0.0,
			-56.0, -322.6667, -168.0, -432.0, 0.0, 0.0,
			-72.0, -410.1333, -216.0, -547.2, 0.0, 0.0,
			-88.0, -497.6, -264.0, -662.4, 0.0, 0.0,
		}, 1e-3)
	}
}

func TestCompositeTransformRoundTrip(t *testing.T) {
	// Backward of composite coefficients followed by forward is the
	// identity, for both stencils and both axes.
	for _, newBasis := range []func(int) *CompositeChebyshev{NewChebDirichlet, NewChebNeumann} {
		// Axis 0
		{
			cc := newBasis(8)
			vhat := iota2D(6, 4)
			v := utils.NewMatrix(8, 4)
			got := utils.NewMatrix(6, 4)
			cc.Backward(vhat, v, 0)
			cc.Forward(v, got, 0)
			approxEq(t, got, vhat.Data(), 1e-8)
		}
		// Axis 1
		{
			cc := newBasis(6)
			vhat := iota2D(6, 4)
			v := utils.NewMatrix(6, 6)
			got := utils.NewMatrix(6, 4)
			cc.Backward(vhat, v, 1)
			cc.Forward(v, got, 1)
			approxEq(t, got, vhat.Data(), 1e-8)
		}
	}
}

func TestCompositeToFromParent(t *testing.T) {
	cd := NewChebDirichlet(7)
	vhat := iota2D(5, 3)
	parent := utils.NewMatrix(7, 3)
	back := utils.NewMatrix(5, 3)
	cd.ToParent(vhat, parent, 0)
	cd.FromParent(parent, back, 0)
	approxEq(t, back, vhat.Data(), 1e-10)
}

func TestCompositeBoundaryValues(t *testing.T) {
	// Every Dirichlet mode vanishes at both endpoints, so any composite
	// coefficient set must produce zeros on the walls.
	cd := NewChebDirichlet(9)
	vhat := iota2D(7, 1)
	v := utils.NewMatrix(9, 1)
	cd.Backward(vhat, v, 0)
	assert.True(t, near(v.At(0, 0), 0, 1e-10))
	assert.True(t, near(v.At(8, 0), 0, 1e-10))
}
