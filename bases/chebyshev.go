package bases

import (
	"math"

	"gonum.org/v1/gonum/dsp/fourier"

	"github.com/flowphys/chebdns/utils"
)

// Chebyshev is the orthogonal Chebyshev basis on [-1, 1], collocated at
// the Chebyshev-Gauss-Lobatto nodes in ascending order, endpoints
// included. Physical and spectral size coincide.
//
// There is no DCT in gonum, so the forward and backward transforms run a
// real FFT of length 2(n-1) on the even extension of each lane, which is
// the textbook DCT-I route. The ascending node order shows up as an
// alternating sign on the coefficients and is folded into the
// normalization factors computed once at construction.
type Chebyshev struct {
	N int
	X utils.Vector

	fft     *fourier.FFT
	ext     []float64
	coef    []complex128
	fwdNorm []float64
	bwdNorm []float64
}

func NewChebyshev(n int) (ch *Chebyshev) {
	if n < 4 {
		panic("chebyshev basis needs at least 4 points")
	}
	ch = &Chebyshev{
		N:       n,
		X:       chebyshevNodes(n),
		fft:     fourier.NewFFT(2 * (n - 1)),
		ext:     make([]float64, 2*(n-1)),
		coef:    make([]complex128, n),
		fwdNorm: make([]float64, n),
		bwdNorm: make([]float64, n),
	}
	for k := 0; k < n; k++ {
		sign := 1.0
		if k%2 == 1 {
			sign = -1.0
		}
		ch.fwdNorm[k] = 4 * sign / float64(n-1)
		ch.bwdNorm[k] = sign / 8
	}
	ch.fwdNorm[0] /= 2
	ch.fwdNorm[n-1] /= 2
	ch.bwdNorm[0] *= 2
	ch.bwdNorm[n-1] *= 2
	return
}

// chebyshevNodes returns the Gauss-Lobatto points of the second kind,
// ascending from -1 to 1. The sine form is symmetric to rounding, unlike
// -cos(pi*k/(n-1)).
func chebyshevNodes(n int) utils.Vector {
	var (
		nodes = make([]float64, n)
		m     = float64(n - 1)
	)
	for k := 0; k < n; k++ {
		nodes[k] = -math.Sin(math.Pi * (m - 2*float64(k)) / (2 * m))
	}
	return utils.NewVector(n, nodes)
}

func (ch *Chebyshev) LenPhys() int { return ch.N }
func (ch *Chebyshev) LenSpec() int { return ch.N }
func (ch *Chebyshev) IsDiag() bool { return false }

func (ch *Chebyshev) Coords() utils.Vector { return ch.X }

// dct1 fills dst with the unnormalized DCT-I of src via the even
// extension [v_0 .. v_{n-1} v_{n-2} .. v_1].
func (ch *Chebyshev) dct1(src, dst []float64) {
	var (
		n = ch.N
	)
	copy(ch.ext, src)
	for i := 1; i < n-1; i++ {
		ch.ext[2*(n-1)-i] = src[i]
	}
	ch.fft.Coefficients(ch.coef, ch.ext)
	for k := 0; k < n; k++ {
		dst[k] = real(ch.coef[k])
	}
}

func (ch *Chebyshev) forwardLane(src, dst []float64) {
	ch.dct1(src, dst)
	for k := range dst {
		dst[k] *= ch.fwdNorm[k]
	}
}

func (ch *Chebyshev) backwardLane(src, dst []float64) {
	// DCT-I is its own inverse up to a factor 2(n-1), absorbed in bwdNorm.
	for k := range src {
		dst[k] = src[k] * ch.bwdNorm[k]
	}
	ch.dct1(dst, dst)
}

// differentiateLane applies the Chebyshev recurrence for the derivative
// coefficients in place, nTimes in a row.
func differentiateLane(c []float64, nTimes int) {
	var (
		n = len(c)
	)
	for t := 0; t < nTimes; t++ {
		c[0] = c[1]
		for i := 1; i < n-1; i++ {
			c[i] = 2 * float64(i+1) * c[i+1]
		}
		c[n-1] = 0
		for i := n - 3; i >= 1; i-- {
			c[i] += c[i+2]
		}
		c[0] += c[2] / 2
	}
}

func (ch *Chebyshev) Forward(v, vhat utils.Matrix, axis int) {
	eachLane(v, vhat, axis, ch.N, ch.N, "chebyshev forward", ch.forwardLane)
}

func (ch *Chebyshev) Backward(vhat, v utils.Matrix, axis int) {
	eachLane(vhat, v, axis, ch.N, ch.N, "chebyshev backward", ch.backwardLane)
}

func (ch *Chebyshev) Differentiate(in, out utils.Matrix, nTimes, axis int) {
	eachLane(in, out, axis, ch.N, ch.N, "chebyshev differentiate", func(src, dst []float64) {
		copy(dst, src)
		differentiateLane(dst, nTimes)
	})
}

func (ch *Chebyshev) ForwardC(v, vhat utils.CMatrix, axis int) {
	eachLaneC(v, vhat, axis, ch.N, ch.N, "chebyshev forward", ch.forwardLane)
}

func (ch *Chebyshev) BackwardC(vhat, v utils.CMatrix, axis int) {
	eachLaneC(vhat, v, axis, ch.N, ch.N, "chebyshev backward", ch.backwardLane)
}

func (ch *Chebyshev) DifferentiateC(in, out utils.CMatrix, nTimes, axis int) {
	eachLaneC(in, out, axis, ch.N, ch.N, "chebyshev differentiate", func(src, dst []float64) {
		copy(dst, src)
		differentiateLane(dst, nTimes)
	})
}

// The orthogonal basis is its own parent.

func (ch *Chebyshev) ToParent(in, out utils.Matrix, axis int) {
	eachLane(in, out, axis, ch.N, ch.N, "chebyshev to_parent", func(src, dst []float64) {
		copy(dst, src)
	})
}

func (ch *Chebyshev) FromParent(in, out utils.Matrix, axis int) {
	eachLane(in, out, axis, ch.N, ch.N, "chebyshev from_parent", func(src, dst []float64) {
		copy(dst, src)
	})
}

func (ch *Chebyshev) ToParentC(in, out utils.CMatrix, axis int) {
	eachLaneC(in, out, axis, ch.N, ch.N, "chebyshev to_parent", func(src, dst []float64) {
		copy(dst, src)
	})
}

func (ch *Chebyshev) FromParentC(in, out utils.CMatrix, axis int) {
	eachLaneC(in, out, axis, ch.N, ch.N, "chebyshev from_parent", func(src, dst []float64) {
		copy(dst, src)
	})
}

func (ch *Chebyshev) Mass() utils.Matrix { return utils.NewIdentity(ch.N) }

// Laplace is the dense second derivative operator, assembled column by
// column from the derivative recurrence applied to unit coefficient
// vectors.
func (ch *Chebyshev) Laplace() (D2 utils.Matrix) {
	var (
		n = ch.N
		e = make([]float64, n)
	)
	D2 = utils.NewMatrix(n, n)
	for j := 0; j < n; j++ {
		for i := range e {
			e[i] = 0
		}
		e[j] = 1
		differentiateLane(e, 2)
		for i := 0; i < n; i++ {
			D2.Set(i, j, e[i])
		}
	}
	return
}

// LaplaceInv is the banded pseudo-inverse B of the second derivative:
// rows 0 and 1 are zero and B*D2 restricted to rows 2..n-1 is the
// identity. Columns beyond n-3 stay empty so that the product keeps the
// four-diagonal layout the solvers factorize.
func (ch *Chebyshev) LaplaceInv() (B utils.Matrix) {
	var (
		n = ch.N
	)
	B = utils.NewMatrix(n, n)
	for k := 2; k < n; k++ {
		fk := float64(k)
		ck := 1.0
		if k == 2 {
			ck = 2.0
		}
		B.Set(k, k-2, ck/(4*fk*(fk-1)))
		if k <= n-3 {
			B.Set(k, k, -1/(2*(fk*fk-1)))
		}
		if k+2 <= n-3 {
			B.Set(k, k+2, 1/(4*fk*(fk+1)))
		}
	}
	return
}

// LaplaceInvEye is the (n-2) x n identity block that drops the two rows
// zeroed by LaplaceInv.
func (ch *Chebyshev) LaplaceInvEye() (E utils.Matrix) {
	var (
		n = ch.N
	)
	E = utils.NewMatrix(n-2, n)
	for i := 0; i < n-2; i++ {
		E.Set(i, i+2, 1)
	}
	return
}
