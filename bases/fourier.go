package bases

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"

	"github.com/flowphys/chebdns/utils"
)

// FourierR2C is the real-to-complex Fourier basis on [0, 2*pi) with n
// equispaced points, the left endpoint included and the right excluded.
// Real input leaves n/2+1 independent complex modes with wavenumbers
// 0..n/2; the redundant conjugate half is never stored.
//
// The basis is diagonal: differentiation multiplies mode k by (ik) and
// the Laplacian matrix is diag(-k^2), so the implicit solvers never
// factorize along a Fourier axis.
type FourierR2C struct {
	N, M int
	X    utils.Vector
	K    []float64

	fft *fourier.FFT
}

func NewFourierR2C(n int) (fo *FourierR2C) {
	if n < 4 || n%2 != 0 {
		panic("fourier basis needs an even number of points, at least 4")
	}
	var (
		m     = n/2 + 1
		nodes = make([]float64, n)
		k     = make([]float64, m)
	)
	for j := 0; j < n; j++ {
		nodes[j] = 2 * math.Pi * float64(j) / float64(n)
	}
	for i := 0; i < m; i++ {
		k[i] = float64(i)
	}
	fo = &FourierR2C{
		N:   n,
		M:   m,
		X:   utils.NewVector(n, nodes),
		K:   k,
		fft: fourier.NewFFT(n),
	}
	return
}

func (fo *FourierR2C) LenPhys() int { return fo.N }
func (fo *FourierR2C) LenSpec() int { return fo.M }
func (fo *FourierR2C) IsDiag() bool { return true }

func (fo *FourierR2C) Coords() utils.Vector { return fo.X }

// Forward transforms real physical lanes into complex spectral lanes,
// normalized so that cos(k*x) carries amplitude 1/2 in mode k.
func (fo *FourierR2C) Forward(v utils.Matrix, vhat utils.CMatrix, axis int) {
	checkAxis(axis)
	var (
		nr, nc     = v.Dims()
		hr, hc     = vhat.Dims()
		norm       = complex(1/float64(fo.N), 0)
		src        = make([]float64, fo.N)
		dst        = make([]complex128, fo.M)
		what       = "fourier forward"
	)
	checkExtent(axisLen(nr, nc, axis), fo.N, what)
	checkExtent(axisLen(hr, hc, axis), fo.M, what)
	checkExtent(axisLen(hr, hc, 1-axis), axisLen(nr, nc, 1-axis), what)
	lanes := nc
	if axis == 1 {
		lanes = nr
	}
	for l := 0; l < lanes; l++ {
		for i := 0; i < fo.N; i++ {
			if axis == 1 {
				src[i] = v.At(l, i)
			} else {
				src[i] = v.At(i, l)
			}
		}
		fo.fft.Coefficients(dst, src)
		for i := 0; i < fo.M; i++ {
			if axis == 1 {
				vhat.Set(l, i, dst[i]*norm)
			} else {
				vhat.Set(i, l, dst[i]*norm)
			}
		}
	}
}

// Backward inverts Forward; the unnormalized gonum round trip scales by
// n, which the forward normalization already removed.
func (fo *FourierR2C) Backward(vhat utils.CMatrix, v utils.Matrix, axis int) {
	checkAxis(axis)
	var (
		hr, hc = vhat.Dims()
		nr, nc = v.Dims()
		src    = make([]complex128, fo.M)
		dst    = make([]float64, fo.N)
		what   = "fourier backward"
	)
	checkExtent(axisLen(hr, hc, axis), fo.M, what)
	checkExtent(axisLen(nr, nc, axis), fo.N, what)
	checkExtent(axisLen(nr, nc, 1-axis), axisLen(hr, hc, 1-axis), what)
	lanes := hc
	if axis == 1 {
		lanes = hr
	}
	for l := 0; l < lanes; l++ {
		for i := 0; i < fo.M; i++ {
			if axis == 1 {
				src[i] = vhat.At(l, i)
			} else {
				src[i] = vhat.At(i, l)
			}
		}
		fo.fft.Sequence(dst, src)
		for i := 0; i < fo.N; i++ {
			if axis == 1 {
				v.Set(l, i, dst[i])
			} else {
				v.Set(i, l, dst[i])
			}
		}
	}
}

// DifferentiateC scales mode k by (ik)^nTimes.
func (fo *FourierR2C) DifferentiateC(in, out utils.CMatrix, nTimes, axis int) {
	checkAxis(axis)
	var (
		ir, ic = in.Dims()
		or, oc = out.Dims()
		what   = "fourier differentiate"
	)
	checkExtent(axisLen(ir, ic, axis), fo.M, what)
	checkExtent(axisLen(or, oc, axis), fo.M, what)
	checkExtent(axisLen(or, oc, 1-axis), axisLen(ir, ic, 1-axis), what)
	for i := 0; i < ir; i++ {
		for j := 0; j < ic; j++ {
			mode := j
			if axis == 0 {
				mode = i
			}
			fac := cmplx.Pow(complex(0, fo.K[mode]), complex(float64(nTimes), 0))
			out.Set(i, j, in.At(i, j)*fac)
		}
	}
}

func (fo *FourierR2C) Mass() utils.Matrix { return utils.NewIdentity(fo.M) }

func (fo *FourierR2C) Laplace() (L utils.Matrix) {
	L = utils.NewMatrix(fo.M, fo.M)
	for i := 0; i < fo.M; i++ {
		L.Set(i, i, -fo.K[i]*fo.K[i])
	}
	return
}

func (fo *FourierR2C) LaplaceInv() utils.Matrix {
	panic("laplacian pseudo-inverse is not defined for a diagonal basis")
}

func (fo *FourierR2C) LaplaceInvEye() utils.Matrix {
	panic("laplacian pseudo-inverse is not defined for a diagonal basis")
}
