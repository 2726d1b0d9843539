package bases

import (
	"fmt"

	"github.com/flowphys/chebdns/utils"
)

// Operator exposes the per-basis matrices the implicit solvers assemble
// their banded systems from. Mass connects composite to parent
// coefficients (identity for orthogonal bases), Laplace is the second
// derivative operator in parent space, LaplaceInv its banded
// pseudo-inverse and LaplaceInvEye the identity with the first two rows
// cut, which restricts operators to the rows where the pseudo-inverse is
// defined.
type Operator interface {
	LenPhys() int
	LenSpec() int
	IsDiag() bool
	Mass() utils.Matrix
	Laplace() utils.Matrix
	LaplaceInv() utils.Matrix
	LaplaceInvEye() utils.Matrix
}

// Base is a basis with real spectral coefficients (Chebyshev or a
// composite derived from it). Transforms are conducted along a single
// axis of a 2-D array; the array extent along that axis must match the
// basis size or the call panics.
//
// The C-variants act on complex arrays by transforming real and
// imaginary parts, which is exact because the transforms are real and
// linear. They appear wherever a field couples a Fourier axis with a
// Chebyshev axis.
type Base interface {
	Operator
	Coords() utils.Vector
	Forward(v, vhat utils.Matrix, axis int)
	Backward(vhat, v utils.Matrix, axis int)
	Differentiate(in, out utils.Matrix, nTimes, axis int)
	ForwardC(v, vhat utils.CMatrix, axis int)
	BackwardC(vhat, v utils.CMatrix, axis int)
	DifferentiateC(in, out utils.CMatrix, nTimes, axis int)
	ToParent(in, out utils.Matrix, axis int)
	FromParent(in, out utils.Matrix, axis int)
	ToParentC(in, out utils.CMatrix, axis int)
	FromParentC(in, out utils.CMatrix, axis int)
}

func checkAxis(axis int) {
	if axis != 0 && axis != 1 {
		panic(fmt.Errorf("unsupported axis %d, only 2-D arrays are handled", axis))
	}
}

func axisLen(nr, nc, axis int) int {
	if axis == 0 {
		return nr
	}
	return nc
}

func checkExtent(got, want int, what string) {
	if got != want {
		panic(fmt.Errorf("size mismatch in %s, got %d expected %d", what, got, want))
	}
}

// eachLane applies f to every 1-D lane along axis, reading from in and
// writing to out. The source lane is copied before f runs, so in and out
// may alias.
func eachLane(in, out utils.Matrix, axis, nIn, nOut int, what string, f func(src, dst []float64)) {
	checkAxis(axis)
	var (
		inR, inC   = in.Dims()
		outR, outC = out.Dims()
	)
	checkExtent(axisLen(inR, inC, axis), nIn, what)
	checkExtent(axisLen(outR, outC, axis), nOut, what)
	checkExtent(axisLen(outR, outC, 1-axis), axisLen(inR, inC, 1-axis), what)
	var (
		src = make([]float64, nIn)
		dst = make([]float64, nOut)
	)
	if axis == 1 {
		for i := 0; i < inR; i++ {
			copy(src, in.M.RawRowView(i))
			f(src, dst)
			copy(out.M.RawRowView(i), dst)
		}
		return
	}
	for j := 0; j < inC; j++ {
		for i := 0; i < nIn; i++ {
			src[i] = in.At(i, j)
		}
		f(src, dst)
		for i := 0; i < nOut; i++ {
			out.Set(i, j, dst[i])
		}
	}
}

// eachLaneC is eachLane for complex arrays; f runs twice per lane, once
// on the real parts and once on the imaginary parts.
func eachLaneC(in, out utils.CMatrix, axis, nIn, nOut int, what string, f func(src, dst []float64)) {
	checkAxis(axis)
	var (
		inR, inC   = in.Dims()
		outR, outC = out.Dims()
	)
	checkExtent(axisLen(inR, inC, axis), nIn, what)
	checkExtent(axisLen(outR, outC, axis), nOut, what)
	checkExtent(axisLen(outR, outC, 1-axis), axisLen(inR, inC, 1-axis), what)
	var (
		srcRe = make([]float64, nIn)
		srcIm = make([]float64, nIn)
		dstRe = make([]float64, nOut)
		dstIm = make([]float64, nOut)
	)
	lanes := inC
	if axis == 1 {
		lanes = inR
	}
	for l := 0; l < lanes; l++ {
		for i := 0; i < nIn; i++ {
			var v complex128
			if axis == 1 {
				v = in.At(l, i)
			} else {
				v = in.At(i, l)
			}
			srcRe[i] = real(v)
			srcIm[i] = imag(v)
		}
		f(srcRe, dstRe)
		f(srcIm, dstIm)
		for i := 0; i < nOut; i++ {
			v := complex(dstRe[i], dstIm[i])
			if axis == 1 {
				out.Set(l, i, v)
			} else {
				out.Set(i, l, v)
			}
		}
	}
}
