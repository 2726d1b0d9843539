package solver

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/flowphys/chebdns/utils"
)

// eigDecomp returns the eigenvalues and eigenvector matrix of a real
// square matrix, together with the inverse of the eigenvector matrix.
// The operators diagonalized here are similar to symmetric matrices, so
// the spectrum is real and the imaginary parts returned by LAPACK are
// rounding noise.
func eigDecomp(A utils.Matrix) (lam []float64, Q, Qinv utils.Matrix) {
	var (
		n, nc = A.Dims()
		eig   mat.Eigen
	)
	if n != nc {
		panic(fmt.Errorf("eigendecomposition needs a square matrix, got %d x %d", n, nc))
	}
	if ok := eig.Factorize(A.M, mat.EigenRight); !ok {
		panic("eigendecomposition failed to converge")
	}
	var (
		values = eig.Values(nil)
		vc     mat.CDense
	)
	eig.VectorsTo(&vc)
	lam = make([]float64, n)
	Q = utils.NewMatrix(n, n)
	for i := 0; i < n; i++ {
		lam[i] = real(values[i])
		for j := 0; j < n; j++ {
			Q.Set(i, j, real(vc.At(i, j)))
		}
	}
	Qinv = Q.Inverse()
	return
}
