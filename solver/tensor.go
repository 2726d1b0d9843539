package solver

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/flowphys/chebdns/utils"
)

// FdmaTensor solves the tensor product system
//
//	(A0 (x) C1 + C0 (x) A1) x = b
//
// for ranks 1 and 2 by diagonalizing the outer axis once at
// construction and reducing the inner axis to independent banded solves
// per eigenmode. The outer axis is either genuinely diagonal (Fourier)
// or handled through the cached eigendecomposition of C0^-1 A0.
type FdmaTensor struct {
	Rank int
	M0   int

	// Outer axis: eigenvalues and, for the non-diagonal case, the
	// forward/backward change of basis.
	Lam0    []float64
	Fwd0    utils.Matrix
	Bwd0    utils.Matrix
	hasEig0 bool

	// Inner axis operators, combined per eigenmode at solve time.
	A1, C1 *Fdma

	// Rank-1 systems factorize once.
	f1 *Fdma
}

// NewFdmaTensor1 builds the rank-1 solver for A x = b, with A four
// diagonal.
func NewFdmaTensor1(A utils.Matrix) (t *FdmaTensor) {
	var (
		n, _ = A.Dims()
	)
	t = &FdmaTensor{
		Rank: 1,
		M0:   n,
		f1:   NewFdmaFromMatrix(A).Sweep(),
	}
	return
}

// NewFdmaTensor2 builds the rank-2 solver. diag0 marks the outer axis
// as diagonal, in which case A0's diagonal supplies the eigenvalues
// directly and no change of basis is needed.
func NewFdmaTensor2(A0, C0, A1, C1 utils.Matrix, diag0 bool) (t *FdmaTensor) {
	var (
		m0, _ = A0.Dims()
	)
	t = &FdmaTensor{
		Rank: 2,
		M0:   m0,
		A1:   NewFdmaFromMatrix(A1),
		C1:   NewFdmaFromMatrix(C1),
	}
	if diag0 {
		t.Lam0 = A0.Diagonal(0)
		return
	}
	cinv := C0.Inverse()
	lam, q, qinv := eigDecomp(cinv.Mul(A0))
	t.Lam0 = lam
	t.Fwd0 = qinv.Mul(cinv)
	t.Bwd0 = q
	t.hasEig0 = true
	return
}

// Solve runs the three stage solve for a real right-hand side of shape
// (m0, n1): change of basis, per-eigenmode banded solves, change back.
// The eigenmode solves are independent and run on partitioned parallel
// workers, each writing exactly its own rows.
func (t *FdmaTensor) Solve(in utils.Matrix) (out utils.Matrix) {
	if t.Rank == 1 {
		nr, _ := in.Dims()
		if nr != t.M0 {
			panic(fmt.Errorf("size mismatch in tensor solve, got %d expected %d", nr, t.M0))
		}
		return t.f1.Solve(in, 0)
	}
	var (
		nr, _ = in.Dims()
	)
	if nr != t.M0 {
		panic(fmt.Errorf("size mismatch in tensor solve, got %d expected %d", nr, t.M0))
	}
	if t.hasEig0 {
		out = t.Fwd0.Mul(in)
	} else {
		out = in.Copy()
	}
	var (
		pm = utils.NewPartitionMap(runtime.NumCPU(), t.M0)
		wg sync.WaitGroup
	)
	for np := 0; np < pm.ParallelDegree; np++ {
		wg.Add(1)
		go func(np int) {
			defer wg.Done()
			kMin, kMax := pm.GetBucketRange(np)
			for i := kMin; i < kMax; i++ {
				f := t.A1.AddScaled(t.C1, t.Lam0[i]).Sweep()
				f.SolveLane(out.M.RawRowView(i))
			}
		}(np)
	}
	wg.Wait()
	if t.hasEig0 {
		out = t.Bwd0.Mul(out)
	}
	return
}

// SolveC applies the real factorization to the real and imaginary parts
// separately, which is exact since every operator involved is real.
func (t *FdmaTensor) SolveC(in utils.CMatrix) (out utils.CMatrix) {
	var (
		re = t.Solve(in.Real())
		im = t.Solve(in.Imag())
	)
	nr, nc := re.Dims()
	out = utils.NewCMatrix(nr, nc)
	out.SetParts(re, im)
	return
}
