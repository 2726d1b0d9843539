package solver

import (
	"github.com/flowphys/chebdns/utils"
)

// SolverField is the contract the time integrator drives: the
// right-hand side enters in orthogonal spectral space and the solution
// leaves in composite spectral space. Hholtz and Poisson both satisfy
// it.
type SolverField interface {
	Solve(in utils.CMatrix) utils.CMatrix
	SolveReal(in utils.Matrix) utils.Matrix
}

var (
	_ SolverField = (*Hholtz)(nil)
	_ SolverField = (*Poisson)(nil)
)
