package bases

import (
	"fmt"

	"github.com/flowphys/chebdns/utils"
)

// StencilChebyshev holds the two nonzero diagonals of the sparse
// transform S from a composite Chebyshev space of size m = n-2 to its
// orthogonal parent of size n. Diag is the main diagonal of the n x m
// matrix, Low2 the second subdiagonal; composite bases built from
// {T_k + a_k T_{k+2}} need nothing else.
type StencilChebyshev struct {
	N, M int
	Diag []float64
	Low2 []float64
}

// StencilGetM returns the composite space size for a parent of size n.
func StencilGetM(n int) int { return n - 2 }

// NewStencilDirichlet builds the stencil of the basis
// phi_k = T_k - T_{k+2}, whose members all vanish at both endpoints.
func NewStencilDirichlet(n int) (st *StencilChebyshev) {
	var (
		m = StencilGetM(n)
	)
	st = &StencilChebyshev{
		N:    n,
		M:    m,
		Diag: make([]float64, m),
		Low2: make([]float64, m),
	}
	for k := 0; k < m; k++ {
		st.Diag[k] = 1
		st.Low2[k] = -1
	}
	return
}

// NewStencilNeumann builds the stencil of the basis
// phi_k = T_k - (k/(k+2))^2 T_{k+2}, whose first derivatives vanish at
// both endpoints.
func NewStencilNeumann(n int) (st *StencilChebyshev) {
	var (
		m = StencilGetM(n)
	)
	st = &StencilChebyshev{
		N:    n,
		M:    m,
		Diag: make([]float64, m),
		Low2: make([]float64, m),
	}
	for k := 0; k < m; k++ {
		fk := float64(k)
		st.Diag[k] = 1
		st.Low2[k] = -(fk * fk) / ((fk + 2) * (fk + 2))
	}
	return
}

// DenseMatrix returns S as an n x m dense matrix.
func (st *StencilChebyshev) DenseMatrix() (S utils.Matrix) {
	S = utils.NewMatrix(st.N, st.M)
	for i := 0; i < st.M; i++ {
		S.Set(i, i, st.Diag[i])
		S.Set(i+2, i, st.Low2[i])
	}
	return
}

// toParentLane computes p = S*c exploiting the band structure.
func (st *StencilChebyshev) toParentLane(c, p []float64) {
	var (
		n = st.N
	)
	p[0] = st.Diag[0] * c[0]
	p[1] = st.Diag[1] * c[1]
	for i := 2; i < n-2; i++ {
		p[i] = st.Diag[i]*c[i] + st.Low2[i-2]*c[i-2]
	}
	p[n-2] = st.Low2[n-4] * c[n-4]
	p[n-1] = st.Low2[n-3] * c[n-3]
}

// fromParentLane solves the normal equations S^T S c = S^T p. S^T S is
// tridiagonal with bandwidth two, handled by a Thomas sweep over the
// even and odd subsequences at once.
func (st *StencilChebyshev) fromParentLane(p, c []float64) {
	var (
		m    = st.M
		main = make([]float64, m)
		up   = make([]float64, maxInt(m-2, 0))
	)
	for i := 0; i < m; i++ {
		main[i] = st.Diag[i]*st.Diag[i] + st.Low2[i]*st.Low2[i]
		c[i] = st.Diag[i]*p[i] + st.Low2[i]*p[i+2]
	}
	for i := 0; i < m-2; i++ {
		up[i] = st.Diag[i+2] * st.Low2[i]
	}
	tdma(up, main, up, c)
}

// tdma solves the symmetric banded system with main diagonal b and
// sub/super diagonals a and c at offsets -2 and +2. The solution
// overwrites d.
func tdma(a, b, c, d []float64) {
	var (
		n = len(d)
		x = make([]float64, n)
		w = make([]float64, n-2)
		g = make([]float64, n)
	)
	w[0] = c[0] / b[0]
	g[0] = d[0] / b[0]
	if len(c) > 1 {
		w[1] = c[1] / b[1]
	}
	g[1] = d[1] / b[1]
	for i := 2; i < n-2; i++ {
		w[i] = c[i] / (b[i] - a[i-2]*w[i-2])
	}
	for i := 2; i < n; i++ {
		g[i] = (d[i] - a[i-2]*g[i-2]) / (b[i] - a[i-2]*w[i-2])
	}
	x[n-1] = g[n-1]
	x[n-2] = g[n-2]
	for i := n - 2; i >= 1; i-- {
		x[i-1] = g[i-1] - w[i-1]*x[i+1]
	}
	copy(d, x)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func (st *StencilChebyshev) check() {
	if st.M < 3 {
		panic(fmt.Errorf("composite space of size %d is too small, need at least 3", st.M))
	}
}
