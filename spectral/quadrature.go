package spectral

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// JacobiGQ returns the N+1 Gauss-Jacobi nodes, ascending, and weights for the
// weight (1-x)^α (1+x)^β. The rule is exact for polynomials of degree 2N+1.
// Nodes are the eigenvalues of the Jacobi matrix, weights h0 times the
// squared first component of each normalized eigenvector.
func JacobiGQ(alpha, beta float64, N int) (x, w []float64, err error) {
	var (
		jp  = JacobiParameters{Alpha: alpha, Beta: beta}
		rec *Recurrence
	)
	if rec, err = NewRecurrence(jp, N); err != nil {
		return
	}
	h0 := math.Exp(jp.LogNorm0())
	if N == 0 {
		x = []float64{rec.B(0)}
		w = []float64{h0}
		return
	}
	JJ := symmetricBand(jacobiOperator(rec))

	var eig mat.EigenSym
	if ok := eig.Factorize(JJ, true); !ok {
		err = fmt.Errorf("eigenvalue decomposition of the Jacobi matrix for %v, N = %d failed: %w",
			jp, N, ErrNumericOverflow)
		return
	}
	x = eig.Values(nil)
	VVr := mat.NewDense(N+1, N+1, nil)
	eig.VectorsTo(VVr)
	w = make([]float64, N+1)
	v0 := VVr.RawRowView(0)
	for i := range w {
		w[i] = h0 * v0[i] * v0[i]
	}
	return
}

// JacobiGL returns the N+1 Gauss-Lobatto-Jacobi nodes, the endpoints plus the
// zeros of P_{N-1}^(α+1,β+1), and the matching weights. The rule is exact for
// polynomials of degree 2N-1. N must be at least 1.
func JacobiGL(alpha, beta float64, N int) (x, w []float64, err error) {
	var (
		jp   = JacobiParameters{Alpha: alpha, Beta: beta}
		xint []float64
	)
	if err = jp.Validate(); err != nil {
		return
	}
	if N < 1 {
		err = fmt.Errorf("Gauss-Lobatto needs N >= 1, have %d: %w", N, ErrInvalidInput)
		return
	}
	x = make([]float64, N+1)
	x[0], x[N] = -1, 1
	if N > 1 {
		if xint, _, err = JacobiGQ(alpha+1, beta+1, N-2); err != nil {
			return
		}
		copy(x[1:N], xint)
	}
	if w, err = weightsFromNodes(jp, N, x); err != nil {
		return
	}
	return
}

// weightsFromNodes solves Vᵀ w = sqrt(h0) e_0, which makes the rule exact on
// P_0..P_N at the given N+1 distinct nodes.
func weightsFromNodes(jp JacobiParameters, N int, x []float64) (w []float64, err error) {
	var V *mat.Dense
	if V, err = Vandermonde1D(jp.Alpha, jp.Beta, N, x); err != nil {
		return
	}
	rhs := mat.NewVecDense(N+1, nil)
	rhs.SetVec(0, math.Exp(0.5*jp.LogNorm0()))
	var wv mat.VecDense
	if err = wv.SolveVec(V.T(), rhs); err != nil {
		err = fmt.Errorf("quadrature weights for %v, N = %d: %v: %w", jp, N, err, ErrNumericOverflow)
		return
	}
	w = make([]float64, N+1)
	for i := range w {
		w[i] = wv.AtVec(i)
	}
	return
}
