package spectral

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/notargets/gospectral/utils"
)

// DifferentiationMatrix returns the collocation derivative matrix D of the
// Lagrange interpolant through the distinct nodes x, so that D u holds the
// derivative at the nodes of the polynomial of degree len(x)-1 through u.
// Off the diagonal
//
//	D_ij = (λ_j / λ_i) / (x_i - x_j),  λ_j = 1 / Π_{k≠j} (x_j - x_k)
//
// and each diagonal entry is the negative sum of its row, so D·1 = 0.
// The barycentric weights are kept as log magnitude and sign.
func DifferentiationMatrix(x []float64) (D *mat.Dense, err error) {
	Np := len(x)
	if Np == 0 {
		return nil, fmt.Errorf("no nodes: %w", ErrInvalidInput)
	}
	if ok, j := utils.AllFinite(x); !ok {
		return nil, fmt.Errorf("node %d = %v: %w", j, x[j], ErrInvalidInput)
	}
	var (
		logL = make([]float64, Np)
		sign = make([]float64, Np)
	)
	for j := range x {
		sign[j] = 1
		for k := range x {
			if k == j {
				continue
			}
			d := x[j] - x[k]
			if d == 0 {
				return nil, fmt.Errorf("nodes %d and %d coincide at %v: %w", j, k, x[j], ErrInvalidInput)
			}
			if d < 0 {
				sign[j] = -sign[j]
			}
			logL[j] -= math.Log(math.Abs(d))
		}
	}
	D = mat.NewDense(Np, Np, nil)
	for i := range x {
		var (
			row = D.RawRowView(i)
			sum float64
		)
		for j := range x {
			if j == i {
				continue
			}
			row[j] = sign[j] * sign[i] * math.Exp(logL[j]-logL[i]) / (x[i] - x[j])
			sum += row[j]
		}
		row[i] = -sum
		if err = checkRow(row, i, 0, Np); err != nil {
			return nil, err
		}
	}
	return
}

// JacobiGQDr returns the Gauss-Jacobi rule of JacobiGQ together with the
// collocation derivative matrix at its nodes.
func JacobiGQDr(alpha, beta float64, N int) (x, w []float64, Dr *mat.Dense, err error) {
	if x, w, err = JacobiGQ(alpha, beta, N); err != nil {
		return
	}
	Dr, err = DifferentiationMatrix(x)
	return
}

// JacobiGLDr returns the Gauss-Lobatto-Jacobi rule of JacobiGL together with
// the collocation derivative matrix at its nodes.
func JacobiGLDr(alpha, beta float64, N int) (x, w []float64, Dr *mat.Dense, err error) {
	if x, w, err = JacobiGL(alpha, beta, N); err != nil {
		return
	}
	Dr, err = DifferentiationMatrix(x)
	return
}

// HermiteGQDr returns the N+1 Gauss-Hermite nodes, weights and the derivative
// matrix for functions e^{-(cx)²} p(x), p of degree <= N, sampled at the
// nodes. With g(x) = e^{-(cx)²} h_N(x)
//
//	D_ij = g(x_i) / (g(x_j) (x_i - x_j)),  D_ii = (1 - 2c²) x_i
//
// c = 0 is plain polynomial collocation and returns the HermiteGQ weights,
// any other c returns the HermiteFunctionGQ weights.
func HermiteGQDr(N int, c float64) (x, w []float64, Dr *mat.Dense, err error) {
	if !utils.IsFinite(c) {
		err = fmt.Errorf("scale c = %v: %w", c, ErrInvalidParameter)
		return
	}
	if c == 0 {
		x, w, err = HermiteGQ(N)
	} else {
		x, w, err = HermiteFunctionGQ(N)
	}
	if err != nil {
		return
	}
	var res *EvaluationResult
	if res, err = EvaluateHermite(HermiteFunction, N, x, 0); err != nil {
		return
	}
	// ψ_N e^{(1/2 - c²) x²} = e^{-(cx)²} h_N
	g := make([]float64, N+1)
	for i, psi := range res.Row(N) {
		g[i] = psi * math.Exp((0.5-c*c)*x[i]*x[i])
		if g[i] == 0 || !utils.IsFinite(g[i]) {
			err = fmt.Errorf("Hermite collocation scale at node %d, N = %d is %v: %w", i, N, g[i], ErrNumericOverflow)
			return
		}
	}
	Dr = mat.NewDense(N+1, N+1, nil)
	for i := range x {
		row := Dr.RawRowView(i)
		for j := range x {
			if j == i {
				row[j] = (1 - 2*c*c) * x[i]
				continue
			}
			row[j] = g[i] / (g[j] * (x[i] - x[j]))
		}
	}
	return
}
