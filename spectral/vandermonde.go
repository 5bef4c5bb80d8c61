package spectral

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Vandermonde1D returns V with V[i][n] = P_n(r[i]), one row per point.
func Vandermonde1D(alpha, beta float64, N int, r []float64) (V *mat.Dense, err error) {
	var res *EvaluationResult
	if res, err = Evaluate(alpha, beta, N, r, 0); err != nil {
		return
	}
	V = mat.DenseCopyOf(res.Values.T())
	return
}

// GradVandermonde1D returns Vr with Vr[i][n] = P_n'(r[i]).
func GradVandermonde1D(alpha, beta float64, N int, r []float64) (Vr *mat.Dense, err error) {
	var res *EvaluationResult
	if res, err = Evaluate(alpha, beta, N, r, 1); err != nil {
		return
	}
	Vr = mat.DenseCopyOf(res.Derivatives.T())
	return
}

// Expansion is a truncated modal series Σ Coeffs[n] P_n^(α,β)(x).
type Expansion struct {
	Params JacobiParameters
	Coeffs []float64
}

// Project computes the modal coefficients of f up to degree N with the N+1
// point Gauss-Jacobi rule, exact when f is a polynomial of degree <= N+1.
func Project(alpha, beta float64, N int, f func(x float64) float64) (ex Expansion, err error) {
	var (
		x, w []float64
		res  *EvaluationResult
	)
	if x, w, err = JacobiGQ(alpha, beta, N); err != nil {
		return
	}
	if res, err = Evaluate(alpha, beta, N, x, 0); err != nil {
		return
	}
	fw := make([]float64, len(x))
	for i, xi := range x {
		fi := f(xi)
		if math.IsNaN(fi) || math.IsInf(fi, 0) {
			err = fmt.Errorf("f(%v) = %v: %w", xi, fi, ErrInvalidInput)
			return
		}
		fw[i] = w[i] * fi
	}
	var c mat.VecDense
	c.MulVec(res.Values, mat.NewVecDense(len(fw), fw))
	ex = Expansion{
		Params: JacobiParameters{Alpha: alpha, Beta: beta},
		Coeffs: make([]float64, N+1),
	}
	for n := range ex.Coeffs {
		ex.Coeffs[n] = c.AtVec(n)
	}
	return
}

func (ex Expansion) Degree() int { return len(ex.Coeffs) - 1 }

// Eval sums the series at each point.
func (ex Expansion) Eval(points []float64) (y []float64, err error) {
	if len(ex.Coeffs) == 0 {
		err = fmt.Errorf("empty expansion: %w", ErrInvalidInput)
		return
	}
	var res *EvaluationResult
	if res, err = Evaluate(ex.Params.Alpha, ex.Params.Beta, ex.Degree(), points, 0); err != nil {
		return
	}
	var yv mat.VecDense
	yv.MulVec(res.Values.T(), mat.NewVecDense(len(ex.Coeffs), append([]float64(nil), ex.Coeffs...)))
	y = make([]float64, len(points))
	for j := range y {
		y[j] = yv.AtVec(j)
	}
	return
}
