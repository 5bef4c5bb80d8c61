package spectral

import (
	"fmt"
	"math"
	"math/big"

	"github.com/ALTree/bigfloat"
	"github.com/james-bowman/sparse"
	"gonum.org/v1/gonum/mat"

	"github.com/notargets/gospectral/utils"
)

// The Hermite families live on the whole real line. Hermite is orthonormal
// under e^{-x²}:
//
//	h_0 = π^{-1/4}, h_1 = sqrt(2) x h_0
//	h_{n+1} = sqrt(2/(n+1)) x h_n - sqrt(n/(n+1)) h_{n-1}
//
// HermiteFunction is ψ_n = e^{-x²/2} h_n, orthonormal under the unit weight.
// Both share the recurrence, only the seed differs.

var quarterPi = math.Pow(math.Pi, -0.25)

func hermiteFamily(f Family) error {
	if !f.IsHermite() {
		return fmt.Errorf("%v is not a Hermite family: %w", f, ErrInvalidParameter)
	}
	return nil
}

func hermiteFillColumns(f Family, x []float64, P [][]float64, kMin, kMax int) (err error) {
	N := len(P) - 1
	for j := kMin; j < kMax; j++ {
		p0 := quarterPi
		if f == HermiteFunction {
			p0 *= math.Exp(-0.5 * x[j] * x[j])
		}
		P[0][j] = p0
	}
	if N == 0 {
		return
	}
	for j := kMin; j < kMax; j++ {
		P[1][j] = math.Sqrt2 * x[j] * P[0][j]
	}
	if err = checkRow(P[1], 1, kMin, kMax); err != nil {
		return
	}
	for n := 1; n < N; n++ {
		var (
			fn     = float64(n)
			bn     = math.Sqrt(2 / (fn + 1))
			cn     = math.Sqrt(fn / (fn + 1))
			row    = P[n+1]
			p, pm1 = P[n], P[n-1]
		)
		for j := kMin; j < kMax; j++ {
			row[j] = bn*x[j]*p[j] - cn*pm1[j]
		}
		if err = checkRow(row, n+1, kMin, kMax); err != nil {
			return
		}
	}
	return
}

func (e *Evaluator) hermiteTable(f Family, N int, x []float64) (P *mat.Dense, err error) {
	Nc := len(x)
	P = mat.NewDense(N+1, Nc, nil)
	rows := make([][]float64, N+1)
	for n := range rows {
		rows[n] = P.RawRowView(n)
	}
	pm := utils.NewPartitionMap(e.ParallelDegree(), Nc)
	err = pm.ForEachBucket(func(bn, kMin, kMax int) error {
		return hermiteFillColumns(f, x, rows, kMin, kMax)
	})
	if err != nil {
		P = nil
	}
	return
}

// hermiteDerivativeTable returns the k-th derivative of rows 0..N.
// Polynomials use h_n' = sqrt(2n) h_{n-1}. Functions use
// ψ_n' = sqrt(n/2) ψ_{n-1} - sqrt((n+1)/2) ψ_{n+1}, applied k times to a
// table that reaches degree N+k.
func (e *Evaluator) hermiteDerivativeTable(f Family, N, k int, x []float64) (D *mat.Dense, err error) {
	Nc := len(x)
	if f == Hermite {
		var Q *mat.Dense
		D = mat.NewDense(N+1, Nc, nil)
		if N < k {
			return
		}
		if Q, err = e.hermiteTable(f, N-k, x); err != nil {
			return nil, err
		}
		for n := k; n <= N; n++ {
			s := 1.
			for i := 0; i < k; i++ {
				s *= math.Sqrt(2 * float64(n-i))
			}
			row, q := D.RawRowView(n), Q.RawRowView(n-k)
			for j := range row {
				row[j] = s * q[j]
			}
			if err = checkRow(row, n, 0, Nc); err != nil {
				return nil, err
			}
		}
		return
	}
	var T *mat.Dense
	if T, err = e.hermiteTable(f, N+k, x); err != nil {
		return
	}
	for m := 1; m <= k; m++ {
		top := N + k - m
		next := mat.NewDense(top+1, Nc, nil)
		for n := 0; n <= top; n++ {
			var (
				fn  = float64(n)
				row = next.RawRowView(n)
				up  = T.RawRowView(n + 1)
				cu  = math.Sqrt((fn + 1) / 2)
			)
			for j := range row {
				row[j] = -cu * up[j]
			}
			if n > 0 {
				var (
					down = T.RawRowView(n - 1)
					cd   = math.Sqrt(fn / 2)
				)
				for j := range row {
					row[j] += cd * down[j]
				}
			}
		}
		T = next
	}
	D = T
	for n := 0; n <= N; n++ {
		if err = checkRow(D.RawRowView(n), n, 0, Nc); err != nil {
			return nil, err
		}
	}
	return
}

// EvaluateHermite computes the value table of the orthonormal Hermite
// polynomials or Hermite functions of degree 0..N at points, with the
// derivativeOrder-th derivative table when derivativeOrder > 0. Points may lie
// anywhere on the real line and StrictDomain does not apply.
func (e *Evaluator) EvaluateHermite(f Family, N int, points []float64, derivativeOrder int) (res *EvaluationResult, err error) {
	if err = hermiteFamily(f); err != nil {
		return
	}
	if N < 0 {
		return nil, fmt.Errorf("max degree N = %d, must be >= 0: %w", N, ErrInvalidInput)
	}
	if derivativeOrder < 0 {
		return nil, fmt.Errorf("derivative order = %d, must be >= 0: %w", derivativeOrder, ErrInvalidInput)
	}
	if len(points) == 0 {
		return nil, fmt.Errorf("no evaluation points: %w", ErrInvalidInput)
	}
	if ok, j := utils.AllFinite(points); !ok {
		return nil, fmt.Errorf("point %d = %v: %w", j, points[j], ErrInvalidInput)
	}
	var (
		x              = append([]float64(nil), points...)
		values, derivs *mat.Dense
	)
	if values, err = e.hermiteTable(f, N, x); err != nil {
		return
	}
	if derivativeOrder > 0 {
		if derivs, err = e.hermiteDerivativeTable(f, N, derivativeOrder, x); err != nil {
			return
		}
	}
	res = &EvaluationResult{
		Family:          f,
		MaxDegree:       N,
		DerivativeOrder: derivativeOrder,
		Points:          x,
		Values:          values,
		Derivatives:     derivs,
	}
	return
}

// EvaluateHermite is the serial, package level form of
// Evaluator.EvaluateHermite.
func EvaluateHermite(f Family, N int, points []float64, derivativeOrder int) (*EvaluationResult, error) {
	var e Evaluator
	return e.EvaluateHermite(f, N, points, derivativeOrder)
}

// HermiteOperator is the (N+1)x(N+1) Jacobi matrix of the Hermite
// recurrence, zero on the diagonal with sqrt(n/2) beside it.
func HermiteOperator(N int) (J *sparse.CSR, err error) {
	if N < 0 {
		err = fmt.Errorf("degree N = %d, must be >= 0: %w", N, ErrInvalidInput)
		return
	}
	dok := sparse.NewDOK(N+1, N+1)
	for n := 1; n <= N; n++ {
		a := math.Sqrt(float64(n) / 2)
		dok.Set(n-1, n, a)
		dok.Set(n, n-1, a)
	}
	J = dok.ToCSR()
	return
}

// hermiteNodes returns the eigenvalues of HermiteOperator(N), the roots of
// h_{N+1}, and ψ_N at each of them.
func hermiteNodes(N int) (x, psiN []float64, err error) {
	var J *sparse.CSR
	if J, err = HermiteOperator(N); err != nil {
		return
	}
	if N == 0 {
		return []float64{0}, []float64{quarterPi}, nil
	}
	var eig mat.EigenSym
	if ok := eig.Factorize(symmetricBand(J), false); !ok {
		err = fmt.Errorf("eigenvalue decomposition of the Hermite matrix, N = %d failed: %w", N, ErrNumericOverflow)
		return
	}
	x = eig.Values(nil)
	var res *EvaluationResult
	if res, err = EvaluateHermite(HermiteFunction, N, x, 0); err != nil {
		return
	}
	psiN = res.Row(N)
	return
}

// HermiteGQ returns the N+1 Gauss-Hermite nodes, ascending, and weights for
// the weight e^{-x²}. The rule is exact for polynomials of degree 2N+1.
// The weights are e^{-x_j²} / ((N+1) ψ_N(x_j)²), which keeps their relative
// accuracy at the outer nodes where they become tiny.
func HermiteGQ(N int) (x, w []float64, err error) {
	var psiN []float64
	if x, psiN, err = hermiteNodes(N); err != nil {
		return
	}
	w = make([]float64, N+1)
	for j := range w {
		w[j] = math.Exp(-x[j]*x[j]) / (float64(N+1) * psiN[j] * psiN[j])
	}
	if ok, j := utils.AllFinite(w); !ok {
		err = fmt.Errorf("Gauss-Hermite weight %d at N = %d: %w", j, N, ErrNumericOverflow)
	}
	return
}

// HermiteFunctionGQ returns the Gauss-Hermite nodes with the weights
// w_j e^{x_j²} = 1/((N+1) ψ_N(x_j)²), which integrate products of Hermite
// functions of degree <= N exactly under the unit weight.
func HermiteFunctionGQ(N int) (x, w []float64, err error) {
	var psiN []float64
	if x, psiN, err = hermiteNodes(N); err != nil {
		return
	}
	w = make([]float64, N+1)
	for j := range w {
		w[j] = 1 / (float64(N+1) * psiN[j] * psiN[j])
	}
	if ok, j := utils.AllFinite(w); !ok {
		err = fmt.Errorf("Hermite function weight %d underflows at N = %d: %w", j, N, ErrNumericOverflow)
	}
	return
}

// ReferenceHermite evaluates the orthonormal h_n(x), or ψ_n(x) for
// HermiteFunction, from the explicit sum
//
//	H_n(x) = Σ_m (-1)^m n!/(m!(n-2m)!) (2x)^{n-2m}
//
// in prec-bit arithmetic, scaled by 1/sqrt(2^n n! sqrt(π)). prec = 0 uses
// DefaultReferencePrecision.
func ReferenceHermite(f Family, n int, x float64, prec uint) (p float64, err error) {
	if err = hermiteFamily(f); err != nil {
		return
	}
	if n < 0 {
		err = fmt.Errorf("degree n = %d, must be >= 0: %w", n, ErrInvalidInput)
		return
	}
	if !utils.IsFinite(x) {
		err = fmt.Errorf("x = %v: %w", x, ErrInvalidInput)
		return
	}
	if prec == 0 {
		prec = DefaultReferencePrecision
	}
	var (
		newF = func(v float64) *big.Float { return new(big.Float).SetPrec(prec).SetFloat64(v) }
		x2   = newF(2 * x)
		sum  = newF(0)
		term = newF(1)
		tmp  = newF(0)
	)
	for m := n / 2; m >= 0; m-- {
		term.SetFloat64(1)
		for i := 0; i < n-2*m; i++ {
			term.Mul(term, x2)
		}
		// n!/(m!(n-2m)!), sign (-1)^m
		for i := n - 2*m + 1; i <= n; i++ {
			term.Mul(term, tmp.SetFloat64(float64(i)))
		}
		for i := 2; i <= m; i++ {
			term.Quo(term, tmp.SetFloat64(float64(i)))
		}
		if m%2 == 1 {
			term.Neg(term)
		}
		sum.Add(sum, term)
	}
	// 2^n n!
	norm := newF(1)
	for i := 1; i <= n; i++ {
		norm.Mul(norm, tmp.SetFloat64(2*float64(i)))
	}
	norm.Sqrt(norm)
	sum.Quo(sum, norm)
	sum.Mul(sum, newF(quarterPi))
	if f == HermiteFunction {
		arg := newF(-0.5 * x)
		arg.Mul(arg, newF(x))
		sum.Mul(sum, bigfloat.Exp(arg))
	}
	p, _ = sum.Float64()
	if !utils.IsFinite(p) {
		err = fmt.Errorf("reference %v_%d(%v): %w", f, n, x, ErrNumericOverflow)
	}
	return
}
