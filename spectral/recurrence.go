package spectral

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mathext"

	"github.com/notargets/gospectral/utils"
)

// JacobiParameters are the (α, β) exponents of the weight
// w(x) = (1-x)^α (1+x)^β on [-1, 1].
type JacobiParameters struct {
	Alpha, Beta float64
}

func NewJacobiParameters(alpha, beta float64) (jp JacobiParameters, err error) {
	jp = JacobiParameters{Alpha: alpha, Beta: beta}
	if err = jp.Validate(); err != nil {
		return JacobiParameters{}, err
	}
	return
}

func (jp JacobiParameters) Validate() error {
	if !utils.IsFinite(jp.Alpha) || jp.Alpha <= -1 {
		return fmt.Errorf("alpha = %v, must be > -1: %w", jp.Alpha, ErrInvalidParameter)
	}
	if !utils.IsFinite(jp.Beta) || jp.Beta <= -1 {
		return fmt.Errorf("beta = %v, must be > -1: %w", jp.Beta, ErrInvalidParameter)
	}
	return nil
}

// Shift returns (α+k, β+k), the family whose polynomials are proportional to
// the k-th derivatives of this one.
func (jp JacobiParameters) Shift(k int) JacobiParameters {
	return JacobiParameters{Alpha: jp.Alpha + float64(k), Beta: jp.Beta + float64(k)}
}

// LogNorm0 is ln(h0), h0 = ∫ w(x) dx = 2^(α+β+1) B(α+1, β+1).
func (jp JacobiParameters) LogNorm0() float64 {
	return (jp.Alpha+jp.Beta+1)*math.Ln2 + mathext.Lbeta(jp.Alpha+1, jp.Beta+1)
}

func (jp JacobiParameters) String() string {
	return fmt.Sprintf("(α=%g, β=%g)", jp.Alpha, jp.Beta)
}

// Recurrence holds the coefficients of the symmetric three-term recurrence
//
//	x P_n = A_{n+1} P_{n+1} + B_n P_n + A_n P_{n-1}
//
// of the orthonormal family for degrees 0..N. A recurrence is never modified
// after construction, so it can be shared between goroutines.
type Recurrence struct {
	params JacobiParameters
	n      int
	a      []float64 // a[0] is unused, a[n] for n = 1..N
	b      []float64 // b[n] for n = 0..N
	p0     float64   // 1/sqrt(h0)
}

func NewRecurrence(jp JacobiParameters, N int) (rec *Recurrence, err error) {
	if err = jp.Validate(); err != nil {
		return
	}
	if N < 0 {
		err = fmt.Errorf("max degree N = %d, must be >= 0: %w", N, ErrInvalidInput)
		return
	}
	var (
		alpha, beta = jp.Alpha, jp.Beta
		ab          = alpha + beta
		a           = make([]float64, N+1)
		b           = make([]float64, N+1)
	)
	p0 := math.Exp(-0.5 * jp.LogNorm0())
	if !utils.IsFinite(p0) || p0 == 0 {
		err = fmt.Errorf("normalization constant for %v is not representable: %w", jp, ErrNumericOverflow)
		return
	}
	// n = 0 and n = 1 are written in reduced form, the general expressions are
	// 0/0 when α+β = 0 or α+β = -1
	b[0] = (beta - alpha) / (ab + 2)
	for n := 1; n <= N; n++ {
		fn := float64(n)
		h := 2*fn + ab
		b[n] = (beta*beta - alpha*alpha) / (h * (h + 2))
		if n == 1 {
			a[n] = 2 / (ab + 2) * math.Sqrt((alpha+1)*(beta+1)/(ab+3))
		} else {
			a[n] = 2 / h * math.Sqrt(fn*(fn+ab)*(fn+alpha)*(fn+beta)/((h-1)*(h+1)))
		}
		if !utils.IsFinite(a[n]) || a[n] == 0 || !utils.IsFinite(b[n]) {
			err = fmt.Errorf("recurrence coefficient at degree %d for %v: %w", n, jp, ErrNumericOverflow)
			return
		}
	}
	if !utils.IsFinite(b[0]) {
		err = fmt.Errorf("recurrence coefficient at degree 0 for %v: %w", jp, ErrNumericOverflow)
		return
	}
	rec = &Recurrence{
		params: jp,
		n:      N,
		a:      a,
		b:      b,
		p0:     p0,
	}
	return
}

func (rec *Recurrence) Params() JacobiParameters { return rec.params }

func (rec *Recurrence) MaxDegree() int { return rec.n }

// Norm0 is the constant value of the degree 0 orthonormal polynomial.
func (rec *Recurrence) Norm0() float64 { return rec.p0 }

// A returns the off-diagonal coefficient A_n, n = 1..N.
func (rec *Recurrence) A(n int) float64 { return rec.a[n] }

// B returns the diagonal coefficient B_n, n = 0..N.
func (rec *Recurrence) B(n int) float64 { return rec.b[n] }

// Coefficients returns (a_n, b_n, c_n) of P_n = (a_n + b_n x) P_{n-1} - c_n P_{n-2},
// valid for n = 1..N. c_1 is zero.
func (rec *Recurrence) Coefficients(n int) (an, bn, cn float64) {
	bn = 1 / rec.a[n]
	an = -rec.b[n-1] * bn
	if n > 1 {
		cn = rec.a[n-1] * bn
	}
	return
}

// fillColumns writes rows 0..N of the orthonormal table into P for the columns
// [kMin, kMax). Row n is produced from rows n-1 and n-2 only.
func (rec *Recurrence) fillColumns(x []float64, P [][]float64, kMin, kMax int) (err error) {
	var (
		N = len(P) - 1
	)
	if N > rec.n {
		panic(fmt.Sprintf("table has degree %d, recurrence only %d", N, rec.n))
	}
	row := P[0]
	for j := kMin; j < kMax; j++ {
		row[j] = rec.p0
	}
	if N == 0 {
		return
	}
	a1, b1, _ := rec.Coefficients(1)
	row, prev := P[1], P[0]
	for j := kMin; j < kMax; j++ {
		row[j] = (a1 + b1*x[j]) * prev[j]
	}
	if err = checkRow(row, 1, kMin, kMax); err != nil {
		return
	}
	for n := 2; n <= N; n++ {
		an, bn, cn := rec.Coefficients(n)
		row, prev, prev2 := P[n], P[n-1], P[n-2]
		for j := kMin; j < kMax; j++ {
			row[j] = (an+bn*x[j])*prev[j] - cn*prev2[j]
		}
		if err = checkRow(row, n, kMin, kMax); err != nil {
			return
		}
	}
	return
}

func checkRow(row []float64, n, kMin, kMax int) error {
	if ok, j := utils.AllFinite(row[kMin:kMax]); !ok {
		return fmt.Errorf("degree %d at point index %d evaluates to %v: %w",
			n, kMin+j, row[kMin+j], ErrNumericOverflow)
	}
	return nil
}
