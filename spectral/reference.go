package spectral

import (
	"fmt"
	"math"
	"math/big"

	"github.com/ALTree/bigfloat"
	"gonum.org/v1/gonum/mathext"

	"github.com/notargets/gospectral/utils"
)

// DefaultReferencePrecision is the big.Float mantissa size, in bits, used by
// ReferenceJacobi when prec is 0.
const DefaultReferencePrecision uint = 256

// ReferenceJacobi evaluates the orthonormal P_n^(α,β)(x) from the terminating
// hypergeometric series
//
//	P_n = (α+1)_n / n! · 2F1(-n, n+α+β+1; α+1; (1-x)/2)
//
// summed in prec-bit arithmetic, divided by sqrt(h_n). It is slow and only
// meant as an independent check of the recurrence at low degree. h_n carries
// B(α+1, β+1) in double precision, which bounds the relative accuracy to
// about 1e-15.
func ReferenceJacobi(alpha, beta float64, n int, x float64, prec uint) (p float64, err error) {
	jp := JacobiParameters{Alpha: alpha, Beta: beta}
	if err = jp.Validate(); err != nil {
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
		a    = newF(alpha)
		ab1  = newF(alpha + beta + 1)
		one  = newF(1)
		z    = newF(0)
		sum  = newF(1)
		term = newF(1)
		tmp  = newF(0)
	)
	// z = (1-x)/2
	z.Sub(one, newF(x))
	z.Quo(z, newF(2))
	for k := 0; k < n; k++ {
		fk := newF(float64(k))
		// term *= (-n+k)(n+α+β+1+k) / ((α+1+k)(k+1)) * z
		tmp.SetFloat64(float64(k - n))
		term.Mul(term, tmp)
		tmp.Add(ab1, newF(float64(n)))
		tmp.Add(tmp, fk)
		term.Mul(term, tmp)
		tmp.Add(a, one)
		tmp.Add(tmp, fk)
		term.Quo(term, tmp)
		tmp.Add(fk, one)
		term.Quo(term, tmp)
		term.Mul(term, z)
		sum.Add(sum, term)
	}
	// (α+1)_n / n!
	for i := 0; i < n; i++ {
		fi := newF(float64(i))
		tmp.Add(a, one)
		tmp.Add(tmp, fi)
		sum.Mul(sum, tmp)
		tmp.Add(fi, one)
		sum.Quo(sum, tmp)
	}
	var hn *big.Float
	if hn, err = referenceNorm(jp, n, prec); err != nil {
		return
	}
	hn.Sqrt(hn)
	sum.Quo(sum, hn)
	p, _ = sum.Float64()
	if !utils.IsFinite(p) {
		err = fmt.Errorf("reference P_%d%v(%v): %w", n, jp, x, ErrNumericOverflow)
	}
	return
}

// referenceNorm returns h_n = ∫ P_n² w dx for the classical normalization,
// h_n = 2^(α+β+1) G(n) (n+α+β+1)/(2n+α+β+1) with
// G(n) = Γ(n+α+1)Γ(n+β+1)/(Γ(n+α+β+2) n!) and G(0) = B(α+1, β+1).
func referenceNorm(jp JacobiParameters, n int, prec uint) (hn *big.Float, err error) {
	var (
		alpha, beta = jp.Alpha, jp.Beta
		ab1         = alpha + beta + 1
		newF        = func(v float64) *big.Float { return new(big.Float).SetPrec(prec).SetFloat64(v) }
	)
	g0 := math.Exp(mathext.Lbeta(alpha+1, beta+1))
	if !utils.IsFinite(g0) || g0 == 0 {
		err = fmt.Errorf("beta function for %v: %w", jp, ErrNumericOverflow)
		return
	}
	G := newF(g0)
	for i := 1; i <= n; i++ {
		fi := float64(i)
		G.Mul(G, newF(fi+alpha))
		G.Mul(G, newF(fi+beta))
		G.Quo(G, newF(fi+ab1))
		G.Quo(G, newF(fi))
	}
	hn = bigfloat.Pow(newF(2), newF(ab1))
	hn.Mul(hn, G)
	if n == 0 {
		return
	}
	fn := float64(n)
	hn.Mul(hn, newF(fn+ab1))
	hn.Quo(hn, newF(2*fn+ab1))
	return
}
