package spectral

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/integrate/quad"

	"github.com/notargets/gospectral/utils"
)

// exactMoment computes ∫_{-1}^1 x^k (1-x)^α (1+x)^β dx. Integrating
// x^k (1-x²) w'(x) by parts gives
//
//	(k+α+β+2) m_{k+1} = (β-α) m_k + k m_{k-1}
//
// started from m_0 = 2^{α+β+1} B(α+1, β+1). The recurrence has no
// cancellation between binomial terms.
func exactMoment(k int, α, β float64) float64 {
	m0 := math.Pow(2, α+β+1) * betaFn(α+1, β+1)
	if k == 0 {
		return m0
	}
	mPrev, m := m0, (β-α)*m0/(α+β+2)
	for j := 1; j < k; j++ {
		mPrev, m = m, ((β-α)*m+float64(j)*mPrev)/(float64(j)+α+β+2)
	}
	return m
}

func betaFn(a, b float64) float64 {
	la, _ := math.Lgamma(a)
	lb, _ := math.Lgamma(b)
	lab, _ := math.Lgamma(a + b)
	return math.Exp(la + lb - lab)
}

func TestExactMoment(t *testing.T) {
	// Legendre moments are 2/(k+1) for even k, zero for odd k
	for k := 0; k <= 16; k++ {
		want := 0.
		if k%2 == 0 {
			want = 2 / float64(k+1)
		}
		assert.InDeltaf(t, want, exactMoment(k, 0, 0), 1.e-15, "moment %d", k)
	}
	// Chebyshev first kind: ∫ x^{2m} / sqrt(1-x²) dx = π (2m-1)!!/(2m)!!
	want := math.Pi
	for k := 0; k <= 16; k += 2 {
		if k > 0 {
			want *= float64(k-1) / float64(k)
		}
		assert.InDeltaf(t, want, exactMoment(k, -0.5, -0.5), 1.e-14, "moment %d", k)
	}
	// Independent Gauss-Legendre integration of x^k (1-x)^2 (1+x)
	for k := 0; k <= 12; k++ {
		f := func(x float64) float64 { return utils.POW(x, k) * (1 - x) * (1 - x) * (1 + x) }
		got := quad.Fixed(f, -1, 1, 16, quad.Legendre{}, 0)
		assert.InDeltaf(t, got, exactMoment(k, 2, 1), 1.e-14, "moment %d", k)
	}
}

func TestJacobiGQ_RootsAndMoments(t *testing.T) {
	params := [][2]float64{{0.3, 0.7}, {0, 0}, {-0.5, -0.5}, {0.5, -0.5}, {2, 1}}
	const N = 5
	for _, ab := range params {
		α, β := ab[0], ab[1]
		X, W, err := JacobiGQ(α, β, N)
		require.NoError(t, err)
		require.Len(t, X, N+1)
		require.Len(t, W, N+1)

		// Nodes are the roots of P_{N+1}
		res, err := Evaluate(α, β, N+1, X, 0)
		require.NoError(t, err)
		for i, p := range res.Row(N + 1) {
			assert.InDeltaf(t, 0, p, 1.e-12, "(α, β) = %v, node %d", ab, i)
		}

		// Exact for degree 2N+1
		for k := 0; k <= 2*N+1; k++ {
			var s float64
			for i, xi := range X {
				s += W[i] * utils.POW(xi, k)
			}
			m := exactMoment(k, α, β)
			assert.InDeltaf(t, m, s, 1.e-12*math.Max(1, math.Abs(m)), "(α, β) = %v, moment %d", ab, k)
		}

		for i := range X {
			assert.True(t, X[i] > -1 && X[i] < 1)
			assert.True(t, W[i] > 0)
			if i > 0 {
				assert.True(t, X[i] > X[i-1], "nodes ascend")
			}
		}
	}
	{ // N = 0
		X, W, err := JacobiGQ(0.3, 0.7, 0)
		require.NoError(t, err)
		assert.InDelta(t, (0.7-0.3)/(0.3+0.7+2), X[0], 1.e-15)
		assert.InDelta(t, exactMoment(0, 0.3, 0.7), W[0], 1.e-14)
	}
	_, _, err := JacobiGQ(-1, 0, 3)
	assert.ErrorIs(t, err, ErrInvalidParameter)
	_, _, err = JacobiGQ(0, 0, -1)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestJacobiGL(t *testing.T) {
	params := [][2]float64{{0, 0}, {0.3, 0.7}, {-0.5, -0.5}, {1, 2}}
	for _, ab := range params {
		α, β := ab[0], ab[1]
		for _, N := range []int{1, 2, 6} {
			X, W, err := JacobiGL(α, β, N)
			require.NoError(t, err)
			require.Len(t, X, N+1)
			assert.Equal(t, -1., X[0])
			assert.Equal(t, 1., X[N])
			// Exact for degree 2N-1
			for k := 0; k <= 2*N-1; k++ {
				var s float64
				for i, xi := range X {
					s += W[i] * utils.POW(xi, k)
				}
				m := exactMoment(k, α, β)
				assert.InDeltaf(t, m, s, 1.e-11*math.Max(1, math.Abs(m)), "(α, β) = %v, N = %d, moment %d", ab, N, k)
			}
		}
	}
	{ // Legendre-Gauss-Lobatto N = 2 is Simpson's rule
		X, W, err := JacobiGL(0, 0, 2)
		require.NoError(t, err)
		assert.InDelta(t, 0, X[1], 1.e-15)
		assert.InDelta(t, 1./3, W[0], 1.e-14)
		assert.InDelta(t, 4./3, W[1], 1.e-14)
		assert.InDelta(t, 1./3, W[2], 1.e-14)
	}
	_, _, err := JacobiGL(0, 0, 0)
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, _, err = JacobiGL(0, -3, 4)
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func TestOrthonormality(t *testing.T) {
	params := [][2]float64{{0, 0}, {-0.5, -0.5}, {0.5, 0.5}, {1.5, -0.3}, {-0.9, 2}, {3, 3}}
	for _, ab := range params {
		for _, N := range []int{0, 1, 7, 25, 50} {
			r, err := CheckOrthonormality(ab[0], ab[1], N)
			require.NoError(t, err)
			assert.Equal(t, (N+1)*(N+1), r.Samples)
			assert.Lessf(t, r.Max, 1.e-8, "(α, β) = %v, N = %d: %v", ab, N, r)
		}
	}
}

func TestOrthonormality_IndependentQuadrature(t *testing.T) {
	const N = 12
	{ // Legendre with gonum's Gauss-Legendre rule
		for m := 0; m <= N; m++ {
			for n := m; n <= N; n++ {
				f := func(x float64) float64 {
					res, err := Evaluate(0, 0, N, []float64{x}, 0)
					if err != nil {
						panic(err)
					}
					return res.Values.At(m, 0) * res.Values.At(n, 0)
				}
				got := quad.Fixed(f, -1, 1, 2*N, quad.Legendre{}, 0)
				want := 0.
				if m == n {
					want = 1
				}
				assert.InDeltaf(t, want, got, 1.e-12, "m = %d, n = %d", m, n)
			}
		}
	}
	{ // Chebyshev first kind, x = cos θ removes the weight
		for m := 0; m <= N; m++ {
			for n := m; n <= N; n++ {
				f := func(theta float64) float64 {
					res, err := Evaluate(-0.5, -0.5, N, []float64{math.Cos(theta)}, 0)
					if err != nil {
						panic(err)
					}
					return res.Values.At(m, 0) * res.Values.At(n, 0)
				}
				got := quad.Fixed(f, 0, math.Pi, 64, quad.Legendre{}, 0)
				want := 0.
				if m == n {
					want = 1
				}
				assert.InDeltaf(t, want, got, 1.e-10, "m = %d, n = %d", m, n)
			}
		}
	}
}
