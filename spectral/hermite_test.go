package spectral

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/gospectral/utils"
)

func TestEvaluateHermite(t *testing.T) {
	var (
		x = utils.Linspace(-4, 4, 17)
		N = 20
	)
	{ // Low degrees in closed form, H_2 = 4x²-2 and H_3 = 8x³-12x
		res, err := EvaluateHermite(Hermite, 3, x, 0)
		require.NoError(t, err)
		assert.Equal(t, Hermite, res.Family)
		for j, xj := range x {
			assert.InDelta(t, quarterPi, res.Values.At(0, j), 1.e-15)
			h2 := (4*xj*xj - 2) / math.Sqrt(8*math.Sqrt(math.Pi))
			h3 := (8*xj*xj*xj - 12*xj) / math.Sqrt(48*math.Sqrt(math.Pi))
			assert.InDeltaf(t, h2, res.Values.At(2, j), 1.e-13*math.Max(1, math.Abs(h2)), "x = %v", xj)
			assert.InDeltaf(t, h3, res.Values.At(3, j), 1.e-13*math.Max(1, math.Abs(h3)), "x = %v", xj)
		}
	}
	for _, f := range []Family{Hermite, HermiteFunction} {
		res, err := EvaluateHermite(f, N, x, 0)
		require.NoError(t, err)
		for n := 0; n <= N; n += 5 {
			for j, xj := range x {
				ref, err := ReferenceHermite(f, n, xj, 0)
				require.NoError(t, err)
				assert.InDeltaf(t, ref, res.Values.At(n, j), 1.e-12*math.Max(1, math.Abs(ref)),
					"%v, n = %d, x = %v", f, n, xj)
			}
		}
	}
	{ // Parallel columns are bit identical
		serial, err := EvaluateHermite(HermiteFunction, N, x, 2)
		require.NoError(t, err)
		par, err := NewEvaluator(WithParallelDegree(4)).EvaluateHermite(HermiteFunction, N, x, 2)
		require.NoError(t, err)
		assert.Equal(t, serial.Digest(), par.Digest())
		poly, err := EvaluateHermite(Hermite, N, x, 2)
		require.NoError(t, err)
		assert.NotEqual(t, serial.Digest(), poly.Digest())
	}
}

func TestEvaluateHermite_Derivatives(t *testing.T) {
	var (
		x = utils.Linspace(-3.5, 3.5, 15)
		N = 16
	)
	{ // h_n'' - 2x h_n' + 2n h_n = 0
		d1, err := EvaluateHermite(Hermite, N, x, 1)
		require.NoError(t, err)
		d2, err := EvaluateHermite(Hermite, N, x, 2)
		require.NoError(t, err)
		assert.Equal(t, d1.Values, d2.Values)
		for n := 0; n <= N; n++ {
			for j, xj := range x {
				var (
					h   = d1.Values.At(n, j)
					hp  = d1.Derivatives.At(n, j)
					hpp = d2.Derivatives.At(n, j)
				)
				scale := math.Max(1, math.Max(math.Abs(hpp), math.Abs(2*float64(n)*h)))
				assert.InDeltaf(t, 0, hpp-2*xj*hp+2*float64(n)*h, 1.e-11*scale, "n = %d, x = %v", n, xj)
			}
		}
		for _, row := range [][]float64{d2.DerivativeRow(0), d2.DerivativeRow(1)} {
			for _, v := range row {
				assert.Equal(t, 0., v)
			}
		}
	}
	{ // ψ_n'' = (x² - 2n - 1) ψ_n
		res, err := EvaluateHermite(HermiteFunction, N, x, 2)
		require.NoError(t, err)
		for n := 0; n <= N; n++ {
			for j, xj := range x {
				want := (xj*xj - 2*float64(n) - 1) * res.Values.At(n, j)
				assert.InDeltaf(t, want, res.Derivatives.At(n, j), 1.e-11*math.Max(1, math.Abs(want)),
					"n = %d, x = %v", n, xj)
			}
		}
	}
	{ // ψ_n' against central differences
		const h = 1.e-5
		res, err := EvaluateHermite(HermiteFunction, N, x, 1)
		require.NoError(t, err)
		for j, xj := range x {
			plus, err := EvaluateHermite(HermiteFunction, N, []float64{xj + h}, 0)
			require.NoError(t, err)
			minus, err := EvaluateHermite(HermiteFunction, N, []float64{xj - h}, 0)
			require.NoError(t, err)
			for n := 0; n <= N; n++ {
				fd := (plus.Values.At(n, 0) - minus.Values.At(n, 0)) / (2 * h)
				assert.InDeltaf(t, fd, res.Derivatives.At(n, j), 1.e-6, "n = %d, x = %v", n, xj)
			}
		}
	}
}

func TestEvaluateHermite_Errors(t *testing.T) {
	_, err := EvaluateHermite(Legendre, 3, []float64{0}, 0)
	assert.ErrorIs(t, err, ErrInvalidParameter)
	_, err = EvaluateHermite(Hermite, -1, []float64{0}, 0)
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = EvaluateHermite(Hermite, 3, []float64{0}, -1)
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = EvaluateHermite(Hermite, 3, nil, 0)
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = EvaluateHermite(HermiteFunction, 3, []float64{0, math.NaN()}, 0)
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = EvaluateHermite(Hermite, 3, []float64{1.e200}, 0)
	assert.ErrorIs(t, err, ErrNumericOverflow)
	// Hermite functions decay instead
	res, err := EvaluateHermite(HermiteFunction, 3, []float64{1.e200}, 1)
	require.NoError(t, err)
	assert.Equal(t, 0., res.Values.At(3, 0))

	// Points off [-1, 1] are valid for both families through EvaluateBasis
	res, err = NewEvaluator(WithStrictDomain()).EvaluateBasis(Basis{Family: Hermite}, 2, []float64{-5, 5}, 0)
	require.NoError(t, err)
	assert.InDelta(t, res.Values.At(2, 0), res.Values.At(2, 1), 1.e-12)

	_, err = ReferenceHermite(ChebyshevT, 2, 0, 0)
	assert.ErrorIs(t, err, ErrInvalidParameter)
	_, err = ReferenceHermite(Hermite, -2, 0, 0)
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = ReferenceHermite(Hermite, 2, math.Inf(1), 0)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestHermiteOperator(t *testing.T) {
	J, err := HermiteOperator(5)
	require.NoError(t, err)
	assert.Equal(t, 10, J.NNZ())
	assert.Equal(t, 0., J.At(2, 2))
	assert.InDelta(t, math.Sqrt(1.5), J.At(2, 3), 1.e-15)
	assert.Equal(t, J.At(2, 3), J.At(3, 2))
	_, err = HermiteOperator(-1)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

// gaussMoment is ∫ x^k e^{-x²} dx = Γ((k+1)/2) for even k, zero for odd k.
func gaussMoment(k int) float64 {
	if k%2 == 1 {
		return 0
	}
	return math.Gamma(float64(k+1) / 2)
}

func TestHermiteGQ(t *testing.T) {
	{
		X, W, err := HermiteGQ(0)
		require.NoError(t, err)
		assert.Equal(t, []float64{0}, X)
		assert.InDelta(t, math.Sqrt(math.Pi), W[0], 1.e-15)
	}
	const N = 10
	X, W, err := HermiteGQ(N)
	require.NoError(t, err)
	require.Len(t, X, N+1)
	for i := range X {
		assert.InDelta(t, -X[N-i], X[i], 1.e-12, "symmetric nodes")
		assert.InEpsilon(t, W[N-i], W[i], 1.e-8, "symmetric weights")
		assert.True(t, W[i] > 0)
		if i > 0 {
			assert.True(t, X[i] > X[i-1], "nodes ascend")
		}
	}
	// Nodes are the roots of h_{N+1}, weights are 1/((N+1) h_N²)
	res, err := EvaluateHermite(Hermite, N+1, X, 0)
	require.NoError(t, err)
	for i := range X {
		assert.InDeltaf(t, 0, res.Values.At(N+1, i), 1.e-10, "node %d", i)
		hN := res.Values.At(N, i)
		assert.InEpsilonf(t, 1/(float64(N+1)*hN*hN), W[i], 1.e-8, "weight %d", i)
	}
	// Exact for degree 2N+1
	for k := 0; k <= 2*N+1; k++ {
		var s float64
		for i, xi := range X {
			s += W[i] * utils.POW(xi, k)
		}
		m := gaussMoment(k)
		assert.InDeltaf(t, m, s, 1.e-11*math.Max(1, m), "moment %d", k)
	}
	{ // Orthonormality of h_0..h_N under the rule
		G := gram(res.Values, W, N)
		assertIdentity(t, G, 1.e-8)
	}
	_, _, err = HermiteGQ(-2)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestHermiteFunctionGQ(t *testing.T) {
	for _, N := range []int{0, 1, 8, 40} {
		X, W, err := HermiteFunctionGQ(N)
		require.NoError(t, err)
		res, err := EvaluateHermite(HermiteFunction, N, X, 0)
		require.NoError(t, err)
		assertIdentity(t, gram(res.Values, W, N), 1.e-10)
	}
	{ // The weights are the Gauss-Hermite weights times e^{x²}
		X, W, err := HermiteFunctionGQ(6)
		require.NoError(t, err)
		_, Wp, err := HermiteGQ(6)
		require.NoError(t, err)
		for i := range X {
			assert.InEpsilon(t, Wp[i]*math.Exp(X[i]*X[i]), W[i], 1.e-10)
		}
	}
}

// gram returns Σ_j w_j T_m(x_j) T_n(x_j) for rows 0..N of the table T.
func gram(T interface{ At(i, j int) float64 }, w []float64, N int) (G [][]float64) {
	G = make([][]float64, N+1)
	for m := range G {
		G[m] = make([]float64, N+1)
		for n := range G[m] {
			for j, wj := range w {
				G[m][n] += wj * T.At(m, j) * T.At(n, j)
			}
		}
	}
	return
}

func assertIdentity(t *testing.T, G [][]float64, tol float64) {
	t.Helper()
	for m := range G {
		for n := range G[m] {
			want := 0.
			if m == n {
				want = 1
			}
			assert.InDeltaf(t, want, G[m][n], tol, "(%d, %d)", m, n)
		}
	}
}
