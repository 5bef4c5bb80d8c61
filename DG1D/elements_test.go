package DG1D

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/notargets/gospectral/spectral"
)

func TestElements1D(t *testing.T) {
	{
		K := 4
		N := 3
		VX, EToV := SimpleMesh1D(0, 2, K)

		el, err := NewElements1D(N, VX, EToV)
		require.NoError(t, err)
		assert.True(t, near(el.X.At(0, 1), 0.5))
		assert.True(t, near(el.X.At(3, 1), 1.0))
		assert.True(t, near(el.X.At(3, 2), 1.5))
		assert.True(t, near(el.X.At(2, 3), 1.8618033988))
		assert.True(t, near(el.X.At(1, 1), 0.6381966011))

		assert.True(t, near(el.LIFT.At(2, 0), 0.8944271909))
		assert.True(t, near(el.LIFT.At(2, 1), -0.8944271909))
		assert.True(t, near(el.LIFT.At(1, 0), -0.8944271909))
		assert.True(t, near(el.LIFT.At(1, 1), 0.8944271909))

		assert.Equal(t, [2]int{0, 3}, el.FMask)
		for k := 0; k < K; k++ {
			assert.InDelta(t, 0.25, el.J.At(0, k), 1.e-13)
			assert.InDelta(t, 4, el.FScale.At(1, k), 1.e-12)
		}
		assert.Equal(t, [][2]int{{0, 1}, {0, 2}, {1, 3}, {2, 3}}, el.EToE)
		assert.Equal(t, [][2]int{{0, 0}, {1, 0}, {1, 0}, {1, 1}}, el.EToF)
	}
}

func TestElements1D_Operators(t *testing.T) {
	VX, EToV := SimpleMesh1D(-1, 3, 5)
	el, err := NewElements1D(5, VX, EToV)
	require.NoError(t, err)

	// Dr is exact for polynomials of degree N
	U := el.Project(func(x float64) float64 { return x*x*x*x*x - 2*x })
	dU := el.Derivative(U)
	for k := 0; k < el.K; k++ {
		for i := 0; i < el.Np; i++ {
			x := el.X.At(i, k)
			assert.InDelta(t, 5*x*x*x*x-2, dU.At(i, k), 1.e-10)
		}
	}
	// Gauss-Lobatto is exact for degree 2N-1
	assert.InDelta(t, (math.Pow(3, 6)-1)/6-(9-1), el.Integrate(U), 1.e-10)

	// The filter leaves modes below the cutoff alone and damps the highest one
	F, err := el.Filter1D(2, 4, 36)
	require.NoError(t, err)
	var FU mat.Dense
	FU.Mul(F, U)
	Uh, FUh := el.Modes(U), el.Modes(&FU)
	for k := 0; k < el.K; k++ {
		assert.InDelta(t, Uh.At(0, k), FUh.At(0, k), 1.e-12)
		assert.InDelta(t, Uh.At(1, k), FUh.At(1, k), 1.e-12)
		assert.InDelta(t, math.Exp(-36)*Uh.At(5, k), FUh.At(5, k), 1.e-12)
	}
	_, err = el.Filter1D(5, 4, 36)
	assert.ErrorIs(t, err, spectral.ErrInvalidInput)
	_, err = el.Filter1D(1, 3, 36)
	assert.ErrorIs(t, err, spectral.ErrInvalidInput)
}

func TestElements1D_Errors(t *testing.T) {
	VX, EToV := SimpleMesh1D(0, 1, 2)
	_, err := NewElements1D(0, VX, EToV)
	assert.ErrorIs(t, err, spectral.ErrInvalidInput)
	_, err = NewElements1D(2, VX, [][2]int{{0, 5}})
	assert.ErrorIs(t, err, spectral.ErrInvalidInput)
	_, err = NewElements1D(2, VX, [][2]int{{1, 0}})
	assert.ErrorIs(t, err, spectral.ErrInvalidInput)
	for _, K := range []int{0, -1, -4} {
		assert.NotPanics(t, func() {
			VX, EToV := SimpleMesh1D(0, 1, K)
			_, err := NewElements1D(2, VX, EToV)
			assert.ErrorIsf(t, err, spectral.ErrInvalidInput, "K = %d", K)
		})
	}
}

func near(a, b float64) (l bool) {
	if math.Abs(a-b) < 1.e-08*math.Abs(a) {
		l = true
	}
	return
}
