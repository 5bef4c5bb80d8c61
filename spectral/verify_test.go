package spectral

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReport(t *testing.T) {
	r, err := newReport("errs", []float64{1, 3, 2, 6}, 3)
	require.NoError(t, err)
	assert.Equal(t, 4, r.Samples)
	assert.Equal(t, 6., r.Max)
	assert.Equal(t, 3., r.Mean)
	assert.Equal(t, 2.5, r.Median)
	assert.InDelta(t, 1.8708286933869707, r.StdDev, 1.e-14)
	assert.Contains(t, r.String(), "errs: samples = 4")
	assert.Contains(t, r.String(), "at (1, 0)")

	_, err = newReport("empty", nil, 1)
	assert.Error(t, err)
}

func TestCheck_Errors(t *testing.T) {
	_, err := CheckOrthonormality(-1, 0, 3)
	assert.ErrorIs(t, err, ErrInvalidParameter)
	_, err = CheckReference(0, 0, -2, []float64{0})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestDigest(t *testing.T) {
	x := []float64{-1, 0, 0.5}
	r1, err := Evaluate(0.5, 0.5, 6, x, 1)
	require.NoError(t, err)
	r2, err := NewEvaluator(WithParallelDegree(3)).Evaluate(mustRequest(t, 0.5, 0.5, 6, x, 1))
	require.NoError(t, err)
	assert.Len(t, r1.Digest(), 64)
	assert.Equal(t, r1.Digest(), r2.Digest())

	r3, err := Evaluate(0.5, 0.5, 6, x, 0)
	require.NoError(t, err)
	assert.NotEqual(t, r1.Digest(), r3.Digest())
	r4, err := Evaluate(0.5, 0.5, 6, []float64{-1, 0, 0.25}, 1)
	require.NoError(t, err)
	assert.NotEqual(t, r1.Digest(), r4.Digest())
}

func mustRequest(t *testing.T, alpha, beta float64, N int, points []float64, d int) EvaluationRequest {
	t.Helper()
	req, err := NewEvaluationRequest(alpha, beta, N, points, d)
	require.NoError(t, err)
	return req
}
