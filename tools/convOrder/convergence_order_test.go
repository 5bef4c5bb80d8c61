package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadCSV(t *testing.T) {
	csvText := `Title,Family,N,OrthoMax,OrthoMean,RefMax,RefMean
sweep,Legendre,2,1.000000e-15,2.000000e-16,3.000000e-16,1.000000e-16
sweep,Legendre,1,1.000000e-16,5.000000e-17,2.000000e-16,1.000000e-16
Title,Family,N,OrthoMax,OrthoMean,RefMax,RefMean
sweep,ChebyshevT,1,0.000000e+00,0.000000e+00,1.000000e-16,1.000000e-16
`
	fileName := filepath.Join(t.TempDir(), "verify.csv")
	require.NoError(t, os.WriteFile(fileName, []byte(csvText), 0644))
	studies, err := readCSV(fileName)
	require.NoError(t, err)
	require.Len(t, studies, 2)

	cs := studies["sweepLegendre"]
	require.NotNil(t, cs)
	cs.Sort()
	assert.Equal(t, []int{1, 2}, cs.degree)
	assert.Equal(t, []float64{2.e-16, 3.e-16}, cs.refMAX)
	slope, ok := cs.GrowthRate()
	require.True(t, ok)
	assert.InDelta(t, 1., slope, 1.e-12)

	_, ok = studies["sweepChebyshevT"].GrowthRate()
	assert.False(t, ok)

	require.NoError(t, os.WriteFile(fileName, []byte("a,b,x,1,2,3,4\n"), 0644))
	_, err = readCSV(fileName)
	assert.Error(t, err)
}
