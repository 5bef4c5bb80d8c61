package DG1D

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/notargets/gospectral/spectral"
	"github.com/notargets/gospectral/utils"
)

// Filter1D returns the nodal exponential filter V diag(σ) V⁻¹, which leaves
// modes below Nc untouched and damps mode n by
// σ_n = exp(-alpha ((n-Nc)/(N-Nc))^s).
func (el *Elements1D) Filter1D(Nc, s int, alpha float64) (F *mat.Dense, err error) {
	N := el.Np - 1
	if Nc < 0 || Nc >= N {
		return nil, fmt.Errorf("filter cutoff Nc = %d, must be in [0, %d): %w", Nc, N, spectral.ErrInvalidInput)
	}
	if s < 1 || s%2 != 0 {
		return nil, fmt.Errorf("filter order s = %d, must be even and positive: %w", s, spectral.ErrInvalidInput)
	}
	sigma := mat.NewDiagDense(el.Np, nil)
	for n := 0; n < el.Np; n++ {
		if n < Nc {
			sigma.SetDiag(n, 1)
			continue
		}
		eta := float64(n-Nc) / float64(N-Nc)
		sigma.SetDiag(n, math.Exp(-alpha*utils.POW(eta, s)))
	}
	var VS mat.Dense
	VS.Mul(el.V, sigma)
	F = &mat.Dense{}
	F.Mul(&VS, el.Vinv)
	return
}

// Modes returns the modal coefficients V⁻¹ U of a nodal field, one column per
// element.
func (el *Elements1D) Modes(U *mat.Dense) (Uh *mat.Dense) {
	Uh = &mat.Dense{}
	Uh.Mul(el.Vinv, U)
	return
}
