package DG1D

import (
	"fmt"
	"math"

	"github.com/james-bowman/sparse"
	"gonum.org/v1/gonum/mat"

	"github.com/notargets/gospectral/spectral"
	"github.com/notargets/gospectral/utils"
)

func (el *Elements1D) Startup1D() (err error) {
	var (
		N  = el.Np - 1
		Vr *mat.Dense
	)
	if el.R, el.W, err = spectral.JacobiGL(0, 0, N); err != nil {
		return
	}
	if el.V, err = spectral.Vandermonde1D(0, 0, N, el.R); err != nil {
		return
	}
	el.Vinv = &mat.Dense{}
	if err = el.Vinv.Inverse(el.V); err != nil {
		return fmt.Errorf("inverting the Vandermonde matrix, N = %d: %v: %w", N, err, spectral.ErrNumericOverflow)
	}
	if Vr, err = spectral.GradVandermonde1D(0, 0, N, el.R); err != nil {
		return
	}
	el.Dr = &mat.Dense{}
	el.Dr.Mul(Vr, el.Vinv)

	el.LIFT = Lift1D(el.V, el.Np, el.NFaces, el.Nfp)

	// x = VX(va) + 0.5*(r+1)*(VX(vb)-VX(va))
	el.X = mat.NewDense(el.Np, el.K, nil)
	for k, ev := range el.EToV {
		va, vb := ev[0], ev[1]
		if va < 0 || vb < 0 || va >= len(el.VX) || vb >= len(el.VX) {
			return fmt.Errorf("element %d references vertex outside [0, %d): %w", k, len(el.VX), spectral.ErrInvalidInput)
		}
		sT := el.VX[vb] - el.VX[va]
		for i, r := range el.R {
			el.X.Set(i, k, el.VX[va]+0.5*(r+1)*sT)
		}
	}
	if el.J, el.Rx, err = GeometricFactors1D(el.Dr, el.X); err != nil {
		return
	}

	for i, r := range el.R {
		if math.Abs(r+1) < utils.NODETOL {
			el.FMask[0] = i
		}
		if math.Abs(r-1) < utils.NODETOL {
			el.FMask[1] = i
		}
	}
	el.FScale = mat.NewDense(el.NFaces, el.K, nil)
	for f, i := range el.FMask {
		for k := 0; k < el.K; k++ {
			el.FScale.Set(f, k, 1/el.J.At(i, k))
		}
	}
	el.Connect1D()
	return
}

// Connect1D finds the neighbor element and face across each face. Faces that
// share a vertex are the off diagonal ones of FToV FToVᵀ. Boundary faces
// connect to themselves.
func (el *Elements1D) Connect1D() {
	var (
		NFaces     = el.NFaces
		K          = el.K
		Nv         = len(el.VX)
		TotalFaces = NFaces * K
	)
	SpFToV_Tmp := sparse.NewDOK(TotalFaces, Nv)
	var sk int
	for k := 0; k < K; k++ {
		for face := 0; face < NFaces; face++ {
			SpFToV_Tmp.Set(sk, el.EToV[k][face], 1)
			sk++
		}
	}
	SpFToF := sparse.NewCSR(TotalFaces, TotalFaces, nil, nil, nil)
	SpFToV := SpFToV_Tmp.ToCSR()
	SpFToF.Mul(SpFToV, SpFToV.T())

	el.EToE = make([][2]int, K)
	el.EToF = make([][2]int, K)
	for k := 0; k < K; k++ {
		el.EToE[k] = [2]int{k, k}
		el.EToF[k] = [2]int{0, 1}
	}
	SpFToF.DoNonZero(func(face1, face2 int, v float64) {
		if face1 == face2 || v != 1 {
			return
		}
		element1, f1 := face1/NFaces, face1%NFaces
		element2, f2 := face2/NFaces, face2%NFaces
		el.EToE[element1][f1] = element2
		el.EToF[element1][f1] = f2
	})
}
