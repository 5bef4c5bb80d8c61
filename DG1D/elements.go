package DG1D

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/notargets/gospectral/spectral"
	"github.com/notargets/gospectral/utils"
)

// Elements1D is a 1D mesh of K elements, each carrying the Np = N+1 point
// Legendre-Gauss-Lobatto nodal basis. Nodal fields are Np x K matrices with
// one column per element.
type Elements1D struct {
	K, Np, Nfp, NFaces int
	R, W               []float64 // Reference nodes and Gauss-Lobatto weights on [-1,1]
	VX                 []float64
	EToV, EToE, EToF   [][2]int
	FMask              [2]int
	V, Vinv, Dr, LIFT  *mat.Dense
	X, J, Rx, FScale   *mat.Dense
}

// SimpleMesh1D splits [xmin, xmax] into K equal elements. K < 1 is an empty
// mesh, which NewElements1D rejects.
func SimpleMesh1D(xmin, xmax float64, K int) (VX []float64, EToV [][2]int) {
	if K < 1 {
		return
	}
	VX = utils.Linspace(xmin, xmax, K+1)
	EToV = make([][2]int, K)
	for k := range EToV {
		EToV[k] = [2]int{k, k + 1}
	}
	return
}

func NewElements1D(N int, VX []float64, EToV [][2]int) (el *Elements1D, err error) {
	if N < 1 {
		return nil, fmt.Errorf("element degree N = %d, must be >= 1: %w", N, spectral.ErrInvalidInput)
	}
	if len(EToV) == 0 {
		return nil, fmt.Errorf("empty mesh: %w", spectral.ErrInvalidInput)
	}
	el = &Elements1D{
		K:      len(EToV),
		Np:     N + 1,
		Nfp:    1,
		NFaces: 2,
		VX:     VX,
		EToV:   EToV,
	}
	if err = el.Startup1D(); err != nil {
		return nil, err
	}
	return
}

// Lift1D returns V Vᵀ E, mapping the two face values of an element onto the
// volume nodes through the inverse mass matrix.
func Lift1D(V *mat.Dense, Np, Nfaces, Nfp int) (LIFT *mat.Dense) {
	Emat := mat.NewDense(Np, Nfaces*Nfp, nil)
	Emat.Set(0, 0, 1)
	Emat.Set(Np-1, 1, 1)
	var VVt mat.Dense
	VVt.Mul(V, V.T())
	LIFT = mat.NewDense(Np, Nfaces*Nfp, nil)
	LIFT.Mul(&VVt, Emat)
	return
}

// GeometricFactors1D returns the element Jacobian J = Dr X and Rx = 1/J.
func GeometricFactors1D(Dr, X *mat.Dense) (J, Rx *mat.Dense, err error) {
	J = &mat.Dense{}
	J.Mul(Dr, X)
	Rx = mat.DenseCopyOf(J)
	nr, nc := Rx.Dims()
	for i := 0; i < nr; i++ {
		for k := 0; k < nc; k++ {
			j := J.At(i, k)
			if !(j > 0) {
				return nil, nil, fmt.Errorf("element %d has non positive Jacobian %v: %w", k, j, spectral.ErrInvalidInput)
			}
			Rx.Set(i, k, 1/j)
		}
	}
	return
}

// Derivative returns dU/dx = Rx .* (Dr U) for a nodal field U.
func (el *Elements1D) Derivative(U *mat.Dense) (dUdx *mat.Dense) {
	dUdx = &mat.Dense{}
	dUdx.Mul(el.Dr, U)
	dUdx.MulElem(dUdx, el.Rx)
	return
}

// Integrate sums ∫ u dx over the mesh with the Gauss-Lobatto rule of each
// element.
func (el *Elements1D) Integrate(U *mat.Dense) (sum float64) {
	for k := 0; k < el.K; k++ {
		for i := 0; i < el.Np; i++ {
			sum += el.W[i] * el.J.At(i, k) * U.At(i, k)
		}
	}
	return
}

// Project evaluates f at every node of the mesh.
func (el *Elements1D) Project(f func(x float64) float64) (U *mat.Dense) {
	U = mat.NewDense(el.Np, el.K, nil)
	U.Apply(func(i, k int, _ float64) float64 { return f(el.X.At(i, k)) }, el.X)
	return
}
