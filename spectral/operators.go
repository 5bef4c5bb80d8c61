package spectral

import (
	"fmt"

	"github.com/james-bowman/sparse"
	"gonum.org/v1/gonum/mat"
)

// JacobiOperator assembles the (N+1)x(N+1) symmetric tridiagonal Jacobi matrix
// J, diag(B_0..B_N) with A_1..A_N off the diagonal. Acting on modal
// coefficients it multiplies the expansion by x, dropping the degree N+1
// term. Its eigenvalues are the Gauss-Jacobi nodes.
func JacobiOperator(jp JacobiParameters, N int) (J *sparse.CSR, err error) {
	var rec *Recurrence
	if rec, err = NewRecurrence(jp, N); err != nil {
		return
	}
	J = jacobiOperator(rec)
	return
}

func jacobiOperator(rec *Recurrence) *sparse.CSR {
	var (
		N   = rec.MaxDegree()
		dok = sparse.NewDOK(N+1, N+1)
	)
	for n := 0; n <= N; n++ {
		dok.Set(n, n, rec.B(n))
		if n < N {
			dok.Set(n, n+1, rec.A(n+1))
			dok.Set(n+1, n, rec.A(n+1))
		}
	}
	return dok.ToCSR()
}

// symmetricBand copies the tridiagonal band of J into a dense symmetric matrix.
func symmetricBand(J mat.Matrix) (S *mat.SymDense) {
	nr, _ := J.Dims()
	S = mat.NewSymDense(nr, nil)
	for i := 0; i < nr; i++ {
		S.SetSym(i, i, J.At(i, i))
		if i+1 < nr {
			S.SetSym(i, i+1, J.At(i, i+1))
		}
	}
	return
}

// MultiplyByX returns the modal coefficients of x·f(x) truncated to degree N,
// where coeffs are the N+1 modal coefficients of f.
func MultiplyByX(jp JacobiParameters, coeffs []float64) (out []float64, err error) {
	if len(coeffs) == 0 {
		err = fmt.Errorf("no modal coefficients: %w", ErrInvalidInput)
		return
	}
	var J *sparse.CSR
	if J, err = JacobiOperator(jp, len(coeffs)-1); err != nil {
		return
	}
	var y mat.VecDense
	y.MulVec(J, mat.NewVecDense(len(coeffs), append([]float64(nil), coeffs...)))
	out = make([]float64, len(coeffs))
	for i := range out {
		out[i] = y.AtVec(i)
	}
	return
}
