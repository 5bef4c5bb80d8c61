package spectral

import (
	"fmt"
	"math"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Report summarizes a set of absolute or relative errors.
type Report struct {
	Title                     string
	Samples                   int
	Max, Mean, Median, StdDev float64
	WorstRow, WorstCol        int
}

func (r Report) String() string {
	return fmt.Sprintf("%s: samples = %d, max = %8.3e at (%d, %d), mean = %8.3e, median = %8.3e, stddev = %8.3e",
		r.Title, r.Samples, r.Max, r.WorstRow, r.WorstCol, r.Mean, r.Median, r.StdDev)
}

// newReport summarizes errs, laid out row major with ncols entries per row.
func newReport(title string, errs []float64, ncols int) (r Report, err error) {
	r = Report{Title: title, Samples: len(errs)}
	if len(errs) != 0 {
		worst := floats.MaxIdx(errs)
		r.WorstRow, r.WorstCol = worst/ncols, worst%ncols
	}
	data := stats.Float64Data(errs)
	if r.Max, err = stats.Max(data); err != nil {
		return
	}
	if r.Mean, err = stats.Mean(data); err != nil {
		return
	}
	if r.Median, err = stats.Median(data); err != nil {
		return
	}
	if r.StdDev, err = stats.StandardDeviation(data); err != nil {
		return
	}
	return
}

// CheckOrthonormality forms the Gram matrix G = Vᵀ diag(w) V of P_0..P_N with
// the N+1 point Gauss-Jacobi rule, which integrates every product exactly,
// and reports |G - I| over all entries.
func CheckOrthonormality(alpha, beta float64, N int) (r Report, err error) {
	var (
		x, w []float64
		V    *mat.Dense
	)
	if x, w, err = JacobiGQ(alpha, beta, N); err != nil {
		return
	}
	if V, err = Vandermonde1D(alpha, beta, N, x); err != nil {
		return
	}
	errs := gramErrors(V, w)
	return newReport(fmt.Sprintf("orthonormality (α=%g, β=%g, N=%d)", alpha, beta, N), errs, N+1)
}

// gramErrors forms G = Vᵀ diag(w) V, V holding one row per node and one
// column per degree, and returns |G - I| row major.
func gramErrors(V mat.Matrix, w []float64) (errs []float64) {
	_, Nm := V.Dims()
	WV := mat.DenseCopyOf(V)
	for i := range w {
		row := WV.RawRowView(i)
		for n := range row {
			row[n] *= w[i]
		}
	}
	var G mat.Dense
	G.Mul(V.T(), WV)
	errs = make([]float64, 0, Nm*Nm)
	for m := 0; m < Nm; m++ {
		for n := 0; n < Nm; n++ {
			target := 0.
			if m == n {
				target = 1
			}
			errs = append(errs, math.Abs(G.At(m, n)-target))
		}
	}
	return
}

// CheckHermiteOrthonormality is CheckOrthonormality for the Hermite
// families, using HermiteGQ for Hermite and HermiteFunctionGQ for
// HermiteFunction.
func CheckHermiteOrthonormality(f Family, N int) (r Report, err error) {
	var (
		x, w []float64
		res  *EvaluationResult
	)
	if err = hermiteFamily(f); err != nil {
		return
	}
	if f == Hermite {
		x, w, err = HermiteGQ(N)
	} else {
		x, w, err = HermiteFunctionGQ(N)
	}
	if err != nil {
		return
	}
	if res, err = EvaluateHermite(f, N, x, 0); err != nil {
		return
	}
	return newReport(fmt.Sprintf("orthonormality (%v, N=%d)", f, N), gramErrors(res.Values.T(), w), N+1)
}

// CheckHermiteReference compares the Hermite recurrence against
// ReferenceHermite with the error metric of CheckReference.
func CheckHermiteReference(f Family, N int, points []float64) (r Report, err error) {
	var res *EvaluationResult
	if res, err = EvaluateHermite(f, N, points, 0); err != nil {
		return
	}
	errs := make([]float64, 0, (N+1)*len(points))
	for n := 0; n <= N; n++ {
		for j, xj := range points {
			var ref float64
			if ref, err = ReferenceHermite(f, n, xj, 0); err != nil {
				return
			}
			errs = append(errs, math.Abs(res.Values.At(n, j)-ref)/math.Max(math.Abs(ref), 1))
		}
	}
	return newReport(fmt.Sprintf("reference (%v, N=%d)", f, N), errs, len(points))
}

// DefaultRootFloor is the fraction of a row's largest reference value below
// which CheckReferenceRelative treats an entry as a root and skips it.
const DefaultRootFloor = 1.e-3

// referenceTables returns the recurrence and reference values of degrees
// 0..N at points, row major.
func referenceTables(alpha, beta float64, N int, points []float64) (p, ref [][]float64, err error) {
	var res *EvaluationResult
	if res, err = Evaluate(alpha, beta, N, points, 0); err != nil {
		return
	}
	p, ref = make([][]float64, N+1), make([][]float64, N+1)
	for n := 0; n <= N; n++ {
		p[n] = res.Row(n)
		ref[n] = make([]float64, len(points))
		for j, xj := range points {
			if ref[n][j], err = ReferenceJacobi(alpha, beta, n, xj, 0); err != nil {
				return
			}
		}
	}
	return
}

// CheckReference compares the recurrence against ReferenceJacobi for degrees
// 0..N at the given points and reports the error measured against
// max(|reference|, 1), absolute for small values and relative for large ones.
func CheckReference(alpha, beta float64, N int, points []float64) (r Report, err error) {
	var p, ref [][]float64
	if p, ref, err = referenceTables(alpha, beta, N, points); err != nil {
		return
	}
	errs := make([]float64, 0, (N+1)*len(points))
	for n := range ref {
		for j := range points {
			errs = append(errs, math.Abs(p[n][j]-ref[n][j])/math.Max(math.Abs(ref[n][j]), 1))
		}
	}
	return newReport(fmt.Sprintf("reference (α=%g, β=%g, N=%d)", alpha, beta, N), errs, len(points))
}

// CheckReferenceRelative reports the relative error |p - ref| / |ref| of the
// recurrence against ReferenceJacobi, skipping entries with |ref| below
// floor times the largest |ref| of the same degree. floor <= 0 uses
// DefaultRootFloor.
func CheckReferenceRelative(alpha, beta float64, N int, points []float64, floor float64) (r Report, err error) {
	var p, ref [][]float64
	if floor <= 0 {
		floor = DefaultRootFloor
	}
	if p, ref, err = referenceTables(alpha, beta, N, points); err != nil {
		return
	}
	var (
		errs = make([]float64, 0, (N+1)*len(points))
		kept = make([][2]int, 0, (N+1)*len(points))
	)
	for n := range ref {
		var rowMax float64
		for _, v := range ref[n] {
			rowMax = math.Max(rowMax, math.Abs(v))
		}
		for j, v := range ref[n] {
			if v == 0 || math.Abs(v) < floor*rowMax {
				continue
			}
			errs = append(errs, math.Abs(p[n][j]-v)/math.Abs(v))
			kept = append(kept, [2]int{n, j})
		}
	}
	if len(errs) == 0 {
		err = fmt.Errorf("every reference value is a root: %w", ErrInvalidInput)
		return
	}
	if r, err = newReport(fmt.Sprintf("relative reference (α=%g, β=%g, N=%d)", alpha, beta, N), errs, 1); err != nil {
		return
	}
	worst := kept[floats.MaxIdx(errs)]
	r.WorstRow, r.WorstCol = worst[0], worst[1]
	return
}
