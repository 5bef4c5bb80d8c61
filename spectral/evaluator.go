package spectral

import (
	"fmt"
	"math"
	"runtime"

	"gonum.org/v1/gonum/mat"

	"github.com/notargets/gospectral/utils"
)

// EvaluationRequest describes one evaluation of the orthonormal family
// P_0..P_N of JacobiParameters at Points. A request owns a private copy of
// its points.
type EvaluationRequest struct {
	Params          JacobiParameters
	MaxDegree       int
	Points          []float64
	DerivativeOrder int
	// StrictDomain rejects points outside [-1, 1]. By default they are
	// evaluated, though the family is not orthonormal there.
	StrictDomain bool
}

func NewEvaluationRequest(alpha, beta float64, N int, points []float64, derivativeOrder int) (req EvaluationRequest, err error) {
	req = EvaluationRequest{
		Params:          JacobiParameters{Alpha: alpha, Beta: beta},
		MaxDegree:       N,
		Points:          append([]float64(nil), points...),
		DerivativeOrder: derivativeOrder,
	}
	if err = req.Validate(); err != nil {
		return EvaluationRequest{}, err
	}
	return
}

func (req EvaluationRequest) Validate() (err error) {
	if err = req.Params.Validate(); err != nil {
		return
	}
	if req.MaxDegree < 0 {
		return fmt.Errorf("max degree N = %d, must be >= 0: %w", req.MaxDegree, ErrInvalidInput)
	}
	if req.DerivativeOrder < 0 {
		return fmt.Errorf("derivative order = %d, must be >= 0: %w", req.DerivativeOrder, ErrInvalidInput)
	}
	if len(req.Points) == 0 {
		return fmt.Errorf("no evaluation points: %w", ErrInvalidInput)
	}
	for j, x := range req.Points {
		if !utils.IsFinite(x) {
			return fmt.Errorf("point %d = %v: %w", j, x, ErrInvalidInput)
		}
		if req.StrictDomain && math.Abs(x) > 1+utils.NODETOL {
			return fmt.Errorf("point %d = %v is outside [-1, 1]: %w", j, x, ErrInvalidInput)
		}
	}
	return
}

// EvaluationResult tables have N+1 rows, one per degree, and one column per
// point. Derivatives is nil unless a derivative order was requested, in which
// case it holds the d-th derivative of every row of Values. Family is Jacobi
// for every Jacobi special case, Params is zero for the Hermite families.
type EvaluationResult struct {
	Family          Family
	Params          JacobiParameters
	MaxDegree       int
	DerivativeOrder int
	Points          []float64
	Values          *mat.Dense
	Derivatives     *mat.Dense
}

// Row returns degree n of the value table. The slice aliases the table.
func (r *EvaluationResult) Row(n int) []float64 {
	return r.Values.RawRowView(n)
}

// DerivativeRow returns degree n of the derivative table, or nil.
func (r *EvaluationResult) DerivativeRow(n int) []float64 {
	if r.Derivatives == nil {
		return nil
	}
	return r.Derivatives.RawRowView(n)
}

// Evaluator evaluates requests. The zero value evaluates serially without a
// coefficient cache.
type Evaluator struct {
	parallelDegree int
	strictDomain   bool
	cache          *CoefficientCache
}

type Option func(e *Evaluator)

// WithCache memoizes recurrence coefficients per (α, β, N) for the lifetime
// of the evaluator.
func WithCache() Option {
	return func(e *Evaluator) {
		e.cache = NewCoefficientCache()
	}
}

// WithParallelDegree splits the points of a request across np goroutines,
// np < 1 uses one per CPU.
func WithParallelDegree(np int) Option {
	return func(e *Evaluator) {
		if np < 1 {
			np = runtime.NumCPU()
		}
		e.parallelDegree = np
	}
}

// WithStrictDomain rejects points outside [-1, 1] for every request.
func WithStrictDomain() Option {
	return func(e *Evaluator) {
		e.strictDomain = true
	}
}

func NewEvaluator(opts ...Option) (e *Evaluator) {
	e = &Evaluator{parallelDegree: 1}
	for _, opt := range opts {
		opt(e)
	}
	return
}

// Cache returns the evaluator's coefficient cache, nil if caching is off.
func (e *Evaluator) Cache() *CoefficientCache { return e.cache }

func (e *Evaluator) ParallelDegree() int {
	if e.parallelDegree < 1 {
		return 1
	}
	return e.parallelDegree
}

func (e *Evaluator) recurrence(jp JacobiParameters, N int) (*Recurrence, error) {
	if e.cache != nil {
		return e.cache.Get(jp, N)
	}
	return NewRecurrence(jp, N)
}

// Evaluate computes the value table, and the derivative table when
// req.DerivativeOrder > 0. On any error no result is returned.
func (e *Evaluator) Evaluate(req EvaluationRequest) (res *EvaluationResult, err error) {
	if e.strictDomain {
		req.StrictDomain = true
	}
	if err = req.Validate(); err != nil {
		return
	}
	var (
		N      = req.MaxDegree
		d      = req.DerivativeOrder
		points = append([]float64(nil), req.Points...)
		values *mat.Dense
		derivs *mat.Dense
	)
	if values, err = e.table(req.Params, N, points); err != nil {
		return
	}
	if d > 0 {
		if derivs, err = e.derivativeTable(req.Params, N, d, points); err != nil {
			return
		}
	}
	res = &EvaluationResult{
		Params:          req.Params,
		MaxDegree:       N,
		DerivativeOrder: d,
		Points:          points,
		Values:          values,
		Derivatives:     derivs,
	}
	return
}

// table evaluates rows 0..N of family jp, column partitions in parallel.
func (e *Evaluator) table(jp JacobiParameters, N int, x []float64) (P *mat.Dense, err error) {
	var (
		rec *Recurrence
		Nc  = len(x)
	)
	if rec, err = e.recurrence(jp, N); err != nil {
		return
	}
	P = mat.NewDense(N+1, Nc, nil)
	rows := make([][]float64, N+1)
	for n := range rows {
		rows[n] = P.RawRowView(n)
	}
	pm := utils.NewPartitionMap(e.ParallelDegree(), Nc)
	err = pm.ForEachBucket(func(bn, kMin, kMax int) error {
		return rec.fillColumns(x, rows, kMin, kMax)
	})
	if err != nil {
		P = nil
	}
	return
}

// derivativeTable uses d^k/dx^k P_n^(α,β) = s_n P_{n-k}^(α+k,β+k), see
// derivativeScale. Rows below degree k are zero.
func (e *Evaluator) derivativeTable(jp JacobiParameters, N, k int, x []float64) (D *mat.Dense, err error) {
	var (
		Nc    = len(x)
		scale []float64
		Q     *mat.Dense
	)
	D = mat.NewDense(N+1, Nc, nil)
	if N < k {
		return
	}
	scale = derivativeScale(jp, N, k)
	if ok, n := utils.AllFinite(scale); !ok {
		err = fmt.Errorf("derivative scale of order %d at degree %d for %v: %w", k, n, jp, ErrNumericOverflow)
		D = nil
		return
	}
	if Q, err = e.table(jp.Shift(k), N-k, x); err != nil {
		D = nil
		return
	}
	for n := k; n <= N; n++ {
		var (
			row = D.RawRowView(n)
			q   = Q.RawRowView(n - k)
			s   = scale[n]
		)
		for j := range row {
			row[j] = s * q[j]
		}
		if err = checkRow(row, n, 0, Nc); err != nil {
			D = nil
			return
		}
	}
	return
}

// derivativeScale returns s_n, n = 0..N, with
//
//	d^k/dx^k P_n^(α,β) = s_n P_{n-k}^(α+k,β+k)
//
// built from d/dx P_n^(α,β) = sqrt(n(n+α+β+1)) P_{n-1}^(α+1,β+1) by reducing
// the order one step at a time. s_n = 0 for n < k.
func derivativeScale(jp JacobiParameters, N, k int) (s []float64) {
	if k == 0 {
		return utils.ConstArray(N+1, 1)
	}
	s = make([]float64, N+1)
	inner := derivativeScale(jp.Shift(1), N-1, k-1)
	ab1 := jp.Alpha + jp.Beta + 1
	for n := 1; n <= N; n++ {
		fn := float64(n)
		s[n] = math.Sqrt(fn*(fn+ab1)) * inner[n-1]
	}
	return
}

// Evaluate is the pure, serial, uncached evaluation of the orthonormal Jacobi
// family of degree 0..N at points, with the derivativeOrder-th derivatives
// when derivativeOrder > 0.
func Evaluate(alpha, beta float64, N int, points []float64, derivativeOrder int) (*EvaluationResult, error) {
	req, err := NewEvaluationRequest(alpha, beta, N, points, derivativeOrder)
	if err != nil {
		return nil, err
	}
	var e Evaluator
	return e.Evaluate(req)
}
