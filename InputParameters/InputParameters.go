package InputParameters

import (
	"fmt"

	"github.com/ghodss/yaml"

	"github.com/notargets/gospectral/spectral"
	"github.com/notargets/gospectral/utils"
)

// Parameters obtained from the YAML input file
type EvalParameters struct {
	Title           string    `yaml:"Title"`
	Family          string    `yaml:"Family"` // Jacobi, Legendre, ChebyshevT, ChebyshevU, Gegenbauer, Hermite, HermiteFunction
	Alpha           float64   `yaml:"Alpha"`
	Beta            float64   `yaml:"Beta"`
	Lambda          float64   `yaml:"Lambda"` // Gegenbauer only
	MaxDegree       int       `yaml:"MaxDegree"`
	Points          []float64 `yaml:"Points"`
	Linspace        int       `yaml:"Linspace"` // Used when Points is empty, equispaced on [-1,1], must be >= 1
	DerivativeOrder int       `yaml:"DerivativeOrder"`
	StrictDomain    bool      `yaml:"StrictDomain"`
	ParallelDegree  int       `yaml:"ParallelDegree"`
}

func (ip *EvalParameters) Parse(data []byte) error {
	return yaml.Unmarshal(data, ip)
}

func (ip *EvalParameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", ip.Title)
	fmt.Printf("[%s]\t\t= Family\n", ip.Family)
	fmt.Printf("%8.5f\t\t= Alpha\n", ip.Alpha)
	fmt.Printf("%8.5f\t\t= Beta\n", ip.Beta)
	if ip.Lambda != 0 {
		fmt.Printf("%8.5f\t\t= Lambda\n", ip.Lambda)
	}
	fmt.Printf("[%d]\t\t\t= Max Degree\n", ip.MaxDegree)
	fmt.Printf("[%d]\t\t\t= Derivative Order\n", ip.DerivativeOrder)
	if len(ip.Points) != 0 {
		fmt.Printf("%v\t= Points\n", ip.Points)
	} else {
		fmt.Printf("[%d]\t\t\t= Linspace Points\n", ip.Linspace)
	}
	fmt.Printf("[%v]\t\t= Strict Domain\n", ip.StrictDomain)
	fmt.Printf("[%d]\t\t\t= Parallel Degree\n", ip.ParallelDegree)
}

func (ip *EvalParameters) Basis() (b spectral.Basis, err error) {
	var f spectral.Family
	if f, err = spectral.NewFamily(ip.Family); err != nil {
		return
	}
	b = spectral.Basis{Family: f, Alpha: ip.Alpha, Beta: ip.Beta, Lambda: ip.Lambda}
	return
}

// PointSet returns Points, or Linspace equispaced points on [-1,1] when Points
// is empty.
func (ip *EvalParameters) PointSet() (x []float64, err error) {
	if len(ip.Points) != 0 {
		return ip.Points, nil
	}
	if ip.Linspace < 1 {
		err = fmt.Errorf("no Points and Linspace = %d, must be >= 1: %w", ip.Linspace, spectral.ErrInvalidInput)
		return
	}
	return utils.Linspace(-1, 1, ip.Linspace), nil
}

// Request maps the parameters onto a validated evaluation request for the
// Jacobi parameters of the selected family.
func (ip *EvalParameters) Request() (req spectral.EvaluationRequest, err error) {
	var (
		b  spectral.Basis
		jp spectral.JacobiParameters
		x  []float64
	)
	if b, err = ip.Basis(); err != nil {
		return
	}
	if jp, err = b.Parameters(); err != nil {
		return
	}
	if x, err = ip.PointSet(); err != nil {
		return
	}
	if req, err = spectral.NewEvaluationRequest(jp.Alpha, jp.Beta, ip.MaxDegree, x, ip.DerivativeOrder); err != nil {
		return
	}
	req.StrictDomain = ip.StrictDomain
	if err = req.Validate(); err != nil {
		return
	}
	return
}

// Evaluate runs the parameters on e, through Request for the Jacobi
// families and EvaluateHermite for the Hermite ones.
func (ip *EvalParameters) Evaluate(e *spectral.Evaluator) (res *spectral.EvaluationResult, err error) {
	var (
		b   spectral.Basis
		x   []float64
		req spectral.EvaluationRequest
	)
	if b, err = ip.Basis(); err != nil {
		return
	}
	if b.Family.IsHermite() {
		if x, err = ip.PointSet(); err != nil {
			return
		}
		return e.EvaluateHermite(b.Family, ip.MaxDegree, x, ip.DerivativeOrder)
	}
	if req, err = ip.Request(); err != nil {
		return
	}
	return e.Evaluate(req)
}

// Evaluator returns an evaluator configured from the parameters.
func (ip *EvalParameters) Evaluator(opts ...spectral.Option) *spectral.Evaluator {
	opts = append(opts, spectral.WithParallelDegree(ip.ParallelDegree))
	if ip.StrictDomain {
		opts = append(opts, spectral.WithStrictDomain())
	}
	return spectral.NewEvaluator(opts...)
}
