package spectral

import (
	"fmt"
	"strings"
)

// Family tags the classical orthogonal families. All but the two Hermite
// families are special cases of the Jacobi family.
type Family uint8

const (
	// Jacobi : general (α, β)
	Jacobi Family = iota
	// Legendre : (0, 0)
	Legendre
	// ChebyshevT : first kind, (-1/2, -1/2)
	ChebyshevT
	// ChebyshevU : second kind, (1/2, 1/2)
	ChebyshevU
	// Gegenbauer : ultraspherical with parameter λ > -1/2, (λ-1/2, λ-1/2)
	Gegenbauer
	// Hermite : polynomials on the real line, weight e^{-x²}
	Hermite
	// HermiteFunction : e^{-x²/2} times Hermite, unit weight
	HermiteFunction
)

var familyNames = map[Family]string{
	Jacobi:          "Jacobi",
	Legendre:        "Legendre",
	ChebyshevT:      "ChebyshevT",
	ChebyshevU:      "ChebyshevU",
	Gegenbauer:      "Gegenbauer",
	Hermite:         "Hermite",
	HermiteFunction: "HermiteFunction",
}

func (f Family) String() string {
	if name, ok := familyNames[f]; ok {
		return name
	}
	return fmt.Sprintf("Family(%d)", uint8(f))
}

func (f Family) IsHermite() bool {
	return f == Hermite || f == HermiteFunction
}

// NewFamily parses a family name, case insensitive. An empty name is Jacobi.
func NewFamily(name string) (f Family, err error) {
	label := strings.ToLower(strings.TrimSpace(name))
	switch label {
	case "", "jacobi":
		f = Jacobi
	case "legendre":
		f = Legendre
	case "chebyshev", "chebyshevt", "chebyshev1":
		f = ChebyshevT
	case "chebyshevu", "chebyshev2":
		f = ChebyshevU
	case "gegenbauer", "ultraspherical":
		f = Gegenbauer
	case "hermite", "hermitep":
		f = Hermite
	case "hermitefunction", "hermitef":
		f = HermiteFunction
	default:
		err = fmt.Errorf("unknown polynomial family %q: %w", name, ErrInvalidParameter)
	}
	return
}

// Basis is a family together with the parameters it needs: Alpha and Beta
// for Jacobi, Lambda for Gegenbauer. The other families ignore them.
type Basis struct {
	Family
	Alpha, Beta float64
	Lambda      float64
}

// Parameters maps the basis onto the Jacobi weight it is orthonormal under.
// The Hermite families have none.
func (b Basis) Parameters() (jp JacobiParameters, err error) {
	switch b.Family {
	case Hermite, HermiteFunction:
		err = fmt.Errorf("%v has no Jacobi parameters: %w", b.Family, ErrInvalidParameter)
		return
	case Jacobi:
		jp = JacobiParameters{Alpha: b.Alpha, Beta: b.Beta}
	case Legendre:
		jp = JacobiParameters{}
	case ChebyshevT:
		jp = JacobiParameters{Alpha: -0.5, Beta: -0.5}
	case ChebyshevU:
		jp = JacobiParameters{Alpha: 0.5, Beta: 0.5}
	case Gegenbauer:
		if !(b.Lambda > -0.5) {
			err = fmt.Errorf("gegenbauer lambda = %v, must be > -1/2: %w", b.Lambda, ErrInvalidParameter)
			return
		}
		jp = JacobiParameters{Alpha: b.Lambda - 0.5, Beta: b.Lambda - 0.5}
	default:
		err = fmt.Errorf("%v: %w", b.Family, ErrInvalidParameter)
		return
	}
	err = jp.Validate()
	return
}

func (b Basis) String() string {
	switch b.Family {
	case Jacobi:
		return fmt.Sprintf("Jacobi(α=%g, β=%g)", b.Alpha, b.Beta)
	case Gegenbauer:
		return fmt.Sprintf("Gegenbauer(λ=%g)", b.Lambda)
	}
	return b.Family.String()
}

// EvaluateBasis evaluates the orthonormal polynomials of basis b through the
// shared Jacobi evaluation, or the Hermite one.
func (e *Evaluator) EvaluateBasis(b Basis, N int, points []float64, derivativeOrder int) (*EvaluationResult, error) {
	if b.Family.IsHermite() {
		return e.EvaluateHermite(b.Family, N, points, derivativeOrder)
	}
	jp, err := b.Parameters()
	if err != nil {
		return nil, err
	}
	req, err := NewEvaluationRequest(jp.Alpha, jp.Beta, N, points, derivativeOrder)
	if err != nil {
		return nil, err
	}
	return e.Evaluate(req)
}

func EvaluateBasis(b Basis, N int, points []float64, derivativeOrder int) (*EvaluationResult, error) {
	var e Evaluator
	return e.EvaluateBasis(b, N, points, derivativeOrder)
}
