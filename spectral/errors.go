package spectral

import "errors"

// Sentinel errors. Callers match them with errors.Is; the evaluator wraps
// them with the offending value.
var (
	// ErrInvalidParameter is returned when α or β is not a finite number > -1,
	// or a family is used where it does not apply.
	ErrInvalidParameter = errors.New("spectral: invalid family parameter")

	// ErrInvalidInput covers a malformed degree, point set or derivative order.
	ErrInvalidInput = errors.New("spectral: invalid input")

	// ErrNumericOverflow signals that a recurrence coefficient or a table
	// entry left the representable range.
	ErrNumericOverflow = errors.New("spectral: numeric overflow")
)
