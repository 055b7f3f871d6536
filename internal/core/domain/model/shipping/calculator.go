package shipping

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
)

// ErrCalculator is the sentinel wrapped by CalculatorError. Callers classify
// calculator faults with errors.Is(err, ErrCalculator).
var ErrCalculator = errors.New("shipping calculator failed")

// CalculatorError reports an unexpected failure inside a pluggable cost
// calculator, such as malformed configuration. It is a fatal condition for
// the surrounding checkout transition, distinct from the ordinary "no rates
// available" business outcome.
type CalculatorError struct {
	MethodName string
	Cause      error
}

// NewCalculatorError creates a CalculatorError for the named shipping method.
func NewCalculatorError(methodName string, cause error) *CalculatorError {
	return &CalculatorError{MethodName: methodName, Cause: cause}
}

func (e *CalculatorError) Error() string {
	return fmt.Sprintf("%s: method %s (cause: %s)", ErrCalculator, e.MethodName, e.Cause)
}

func (e *CalculatorError) Unwrap() error {
	return ErrCalculator
}

// Calculator is the pluggable cost function of a shipping method.
//
// Compute returns the cost of carrying the package, or (nil, nil) when the
// calculator does not apply to the package at all (for example, an empty
// package). A non-nil error means the calculator itself is broken and the
// whole estimation must be surfaced to the operator.
//
// PreferredCurrency restricts the calculator to orders in one currency; an
// empty string means the calculator applies to any currency. Concrete
// calculators are plain strategy values selected via configuration data, not
// via a persisted type hierarchy.
type Calculator interface {
	// Name returns the calculator's configuration type name, e.g. "flat_rate".
	Name() string

	// PreferredCurrency returns the ISO 4217 code the calculator is
	// restricted to, or "" when it applies to any currency.
	PreferredCurrency() string

	// Compute returns the cost for the package, nil when not applicable, or
	// an error when the calculator is misconfigured.
	Compute(pkg Package) (*kernel.Money, error)
}
