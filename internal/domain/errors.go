package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies calculation failures
type ErrorKind string

const (
	MissingYearData            ErrorKind = "missing_year_data"
	MissingIndexOverride       ErrorKind = "missing_index_override"
	InvalidIndex               ErrorKind = "invalid_index"
	InvalidMonths              ErrorKind = "invalid_months"
	InvalidWage                ErrorKind = "invalid_wage"
	InvalidCompensation        ErrorKind = "invalid_compensation"
	InternalInvariantViolation ErrorKind = "internal_invariant_violation"
)

// CalculationError is returned by the engine for any rejected input or
// broken invariant. Year is zero when the failure is not tied to one year.
type CalculationError struct {
	Kind   ErrorKind
	Year   int
	Reason string
}

func (e *CalculationError) Error() string {
	if e.Year != 0 {
		return fmt.Sprintf("%s: year %d: %s", e.Kind, e.Year, e.Reason)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Reason)
}

// NewCalculationError builds a CalculationError with a formatted reason
func NewCalculationError(kind ErrorKind, year int, format string, args ...any) *CalculationError {
	return &CalculationError{Kind: kind, Year: year, Reason: fmt.Sprintf(format, args...)}
}

// IsKind reports whether err wraps a CalculationError of the given kind
func IsKind(err error, kind ErrorKind) bool {
	var ce *CalculationError
	if errors.As(err, &ce) {
		return ce.Kind == kind
	}
	return false
}
