package entity

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for domain layer operations.
var (
	// ErrSchema indicates that a tabular input is missing required columns
	// or carries an unexpected header.
	ErrSchema = errors.New("schema error")

	// ErrInvalidInput indicates that the provided input is invalid
	// (non-finite values, unparseable cells, non-positive temperatures).
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidTemperature indicates a temperature outside the model domain (T <= 0).
	// Errors of this kind also match ErrInvalidInput.
	ErrInvalidTemperature = errors.New("invalid temperature")

	// ErrDegenerate indicates that the fit denominator is too close to zero
	// for a meaningful estimate.
	ErrDegenerate = errors.New("degenerate observation set")

	// ErrInsufficientData indicates that the observation set is empty.
	ErrInsufficientData = errors.New("insufficient data")

	// ErrInvalidRange indicates an unusable temperature range for decomposition.
	ErrInvalidRange = errors.New("invalid temperature range")

	// ErrValidationFailed indicates that validation checks have failed
	ErrValidationFailed = errors.New("validation failed")
)

// ValidationError represents a validation error with detailed field information.
// It implements the error interface and provides context about which field failed validation.
type ValidationError struct {
	Field   string
	Message string
}

// Error returns a formatted error message for the validation error.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// Is reports ErrValidationFailed so callers can branch without a type assertion.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidationFailed
}

// SchemaError reports the required columns absent from a tabular input.
type SchemaError struct {
	Missing []string
	Found   []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema error: csv must contain the following columns: [%s] (missing: %s)",
		strings.Join(RequiredColumns, ", "), strings.Join(e.Missing, ", "))
}

// Is matches ErrSchema.
func (e *SchemaError) Is(target error) bool {
	return target == ErrSchema
}

// FitErrorKind classifies why a fit request was rejected.
type FitErrorKind int

const (
	InsufficientData FitErrorKind = iota + 1
	InvalidInput
	InvalidTemperature
	Degenerate
)

func (k FitErrorKind) String() string {
	switch k {
	case InsufficientData:
		return "insufficient_data"
	case InvalidInput:
		return "invalid_input"
	case InvalidTemperature:
		return "invalid_temperature"
	case Degenerate:
		return "degenerate"
	default:
		return "unknown"
	}
}

// FitError is returned by the model fitter. Row is the zero-based index of the
// offending observation, or -1 when the error concerns the whole set.
type FitError struct {
	Kind    FitErrorKind
	Row     int
	Message string
}

func (e *FitError) Error() string {
	if e.Row >= 0 {
		return fmt.Sprintf("%s: observation %d: %s", e.sentinel(), e.Row, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.sentinel(), e.Message)
}

func (e *FitError) sentinel() error {
	switch e.Kind {
	case InsufficientData:
		return ErrInsufficientData
	case InvalidTemperature:
		return ErrInvalidTemperature
	case Degenerate:
		return ErrDegenerate
	default:
		return ErrInvalidInput
	}
}

// Is matches the sentinel of the error kind. InvalidTemperature additionally
// matches ErrInvalidInput.
func (e *FitError) Is(target error) bool {
	if target == e.sentinel() {
		return true
	}
	return e.Kind == InvalidTemperature && target == ErrInvalidInput
}
