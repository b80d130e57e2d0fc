// Package fit provides the model-fitting use case: it reads an observation
// set, fits alpha in E(T) = constant + alpha·T·ln(T) and renders the result.
package fit

import "errors"

// Sentinel errors for fit use case operations.
var (
	// ErrInvalidConstant indicates a non-finite constant override.
	ErrInvalidConstant = errors.New("constant must be a finite number")
)
