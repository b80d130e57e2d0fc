// Package terms provides the term decomposition use case: it tabulates the
// six Gibbs polynomial terms and their total over a temperature range.
package terms

import "errors"

// Sentinel errors for terms use case operations.
var (
	// ErrTooManyRows indicates that a range would produce more rows than the
	// service is configured to return.
	ErrTooManyRows = errors.New("temperature range yields too many rows")

	// ErrNotFinite indicates that a term or the total overflows float64 at
	// some temperature of the range.
	ErrNotFinite = errors.New("term values are not finite")
)
