package respond

import (
	"context"
	"errors"
	"net/http"

	"calphad-sn/internal/domain/entity"
)

// StatusFor maps an error to the HTTP status code reported to the client.
//
//   - request body over the size limit: 413
//   - schema errors, unparseable or non-finite input, bad ranges, bad query
//     parameters: 400
//   - well-formed input the model cannot fit (empty or degenerate): 422
//   - cancelled or timed-out requests: 503
//   - anything else: 500
func StatusFor(err error) int {
	var mbe *http.MaxBytesError
	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &mbe):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, entity.ErrSchema),
		errors.Is(err, entity.ErrInvalidInput),
		errors.Is(err, entity.ErrInvalidRange),
		errors.Is(err, entity.ErrValidationFailed):
		return http.StatusBadRequest
	case errors.Is(err, entity.ErrInsufficientData),
		errors.Is(err, entity.ErrDegenerate):
		return http.StatusUnprocessableEntity
	case errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
