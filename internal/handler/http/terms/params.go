package terms

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"calphad-sn/internal/domain/entity"
	"calphad-sn/internal/handler/http/respond"
	"calphad-sn/internal/infra/chart"
	termsUC "calphad-sn/internal/usecase/terms"
)

// parseRange reads start, end and step from the query. Absent parameters
// fall back to termsUC.DefaultRange.
func parseRange(r *http.Request) (termsUC.RangeInput, error) {
	in := termsUC.DefaultRange()
	q := r.URL.Query()
	for _, p := range []struct {
		name string
		dst  *float64
	}{{"start", &in.Start}, {"end", &in.End}, {"step", &in.Step}} {
		raw := strings.TrimSpace(q.Get(p.name))
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return termsUC.RangeInput{}, &entity.ValidationError{
				Field:   p.name,
				Message: fmt.Sprintf("%q is not a number", raw),
			}
		}
		*p.dst = v
	}
	return in, nil
}

// mapError attaches client-facing status codes to errors that StatusFor
// does not know about.
func mapError(err error) error {
	switch {
	case errors.Is(err, termsUC.ErrTooManyRows):
		return respond.NewAppError(http.StatusBadRequest, err.Error(), err)
	case errors.Is(err, termsUC.ErrNotFinite):
		return respond.NewAppError(http.StatusUnprocessableEntity, err.Error(), err)
	case errors.Is(err, chart.ErrNotEnoughPoints):
		return respond.NewAppError(http.StatusUnprocessableEntity,
			"at least two distinct temperatures are needed to draw the terms", err)
	default:
		return err
	}
}
