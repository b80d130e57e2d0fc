package terms

import (
	"net/http"

	"calphad-sn/internal/handler/http/respond"
	termsUC "calphad-sn/internal/usecase/terms"
)

type ListHandler struct{ Svc *termsUC.Service }

// ServeHTTP returns the term decomposition over a temperature range.
// @Summary      Term table
// @Description  Evaluates the six Gibbs energy terms and their total for every temperature start + i·step up to end.
// @Tags         terms
// @Produce      json
// @Param        start  query    number  false  "first temperature in K" default(298)
// @Param        end    query    number  false  "last temperature in K (inclusive)" default(495)
// @Param        step   query    number  false  "temperature step in K" default(30)
// @Success      200 {object} TableDTO "term table"
// @Failure      400 {object} map[string]string "invalid range or too many rows"
// @Failure      422 {object} map[string]string "values overflow"
// @Failure      429 {object} map[string]string "rate limit exceeded"
// @Failure      500 {object} map[string]string "internal server error"
// @Router       /terms [get]
func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	in, err := parseRange(r)
	if err != nil {
		respond.FromError(w, err)
		return
	}

	table, err := h.Svc.Table(r.Context(), in)
	if err != nil {
		respond.FromError(w, mapError(err))
		return
	}

	respond.JSON(w, http.StatusOK, NewTableDTO(in, table))
}
