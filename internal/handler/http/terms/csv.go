package terms

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"calphad-sn/internal/handler/http/respond"
	"calphad-sn/internal/infra/csvio"
	termsUC "calphad-sn/internal/usecase/terms"
)

type CSVHandler struct{ Svc *termsUC.Service }

// ServeHTTP downloads the term table as CSV.
// @Summary      Term table CSV
// @Description  Same rows as GET /terms as a CSV attachment with shortest round-trip float formatting.
// @Tags         terms
// @Produce      text/csv
// @Param        start  query    number  false  "first temperature in K" default(298)
// @Param        end    query    number  false  "last temperature in K (inclusive)" default(495)
// @Param        step   query    number  false  "temperature step in K" default(30)
// @Success      200 {file} binary "gibbs_terms_sn_BCT.csv"
// @Failure      400 {object} map[string]string "invalid range or too many rows"
// @Failure      422 {object} map[string]string "values overflow"
// @Failure      500 {object} map[string]string "internal server error"
// @Router       /terms/csv [get]
func (h CSVHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	in, err := parseRange(r)
	if err != nil {
		respond.FromError(w, err)
		return
	}

	var buf bytes.Buffer
	if err := h.Svc.WriteCSV(r.Context(), &buf, in); err != nil {
		respond.FromError(w, mapError(err))
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", csvio.TermTableFilename))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Default().Warn("terms csv: failed to write response", slog.Any("error", err))
	}
}
