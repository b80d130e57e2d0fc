package terms

import (
	"bytes"
	"log/slog"
	"net/http"
	"strconv"

	"calphad-sn/internal/domain/entity"
	"calphad-sn/internal/handler/http/respond"
	"calphad-sn/internal/infra/chart"
	termsUC "calphad-sn/internal/usecase/terms"
)

type ChartHandler struct{ Svc *termsUC.Service }

// ServeHTTP renders the term table as a line chart.
// @Summary      Term chart
// @Description  One line with markers per term plus the total over the requested range.
// @Tags         terms
// @Produce      png
// @Produce      image/svg+xml
// @Param        start   query    number  false  "first temperature in K" default(298)
// @Param        end     query    number  false  "last temperature in K (inclusive)" default(495)
// @Param        step    query    number  false  "temperature step in K" default(30)
// @Param        format  query    string  false  "image format" Enums(png, svg) default(png)
// @Success      200 {file} binary "rendered chart"
// @Failure      400 {object} map[string]string "invalid range, format or too many rows"
// @Failure      422 {object} map[string]string "range holds a single temperature or values overflow"
// @Failure      500 {object} map[string]string "internal server error"
// @Router       /terms/chart [get]
func (h ChartHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	format, err := chart.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		respond.FromError(w, &entity.ValidationError{Field: "format", Message: "must be png or svg"})
		return
	}
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

	var buf bytes.Buffer
	if err := h.Svc.RenderChart(r.Context(), &buf, format, table); err != nil {
		respond.FromError(w, mapError(err))
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Default().Warn("terms chart: failed to write response", slog.Any("error", err))
	}
}
