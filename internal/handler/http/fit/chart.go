package fit

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"calphad-sn/internal/domain/entity"
	"calphad-sn/internal/handler/http/respond"
	"calphad-sn/internal/infra/chart"
	fitUC "calphad-sn/internal/usecase/fit"
)

type ChartHandler struct {
	Svc            *fitUC.Service
	MaxUploadBytes int64
}

// ServeHTTP fits the upload and returns the data-and-fit chart.
// @Summary      Fit chart
// @Description  Same input as POST /fit. Returns the observations as points and the fitted curve as a dashed line.
// @Tags         fit
// @Accept       text/csv
// @Accept       multipart/form-data
// @Produce      png
// @Produce      image/svg+xml
// @Param        file      formData  file    false  "observation CSV (multipart uploads)"
// @Param        constant  query     number  false  "override of the model constant"
// @Param        format    query     string  false  "image format" Enums(png, svg) default(png)
// @Success      200 {file} binary "rendered chart"
// @Failure      400 {object} map[string]string "schema, input or format error"
// @Failure      413 {object} map[string]string "upload too large"
// @Failure      422 {object} map[string]string "not enough data to fit or plot"
// @Failure      500 {object} map[string]string "internal server error"
// @Router       /fit/chart [post]
func (h ChartHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	format, err := chart.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		respond.FromError(w, &entity.ValidationError{Field: "format", Message: "must be png or svg"})
		return
	}
	constant, err := parseConstant(r)
	if err != nil {
		respond.FromError(w, err)
		return
	}
	body, err := readUpload(w, r, h.MaxUploadBytes)
	if err != nil {
		respond.FromError(w, err)
		return
	}

	res, err := h.Svc.FitCSV(r.Context(), body, constant)
	if err != nil {
		respond.FromError(w, err)
		return
	}

	var buf bytes.Buffer
	if err := h.Svc.RenderChart(r.Context(), &buf, format, res); err != nil {
		if errors.Is(err, chart.ErrNotEnoughPoints) {
			err = respond.NewAppError(http.StatusUnprocessableEntity,
				"at least two distinct temperatures are needed to draw the fit", err)
		}
		respond.FromError(w, err)
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Default().Warn("fit chart: failed to write response", slog.Any("error", err))
	}
}
