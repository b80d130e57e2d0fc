package fit

import (
	"net/http"

	"calphad-sn/internal/handler/http/respond"
	fitUC "calphad-sn/internal/usecase/fit"
)

type FitHandler struct {
	Svc            *fitUC.Service
	MaxUploadBytes int64
}

// ServeHTTP fits alpha to an uploaded observation set.
// @Summary      Fit alpha
// @Description  Fits alpha in E(T) = constant + alpha·T·ln(T) to the uploaded observations by least squares.
// @Description  The CSV must contain the columns Temperature(K) and TotalEnergy.
// @Tags         fit
// @Accept       text/csv
// @Accept       multipart/form-data
// @Produce      json
// @Param        file      formData  file    false  "observation CSV (multipart uploads)"
// @Param        constant  query     number  false  "override of the model constant"
// @Success      200 {object} DTO "fit result"
// @Failure      400 {object} map[string]string "schema or input error"
// @Failure      413 {object} map[string]string "upload too large"
// @Failure      415 {object} map[string]string "unsupported content type"
// @Failure      422 {object} map[string]string "empty or degenerate observation set"
// @Failure      429 {object} map[string]string "rate limit exceeded"
// @Failure      500 {object} map[string]string "internal server error"
// @Router       /fit [post]
func (h FitHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
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
	respond.JSON(w, http.StatusOK, NewDTO(res))
}
