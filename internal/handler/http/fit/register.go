// Package fit exposes the model-fitting use case over HTTP.
package fit

import (
	"net/http"

	fitUC "calphad-sn/internal/usecase/fit"
)

// Register registers the fit endpoints with the given mux.
// maxUploadBytes bounds the observation upload of every request.
func Register(mux *http.ServeMux, svc *fitUC.Service, maxUploadBytes int64) {
	mux.Handle("POST   /fit", FitHandler{Svc: svc, MaxUploadBytes: maxUploadBytes})
	mux.Handle("POST   /fit/chart", ChartHandler{Svc: svc, MaxUploadBytes: maxUploadBytes})
}
