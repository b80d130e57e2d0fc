// Package terms exposes the Gibbs term decomposition over HTTP.
package terms

import (
	"net/http"

	termsUC "calphad-sn/internal/usecase/terms"
)

// Register registers the term table endpoints with the given mux.
func Register(mux *http.ServeMux, svc *termsUC.Service) {
	mux.Handle("GET    /terms", ListHandler{svc})
	mux.Handle("GET    /terms/csv", CSVHandler{svc})
	mux.Handle("GET    /terms/chart", ChartHandler{svc})
}
