package middleware

import (
	"log/slog"
	"net/http"
	"slices"
	"strconv"
	"strings"

	pkgconfig "calphad-sn/pkg/config"
)

// exposedHeaders are response headers a browser client may read.
var exposedHeaders = []string{"Content-Disposition", "Retry-After", "X-Request-ID", "X-Trace-Id"}

// CORS returns an HTTP middleware that handles CORS for cross-origin requests.
//
// Behavior:
//   - If CORS is disabled or the Origin header is empty, the request passes through
//   - If Origin is not allowed, it is logged at debug level and passed through
//     without CORS headers, so the browser blocks the response
//   - Preflight requests (OPTIONS with Access-Control-Request-Method) from an
//     allowed origin get 204 No Content and never reach the next handler
//   - Actual requests from an allowed origin get Access-Control-Allow-Origin
//     and Access-Control-Expose-Headers
func CORS(config pkgconfig.CORSConfig, logger *slog.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	allowAny := slices.Contains(config.AllowedOrigins, "*")
	methods := strings.Join(config.AllowedMethods, ", ")
	headers := strings.Join(config.AllowedHeaders, ", ")
	exposed := strings.Join(exposedHeaders, ", ")
	maxAge := strconv.Itoa(config.MaxAge)

	return func(next http.Handler) http.Handler {
		if !config.Enabled() {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin == "" {
				next.ServeHTTP(w, r)
				return
			}

			if !allowAny && !slices.Contains(config.AllowedOrigins, origin) {
				logger.Debug("CORS: origin not allowed",
					slog.String("origin", origin),
					slog.String("path", r.URL.Path),
					slog.String("method", r.Method),
				)
				next.ServeHTTP(w, r)
				return
			}

			h := w.Header()
			h.Add("Vary", "Origin")
			if allowAny {
				h.Set("Access-Control-Allow-Origin", "*")
			} else {
				h.Set("Access-Control-Allow-Origin", origin)
			}

			if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
				h.Set("Access-Control-Allow-Methods", methods)
				h.Set("Access-Control-Allow-Headers", headers)
				h.Set("Access-Control-Max-Age", maxAge)
				w.WriteHeader(http.StatusNoContent)
				return
			}

			h.Set("Access-Control-Expose-Headers", exposed)
			next.ServeHTTP(w, r)
		})
	}
}
