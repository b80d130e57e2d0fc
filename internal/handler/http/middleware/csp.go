package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"calphad-sn/pkg/security/csp"
)

// CSPConfig selects a Content-Security-Policy per request path.
type CSPConfig struct {
	// DefaultPolicy applies when no prefix in PathPolicies matches.
	DefaultPolicy *csp.Policy
	// PathPolicies maps path prefixes to policies. The longest matching
	// prefix wins.
	PathPolicies map[string]*csp.Policy
	// ReportOnly sends Content-Security-Policy-Report-Only instead.
	ReportOnly bool
}

// DefaultCSPConfig uses the chart policy on the chart endpoints, the
// Swagger UI policy under /swagger/ and the API policy everywhere else.
func DefaultCSPConfig(reportOnly bool) CSPConfig {
	return CSPConfig{
		DefaultPolicy: csp.APIPolicy(),
		PathPolicies: map[string]*csp.Policy{
			"/fit/chart":   csp.ChartPolicy(),
			"/terms/chart": csp.ChartPolicy(),
			"/swagger/":    csp.SwaggerUIPolicy(),
		},
		ReportOnly: reportOnly,
	}
}

// CSP sets the Content-Security-Policy header and X-Content-Type-Options on
// every response. Policies are rendered once, when the middleware is built.
func CSP(cfg CSPConfig, logger *slog.Logger) func(http.Handler) http.Handler {
	header := csp.HeaderName(cfg.ReportOnly)
	def := cfg.DefaultPolicy.String()
	byPrefix := make(map[string]string, len(cfg.PathPolicies))
	for prefix, p := range cfg.PathPolicies {
		byPrefix[prefix] = p.String()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			if value := selectPolicy(byPrefix, def, r.URL.Path); value != "" {
				w.Header().Set(header, value)
				logger.Debug("CSP header applied",
					slog.String("path", r.URL.Path),
					slog.String("header", header))
			}
			next.ServeHTTP(w, r)
		})
	}
}

func selectPolicy(byPrefix map[string]string, def, path string) string {
	longest := ""
	value := def
	for prefix, v := range byPrefix {
		if strings.HasPrefix(path, prefix) && len(prefix) > len(longest) {
			longest = prefix
			value = v
		}
	}
	return value
}
