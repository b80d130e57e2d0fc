package config

// CSPConfig toggles the Content-Security-Policy headers.
type CSPConfig struct {
	Enabled    bool
	ReportOnly bool
}

// LoadCSPConfig loads Content Security Policy configuration from environment variables.
//
// Environment variables:
//   - CSP_ENABLED: Enable/disable CSP headers (default: true)
//   - CSP_REPORT_ONLY: Use report-only mode (default: false)
func LoadCSPConfig() CSPConfig {
	return CSPConfig{
		Enabled:    GetEnvBool("CSP_ENABLED", true),
		ReportOnly: GetEnvBool("CSP_REPORT_ONLY", false),
	}
}
