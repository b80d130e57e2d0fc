package config

import (
	"fmt"
	"net/url"
	"strings"
)

// CORSConfig configures cross-origin access to the API, so a browser front
// end on another origin can upload observations and fetch charts.
type CORSConfig struct {
	// AllowedOrigins is a whitelist of permitted origins. "*" allows any
	// origin. Empty disables CORS handling.
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
	// MaxAge is the preflight cache duration in seconds.
	MaxAge int
}

// Enabled reports whether any origin is allowed.
func (c CORSConfig) Enabled() bool {
	return len(c.AllowedOrigins) > 0
}

// DefaultCORSConfig returns the configuration used when nothing is set.
func DefaultCORSConfig() CORSConfig {
	return CORSConfig{
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "X-Request-ID"},
		MaxAge:         86400,
	}
}

// LoadCORSConfig loads CORS configuration from environment variables.
//
// Environment variables:
//   - CORS_ALLOWED_ORIGINS: Comma-separated origins, or "*" (default: none, CORS disabled)
//   - CORS_ALLOWED_METHODS: Comma-separated methods (default: GET,POST,OPTIONS)
//   - CORS_ALLOWED_HEADERS: Comma-separated request headers (default: Content-Type,X-Request-ID)
//   - CORS_MAX_AGE: Preflight cache duration in seconds (default: 86400)
//
// Example:
//
//	CORS_ALLOWED_ORIGINS=http://localhost:8501,https://gibbs.example.com
func LoadCORSConfig() (CORSConfig, error) {
	def := DefaultCORSConfig()
	cfg := CORSConfig{
		AllowedOrigins: GetEnvStringList("CORS_ALLOWED_ORIGINS", nil),
		AllowedMethods: GetEnvStringList("CORS_ALLOWED_METHODS", def.AllowedMethods),
		AllowedHeaders: GetEnvStringList("CORS_ALLOWED_HEADERS", def.AllowedHeaders),
		MaxAge:         GetEnvInt("CORS_MAX_AGE", def.MaxAge),
	}
	if cfg.MaxAge < 0 {
		cfg.MaxAge = def.MaxAge
	}

	for _, origin := range cfg.AllowedOrigins {
		if err := ValidateOrigin(origin); err != nil {
			return CORSConfig{}, fmt.Errorf("CORS_ALLOWED_ORIGINS: %w", err)
		}
	}
	return cfg, nil
}

// ValidateOrigin checks that origin is "*" or a bare http(s) scheme and host.
func ValidateOrigin(origin string) error {
	if origin == "*" {
		return nil
	}

	u, err := url.Parse(origin)
	if err != nil {
		return fmt.Errorf("invalid origin URL '%s': %w", origin, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("origin must use http or https scheme: %s", origin)
	}
	if u.Host == "" {
		return fmt.Errorf("origin must include a host: %s", origin)
	}
	if u.Path != "" || u.RawQuery != "" || u.Fragment != "" || strings.HasSuffix(origin, "/") {
		return fmt.Errorf("origin must not include path, query or fragment: %s", origin)
	}
	return nil
}
