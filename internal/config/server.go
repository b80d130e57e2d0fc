package config

import (
	"errors"
	"fmt"
	"time"

	"calphad-sn/internal/domain/gibbs"
	pkgconfig "calphad-sn/pkg/config"
)

// ServerConfig holds the settings of the HTTP API process.
type ServerConfig struct {
	// Addr is the listen address. Default: ":8080"
	Addr string
	// LogLevel is one of debug, info, warn, error. Default: "info"
	LogLevel string
	// Version is reported by the health endpoints. Default: "dev"
	Version string

	// MaxUploadBytes bounds an observation upload. Default: 1 MiB
	MaxUploadBytes int64
	// MaxTermRows bounds a term table. Default: 10000
	MaxTermRows int

	// RequestTimeout bounds a single request. Default: 30s
	RequestTimeout time.Duration
	// ShutdownTimeout is the grace period for in-flight requests. Default: 5s
	ShutdownTimeout time.Duration

	// CoefficientsFile optionally replaces the BCT Sn coefficients.
	CoefficientsFile string
	// Coefficients are loaded from CoefficientsFile (or the defaults).
	Coefficients gibbs.Coefficients

	RateLimit pkgconfig.RateLimitConfig
	CSP       pkgconfig.CSPConfig
}

// Defaults.
const (
	DefaultAddr            = ":8080"
	DefaultMaxUploadBytes  = 1 << 20
	DefaultMaxTermRows     = 10000
	DefaultRequestTimeout  = 30 * time.Second
	DefaultShutdownTimeout = 5 * time.Second
)

// LoadServerConfig reads the server configuration from the environment and
// loads the coefficient file if one is configured.
//
// Environment variables:
//   - HTTP_ADDR, LOG_LEVEL, VERSION
//   - MAX_UPLOAD_BYTES, MAX_TERM_ROWS
//   - REQUEST_TIMEOUT, SHUTDOWN_TIMEOUT
//   - COEFFICIENTS_FILE
//   - RATE_LIMIT_* (see pkg/config.LoadRateLimitConfig)
//   - CSP_ENABLED, CSP_REPORT_ONLY
func LoadServerConfig() (*ServerConfig, error) {
	cfg := &ServerConfig{
		Addr:             pkgconfig.GetEnvString("HTTP_ADDR", DefaultAddr),
		LogLevel:         pkgconfig.GetEnvString("LOG_LEVEL", "info"),
		Version:          pkgconfig.GetEnvString("VERSION", "dev"),
		MaxUploadBytes:   pkgconfig.GetEnvInt64("MAX_UPLOAD_BYTES", DefaultMaxUploadBytes),
		MaxTermRows:      pkgconfig.GetEnvInt("MAX_TERM_ROWS", DefaultMaxTermRows),
		RequestTimeout:   pkgconfig.GetEnvDuration("REQUEST_TIMEOUT", DefaultRequestTimeout),
		ShutdownTimeout:  pkgconfig.GetEnvDuration("SHUTDOWN_TIMEOUT", DefaultShutdownTimeout),
		CoefficientsFile: pkgconfig.GetEnvString("COEFFICIENTS_FILE", ""),
	}

	rl, err := pkgconfig.LoadRateLimitConfig()
	if err != nil {
		return nil, fmt.Errorf("rate limit config: %w", err)
	}
	cfg.RateLimit = rl
	cfg.CSP = pkgconfig.LoadCSPConfig()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	coeffs, err := LoadCoefficients(cfg.CoefficientsFile)
	if err != nil {
		return nil, err
	}
	cfg.Coefficients = coeffs
	return cfg, nil
}

// Validate checks the numeric limits.
func (c *ServerConfig) Validate() error {
	var errs []error
	if c.Addr == "" {
		errs = append(errs, errors.New("HTTP_ADDR must not be empty"))
	}
	if c.MaxUploadBytes <= 0 {
		errs = append(errs, fmt.Errorf("MAX_UPLOAD_BYTES must be positive, got %d", c.MaxUploadBytes))
	}
	if c.MaxTermRows <= 0 {
		errs = append(errs, fmt.Errorf("MAX_TERM_ROWS must be positive, got %d", c.MaxTermRows))
	}
	if err := pkgconfig.ValidateDurationRange(c.RequestTimeout, 100*time.Millisecond, 10*time.Minute); err != nil {
		errs = append(errs, fmt.Errorf("REQUEST_TIMEOUT: %w", err))
	}
	if err := pkgconfig.ValidateDurationRange(c.ShutdownTimeout, time.Second, 5*time.Minute); err != nil {
		errs = append(errs, fmt.Errorf("SHUTDOWN_TIMEOUT: %w", err))
	}
	return errors.Join(errs...)
}
