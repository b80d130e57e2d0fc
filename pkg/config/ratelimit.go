package config

import (
	"fmt"
	"log/slog"
	"time"
)

// RateLimitConfig configures the per-client token bucket in front of the API.
type RateLimitConfig struct {
	Enabled bool
	// RPS is the sustained request rate per client.
	RPS float64
	// Burst is the bucket size per client.
	Burst int
	// IdleTTL evicts buckets of clients not seen for this long.
	IdleTTL time.Duration
	// CleanupInterval is how often idle buckets are evicted.
	CleanupInterval time.Duration
	// TrustProxy enables X-Forwarded-For / X-Real-IP from TrustedProxies.
	TrustProxy     bool
	TrustedProxies []string
}

// DefaultRateLimitConfig returns the configuration used when nothing is set.
func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		Enabled:         true,
		RPS:             10,
		Burst:           20,
		IdleTTL:         10 * time.Minute,
		CleanupInterval: time.Minute,
	}
}

// Validate checks that the limits are usable when rate limiting is enabled.
func (c RateLimitConfig) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.RPS <= 0 {
		return fmt.Errorf("rate limit rps must be positive, got %v", c.RPS)
	}
	if c.Burst < 1 {
		return fmt.Errorf("rate limit burst must be at least 1, got %d", c.Burst)
	}
	if err := ValidatePositiveDuration(c.IdleTTL); err != nil {
		return fmt.Errorf("idle ttl: %w", err)
	}
	if err := ValidatePositiveDuration(c.CleanupInterval); err != nil {
		return fmt.Errorf("cleanup interval: %w", err)
	}
	if c.TrustProxy && len(c.TrustedProxies) == 0 {
		return fmt.Errorf("RATE_LIMIT_TRUST_PROXY is enabled but RATE_LIMIT_TRUSTED_PROXIES is empty")
	}
	return nil
}

// LoadRateLimitConfig loads rate limiting configuration from environment variables.
//
// Environment variables:
//   - RATE_LIMIT_ENABLED: Enable/disable rate limiting (default: true)
//   - RATE_LIMIT_RPS: Sustained requests per second per client (default: 10)
//   - RATE_LIMIT_BURST: Bucket size per client (default: 20)
//   - RATE_LIMIT_IDLE_TTL: Evict clients idle for this long (default: 10m)
//   - RATE_LIMIT_CLEANUP_INTERVAL: Eviction interval (default: 1m)
//   - RATE_LIMIT_TRUST_PROXY: Honour forwarding headers from trusted proxies (default: false)
//   - RATE_LIMIT_TRUSTED_PROXIES: Comma-separated proxy IPs or CIDR ranges
//
// Out-of-range numbers are replaced by their defaults with a warning. A
// proxy trust setting without any proxy is an error, since silently
// ignoring it would rate-limit every client behind the proxy as one.
func LoadRateLimitConfig() (RateLimitConfig, error) {
	def := DefaultRateLimitConfig()
	cfg := RateLimitConfig{
		Enabled:         GetEnvBool("RATE_LIMIT_ENABLED", def.Enabled),
		RPS:             GetEnvFloat("RATE_LIMIT_RPS", def.RPS),
		Burst:           GetEnvInt("RATE_LIMIT_BURST", def.Burst),
		IdleTTL:         GetEnvDuration("RATE_LIMIT_IDLE_TTL", def.IdleTTL),
		CleanupInterval: GetEnvDuration("RATE_LIMIT_CLEANUP_INTERVAL", def.CleanupInterval),
		TrustProxy:      GetEnvBool("RATE_LIMIT_TRUST_PROXY", false),
		TrustedProxies:  GetEnvStringList("RATE_LIMIT_TRUSTED_PROXIES", nil),
	}

	if cfg.RPS <= 0 {
		slog.Warn("invalid RATE_LIMIT_RPS, using default",
			slog.Float64("value", cfg.RPS),
			slog.Float64("default", def.RPS))
		cfg.RPS = def.RPS
	}
	if cfg.Burst < 1 {
		slog.Warn("invalid RATE_LIMIT_BURST, using default",
			slog.Int("value", cfg.Burst),
			slog.Int("default", def.Burst))
		cfg.Burst = def.Burst
	}
	if err := ValidatePositiveDuration(cfg.IdleTTL); err != nil {
		slog.Warn("invalid RATE_LIMIT_IDLE_TTL, using default",
			slog.String("value", cfg.IdleTTL.String()),
			slog.String("default", def.IdleTTL.String()))
		cfg.IdleTTL = def.IdleTTL
	}
	if err := ValidatePositiveDuration(cfg.CleanupInterval); err != nil {
		slog.Warn("invalid RATE_LIMIT_CLEANUP_INTERVAL, using default",
			slog.String("value", cfg.CleanupInterval.String()),
			slog.String("default", def.CleanupInterval.String()))
		cfg.CleanupInterval = def.CleanupInterval
	}

	if err := cfg.Validate(); err != nil {
		return RateLimitConfig{}, err
	}
	return cfg, nil
}
