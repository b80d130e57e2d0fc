package http

import (
	"context"
	"log/slog"
	"time"
)

// IdleCleaner evicts idle per-client state and reports how many entries it removed.
type IdleCleaner interface {
	CleanupIdle() int
	Clients() int
}

// RunRateLimitCleanup periodically evicts idle clients from the rate limiter
// until ctx is cancelled. It blocks, so run it in its own goroutine or errgroup.
//
// Parameters:
//   - ctx: Context for cancellation (typically the server's context)
//   - limiter: The rate limiter to clean up
//   - interval: How often to run cleanup (e.g., 1 minute)
//   - logger: Logger for cleanup statistics
func RunRateLimitCleanup(ctx context.Context, limiter IdleCleaner, interval time.Duration, logger *slog.Logger) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	logger.Info("rate limit cleanup started", slog.Duration("interval", interval))

	for {
		select {
		case <-ctx.Done():
			logger.Info("rate limit cleanup stopped")
			return nil

		case <-ticker.C:
			evicted := limiter.CleanupIdle()
			logger.Debug("rate limit cleanup completed",
				slog.Int("evicted", evicted),
				slog.Int("active_clients", limiter.Clients()))
		}
	}
}
