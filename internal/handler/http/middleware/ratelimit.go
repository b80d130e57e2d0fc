// Package middleware provides HTTP middleware for client rate limiting and CORS.
package middleware

import (
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"calphad-sn/internal/handler/http/pathutil"
	"calphad-sn/internal/handler/http/respond"
	"calphad-sn/internal/observability/metrics"
)

// RateLimiter is a per-client token bucket limiter for HTTP requests.
// Each client IP gets a bucket refilled at RPS tokens per second holding up
// to Burst tokens. Buckets of clients not seen for IdleTTL are evicted by
// CleanupIdle.
type RateLimiter struct {
	limit       rate.Limit
	burst       int
	idleTTL     time.Duration
	ipExtractor IPExtractor
	logger      *slog.Logger
	now         func() time.Time

	mu      sync.Mutex
	clients map[string]*clientBucket
}

type clientBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiterOption customises a RateLimiter.
type RateLimiterOption func(*RateLimiter)

// WithIPExtractor sets the client IP extraction strategy. Default: RemoteAddrExtractor.
func WithIPExtractor(e IPExtractor) RateLimiterOption {
	return func(rl *RateLimiter) { rl.ipExtractor = e }
}

// WithIdleTTL sets how long an idle client keeps its bucket. Default: 10 minutes.
func WithIdleTTL(d time.Duration) RateLimiterOption {
	return func(rl *RateLimiter) { rl.idleTTL = d }
}

// WithLogger sets the logger used for rejected requests.
func WithLogger(l *slog.Logger) RateLimiterOption {
	return func(rl *RateLimiter) { rl.logger = l }
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) RateLimiterOption {
	return func(rl *RateLimiter) { rl.now = now }
}

// NewRateLimiter creates a limiter allowing rps requests per second per client
// with bursts of up to burst requests.
//
// Example:
//
//	limiter := NewRateLimiter(10, 20, WithIdleTTL(10*time.Minute))
//	handler = limiter.Middleware(handler)
func NewRateLimiter(rps float64, burst int, opts ...RateLimiterOption) *RateLimiter {
	rl := &RateLimiter{
		limit:       rate.Limit(rps),
		burst:       burst,
		idleTTL:     10 * time.Minute,
		ipExtractor: &RemoteAddrExtractor{},
		logger:      slog.Default(),
		now:         time.Now,
		clients:     make(map[string]*clientBucket),
	}
	for _, opt := range opts {
		opt(rl)
	}
	return rl
}

// Middleware returns an HTTP middleware handler that enforces rate limiting.
//
// Behavior:
//   - Within the client's budget, the request proceeds to the next handler
//   - Over budget, returns 429 Too Many Requests with a Retry-After header
//   - If IP extraction fails, the request is rejected with 400 Bad Request
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, err := rl.ipExtractor.ExtractIP(r)
		if err != nil {
			rl.logger.Warn("rate limiter: client IP extraction failed",
				slog.String("error", err.Error()),
				slog.String("remote_addr", r.RemoteAddr),
			)
			respond.JSON(w, http.StatusBadRequest, map[string]string{"error": "cannot determine client address"})
			return
		}

		allowed, retryAfter := rl.allow(ip)
		if !allowed {
			route := pathutil.NormalizePath(r.URL.Path)
			metrics.RecordRateLimited(route)
			rl.logger.Warn("rate limit exceeded",
				slog.String("ip", ip),
				slog.String("path", route),
				slog.Float64("rps", float64(rl.limit)),
				slog.Int("burst", rl.burst),
				slog.Duration("retry_after", retryAfter),
			)
			w.Header().Set("Retry-After", strconv.Itoa(retryAfterSeconds(retryAfter)))
			respond.JSON(w, http.StatusTooManyRequests, map[string]string{"error": "rate limit exceeded"})
			return
		}

		next.ServeHTTP(w, r)
	})
}

// allow takes one token from the client's bucket. When the bucket is empty it
// reports how long until a token becomes available.
func (rl *RateLimiter) allow(key string) (bool, time.Duration) {
	now := rl.now()

	rl.mu.Lock()
	bucket, ok := rl.clients[key]
	if !ok {
		bucket = &clientBucket{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.clients[key] = bucket
	}
	bucket.lastSeen = now
	rl.mu.Unlock()

	res := bucket.limiter.ReserveN(now, 1)
	if !res.OK() {
		return false, time.Second
	}
	if delay := res.DelayFrom(now); delay > 0 {
		res.CancelAt(now)
		return false, delay
	}
	return true, 0
}

// CleanupIdle evicts the buckets of clients idle for longer than the idle TTL
// and returns the number evicted.
func (rl *RateLimiter) CleanupIdle() int {
	cutoff := rl.now().Add(-rl.idleTTL)

	rl.mu.Lock()
	defer rl.mu.Unlock()

	evicted := 0
	for key, bucket := range rl.clients {
		if bucket.lastSeen.Before(cutoff) {
			delete(rl.clients, key)
			evicted++
		}
	}
	metrics.SetRateLimitClients(len(rl.clients))
	return evicted
}

// Clients returns the number of clients currently holding a bucket.
func (rl *RateLimiter) Clients() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.clients)
}

func retryAfterSeconds(d time.Duration) int {
	s := int(math.Ceil(d.Seconds()))
	if s < 1 {
		return 1
	}
	return s
}
