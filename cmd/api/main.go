package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpSwagger "github.com/swaggo/http-swagger/v2"
	"golang.org/x/sync/errgroup"

	"calphad-sn/internal/config"
	"calphad-sn/internal/domain/gibbs"
	"calphad-sn/internal/observability/logging"
	"calphad-sn/internal/observability/tracing"
	pkgconfig "calphad-sn/pkg/config"

	fitUC "calphad-sn/internal/usecase/fit"
	termsUC "calphad-sn/internal/usecase/terms"

	hhttp "calphad-sn/internal/handler/http"
	hfit "calphad-sn/internal/handler/http/fit"
	"calphad-sn/internal/handler/http/middleware"
	"calphad-sn/internal/handler/http/requestid"
	hterms "calphad-sn/internal/handler/http/terms"

	_ "calphad-sn/docs" // swagger docs
)

// @title           BCT Sn Gibbs Energy API
// @version         1.0
// @description     Fits the temperature coefficient of the BCT Sn total energy model
// @description     and tabulates the Gibbs free energy terms.

// @contact.name   API Support

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /

func main() {
	logger := initLogger()

	cfg, err := config.LoadServerConfig()
	if err != nil {
		logger.Error("failed to load server configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger = logging.NewJSONLogger(os.Stdout, logging.ParseLevel(cfg.LogLevel))
	slog.SetDefault(logger)

	corsConfig, err := pkgconfig.LoadCORSConfig()
	if err != nil {
		logger.Error("failed to load CORS configuration", slog.Any("error", err))
		os.Exit(1)
	}

	components, err := setupServer(logger, cfg, corsConfig)
	if err != nil {
		logger.Error("failed to set up server", slog.Any("error", err))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := runServer(ctx, logger, cfg, components); err != nil {
		logger.Error("server failed", slog.Any("error", err))
		os.Exit(1)
	}
}

// initLogger installs the JSON logger used until the configuration is loaded.
func initLogger() *slog.Logger {
	logger := logging.NewLogger()
	slog.SetDefault(logger)
	return logger
}

// ServerComponents holds components needed for server operation and cleanup.
type ServerComponents struct {
	Handler     http.Handler
	Ready       *hhttp.ReadyHandler
	RateLimiter *middleware.RateLimiter // nil when rate limiting is disabled
}

// setupServer wires the use cases, routes and middleware.
func setupServer(logger *slog.Logger, cfg *config.ServerConfig, corsConfig pkgconfig.CORSConfig) (*ServerComponents, error) {
	model := gibbs.Model{Constant: cfg.Coefficients.Constant}
	fitSvc := &fitUC.Service{Model: &model, Logger: logger}
	termsSvc := termsUC.NewService(cfg.Coefficients, cfg.MaxTermRows, logger)

	var limiter *middleware.RateLimiter
	if cfg.RateLimit.Enabled {
		extractor, err := middleware.NewIPExtractor(cfg.RateLimit.TrustProxy, cfg.RateLimit.TrustedProxies, logger)
		if err != nil {
			return nil, err
		}
		limiter = middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst,
			middleware.WithIPExtractor(extractor),
			middleware.WithIdleTTL(cfg.RateLimit.IdleTTL),
			middleware.WithLogger(logger))
		logger.Info("rate limiting initialized",
			slog.Float64("rps", cfg.RateLimit.RPS),
			slog.Int("burst", cfg.RateLimit.Burst),
			slog.Bool("trust_proxy", cfg.RateLimit.TrustProxy),
			slog.Duration("idle_ttl", cfg.RateLimit.IdleTTL))
	} else {
		logger.Warn("rate limiting is DISABLED - not recommended for production")
	}

	health := &hhttp.HealthHandler{Coefficients: cfg.Coefficients, Version: cfg.Version}
	if limiter != nil {
		health.RateLimiter = limiter
	}
	ready := &hhttp.ReadyHandler{Health: health}

	mux := setupRoutes(health, ready, fitSvc, termsSvc, cfg.MaxUploadBytes)

	if corsConfig.Enabled() {
		logger.Info("CORS enabled",
			slog.Any("allowed_origins", corsConfig.AllowedOrigins),
			slog.Any("allowed_methods", corsConfig.AllowedMethods),
			slog.Any("allowed_headers", corsConfig.AllowedHeaders),
			slog.Int("max_age", corsConfig.MaxAge))
	}

	return &ServerComponents{
		Handler:     applyMiddleware(logger, cfg, corsConfig, mux, limiter),
		Ready:       ready,
		RateLimiter: limiter,
	}, nil
}

// setupRoutes registers the API, probe, metrics and documentation routes.
func setupRoutes(
	health *hhttp.HealthHandler,
	ready *hhttp.ReadyHandler,
	fitSvc *fitUC.Service,
	termsSvc *termsUC.Service,
	maxUploadBytes int64,
) *http.ServeMux {
	mux := http.NewServeMux()

	mux.Handle("GET    /health", health)
	mux.Handle("GET    /ready", ready)
	mux.Handle("GET    /live", &hhttp.LiveHandler{})
	mux.Handle("GET    /metrics", hhttp.MetricsHandler())
	mux.Handle("GET    /swagger/", httpSwagger.WrapHandler)

	hfit.Register(mux, fitSvc, maxUploadBytes)
	hterms.Register(mux, termsSvc)
	return mux
}

// applyMiddleware wraps the handler with the middleware chain, outermost first:
// Request ID → Tracing → Logging → Recovery → Metrics → CORS → CSP →
// Rate Limit → Body Limit → Timeout.
func applyMiddleware(
	logger *slog.Logger,
	cfg *config.ServerConfig,
	corsConfig pkgconfig.CORSConfig,
	handler http.Handler,
	limiter *middleware.RateLimiter,
) http.Handler {
	mws := []hhttp.Middleware{
		requestid.Middleware,
		tracing.Middleware,
		hhttp.Logging(logger),
		hhttp.Recover(logger),
		hhttp.MetricsMiddleware,
		middleware.CORS(corsConfig, logger),
	}
	if cfg.CSP.Enabled {
		mws = append(mws, middleware.CSP(middleware.DefaultCSPConfig(cfg.CSP.ReportOnly), logger))
		logger.Info("CSP enabled", slog.Bool("report_only", cfg.CSP.ReportOnly))
	} else {
		logger.Warn("CSP is disabled")
	}
	if limiter != nil {
		mws = append(mws, limiter.Middleware)
	}
	mws = append(mws,
		hhttp.LimitRequestBody(cfg.MaxUploadBytes),
		hhttp.Timeout(cfg.RequestTimeout, logger),
	)
	return hhttp.Chain(handler, mws...)
}

// runServer serves until ctx is cancelled, then drains and shuts down.
func runServer(ctx context.Context, logger *slog.Logger, cfg *config.ServerConfig, components *ServerComponents) error {
	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           components.Handler,
		ReadHeaderTimeout: 10 * time.Second, // Prevent Slowloris attacks
		BaseContext: func(_ net.Listener) context.Context {
			return context.WithoutCancel(ctx)
		},
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("server starting",
			slog.String("addr", cfg.Addr),
			slog.String("version", cfg.Version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	if components.RateLimiter != nil {
		g.Go(func() error {
			return hhttp.RunRateLimitCleanup(gctx, components.RateLimiter, cfg.RateLimit.CleanupInterval, logger)
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server...")
		components.Ready.SetDraining()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("server shutdown failed", slog.Any("error", err))
			return err
		}
		logger.Info("server stopped")
		return nil
	})

	return g.Wait()
}
