// Package metrics provides centralized Prometheus metrics for the application.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Status label values shared by the domain counters.
const (
	StatusSuccess  = "success"
	StatusRejected = "rejected"
	StatusFailure  = "failure"
)

// Fit metrics track model fitting requests
var (
	// FitsTotal counts fit attempts by outcome
	FitsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gibbs_fits_total",
			Help: "Total number of model fits",
		},
		[]string{"status"}, // status: success|rejected|failure
	)

	// FitDuration measures the time spent fitting one observation set
	FitDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "gibbs_fit_duration_seconds",
			Help:    "Time taken to fit alpha to an observation set",
			Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10),
		},
	)

	// FitObservations measures the size of fitted observation sets
	FitObservations = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "gibbs_fit_observations",
			Help:    "Number of observations per fit",
			Buckets: prometheus.ExponentialBuckets(1, 4, 10),
		},
	)
)

// Term metrics track decomposition tables
var (
	// TermTablesTotal counts term table requests by outcome
	TermTablesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gibbs_term_tables_total",
			Help: "Total number of term tables computed",
		},
		[]string{"status"},
	)

	// TermRows measures rows per computed table
	TermRows = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "gibbs_term_rows",
			Help:    "Number of rows per term table",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		},
	)
)

// Chart metrics track image rendering
var (
	// ChartRenderDuration measures chart rendering time by kind and format
	ChartRenderDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gibbs_chart_render_duration_seconds",
			Help:    "Chart render duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
		},
		[]string{"kind", "format"}, // kind: fit|terms
	)
)

// Rate limiting metrics
var (
	// RateLimitedTotal counts requests rejected by the per-client limiter.
	RateLimitedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gibbs_rate_limited_requests_total",
			Help: "Total number of requests rejected by the per-client rate limiter",
		},
		[]string{"route"},
	)

	// RateLimitClients tracks the number of clients holding a token bucket.
	RateLimitClients = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "gibbs_rate_limit_clients",
			Help: "Number of clients currently tracked by the rate limiter",
		},
	)
)
