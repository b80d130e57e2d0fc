package metrics

import (
	"time"
)

// RecordFit records the outcome of one fit.
// Status should be one of StatusSuccess, StatusRejected or StatusFailure.
// Duration and size are only observed for successful fits.
func RecordFit(status string, duration time.Duration, observations int) {
	FitsTotal.WithLabelValues(status).Inc()
	if status != StatusSuccess {
		return
	}
	FitDuration.Observe(duration.Seconds())
	FitObservations.Observe(float64(observations))
}

// RecordTermTable records the outcome of one term table computation.
func RecordTermTable(status string, rows int) {
	TermTablesTotal.WithLabelValues(status).Inc()
	if status == StatusSuccess {
		TermRows.Observe(float64(rows))
	}
}

// RecordChartRender records the time taken to render a chart.
//
// Example:
//
//	start := time.Now()
//	err := chart.RenderTerms(w, chart.PNG, table)
//	metrics.RecordChartRender("terms", "png", time.Since(start))
func RecordChartRender(kind, format string, duration time.Duration) {
	ChartRenderDuration.WithLabelValues(kind, format).Observe(duration.Seconds())
}

// RecordRateLimited records a request rejected by the rate limiter.
// Route should be a normalized path to keep label cardinality bounded.
func RecordRateLimited(route string) {
	RateLimitedTotal.WithLabelValues(route).Inc()
}

// SetRateLimitClients records the number of tracked rate limiter clients.
func SetRateLimitClients(n int) {
	RateLimitClients.Set(float64(n))
}
