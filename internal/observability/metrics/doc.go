// Package metrics provides Prometheus metrics registry and recording utilities.
//
// This package centralizes the domain metrics of the application:
//   - Fit metrics (outcome, duration, observation count)
//   - Term table metrics (outcome, row count)
//   - Chart render duration
//
// HTTP request metrics live next to the middleware that records them in
// internal/handler/http. All metrics are registered with the Prometheus
// default registry and exposed via the /metrics endpoint.
//
// Example usage:
//
//	import "calphad-sn/internal/observability/metrics"
//
//	func fit(obs []entity.Observation) {
//	    start := time.Now()
//	    res, err := gibbs.DefaultModel.Fit(obs)
//	    if err != nil {
//	        metrics.RecordFit(metrics.StatusRejected, time.Since(start), len(obs))
//	        return
//	    }
//	    metrics.RecordFit(metrics.StatusSuccess, time.Since(start), res.Len())
//	}
package metrics
