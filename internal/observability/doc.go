// Package observability groups the logging, metrics and tracing helpers
// shared by the HTTP server and the CLI.
//
// Subpackages:
//   - logging: Structured logging utilities with slog
//   - metrics: Prometheus domain metrics and recorders
//   - tracing: OpenTelemetry spans and HTTP middleware
//
// Example usage:
//
//	import (
//	    "calphad-sn/internal/observability/logging"
//	    "calphad-sn/internal/observability/metrics"
//	)
//
//	func main() {
//	    logger := logging.NewLogger()
//	    logger.Info("application started")
//
//	    metrics.RecordTermTable(metrics.StatusSuccess, 7)
//	}
package observability
