// Package tracing provides OpenTelemetry tracing integration.
//
// Spans are created through the global tracer provider, so the process
// decides where they go (an SDK provider with an exporter, or the no-op
// default). The HTTP middleware starts one server span per request and the
// use cases add child spans for fitting, tabulating and rendering.
//
// Example usage:
//
//	import "calphad-sn/internal/observability/tracing"
//
//	func handler() http.Handler {
//	    return tracing.Middleware(mux)
//	}
//
//	func fit(ctx context.Context) {
//	    ctx, span := tracing.StartSpan(ctx, "fit.Fit")
//	    defer span.End()
//	    // ... fit ...
//	}
package tracing
