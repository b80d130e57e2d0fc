// Package http provides the HTTP surface of the Gibbs energy service: health
// probes, metrics, access logging, panic recovery and request body limits.
// The fit and terms endpoints live in sub-packages.
package http

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"sync/atomic"
	"time"

	"calphad-sn/internal/domain/entity"
	"calphad-sn/internal/domain/gibbs"
	"calphad-sn/internal/infra/chart"
)

// HealthResponse represents the JSON response for health check endpoints.
type HealthResponse struct {
	Status    string                 `json:"status"`    // "healthy" or "unhealthy"
	Timestamp string                 `json:"timestamp"` // ISO 8601 format
	Checks    map[string]CheckStatus `json:"checks"`    // Status of each check item
	Version   string                 `json:"version"`   // Application version
}

// CheckStatus represents the status of a single health check.
type CheckStatus struct {
	Status  string         `json:"status"`            // "healthy" or "unhealthy"
	Message string         `json:"message,omitempty"` // Optional status message
	Details map[string]any `json:"details,omitempty"` // Optional additional details
}

// ClientCounter reports how many clients the rate limiter tracks.
type ClientCounter interface {
	Clients() int
}

// HealthHandler handles health check endpoint requests.
// It verifies that the configured coefficients produce finite energies and
// that the chart renderer works, and reports rate limiter status.
type HealthHandler struct {
	Coefficients gibbs.Coefficients
	Version      string

	// RateLimiter is optional; nil when rate limiting is disabled.
	RateLimiter ClientCounter
}

// ServeHTTP performs health checks and returns the application health status.
// Returns 200 OK if healthy, or 503 Service Unavailable if any check fails.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	checks := map[string]CheckStatus{
		"coefficients": h.checkCoefficients(),
		"renderer":     checkRenderer(ctx),
	}
	if h.RateLimiter != nil {
		checks["rate_limiter"] = CheckStatus{
			Status:  "healthy",
			Details: map[string]any{"active_clients": h.RateLimiter.Clients()},
		}
	}

	status := "healthy"
	statusCode := http.StatusOK
	for _, c := range checks {
		if c.Status != "healthy" {
			status = "unhealthy"
			statusCode = http.StatusServiceUnavailable
			break
		}
	}

	response := HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
		Version:   h.Version,
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		slog.Error("health: failed to encode response", slog.Any("error", err))
	}
}

// Ready reports whether the service can answer fit and terms requests.
func (h *HealthHandler) Ready(ctx context.Context) error {
	if c := h.checkCoefficients(); c.Status != "healthy" {
		return fmt.Errorf("coefficients: %s", c.Message)
	}
	if c := checkRenderer(ctx); c.Status != "healthy" {
		return fmt.Errorf("renderer: %s", c.Message)
	}
	return nil
}

// checkCoefficients validates the coefficients and evaluates them at the
// reference temperature.
func (h *HealthHandler) checkCoefficients() CheckStatus {
	if err := h.Coefficients.Validate(); err != nil {
		return CheckStatus{Status: "unhealthy", Message: err.Error()}
	}
	g, err := h.Coefficients.Energy(gibbs.DefaultStart)
	if err != nil {
		return CheckStatus{Status: "unhealthy", Message: err.Error()}
	}
	if math.IsNaN(g) || math.IsInf(g, 0) {
		return CheckStatus{Status: "unhealthy", Message: "energy at reference temperature is not finite"}
	}
	return CheckStatus{
		Status:  "healthy",
		Details: map[string]any{"reference_temperature": gibbs.DefaultStart, "energy": g},
	}
}

var rendererProbe = entity.TermTable{Rows: []entity.TermRow{
	{Temperature: 300, Total: 1},
	{Temperature: 400, Total: 2},
}}

// checkRenderer renders a two-row term chart to verify fonts and encoders.
func checkRenderer(ctx context.Context) CheckStatus {
	if err := ctx.Err(); err != nil {
		return CheckStatus{Status: "unhealthy", Message: err.Error()}
	}
	start := time.Now()
	if err := chart.RenderTerms(io.Discard, chart.SVG, rendererProbe); err != nil {
		return CheckStatus{Status: "unhealthy", Message: err.Error()}
	}
	return CheckStatus{
		Status:  "healthy",
		Details: map[string]any{"render_ms": time.Since(start).Milliseconds()},
	}
}

// ReadyHandler handles Kubernetes readiness probe requests.
// It stops reporting ready once draining starts so the load balancer moves
// traffic away before the server shuts down.
type ReadyHandler struct {
	Health   *HealthHandler
	draining atomic.Bool
}

// SetDraining marks the server as shutting down.
func (h *ReadyHandler) SetDraining() {
	h.draining.Store(true)
}

// ServeHTTP returns 200 OK if ready, or 503 Service Unavailable otherwise.
func (h *ReadyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if h.draining.Load() {
		http.Error(w, "shutting down", http.StatusServiceUnavailable)
		return
	}
	if h.Health == nil {
		http.Error(w, "health checks not configured", http.StatusServiceUnavailable)
		return
	}
	if err := h.Health.Ready(ctx); err != nil {
		http.Error(w, "not ready: "+err.Error(), http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("ready")); err != nil {
		slog.Error("ready: failed to write response", slog.Any("error", err))
	}
}

// LiveHandler handles Kubernetes liveness probe requests.
// It performs a lightweight check to verify the application is responsive.
type LiveHandler struct{}

// ServeHTTP performs a simple liveness check and always returns 200 OK
// if the application is running and able to respond.
func (h *LiveHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("alive")); err != nil {
		slog.Error("alive: failed to write response", slog.Any("error", err))
	}
}
