package monitoring

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/shirouto/dsprobe/health"
)

// Handler provides HTTP handlers for monitoring endpoints
type Handler struct {
	dashboard *Dashboard
}

// NewHandler creates a new monitoring handler
func NewHandler(dashboard *Dashboard) *Handler {
	return &Handler{
		dashboard: dashboard,
	}
}

// HandleHealth re-probes every registered target and returns the report.
// Unhealthy maps to 503 so load balancers can act on the status code.
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 60*time.Second)
	defer cancel()

	report := health.GetHealthReport(ctx)

	statusCode := http.StatusOK
	if report.Status == health.StatusUnhealthy {
		statusCode = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(report)
}

// HandleTargetMetrics returns metrics for a specific target
func (h *Handler) HandleTargetMetrics(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("target")
	if name == "" {
		http.Error(w, "target parameter required", http.StatusBadRequest)
		return
	}

	tm, ok := h.dashboard.GetTargetMetrics(name)
	if !ok {
		http.Error(w, "target not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(tm)
}

// HandleAllMetrics returns metrics for all targets
func (h *Handler) HandleAllMetrics(w http.ResponseWriter, r *http.Request) {
	all := h.dashboard.GetAllMetrics()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(all)
}

// HandleLiveness returns liveness status (basic ping)
func (h *Handler) HandleLiveness(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"alive":     true,
		"timestamp": time.Now(),
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(response)
}
