package healthprobe

import (
	"encoding/json"
	"net/http"
	"sync/atomic"
	"time"
)

// HealthChecker provides health and readiness checks, plus the pipeline stage
// currently in flight so an operator can see at a glance where the run is.
type HealthChecker struct {
	startTime time.Time
	ready     atomic.Bool
	stage     atomic.Value // string
}

// New creates a new HealthChecker.
func New() *HealthChecker {
	h := &HealthChecker{
		startTime: time.Now(),
	}
	h.stage.Store("starting")

	return h
}

// SetReady marks the run as past its preflight checks.
func (h *HealthChecker) SetReady(ready bool) {
	h.ready.Store(ready)
}

// SetStage records the pipeline stage currently in flight.
func (h *HealthChecker) SetStage(stage string) {
	h.stage.Store(stage)
}

// Stage returns the pipeline stage currently in flight.
func (h *HealthChecker) Stage() string {
	stage, _ := h.stage.Load().(string)
	return stage
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status  string `json:"status"`
	Stage   string `json:"stage"`
	Uptime  string `json:"uptime"`
	Message string `json:"message,omitempty"`
}

// Health returns an HTTP handler for liveness checks.
// Always returns 200 OK if the process is running.
func (h *HealthChecker) Health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := HealthResponse{
			Status: "healthy",
			Stage:  h.Stage(),
			Uptime: time.Since(h.startTime).String(),
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(resp)
	}
}

// Ready returns an HTTP handler for readiness checks.
// Returns 200 OK once preflight passed, 503 Service Unavailable before that.
func (h *HealthChecker) Ready() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !h.ready.Load() {
			resp := HealthResponse{
				Status:  "not_ready",
				Stage:   h.Stage(),
				Message: "preflight checks not passed yet",
			}
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			_ = json.NewEncoder(w).Encode(resp)
			return
		}

		resp := HealthResponse{
			Status: "ready",
			Stage:  h.Stage(),
			Uptime: time.Since(h.startTime).String(),
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(resp)
	}
}
