package healthprobe

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHealthAlwaysOK(t *testing.T) {
	checker := New()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	checker.Health()(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}

	var resp HealthResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if resp.Status != "healthy" {
		t.Errorf("expected healthy, got %s", resp.Status)
	}
	if resp.Stage != "starting" {
		t.Errorf("expected starting stage, got %s", resp.Stage)
	}
}

func TestReadyBeforeAndAfterPreflight(t *testing.T) {
	checker := New()

	req := httptest.NewRequest(http.MethodGet, "/ready", nil)
	rec := httptest.NewRecorder()
	checker.Ready()(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("expected 503 before preflight, got %d", rec.Code)
	}

	checker.SetReady(true)

	rec = httptest.NewRecorder()
	checker.Ready()(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200 after preflight, got %d", rec.Code)
	}
}

func TestStageReporting(t *testing.T) {
	checker := New()
	checker.SetReady(true)
	checker.SetStage("awaiting-fill")

	req := httptest.NewRequest(http.MethodGet, "/ready", nil)
	rec := httptest.NewRecorder()
	checker.Ready()(rec, req)

	var resp HealthResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if resp.Stage != "awaiting-fill" {
		t.Errorf("expected awaiting-fill stage, got %s", resp.Stage)
	}
}
