package httpx_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ghuser/stockroom/pkg/httpx"
)

type stubChecker struct{ err error }

func (s *stubChecker) Ping(_ context.Context) error { return s.err }

func runHealth(t *testing.T, checks httpx.HealthChecks) (*httptest.ResponseRecorder, map[string]string) {
	t.Helper()
	h := httpx.HealthHandler(checks)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", http.NoBody))

	var resp map[string]string
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return rr, resp
}

func TestHealthHandler_AllHealthy(t *testing.T) {
	rr, resp := runHealth(t, httpx.HealthChecks{
		Database: &stubChecker{},
		Redis:    &stubChecker{},
		EventBus: &stubChecker{},
	})

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if resp["status"] != "ok" {
		t.Errorf("status: got %q, want %q", resp["status"], "ok")
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
		t.Errorf("Content-Type: got %q", ct)
	}
}

func TestHealthHandler_SingleDependencyDown(t *testing.T) {
	tests := []struct {
		name    string
		checks  httpx.HealthChecks
		downKey string
	}{
		{
			name: "database down",
			checks: httpx.HealthChecks{
				Database: &stubChecker{err: errors.New("conn refused")},
				Redis:    &stubChecker{},
				EventBus: &stubChecker{},
			},
			downKey: "database",
		},
		{
			name: "redis down",
			checks: httpx.HealthChecks{
				Database: &stubChecker{},
				Redis:    &stubChecker{err: errors.New("timeout")},
				EventBus: &stubChecker{},
			},
			downKey: "redis",
		},
		{
			name: "event bus down",
			checks: httpx.HealthChecks{
				Database: &stubChecker{},
				Redis:    &stubChecker{},
				EventBus: &stubChecker{err: errors.New("timeout")},
			},
			downKey: "event_bus",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr, resp := runHealth(t, tt.checks)

			if rr.Code != http.StatusServiceUnavailable {
				t.Fatalf("expected 503, got %d", rr.Code)
			}
			if resp["status"] != "degraded" {
				t.Errorf("status: got %q, want degraded", resp["status"])
			}
			if resp[tt.downKey] != "unreachable" {
				t.Errorf("%s: got %q, want unreachable", tt.downKey, resp[tt.downKey])
			}
		})
	}
}

func TestHealthHandler_AllDown(t *testing.T) {
	rr, resp := runHealth(t, httpx.HealthChecks{
		Database: &stubChecker{err: errors.New("down")},
		Redis:    &stubChecker{err: errors.New("down")},
		EventBus: &stubChecker{err: errors.New("down")},
	})

	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rr.Code)
	}
	if resp["database"] != "unreachable" || resp["redis"] != "unreachable" || resp["event_bus"] != "unreachable" {
		t.Errorf("expected all dependencies unreachable: %+v", resp)
	}
}
