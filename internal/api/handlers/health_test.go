package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubChecker — заглушка ReadinessChecker.
type stubChecker struct {
	status, message string
}

func (s stubChecker) CheckReady() (string, string) { return s.status, s.message }

// stubMonitor — заглушка DependencyMonitor.
type stubMonitor map[string]bool

func (m stubMonitor) Health() map[string]bool { return m }

func readyResponse(t *testing.T, h *HealthHandler) (int, healthReadyResponse) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.HealthReady(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))

	var resp healthReadyResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return rec.Code, resp
}

func TestHealthLive(t *testing.T) {
	h := NewHealthHandler(nil, nil)
	rec := httptest.NewRecorder()
	h.HealthLive(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp healthLiveResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "idp-console", resp.Service)
}

func TestHealthReady(t *testing.T) {
	tests := []struct {
		name       string
		checker    ReadinessChecker
		monitor    DependencyMonitor
		wantCode   int
		wantStatus string
	}{
		{"auth0 ok", stubChecker{"ok", "доступен"}, nil, http.StatusOK, "ok"},
		{"auth0 degraded", stubChecker{"degraded", "429"}, nil, http.StatusOK, "degraded"},
		{"auth0 fail", stubChecker{"fail", "недоступен"}, nil, http.StatusServiceUnavailable, "fail"},
		{"checker не задан", nil, nil, http.StatusServiceUnavailable, "fail"},
		{"мониторинг сообщает о сбое", stubChecker{"ok", ""}, stubMonitor{"auth0": false}, http.StatusOK, "degraded"},
		{"мониторинг в порядке", stubChecker{"ok", ""}, stubMonitor{"auth0": true}, http.StatusOK, "ok"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, resp := readyResponse(t, NewHealthHandler(tt.checker, tt.monitor))
			assert.Equal(t, tt.wantCode, code)
			assert.Equal(t, tt.wantStatus, resp.Status)
			assert.Contains(t, resp.Checks, "auth0")
		})
	}
}

func TestOverallStatus(t *testing.T) {
	assert.Equal(t, "ok", overallStatus())
	assert.Equal(t, "ok", overallStatus("ok", "ok"))
	assert.Equal(t, "degraded", overallStatus("ok", "degraded"))
	assert.Equal(t, "fail", overallStatus("degraded", "fail"))
}

func TestUnhealthyDependencies(t *testing.T) {
	assert.Equal(t, []string{"a", "c"}, unhealthyDependencies(map[string]bool{"c": false, "b": true, "a": false}))
	assert.Empty(t, unhealthyDependencies(nil))
}
