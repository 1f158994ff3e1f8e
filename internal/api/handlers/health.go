// health.go — обработчики health endpoints IdP Console.
// /health/live — liveness probe (процесс жив)
// /health/ready — readiness probe (Auth0 Management API доступен)
// /metrics — Prometheus метрики
package handlers

import (
	"encoding/json"
	"net/http"
	"sort"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bigkaa/goartstore/idp-console/internal/config"
)

// serviceName — имя сервиса в ответах health endpoints.
const serviceName = "idp-console"

// ReadinessChecker — интерфейс проверки готовности зависимости.
type ReadinessChecker interface {
	// CheckReady возвращает статус ("ok", "degraded", "fail") и сообщение.
	CheckReady() (status string, message string)
}

// DependencyMonitor — фоновый мониторинг зависимостей (topologymetrics).
// Ключ — имя зависимости, значение — true если последняя проверка успешна.
type DependencyMonitor interface {
	Health() map[string]bool
}

// HealthHandler — обработчик health endpoints.
type HealthHandler struct {
	auth0Checker ReadinessChecker
	monitor      DependencyMonitor
	promHandler  http.Handler
}

// NewHealthHandler создаёт обработчик health endpoints.
// auth0Checker — активная проверка Auth0; nil — readiness вернёт "fail".
// monitor — опционален, его результаты только понижают статус до degraded.
func NewHealthHandler(auth0Checker ReadinessChecker, monitor DependencyMonitor) *HealthHandler {
	return &HealthHandler{
		auth0Checker: auth0Checker,
		monitor:      monitor,
		promHandler:  promhttp.Handler(),
	}
}

// healthCheckResult — результат проверки одной зависимости.
type healthCheckResult struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// healthLiveResponse — ответ liveness probe.
type healthLiveResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
	Service   string `json:"service"`
}

// healthReadyResponse — ответ readiness probe.
type healthReadyResponse struct {
	Status       string                       `json:"status"`
	Timestamp    string                       `json:"timestamp"`
	Version      string                       `json:"version"`
	Service      string                       `json:"service"`
	Checks       map[string]healthCheckResult `json:"checks"`
	Dependencies map[string]bool              `json:"dependencies,omitempty"`
}

// HealthLive — liveness probe. Возвращает 200 если процесс жив.
func (h *HealthHandler) HealthLive(w http.ResponseWriter, r *http.Request) {
	resp := healthLiveResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   config.Version,
		Service:   serviceName,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(resp)
}

// HealthReady — readiness probe. Проверяет Auth0 Management API.
// Возвращает 200 (ok/degraded) или 503 (fail).
func (h *HealthHandler) HealthReady(w http.ResponseWriter, r *http.Request) {
	resp := healthReadyResponse{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   config.Version,
		Service:   serviceName,
		Checks:    make(map[string]healthCheckResult, 1),
	}

	statuses := make([]string, 0, 2)

	if h.auth0Checker != nil {
		status, msg := h.auth0Checker.CheckReady()
		resp.Checks["auth0"] = healthCheckResult{Status: status, Message: msg}
		statuses = append(statuses, status)
	} else {
		resp.Checks["auth0"] = healthCheckResult{Status: "fail", Message: "не инициализирован"}
		statuses = append(statuses, "fail")
	}

	// Фоновый мониторинг не роняет readiness: активная проверка уже выполнена выше
	if h.monitor != nil {
		resp.Dependencies = h.monitor.Health()
		if unhealthy := unhealthyDependencies(resp.Dependencies); len(unhealthy) > 0 {
			statuses = append(statuses, "degraded")
		}
	}

	resp.Status = overallStatus(statuses...)

	w.Header().Set("Content-Type", "application/json")
	if resp.Status == "fail" {
		w.WriteHeader(http.StatusServiceUnavailable)
	} else {
		w.WriteHeader(http.StatusOK)
	}
	_ = json.NewEncoder(w).Encode(resp)
}

// GetMetrics — Prometheus метрики.
func (h *HealthHandler) GetMetrics(w http.ResponseWriter, r *http.Request) {
	h.promHandler.ServeHTTP(w, r)
}

// unhealthyDependencies возвращает отсортированные имена зависимостей со статусом false.
func unhealthyDependencies(deps map[string]bool) []string {
	var names []string
	for name, ok := range deps {
		if !ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// overallStatus определяет итоговый статус из статусов зависимостей.
// Если хотя бы одна зависимость fail — итог fail.
// Если хотя бы одна degraded — итог degraded.
// Иначе — ok.
func overallStatus(statuses ...string) string {
	hasDegraded := false
	for _, s := range statuses {
		if s == "fail" {
			return "fail"
		}
		if s == "degraded" {
			hasDegraded = true
		}
	}
	if hasDegraded {
		return "degraded"
	}
	return "ok"
}
