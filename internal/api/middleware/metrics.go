// metrics.go — Prometheus HTTP метрики IdP Console.
// Регистрирует метрики: idpc_http_requests_total, idpc_http_request_duration_seconds.
package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP метрики
var (
	// httpRequestsTotal — общее количество HTTP-запросов.
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "idpc_http_requests_total",
			Help: "Общее количество HTTP-запросов к IdP Console",
		},
		[]string{"method", "path", "status", "htmx"},
	)

	// httpRequestDuration — гистограмма длительности HTTP-запросов.
	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "idpc_http_request_duration_seconds",
			Help:    "Длительность HTTP-запросов к IdP Console в секундах",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
)

// MetricsMiddleware возвращает HTTP middleware для сбора Prometheus метрик.
// Фрагментные (HTMX) и полностраничные запросы различаются лейблом htmx.
func MetricsMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// Нормализуем путь для лейблов метрик
			// (идентификаторы пользователей заменяем на {id})
			normalizedPath := normalizePath(r.URL.Path)

			wrapped := newResponseWriter(w)
			next.ServeHTTP(wrapped, r)

			duration := time.Since(start).Seconds()
			status := strconv.Itoa(wrapped.statusCode)
			htmx := strconv.FormatBool(r.Header.Get("HX-Request") != "")

			httpRequestsTotal.WithLabelValues(r.Method, normalizedPath, status, htmx).Inc()
			httpRequestDuration.WithLabelValues(r.Method, normalizedPath).Observe(duration)
		})
	}
}

// normalizePath заменяет идентификатор пользователя на {id} для предотвращения
// взрывного роста кардинальности метрик.
// /users/auth0|64f.../logs → /users/{id}/logs
func normalizePath(path string) string {
	// Статические пути — возвращаем как есть
	switch path {
	case "/", "/health/live", "/health/ready", "/metrics",
		"/users", "/connections", "/applications", "/logs",
		"/set-language":
		return path
	}

	if strings.HasPrefix(path, "/static/") {
		return "/static/*"
	}

	if rest, ok := strings.CutPrefix(path, "/users/"); ok && rest != "" {
		_, suffix, _ := strings.Cut(rest, "/")
		switch suffix {
		case "":
			return "/users/{id}"
		case "logs", "toggle-block":
			return "/users/{id}/" + suffix
		}
	}

	return "other"
}
