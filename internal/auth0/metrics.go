// metrics.go — Prometheus метрики вызовов Auth0 Management API.
package auth0

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// upstreamRequestsTotal — количество вызовов Auth0 по операциям и исходу.
	upstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "idpc_upstream_requests_total",
			Help: "Количество вызовов Auth0 Management API",
		},
		[]string{"operation", "outcome"},
	)

	// upstreamRequestDuration — длительность вызовов Auth0.
	upstreamRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "idpc_upstream_request_duration_seconds",
			Help:    "Длительность вызовов Auth0 Management API в секундах",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)
)

// observe записывает метрики одного вызова.
func observe(op string, start time.Time, err error) {
	upstreamRequestDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	upstreamRequestsTotal.WithLabelValues(op, outcome(err)).Inc()
}

// outcome классифицирует результат вызова для лейбла метрики.
func outcome(err error) string {
	if err == nil {
		return "ok"
	}
	if errors.Is(err, ErrNotFound) {
		return "not_found"
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if apiErr.StatusCode >= 500 {
			return "upstream_error"
		}
		return "client_error"
	}
	return "transport_error"
}
