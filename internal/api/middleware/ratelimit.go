package middleware

import (
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// clientLimiter — лимитер одного клиента и время последнего обращения.
type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// MutationRateLimiter ограничивает частоту изменяющих запросов (POST, PATCH, DELETE)
// для каждого клиента. Чтение не ограничивается.
type MutationRateLimiter struct {
	rpm     int
	logger  *slog.Logger
	mu      sync.Mutex
	clients map[string]*clientLimiter
}

// NewMutationRateLimiter создаёт лимитер на rpm запросов в минуту.
// rpm <= 0 — лимит выключен.
func NewMutationRateLimiter(rpm int, logger *slog.Logger) *MutationRateLimiter {
	return &MutationRateLimiter{
		rpm:     rpm,
		logger:  logger.With(slog.String("component", "rate_limit")),
		clients: map[string]*clientLimiter{},
	}
}

// Handler возвращает middleware.
func (m *MutationRateLimiter) Handler(next http.Handler) http.Handler {
	if m.rpm <= 0 {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !isMutation(r.Method) {
			next.ServeHTTP(w, r)
			return
		}

		clientIP := extractClientIP(r)
		if !m.getLimiter(clientIP).Allow() {
			m.logger.Warn("Превышен лимит изменяющих запросов",
				slog.String("client", clientIP),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
			)
			w.Header().Set("Retry-After", "60")
			http.Error(w, "Too many requests", http.StatusTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func isMutation(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPatch, http.MethodPut, http.MethodDelete:
		return true
	}
	return false
}

func (m *MutationRateLimiter) getLimiter(clientIP string) *rate.Limiter {
	m.mu.Lock()
	defer m.mu.Unlock()

	if c, exists := m.clients[clientIP]; exists {
		c.lastSeen = time.Now()
		return c.limiter
	}

	limiter := rate.NewLimiter(rate.Every(time.Minute/time.Duration(m.rpm)), m.rpm)
	m.clients[clientIP] = &clientLimiter{limiter: limiter, lastSeen: time.Now()}
	m.gcLocked()

	return limiter
}

// gcLocked удаляет клиентов, не обращавшихся 10 минут. Вызывается под m.mu.
func (m *MutationRateLimiter) gcLocked() {
	if len(m.clients) < 1000 {
		return
	}

	cutoff := time.Now().Add(-10 * time.Minute)
	for ip, c := range m.clients {
		if c.lastSeen.Before(cutoff) {
			delete(m.clients, ip)
		}
	}
}

func extractClientIP(r *http.Request) string {
	if forwarded := strings.TrimSpace(r.Header.Get("X-Forwarded-For")); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		return strings.TrimSpace(first)
	}

	if realIP := strings.TrimSpace(r.Header.Get("X-Real-IP")); realIP != "" {
		return realIP
	}

	host, _, err := net.SplitHostPort(strings.TrimSpace(r.RemoteAddr))
	if err == nil && host != "" {
		return host
	}

	if strings.TrimSpace(r.RemoteAddr) == "" {
		return "unknown"
	}

	return r.RemoteAddr
}
