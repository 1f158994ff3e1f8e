// Пакет server — HTTP-сервер IdP Console с graceful shutdown.
// Без TLS: TLS termination выполняется на ingress.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/bigkaa/goartstore/idp-console/internal/api/handlers"
	"github.com/bigkaa/goartstore/idp-console/internal/api/middleware"
	"github.com/bigkaa/goartstore/idp-console/internal/config"
	uihandlers "github.com/bigkaa/goartstore/idp-console/internal/ui/handlers"
	"github.com/bigkaa/goartstore/idp-console/internal/ui/i18n"
	"github.com/bigkaa/goartstore/idp-console/internal/ui/static"
)

// RouterDeps — зависимости маршрутизатора.
type RouterDeps struct {
	UI          *uihandlers.Handler
	Health      *handlers.HealthHandler
	Bundle      *i18n.Bundle
	RateLimiter *middleware.MutationRateLimiter
	CORSOrigins []string
	Logger      *slog.Logger
}

// NewRouter собирает маршруты консоли и служебные endpoints.
func NewRouter(deps RouterDeps) http.Handler {
	router := chi.NewRouter()

	// Глобальные middleware (применяются ко ВСЕМ маршрутам)
	router.Use(middleware.Recovery(deps.Logger))
	router.Use(middleware.MetricsMiddleware())
	router.Use(middleware.RequestLogger(deps.Logger))

	// Служебные endpoints: Kubernetes и Prometheus обращаются напрямую
	if deps.Health != nil {
		router.Get("/health/live", deps.Health.HealthLive)
		router.Get("/health/ready", deps.Health.HealthReady)
		router.Get("/metrics", deps.Health.GetMetrics)
	}
	router.Handle("/static/*", http.StripPrefix("/static/", static.Handler()))

	ui := deps.UI
	router.Group(func(r chi.Router) {
		r.Use(middleware.CORS(deps.CORSOrigins))
		r.Use(i18n.Middleware(deps.Bundle))
		if deps.RateLimiter != nil {
			r.Use(deps.RateLimiter.Handler)
		}

		r.Get("/", ui.HandleIndex)
		r.Post("/set-language", uihandlers.HandleSetLanguage)

		r.Route("/users", func(r chi.Router) {
			r.Get("/", ui.HandleUsers)
			r.Post("/", ui.HandleCreateUser)
			r.Get("/{id}", ui.HandleUser)
			r.Patch("/{id}", ui.HandleUpdateUser)
			r.Delete("/{id}", ui.HandleDeleteUser)
			r.Get("/{id}/logs", ui.HandleUserLogs)
			r.Post("/{id}/toggle-block", ui.HandleToggleBlock)
		})

		r.Get("/connections", ui.HandleConnections)
		r.Get("/applications", ui.HandleApplications)
		r.Get("/logs", ui.HandleLogs)

		r.NotFound(ui.NotFound)
	})

	return router
}

// Server — HTTP-сервер IdP Console.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
	cfg        *config.Config
}

// New создаёт HTTP-сервер с готовым маршрутизатором.
// WriteTimeout больше таймаута upstream: ответ ждёт Auth0.
func New(cfg *config.Config, logger *slog.Logger, handler http.Handler) *Server {
	srv := &http.Server{
		Addr:              cfg.BindAddr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      cfg.UpstreamTimeout + 30*time.Second,
		IdleTimeout:       120 * time.Second,
	}

	return &Server{
		httpServer: srv,
		logger:     logger,
		cfg:        cfg,
	}
}

// Run запускает сервер и ожидает сигнала завершения (SIGINT, SIGTERM).
// При получении сигнала выполняется graceful shutdown.
func (s *Server) Run() error {
	errCh := make(chan error, 1)

	go func() {
		s.logger.Info("HTTP-сервер запущен",
			slog.String("addr", s.httpServer.Addr),
		)

		err := s.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case sig := <-quit:
		s.logger.Info("Получен сигнал завершения", slog.String("signal", sig.String()))
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("ошибка HTTP-сервера: %w", err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()

	s.logger.Info("Выполняется graceful shutdown...")
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("ошибка при graceful shutdown: %w", err)
	}

	s.logger.Info("HTTP-сервер остановлен")
	return nil
}
