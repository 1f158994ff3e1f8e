// Точка входа IdP Console — веб-консоль администратора Auth0.
// Загружает конфигурацию, создаёт клиент Auth0 Management API,
// запускает мониторинг зависимостей (topologymetrics) и HTTP-сервер
// с graceful shutdown.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/bigkaa/goartstore/idp-console/internal/api/handlers"
	"github.com/bigkaa/goartstore/idp-console/internal/api/middleware"
	"github.com/bigkaa/goartstore/idp-console/internal/auth0"
	"github.com/bigkaa/goartstore/idp-console/internal/config"
	"github.com/bigkaa/goartstore/idp-console/internal/server"
	"github.com/bigkaa/goartstore/idp-console/internal/service"
	uihandlers "github.com/bigkaa/goartstore/idp-console/internal/ui/handlers"
	"github.com/bigkaa/goartstore/idp-console/internal/ui/i18n"
)

func main() {
	// 1. Загрузка конфигурации из переменных окружения
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Ошибка загрузки конфигурации", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 2. Настройка логирования
	logger := config.SetupLogger(cfg)
	logger.Info("IdP Console запускается",
		slog.String("version", config.Version),
		slog.String("addr", cfg.BindAddr),
		slog.String("auth0_domain", cfg.Auth0Domain),
	)

	// 3. Каталоги переводов UI
	bundle, err := i18n.Load(logger)
	if err != nil {
		logger.Error("Ошибка загрузки переводов", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 4. Клиент Auth0 Management API
	auth0Client, err := auth0.New(
		cfg.Auth0Domain,
		cfg.Auth0Audience,
		cfg.Auth0ClientID,
		cfg.Auth0ClientSecret,
		&http.Client{Timeout: cfg.UpstreamTimeout},
		logger,
	)
	if err != nil {
		logger.Error("Ошибка создания клиента Auth0", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 5. topologymetrics — мониторинг доступности Auth0
	ctx := context.Background()
	dephealthSvc, err := service.NewDephealthService(
		"idp-console",
		cfg.DephealthGroup,
		cfg.Auth0BaseURL(),
		cfg.DephealthCheckInterval,
		logger,
	)
	var monitor handlers.DependencyMonitor
	if err != nil {
		logger.Warn("topologymetrics недоступен, запуск без мониторинга зависимостей",
			slog.String("error", err.Error()),
		)
		dephealthSvc = nil
	} else if startErr := dephealthSvc.Start(ctx); startErr != nil {
		logger.Warn("Ошибка запуска topologymetrics",
			slog.String("error", startErr.Error()),
		)
		dephealthSvc = nil
	} else {
		monitor = dephealthSvc
		logger.Info("topologymetrics запущен",
			slog.String("group", cfg.DephealthGroup),
			slog.String("check_interval", cfg.DephealthCheckInterval.String()),
		)
	}

	// 6. Маршрутизатор и HTTP-сервер
	router := server.NewRouter(server.RouterDeps{
		UI:          uihandlers.New(auth0Client, logger),
		Health:      handlers.NewHealthHandler(auth0Client, monitor),
		Bundle:      bundle,
		RateLimiter: middleware.NewMutationRateLimiter(cfg.MutationRateLimitRPM, logger),
		CORSOrigins: cfg.CORSOrigins,
		Logger:      logger,
	})

	srv := server.New(cfg, logger, router)
	runErr := srv.Run()

	// 7. Остановка фоновых задач
	if dephealthSvc != nil {
		dephealthSvc.Stop()
	}

	if runErr != nil {
		logger.Error("Ошибка сервера", slog.String("error", runErr.Error()))
		os.Exit(1)
	}
	logger.Info("IdP Console остановлен")
}
