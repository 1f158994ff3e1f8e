// Пакет config — загрузка и валидация конфигурации IdP Console
// из переменных окружения (и локального .env, если он есть).
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Версия приложения, задаётся при сборке через -ldflags.
var Version = "dev"

// Config содержит все параметры конфигурации IdP Console.
type Config struct {
	// --- Сервер ---

	// Адрес HTTP-сервера в формате host:port
	BindAddr string
	// Уровень логирования (debug, info, warn, error)
	LogLevel slog.Level
	// Формат логов (json, text)
	LogFormat string

	// --- Auth0 ---

	// Домен tenant'а Auth0 без схемы (например, example.eu.auth0.com)
	Auth0Domain string
	// Client ID приложения machine-to-machine
	Auth0ClientID string
	// Client Secret приложения machine-to-machine
	Auth0ClientSecret string
	// Audience Management API (пусто — https://{domain}/api/v2/)
	Auth0Audience string
	// Таймаут HTTP-запросов к Auth0
	UpstreamTimeout time.Duration

	// --- Защита ---

	// Лимит изменяющих запросов в минуту на клиента (0 — без лимита)
	MutationRateLimitRPM int
	// Разрешённые CORS origins (пусто — CORS выключен)
	CORSOrigins []string

	// --- Мониторинг ---

	// Имя группы в метриках topologymetrics
	DephealthGroup string
	// Интервал проверки зависимостей topologymetrics
	DephealthCheckInterval time.Duration

	// --- Graceful shutdown ---

	// Таймаут graceful shutdown HTTP-сервера
	ShutdownTimeout time.Duration
}

// Load загружает конфигурацию из переменных окружения, валидирует
// обязательные поля и возвращает Config или ошибку.
// Переменные из .env не перекрывают уже заданные в окружении.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf(".env: %w", err)
	}

	cfg := &Config{}
	var err error

	// --- Сервер ---

	// BIND_ADDR — адрес HTTP-сервера (по умолчанию 0.0.0.0:3000)
	cfg.BindAddr = getEnvDefault("BIND_ADDR", "0.0.0.0:3000")
	if err := validateBindAddr(cfg.BindAddr); err != nil {
		return nil, fmt.Errorf("BIND_ADDR: %w", err)
	}

	// LOG_LEVEL — уровень логирования (по умолчанию info)
	cfg.LogLevel, err = parseLogLevel(getEnvDefault("LOG_LEVEL", "info"))
	if err != nil {
		return nil, fmt.Errorf("LOG_LEVEL: %w", err)
	}

	// LOG_FORMAT — формат логов (по умолчанию json)
	cfg.LogFormat = getEnvDefault("LOG_FORMAT", "json")
	if cfg.LogFormat != "json" && cfg.LogFormat != "text" {
		return nil, fmt.Errorf("LOG_FORMAT: недопустимое значение %q, допустимые: json, text", cfg.LogFormat)
	}

	// --- Auth0 ---

	// AUTH0_DOMAIN — обязательный
	domain, err := getEnvRequired("AUTH0_DOMAIN")
	if err != nil {
		return nil, err
	}
	cfg.Auth0Domain, err = normalizeDomain(domain)
	if err != nil {
		return nil, fmt.Errorf("AUTH0_DOMAIN: %w", err)
	}

	// AUTH0_CLIENT_ID — обязательный
	cfg.Auth0ClientID, err = getEnvRequired("AUTH0_CLIENT_ID")
	if err != nil {
		return nil, err
	}

	// AUTH0_CLIENT_SECRET — обязательный
	cfg.Auth0ClientSecret, err = getEnvRequired("AUTH0_CLIENT_SECRET")
	if err != nil {
		return nil, err
	}

	// AUTH0_AUDIENCE — опциональный, должен быть абсолютным URL
	cfg.Auth0Audience = getEnvDefault("AUTH0_AUDIENCE", "")
	if cfg.Auth0Audience != "" {
		u, parseErr := url.Parse(cfg.Auth0Audience)
		if parseErr != nil || !u.IsAbs() || u.Host == "" {
			return nil, fmt.Errorf("AUTH0_AUDIENCE: некорректный URL %q", cfg.Auth0Audience)
		}
	}

	// UPSTREAM_TIMEOUT — таймаут запросов к Auth0 (по умолчанию 30s)
	cfg.UpstreamTimeout, err = getEnvDuration("UPSTREAM_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, fmt.Errorf("UPSTREAM_TIMEOUT: %w", err)
	}

	// --- Защита ---

	// MUTATION_RATE_LIMIT_RPM — лимит изменяющих запросов (по умолчанию 60)
	cfg.MutationRateLimitRPM, err = getEnvInt("MUTATION_RATE_LIMIT_RPM", 60)
	if err != nil {
		return nil, fmt.Errorf("MUTATION_RATE_LIMIT_RPM: %w", err)
	}
	if cfg.MutationRateLimitRPM < 0 {
		return nil, fmt.Errorf("MUTATION_RATE_LIMIT_RPM: значение %d не может быть отрицательным", cfg.MutationRateLimitRPM)
	}

	// CORS_ORIGINS — список origins через запятую (по умолчанию пусто)
	cfg.CORSOrigins = parseCSV(getEnvDefault("CORS_ORIGINS", ""))

	// --- Мониторинг ---

	// DEPHEALTH_GROUP — группа в метриках (по умолчанию idp-console)
	cfg.DephealthGroup = getEnvDefault("DEPHEALTH_GROUP", "idp-console")

	// DEPHEALTH_CHECK_INTERVAL — интервал проверки зависимостей (по умолчанию 30s)
	cfg.DephealthCheckInterval, err = getEnvDuration("DEPHEALTH_CHECK_INTERVAL", 30*time.Second)
	if err != nil {
		return nil, fmt.Errorf("DEPHEALTH_CHECK_INTERVAL: %w", err)
	}

	// --- Graceful shutdown ---

	// SHUTDOWN_TIMEOUT — таймаут graceful shutdown (по умолчанию 5s)
	cfg.ShutdownTimeout, err = getEnvDuration("SHUTDOWN_TIMEOUT", 5*time.Second)
	if err != nil {
		return nil, fmt.Errorf("SHUTDOWN_TIMEOUT: %w", err)
	}

	return cfg, nil
}

// Auth0BaseURL возвращает базовый URL tenant'а.
func (c *Config) Auth0BaseURL() string {
	return "https://" + c.Auth0Domain
}

// SetupLogger настраивает глобальный slog-логгер на основе конфигурации.
func SetupLogger(cfg *Config) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}

	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

// --- Вспомогательные функции ---

// normalizeDomain убирает схему и завершающий слэш. Путь в домене не допускается.
func normalizeDomain(domain string) (string, error) {
	d := strings.TrimSpace(domain)
	d = strings.TrimPrefix(d, "https://")
	d = strings.TrimPrefix(d, "http://")
	d = strings.TrimRight(d, "/")
	if d == "" {
		return "", errors.New("пустой домен")
	}
	if strings.ContainsAny(d, "/?# ") {
		return "", fmt.Errorf("некорректный домен %q: ожидается только имя хоста", domain)
	}
	return d, nil
}

// validateBindAddr проверяет формат host:port и диапазон порта.
func validateBindAddr(addr string) error {
	_, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return fmt.Errorf("некорректный адрес %q: %w", addr, err)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("некорректный порт %q в адресе %q", portStr, addr)
	}
	return nil
}

// getEnvRequired возвращает значение переменной окружения или ошибку, если она не задана.
func getEnvRequired(key string) (string, error) {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return "", fmt.Errorf("%s: обязательная переменная окружения не задана", key)
	}
	return val, nil
}

// getEnvDefault возвращает значение переменной окружения или значение по умолчанию.
func getEnvDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

// getEnvInt возвращает целочисленное значение переменной окружения или значение по умолчанию.
func getEnvInt(key string, defaultVal int) (int, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("некорректное целое число: %q", val)
	}
	return n, nil
}

// getEnvDuration возвращает time.Duration из переменной окружения или значение по умолчанию.
func getEnvDuration(key string, defaultVal time.Duration) (time.Duration, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return 0, fmt.Errorf("некорректная длительность: %q (используйте формат Go: 30s, 1h, 15m)", val)
	}
	if d <= 0 {
		return 0, fmt.Errorf("длительность должна быть положительной: %q", val)
	}
	return d, nil
}

// parseLogLevel преобразует строку уровня логирования в slog.Level.
func parseLogLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("недопустимый уровень %q, допустимые: debug, info, warn, error", level)
	}
}

// parseCSV разбирает строку, разделённую запятыми, на срез строк.
// Пробелы вокруг элементов убираются, пустые элементы игнорируются.
func parseCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}
