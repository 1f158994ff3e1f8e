package config

import (
	"log/slog"
	"strings"
	"testing"
	"time"
)

// allKeys — все переменные, которые читает Load.
var allKeys = []string{
	"BIND_ADDR", "LOG_LEVEL", "LOG_FORMAT",
	"AUTH0_DOMAIN", "AUTH0_CLIENT_ID", "AUTH0_CLIENT_SECRET", "AUTH0_AUDIENCE", "UPSTREAM_TIMEOUT",
	"MUTATION_RATE_LIMIT_RPM", "CORS_ORIGINS",
	"DEPHEALTH_GROUP", "DEPHEALTH_CHECK_INTERVAL", "SHUTDOWN_TIMEOUT",
}

// setEnvs очищает все переменные конфигурации и устанавливает заданные.
// Пустое значение равнозначно отсутствию переменной.
func setEnvs(t *testing.T, envs map[string]string) {
	t.Helper()
	for _, k := range allKeys {
		t.Setenv(k, "")
	}
	for k, v := range envs {
		t.Setenv(k, v)
	}
}

// minimalEnvs возвращает минимальный набор обязательных переменных.
func minimalEnvs() map[string]string {
	return map[string]string{
		"AUTH0_DOMAIN":        "example.eu.auth0.com",
		"AUTH0_CLIENT_ID":     "console-m2m",
		"AUTH0_CLIENT_SECRET": "m2m-secret",
	}
}

func TestLoad_MinimalConfig(t *testing.T) {
	setEnvs(t, minimalEnvs())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() вернул ошибку: %v", err)
	}

	// Проверяем значения по умолчанию
	if cfg.BindAddr != "0.0.0.0:3000" {
		t.Errorf("BindAddr = %q, ожидается 0.0.0.0:3000", cfg.BindAddr)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("LogLevel = %v, ожидается Info", cfg.LogLevel)
	}
	if cfg.LogFormat != "json" {
		t.Errorf("LogFormat = %q, ожидается json", cfg.LogFormat)
	}
	if cfg.Auth0Domain != "example.eu.auth0.com" {
		t.Errorf("Auth0Domain = %q, ожидается example.eu.auth0.com", cfg.Auth0Domain)
	}
	if cfg.Auth0Audience != "" {
		t.Errorf("Auth0Audience = %q, ожидается пустая строка", cfg.Auth0Audience)
	}
	if cfg.UpstreamTimeout != 30*time.Second {
		t.Errorf("UpstreamTimeout = %v, ожидается 30s", cfg.UpstreamTimeout)
	}
	if cfg.MutationRateLimitRPM != 60 {
		t.Errorf("MutationRateLimitRPM = %d, ожидается 60", cfg.MutationRateLimitRPM)
	}
	if cfg.CORSOrigins != nil {
		t.Errorf("CORSOrigins = %v, ожидается nil", cfg.CORSOrigins)
	}
	if cfg.DephealthGroup != "idp-console" {
		t.Errorf("DephealthGroup = %q, ожидается idp-console", cfg.DephealthGroup)
	}
	if cfg.DephealthCheckInterval != 30*time.Second {
		t.Errorf("DephealthCheckInterval = %v, ожидается 30s", cfg.DephealthCheckInterval)
	}
	if cfg.ShutdownTimeout != 5*time.Second {
		t.Errorf("ShutdownTimeout = %v, ожидается 5s", cfg.ShutdownTimeout)
	}
	if got := cfg.Auth0BaseURL(); got != "https://example.eu.auth0.com" {
		t.Errorf("Auth0BaseURL() = %q", got)
	}
}

func TestLoad_CustomValues(t *testing.T) {
	envs := minimalEnvs()
	envs["BIND_ADDR"] = "127.0.0.1:8080"
	envs["LOG_LEVEL"] = "debug"
	envs["LOG_FORMAT"] = "text"
	envs["AUTH0_AUDIENCE"] = "https://example.eu.auth0.com/api/v2/"
	envs["UPSTREAM_TIMEOUT"] = "10s"
	envs["MUTATION_RATE_LIMIT_RPM"] = "0"
	envs["CORS_ORIGINS"] = "https://admin.example.com, https://ops.example.com"
	envs["DEPHEALTH_GROUP"] = "identity"
	envs["DEPHEALTH_CHECK_INTERVAL"] = "1m"
	envs["SHUTDOWN_TIMEOUT"] = "10s"
	setEnvs(t, envs)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() вернул ошибку: %v", err)
	}

	if cfg.BindAddr != "127.0.0.1:8080" {
		t.Errorf("BindAddr = %q, ожидается 127.0.0.1:8080", cfg.BindAddr)
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Errorf("LogLevel = %v, ожидается Debug", cfg.LogLevel)
	}
	if cfg.LogFormat != "text" {
		t.Errorf("LogFormat = %q, ожидается text", cfg.LogFormat)
	}
	if cfg.Auth0Audience != "https://example.eu.auth0.com/api/v2/" {
		t.Errorf("Auth0Audience = %q", cfg.Auth0Audience)
	}
	if cfg.UpstreamTimeout != 10*time.Second {
		t.Errorf("UpstreamTimeout = %v, ожидается 10s", cfg.UpstreamTimeout)
	}
	if cfg.MutationRateLimitRPM != 0 {
		t.Errorf("MutationRateLimitRPM = %d, ожидается 0", cfg.MutationRateLimitRPM)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "https://ops.example.com" {
		t.Errorf("CORSOrigins = %v", cfg.CORSOrigins)
	}
	if cfg.DephealthGroup != "identity" {
		t.Errorf("DephealthGroup = %q, ожидается identity", cfg.DephealthGroup)
	}
	if cfg.DephealthCheckInterval != time.Minute {
		t.Errorf("DephealthCheckInterval = %v, ожидается 1m", cfg.DephealthCheckInterval)
	}
	if cfg.ShutdownTimeout != 10*time.Second {
		t.Errorf("ShutdownTimeout = %v, ожидается 10s", cfg.ShutdownTimeout)
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	for _, missing := range []string{"AUTH0_DOMAIN", "AUTH0_CLIENT_ID", "AUTH0_CLIENT_SECRET"} {
		t.Run(missing, func(t *testing.T) {
			envs := minimalEnvs()
			delete(envs, missing)
			setEnvs(t, envs)

			_, err := Load()
			if err == nil {
				t.Fatalf("Load() не вернул ошибку при отсутствии %s", missing)
			}
			if !strings.Contains(err.Error(), missing) {
				t.Errorf("ошибка %q не содержит имя переменной %s", err, missing)
			}
		})
	}
}

func TestLoad_DomainNormalization(t *testing.T) {
	tests := []struct {
		value    string
		expected string
	}{
		{"example.auth0.com", "example.auth0.com"},
		{"https://example.auth0.com/", "example.auth0.com"},
		{"http://example.auth0.com", "example.auth0.com"},
		{"  example.auth0.com  ", "example.auth0.com"},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			envs := minimalEnvs()
			envs["AUTH0_DOMAIN"] = tt.value
			setEnvs(t, envs)

			cfg, err := Load()
			if err != nil {
				t.Fatalf("Load() вернул ошибку: %v", err)
			}
			if cfg.Auth0Domain != tt.expected {
				t.Errorf("Auth0Domain = %q, ожидается %q", cfg.Auth0Domain, tt.expected)
			}
		})
	}
}

// TestLoad_InvalidValues — каждая некорректная переменная прерывает загрузку.
func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"домен с путём", "AUTH0_DOMAIN", "example.auth0.com/api"},
		{"домен из схемы", "AUTH0_DOMAIN", "https://"},
		{"audience не URL", "AUTH0_AUDIENCE", "management-api"},
		{"адрес без порта", "BIND_ADDR", "localhost"},
		{"порт не число", "BIND_ADDR", "0.0.0.0:http"},
		{"порт вне диапазона", "BIND_ADDR", "0.0.0.0:70000"},
		{"уровень логов", "LOG_LEVEL", "verbose"},
		{"формат логов", "LOG_FORMAT", "xml"},
		{"таймаут upstream", "UPSTREAM_TIMEOUT", "abc"},
		{"отрицательный таймаут", "SHUTDOWN_TIMEOUT", "-5s"},
		{"интервал dephealth", "DEPHEALTH_CHECK_INTERVAL", "15"},
		{"лимит не число", "MUTATION_RATE_LIMIT_RPM", "many"},
		{"отрицательный лимит", "MUTATION_RATE_LIMIT_RPM", "-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			envs := minimalEnvs()
			envs[tt.key] = tt.value
			setEnvs(t, envs)

			_, err := Load()
			if err == nil {
				t.Fatalf("Load() не вернул ошибку для %s=%q", tt.key, tt.value)
			}
			if !strings.Contains(err.Error(), tt.key) {
				t.Errorf("ошибка %q не содержит имя переменной %s", err, tt.key)
			}
		})
	}
}

func TestSetupLogger(t *testing.T) {
	tests := []struct {
		name   string
		format string
	}{
		{"json", "json"},
		{"text", "text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				LogLevel:  slog.LevelInfo,
				LogFormat: tt.format,
			}
			logger := SetupLogger(cfg)
			if logger == nil {
				t.Error("SetupLogger() вернул nil")
			}
		})
	}
}

func TestParseCSV(t *testing.T) {
	tests := []struct {
		input    string
		expected []string
	}{
		{"", nil},
		{"https://a.example.com", []string{"https://a.example.com"}},
		{"https://a.example.com, https://b.example.com", []string{"https://a.example.com", "https://b.example.com"}},
		{"a,,b,", []string{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := parseCSV(tt.input)
			if len(result) != len(tt.expected) {
				t.Fatalf("parseCSV(%q) = %v (len %d), ожидается %v (len %d)",
					tt.input, result, len(result), tt.expected, len(tt.expected))
			}
			for i, v := range result {
				if v != tt.expected[i] {
					t.Errorf("parseCSV(%q)[%d] = %q, ожидается %q", tt.input, i, v, tt.expected[i])
				}
			}
		})
	}
}
