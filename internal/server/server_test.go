package server

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bigkaa/goartstore/idp-console/internal/api/handlers"
	"github.com/bigkaa/goartstore/idp-console/internal/api/middleware"
	"github.com/bigkaa/goartstore/idp-console/internal/auth0"
	uihandlers "github.com/bigkaa/goartstore/idp-console/internal/ui/handlers"
	"github.com/bigkaa/goartstore/idp-console/internal/ui/i18n"
)

// emptyGateway — Auth0 без данных.
type emptyGateway struct{}

func (emptyGateway) ListUsers(context.Context, auth0.ListUsersParams) (*auth0.UserPage, error) {
	return &auth0.UserPage{}, nil
}

func (emptyGateway) GetUser(context.Context, string) (*auth0.User, error) {
	return nil, auth0.ErrNotFound
}

func (emptyGateway) CreateUser(context.Context, *auth0.CreateUserRequest) (*auth0.User, error) {
	return &auth0.User{UserID: "auth0|new"}, nil
}

func (emptyGateway) UpdateUser(context.Context, string, *auth0.UpdateUserRequest) (*auth0.User, error) {
	return nil, auth0.ErrNotFound
}

func (emptyGateway) DeleteUser(context.Context, string) error { return nil }

func (emptyGateway) GetUserLogs(context.Context, string, auth0.PageParams) ([]auth0.LogEvent, error) {
	return nil, nil
}

func (emptyGateway) ListConnections(context.Context, auth0.PageParams) ([]auth0.Connection, error) {
	return nil, nil
}

func (emptyGateway) ListClients(context.Context, auth0.PageParams) ([]auth0.Client, error) {
	return nil, nil
}

func (emptyGateway) ListLogs(context.Context, auth0.ListLogsParams) (*auth0.LogPage, error) {
	return &auth0.LogPage{}, nil
}

func newTestRouter(t *testing.T, rpm int, origins []string) http.Handler {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	bundle, err := i18n.Load(logger)
	require.NoError(t, err)

	return NewRouter(RouterDeps{
		UI:          uihandlers.New(emptyGateway{}, logger),
		Health:      handlers.NewHealthHandler(nil, nil),
		Bundle:      bundle,
		RateLimiter: middleware.NewMutationRateLimiter(rpm, logger),
		CORSOrigins: origins,
		Logger:      logger,
	})
}

func serve(router http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestRouter_Routes(t *testing.T) {
	router := newTestRouter(t, 0, nil)

	tests := []struct {
		method   string
		target   string
		wantCode int
	}{
		{http.MethodGet, "/", http.StatusOK},
		{http.MethodGet, "/users", http.StatusOK},
		{http.MethodGet, "/users/auth0%7C1", http.StatusNotFound},
		{http.MethodGet, "/users/auth0%7C1/logs", http.StatusOK},
		{http.MethodDelete, "/users/auth0%7C1", http.StatusSeeOther},
		{http.MethodPost, "/users/auth0%7C1/toggle-block", http.StatusNotFound},
		{http.MethodGet, "/connections", http.StatusOK},
		{http.MethodGet, "/applications", http.StatusOK},
		{http.MethodGet, "/logs", http.StatusOK},
		{http.MethodGet, "/health/live", http.StatusOK},
		{http.MethodGet, "/health/ready", http.StatusServiceUnavailable},
		{http.MethodGet, "/metrics", http.StatusOK},
		{http.MethodGet, "/static/css/app.css", http.StatusOK},
		{http.MethodGet, "/no-such-page", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.target, func(t *testing.T) {
			rec := serve(router, httptest.NewRequest(tt.method, tt.target, nil))
			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}

func TestRouter_RequestID(t *testing.T) {
	router := newTestRouter(t, 0, nil)

	rec := serve(router, httptest.NewRequest(http.MethodGet, "/health/live", nil))

	assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))
}

// Язык интерфейса выбирается по cookie.
func TestRouter_Language(t *testing.T) {
	router := newTestRouter(t, 0, nil)

	req := httptest.NewRequest(http.MethodGet, "/no-such-page", nil)
	req.AddCookie(&http.Cookie{Name: i18n.LangCookieName, Value: "ru"})
	rec := serve(router, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), `lang="ru"`)
}

func TestRouter_MutationRateLimit(t *testing.T) {
	router := newTestRouter(t, 1, nil)

	post := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/set-language",
			strings.NewReader(url.Values{"lang": {"ru"}}.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.RemoteAddr = "10.0.0.1:5000"
		return serve(router, req)
	}

	assert.Equal(t, http.StatusSeeOther, post().Code)
	assert.Equal(t, http.StatusTooManyRequests, post().Code)

	// Чтение лимитом не ограничивается
	for range 3 {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:5000"
		assert.Equal(t, http.StatusOK, serve(router, req).Code)
	}
}

func TestRouter_CORS(t *testing.T) {
	router := newTestRouter(t, 0, []string{"https://admin.example.com"})

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	req.Header.Set("Origin", "https://admin.example.com")
	rec := serve(router, req)

	assert.Equal(t, "https://admin.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
}
