// Пакет handlers — HTTP-обработчики консоли: пользователи, подключения,
// приложения и журнал событий Auth0.
package handlers

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/a-h/templ"

	"github.com/bigkaa/goartstore/idp-console/internal/auth0"
	"github.com/bigkaa/goartstore/idp-console/internal/ui/htmx"
	"github.com/bigkaa/goartstore/idp-console/internal/ui/i18n"
	"github.com/bigkaa/goartstore/idp-console/internal/ui/pages"
	"github.com/bigkaa/goartstore/idp-console/internal/ui/pages/partials"
)

// Gateway — операции Auth0 Management API, которые использует консоль.
// Реализуется *auth0.Client.
type Gateway interface {
	ListUsers(ctx context.Context, params auth0.ListUsersParams) (*auth0.UserPage, error)
	GetUser(ctx context.Context, id string) (*auth0.User, error)
	CreateUser(ctx context.Context, req *auth0.CreateUserRequest) (*auth0.User, error)
	UpdateUser(ctx context.Context, id string, req *auth0.UpdateUserRequest) (*auth0.User, error)
	DeleteUser(ctx context.Context, id string) error
	GetUserLogs(ctx context.Context, id string, params auth0.PageParams) ([]auth0.LogEvent, error)
	ListConnections(ctx context.Context, params auth0.PageParams) ([]auth0.Connection, error)
	ListClients(ctx context.Context, params auth0.PageParams) ([]auth0.Client, error)
	ListLogs(ctx context.Context, params auth0.ListLogsParams) (*auth0.LogPage, error)
}

var _ Gateway = (*auth0.Client)(nil)

// Handler — обработчики страниц консоли. Общее состояние — только gateway.
type Handler struct {
	gw     Gateway
	logger *slog.Logger
}

// New создаёт Handler.
func New(gw Gateway, logger *slog.Logger) *Handler {
	return &Handler{
		gw:     gw,
		logger: logger.With(slog.String("component", "ui.handlers")),
	}
}

// render рендерит компонент в буфер и только затем пишет ответ:
// при ошибке рендеринга клиент получает 500 без частичного HTML.
func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, c templ.Component) {
	var buf bytes.Buffer
	if err := c.Render(r.Context(), &buf); err != nil {
		h.logger.Error("Ошибка рендеринга",
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
		)
		http.Error(w, "Ошибка рендеринга страницы", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// renderMode выбирает полную страницу или фрагмент по заголовку HX-Request.
func (h *Handler) renderMode(w http.ResponseWriter, r *http.Request, full, fragment templ.Component) {
	if htmx.IsRequest(r.Header) {
		h.render(w, r, http.StatusOK, fragment)
		return
	}
	h.render(w, r, http.StatusOK, full)
}

// redirect — 303 для обычного запроса, HX-Redirect для HTMX.
func (h *Handler) redirect(w http.ResponseWriter, r *http.Request, url string) {
	if htmx.IsRequest(r.Header) {
		htmx.Redirect(w, url)
		return
	}
	http.Redirect(w, r, url, http.StatusSeeOther)
}

// fail сообщает об ошибке: HTMX получает alert-фрагмент со статусом 200
// (иначе HTMX не выполнит замену), обычный запрос — страницу ошибки со status.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, status int, message string) {
	if htmx.IsRequest(r.Header) {
		h.render(w, r, http.StatusOK, partials.Alert(partials.AlertDanger, message))
		return
	}
	h.render(w, r, status, pages.Error(status, message))
}

// badRequest — некорректный запрос (400) в любом режиме.
func (h *Handler) badRequest(w http.ResponseWriter, r *http.Request, err error) {
	msg := i18n.Tf(r.Context(), "error.bad_request", err.Error())
	if htmx.IsRequest(r.Header) {
		h.render(w, r, http.StatusBadRequest, partials.Alert(partials.AlertDanger, msg))
		return
	}
	h.render(w, r, http.StatusBadRequest, pages.Error(http.StatusBadRequest, msg))
}

// NotFound — обработчик неизвестных маршрутов.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusNotFound, pages.Error(http.StatusNotFound, http.StatusText(http.StatusNotFound)))
}

// parsePage читает номер страницы (с 0) из query. Отсутствие — 0.
func parsePage(r *http.Request) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("page"))
	if raw == "" {
		return 0, nil
	}
	page, err := strconv.Atoi(raw)
	if err != nil || page < 0 {
		return 0, errors.New("page: ожидается неотрицательное целое число")
	}
	return page, nil
}

// upstreamMessage — текст ошибки Auth0 для показа в форме.
func upstreamMessage(err error) string {
	var apiErr *auth0.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return err.Error()
}
