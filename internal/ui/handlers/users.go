// users.go — пользователи: список, карточка, создание, изменение, удаление,
// блокировка и журнал событий пользователя.
package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"github.com/bigkaa/goartstore/idp-console/internal/auth0"
	"github.com/bigkaa/goartstore/idp-console/internal/ui/forms"
	"github.com/bigkaa/goartstore/idp-console/internal/ui/htmx"
	"github.com/bigkaa/goartstore/idp-console/internal/ui/i18n"
	"github.com/bigkaa/goartstore/idp-console/internal/ui/pages"
	"github.com/bigkaa/goartstore/idp-console/internal/ui/pages/partials"
	"github.com/bigkaa/goartstore/idp-console/internal/ui/paging"
)

const (
	usersPerPage      = 20
	usersSort         = "created_at:-1"
	usersSearchEngine = "v3"
	userLogsLimit     = 10
	logsSort          = "date:-1"
)

// resourceCap — предел для справочников, загружаемых одним запросом.
const resourceCap = 100

// usersQuery — параметры списка пользователей из query string.
type usersQuery struct {
	Page       int
	Q          string
	Connection string
}

func parseUsersQuery(r *http.Request) (usersQuery, error) {
	page, err := parsePage(r)
	if err != nil {
		return usersQuery{}, err
	}
	return usersQuery{
		Page:       page,
		Q:          strings.TrimSpace(r.URL.Query().Get("q")),
		Connection: strings.TrimSpace(r.URL.Query().Get("connection")),
	}, nil
}

// HandleUsers обрабатывает GET /users.
func (h *Handler) HandleUsers(w http.ResponseWriter, r *http.Request) {
	q, err := parseUsersQuery(r)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	if htmx.IsRequest(r.Header) {
		h.render(w, r, http.StatusOK, partials.UsersTable(h.loadUsersTable(r.Context(), q)))
		return
	}

	// Пользователи и справочник connections независимы: загружаем параллельно
	var (
		table       partials.UsersTableData
		connections []string
		eg          errgroup.Group
	)
	eg.Go(func() error {
		table = h.loadUsersTable(r.Context(), q)
		return nil
	})
	eg.Go(func() error {
		connections = h.loadConnectionNames(r.Context())
		return nil
	})
	_ = eg.Wait()

	h.render(w, r, http.StatusOK, pages.Users(pages.UsersPageData{
		Table: table,
		Form:  partials.UserCreateFormData{Connections: connections},
	}))
}

// loadUsersTable загружает страницу пользователей. Ошибка Auth0 даёт пустую
// таблицу и запись в лог, пользователю не показывается.
func (h *Handler) loadUsersTable(ctx context.Context, q usersQuery) partials.UsersTableData {
	data := partials.UsersTableData{Query: q.Q, Connection: q.Connection}

	page, err := h.gw.ListUsers(ctx, auth0.ListUsersParams{
		Page:          q.Page,
		PerPage:       usersPerPage,
		Q:             q.Q,
		Connection:    q.Connection,
		Sort:          usersSort,
		SearchEngine:  usersSearchEngine,
		IncludeTotals: true,
	})
	if err != nil {
		h.logger.Error("Ошибка загрузки пользователей",
			slog.String("operation", "list_users"),
			slog.Int("page", q.Page),
			slog.String("error", err.Error()),
		)
		data.Pager = paging.New(q.Page, usersPerPage, 0, 0)
		return data
	}

	data.Users = page.Users
	data.Pager = paging.New(q.Page, usersPerPage, page.Total, len(page.Users))
	return data
}

// loadConnectionNames — имена connections для выпадающих списков.
func (h *Handler) loadConnectionNames(ctx context.Context) []string {
	conns, err := h.gw.ListConnections(ctx, auth0.PageParams{PerPage: resourceCap})
	if err != nil {
		h.logger.Warn("Не удалось загрузить connections",
			slog.String("operation", "list_connections"),
			slog.String("error", err.Error()),
		)
		return nil
	}
	names := make([]string, 0, len(conns))
	for _, c := range conns {
		names = append(names, c.Name)
	}
	return names
}

// HandleCreateUser обрабатывает POST /users.
func (h *Handler) HandleCreateUser(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.badRequest(w, r, err)
		return
	}
	ctx := r.Context()
	values := forms.FromURLValues(r.PostForm)

	if errs := forms.Validate(values, forms.CreateUserSchema); !errs.IsEmpty() {
		h.renderCreateForm(w, r, values, errs)
		return
	}

	req := buildCreateRequest(values)
	user, err := h.gw.CreateUser(ctx, req)
	if err != nil {
		h.logger.Error("Ошибка создания пользователя",
			slog.String("operation", "create_user"),
			slog.String("connection", req.Connection),
			slog.String("error", err.Error()),
		)
		var errs forms.Errors
		errs.AddBase(i18n.Tf(ctx, "users.create_failed", upstreamMessage(err)))
		h.renderCreateForm(w, r, values, errs)
		return
	}

	h.logger.Info("Пользователь создан",
		slog.String("user_id", user.UserID),
		slog.String("operation", "create_user"),
		slog.String("connection", req.Connection),
	)

	if !htmx.IsRequest(r.Header) {
		http.Redirect(w, r, "/users", http.StatusSeeOther)
		return
	}

	// Запрос пришёл из формы: основная цель меняется на таблицу,
	// форма сбрасывается и уведомление добавляется out-of-band
	table := h.loadUsersTable(ctx, usersQuery{})
	connections := h.loadConnectionNames(ctx)

	w.Header().Set("HX-Retarget", "#"+htmx.RegionUsersTable)
	w.Header().Set("HX-Reswap", "outerHTML")
	h.render(w, r, http.StatusOK, templ.Join(
		partials.UsersTable(table),
		partials.UserCreateForm(partials.UserCreateFormData{Connections: connections, OOB: true}),
		partials.Toast(partials.AlertSuccess, i18n.T(ctx, "toast.user_created"), user.DisplayName()),
	))
}

// renderCreateForm показывает форму создания с ошибками и введёнными значениями.
// Статус 200: HTMX заменяет форму, полная страница перерисовывается целиком.
func (h *Handler) renderCreateForm(w http.ResponseWriter, r *http.Request, values forms.Values, errs forms.Errors) {
	ctx := r.Context()
	form := partials.UserCreateFormData{
		Values:      values,
		Errors:      errs,
		Connections: h.loadConnectionNames(ctx),
	}

	if htmx.IsRequest(r.Header) {
		h.render(w, r, http.StatusOK, partials.UserCreateForm(form))
		return
	}
	h.render(w, r, http.StatusOK, pages.Users(pages.UsersPageData{
		Table: h.loadUsersTable(ctx, usersQuery{}),
		Form:  form,
	}))
}

// buildCreateRequest нормализует форму: пустые поля не передаются,
// name составляется из имени и фамилии.
func buildCreateRequest(v forms.Values) *auth0.CreateUserRequest {
	given := v.Optional("given_name")
	family := v.Optional("family_name")

	return &auth0.CreateUserRequest{
		Connection:  strings.TrimSpace(v.Get("connection")),
		Email:       v.Optional("email"),
		Password:    v.OptionalRaw("password"),
		Username:    v.Optional("username"),
		GivenName:   given,
		FamilyName:  family,
		Name:        deriveName(given, family),
		VerifyEmail: v.Checked("verify_email"),
	}
}

// deriveName: "given family", если заданы оба; иначе заданное; иначе nil.
func deriveName(given, family *string) *string {
	switch {
	case given != nil && family != nil:
		name := *given + " " + *family
		return &name
	case given != nil:
		name := *given
		return &name
	case family != nil:
		name := *family
		return &name
	default:
		return nil
	}
}

// userID извлекает идентификатор из пути. Идентификаторы Auth0 содержат "|".
func userID(r *http.Request) string {
	raw := chi.URLParam(r, "id")
	if id, err := url.PathUnescape(raw); err == nil {
		return id
	}
	return raw
}

func userPath(id string) string {
	return "/users/" + url.PathEscape(id)
}

// loadUser загружает пользователя; при ошибке сам пишет ответ и возвращает nil.
func (h *Handler) loadUser(w http.ResponseWriter, r *http.Request, id, operation string) *auth0.User {
	user, err := h.gw.GetUser(r.Context(), id)
	if err == nil {
		return user
	}
	h.failUpstream(w, r, id, operation, err, "")
	return nil
}

// failUpstream обрабатывает ошибку Auth0: 404 для отсутствующего пользователя,
// иначе 502 (страница) или alert (HTMX). key — формат сообщения с текстом
// ошибки Auth0; пустой key — общее сообщение.
func (h *Handler) failUpstream(w http.ResponseWriter, r *http.Request, id, operation string, err error, key string) {
	ctx := r.Context()
	if errors.Is(err, auth0.ErrNotFound) {
		h.logger.Warn("Пользователь не найден",
			slog.String("user_id", id),
			slog.String("operation", operation),
		)
		h.fail(w, r, http.StatusNotFound, i18n.T(ctx, "users.not_found"))
		return
	}

	h.logger.Error("Ошибка запроса к Auth0",
		slog.String("user_id", id),
		slog.String("operation", operation),
		slog.String("error", err.Error()),
	)
	msg := i18n.T(ctx, "error.upstream")
	if key != "" {
		msg = i18n.Tf(ctx, key, upstreamMessage(err))
	}
	h.fail(w, r, http.StatusBadGateway, msg)
}

// HandleUser обрабатывает GET /users/{id}.
func (h *Handler) HandleUser(w http.ResponseWriter, r *http.Request) {
	user := h.loadUser(w, r, userID(r), "get_user")
	if user == nil {
		return
	}
	data := partials.UserDetailData{User: user}
	h.renderMode(w, r, pages.UserDetail(data), partials.UserDetail(data))
}

// HandleUpdateUser обрабатывает PATCH /users/{id}.
func (h *Handler) HandleUpdateUser(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.badRequest(w, r, err)
		return
	}
	ctx := r.Context()
	id := userID(r)
	values := forms.FromURLValues(r.PostForm)

	if errs := forms.Validate(values, forms.UpdateUserSchema); !errs.IsEmpty() {
		h.renderUserForm(w, r, id, values, errs)
		return
	}

	req := buildUpdateRequest(values)
	if !isEmptyUpdate(req) {
		if _, err := h.gw.UpdateUser(ctx, id, req); err != nil {
			if errors.Is(err, auth0.ErrNotFound) {
				h.failUpstream(w, r, id, "update_user", err, "users.update_failed")
				return
			}
			h.logger.Error("Ошибка изменения пользователя",
				slog.String("user_id", id),
				slog.String("operation", "update_user"),
				slog.String("error", err.Error()),
			)
			var errs forms.Errors
			errs.AddBase(i18n.Tf(ctx, "users.update_failed", upstreamMessage(err)))
			h.renderUserForm(w, r, id, values, errs)
			return
		}
		h.logger.Info("Пользователь изменён",
			slog.String("user_id", id),
			slog.String("operation", "update_user"),
		)
	}

	if !htmx.IsRequest(r.Header) {
		http.Redirect(w, r, userPath(id), http.StatusSeeOther)
		return
	}

	user := h.loadUser(w, r, id, "get_user")
	if user == nil {
		return
	}
	h.render(w, r, http.StatusOK, templ.Join(
		partials.UserDetail(partials.UserDetailData{User: user}),
		partials.Toast(partials.AlertSuccess, i18n.T(ctx, "toast.user_updated"), user.DisplayName()),
	))
}

// renderUserForm показывает карточку с ошибками и введёнными значениями (статус 200).
func (h *Handler) renderUserForm(w http.ResponseWriter, r *http.Request, id string, values forms.Values, errs forms.Errors) {
	user := h.loadUser(w, r, id, "get_user")
	if user == nil {
		return
	}
	data := partials.UserDetailData{User: user, Values: values, Errors: errs}
	h.renderMode(w, r, pages.UserDetail(data), partials.UserDetail(data))
}

// buildUpdateRequest — только непустые поля формы редактирования.
func buildUpdateRequest(v forms.Values) *auth0.UpdateUserRequest {
	given := v.Optional("given_name")
	family := v.Optional("family_name")

	return &auth0.UpdateUserRequest{
		Email:       v.Optional("email"),
		Username:    v.Optional("username"),
		GivenName:   given,
		FamilyName:  family,
		Name:        deriveName(given, family),
		Nickname:    v.Optional("nickname"),
		PhoneNumber: v.Optional("phone_number"),
		Picture:     v.Optional("picture"),
		Password:    v.OptionalRaw("password"),
	}
}

// isEmptyUpdate — в запросе нет ни одного поля; Auth0 отклоняет пустой PATCH.
func isEmptyUpdate(req *auth0.UpdateUserRequest) bool {
	return *req == auth0.UpdateUserRequest{}
}

// HandleDeleteUser обрабатывает DELETE /users/{id}.
func (h *Handler) HandleDeleteUser(w http.ResponseWriter, r *http.Request) {
	id := userID(r)
	if err := h.gw.DeleteUser(r.Context(), id); err != nil {
		h.failUpstream(w, r, id, "delete_user", err, "users.delete_failed")
		return
	}

	h.logger.Info("Пользователь удалён",
		slog.String("user_id", id),
		slog.String("operation", "delete_user"),
	)
	h.redirect(w, r, "/users")
}

// HandleToggleBlock обрабатывает POST /users/{id}/toggle-block.
// Передаётся только поле blocked с инвертированным значением.
func (h *Handler) HandleToggleBlock(w http.ResponseWriter, r *http.Request) {
	id := userID(r)
	user := h.loadUser(w, r, id, "toggle_block")
	if user == nil {
		return
	}

	blocked := !user.IsBlocked()
	if _, err := h.gw.UpdateUser(r.Context(), id, &auth0.UpdateUserRequest{Blocked: &blocked}); err != nil {
		h.failUpstream(w, r, id, "toggle_block", err, "users.toggle_failed")
		return
	}

	h.logger.Info("Статус блокировки изменён",
		slog.String("user_id", id),
		slog.String("operation", "toggle_block"),
		slog.Bool("blocked", blocked),
	)

	if htmx.TargetIs(r.Header, htmx.RegionUsersTable) {
		h.render(w, r, http.StatusOK, partials.UsersTable(h.loadUsersTable(r.Context(), currentUsersQuery(r))))
		return
	}
	h.redirect(w, r, userPath(id))
}

// currentUsersQuery восстанавливает фильтры списка из HX-Current-URL,
// чтобы после переключения блокировки остаться на той же странице.
func currentUsersQuery(r *http.Request) usersQuery {
	u, err := url.Parse(r.Header.Get("HX-Current-URL"))
	if err != nil || u.Path != "/users" {
		return usersQuery{}
	}
	q, err := parseUsersQuery(&http.Request{URL: u})
	if err != nil {
		return usersQuery{}
	}
	return q
}

// HandleUserLogs обрабатывает GET /users/{id}/logs — вставка в карточку.
func (h *Handler) HandleUserLogs(w http.ResponseWriter, r *http.Request) {
	id := userID(r)
	logs, err := h.gw.GetUserLogs(r.Context(), id, auth0.PageParams{PerPage: userLogsLimit, Sort: logsSort})
	if err != nil {
		h.logger.Warn("Не удалось загрузить журнал пользователя",
			slog.String("user_id", id),
			slog.String("operation", "get_user_logs"),
			slog.String("error", err.Error()),
		)
		h.render(w, r, http.StatusOK, partials.LogsUnavailable())
		return
	}
	h.render(w, r, http.StatusOK, partials.UserLogs(logs))
}
