package partials

import (
	"context"
	"net/url"

	"github.com/a-h/templ"
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"

	"github.com/bigkaa/goartstore/idp-console/internal/auth0"
	"github.com/bigkaa/goartstore/idp-console/internal/ui/forms"
	"github.com/bigkaa/goartstore/idp-console/internal/ui/htmx"
	"github.com/bigkaa/goartstore/idp-console/internal/ui/i18n"
	"github.com/bigkaa/goartstore/idp-console/internal/ui/paging"
)

// UsersTableData — данные таблицы пользователей.
type UsersTableData struct {
	Users      []auth0.User
	Pager      paging.Pager
	Query      string
	Connection string
}

// UserCreateFormData — данные формы создания пользователя.
// OOB — форма отправляется вне основной цели (сброс после успешного создания).
type UserCreateFormData struct {
	Values      forms.Values
	Errors      forms.Errors
	Connections []string
	OOB         bool
}

// UserDetailData — карточка пользователя с формой редактирования.
// Values — отправленные значения формы; nil — поля заполняются из User.
type UserDetailData struct {
	User   *auth0.User
	Values forms.Values
	Errors forms.Errors
}

// UsersTable — область users-table: таблица и пагинация.
func UsersTable(data UsersTableData) templ.Component {
	return Component(func(ctx context.Context) g.Node {
		return h.Div(
			h.ID(htmx.RegionUsersTable),
			g.If(len(data.Users) == 0,
				h.P(h.Class("empty"), g.Text(i18n.T(ctx, "users.empty"))),
			),
			g.If(len(data.Users) > 0,
				h.Table(
					h.Class("table"),
					h.THead(h.Tr(
						h.Th(g.Text(i18n.T(ctx, "users.col.email"))),
						h.Th(g.Text(i18n.T(ctx, "users.col.name"))),
						h.Th(g.Text(i18n.T(ctx, "users.col.connection"))),
						h.Th(g.Text(i18n.T(ctx, "users.col.logins"))),
						h.Th(g.Text(i18n.T(ctx, "users.col.last_login"))),
						h.Th(g.Text(i18n.T(ctx, "users.col.status"))),
						h.Th(),
					)),
					h.TBody(g.Map(data.Users, func(u auth0.User) g.Node {
						return userRow(ctx, u)
					})),
				),
			),
			pager(ctx, "/users", htmx.RegionUsersTable, data.Pager, url.Values{
				"q":          {data.Query},
				"connection": {data.Connection},
			}),
		)
	})
}

func userRow(ctx context.Context, u auth0.User) g.Node {
	toggleKey := "users.action.block"
	if u.IsBlocked() {
		toggleKey = "users.action.unblock"
	}

	return h.Tr(
		h.Class("user-row"),
		h.Td(h.A(h.Href(userURL(u.UserID)), g.Text(orDash(u.Email)))),
		h.Td(g.Text(orDash(u.DisplayName()))),
		h.Td(g.Text(orDash(u.ConnectionName()))),
		h.Td(g.Text(itoa(u.LoginsCount))),
		h.Td(g.Text(FormatTimePtr(u.LastLogin))),
		h.Td(statusBadge(ctx, u.IsBlocked())),
		h.Td(
			h.Button(
				h.Type("button"),
				h.Class("btn btn-sm"),
				hx("post", userURL(u.UserID)+"/toggle-block"),
				hx("target", "#"+htmx.RegionUsersTable),
				hx("swap", "outerHTML"),
				g.Text(i18n.T(ctx, toggleKey)),
			),
		),
	)
}

func statusBadge(ctx context.Context, blocked bool) g.Node {
	if blocked {
		return h.Span(h.Class("badge badge-danger"), g.Text(i18n.T(ctx, "users.status.blocked")))
	}
	return h.Span(h.Class("badge badge-success"), g.Text(i18n.T(ctx, "users.status.active")))
}

// userURL — путь карточки пользователя. Идентификатор экранируется: в нём бывает "|".
func userURL(id string) string {
	return "/users/" + url.PathEscape(id)
}

// UserCreateForm — область user-create-form.
func UserCreateForm(data UserCreateFormData) templ.Component {
	return Component(func(ctx context.Context) g.Node {
		return h.Form(
			h.ID(htmx.RegionUserCreateForm),
			h.Class("card stack-form"),
			h.Method("post"),
			h.Action("/users"),
			hx("post", "/users"),
			hx("target", "#"+htmx.RegionUserCreateForm),
			hx("swap", "outerHTML"),
			g.If(data.OOB, hx("swap-oob", "true")),
			h.H2(g.Text(i18n.T(ctx, "users.create.title"))),
			baseErrors(data.Errors),
			field(ctx, "email", "email", "users.field.email", data.Values.Get("email"), data.Errors),
			field(ctx, "password", "password", "users.field.password", data.Values.Get("password"), data.Errors),
			connectionSelect(ctx, data.Values.Get("connection"), data.Connections, data.Errors),
			field(ctx, "username", "text", "users.field.username", data.Values.Get("username"), data.Errors),
			field(ctx, "given_name", "text", "users.field.given_name", data.Values.Get("given_name"), data.Errors),
			field(ctx, "family_name", "text", "users.field.family_name", data.Values.Get("family_name"), data.Errors),
			h.Label(
				h.Class("checkbox"),
				h.Input(h.Type("checkbox"), h.Name("verify_email"), h.Value("on"),
					g.If(data.Values.Get("verify_email") != "", h.Checked())),
				g.Text(i18n.T(ctx, "users.field.verify_email")),
			),
			h.Div(h.Class("form-actions"),
				h.Button(h.Type("submit"), h.Class("btn btn-primary"), g.Text(i18n.T(ctx, "users.create.submit"))),
			),
		)
	})
}

func connectionSelect(ctx context.Context, selected string, connections []string, errs forms.Errors) g.Node {
	return h.Div(
		h.Class("field"),
		h.Label(h.For("connection"), g.Text(i18n.T(ctx, "users.field.connection"))),
		h.Select(
			h.ID("connection"),
			h.Name("connection"),
			g.If(errs.Has("connection"), h.Class("invalid")),
			h.Option(h.Value(""), g.Text(i18n.T(ctx, "users.field.connection_placeholder"))),
			g.Map(connections, func(name string) g.Node {
				return h.Option(h.Value(name), g.If(name == selected, h.Selected()), g.Text(name))
			}),
		),
		fieldErrors(errs.For("connection")),
	)
}

// UserDetail — область user-detail: сведения о пользователе, форма редактирования и действия.
func UserDetail(data UserDetailData) templ.Component {
	return Component(func(ctx context.Context) g.Node {
		u := data.User
		value := func(name, current string) string {
			if data.Values != nil {
				return data.Values.Get(name)
			}
			return current
		}

		toggleKey := "users.action.block"
		if u.IsBlocked() {
			toggleKey = "users.action.unblock"
		}

		return h.Div(
			h.ID(htmx.RegionUserDetail),
			h.Class("detail"),
			h.Div(
				h.Class("card"),
				h.Div(
					h.Class("detail-header"),
					g.If(u.Picture != "", h.Img(h.Class("avatar"), h.Src(u.Picture), h.Alt(""))),
					h.H2(g.Text(orDash(u.DisplayName()))),
					statusBadge(ctx, u.IsBlocked()),
				),
				h.Dl(
					h.Class("props"),
					prop(ctx, "users.col.id", h.Code(g.Text(u.UserID))),
					prop(ctx, "users.col.email", g.Text(orDash(u.Email))),
					prop(ctx, "users.col.verified", g.Text(yesNo(ctx, u.EmailVerified))),
					prop(ctx, "users.col.connection", g.Text(orDash(u.ConnectionName()))),
					prop(ctx, "users.col.logins", g.Text(itoa(u.LoginsCount))),
					prop(ctx, "users.col.last_login", g.Text(FormatTimePtr(u.LastLogin))),
					prop(ctx, "users.col.created", g.Text(FormatTime(u.CreatedAt))),
					prop(ctx, "users.col.updated", g.Text(FormatTime(u.UpdatedAt))),
				),
				h.Div(
					h.Class("actions"),
					h.Form(
						h.Method("post"),
						h.Action(userURL(u.UserID)+"/toggle-block"),
						h.Button(h.Type("submit"), h.Class("btn"), g.Text(i18n.T(ctx, toggleKey))),
					),
					h.Button(
						h.Type("button"),
						h.Class("btn btn-danger"),
						hx("delete", userURL(u.UserID)),
						hx("target", "#"+htmx.RegionUserDetail),
						hx("confirm", i18n.T(ctx, "users.delete.confirm")),
						g.Text(i18n.T(ctx, "users.action.delete")),
					),
				),
			),
			h.Form(
				h.Class("card stack-form"),
				hx("patch", userURL(u.UserID)),
				hx("target", "#"+htmx.RegionUserDetail),
				hx("swap", "outerHTML"),
				h.H2(g.Text(i18n.T(ctx, "users.edit.title"))),
				baseErrors(data.Errors),
				field(ctx, "email", "email", "users.field.email", value("email", u.Email), data.Errors),
				field(ctx, "username", "text", "users.field.username", value("username", u.Username), data.Errors),
				field(ctx, "given_name", "text", "users.field.given_name", value("given_name", u.GivenName), data.Errors),
				field(ctx, "family_name", "text", "users.field.family_name", value("family_name", u.FamilyName), data.Errors),
				field(ctx, "nickname", "text", "users.field.nickname", value("nickname", u.Nickname), data.Errors),
				field(ctx, "phone_number", "tel", "users.field.phone_number", value("phone_number", u.PhoneNumber), data.Errors),
				field(ctx, "picture", "url", "users.field.picture", value("picture", u.Picture), data.Errors),
				field(ctx, "password", "password", "users.field.new_password", value("password", ""), data.Errors),
				h.Div(h.Class("form-actions"),
					h.Button(h.Type("submit"), h.Class("btn btn-primary"), g.Text(i18n.T(ctx, "users.edit.submit"))),
				),
			),
			h.Section(
				h.Class("card"),
				h.H2(g.Text(i18n.T(ctx, "users.logs.title"))),
				h.Div(
					h.ID(htmx.RegionUserLogs),
					hx("get", userURL(u.UserID)+"/logs"),
					hx("trigger", "load"),
					h.P(h.Class("text-muted"), g.Text(i18n.T(ctx, "common.loading"))),
				),
			),
		)
	})
}

// UserLogs — содержимое вставки user-logs: последние события пользователя.
func UserLogs(logs []auth0.LogEvent) templ.Component {
	return Component(func(ctx context.Context) g.Node {
		if len(logs) == 0 {
			return h.P(h.Class("text-muted"), g.Text(i18n.T(ctx, "logs.empty")))
		}
		return h.Table(
			h.Class("table table-compact"),
			h.THead(h.Tr(
				h.Th(g.Text(i18n.T(ctx, "logs.col.date"))),
				h.Th(g.Text(i18n.T(ctx, "logs.col.type"))),
				h.Th(g.Text(i18n.T(ctx, "logs.col.description"))),
				h.Th(g.Text(i18n.T(ctx, "logs.col.ip"))),
			)),
			h.TBody(g.Map(logs, func(e auth0.LogEvent) g.Node {
				return h.Tr(
					h.Td(g.Text(FormatTime(e.Date))),
					h.Td(logTypeBadge(e)),
					h.Td(g.Text(orDash(e.Description))),
					h.Td(g.Text(orDash(e.IP))),
				)
			})),
		)
	})
}

func prop(ctx context.Context, labelKey string, value g.Node) g.Node {
	return g.Group{h.Dt(g.Text(i18n.T(ctx, labelKey))), h.Dd(value)}
}

func yesNo(ctx context.Context, v bool) string {
	if v {
		return i18n.T(ctx, "common.yes")
	}
	return i18n.T(ctx, "common.no")
}
