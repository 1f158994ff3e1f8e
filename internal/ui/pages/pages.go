package pages

import (
	"context"
	"net/http"
	"strconv"

	"github.com/a-h/templ"
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"

	"github.com/bigkaa/goartstore/idp-console/internal/auth0"
	"github.com/bigkaa/goartstore/idp-console/internal/ui/htmx"
	"github.com/bigkaa/goartstore/idp-console/internal/ui/i18n"
	"github.com/bigkaa/goartstore/idp-console/internal/ui/pages/partials"
)

// Index — стартовая страница со ссылками на разделы.
func Index() templ.Component {
	return partials.Component(func(ctx context.Context) g.Node {
		return layout(ctx, i18n.T(ctx, "index.title"), "",
			pageHeader(i18n.T(ctx, "index.title")),
			h.P(h.Class("text-muted"), g.Text(i18n.T(ctx, "index.subtitle"))),
			h.Div(h.Class("cards"), g.Map(navItems, func(item navItem) g.Node {
				return h.A(
					h.Class("card card-link"),
					h.Href(item.Href),
					h.H2(g.Text(i18n.T(ctx, "nav."+item.Key))),
					h.P(h.Class("text-muted"), g.Text(i18n.T(ctx, "index."+item.Key))),
				)
			})),
		)
	})
}

// UsersPageData — данные страницы пользователей.
type UsersPageData struct {
	Table partials.UsersTableData
	Form  partials.UserCreateFormData
}

// Users — страница списка пользователей с поиском и формой создания.
func Users(data UsersPageData) templ.Component {
	return partials.Component(func(ctx context.Context) g.Node {
		return layout(ctx, i18n.T(ctx, "nav.users"), "users",
			pageHeader(i18n.T(ctx, "nav.users")),
			h.Form(
				h.Class("filters"),
				h.Method("get"),
				h.Action("/users"),
				g.Attr("hx-get", "/users"),
				g.Attr("hx-target", "#"+htmx.RegionUsersTable),
				g.Attr("hx-swap", "outerHTML"),
				g.Attr("hx-push-url", "true"),
				g.Attr("hx-trigger", "submit, input changed delay:400ms from:input[name=q], change from:select"),
				h.Input(
					h.Type("search"),
					h.Name("q"),
					h.Value(data.Table.Query),
					h.Placeholder(i18n.T(ctx, "users.search.placeholder")),
				),
				h.Select(
					h.Name("connection"),
					h.Option(h.Value(""), g.Text(i18n.T(ctx, "users.search.all_connections"))),
					g.Map(data.Form.Connections, func(name string) g.Node {
						return h.Option(h.Value(name), g.If(name == data.Table.Connection, h.Selected()), g.Text(name))
					}),
				),
				h.Button(h.Type("submit"), h.Class("btn"), g.Text(i18n.T(ctx, "users.search.submit"))),
			),
			h.Div(
				h.Class("split"),
				h.Section(h.Class("card"), partials.Embed(ctx, partials.UsersTable(data.Table))),
				h.Aside(partials.Embed(ctx, partials.UserCreateForm(data.Form))),
			),
		)
	})
}

// UserDetail — страница пользователя.
func UserDetail(data partials.UserDetailData) templ.Component {
	return partials.Component(func(ctx context.Context) g.Node {
		title := data.User.DisplayName()
		if title == "" {
			title = data.User.UserID
		}
		return layout(ctx, title, "users",
			h.P(h.A(h.Href("/users"), g.Text("← "+i18n.T(ctx, "users.back")))),
			partials.Embed(ctx, partials.UserDetail(data)),
		)
	})
}

// Connections — страница подключений.
func Connections(connections []auth0.Connection) templ.Component {
	return partials.Component(func(ctx context.Context) g.Node {
		return layout(ctx, i18n.T(ctx, "nav.connections"), "connections",
			pageHeader(i18n.T(ctx, "nav.connections")),
			h.Section(h.Class("card"), partials.Embed(ctx, partials.ConnectionsTable(connections))),
		)
	})
}

// Applications — страница приложений.
func Applications(clients []auth0.Client) templ.Component {
	return partials.Component(func(ctx context.Context) g.Node {
		return layout(ctx, i18n.T(ctx, "nav.applications"), "applications",
			pageHeader(i18n.T(ctx, "nav.applications")),
			h.Section(h.Class("card"), partials.Embed(ctx, partials.ApplicationsTable(clients))),
		)
	})
}

// Logs — страница журнала событий.
func Logs(data partials.LogsTableData) templ.Component {
	return partials.Component(func(ctx context.Context) g.Node {
		return layout(ctx, i18n.T(ctx, "nav.logs"), "logs",
			pageHeader(i18n.T(ctx, "nav.logs")),
			h.Form(
				h.Class("filters"),
				h.Method("get"),
				h.Action("/logs"),
				g.Attr("hx-get", "/logs"),
				g.Attr("hx-target", "#"+htmx.RegionLogsTable),
				g.Attr("hx-swap", "outerHTML"),
				g.Attr("hx-push-url", "true"),
				h.Input(
					h.Type("search"),
					h.Name("q"),
					h.Value(data.Query),
					h.Placeholder(i18n.T(ctx, "logs.search.placeholder")),
				),
				h.Button(h.Type("submit"), h.Class("btn"), g.Text(i18n.T(ctx, "logs.search.submit"))),
			),
			h.Section(h.Class("card"), partials.Embed(ctx, partials.LogsTable(data))),
		)
	})
}

// Error — страница ошибки для полностраничных запросов.
func Error(status int, message string) templ.Component {
	return partials.Component(func(ctx context.Context) g.Node {
		title := strconv.Itoa(status) + " " + http.StatusText(status)
		return layout(ctx, title, "",
			h.Div(
				h.Class("card error-page"),
				h.H1(g.Text(title)),
				h.P(g.Text(message)),
				h.P(h.A(h.Href("/"), g.Text(i18n.T(ctx, "error.back_home")))),
			),
		)
	})
}
