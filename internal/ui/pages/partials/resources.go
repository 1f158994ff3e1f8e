package partials

import (
	"context"
	"net/url"
	"strconv"

	"github.com/a-h/templ"
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"

	"github.com/bigkaa/goartstore/idp-console/internal/auth0"
	"github.com/bigkaa/goartstore/idp-console/internal/ui/htmx"
	"github.com/bigkaa/goartstore/idp-console/internal/ui/i18n"
	"github.com/bigkaa/goartstore/idp-console/internal/ui/paging"
)

// ConnectionsTable — область connections-table.
func ConnectionsTable(connections []auth0.Connection) templ.Component {
	return Component(func(ctx context.Context) g.Node {
		return h.Div(
			h.ID(htmx.RegionConnectionsTable),
			g.If(len(connections) == 0, h.P(h.Class("empty"), g.Text(i18n.T(ctx, "connections.empty")))),
			g.If(len(connections) > 0, h.Table(
				h.Class("table"),
				h.THead(h.Tr(
					h.Th(g.Text(i18n.T(ctx, "connections.col.name"))),
					h.Th(g.Text(i18n.T(ctx, "connections.col.display_name"))),
					h.Th(g.Text(i18n.T(ctx, "connections.col.strategy"))),
					h.Th(g.Text(i18n.T(ctx, "connections.col.clients"))),
				)),
				h.TBody(g.Map(connections, func(c auth0.Connection) g.Node {
					return h.Tr(
						h.Td(h.A(h.Href("/users?connection="+url.QueryEscape(c.Name)), g.Text(c.Name))),
						h.Td(g.Text(orDash(c.DisplayName))),
						h.Td(h.Span(h.Class("badge"), g.Text(c.Strategy))),
						h.Td(g.Text(strconv.Itoa(len(c.EnabledClients)))),
					)
				})),
			)),
		)
	})
}

// ApplicationsTable — область applications-table.
func ApplicationsTable(clients []auth0.Client) templ.Component {
	return Component(func(ctx context.Context) g.Node {
		return h.Div(
			h.ID(htmx.RegionApplicationsTable),
			g.If(len(clients) == 0, h.P(h.Class("empty"), g.Text(i18n.T(ctx, "applications.empty")))),
			g.If(len(clients) > 0, h.Table(
				h.Class("table"),
				h.THead(h.Tr(
					h.Th(g.Text(i18n.T(ctx, "applications.col.name"))),
					h.Th(g.Text(i18n.T(ctx, "applications.col.type"))),
					h.Th(g.Text(i18n.T(ctx, "applications.col.client_id"))),
					h.Th(g.Text(i18n.T(ctx, "applications.col.callbacks"))),
				)),
				h.TBody(g.Map(clients, func(c auth0.Client) g.Node {
					return h.Tr(
						h.Td(
							g.If(c.LogoURI != "", h.Img(h.Class("logo"), h.Src(c.LogoURI), h.Alt(""))),
							h.Strong(g.Text(c.Name)),
							g.If(c.Description != "", h.Small(h.Class("text-muted"), g.Text(c.Description))),
						),
						h.Td(h.Span(h.Class("badge"), g.Text(orDash(c.AppType)))),
						h.Td(h.Code(g.Text(c.ClientID))),
						h.Td(g.Text(strconv.Itoa(len(c.Callbacks)))),
					)
				})),
			)),
		)
	})
}

// LogsTableData — данные таблицы журнала.
type LogsTableData struct {
	Logs  []auth0.LogEvent
	Pager paging.Pager
	Query string
}

// LogsTable — область logs-table.
func LogsTable(data LogsTableData) templ.Component {
	return Component(func(ctx context.Context) g.Node {
		return h.Div(
			h.ID(htmx.RegionLogsTable),
			g.If(len(data.Logs) == 0, h.P(h.Class("empty"), g.Text(i18n.T(ctx, "logs.empty")))),
			g.If(len(data.Logs) > 0, h.Table(
				h.Class("table"),
				h.THead(h.Tr(
					h.Th(g.Text(i18n.T(ctx, "logs.col.date"))),
					h.Th(g.Text(i18n.T(ctx, "logs.col.type"))),
					h.Th(g.Text(i18n.T(ctx, "logs.col.description"))),
					h.Th(g.Text(i18n.T(ctx, "logs.col.user"))),
					h.Th(g.Text(i18n.T(ctx, "logs.col.application"))),
					h.Th(g.Text(i18n.T(ctx, "logs.col.ip"))),
				)),
				h.TBody(g.Map(data.Logs, func(e auth0.LogEvent) g.Node {
					return h.Tr(
						h.Td(g.Text(FormatTime(e.Date))),
						h.Td(logTypeBadge(e)),
						h.Td(g.Text(orDash(e.Description))),
						h.Td(logUser(e)),
						h.Td(g.Text(orDash(e.ClientName))),
						h.Td(g.Text(orDash(e.IP))),
					)
				})),
			)),
			pager(ctx, "/logs", htmx.RegionLogsTable, data.Pager, url.Values{"q": {data.Query}}),
		)
	})
}

func logUser(e auth0.LogEvent) g.Node {
	if e.UserID == "" {
		return g.Text(orDash(e.UserName))
	}
	label := e.UserName
	if label == "" {
		label = e.UserID
	}
	return h.A(h.Href(userURL(e.UserID)), g.Text(label))
}
