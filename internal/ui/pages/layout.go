// Пакет pages — полные страницы IdP Console: общий каркас с навигацией
// и встроенные в него фрагменты из partials.
package pages

import (
	"context"

	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"

	"github.com/bigkaa/goartstore/idp-console/internal/config"
	"github.com/bigkaa/goartstore/idp-console/internal/ui/i18n"
)

// htmxScriptURL — HTMX подключается с CDN.
const htmxScriptURL = "https://unpkg.com/htmx.org@2.0.4/dist/htmx.min.js"

type navItem struct {
	Key  string
	Href string
}

var navItems = []navItem{
	{Key: "users", Href: "/users"},
	{Key: "connections", Href: "/connections"},
	{Key: "applications", Href: "/applications"},
	{Key: "logs", Href: "/logs"},
}

// layout — каркас страницы. active — ключ активного пункта меню.
func layout(ctx context.Context, title, active string, body ...g.Node) g.Node {
	lang := i18n.LangFromContext(ctx)

	return h.Doctype(h.HTML(
		h.Lang(lang),
		h.Head(
			h.Meta(h.Charset("utf-8")),
			h.Meta(h.Name("viewport"), h.Content("width=device-width, initial-scale=1")),
			h.TitleEl(g.Text(title+" | "+i18n.T(ctx, "app.title"))),
			h.Link(h.Rel("icon"), h.Href("data:,")),
			h.Link(h.Rel("stylesheet"), h.Href("/static/css/app.css")),
			h.Script(h.Src(htmxScriptURL)),
		),
		h.Body(
			h.Header(
				h.Class("topbar"),
				h.A(h.Class("brand"), h.Href("/"), g.Text(i18n.T(ctx, "app.title"))),
				h.Nav(h.Class("nav"), g.Map(navItems, func(item navItem) g.Node {
					class := "nav-link"
					if item.Key == active {
						class += " active"
					}
					return h.A(h.Href(item.Href), h.Class(class), g.Text(i18n.T(ctx, "nav."+item.Key)))
				})),
				languageSwitch(ctx, lang),
			),
			h.Main(h.Class("content"), g.Group(body)),
			h.Footer(h.Class("footer text-muted"), g.Text("idp-console "+config.Version)),
			h.Div(h.ID("toasts"), h.Class("toasts")),
		),
	))
}

func languageSwitch(ctx context.Context, current string) g.Node {
	return h.Form(
		h.Class("lang-switch"),
		h.Method("post"),
		h.Action("/set-language"),
		g.Map(i18n.Languages, func(lang string) g.Node {
			class := "btn btn-sm"
			if lang == current {
				class += " active"
			}
			return h.Button(h.Type("submit"), h.Name("lang"), h.Value(lang), h.Class(class), g.Text(i18n.T(ctx, "lang."+lang)))
		}),
	)
}

func pageHeader(title string, extra ...g.Node) g.Node {
	return h.Div(h.Class("page-header"), h.H1(g.Text(title)), g.Group(extra))
}
