package partials

import (
	"context"
	"net/url"
	"strconv"

	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"

	"github.com/bigkaa/goartstore/idp-console/internal/auth0"
	"github.com/bigkaa/goartstore/idp-console/internal/ui/forms"
	"github.com/bigkaa/goartstore/idp-console/internal/ui/i18n"
	"github.com/bigkaa/goartstore/idp-console/internal/ui/paging"
)

// field — поле формы с подписью и сообщениями валидации.
func field(ctx context.Context, name, inputType, labelKey, value string, errs forms.Errors) g.Node {
	return h.Div(
		h.Class("field"),
		h.Label(h.For(name), g.Text(i18n.T(ctx, labelKey))),
		h.Input(
			h.ID(name),
			h.Name(name),
			h.Type(inputType),
			h.Value(value),
			g.If(errs.Has(name), h.Class("invalid")),
			g.If(inputType == "password", g.Attr("autocomplete", "new-password")),
		),
		fieldErrors(errs.For(name)),
	)
}

func fieldErrors(messages []string) g.Node {
	if len(messages) == 0 {
		return nil
	}
	return h.Ul(h.Class("field-errors"), g.Map(messages, func(m string) g.Node {
		return h.Li(g.Text(m))
	}))
}

// baseErrors — ошибки уровня формы (например, отказ Auth0).
func baseErrors(errs forms.Errors) g.Node {
	if len(errs.Base) == 0 {
		return nil
	}
	return h.Div(h.Class("alert alert-danger"), h.Role("alert"),
		g.Map(errs.Base, func(m string) g.Node { return h.P(g.Text(m)) }),
	)
}

// pager — навигация по страницам области region.
// Ссылки работают и без HTMX (href), и как фрагментные запросы (hx-get).
func pager(ctx context.Context, path, region string, p paging.Pager, filters url.Values) g.Node {
	link := func(page int, labelKey string) g.Node {
		q := url.Values{}
		for k, vs := range filters {
			if len(vs) > 0 && vs[0] != "" {
				q.Set(k, vs[0])
			}
		}
		q.Set("page", strconv.Itoa(page))
		href := path + "?" + q.Encode()

		return h.A(
			h.Class("btn btn-sm"),
			h.Href(href),
			hx("get", href),
			hx("target", "#"+region),
			hx("swap", "outerHTML"),
			hx("push-url", "true"),
			g.Text(i18n.T(ctx, labelKey)),
		)
	}

	return h.Nav(
		h.Class("pager"),
		g.If(p.HasPrev(), link(p.Page-1, "pager.prev")),
		h.Span(h.Class("pager-info"), g.Text(i18n.Tf(ctx, "pager.page_of", p.Page+1, p.TotalPages))),
		g.If(p.HasNext(), link(p.Page+1, "pager.next")),
	)
}

func logTypeBadge(e auth0.LogEvent) g.Node {
	class := "badge"
	if e.IsFailure() {
		class += " badge-danger"
	}
	return h.Span(h.Class(class), h.Title(e.Type), g.Text(e.TypeLabel()))
}
