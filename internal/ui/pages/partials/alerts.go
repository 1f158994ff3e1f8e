package partials

import (
	"context"

	"github.com/a-h/templ"
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"

	"github.com/bigkaa/goartstore/idp-console/internal/ui/i18n"
)

// AlertKind — оформление сообщения.
type AlertKind string

const (
	AlertSuccess AlertKind = "success"
	AlertDanger  AlertKind = "danger"
)

// Alert — встроенное сообщение, которым HTMX заменяет область запроса.
func Alert(kind AlertKind, message string) templ.Component {
	return Component(func(ctx context.Context) g.Node {
		return alertNode(kind, message)
	})
}

func alertNode(kind AlertKind, message string) g.Node {
	return h.Div(
		h.Class("alert alert-"+string(kind)),
		h.Role("alert"),
		g.Text(message),
	)
}

// Toast — всплывающее уведомление. Добавляется в #toasts вне основной цели (hx-swap-oob).
func Toast(kind AlertKind, title, message string) templ.Component {
	return Component(func(ctx context.Context) g.Node {
		return h.Div(
			h.ID("toasts"),
			hx("swap-oob", "beforeend"),
			h.Div(
				h.Class("toast toast-"+string(kind)),
				h.Role("status"),
				g.Attr("onclick", "this.remove()"),
				h.Strong(g.Text(title)),
				g.If(message != "", h.Span(g.Text(message))),
			),
		)
	})
}

// LogsUnavailable — вставка на месте журнала пользователя, если Auth0 не ответил.
func LogsUnavailable() templ.Component {
	return Component(func(ctx context.Context) g.Node {
		return h.P(h.Class("text-muted"), g.Text(i18n.T(ctx, "logs.unavailable")))
	})
}
