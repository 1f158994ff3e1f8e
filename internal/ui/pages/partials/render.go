// Пакет partials — HTML-фрагменты IdP Console, которые HTMX подменяет на странице.
// Каждый фрагмент — templ.Component, построенный из узлов gomponents.
package partials

import (
	"context"
	"io"
	"strconv"
	"time"

	"github.com/a-h/templ"
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"
)

// Component превращает построитель узлов в templ.Component.
// Построитель получает контекст запроса (язык, request id).
func Component(build func(ctx context.Context) g.Node) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return build(ctx).Render(w)
	})
}

// Embed встраивает templ.Component в дерево gomponents.
func Embed(ctx context.Context, c templ.Component) g.Node {
	return g.NodeFunc(func(w io.Writer) error {
		return c.Render(ctx, w)
	})
}

// hx — атрибут HTMX (hx-get, hx-target, ...).
func hx(name, value string) g.Node {
	return g.Attr("hx-"+name, value)
}

// FormatTime форматирует время для таблиц; нулевое — "-".
func FormatTime(ts time.Time) string {
	if ts.IsZero() {
		return "-"
	}
	return ts.UTC().Format("2006-01-02 15:04")
}

// FormatTimePtr — FormatTime для необязательного времени.
func FormatTimePtr(ts *time.Time) string {
	if ts == nil {
		return "-"
	}
	return FormatTime(*ts)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func itoa(n int) string { return strconv.Itoa(n) }
