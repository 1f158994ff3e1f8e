// Пакет static — встроенные статические ресурсы IdP Console (стили).
// HTMX подключается с CDN, в бинарник встраивается только CSS.
package static

import (
	"embed"
	"net/http"
)

//go:embed css/*.css
var content embed.FS

// Handler раздаёт встроенные файлы. Монтируется на /static/ с StripPrefix.
func Handler() http.Handler {
	return http.FileServer(http.FS(content))
}
