// Package htmx — определение режима запроса: полная страница или HTMX-фрагмент.
package htmx

import "net/http"

// Заголовки HTMX.
const (
	HeaderRequest  = "HX-Request"
	HeaderTarget   = "HX-Target"
	HeaderRedirect = "HX-Redirect"
)

// Области страниц, которые HTMX обновляет фрагментами.
const (
	RegionUsersTable        = "users-table"
	RegionUserDetail        = "user-detail"
	RegionUserCreateForm    = "user-create-form"
	RegionConnectionsTable  = "connections-table"
	RegionApplicationsTable = "applications-table"
	RegionLogsTable         = "logs-table"
	RegionUserLogs          = "user-logs"
)

// IsRequest — запрос отправлен HTMX (присутствует HX-Request).
func IsRequest(h http.Header) bool {
	_, ok := h[http.CanonicalHeaderKey(HeaderRequest)]
	return ok
}

// TargetIs — HX-Target точно совпадает с region. Без заголовка — false.
func TargetIs(h http.Header, region string) bool {
	values, ok := h[http.CanonicalHeaderKey(HeaderTarget)]
	if !ok || len(values) == 0 {
		return false
	}
	return values[0] == region
}

// Redirect выставляет HX-Redirect: HTMX выполнит полный переход на url.
func Redirect(w http.ResponseWriter, url string) {
	w.Header().Set(HeaderRedirect, url)
	w.WriteHeader(http.StatusOK)
}
