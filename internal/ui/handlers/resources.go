// resources.go — справочники Auth0 (connections, applications) и журнал событий.
package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/bigkaa/goartstore/idp-console/internal/auth0"
	"github.com/bigkaa/goartstore/idp-console/internal/ui/pages"
	"github.com/bigkaa/goartstore/idp-console/internal/ui/pages/partials"
	"github.com/bigkaa/goartstore/idp-console/internal/ui/paging"
)

const logsPerPage = 50

// HandleIndex обрабатывает GET / — стартовая страница.
func (h *Handler) HandleIndex(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, pages.Index())
}

// HandleConnections обрабатывает GET /connections.
func (h *Handler) HandleConnections(w http.ResponseWriter, r *http.Request) {
	conns, err := h.gw.ListConnections(r.Context(), auth0.PageParams{PerPage: resourceCap})
	if err != nil {
		h.logger.Error("Ошибка загрузки connections",
			slog.String("operation", "list_connections"),
			slog.String("error", err.Error()),
		)
		conns = nil
	}
	h.renderMode(w, r, pages.Connections(conns), partials.ConnectionsTable(conns))
}

// HandleApplications обрабатывает GET /applications.
func (h *Handler) HandleApplications(w http.ResponseWriter, r *http.Request) {
	clients, err := h.gw.ListClients(r.Context(), auth0.PageParams{PerPage: resourceCap})
	if err != nil {
		h.logger.Error("Ошибка загрузки приложений",
			slog.String("operation", "list_clients"),
			slog.String("error", err.Error()),
		)
		clients = nil
	}
	h.renderMode(w, r, pages.Applications(clients), partials.ApplicationsTable(clients))
}

// HandleLogs обрабатывает GET /logs.
func (h *Handler) HandleLogs(w http.ResponseWriter, r *http.Request) {
	page, err := parsePage(r)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}
	q := strings.TrimSpace(r.URL.Query().Get("q"))

	data := partials.LogsTableData{Query: q}
	result, err := h.gw.ListLogs(r.Context(), auth0.ListLogsParams{
		Page:          page,
		PerPage:       logsPerPage,
		Q:             q,
		Sort:          logsSort,
		IncludeTotals: true,
	})
	if err != nil {
		h.logger.Error("Ошибка загрузки журнала",
			slog.String("operation", "list_logs"),
			slog.Int("page", page),
			slog.String("error", err.Error()),
		)
		data.Pager = paging.New(page, logsPerPage, 0, 0)
	} else {
		data.Logs = result.Logs
		data.Pager = paging.New(page, logsPerPage, result.Total, len(result.Logs))
	}

	h.renderMode(w, r, pages.Logs(data), partials.LogsTable(data))
}
