package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// CORS разрешает кросс-доменные запросы с перечисленных origins.
// Пустой список — CORS выключен, middleware ничего не делает.
func CORS(origins []string) func(http.Handler) http.Handler {
	if len(origins) == 0 {
		return func(next http.Handler) http.Handler { return next }
	}

	// Заголовки HTMX нужны для фрагментных запросов с другого origin.
	allowedHeaders := []string{"Content-Type", RequestIDHeader, "HX-Request", "HX-Target", "HX-Trigger", "HX-Current-URL"}

	handler := cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete},
		AllowedHeaders:   allowedHeaders,
		ExposedHeaders:   []string{RequestIDHeader, "HX-Redirect"},
		MaxAge:           3600,
		AllowCredentials: false,
	})

	return handler.Handler
}
