// errors.go — ошибки Auth0 Management API.
package auth0

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound — ресурс не найден в Auth0 (HTTP 404).
var ErrNotFound = errors.New("ресурс не найден в Auth0")

// APIError — ответ Auth0 с неуспешным статусом.
type APIError struct {
	Operation  string // Имя операции клиента (ListUsers, GetUser, ...)
	StatusCode int
	Code       string // errorCode из тела ответа (если есть)
	Message    string
}

// Error реализует error.
func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: Auth0 вернул статус %d (%s): %s", e.Operation, e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: Auth0 вернул статус %d: %s", e.Operation, e.StatusCode, e.Message)
}

// Is сопоставляет 404 с ErrNotFound для errors.Is.
func (e *APIError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}

// apiErrorBody — формат тела ошибки Auth0.
type apiErrorBody struct {
	StatusCode int    `json:"statusCode"`
	Error      string `json:"error"`
	Message    string `json:"message"`
	ErrorCode  string `json:"errorCode"`
}
