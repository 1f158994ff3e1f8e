// client.go — HTTP-клиент к Auth0 Management API v2.
// Реализует автоматическое получение management token через Client Credentials flow,
// кэширование токена (обновление за 30s до expiration).
// Операции: ListUsers, GetUser, CreateUser, UpdateUser, DeleteUser, GetUserLogs,
// ListConnections, ListClients, ListLogs.
// Повторы не выполняются: ошибка вызова возвращается вызывающему сразу.
package auth0

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// defaultTokenTTL — срок жизни токена, если Auth0 не сообщил expires_in и в JWT нет exp.
const defaultTokenTTL = 5 * time.Minute

// Client — HTTP-клиент к Auth0 Management API.
// Безопасен для конкурентного использования: общее изменяемое состояние —
// только кэш токена под mutex.
type Client struct {
	baseURL      string // https://{domain} без trailing slash
	audience     string // Audience Management API (https://{domain}/api/v2/)
	clientID     string // Client ID для Client Credentials flow
	clientSecret string // Client Secret

	httpClient *http.Client
	logger     *slog.Logger

	// Кэш токена доступа
	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

// New создаёт клиент к Auth0 Management API.
// domain — домен tenant'а (example.eu.auth0.com) или полный URL (для тестов — URL httptest).
// audience — audience Management API; пустой — https://{domain}/api/v2/.
// httpClient — HTTP-клиент (nil — клиент с таймаутом 30s).
// Возвращает ошибку при пустых credentials или некорректном домене.
func New(domain, audience, clientID, clientSecret string, httpClient *http.Client, logger *slog.Logger) (*Client, error) {
	baseURL, err := normalizeDomain(domain)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(clientID) == "" {
		return nil, errors.New("auth0: client id не задан")
	}
	if strings.TrimSpace(clientSecret) == "" {
		return nil, errors.New("auth0: client secret не задан")
	}
	if audience == "" {
		audience = baseURL + "/api/v2/"
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL:      baseURL,
		audience:     audience,
		clientID:     clientID,
		clientSecret: clientSecret,
		httpClient:   httpClient,
		logger:       logger.With(slog.String("component", "auth0_client")),
	}, nil
}

// normalizeDomain превращает домен в базовый URL.
// Без схемы подставляется https://.
func normalizeDomain(domain string) (string, error) {
	domain = strings.TrimRight(strings.TrimSpace(domain), "/")
	if domain == "" {
		return "", errors.New("auth0: домен не задан")
	}
	if !strings.HasPrefix(domain, "http://") && !strings.HasPrefix(domain, "https://") {
		domain = "https://" + domain
	}

	u, err := url.Parse(domain)
	if err != nil {
		return "", fmt.Errorf("auth0: некорректный домен %q: %w", domain, err)
	}
	if u.Host == "" || (u.Path != "" && u.Path != "/") {
		return "", fmt.Errorf("auth0: некорректный домен %q", domain)
	}

	return u.Scheme + "://" + u.Host, nil
}

// BaseURL возвращает базовый URL tenant'а.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// --- Аутентификация ---

// getToken возвращает актуальный management token, обновляя при необходимости.
// Токен обновляется за 30 секунд до истечения.
func (c *Client) getToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.accessToken != "" && time.Now().Add(30*time.Second).Before(c.tokenExpiry) {
		return c.accessToken, nil
	}

	token, err := c.requestToken(ctx)
	if err != nil {
		return "", err
	}

	c.accessToken = token.AccessToken
	c.tokenExpiry = tokenExpiry(token, time.Now())

	c.logger.Debug("Auth0 токен обновлён",
		slog.Time("expires_at", c.tokenExpiry),
	)

	return c.accessToken, nil
}

// tokenExpiry вычисляет момент истечения токена: expires_in → exp из JWT → defaultTokenTTL.
// Подпись не проверяется: токен получен напрямую от Auth0 и нужен только срок.
func tokenExpiry(token *TokenResponse, now time.Time) time.Time {
	if token.ExpiresIn > 0 {
		return now.Add(time.Duration(token.ExpiresIn) * time.Second)
	}

	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token.AccessToken, claims); err == nil && claims.ExpiresAt != nil {
		return claims.ExpiresAt.Time
	}

	return now.Add(defaultTokenTTL)
}

// requestToken выполняет Client Credentials flow.
func (c *Client) requestToken(ctx context.Context) (*TokenResponse, error) {
	body, err := json.Marshal(map[string]string{
		"grant_type":    "client_credentials",
		"client_id":     c.clientID,
		"client_secret": c.clientSecret,
		"audience":      c.audience,
	})
	if err != nil {
		return nil, fmt.Errorf("сериализация запроса токена: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/oauth/token", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("создание запроса токена: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("запрос токена Auth0: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("Auth0 вернул статус %d при запросе токена: %s", resp.StatusCode, string(data))
	}

	var token TokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return nil, fmt.Errorf("декодирование токена Auth0: %w", err)
	}
	if token.AccessToken == "" {
		return nil, errors.New("Auth0 вернул пустой access_token")
	}

	return &token, nil
}

// --- HTTP helpers ---

// doAuthorized выполняет HTTP-запрос к Management API с авторизацией.
// path — путь относительно /api/v2, query — параметры (может быть nil).
func (c *Client) doAuthorized(ctx context.Context, method, path string, query url.Values, body any) (*http.Response, error) {
	token, err := c.getToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("получение токена: %w", err)
	}

	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("сериализация тела запроса: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	reqURL := c.baseURL + "/api/v2" + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("создание запроса: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.httpClient.Do(req)
}

// call выполняет запрос, проверяет статус и декодирует JSON-ответ в target (если не nil).
// Каждый вызов учитывается в метриках upstream.
func (c *Client) call(ctx context.Context, op, method, path string, query url.Values, body, target any) (err error) {
	start := time.Now()
	defer func() { observe(op, start, err) }()

	resp, err := c.doAuthorized(ctx, method, path, query, body)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newAPIError(op, resp)
	}

	if target != nil {
		if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
			return fmt.Errorf("%s: декодирование ответа Auth0: %w", op, err)
		}
	}

	return nil
}

// newAPIError строит APIError из ответа с неуспешным статусом.
func newAPIError(op string, resp *http.Response) *APIError {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))

	apiErr := &APIError{
		Operation:  op,
		StatusCode: resp.StatusCode,
		Message:    strings.TrimSpace(string(data)),
	}

	var body apiErrorBody
	if json.Unmarshal(data, &body) == nil && body.Message != "" {
		apiErr.Message = body.Message
		apiErr.Code = body.ErrorCode
	}

	return apiErr
}

// pageQuery формирует общие параметры пагинации.
func pageQuery(page, perPage int, sort string, includeTotals bool) url.Values {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	if perPage > 0 {
		q.Set("per_page", strconv.Itoa(perPage))
	}
	if sort != "" {
		q.Set("sort", sort)
	}
	q.Set("include_totals", strconv.FormatBool(includeTotals))
	return q
}

// --- Users API ---

// ListUsers возвращает страницу пользователей.
// С IncludeTotals=false Auth0 отвечает массивом — Total тогда равен 0.
func (c *Client) ListUsers(ctx context.Context, params ListUsersParams) (*UserPage, error) {
	q := pageQuery(params.Page, params.PerPage, params.Sort, params.IncludeTotals)
	if params.Q != "" {
		q.Set("q", params.Q)
	}
	if params.Connection != "" {
		q.Set("connection", params.Connection)
	}
	if params.SearchEngine != "" {
		q.Set("search_engine", params.SearchEngine)
	}

	if !params.IncludeTotals {
		var users []User
		if err := c.call(ctx, "ListUsers", http.MethodGet, "/users", q, nil, &users); err != nil {
			return nil, err
		}
		return &UserPage{Users: users, Start: params.Page * params.PerPage, Limit: params.PerPage, Length: len(users)}, nil
	}

	var page UserPage
	if err := c.call(ctx, "ListUsers", http.MethodGet, "/users", q, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetUser возвращает пользователя по user_id.
// Отсутствующий пользователь — ошибка, удовлетворяющая errors.Is(err, ErrNotFound).
func (c *Client) GetUser(ctx context.Context, id string) (*User, error) {
	var user User
	if err := c.call(ctx, "GetUser", http.MethodGet, "/users/"+url.PathEscape(id), nil, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateUser создаёт пользователя.
func (c *Client) CreateUser(ctx context.Context, req *CreateUserRequest) (*User, error) {
	var user User
	if err := c.call(ctx, "CreateUser", http.MethodPost, "/users", nil, req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUser частично обновляет пользователя (PATCH).
func (c *Client) UpdateUser(ctx context.Context, id string, req *UpdateUserRequest) (*User, error) {
	var user User
	if err := c.call(ctx, "UpdateUser", http.MethodPatch, "/users/"+url.PathEscape(id), nil, req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteUser удаляет пользователя.
func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.call(ctx, "DeleteUser", http.MethodDelete, "/users/"+url.PathEscape(id), nil, nil, nil)
}

// GetUserLogs возвращает события журнала пользователя.
func (c *Client) GetUserLogs(ctx context.Context, id string, params PageParams) ([]LogEvent, error) {
	q := pageQuery(params.Page, params.PerPage, params.Sort, false)

	var logs []LogEvent
	if err := c.call(ctx, "GetUserLogs", http.MethodGet, "/users/"+url.PathEscape(id)+"/logs", q, nil, &logs); err != nil {
		return nil, err
	}
	return logs, nil
}

// --- Connections / Clients API ---

// ListConnections возвращает connections tenant'а.
func (c *Client) ListConnections(ctx context.Context, params PageParams) ([]Connection, error) {
	q := pageQuery(params.Page, params.PerPage, params.Sort, false)

	var connections []Connection
	if err := c.call(ctx, "ListConnections", http.MethodGet, "/connections", q, nil, &connections); err != nil {
		return nil, err
	}
	return connections, nil
}

// ListClients возвращает приложения tenant'а.
func (c *Client) ListClients(ctx context.Context, params PageParams) ([]Client, error) {
	q := pageQuery(params.Page, params.PerPage, params.Sort, false)

	var clients []Client
	if err := c.call(ctx, "ListClients", http.MethodGet, "/clients", q, nil, &clients); err != nil {
		return nil, err
	}
	return clients, nil
}

// --- Logs API ---

// ListLogs возвращает страницу журнала событий tenant'а.
func (c *Client) ListLogs(ctx context.Context, params ListLogsParams) (*LogPage, error) {
	q := pageQuery(params.Page, params.PerPage, params.Sort, params.IncludeTotals)
	if params.Q != "" {
		q.Set("q", params.Q)
	}

	if !params.IncludeTotals {
		var logs []LogEvent
		if err := c.call(ctx, "ListLogs", http.MethodGet, "/logs", q, nil, &logs); err != nil {
			return nil, err
		}
		return &LogPage{Logs: logs, Start: params.Page * params.PerPage, Limit: params.PerPage, Length: len(logs)}, nil
	}

	var page LogPage
	if err := c.call(ctx, "ListLogs", http.MethodGet, "/logs", q, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// --- Readiness checker ---

// CheckReady проверяет доступность Management API (токен + минимальный запрос).
// Реализует handlers.ReadinessChecker.
func (c *Client) CheckReady() (string, string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := c.ListConnections(ctx, PageParams{PerPage: 1}); err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusTooManyRequests {
			return "degraded", "Auth0 ограничивает частоту запросов"
		}
		return "fail", fmt.Sprintf("Auth0 недоступен: %v", err)
	}

	return "ok", fmt.Sprintf("Auth0 %s доступен", c.baseURL)
}
