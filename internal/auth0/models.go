// Пакет auth0 — HTTP-клиент к Auth0 Management API v2.
// models.go — модели ресурсов и параметры запросов.
package auth0

import "time"

// TokenResponse — ответ на запрос токена через Client Credentials flow.
type TokenResponse struct {
	AccessToken string `json:"access_token"` //nolint:gosec // G117: структура токена OAuth2
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// Identity — привязка пользователя к connection.
type Identity struct {
	Connection string `json:"connection"`
	Provider   string `json:"provider"`
	UserID     string `json:"user_id"`
	IsSocial   bool   `json:"isSocial"`
}

// User — пользователь Auth0.
type User struct {
	UserID        string     `json:"user_id"`
	Email         string     `json:"email,omitempty"`
	EmailVerified bool       `json:"email_verified"`
	Username      string     `json:"username,omitempty"`
	Name          string     `json:"name,omitempty"`
	GivenName     string     `json:"given_name,omitempty"`
	FamilyName    string     `json:"family_name,omitempty"`
	Nickname      string     `json:"nickname,omitempty"`
	Picture       string     `json:"picture,omitempty"`
	PhoneNumber   string     `json:"phone_number,omitempty"`
	Blocked       *bool      `json:"blocked,omitempty"`
	LoginsCount   int        `json:"logins_count,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	LastLogin     *time.Time `json:"last_login,omitempty"`
	Identities    []Identity `json:"identities,omitempty"`
}

// IsBlocked возвращает признак блокировки (отсутствие поля — не заблокирован).
func (u *User) IsBlocked() bool {
	return u.Blocked != nil && *u.Blocked
}

// ConnectionName возвращает имя connection первой identity.
func (u *User) ConnectionName() string {
	if len(u.Identities) == 0 {
		return ""
	}
	return u.Identities[0].Connection
}

// DisplayName — имя для таблиц: name → email → user_id.
func (u *User) DisplayName() string {
	switch {
	case u.Name != "":
		return u.Name
	case u.Email != "":
		return u.Email
	default:
		return u.UserID
	}
}

// Connection — connection (источник identity) в Auth0.
type Connection struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	DisplayName    string   `json:"display_name,omitempty"`
	Strategy       string   `json:"strategy"`
	EnabledClients []string `json:"enabled_clients,omitempty"`
}

// Client — приложение (client) в Auth0.
type Client struct {
	ClientID     string   `json:"client_id"`
	Name         string   `json:"name"`
	Description  string   `json:"description,omitempty"`
	AppType      string   `json:"app_type,omitempty"`
	LogoURI      string   `json:"logo_uri,omitempty"`
	IsFirstParty bool     `json:"is_first_party"`
	Callbacks    []string `json:"callbacks,omitempty"`
}

// LogEvent — событие журнала Auth0.
type LogEvent struct {
	LogID       string    `json:"log_id"`
	Date        time.Time `json:"date"`
	Type        string    `json:"type"`
	Description string    `json:"description,omitempty"`
	ClientID    string    `json:"client_id,omitempty"`
	ClientName  string    `json:"client_name,omitempty"`
	IP          string    `json:"ip,omitempty"`
	UserID      string    `json:"user_id,omitempty"`
	UserName    string    `json:"user_name,omitempty"`
	Connection  string    `json:"connection,omitempty"`
}

// logTypeLabels — человекочитаемые названия основных кодов событий.
var logTypeLabels = map[string]string{
	"s":        "Success Login",
	"f":        "Failed Login",
	"fp":       "Incorrect Password",
	"fu":       "Invalid Email/Username",
	"ss":       "Success Signup",
	"fs":       "Failed Signup",
	"slo":      "Success Logout",
	"scp":      "Success Change Password",
	"fcp":      "Failed Change Password",
	"sv":       "Success Verification Email",
	"seccft":   "Success Exchange",
	"feccft":   "Failed Exchange",
	"sapi":     "Success API Operation",
	"fapi":     "Failed API Operation",
	"limit_wc": "Blocked Account",
}

// TypeLabel возвращает название типа события; неизвестный код — как есть.
func (e *LogEvent) TypeLabel() string {
	if label, ok := logTypeLabels[e.Type]; ok {
		return label
	}
	return e.Type
}

// IsFailure — событие относится к неуспешным (код начинается с "f" или limit_).
func (e *LogEvent) IsFailure() bool {
	return len(e.Type) > 0 && (e.Type[0] == 'f' || e.Type == "limit_wc")
}

// --- Параметры и страницы ---

// PageParams — параметры постраничного запроса без фильтров.
type PageParams struct {
	Page    int
	PerPage int
	Sort    string
}

// ListUsersParams — параметры запроса списка пользователей.
type ListUsersParams struct {
	Page          int
	PerPage       int
	Q             string
	Connection    string
	Sort          string
	SearchEngine  string
	IncludeTotals bool
}

// ListLogsParams — параметры запроса журнала событий.
type ListLogsParams struct {
	Page          int
	PerPage       int
	Q             string
	Sort          string
	IncludeTotals bool
}

// UserPage — страница пользователей (ответ с include_totals=true).
type UserPage struct {
	Users  []User `json:"users"`
	Start  int    `json:"start"`
	Limit  int    `json:"limit"`
	Length int    `json:"length"`
	Total  int    `json:"total"`
}

// LogPage — страница событий (ответ с include_totals=true).
type LogPage struct {
	Logs   []LogEvent `json:"logs"`
	Start  int        `json:"start"`
	Limit  int        `json:"limit"`
	Length int        `json:"length"`
	Total  int        `json:"total"`
}

// --- Запросы на изменение ---

// CreateUserRequest — тело POST /users.
// Необязательные поля — указатели: nil не сериализуется, Auth0 различает
// «не передано» и «пустая строка».
type CreateUserRequest struct {
	Connection  string  `json:"connection"`
	Email       *string `json:"email,omitempty"`
	Password    *string `json:"password,omitempty"` //nolint:gosec // G117: пароль создаваемого пользователя
	Username    *string `json:"username,omitempty"`
	GivenName   *string `json:"given_name,omitempty"`
	FamilyName  *string `json:"family_name,omitempty"`
	Name        *string `json:"name,omitempty"`
	VerifyEmail *bool   `json:"verify_email,omitempty"`
}

// UpdateUserRequest — тело PATCH /users/{id}. Передаются только заданные поля.
type UpdateUserRequest struct {
	Email       *string `json:"email,omitempty"`
	Username    *string `json:"username,omitempty"`
	GivenName   *string `json:"given_name,omitempty"`
	FamilyName  *string `json:"family_name,omitempty"`
	Name        *string `json:"name,omitempty"`
	Nickname    *string `json:"nickname,omitempty"`
	PhoneNumber *string `json:"phone_number,omitempty"`
	Picture     *string `json:"picture,omitempty"`
	Password    *string `json:"password,omitempty"` //nolint:gosec // G117: новый пароль пользователя
	Blocked     *bool   `json:"blocked,omitempty"`
}
