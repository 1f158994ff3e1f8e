package forms

// Сообщения валидации форм пользователя.
const (
	MsgEmailRequired    = "Email is required"
	MsgEmailInvalid     = "Must be a valid email address"
	MsgPasswordRequired = "Password is required"
	MsgPasswordTooShort = "Password must be at least 8 characters"
	MsgConnectionNeeded = "Connection is required"
	MsgURLInvalid       = "Must be a valid URL"
)

// CreateUserSchema — правила формы создания пользователя.
var CreateUserSchema = Schema{
	{Name: "email", Rules: []Rule{
		{Kind: Required, Message: MsgEmailRequired},
		{Kind: Email, Message: MsgEmailInvalid},
	}},
	{Name: "password", Rules: []Rule{
		{Kind: Required, Message: MsgPasswordRequired},
		{Kind: MinLength, Min: MinPasswordLength, Message: MsgPasswordTooShort},
	}},
	{Name: "connection", Rules: []Rule{
		{Kind: Required, Message: MsgConnectionNeeded},
	}},
}

// UpdateUserSchema — правила формы редактирования. Все поля необязательны.
var UpdateUserSchema = Schema{
	{Name: "email", Rules: []Rule{{Kind: Email, Message: MsgEmailInvalid}}},
	{Name: "picture", Rules: []Rule{{Kind: URL, Message: MsgURLInvalid}}},
	{Name: "password", Rules: []Rule{{Kind: MinLength, Min: MinPasswordLength, Message: MsgPasswordTooShort}}},
}
