package forms

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_CreateUser_AllMissing(t *testing.T) {
	errs := Validate(Values{}, CreateUserSchema)

	require.False(t, errs.IsEmpty())
	assert.Equal(t, []string{MsgEmailRequired}, errs.For("email"))
	assert.Equal(t, []string{MsgPasswordRequired}, errs.For("password"))
	assert.Equal(t, []string{MsgConnectionNeeded}, errs.For("connection"))
	assert.Empty(t, errs.Base)
}

// Ошибки накапливаются по всем полям, проверка не останавливается на первой.
func TestValidate_CreateUser_Accumulates(t *testing.T) {
	errs := Validate(Values{
		"email":      "not-an-email",
		"password":   "short",
		"connection": "Username-Password-Authentication",
	}, CreateUserSchema)

	assert.Equal(t, []string{"Must be a valid email address"}, errs.For("email"))
	assert.Equal(t, []string{"Password must be at least 8 characters"}, errs.For("password"))
	assert.False(t, errs.Has("connection"))
	assert.Len(t, errs.Fields, 2)
}

func TestValidate_CreateUser_Valid(t *testing.T) {
	errs := Validate(Values{
		"email":      "alice@example.com",
		"password":   "12345678",
		"connection": "Username-Password-Authentication",
	}, CreateUserSchema)

	assert.True(t, errs.IsEmpty())
}

func TestValidate_WhitespaceIsNotPresent(t *testing.T) {
	errs := Validate(Values{"email": "   ", "password": "longenough", "connection": "\t"}, CreateUserSchema)

	assert.Contains(t, errs.For("email"), MsgEmailRequired)
	assert.Contains(t, errs.For("connection"), MsgConnectionNeeded)
}

// Пустые необязательные поля при редактировании ошибок не дают.
func TestValidate_UpdateUser_EmptyOptional(t *testing.T) {
	errs := Validate(Values{"email": "", "picture": "", "password": "", "nickname": ""}, UpdateUserSchema)
	assert.True(t, errs.IsEmpty())
}

func TestValidate_UpdateUser_Invalid(t *testing.T) {
	errs := Validate(Values{
		"email":    "a@b@c",
		"picture":  "avatar.png",
		"password": "1234567",
	}, UpdateUserSchema)

	assert.Equal(t, []string{MsgEmailInvalid}, errs.For("email"))
	assert.Equal(t, []string{MsgURLInvalid}, errs.For("picture"))
	assert.Equal(t, []string{MsgPasswordTooShort}, errs.For("password"))
}

func TestRule_Email(t *testing.T) {
	rule := Rule{Kind: Email, Message: MsgEmailInvalid}

	tests := []struct {
		value string
		want  bool
	}{
		{"alice@example.com", true},
		{"first.last+tag@sub.example.org", true},
		{"Alice <alice@example.com>", false},
		{"alice@example.com, bob@example.com", false},
		{"alice", false},
		{"@example.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			assert.Equal(t, tt.want, rule.check(tt.value))
		})
	}
}

func TestRule_URL(t *testing.T) {
	rule := Rule{Kind: URL, Message: MsgURLInvalid}

	assert.True(t, rule.check("https://cdn.example.com/a.png"))
	assert.True(t, rule.check("http://localhost:8080/x"))
	assert.False(t, rule.check("ftp://example.com/a.png"))
	assert.False(t, rule.check("https://"))
	assert.False(t, rule.check("/relative/path"))
}

// Длина пароля считается в символах, не в байтах.
func TestRule_MinLength_Runes(t *testing.T) {
	rule := Rule{Kind: MinLength, Min: MinPasswordLength, Message: MsgPasswordTooShort}

	assert.True(t, rule.check("пароль12"))
	assert.False(t, rule.check("пароль1"))
}

func TestValidate_FieldWithoutRules(t *testing.T) {
	schema := Schema{{Name: "nickname"}}
	assert.True(t, Validate(Values{"nickname": ""}, schema).IsEmpty())
}

func TestErrors_Base(t *testing.T) {
	var errs Errors
	require.True(t, errs.IsEmpty())

	errs.AddBase("The user already exists.")
	assert.False(t, errs.IsEmpty())
	assert.Equal(t, []string{"The user already exists."}, errs.Base)
	assert.False(t, errs.Has("email"))
}

func TestValues(t *testing.T) {
	v := FromURLValues(url.Values{
		"email":        {" alice@example.com ", "ignored"},
		"given_name":   {"   "},
		"password":     {" pass word "},
		"verify_email": {"on"},
	})

	require.NotNil(t, v.Optional("email"))
	assert.Equal(t, "alice@example.com", *v.Optional("email"))
	assert.Nil(t, v.Optional("given_name"))
	assert.Nil(t, v.Optional("missing"))

	require.NotNil(t, v.OptionalRaw("password"))
	assert.Equal(t, " pass word ", *v.OptionalRaw("password"))

	require.NotNil(t, v.Checked("verify_email"))
	assert.True(t, *v.Checked("verify_email"))
	assert.Nil(t, v.Checked("blocked"))

	v["blocked"] = "off"
	require.NotNil(t, v.Checked("blocked"))
	assert.False(t, *v.Checked("blocked"))
}
