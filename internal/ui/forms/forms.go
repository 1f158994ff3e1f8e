// Package forms — декларативная валидация HTML-форм.
// Правила описываются таблицей (Schema), проверка накапливает все ошибки.
package forms

import (
	"net/mail"
	"net/url"
	"strings"
	"unicode/utf8"
)

// MinPasswordLength — минимальная длина пароля.
const MinPasswordLength = 8

// Kind — тип правила валидации.
type Kind int

const (
	// Required — значение не пустое после trim.
	Required Kind = iota
	// MinLength — длина значения в символах не меньше Min.
	MinLength
	// Email — значение является одиночным email-адресом.
	Email
	// URL — абсолютный http(s) URL с хостом.
	URL
)

// Rule — одно правило поля.
type Rule struct {
	Kind    Kind
	Min     int
	Message string
}

// Field — поле формы и его правила, проверяемые по порядку.
type Field struct {
	Name  string
	Rules []Rule
}

// Schema — упорядоченная таблица правил формы.
type Schema []Field

// Validate проверяет значения по схеме и возвращает все найденные ошибки.
// Правила кроме Required пропускают пустое значение: необязательное
// незаполненное поле ошибок не даёт.
func Validate(values Values, schema Schema) Errors {
	var errs Errors
	for _, field := range schema {
		value := values.Get(field.Name)
		for _, rule := range field.Rules {
			if !rule.check(value) {
				errs.Add(field.Name, rule.Message)
			}
		}
	}
	return errs
}

func (r Rule) check(value string) bool {
	if r.Kind == Required {
		return strings.TrimSpace(value) != ""
	}
	if value == "" {
		return true
	}

	switch r.Kind {
	case MinLength:
		return utf8.RuneCountInString(value) >= r.Min
	case Email:
		return isEmail(value)
	case URL:
		return isURL(value)
	default:
		return true
	}
}

// isEmail — ровно один адрес без display name.
func isEmail(value string) bool {
	addr, err := mail.ParseAddress(value)
	if err != nil {
		return false
	}
	return addr.Name == "" && addr.Address == value && strings.Contains(addr.Address, "@")
}

func isURL(value string) bool {
	u, err := url.Parse(value)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
