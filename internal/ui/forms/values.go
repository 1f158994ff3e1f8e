package forms

import (
	"net/url"
	"strings"
)

// Values — сырые строковые значения полей формы.
type Values map[string]string

// FromURLValues берёт первое значение каждого поля из разобранной формы.
func FromURLValues(form url.Values) Values {
	v := make(Values, len(form))
	for key, vals := range form {
		if len(vals) > 0 {
			v[key] = vals[0]
		}
	}
	return v
}

// Get возвращает значение поля или пустую строку.
func (v Values) Get(name string) string {
	return v[name]
}

// Optional возвращает nil для пустого (после trim) значения, иначе указатель на trimmed-значение.
func (v Values) Optional(name string) *string {
	s := strings.TrimSpace(v[name])
	if s == "" {
		return nil
	}
	return &s
}

// Checked — значение чекбокса: "on" или "true". Отсутствие поля — nil.
func (v Values) Checked(name string) *bool {
	raw, ok := v[name]
	if !ok {
		return nil
	}
	checked := raw == "on" || raw == "true"
	return &checked
}

// OptionalRaw как Optional, но возвращает значение без trim (для паролей).
func (v Values) OptionalRaw(name string) *string {
	raw := v[name]
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	return &raw
}
