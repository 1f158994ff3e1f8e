package forms

// Errors — набор ошибок валидации: по полям и общие для формы.
// Пустой набор означает успешную проверку.
type Errors struct {
	Fields map[string][]string
	Base   []string
}

// Add добавляет сообщение к полю.
func (e *Errors) Add(field, message string) {
	if e.Fields == nil {
		e.Fields = make(map[string][]string)
	}
	e.Fields[field] = append(e.Fields[field], message)
}

// AddBase добавляет общее сообщение формы (например, ошибку Auth0).
func (e *Errors) AddBase(message string) {
	e.Base = append(e.Base, message)
}

// IsEmpty — ошибок нет.
func (e Errors) IsEmpty() bool {
	return len(e.Fields) == 0 && len(e.Base) == 0
}

// For возвращает сообщения поля.
func (e Errors) For(field string) []string {
	return e.Fields[field]
}

// Has — у поля есть хотя бы одна ошибка.
func (e Errors) Has(field string) bool {
	return len(e.Fields[field]) > 0
}
