// Пакет i18n — интернационализация IdP Console.
// Предоставляет функции T(ctx, key) и Tf(ctx, key, args...) для получения
// переведённых строк из контекста HTTP-запроса.
// Поддерживаемые языки: English (en), Русский (ru).
// Язык определяется middleware: cookie "lang" → Accept-Language → default "en".
package i18n

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"log/slog"

	"golang.org/x/text/language"
)

// localeFS — каталоги переводов locales/{lang}.json.
//
//go:embed locales/*.json
var localeFS embed.FS

// DefaultLang — язык по умолчанию и fallback для отсутствующих ключей.
const DefaultLang = "en"

// Languages — поддерживаемые языки в порядке предпочтения.
var Languages = []string{"en", "ru"}

// matcher — языковой matcher для Accept-Language.
var matcher = language.NewMatcher([]language.Tag{language.English, language.Russian})

// Bundle — переводы для всех языков. Только для чтения после Load.
type Bundle struct {
	catalogs map[string]map[string]string // lang → key → translation
}

// Load загружает каталоги locales/{lang}.json из встроенной файловой системы.
func Load(logger *slog.Logger) (*Bundle, error) {
	b := &Bundle{catalogs: make(map[string]map[string]string, len(Languages))}

	for _, lang := range Languages {
		path := fmt.Sprintf("locales/%s.json", lang)
		data, err := localeFS.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("i18n: не удалось прочитать %s: %w", path, err)
		}

		var messages map[string]string
		if err := json.Unmarshal(data, &messages); err != nil {
			return nil, fmt.Errorf("i18n: ошибка парсинга каталога %s: %w", lang, err)
		}
		b.catalogs[lang] = messages

		logger.Debug("i18n каталог загружен",
			slog.String("lang", lang),
			slog.Int("keys", len(messages)),
		)
	}

	return b, nil
}

// Translate возвращает перевод по ключу для указанного языка.
// Fallback — английский, затем сам ключ.
func (b *Bundle) Translate(lang, key string) string {
	if msg, ok := b.catalogs[lang][key]; ok {
		return msg
	}
	if msg, ok := b.catalogs[DefaultLang][key]; ok {
		return msg
	}
	return key
}

// MatchLanguage определяет лучший язык из Accept-Language заголовка.
// Возвращает "en" или "ru".
func MatchLanguage(acceptLanguage string) string {
	_, idx := language.MatchStrings(matcher, acceptLanguage)
	return Languages[idx]
}

// IsSupported — язык входит в Languages.
func IsSupported(lang string) bool {
	for _, l := range Languages {
		if l == lang {
			return true
		}
	}
	return false
}

// --- Контекст запроса ---

type contextKey struct{}

// localizer — язык запроса и каталоги.
type localizer struct {
	lang   string
	bundle *Bundle
}

// WithLang помещает язык и каталоги в контекст.
func WithLang(ctx context.Context, bundle *Bundle, lang string) context.Context {
	return context.WithValue(ctx, contextKey{}, localizer{lang: lang, bundle: bundle})
}

// LangFromContext извлекает язык из контекста. Default: "en".
func LangFromContext(ctx context.Context) string {
	if l, ok := ctx.Value(contextKey{}).(localizer); ok && l.lang != "" {
		return l.lang
	}
	return DefaultLang
}

// T возвращает перевод по ключу на языке запроса.
// Без каталогов в контексте возвращается ключ.
func T(ctx context.Context, key string) string {
	l, ok := ctx.Value(contextKey{}).(localizer)
	if !ok || l.bundle == nil {
		return key
	}
	return l.bundle.Translate(l.lang, key)
}

// Tf — T с подстановкой аргументов.
func Tf(ctx context.Context, key string, args ...any) string {
	return sprintf(T(ctx, key), args...)
}

// sprintf — fmt.Sprintf через переменную: формат-строки приходят из JSON-каталогов,
// статическая printf-проверка к ним неприменима.
var sprintf = fmt.Sprintf
