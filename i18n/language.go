// Package i18n resolves bilingual record fields and negotiates the display
// language of a request.
package i18n

import (
	"context"
	"strings"

	"golang.org/x/text/language"
)

// Language is a display language of the site.
type Language string

const (
	English    Language = "en"
	Vietnamese Language = "vi"

	// Default is the language every bilingual field falls back to.
	Default = English
)

var (
	supported = []Language{English, Vietnamese}
	matcher   = language.NewMatcher([]language.Tag{language.English, language.Vietnamese})
)

// Supported returns the display languages in preference order.
func Supported() []Language {
	out := make([]Language, len(supported))
	copy(out, supported)
	return out
}

// Parse accepts a supported language code or any BCP 47 tag whose base
// language is supported ("vi-VN" becomes vi).
func Parse(value string) (Language, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", false
	}
	tag, err := language.Parse(value)
	if err != nil {
		return "", false
	}
	base, _ := tag.Base()
	for _, lang := range supported {
		if base.String() == string(lang) {
			return lang, true
		}
	}
	return "", false
}

// MatchTags picks the supported language closest to tags, or Default.
func MatchTags(tags ...language.Tag) Language {
	if len(tags) == 0 {
		return Default
	}
	_, index, confidence := matcher.Match(tags...)
	if confidence == language.No || index < 0 || index >= len(supported) {
		return Default
	}
	return supported[index]
}

func (l Language) String() string {
	return string(l)
}

type ctxKey struct{}

// WithLanguage returns a copy of ctx carrying lang.
func WithLanguage(ctx context.Context, lang Language) context.Context {
	return context.WithValue(ctx, ctxKey{}, lang)
}

// FromContext returns the language carried by ctx, or Default.
func FromContext(ctx context.Context) Language {
	if lang, ok := ctx.Value(ctxKey{}).(Language); ok && lang != "" {
		return lang
	}
	return Default
}
