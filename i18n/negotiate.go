package i18n

import (
	"net/http"
	"strings"
	"time"

	"golang.org/x/text/language"
)

const (
	// LangParam is the query parameter used to select a language.
	LangParam = "lang"
	// LangCookieName stores the visitor's language preference.
	LangCookieName = "portfolio-language"
)

// Negotiate picks the display language from an explicit choice, then the
// persisted preference, then the Accept-Language header, then Default.
// The bool reports whether the explicit choice should be persisted.
func Negotiate(query, cookie, acceptLanguage string) (Language, bool) {
	if lang, ok := Parse(query); ok {
		return lang, true
	}
	if lang, ok := Parse(cookie); ok {
		return lang, false
	}
	if accept := strings.TrimSpace(acceptLanguage); accept != "" {
		if tags, _, err := language.ParseAcceptLanguage(accept); err == nil {
			return MatchTags(tags...), false
		}
	}
	return Default, false
}

// ResolveRequest negotiates the language of r.
func ResolveRequest(r *http.Request) (Language, bool) {
	if r == nil {
		return Default, false
	}
	var cookie string
	if c, err := r.Cookie(LangCookieName); err == nil {
		cookie = c.Value
	}
	return Negotiate(r.URL.Query().Get(LangParam), cookie, r.Header.Get("Accept-Language"))
}

// SetLanguageCookie persists the selected language on the response.
func SetLanguageCookie(w http.ResponseWriter, lang Language) {
	http.SetCookie(w, &http.Cookie{
		Name:     LangCookieName,
		Value:    lang.String(),
		Path:     "/",
		MaxAge:   int((365 * 24 * time.Hour).Seconds()),
		SameSite: http.SameSiteLaxMode,
	})
}
