// Package i18n selects the response language and holds the localized
// user-facing messages of the API.
package i18n

import (
	"strings"
)

// Lang is a supported response language.
type Lang string

const (
	// TR is Turkish, the default language.
	TR Lang = "tr"
	// EN is English.
	EN Lang = "en"
)

// Parse returns the supported language for s, ok is false for anything else.
func Parse(s string) (Lang, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) > 2 {
		s = s[:2]
	}

	switch Lang(s) {
	case TR:
		return TR, true
	case EN:
		return EN, true
	default:
		return TR, false
	}
}

// Detect picks the language from the explicit candidates in order (query and
// body values), then from an Accept-Language header, defaulting to Turkish.
func Detect(acceptLanguage string, explicit ...string) Lang {
	for _, e := range explicit {
		if l, ok := Parse(e); ok {
			return l
		}
	}

	for _, part := range strings.Split(acceptLanguage, ",") {
		tag, _, _ := strings.Cut(part, ";")
		if l, ok := Parse(tag); ok {
			return l
		}
	}

	return TR
}

// T returns the message for key in lang. Unknown keys are returned as is.
func T(lang Lang, key Key) string {
	m, ok := catalog[key]
	if !ok {
		return string(key)
	}

	if lang == EN {
		return m.en
	}

	return m.tr
}
