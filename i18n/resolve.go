package i18n

import (
	"net/http"
	"strings"

	"golang.org/x/text/language"
)

// LangParam is the query parameter used to select a language.
const LangParam = "lang"

// LanguageOption represents a supported language in the language switch.
type LanguageOption struct {
	Tag    string
	Label  string
	Active bool
}

// ParseTag parses value and reports whether it names a supported language.
func ParseTag(value string) (language.Tag, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return language.Und, false
	}
	tag, err := language.Parse(value)
	if err != nil {
		return language.Und, false
	}
	base, _ := tag.Base()
	for _, t := range supportedTags {
		if tb, _ := t.Base(); tb == base {
			return t, true
		}
	}
	return language.Und, false
}

// ResolveTag determines the language for the request: the lang query
// parameter, then the stored preference, then Accept-Language, then the
// default. The bool indicates whether the query value should be stored.
func ResolveTag(r *http.Request, stored string) (language.Tag, bool) {
	if r == nil {
		return Default(), false
	}

	if tag, ok := ParseTag(r.URL.Query().Get(LangParam)); ok {
		return tag, true
	}

	if tag, ok := ParseTag(stored); ok {
		return tag, false
	}

	if accept := strings.TrimSpace(r.Header.Get("Accept-Language")); accept != "" {
		if tags, _, err := language.ParseAcceptLanguage(accept); err == nil && len(tags) > 0 {
			matched, _, confidence := tagMatcher.Match(tags...)
			if confidence != language.No {
				if tag, ok := ParseTag(matched.String()); ok {
					return tag, false
				}
			}
		}
	}

	return Default(), false
}

// LanguageOptions lists the supported languages with active marked.
func (b *Bundle) LanguageOptions(active language.Tag) []LanguageOption {
	options := make([]LanguageOption, 0, len(supportedTags))
	for _, tag := range supportedTags {
		options = append(options, LanguageOption{
			Tag:    tag.String(),
			Label:  b.Label(tag),
			Active: tag == active,
		})
	}
	return options
}
