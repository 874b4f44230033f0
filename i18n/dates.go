package i18n

import (
	"time"

	"github.com/ncruces/go-strftime"
)

// DateFormatKey holds a strftime pattern for news dates.
const DateFormatKey = "news.dateFormat"

// FormatDate renders t with the localized news date pattern. An unknown or
// unusable pattern falls back to the language default, and that to the raw
// time value. The zero time renders as the empty string.
func FormatDate(t time.Time, loc *Localizer) string {
	if t.IsZero() {
		return ""
	}

	if pattern, ok := loc.Raw(DateFormatKey); ok {
		if s, ok := formatStrftime(t, pattern); ok {
			return s
		}
	}

	pattern := "%b %d, %Y"
	if loc != nil && loc.IsRTL() {
		pattern = "%d %b %Y"
	}
	if s, ok := formatStrftime(t, pattern); ok {
		return s
	}
	return t.String()
}

func formatStrftime(t time.Time, pattern string) (string, bool) {
	if pattern == "" {
		return "", false
	}
	layout, err := strftime.Layout(pattern)
	if err != nil {
		return "", false
	}
	return t.Format(layout), true
}
