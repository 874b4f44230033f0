package templates

import (
	"context"
	"fmt"
	"html/template"
	"net/url"
	"strings"
	"time"

	"github.com/a-h/templ"
	"github.com/applkanji/website/i18n"
	"github.com/applkanji/website/store"
)

// Reveal names a scroll-triggered entrance animation.
type Reveal string

const (
	RevealFadeUp     Reveal = "fadeUp"
	RevealFadeIn     Reveal = "fadeIn"
	RevealSlideLeft  Reveal = "slideLeft"
	RevealSlideRight Reveal = "slideRight"
	RevealScale      Reveal = "scale"
	RevealParallax   Reveal = "parallax"
)

func (r Reveal) Valid() bool {
	switch r {
	case RevealFadeUp, RevealFadeIn, RevealSlideLeft, RevealSlideRight, RevealScale, RevealParallax:
		return true
	}
	return false
}

// ForDirection mirrors the horizontal slides for right-to-left pages.
func (r Reveal) ForDirection(rtl bool) Reveal {
	if !rtl {
		return r
	}
	switch r {
	case RevealSlideLeft:
		return RevealSlideRight
	case RevealSlideRight:
		return RevealSlideLeft
	}
	return r
}

// RevealAttrs returns the data attributes read by reveal.js. Unknown
// variants fall back to fadeUp.
func RevealAttrs(variant string, delayMillis int, rtl bool) template.HTMLAttr {
	r := Reveal(variant)
	if !r.Valid() {
		r = RevealFadeUp
	}
	r = r.ForDirection(rtl)
	if delayMillis <= 0 {
		return template.HTMLAttr(fmt.Sprintf(`data-reveal="%s"`, r))
	}
	return template.HTMLAttr(fmt.Sprintf(`data-reveal="%s" data-reveal-delay="%d"`, r, delayMillis))
}

// Render turns a component into HTML for use inside an html/template page.
func Render(ctx context.Context, c templ.Component) (template.HTML, error) {
	return templ.ToGoHTML(ctx, c)
}

func serviceURL(s store.Service) string {
	return "/services/" + url.PathEscape(s.ID)
}

func mailtoURL(email string) template.URL {
	return template.URL("mailto:" + url.PathEscape(email))
}

// splitSkills turns a comma separated expertise line into chips. The Arabic
// comma separates as well.
func splitSkills(line string) []string {
	fields := strings.FieldsFunc(line, func(r rune) bool {
		return r == ',' || r == '،'
	})
	skills := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			skills = append(skills, f)
		}
	}
	return skills
}

func langURL(tag string) string {
	return "/lang/" + url.PathEscape(tag)
}

// FuncMap holds the helpers available to every page template.
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"reveal":     RevealAttrs,
		"serviceURL": serviceURL,
		"mailto":     mailtoURL,
		"langURL":    langURL,
		"skills":     splitSkills,
		"formatDate": func(t time.Time, loc *i18n.Localizer) string {
			return i18n.FormatDate(t, loc)
		},
		"stagger": func(i, step int) int {
			return i * step
		},
		"odd": func(i int) bool {
			return i%2 == 1
		},
		"add": func(a, b int) int {
			return a + b
		},
		"upper": strings.ToUpper,
	}
}
