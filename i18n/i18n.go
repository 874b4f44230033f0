// Package i18n loads the site's text catalogs and resolves the language of
// a request.
package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
	"gopkg.in/yaml.v3"
)

//go:embed locales/*.yaml
var localesFS embed.FS

var supportedTags = []language.Tag{
	language.English,
	language.Arabic,
}

var tagMatcher = language.NewMatcher(supportedTags)

// Default returns the default language tag.
func Default() language.Tag {
	return language.English
}

// Supported returns the list of supported language tags.
func Supported() []language.Tag {
	tags := make([]language.Tag, len(supportedTags))
	copy(tags, supportedTags)
	return tags
}

type localeFile struct {
	Locale   string            `yaml:"locale"`
	Label    string            `yaml:"label"`
	Messages map[string]string `yaml:"messages"`
}

// Bundle holds the messages of every locale. Locales other than the default
// fall back to the default locale for keys they do not define.
type Bundle struct {
	builder  *catalog.Builder
	labels   map[language.Tag]string
	messages map[language.Tag]map[string]string
}

var (
	defaultOnce   sync.Once
	defaultBundle *Bundle
)

// DefaultBundle returns the embedded catalogs.
func DefaultBundle() *Bundle {
	defaultOnce.Do(func() {
		b, err := Load(localesFS)
		if err != nil {
			panic(fmt.Sprintf("i18n: embedded locales: %v", err))
		}
		defaultBundle = b
	})
	return defaultBundle
}

// Load reads locales/*.yaml from fsys.
func Load(fsys fs.FS) (*Bundle, error) {
	paths, err := fs.Glob(fsys, "locales/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("glob locales: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no locale files found")
	}
	sort.Strings(paths)

	b := &Bundle{
		builder:  catalog.NewBuilder(catalog.Fallback(Default())),
		labels:   map[language.Tag]string{},
		messages: map[language.Tag]map[string]string{},
	}

	for _, p := range paths {
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil, fmt.Errorf("read locale %s: %w", p, err)
		}
		var f localeFile
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("parse locale %s: %w", p, err)
		}
		name := strings.TrimSuffix(path.Base(p), path.Ext(p))
		if f.Locale != name {
			return nil, fmt.Errorf("locale %s: locale %q must match file name", p, f.Locale)
		}
		tag, err := language.Parse(f.Locale)
		if err != nil {
			return nil, fmt.Errorf("locale %s: %w", p, err)
		}
		if _, ok := b.messages[tag]; ok {
			return nil, fmt.Errorf("locale %s defined twice", f.Locale)
		}
		b.messages[tag] = f.Messages
		b.labels[tag] = f.Label
	}

	base, ok := b.messages[Default()]
	if !ok {
		return nil, fmt.Errorf("default locale %s is not defined", Default())
	}

	for tag, msgs := range b.messages {
		// default messages first so every locale resolves every key
		for key, value := range base {
			if err := b.builder.SetString(tag, key, value); err != nil {
				return nil, fmt.Errorf("register %s %s: %w", tag, key, err)
			}
		}
		if tag == Default() {
			continue
		}
		for key, value := range msgs {
			if _, ok := base[key]; !ok {
				return nil, fmt.Errorf("locale %s: key %q missing from %s", tag, key, Default())
			}
			if err := b.builder.SetString(tag, key, value); err != nil {
				return nil, fmt.Errorf("register %s %s: %w", tag, key, err)
			}
		}
	}

	return b, nil
}

// Label is the language's own name, used by the language switch.
func (b *Bundle) Label(tag language.Tag) string {
	if label := b.labels[tag]; label != "" {
		return label
	}
	return tag.String()
}

// Keys returns the keys defined by the default locale.
func (b *Bundle) Keys() []string {
	keys := make([]string, 0, len(b.messages[Default()]))
	for k := range b.messages[Default()] {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Localizer returns a localizer for tag, matched against the supported
// languages.
func (b *Bundle) Localizer(tag language.Tag) *Localizer {
	matched, _, _ := tagMatcher.Match(tag)
	base, _ := matched.Base()
	resolved := Default()
	for _, t := range supportedTags {
		if tb, _ := t.Base(); tb == base {
			resolved = t
			break
		}
	}
	return &Localizer{
		tag:     resolved,
		printer: message.NewPrinter(resolved, message.Catalog(b.builder)),
		bundle:  b,
	}
}

// Localizer translates text lookup keys for one language.
type Localizer struct {
	tag     language.Tag
	printer *message.Printer
	bundle  *Bundle
}

// T returns the translation of key, or key itself when it is unknown.
func (l *Localizer) T(key string, args ...any) string {
	if l == nil {
		return key
	}
	return l.printer.Sprintf(key, args...)
}

// Has reports whether key is defined for this language or the default.
func (l *Localizer) Has(key string) bool {
	_, ok := l.Raw(key)
	return ok
}

// Raw returns the unformatted text for key. Use it for values that carry
// their own verbs, such as date patterns.
func (l *Localizer) Raw(key string) (string, bool) {
	if l == nil {
		return "", false
	}
	if s, ok := l.bundle.messages[l.tag][key]; ok {
		return s, true
	}
	s, ok := l.bundle.messages[Default()][key]
	return s, ok
}

func (l *Localizer) Tag() language.Tag {
	return l.tag
}

// Lang is the value of the html lang attribute.
func (l *Localizer) Lang() string {
	return l.tag.String()
}

func (l *Localizer) IsRTL() bool {
	base, _ := l.tag.Base()
	switch base.String() {
	case "ar", "he", "fa", "ur":
		return true
	}
	return false
}

// Dir is the value of the html dir attribute.
func (l *Localizer) Dir() string {
	if l.IsRTL() {
		return "rtl"
	}
	return "ltr"
}

// Start and End name the logical sides of the page for this direction.
func (l *Localizer) Start() string {
	if l.IsRTL() {
		return "right"
	}
	return "left"
}

func (l *Localizer) End() string {
	if l.IsRTL() {
		return "left"
	}
	return "right"
}
