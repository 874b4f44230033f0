package i18n

import (
	"net/http/httptest"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestDefaultBundleTranslates(t *testing.T) {
	b := DefaultBundle()

	en := b.Localizer(language.English)
	assert.Equal(t, "Services", en.T("nav.services"))
	assert.Equal(t, "Show slide 3", en.T("hero.slide", 3))
	assert.Equal(t, "ltr", en.Dir())
	assert.Equal(t, "en", en.Lang())

	ar := b.Localizer(language.Arabic)
	assert.Equal(t, "الخدمات", ar.T("nav.services"))
	assert.Equal(t, "rtl", ar.Dir())
	assert.Equal(t, "right", ar.Start())
	assert.Equal(t, "left", ar.End())
}

func TestArabicFallsBackToEnglish(t *testing.T) {
	b, err := Load(fstest.MapFS{
		"locales/en.yaml": {Data: []byte("locale: en\nlabel: English\nmessages:\n  a: A\n  b: B\n")},
		"locales/ar.yaml": {Data: []byte("locale: ar\nlabel: Arabic\nmessages:\n  a: ألف\n")},
	})
	require.NoError(t, err)

	ar := b.Localizer(language.Arabic)
	assert.Equal(t, "ألف", ar.T("a"))
	assert.Equal(t, "B", ar.T("b"))
	assert.True(t, ar.Has("b"))
}

func TestArabicTranslatesEveryKey(t *testing.T) {
	b := DefaultBundle()
	ar := b.messages[language.Arabic]
	for _, key := range b.Keys() {
		_, ok := ar[key]
		assert.True(t, ok, "no arabic text for %s", key)
	}

	loc := b.Localizer(language.Arabic)
	assert.Equal(t, "+50", loc.T("hero.stat1.value"))
	assert.Equal(t, "يقود رؤية الشركة ويعمل عن قرب مع كل عميل.", loc.T("team.hamza.bio"))
}

func TestUnknownKeyReturnsKey(t *testing.T) {
	en := DefaultBundle().Localizer(language.English)
	assert.Equal(t, "missing.key", en.T("missing.key"))
	assert.False(t, en.Has("missing.key"))

	var nilLoc *Localizer
	assert.Equal(t, "nav.home", nilLoc.T("nav.home"))
}

func TestLocalizerMatchesRegionalTags(t *testing.T) {
	b := DefaultBundle()
	assert.Equal(t, language.Arabic, b.Localizer(language.MustParse("ar-JO")).Tag())
	assert.Equal(t, language.English, b.Localizer(language.MustParse("en-GB")).Tag())
	assert.Equal(t, language.English, b.Localizer(language.French).Tag())
}

func TestLanguageOptions(t *testing.T) {
	opts := DefaultBundle().LanguageOptions(language.Arabic)
	require.Len(t, opts, 2)
	assert.Equal(t, LanguageOption{Tag: "en", Label: "English", Active: false}, opts[0])
	assert.Equal(t, LanguageOption{Tag: "ar", Label: "العربية", Active: true}, opts[1])
}

func TestLoadRejectsBadCatalogs(t *testing.T) {
	en := "locale: en\nlabel: English\nmessages:\n  a: A\n"
	tests := []struct {
		name  string
		files fstest.MapFS
	}{
		{name: "empty", files: fstest.MapFS{}},
		{name: "no default", files: fstest.MapFS{
			"locales/ar.yaml": {Data: []byte("locale: ar\nmessages:\n  a: A\n")},
		}},
		{name: "locale mismatch", files: fstest.MapFS{
			"locales/en.yaml": {Data: []byte("locale: ar\nmessages:\n  a: A\n")},
		}},
		{name: "unknown key", files: fstest.MapFS{
			"locales/en.yaml": {Data: []byte(en)},
			"locales/ar.yaml": {Data: []byte("locale: ar\nmessages:\n  b: B\n")},
		}},
		{name: "bad yaml", files: fstest.MapFS{
			"locales/en.yaml": {Data: []byte("messages: [")},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.files)
			require.Error(t, err)
		})
	}
}

func TestEveryLocaleKeyExistsInDefault(t *testing.T) {
	b := DefaultBundle()
	keys := b.Keys()
	require.NotEmpty(t, keys)
	for tag, msgs := range b.messages {
		for key := range msgs {
			assert.Contains(t, keys, key, "%s: %s", tag, key)
		}
	}
}

func TestResolveTag(t *testing.T) {
	tests := []struct {
		name        string
		target      string
		accept      string
		stored      string
		want        language.Tag
		wantPersist bool
	}{
		{name: "default", target: "/", want: language.English},
		{name: "query wins", target: "/?lang=ar", stored: "en", accept: "en", want: language.Arabic, wantPersist: true},
		{name: "unsupported query ignored", target: "/?lang=fr", stored: "ar", want: language.Arabic},
		{name: "stored beats header", target: "/", stored: "ar", accept: "en-US", want: language.Arabic},
		{name: "accept language", target: "/", accept: "ar-JO,ar;q=0.9,en;q=0.5", want: language.Arabic},
		{name: "unsupported header", target: "/", accept: "fr-FR", want: language.English},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", tt.target, nil)
			if tt.accept != "" {
				r.Header.Set("Accept-Language", tt.accept)
			}
			got, persist := ResolveTag(r, tt.stored)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantPersist, persist)
		})
	}
}

func TestParseTag(t *testing.T) {
	tag, ok := ParseTag(" AR ")
	require.True(t, ok)
	assert.Equal(t, language.Arabic, tag)

	_, ok = ParseTag("klingon!")
	assert.False(t, ok)
	_, ok = ParseTag("")
	assert.False(t, ok)
}

func TestFormatDate(t *testing.T) {
	b := DefaultBundle()
	date := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "Mar 15, 2024", FormatDate(date, b.Localizer(language.English)))
	assert.Equal(t, "15/03/2024", FormatDate(date, b.Localizer(language.Arabic)))
	assert.Equal(t, "Mar 15, 2024", FormatDate(date, nil))
	assert.Equal(t, "", FormatDate(time.Time{}, b.Localizer(language.English)))
}

func TestFormatDateWithoutPattern(t *testing.T) {
	files := fstest.MapFS{
		"locales/en.yaml": {Data: []byte("locale: en\nmessages:\n  a: A\n")},
		"locales/ar.yaml": {Data: []byte("locale: ar\nmessages:\n  a: B\n")},
	}
	b, err := Load(files)
	require.NoError(t, err)

	date := time.Date(2023, 10, 5, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "Oct 05, 2023", FormatDate(date, b.Localizer(language.English)))
	assert.Equal(t, "05 Oct 2023", FormatDate(date, b.Localizer(language.Arabic)))
}
