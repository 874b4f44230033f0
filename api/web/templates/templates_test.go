package templates

import (
	"context"
	"html/template"
	"strings"
	"testing"
	"time"

	"github.com/applkanji/website/slideshow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRevealAttrs(t *testing.T) {
	tests := []struct {
		variant string
		delay   int
		rtl     bool
		want    template.HTMLAttr
	}{
		{variant: "fadeUp", want: `data-reveal="fadeUp"`},
		{variant: "scale", delay: 200, want: `data-reveal="scale" data-reveal-delay="200"`},
		{variant: "slideLeft", rtl: true, want: `data-reveal="slideRight"`},
		{variant: "slideRight", rtl: true, want: `data-reveal="slideLeft"`},
		{variant: "fadeIn", rtl: true, want: `data-reveal="fadeIn"`},
		{variant: "wobble", want: `data-reveal="fadeUp"`},
	}
	for _, tt := range tests {
		t.Run(tt.variant, func(t *testing.T) {
			assert.Equal(t, tt.want, RevealAttrs(tt.variant, tt.delay, tt.rtl))
		})
	}
}

func TestToastNilRendersNothing(t *testing.T) {
	html, err := Render(context.Background(), Toast(nil))
	require.NoError(t, err)
	assert.Empty(t, html)
}

func TestToastEscapes(t *testing.T) {
	html, err := Render(context.Background(), Toast(&ToastView{Title: "<b>hi</b>", Description: "done"}))
	require.NoError(t, err)
	assert.Contains(t, string(html), "toast toast-success")
	assert.Contains(t, string(html), "&lt;b&gt;hi&lt;/b&gt;")
}

func TestLoadingScreen(t *testing.T) {
	html, err := Render(context.Background(), LoadingScreen("Loading", "/logo.svg", 2500*time.Millisecond))
	require.NoError(t, err)
	assert.Contains(t, string(html), `data-duration="2500"`)
	assert.Contains(t, string(html), `src="/logo.svg"`)
}

func TestHeroShowsCurrentSlide(t *testing.T) {
	v := HeroView{
		Slides:    []string{"/a.svg", "/b.svg", "/c.svg"},
		State:     slideshow.State{Index: 1, Direction: slideshow.Backward, Transition: slideshow.TransitionSlide},
		Interval:  6 * time.Second,
		StreamURL: "/slideshow/stream",
		Title2:    "Smart & Digital",
		Stats:     []Stat{{Value: "50+", Label: "Projects"}},
		DotLabels: []string{"one", "two", "three"},
	}
	html, err := Render(context.Background(), Hero(v))
	require.NoError(t, err)
	out := string(html)

	assert.Contains(t, out, `data-interval="6000" data-index="1" data-direction="backward" data-transition="slide"`)
	assert.Contains(t, out, `<div class="hero-frame is-active hero-slide-rev" data-index="1">`)
	assert.Contains(t, out, `<div class="hero-frame" data-index="0" hidden>`)
	assert.Equal(t, 1, strings.Count(out, "is-active"))
	assert.Contains(t, out, `aria-label="two" aria-selected="true"`)
	assert.Equal(t, 3, strings.Count(out, "data-goto-index="))
	assert.Contains(t, out, "Smart &amp; Digital")
	assert.Contains(t, out, "<dt>50+</dt>")
}

func TestServiceDetail(t *testing.T) {
	v := ServiceDetailView{
		ID:              "web",
		Icon:            "globe",
		Image:           "/static/images/web.svg",
		Fallback:        "/static/images/placeholder.svg",
		Title:           "Web <Development>",
		FeaturesHeading: "Features",
		Features:        []string{"Fast", "Accessible"},
		BenefitsHeading: "Benefits",
		Benefits:        []string{"Reach"},
		IncludedHeading: "Included",
		CTA:             "Get Started",
		Close:           "Close",
	}
	html, err := Render(context.Background(), ServiceDetail(v))
	require.NoError(t, err)
	out := string(html)

	assert.Contains(t, out, `<article class="service-detail" data-service="web">`)
	assert.Contains(t, out, `aria-label="Close"`)
	assert.Contains(t, out, `src="/static/images/web.svg" data-fallback="/static/images/placeholder.svg"`)
	assert.Contains(t, out, `<span class="icon icon-globe" aria-hidden="true">`)
	assert.Contains(t, out, "Web &lt;Development&gt;")
	assert.Contains(t, out, "<li>Fast</li><li>Accessible</li>")
	assert.Equal(t, 3, strings.Count(out, `<ul class="check-list">`))
}

func TestHeroEscapesAttributes(t *testing.T) {
	html, err := Render(context.Background(), Hero(HeroView{
		Slides:    []string{`/a.svg" onerror="x`},
		StreamURL: "/stream",
	}))
	require.NoError(t, err)
	assert.NotContains(t, string(html), `" onerror="x"`)
	assert.Contains(t, string(html), "&#34; onerror=&#34;x")
}

func TestSplitSkills(t *testing.T) {
	tests := []struct {
		line string
		want []string
	}{
		{line: "Strategy, Product, Automation", want: []string{"Strategy", "Product", "Automation"}},
		{line: "Go", want: []string{"Go"}},
		{line: "Docker, Kubernetes, CI/CD", want: []string{"Docker", "Kubernetes", "CI/CD"}},
		{line: "فلاتر، ريأكت نيتف", want: []string{"فلاتر", "ريأكت نيتف"}},
		{line: " , ", want: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			assert.Equal(t, tt.want, splitSkills(tt.line))
		})
	}
}

func TestFuncMapHelpers(t *testing.T) {
	tmpl := template.Must(template.New("t").Funcs(FuncMap()).Parse(
		`{{langURL "ar"}}|{{stagger 3 100}}|{{if odd 3}}odd{{end}}|{{add 1 2}}|{{upper "ok"}}`))
	var b strings.Builder
	require.NoError(t, tmpl.Execute(&b, nil))
	assert.Equal(t, "/lang/ar|300|odd|3|OK", b.String())
}
