package templates

//go:generate go run github.com/a-h/templ/cmd/templ@v0.3.977 generate

import (
	"strconv"
	"time"

	"github.com/applkanji/website/slideshow"
)

// Stat is one figure in the hero statistics row.
type Stat struct {
	Value string
	Label string
}

// HeroView holds the localized text and slideshow state of the hero.
type HeroView struct {
	Slides    []string
	State     slideshow.State
	Interval  time.Duration
	StreamURL string

	Badge        string
	Title1       string
	Title2       string
	Title3       string
	Subtitle     string
	PrimaryCTA   string
	SecondaryCTA string
	Scroll       string
	Stats        []Stat
	DotLabels    []string
}

func (v HeroView) dotLabel(i int) string {
	if i < len(v.DotLabels) {
		return v.DotLabels[i]
	}
	return strconv.Itoa(i + 1)
}

const (
	heroParticles    = 20
	loadingParticles = 12
)

// ToastVariant selects the toast colour.
type ToastVariant string

const (
	ToastSuccess ToastVariant = "success"
	ToastError   ToastVariant = "error"
)

type ToastView struct {
	Variant     ToastVariant
	Title       string
	Description string
}

func (v *ToastView) variantClass() string {
	if v.Variant == "" {
		return "toast-" + string(ToastSuccess)
	}
	return "toast-" + string(v.Variant)
}

// ServiceDetailView is a service with its text already localized.
type ServiceDetailView struct {
	ID       string
	Icon     string
	Image    string
	Fallback string

	Title           string
	Detail          string
	FeaturesHeading string
	Features        []string
	BenefitsHeading string
	Benefits        []string
	IncludedHeading string
	Included        []string
	CTA             string
	Close           string
}

func millis(d time.Duration) string {
	return strconv.FormatInt(d.Milliseconds(), 10)
}

func ariaBool(b bool) string {
	return strconv.FormatBool(b)
}
