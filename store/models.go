package store

import (
	"strings"
	"time"
)

type NewsCategory string

const (
	NewsConference NewsCategory = "conference"
	NewsEvent      NewsCategory = "event"
	NewsUpdate     NewsCategory = "update"
	NewsAward      NewsCategory = "award"
)

func (c NewsCategory) Valid() bool {
	switch c {
	case NewsConference, NewsEvent, NewsUpdate, NewsAward:
		return true
	}
	return false
}

// LabelKey is the text lookup key for the category badge.
func (c NewsCategory) LabelKey() string {
	return "news.category." + string(c)
}

type Slide struct {
	Name  string `yaml:"name" json:"name"`
	Image string `yaml:"image" json:"image"`
}

type NewsItem struct {
	ID          int          `yaml:"id" json:"id"`
	Title       string       `yaml:"title" json:"title"`
	Description string       `yaml:"description" json:"description"`
	Image       string       `yaml:"image" json:"image"`
	Date        time.Time    `yaml:"date" json:"date"`
	Category    NewsCategory `yaml:"category" json:"category"`
	Link        string       `yaml:"link,omitempty" json:"link,omitempty"`
}

type Service struct {
	ID          string   `yaml:"id" json:"id"`
	Icon        string   `yaml:"icon" json:"icon"`
	TitleKey    string   `yaml:"title_key" json:"title_key"`
	DescKey     string   `yaml:"desc_key" json:"desc_key"`
	DetailKey   string   `yaml:"detail_key" json:"detail_key"`
	BenefitsKey string   `yaml:"benefits_key" json:"benefits_key"`
	Image       string   `yaml:"image" json:"image"`
	Features    []string `yaml:"features" json:"features"`
	Benefits    []string `yaml:"benefits" json:"benefits"`
	Included    []string `yaml:"included" json:"included"`
}

type TeamMember struct {
	Slug         string `yaml:"slug" json:"slug"`
	Name         string `yaml:"name" json:"name"`
	RoleKey      string `yaml:"role_key" json:"role_key"`
	BioKey       string `yaml:"bio_key" json:"bio_key"`
	ExpertiseKey string `yaml:"expertise_key" json:"expertise_key"`
	Photo        string `yaml:"photo" json:"photo"`
	Email        string `yaml:"email,omitempty" json:"email,omitempty"`
	LinkedIn     string `yaml:"linkedin,omitempty" json:"linkedin,omitempty"`
	Twitter      string `yaml:"twitter,omitempty" json:"twitter,omitempty"`
	GitHub       string `yaml:"github,omitempty" json:"github,omitempty"`
}

// Initials is shown over the photo placeholder.
func (m TeamMember) Initials() string {
	var out []rune
	start := true
	for _, r := range m.Name {
		if r == ' ' {
			start = true
			continue
		}
		if start {
			out = append(out, r)
			start = false
		}
	}
	return string(out)
}

// FirstName labels the member in the in-page navigation.
func (m TeamMember) FirstName() string {
	first, _, _ := strings.Cut(strings.TrimSpace(m.Name), " ")
	return first
}

type Technology struct {
	Name string `yaml:"name" json:"name"`
	Icon string `yaml:"icon" json:"icon"`
}

type TechnologyCategory struct {
	Key   string       `yaml:"key" json:"key"`
	Icon  string       `yaml:"icon" json:"icon"`
	Items []Technology `yaml:"items" json:"items"`
}

type ProcessStep struct {
	Number   string `yaml:"number" json:"number"`
	Icon     string `yaml:"icon" json:"icon"`
	TitleKey string `yaml:"title_key" json:"title_key"`
	DescKey  string `yaml:"desc_key" json:"desc_key"`
	Image    string `yaml:"image" json:"image"`
}

type AboutValue struct {
	Icon     string `yaml:"icon" json:"icon"`
	TitleKey string `yaml:"title_key" json:"title_key"`
	DescKey  string `yaml:"desc_key" json:"desc_key"`
}

type NavLink struct {
	Key     string `yaml:"key" json:"key"`
	Href    string `yaml:"href" json:"href"`
	IsRoute bool   `yaml:"route" json:"route"`
}

type Page struct {
	Route    string `yaml:"route" json:"route"`
	TitleKey string `yaml:"title_key" json:"title_key"`
	// LoadingMillis is how long the loading screen covers the page.
	LoadingMillis int `yaml:"loading_ms" json:"loading_ms"`
}

func (p Page) LoadingDuration() time.Duration {
	return time.Duration(p.LoadingMillis) * time.Millisecond
}
