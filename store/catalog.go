// Package store holds the site's static content: slides, services, team,
// technologies, process steps and news. It is loaded once and never mutated.
package store

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"sync"

	mapset "github.com/deckarep/golang-set/v2"
	"gopkg.in/yaml.v3"
)

// SlideCount is the fixed length of the hero slideshow.
const SlideCount = 5

const featuredNews = 3

var ErrNotFound = errors.New("not found")

//go:embed content.yaml
var contentFS embed.FS

type Catalog struct {
	Slides       []Slide              `yaml:"slides"`
	Nav          []NavLink            `yaml:"nav"`
	Pages        []Page               `yaml:"pages"`
	About        []AboutValue         `yaml:"about"`
	Process      []ProcessStep        `yaml:"process"`
	Services     []Service            `yaml:"services"`
	Team         []TeamMember         `yaml:"team"`
	Technologies []TechnologyCategory `yaml:"technologies"`
	News         []NewsItem           `yaml:"news"`
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the embedded catalog. It panics if the embedded content is
// invalid, which is caught by the package tests.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := Load(contentFS, "content.yaml")
		if err != nil {
			panic(fmt.Sprintf("store: embedded content: %v", err))
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

func Load(fsys fs.FS, path string) (*Catalog, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read content: %w", err)
	}

	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse content %s: %w", path, err)
	}

	if err := c.validate(); err != nil {
		return nil, fmt.Errorf("invalid content %s: %w", path, err)
	}
	return &c, nil
}

func (c *Catalog) validate() error {
	if len(c.Slides) != SlideCount {
		return fmt.Errorf("need %d slides, got %d", SlideCount, len(c.Slides))
	}

	serviceIDs := mapset.NewThreadUnsafeSet[string]()
	for _, s := range c.Services {
		if s.ID == "" {
			return errors.New("service without id")
		}
		if !serviceIDs.Add(s.ID) {
			return fmt.Errorf("duplicate service id %q", s.ID)
		}
	}

	slugs := mapset.NewThreadUnsafeSet[string]()
	for _, m := range c.Team {
		if m.Slug == "" {
			return fmt.Errorf("team member %q without slug", m.Name)
		}
		if !slugs.Add(m.Slug) {
			return fmt.Errorf("duplicate team slug %q", m.Slug)
		}
	}

	for _, n := range c.News {
		if !n.Category.Valid() {
			return fmt.Errorf("news %d has unknown category %q", n.ID, n.Category)
		}
	}

	routes := mapset.NewThreadUnsafeSet[string]()
	for _, p := range c.Pages {
		if !routes.Add(p.Route) {
			return fmt.Errorf("duplicate page route %q", p.Route)
		}
	}
	return nil
}

func (c *Catalog) Service(id string) (Service, error) {
	for _, s := range c.Services {
		if s.ID == id {
			return s, nil
		}
	}
	return Service{}, fmt.Errorf("service %q: %w", id, ErrNotFound)
}

func (c *Catalog) TeamMember(slug string) (TeamMember, error) {
	for _, m := range c.Team {
		if m.Slug == slug {
			return m, nil
		}
	}
	return TeamMember{}, fmt.Errorf("team member %q: %w", slug, ErrNotFound)
}

func (c *Catalog) Page(route string) (Page, error) {
	for _, p := range c.Pages {
		if p.Route == route {
			return p, nil
		}
	}
	return Page{}, fmt.Errorf("page %q: %w", route, ErrNotFound)
}

// FeaturedNews returns the first items in declared order.
func (c *Catalog) FeaturedNews() []NewsItem {
	if len(c.News) <= featuredNews {
		return c.News
	}
	return c.News[:featuredNews]
}

// SlideImages returns the slide image references in order.
func (c *Catalog) SlideImages() []string {
	images := make([]string, len(c.Slides))
	for i, s := range c.Slides {
		images[i] = s.Image
	}
	return images
}
