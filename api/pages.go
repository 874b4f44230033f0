package api

import (
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/a-h/templ"
	"github.com/applkanji/website/api/models"
	"github.com/applkanji/website/api/web/templates"
	"github.com/applkanji/website/assets"
	"github.com/applkanji/website/i18n"
	"github.com/applkanji/website/slideshow"
	"github.com/applkanji/website/store"
	"github.com/gin-gonic/gin"
)

const (
	logoURL   = "/static/images/logo.svg"
	streamURL = "/slideshow/stream"
	heroStats = 4
)

type navItem struct {
	Label  string
	Href   string
	Active bool
}

// pageData is handed to every page template.
type pageData struct {
	L         *i18n.Localizer
	RTL       bool
	Route     string
	Title     string
	Nav       []navItem
	Languages []i18n.LanguageOption
	Loading   template.HTML
	Toast     template.HTML
	Year      int
	Catalog   *store.Catalog

	Hero          template.HTML
	Featured      []store.NewsItem
	Service       *store.Service
	ServiceDetail template.HTML
	Form          contactForm

	library *assets.Library
}

// Photo returns the URL of a library image, or the placeholder.
func (p *pageData) Photo(name string) string {
	return p.library.Resolve(name)
}

// Fallback is the image swapped in when src fails to load. It is empty
// when src already is the placeholder.
func (p *pageData) Fallback(src string) string {
	fallback, ok := assets.PhotoFallback(src)
	if !ok {
		return ""
	}
	return fallback
}

func (ws *WebServer) navItems(loc *i18n.Localizer, route string) []navItem {
	items := make([]navItem, 0, len(ws.catalog.Nav))
	for _, link := range ws.catalog.Nav {
		href := link.Href
		// section anchors live on the home page
		if !link.IsRoute && route != "/" {
			href = "/" + href
		}
		items = append(items, navItem{
			Label:  loc.T(link.Key),
			Href:   href,
			Active: link.IsRoute && link.Href == route,
		})
	}
	return items
}

// newPage prepares the data shared by every page. Routes without a catalog
// entry get no loading screen.
func (ws *WebServer) newPage(c *gin.Context, route string) (*pageData, error) {
	loc := localizer(c)
	ctx := c.Request.Context()

	p := &pageData{
		L:         loc,
		RTL:       loc.IsRTL(),
		Route:     route,
		Nav:       ws.navItems(loc, route),
		Languages: ws.bundle.LanguageOptions(loc.Tag()),
		Year:      time.Now().Year(),
		Catalog:   ws.catalog,
		library:   ws.library,
	}

	page, err := ws.catalog.Page(route)
	if err != nil {
		p.Title = loc.T("error.notFound.title")
	} else {
		p.Title = loc.T(page.TitleKey)
		loading := templates.LoadingScreen(loc.T("loading.text"), logoURL, page.LoadingDuration())
		if p.Loading, err = templates.Render(ctx, loading); err != nil {
			return nil, fmt.Errorf("render loading screen: %w", err)
		}
	}

	if toast := ws.takeToast(c, loc); toast != nil {
		if p.Toast, err = templates.Render(ctx, templates.Toast(toast)); err != nil {
			return nil, fmt.Errorf("render toast: %w", err)
		}
	}
	return p, nil
}

func (ws *WebServer) renderPage(c *gin.Context, status int, name string, p *pageData) {
	c.HTML(status, name, p)
}

// renderComponent writes a single component as the whole response.
func (ws *WebServer) renderComponent(c *gin.Context, status int, component templ.Component) {
	templ.Handler(component, templ.WithStatus(status)).ServeHTTP(c.Writer, c.Request)
}

func (ws *WebServer) pageError(c *gin.Context, err error) {
	slog.Error("failed to render page", "path", c.Request.URL.Path, "error", err)
	c.String(http.StatusInternalServerError, "Failed to render page")
}

// initialState is the state every new slideshow starts in.
func (ws *WebServer) initialState() slideshow.State {
	cycler, err := slideshow.NewCycler(len(ws.catalog.Slides), ws.slideInterval)
	if err != nil {
		return slideshow.State{Direction: slideshow.Forward, Transition: slideshow.TransitionSlide}
	}
	return cycler.State()
}

func (ws *WebServer) heroView(loc *i18n.Localizer) templates.HeroView {
	slides := ws.catalog.SlideImages()
	labels := make([]string, len(slides))
	for i := range slides {
		labels[i] = loc.T("hero.slide", i+1)
	}
	stats := make([]templates.Stat, 0, heroStats)
	for i := 1; i <= heroStats; i++ {
		stats = append(stats, templates.Stat{
			Value: loc.T(fmt.Sprintf("hero.stat%d.value", i)),
			Label: loc.T(fmt.Sprintf("hero.stat%d.label", i)),
		})
	}

	return templates.HeroView{
		Slides:       slides,
		State:        ws.initialState(),
		Interval:     ws.slideInterval,
		StreamURL:    streamURL,
		Badge:        loc.T("hero.badge"),
		Title1:       loc.T("hero.title1"),
		Title2:       loc.T("hero.title2"),
		Title3:       loc.T("hero.title3"),
		Subtitle:     loc.T("hero.subtitle"),
		PrimaryCTA:   loc.T("hero.cta1"),
		SecondaryCTA: loc.T("hero.cta2"),
		Scroll:       loc.T("hero.scroll"),
		Stats:        stats,
		DotLabels:    labels,
	}
}

func (ws *WebServer) handleHome(c *gin.Context) {
	p, err := ws.newPage(c, "/")
	if err != nil {
		ws.pageError(c, err)
		return
	}

	hero, err := templates.Render(c.Request.Context(), templates.Hero(ws.heroView(p.L)))
	if err != nil {
		ws.pageError(c, err)
		return
	}
	p.Hero = hero
	p.Featured = ws.catalog.FeaturedNews()

	ws.renderPage(c, http.StatusOK, "home.html", p)
}

func (ws *WebServer) handleServices(c *gin.Context) {
	p, err := ws.newPage(c, "/services")
	if err != nil {
		ws.pageError(c, err)
		return
	}
	ws.renderPage(c, http.StatusOK, "services.html", p)
}

// handleServiceDetail returns the detail modal as a fragment for scripted
// requests, or the services page with the modal open.
func (ws *WebServer) handleServiceDetail(c *gin.Context) {
	service, err := ws.catalog.Service(c.Param("id"))
	if err != nil {
		ws.handleNotFound(c)
		return
	}

	loc := localizer(c)
	detail := templates.ServiceDetail(serviceDetailView(loc, service))
	if isFragmentRequest(c.Request) {
		ws.renderComponent(c, http.StatusOK, detail)
		return
	}

	p, err := ws.newPage(c, "/services")
	if err != nil {
		ws.pageError(c, err)
		return
	}
	p.Service = &service
	if p.ServiceDetail, err = templates.Render(c.Request.Context(), detail); err != nil {
		ws.pageError(c, err)
		return
	}
	ws.renderPage(c, http.StatusOK, "services.html", p)
}

func serviceDetailView(loc *i18n.Localizer, s store.Service) templates.ServiceDetailView {
	translate := func(keys []string) []string {
		out := make([]string, len(keys))
		for i, k := range keys {
			out[i] = loc.T(k)
		}
		return out
	}
	fallback, _ := assets.PhotoFallback(s.Image)

	return templates.ServiceDetailView{
		ID:              s.ID,
		Icon:            s.Icon,
		Image:           s.Image,
		Fallback:        fallback,
		Title:           loc.T(s.TitleKey),
		Detail:          loc.T(s.DetailKey),
		FeaturesHeading: loc.T("services.features"),
		Features:        translate(s.Features),
		BenefitsHeading: loc.T(s.BenefitsKey),
		Benefits:        translate(s.Benefits),
		IncludedHeading: loc.T("services.included"),
		Included:        translate(s.Included),
		CTA:             loc.T("services.cta"),
		Close:           loc.T("services.close"),
	}
}

func (ws *WebServer) handleTeam(c *gin.Context) {
	p, err := ws.newPage(c, "/team")
	if err != nil {
		ws.pageError(c, err)
		return
	}
	ws.renderPage(c, http.StatusOK, "team.html", p)
}

func (ws *WebServer) handleTechnologies(c *gin.Context) {
	p, err := ws.newPage(c, "/technologies")
	if err != nil {
		ws.pageError(c, err)
		return
	}
	ws.renderPage(c, http.StatusOK, "technologies.html", p)
}

func (ws *WebServer) handleNotFound(c *gin.Context) {
	if wantsJSON(c.Request) || strings.HasPrefix(c.Request.URL.Path, "/slideshow/") {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "not found"})
		return
	}

	p, err := ws.newPage(c, c.Request.URL.Path)
	if err != nil {
		ws.pageError(c, err)
		return
	}
	ws.renderPage(c, http.StatusNotFound, "not_found.html", p)
}

func isFragmentRequest(r *http.Request) bool {
	return strings.EqualFold(r.Header.Get("HX-Request"), "true") || r.Header.Get("X-Requested-With") != ""
}

func wantsJSON(r *http.Request) bool {
	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		return true
	}
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		return true
	}
	return r.Header.Get("X-Requested-With") != ""
}
