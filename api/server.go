// Package api is the main api web server
package api

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/applkanji/website/api/web/templates"
	"github.com/applkanji/website/assets"
	"github.com/applkanji/website/contact"
	"github.com/applkanji/website/i18n"
	"github.com/applkanji/website/slideshow"
	"github.com/applkanji/website/store"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

//go:embed web/templates/*.html web/static
var webFiles embed.FS

const (
	sessionName     = "applkanji"
	shutdownTimeout = 5 * time.Second
)

type WebServer struct {
	router *gin.Engine

	catalog    *store.Catalog
	bundle     *i18n.Bundle
	library    *assets.Library
	remoteSync *assets.RemoteSync
	slides     *slideshow.Registry
	submitter  contact.Submitter

	slideInterval time.Duration
	staticFS      fs.FS
	stylesheet    []byte
}

// Options configures a WebServer. Catalog, Bundle and Submitter default to
// the embedded content, the embedded locales and a simulated submitter.
type Options struct {
	Catalog       *store.Catalog
	Bundle        *i18n.Bundle
	Library       *assets.Library
	RemoteSync    *assets.RemoteSync
	Submitter     contact.Submitter
	SlideInterval time.Duration
	// MaxViewers caps the open slideshow streams. Zero means no cap.
	MaxViewers    int
	SessionKey    []byte
}

func NewWebServer(opts Options) (*WebServer, error) {
	if opts.Library == nil {
		return nil, errors.New("asset library is required")
	}
	if len(opts.SessionKey) == 0 {
		return nil, errors.New("session key is required")
	}
	if opts.Catalog == nil {
		opts.Catalog = store.Default()
	}
	if opts.Bundle == nil {
		opts.Bundle = i18n.DefaultBundle()
	}
	if opts.Submitter == nil {
		opts.Submitter = contact.Simulated{Delay: contact.DefaultDelay}
	}
	if opts.SlideInterval <= 0 {
		opts.SlideInterval = slideshow.DefaultInterval
	}

	// Create filesystem for static files (strip "web/" prefix)
	staticFS, err := fs.Sub(webFiles, "web/static")
	if err != nil {
		return nil, fmt.Errorf("static filesystem: %w", err)
	}

	tmpl, err := template.New("").Funcs(templates.FuncMap()).ParseFS(webFiles, "web/templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	router := gin.Default()
	router.SetHTMLTemplate(tmpl)

	ws := &WebServer{
		router:        router,
		catalog:       opts.Catalog,
		bundle:        opts.Bundle,
		library:       opts.Library,
		remoteSync:    opts.RemoteSync,
		slides:        slideshow.NewRegistry(len(opts.Catalog.Slides), opts.SlideInterval, opts.MaxViewers),
		submitter:     opts.Submitter,
		slideInterval: opts.SlideInterval,
		staticFS:      staticFS,
		stylesheet:    []byte(slideshow.Stylesheet()),
	}

	cookieStore := cookie.NewStore(opts.SessionKey)
	cookieStore.Options(sessions.Options{
		Path:     "/",
		MaxAge:   int((365 * 24 * time.Hour).Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	ws.router.Use(sessions.Sessions(sessionName, cookieStore))
	ws.router.Use(ws.localize)

	ws.setupRoutes()
	return ws, nil
}

func (ws *WebServer) setupRoutes() {
	ws.router.GET("/static/*filepath", ws.handleStatic)
	ws.router.HEAD("/static/*filepath", ws.handleStatic)
	ws.router.GET("/favicon.ico", ws.handleFavicon)
	ws.router.GET("/favicon.svg", ws.handleFavicon)
	ws.router.GET("/assets/*name", ws.handleAsset)
	ws.router.GET("/healthz", ws.handleHealth)

	// Pages
	ws.router.GET("/", ws.handleHome)
	ws.router.GET("/services", ws.handleServices)
	ws.router.GET("/services/:id", ws.handleServiceDetail)
	ws.router.GET("/team", ws.handleTeam)
	ws.router.GET("/technologies", ws.handleTechnologies)
	ws.router.GET("/contact", ws.handleContactPage)
	ws.router.POST("/contact", ws.handleContactSubmit)
	ws.router.GET("/lang/:tag", ws.handleLang)

	// Slideshow
	ws.router.GET("/slideshow/state", ws.handleSlideshowState)
	ws.router.GET("/slideshow/stream", ws.handleSlideshowStream)
	ws.router.POST("/slideshow/:id/goto/:index", ws.handleSlideshowGoTo)

	ws.router.NoRoute(ws.handleNotFound)
}

// Handler exposes the router, mainly for tests.
func (ws *WebServer) Handler() http.Handler {
	return ws.router
}

// Start serves on addr until ctx is done, running the asset library scan
// and the optional remote sync alongside. Open slideshow streams end with
// ctx.
func (ws *WebServer) Start(ctx context.Context, addr string) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go ws.library.Run(ctx)
	if ws.remoteSync != nil {
		go ws.remoteSync.Run(ctx)
	}

	// listen for asset updates
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-ws.library.Updated:
				slog.Info("found asset updates", "assets", ws.library.Len())
			}
		}
	}()

	srv := &http.Server{
		Addr:              addr,
		Handler:           ws.router,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("starting web server", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("web server: %w", err)
	case <-ctx.Done():
	}

	slog.Info("shutting down web server")
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()
	err := srv.Shutdown(shutdownCtx)
	ws.slides.Wait()
	return err
}
