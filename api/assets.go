package api

import (
	"net/http"
	"strings"

	"github.com/applkanji/website/api/models"
	"github.com/applkanji/website/i18n"
	"github.com/gin-gonic/gin"
)

// transitionsCSS is generated from the slideshow transitions rather than
// read from the embedded files.
const transitionsCSS = "transitions.css"

func (ws *WebServer) handleStatic(c *gin.Context) {
	name := strings.TrimPrefix(c.Param("filepath"), "/")
	if name == "" || strings.HasSuffix(name, "/") {
		c.Status(http.StatusNotFound)
		return
	}
	if name == transitionsCSS {
		c.Data(http.StatusOK, "text/css; charset=utf-8", ws.stylesheet)
		return
	}
	c.FileFromFS(name, http.FS(ws.staticFS))
}

func (ws *WebServer) handleFavicon(c *gin.Context) {
	data, err := webFiles.ReadFile("web/static/images/favicon.svg")
	if err != nil {
		c.Status(http.StatusNotFound)
		return
	}
	c.Data(http.StatusOK, "image/svg+xml", data)
}

// handleAsset serves a library image. Unknown names get a plain 404 so the
// page script swaps in the placeholder.
func (ws *WebServer) handleAsset(c *gin.Context) {
	path, ok := ws.library.Path(c.Param("name"))
	if !ok {
		c.Status(http.StatusNotFound)
		return
	}
	c.Header("Cache-Control", "public, max-age=3600")
	c.File(path)
}

func (ws *WebServer) handleHealth(c *gin.Context) {
	tags := i18n.Supported()
	languages := make([]string, len(tags))
	for i, t := range tags {
		languages[i] = t.String()
	}
	c.JSON(http.StatusOK, models.HealthResponse{
		Status:    "ok",
		Slides:    len(ws.catalog.Slides),
		Viewers:   ws.slides.Len(),
		Assets:    ws.library.Len(),
		Languages: languages,
	})
}
