package api

import (
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/applkanji/website/i18n"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const (
	langSessionKey = "lang"
	localizerKey   = "localizer"
)

// localize resolves the request language and stores its localizer in the
// context. A lang query parameter is remembered in the session.
func (ws *WebServer) localize(c *gin.Context) {
	session := sessions.Default(c)
	stored, _ := session.Get(langSessionKey).(string)

	tag, persist := i18n.ResolveTag(c.Request, stored)
	if persist && tag.String() != stored {
		session.Set(langSessionKey, tag.String())
		if err := session.Save(); err != nil {
			slog.Warn("unable to save language preference", "error", err)
		}
	}

	c.Set(localizerKey, ws.bundle.Localizer(tag))
	c.Next()
}

func localizer(c *gin.Context) *i18n.Localizer {
	if v, ok := c.Get(localizerKey); ok {
		if loc, ok := v.(*i18n.Localizer); ok {
			return loc
		}
	}
	return i18n.DefaultBundle().Localizer(i18n.Default())
}

func (ws *WebServer) handleLang(c *gin.Context) {
	tag, ok := i18n.ParseTag(c.Param("tag"))
	if !ok {
		c.String(http.StatusBadRequest, "unsupported language")
		return
	}

	session := sessions.Default(c)
	session.Set(langSessionKey, tag.String())
	if err := session.Save(); err != nil {
		slog.Warn("unable to save language preference", "error", err)
	}

	c.Redirect(http.StatusSeeOther, backTo(c.Request))
}

// backTo returns the path of a same-site Referer, or "/".
func backTo(r *http.Request) string {
	ref := r.Referer()
	if ref == "" {
		return "/"
	}
	u, err := url.Parse(ref)
	if err != nil || (u.Host != "" && u.Host != r.Host) {
		return "/"
	}
	if !strings.HasPrefix(u.Path, "/") || strings.HasPrefix(u.Path, "//") {
		return "/"
	}
	// drop the lang parameter so the stored preference applies
	q := u.Query()
	q.Del(i18n.LangParam)
	u.RawQuery = q.Encode()
	return u.RequestURI()
}
