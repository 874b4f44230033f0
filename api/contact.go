package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/applkanji/website/api/models"
	"github.com/applkanji/website/api/web/templates"
	"github.com/applkanji/website/contact"
	"github.com/applkanji/website/i18n"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const (
	toastFlashKey    = "toast"
	flashContactSent = "contact.sent"
)

// contactForm carries entered values and field errors back to the page.
type contactForm struct {
	Values contact.Submission
	Errors map[string]string
}

func successToast(loc *i18n.Localizer) templates.ToastView {
	return templates.ToastView{
		Variant:     templates.ToastSuccess,
		Title:       loc.T("contact.toast.title"),
		Description: loc.T("contact.toast.desc"),
	}
}

func errorToast(loc *i18n.Localizer) templates.ToastView {
	return templates.ToastView{
		Variant:     templates.ToastError,
		Title:       loc.T("contact.toast.errorTitle"),
		Description: loc.T("contact.toast.errorDesc"),
	}
}

func toastModel(v templates.ToastView) models.Toast {
	return models.Toast{Variant: string(v.Variant), Title: v.Title, Description: v.Description}
}

// takeToast pops a pending flash toast from the session.
func (ws *WebServer) takeToast(c *gin.Context, loc *i18n.Localizer) *templates.ToastView {
	session := sessions.Default(c)
	flashes := session.Flashes(toastFlashKey)
	if len(flashes) == 0 {
		return nil
	}
	if err := session.Save(); err != nil {
		slog.Warn("unable to clear flash", "error", err)
	}

	var toast *templates.ToastView
	for _, f := range flashes {
		if f == flashContactSent {
			t := successToast(loc)
			toast = &t
		}
	}
	return toast
}

func (ws *WebServer) handleContactPage(c *gin.Context) {
	p, err := ws.newPage(c, "/contact")
	if err != nil {
		ws.pageError(c, err)
		return
	}
	ws.renderPage(c, http.StatusOK, "contact.html", p)
}

// handleContactSubmit accepts the form as JSON for scripted posts or as a
// regular form post. A successful form post redirects back to the contact
// page, which then shows the toast.
func (ws *WebServer) handleContactSubmit(c *gin.Context) {
	loc := localizer(c)
	asJSON := wantsJSON(c.Request)

	var sub contact.Submission
	if err := c.ShouldBind(&sub); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body"})
		return
	}
	sub = sub.Normalize()

	err := ws.submitter.Submit(c.Request.Context(), sub)

	var verr *contact.ValidationError
	switch {
	case err == nil:
		slog.Info("contact form submitted")
		if asJSON {
			c.JSON(http.StatusOK, models.ContactResponse{Success: true, Toast: toastModel(successToast(loc))})
			return
		}
		session := sessions.Default(c)
		session.AddFlash(flashContactSent, toastFlashKey)
		if err := session.Save(); err != nil {
			slog.Warn("unable to save flash", "error", err)
		}
		c.Redirect(http.StatusSeeOther, "/contact")

	case errors.As(err, &verr):
		fields := make(map[string]string, len(verr.Fields))
		for _, f := range verr.Fields {
			if _, ok := fields[f.Field]; !ok {
				fields[f.Field] = loc.T(f.MessageKey())
			}
		}
		if asJSON {
			c.JSON(http.StatusUnprocessableEntity, models.ContactResponse{
				Success: false,
				Toast:   toastModel(errorToast(loc)),
				Errors:  fields,
			})
			return
		}
		ws.renderContactErrors(c, sub, fields)

	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		slog.Info("contact submission abandoned", "error", err)
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, models.ErrorResponse{Error: "submission cancelled"})

	default:
		slog.Error("contact submission failed", "error", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "submission failed"})
	}
}

func (ws *WebServer) renderContactErrors(c *gin.Context, sub contact.Submission, fields map[string]string) {
	p, err := ws.newPage(c, "/contact")
	if err != nil {
		ws.pageError(c, err)
		return
	}
	p.Form = contactForm{Values: sub, Errors: fields}
	toast := errorToast(p.L)
	if p.Toast, err = templates.Render(c.Request.Context(), templates.Toast(&toast)); err != nil {
		ws.pageError(c, err)
		return
	}
	ws.renderPage(c, http.StatusUnprocessableEntity, "contact.html", p)
}
