package api

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/applkanji/website/api/models"
	"github.com/applkanji/website/slideshow"
	"github.com/gin-gonic/gin"
)

func (ws *WebServer) slideshowState(id string, state slideshow.State) models.SlideshowState {
	return models.SlideshowState{
		ID:             id,
		State:          state,
		Class:          slideshow.ClassName(state.Transition, state.Direction),
		Slides:         ws.catalog.SlideImages(),
		IntervalMillis: ws.slideInterval.Milliseconds(),
	}
}

func (ws *WebServer) handleSlideshowState(c *gin.Context) {
	c.JSON(http.StatusOK, ws.slideshowState("", ws.initialState()))
}

// handleSlideshowStream opens a cycler for this viewer and streams its state
// as server-sent events: one init event with the cycler id, then a state
// event per change. The cycler stops when the viewer disconnects.
func (ws *WebServer) handleSlideshowStream(c *gin.Context) {
	ctx := c.Request.Context()

	id, cycler, err := ws.slides.Open(ctx)
	if errors.Is(err, slideshow.ErrRegistryFull) {
		slog.Warn("refusing slideshow stream", "viewers", ws.slides.Len(), "error", err)
		c.Header("Retry-After", "30")
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{Error: "too many viewers"})
		return
	}
	if err != nil {
		slog.Error("unable to open slideshow", "error", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "unable to open slideshow"})
		return
	}

	c.Header("Cache-Control", "no-cache")
	c.Header("X-Accel-Buffering", "no")
	c.SSEvent("init", ws.slideshowState(id, cycler.State()))
	c.Writer.Flush()

	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case state := <-cycler.Updates():
			c.SSEvent("state", models.SlideChange{
				State: state,
				Class: slideshow.ClassName(state.Transition, state.Direction),
			})
			return true
		}
	})
}

func (ws *WebServer) handleSlideshowGoTo(c *gin.Context) {
	cycler, ok := ws.slides.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "unknown slideshow"})
		return
	}

	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "index must be an integer"})
		return
	}

	if _, err := cycler.GoTo(index); err != nil {
		if errors.Is(err, slideshow.ErrIndexOutOfRange) {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
