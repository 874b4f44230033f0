package api

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/applkanji/website/api/models"
	"github.com/applkanji/website/slideshow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlideshowState(t *testing.T) {
	ws := newTestServer(t, nil)

	rec := get(ws, "/slideshow/state")
	require.Equal(t, http.StatusOK, rec.Code)

	var state models.SlideshowState
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &state))
	assert.Empty(t, state.ID)
	assert.Equal(t, slideshow.State{Index: 0, Direction: slideshow.Forward, Transition: slideshow.TransitionSlide}, state.State)
	assert.Equal(t, "hero-slide", state.Class)
	assert.Len(t, state.Slides, 5)
	assert.Equal(t, time.Hour.Milliseconds(), state.IntervalMillis)
}

func openSlideshow(t *testing.T, ws *WebServer) string {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	id, _, err := ws.slides.Open(ctx)
	require.NoError(t, err)
	t.Cleanup(func() {
		cancel()
		ws.slides.Wait()
	})
	return id
}

func TestSlideshowGoTo(t *testing.T) {
	ws := newTestServer(t, nil)
	id := openSlideshow(t, ws)

	tests := []struct {
		name string
		path string
		code int
	}{
		{name: "jump", path: "/slideshow/" + id + "/goto/3", code: http.StatusNoContent},
		{name: "not a number", path: "/slideshow/" + id + "/goto/two", code: http.StatusBadRequest},
		{name: "out of range", path: "/slideshow/" + id + "/goto/5", code: http.StatusBadRequest},
		{name: "negative", path: "/slideshow/" + id + "/goto/-1", code: http.StatusBadRequest},
		{name: "unknown slideshow", path: "/slideshow/nope/goto/1", code: http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(ws, httptest.NewRequest(http.MethodPost, tt.path, nil))
			assert.Equal(t, tt.code, rec.Code)
		})
	}

	cycler, ok := ws.slides.Get(id)
	require.True(t, ok)
	assert.Equal(t, 3, cycler.State().Index)
}

func TestSlideshowStreamRefusedWhenFull(t *testing.T) {
	ws := newTestServer(t, nil)
	ws.slides = slideshow.NewRegistry(len(ws.catalog.Slides), time.Hour, 1)
	openSlideshow(t, ws)

	rec := get(ws, "/slideshow/stream")
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "30", rec.Header().Get("Retry-After"))

	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "too many viewers", resp.Error)
	assert.Equal(t, 1, ws.slides.Len())
}

// readEvent reads one server-sent event and returns its name and data.
func readEvent(t *testing.T, r *bufio.Reader) (string, string) {
	t.Helper()
	var event, data string
	for {
		line, err := r.ReadString('\n')
		require.NoError(t, err)
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			if event != "" || data != "" {
				return event, data
			}
			continue
		}
		switch {
		case strings.HasPrefix(line, "event:"):
			event = strings.TrimSpace(strings.TrimPrefix(line, "event:"))
		case strings.HasPrefix(line, "data:"):
			data += strings.TrimSpace(strings.TrimPrefix(line, "data:"))
		}
	}
}

func TestSlideshowStream(t *testing.T) {
	ws := newTestServer(t, nil)
	srv := httptest.NewServer(ws.Handler())
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/slideshow/stream", nil)
	require.NoError(t, err)
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/event-stream")

	r := bufio.NewReader(resp.Body)
	event, data := readEvent(t, r)
	require.Equal(t, "init", event)

	var init models.SlideshowState
	require.NoError(t, json.Unmarshal([]byte(data), &init))
	require.NotEmpty(t, init.ID)
	assert.Equal(t, 0, init.State.Index)
	assert.Len(t, init.Slides, 5)
	assert.Equal(t, 1, ws.slides.Len())

	gotoResp, err := srv.Client().Post(srv.URL+"/slideshow/"+init.ID+"/goto/2", "", nil)
	require.NoError(t, err)
	gotoResp.Body.Close()
	require.Equal(t, http.StatusNoContent, gotoResp.StatusCode)

	event, data = readEvent(t, r)
	require.Equal(t, "state", event)

	var change models.SlideChange
	require.NoError(t, json.Unmarshal([]byte(data), &change))
	assert.Equal(t, slideshow.State{Index: 2, Direction: slideshow.Forward, Transition: slideshow.TransitionSlide}, change.State)
	assert.Equal(t, "hero-slide", change.Class)

	// disconnecting stops the viewer's cycler
	cancel()
	resp.Body.Close()
	assert.Eventually(t, func() bool {
		return ws.slides.Len() == 0
	}, 2*time.Second, 10*time.Millisecond)
	ws.slides.Wait()
}
