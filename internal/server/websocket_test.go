package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zeusync/arena/internal/core/arena/geometry"
	"github.com/zeusync/arena/internal/core/arena/model"
	"github.com/zeusync/arena/internal/core/events/bus"
	"github.com/zeusync/arena/internal/core/observability/log"
	"github.com/zeusync/arena/internal/host"
)

type stubFrames struct {
	mu    sync.Mutex
	frame []byte
	size  geometry.Size
}

func (f *stubFrames) Resize(size geometry.Size) {
	f.mu.Lock()
	f.size = size
	f.mu.Unlock()
}

func (f *stubFrames) Bytes() []byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.frame
}

func (f *stubFrames) set(frame string) {
	f.mu.Lock()
	f.frame = []byte(frame)
	f.mu.Unlock()
}

type stubController struct {
	mu   sync.Mutex
	view model.ViewConfig
}

func (c *stubController) SetDebug(enabled bool) {
	c.mu.Lock()
	c.view.Debug = enabled
	c.mu.Unlock()
}

func (c *stubController) UpdateView(fn func(*model.ViewConfig)) {
	c.mu.Lock()
	fn(&c.view)
	c.mu.Unlock()
}

func (c *stubController) View() model.ViewConfig {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view
}

func newTestServer(t *testing.T, cfg Config) (*Server, *stubFrames, *stubController, *httptest.Server) {
	t.Helper()
	frames := &stubFrames{frame: []byte("<svg>first</svg>")}
	ctl := &stubController{view: model.ViewConfig{Scale: 50}}
	srv := New(cfg, frames, ctl, bus.New(), nil)
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)
	return srv, frames, ctl, ts
}

func TestFrameEndpoint(t *testing.T) {
	_, _, _, ts := newTestServer(t, DefaultConfig())

	resp, err := http.Get(ts.URL + "/frame.svg")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/svg+xml", resp.Header.Get("Content-Type"))
}

func TestDebugToggle(t *testing.T) {
	_, _, ctl, ts := newTestServer(t, DefaultConfig())

	resp, err := http.Post(ts.URL+"/debug?enabled=true", "", nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var view model.ViewConfig
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&view))
	assert.True(t, view.Debug)
	assert.True(t, ctl.View().Debug)

	bad, err := http.Post(ts.URL+"/debug?enabled=maybe", "", nil)
	require.NoError(t, err)
	defer bad.Body.Close()
	assert.Equal(t, http.StatusBadRequest, bad.StatusCode)
}

func TestHealthz(t *testing.T) {
	_, _, _, ts := newTestServer(t, DefaultConfig())

	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
	events, ok := body["events"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, events, "published")
}

func TestUpdateViewResizesSurface(t *testing.T) {
	_, frames, ctl, ts := newTestServer(t, DefaultConfig())

	body := strings.NewReader(`{"scale": 80, "rotation": 30, "centered": true, "boundaries": {"width": 640, "height": 480}}`)
	req, err := http.NewRequest(http.MethodPut, ts.URL+"/view", body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Equal(t, 80.0, ctl.View().Scale)
	assert.Equal(t, 30.0, ctl.View().Rotation)
	frames.mu.Lock()
	assert.Equal(t, geometry.Size{W: 640, H: 480}, frames.size)
	frames.mu.Unlock()

	bad, err := http.NewRequest(http.MethodPut, ts.URL+"/view", strings.NewReader(`{"scale": 1}`))
	require.NoError(t, err)
	badResp, err := http.DefaultClient.Do(bad)
	require.NoError(t, err)
	defer badResp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, badResp.StatusCode)
}

func TestLocateInvertsProjection(t *testing.T) {
	_, _, ctl, ts := newTestServer(t, DefaultConfig())
	ctl.UpdateView(func(v *model.ViewConfig) {
		*v = model.ViewConfig{Scale: 75, Centered: true, Boundaries: geometry.Size{W: 300, H: 300}}
	})

	resp, err := http.Get(ts.URL + "/locate?x=225&y=150")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var p map[string]float64
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&p))
	assert.InDelta(t, 1, p["x"], 1e-9)
	assert.InDelta(t, 0, p["y"], 1e-9)
	assert.InDelta(t, 0, p["angle"], 1e-9)

	bad, err := http.Get(ts.URL + "/locate?x=left")
	require.NoError(t, err)
	defer bad.Body.Close()
	assert.Equal(t, http.StatusBadRequest, bad.StatusCode)
}

func TestIdenticalFramesArePushedOnce(t *testing.T) {
	srv, _, _, _ := newTestServer(t, DefaultConfig())
	v, err := srv.room.join(nil, []byte("initial"))
	require.NoError(t, err)
	<-v.send

	push := func(digest uint64) {
		require.NoError(t, srv.onFrame(bus.NewEvent(bus.TypeFrameDrawn, "host", host.Frame{Digest: digest})))
	}
	push(7)
	push(7)
	assert.Len(t, v.send, 1)
	<-v.send

	push(8)
	assert.Len(t, v.send, 1)
}

func TestWebSocketPushesFrames(t *testing.T) {
	srv, frames, _, ts := newTestServer(t, DefaultConfig())
	u := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"

	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.Equal(t, "<svg>first</svg>", string(msg))

	require.Eventually(t, func() bool { return srv.room.size() == 1 }, time.Second, 10*time.Millisecond)

	frames.set("<svg>second</svg>")
	srv.room.broadcast(frames.Bytes())

	_, msg, err = conn.ReadMessage()
	require.NoError(t, err)
	assert.Equal(t, "<svg>second</svg>", string(msg))
}

func TestWebSocketViewerLimit(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxViewers = 1
	srv, _, _, ts := newTestServer(t, cfg)
	u := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"

	first, _, err := websocket.DefaultDialer.Dial(u, nil)
	require.NoError(t, err)
	defer first.Close()
	require.Eventually(t, func() bool { return srv.room.size() == 1 }, time.Second, 10*time.Millisecond)

	second, _, err := websocket.DefaultDialer.Dial(u, nil)
	require.NoError(t, err)
	defer second.Close()

	require.NoError(t, second.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err = second.ReadMessage()
	require.Error(t, err)
	assert.True(t, websocket.IsCloseError(err, websocket.CloseTryAgainLater))
	assert.Equal(t, 1, srv.room.size())
}

func TestViewerLeavesOnClose(t *testing.T) {
	srv, _, _, ts := newTestServer(t, DefaultConfig())
	u := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"

	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	require.NoError(t, err)
	require.Eventually(t, func() bool { return srv.room.size() == 1 }, time.Second, 10*time.Millisecond)

	require.NoError(t, conn.Close())
	assert.Eventually(t, func() bool { return srv.room.size() == 0 }, time.Second, 10*time.Millisecond)
}

func TestBroadcastDropsForSlowViewer(t *testing.T) {
	r := newRoom(0, 1, log.NewNop())
	v, err := r.join(nil, []byte("a"))
	require.NoError(t, err)

	r.broadcast([]byte("b"))
	assert.Len(t, v.send, 1)
	assert.Equal(t, "a", string(<-v.send))

	r.closeAll()
	_, open := <-v.send
	assert.False(t, open)
}
