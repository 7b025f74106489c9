// Package server exposes the rendered arena to browsers: the latest frame as
// SVG, a debug toggle and a websocket that pushes every new frame.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"math"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/zeusync/arena/internal/core/arena/geometry"
	"github.com/zeusync/arena/internal/core/arena/model"
	"github.com/zeusync/arena/internal/core/events/bus"
	"github.com/zeusync/arena/internal/core/observability/log"
	"github.com/zeusync/arena/internal/host"
)

// Config holds viewer server configuration
type Config struct {
	Addr            string        `yaml:"addr"`
	AllowedOrigins  []string      `yaml:"allowed_origins"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	MaxViewers      int           `yaml:"max_viewers"`
	ViewerBuffer    int           `yaml:"viewer_buffer"`
}

// DefaultConfig returns default server configuration
func DefaultConfig() Config {
	return Config{
		Addr:            "127.0.0.1:8090",
		AllowedOrigins:  []string{"*"},
		ReadTimeout:     15 * time.Second,
		WriteTimeout:    15 * time.Second,
		ShutdownTimeout: 5 * time.Second,
		MaxViewers:      64,
		ViewerBuffer:    4,
	}
}

// FrameSource provides the current frame as an SVG document.
type FrameSource interface {
	Bytes() []byte
	Resize(size geometry.Size)
}

// ViewController is the part of the render host the viewer may drive.
type ViewController interface {
	SetDebug(enabled bool)
	View() model.ViewConfig
	UpdateView(fn func(*model.ViewConfig))
}

type Server struct {
	config  Config
	frames  FrameSource
	control ViewController
	events  bus.EventBus
	logger  log.Log
	room    *room

	lastDigest atomic.Uint64 // digest of the last pushed frame
	running    int32         // atomic bool
}

func New(config Config, frames FrameSource, control ViewController, events bus.EventBus, logger log.Log) *Server {
	if logger == nil {
		logger = log.NewNop()
	}
	logger = logger.With(log.String("component", "viewer"))
	return &Server{
		config:  config,
		frames:  frames,
		control: control,
		events:  events,
		logger:  logger,
		room:    newRoom(config.MaxViewers, config.ViewerBuffer, logger),
	}
}

// Router builds the HTTP routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.config.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/healthz", s.handleHealth)
	r.Get("/frame.svg", s.handleFrame)
	r.Get("/view", s.handleView)
	r.Put("/view", s.handleUpdateView)
	r.Get("/locate", s.handleLocate)
	r.Post("/debug", s.handleDebug)
	r.Get("/ws", s.handleWebSocket)

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	if !atomic.CompareAndSwapInt32(&s.running, 0, 1) {
		return ErrServerAlreadyRunning
	}
	defer atomic.StoreInt32(&s.running, 0)

	if s.config.Addr == "" {
		return ErrInvalidConfig
	}

	if s.events != nil {
		sub, err := s.events.Subscribe(bus.TypeFrameDrawn, s.onFrame)
		if err != nil {
			return err
		}
		defer func() { _ = s.events.Unsubscribe(sub) }()
	}

	srv := &http.Server{
		Addr:         s.config.Addr,
		Handler:      s.Router(),
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("viewer listening", log.String("addr", s.config.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()
	s.room.closeAll()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}

// onFrame pushes a drawn frame to every viewer unless it looks exactly like
// the one pushed before.
func (s *Server) onFrame(e bus.Event) error {
	if f, ok := e.Data().(host.Frame); ok && f.Digest != 0 {
		if s.lastDigest.Swap(f.Digest) == f.Digest {
			return nil
		}
	}
	s.room.broadcast(s.frames.Bytes())
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	body := map[string]any{"status": "ok", "viewers": s.room.size()}
	if s.events != nil {
		body["events"] = s.events.GetMetrics()
	}
	writeJSON(w, http.StatusOK, body)
}

func (s *Server) handleFrame(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(s.frames.Bytes())
}

func (s *Server) handleView(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.control.View())
}

// handleUpdateView replaces the view configuration. The SVG viewport follows
// the new boundaries; the next drawn frame uses the new projection.
func (s *Server) handleUpdateView(w http.ResponseWriter, r *http.Request) {
	var next model.ViewConfig
	if err := json.NewDecoder(r.Body).Decode(&next); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid view: " + err.Error()})
		return
	}
	if next.Boundaries.W <= 0 || next.Boundaries.H <= 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "boundaries must be positive"})
		return
	}
	s.control.UpdateView(func(v *model.ViewConfig) { *v = next })
	s.frames.Resize(next.Boundaries)
	s.logger.Info("view updated",
		log.Float64("scale", next.Scale),
		log.Float64("rotation", next.Rotation),
		log.Float64("width", next.Boundaries.W),
		log.Float64("height", next.Boundaries.H),
	)
	writeJSON(w, http.StatusOK, s.control.View())
}

// handleLocate maps a point on the rendered frame back to game space, e.g. a
// click position in the browser.
func (s *Server) handleLocate(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	x, errX := strconv.ParseFloat(q.Get("x"), 64)
	y, errY := strconv.ParseFloat(q.Get("y"), 64)
	if errX != nil || errY != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "x and y must be numbers"})
		return
	}
	p := s.control.View().Transform().Unproject(geometry.V(x, y))
	writeJSON(w, http.StatusOK, map[string]float64{
		"x":     p.X,
		"y":     p.Y,
		"angle": math.Atan2(p.Y, p.X),
	})
}

func (s *Server) handleDebug(w http.ResponseWriter, r *http.Request) {
	enabled, err := strconv.ParseBool(r.URL.Query().Get("enabled"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "enabled must be a boolean"})
		return
	}
	s.control.SetDebug(enabled)
	s.logger.Info("debug overlay toggled", log.Bool("enabled", enabled))
	writeJSON(w, http.StatusOK, s.control.View())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
