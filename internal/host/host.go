// Package host runs the render engine for one viewer. It caches the per-game
// data the state-sync layer only sends once, owns the view configuration and
// makes sure passes never overlap.
package host

import (
	"sync"

	"github.com/zeusync/arena/internal/core/arena/model"
	"github.com/zeusync/arena/internal/core/arena/scene"
	"github.com/zeusync/arena/internal/core/events/bus"
	"github.com/zeusync/arena/internal/core/observability/log"
)

const eventSource = "host"

// GameStart is sent once when a game begins.
type GameStart struct {
	Type        model.TopologyKind `json:"type" yaml:"type"`
	Vertices    []model.Vertex     `json:"vertices,omitempty" yaml:"vertices,omitempty"`
	SectorCount int                `json:"sector_count,omitempty" yaml:"sector_count,omitempty"`
	PlayerIndex *int               `json:"player_index,omitempty" yaml:"player_index,omitempty"`
	Dimensions  *model.Dimensions  `json:"dimensions,omitempty" yaml:"dimensions,omitempty"`
}

// Frame is published on the bus after every drawn pass.
type Frame struct {
	Sequence    uint64
	Fingerprint uint64
	// Digest hashes the drawn output. Different inputs can still draw the same frame.
	Digest     uint64
	Primitives int
}

// Host serialises render passes onto a single surface.
type Host struct {
	mu sync.Mutex

	assembler *scene.Assembler
	surface   scene.Surface
	events    bus.EventBus
	logger    log.Log

	view   model.ViewConfig
	player model.PlayerIndex

	game        *GameStart
	sequence    uint64
	last        uint64
	lastDrawn   bool
	skipped     uint64
	lastOutcome scene.Outcome
}

// New wires a host. Render errors are published on events as bus.TypeRenderError
// and drawn frames as bus.TypeFrameDrawn. Both are delivered while the pass
// still holds the host, so subscribers must not call back into it.
func New(surface scene.Surface, view model.ViewConfig, events bus.EventBus, logger log.Log) *Host {
	if logger == nil {
		logger = log.NewNop()
	}
	if events == nil {
		events = bus.New()
	}
	h := &Host{
		surface: surface,
		events:  events,
		logger:  logger.With(log.String("component", "render_host")),
		view:    view,
		player:  model.NoPlayer,
	}
	h.assembler = scene.NewAssembler(
		scene.WithLogger(h.logger),
		scene.WithReporter(scene.ReporterFunc(h.report)),
	)
	return h
}

// StartGame caches the data that is not repeated in every snapshot.
func (h *Host) StartGame(g GameStart) {
	h.mu.Lock()
	defer h.mu.Unlock()

	cached := g
	cached.Vertices = append([]model.Vertex(nil), g.Vertices...)
	h.game = &cached
	h.player = model.NoPlayer
	if g.PlayerIndex != nil {
		h.player = model.PlayerIndex(*g.PlayerIndex)
	}
	h.lastDrawn = false

	h.logger.Info("game started",
		log.String("topology", string(g.Type)),
		log.Int("vertices", len(g.Vertices)),
		log.Int("sectors", g.SectorCount),
		log.Int("player", int(h.player)),
	)
}

// EndGame drops the cached game data. Later snapshots are skipped as missing data.
func (h *Host) EndGame() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.game = nil
	h.lastDrawn = false
	h.logger.Info("game ended", log.Uint64("frames", h.sequence), log.Uint64("skipped", h.skipped))
}

// ApplySnapshot renders one snapshot. Calls are serialised; a snapshot arriving
// during a pass waits for it to finish.
func (h *Host) ApplySnapshot(snap *model.GameSnapshot) scene.Outcome {
	h.mu.Lock()
	defer h.mu.Unlock()

	full := h.complete(snap)

	fp, err := scene.Fingerprint(full, h.view, h.player)
	if err == nil && h.lastDrawn && fp == h.last {
		h.skipped++
		return h.lastOutcome
	}
	if err != nil {
		h.logger.Debug("fingerprint unavailable", log.Error(err))
	}

	out := h.assembler.Draw(h.surface, full, h.view, h.player)
	if !out.OK() {
		if out.Report.Type != scene.ReportMissingData {
			h.lastDrawn = false
		}
		return out
	}

	h.sequence++
	h.last, h.lastDrawn, h.lastOutcome = fp, err == nil, out
	if perr := h.events.Publish(bus.NewEvent(bus.TypeFrameDrawn, eventSource, Frame{
		Sequence:    h.sequence,
		Fingerprint: fp,
		Digest:      out.Digest,
		Primitives:  out.Drawn,
	})); perr != nil {
		h.logger.Warn("frame subscriber failed", log.Error(perr))
	}
	return out
}

// SetDebug toggles the debug overlay for subsequent passes.
func (h *Host) SetDebug(enabled bool) {
	h.UpdateView(func(v *model.ViewConfig) { v.Debug = enabled })
}

// UpdateView mutates the view configuration between passes.
func (h *Host) UpdateView(fn func(*model.ViewConfig)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	fn(&h.view)
	h.lastDrawn = false
}

// View returns a copy of the current view configuration.
func (h *Host) View() model.ViewConfig {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.view
}

// Stats reports drawn and de-duplicated frame counts.
func (h *Host) Stats() (drawn, skipped uint64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.sequence, h.skipped
}

// complete fills in the cached per-game fields without mutating the caller's snapshot.
func (h *Host) complete(snap *model.GameSnapshot) *model.GameSnapshot {
	if snap == nil {
		return nil
	}
	full := *snap
	if h.game == nil {
		return &full
	}
	if full.Type == "" {
		full.Type = h.game.Type
	}
	if len(full.Vertices) == 0 {
		full.Vertices = h.game.Vertices
	}
	if full.SectorCount == 0 {
		full.SectorCount = h.game.SectorCount
	}
	if full.Dimensions == (model.Dimensions{}) && h.game.Dimensions != nil {
		full.Dimensions = *h.game.Dimensions
	}
	return &full
}

func (h *Host) report(r scene.Report) {
	if err := h.events.Publish(bus.NewEvent(bus.TypeRenderError, eventSource, r)); err != nil {
		h.logger.Warn("error subscriber failed", log.Error(err))
	}
}
