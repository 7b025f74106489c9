// Package scene assembles one render pass: it turns a game snapshot and a view
// configuration into an ordered list of primitives and owns the failure policy
// of the engine boundary.
package scene

import (
	"fmt"
	"runtime/debug"
	"sort"
	"strconv"

	"github.com/zeusync/arena/internal/core/arena/geometry"
	"github.com/zeusync/arena/internal/core/arena/model"
	"github.com/zeusync/arena/internal/core/arena/primitive"
	"github.com/zeusync/arena/internal/core/arena/topology"
	"github.com/zeusync/arena/internal/core/observability/log"
)

const (
	labelGap    = 10.0
	labelSize   = 12.0
	scoreMargin = 16.0
	scoreLine   = 18.0
	scoreSize   = 14.0
	bannerSize  = 16.0
)

// Assembler runs render passes. It keeps no state between passes.
type Assembler struct {
	logger   log.Log
	reporter Reporter
	palette  primitive.Palette
}

type Option func(*Assembler)

func WithLogger(l log.Log) Option {
	return func(a *Assembler) { a.logger = l }
}

// WithReporter sets where error reports go.
func WithReporter(r Reporter) Option {
	return func(a *Assembler) { a.reporter = r }
}

func WithPalette(p primitive.Palette) Option {
	return func(a *Assembler) { a.palette = p }
}

func NewAssembler(opts ...Option) *Assembler {
	a := &Assembler{
		logger:   log.NewNop(),
		reporter: nopReporter{},
		palette:  primitive.DefaultPalette(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Outcome summarises a Draw call.
type Outcome struct {
	Drawn int
	// Digest hashes the drawn primitives; zero when the frame failed.
	Digest uint64
	Report *Report
}

// OK reports whether the frame was drawn.
func (o Outcome) OK() bool { return o.Report == nil }

// RenderFrame computes the primitives of one pass without touching any surface.
// Identical inputs always produce identical output.
func (a *Assembler) RenderFrame(snap *model.GameSnapshot, cfg model.ViewConfig, player model.PlayerIndex) ([]primitive.Primitive, error) {
	topo, perr := a.prepare(snap)
	if perr != nil {
		return nil, perr
	}
	prims, err := a.build(topo, snap, cfg, player)
	if err != nil {
		return nil, err
	}
	return prims, nil
}

// Draw is the engine boundary. Missing input skips the frame and leaves the
// target as it was; any other failure leaves the target cleared. Every failure
// is reported exactly once and nothing escapes as a panic.
func (a *Assembler) Draw(target Surface, snap *model.GameSnapshot, cfg model.ViewConfig, player model.PlayerIndex) (out Outcome) {
	if target == nil {
		return a.fail(nil, cfg, newError(CodeMissingData, "frame skipped", ErrMissingSurface))
	}

	topo, rerr := a.prepare(snap)
	if rerr != nil && rerr.Code == CodeMissingData {
		return a.fail(nil, cfg, rerr)
	}

	defer func() {
		if r := recover(); r != nil {
			// the target itself may be what panicked, so no banner is drawn on it
			target.Clear()
			present(target)
			out = a.fail(nil, cfg, panicError(r))
		}
	}()

	target.Clear()
	if rerr != nil {
		return a.fail(target, cfg, rerr)
	}

	prims, err := a.build(topo, snap, cfg, player)
	if err != nil {
		return a.fail(target, cfg, AsError(err))
	}
	for _, p := range prims {
		target.Draw(p)
	}
	present(target)

	a.logger.Debug("frame drawn",
		log.String("topology", string(snap.Type)),
		log.Int("primitives", len(prims)),
		log.Int("paddles", len(snap.Paddles)),
		log.Int("balls", len(snap.Balls)),
	)
	return Outcome{Drawn: len(prims), Digest: primitive.Digest(prims)}
}

// prepare validates the inputs and selects the topology.
func (a *Assembler) prepare(snap *model.GameSnapshot) (topology.Topology, *Error) {
	if snap == nil {
		return nil, newError(CodeMissingData, "frame skipped", ErrMissingSnapshot)
	}
	topo, err := topology.For(snap.Type)
	if err != nil {
		return nil, newError(CodeConfiguration, "unsupported arena", err).WithContext("topology", string(snap.Type))
	}
	if err = topo.Validate(snap); err != nil {
		if topology.IsMissingData(err) {
			return nil, newError(CodeMissingData, "frame skipped", err).WithContext("topology", string(snap.Type))
		}
		return nil, newError(CodeRender, "invalid snapshot", err).WithContext("topology", string(snap.Type))
	}
	return topo, nil
}

func (a *Assembler) build(topo topology.Topology, snap *model.GameSnapshot, cfg model.ViewConfig, player model.PlayerIndex) (out []primitive.Primitive, err error) {
	defer func() {
		if r := recover(); r != nil {
			out, err = nil, panicError(r)
		}
	}()

	outline, err := topo.Outline(snap, cfg)
	if err != nil {
		return nil, newError(CodeRender, "outline failed", err)
	}
	outline.Style = a.palette.Outline
	out = append(out, outline)

	if out, err = a.paddles(out, topo, snap, cfg, player); err != nil {
		return nil, err
	}
	out = a.balls(out, snap, cfg)
	out = a.scores(out, snap)

	if cfg.Debug {
		if out, err = a.overlay(out, topo, snap, cfg); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (a *Assembler) paddles(out []primitive.Primitive, topo topology.Topology, snap *model.GameSnapshot, cfg model.ViewConfig, player model.PlayerIndex) ([]primitive.Primitive, error) {
	for i, p := range snap.Paddles {
		if !p.Active {
			wall, err := topo.Wall(p.SideIndex, snap, cfg)
			if err != nil {
				return nil, newError(CodeRender, "wall failed", err).WithContext("paddle", i)
			}
			wall.Style = a.palette.Wall
			out = append(out, wall)
			continue
		}

		g, err := topo.PaddleGeometry(p, snap, cfg)
		if err != nil {
			return nil, newError(CodeRender, "paddle failed", err).WithContext("paddle", i)
		}

		paddleStyle, labelStyle := a.palette.Paddle, a.palette.Label
		if player.Owns(i) {
			paddleStyle, labelStyle = a.palette.OwnPaddle, a.palette.OwnLabel
		}

		// hit-zone first so the paddle sits on top of it
		out = append(out,
			primitive.NewShape(primitive.RoleHitZone, p.SideIndex, g.HitZone, a.palette.HitZone),
			primitive.NewShape(primitive.RolePaddle, p.SideIndex, g.Paddle, paddleStyle),
			primitive.NewText(primitive.RolePaddleLabel, p.SideIndex, primitive.Text{
				At:      g.Center.Sub(g.Normal.Scale(g.HitZone.Width/2 + labelGap)),
				Content: "P" + strconv.Itoa(i+1),
				Size:    labelSize,
			}, labelStyle),
		)
	}
	return out, nil
}

func (a *Assembler) balls(out []primitive.Primitive, snap *model.GameSnapshot, cfg model.ViewConfig) []primitive.Primitive {
	tr := cfg.Transform()
	scale := tr.EffectiveScale()
	for _, b := range snap.Balls {
		size := b.Size
		if size == 0 {
			size = snap.Dimensions.BallSize
		}
		out = append(out, primitive.NewCircle(primitive.RoleBall, primitive.NoSide, primitive.Circle{
			Center: tr.Project(b.Center()),
			Radius: size * scale,
		}, a.palette.Ball))
	}
	return out
}

func (a *Assembler) scores(out []primitive.Primitive, snap *model.GameSnapshot) []primitive.Primitive {
	scores := make([]model.Score, len(snap.Scores))
	copy(scores, snap.Scores)
	sort.SliceStable(scores, func(i, j int) bool { return scores[i].PlayerIndex < scores[j].PlayerIndex })

	for k, s := range scores {
		name := s.Name
		if name == "" {
			name = "P" + strconv.Itoa(s.PlayerIndex+1)
		}
		out = append(out, primitive.NewText(primitive.RoleScore, primitive.NoSide, primitive.Text{
			At:      geometry.V(scoreMargin, scoreMargin+float64(k+1)*scoreLine),
			Content: fmt.Sprintf("%s: %d", name, s.Value),
			Size:    scoreSize,
			Anchor:  primitive.AnchorStart,
		}, a.palette.Score))
	}
	return out
}

func (a *Assembler) fail(target Surface, cfg model.ViewConfig, e *Error) Outcome {
	report := e.Report()
	fields := []log.Field{
		log.String("report_id", report.ID),
		log.String("type", string(report.Type)),
		log.Error(e),
	}
	if e.Cause != nil {
		fields = append(fields, log.ErrorWithKey("cause", e.Cause))
	}
	if report.Type == ReportMissingData {
		a.logger.Warn("render frame skipped", fields...)
	} else {
		a.logger.Error("render frame failed", fields...)
	}

	drawn := 0
	if target != nil && cfg.ErrorBanner && report.Type != ReportMissingData {
		target.Draw(a.banner(cfg, report))
		drawn = 1
	}
	if target != nil {
		present(target)
	}

	a.deliver(report)
	return Outcome{Drawn: drawn, Report: &report}
}

// deliver hands the report to the reporter. A panicking reporter is logged and
// swallowed so it cannot escape Draw.
func (a *Assembler) deliver(report Report) {
	defer func() {
		if r := recover(); r != nil {
			a.logger.Error("error reporter panicked",
				log.String("report_id", report.ID),
				log.Any("panic", r),
			)
		}
	}()
	a.reporter.Report(report)
}

func (a *Assembler) banner(cfg model.ViewConfig, r Report) primitive.Primitive {
	at := geometry.V(cfg.Boundaries.W/2, bannerSize+scoreMargin)
	return primitive.NewText(primitive.RoleBanner, primitive.NoSide, primitive.Text{
		At:      at,
		Content: "render error: " + r.Message,
		Size:    bannerSize,
	}, a.palette.Banner)
}

func panicError(r any) *Error {
	e := newError(CodeRender, "render pass aborted", fmt.Errorf("%w: %v", ErrRenderPanic, r))
	e.Stack = string(debug.Stack())
	return e
}
