package topology

import (
	"math"

	"github.com/zeusync/arena/internal/core/arena/geometry"
	"github.com/zeusync/arena/internal/core/arena/model"
	"github.com/zeusync/arena/internal/core/arena/primitive"
)

// DefaultOrigin puts the start of sector 0 at the top of the arena.
const DefaultOrigin = math.Pi / 2

const fullTurn = 2 * math.Pi

// Circular is the round arena split into equal angular sectors. Sector bounds are
// derived from the sector count; vertices are ignored. All angles below are
// game-space radians on the unit arena circle, increasing counter-clockwise.
type Circular struct{}

// Layout is the angular placement of one paddle inside its sector.
type Layout struct {
	SectorStart float64
	SectorEnd   float64
	Center      float64
	// PaddleArc is the angle the paddle body spans; Margin is added on both
	// sides for the hit-zone.
	PaddleArc float64
	Margin    float64
}

// HitZoneStart and HitZoneEnd bound the paddle plus its hit-zone margin.
func (l Layout) HitZoneStart() float64 { return l.Center - l.PaddleArc/2 - l.Margin }

func (l Layout) HitZoneEnd() float64 { return l.Center + l.PaddleArc/2 + l.Margin }

func (Circular) Kind() model.TopologyKind { return model.TopologyCircular }

func (Circular) Sides(snap *model.GameSnapshot) int { return snap.SideCount() }

func (Circular) Validate(snap *model.GameSnapshot) error {
	if snap.SideCount() <= 0 {
		return ErrMissingSectors
	}
	return nil
}

func (Circular) Outline(snap *model.GameSnapshot, cfg model.ViewConfig) (primitive.Primitive, error) {
	if snap.SideCount() <= 0 {
		return primitive.Primitive{}, ErrMissingSectors
	}
	origin := angularOrigin(cfg)
	path := boundaryArc(cfg.Transform(), origin, origin+fullTurn)
	path.Segments = append(path.Segments, primitive.Segment{Op: primitive.OpClose})
	return primitive.NewPath(primitive.RoleOutline, primitive.NoSide, path, primitive.Style{}), nil
}

func (c Circular) Wall(side int, snap *model.GameSnapshot, cfg model.ViewConfig) (primitive.Primitive, error) {
	start, end, err := c.sector(side, snap, cfg)
	if err != nil {
		return primitive.Primitive{}, err
	}
	return primitive.NewPath(primitive.RoleWall, side, boundaryArc(cfg.Transform(), start, end), primitive.Style{}), nil
}

// Layout places the paddle. The usable offset range is what is left of the
// sector after the paddle arc and both hit-zone margins, so neither the paddle
// nor its hit-zone ever crosses into a neighbouring sector.
func (c Circular) Layout(p model.Paddle, snap *model.GameSnapshot, cfg model.ViewConfig) (Layout, error) {
	start, end, err := c.sector(p.SideIndex, snap, cfg)
	if err != nil {
		return Layout{}, err
	}
	sector := end - start

	// ball_size is a fraction of the unit radius, so it doubles as the angular margin
	margin := geometry.Clamp(snap.Dimensions.BallSize, 0, sector/2)
	arc := geometry.Clamp(snap.Dimensions.PaddleLength, 0, sector-2*margin)
	available := math.Max(0, sector-(arc+2*margin))

	return Layout{
		SectorStart: start,
		SectorEnd:   end,
		Center:      start + sector/2 + (position(p)-0.5)*available,
		PaddleArc:   arc,
		Margin:      margin,
	}, nil
}

func (c Circular) PaddleGeometry(p model.Paddle, snap *model.GameSnapshot, cfg model.ViewConfig) (Geometry, error) {
	l, err := c.Layout(p, snap, cfg)
	if err != nil {
		return Geometry{}, err
	}

	tr := cfg.Transform()
	dims := snap.Dimensions
	paddle := annulusArc(tr, l.Center, l.PaddleArc/2, dims.PaddleWidth)
	hitZone := annulusArc(tr, l.Center, l.PaddleArc/2+l.Margin, dims.PaddleWidth+2*dims.BallSize)

	return Geometry{
		Paddle:  paddle,
		HitZone: hitZone,
		Center:  paddle.Center,
		Normal:  radial(tr, l.Center),
	}, nil
}

func (c Circular) SideAnchor(side int, snap *model.GameSnapshot, cfg model.ViewConfig) (Anchor, error) {
	start, end, err := c.sector(side, snap, cfg)
	if err != nil {
		return Anchor{}, err
	}
	mid := (start + end) / 2
	tr := cfg.Transform()
	return Anchor{Point: tr.Project(geometry.Polar(1, mid)), Normal: radial(tr, mid)}, nil
}

func (Circular) sector(i int, snap *model.GameSnapshot, cfg model.ViewConfig) (start, end float64, err error) {
	n := snap.SideCount()
	if n <= 0 {
		return 0, 0, ErrMissingSectors
	}
	if err = checkSide(i, n); err != nil {
		return 0, 0, err
	}
	sector := fullTurn / float64(n)
	start = angularOrigin(cfg) + float64(i)*sector
	return start, start + sector, nil
}

func angularOrigin(cfg model.ViewConfig) float64 {
	if cfg.AngularOrigin != nil {
		return *cfg.AngularOrigin
	}
	return DefaultOrigin
}

// radial is the outward unit vector at game angle theta, in view space.
func radial(tr geometry.Transform, theta float64) geometry.Vec2 {
	return tr.Project(geometry.Polar(1, theta)).Sub(tr.Origin()).Normalize()
}

// annulusArc is the ring segment between the arena radius and the radius
// reduced by width (a fraction of the arena radius), spanning center±half.
func annulusArc(tr geometry.Transform, center, half, width float64) primitive.Shape {
	scale := tr.EffectiveScale()
	inner := math.Max(0, 1-width)
	a0, a1 := center-half, center+half
	large := a1-a0 > math.Pi

	outerStart := tr.Project(geometry.Polar(1, a0))
	outerEnd := tr.Project(geometry.Polar(1, a1))
	innerStart := tr.Project(geometry.Polar(inner, a0))
	innerEnd := tr.Project(geometry.Polar(inner, a1))

	// increasing game angles turn the other way once the y axis is flipped
	outline := primitive.Path{Segments: []primitive.Segment{
		{Op: primitive.OpMove, To: outerStart},
		{Op: primitive.OpArc, To: outerEnd, Radius: scale, LargeArc: large, Sweep: false},
		{Op: primitive.OpLine, To: innerEnd},
		{Op: primitive.OpArc, To: innerStart, Radius: inner * scale, LargeArc: large, Sweep: true},
		{Op: primitive.OpClose},
	}}

	return primitive.Shape{
		Form:        primitive.FormAnnulusArc,
		Outline:     outline,
		Center:      tr.Project(geometry.Polar(1, center)),
		Angle:       tr.ProjectAngle(center),
		Length:      a1 - a0,
		Width:       (1 - inner) * scale,
		ArcCenter:   tr.Origin(),
		InnerRadius: inner * scale,
		OuterRadius: scale,
		StartAngle:  tr.ProjectAngle(a0),
		EndAngle:    tr.ProjectAngle(a1),
		LargeArc:    large,
	}
}

// boundaryArc traces the arena circle from a0 to a1. Spans of a full turn are
// split in two because a single arc cannot start and end on the same point.
func boundaryArc(tr geometry.Transform, a0, a1 float64) primitive.Path {
	scale := tr.EffectiveScale()
	segs := []primitive.Segment{{Op: primitive.OpMove, To: tr.Project(geometry.Polar(1, a0))}}
	if a1-a0 >= fullTurn-1e-9 {
		mid := a0 + (a1-a0)/2
		segs = append(segs,
			primitive.Segment{Op: primitive.OpArc, To: tr.Project(geometry.Polar(1, mid)), Radius: scale},
			primitive.Segment{Op: primitive.OpArc, To: tr.Project(geometry.Polar(1, a1)), Radius: scale},
		)
		return primitive.Path{Segments: segs}
	}
	segs = append(segs, primitive.Segment{
		Op:       primitive.OpArc,
		To:       tr.Project(geometry.Polar(1, a1)),
		Radius:   scale,
		LargeArc: a1-a0 > math.Pi,
	})
	return primitive.Path{Segments: segs}
}
