// Package primitive describes the drawable output of a render pass.
package primitive

import "github.com/zeusync/arena/internal/core/arena/geometry"

// Kind tags which payload of a Primitive is set.
type Kind uint8

const (
	KindPath Kind = iota + 1
	KindShape
	KindCircle
	KindText
)

func (k Kind) String() string {
	switch k {
	case KindPath:
		return "path"
	case KindShape:
		return "shape"
	case KindCircle:
		return "circle"
	case KindText:
		return "text"
	default:
		return "unknown"
	}
}

// Role says what a primitive represents in the scene.
type Role string

const (
	RoleOutline     Role = "outline"
	RoleWall        Role = "wall"
	RoleHitZone     Role = "hit_zone"
	RolePaddle      Role = "paddle"
	RolePaddleLabel Role = "paddle_label"
	RoleBall        Role = "ball"
	RoleScore       Role = "score"
	RoleSideLabel   Role = "side_label"
	RoleVertexLabel Role = "vertex_label"
	RoleBanner      Role = "banner"
)

// NoSide marks primitives that do not belong to a side or sector.
const NoSide = -1

// Primitive is one drawable unit. Exactly one payload matches Kind.
type Primitive struct {
	Kind      Kind
	Role      Role
	SideIndex int
	Style     Style

	Path   *Path
	Shape  *Shape
	Circle *Circle
	Text   *Text
}

// Op is a path drawing command.
type Op uint8

const (
	OpMove Op = iota
	OpLine
	OpArc
	OpClose
)

// Segment is one command of a Path. Radius, LargeArc and Sweep only apply to OpArc.
type Segment struct {
	Op       Op
	To       geometry.Vec2
	Radius   float64
	LargeArc bool
	Sweep    bool
}

// Path is a sequence of view-space drawing commands.
type Path struct {
	Segments []Segment
}

// Form distinguishes the shapes a topology can produce.
type Form uint8

const (
	FormQuad Form = iota + 1
	FormAnnulusArc
)

// Shape is a paddle or hit-zone body.
//
// Center is the anchor on the arena boundary the shape is positioned from, and
// Angle its orientation in view space: the long-axis direction for quads, the
// arc's center angle for annulus arcs. Length and Width are view-space extents
// (Length is an angle in radians for arcs).
type Shape struct {
	Form    Form
	Outline Path
	Center  geometry.Vec2
	Angle   float64
	Length  float64
	Width   float64

	Corners []geometry.Vec2

	ArcCenter   geometry.Vec2
	InnerRadius float64
	OuterRadius float64
	StartAngle  float64
	EndAngle    float64
	LargeArc    bool
}

type Circle struct {
	Center geometry.Vec2
	Radius float64
}

type Anchor uint8

const (
	AnchorMiddle Anchor = iota
	AnchorStart
	AnchorEnd
)

type Text struct {
	At      geometry.Vec2
	Content string
	Size    float64
	Anchor  Anchor
}

func NewPath(role Role, side int, p Path, style Style) Primitive {
	return Primitive{Kind: KindPath, Role: role, SideIndex: side, Path: &p, Style: style}
}

func NewShape(role Role, side int, s Shape, style Style) Primitive {
	return Primitive{Kind: KindShape, Role: role, SideIndex: side, Shape: &s, Style: style}
}

func NewCircle(role Role, side int, c Circle, style Style) Primitive {
	return Primitive{Kind: KindCircle, Role: role, SideIndex: side, Circle: &c, Style: style}
}

func NewText(role Role, side int, t Text, style Style) Primitive {
	return Primitive{Kind: KindText, Role: role, SideIndex: side, Text: &t, Style: style}
}

// Polyline builds a path through points, closing it when closed is set.
func Polyline(points []geometry.Vec2, closed bool) Path {
	segs := make([]Segment, 0, len(points)+1)
	for i, p := range points {
		op := OpLine
		if i == 0 {
			op = OpMove
		}
		segs = append(segs, Segment{Op: op, To: p})
	}
	if closed && len(points) > 0 {
		segs = append(segs, Segment{Op: OpClose})
	}
	return Path{Segments: segs}
}

// Filter returns the primitives with the given role, in order.
func Filter(list []Primitive, role Role) []Primitive {
	var out []Primitive
	for _, p := range list {
		if p.Role == role {
			out = append(out, p)
		}
	}
	return out
}
