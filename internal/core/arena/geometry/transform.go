package geometry

import "math"

// Size is a width/height pair in view units.
type Size struct {
	W float64 `json:"width" yaml:"width"`
	H float64 `json:"height" yaml:"height"`
}

// Transform maps game-space coordinates into view space.
//
// The pipeline is fixed: scale, rotate (degrees), translate, flip the y axis
// about the translated origin, then optionally shift by half the viewport so
// the game origin sits in the middle of the output surface.
type Transform struct {
	Scale       float64
	Rotation    float64
	Translation Vec2
	Centered    bool
	Viewport    Size
}

// EffectiveScale treats an unset (zero) scale as 1.
func (t Transform) EffectiveScale() float64 {
	if t.Scale == 0 {
		return 1
	}
	return t.Scale
}

// Origin is the view-space position of the game-space origin.
func (t Transform) Origin() Vec2 {
	return t.Project(Vec2{})
}

// Project maps a single game-space point. It never fails; NaN inputs produce NaN outputs.
func (t Transform) Project(p Vec2) Vec2 {
	s := t.EffectiveScale()
	x, y := p.X*s, p.Y*s

	if t.Rotation != 0 {
		rad := Radians(t.Rotation)
		cos, sin := math.Cos(rad), math.Sin(rad)
		x, y = x*cos-y*sin, x*sin+y*cos
	}

	out := Vec2{X: t.Translation.X + x, Y: t.Translation.Y - y}
	if t.Centered {
		out.X += t.Viewport.W / 2
		out.Y += t.Viewport.H / 2
	}
	return out
}

// Unproject is the inverse of Project.
func (t Transform) Unproject(v Vec2) Vec2 {
	if t.Centered {
		v.X -= t.Viewport.W / 2
		v.Y -= t.Viewport.H / 2
	}
	x, y := v.X-t.Translation.X, t.Translation.Y-v.Y

	if t.Rotation != 0 {
		rad := -Radians(t.Rotation)
		cos, sin := math.Cos(rad), math.Sin(rad)
		x, y = x*cos-y*sin, x*sin+y*cos
	}

	s := t.EffectiveScale()
	return Vec2{X: x / s, Y: y / s}
}

// ProjectAll maps every point, preserving order.
func (t Transform) ProjectAll(points []Vec2) []Vec2 {
	out := make([]Vec2, len(points))
	for i, p := range points {
		out[i] = t.Project(p)
	}
	return out
}

// ProjectAngle converts a game-space direction angle into the matching view-space angle.
func (t Transform) ProjectAngle(theta float64) float64 {
	return -(theta + Radians(t.Rotation))
}
