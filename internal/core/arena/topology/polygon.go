package topology

import (
	"fmt"

	"github.com/zeusync/arena/internal/core/arena/geometry"
	"github.com/zeusync/arena/internal/core/arena/model"
	"github.com/zeusync/arena/internal/core/arena/primitive"
)

// Polygon is the straight-sided arena. Side i runs from vertex i to vertex i+1.
type Polygon struct{}

func (Polygon) Kind() model.TopologyKind { return model.TopologyPolygon }

func (Polygon) Sides(snap *model.GameSnapshot) int { return len(snap.Vertices) }

func (Polygon) Validate(snap *model.GameSnapshot) error {
	if snap == nil || len(snap.Vertices) == 0 {
		return ErrMissingVertices
	}
	if len(snap.Paddles) > 0 && len(snap.Paddles) != len(snap.Vertices) {
		return fmt.Errorf("%w: %d vertices, %d paddles", ErrVertexCountMismatch, len(snap.Vertices), len(snap.Paddles))
	}
	return nil
}

func (Polygon) Outline(snap *model.GameSnapshot, cfg model.ViewConfig) (primitive.Primitive, error) {
	if len(snap.Vertices) == 0 {
		return primitive.Primitive{}, ErrMissingVertices
	}
	points := cfg.Transform().ProjectAll(snap.Vertices)
	return primitive.NewPath(primitive.RoleOutline, primitive.NoSide, primitive.Polyline(points, true), primitive.Style{}), nil
}

func (pg Polygon) Wall(side int, snap *model.GameSnapshot, cfg model.ViewConfig) (primitive.Primitive, error) {
	s, err := pg.side(side, snap, cfg.Transform())
	if err != nil {
		return primitive.Primitive{}, err
	}
	path := primitive.Polyline([]geometry.Vec2{s.start, s.end}, false)
	return primitive.NewPath(primitive.RoleWall, side, path, primitive.Style{}), nil
}

func (pg Polygon) PaddleGeometry(p model.Paddle, snap *model.GameSnapshot, cfg model.ViewConfig) (Geometry, error) {
	tr := cfg.Transform()
	s, err := pg.side(p.SideIndex, snap, tr)
	if err != nil {
		return Geometry{}, err
	}

	scale := tr.EffectiveScale()
	dims := snap.Dimensions
	center := s.start.Add(s.vector.Scale(position(p)))
	length := dims.PaddleLength * s.length

	return Geometry{
		Paddle:  quad(center, s.tangent, s.normal, length, dims.PaddleWidth*scale),
		HitZone: quad(center, s.tangent, s.normal, length, (dims.PaddleWidth+2*dims.BallSize)*scale),
		Center:  center,
		Normal:  s.normal,
	}, nil
}

func (pg Polygon) SideAnchor(side int, snap *model.GameSnapshot, cfg model.ViewConfig) (Anchor, error) {
	s, err := pg.side(side, snap, cfg.Transform())
	if err != nil {
		return Anchor{}, err
	}
	return Anchor{Point: geometry.Mid(s.start, s.end), Normal: s.normal}, nil
}

// sideFrame is a projected side with its derived vectors.
type sideFrame struct {
	start, end geometry.Vec2
	vector     geometry.Vec2
	length     float64
	tangent    geometry.Vec2
	normal     geometry.Vec2
}

func (Polygon) side(i int, snap *model.GameSnapshot, tr geometry.Transform) (sideFrame, error) {
	n := len(snap.Vertices)
	if n == 0 {
		return sideFrame{}, ErrMissingVertices
	}
	if err := checkSide(i, n); err != nil {
		return sideFrame{}, err
	}

	start := tr.Project(snap.Vertices[i])
	end := tr.Project(snap.Vertices[(i+1)%n])
	vector := end.Sub(start)
	length := vector.Len()
	if length == 0 {
		return sideFrame{}, fmt.Errorf("%w: side %d", ErrDegenerateSide, i)
	}

	tangent := vector.Scale(1 / length)
	normal := tangent.Perp()
	// the normal points away from the arena interior
	centroid := tr.Project(geometry.Centroid(snap.Vertices))
	if normal.Dot(geometry.Mid(start, end).Sub(centroid)) < 0 {
		normal = normal.Scale(-1)
	}

	return sideFrame{start: start, end: end, vector: vector, length: length, tangent: tangent, normal: normal}, nil
}

// quad is a rectangle centered on center, long axis along tangent.
func quad(center, tangent, normal geometry.Vec2, length, width float64) primitive.Shape {
	hl := tangent.Scale(length / 2)
	hw := normal.Scale(width / 2)
	corners := []geometry.Vec2{
		center.Sub(hl).Sub(hw),
		center.Add(hl).Sub(hw),
		center.Add(hl).Add(hw),
		center.Sub(hl).Add(hw),
	}
	return primitive.Shape{
		Form:    primitive.FormQuad,
		Outline: primitive.Polyline(corners, true),
		Center:  center,
		Angle:   tangent.Angle(),
		Length:  length,
		Width:   width,
		Corners: corners,
	}
}
