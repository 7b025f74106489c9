// Package topology provides the arena geometry strategies. A strategy is picked
// once per game type and turns a side or sector index plus a normalized paddle
// position into view-space shapes.
package topology

import (
	"fmt"

	"github.com/zeusync/arena/internal/core/arena/geometry"
	"github.com/zeusync/arena/internal/core/arena/model"
	"github.com/zeusync/arena/internal/core/arena/primitive"
)

// Geometry is everything a render pass needs to draw one active paddle.
type Geometry struct {
	Paddle  primitive.Shape
	HitZone primitive.Shape
	Center  geometry.Vec2
	Normal  geometry.Vec2
}

// Anchor is a point on a side or sector with its outward normal, in view space.
type Anchor struct {
	Point  geometry.Vec2
	Normal geometry.Vec2
}

// Topology is the common interface of the arena strategies.
//
// Outline and Wall return unstyled primitives; the caller owns the palette.
type Topology interface {
	Kind() model.TopologyKind
	Validate(snap *model.GameSnapshot) error
	Sides(snap *model.GameSnapshot) int
	Outline(snap *model.GameSnapshot, cfg model.ViewConfig) (primitive.Primitive, error)
	Wall(side int, snap *model.GameSnapshot, cfg model.ViewConfig) (primitive.Primitive, error)
	PaddleGeometry(p model.Paddle, snap *model.GameSnapshot, cfg model.ViewConfig) (Geometry, error)
	SideAnchor(side int, snap *model.GameSnapshot, cfg model.ViewConfig) (Anchor, error)
}

var (
	_ Topology = Polygon{}
	_ Topology = Circular{}
)

// For selects the strategy for a topology kind.
func For(kind model.TopologyKind) (Topology, error) {
	switch kind {
	case model.TopologyPolygon:
		return Polygon{}, nil
	case model.TopologyCircular:
		return Circular{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownTopology, kind)
	}
}

func checkSide(side, n int) error {
	if side < 0 || side >= n {
		return fmt.Errorf("%w: side %d of %d", ErrSideIndexOutOfRange, side, n)
	}
	return nil
}

// position clamps a paddle position into [0, 1]. NaN is left untouched.
func position(p model.Paddle) float64 {
	return geometry.Clamp(p.Position, 0, 1)
}
