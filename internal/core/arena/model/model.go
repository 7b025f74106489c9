// Package model defines the inputs of a render pass: the game snapshot pushed
// by the state-sync layer and the view configuration owned by the render host.
package model

import (
	"github.com/zeusync/arena/internal/core/arena/geometry"
)

// TopologyKind selects the arena geometry strategy.
type TopologyKind string

const (
	TopologyPolygon  TopologyKind = "polygon"
	TopologyCircular TopologyKind = "circular"
)

// Vertex is a game-space polygon anchor.
type Vertex = geometry.Vec2

// Dimensions are fractions relative to the arena scale.
type Dimensions struct {
	PaddleLength float64 `json:"paddle_length" yaml:"paddle_length"`
	PaddleWidth  float64 `json:"paddle_width" yaml:"paddle_width"`
	BallSize     float64 `json:"ball_size" yaml:"ball_size"`
}

// Paddle is one player's paddle. Position is normalized along its side or sector.
// An inactive paddle turns its side into a wall.
type Paddle struct {
	Position  float64 `json:"position" yaml:"position"`
	Active    bool    `json:"active" yaml:"active"`
	SideIndex int     `json:"side_index" yaml:"side_index"`
}

// Ball is a game-space center and radius. A zero size falls back to Dimensions.BallSize.
type Ball struct {
	X    float64 `json:"x" yaml:"x"`
	Y    float64 `json:"y" yaml:"y"`
	Size float64 `json:"size" yaml:"size"`
}

func (b Ball) Center() geometry.Vec2 { return geometry.Vec2{X: b.X, Y: b.Y} }

// Score is one player's score. Labels are ordered by PlayerIndex, never by input order.
type Score struct {
	PlayerIndex int    `json:"player_index" yaml:"player_index"`
	Value       int    `json:"value" yaml:"value"`
	Name        string `json:"name,omitempty" yaml:"name,omitempty"`
}

// CollisionInfo is only present on the frame a hit happens.
type CollisionInfo struct {
	SideIndex int    `json:"side_index" yaml:"side_index"`
	Type      string `json:"type" yaml:"type"`
}

// GameSnapshot is one immutable frame of game state. The engine only reads it.
type GameSnapshot struct {
	Type        TopologyKind   `json:"type" yaml:"type"`
	Vertices    []Vertex       `json:"vertices,omitempty" yaml:"vertices,omitempty"`
	SectorCount int            `json:"sector_count,omitempty" yaml:"sector_count,omitempty"`
	Paddles     []Paddle       `json:"paddles" yaml:"paddles"`
	Balls       []Ball         `json:"balls" yaml:"balls"`
	Scores      []Score        `json:"scores,omitempty" yaml:"scores,omitempty"`
	Dimensions  Dimensions     `json:"dimensions" yaml:"dimensions"`
	Collision   *CollisionInfo `json:"collision,omitempty" yaml:"collision,omitempty"`
}

// SideCount is the number of sides or sectors the snapshot describes.
func (s *GameSnapshot) SideCount() int {
	if s == nil {
		return 0
	}
	if s.Type == TopologyCircular {
		if s.SectorCount > 0 {
			return s.SectorCount
		}
		return len(s.Paddles)
	}
	return len(s.Vertices)
}

// Colliding reports whether the collision of this frame hit the given side.
func (s *GameSnapshot) Colliding(sideIndex int) bool {
	return s != nil && s.Collision != nil && s.Collision.SideIndex == sideIndex
}

// PlayerIndex identifies the local viewer's paddle. NoPlayer marks a spectator.
type PlayerIndex int

const NoPlayer PlayerIndex = -1

// Owns reports whether the paddle at index i belongs to the viewer.
func (p PlayerIndex) Owns(i int) bool { return p >= 0 && int(p) == i }

// ViewConfig is owned by the render host and only changes between passes.
type ViewConfig struct {
	Scale       float64       `json:"scale" yaml:"scale"`
	Rotation    float64       `json:"rotation" yaml:"rotation"`
	Translation geometry.Vec2 `json:"translation" yaml:"translation"`
	Centered    bool          `json:"centered" yaml:"centered"`
	Boundaries  geometry.Size `json:"boundaries" yaml:"boundaries"`
	Debug       bool          `json:"debug" yaml:"debug"`
	// AngularOrigin is where sector 0 starts in game space, radians. Nil means the top (pi/2).
	AngularOrigin *float64 `json:"angular_origin,omitempty" yaml:"angular_origin,omitempty"`
	ErrorBanner   bool     `json:"error_banner" yaml:"error_banner"`
}

// Transform builds the projection for this view.
func (c ViewConfig) Transform() geometry.Transform {
	return geometry.Transform{
		Scale:       c.Scale,
		Rotation:    c.Rotation,
		Translation: c.Translation,
		Centered:    c.Centered,
		Viewport:    c.Boundaries,
	}
}
