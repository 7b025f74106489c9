package primitive

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zeusync/arena/internal/core/arena/geometry"
)

func TestPolyline(t *testing.T) {
	pts := []geometry.Vec2{geometry.V(0, 0), geometry.V(1, 0), geometry.V(1, 1)}

	open := Polyline(pts, false)
	require.Len(t, open.Segments, 3)
	assert.Equal(t, OpMove, open.Segments[0].Op)
	assert.Equal(t, OpLine, open.Segments[2].Op)

	closed := Polyline(pts, true)
	require.Len(t, closed.Segments, 4)
	assert.Equal(t, OpClose, closed.Segments[3].Op)

	assert.Empty(t, Polyline(nil, true).Segments)
}

func TestConstructorsTagKind(t *testing.T) {
	style := DefaultPalette().Ball

	c := NewCircle(RoleBall, NoSide, Circle{Center: geometry.V(1, 2), Radius: 3}, style)
	assert.Equal(t, KindCircle, c.Kind)
	assert.Equal(t, "circle", c.Kind.String())
	require.NotNil(t, c.Circle)
	assert.Nil(t, c.Path)

	txt := NewText(RoleScore, NoSide, Text{Content: "3"}, style)
	assert.Equal(t, KindText, txt.Kind)
	require.NotNil(t, txt.Text)
}

func TestFilter(t *testing.T) {
	pal := DefaultPalette()
	list := []Primitive{
		NewText(RoleScore, NoSide, Text{Content: "a"}, pal.Score),
		NewCircle(RoleBall, NoSide, Circle{}, pal.Ball),
		NewText(RoleScore, NoSide, Text{Content: "b"}, pal.Score),
	}

	scores := Filter(list, RoleScore)
	require.Len(t, scores, 2)
	assert.Equal(t, "b", scores[1].Text.Content)
	assert.Empty(t, Filter(list, RoleWall))
}

func TestDigest(t *testing.T) {
	pal := DefaultPalette()
	build := func(r float64) []Primitive {
		return []Primitive{
			NewPath(RoleOutline, NoSide, Polyline([]geometry.Vec2{geometry.V(0, 0), geometry.V(1, 1)}, true), pal.Outline),
			NewCircle(RoleBall, NoSide, Circle{Center: geometry.V(5, 5), Radius: r}, pal.Ball),
		}
	}

	assert.Equal(t, Digest(build(2)), Digest(build(2)))
	assert.NotEqual(t, Digest(build(2)), Digest(build(3)))
	assert.NotEqual(t, Digest(build(2)), Digest(build(2)[:1]))
}

func TestStyleIsIndependentOfPalette(t *testing.T) {
	pal := DefaultPalette()
	zone := Shape{Form: FormQuad}
	a := NewShape(RoleHitZone, 0, zone, pal.HitZone)
	b := NewShape(RoleHitZone, 1, zone, pal.HitZone)

	a.Style.Dash[0] = 99

	assert.Equal(t, 4.0, b.Style.Dash[0])
	assert.Equal(t, 4.0, pal.HitZone.Dash[0])
	assert.Equal(t, 4.0, DefaultPalette().HitZone.Dash[0])
}
