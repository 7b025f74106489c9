package topology

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zeusync/arena/internal/core/arena/geometry"
	"github.com/zeusync/arena/internal/core/arena/model"
	"github.com/zeusync/arena/internal/core/arena/primitive"
)

func squareSnapshot() *model.GameSnapshot {
	return &model.GameSnapshot{
		Type:     model.TopologyPolygon,
		Vertices: []model.Vertex{{X: 1, Y: 0}, {X: 0, Y: 1}, {X: -1, Y: 0}, {X: 0, Y: -1}},
		Paddles: []model.Paddle{
			{Position: 0.5, Active: true, SideIndex: 0},
			{Position: 0.5, Active: true, SideIndex: 1},
			{Position: 0.5, Active: false, SideIndex: 2},
			{Position: 0.5, Active: true, SideIndex: 3},
		},
		Dimensions: model.Dimensions{PaddleLength: 0.3, PaddleWidth: 0.05, BallSize: 0.04},
	}
}

func centeredView() model.ViewConfig {
	return model.ViewConfig{Scale: 75, Centered: true, Boundaries: geometry.Size{W: 300, H: 300}}
}

func TestPolygonPaddleInterpolation(t *testing.T) {
	snap := squareSnapshot()
	cfg := centeredView()
	tr := cfg.Transform()
	start, end := tr.Project(snap.Vertices[0]), tr.Project(snap.Vertices[1])

	cases := []struct {
		position float64
		want     geometry.Vec2
	}{
		{0, start},
		{1, end},
		{0.5, geometry.Mid(start, end)},
		{0.25, geometry.Lerp(start, end, 0.25)},
	}
	for _, tc := range cases {
		g, err := Polygon{}.PaddleGeometry(model.Paddle{Position: tc.position, Active: true}, snap, cfg)
		require.NoError(t, err)
		assert.True(t, geometry.NearlyEqual(tc.want, g.Center, 1e-9), "position %v: want %v got %v", tc.position, tc.want, g.Center)
		assert.Equal(t, g.Center, g.Paddle.Center)
	}
}

func TestPolygonSquareScenario(t *testing.T) {
	snap := squareSnapshot()
	cfg := centeredView()

	g, err := Polygon{}.PaddleGeometry(snap.Paddles[0], snap, cfg)
	require.NoError(t, err)

	// (1,0) -> (225,150), (0,1) -> (150,75)
	assert.True(t, geometry.NearlyEqual(geometry.V(187.5, 112.5), g.Center, 1e-9), "got %v", g.Center)

	side := 75 * 1.4142135623730951
	assert.InDelta(t, 0.3*side, g.Paddle.Length, 1e-9)
	assert.InDelta(t, 0.05*75, g.Paddle.Width, 1e-9)
	require.Len(t, g.Paddle.Corners, 4)
	assert.True(t, geometry.NearlyEqual(g.Center, geometry.Centroid(g.Paddle.Corners), 1e-9))
}

func TestPolygonHitZoneContainsPaddle(t *testing.T) {
	snap := squareSnapshot()
	cfg := model.ViewConfig{Scale: 120, Rotation: 17, Translation: geometry.V(300, 200)}

	for _, p := range snap.Paddles {
		for _, pos := range []float64{0, 0.3, 0.5, 1} {
			p.Position = pos
			g, err := Polygon{}.PaddleGeometry(p, snap, cfg)
			require.NoError(t, err)

			assert.Equal(t, primitive.FormQuad, g.HitZone.Form)
			assert.GreaterOrEqual(t, g.HitZone.Width, g.Paddle.Width)
			assert.InDelta(t, (0.05+2*0.04)*120, g.HitZone.Width, 1e-9)
			assert.Equal(t, g.Paddle.Center, g.HitZone.Center)
			assert.Equal(t, g.Paddle.Angle, g.HitZone.Angle)
			assert.Equal(t, g.Paddle.Length, g.HitZone.Length)
		}
	}
}

func TestPolygonNormalPointsOutward(t *testing.T) {
	snap := squareSnapshot()
	cfg := centeredView()
	center := cfg.Transform().Origin()

	for side := range snap.Vertices {
		a, err := Polygon{}.SideAnchor(side, snap, cfg)
		require.NoError(t, err)
		assert.InDelta(t, 1, a.Normal.Len(), 1e-9)
		assert.Greater(t, a.Normal.Dot(a.Point.Sub(center)), 0.0, "side %d", side)
	}
}

func TestPolygonOutlineAndWall(t *testing.T) {
	snap := squareSnapshot()
	cfg := centeredView()

	outline, err := Polygon{}.Outline(snap, cfg)
	require.NoError(t, err)
	assert.Equal(t, primitive.KindPath, outline.Kind)
	assert.Equal(t, primitive.RoleOutline, outline.Role)
	require.Len(t, outline.Path.Segments, 5)
	assert.Equal(t, geometry.V(225, 150), outline.Path.Segments[0].To)
	assert.Equal(t, primitive.OpClose, outline.Path.Segments[4].Op)

	wall, err := Polygon{}.Wall(2, snap, cfg)
	require.NoError(t, err)
	assert.Equal(t, primitive.RoleWall, wall.Role)
	assert.Equal(t, 2, wall.SideIndex)
	require.Len(t, wall.Path.Segments, 2)
	assert.Equal(t, geometry.V(75, 150), wall.Path.Segments[0].To)
	assert.Equal(t, geometry.V(150, 225), wall.Path.Segments[1].To)
}

func TestPolygonErrors(t *testing.T) {
	cfg := centeredView()

	empty := &model.GameSnapshot{Type: model.TopologyPolygon}
	assert.ErrorIs(t, Polygon{}.Validate(empty), ErrMissingVertices)
	assert.True(t, IsMissingData(Polygon{}.Validate(empty)))
	assert.ErrorIs(t, Polygon{}.Validate(nil), ErrMissingVertices)

	mismatch := squareSnapshot()
	mismatch.Paddles = mismatch.Paddles[:2]
	assert.ErrorIs(t, Polygon{}.Validate(mismatch), ErrVertexCountMismatch)

	snap := squareSnapshot()
	_, err := Polygon{}.PaddleGeometry(model.Paddle{SideIndex: 4}, snap, cfg)
	assert.ErrorIs(t, err, ErrSideIndexOutOfRange)
	_, err = Polygon{}.PaddleGeometry(model.Paddle{SideIndex: -1}, snap, cfg)
	assert.ErrorIs(t, err, ErrSideIndexOutOfRange)

	degenerate := squareSnapshot()
	degenerate.Vertices[1] = degenerate.Vertices[0]
	_, err = Polygon{}.PaddleGeometry(model.Paddle{SideIndex: 0}, degenerate, cfg)
	assert.ErrorIs(t, err, ErrDegenerateSide)
	assert.False(t, IsMissingData(err))
}

func TestFor(t *testing.T) {
	poly, err := For(model.TopologyPolygon)
	require.NoError(t, err)
	assert.Equal(t, model.TopologyPolygon, poly.Kind())

	circ, err := For(model.TopologyCircular)
	require.NoError(t, err)
	assert.Equal(t, model.TopologyCircular, circ.Kind())

	_, err = For("hexagonal")
	assert.ErrorIs(t, err, ErrUnknownTopology)
	_, err = For("")
	assert.ErrorIs(t, err, ErrUnknownTopology)
}
