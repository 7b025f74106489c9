package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProjectScaleOnly(t *testing.T) {
	tr := Transform{Scale: 100}

	assert.Equal(t, V(100, -100), tr.Project(V(1, 1)))
	assert.Equal(t, V(-100, 100), tr.Project(V(-1, -1)))
}

func TestProjectTranslationOnly(t *testing.T) {
	tr := Transform{Scale: 1, Translation: V(100, 100)}

	assert.Equal(t, V(101, 99), tr.Project(V(1, 1)))
}

func TestProjectCombined(t *testing.T) {
	tr := Transform{Scale: 100, Rotation: 45, Translation: V(400, 300)}

	got := tr.Project(V(1, 0))
	assert.InDelta(t, 470.71, got.X, 0.1)
	assert.InDelta(t, 229.29, got.Y, 0.1)
}

func TestProjectQuarterTurn(t *testing.T) {
	tr := Transform{Scale: 1, Rotation: 90}

	// counter-clockwise in game space lands on +y, which the y-flip turns into -1.
	// The same convention makes the 45 degree combined case above come out exact.
	got := tr.Project(V(1, 0))
	assert.InDelta(t, 0, got.X, 1e-9)
	assert.InDelta(t, -1, got.Y, 1e-9)
}

func TestProjectDefaults(t *testing.T) {
	var tr Transform

	assert.Equal(t, 1.0, tr.EffectiveScale())
	assert.Equal(t, V(2, -3), tr.Project(V(2, 3)))
}

func TestProjectCentered(t *testing.T) {
	tr := Transform{Scale: 75, Centered: true, Viewport: Size{W: 300, H: 300}}

	assert.Equal(t, V(150, 150), tr.Origin())
	assert.Equal(t, V(225, 150), tr.Project(V(1, 0)))
	assert.Equal(t, V(150, 75), tr.Project(V(0, 1)))
}

func TestProjectNaNPropagates(t *testing.T) {
	tr := Transform{Scale: 10, Rotation: 30}

	got := tr.Project(V(math.NaN(), 1))
	assert.True(t, math.IsNaN(got.X))
	assert.True(t, math.IsNaN(got.Y))
}

func TestUnprojectRoundTrip(t *testing.T) {
	tr := Transform{Scale: 42, Rotation: 33, Translation: V(-12, 80), Centered: true, Viewport: Size{W: 640, H: 480}}

	for _, p := range []Vec2{V(0, 0), V(1, 0), V(-0.5, 0.25), V(3, -7)} {
		back := tr.Unproject(tr.Project(p))
		assert.True(t, NearlyEqual(p, back, 1e-9), "%v -> %v", p, back)
	}
}

func TestProjectAngleMatchesProjectedDirection(t *testing.T) {
	tr := Transform{Scale: 5, Rotation: 20, Translation: V(10, 10)}

	for _, theta := range []float64{0, 0.3, math.Pi / 2, 2.5, -1} {
		dir := tr.Project(Polar(1, theta)).Sub(tr.Origin())
		want := math.Atan2(math.Sin(tr.ProjectAngle(theta)), math.Cos(tr.ProjectAngle(theta)))
		assert.InDelta(t, want, dir.Angle(), 1e-9)
	}
}

func TestVecHelpers(t *testing.T) {
	assert.Equal(t, V(0.5, 0.5), Mid(V(0, 0), V(1, 1)))
	assert.Equal(t, V(0, 0), Vec2{}.Normalize())
	assert.InDelta(t, 1, V(3, 4).Normalize().Len(), 1e-12)
	assert.Equal(t, V(-4, 3), V(3, 4).Perp())
	assert.Equal(t, V(0, 0), Centroid([]Vec2{V(1, 0), V(0, 1), V(-1, 0), V(0, -1)}))
	assert.Equal(t, 0.0, Clamp(-1, 0, 1))
	assert.Equal(t, 1.0, Clamp(2, 0, 1))
}
