package arcball

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	width  = 800.0
	height = 600.0
	radius = 300.0
)

var center = mgl64.Vec2{width / 2, height / 2}

// alongX returns the pixel whose sphere point lies at angle theta from the view axis, towards +X
func alongX(theta float64) mgl64.Vec2 {
	return mgl64.Vec2{center.X() + radius*math.Sin(theta), center.Y()}
}

// assertVecNear compares component wise with an absolute tolerance.
// mathgl's ApproxEqualThreshold switches to epsilon squared when a component is zero.
func assertVecNear(t *testing.T, expected, actual mgl64.Vec3) {
	t.Helper()
	for i := range expected {
		assert.InDelta(t, expected[i], actual[i], 1e-9, "component %d: expected %v, got %v", i, expected, actual)
	}
}

func assertQuatNear(t *testing.T, expected, actual mgl64.Quat, delta float64) {
	t.Helper()
	assert.InDelta(t, expected.W, actual.W, delta, "W: expected %v, got %v", expected, actual)
	for i := range expected.V {
		assert.InDelta(t, expected.V[i], actual.V[i], delta, "V[%d]: expected %v, got %v", i, expected, actual)
	}
}

func TestNewIsIdleIdentity(t *testing.T) {
	a := New(width, height)
	assert.Equal(t, Idle, a.State())
	assert.Equal(t, mgl64.QuatIdent(), a.Orientation())
	assert.Equal(t, mgl64.Ident4(), a.Matrix())
}

func TestClickWithoutMotionIsIdentity(t *testing.T) {
	a := New(width, height)
	p := mgl64.Vec2{512, 123}

	a.Press(p)
	assert.Equal(t, Dragging, a.State())
	assert.True(t, a.Move(p))
	a.Release()

	assert.Equal(t, Idle, a.State())
	assert.Equal(t, mgl64.QuatIdent(), a.Orientation())
}

func TestMoveWhileIdleIsNotConsumed(t *testing.T) {
	a := New(width, height)
	assert.False(t, a.Move(mgl64.Vec2{10, 10}))
	assert.Equal(t, mgl64.QuatIdent(), a.Orientation())
}

func TestDragRotatesPointUnderCursor(t *testing.T) {
	a := New(width, height)
	a.Press(center)
	a.Move(alongX(math.Pi / 6))

	// The point that was under the cursor follows it.
	rotated := a.Orientation().Rotate(mgl64.Vec3{0, 0, 1})
	assertVecNear(t, mgl64.Vec3{0.5, 0, math.Sqrt(3) / 2}, rotated)
}

func TestMovesAreRelativeToDragStart(t *testing.T) {
	a := New(width, height)
	a.Press(center)
	a.Move(alongX(0.1))
	a.Move(alongX(0.4))
	a.Move(alongX(0.3))

	expected := mgl64.QuatRotate(0.3, mgl64.Vec3{0, 1, 0})
	assertQuatNear(t, expected, a.Orientation(), 1e-9)
}

func TestConsecutiveDragsAlongGreatCircleCompose(t *testing.T) {
	a := New(width, height)

	a.Press(center)
	a.Move(alongX(math.Pi / 6))
	a.Release()

	a.Press(center)
	a.Move(alongX(math.Pi / 9))
	a.Release()

	total := math.Pi/6 + math.Pi/9
	expected := mgl64.QuatRotate(total, mgl64.Vec3{0, 1, 0})
	assertQuatNear(t, expected, a.Orientation(), 1e-9)
}

func TestCompositionAppliesIncrementAfterBaseline(t *testing.T) {
	a := New(width, height)

	// 90 degrees about Y, then drag upwards: 90 degrees about -X in view space.
	a.Press(center)
	a.Move(alongX(math.Pi / 2))
	a.Release()

	a.Press(center)
	a.Move(mgl64.Vec2{center.X(), center.Y() - radius})
	a.Release()

	yaw := mgl64.QuatRotate(math.Pi/2, mgl64.Vec3{0, 1, 0})
	pitch := mgl64.QuatRotate(math.Pi/2, mgl64.Vec3{-1, 0, 0})
	expected := pitch.Mul(yaw)
	assertQuatNear(t, expected, a.Orientation(), 1e-9)

	// +Z goes to +X under the yaw, and +X stays put under a pitch about X.
	assertVecNear(t, mgl64.Vec3{1, 0, 0}, a.Orientation().Rotate(mgl64.Vec3{0, 0, 1}))
}

func TestReleaseKeepsOrientationAsBaseline(t *testing.T) {
	a := New(width, height)
	a.Press(center)
	a.Move(alongX(0.5))
	a.Release()
	after := a.Orientation()

	p := mgl64.Vec2{100, 500}
	a.Press(p)
	a.Move(p)
	assertQuatNear(t, after, a.Orientation(), 1e-12)
}

func TestSetSizeDoesNotRotate(t *testing.T) {
	a := New(width, height)
	a.Press(center)
	a.Move(alongX(0.5))
	before := a.Orientation()

	a.SetSize(1024, 768)
	assert.Equal(t, before, a.Orientation())
	assert.Equal(t, Dragging, a.State())
	assert.Equal(t, mgl64.Vec2{1024, 768}, a.Size())
}

func TestPointsOutsideAreClampedToRim(t *testing.T) {
	a := New(width, height)
	a.Press(center)
	a.Move(mgl64.Vec2{10000, center.Y()})

	expected := mgl64.QuatRotate(math.Pi/2, mgl64.Vec3{0, 1, 0})
	assertQuatNear(t, expected, a.Orientation(), 1e-9)
}

func TestAntiparallelPointsRotateHalfTurn(t *testing.T) {
	left := mgl64.Vec2{center.X() - 2*radius, center.Y()}
	right := mgl64.Vec2{center.X() + 2*radius, center.Y()}

	q := Rotate(mgl64.QuatIdent(), left, right, mgl64.Vec2{width, height})
	assert.InDelta(t, 0, q.W, 1e-9)
	assertVecNear(t, mgl64.Vec3{1, 0, 0}, q.Rotate(mgl64.Vec3{-1, 0, 0}))
}

func TestRotateIsPure(t *testing.T) {
	base := mgl64.QuatRotate(0.7, mgl64.Vec3{1, 1, 0}.Normalize())
	size := mgl64.Vec2{width, height}
	start, current := mgl64.Vec2{300, 200}, mgl64.Vec2{450, 380}

	first := Rotate(base, start, current, size)
	second := Rotate(base, start, current, size)
	assert.Equal(t, first, second)
	assert.InDelta(t, 1, first.Len(), 1e-12)
}

func TestZeroViewportKeepsOrientation(t *testing.T) {
	base := mgl64.QuatRotate(0.3, mgl64.Vec3{0, 0, 1})
	q := Rotate(base, mgl64.Vec2{0, 0}, mgl64.Vec2{50, 50}, mgl64.Vec2{})
	assert.Equal(t, base, q)
}

func TestReset(t *testing.T) {
	a := New(width, height)
	a.Press(center)
	a.Move(alongX(0.5))

	a.Reset()
	assert.Equal(t, Idle, a.State())
	assert.Equal(t, mgl64.QuatIdent(), a.Orientation())
	require.False(t, a.Move(alongX(0.2)))
}

func TestSetOrientationEndsDrag(t *testing.T) {
	a := New(800, 600)
	a.Press(mgl64.Vec2{400, 300})

	q := mgl64.QuatRotate(math.Pi/4, mgl64.Vec3{0, 1, 0})
	a.SetOrientation(q)
	assert.Equal(t, Idle, a.State())
	assertQuatNear(t, q, a.Orientation(), 1e-12)

	// The next drag starts from the new orientation.
	a.Press(mgl64.Vec2{400, 300})
	a.Move(mgl64.Vec2{400, 300})
	assertQuatNear(t, q, a.Orientation(), 1e-12)
}
