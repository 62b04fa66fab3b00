// Package arcball turns pointer drags into rotations.
//
// Both drag end points are mapped onto a virtual sphere centred on the
// viewport; the rotation carrying the start point onto the current point is
// applied on top of the orientation the drag started from.
package arcball

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// State of the drag state machine
type State int

const (
	Idle State = iota
	Dragging
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Dragging:
		return "dragging"
	default:
		return "unknown"
	}
}

// Arcball tracks one drag at a time
type Arcball struct {
	state            State
	start            mgl64.Vec2
	startOrientation mgl64.Quat
	orientation      mgl64.Quat
	size             mgl64.Vec2
}

// New creates an idle arcball with identity orientation for a viewport of the given size in pixels
func New(width, height float64) *Arcball {
	return &Arcball{
		startOrientation: mgl64.QuatIdent(),
		orientation:      mgl64.QuatIdent(),
		size:             mgl64.Vec2{width, height},
	}
}

// Press starts a drag at p
func (a *Arcball) Press(p mgl64.Vec2) {
	a.state = Dragging
	a.start = p
	a.startOrientation = a.orientation
}

// Move updates the orientation while dragging. It reports whether the
// event was consumed, which is false when no drag is active.
func (a *Arcball) Move(p mgl64.Vec2) bool {
	if a.state != Dragging {
		return false
	}
	a.orientation = Rotate(a.startOrientation, a.start, p, a.size)
	return true
}

// Release ends the drag; the current orientation is kept for the next one
func (a *Arcball) Release() {
	a.state = Idle
	a.startOrientation = a.orientation
}

// SetSize changes the viewport used to map points onto the sphere.
// The orientation is left as is.
func (a *Arcball) SetSize(width, height float64) {
	a.size = mgl64.Vec2{width, height}
}

// SetOrientation replaces the orientation and ends any drag
func (a *Arcball) SetOrientation(q mgl64.Quat) {
	a.state = Idle
	a.orientation = q.Normalize()
	a.startOrientation = a.orientation
}

// Reset returns to identity orientation and ends any drag
func (a *Arcball) Reset() {
	a.state = Idle
	a.start = mgl64.Vec2{}
	a.startOrientation = mgl64.QuatIdent()
	a.orientation = mgl64.QuatIdent()
}

func (a *Arcball) State() State {
	return a.state
}

func (a *Arcball) Orientation() mgl64.Quat {
	return a.orientation
}

func (a *Arcball) Size() mgl64.Vec2 {
	return a.size
}

// Matrix returns the orientation as a rotation matrix
func (a *Arcball) Matrix() mgl64.Mat4 {
	return a.orientation.Mat4()
}

const epsilon = 1e-12

// Rotate returns startOrientation followed by the rotation that carries the
// sphere point under start onto the sphere point under current.
func Rotate(startOrientation mgl64.Quat, start, current, size mgl64.Vec2) mgl64.Quat {
	from, ok := spherePoint(start, size)
	if !ok {
		return startOrientation
	}
	to, _ := spherePoint(current, size)

	dot := clamp(from.Dot(to), -1, 1)
	axis := from.Cross(to)
	if axis.Len() < epsilon {
		if dot > 0 {
			return startOrientation
		}
		axis = orthogonal(from)
	}

	increment := mgl64.QuatRotate(math.Acos(dot), axis.Normalize())
	return increment.Mul(startOrientation).Normalize()
}

// spherePoint maps a pixel position onto the unit sphere. The radius is half
// the shorter viewport side, y points up, and points beyond the silhouette
// are pulled onto the rim.
func spherePoint(p, size mgl64.Vec2) (mgl64.Vec3, bool) {
	radius := math.Min(size.X(), size.Y()) / 2
	if radius <= 0 {
		return mgl64.Vec3{}, false
	}

	x := (p.X() - size.X()/2) / radius
	y := (size.Y()/2 - p.Y()) / radius
	d2 := x*x + y*y
	if d2 > 1 {
		d := math.Sqrt(d2)
		return mgl64.Vec3{x / d, y / d, 0}, true
	}
	return mgl64.Vec3{x, y, math.Sqrt(1 - d2)}, true
}

// orthogonal returns a unit vector perpendicular to v
func orthogonal(v mgl64.Vec3) mgl64.Vec3 {
	axis := mgl64.Vec3{1, 0, 0}
	ax, ay, az := math.Abs(v.X()), math.Abs(v.Y()), math.Abs(v.Z())
	if ay <= ax && ay <= az {
		axis = mgl64.Vec3{0, 1, 0}
	} else if az <= ax && az <= ay {
		axis = mgl64.Vec3{0, 0, 1}
	}
	return v.Cross(axis).Normalize()
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
