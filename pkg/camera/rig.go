package camera

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/philipparndt/meshview/pkg/arcball"
	"github.com/philipparndt/meshview/pkg/mesh"
)

// Rig owns the camera parameters and the arcball that orients the model
type Rig struct {
	params Params
	ball   *arcball.Arcball

	width  int
	height int

	panning  bool
	panStart mgl64.Vec2
}

// NewRig creates a rig with the given parameters and a 1x1 viewport
func NewRig(params Params) *Rig {
	return &Rig{
		params: params,
		ball:   arcball.New(1, 1),
		width:  1,
		height: 1,
	}
}

// SetViewport sets the window size in pixels. Non-positive sizes are ignored.
func (r *Rig) SetViewport(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	r.width = width
	r.height = height
	r.ball.SetSize(float64(width), float64(height))
}

// Viewport returns the window size in pixels
func (r *Rig) Viewport() (int, int) {
	return r.width, r.height
}

func (r *Rig) Params() Params {
	return r.params
}

func (r *Rig) Arcball() *arcball.Arcball {
	return r.ball
}

// AutoFrame centres the mesh and scales it to a fixed apparent size.
// The rig is left untouched when the mesh cannot be framed.
func (r *Rig) AutoFrame(m *mesh.Mesh) error {
	if err := m.RecomputeCentroid(); err != nil {
		return fmt.Errorf("failed to frame mesh: %w", err)
	}
	if err := m.RecomputeBoundingRadius(); err != nil {
		return fmt.Errorf("failed to frame mesh: %w", err)
	}

	radius := m.BoundingRadius()
	if radius == 0 {
		return &mesh.DegenerateMeshError{Reason: "zero bounding radius"}
	}
	centroid, _ := m.Centroid()

	r.params.ModelZoom = 2 / radius
	r.params.ModelTranslation = centroid.Vec3().Mul(-1)
	r.params.ModelTranslationStart = r.params.ModelTranslation
	r.panning = false
	r.ball.Reset()
	return nil
}

// ResetZoom restores the user zoom to 1
func (r *Rig) ResetZoom() {
	r.params.Zoom = 1
}

// Matrices computes model, view and projection for the current state
func (r *Rig) Matrices() Matrices {
	p := r.params

	view := mgl64.LookAtV(p.Eye, p.Center, p.Up)

	fH := math.Tan(p.FOV/360*math.Pi) * p.Near
	fW := fH * float64(r.width) / float64(r.height)
	projection := mgl64.Frustum(-fW, fW, -fH, fH, p.Near, p.Far)

	scale := p.Zoom * p.ModelZoom
	t := p.ModelTranslation
	model := r.ball.Matrix().
		Mul4(mgl64.Scale3D(scale, scale, scale)).
		Mul4(mgl64.Translate3D(t.X(), t.Y(), t.Z()))

	return Matrices{
		Model:      model,
		View:       view,
		Projection: projection,
		Width:      r.width,
		Height:     r.height,
	}
}

// SetZoom sets the user zoom, never below MinZoom
func (r *Rig) SetZoom(zoom float64) {
	r.params.Zoom = math.Max(r.params.MinZoom, zoom)
}

// Scroll zooms in for positive deltas and out otherwise, never below MinZoom
func (r *Rig) Scroll(delta float64) {
	zoom := r.params.Zoom
	if delta > 0 {
		zoom *= r.params.ZoomInFactor
	} else {
		zoom *= r.params.ZoomOutFactor
	}
	r.params.Zoom = math.Max(r.params.MinZoom, zoom)
}

// BeginPan records the pointer position and translation a pan starts from
func (r *Rig) BeginPan(p mgl64.Vec2) {
	r.panning = true
	r.panStart = p
	r.params.ModelTranslationStart = r.params.ModelTranslation
}

// EndPan stops pan tracking
func (r *Rig) EndPan() {
	r.panning = false
}

// Pan moves the model so that the point grabbed at BeginPan, taken at the
// depth of the mesh centroid, follows the pointer.
func (r *Rig) Pan(p mgl64.Vec2, m *mesh.Mesh) error {
	if !r.panning {
		return nil
	}
	centroid, ok := m.Centroid()
	if !ok {
		return mesh.ErrNoCentroid
	}

	mats := r.Matrices()
	modelView := mats.ModelView()
	w, h := r.width, r.height

	zval := mgl64.Project(centroid.Vec3(), modelView, mats.Projection, 0, 0, w, h).Z()

	current, err := mgl64.UnProject(mgl64.Vec3{p.X(), float64(h) - p.Y(), zval}, modelView, mats.Projection, 0, 0, w, h)
	if err != nil {
		return fmt.Errorf("failed to unproject pointer: %w", err)
	}
	start, err := mgl64.UnProject(mgl64.Vec3{r.panStart.X(), float64(h) - r.panStart.Y(), zval}, modelView, mats.Projection, 0, 0, w, h)
	if err != nil {
		return fmt.Errorf("failed to unproject pan start: %w", err)
	}

	r.params.ModelTranslation = r.params.ModelTranslationStart.Add(current.Sub(start))
	return nil
}

// Rotating reports whether an arcball drag is active
func (r *Rig) Rotating() bool {
	return r.ball.State() == arcball.Dragging
}

// Panning reports whether a pan is active
func (r *Rig) Panning() bool {
	return r.panning
}
