// Package camera computes the model, view and projection matrices of the
// viewer and applies zoom and pan gestures to them.
package camera

import "github.com/go-gl/mathgl/mgl64"

// Params holds the camera intrinsics, fixed extrinsics and the model transform state
type Params struct {
	Eye    mgl64.Vec3
	Center mgl64.Vec3
	Up     mgl64.Vec3

	FOV  float64 // vertical, degrees
	Near float64
	Far  float64

	Zoom          float64
	MinZoom       float64
	ZoomInFactor  float64
	ZoomOutFactor float64

	ModelZoom             float64 // 2 / bounding radius after framing
	ModelTranslation      mgl64.Vec3
	ModelTranslationStart mgl64.Vec3
}

// DefaultParams returns the camera used when nothing is configured
func DefaultParams() Params {
	return Params{
		Eye:           mgl64.Vec3{0, 0, 5},
		Center:        mgl64.Vec3{0, 0, 0},
		Up:            mgl64.Vec3{0, 1, 0},
		FOV:           45,
		Near:          0.05,
		Far:           100,
		Zoom:          1,
		MinZoom:       0.1,
		ZoomInFactor:  1.1,
		ZoomOutFactor: 0.9,
		ModelZoom:     1,
	}
}

// Matrices is what a render sink needs to draw one frame
type Matrices struct {
	Model      mgl64.Mat4
	View       mgl64.Mat4
	Projection mgl64.Mat4
	Width      int
	Height     int
}

// ModelView returns View * Model
func (m Matrices) ModelView() mgl64.Mat4 {
	return m.View.Mul4(m.Model)
}

// MVP returns Projection * View * Model
func (m Matrices) MVP() mgl64.Mat4 {
	return m.Projection.Mul4(m.View).Mul4(m.Model)
}
