package viewer

import (
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

var (
	ambient     = mgl64.Vec3{0.18, 0.1, 0.1}
	baseColor   = 0.7
	lightOrigin = mgl64.Vec3{0, 3, 3} // view space
)

// Shade returns the lit color of a vertex given its view space position and normal
func Shade(position, normal mgl64.Vec3) color.RGBA {
	c := ambient
	if n := normal.Len(); n > 0 {
		l := lightOrigin.Sub(position)
		if l.Len() > 0 {
			lambert := normal.Mul(1 / n).Dot(l.Normalize())
			if lambert > 0 {
				c = c.Add(mgl64.Vec3{lambert, lambert, lambert})
			}
		}
	}
	c = c.Mul(baseColor)
	return color.RGBA{R: channel(c.X()), G: channel(c.Y()), B: channel(c.Z()), A: 255}
}

// NormalMatrix returns the inverse transpose of the upper 3x3 of a model-view matrix
func NormalMatrix(modelView mgl64.Mat4) mgl64.Mat3 {
	return modelView.Mat3().Inv().Transpose()
}

func channel(v float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(1, v)) * 255))
}
