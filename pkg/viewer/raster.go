package viewer

import (
	"image"
	"image/color"
	"math"
	"sync"

	"github.com/go-gl/mathgl/mgl64"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/philipparndt/meshview/pkg/camera"
	"github.com/philipparndt/meshview/pkg/mesh"
)

// DefaultBackground is the clear color of the software renderer
var DefaultBackground = color.RGBA{R: 77, G: 77, B: 82, A: 255}

// Raster is a software Sink that renders into an RGBA image with a z-buffer.
// It is safe to read the image from another goroutine while drawing.
type Raster struct {
	mu sync.Mutex

	buffers mesh.Buffers
	img     *image.RGBA
	zbuffer []float64
	status  []string

	Background color.RGBA
	ShowAxes   bool
}

// NewRaster creates a raster sink with an initial image size
func NewRaster(width, height int) *Raster {
	r := &Raster{Background: DefaultBackground, ShowAxes: true}
	r.resize(width, height)
	r.clear()
	return r
}

// UploadMesh stores the geometry drawn by subsequent frames
func (r *Raster) UploadMesh(b mesh.Buffers) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.buffers = b
}

// SetStatus sets the overlay text lines
func (r *Raster) SetStatus(lines []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.status = append([]string(nil), lines...)
}

// Image returns a copy of the last rendered frame
func (r *Raster) Image() *image.RGBA {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := image.NewRGBA(r.img.Bounds())
	copy(out.Pix, r.img.Pix)
	return out
}

// screenVertex is a projected vertex: window position, depth and color
type screenVertex struct {
	x, y, z float64
	col     [3]float64
}

// Draw renders one frame with the given matrices
func (r *Raster) Draw(m camera.Matrices) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.resize(m.Width, m.Height)
	r.clear()

	b := r.buffers
	n := b.VertexCount()
	if n > 0 {
		modelView := m.ModelView()
		normalMatrix := NormalMatrix(modelView)
		width, height := float64(r.img.Bounds().Dx()), float64(r.img.Bounds().Dy())

		projected := make([]screenVertex, n)
		visible := make([]bool, n)
		for i := 0; i < n; i++ {
			p := mgl64.Vec3{float64(b.Positions[3*i]), float64(b.Positions[3*i+1]), float64(b.Positions[3*i+2])}
			var normal mgl64.Vec3
			if len(b.Normals) >= 3*(i+1) {
				normal = mgl64.Vec3{float64(b.Normals[3*i]), float64(b.Normals[3*i+1]), float64(b.Normals[3*i+2])}
			}

			viewPos := modelView.Mul4x1(p.Vec4(1))
			clip := m.Projection.Mul4x1(viewPos)
			if clip.W() <= 0 {
				continue
			}

			c := Shade(viewPos.Vec3(), normalMatrix.Mul3x1(normal))
			projected[i] = screenVertex{
				x:   (clip.X()/clip.W() + 1) / 2 * width,
				y:   (1 - clip.Y()/clip.W()) / 2 * height,
				z:   clip.Z() / clip.W(),
				col: [3]float64{float64(c.R), float64(c.G), float64(c.B)},
			}
			visible[i] = true
		}

		for f := 0; f+2 < len(b.Indices); f += 3 {
			i1, i2, i3 := b.Indices[f], b.Indices[f+1], b.Indices[f+2]
			if int(i1) >= n || int(i2) >= n || int(i3) >= n {
				continue
			}
			if !visible[i1] || !visible[i2] || !visible[i3] {
				continue
			}
			fillTriangleWithDepth(r.img, r.zbuffer, projected[i1], projected[i2], projected[i3])
		}

		if r.ShowAxes {
			r.drawAxes(m)
		}
	}

	r.drawStatus()
}

func (r *Raster) resize(width, height int) {
	if width <= 0 {
		width = 1
	}
	if height <= 0 {
		height = 1
	}
	if r.img != nil && r.img.Bounds().Dx() == width && r.img.Bounds().Dy() == height {
		return
	}
	r.img = image.NewRGBA(image.Rect(0, 0, width, height))
	r.zbuffer = make([]float64, width*height)
}

func (r *Raster) clear() {
	for i := 0; i < len(r.img.Pix); i += 4 {
		r.img.Pix[i] = r.Background.R
		r.img.Pix[i+1] = r.Background.G
		r.img.Pix[i+2] = r.Background.B
		r.img.Pix[i+3] = r.Background.A
	}
	for i := range r.zbuffer {
		r.zbuffer[i] = math.Inf(1)
	}
}

// drawAxes draws the model orientation as a small gizmo in the lower left corner
func (r *Raster) drawAxes(m camera.Matrices) {
	rotation := m.View.Mat3().Mul3(m.Model.Mat3())
	axes := []struct {
		dir mgl64.Vec3
		col color.RGBA
	}{
		{mgl64.Vec3{1, 0, 0}, color.RGBA{R: 230, G: 60, B: 60, A: 255}},
		{mgl64.Vec3{0, 1, 0}, color.RGBA{R: 60, G: 200, B: 60, A: 255}},
		{mgl64.Vec3{0, 0, 1}, color.RGBA{R: 70, G: 110, B: 240, A: 255}},
	}

	const length = 24.0
	originX, originY := 36, r.img.Bounds().Dy()-36
	for _, axis := range axes {
		d := rotation.Mul3x1(axis.dir)
		if l := d.Len(); l > 0 {
			d = d.Mul(1 / l)
		}
		drawLine(r.img, originX, originY, originX+int(d.X()*length), originY-int(d.Y()*length), axis.col)
	}
}

func (r *Raster) drawStatus() {
	if len(r.status) == 0 {
		return
	}

	face := basicfont.Face7x13
	d := &font.Drawer{
		Dst:  r.img,
		Src:  image.NewUniform(color.White),
		Face: face,
	}
	lineHeight := face.Metrics().Height.Ceil()
	for i, line := range r.status {
		d.Dot = fixed.Point26_6{X: fixed.I(8), Y: fixed.I(8 + face.Ascent + i*lineHeight)}
		d.DrawString(line)
	}
}

// fillTriangleWithDepth fills a triangle with depth testing and
// interpolated vertex colors
func fillTriangleWithDepth(img *image.RGBA, zbuffer []float64, v1, v2, v3 screenVertex) {
	// Sort vertices by Y coordinate (top to bottom)
	if v1.y > v2.y {
		v1, v2 = v2, v1
	}
	if v2.y > v3.y {
		v2, v3 = v3, v2
	}
	if v1.y > v2.y {
		v1, v2 = v2, v1
	}

	if v1.y == v3.y {
		return
	}

	bounds := img.Bounds()
	width := bounds.Max.X

	// Scanline algorithm: one end on the long edge v1-v3, the other on v1-v2 or v2-v3
	for y := int(math.Max(0, math.Ceil(v1.y))); y <= int(math.Min(float64(bounds.Max.Y-1), v3.y)); y++ {
		fy := float64(y)

		start := lerp(v1, v3, (fy-v1.y)/(v3.y-v1.y))
		var end screenVertex
		switch {
		case fy < v2.y:
			end = lerp(v1, v2, (fy-v1.y)/(v2.y-v1.y))
		case v3.y > v2.y:
			end = lerp(v2, v3, (fy-v2.y)/(v3.y-v2.y))
		default:
			end = v2
		}
		if start.x > end.x {
			start, end = end, start
		}

		xStart := int(math.Max(0, math.Ceil(start.x)))
		xEnd := int(math.Min(float64(bounds.Max.X-1), end.x))
		for x := xStart; x <= xEnd; x++ {
			t := 0.0
			if end.x != start.x {
				t = (float64(x) - start.x) / (end.x - start.x)
			}
			p := lerp(start, end, t)

			// Depth test - draw if closer (smaller z)
			idx := y*width + x
			if idx >= 0 && idx < len(zbuffer) && p.z < zbuffer[idx] {
				zbuffer[idx] = p.z
				img.SetRGBA(x, y, color.RGBA{
					R: uint8(math.Round(p.col[0])),
					G: uint8(math.Round(p.col[1])),
					B: uint8(math.Round(p.col[2])),
					A: 255,
				})
			}
		}
	}
}

func lerp(a, b screenVertex, t float64) screenVertex {
	return screenVertex{
		x: a.x + t*(b.x-a.x),
		y: a.y + t*(b.y-a.y),
		z: a.z + t*(b.z-a.z),
		col: [3]float64{
			a.col[0] + t*(b.col[0]-a.col[0]),
			a.col[1] + t*(b.col[1]-a.col[1]),
			a.col[2] + t*(b.col[2]-a.col[2]),
		},
	}
}

// drawLine draws a line on an image using Bresenham's algorithm
func drawLine(img *image.RGBA, x1, y1, x2, y2 int, col color.RGBA) {
	bounds := img.Bounds()

	dx := abs(x2 - x1)
	dy := abs(y2 - y1)

	sx, sy := -1, -1
	if x1 < x2 {
		sx = 1
	}
	if y1 < y2 {
		sy = 1
	}

	err := dx - dy

	for {
		if x1 >= 0 && x1 < bounds.Max.X && y1 >= 0 && y1 < bounds.Max.Y {
			img.SetRGBA(x1, y1, col)
		}

		if x1 == x2 && y1 == y2 {
			break
		}

		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
