package app

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/philipparndt/meshview/pkg/camera"
	"github.com/philipparndt/meshview/pkg/mesh"
	"github.com/philipparndt/meshview/pkg/viewer"
)

// gpuSink draws the mesh with raylib. The mesh is uploaded once as a triangle
// soup. When the model-view changes only the vertex colors are re-shaded and
// sent to the GPU, since the light lives in view space.
type gpuSink struct {
	mesh     rl.Mesh
	material rl.Material
	uploaded bool

	buffers   mesh.Buffers
	vertices  []float32
	normals   []float32
	texcoords []float32
	colors    []uint8

	shadedFor mgl64.Mat4
	dirty     bool

	status []string
}

func newGPUSink() *gpuSink {
	return &gpuSink{material: rl.LoadMaterialDefault()}
}

// UploadMesh expands the indexed buffers into per-corner arrays
func (s *gpuSink) UploadMesh(b mesh.Buffers) {
	s.buffers = b
	s.vertices, s.normals = deindex(b)

	corners := len(s.vertices) / 3
	s.texcoords = make([]float32, corners*2)
	s.colors = make([]uint8, corners*4)
	s.dirty = true
}

func (s *gpuSink) SetStatus(lines []string) {
	s.status = append([]string(nil), lines...)
}

type syncAction int

const (
	syncNone syncAction = iota
	syncColors
	syncUpload
)

// sync reports what has to reach the GPU before drawing with modelView
func (s *gpuSink) sync(modelView mgl64.Mat4) syncAction {
	switch {
	case s.dirty:
		return syncUpload
	case !s.uploaded:
		return syncNone
	case modelView != s.shadedFor:
		return syncColors
	default:
		return syncNone
	}
}

// Draw renders one frame. Must be called between BeginDrawing and EndDrawing.
func (s *gpuSink) Draw(m camera.Matrices) {
	modelView := m.ModelView()
	switch s.sync(modelView) {
	case syncUpload:
		s.shade(modelView)
		s.upload()
		s.dirty = false
	case syncColors:
		s.shade(modelView)
		rl.UpdateMeshBuffer(s.mesh, colorBuffer, s.colors, 0)
	}
	s.shadedFor = modelView

	if s.uploaded {
		rl.BeginMode3D(cameraFromMatrices(m))
		// BeginMode3D builds its own frustum with fixed clip distances.
		// Replace it so the configured near and far planes apply.
		rl.SetMatrixProjection(toRaylibMatrix(m.Projection))
		rl.DisableBackfaceCulling()
		rl.DrawMesh(s.mesh, s.material, toRaylibMatrix(m.Model))
		rl.EnableBackfaceCulling()
		rl.EndMode3D()
	}

	for i, line := range s.status {
		rl.DrawText(line, 10, int32(10+i*22), 20, rl.LightGray)
	}
}

// shade bakes the view dependent lighting into the corner colors
func (s *gpuSink) shade(modelView mgl64.Mat4) {
	normalMatrix := viewer.NormalMatrix(modelView)
	corners := len(s.vertices) / 3
	for i := 0; i < corners; i++ {
		p := mgl64.Vec3{float64(s.vertices[3*i]), float64(s.vertices[3*i+1]), float64(s.vertices[3*i+2])}
		n := mgl64.Vec3{float64(s.normals[3*i]), float64(s.normals[3*i+1]), float64(s.normals[3*i+2])}

		c := viewer.Shade(modelView.Mul4x1(p.Vec4(1)).Vec3(), normalMatrix.Mul3x1(n))
		s.colors[i*4+0] = c.R
		s.colors[i*4+1] = c.G
		s.colors[i*4+2] = c.B
		s.colors[i*4+3] = c.A
	}
}

// colorBuffer is the raylib VBO slot holding the vertex colors
const colorBuffer = 3

func (s *gpuSink) upload() {
	s.unload()

	corners := len(s.vertices) / 3
	if corners == 0 {
		return
	}

	s.mesh = rl.Mesh{
		VertexCount:   int32(corners),
		TriangleCount: int32(corners / 3),
		Vertices:      &s.vertices[0],
		Normals:       &s.normals[0],
		Texcoords:     &s.texcoords[0],
		Colors:        &s.colors[0],
	}
	rl.UploadMesh(&s.mesh, false)
	s.uploaded = true
}

func (s *gpuSink) unload() {
	if s.uploaded {
		rl.UnloadMesh(&s.mesh)
		s.uploaded = false
	}
}

// Close releases the GPU resources
func (s *gpuSink) Close() {
	s.unload()
}

// deindex expands indexed positions and normals into one entry per face corner.
// Faces referencing missing vertices are skipped.
func deindex(b mesh.Buffers) (vertices, normals []float32) {
	n := b.VertexCount()
	hasNormals := len(b.Normals) >= len(b.Positions)

	vertices = make([]float32, 0, len(b.Indices)*3)
	normals = make([]float32, 0, len(b.Indices)*3)
	for f := 0; f+2 < len(b.Indices); f += 3 {
		face := b.Indices[f : f+3]
		if int(face[0]) >= n || int(face[1]) >= n || int(face[2]) >= n {
			continue
		}
		for _, idx := range face {
			vertices = append(vertices, b.Positions[3*idx:3*idx+3]...)
			if hasNormals {
				normals = append(normals, b.Normals[3*idx:3*idx+3]...)
			} else {
				normals = append(normals, 0, 0, 0)
			}
		}
	}
	return vertices, normals
}

// cameraFromMatrices recovers the raylib camera that reproduces the view
// and the vertical field of view of a frame. Raylib derives the clip planes
// itself, so Draw overrides the projection afterwards.
func cameraFromMatrices(m camera.Matrices) rl.Camera3D {
	inv := m.View.Inv()
	eye := inv.Mul4x1(mgl64.Vec4{0, 0, 0, 1}).Vec3()
	forward := inv.Mul4x1(mgl64.Vec4{0, 0, -1, 0}).Vec3()
	up := inv.Mul4x1(mgl64.Vec4{0, 1, 0, 0}).Vec3()

	fovy := 45.0
	if f := m.Projection.At(1, 1); f > 0 {
		fovy = mgl64.RadToDeg(2 * math.Atan(1/f))
	}

	return rl.Camera3D{
		Position:   toRaylibVector(eye),
		Target:     toRaylibVector(eye.Add(forward)),
		Up:         toRaylibVector(up),
		Fovy:       float32(fovy),
		Projection: rl.CameraPerspective,
	}
}

func toRaylibVector(v mgl64.Vec3) rl.Vector3 {
	return rl.Vector3{X: float32(v.X()), Y: float32(v.Y()), Z: float32(v.Z())}
}

// toRaylibMatrix converts a column-major mathgl matrix, raylib uses the same layout
func toRaylibMatrix(m mgl64.Mat4) rl.Matrix {
	return rl.Matrix{
		M0: float32(m[0]), M1: float32(m[1]), M2: float32(m[2]), M3: float32(m[3]),
		M4: float32(m[4]), M5: float32(m[5]), M6: float32(m[6]), M7: float32(m[7]),
		M8: float32(m[8]), M9: float32(m[9]), M10: float32(m[10]), M11: float32(m[11]),
		M12: float32(m[12]), M13: float32(m[13]), M14: float32(m[14]), M15: float32(m[15]),
	}
}
