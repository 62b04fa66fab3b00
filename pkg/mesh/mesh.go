// Package mesh holds the indexed triangle mesh shown by the viewer together
// with the attributes derived from it.
package mesh

import (
	"errors"
	"fmt"

	"github.com/philipparndt/meshview/pkg/geometry"
	"github.com/philipparndt/meshview/pkg/obj"
)

// Mesh is an indexed triangle mesh.
//
// Positions and triangles are fixed after New. The centroid, bounding radius
// and normals are derived and only change through the Recompute methods.
type Mesh struct {
	positions []geometry.Vector3
	triangles [][3]int

	centroid    geometry.Vector3
	hasCentroid bool
	radius      float64
	normals     []geometry.Vector3
}

// New validates the connectivity and derives centroid, radius and normals.
// The slices are taken over, the caller must not modify them afterwards.
func New(positions []geometry.Vector3, triangles [][3]int) (*Mesh, error) {
	if len(positions) == 0 {
		return nil, &DegenerateMeshError{Reason: "no vertices"}
	}
	if len(triangles) == 0 {
		return nil, &DegenerateMeshError{Reason: "no faces"}
	}

	for f, face := range triangles {
		for c, idx := range face {
			if idx < 0 || idx >= len(positions) {
				return nil, &IndexOutOfRangeError{Face: f, Corner: c, Index: idx, VertexCount: len(positions)}
			}
		}
	}

	m := &Mesh{positions: positions, triangles: triangles}
	if err := m.RecomputeCentroid(); err != nil {
		return nil, err
	}
	if err := m.RecomputeBoundingRadius(); err != nil {
		return nil, err
	}
	m.RecomputeNormals()
	return m, nil
}

// Load reads an OBJ file and builds a mesh from it.
// Either a complete mesh or an error is returned, never a partial result.
func Load(path string) (*Mesh, error) {
	positions, triangles, err := obj.Load(path)
	if err != nil {
		return nil, err
	}

	m, err := New(positions, triangles)
	if err != nil {
		return nil, fmt.Errorf("invalid mesh in %s: %w", path, err)
	}
	return m, nil
}

// Save writes the mesh to an OBJ file
func (m *Mesh) Save(path string) error {
	return obj.Save(path, m.positions, m.triangles)
}

// RecomputeCentroid sets the area-weighted surface centroid
func (m *Mesh) RecomputeCentroid() error {
	if len(m.positions) == 0 {
		m.hasCentroid = false
		return &DegenerateMeshError{Reason: "no vertices"}
	}

	c, err := geometry.SurfaceCentroid(m.positions, m.triangles)
	if err != nil {
		m.hasCentroid = false
		if errors.Is(err, geometry.ErrEmptyMesh) {
			return &DegenerateMeshError{Reason: "no faces"}
		}
		return err
	}

	m.centroid = c
	m.hasCentroid = true
	return nil
}

// RecomputeBoundingRadius sets the largest distance from the centroid to any vertex
func (m *Mesh) RecomputeBoundingRadius() error {
	if !m.hasCentroid {
		return ErrNoCentroid
	}

	radius := 0.0
	for _, p := range m.positions {
		if d := p.Distance(m.centroid); d > radius {
			radius = d
		}
	}
	m.radius = radius
	return nil
}

// RecomputeNormals sets one area-weighted normal per vertex
func (m *Mesh) RecomputeNormals() {
	normals := geometry.VertexNormals(m.positions, m.triangles)
	if len(normals) != len(m.positions) {
		panic(fmt.Sprintf("mesh: %d normals for %d vertices", len(normals), len(m.positions)))
	}
	m.normals = normals
}

// Positions returns the vertex positions. The slice must not be modified.
func (m *Mesh) Positions() []geometry.Vector3 {
	return m.positions
}

// Triangles returns the 0-based faces. The slice must not be modified.
func (m *Mesh) Triangles() [][3]int {
	return m.triangles
}

// Normals returns one normal per vertex
func (m *Mesh) Normals() []geometry.Vector3 {
	return m.normals
}

// Centroid returns the surface centroid and whether it has been computed
func (m *Mesh) Centroid() (geometry.Vector3, bool) {
	return m.centroid, m.hasCentroid
}

// BoundingRadius returns the radius of the sphere around the centroid that encloses all vertices
func (m *Mesh) BoundingRadius() float64 {
	return m.radius
}

// VertexCount returns the number of vertices
func (m *Mesh) VertexCount() int {
	return len(m.positions)
}

// FaceCount returns the number of triangles
func (m *Mesh) FaceCount() int {
	return len(m.triangles)
}

// BoundingBox returns the axis-aligned box around all vertices
func (m *Mesh) BoundingBox() geometry.BoundingBox {
	return geometry.BoundsOf(m.positions)
}

// SurfaceArea returns the total area of all faces
func (m *Mesh) SurfaceArea() float64 {
	total := 0.0
	for _, face := range m.triangles {
		total += geometry.Resolve(m.positions, face).Area()
	}
	return total
}
