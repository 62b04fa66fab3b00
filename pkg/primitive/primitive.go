// Package primitive builds simple meshes without reading a file.
package primitive

import (
	"fmt"
	"math"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"

	"github.com/philipparndt/meshview/pkg/geometry"
	"github.com/philipparndt/meshview/pkg/mesh"
)

// DefaultCells is the marching cubes resolution used for the built-in sphere
const DefaultCells = 48

// Sphere tessellates a sphere centred at the origin with marching cubes.
// cells is the number of grid cells along the longest side.
func Sphere(radius float64, cells int) (*mesh.Mesh, error) {
	if radius <= 0 {
		return nil, fmt.Errorf("sphere radius must be positive, got %v", radius)
	}
	s, err := sdf.Sphere3D(radius)
	if err != nil {
		return nil, fmt.Errorf("failed to create sphere: %w", err)
	}
	return FromSDF(s, cells)
}

// FromSDF renders a signed distance field into a welded triangle mesh
func FromSDF(s sdf.SDF3, cells int) (*mesh.Mesh, error) {
	if cells < 2 {
		return nil, fmt.Errorf("need at least 2 cells, got %d", cells)
	}

	renderer := render.NewMarchingCubesUniform(cells)
	triangles := render.ToTriangles(s, renderer)

	soup := make([]geometry.Triangle, 0, len(triangles))
	for _, tri := range triangles {
		soup = append(soup, geometry.NewTriangle(
			geometry.NewVector3(tri[0].X, tri[0].Y, tri[0].Z),
			geometry.NewVector3(tri[1].X, tri[1].Y, tri[1].Z),
			geometry.NewVector3(tri[2].X, tri[2].Y, tri[2].Z),
		))
	}

	bb := s.BoundingBox()
	size := bb.Max.Sub(bb.Min)
	eps := math.Max(size.X, math.Max(size.Y, size.Z)) / float64(cells) * 1e-6

	positions, faces := Weld(soup, eps)
	return mesh.New(positions, faces)
}

// Weld merges corners closer than eps into shared vertices and drops
// triangles that collapse in the process.
func Weld(soup []geometry.Triangle, eps float64) ([]geometry.Vector3, [][3]int) {
	type key struct{ x, y, z int64 }
	quantize := func(v geometry.Vector3) key {
		return key{int64(math.Round(v.X / eps)), int64(math.Round(v.Y / eps)), int64(math.Round(v.Z / eps))}
	}

	index := make(map[key]int)
	var positions []geometry.Vector3
	faces := make([][3]int, 0, len(soup))

	for _, tri := range soup {
		var face [3]int
		for c, v := range [3]geometry.Vector3{tri.V1, tri.V2, tri.V3} {
			k := quantize(v)
			idx, ok := index[k]
			if !ok {
				idx = len(positions)
				index[k] = idx
				positions = append(positions, v)
			}
			face[c] = idx
		}
		if face[0] == face[1] || face[1] == face[2] || face[0] == face[2] {
			continue
		}
		faces = append(faces, face)
	}
	return positions, faces
}

// Cube returns an axis-aligned cube centred at the origin with outward winding
func Cube(size float64) (*mesh.Mesh, error) {
	h := size / 2
	positions := []geometry.Vector3{
		{X: -h, Y: -h, Z: -h}, {X: h, Y: -h, Z: -h}, {X: h, Y: h, Z: -h}, {X: -h, Y: h, Z: -h},
		{X: -h, Y: -h, Z: h}, {X: h, Y: -h, Z: h}, {X: h, Y: h, Z: h}, {X: -h, Y: h, Z: h},
	}
	triangles := [][3]int{
		{0, 2, 1}, {0, 3, 2}, // -Z
		{4, 5, 6}, {4, 6, 7}, // +Z
		{0, 1, 5}, {0, 5, 4}, // -Y
		{3, 7, 6}, {3, 6, 2}, // +Y
		{0, 4, 7}, {0, 7, 3}, // -X
		{1, 2, 6}, {1, 6, 5}, // +X
	}
	return mesh.New(positions, triangles)
}

// Icosahedron returns a regular icosahedron with the given circumradius
func Icosahedron(radius float64) (*mesh.Mesh, error) {
	t := (1 + math.Sqrt(5)) / 2
	s := radius / math.Sqrt(1+t*t)
	positions := []geometry.Vector3{
		{X: -1, Y: t}, {X: 1, Y: t}, {X: -1, Y: -t}, {X: 1, Y: -t},
		{Y: -1, Z: t}, {Y: 1, Z: t}, {Y: -1, Z: -t}, {Y: 1, Z: -t},
		{X: t, Z: -1}, {X: t, Z: 1}, {X: -t, Z: -1}, {X: -t, Z: 1},
	}
	for i := range positions {
		positions[i] = positions[i].Mul(s)
	}
	triangles := [][3]int{
		{0, 11, 5}, {0, 5, 1}, {0, 1, 7}, {0, 7, 10}, {0, 10, 11},
		{1, 5, 9}, {5, 11, 4}, {11, 10, 2}, {10, 7, 6}, {7, 1, 8},
		{3, 9, 4}, {3, 4, 2}, {3, 2, 6}, {3, 6, 8}, {3, 8, 9},
		{4, 9, 5}, {2, 4, 11}, {6, 2, 10}, {8, 6, 7}, {9, 8, 1},
	}
	return mesh.New(positions, triangles)
}
