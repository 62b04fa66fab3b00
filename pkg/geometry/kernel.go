package geometry

import "errors"

// ErrEmptyMesh is returned when a surface property is requested for a mesh without triangles
var ErrEmptyMesh = errors.New("mesh has no triangles")

// SurfaceCentroid returns the area-weighted centroid of a triangulated surface.
//
// Each face contributes its own centroid weighted by its area. When every face
// is degenerate (total area zero) the mean of the face centroids is used so
// that a flat or collapsed mesh still has a defined center.
func SurfaceCentroid(positions []Vector3, triangles [][3]int) (Vector3, error) {
	if len(positions) == 0 || len(triangles) == 0 {
		return Vector3{}, ErrEmptyMesh
	}

	var weighted, plain Vector3
	totalArea := 0.0
	for _, face := range triangles {
		tri := Resolve(positions, face)
		center := tri.Center()
		area := tri.Area()

		weighted = weighted.Add(center.Mul(area))
		plain = plain.Add(center)
		totalArea += area
	}

	if totalArea == 0 {
		return plain.Mul(1.0 / float64(len(triangles))), nil
	}
	return weighted.Mul(1.0 / totalArea), nil
}

// VertexNormals returns one normal per position.
//
// Face normals are accumulated unnormalized, so larger faces weigh more, and
// normalized at the end. Vertices no face references keep the zero vector.
// The result always has len(positions) entries in position order.
func VertexNormals(positions []Vector3, triangles [][3]int) []Vector3 {
	normals := make([]Vector3, len(positions))

	for _, face := range triangles {
		n := Resolve(positions, face).AreaVector()
		for _, idx := range face {
			normals[idx] = normals[idx].Add(n)
		}
	}

	for i := range normals {
		normals[i] = normals[i].Normalize()
	}
	return normals
}
