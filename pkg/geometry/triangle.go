package geometry

// Triangle is a resolved triangular face: three corner positions
type Triangle struct {
	V1, V2, V3 Vector3
}

// NewTriangle creates a new triangle
func NewTriangle(v1, v2, v3 Vector3) Triangle {
	return Triangle{V1: v1, V2: v2, V3: v3}
}

// Resolve looks up the corners of an indexed face.
// The caller guarantees the indices are in range.
func Resolve(positions []Vector3, face [3]int) Triangle {
	return Triangle{
		V1: positions[face[0]],
		V2: positions[face[1]],
		V3: positions[face[2]],
	}
}

// AreaVector returns the unnormalized face normal, whose length is twice the area
func (t Triangle) AreaVector() Vector3 {
	edge1 := t.V2.Sub(t.V1)
	edge2 := t.V3.Sub(t.V1)
	return edge1.Cross(edge2)
}

// Normal computes the unit normal following the winding order
func (t Triangle) Normal() Vector3 {
	return t.AreaVector().Normalize()
}

// Area returns the surface area of the triangle
func (t Triangle) Area() float64 {
	return t.AreaVector().Length() / 2.0
}

// EdgeLengths returns the lengths of all three edges
func (t Triangle) EdgeLengths() [3]float64 {
	return [3]float64{
		t.V1.Distance(t.V2),
		t.V2.Distance(t.V3),
		t.V3.Distance(t.V1),
	}
}

// Perimeter returns the total length of all edges
func (t Triangle) Perimeter() float64 {
	lengths := t.EdgeLengths()
	return lengths[0] + lengths[1] + lengths[2]
}

// Center returns the centroid of the triangle
func (t Triangle) Center() Vector3 {
	return Vector3{
		X: (t.V1.X + t.V2.X + t.V3.X) / 3.0,
		Y: (t.V1.Y + t.V2.Y + t.V3.Y) / 3.0,
		Z: (t.V1.Z + t.V2.Z + t.V3.Z) / 3.0,
	}
}
