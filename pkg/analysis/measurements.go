package analysis

import (
	"fmt"
	"math"
	"sort"

	"github.com/philipparndt/meshview/pkg/geometry"
	"github.com/philipparndt/meshview/pkg/mesh"
)

// EdgeInfo describes one undirected edge of the mesh
type EdgeInfo struct {
	A, B       int // vertex indices, A < B
	Start      geometry.Vector3
	End        geometry.Vector3
	Length     float64
	TriangleID int // first face using the edge
	FaceCount  int // number of faces sharing the edge
}

// MeasurementResult contains various measurements of a mesh
type MeasurementResult struct {
	BoundingBox    geometry.BoundingBox
	Dimensions     geometry.Vector3
	Centroid       geometry.Vector3
	BoundingRadius float64
	Volume         float64 // enclosed volume, meaningful for closed meshes
	SurfaceArea    float64
	VertexCount    int
	TriangleCount  int
	EdgeCount      int
	BoundaryEdges  int // edges with a single face
	MinEdgeLength  float64
	MaxEdgeLength  float64
	AvgEdgeLength  float64
	AllEdges       []EdgeInfo
}

// Closed reports whether every edge is shared by at least two faces
func (r *MeasurementResult) Closed() bool {
	return r.EdgeCount > 0 && r.BoundaryEdges == 0
}

type edgeKey struct{ a, b int }

// AnalyzeMesh performs comprehensive analysis on a mesh
func AnalyzeMesh(m *mesh.Mesh) *MeasurementResult {
	positions := m.Positions()
	centroid, _ := m.Centroid()

	result := &MeasurementResult{
		BoundingBox:    m.BoundingBox(),
		Centroid:       centroid,
		BoundingRadius: m.BoundingRadius(),
		SurfaceArea:    m.SurfaceArea(),
		VertexCount:    m.VertexCount(),
		TriangleCount:  m.FaceCount(),
		AllEdges:       make([]EdgeInfo, 0),
	}
	result.Dimensions = result.BoundingBox.Size()

	// Signed tetrahedron volumes against the origin
	volume := 0.0
	for _, face := range m.Triangles() {
		tri := geometry.Resolve(positions, face)
		volume += tri.V1.Dot(tri.V2.Cross(tri.V3)) / 6
	}
	result.Volume = math.Abs(volume)

	// Collect unique edges
	index := make(map[edgeKey]int)
	for i, face := range m.Triangles() {
		for c := 0; c < 3; c++ {
			a, b := face[c], face[(c+1)%3]
			if a > b {
				a, b = b, a
			}
			key := edgeKey{a, b}
			if at, ok := index[key]; ok {
				result.AllEdges[at].FaceCount++
				continue
			}
			index[key] = len(result.AllEdges)
			result.AllEdges = append(result.AllEdges, EdgeInfo{
				A:          a,
				B:          b,
				Start:      positions[a],
				End:        positions[b],
				Length:     positions[a].Distance(positions[b]),
				TriangleID: i,
				FaceCount:  1,
			})
		}
	}

	minLength := math.MaxFloat64
	maxLength := 0.0
	totalLength := 0.0
	for _, edge := range result.AllEdges {
		totalLength += edge.Length
		if edge.Length < minLength {
			minLength = edge.Length
		}
		if edge.Length > maxLength {
			maxLength = edge.Length
		}
		if edge.FaceCount == 1 {
			result.BoundaryEdges++
		}
	}

	result.EdgeCount = len(result.AllEdges)
	if result.EdgeCount > 0 {
		result.MinEdgeLength = minLength
		result.MaxEdgeLength = maxLength
		result.AvgEdgeLength = totalLength / float64(result.EdgeCount)
	}

	return result
}

// FindEdgesByLength finds all edges within a length range
func FindEdgesByLength(result *MeasurementResult, minLength, maxLength float64) []EdgeInfo {
	var edges []EdgeInfo
	for _, edge := range result.AllEdges {
		if edge.Length >= minLength && edge.Length <= maxLength {
			edges = append(edges, edge)
		}
	}
	return edges
}

// FindLongestEdges returns the N longest edges in the mesh
func FindLongestEdges(result *MeasurementResult, count int) []EdgeInfo {
	return sortedEdges(result, count, func(a, b EdgeInfo) bool { return a.Length > b.Length })
}

// FindShortestEdges returns the N shortest edges in the mesh
func FindShortestEdges(result *MeasurementResult, count int) []EdgeInfo {
	return sortedEdges(result, count, func(a, b EdgeInfo) bool { return a.Length < b.Length })
}

func sortedEdges(result *MeasurementResult, count int, less func(a, b EdgeInfo) bool) []EdgeInfo {
	edges := make([]EdgeInfo, len(result.AllEdges))
	copy(edges, result.AllEdges)

	sort.SliceStable(edges, func(i, j int) bool {
		return less(edges[i], edges[j])
	})

	if count > len(edges) {
		count = len(edges)
	}
	return edges[:count]
}

// FindNearestVertex finds the vertex nearest to a given point.
// It returns -1 for a mesh without vertices.
func FindNearestVertex(m *mesh.Mesh, point geometry.Vector3) (int, float64) {
	nearest := -1
	minDistance := math.MaxFloat64

	for i, vertex := range m.Positions() {
		if distance := point.Distance(vertex); distance < minDistance {
			minDistance = distance
			nearest = i
		}
	}

	return nearest, minDistance
}

// Summary returns short lines for an on-screen overlay
func (r *MeasurementResult) Summary() []string {
	return []string{
		fmt.Sprintf("vertices %d  faces %d  edges %d", r.VertexCount, r.TriangleCount, r.EdgeCount),
		fmt.Sprintf("size %s", FormatVector(r.Dimensions)),
		fmt.Sprintf("radius %.4g  area %.4g", r.BoundingRadius, r.SurfaceArea),
	}
}

// FormatMeasurement formats a measurement with appropriate units
func FormatMeasurement(value float64, unit string) string {
	if unit == "" {
		unit = "units"
	}
	return fmt.Sprintf("%.6f %s", value, unit)
}

// FormatVector formats a 3D vector
func FormatVector(v geometry.Vector3) string {
	return fmt.Sprintf("(%.6f, %.6f, %.6f)", v.X, v.Y, v.Z)
}
