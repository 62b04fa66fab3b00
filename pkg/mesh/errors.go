package mesh

import (
	"errors"
	"fmt"
)

// ErrNoCentroid is returned when the bounding radius is requested before a centroid exists
var ErrNoCentroid = errors.New("centroid not computed")

// DegenerateMeshError reports a mesh that cannot be framed or shaded:
// no vertices, no faces or a zero bounding radius.
type DegenerateMeshError struct {
	Reason string
}

func (e *DegenerateMeshError) Error() string {
	return "degenerate mesh: " + e.Reason
}

// IndexOutOfRangeError reports a face corner that points past the vertex list
type IndexOutOfRangeError struct {
	Face        int
	Corner      int
	Index       int
	VertexCount int
}

func (e *IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("face %d corner %d: index %d out of range [0, %d)",
		e.Face, e.Corner, e.Index, e.VertexCount)
}
