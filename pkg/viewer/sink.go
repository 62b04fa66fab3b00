package viewer

import (
	"github.com/philipparndt/meshview/pkg/camera"
	"github.com/philipparndt/meshview/pkg/mesh"
)

// Sink receives geometry once per load and matrices once per frame
type Sink interface {
	UploadMesh(b mesh.Buffers)
	Draw(m camera.Matrices)
}

// StatusSink is implemented by sinks that can show a text overlay
type StatusSink interface {
	SetStatus(lines []string)
}
