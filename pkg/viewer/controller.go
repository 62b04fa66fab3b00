// Package viewer connects input events, the camera rig and a render sink.
package viewer

import (
	"errors"
	"fmt"
	"path/filepath"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/philipparndt/meshview/pkg/analysis"
	"github.com/philipparndt/meshview/pkg/camera"
	"github.com/philipparndt/meshview/pkg/mesh"
)

// ErrNothingStaged is returned by CommitStaged when no mesh was staged
var ErrNothingStaged = errors.New("no mesh staged")

// ErrNoMesh is returned when an operation needs a loaded mesh
var ErrNoMesh = errors.New("no mesh loaded")

type loadResult struct {
	path       string
	generation uint64
	mesh       *mesh.Mesh
	err        error
}

// Controller owns the active mesh and the camera rig and turns events into
// camera changes. All methods except ReloadAsync must be called from the
// goroutine that runs the frontend loop.
type Controller struct {
	log  *zap.Logger
	sink Sink
	rig  *camera.Rig

	mesh *mesh.Mesh
	path string

	staged     *mesh.Mesh
	stagedPath string

	pending chan loadResult
	// generation counts explicit mesh swaps. Background reloads started
	// before the latest swap are dropped.
	generation atomic.Uint64

	closeRequested bool
}

// NewController creates a controller drawing into sink.
// A nil logger disables logging.
func NewController(sink Sink, params camera.Params, log *zap.Logger) *Controller {
	if log == nil {
		log = zap.NewNop()
	}
	return &Controller{
		log:     log,
		sink:    sink,
		rig:     camera.NewRig(params),
		pending: make(chan loadResult, 1),
	}
}

func (c *Controller) Rig() *camera.Rig {
	return c.rig
}

// Mesh returns the active mesh, nil before the first successful load
func (c *Controller) Mesh() *mesh.Mesh {
	return c.mesh
}

// Path returns the file the active mesh was loaded from, empty for built-in meshes
func (c *Controller) Path() string {
	return c.path
}

// Load reads a mesh file and makes it the active mesh.
// On any error the previous mesh stays active.
func (c *Controller) Load(path string) error {
	m, err := mesh.Load(path)
	if err != nil {
		c.log.Warn("Failed to load mesh", zap.String("path", path), zap.Error(err))
		return err
	}
	return c.SetMesh(m, path)
}

// SetMesh frames m and makes it the active mesh. The swap only happens when
// framing succeeds. Background reloads still in flight are discarded.
func (c *Controller) SetMesh(m *mesh.Mesh, path string) error {
	if err := c.activate(m, path); err != nil {
		return err
	}
	c.generation.Add(1)
	return nil
}

func (c *Controller) activate(m *mesh.Mesh, path string) error {
	if err := c.rig.AutoFrame(m); err != nil {
		c.log.Warn("Failed to frame mesh", zap.String("path", path), zap.Error(err))
		return err
	}

	c.mesh = m
	c.path = path
	c.sink.UploadMesh(m.Buffers())
	c.updateStatus()

	c.log.Info("Mesh loaded",
		zap.String("path", path),
		zap.Int("vertices", m.VertexCount()),
		zap.Int("faces", m.FaceCount()),
		zap.Float64("radius", m.BoundingRadius()))
	return nil
}

// Save writes the active mesh to path
func (c *Controller) Save(path string) error {
	if c.mesh == nil {
		return ErrNoMesh
	}
	if err := c.mesh.Save(path); err != nil {
		c.log.Error("Failed to save mesh", zap.String("path", path), zap.Error(err))
		return fmt.Errorf("failed to save mesh: %w", err)
	}
	c.log.Info("Mesh saved", zap.String("path", path))
	return nil
}

// Stage loads a mesh without showing it. CommitStaged swaps it in.
func (c *Controller) Stage(path string) error {
	m, err := mesh.Load(path)
	if err != nil {
		c.log.Warn("Failed to stage mesh", zap.String("path", path), zap.Error(err))
		return err
	}
	c.staged = m
	c.stagedPath = path
	c.log.Debug("Mesh staged", zap.String("path", path))
	return nil
}

// StagedPath returns the path of the staged mesh, empty if none
func (c *Controller) StagedPath() string {
	return c.stagedPath
}

// CommitStaged makes the staged mesh active
func (c *Controller) CommitStaged() error {
	if c.staged == nil {
		return ErrNothingStaged
	}
	m, path := c.staged, c.stagedPath
	if err := c.SetMesh(m, path); err != nil {
		return err
	}
	c.staged = nil
	c.stagedPath = ""
	return nil
}

// ReloadAsync reloads the active file in the background. The result is
// applied by the next ApplyPending call. Safe to call from any goroutine
// with a path captured on the main goroutine. The result is dropped when
// another mesh is made active before it is applied.
func (c *Controller) ReloadAsync(path string) {
	generation := c.generation.Load()
	go func() {
		m, err := mesh.Load(path)
		result := loadResult{path: path, generation: generation, mesh: m, err: err}

		// Keep only the newest result
		for {
			select {
			case c.pending <- result:
				return
			default:
			}
			select {
			case <-c.pending:
			default:
			}
		}
	}()
}

// ApplyPending swaps in a finished background load, if any.
// It reports whether the active mesh changed.
func (c *Controller) ApplyPending() bool {
	select {
	case result := <-c.pending:
		if result.generation != c.generation.Load() || result.path != c.path {
			c.log.Debug("Dropping stale reload",
				zap.String("path", result.path),
				zap.String("active", c.path))
			return false
		}
		if result.err != nil {
			c.log.Warn("Reload failed, keeping current mesh", zap.String("path", result.path), zap.Error(result.err))
			return false
		}
		return c.activate(result.mesh, result.path) == nil
	default:
		return false
	}
}

// Reframe restores the initial view of the active mesh
func (c *Controller) Reframe() {
	if c.mesh == nil {
		return
	}
	c.rig.ResetZoom()
	if err := c.rig.AutoFrame(c.mesh); err != nil {
		c.log.Warn("Failed to reframe mesh", zap.Error(err))
	}
}

// Handle applies one input event and reports whether the view changed
func (c *Controller) Handle(ev Event) bool {
	ball := c.rig.Arcball()

	switch ev.Kind {
	case EventResize:
		c.rig.SetViewport(ev.Width, ev.Height)
		return true

	case EventScroll:
		c.rig.Scroll(ev.Delta)
		return true

	case EventPress:
		switch {
		case ev.Button == ButtonPrimary && ev.Mods == 0:
			ball.Press(ev.Pos())
		case ev.Button == ButtonSecondary || (ev.Button == ButtonPrimary && ev.Mods == ModShift):
			c.rig.BeginPan(ev.Pos())
		default:
			return false
		}
		return true

	case EventRelease:
		// Any button ends the gesture
		ball.Release()
		c.rig.EndPan()
		return true

	case EventMove:
		if ball.Move(ev.Pos()) {
			return true
		}
		if !c.rig.Panning() || c.mesh == nil {
			return false
		}
		if err := c.rig.Pan(ev.Pos(), c.mesh); err != nil {
			c.log.Debug("Pan failed", zap.Error(err))
			return false
		}
		return true

	case EventKey:
		switch ev.Key {
		case KeyEscape:
			c.closeRequested = true
			return true
		case KeyR, KeyHome:
			c.Reframe()
			return true
		}
	}
	return false
}

// Frame pushes the current matrices to the sink
func (c *Controller) Frame() {
	if c.mesh == nil {
		return
	}
	c.sink.Draw(c.rig.Matrices())
}

// CloseRequested reports whether the user asked to close the viewer
func (c *Controller) CloseRequested() bool {
	return c.closeRequested
}

func (c *Controller) updateStatus() {
	status, ok := c.sink.(StatusSink)
	if !ok {
		return
	}

	name := "built-in"
	if c.path != "" {
		name = filepath.Base(c.path)
	}
	lines := append([]string{name}, analysis.AnalyzeMesh(c.mesh).Summary()...)
	status.SetStatus(lines)
}
