// Package config handles viewer configuration loading and management.
package config

import (
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/philipparndt/meshview/pkg/camera"
)

// Config holds all viewer settings.
type Config struct {
	Window  WindowConfig  `yaml:"window"`
	Camera  CameraConfig  `yaml:"camera"`
	Viewer  ViewerConfig  `yaml:"viewer"`
	Logging LoggingConfig `yaml:"logging"`
}

// WindowConfig holds the initial window settings.
type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
	FPS    int    `yaml:"fps"`
}

// CameraConfig holds the camera intrinsics and zoom behaviour.
type CameraConfig struct {
	Eye           [3]float64 `yaml:"eye"`
	Center        [3]float64 `yaml:"center"`
	Up            [3]float64 `yaml:"up"`
	FOV           float64    `yaml:"fov"`
	Near          float64    `yaml:"near"`
	Far           float64    `yaml:"far"`
	MinZoom       float64    `yaml:"min_zoom"`
	ZoomInFactor  float64    `yaml:"zoom_in_factor"`
	ZoomOutFactor float64    `yaml:"zoom_out_factor"`
}

// ViewerConfig holds frontend and reload settings.
type ViewerConfig struct {
	Frontend      string        `yaml:"frontend"` // raylib or fyne
	Watch         bool          `yaml:"watch"`
	WatchDebounce time.Duration `yaml:"watch_debounce"`
	SampleCells   int           `yaml:"sample_cells"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

const (
	FrontendRaylib = "raylib"
	FrontendFyne   = "fyne"
)

// Default returns a Config with the viewer's default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Width:  800,
			Height: 600,
			Title:  "Mesh Viewer",
			FPS:    60,
		},
		Camera: CameraConfig{
			Eye:           [3]float64{0, 0, 5},
			Center:        [3]float64{0, 0, 0},
			Up:            [3]float64{0, 1, 0},
			FOV:           45,
			Near:          0.05,
			Far:           100,
			MinZoom:       0.1,
			ZoomInFactor:  1.1,
			ZoomOutFactor: 0.9,
		},
		Viewer: ViewerConfig{
			Frontend:      FrontendRaylib,
			Watch:         true,
			WatchDebounce: 500 * time.Millisecond,
			SampleCells:   48,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Params converts the camera settings into rig parameters.
func (c CameraConfig) Params() camera.Params {
	p := camera.DefaultParams()
	p.Eye = mgl64.Vec3(c.Eye)
	p.Center = mgl64.Vec3(c.Center)
	p.Up = mgl64.Vec3(c.Up)
	p.FOV = c.FOV
	p.Near = c.Near
	p.Far = c.Far
	p.MinZoom = c.MinZoom
	p.ZoomInFactor = c.ZoomInFactor
	p.ZoomOutFactor = c.ZoomOutFactor
	return p
}

// Validate checks that the settings can drive a viewer.
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Window.FPS < 0 {
		return fmt.Errorf("fps must not be negative, got %d", c.Window.FPS)
	}

	cam := c.Camera
	if cam.FOV <= 0 || cam.FOV >= 180 {
		return fmt.Errorf("camera fov must be in (0, 180), got %v", cam.FOV)
	}
	if cam.Near <= 0 || cam.Near >= cam.Far {
		return fmt.Errorf("camera planes must satisfy 0 < near < far, got near=%v far=%v", cam.Near, cam.Far)
	}
	if cam.MinZoom <= 0 {
		return fmt.Errorf("camera min_zoom must be positive, got %v", cam.MinZoom)
	}
	if cam.ZoomInFactor <= 1 || cam.ZoomOutFactor <= 0 || cam.ZoomOutFactor >= 1 {
		return fmt.Errorf("zoom factors must satisfy in > 1 and 0 < out < 1, got in=%v out=%v", cam.ZoomInFactor, cam.ZoomOutFactor)
	}
	if mgl64.Vec3(cam.Eye).Sub(mgl64.Vec3(cam.Center)).Len() == 0 {
		return fmt.Errorf("camera eye and center must differ")
	}
	if mgl64.Vec3(cam.Up).Len() == 0 {
		return fmt.Errorf("camera up vector must not be zero")
	}

	switch c.Viewer.Frontend {
	case FrontendRaylib, FrontendFyne:
	default:
		return fmt.Errorf("unknown frontend %q, want %s or %s", c.Viewer.Frontend, FrontendRaylib, FrontendFyne)
	}
	if c.Viewer.SampleCells < 2 {
		return fmt.Errorf("sample_cells must be at least 2, got %d", c.Viewer.SampleCells)
	}
	if c.Viewer.WatchDebounce < 0 {
		return fmt.Errorf("watch_debounce must not be negative, got %v", c.Viewer.WatchDebounce)
	}
	return nil
}
