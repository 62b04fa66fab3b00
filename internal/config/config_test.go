package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Window.Width != 800 || cfg.Window.Height != 600 {
		t.Errorf("expected 800x600, got %dx%d", cfg.Window.Width, cfg.Window.Height)
	}
	if cfg.Viewer.Frontend != FrontendRaylib {
		t.Errorf("expected raylib frontend, got %s", cfg.Viewer.Frontend)
	}
	if !cfg.Viewer.Watch {
		t.Error("expected watch to be enabled by default")
	}
	if cfg.Viewer.WatchDebounce != 500*time.Millisecond {
		t.Errorf("expected debounce 500ms, got %v", cfg.Viewer.WatchDebounce)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

func TestCameraParams(t *testing.T) {
	p := Default().Camera.Params()

	if p.Eye != (mgl64.Vec3{0, 0, 5}) {
		t.Errorf("unexpected eye %v", p.Eye)
	}
	if p.FOV != 45 || p.Near != 0.05 || p.Far != 100 {
		t.Errorf("unexpected intrinsics fov=%v near=%v far=%v", p.FOV, p.Near, p.Far)
	}
	if p.Zoom != 1 || p.MinZoom != 0.1 || p.ZoomInFactor != 1.1 || p.ZoomOutFactor != 0.9 {
		t.Errorf("unexpected zoom settings %+v", p)
	}
}

func TestLoadFromFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")

	yamlContent := `
window:
  width: 1024
  title: "Inspect"
camera:
  eye: [0, 1, 8]
  fov: 30
viewer:
  frontend: fyne
  watch: false
  watch_debounce: 250ms
logging:
  level: "debug"
  log_file: "viewer.log"
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Window.Width != 1024 {
		t.Errorf("expected width 1024, got %d", cfg.Window.Width)
	}
	// Unset keys keep their defaults
	if cfg.Window.Height != 600 {
		t.Errorf("expected default height 600, got %d", cfg.Window.Height)
	}
	if cfg.Window.Title != "Inspect" {
		t.Errorf("expected title Inspect, got %s", cfg.Window.Title)
	}
	if cfg.Camera.Eye != [3]float64{0, 1, 8} {
		t.Errorf("unexpected eye %v", cfg.Camera.Eye)
	}
	if cfg.Camera.FOV != 30 {
		t.Errorf("expected fov 30, got %v", cfg.Camera.FOV)
	}
	if cfg.Camera.Near != 0.05 {
		t.Errorf("expected default near, got %v", cfg.Camera.Near)
	}
	if cfg.Viewer.Frontend != FrontendFyne {
		t.Errorf("expected fyne, got %s", cfg.Viewer.Frontend)
	}
	if cfg.Viewer.Watch {
		t.Error("expected watch to be false")
	}
	if cfg.Viewer.WatchDebounce != 250*time.Millisecond {
		t.Errorf("expected 250ms, got %v", cfg.Viewer.WatchDebounce)
	}
	if cfg.Logging.LogFile != "viewer.log" {
		t.Errorf("expected log file viewer.log, got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "invalid.yaml")
	invalidYAML := `
window:
  width: not a number
  invalid syntax here
`
	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	if err := loadFromFile(Default(), configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadExplicitMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), Overrides{})
	if err == nil {
		t.Error("expected error for explicit missing config file")
	}
}

func TestLoadAppliesOverridesAndValidates(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("window:\n  width: 640\nviewer:\n  frontend: fyne\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := Load(configPath, Overrides{Debug: true, Width: 1280, Frontend: FrontendRaylib, NoWatch: true, LogFile: "x.log"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Window.Width != 1280 {
		t.Errorf("override should win, got width %d", cfg.Window.Width)
	}
	if cfg.Viewer.Frontend != FrontendRaylib {
		t.Errorf("override should win, got frontend %s", cfg.Viewer.Frontend)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.LogFile != "x.log" {
		t.Errorf("unexpected logging %+v", cfg.Logging)
	}
	if cfg.Viewer.Watch {
		t.Error("expected watch disabled")
	}

	_, err = Load(configPath, Overrides{Frontend: "vulkan"})
	if err == nil || !strings.Contains(err.Error(), "vulkan") {
		t.Errorf("expected unknown frontend error, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero width", func(c *Config) { c.Window.Width = 0 }},
		{"fov too large", func(c *Config) { c.Camera.FOV = 180 }},
		{"near beyond far", func(c *Config) { c.Camera.Near = 200 }},
		{"zero near", func(c *Config) { c.Camera.Near = 0 }},
		{"zero min zoom", func(c *Config) { c.Camera.MinZoom = 0 }},
		{"zoom in shrinks", func(c *Config) { c.Camera.ZoomInFactor = 0.5 }},
		{"eye at center", func(c *Config) { c.Camera.Eye = c.Camera.Center }},
		{"zero up", func(c *Config) { c.Camera.Up = [3]float64{} }},
		{"unknown frontend", func(c *Config) { c.Viewer.Frontend = "tty" }},
		{"too few cells", func(c *Config) { c.Viewer.SampleCells = 1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Window.Title = "Saved"
	cfg.Viewer.WatchDebounce = 2 * time.Second
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("failed to save: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("failed to load: %v", err)
	}
	if loaded.Window.Title != "Saved" {
		t.Errorf("expected title Saved, got %s", loaded.Window.Title)
	}
	if loaded.Viewer.WatchDebounce != 2*time.Second {
		t.Errorf("expected 2s, got %v", loaded.Viewer.WatchDebounce)
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !strings.Contains(dir, "meshview") {
		t.Errorf("expected meshview in config dir, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))
	os.Chdir(tmpDir)

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	if err := os.WriteFile(filepath.Join(tmpDir, "meshview.yaml"), []byte("window:\n  width: 900\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}
	if path := findConfigFile(); path == "" {
		t.Error("expected to find meshview.yaml in current directory")
	}

	cfg, err := Load("", Overrides{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Window.Width != 900 {
		t.Errorf("expected width from discovered file, got %d", cfg.Window.Width)
	}
}
