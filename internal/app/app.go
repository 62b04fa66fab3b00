// Package app is the raylib frontend of the mesh viewer.
package app

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"

	"github.com/philipparndt/meshview/internal/config"
	"github.com/philipparndt/meshview/internal/logger"
	"github.com/philipparndt/meshview/pkg/mesh"
	"github.com/philipparndt/meshview/pkg/viewer"
)

var background = rl.NewColor(77, 77, 82, 255)

// App is one raylib viewer window
type App struct {
	cfg   *config.Config
	log   *zap.Logger
	sink  *gpuSink
	ctrl  *viewer.Controller
	input inputState
}

// Run opens the window, shows m and blocks until the viewer is closed.
// path is the file m was loaded from and is watched for changes; it is
// empty for built-in meshes.
func Run(cfg *config.Config, m *mesh.Mesh, path string) error {
	log := logger.Named("raylib")

	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagWindowHighdpi | rl.FlagMsaa4xHint) // Must be before InitWindow
	rl.InitWindow(int32(cfg.Window.Width), int32(cfg.Window.Height), cfg.Window.Title)
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Window.FPS))

	app := &App{cfg: cfg, log: log, sink: newGPUSink()}
	defer app.sink.Close()

	app.ctrl = viewer.NewController(app.sink, cfg.Camera.Params(), logger.Named("viewer"))
	for _, ev := range app.input.events(pollFrame()) {
		app.ctrl.Handle(ev)
	}

	if err := app.ctrl.SetMesh(m, path); err != nil {
		return fmt.Errorf("failed to show mesh: %w", err)
	}

	if cfg.Viewer.Watch && path != "" {
		fw, err := app.ctrl.WatchReload(cfg.Viewer.WatchDebounce)
		if err != nil {
			log.Warn("Auto-reload not available", zap.Error(err))
		} else {
			defer fw.Close()
		}
	}

	app.loop()
	return nil
}

func (app *App) loop() {
	for !app.ctrl.CloseRequested() {
		// Escape is handled by the controller
		if rl.WindowShouldClose() && !rl.IsKeyPressed(rl.KeyEscape) {
			break
		}

		// Apply loaded model if ready (must be on main thread)
		app.ctrl.ApplyPending()

		for _, ev := range app.input.events(pollFrame()) {
			app.ctrl.Handle(ev)
		}

		rl.BeginDrawing()
		rl.ClearBackground(background)
		app.ctrl.Frame()
		rl.EndDrawing()
	}
	app.log.Debug("Viewer closed")
}
