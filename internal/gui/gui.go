// Package gui is the fyne frontend of the mesh viewer. It shows the
// software rendered mesh next to a panel for selecting, loading and saving
// OBJ files.
package gui

import (
	"path/filepath"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"github.com/philipparndt/meshview/internal/config"
	"github.com/philipparndt/meshview/internal/logger"
	"github.com/philipparndt/meshview/pkg/analysis"
	"github.com/philipparndt/meshview/pkg/mesh"
	"github.com/philipparndt/meshview/pkg/viewer"
)

// pollInterval is how often finished background reloads are picked up
const pollInterval = 100 * time.Millisecond

// App is one fyne viewer window
type App struct {
	cfg    *config.Config
	log    *zap.Logger
	window fyne.Window
	ctrl   *viewer.Controller
	view   *meshView

	fileLabel   *widget.Label
	stagedLabel *widget.Label
	infoLabel   *widget.Label
	loadButton  *widget.Button

	stopWatch func()
}

// Run opens the window, shows m and blocks until the window is closed.
// path is the file m was loaded from, empty for built-in meshes.
func Run(cfg *config.Config, m *mesh.Mesh, path string) error {
	a := app.New()
	w := a.NewWindow(cfg.Window.Title)

	gui, err := newApp(cfg, w, m, path)
	if err != nil {
		return err
	}
	defer gui.close()

	done := make(chan struct{})
	defer close(done)
	go gui.pollReloads(done)

	w.Resize(fyne.NewSize(float32(cfg.Window.Width), float32(cfg.Window.Height)))
	w.ShowAndRun()
	return nil
}

func newApp(cfg *config.Config, w fyne.Window, m *mesh.Mesh, path string) (*App, error) {
	raster := viewer.NewRaster(cfg.Window.Width, cfg.Window.Height)
	g := &App{
		cfg:    cfg,
		log:    logger.Named("fyne"),
		window: w,
		ctrl:   viewer.NewController(raster, cfg.Camera.Params(), logger.Named("viewer")),
	}
	g.view = newMeshView(g.ctrl, raster)
	g.ctrl.Handle(viewer.Resize(cfg.Window.Width, cfg.Window.Height))

	if err := g.ctrl.SetMesh(m, path); err != nil {
		return nil, err
	}

	g.setupUI()
	g.restartWatch()
	g.refresh()

	w.Canvas().SetOnTypedKey(g.typedKey)
	return g, nil
}

func (g *App) setupUI() {
	g.fileLabel = widget.NewLabel("")
	g.stagedLabel = widget.NewLabel("Selected: -")
	g.stagedLabel.Wrapping = fyne.TextWrapBreak
	g.infoLabel = widget.NewLabel("")

	selectButton := widget.NewButton("Select…", g.showSelectDialog)
	g.loadButton = widget.NewButton("Load", g.loadStaged)
	g.loadButton.Disable()
	saveButton := widget.NewButton("Save…", g.showSaveDialog)
	resetButton := widget.NewButton("Reset View", func() {
		g.ctrl.Reframe()
		g.view.redraw()
	})

	instructions := widget.NewLabel(
		"Drag to rotate\n" +
			"Shift+drag or right drag to pan\n" +
			"Scroll to zoom\n" +
			"R or Home resets, Esc closes",
	)

	panel := container.NewVBox(
		widget.NewLabel("Model Information:"),
		widget.NewSeparator(),
		g.fileLabel,
		g.infoLabel,
		widget.NewSeparator(),
		g.stagedLabel,
		container.NewGridWithColumns(2, selectButton, g.loadButton),
		saveButton,
		resetButton,
		widget.NewSeparator(),
		instructions,
	)

	scroll := container.NewVScroll(panel)
	scroll.SetMinSize(fyne.NewSize(260, 0))

	g.window.SetContent(container.NewBorder(nil, nil, nil, scroll, g.view))
}

// refresh updates the panel for the active mesh and redraws
func (g *App) refresh() {
	name := "built-in sphere"
	if p := g.ctrl.Path(); p != "" {
		name = filepath.Base(p)
	}
	g.fileLabel.SetText(name)
	g.infoLabel.SetText(strings.Join(analysis.AnalyzeMesh(g.ctrl.Mesh()).Summary(), "\n"))
	g.view.redraw()
}

func (g *App) showSelectDialog() {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, g.window)
			return
		}
		if reader == nil {
			return
		}
		defer reader.Close()
		g.stage(reader.URI().Path())
	}, g.window)
}

func (g *App) stage(path string) {
	if err := g.ctrl.Stage(path); err != nil {
		dialog.ShowError(err, g.window)
		return
	}
	g.stagedLabel.SetText("Selected: " + filepath.Base(path))
	g.loadButton.Enable()
}

func (g *App) loadStaged() {
	if err := g.ctrl.CommitStaged(); err != nil {
		dialog.ShowError(err, g.window)
		return
	}
	g.stagedLabel.SetText("Selected: -")
	g.loadButton.Disable()
	g.restartWatch()
	g.refresh()
}

func (g *App) showSaveDialog() {
	dialog.ShowFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, g.window)
			return
		}
		if writer == nil {
			return
		}
		path := writer.URI().Path()
		writer.Close()

		if err := g.ctrl.Save(path); err != nil {
			dialog.ShowError(err, g.window)
		}
	}, g.window)
}

func (g *App) typedKey(ev *fyne.KeyEvent) {
	key := keyFromFyne(ev.Name)
	if key == viewer.KeyUnknown {
		return
	}
	if g.ctrl.Handle(viewer.KeyPress(key)) {
		g.view.redraw()
	}
	if g.ctrl.CloseRequested() {
		g.window.Close()
	}
}

// restartWatch watches the file of the active mesh, if any
func (g *App) restartWatch() {
	if g.stopWatch != nil {
		g.stopWatch()
		g.stopWatch = nil
	}
	if !g.cfg.Viewer.Watch || g.ctrl.Path() == "" {
		return
	}

	fw, err := g.ctrl.WatchReload(g.cfg.Viewer.WatchDebounce)
	if err != nil {
		g.log.Warn("Auto-reload not available", zap.Error(err))
		return
	}
	g.stopWatch = func() { fw.Close() }
}

// pollReloads applies finished background reloads on the fyne thread
func (g *App) pollReloads(done <-chan struct{}) {
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			fyne.Do(func() {
				if g.ctrl.ApplyPending() {
					g.refresh()
				}
			})
		}
	}
}

func (g *App) close() {
	if g.stopWatch != nil {
		g.stopWatch()
	}
}
