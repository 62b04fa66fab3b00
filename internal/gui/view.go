package gui

import (
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"github.com/philipparndt/meshview/pkg/viewer"
)

// meshView is the fyne widget showing the software rendered mesh.
// It forwards pointer input to the controller and redraws on change.
type meshView struct {
	widget.BaseWidget

	ctrl   *viewer.Controller
	raster *viewer.Raster
	image  *canvas.Raster
}

var (
	_ desktop.Mouseable = (*meshView)(nil)
	_ desktop.Hoverable = (*meshView)(nil)
	_ fyne.Scrollable   = (*meshView)(nil)
)

func newMeshView(ctrl *viewer.Controller, raster *viewer.Raster) *meshView {
	v := &meshView{ctrl: ctrl, raster: raster}
	v.image = canvas.NewRaster(func(w, h int) image.Image {
		return v.raster.Image()
	})
	v.ExtendBaseWidget(v)
	return v
}

// CreateRenderer creates the renderer for the widget
func (v *meshView) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(v.image)
}

func (v *meshView) MinSize() fyne.Size {
	return fyne.NewSize(400, 400)
}

// Resize keeps the viewport in sync with the widget size
func (v *meshView) Resize(size fyne.Size) {
	v.BaseWidget.Resize(size)
	v.handle(viewer.Resize(int(size.Width), int(size.Height)))
}

func (v *meshView) MouseDown(ev *desktop.MouseEvent) {
	v.handle(viewer.Press(float64(ev.Position.X), float64(ev.Position.Y), buttonFromFyne(ev.Button), modsFromFyne(ev.Modifier)))
}

func (v *meshView) MouseUp(ev *desktop.MouseEvent) {
	v.handle(viewer.Release(float64(ev.Position.X), float64(ev.Position.Y), buttonFromFyne(ev.Button), modsFromFyne(ev.Modifier)))
}

func (v *meshView) MouseIn(*desktop.MouseEvent) {}

func (v *meshView) MouseMoved(ev *desktop.MouseEvent) {
	v.handle(viewer.Move(float64(ev.Position.X), float64(ev.Position.Y)))
}

func (v *meshView) MouseOut() {}

// Scrolled zooms in on scroll up
func (v *meshView) Scrolled(ev *fyne.ScrollEvent) {
	if ev.Scrolled.DY == 0 {
		return
	}
	v.handle(viewer.Scroll(float64(ev.Scrolled.DY)))
}

func (v *meshView) handle(ev viewer.Event) {
	if v.ctrl.Handle(ev) {
		v.redraw()
	}
}

// redraw renders a frame into the raster and shows it
func (v *meshView) redraw() {
	v.ctrl.Frame()
	v.image.Refresh()
}

func buttonFromFyne(b desktop.MouseButton) viewer.Button {
	switch b {
	case desktop.MouseButtonPrimary:
		return viewer.ButtonPrimary
	case desktop.MouseButtonSecondary:
		return viewer.ButtonSecondary
	case desktop.MouseButtonTertiary:
		return viewer.ButtonMiddle
	}
	return viewer.ButtonNone
}

func modsFromFyne(m fyne.KeyModifier) viewer.Modifier {
	var mods viewer.Modifier
	if m&fyne.KeyModifierShift != 0 {
		mods |= viewer.ModShift
	}
	if m&fyne.KeyModifierControl != 0 {
		mods |= viewer.ModControl
	}
	if m&fyne.KeyModifierAlt != 0 {
		mods |= viewer.ModAlt
	}
	if m&fyne.KeyModifierSuper != 0 {
		mods |= viewer.ModSuper
	}
	return mods
}

func keyFromFyne(k fyne.KeyName) viewer.Key {
	switch k {
	case fyne.KeyEscape:
		return viewer.KeyEscape
	case fyne.KeyR:
		return viewer.KeyR
	case fyne.KeyHome:
		return viewer.KeyHome
	}
	return viewer.KeyUnknown
}
