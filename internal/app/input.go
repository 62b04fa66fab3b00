package app

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/philipparndt/meshview/pkg/viewer"
)

// inputFrame is a snapshot of the raylib input state for one frame
type inputFrame struct {
	x, y          float64
	width, height int
	pressed       map[viewer.Button]bool
	released      map[viewer.Button]bool
	mods          viewer.Modifier
	wheel         float64
	keys          []viewer.Key
}

// inputState turns polled snapshots into viewer events
type inputState struct {
	x, y          float64
	width, height int
	started       bool
}

var mouseButtons = []struct {
	code   rl.MouseButton
	button viewer.Button
}{
	{rl.MouseLeftButton, viewer.ButtonPrimary},
	{rl.MouseRightButton, viewer.ButtonSecondary},
	{rl.MouseMiddleButton, viewer.ButtonMiddle},
}

var keyMap = []struct {
	code int32
	key  viewer.Key
}{
	{rl.KeyEscape, viewer.KeyEscape},
	{rl.KeyR, viewer.KeyR},
	{rl.KeyHome, viewer.KeyHome},
}

// pollFrame reads the current raylib input state
func pollFrame() inputFrame {
	pos := rl.GetMousePosition()
	f := inputFrame{
		x:        float64(pos.X),
		y:        float64(pos.Y),
		width:    int(rl.GetScreenWidth()),
		height:   int(rl.GetScreenHeight()),
		pressed:  make(map[viewer.Button]bool),
		released: make(map[viewer.Button]bool),
		wheel:    float64(rl.GetMouseWheelMove()),
	}

	for _, b := range mouseButtons {
		if rl.IsMouseButtonPressed(b.code) {
			f.pressed[b.button] = true
		}
		if rl.IsMouseButtonReleased(b.code) {
			f.released[b.button] = true
		}
	}

	if rl.IsKeyDown(rl.KeyLeftShift) || rl.IsKeyDown(rl.KeyRightShift) {
		f.mods |= viewer.ModShift
	}
	if rl.IsKeyDown(rl.KeyLeftControl) || rl.IsKeyDown(rl.KeyRightControl) {
		f.mods |= viewer.ModControl
	}
	if rl.IsKeyDown(rl.KeyLeftAlt) || rl.IsKeyDown(rl.KeyRightAlt) {
		f.mods |= viewer.ModAlt
	}
	if rl.IsKeyDown(rl.KeyLeftSuper) || rl.IsKeyDown(rl.KeyRightSuper) {
		f.mods |= viewer.ModSuper
	}

	for _, k := range keyMap {
		if rl.IsKeyPressed(k.code) {
			f.keys = append(f.keys, k.key)
		}
	}
	return f
}

// events returns the events that lead from the previous snapshot to f.
// Order: resize, move, presses, releases, scroll, keys.
func (s *inputState) events(f inputFrame) []viewer.Event {
	var out []viewer.Event

	if !s.started || f.width != s.width || f.height != s.height {
		out = append(out, viewer.Resize(f.width, f.height))
		s.width, s.height = f.width, f.height
	}

	if s.started && (f.x != s.x || f.y != s.y) {
		out = append(out, viewer.Move(f.x, f.y))
	}
	s.x, s.y = f.x, f.y
	s.started = true

	for _, b := range mouseButtons {
		if f.pressed[b.button] {
			out = append(out, viewer.Press(f.x, f.y, b.button, f.mods))
		}
	}
	for _, b := range mouseButtons {
		if f.released[b.button] {
			out = append(out, viewer.Release(f.x, f.y, b.button, f.mods))
		}
	}

	if f.wheel != 0 {
		out = append(out, viewer.Scroll(f.wheel))
	}

	for _, k := range f.keys {
		out = append(out, viewer.KeyPress(k))
	}
	return out
}
