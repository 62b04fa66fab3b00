package app

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/philipparndt/meshview/pkg/viewer"
)

func frame(x, y float64) inputFrame {
	return inputFrame{
		x: x, y: y,
		width: 800, height: 600,
		pressed:  map[viewer.Button]bool{},
		released: map[viewer.Button]bool{},
	}
}

func TestFirstFrameReportsSizeOnly(t *testing.T) {
	var s inputState
	events := s.events(frame(10, 20))
	assert.Equal(t, []viewer.Event{viewer.Resize(800, 600)}, events)

	assert.Empty(t, s.events(frame(10, 20)), "nothing changed")
}

func TestMoveAndResize(t *testing.T) {
	var s inputState
	s.events(frame(0, 0))

	f := frame(5, 6)
	f.width = 1024
	assert.Equal(t, []viewer.Event{viewer.Resize(1024, 600), viewer.Move(5, 6)}, s.events(f))
}

func TestButtonsCarryPositionAndModifiers(t *testing.T) {
	var s inputState
	s.events(frame(0, 0))

	f := frame(100, 50)
	f.pressed[viewer.ButtonPrimary] = true
	f.released[viewer.ButtonSecondary] = true
	f.mods = viewer.ModShift

	assert.Equal(t, []viewer.Event{
		viewer.Move(100, 50),
		viewer.Press(100, 50, viewer.ButtonPrimary, viewer.ModShift),
		viewer.Release(100, 50, viewer.ButtonSecondary, viewer.ModShift),
	}, s.events(f))
}

func TestScrollAndKeys(t *testing.T) {
	var s inputState
	s.events(frame(0, 0))

	f := frame(0, 0)
	f.wheel = -1
	f.keys = []viewer.Key{viewer.KeyEscape}

	assert.Equal(t, []viewer.Event{viewer.Scroll(-1), viewer.KeyPress(viewer.KeyEscape)}, s.events(f))
}
