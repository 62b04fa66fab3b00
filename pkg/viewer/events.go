package viewer

import "github.com/go-gl/mathgl/mgl64"

// EventKind identifies what an Event carries
type EventKind int

const (
	EventPress EventKind = iota + 1
	EventRelease
	EventMove
	EventScroll
	EventResize
	EventKey
)

// Button is a pointer button
type Button int

const (
	ButtonNone Button = iota
	ButtonPrimary
	ButtonSecondary
	ButtonMiddle
)

// Modifier is a bit set of held modifier keys
type Modifier int

const (
	ModShift Modifier = 1 << iota
	ModControl
	ModAlt
	ModSuper
)

// Key is a keyboard key the viewer reacts to
type Key int

const (
	KeyUnknown Key = iota
	KeyEscape
	KeyR
	KeyHome
)

// Event is a toolkit independent input event.
// X and Y are window pixels with the origin at the top left.
type Event struct {
	Kind   EventKind
	X, Y   float64
	Button Button
	Mods   Modifier
	Delta  float64 // scroll amount, positive zooms in
	Width  int     // resize only
	Height int     // resize only
	Key    Key
}

// Pos returns the pointer position of the event
func (e Event) Pos() mgl64.Vec2 {
	return mgl64.Vec2{e.X, e.Y}
}

func Press(x, y float64, button Button, mods Modifier) Event {
	return Event{Kind: EventPress, X: x, Y: y, Button: button, Mods: mods}
}

func Release(x, y float64, button Button, mods Modifier) Event {
	return Event{Kind: EventRelease, X: x, Y: y, Button: button, Mods: mods}
}

func Move(x, y float64) Event {
	return Event{Kind: EventMove, X: x, Y: y}
}

func Scroll(delta float64) Event {
	return Event{Kind: EventScroll, Delta: delta}
}

func Resize(width, height int) Event {
	return Event{Kind: EventResize, Width: width, Height: height}
}

func KeyPress(key Key) Event {
	return Event{Kind: EventKey, Key: key}
}
