// Package terminal defines the input event types produced by a terminal
// backend and consumed by the dispatch loop.
package terminal

// Event is a terminal input event.
type Event interface {
	eventMarker()
}

// KeyEvent is a single key press.
type KeyEvent struct {
	Key   Key
	Rune  rune
	Alt   bool
	Ctrl  bool
	Shift bool
}

func (KeyEvent) eventMarker() {}

// ResizeEvent reports a new terminal size.
type ResizeEvent struct {
	Width  int
	Height int
}

func (ResizeEvent) eventMarker() {}

// MouseEvent is a mouse press, release or movement.
type MouseEvent struct {
	X, Y   int
	Button MouseButton
	Action MouseAction
}

func (MouseEvent) eventMarker() {}

// PasteEvent carries bracketed paste content as one event.
type PasteEvent struct {
	Text string
}

func (PasteEvent) eventMarker() {}

// MouseButton identifies the mouse button involved.
type MouseButton int

const (
	MouseNone MouseButton = iota
	MouseLeft
	MouseMiddle
	MouseRight
	MouseWheelUp
	MouseWheelDown
)

// MouseAction identifies what the mouse did.
type MouseAction int

const (
	MousePress MouseAction = iota
	MouseRelease
	MouseMove
)

// Key identifies special keys. Printable characters use KeyRune with the
// rune set on the event.
type Key int

const (
	KeyNone Key = iota
	KeyRune
	KeyEnter
	KeyBackspace
	KeyTab
	KeyEscape
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyDelete
)
