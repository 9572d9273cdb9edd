// Package action defines the closed set of messages that drive all state
// change in the application, plus the queue that carries them. Actions are
// small values with no resource ownership; everything that wants to talk
// to anything else does so by sending one.
package action

import (
	"fmt"

	"github.com/odvcencio/stax/pkg/focus"
	"github.com/odvcencio/stax/pkg/provider"
)

// Action is a typed message. The set of implementations in this package is
// closed; consumers switch on the concrete type and ignore variants they
// do not handle.
type Action interface {
	actionMarker()
}

// Tick is the input-rate heartbeat. Emitted at most once per loop pass and
// never logged.
type Tick struct{}

// Render asks for a frame. Emitted at most once per loop pass and never
// logged.
type Render struct{}

// Resize reports a new terminal size in cells.
type Resize struct {
	Width  int
	Height int
}

// Suspend asks the loop to release the terminal (ctrl-z).
type Suspend struct{}

// Resume is sent after the terminal has been re-acquired.
type Resume struct{}

// Quit asks the loop to stop.
type Quit struct{}

// Refresh asks components to reload whatever they derive from external
// state (configuration, key bindings).
type Refresh struct{}

// Error reports a recoverable failure to be surfaced, not crashed on.
type Error struct {
	Message string
}

// Help asks for the help overlay.
type Help struct{}

// FocusSwitch pushes a new focus onto the stack.
type FocusSwitch struct {
	Focus focus.Focus
}

// FocusBack pops the focus stack.
type FocusBack struct{}

// Request names an input-mode session. Initial, when non-nil, seeds the
// input buffer.
type Request struct {
	Name    string
	Initial *string
}

// Result carries the outcome of an input-mode session. A nil Name means
// the input was cancelled; listeners waiting on a specific name must
// ignore it.
type Result struct {
	Name   *string
	Buffer string
}

// InputModeOn routes all input to the input bar until InputModeOff.
type InputModeOn struct {
	Request Request
}

// InputModeOff ends an input-mode session.
type InputModeOff struct {
	Result Result
}

// ShowDetails tells the details panel which search result is selected.
// A nil Video clears the panel.
type ShowDetails struct {
	Video *provider.Video
}

// LibraryReload tells the song list to re-read the library store.
type LibraryReload struct{}

func (Tick) actionMarker()          {}
func (Render) actionMarker()        {}
func (Resize) actionMarker()        {}
func (Suspend) actionMarker()       {}
func (Resume) actionMarker()        {}
func (Quit) actionMarker()          {}
func (Refresh) actionMarker()       {}
func (Error) actionMarker()         {}
func (Help) actionMarker()          {}
func (FocusSwitch) actionMarker()   {}
func (FocusBack) actionMarker()     {}
func (InputModeOn) actionMarker()   {}
func (InputModeOff) actionMarker()  {}
func (ShowDetails) actionMarker()   {}
func (LibraryReload) actionMarker() {}

// Name returns a stable identifier for logging and key-binding tables.
func Name(a Action) string {
	switch a.(type) {
	case Tick:
		return "tick"
	case Render:
		return "render"
	case Resize:
		return "resize"
	case Suspend:
		return "suspend"
	case Resume:
		return "resume"
	case Quit:
		return "quit"
	case Refresh:
		return "refresh"
	case Error:
		return "error"
	case Help:
		return "help"
	case FocusSwitch:
		return "focus_switch"
	case FocusBack:
		return "focus_back"
	case InputModeOn:
		return "input_mode_on"
	case InputModeOff:
		return "input_mode_off"
	case ShowDetails:
		return "show_details"
	case LibraryReload:
		return "library_reload"
	default:
		return fmt.Sprintf("%T", a)
	}
}

// Loud reports whether a is worth logging. Tick and Render fire many times
// a second and would drown everything else.
func Loud(a Action) bool {
	switch a.(type) {
	case Tick, Render:
		return false
	default:
		return true
	}
}
