// Package backend abstracts the terminal so the dispatch loop can run
// against a real terminal (tcell) or a simulation screen in tests.
package backend

import "github.com/odvcencio/stax/pkg/ui/terminal"

// Backend is the terminal collaborator. Init places the terminal in
// raw/alternate-screen mode; Fini restores it and must be safe to call on
// every exit path.
type Backend interface {
	Init() error
	Fini()

	// Size returns the current terminal dimensions in cells.
	Size() (width, height int)

	// SetContent writes one cell. comb carries combining runes and may be nil.
	SetContent(x, y int, mainc rune, comb []rune, style Style)

	// Show flushes buffered cells to the terminal.
	Show()

	Clear()
	HideCursor()
	ShowCursor(x, y int)

	// PollEvent blocks for the next input event. A nil return means the
	// backend is shutting down and no further events will arrive.
	PollEvent() terminal.Event

	// PostEvent injects an event into the input queue.
	PostEvent(ev terminal.Event) error

	// Sync forces a full repaint on the next Show.
	Sync()

	// Suspend restores the terminal without ending the session, so the
	// process can stop or shell out; Resume re-acquires it. Unlike a
	// Fini/Init cycle the pair may repeat any number of times.
	Suspend() error
	Resume() error
}

// RenderTarget is the drawing surface handed to components. It is the only
// part of the backend a component may touch.
type RenderTarget interface {
	Size() (width, height int)
	SetContent(x, y int, mainc rune, comb []rune, style Style)
}

// SubTarget restricts a RenderTarget to a rectangle, translating and
// clipping coordinates so components draw relative to their own origin.
type SubTarget struct {
	parent  RenderTarget
	offsetX int
	offsetY int
	width   int
	height  int
}

// NewSubTarget carves a sub-region out of parent.
func NewSubTarget(parent RenderTarget, x, y, w, h int) *SubTarget {
	return &SubTarget{parent: parent, offsetX: x, offsetY: y, width: w, height: h}
}

func (s *SubTarget) Size() (width, height int) {
	return s.width, s.height
}

func (s *SubTarget) SetContent(x, y int, mainc rune, comb []rune, style Style) {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return
	}
	s.parent.SetContent(s.offsetX+x, s.offsetY+y, mainc, comb, style)
}
