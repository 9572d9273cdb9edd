// Package component defines the capability contract every UI module
// implements, plus the concrete components. Components own their private
// state exclusively; they talk to each other only through actions.
package component

import (
	"github.com/odvcencio/stax/pkg/action"
	"github.com/odvcencio/stax/pkg/config"
	"github.com/odvcencio/stax/pkg/focus"
	"github.com/odvcencio/stax/pkg/ui/backend"
	"github.com/odvcencio/stax/pkg/ui/terminal"
)

// Component is the contract the dispatch loop works against. Scene and
// Mode are constant for an instance's lifetime; everything else has a
// no-op default via Base.
type Component interface {
	// Scene names the screen element this component draws into.
	Scene() focus.Scene
	// Mode names the top-level area this component belongs to. Global
	// components are live regardless of focus.
	Mode() focus.Mode

	// Init runs once at startup, after RegisterSender and RegisterConfig.
	Init() error
	// RegisterSender hands the component a clone of the action send handle.
	RegisterSender(s action.Sender)
	// RegisterConfig hands the component the shared configuration.
	RegisterConfig(cfg *config.Config)

	// HandleKey reacts to a key press. The returned actions are enqueued.
	HandleKey(ev terminal.KeyEvent, f focus.Focus) []action.Action
	// HandleMouse reacts to a mouse event.
	HandleMouse(ev terminal.MouseEvent, f focus.Focus) []action.Action
	// HandleEvent reacts to events with no dedicated handler (paste).
	HandleEvent(ev terminal.Event, f focus.Focus) []action.Action

	// Update reacts to a dispatched action. Every component sees every
	// action; unmatched variants are ignored.
	Update(a action.Action, f focus.Focus) []action.Action

	// Draw renders into a target already clipped to the component's rect.
	Draw(t backend.RenderTarget, f focus.Focus) error
}

// Dispatch routes one terminal event to the matching handler.
func Dispatch(c Component, ev terminal.Event, f focus.Focus) []action.Action {
	switch e := ev.(type) {
	case terminal.KeyEvent:
		return c.HandleKey(e, f)
	case terminal.MouseEvent:
		return c.HandleMouse(e, f)
	default:
		return c.HandleEvent(ev, f)
	}
}

// Base supplies no-op defaults for everything except Scene and Mode.
// Concrete components embed it and override what they need.
type Base struct{}

func (Base) Init() error                                                  { return nil }
func (Base) RegisterSender(action.Sender)                                 {}
func (Base) RegisterConfig(*config.Config)                                {}
func (Base) HandleKey(terminal.KeyEvent, focus.Focus) []action.Action     { return nil }
func (Base) HandleMouse(terminal.MouseEvent, focus.Focus) []action.Action { return nil }
func (Base) HandleEvent(terminal.Event, focus.Focus) []action.Action      { return nil }
func (Base) Update(action.Action, focus.Focus) []action.Action            { return nil }
func (Base) Draw(backend.RenderTarget, focus.Focus) error                 { return nil }
