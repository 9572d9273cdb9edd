// Package app runs the dispatch loop: it owns the event source, the
// action queue, the component registry, the focus stack and the layout
// manager. All of that state lives on the loop goroutine; nothing else
// touches it.
package app

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/odvcencio/stax/pkg/action"
	"github.com/odvcencio/stax/pkg/component"
	"github.com/odvcencio/stax/pkg/config"
	"github.com/odvcencio/stax/pkg/focus"
	"github.com/odvcencio/stax/pkg/keymap"
	"github.com/odvcencio/stax/pkg/layout"
	"github.com/odvcencio/stax/pkg/logging"
	"github.com/odvcencio/stax/pkg/ui/backend"
	"github.com/odvcencio/stax/pkg/ui/terminal"
)

// App is the orchestrator.
type App struct {
	cfg     *config.Config
	backend backend.Backend
	logger  *logging.Logger

	components []component.Component
	focusStack *focus.Stack
	layouts    *layout.Manager
	actions    *action.Queue
	keys       atomic.Pointer[keymap.Table]

	keyBuffer []keymap.Key

	shouldQuit    bool
	shouldSuspend bool
}

// New wires an App. Components are registered in the given order and that
// order is fixed for the process lifetime.
func New(cfg *config.Config, b backend.Backend, keys *keymap.Table, logger *logging.Logger, components ...component.Component) *App {
	initial := focus.Focus{Mode: focus.Home, Scene: focus.SceneIntro}
	a := &App{
		cfg:        cfg,
		backend:    b,
		logger:     logger,
		components: components,
		focusStack: focus.NewStack(initial),
		layouts:    layout.NewManager(),
		actions:    action.NewQueue(),
	}
	a.keys.Store(keys)
	return a
}

// Sender returns the action send handle. Safe to hold from any goroutine.
func (a *App) Sender() action.Sender {
	return a.actions
}

// SwapKeymap atomically replaces the key-binding table. Used by the
// keymap file watcher.
func (a *App) SwapKeymap(t *keymap.Table) {
	a.keys.Store(t)
}

// Run drives the loop until Quit or context cancellation. The terminal is
// restored on every exit path.
func (a *App) Run(ctx context.Context) error {
	if err := a.backend.Init(); err != nil {
		return fmt.Errorf("init terminal: %w", err)
	}
	defer a.backend.Fini()
	defer a.actions.Close()

	for _, c := range a.components {
		c.RegisterSender(a.actions)
	}
	for _, c := range a.components {
		c.RegisterConfig(a.cfg)
	}
	for _, c := range a.components {
		if err := c.Init(); err != nil {
			return fmt.Errorf("init component %s: %w", c.Scene(), err)
		}
	}

	w, h := a.backend.Size()
	a.layouts.Init(w, h)
	a.backend.HideCursor()
	a.logger.Info(logging.CategoryApp, "started", map[string]any{"width": w, "height": h})

	source := NewSource(a.backend, a.cfg.TickRate, a.cfg.FrameRate)
	defer func() { source.Stop() }()

	for {
		ev, err := source.Next(ctx)
		if err != nil {
			return err
		}

		a.translate(ev)
		a.drain()

		if a.shouldSuspend {
			// Suspend/Resume keeps the screen alive, so the source and its
			// poll goroutine survive the cycle and Fini on the exit path
			// still restores the terminal.
			if err := a.backend.Suspend(); err != nil {
				return fmt.Errorf("release terminal: %w", err)
			}
			suspendProcess()
			if err := a.backend.Resume(); err != nil {
				return fmt.Errorf("reacquire terminal: %w", err)
			}
			a.backend.Sync()
			w, h := a.backend.Size()
			a.layouts.Update(w, h)
			a.actions.Send(action.Resume{})
			a.actions.Send(action.Render{})
			continue
		}
		if a.shouldQuit {
			a.logger.Info(logging.CategoryApp, "quit", nil)
			return nil
		}
	}
}

// translate turns one external event into immediate actions and forwards
// the raw event to the components.
func (a *App) translate(ev Event) {
	switch e := ev.(type) {
	case QuitEvent:
		a.actions.Send(action.Quit{})
	case TickEvent:
		a.actions.Send(action.Tick{})
	case RenderEvent:
		a.actions.Send(action.Render{})
	case InputEvent:
		switch in := e.Ev.(type) {
		case terminal.ResizeEvent:
			a.actions.Send(action.Resize{Width: in.Width, Height: in.Height})
		case terminal.KeyEvent:
			a.resolveBindings(in)
		}
		a.forwardEvent(e.Ev)
	}
}

// resolveBindings applies the key routing rules: nothing while the input
// bar is focused; Global bindings first, and if one fires the focused
// mode's table is not consulted for the same key; otherwise the focused
// mode's single-key table, then the rolling multi-key buffer, which Tick
// clears.
func (a *App) resolveBindings(ev terminal.KeyEvent) {
	current := a.focusStack.Current()
	if current.Scene == focus.SceneInputBar {
		return
	}

	key := keymap.FromEvent(ev)
	table := a.keys.Load()

	if act, ok := table.Lookup(focus.Global, []keymap.Key{key}); ok {
		a.sendBound(act)
		return
	}
	if act, ok := table.Lookup(current.Mode, []keymap.Key{key}); ok {
		a.sendBound(act)
		return
	}

	a.keyBuffer = append(a.keyBuffer, key)
	if act, ok := table.Lookup(current.Mode, a.keyBuffer); ok {
		a.keyBuffer = nil
		a.sendBound(act)
	}
}

func (a *App) sendBound(act action.Action) {
	a.logger.Debug(logging.CategoryAction, "keybinding", map[string]any{"action": action.Name(act)})
	a.actions.Send(act)
}

// forwardEvent hands the raw event to every component, honoring input-bar
// exclusivity: while an input session is active only Global components
// and the input bar itself see events.
func (a *App) forwardEvent(ev terminal.Event) {
	current := a.focusStack.Current()
	inputActive := current.Scene == focus.SceneInputBar

	for _, c := range a.components {
		if inputActive && c.Mode() != focus.Global && c.Scene() != focus.SceneInputBar {
			continue
		}
		for _, act := range component.Dispatch(c, ev, current) {
			a.actions.Send(act)
		}
	}
}

// drain empties the action queue: the orchestrator reacts first, then the
// same action goes to every component in registration order. Follow-up
// actions enqueue behind everything already queued, preserving order.
func (a *App) drain() {
	for {
		act, ok := a.actions.TryRecv()
		if !ok {
			return
		}

		if action.Loud(act) {
			a.logger.Debug(logging.CategoryAction, action.Name(act), nil)
		}

		switch v := act.(type) {
		case action.Tick:
			a.keyBuffer = nil
		case action.Quit:
			a.shouldQuit = true
		case action.Suspend:
			a.shouldSuspend = true
		case action.Resume:
			a.shouldSuspend = false
		case action.Resize:
			a.layouts.Update(v.Width, v.Height)
			a.render()
		case action.Render:
			a.render()
		case action.InputModeOn:
			a.focusStack.Push(focus.Focus{Mode: a.focusStack.Current().Mode, Scene: focus.SceneInputBar})
		case action.InputModeOff:
			a.focusStack.Pop()
		case action.FocusSwitch:
			a.focusStack.Push(v.Focus)
		case action.FocusBack:
			// The bottom element is the startup focus; back at the root is
			// a no-op, not an invariant violation.
			if a.focusStack.Depth() > 1 {
				a.focusStack.Pop()
			}
		case action.Error:
			a.logger.Error(logging.CategoryApp, v.Message, nil)
		}

		current := a.focusStack.Current()
		for _, c := range a.components {
			for _, followUp := range c.Update(act, current) {
				a.actions.Send(followUp)
			}
		}
	}
}

// render draws every component whose mode matches the current focus or is
// Global. A layout miss or a draw failure becomes an Error action; the
// rest of the pass continues.
func (a *App) render() {
	current := a.focusStack.Current()
	for _, c := range a.components {
		if c.Mode() != current.Mode && c.Mode() != focus.Global {
			continue
		}
		rect, err := a.layouts.Get(c.Scene())
		if err != nil {
			a.actions.Send(action.Error{Message: fmt.Sprintf("failed to get layout: %v", err)})
			continue
		}
		target := backend.NewSubTarget(a.backend, rect.X, rect.Y, rect.W, rect.H)
		if err := c.Draw(target, current); err != nil {
			a.actions.Send(action.Error{Message: fmt.Sprintf("failed to draw %s: %v", c.Scene(), err)})
		}
	}
	a.backend.Show()
}
