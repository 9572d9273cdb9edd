package component

import (
	"github.com/odvcencio/stax/pkg/action"
	"github.com/odvcencio/stax/pkg/focus"
	"github.com/odvcencio/stax/pkg/ui/backend"
	"github.com/odvcencio/stax/pkg/ui/terminal"
)

// InputArea is the shared text entry field at the bottom of the screen.
// It is inert until an InputModeOn names it; Enter reports the buffer
// under that name, Escape reports a cancellation.
type InputArea struct {
	Base

	name     string
	active   bool
	buffer   []rune
	position int
}

// NewInputArea creates the input bar.
func NewInputArea() *InputArea {
	return &InputArea{}
}

func (i *InputArea) Scene() focus.Scene {
	return focus.SceneInputBar
}

func (i *InputArea) Mode() focus.Mode {
	return focus.Global
}

// Buffer returns the current buffer contents.
func (i *InputArea) Buffer() string {
	return string(i.buffer)
}

func (i *InputArea) focused(f focus.Focus) bool {
	return f.Scene == focus.SceneInputBar
}

func (i *InputArea) HandleKey(ev terminal.KeyEvent, f focus.Focus) []action.Action {
	if !i.focused(f) || ev.Ctrl || ev.Alt {
		return nil
	}

	switch ev.Key {
	case terminal.KeyRune:
		i.insert(ev.Rune)
	case terminal.KeyEnter:
		name := i.name
		i.active = false
		return []action.Action{action.InputModeOff{
			Result: action.Result{Name: &name, Buffer: string(i.buffer)},
		}}
	case terminal.KeyEscape:
		i.active = false
		return []action.Action{action.InputModeOff{Result: action.Result{}}}
	case terminal.KeyLeft:
		if i.position > 0 {
			i.position--
		}
	case terminal.KeyRight:
		if i.position < len(i.buffer) {
			i.position++
		}
	case terminal.KeyHome:
		i.position = 0
	case terminal.KeyEnd:
		i.position = len(i.buffer)
	case terminal.KeyBackspace:
		if i.position > 0 {
			i.buffer = append(i.buffer[:i.position-1], i.buffer[i.position:]...)
			i.position--
		}
	case terminal.KeyDelete:
		if i.position < len(i.buffer) {
			i.buffer = append(i.buffer[:i.position], i.buffer[i.position+1:]...)
		}
	}
	return nil
}

// HandleEvent inserts bracketed paste content at the cursor.
func (i *InputArea) HandleEvent(ev terminal.Event, f focus.Focus) []action.Action {
	if !i.focused(f) {
		return nil
	}
	if paste, ok := ev.(terminal.PasteEvent); ok {
		for _, r := range paste.Text {
			if r == '\n' || r == '\r' {
				continue
			}
			i.insert(r)
		}
	}
	return nil
}

func (i *InputArea) insert(r rune) {
	i.buffer = append(i.buffer[:i.position], append([]rune{r}, i.buffer[i.position:]...)...)
	i.position++
}

func (i *InputArea) Update(a action.Action, _ focus.Focus) []action.Action {
	if on, ok := a.(action.InputModeOn); ok {
		i.name = on.Request.Name
		i.active = true
		if on.Request.Initial != nil {
			i.buffer = []rune(*on.Request.Initial)
		} else {
			i.buffer = nil
		}
		i.position = len(i.buffer)
	}
	return nil
}

func (i *InputArea) Draw(t backend.RenderTarget, f focus.Focus) error {
	if !i.active {
		return nil
	}

	fill(t, ' ', backend.DefaultStyle())
	borderStyle := backend.DefaultStyle()
	if i.focused(f) {
		borderStyle = borderStyle.Foreground(backend.ColorYellow)
	}
	drawBox(t, borderStyle)
	drawString(t, 2, 0, " "+i.name+" ", borderStyle)

	inner := backend.NewSubTarget(t, 1, 1, mustInnerW(t), 1)
	drawString(inner, 0, 0, string(i.buffer), backend.DefaultStyle())
	if i.focused(f) {
		// Cursor rendered as a reversed cell.
		cur := ' '
		if i.position < len(i.buffer) {
			cur = i.buffer[i.position]
		}
		inner.SetContent(i.position, 0, cur, nil, backend.DefaultStyle().Reverse(true))
	}
	return nil
}

func mustInnerW(t backend.RenderTarget) int {
	w, _ := t.Size()
	if w < 2 {
		return 0
	}
	return w - 2
}
