package component

import (
	"github.com/odvcencio/stax/pkg/action"
	"github.com/odvcencio/stax/pkg/focus"
	"github.com/odvcencio/stax/pkg/ui/backend"
	"github.com/odvcencio/stax/pkg/ui/terminal"
)

// Intro is the landing screen.
type Intro struct {
	Base
}

// NewIntro creates the intro screen.
func NewIntro() *Intro {
	return &Intro{}
}

func (i *Intro) Scene() focus.Scene {
	return focus.SceneIntro
}

func (i *Intro) Mode() focus.Mode {
	return focus.Home
}

func (i *Intro) HandleKey(ev terminal.KeyEvent, f focus.Focus) []action.Action {
	if f.Mode != i.Mode() || f.Scene != i.Scene() {
		return nil
	}
	if ev.Key == terminal.KeyEnter {
		return []action.Action{action.FocusSwitch{
			Focus: focus.Focus{Mode: focus.Search, Scene: focus.SceneSearchResults},
		}}
	}
	return nil
}

func (i *Intro) Draw(t backend.RenderTarget, _ focus.Focus) error {
	fill(t, ' ', backend.DefaultStyle())
	drawBox(t, backend.DefaultStyle())

	_, h := t.Size()
	mid := h / 2
	lines := []string{
		"Welcome to stax",
		"",
		"Press <Enter> to search for new tracks",
		"Press <l> to browse the library",
		"Press <q> to exit at any time",
	}
	start := mid - len(lines)/2
	for n, line := range lines {
		drawStringCentered(t, start+n, line, backend.DefaultStyle())
	}
	return nil
}
