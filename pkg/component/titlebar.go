package component

import (
	"github.com/mattn/go-runewidth"
	"github.com/odvcencio/stax/pkg/action"
	"github.com/odvcencio/stax/pkg/focus"
	"github.com/odvcencio/stax/pkg/ui/backend"
)

// statusTicks is how many ticks an error message stays visible.
const statusTicks = 12

// TitleBar renders the application name and surfaces the most recent
// error in the status area for a short while.
type TitleBar struct {
	Base

	status     string
	statusLeft int
}

// NewTitleBar creates the title bar.
func NewTitleBar() *TitleBar {
	return &TitleBar{}
}

func (t *TitleBar) Scene() focus.Scene {
	return focus.SceneTitleBar
}

func (t *TitleBar) Mode() focus.Mode {
	return focus.Global
}

func (t *TitleBar) Update(a action.Action, _ focus.Focus) []action.Action {
	switch act := a.(type) {
	case action.Error:
		t.status = act.Message
		t.statusLeft = statusTicks
	case action.Tick:
		if t.statusLeft > 0 {
			t.statusLeft--
			if t.statusLeft == 0 {
				t.status = ""
			}
		}
	}
	return nil
}

func (t *TitleBar) Draw(target backend.RenderTarget, f focus.Focus) error {
	fill(target, ' ', backend.DefaultStyle())
	x := drawString(target, 0, 0, "stax", backend.DefaultStyle().Bold(true))
	drawString(target, x+2, 0, f.String(), backend.DefaultStyle().Dim(true))
	if t.status != "" {
		w, _ := target.Size()
		msg := truncate(t.status, w/2)
		drawString(target, w-runewidth.StringWidth(msg), 0, msg, backend.DefaultStyle().Foreground(backend.ColorRed))
	}
	return nil
}
