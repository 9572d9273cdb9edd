// Package tcell implements backend.Backend on top of gdamore/tcell.
package tcell

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/odvcencio/stax/pkg/ui/backend"
	"github.com/odvcencio/stax/pkg/ui/terminal"
)

// Backend drives a real terminal through a tcell screen.
type Backend struct {
	screen tcell.Screen

	inPaste     bool
	pasteBuffer strings.Builder
}

// New creates a backend for the attached terminal.
func New() (*Backend, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return &Backend{screen: screen}, nil
}

// NewWithScreen wraps an existing tcell screen. Used by the simulation
// backend.
func NewWithScreen(screen tcell.Screen) *Backend {
	return &Backend{screen: screen}
}

func (b *Backend) Init() error {
	if err := b.screen.Init(); err != nil {
		return err
	}
	b.screen.EnableMouse()
	b.screen.EnablePaste()
	return nil
}

func (b *Backend) Fini() {
	b.screen.Fini()
}

func (b *Backend) Suspend() error {
	return b.screen.Suspend()
}

func (b *Backend) Resume() error {
	return b.screen.Resume()
}

func (b *Backend) Size() (width, height int) {
	return b.screen.Size()
}

func (b *Backend) SetContent(x, y int, mainc rune, comb []rune, style backend.Style) {
	b.screen.SetContent(x, y, mainc, comb, convertStyle(style))
}

func (b *Backend) Show() {
	b.screen.Show()
}

func (b *Backend) Clear() {
	b.screen.Clear()
}

func (b *Backend) HideCursor() {
	b.screen.HideCursor()
}

func (b *Backend) ShowCursor(x, y int) {
	b.screen.ShowCursor(x, y)
}

// PollEvent blocks for the next event, collapsing bracketed paste
// sequences into a single PasteEvent.
func (b *Backend) PollEvent() terminal.Event {
	for {
		ev := b.screen.PollEvent()
		if ev == nil {
			return nil
		}

		switch e := ev.(type) {
		case *tcell.EventPaste:
			if e.Start() {
				b.inPaste = true
				b.pasteBuffer.Reset()
				continue
			}
			if e.End() {
				b.inPaste = false
				text := b.pasteBuffer.String()
				b.pasteBuffer.Reset()
				if text != "" {
					return terminal.PasteEvent{Text: text}
				}
				continue
			}

		case *tcell.EventKey:
			if b.inPaste {
				switch e.Key() {
				case tcell.KeyRune:
					b.pasteBuffer.WriteRune(e.Rune())
				case tcell.KeyEnter:
					b.pasteBuffer.WriteRune('\n')
				case tcell.KeyTab:
					b.pasteBuffer.WriteRune('\t')
				}
				continue
			}
		}

		if out := convertEvent(ev); out != nil {
			return out
		}
	}
}

func (b *Backend) PostEvent(ev terminal.Event) error {
	if tev := reverseConvertEvent(ev); tev != nil {
		return b.screen.PostEvent(tev)
	}
	return nil
}

func (b *Backend) Sync() {
	b.screen.Sync()
}

func convertStyle(s backend.Style) tcell.Style {
	fg, bg, attrs := s.Decompose()
	style := tcell.StyleDefault.
		Foreground(convertColor(fg)).
		Background(convertColor(bg))

	if attrs&backend.AttrBold != 0 {
		style = style.Bold(true)
	}
	if attrs&backend.AttrReverse != 0 {
		style = style.Reverse(true)
	}
	if attrs&backend.AttrUnderline != 0 {
		style = style.Underline(true)
	}
	if attrs&backend.AttrDim != 0 {
		style = style.Dim(true)
	}
	return style
}

func convertColor(c backend.Color) tcell.Color {
	if c == backend.ColorDefault {
		return tcell.ColorDefault
	}
	return tcell.PaletteColor(int(c))
}

func convertEvent(ev tcell.Event) terminal.Event {
	switch e := ev.(type) {
	case *tcell.EventKey:
		mods := e.Modifiers()
		ke := terminal.KeyEvent{
			Key:   convertKey(e.Key()),
			Alt:   mods&tcell.ModAlt != 0,
			Ctrl:  mods&tcell.ModCtrl != 0,
			Shift: mods&tcell.ModShift != 0,
		}
		if ke.Key == terminal.KeyRune {
			ke.Rune = e.Rune()
		}
		// tcell reports ctrl+letter as a dedicated key code; normalize to a
		// rune so the keymap can match "ctrl+c" style sequences.
		if k := e.Key(); k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
			ke.Key = terminal.KeyRune
			ke.Rune = rune('a' + (k - tcell.KeyCtrlA))
			ke.Ctrl = true
		}
		return ke
	case *tcell.EventResize:
		w, h := e.Size()
		return terminal.ResizeEvent{Width: w, Height: h}
	case *tcell.EventMouse:
		x, y := e.Position()
		me := terminal.MouseEvent{X: x, Y: y}
		switch {
		case e.Buttons()&tcell.Button1 != 0:
			me.Button = terminal.MouseLeft
		case e.Buttons()&tcell.Button2 != 0:
			me.Button = terminal.MouseMiddle
		case e.Buttons()&tcell.Button3 != 0:
			me.Button = terminal.MouseRight
		case e.Buttons()&tcell.WheelUp != 0:
			me.Button = terminal.MouseWheelUp
		case e.Buttons()&tcell.WheelDown != 0:
			me.Button = terminal.MouseWheelDown
		default:
			me.Button = terminal.MouseNone
			me.Action = terminal.MouseMove
		}
		return me
	}
	return nil
}

func convertKey(k tcell.Key) terminal.Key {
	switch k {
	case tcell.KeyRune:
		return terminal.KeyRune
	case tcell.KeyEnter:
		return terminal.KeyEnter
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return terminal.KeyBackspace
	case tcell.KeyTab:
		return terminal.KeyTab
	case tcell.KeyEscape:
		return terminal.KeyEscape
	case tcell.KeyUp:
		return terminal.KeyUp
	case tcell.KeyDown:
		return terminal.KeyDown
	case tcell.KeyLeft:
		return terminal.KeyLeft
	case tcell.KeyRight:
		return terminal.KeyRight
	case tcell.KeyHome:
		return terminal.KeyHome
	case tcell.KeyEnd:
		return terminal.KeyEnd
	case tcell.KeyPgUp:
		return terminal.KeyPageUp
	case tcell.KeyPgDn:
		return terminal.KeyPageDown
	case tcell.KeyDelete:
		return terminal.KeyDelete
	default:
		return terminal.KeyNone
	}
}

func reverseConvertKey(k terminal.Key) tcell.Key {
	switch k {
	case terminal.KeyRune:
		return tcell.KeyRune
	case terminal.KeyEnter:
		return tcell.KeyEnter
	case terminal.KeyBackspace:
		return tcell.KeyBackspace2
	case terminal.KeyTab:
		return tcell.KeyTab
	case terminal.KeyEscape:
		return tcell.KeyEscape
	case terminal.KeyUp:
		return tcell.KeyUp
	case terminal.KeyDown:
		return tcell.KeyDown
	case terminal.KeyLeft:
		return tcell.KeyLeft
	case terminal.KeyRight:
		return tcell.KeyRight
	case terminal.KeyHome:
		return tcell.KeyHome
	case terminal.KeyEnd:
		return tcell.KeyEnd
	case terminal.KeyPageUp:
		return tcell.KeyPgUp
	case terminal.KeyPageDown:
		return tcell.KeyPgDn
	case terminal.KeyDelete:
		return tcell.KeyDelete
	default:
		return tcell.KeyNUL
	}
}

func reverseConvertEvent(ev terminal.Event) tcell.Event {
	switch e := ev.(type) {
	case terminal.KeyEvent:
		var mods tcell.ModMask
		if e.Alt {
			mods |= tcell.ModAlt
		}
		if e.Ctrl {
			mods |= tcell.ModCtrl
		}
		if e.Shift {
			mods |= tcell.ModShift
		}
		return tcell.NewEventKey(reverseConvertKey(e.Key), e.Rune, mods)
	case terminal.ResizeEvent:
		return tcell.NewEventResize(e.Width, e.Height)
	}
	return nil
}
