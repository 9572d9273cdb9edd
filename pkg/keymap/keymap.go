// Package keymap holds the key-binding tables: per mode, an ordered
// sequence of key presses maps to an action. Lookup is by exact sequence
// match; the runtime does not validate conflicts, the last parsed binding
// wins.
package keymap

import (
	"fmt"
	"strings"

	"github.com/odvcencio/stax/pkg/action"
	"github.com/odvcencio/stax/pkg/errors"
	"github.com/odvcencio/stax/pkg/focus"
	"github.com/odvcencio/stax/pkg/ui/terminal"
	"gopkg.in/yaml.v3"
)

// Key is one normalized key press, the unit of a binding sequence.
type Key struct {
	Key  terminal.Key
	Rune rune
	Alt  bool
	Ctrl bool
}

// FromEvent normalizes a terminal key event for table lookup. Shift is
// folded into the rune for printable keys, so it is not tracked
// separately.
func FromEvent(ev terminal.KeyEvent) Key {
	return Key{Key: ev.Key, Rune: ev.Rune, Alt: ev.Alt, Ctrl: ev.Ctrl}
}

func (k Key) String() string {
	var b strings.Builder
	if k.Ctrl {
		b.WriteString("ctrl+")
	}
	if k.Alt {
		b.WriteString("alt+")
	}
	if k.Key == terminal.KeyRune {
		b.WriteRune(k.Rune)
	} else {
		b.WriteString(keyName(k.Key))
	}
	return b.String()
}

// Table maps (mode, sequence) to an action.
type Table struct {
	bindings map[focus.Mode]map[string]action.Action
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{bindings: make(map[focus.Mode]map[string]action.Action)}
}

// Bind registers a sequence for a mode, replacing any previous binding.
func (t *Table) Bind(mode focus.Mode, seq []Key, a action.Action) {
	m, ok := t.bindings[mode]
	if !ok {
		m = make(map[string]action.Action)
		t.bindings[mode] = m
	}
	m[encode(seq)] = a
}

// Lookup finds an exact-sequence binding for the mode.
func (t *Table) Lookup(mode focus.Mode, seq []Key) (action.Action, bool) {
	m, ok := t.bindings[mode]
	if !ok {
		return nil, false
	}
	a, ok := m[encode(seq)]
	return a, ok
}

func encode(seq []Key) string {
	parts := make([]string, len(seq))
	for i, k := range seq {
		parts[i] = k.String()
	}
	return strings.Join(parts, " ")
}

// Default returns the built-in bindings. A user keymap file overrides on
// top of these.
func Default() *Table {
	t := NewTable()
	t.Bind(focus.Global, mustSequence("q"), action.Quit{})
	t.Bind(focus.Global, mustSequence("ctrl+c"), action.Quit{})
	t.Bind(focus.Global, mustSequence("ctrl+z"), action.Suspend{})
	t.Bind(focus.Global, mustSequence("?"), action.Help{})
	t.Bind(focus.Home, mustSequence("l"), action.FocusSwitch{
		Focus: focus.Focus{Mode: focus.Library, Scene: focus.SceneSongList},
	})
	t.Bind(focus.Home, mustSequence("d"), action.FocusSwitch{
		Focus: focus.Focus{Mode: focus.Search, Scene: focus.SceneSearchResults},
	})
	t.Bind(focus.Library, mustSequence("g g"), action.Help{})
	return t
}

func mustSequence(s string) []Key {
	seq, err := ParseSequence(s)
	if err != nil {
		panic(err)
	}
	return seq
}

// ParseSequence parses a space-separated key sequence such as "g g" or
// "ctrl+c".
func ParseSequence(s string) ([]Key, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return nil, fmt.Errorf("empty key sequence")
	}
	seq := make([]Key, 0, len(fields))
	for _, f := range fields {
		k, err := parseKey(f)
		if err != nil {
			return nil, err
		}
		seq = append(seq, k)
	}
	return seq, nil
}

func parseKey(s string) (Key, error) {
	var k Key
	rest := s
	for {
		switch {
		case strings.HasPrefix(rest, "ctrl+") && len(rest) > len("ctrl+"):
			k.Ctrl = true
			rest = rest[len("ctrl+"):]
		case strings.HasPrefix(rest, "alt+") && len(rest) > len("alt+"):
			k.Alt = true
			rest = rest[len("alt+"):]
		default:
			runes := []rune(rest)
			if len(runes) == 1 {
				k.Key = terminal.KeyRune
				k.Rune = runes[0]
				return k, nil
			}
			named, ok := namedKeys[rest]
			if !ok {
				return Key{}, fmt.Errorf("unknown key %q", rest)
			}
			k.Key = named
			return k, nil
		}
	}
}

var namedKeys = map[string]terminal.Key{
	"enter":     terminal.KeyEnter,
	"esc":       terminal.KeyEscape,
	"escape":    terminal.KeyEscape,
	"tab":       terminal.KeyTab,
	"backspace": terminal.KeyBackspace,
	"up":        terminal.KeyUp,
	"down":      terminal.KeyDown,
	"left":      terminal.KeyLeft,
	"right":     terminal.KeyRight,
	"home":      terminal.KeyHome,
	"end":       terminal.KeyEnd,
	"pgup":      terminal.KeyPageUp,
	"pgdn":      terminal.KeyPageDown,
	"delete":    terminal.KeyDelete,
}

func keyName(k terminal.Key) string {
	switch k {
	case terminal.KeyEnter:
		return "enter"
	case terminal.KeyEscape:
		return "esc"
	case terminal.KeyTab:
		return "tab"
	case terminal.KeyBackspace:
		return "backspace"
	case terminal.KeyUp:
		return "up"
	case terminal.KeyDown:
		return "down"
	case terminal.KeyLeft:
		return "left"
	case terminal.KeyRight:
		return "right"
	case terminal.KeyHome:
		return "home"
	case terminal.KeyEnd:
		return "end"
	case terminal.KeyPageUp:
		return "pgup"
	case terminal.KeyPageDown:
		return "pgdn"
	case terminal.KeyDelete:
		return "delete"
	default:
		return fmt.Sprintf("key(%d)", int(k))
	}
}

// actionByName maps the names usable in a keymap file to actions.
func actionByName(name string) (action.Action, error) {
	switch name {
	case "quit":
		return action.Quit{}, nil
	case "suspend":
		return action.Suspend{}, nil
	case "help":
		return action.Help{}, nil
	case "refresh":
		return action.Refresh{}, nil
	case "back":
		return action.FocusBack{}, nil
	case "focus_home":
		return action.FocusSwitch{Focus: focus.Focus{Mode: focus.Home, Scene: focus.SceneIntro}}, nil
	case "focus_search":
		return action.FocusSwitch{Focus: focus.Focus{Mode: focus.Search, Scene: focus.SceneSearchResults}}, nil
	case "focus_library":
		return action.FocusSwitch{Focus: focus.Focus{Mode: focus.Library, Scene: focus.SceneSongList}}, nil
	default:
		return nil, fmt.Errorf("unknown action %q", name)
	}
}

// ParseYAML merges bindings from a keymap document into t. The document is
// mode name -> sequence -> action name:
//
//	global:
//	  "ctrl+c": quit
//	library:
//	  "g g": help
func (t *Table) ParseYAML(data []byte) error {
	var doc map[string]map[string]string
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return errors.Wrap(errors.CodeConfigParse, "parse keymap", err)
	}
	for modeName, seqs := range doc {
		mode, err := focus.ParseMode(modeName)
		if err != nil {
			return errors.Wrap(errors.CodeConfigParse, "keymap mode", err)
		}
		for seqStr, actionName := range seqs {
			seq, err := ParseSequence(seqStr)
			if err != nil {
				return errors.Wrap(errors.CodeConfigParse, "keymap sequence", err)
			}
			a, err := actionByName(actionName)
			if err != nil {
				return errors.Wrap(errors.CodeConfigParse, "keymap action", err)
			}
			t.Bind(mode, seq, a)
		}
	}
	return nil
}
