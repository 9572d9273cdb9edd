package component

import (
	"fmt"

	"github.com/odvcencio/stax/pkg/action"
	"github.com/odvcencio/stax/pkg/focus"
	"github.com/odvcencio/stax/pkg/ui/backend"
	"github.com/odvcencio/stax/pkg/ui/terminal"
)

// SearchInputName correlates the search bar's input session with the
// components listening for its result.
const SearchInputName = "youtube_search"

// SearchBar shows the current query and opens an input session on `s`.
type SearchBar struct {
	Base

	query string
}

// NewSearchBar creates the search query box.
func NewSearchBar() *SearchBar {
	return &SearchBar{}
}

func (s *SearchBar) Scene() focus.Scene {
	return focus.SceneSearchBar
}

func (s *SearchBar) Mode() focus.Mode {
	return focus.Search
}

func (s *SearchBar) HandleKey(ev terminal.KeyEvent, f focus.Focus) []action.Action {
	if f.Mode != s.Mode() || ev.Ctrl || ev.Alt {
		return nil
	}
	if ev.Key == terminal.KeyRune && ev.Rune == 's' {
		return []action.Action{action.InputModeOn{
			Request: action.Request{Name: SearchInputName},
		}}
	}
	return nil
}

func (s *SearchBar) Update(a action.Action, _ focus.Focus) []action.Action {
	if off, ok := a.(action.InputModeOff); ok {
		if off.Result.Name != nil && *off.Result.Name == SearchInputName {
			s.query = off.Result.Buffer
		}
	}
	return nil
}

func (s *SearchBar) Draw(t backend.RenderTarget, f focus.Focus) error {
	// The input bar overlays this strip during an input session.
	if f.Scene == focus.SceneInputBar {
		return nil
	}

	fill(t, ' ', backend.DefaultStyle())
	drawBox(t, backend.DefaultStyle())
	drawString(t, 2, 0, " Search Query ", backend.DefaultStyle())

	text := "Press <s> to begin search"
	if s.query != "" {
		text = fmt.Sprintf("Searching for %s...", s.query)
	}
	inner := backend.NewSubTarget(t, 1, 1, mustInnerW(t), 1)
	drawString(inner, 0, 0, text, backend.DefaultStyle())
	return nil
}
