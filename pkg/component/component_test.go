package component

import (
	"path/filepath"
	"testing"

	"github.com/mattn/go-runewidth"
	"github.com/odvcencio/stax/pkg/action"
	"github.com/odvcencio/stax/pkg/focus"
	"github.com/odvcencio/stax/pkg/library"
	"github.com/odvcencio/stax/pkg/provider"
	"github.com/odvcencio/stax/pkg/ui/backend"
	"github.com/odvcencio/stax/pkg/ui/terminal"
)

// gridTarget is an in-memory render surface for draw assertions.
type gridTarget struct {
	w, h  int
	cells map[[2]int]rune
}

func newGridTarget(w, h int) *gridTarget {
	return &gridTarget{w: w, h: h, cells: make(map[[2]int]rune)}
}

func (g *gridTarget) Size() (int, int) { return g.w, g.h }

func (g *gridTarget) SetContent(x, y int, mainc rune, _ []rune, _ backend.Style) {
	if x < 0 || x >= g.w || y < 0 || y >= g.h {
		return
	}
	g.cells[[2]int{x, y}] = mainc
}

func TestSearchBarOpensInputSession(t *testing.T) {
	bar := NewSearchBar()
	f := focus.Focus{Mode: focus.Search, Scene: focus.SceneSearchBar}

	acts := bar.HandleKey(terminal.KeyEvent{Key: terminal.KeyRune, Rune: 's'}, f)
	if len(acts) != 1 {
		t.Fatalf("expected one action, got %v", acts)
	}
	on, ok := acts[0].(action.InputModeOn)
	if !ok {
		t.Fatalf("expected InputModeOn, got %T", acts[0])
	}
	if on.Request.Name != "youtube_search" {
		t.Fatalf("expected name %q, got %q", "youtube_search", on.Request.Name)
	}
	if on.Request.Initial != nil {
		t.Fatalf("expected no initial value, got %v", *on.Request.Initial)
	}
}

func TestSearchBarIgnoresOtherModes(t *testing.T) {
	bar := NewSearchBar()
	f := focus.Focus{Mode: focus.Home, Scene: focus.SceneIntro}

	if acts := bar.HandleKey(terminal.KeyEvent{Key: terminal.KeyRune, Rune: 's'}, f); acts != nil {
		t.Fatalf("expected no actions outside search mode, got %v", acts)
	}
}

func TestSearchBarAdoptsQuery(t *testing.T) {
	bar := NewSearchBar()
	name := SearchInputName
	bar.Update(action.InputModeOff{
		Result: action.Result{Name: &name, Buffer: "suisei"},
	}, focus.Focus{Mode: focus.Search, Scene: focus.SceneSearchBar})

	if bar.query != "suisei" {
		t.Fatalf("expected adopted query, got %q", bar.query)
	}
}

func TestIntroEnterSwitchesToSearch(t *testing.T) {
	intro := NewIntro()
	f := focus.Focus{Mode: focus.Home, Scene: focus.SceneIntro}

	acts := intro.HandleKey(terminal.KeyEvent{Key: terminal.KeyEnter}, f)
	if len(acts) != 1 {
		t.Fatalf("expected one action, got %v", acts)
	}
	sw, ok := acts[0].(action.FocusSwitch)
	if !ok {
		t.Fatalf("expected FocusSwitch, got %T", acts[0])
	}
	want := focus.Focus{Mode: focus.Search, Scene: focus.SceneSearchResults}
	if sw.Focus != want {
		t.Fatalf("expected switch to %v, got %v", want, sw.Focus)
	}

	// Not focused: no reaction.
	other := focus.Focus{Mode: focus.Library, Scene: focus.SceneSongList}
	if acts := intro.HandleKey(terminal.KeyEvent{Key: terminal.KeyEnter}, other); acts != nil {
		t.Fatalf("expected no actions when unfocused, got %v", acts)
	}
}

func TestTitleBarStatusExpires(t *testing.T) {
	bar := NewTitleBar()
	f := focus.Focus{Mode: focus.Home, Scene: focus.SceneIntro}

	bar.Update(action.Error{Message: "boom"}, f)
	if bar.status != "boom" {
		t.Fatalf("expected status to adopt error, got %q", bar.status)
	}

	for i := 0; i < statusTicks; i++ {
		bar.Update(action.Tick{}, f)
	}
	if bar.status != "" {
		t.Fatalf("expected status cleared after %d ticks, got %q", statusTicks, bar.status)
	}
}

// Wide runes occupy two columns, so right alignment must measure display
// width, not rune count.
func TestTitleBarStatusRightAligned(t *testing.T) {
	bar := NewTitleBar()
	f := focus.Focus{Mode: focus.Home, Scene: focus.SceneIntro}

	msg := "エラー発生"
	bar.Update(action.Error{Message: msg}, f)

	g := newGridTarget(40, 1)
	if err := bar.Draw(g, f); err != nil {
		t.Fatalf("draw: %v", err)
	}

	x := g.w - runewidth.StringWidth(msg)
	for _, r := range msg {
		if got := g.cells[[2]int{x, 0}]; got != r {
			t.Fatalf("expected %q at column %d, got %q", r, x, got)
		}
		x += runewidth.RuneWidth(r)
	}
	if x != g.w {
		t.Fatalf("expected the status flush with the right edge, ended at %d of %d", x, g.w)
	}
}

func TestSearchDetailsFollowsSelection(t *testing.T) {
	details := NewSearchDetails()
	f := focus.Focus{Mode: focus.Search, Scene: focus.SceneSearchDetails}

	v := &provider.Video{ID: "v1", Title: "t"}
	details.Update(action.ShowDetails{Video: v}, f)
	if details.Video() != v {
		t.Fatalf("expected adopted video")
	}

	details.Update(action.ShowDetails{}, f)
	if details.Video() != nil {
		t.Fatalf("expected cleared video")
	}
}

func TestSongListReloads(t *testing.T) {
	store, err := library.Open(filepath.Join(t.TempDir(), "lib.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	list := NewSongList(store)
	if err := list.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}
	if list.Rows() != 0 {
		t.Fatalf("expected empty library, got %d rows", list.Rows())
	}

	if _, err := store.InsertSong(library.NewSong{Title: "one"}); err != nil {
		t.Fatalf("insert: %v", err)
	}
	f := focus.Focus{Mode: focus.Library, Scene: focus.SceneSongList}
	list.Update(action.LibraryReload{}, f)
	if list.Rows() != 1 {
		t.Fatalf("expected 1 row after reload, got %d", list.Rows())
	}
}

func TestDispatchRoutesByEventType(t *testing.T) {
	area := NewInputArea()
	area.Update(action.InputModeOn{Request: action.Request{Name: "x"}}, inputFocus)

	Dispatch(area, terminal.KeyEvent{Key: terminal.KeyRune, Rune: 'a'}, inputFocus)
	Dispatch(area, terminal.PasteEvent{Text: "bc"}, inputFocus)
	if area.Buffer() != "abc" {
		t.Fatalf("expected dispatch to reach both handlers, got %q", area.Buffer())
	}
}
