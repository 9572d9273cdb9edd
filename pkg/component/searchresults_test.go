package component

import (
	"context"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/odvcencio/stax/pkg/action"
	"github.com/odvcencio/stax/pkg/focus"
	"github.com/odvcencio/stax/pkg/library"
	"github.com/odvcencio/stax/pkg/provider"
	"github.com/odvcencio/stax/pkg/ui/terminal"
)

var resultsFocus = focus.Focus{Mode: focus.Search, Scene: focus.SceneSearchResults}

// fakeSearcher resolves immediately with fixed results or an error.
type fakeSearcher struct {
	videos []provider.Video
	err    error
	calls  int
}

func (f *fakeSearcher) Search(_ context.Context, _ string) ([]provider.Video, error) {
	f.calls++
	return f.videos, f.err
}

func searchName() *string {
	n := SearchInputName
	return &n
}

// awaitOutcome ticks the component until the pending search resolves.
func awaitOutcome(t *testing.T, s *SearchResults) []action.Action {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		acts := s.Update(action.Tick{}, resultsFocus)
		if !s.Searching() {
			return acts
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("search did not resolve in time")
	return nil
}

func TestSearchLifecycle(t *testing.T) {
	want := []provider.Video{
		{ID: "v1", Title: "first"},
		{ID: "v2", Title: "second"},
		{ID: "v3", Title: "third"},
	}
	s := NewSearchResults(&fakeSearcher{videos: want}, nil)

	s.Update(action.InputModeOff{
		Result: action.Result{Name: searchName(), Buffer: "suisei"},
	}, resultsFocus)
	if !s.Searching() {
		t.Fatal("expected pending search after input mode off")
	}

	awaitOutcome(t, s)

	got := s.Results()
	if len(got) != 3 {
		t.Fatalf("expected 3 results, got %d", len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("result %d: expected %+v, got %+v", i, want[i], got[i])
		}
	}
}

func TestSearchFailureEmitsErrorAndClearsPending(t *testing.T) {
	s := NewSearchResults(&fakeSearcher{err: context.DeadlineExceeded}, nil)

	s.Update(action.InputModeOff{
		Result: action.Result{Name: searchName(), Buffer: "q"},
	}, resultsFocus)
	acts := awaitOutcome(t, s)

	if len(acts) != 1 {
		t.Fatalf("expected one action, got %v", acts)
	}
	errAct, ok := acts[0].(action.Error)
	if !ok {
		t.Fatalf("expected Error action, got %T", acts[0])
	}
	if !strings.Contains(errAct.Message, "search failed") {
		t.Fatalf("unexpected error message %q", errAct.Message)
	}
	if s.Searching() {
		t.Fatal("pending slot must be cleared after failure so retry works")
	}
}

func TestSearchIgnoresOtherInputNames(t *testing.T) {
	searcher := &fakeSearcher{}
	s := NewSearchResults(searcher, nil)

	other := "something_else"
	s.Update(action.InputModeOff{Result: action.Result{Name: &other, Buffer: "q"}}, resultsFocus)
	if s.Searching() {
		t.Fatal("search must not start for another component's input")
	}

	// Cancelled input (nil name) is ignored too.
	s.Update(action.InputModeOff{Result: action.Result{Buffer: "q"}}, resultsFocus)
	if s.Searching() || searcher.calls != 0 {
		t.Fatal("search must not start on cancelled input")
	}
}

func TestNewSearchReplacesPending(t *testing.T) {
	s := NewSearchResults(&fakeSearcher{videos: []provider.Video{{ID: "a"}}}, nil)

	s.Update(action.InputModeOff{Result: action.Result{Name: searchName(), Buffer: "one"}}, resultsFocus)
	first := s.pendingID
	s.Update(action.InputModeOff{Result: action.Result{Name: searchName(), Buffer: "two"}}, resultsFocus)

	if s.pendingID == first {
		t.Fatal("expected a fresh request id for the superseding request")
	}
	awaitOutcome(t, s)
	if len(s.Results()) != 1 {
		t.Fatalf("expected results from the second request, got %d", len(s.Results()))
	}
}

// gatedSearcher blocks each query until the test releases it, so outcome
// arrival order can be controlled.
type gatedSearcher struct {
	mu      sync.Mutex
	waiting map[string]chan []provider.Video
}

func newGatedSearcher() *gatedSearcher {
	return &gatedSearcher{waiting: make(map[string]chan []provider.Video)}
}

func (g *gatedSearcher) gate(query string) chan []provider.Video {
	g.mu.Lock()
	defer g.mu.Unlock()
	ch, ok := g.waiting[query]
	if !ok {
		ch = make(chan []provider.Video, 1)
		g.waiting[query] = ch
	}
	return ch
}

func (g *gatedSearcher) Search(_ context.Context, query string) ([]provider.Video, error) {
	return <-g.gate(query), nil
}

func (g *gatedSearcher) release(query string, videos []provider.Video) {
	g.gate(query) <- videos
}

func TestSupersededOutcomeDiscarded(t *testing.T) {
	g := newGatedSearcher()
	s := NewSearchResults(g, nil)

	s.Update(action.InputModeOff{Result: action.Result{Name: searchName(), Buffer: "one"}}, resultsFocus)
	s.Update(action.InputModeOff{Result: action.Result{Name: searchName(), Buffer: "two"}}, resultsFocus)

	// The abandoned first request finishes before the live one.
	g.release("one", []provider.Video{{ID: "stale"}})
	time.Sleep(50 * time.Millisecond)
	s.Update(action.Tick{}, resultsFocus)
	if !s.Searching() {
		t.Fatal("superseded outcome must not resolve the live request")
	}
	if len(s.Results()) != 0 {
		t.Fatalf("superseded results must be dropped, got %+v", s.Results())
	}

	g.release("two", []provider.Video{{ID: "fresh"}})
	awaitOutcome(t, s)
	got := s.Results()
	if len(got) != 1 || got[0].ID != "fresh" {
		t.Fatalf("expected the live request's results, got %+v", got)
	}
}

func TestSelectionNavigationEmitsDetails(t *testing.T) {
	s := NewSearchResults(&fakeSearcher{videos: []provider.Video{
		{ID: "a", Title: "A"}, {ID: "b", Title: "B"},
	}}, nil)
	s.Update(action.InputModeOff{Result: action.Result{Name: searchName(), Buffer: "q"}}, resultsFocus)
	awaitOutcome(t, s)

	down := terminal.KeyEvent{Key: terminal.KeyRune, Rune: 'j'}
	acts := s.HandleKey(down, resultsFocus)
	if len(acts) != 1 {
		t.Fatalf("expected one action, got %v", acts)
	}
	show, ok := acts[0].(action.ShowDetails)
	if !ok || show.Video == nil || show.Video.ID != "a" {
		t.Fatalf("expected details for a, got %+v", acts[0])
	}

	acts = s.HandleKey(down, resultsFocus)
	show = acts[0].(action.ShowDetails)
	if show.Video == nil || show.Video.ID != "b" {
		t.Fatalf("expected details for b, got %+v", show.Video)
	}

	// Wraps back to the top.
	acts = s.HandleKey(down, resultsFocus)
	show = acts[0].(action.ShowDetails)
	if show.Video == nil || show.Video.ID != "a" {
		t.Fatalf("expected wraparound to a, got %+v", show.Video)
	}

	// Escape unselects first, then pops focus.
	acts = s.HandleKey(terminal.KeyEvent{Key: terminal.KeyEscape}, resultsFocus)
	if _, ok := acts[0].(action.ShowDetails); !ok {
		t.Fatalf("expected details clear, got %+v", acts[0])
	}
	acts = s.HandleKey(terminal.KeyEvent{Key: terminal.KeyEscape}, resultsFocus)
	if _, ok := acts[0].(action.FocusBack); !ok {
		t.Fatalf("expected focus back, got %+v", acts[0])
	}
}

func TestEnterStoresSelectionInLibrary(t *testing.T) {
	store, err := library.Open(filepath.Join(t.TempDir(), "lib.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	s := NewSearchResults(&fakeSearcher{videos: []provider.Video{
		{ID: "v1", Title: "Stellar Stellar", Channel: "Suisei Ch.", Album: "Still Still Stellar"},
	}}, store)
	s.Update(action.InputModeOff{Result: action.Result{Name: searchName(), Buffer: "q"}}, resultsFocus)
	awaitOutcome(t, s)

	s.HandleKey(terminal.KeyEvent{Key: terminal.KeyRune, Rune: 'j'}, resultsFocus)
	acts := s.HandleKey(terminal.KeyEvent{Key: terminal.KeyEnter}, resultsFocus)
	if len(acts) != 1 {
		t.Fatalf("expected one action, got %v", acts)
	}
	if _, ok := acts[0].(action.LibraryReload); !ok {
		t.Fatalf("expected LibraryReload, got %T", acts[0])
	}

	songs, err := store.Songs()
	if err != nil {
		t.Fatalf("list songs: %v", err)
	}
	if len(songs) != 1 || songs[0].Title != "Stellar Stellar" {
		t.Fatalf("expected stored song, got %+v", songs)
	}
	artists, err := store.ArtistsForSong(songs[0].ID)
	if err != nil {
		t.Fatalf("artists: %v", err)
	}
	if len(artists) != 1 || artists[0].Name != "Suisei Ch." {
		t.Fatalf("expected channel used as artist fallback, got %+v", artists)
	}
}

func TestUnfocusedKeysIgnored(t *testing.T) {
	s := NewSearchResults(&fakeSearcher{videos: []provider.Video{{ID: "a"}}}, nil)
	s.Update(action.InputModeOff{Result: action.Result{Name: searchName(), Buffer: "q"}}, resultsFocus)
	awaitOutcome(t, s)

	elsewhere := focus.Focus{Mode: focus.Home, Scene: focus.SceneIntro}
	acts := s.HandleKey(terminal.KeyEvent{Key: terminal.KeyRune, Rune: 'j'}, elsewhere)
	if acts != nil {
		t.Fatalf("expected no actions when unfocused, got %v", acts)
	}
}
