package component

import (
	"context"
	"fmt"

	"github.com/odvcencio/stax/pkg/action"
	"github.com/odvcencio/stax/pkg/config"
	"github.com/odvcencio/stax/pkg/errors"
	"github.com/odvcencio/stax/pkg/focus"
	"github.com/odvcencio/stax/pkg/library"
	"github.com/odvcencio/stax/pkg/provider"
	"github.com/odvcencio/stax/pkg/ui/backend"
	"github.com/odvcencio/stax/pkg/ui/terminal"
	"github.com/oklog/ulid/v2"
)

// searchOutcome is the single value a background search delivers. The id
// ties it back to the request that produced it.
type searchOutcome struct {
	id     string
	videos []provider.Video
	err    error
}

// SearchResults runs catalog searches and lists their results. It owns at
// most one in-flight search at a time; submitting a new one abandons
// interest in the old result.
type SearchResults struct {
	Base

	searcher provider.Searcher
	store    *library.Store
	cfg      *config.Config

	query    string
	videos   []provider.Video
	selected int

	outcomes  chan searchOutcome
	pendingID string
}

// NewSearchResults creates the results list.
func NewSearchResults(searcher provider.Searcher, store *library.Store) *SearchResults {
	return &SearchResults{
		searcher: searcher,
		store:    store,
		selected: -1,
		outcomes: make(chan searchOutcome, 8),
	}
}

func (s *SearchResults) Scene() focus.Scene {
	return focus.SceneSearchResults
}

func (s *SearchResults) Mode() focus.Mode {
	return focus.Search
}

func (s *SearchResults) RegisterConfig(cfg *config.Config) {
	s.cfg = cfg
}

// Searching reports whether a search is in flight.
func (s *SearchResults) Searching() bool {
	return s.pendingID != ""
}

// Results returns the current result rows.
func (s *SearchResults) Results() []provider.Video {
	return s.videos
}

func (s *SearchResults) focused(f focus.Focus) bool {
	return f.Mode == s.Mode() && f.Scene == s.Scene()
}

func (s *SearchResults) HandleKey(ev terminal.KeyEvent, f focus.Focus) []action.Action {
	if !s.focused(f) || ev.Ctrl || ev.Alt {
		return nil
	}

	switch {
	case ev.Key == terminal.KeyDown, ev.Key == terminal.KeyRune && ev.Rune == 'j':
		s.selectNext()
		return []action.Action{action.ShowDetails{Video: s.selectedVideo()}}
	case ev.Key == terminal.KeyUp, ev.Key == terminal.KeyRune && ev.Rune == 'k':
		s.selectPrev()
		return []action.Action{action.ShowDetails{Video: s.selectedVideo()}}
	case ev.Key == terminal.KeyEscape:
		if s.selected >= 0 {
			s.selected = -1
			return []action.Action{action.ShowDetails{}}
		}
		return []action.Action{action.FocusBack{}, action.ShowDetails{}}
	case ev.Key == terminal.KeyEnter:
		if v := s.selectedVideo(); v != nil {
			if err := s.saveToLibrary(*v); err != nil {
				return []action.Action{action.Error{Message: err.Error()}}
			}
			return []action.Action{action.LibraryReload{}}
		}
	}
	return nil
}

func (s *SearchResults) Update(a action.Action, _ focus.Focus) []action.Action {
	switch act := a.(type) {
	case action.Tick:
		return s.poll()
	case action.InputModeOff:
		if act.Result.Name != nil && *act.Result.Name == SearchInputName {
			s.begin(act.Result.Buffer)
		}
	}
	return nil
}

// begin starts a background search, replacing any in-flight one. The
// superseded task keeps running, but its outcome carries a stale id and
// poll drops it when it lands.
func (s *SearchResults) begin(query string) {
	s.query = query

	timeout := config.DefaultProviderTimeout
	if s.cfg != nil {
		timeout = s.cfg.Provider.Timeout
	}

	id := ulid.Make().String()
	s.pendingID = id

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		videos, err := s.searcher.Search(ctx, query)
		select {
		case s.outcomes <- searchOutcome{id: id, videos: videos, err: err}:
		default:
		}
	}()
}

// poll drains delivered outcomes without blocking. Runs once per tick, so
// a stalled search never stalls the loop. Only the outcome matching the
// live request id is adopted.
func (s *SearchResults) poll() []action.Action {
	for {
		select {
		case outcome := <-s.outcomes:
			if outcome.id != s.pendingID {
				continue
			}
			s.pendingID = ""
			if outcome.err != nil {
				return []action.Action{action.Error{Message: fmt.Sprintf("search failed: %v", outcome.err)}}
			}
			s.videos = outcome.videos
			s.selected = -1
			return nil
		default:
			return nil
		}
	}
}

func (s *SearchResults) selectedVideo() *provider.Video {
	if s.selected < 0 || s.selected >= len(s.videos) {
		return nil
	}
	v := s.videos[s.selected]
	return &v
}

func (s *SearchResults) selectNext() {
	if len(s.videos) == 0 {
		return
	}
	if s.selected < 0 || s.selected >= len(s.videos)-1 {
		s.selected = 0
		return
	}
	s.selected++
}

func (s *SearchResults) selectPrev() {
	if len(s.videos) == 0 {
		return
	}
	if s.selected <= 0 {
		s.selected = len(s.videos) - 1
		return
	}
	s.selected--
}

// saveToLibrary records the video as a song with its metadata upserted by
// name and linked through the association tables.
func (s *SearchResults) saveToLibrary(v provider.Video) error {
	if s.store == nil {
		return errors.New(errors.CodeLibraryWrite, "no library store")
	}

	title := v.Title
	if title == "" {
		title = v.ID
	}
	source := "catalog"
	songID, err := s.store.InsertSong(library.NewSong{
		Title:     title,
		Source:    &source,
		CatalogID: &v.ID,
	})
	if err != nil {
		return err
	}

	artist := v.Artist
	if artist == "" {
		artist = v.Channel
	}
	if artist != "" {
		artistID, err := s.store.UpsertArtist(artist)
		if err != nil {
			return err
		}
		if err := s.store.LinkSongArtist(songID, artistID); err != nil {
			return err
		}
	}
	if v.Album != "" {
		albumID, err := s.store.UpsertAlbum(v.Album)
		if err != nil {
			return err
		}
		if err := s.store.LinkSongAlbum(songID, albumID); err != nil {
			return err
		}
	}
	if v.Genre != "" {
		genreID, err := s.store.UpsertGenre(v.Genre)
		if err != nil {
			return err
		}
		if err := s.store.LinkSongGenre(songID, genreID); err != nil {
			return err
		}
	}
	return nil
}

func (s *SearchResults) Draw(t backend.RenderTarget, f focus.Focus) error {
	fill(t, ' ', backend.DefaultStyle())
	w, h := t.Size()

	// Right-edge divider between results and details.
	for y := 0; y < h; y++ {
		t.SetContent(w-1, y, '│', nil, backend.DefaultStyle().Dim(true))
	}

	switch {
	case s.pendingID != "":
		drawString(t, 0, 0, "Searching...", backend.DefaultStyle().Dim(true))
	case len(s.videos) == 0:
		drawString(t, 0, 0, "Nothing searched yet", backend.DefaultStyle().Dim(true))
	default:
		for n, v := range s.videos {
			if n >= h {
				break
			}
			title := v.Title
			if title == "" {
				title = "Unknown"
			}
			style := backend.DefaultStyle()
			prefix := "  "
			if n == s.selected {
				prefix = ">>"
				style = style.Bold(true)
				if s.focused(f) {
					style = style.Foreground(backend.ColorYellow)
				}
			}
			drawString(t, 0, n, truncate(prefix+" "+title, w-1), style)
		}
	}
	return nil
}
