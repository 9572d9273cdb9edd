package component

import (
	"strings"

	"github.com/odvcencio/stax/pkg/action"
	"github.com/odvcencio/stax/pkg/focus"
	"github.com/odvcencio/stax/pkg/library"
	"github.com/odvcencio/stax/pkg/ui/backend"
	"github.com/odvcencio/stax/pkg/ui/terminal"
)

// songRow is one rendered library entry.
type songRow struct {
	song    library.Song
	artists string
}

// SongList browses the stored library. It re-reads the store on startup
// and whenever a LibraryReload or Refresh arrives.
type SongList struct {
	Base

	store    *library.Store
	rows     []songRow
	selected int
	loadErr  error
}

// NewSongList creates the library browser.
func NewSongList(store *library.Store) *SongList {
	return &SongList{store: store, selected: -1}
}

func (l *SongList) Scene() focus.Scene {
	return focus.SceneSongList
}

func (l *SongList) Mode() focus.Mode {
	return focus.Library
}

func (l *SongList) Init() error {
	l.reload()
	return nil
}

// Rows returns the loaded library entries.
func (l *SongList) Rows() int {
	return len(l.rows)
}

func (l *SongList) reload() {
	l.loadErr = nil
	l.rows = nil
	if l.store == nil {
		return
	}
	songs, err := l.store.Songs()
	if err != nil {
		l.loadErr = err
		return
	}
	for _, song := range songs {
		var names []string
		artists, err := l.store.ArtistsForSong(song.ID)
		if err == nil {
			for _, a := range artists {
				names = append(names, a.Name)
			}
		}
		l.rows = append(l.rows, songRow{song: song, artists: strings.Join(names, ", ")})
	}
	if l.selected >= len(l.rows) {
		l.selected = len(l.rows) - 1
	}
}

func (l *SongList) focused(f focus.Focus) bool {
	return f.Mode == l.Mode() && f.Scene == l.Scene()
}

func (l *SongList) HandleKey(ev terminal.KeyEvent, f focus.Focus) []action.Action {
	if !l.focused(f) || ev.Ctrl || ev.Alt {
		return nil
	}
	switch {
	case ev.Key == terminal.KeyDown, ev.Key == terminal.KeyRune && ev.Rune == 'j':
		if len(l.rows) > 0 {
			l.selected = (l.selected + 1) % len(l.rows)
		}
	case ev.Key == terminal.KeyUp, ev.Key == terminal.KeyRune && ev.Rune == 'k':
		if len(l.rows) > 0 {
			if l.selected <= 0 {
				l.selected = len(l.rows) - 1
			} else {
				l.selected--
			}
		}
	case ev.Key == terminal.KeyEscape:
		return []action.Action{action.FocusBack{}}
	}
	return nil
}

func (l *SongList) Update(a action.Action, _ focus.Focus) []action.Action {
	switch a.(type) {
	case action.LibraryReload, action.Refresh:
		l.reload()
		if l.loadErr != nil {
			return []action.Action{action.Error{Message: l.loadErr.Error()}}
		}
	}
	return nil
}

func (l *SongList) Draw(t backend.RenderTarget, f focus.Focus) error {
	fill(t, ' ', backend.DefaultStyle())
	w, h := t.Size()

	if l.loadErr != nil {
		drawString(t, 0, 0, truncate("library unavailable: "+l.loadErr.Error(), w), backend.DefaultStyle().Foreground(backend.ColorRed))
		return nil
	}
	if len(l.rows) == 0 {
		drawString(t, 0, 0, "Library is empty", backend.DefaultStyle().Dim(true))
		return nil
	}

	for n, row := range l.rows {
		if n >= h {
			break
		}
		line := row.song.Title
		if row.artists != "" {
			line += " - " + row.artists
		}
		style := backend.DefaultStyle()
		prefix := "  "
		if n == l.selected {
			prefix = ">>"
			style = style.Bold(true)
			if l.focused(f) {
				style = style.Foreground(backend.ColorYellow)
			}
		}
		drawString(t, 0, n, truncate(prefix+" "+line, w), style)
	}
	return nil
}
