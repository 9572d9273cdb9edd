package component

import (
	"github.com/odvcencio/stax/pkg/action"
	"github.com/odvcencio/stax/pkg/focus"
	"github.com/odvcencio/stax/pkg/provider"
	"github.com/odvcencio/stax/pkg/ui/backend"
)

// SearchDetails renders the metadata of the currently selected search
// result.
type SearchDetails struct {
	Base

	video *provider.Video
}

// NewSearchDetails creates the details panel.
func NewSearchDetails() *SearchDetails {
	return &SearchDetails{}
}

func (d *SearchDetails) Scene() focus.Scene {
	return focus.SceneSearchDetails
}

func (d *SearchDetails) Mode() focus.Mode {
	return focus.Search
}

// Video returns the currently shown video, if any.
func (d *SearchDetails) Video() *provider.Video {
	return d.video
}

func (d *SearchDetails) Update(a action.Action, _ focus.Focus) []action.Action {
	if show, ok := a.(action.ShowDetails); ok {
		d.video = show.Video
	}
	return nil
}

func (d *SearchDetails) Draw(t backend.RenderTarget, _ focus.Focus) error {
	fill(t, ' ', backend.DefaultStyle())
	if d.video == nil {
		drawString(t, 1, 0, "Nothing to display yet", backend.DefaultStyle().Dim(true))
		return nil
	}

	drawStringCentered(t, 0, "Details", backend.DefaultStyle().Bold(true))

	w, _ := t.Size()
	rows := []struct {
		label string
		value string
	}{
		{"Id", d.video.ID},
		{"Title", d.video.Title},
		{"Channel", d.video.Channel},
		{"Artist", d.video.Artist},
		{"Album", d.video.Album},
		{"Genre", d.video.Genre},
	}
	for n, row := range rows {
		value := row.value
		if value == "" {
			value = "Unknown"
		}
		drawString(t, 1, 1+n, truncate(row.label+": "+value, w-2), backend.DefaultStyle())
	}
	return nil
}
