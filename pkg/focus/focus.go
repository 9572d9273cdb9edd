// Package focus models where the user currently is: a Mode names a
// top-level application area, a Scene names a concrete screen element, and
// a Focus pairs the two. A Stack keeps the navigation history.
package focus

import "fmt"

// Mode is a top-level application area. Global matches regardless of the
// active focus and is used by components that are always live (title bar,
// input bar) and by always-on key bindings.
type Mode int

const (
	Global Mode = iota
	Home
	Search
	Library
)

func (m Mode) String() string {
	switch m {
	case Global:
		return "global"
	case Home:
		return "home"
	case Search:
		return "search"
	case Library:
		return "library"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// ParseMode maps a configuration name to a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "global":
		return Global, nil
	case "home":
		return Home, nil
	case "search":
		return Search, nil
	case "library":
		return Library, nil
	default:
		return Global, fmt.Errorf("unknown mode %q", s)
	}
}

// Scene identifies a screen element with an assigned rectangle.
type Scene int

const (
	SceneIntro Scene = iota
	SceneSearchBar
	SceneSearchResults
	SceneSearchDetails
	SceneSongList
	SceneInputBar
	SceneTitleBar
)

func (s Scene) String() string {
	switch s {
	case SceneIntro:
		return "intro"
	case SceneSearchBar:
		return "search_bar"
	case SceneSearchResults:
		return "search_results"
	case SceneSearchDetails:
		return "search_details"
	case SceneSongList:
		return "song_list"
	case SceneInputBar:
		return "input_bar"
	case SceneTitleBar:
		return "title_bar"
	default:
		return fmt.Sprintf("scene(%d)", int(s))
	}
}

// Focus is the (Mode, Scene) pair identifying the active UI context.
// Compared structurally; passed by value everywhere outside the stack.
type Focus struct {
	Mode  Mode
	Scene Scene
}

func (f Focus) String() string {
	return f.Mode.String() + "/" + f.Scene.String()
}
