// Package layout maps scenes to screen rectangles. Components never
// compute their own geometry; they ask the manager for the rect assigned
// to their scene and draw inside it.
package layout

import (
	"github.com/odvcencio/stax/pkg/errors"
	"github.com/odvcencio/stax/pkg/focus"
)

const (
	titleHeight = 1
	inputHeight = 3
)

// Rect is a screen rectangle in cell coordinates.
type Rect struct {
	X, Y, W, H int
}

// Orientation is derived from the screen aspect ratio and decides whether
// side-by-side panels split horizontally or stack vertically.
type Orientation int

const (
	Landscape Orientation = iota
	Portrait
)

// Manager owns the scene-to-rect store. The whole store is rebuilt on
// every size change; the build is cheap enough that incremental patching
// is not worth the bookkeeping.
type Manager struct {
	screenW     int
	screenH     int
	orientation Orientation
	store       map[focus.Scene]Rect
}

// NewManager creates an empty manager. Init must run before Get.
func NewManager() *Manager {
	return &Manager{store: make(map[focus.Scene]Rect)}
}

// Init performs the first build for the given screen size.
func (m *Manager) Init(width, height int) {
	m.Update(width, height)
}

// Update records a new screen size and rebuilds every layout. Calling it
// twice with the same size yields an identical store.
func (m *Manager) Update(width, height int) {
	m.screenW = width
	m.screenH = height
	if width < height {
		m.orientation = Portrait
	} else {
		m.orientation = Landscape
	}
	m.build()
}

// Orientation returns the current orientation.
func (m *Manager) Orientation() Orientation {
	return m.orientation
}

// Get returns the rect for a scene. Unknown scenes are an explicit error:
// callers skip drawing and report rather than drawing into a default rect.
func (m *Manager) Get(scene focus.Scene) (Rect, error) {
	r, ok := m.store[scene]
	if !ok {
		return Rect{}, errors.Newf(errors.CodeLayoutResolve, "no layout for scene %s", scene)
	}
	return r, nil
}

func (m *Manager) build() {
	m.store = make(map[focus.Scene]Rect)

	middleH := m.screenH - titleHeight - inputHeight
	if middleH < 0 {
		middleH = 0
	}
	title := Rect{X: 0, Y: 0, W: m.screenW, H: titleHeight}
	middle := Rect{X: 0, Y: titleHeight, W: m.screenW, H: middleH}
	input := Rect{X: 0, Y: titleHeight + middleH, W: m.screenW, H: m.screenH - titleHeight - middleH}

	// Strips present on every screen.
	m.store[focus.SceneTitleBar] = title
	m.store[focus.SceneInputBar] = input

	// Single-panel modes take the middle wholesale.
	m.store[focus.SceneIntro] = middle
	m.store[focus.SceneSongList] = middle

	m.buildSearch(middle, input)
}

// buildSearch lays out the two search panels across the middle region.
// The query box shares the input strip; while an input session is active
// the input bar draws over it.
func (m *Manager) buildSearch(middle, input Rect) {
	m.store[focus.SceneSearchBar] = input

	if m.orientation == Portrait {
		topH := middle.H / 2
		m.store[focus.SceneSearchResults] = Rect{X: middle.X, Y: middle.Y, W: middle.W, H: topH}
		m.store[focus.SceneSearchDetails] = Rect{X: middle.X, Y: middle.Y + topH, W: middle.W, H: middle.H - topH}
		return
	}

	leftW := middle.W / 2
	m.store[focus.SceneSearchResults] = Rect{X: middle.X, Y: middle.Y, W: leftW, H: middle.H}
	m.store[focus.SceneSearchDetails] = Rect{X: middle.X + leftW, Y: middle.Y, W: middle.W - leftW, H: middle.H}
}
