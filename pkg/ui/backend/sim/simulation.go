// Package sim provides a simulation backend for tests. It runs the real
// tcell conversion path against an in-memory screen and lets tests inject
// input and capture frames.
package sim

import (
	"strings"
	"sync"

	tcellv2 "github.com/gdamore/tcell/v2"
	"github.com/odvcencio/stax/pkg/ui/backend/tcell"
	"github.com/odvcencio/stax/pkg/ui/terminal"
)

// Backend is a backend.Backend over tcell's SimulationScreen.
type Backend struct {
	*tcell.Backend
	screen tcellv2.SimulationScreen
	width  int
	height int
	mu     sync.Mutex
}

// New creates a simulation backend with the given dimensions.
func New(width, height int) *Backend {
	screen := tcellv2.NewSimulationScreen("")
	return &Backend{
		Backend: tcell.NewWithScreen(screen),
		screen:  screen,
		width:   width,
		height:  height,
	}
}

// Init initializes the screen. The simulation screen resets to its own
// default size on Init, so the requested size is applied afterwards.
func (s *Backend) Init() error {
	if err := s.Backend.Init(); err != nil {
		return err
	}
	s.mu.Lock()
	s.screen.SetSize(s.width, s.height)
	s.mu.Unlock()
	return nil
}

// InjectKey injects a key event.
func (s *Backend) InjectKey(key terminal.Key, r rune) {
	_ = s.PostEvent(terminal.KeyEvent{Key: key, Rune: r})
}

// InjectKeyRune injects a printable character press.
func (s *Backend) InjectKeyRune(r rune) {
	s.InjectKey(terminal.KeyRune, r)
}

// InjectKeyString injects a string one keypress at a time.
func (s *Backend) InjectKeyString(str string) {
	for _, r := range str {
		s.InjectKeyRune(r)
	}
}

// InjectResize resizes the simulated screen and posts the resize event.
func (s *Backend) InjectResize(width, height int) {
	s.mu.Lock()
	s.width, s.height = width, height
	s.screen.SetSize(width, height)
	s.mu.Unlock()
	_ = s.PostEvent(terminal.ResizeEvent{Width: width, Height: height})
}

// Capture renders the current screen contents as newline-joined rows.
func (s *Backend) Capture() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, h := s.screen.Size()
	var lines []string
	for y := 0; y < h; y++ {
		var line strings.Builder
		for x := 0; x < w; x++ {
			mainc, comb, _, _ := s.screen.GetContent(x, y)
			if mainc == 0 {
				mainc = ' '
			}
			line.WriteRune(mainc)
			for _, c := range comb {
				line.WriteRune(c)
			}
		}
		lines = append(lines, line.String())
	}
	return strings.Join(lines, "\n")
}

// CaptureRow returns a single screen row as a string.
func (s *Backend) CaptureRow(y int) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, _ := s.screen.Size()
	var line strings.Builder
	for x := 0; x < w; x++ {
		mainc, _, _, _ := s.screen.GetContent(x, y)
		if mainc == 0 {
			mainc = ' '
		}
		line.WriteRune(mainc)
	}
	return line.String()
}
