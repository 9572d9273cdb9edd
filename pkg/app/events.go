package app

import (
	"context"
	"time"

	"github.com/odvcencio/stax/pkg/ui/backend"
	"github.com/odvcencio/stax/pkg/ui/terminal"
)

// Event is one item in the loop's external event stream.
type Event interface {
	appEventMarker()
}

// TickEvent paces input housekeeping and background polling.
type TickEvent struct{}

// RenderEvent paces frames.
type RenderEvent struct{}

// QuitEvent means the backend is gone and the loop must stop.
type QuitEvent struct{}

// InputEvent wraps a terminal input event.
type InputEvent struct {
	Ev terminal.Event
}

func (TickEvent) appEventMarker()   {}
func (RenderEvent) appEventMarker() {}
func (QuitEvent) appEventMarker()   {}
func (InputEvent) appEventMarker()  {}

// Source multiplexes terminal input with the tick and frame timers into a
// single stream. It is not restartable: after Stop a new Source is made
// (suspend/resume does exactly that).
type Source struct {
	backend   backend.Backend
	tickRate  time.Duration
	frameRate time.Duration

	events chan Event
	done   chan struct{}
}

// NewSource creates and starts a source over the given backend.
func NewSource(b backend.Backend, tickRate, frameRate time.Duration) *Source {
	s := &Source{
		backend:   b,
		tickRate:  tickRate,
		frameRate: frameRate,
		events:    make(chan Event, 32),
		done:      make(chan struct{}),
	}
	go s.pump()
	go s.run()
	return s
}

// pump blocks on the backend and forwards input events. A nil poll result
// means the backend shut down.
func (s *Source) pump() {
	for {
		ev := s.backend.PollEvent()
		if ev == nil {
			select {
			case s.events <- QuitEvent{}:
			case <-s.done:
			}
			return
		}
		select {
		case s.events <- InputEvent{Ev: ev}:
		case <-s.done:
			return
		}
	}
}

// run emits Tick and Render at their configured rates.
func (s *Source) run() {
	tick := time.NewTicker(s.tickRate)
	defer tick.Stop()
	frame := time.NewTicker(s.frameRate)
	defer frame.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-tick.C:
			select {
			case s.events <- TickEvent{}:
			case <-s.done:
				return
			}
		case <-frame.C:
			select {
			case s.events <- RenderEvent{}:
			case <-s.done:
				return
			}
		}
	}
}

// Next blocks for the next event. It returns ctx.Err() on cancellation,
// the loop's only other way out.
func (s *Source) Next(ctx context.Context) (Event, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case ev := <-s.events:
		return ev, nil
	}
}

// Stop shuts the source down. The poll goroutine exits once the backend
// unblocks it (Fini does that).
func (s *Source) Stop() {
	select {
	case <-s.done:
	default:
		close(s.done)
	}
}
