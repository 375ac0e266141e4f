package window

import "github.com/emberlight/ember/input"

// EventKind discriminates window events.
type EventKind uint8

const (
	// EventInput wraps a raw device event destined for the input tracker.
	EventInput EventKind = iota
	// EventResized carries the new framebuffer size. The surface is
	// already marked stale when this event is delivered.
	EventResized
	EventFocused
	EventUnfocused
	EventMinimized
	EventRestored
	// EventCloseRequested signals the user or OS asked the window to
	// close. The loop begins teardown at the top of the iteration that
	// observes it.
	EventCloseRequested
)

// Event is one window or device event, pulled from the queue once per
// loop iteration. OS callbacks only ever append to the queue; they never
// re-enter loop state.
type Event struct {
	Kind  EventKind
	Input input.Event

	// Resized
	Width, Height int
}
