// Package input accumulates raw device events into immutable per-frame
// snapshots. The Tracker is fed by the event loop as OS events arrive and
// publishes a Snapshot once per frame; user logic only ever sees committed
// snapshots, never the mid-frame accumulator.
package input

// EventKind discriminates raw device events.
type EventKind uint8

const (
	KindKeyDown EventKind = iota
	KindKeyUp
	KindButtonDown
	KindButtonUp
	KindPointerMove
)

// Event is a single raw device event as delivered by the OS.
type Event struct {
	Kind   EventKind
	Key    Key
	Button Button
	X, Y   float64
}

// Tracker accumulates raw events between frame commits.
//
// Duplicate down events for a key that is already held (OS auto-repeat)
// are idempotent: the held set is unchanged and no new pressed edge is
// recorded. Only true down-transitions surface as pressed-this-frame.
type Tracker struct {
	held     map[Key]bool
	pressed  map[Key]bool
	released map[Key]bool

	buttonsHeld     map[Button]bool
	buttonsPressed  map[Button]bool
	buttonsReleased map[Button]bool

	pointerX, pointerY float64
}

// NewTracker returns an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{
		held:            make(map[Key]bool),
		pressed:         make(map[Key]bool),
		released:        make(map[Key]bool),
		buttonsHeld:     make(map[Button]bool),
		buttonsPressed:  make(map[Button]bool),
		buttonsReleased: make(map[Button]bool),
	}
}

// Record ingests one raw event into the accumulator. It never blocks and
// its effects are invisible until the next Commit.
func (t *Tracker) Record(ev Event) {
	switch ev.Kind {
	case KindKeyDown:
		if ev.Key <= KeyUnknown || ev.Key >= keyCount {
			return
		}
		if t.held[ev.Key] {
			return // auto-repeat, not a down edge
		}
		t.held[ev.Key] = true
		t.pressed[ev.Key] = true
		// pressed and released stay disjoint; the last edge wins
		delete(t.released, ev.Key)
	case KindKeyUp:
		if ev.Key <= KeyUnknown || ev.Key >= keyCount {
			return
		}
		if !t.held[ev.Key] {
			return
		}
		delete(t.held, ev.Key)
		t.released[ev.Key] = true
		delete(t.pressed, ev.Key)
	case KindButtonDown:
		if ev.Button < 0 || ev.Button >= buttonCount {
			return
		}
		if t.buttonsHeld[ev.Button] {
			return
		}
		t.buttonsHeld[ev.Button] = true
		t.buttonsPressed[ev.Button] = true
		delete(t.buttonsReleased, ev.Button)
	case KindButtonUp:
		if ev.Button < 0 || ev.Button >= buttonCount {
			return
		}
		if !t.buttonsHeld[ev.Button] {
			return
		}
		delete(t.buttonsHeld, ev.Button)
		t.buttonsReleased[ev.Button] = true
		delete(t.buttonsPressed, ev.Button)
	case KindPointerMove:
		t.pointerX, t.pointerY = ev.X, ev.Y
	}
}

// Commit publishes the accumulator as an immutable Snapshot and clears the
// transient pressed/released sets. Held state carries over until a matching
// release event arrives.
func (t *Tracker) Commit() *Snapshot {
	snap := &Snapshot{
		held:            copyKeys(t.held),
		pressed:         copyKeys(t.pressed),
		released:        copyKeys(t.released),
		buttonsHeld:     copyButtons(t.buttonsHeld),
		buttonsPressed:  copyButtons(t.buttonsPressed),
		buttonsReleased: copyButtons(t.buttonsReleased),
		pointerX:        t.pointerX,
		pointerY:        t.pointerY,
	}
	clear(t.pressed)
	clear(t.released)
	clear(t.buttonsPressed)
	clear(t.buttonsReleased)
	return snap
}

func copyKeys(m map[Key]bool) map[Key]bool {
	out := make(map[Key]bool, len(m))
	for k := range m {
		out[k] = true
	}
	return out
}

func copyButtons(m map[Button]bool) map[Button]bool {
	out := make(map[Button]bool, len(m))
	for b := range m {
		out[b] = true
	}
	return out
}

// Snapshot is the committed input state for one frame. It is read-only;
// the tracker never mutates a snapshot after publishing it.
type Snapshot struct {
	held     map[Key]bool
	pressed  map[Key]bool
	released map[Key]bool

	buttonsHeld     map[Button]bool
	buttonsPressed  map[Button]bool
	buttonsReleased map[Button]bool

	pointerX, pointerY float64
}

// Held reports whether the key is currently held down.
func (s *Snapshot) Held(k Key) bool { return s.held[k] }

// Pressed reports whether the key's down edge happened this frame.
func (s *Snapshot) Pressed(k Key) bool { return s.pressed[k] }

// Released reports whether the key's up edge happened this frame.
func (s *Snapshot) Released(k Key) bool { return s.released[k] }

// ButtonHeld reports whether the pointer button is currently held down.
func (s *Snapshot) ButtonHeld(b Button) bool { return s.buttonsHeld[b] }

// ButtonPressed reports whether the button's down edge happened this frame.
func (s *Snapshot) ButtonPressed(b Button) bool { return s.buttonsPressed[b] }

// ButtonReleased reports whether the button's up edge happened this frame.
func (s *Snapshot) ButtonReleased(b Button) bool { return s.buttonsReleased[b] }

// Pointer returns the last known pointer position in window coordinates.
func (s *Snapshot) Pointer() (x, y float64) { return s.pointerX, s.pointerY }

// HeldCount returns the number of currently held keys.
func (s *Snapshot) HeldCount() int { return len(s.held) }

// PressedCount returns the number of keys pressed this frame.
func (s *Snapshot) PressedCount() int { return len(s.pressed) }

// ReleasedCount returns the number of keys released this frame.
func (s *Snapshot) ReleasedCount() int { return len(s.released) }
