package window

import "testing"

// beginResize and drain never touch the native handle, so the state
// machine is testable without a display.

func TestDrainRestoresPreResizeState(t *testing.T) {
	tests := []struct {
		name  string
		state State
	}{
		{"focused", StateFocused},
		{"unfocused", StateUnfocused},
		{"minimized", StateMinimized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := &Window{state: tt.state}
			w.beginResize()
			if w.State() != StateResizing {
				t.Fatalf("State() = %v during resize, want %v", w.State(), StateResizing)
			}
			w.drain()
			if w.State() != tt.state {
				t.Errorf("State() after drain = %v, want %v", w.State(), tt.state)
			}
		})
	}
}

func TestBeginResizeKeepsFirstSavedState(t *testing.T) {
	w := &Window{state: StateUnfocused}

	// a burst of resize messages within one pump saves the state once
	w.beginResize()
	w.beginResize()
	w.beginResize()
	w.drain()

	if w.State() != StateUnfocused {
		t.Errorf("State() after drain = %v, want %v", w.State(), StateUnfocused)
	}
}

func TestDrainReturnsQueuedEvents(t *testing.T) {
	w := &Window{state: StateFocused}
	w.push(Event{Kind: EventResized, Width: 640, Height: 480})
	w.push(Event{Kind: EventCloseRequested})

	evs := w.drain()
	if len(evs) != 2 {
		t.Fatalf("drain() returned %d events, want 2", len(evs))
	}
	if evs[0].Kind != EventResized || evs[1].Kind != EventCloseRequested {
		t.Errorf("drain() order = %v, %v", evs[0].Kind, evs[1].Kind)
	}
	if again := w.drain(); len(again) != 0 {
		t.Errorf("second drain() returned %d events, want 0", len(again))
	}
}
