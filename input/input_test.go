package input

import "testing"

func TestTrackerHeldMatchesUnmatchedDowns(t *testing.T) {
	tr := NewTracker()

	tr.Record(Event{Kind: KindKeyDown, Key: KeyW})
	tr.Record(Event{Kind: KindKeyDown, Key: KeyA})
	tr.Record(Event{Kind: KindKeyUp, Key: KeyA})
	tr.Record(Event{Kind: KindKeyDown, Key: KeySpace})

	snap := tr.Commit()

	if !snap.Held(KeyW) {
		t.Error("KeyW should be held")
	}
	if snap.Held(KeyA) {
		t.Error("KeyA was released, should not be held")
	}
	if !snap.Held(KeySpace) {
		t.Error("KeySpace should be held")
	}
	if got := snap.HeldCount(); got != 2 {
		t.Errorf("HeldCount() = %d, want 2", got)
	}
}

func TestTrackerPressedReleasedDisjoint(t *testing.T) {
	tr := NewTracker()

	// down then up within one frame: last edge wins, sets stay disjoint
	tr.Record(Event{Kind: KindKeyDown, Key: KeyQ})
	tr.Record(Event{Kind: KindKeyUp, Key: KeyQ})
	snap := tr.Commit()

	if snap.Pressed(KeyQ) && snap.Released(KeyQ) {
		t.Error("pressed and released must be mutually exclusive")
	}
	if !snap.Released(KeyQ) {
		t.Error("KeyQ up edge should be recorded")
	}

	// up then down within one frame
	tr.Record(Event{Kind: KindKeyDown, Key: KeyQ})
	tr.Commit()
	tr.Record(Event{Kind: KindKeyUp, Key: KeyQ})
	tr.Record(Event{Kind: KindKeyDown, Key: KeyQ})
	snap = tr.Commit()

	if snap.Pressed(KeyQ) && snap.Released(KeyQ) {
		t.Error("pressed and released must be mutually exclusive")
	}
	if !snap.Pressed(KeyQ) {
		t.Error("KeyQ down edge should be recorded")
	}
}

func TestTrackerEdgesClearedOnCommit(t *testing.T) {
	tr := NewTracker()

	tr.Record(Event{Kind: KindKeyDown, Key: KeyD})
	first := tr.Commit()
	if !first.Pressed(KeyD) {
		t.Error("first commit should surface the down edge")
	}

	second := tr.Commit()
	if second.Pressed(KeyD) {
		t.Error("pressed edge must not survive a commit")
	}
	if second.PressedCount() != 0 || second.ReleasedCount() != 0 {
		t.Errorf("edge sets after commit: pressed=%d released=%d, want 0/0",
			second.PressedCount(), second.ReleasedCount())
	}
	if !second.Held(KeyD) {
		t.Error("held state must persist across commits")
	}
}

func TestTrackerAutoRepeatIdempotent(t *testing.T) {
	tr := NewTracker()

	tr.Record(Event{Kind: KindKeyDown, Key: KeyS})
	snap := tr.Commit()
	if !snap.Pressed(KeyS) {
		t.Fatal("down edge not surfaced")
	}

	// OS auto-repeat delivers more down events while held
	tr.Record(Event{Kind: KindKeyDown, Key: KeyS})
	tr.Record(Event{Kind: KindKeyDown, Key: KeyS})
	snap = tr.Commit()

	if snap.Pressed(KeyS) {
		t.Error("auto-repeat must not re-surface a pressed edge")
	}
	if !snap.Held(KeyS) {
		t.Error("key should remain held through repeats")
	}
	if snap.HeldCount() != 1 {
		t.Errorf("HeldCount() = %d, want 1", snap.HeldCount())
	}
}

func TestTrackerReleaseWithoutHoldIgnored(t *testing.T) {
	tr := NewTracker()

	tr.Record(Event{Kind: KindKeyUp, Key: KeyZ})
	snap := tr.Commit()

	if snap.Released(KeyZ) {
		t.Error("up event without a matching down must be ignored")
	}
}

func TestTrackerButtonsAndPointer(t *testing.T) {
	tr := NewTracker()

	tr.Record(Event{Kind: KindPointerMove, X: 120, Y: 45})
	tr.Record(Event{Kind: KindButtonDown, Button: ButtonLeft})
	snap := tr.Commit()

	if !snap.ButtonHeld(ButtonLeft) || !snap.ButtonPressed(ButtonLeft) {
		t.Error("left button should be held and pressed this frame")
	}
	x, y := snap.Pointer()
	if x != 120 || y != 45 {
		t.Errorf("Pointer() = (%v, %v), want (120, 45)", x, y)
	}

	tr.Record(Event{Kind: KindButtonUp, Button: ButtonLeft})
	snap = tr.Commit()
	if snap.ButtonHeld(ButtonLeft) {
		t.Error("left button should be released")
	}
	if !snap.ButtonReleased(ButtonLeft) {
		t.Error("release edge should be surfaced")
	}
	// pointer position persists across commits
	if x, y := snap.Pointer(); x != 120 || y != 45 {
		t.Errorf("Pointer() = (%v, %v), want (120, 45)", x, y)
	}
}

func TestSnapshotImmutableAfterCommit(t *testing.T) {
	tr := NewTracker()
	tr.Record(Event{Kind: KindKeyDown, Key: KeyW})
	snap := tr.Commit()

	// further events must not bleed into a published snapshot
	tr.Record(Event{Kind: KindKeyUp, Key: KeyW})
	tr.Record(Event{Kind: KindKeyDown, Key: KeyA})

	if !snap.Held(KeyW) {
		t.Error("published snapshot mutated by later up event")
	}
	if snap.Held(KeyA) {
		t.Error("published snapshot mutated by later down event")
	}
}

func TestTrackerArrowKeys(t *testing.T) {
	tr := NewTracker()

	tr.Record(Event{Kind: KindKeyDown, Key: KeyDown})
	tr.Record(Event{Kind: KindKeyDown, Key: KeyUp})
	tr.Record(Event{Kind: KindKeyUp, Key: KeyUp})
	snap := tr.Commit()

	if !snap.Held(KeyDown) || !snap.Pressed(KeyDown) {
		t.Error("KeyDown should be held and pressed")
	}
	if snap.Held(KeyUp) {
		t.Error("KeyUp was released, should not be held")
	}
	if !snap.Released(KeyUp) {
		t.Error("KeyUp up edge should be recorded")
	}
}

func TestTrackerUnknownCodesIgnored(t *testing.T) {
	tr := NewTracker()
	tr.Record(Event{Kind: KindKeyDown, Key: KeyUnknown})
	tr.Record(Event{Kind: KindKeyDown, Key: Key(9999)})
	tr.Record(Event{Kind: KindButtonDown, Button: Button(42)})
	snap := tr.Commit()

	if snap.HeldCount() != 0 {
		t.Errorf("HeldCount() = %d, want 0", snap.HeldCount())
	}
}
