package timing

import (
	"testing"
	"time"
)

func TestStepTimerTick(t *testing.T) {
	timer := NewStepTimer()
	time.Sleep(10 * time.Millisecond)
	dt := timer.Tick()

	if dt <= 0 {
		t.Errorf("Tick() = %v, want > 0", dt)
	}
	if dt > 5 {
		t.Errorf("Tick() = %v, implausibly large", dt)
	}

	// a second tick measures from the first, not from construction
	dt2 := timer.Tick()
	if dt2 < 0 {
		t.Errorf("second Tick() = %v, want >= 0", dt2)
	}
	if dt2 > dt {
		// back-to-back ticks should be much shorter than the slept one
		t.Errorf("second Tick() = %v, want < %v", dt2, dt)
	}
}

func TestFramerateCounter(t *testing.T) {
	var c FramerateCounter
	if c.FPS() != 0 {
		t.Errorf("FPS() before any frame = %d, want 0", c.FPS())
	}

	// 60 frames at ~16.7ms fill one second
	for i := 0; i < 60; i++ {
		c.Frame(1.0 / 60.0)
	}
	// one more frame pushes the accumulator over the second boundary
	c.Frame(1.0 / 60.0)

	if got := c.FPS(); got < 59 || got > 61 {
		t.Errorf("FPS() = %d, want ~60", got)
	}
}

func TestFrameLimiterDisabled(t *testing.T) {
	limiter := NewFrameLimiter(0)
	start := time.Now()
	limiter.Wait()
	limiter.Wait()
	if elapsed := time.Since(start); elapsed > 10*time.Millisecond {
		t.Errorf("disabled limiter waited %v", elapsed)
	}
}

func TestFrameLimiterPacesFrames(t *testing.T) {
	limiter := NewFrameLimiter(200) // 5ms per frame
	start := time.Now()
	for i := 0; i < 4; i++ {
		limiter.Wait()
	}
	elapsed := time.Since(start)
	if elapsed < 15*time.Millisecond {
		t.Errorf("4 frames at 200fps took %v, want >= 15ms", elapsed)
	}
}
