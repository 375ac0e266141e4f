// Package timing provides the frame clock: per-frame elapsed time, a
// frames-per-second counter, and a frame limiter for loop-driven pacing.
package timing

import "time"

// StepTimer measures elapsed time between frames. Call Tick once at the
// start of each frame.
type StepTimer struct {
	last time.Time
}

// NewStepTimer returns a timer whose first Tick measures from now.
func NewStepTimer() *StepTimer {
	return &StepTimer{last: time.Now()}
}

// Tick advances the timer and returns the seconds elapsed since the
// previous tick.
func (t *StepTimer) Tick() float64 {
	now := time.Now()
	dt := now.Sub(t.last).Seconds()
	t.last = now
	return dt
}

// FramerateCounter accumulates frame deltas and reports the frame count
// of the last full wall second.
type FramerateCounter struct {
	frames int
	acc    float64
	fps    int
}

// Frame records one completed frame with its delta in seconds.
func (c *FramerateCounter) Frame(dt float64) {
	c.frames++
	c.acc += dt
	if c.acc >= 1 {
		c.fps = c.frames
		c.frames = 0
		for c.acc >= 1 {
			c.acc--
		}
	}
}

// FPS returns the frame count of the most recently completed second.
// Zero until the first full second has elapsed.
func (c *FramerateCounter) FPS() int { return c.fps }
