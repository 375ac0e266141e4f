package timing

import "time"

// FrameLimiter paces a loop-driven frame loop to a target rate using a
// hybrid sleep/spin wait: coarse sleep for most of the interval, then a
// short spin for precision on high caps.
type FrameLimiter struct {
	limit int
	next  time.Time
}

// NewFrameLimiter returns a limiter targeting the given frames per
// second. A non-positive limit disables pacing.
func NewFrameLimiter(fps int) *FrameLimiter {
	return &FrameLimiter{limit: fps}
}

// SetLimit changes the target rate. A non-positive limit disables
// pacing.
func (f *FrameLimiter) SetLimit(fps int) {
	f.limit = fps
	f.next = time.Time{}
}

// Wait blocks until the next frame is due. With pacing disabled it
// returns immediately.
func (f *FrameLimiter) Wait() {
	if f.limit <= 0 {
		f.next = time.Time{}
		return
	}

	target := time.Second / time.Duration(f.limit)
	if f.next.IsZero() {
		f.next = time.Now().Add(target)
	} else {
		f.next = f.next.Add(target)
	}

	for {
		remaining := time.Until(f.next)
		if remaining <= 0 {
			break
		}
		if remaining > 200*time.Microsecond {
			time.Sleep(remaining - 200*time.Microsecond)
		}
		// spin out the final stretch
		if time.Until(f.next) <= 0 {
			break
		}
	}

	// resync after a hitch so one slow frame doesn't cause a burst
	if late := -time.Until(f.next); late > target {
		f.next = time.Now().Add(target)
	}
}
