// Package profiling is a lightweight per-frame CPU profiler. The loop
// resets it at the top of each frame and reports the top tasks when a
// frame overruns its budget.
package profiling

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

var (
	mu     sync.Mutex
	totals = make(map[string]time.Duration)
)

// Track records the elapsed time under name when the returned stop
// function runs.
//
// Usage: defer profiling.Track("batcher.Flush")()
func Track(name string) func() {
	start := time.Now()
	return func() {
		d := time.Since(start)
		mu.Lock()
		totals[name] += d
		mu.Unlock()
	}
}

// ResetFrame clears the current frame's totals.
func ResetFrame() {
	mu.Lock()
	clear(totals)
	mu.Unlock()
}

// Snapshot returns a copy of the current frame's totals.
func Snapshot() map[string]time.Duration {
	mu.Lock()
	defer mu.Unlock()
	out := make(map[string]time.Duration, len(totals))
	for name, d := range totals {
		out[name] = d
	}
	return out
}

// TopN formats the n largest totals of the current frame, e.g.
// "engine.render:4.2ms, batcher.Flush:0.3ms".
func TopN(n int) string {
	snap := Snapshot()
	type entry struct {
		name string
		dur  time.Duration
	}
	entries := make([]entry, 0, len(snap))
	for name, d := range snap {
		entries = append(entries, entry{name, d})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].dur > entries[j].dur })
	if n > len(entries) {
		n = len(entries)
	}

	parts := make([]string, 0, n)
	for _, e := range entries[:n] {
		parts = append(parts, fmt.Sprintf("%s:%.1fms", e.name, float64(e.dur.Microseconds())/1000))
	}
	return strings.Join(parts, ", ")
}
