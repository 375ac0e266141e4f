// Package engine drives the frame loop: it pumps window events, commits
// input snapshots, invokes user update logic, flushes the geometry
// batcher, and presents frames through a render backend. Everything runs
// on the single goroutine that calls Run; no state in this package is
// shared across goroutines.
package engine

import (
	"errors"
	"time"

	"github.com/emberlight/ember/input"
	"github.com/emberlight/ember/internal/profiling"
	"github.com/emberlight/ember/render"
	"github.com/emberlight/ember/timing"
	"github.com/emberlight/ember/window"
)

// RunMode selects how the loop consumes OS events.
type RunMode uint8

const (
	// EventDriven blocks until the OS delivers an event before each
	// iteration. Suited to tools and menus that only redraw on input.
	EventDriven RunMode = iota
	// LoopDriven never blocks on OS events; the loop runs continuously,
	// draining whatever is pending.
	LoopDriven
)

func (m RunMode) String() string {
	if m == EventDriven {
		return "event-driven"
	}
	return "loop-driven"
}

// State is the loop lifecycle state.
type State uint8

const (
	StateIdle State = iota
	StateRunning
	StateClosing
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateClosing:
		return "closing"
	default:
		return "stopped"
	}
}

// ErrNotIdle is returned by Run when the loop has already been started.
var ErrNotIdle = errors.New("engine: loop already started")

// maxRenderFailures is the number of consecutive render failures after
// which the surface is considered unrecoverable and the loop terminates
// with a platform error. Bounds infinite retry.
const maxRenderFailures = 3

// slowFrameBudget is the processing time beyond which a frame is logged
// with its top profiled tasks.
const slowFrameBudget = 16 * time.Millisecond

// Platform is the window-manager surface the loop drives. *window.Window
// implements it; tests substitute fakes.
type Platform interface {
	render.Target

	// PollEvents drains pending OS messages without blocking.
	PollEvents() ([]window.Event, error)
	// WaitEvent blocks until at least one OS message arrives, then
	// drains everything pending.
	WaitEvent() ([]window.Event, error)

	State() window.State

	Surface() render.Surface
	SetSurface(render.Surface)
	SurfaceStale() bool
	MarkSurfaceStale()
	ClearSurfaceStale()

	// Close releases the surface, then the native window.
	Close() error
}

// Options configures a Loop.
type Options struct {
	Mode RunMode
	// FPSLimit caps the frame rate in LoopDriven mode. Zero means
	// uncapped.
	FPSLimit int
}

// UpdateFunc is the user's per-frame logic. It receives the committed
// input snapshot and the elapsed seconds since the previous frame, and
// issues draw commands through the batcher. It must not block.
type UpdateFunc func(snap *input.Snapshot, dt float64, b *render.Batcher)

// RenderFunc executes the frame's batches. A nil RenderFunc submits the
// batches to the backend directly. A returned error is treated as a
// recoverable render failure; presentation is skipped for that frame.
type RenderFunc func(batches []render.Batch) error

// Loop is the frame scheduler. It owns the active window, the input
// tracker, the geometry batcher, and a monotonic frame counter. Create
// one with New and drive it with Run from the main goroutine.
type Loop struct {
	platform Platform
	backend  render.Backend
	opts     Options

	device render.Device

	state   State
	tracker *input.Tracker
	batcher *render.Batcher
	timer   *timing.StepTimer
	fps     timing.FramerateCounter
	limiter *timing.FrameLimiter

	frame       uint64
	renderFails int
}

// New wires a loop to a platform window and a render backend: it creates
// the backend device and the initial surface. The loop starts Idle; call
// Run to enter Running.
func New(p Platform, b render.Backend, opts Options) (*Loop, error) {
	dev, err := b.CreateDevice(p)
	if err != nil {
		return nil, err
	}
	surf, err := b.CreateSurface(dev, p)
	if err != nil {
		dev.Release()
		return nil, err
	}
	p.SetSurface(surf)

	logger().Info("engine initialized", "backend", b.Name(), "mode", opts.Mode)

	return &Loop{
		platform: p,
		backend:  b,
		opts:     opts,
		device:   dev,
		state:    StateIdle,
		tracker:  input.NewTracker(),
		batcher:  render.NewBatcher(),
		timer:    timing.NewStepTimer(),
		limiter:  timing.NewFrameLimiter(opts.FPSLimit),
	}, nil
}

// Frame returns the number of frames presented so far.
func (l *Loop) Frame() uint64 { return l.frame }

// State returns the loop lifecycle state.
func (l *Loop) State() State { return l.state }

// FPS returns the frame count of the most recently completed second.
func (l *Loop) FPS() int { return l.fps.FPS() }

// Run transitions Idle to Running and drives the loop until the window
// closes or a fatal platform error occurs. It returns nil on a clean
// close and the fatal error otherwise. Recoverable render failures never
// surface here; they are logged and retried.
func (l *Loop) Run(update UpdateFunc, renderFn RenderFunc) error {
	if l.state != StateIdle {
		return ErrNotIdle
	}
	l.state = StateRunning
	logger().Info("loop running")

	var fatal error
	for l.state == StateRunning {
		fatal = l.iterate(update, renderFn)
	}

	l.teardown()
	l.state = StateStopped
	logger().Info("loop stopped", "frames", l.frame)
	return fatal
}

// iterate runs one loop iteration. A non-nil return is fatal; the loop
// state has already been moved to Closing when it is returned.
func (l *Loop) iterate(update UpdateFunc, renderFn RenderFunc) error {
	profiling.ResetFrame()
	frameStart := time.Now()

	var evs []window.Event
	var err error
	if l.opts.Mode == EventDriven {
		evs, err = l.platform.WaitEvent()
	} else {
		evs, err = l.platform.PollEvents()
	}
	if err != nil {
		l.state = StateClosing
		return &window.PlatformError{Op: "drain events", Err: err}
	}

	closeRequested := false
	for _, ev := range evs {
		switch ev.Kind {
		case window.EventInput:
			l.tracker.Record(ev.Input)
		case window.EventCloseRequested:
			closeRequested = true
		case window.EventResized:
			logger().Debug("window resized", "width", ev.Width, "height", ev.Height)
		}
	}

	snap := l.tracker.Commit()

	if closeRequested || l.platform.State() == window.StateClosing {
		// skip update and render for this iteration; teardown follows
		l.state = StateClosing
		return nil
	}

	dt := l.timer.Tick()
	if update != nil {
		update(snap, dt, l.batcher)
	}
	batches := l.batcher.Flush()

	if err := l.renderFrame(batches, renderFn); err != nil {
		if l.renderFails >= maxRenderFailures {
			l.state = StateClosing
			return &window.PlatformError{Op: "render", Err: err}
		}
		// failed frame renders nothing; retried next iteration
		return nil
	}

	l.frame++
	l.fps.Frame(dt)

	if spent := time.Since(frameStart); spent > slowFrameBudget {
		logger().Warn("slow frame", "spent", spent, "top", profiling.TopN(5))
	}

	if l.opts.Mode == LoopDriven {
		l.limiter.Wait()
	}
	return nil
}

// renderFrame recreates the surface if stale, executes the batches, and
// presents. Failure policy: the first consecutive failure retries the
// same surface, the second marks it stale so it is recreated before the
// third attempt, and the third is reported to the caller as
// unrecoverable.
func (l *Loop) renderFrame(batches []render.Batch, renderFn RenderFunc) error {
	defer profiling.Track("engine.render")()

	if l.platform.SurfaceStale() {
		surf, err := l.backend.RecreateSurface(l.device, l.platform.Surface(), l.platform)
		if err != nil {
			l.renderFails++
			logger().Warn("surface recreation failed", "err", err, "consecutive", l.renderFails)
			return err
		}
		l.platform.SetSurface(surf)
		l.platform.ClearSurfaceStale()
	}

	var err error
	if renderFn != nil {
		err = renderFn(batches)
	} else {
		err = l.backend.Submit(l.device, l.platform.Surface(), batches)
	}
	if err == nil {
		err = l.backend.Present(l.platform.Surface())
	}
	if err != nil {
		l.renderFails++
		if l.renderFails >= 2 {
			l.platform.MarkSurfaceStale()
		}
		logger().Warn("render failed", "err", err, "consecutive", l.renderFails)
		return err
	}

	l.renderFails = 0
	return nil
}

// teardown releases the surface and window (in that order, via the
// platform) and then the device.
func (l *Loop) teardown() {
	if err := l.platform.Close(); err != nil {
		logger().Warn("window close failed", "err", err)
	}
	if l.device != nil {
		l.device.Release()
		l.device = nil
	}
}
