// Package window owns the native window handle and its render surface.
// It flattens GLFW's callback-based event delivery into a pull-based
// queue the event loop drains once per iteration, and it enforces the
// surface lifecycle: a surface exists only while the window is live, is
// marked stale on resize, and is released before the window is destroyed.
package window

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/emberlight/ember/input"
	"github.com/emberlight/ember/render"
)

// State is the window lifecycle state.
type State uint8

const (
	StateCreated State = iota
	StateFocused
	StateUnfocused
	StateMinimized
	StateResizing
	StateClosing
	StateClosed
)

// Config describes the window to create.
type Config struct {
	Width  int
	Height int
	Title  string
	// Fullscreen is carried for forward compatibility but not yet
	// enforced; creation is always windowed.
	Fullscreen bool
}

// Validate reports the first invalid field as a *ConfigError.
func (c Config) Validate() error {
	if c.Width <= 0 {
		return &ConfigError{Field: "width", Reason: "must be positive"}
	}
	if c.Height <= 0 {
		return &ConfigError{Field: "height", Reason: "must be positive"}
	}
	if c.Title == "" {
		return &ConfigError{Field: "title", Reason: "must not be empty"}
	}
	return nil
}

// Window wraps the native window handle. It must only be used from the
// goroutine that created it (the OS thread the loop runs on).
type Window struct {
	native *glfw.Window
	state  State

	fbWidth  int
	fbHeight int

	queue []Event

	surface      render.Surface
	surfaceStale bool

	// preResize is the state to restore once the resize messages for a
	// pump have drained, so a resize while unfocused or minimized does
	// not promote the window to focused.
	preResize State
}

// Create validates the configuration and opens a native window. It
// returns a *ConfigError for invalid configuration and a *PlatformError
// if the OS denies window creation. The caller must have locked the OS
// thread.
func Create(cfg Config) (*Window, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if err := glfw.Init(); err != nil {
		return nil, &PlatformError{Op: "init window system", Err: err}
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	native, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, &PlatformError{Op: "create window", Err: err}
	}

	w := &Window{native: native, state: StateCreated}
	w.fbWidth, w.fbHeight = native.GetFramebufferSize()
	w.installCallbacks()
	return w, nil
}

func (w *Window) installCallbacks() {
	w.native.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		k := translateKey(key)
		switch action {
		case glfw.Press, glfw.Repeat:
			// Repeat is forwarded as a down event; the tracker
			// drops repeats for keys already held.
			w.push(Event{Kind: EventInput, Input: input.Event{Kind: input.KindKeyDown, Key: k}})
		case glfw.Release:
			w.push(Event{Kind: EventInput, Input: input.Event{Kind: input.KindKeyUp, Key: k}})
		}
	})
	w.native.SetMouseButtonCallback(func(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		b, ok := glfwButtons[button]
		if !ok {
			return
		}
		kind := input.KindButtonDown
		if action == glfw.Release {
			kind = input.KindButtonUp
		}
		w.push(Event{Kind: EventInput, Input: input.Event{Kind: kind, Button: b}})
	})
	w.native.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		w.push(Event{Kind: EventInput, Input: input.Event{Kind: input.KindPointerMove, X: x, Y: y}})
	})
	w.native.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		w.fbWidth, w.fbHeight = width, height
		w.beginResize()
		// Lazy recreation: the surface is replaced before the next
		// present, never while events are still draining.
		w.surfaceStale = true
		w.push(Event{Kind: EventResized, Width: width, Height: height})
	})
	w.native.SetFocusCallback(func(_ *glfw.Window, focused bool) {
		if focused {
			w.state = StateFocused
			w.push(Event{Kind: EventFocused})
		} else {
			w.state = StateUnfocused
			w.push(Event{Kind: EventUnfocused})
		}
	})
	w.native.SetIconifyCallback(func(_ *glfw.Window, iconified bool) {
		if iconified {
			w.state = StateMinimized
			w.push(Event{Kind: EventMinimized})
		} else {
			w.state = StateFocused
			w.push(Event{Kind: EventRestored})
		}
	})
	w.native.SetCloseCallback(func(_ *glfw.Window) {
		w.push(Event{Kind: EventCloseRequested})
	})
}

func (w *Window) push(ev Event) {
	w.queue = append(w.queue, ev)
}

func (w *Window) beginResize() {
	if w.state != StateResizing {
		w.preResize = w.state
	}
	w.state = StateResizing
}

// PollEvents pumps pending OS messages without blocking and returns the
// drained event queue.
func (w *Window) PollEvents() ([]Event, error) {
	glfw.PollEvents()
	return w.drain(), nil
}

// WaitEvent blocks until at least one OS message arrives, then drains
// everything pending. No timeout: a hung OS event queue stalls the loop.
func (w *Window) WaitEvent() ([]Event, error) {
	glfw.WaitEvents()
	return w.drain(), nil
}

func (w *Window) drain() []Event {
	evs := w.queue
	w.queue = nil
	if w.state == StateResizing {
		// all resize messages for this pump have been delivered
		w.state = w.preResize
	}
	return evs
}

// RequestClose asks the window to close. The loop observes the request
// at the top of its next iteration; nothing is preempted mid-frame.
func (w *Window) RequestClose() {
	if w.state == StateClosing || w.state == StateClosed {
		return
	}
	w.native.SetShouldClose(true)
	w.push(Event{Kind: EventCloseRequested})
}

// State returns the current lifecycle state.
func (w *Window) State() State { return w.state }

// FramebufferSize returns the drawable size in pixels.
func (w *Window) FramebufferSize() (width, height int) {
	return w.fbWidth, w.fbHeight
}

// Native exposes the underlying GLFW handle for backends that need the
// context (MakeContextCurrent, SwapBuffers). The handle stays owned by
// this package.
func (w *Window) Native() *glfw.Window { return w.native }

// Surface returns the surface currently bound to the window, or nil
// while the window is closing or closed.
func (w *Window) Surface() render.Surface { return w.surface }

// SetSurface binds a surface to the window.
func (w *Window) SetSurface(s render.Surface) { w.surface = s }

// SurfaceStale reports whether the surface must be recreated before the
// next presentation.
func (w *Window) SurfaceStale() bool { return w.surfaceStale }

// MarkSurfaceStale requests surface recreation before the next present.
func (w *Window) MarkSurfaceStale() { w.surfaceStale = true }

// ClearSurfaceStale acknowledges a completed recreation.
func (w *Window) ClearSurfaceStale() { w.surfaceStale = false }

// Close tears the window down: the surface is released strictly before
// the native handle is destroyed. Close is idempotent.
func (w *Window) Close() error {
	if w.state == StateClosed {
		return nil
	}
	w.state = StateClosing
	if w.surface != nil {
		w.surface.Release()
		w.surface = nil
	}
	w.native.Destroy()
	glfw.Terminate()
	w.state = StateClosed
	return nil
}
