package render

import (
	"errors"
	"fmt"
)

// ErrBackendNotAvailable is returned when no registered backend can be
// selected.
var ErrBackendNotAvailable = errors.New("render: backend not available")

// RenderError reports a recoverable backend failure during submission or
// presentation. The event loop skips the failed frame and retries; it does
// not unwind.
type RenderError struct {
	Op  string
	Err error
}

func (e *RenderError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("render: %s failed", e.Op)
	}
	return fmt.Sprintf("render: %s: %v", e.Op, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }

// Target is the minimal view of a window a backend needs to size its
// resources. *window.Window satisfies it; backends that need more (a
// native handle, a GL context) type-assert to their platform's concrete
// window type.
type Target interface {
	// FramebufferSize returns the drawable size in pixels.
	FramebufferSize() (width, height int)
}

// Device is a backend's per-window graphics device.
type Device interface {
	Release()
}

// Surface is the presentable render target bound to a window. Its
// lifetime is tied to the window; it is released before the window is
// destroyed and recreated (not resized) when marked stale.
type Surface interface {
	// Size returns the surface extent in pixels as of creation.
	Size() (width, height int)
	Release()
}

// Backend is the capability contract a native graphics backend satisfies.
// One backend is selected at startup and never mixed with another at
// runtime. Submission is synchronous from the loop's point of view: any
// internal queuing must complete or signal failure before Submit/Present
// return.
type Backend interface {
	// Name returns the backend identifier (e.g. "gl").
	Name() string

	// CreateDevice initializes the backend for the given window.
	CreateDevice(t Target) (Device, error)

	// CreateSurface creates the presentable surface for the window.
	CreateSurface(dev Device, t Target) (Surface, error)

	// RecreateSurface replaces a stale surface, releasing the old one.
	RecreateSurface(dev Device, old Surface, t Target) (Surface, error)

	// Submit executes the frame's batches against the surface.
	// Failures are reported as *RenderError.
	Submit(dev Device, surf Surface, batches []Batch) error

	// Present makes the submitted frame visible.
	// Failures are reported as *RenderError.
	Present(surf Surface) error
}
