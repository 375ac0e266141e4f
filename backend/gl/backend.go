// Package gl implements the render backend capability on OpenGL 4.1
// core. It renders batches through a single color-per-vertex pipeline
// with a dynamic vertex buffer, presenting via the window's swap chain.
//
// Import it for side effects to make it available through the registry:
//
//	import _ "github.com/emberlight/ember/backend/gl"
package gl

import (
	"errors"
	"fmt"

	opengl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/emberlight/ember/render"
	"github.com/emberlight/ember/window"
)

func init() {
	render.Register(render.BackendGL, func() render.Backend { return &Backend{} })
}

// vertex layout: x, y, r, g, b, a (matches render.Batch)
const (
	vertexStride = 6 * 4
	posOffset    = 0
	colorOffset  = 2 * 4
)

// Backend is the OpenGL implementation of render.Backend.
type Backend struct{}

// Name returns "gl".
func (*Backend) Name() string { return render.BackendGL }

// Device holds the GL program and buffer objects for one window context.
type Device struct {
	win     *window.Window
	program uint32
	vao     uint32
	vbo     uint32
	projLoc int32
}

// Release deletes the GL objects. The context must still be current.
func (d *Device) Release() {
	if d.program != 0 {
		opengl.DeleteProgram(d.program)
		d.program = 0
	}
	if d.vao != 0 {
		opengl.DeleteVertexArrays(1, &d.vao)
		d.vao = 0
	}
	if d.vbo != 0 {
		opengl.DeleteBuffers(1, &d.vbo)
		d.vbo = 0
	}
}

// Surface is the default framebuffer of the window's GL context, sized at
// creation. Resizes recreate it so the viewport and projection follow the
// framebuffer.
type Surface struct {
	win    *window.Window
	width  int
	height int
}

// Size returns the surface extent in pixels.
func (s *Surface) Size() (int, int) { return s.width, s.height }

// Release is a no-op: the default framebuffer is owned by the context and
// dies with the window.
func (s *Surface) Release() {}

// CreateDevice makes the window's GL context current, loads the GL
// function pointers, and builds the shared 2D pipeline. The target must
// be a *window.Window.
func (b *Backend) CreateDevice(t render.Target) (render.Device, error) {
	win, ok := t.(*window.Window)
	if !ok {
		return nil, &window.PlatformError{Op: "create device", Err: errors.New("gl backend requires a glfw window")}
	}

	win.Native().MakeContextCurrent()
	if err := opengl.Init(); err != nil {
		return nil, &window.PlatformError{Op: "init opengl", Err: err}
	}
	// pacing belongs to the frame limiter, not the driver
	glfw.SwapInterval(0)

	program, err := compileProgram(vertexShaderSrc, fragmentShaderSrc)
	if err != nil {
		return nil, &window.PlatformError{Op: "build pipeline", Err: err}
	}

	var vao, vbo uint32
	opengl.GenVertexArrays(1, &vao)
	opengl.BindVertexArray(vao)
	opengl.GenBuffers(1, &vbo)
	opengl.BindBuffer(opengl.ARRAY_BUFFER, vbo)
	opengl.EnableVertexAttribArray(0)
	opengl.VertexAttribPointer(0, 2, opengl.FLOAT, false, vertexStride, opengl.PtrOffset(posOffset))
	opengl.EnableVertexAttribArray(1)
	opengl.VertexAttribPointer(1, 4, opengl.FLOAT, false, vertexStride, opengl.PtrOffset(colorOffset))
	opengl.BindBuffer(opengl.ARRAY_BUFFER, 0)
	opengl.BindVertexArray(0)

	opengl.Enable(opengl.BLEND)
	opengl.BlendFunc(opengl.SRC_ALPHA, opengl.ONE_MINUS_SRC_ALPHA)

	return &Device{
		win:     win,
		program: program,
		vao:     vao,
		vbo:     vbo,
		projLoc: opengl.GetUniformLocation(program, opengl.Str("proj\x00")),
	}, nil
}

// CreateSurface snapshots the current framebuffer size as the render
// target extent.
func (b *Backend) CreateSurface(dev render.Device, t render.Target) (render.Surface, error) {
	d, ok := dev.(*Device)
	if !ok {
		return nil, &window.PlatformError{Op: "create surface", Err: errors.New("device is not a gl device")}
	}
	w, h := t.FramebufferSize()
	return &Surface{win: d.win, width: w, height: h}, nil
}

// RecreateSurface releases the stale surface and builds one at the
// current framebuffer size.
func (b *Backend) RecreateSurface(dev render.Device, old render.Surface, t render.Target) (render.Surface, error) {
	if old != nil {
		old.Release()
	}
	return b.CreateSurface(dev, t)
}

// Submit clears the surface and draws each batch in order with a single
// dynamic-buffer upload per batch.
func (b *Backend) Submit(dev render.Device, surf render.Surface, batches []render.Batch) error {
	d, ok := dev.(*Device)
	if !ok {
		return &render.RenderError{Op: "submit", Err: errors.New("device is not a gl device")}
	}
	s, ok := surf.(*Surface)
	if !ok {
		return &render.RenderError{Op: "submit", Err: errors.New("surface is not a gl surface")}
	}

	opengl.Viewport(0, 0, int32(s.width), int32(s.height))
	opengl.ClearColor(0, 0, 0, 1)
	opengl.Clear(opengl.COLOR_BUFFER_BIT)

	opengl.UseProgram(d.program)
	proj := mgl32.Ortho2D(0, float32(s.width), float32(s.height), 0)
	opengl.UniformMatrix4fv(d.projLoc, 1, false, &proj[0])

	opengl.BindVertexArray(d.vao)
	opengl.BindBuffer(opengl.ARRAY_BUFFER, d.vbo)
	for _, batch := range batches {
		if len(batch.Vertices) == 0 {
			continue
		}
		// orphan the previous buffer; the driver reuses storage
		opengl.BufferData(opengl.ARRAY_BUFFER, len(batch.Vertices)*4, opengl.Ptr(batch.Vertices), opengl.STREAM_DRAW)

		mode := uint32(opengl.TRIANGLES)
		if batch.Pipeline == render.PipelineLines {
			mode = opengl.LINES
		}
		opengl.DrawArrays(mode, 0, int32(batch.VertexCount()))
	}
	opengl.BindBuffer(opengl.ARRAY_BUFFER, 0)
	opengl.BindVertexArray(0)

	if errCode := opengl.GetError(); errCode != opengl.NO_ERROR {
		return &render.RenderError{Op: "submit", Err: fmt.Errorf("gl error 0x%04x", errCode)}
	}
	return nil
}

// Present swaps the window's buffers.
func (b *Backend) Present(surf render.Surface) error {
	s, ok := surf.(*Surface)
	if !ok {
		return &render.RenderError{Op: "present", Err: errors.New("surface is not a gl surface")}
	}
	s.win.Native().SwapBuffers()
	return nil
}
