package render

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// vertexFloats is the interleaved layout: x, y, r, g, b, a.
const vertexFloats = 6

// circleSegments is the tessellation resolution for circle commands.
const circleSegments = 32

// Batch is a contiguous run of commands sharing one pipeline, flattened
// into an interleaved vertex buffer ready for backend upload. Batches are
// valid for one frame only; the batcher reuses nothing across flushes.
type Batch struct {
	Pipeline Pipeline
	Vertices []float32
}

// VertexCount returns the number of vertices in the batch.
func (b *Batch) VertexCount() int { return len(b.Vertices) / vertexFloats }

// Batcher collects the current frame's draw commands and compiles them
// into batches at flush time. It is owned by the loop goroutine for the
// duration of a frame; no locking.
type Batcher struct {
	commands []Command
}

// NewBatcher returns an empty batcher.
func NewBatcher() *Batcher {
	return &Batcher{}
}

// Submit appends a command to the current frame. O(1) amortized.
func (b *Batcher) Submit(cmd Command) {
	b.commands = append(b.commands, cmd)
}

// Len returns the number of commands pending for this frame.
func (b *Batcher) Len() int { return len(b.commands) }

// Flush compiles the frame's commands into batches and clears the command
// list. Batching is strict submission-order: consecutive commands sharing a
// pipeline merge into one batch, a pipeline change always starts a new
// batch, and commands never reorder past each other. An empty command list
// yields nil.
func (b *Batcher) Flush() []Batch {
	if len(b.commands) == 0 {
		return nil
	}

	var batches []Batch
	var cur *Batch
	for _, cmd := range b.commands {
		p := cmd.pipeline()
		if cur == nil || cur.Pipeline != p {
			batches = append(batches, Batch{Pipeline: p})
			cur = &batches[len(batches)-1]
		}
		cur.Vertices = appendCommand(cur.Vertices, cmd)
	}

	b.commands = b.commands[:0]
	return batches
}

func appendCommand(dst []float32, cmd Command) []float32 {
	switch cmd.Kind {
	case KindRectangle:
		x, y := cmd.Pos.X(), cmd.Pos.Y()
		w, h := cmd.Size.X(), cmd.Size.Y()
		a := mgl32.Vec2{x, y}
		b := mgl32.Vec2{x + w, y}
		c := mgl32.Vec2{x + w, y + h}
		d := mgl32.Vec2{x, y + h}
		dst = appendVertex(dst, a, cmd.Color)
		dst = appendVertex(dst, b, cmd.Color)
		dst = appendVertex(dst, c, cmd.Color)
		dst = appendVertex(dst, a, cmd.Color)
		dst = appendVertex(dst, c, cmd.Color)
		dst = appendVertex(dst, d, cmd.Color)
	case KindTriangle:
		dst = appendVertex(dst, cmd.A, cmd.Color)
		dst = appendVertex(dst, cmd.B, cmd.Color)
		dst = appendVertex(dst, cmd.C, cmd.Color)
	case KindLine:
		dst = appendVertex(dst, cmd.A, cmd.Color)
		dst = appendVertex(dst, cmd.B, cmd.Color)
	case KindCircle:
		// triangle fan unrolled into independent triangles
		cx, cy := cmd.Pos.X(), cmd.Pos.Y()
		center := mgl32.Vec2{cx, cy}
		step := 2 * math.Pi / float64(circleSegments)
		prev := mgl32.Vec2{cx + cmd.Radius, cy}
		for i := 1; i <= circleSegments; i++ {
			angle := step * float64(i)
			next := mgl32.Vec2{
				cx + cmd.Radius*float32(math.Cos(angle)),
				cy + cmd.Radius*float32(math.Sin(angle)),
			}
			dst = appendVertex(dst, center, cmd.Color)
			dst = appendVertex(dst, prev, cmd.Color)
			dst = appendVertex(dst, next, cmd.Color)
			prev = next
		}
	}
	return dst
}

func appendVertex(dst []float32, pos mgl32.Vec2, color mgl32.Vec4) []float32 {
	return append(dst, pos.X(), pos.Y(), color.X(), color.Y(), color.Z(), color.W())
}
