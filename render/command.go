// Package render holds the backend-agnostic 2D draw pipeline: draw
// commands submitted by user logic, the geometry batcher that compiles
// them into per-pipeline batches once per frame, and the capability
// interface a native graphics backend implements to execute them.
package render

import "github.com/go-gl/mathgl/mgl32"

// CommandKind discriminates draw command variants.
type CommandKind uint8

const (
	KindRectangle CommandKind = iota
	KindTriangle
	KindLine
	KindCircle
)

// Pipeline is the render-state key a batch is keyed on. Commands that
// rasterize as filled triangles share one pipeline; line primitives need
// another.
type Pipeline uint8

const (
	PipelineFilled Pipeline = iota
	PipelineLines
)

// Command is one 2D draw request in window pixel coordinates
// (top-left origin). Commands draw in submission order.
type Command struct {
	Kind CommandKind

	// Rectangle: Pos is the top-left corner, Size the extent.
	// Circle: Pos is the center, Radius the radius.
	Pos    mgl32.Vec2
	Size   mgl32.Vec2
	Radius float32

	// Triangle uses A, B, C; Line uses A, B.
	A, B, C mgl32.Vec2

	Color mgl32.Vec4
}

// Rect returns a filled axis-aligned rectangle command.
func Rect(x, y, w, h float32, color mgl32.Vec4) Command {
	return Command{
		Kind:  KindRectangle,
		Pos:   mgl32.Vec2{x, y},
		Size:  mgl32.Vec2{w, h},
		Color: color,
	}
}

// Tri returns a filled triangle command.
func Tri(a, b, c mgl32.Vec2, color mgl32.Vec4) Command {
	return Command{Kind: KindTriangle, A: a, B: b, C: c, Color: color}
}

// Line returns a one-pixel line segment command.
func Line(a, b mgl32.Vec2, color mgl32.Vec4) Command {
	return Command{Kind: KindLine, A: a, B: b, Color: color}
}

// Circle returns a filled circle command centered at (x, y).
func Circle(x, y, radius float32, color mgl32.Vec4) Command {
	return Command{
		Kind:   KindCircle,
		Pos:    mgl32.Vec2{x, y},
		Radius: radius,
		Color:  color,
	}
}

// pipeline returns the render-state key for the command.
func (c Command) pipeline() Pipeline {
	if c.Kind == KindLine {
		return PipelineLines
	}
	return PipelineFilled
}
