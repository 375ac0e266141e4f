// Command shapes is a small demo of the engine substrate: a rectangle
// steered with WASD, a spinning triangle, a circle that follows the
// pointer, and a crosshair of lines. Escape closes the window.
package main

import (
	"log"
	"log/slog"
	"math"
	"os"
	"runtime"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/xlab/closer"

	_ "github.com/emberlight/ember/backend/gl"
	"github.com/emberlight/ember/engine"
	"github.com/emberlight/ember/input"
	"github.com/emberlight/ember/render"
	"github.com/emberlight/ember/window"
)

func init() { runtime.LockOSThread() }

const (
	winW = 800
	winH = 600
)

func main() {
	engine.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	win, err := window.Create(window.Config{Width: winW, Height: winH, Title: "ember shapes"})
	if err != nil {
		log.Fatalf("create window: %v", err)
	}
	closer.Bind(win.RequestClose)

	backend := render.Default()
	if backend == nil {
		log.Fatal("no render backend registered")
	}

	loop, err := engine.New(win, backend, engine.Options{Mode: engine.LoopDriven, FPSLimit: 120})
	if err != nil {
		log.Fatalf("init engine: %v", err)
	}

	var (
		posX, posY = float32(winW/2 - 40), float32(winH/2 - 40)
		angle      float64
	)

	err = loop.Run(func(snap *input.Snapshot, dt float64, b *render.Batcher) {
		if snap.Pressed(input.KeyEscape) {
			win.RequestClose()
			return
		}

		speed := float32(240 * dt)
		if snap.Held(input.KeyW) {
			posY -= speed
		}
		if snap.Held(input.KeyS) {
			posY += speed
		}
		if snap.Held(input.KeyA) {
			posX -= speed
		}
		if snap.Held(input.KeyD) {
			posX += speed
		}
		angle += dt

		// steered rectangle
		b.Submit(render.Rect(posX, posY, 80, 80, mgl32.Vec4{0.9, 0.3, 0.2, 1}))

		// spinning triangle around the window center
		cx, cy := float32(winW/2), float32(winH/4)
		tri := [3]mgl32.Vec2{}
		for i := range tri {
			a := angle + float64(i)*2*math.Pi/3
			tri[i] = mgl32.Vec2{
				cx + 60*float32(math.Cos(a)),
				cy + 60*float32(math.Sin(a)),
			}
		}
		b.Submit(render.Tri(tri[0], tri[1], tri[2], mgl32.Vec4{0.2, 0.8, 0.4, 1}))

		// circle under the pointer
		mx, my := snap.Pointer()
		circleColor := mgl32.Vec4{0.3, 0.5, 0.9, 1}
		if snap.ButtonHeld(input.ButtonLeft) {
			circleColor = mgl32.Vec4{0.9, 0.8, 0.2, 1}
		}
		b.Submit(render.Circle(float32(mx), float32(my), 24, circleColor))

		// crosshair
		white := mgl32.Vec4{1, 1, 1, 1}
		b.Submit(render.Line(mgl32.Vec2{winW/2 - 10, winH / 2}, mgl32.Vec2{winW/2 + 10, winH / 2}, white))
		b.Submit(render.Line(mgl32.Vec2{winW / 2, winH/2 - 10}, mgl32.Vec2{winW / 2, winH/2 + 10}, white))
	}, nil)

	closer.Close()
	if err != nil {
		log.Fatalf("engine: %v", err)
	}
}
