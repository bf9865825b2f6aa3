// Command freefly is a sample host for the free-fly camera: it opens a GLFW
// window, forwards input events into a tracker, drives the camera from the
// engine tick loop, and logs the resulting pose. Rendering is intentionally
// absent; plug the camera's view-projection matrix into your own renderer.
package main

import (
	"fmt"
	"log"
	"runtime"
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"

	"freefly/engine"
	"freefly/engine/camera"
	"freefly/engine/input"
)

const (
	windowWidth  = 800
	windowHeight = 600
)

func init() {
	// GLFW event processing must run on the main OS thread.
	runtime.LockOSThread()
}

func main() {
	if err := glfw.Init(); err != nil {
		log.Fatalf("failed to initialize GLFW: %v", err)
	}
	defer glfw.Terminate()

	// No renderer attached, so no GL context either.
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)

	win, err := glfw.CreateWindow(windowWidth, windowHeight, "freefly", nil, nil)
	if err != nil {
		log.Fatalf("failed to create GLFW window: %v", err)
	}

	tracker := input.NewTracker(input.WithViewport(windowWidth, windowHeight))

	cam := camera.NewCamera(
		camera.WithFov(mgl32.DegToRad(60)),
		camera.WithAspect(float32(windowWidth)/float32(windowHeight)),
		camera.WithNear(0.1),
		camera.WithFar(100),
		camera.WithController(camera.NewCameraController(
			camera.WithPosition(0, 0, 3),
			camera.WithLookAt(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 1, 0}),
		)),
	)

	setupCallbacks(win, tracker, cam)

	eng := engine.NewEngine(
		engine.WithTickRate(60),
	)

	var sinceLog float32
	eng.SetTickCallback(func(dt float32) {
		movement, pointer := tracker.Snapshot()
		if err := cam.Update(dt, pointer, movement); err != nil {
			log.Printf("skipping camera tick: %v", err)
			return
		}

		sinceLog += dt
		if sinceLog >= 1 {
			sinceLog = 0
			pose := cam.Pose()
			log.Printf("pose: position=(%.2f, %.2f, %.2f) orientation=(%.3f, %.3f, %.3f, %.3f)",
				pose.Position.X(), pose.Position.Y(), pose.Position.Z(),
				pose.Orientation.W, pose.Orientation.X(), pose.Orientation.Y(), pose.Orientation.Z())
		}
	})

	fmt.Println("freefly: WASD=Move  Q/E=Down/Up  Shift=Fast  R=Reset Up  Left-drag=Look  Esc=Quit")

	go eng.Run()
	defer eng.Quit()

	for !win.ShouldClose() {
		glfw.PollEvents()
		time.Sleep(time.Millisecond)
	}
}

// setupCallbacks wires the GLFW window events into the input tracker and the
// camera's viewport-dependent settings.
//
// Parameters:
//   - win: the GLFW window providing input events
//   - tracker: the input tracker receiving key/pointer state
//   - cam: the camera whose aspect ratio follows the framebuffer size
func setupCallbacks(win *glfw.Window, tracker input.Tracker, cam camera.Camera) {
	win.SetKeyCallback(func(w *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if key == glfw.KeyEscape && action == glfw.Press {
			w.SetShouldClose(true)
			return
		}
		switch action {
		case glfw.Press:
			tracker.KeyDown(uint32(key))
		case glfw.Release:
			tracker.KeyUp(uint32(key))
		}
	})

	win.SetCursorPosCallback(func(_ *glfw.Window, xpos, ypos float64) {
		tracker.PointerMoved(int32(xpos), int32(ypos))
	})

	win.SetMouseButtonCallback(func(w *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		if button != glfw.MouseButtonLeft {
			return
		}
		switch action {
		case glfw.Press:
			xpos, ypos := w.GetCursorPos()
			tracker.PointerButtonDown(int32(xpos), int32(ypos))
		case glfw.Release:
			tracker.PointerButtonUp()
		}
	})

	win.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		tracker.SetViewport(width, height)
		if height > 0 {
			cam.SetAspect(float32(width) / float32(height))
		}
	})
}
