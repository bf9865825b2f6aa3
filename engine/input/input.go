// Package input collects raw window events (keys, pointer, viewport size)
// and condenses them into the per-tick MovementInput/PointerState pair the
// camera controller consumes. The tracker replaces the file-scope key and
// mouse globals found in typical viewer prototypes with an explicit,
// host-owned instance.
package input

import (
	"sync"

	"github.com/go-gl/mathgl/mgl32"

	"freefly/common"
	"freefly/engine/camera"
)

// Action identifies a bindable camera control.
type Action int

const (
	// ActionForward moves the camera along its local forward axis.
	ActionForward Action = iota
	// ActionBackward moves the camera against its local forward axis.
	ActionBackward
	// ActionLeft strafes the camera against its local right axis.
	ActionLeft
	// ActionRight strafes the camera along its local right axis.
	ActionRight
	// ActionUp moves the camera along its local up axis.
	ActionUp
	// ActionDown moves the camera against its local up axis.
	ActionDown
	// ActionFast engages the fast-mode speed multiplier while held.
	ActionFast
	// ActionResetUp triggers the up-vector reset on press.
	ActionResetUp
)

// Tracker accumulates window input events between ticks and snapshots them
// into the camera's input structs. Thread-safe: window callbacks typically
// arrive on the platform's main thread while Snapshot is called from the tick
// goroutine.
type Tracker interface {
	// KeyDown records a key press.
	//
	// Parameters:
	//   - keyCode: the virtual key code (GLFW values, see the common package)
	KeyDown(keyCode uint32)

	// KeyUp records a key release.
	//
	// Parameters:
	//   - keyCode: the virtual key code
	KeyUp(keyCode uint32)

	// PointerMoved records the current pointer position in pixels.
	//
	// Parameters:
	//   - x, y: pointer position in pixels from the viewport's top-left
	PointerMoved(x, y int32)

	// PointerButtonDown records a primary pointer button press, starting a drag.
	//
	// Parameters:
	//   - x, y: pointer position in pixels at the time of the press
	PointerButtonDown(x, y int32)

	// PointerButtonUp records a primary pointer button release, ending a drag.
	PointerButtonUp()

	// SetViewport records the viewport dimensions used to normalize pointer
	// coordinates. Non-positive dimensions are ignored.
	//
	// Parameters:
	//   - width: viewport width in pixels
	//   - height: viewport height in pixels
	SetViewport(width, height int)

	// Bind maps an action to a key code, replacing the previous binding.
	//
	// Parameters:
	//   - action: the camera control to bind
	//   - keyCode: the virtual key code
	Bind(action Action, keyCode uint32)

	// Snapshot returns the movement flags and pointer sample for this tick.
	// Pointer coordinates are normalized by the viewport dimensions. The
	// reset-up trigger is one-shot: it reads true for a single snapshot per
	// key press, then clears.
	//
	// Returns:
	//   - camera.MovementInput: the held movement/modifier flags
	//   - camera.PointerState: the normalized pointer sample
	Snapshot() (camera.MovementInput, camera.PointerState)
}

// tracker is the single implementation of Tracker.
type tracker struct {
	mu *sync.Mutex

	keys     map[uint32]bool
	bindings map[Action]uint32

	pointerX int32
	pointerY int32
	dragging bool

	width  int
	height int

	resetPending bool
}

var _ Tracker = &tracker{}

// NewTracker creates a Tracker with default bindings (W/S forward/backward,
// A/D left/right, Q/E down/up, Left Shift fast, R reset-up) and a default
// viewport of 1280x720.
//
// Parameters:
//   - options: functional options to configure the tracker
//
// Returns:
//   - Tracker: the newly created tracker
func NewTracker(options ...TrackerOption) Tracker {
	t := &tracker{
		mu:   &sync.Mutex{},
		keys: make(map[uint32]bool),
		bindings: map[Action]uint32{
			ActionForward:  common.KeyW,
			ActionBackward: common.KeyS,
			ActionLeft:     common.KeyA,
			ActionRight:    common.KeyD,
			ActionUp:       common.KeyE,
			ActionDown:     common.KeyQ,
			ActionFast:     common.KeyLeftShift,
			ActionResetUp:  common.KeyR,
		},
		width:  1280,
		height: 720,
	}
	for _, option := range options {
		option(t)
	}
	return t
}

func (t *tracker) KeyDown(keyCode uint32) {
	t.mu.Lock()
	defer t.mu.Unlock()
	// Edge-trigger the reset action so key auto-repeat does not refire it.
	if keyCode == t.bindings[ActionResetUp] && !t.keys[keyCode] {
		t.resetPending = true
	}
	t.keys[keyCode] = true
}

func (t *tracker) KeyUp(keyCode uint32) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.keys[keyCode] = false
}

func (t *tracker) PointerMoved(x, y int32) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.pointerX = x
	t.pointerY = y
}

func (t *tracker) PointerButtonDown(x, y int32) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.pointerX = x
	t.pointerY = y
	t.dragging = true
}

func (t *tracker) PointerButtonUp() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.dragging = false
}

func (t *tracker) SetViewport(width, height int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if width <= 0 || height <= 0 {
		return
	}
	t.width = width
	t.height = height
}

func (t *tracker) Bind(action Action, keyCode uint32) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.bindings[action] = keyCode
}

func (t *tracker) Snapshot() (camera.MovementInput, camera.PointerState) {
	t.mu.Lock()
	defer t.mu.Unlock()

	movement := camera.MovementInput{
		Forward:  t.keys[t.bindings[ActionForward]],
		Backward: t.keys[t.bindings[ActionBackward]],
		Left:     t.keys[t.bindings[ActionLeft]],
		Right:    t.keys[t.bindings[ActionRight]],
		Up:       t.keys[t.bindings[ActionUp]],
		Down:     t.keys[t.bindings[ActionDown]],
		Fast:     t.keys[t.bindings[ActionFast]],
		ResetUp:  t.resetPending,
	}
	t.resetPending = false

	pointer := camera.PointerState{
		Position: mgl32.Vec2{
			float32(t.pointerX) / float32(t.width),
			float32(t.pointerY) / float32(t.height),
		},
		Dragging: t.dragging,
	}
	return movement, pointer
}
