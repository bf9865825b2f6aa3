package camera

import (
	"errors"

	"github.com/go-gl/mathgl/mgl32"
)

// ErrInvalidInput is returned by CameraController.Update when the tick inputs
// are malformed (negative or non-finite delta time, non-finite pointer
// coordinates). The controller leaves all of its state untouched when it
// returns this error, so the caller may simply skip the frame.
var ErrInvalidInput = errors.New("camera: invalid input")

// Pose is a camera placement in world space: a position and a unit quaternion
// representing the rotation from world space to camera space. The orientation
// is renormalized after every composition so it never drifts from unit length.
type Pose struct {
	// Position is the camera's world-space position in world units.
	Position mgl32.Vec3

	// Orientation rotates world space into camera space. The camera looks
	// down its local -Z axis, with +Y up and +X right.
	Orientation mgl32.Quat
}

// MovementInput is the set of per-tick movement flags the host derives from
// raw key state. Any combination of flags is valid; no mutual exclusion is
// enforced. The struct is read-only to the controller.
type MovementInput struct {
	// Forward, Backward, Left, Right, Up, Down select the camera-local axes
	// that contribute to the acceleration direction this tick.
	Forward  bool
	Backward bool
	Left     bool
	Right    bool
	Up       bool
	Down     bool

	// Fast scales the accumulated acceleration direction and the speed cap
	// by the controller's fast coefficient while held.
	Fast bool

	// ResetUp realigns the camera's local up with the world-up axis while
	// preserving the current view direction. One-shot: the host should set it
	// for a single tick per key press.
	ResetUp bool
}

// PointerState is the per-tick pointer sample the host derives from raw
// pointer events. Positions are normalized to the viewport ([0,1] per axis)
// so look sensitivity is device-size independent. The controller keeps the
// previous sample internally; the host only ever supplies the current one.
type PointerState struct {
	// Position is the current normalized pointer position.
	Position mgl32.Vec2

	// Dragging is true while the primary pointer button is held. Orientation
	// only changes while dragging, but the previous-pointer baseline is
	// updated every tick regardless, so a drag that starts mid-frame never
	// applies a delta from before the press.
	Dragging bool
}

// Default dynamics constants for a newly constructed controller.
const (
	// DefaultLookSensitivity is the look rotation in radians per unit of
	// normalized pointer travel (a full-viewport drag is a half turn).
	DefaultLookSensitivity = 3.14159265

	// DefaultAcceleration is the movement acceleration in world units per
	// second squared.
	DefaultAcceleration = 150.0

	// DefaultDamping is the velocity decay time constant in seconds applied
	// when no movement keys are held.
	DefaultDamping = 0.2

	// DefaultMaxSpeed is the velocity magnitude cap in world units per second.
	DefaultMaxSpeed = 10.0

	// DefaultFastCoefficient is the fast-mode multiplier applied to both the
	// acceleration direction and the speed cap.
	DefaultFastCoefficient = 5.0
)
