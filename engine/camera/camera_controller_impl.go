package camera

import (
	"fmt"
	"math"
	"sync"

	"github.com/go-gl/mathgl/mgl32"
)

// freeFlyController is the single implementation of CameraController.
// Orientation updates come from drag deltas (pitch from vertical travel, yaw
// from horizontal travel, no roll); translation comes from damped acceleration
// along the camera's local axes. All state lives on the instance; the host
// passes input in explicitly each tick, nothing is shared globally.
type freeFlyController struct {
	mu *sync.Mutex

	pose     Pose
	velocity mgl32.Vec3

	// Previous normalized pointer sample. hasPointer gates the very first
	// sample so it seeds the baseline without producing a delta.
	prevPointer mgl32.Vec2
	hasPointer  bool

	worldUp mgl32.Vec3

	lookSensitivity float32
	acceleration    float32
	damping         float32
	maxSpeed        float32
	fastCoefficient float32
}

// Compile-time interface compliance check
var _ CameraController = &freeFlyController{}

// NewCameraController creates a free-fly camera controller with sensible
// defaults: identity orientation at the origin, world-up +Y, and the Default*
// dynamics constants. Use WithLookAt to derive the initial orientation from a
// target point, matching how viewers typically frame a loaded model.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - CameraController: the newly created controller
func NewCameraController(options ...CameraControllerOption) CameraController {
	fc := &freeFlyController{
		mu: &sync.Mutex{},
		pose: Pose{
			Position:    mgl32.Vec3{0, 0, 3},
			Orientation: mgl32.QuatIdent(),
		},
		worldUp:         mgl32.Vec3{0, 1, 0},
		lookSensitivity: DefaultLookSensitivity,
		acceleration:    DefaultAcceleration,
		damping:         DefaultDamping,
		maxSpeed:        DefaultMaxSpeed,
		fastCoefficient: DefaultFastCoefficient,
	}

	for _, option := range options {
		option(fc)
	}

	fc.pose.Orientation = fc.pose.Orientation.Normalize()
	return fc
}

func (fc *freeFlyController) Update(deltaSeconds float32, pointer PointerState, movement MovementInput) (Pose, error) {
	fc.mu.Lock()
	defer fc.mu.Unlock()

	if deltaSeconds < 0 || !finite(deltaSeconds) || !finite(pointer.Position.X()) || !finite(pointer.Position.Y()) {
		return fc.pose, fmt.Errorf("rejecting tick (dt=%v, pointer=%v): %w", deltaSeconds, pointer.Position, ErrInvalidInput)
	}

	if movement.ResetUp {
		fc.resetUp()
	}

	// Look: only an active drag rotates the view, but the previous sample is
	// overwritten every tick so the next delta is always measured from "now".
	if pointer.Dragging && fc.hasPointer {
		delta := pointer.Position.Sub(fc.prevPointer)
		if delta.X() != 0 || delta.Y() != 0 {
			increment := mgl32.AnglesToQuat(
				fc.lookSensitivity*delta.Y(), // pitch from vertical travel
				fc.lookSensitivity*delta.X(), // yaw from horizontal travel
				0,
				mgl32.XYZ,
			)
			fc.pose.Orientation = increment.Mul(fc.pose.Orientation).Normalize()
		}
	}
	fc.prevPointer = pointer.Position
	fc.hasPointer = true

	// Accumulate the desired acceleration direction from the camera's local
	// axes, derived from the (possibly just-rotated) orientation.
	inverse := fc.pose.Orientation.Conjugate()
	forward := inverse.Rotate(mgl32.Vec3{0, 0, -1})
	right := inverse.Rotate(mgl32.Vec3{1, 0, 0})
	up := inverse.Rotate(mgl32.Vec3{0, 1, 0})

	var direction mgl32.Vec3
	if movement.Forward {
		direction = direction.Add(forward)
	}
	if movement.Backward {
		direction = direction.Sub(forward)
	}
	if movement.Right {
		direction = direction.Add(right)
	}
	if movement.Left {
		direction = direction.Sub(right)
	}
	if movement.Up {
		direction = direction.Add(up)
	}
	if movement.Down {
		direction = direction.Sub(up)
	}
	if movement.Fast {
		direction = direction.Mul(fc.fastCoefficient)
	}

	if direction == (mgl32.Vec3{}) {
		// No movement keys held: decay velocity toward zero. The clamp keeps
		// a large dt relative to the damping constant from overshooting into
		// reversed velocity. Position is not advanced on a pure-decay tick.
		decay := float32(1)
		if fc.damping > 0 {
			decay = deltaSeconds / fc.damping
			if decay > 1 {
				decay = 1
			}
		}
		fc.velocity = fc.velocity.Sub(fc.velocity.Mul(decay))
		return fc.pose, nil
	}

	fc.velocity = fc.velocity.Add(direction.Mul(fc.acceleration * deltaSeconds))

	limit := fc.maxSpeed
	if movement.Fast {
		limit *= fc.fastCoefficient
	}
	if speed := fc.velocity.Len(); speed > limit {
		fc.velocity = fc.velocity.Mul(limit / speed)
	}

	fc.pose.Position = fc.pose.Position.Add(fc.velocity.Mul(deltaSeconds))
	return fc.pose, nil
}

func (fc *freeFlyController) Pose() Pose {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	return fc.pose
}

func (fc *freeFlyController) SetPose(pose Pose) {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	pose.Orientation = pose.Orientation.Normalize()
	fc.pose = pose
}

func (fc *freeFlyController) Velocity() mgl32.Vec3 {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	return fc.velocity
}

func (fc *freeFlyController) SetVelocity(velocity mgl32.Vec3) {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	fc.velocity = velocity
}

func (fc *freeFlyController) LookSensitivity() float32 {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	return fc.lookSensitivity
}

func (fc *freeFlyController) Acceleration() float32 {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	return fc.acceleration
}

func (fc *freeFlyController) Damping() float32 {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	return fc.damping
}

func (fc *freeFlyController) MaxSpeed() float32 {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	return fc.maxSpeed
}

func (fc *freeFlyController) FastCoefficient() float32 {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	return fc.fastCoefficient
}

func (fc *freeFlyController) WorldUp() mgl32.Vec3 {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	return fc.worldUp
}

// --- internal helpers ---

// resetUp reconstructs the orientation so the camera's local up aligns with
// the world-up axis while the current view direction is preserved. Idempotent:
// an already-aligned camera is unchanged beyond floating-point noise. Skipped
// when the forward vector is within ~1e-3 of parallel to world-up, where the
// look-at reconstruction degenerates. Caller must hold the mutex.
func (fc *freeFlyController) resetUp() {
	forward := fc.pose.Orientation.Conjugate().Rotate(mgl32.Vec3{0, 0, -1})
	if abs32(forward.Dot(fc.worldUp)) > 0.999 {
		return
	}
	fc.pose.Orientation = lookAtOrientation(fc.pose.Position, fc.pose.Position.Add(forward), fc.worldUp)
}

// lookAtOrientation returns the world-to-camera rotation of a camera at eye
// looking toward center with the given up hint, extracted from the rotation
// part of the equivalent view matrix.
//
// Parameters:
//   - eye: camera position in world space
//   - center: target point the camera looks at
//   - up: up vector hint (must not be parallel to center-eye)
//
// Returns:
//   - mgl32.Quat: the unit world-to-camera orientation
func lookAtOrientation(eye, center, up mgl32.Vec3) mgl32.Quat {
	return mgl32.Mat4ToQuat(mgl32.LookAtV(eye, center, up)).Normalize()
}

// finite reports whether f is neither NaN nor infinite.
func finite(f float32) bool {
	f64 := float64(f)
	return !math.IsNaN(f64) && !math.IsInf(f64, 0)
}

// abs32 is math.Abs for float32.
func abs32(f float32) float32 {
	if f < 0 {
		return -f
	}
	return f
}
