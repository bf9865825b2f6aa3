package camera

import "github.com/go-gl/mathgl/mgl32"

// CameraController defines the interface for free-fly camera control.
// The controller owns the camera pose (position + orientation) and transient
// movement state (accumulated velocity, previous pointer sample); each tick it
// converts a time delta and the host's raw input state into a new pose with
// frame-rate-independent, damped motion.
type CameraController interface {
	// Update advances the controller by one tick. While the pointer is
	// dragging, the delta from the previous sample drives an incremental
	// pitch/yaw rotation; held movement flags accelerate the camera along its
	// local axes with the velocity magnitude clamped to the max speed, and
	// velocity decays exponentially toward zero when no flags are held.
	//
	// A zero deltaSeconds is a valid, position-preserving call. Negative or
	// non-finite deltaSeconds and non-finite pointer coordinates are rejected
	// with ErrInvalidInput and the tick is skipped with no state change.
	//
	// Parameters:
	//   - deltaSeconds: elapsed seconds since the previous tick (>= 0)
	//   - pointer: the current normalized pointer sample
	//   - movement: the movement/modifier flags held this tick
	//
	// Returns:
	//   - Pose: the updated camera pose
	//   - error: ErrInvalidInput if the tick inputs are malformed
	Update(deltaSeconds float32, pointer PointerState, movement MovementInput) (Pose, error)

	// Pose returns the current camera pose.
	//
	// Returns:
	//   - Pose: the current position and orientation
	Pose() Pose

	// SetPose replaces the camera pose directly. The orientation is
	// renormalized before being stored.
	//
	// Parameters:
	//   - pose: the new position and orientation
	SetPose(pose Pose)

	// Velocity returns the current velocity vector in world units per second.
	//
	// Returns:
	//   - mgl32.Vec3: the current velocity
	Velocity() mgl32.Vec3

	// SetVelocity replaces the current velocity vector. Hosts typically use
	// this to halt motion when the window loses focus.
	//
	// Parameters:
	//   - velocity: the new velocity in world units per second
	SetVelocity(velocity mgl32.Vec3)

	// LookSensitivity returns the look rotation in radians per unit of
	// normalized pointer travel.
	//
	// Returns:
	//   - float32: radians per unit pointer delta
	LookSensitivity() float32

	// Acceleration returns the movement acceleration in units/second².
	//
	// Returns:
	//   - float32: the acceleration constant
	Acceleration() float32

	// Damping returns the velocity decay time constant in seconds.
	//
	// Returns:
	//   - float32: the damping time constant
	Damping() float32

	// MaxSpeed returns the velocity magnitude cap in units/second.
	//
	// Returns:
	//   - float32: the maximum speed
	MaxSpeed() float32

	// FastCoefficient returns the fast-mode speed multiplier.
	//
	// Returns:
	//   - float32: the fast-mode multiplier
	FastCoefficient() float32

	// WorldUp returns the fixed world-up axis used by the up-vector reset.
	//
	// Returns:
	//   - mgl32.Vec3: the unit world-up axis
	WorldUp() mgl32.Vec3
}
