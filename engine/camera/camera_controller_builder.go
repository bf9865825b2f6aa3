package camera

import "github.com/go-gl/mathgl/mgl32"

// CameraControllerOption is a functional option for configuring a CameraController.
type CameraControllerOption func(*freeFlyController)

// WithPosition sets the initial camera position in world space.
//
// Parameters:
//   - x: X coordinate of the position
//   - y: Y coordinate of the position
//   - z: Z coordinate of the position
//
// Returns:
//   - CameraControllerOption: functional option to set the position
func WithPosition(x, y, z float32) CameraControllerOption {
	return func(fc *freeFlyController) {
		fc.pose.Position = mgl32.Vec3{x, y, z}
	}
}

// WithOrientation sets the initial orientation directly. The quaternion is
// renormalized during construction.
//
// Parameters:
//   - orientation: the world-to-camera rotation
//
// Returns:
//   - CameraControllerOption: functional option to set the orientation
func WithOrientation(orientation mgl32.Quat) CameraControllerOption {
	return func(fc *freeFlyController) {
		fc.pose.Orientation = orientation
	}
}

// WithLookAt derives the initial orientation from a look-at computation toward
// the target with the given up hint, from the position configured at the time
// the option is applied. Order WithPosition before WithLookAt.
//
// Parameters:
//   - target: world-space point the camera initially looks at
//   - up: up vector hint (must not be parallel to the view direction)
//
// Returns:
//   - CameraControllerOption: functional option to set the orientation
func WithLookAt(target, up mgl32.Vec3) CameraControllerOption {
	return func(fc *freeFlyController) {
		fc.pose.Orientation = lookAtOrientation(fc.pose.Position, target, up)
	}
}

// WithWorldUp sets the fixed world-up axis used by the up-vector reset.
// The vector is normalized before being stored.
//
// Parameters:
//   - x, y, z: world-up axis components
//
// Returns:
//   - CameraControllerOption: functional option to set the world-up axis
func WithWorldUp(x, y, z float32) CameraControllerOption {
	return func(fc *freeFlyController) {
		fc.worldUp = mgl32.Vec3{x, y, z}.Normalize()
	}
}

// WithLookSensitivity sets the look rotation in radians per unit of
// normalized pointer travel.
//
// Parameters:
//   - sensitivity: radians per unit pointer delta
//
// Returns:
//   - CameraControllerOption: functional option to set the look sensitivity
func WithLookSensitivity(sensitivity float32) CameraControllerOption {
	return func(fc *freeFlyController) {
		fc.lookSensitivity = sensitivity
	}
}

// WithAcceleration sets the movement acceleration in units/second².
//
// Parameters:
//   - acceleration: the acceleration constant
//
// Returns:
//   - CameraControllerOption: functional option to set the acceleration
func WithAcceleration(acceleration float32) CameraControllerOption {
	return func(fc *freeFlyController) {
		fc.acceleration = acceleration
	}
}

// WithDamping sets the velocity decay time constant in seconds. Velocity
// decays toward zero at rate 1/damping while no movement keys are held.
//
// Parameters:
//   - damping: the damping time constant in seconds
//
// Returns:
//   - CameraControllerOption: functional option to set the damping constant
func WithDamping(damping float32) CameraControllerOption {
	return func(fc *freeFlyController) {
		fc.damping = damping
	}
}

// WithMaxSpeed sets the velocity magnitude cap in units/second.
//
// Parameters:
//   - maxSpeed: the maximum speed
//
// Returns:
//   - CameraControllerOption: functional option to set the maximum speed
func WithMaxSpeed(maxSpeed float32) CameraControllerOption {
	return func(fc *freeFlyController) {
		fc.maxSpeed = maxSpeed
	}
}

// WithFastCoefficient sets the fast-mode multiplier applied to both the
// acceleration direction and the speed cap while the fast flag is held.
//
// Parameters:
//   - coefficient: the fast-mode multiplier
//
// Returns:
//   - CameraControllerOption: functional option to set the fast coefficient
func WithFastCoefficient(coefficient float32) CameraControllerOption {
	return func(fc *freeFlyController) {
		fc.fastCoefficient = coefficient
	}
}
