package camera

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func approx(a, b, tol float32) bool {
	return math.Abs(float64(a-b)) <= float64(tol)
}

func approxVec3(a, b mgl32.Vec3, tol float32) bool {
	return approx(a.X(), b.X(), tol) && approx(a.Y(), b.Y(), tol) && approx(a.Z(), b.Z(), tol)
}

func forwardOf(pose Pose) mgl32.Vec3 {
	return pose.Orientation.Conjugate().Rotate(mgl32.Vec3{0, 0, -1})
}

func TestZeroDeltaStability(t *testing.T) {
	ctrl := NewCameraController(WithPosition(1, 2, 3))
	ctrl.SetVelocity(mgl32.Vec3{4, 0, -1})
	before := ctrl.Pose()

	pose, err := ctrl.Update(0, PointerState{}, MovementInput{})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if pose.Position != before.Position {
		t.Fatalf("position changed on zero-dt tick: %v -> %v", before.Position, pose.Position)
	}
	if pose.Orientation != before.Orientation {
		t.Fatalf("orientation changed on zero-dt tick")
	}
	if ctrl.Velocity() != (mgl32.Vec3{4, 0, -1}) {
		t.Fatalf("velocity changed on zero-dt tick: %v", ctrl.Velocity())
	}

	// Held keys with zero dt must also leave the position untouched.
	pose, err = ctrl.Update(0, PointerState{}, MovementInput{Forward: true})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if pose.Position != before.Position {
		t.Fatalf("position changed on zero-dt accelerating tick: %v", pose.Position)
	}
}

func TestDampingConvergence(t *testing.T) {
	ctrl := NewCameraController(WithDamping(0.2))
	ctrl.SetVelocity(mgl32.Vec3{5, -3, 2})

	prev := ctrl.Velocity().Len()
	for i := 0; i < 100; i++ {
		if _, err := ctrl.Update(0.016, PointerState{}, MovementInput{}); err != nil {
			t.Fatalf("tick %d: %v", i, err)
		}
		v := ctrl.Velocity()
		if v.Len() > prev {
			t.Fatalf("tick %d: speed grew during decay: %v > %v", i, v.Len(), prev)
		}
		// Pure exponential decay never flips a component's sign.
		if v.X() < 0 || v.Y() > 0 || v.Z() < 0 {
			t.Fatalf("tick %d: velocity component reversed sign: %v", i, v)
		}
		prev = v.Len()
	}
	if prev > 1.0 {
		t.Fatalf("velocity did not converge toward zero: %v", prev)
	}
}

func TestDampingDecayFactor(t *testing.T) {
	// Each tick multiplies velocity by (1 - min(dt/damping, 1)).
	ctrl := NewCameraController(WithDamping(0.2))
	ctrl.SetVelocity(mgl32.Vec3{5, 0, 0})

	for i := 0; i < 5; i++ {
		if _, err := ctrl.Update(0.016, PointerState{}, MovementInput{}); err != nil {
			t.Fatalf("tick %d: %v", i, err)
		}
	}

	want := float32(5 * math.Pow(1-0.016/0.2, 5))
	if got := ctrl.Velocity().Len(); !approx(got, want, 1e-3) {
		t.Fatalf("speed after 5 decay ticks = %v, want %v", got, want)
	}
}

func TestDampingClampPreventsOvershoot(t *testing.T) {
	// dt much larger than the damping constant: velocity must stop at zero,
	// not reverse.
	ctrl := NewCameraController(WithDamping(0.05))
	ctrl.SetVelocity(mgl32.Vec3{3, 0, 0})

	if _, err := ctrl.Update(1.0, PointerState{}, MovementInput{}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if got := ctrl.Velocity(); got != (mgl32.Vec3{}) {
		t.Fatalf("velocity after clamped decay = %v, want zero", got)
	}
}

func TestDecayDoesNotAdvancePosition(t *testing.T) {
	ctrl := NewCameraController(WithPosition(1, 1, 1))
	ctrl.SetVelocity(mgl32.Vec3{5, 0, 0})

	pose, err := ctrl.Update(0.1, PointerState{}, MovementInput{})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if pose.Position != (mgl32.Vec3{1, 1, 1}) {
		t.Fatalf("position advanced during pure decay: %v", pose.Position)
	}
}

func TestSpeedClamp(t *testing.T) {
	ctrl := NewCameraController(WithMaxSpeed(10), WithAcceleration(150))

	for i := 0; i < 50; i++ {
		if _, err := ctrl.Update(0.016, PointerState{}, MovementInput{Forward: true}); err != nil {
			t.Fatalf("tick %d: %v", i, err)
		}
		if speed := ctrl.Velocity().Len(); speed > 10+1e-4 {
			t.Fatalf("tick %d: speed %v exceeds cap", i, speed)
		}
	}
	if speed := ctrl.Velocity().Len(); !approx(speed, 10, 1e-3) {
		t.Fatalf("sustained input did not converge to max speed: %v", speed)
	}
}

func TestSpeedClampFastMode(t *testing.T) {
	ctrl := NewCameraController(WithMaxSpeed(10), WithFastCoefficient(5))

	for i := 0; i < 50; i++ {
		if _, err := ctrl.Update(0.016, PointerState{}, MovementInput{Forward: true, Fast: true}); err != nil {
			t.Fatalf("tick %d: %v", i, err)
		}
		if speed := ctrl.Velocity().Len(); speed > 50+1e-3 {
			t.Fatalf("tick %d: speed %v exceeds fast cap", i, speed)
		}
	}
	if speed := ctrl.Velocity().Len(); !approx(speed, 50, 1e-2) {
		t.Fatalf("fast input did not converge to fast cap: %v", speed)
	}
}

func TestOrientationStaysUnitNorm(t *testing.T) {
	ctrl := NewCameraController()

	pointer := mgl32.Vec2{0.5, 0.5}
	for i := 0; i < 500; i++ {
		pointer = pointer.Add(mgl32.Vec2{0.013, -0.007})
		movement := MovementInput{Forward: i%3 == 0, Left: i%5 == 0, Up: i%7 == 0}
		if i%97 == 0 {
			movement.ResetUp = true
		}
		if _, err := ctrl.Update(0.016, PointerState{Position: pointer, Dragging: true}, movement); err != nil {
			t.Fatalf("tick %d: %v", i, err)
		}
		if norm := ctrl.Pose().Orientation.Len(); !approx(norm, 1, 1e-5) {
			t.Fatalf("tick %d: orientation norm drifted to %v", i, norm)
		}
	}
}

func TestNoDragLeavesOrientationUnchanged(t *testing.T) {
	ctrl := NewCameraController()
	before := ctrl.Pose().Orientation

	pointer := mgl32.Vec2{}
	for i := 0; i < 20; i++ {
		pointer = pointer.Add(mgl32.Vec2{0.2, -0.3})
		if _, err := ctrl.Update(0.016, PointerState{Position: pointer, Dragging: false}, MovementInput{}); err != nil {
			t.Fatalf("tick %d: %v", i, err)
		}
	}
	if ctrl.Pose().Orientation != before {
		t.Fatalf("orientation changed without a drag")
	}
}

func TestFirstDragSampleAppliesNoDelta(t *testing.T) {
	ctrl := NewCameraController()
	before := ctrl.Pose().Orientation

	// The very first pointer sample seeds the baseline only.
	if _, err := ctrl.Update(0.016, PointerState{Position: mgl32.Vec2{0.7, 0.3}, Dragging: true}, MovementInput{}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if ctrl.Pose().Orientation != before {
		t.Fatalf("first pointer sample rotated the view")
	}

	// The second sample produces a delta from the first.
	if _, err := ctrl.Update(0.016, PointerState{Position: mgl32.Vec2{0.8, 0.3}, Dragging: true}, MovementInput{}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if ctrl.Pose().Orientation == before {
		t.Fatalf("drag delta did not rotate the view")
	}
}

func TestDragBaselineTracksWhileNotDragging(t *testing.T) {
	// A drag that starts mid-frame must not pick up a delta accumulated
	// before the press: the baseline is overwritten every tick.
	ctrl := NewCameraController()

	if _, err := ctrl.Update(0.016, PointerState{Position: mgl32.Vec2{0.1, 0.1}}, MovementInput{}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if _, err := ctrl.Update(0.016, PointerState{Position: mgl32.Vec2{0.9, 0.9}}, MovementInput{}); err != nil {
		t.Fatalf("update: %v", err)
	}
	before := ctrl.Pose().Orientation

	// Drag begins; same position as the previous sample, so no rotation.
	if _, err := ctrl.Update(0.016, PointerState{Position: mgl32.Vec2{0.9, 0.9}, Dragging: true}, MovementInput{}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if ctrl.Pose().Orientation != before {
		t.Fatalf("drag start applied a stale delta")
	}
}

func TestUpResetPreservesForward(t *testing.T) {
	rolled := mgl32.AnglesToQuat(0.3, 0.2, 0.7, mgl32.XYZ)
	ctrl := NewCameraController(WithPosition(1, 2, 3), WithOrientation(rolled))
	forwardBefore := forwardOf(ctrl.Pose())

	if _, err := ctrl.Update(0.016, PointerState{}, MovementInput{ResetUp: true}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if !approxVec3(forwardOf(ctrl.Pose()), forwardBefore, 1e-4) {
		t.Fatalf("up reset changed the view direction: %v -> %v", forwardBefore, forwardOf(ctrl.Pose()))
	}

	// Roll is removed: the camera's right axis ends up horizontal, and local
	// up gets as close to world up as the pitched forward allows,
	// up.world = sqrt(1 - (forward.world)^2).
	inverse := ctrl.Pose().Orientation.Conjugate()
	right := inverse.Rotate(mgl32.Vec3{1, 0, 0})
	if r := abs32(right.Dot(ctrl.WorldUp())); r > 1e-5 {
		t.Fatalf("up reset left residual roll: right.world = %v", r)
	}
	up := inverse.Rotate(mgl32.Vec3{0, 1, 0})
	fw := forwardOf(ctrl.Pose()).Dot(ctrl.WorldUp())
	want := float32(math.Sqrt(float64(1 - fw*fw)))
	if !approx(up.Dot(ctrl.WorldUp()), want, 1e-4) {
		t.Fatalf("up.world = %v, want %v for forward.world = %v", up.Dot(ctrl.WorldUp()), want, fw)
	}
}

func TestUpResetAlignsUpForLevelForward(t *testing.T) {
	// Pure roll about the view axis: forward stays perpendicular to world up,
	// so the reset can achieve exact alignment.
	rolled := mgl32.AnglesToQuat(0, 0, 0.6, mgl32.XYZ)
	ctrl := NewCameraController(WithOrientation(rolled))
	forwardBefore := forwardOf(ctrl.Pose())

	if _, err := ctrl.Update(0.016, PointerState{}, MovementInput{ResetUp: true}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if !approxVec3(forwardOf(ctrl.Pose()), forwardBefore, 1e-4) {
		t.Fatalf("up reset changed the view direction: %v -> %v", forwardBefore, forwardOf(ctrl.Pose()))
	}
	up := ctrl.Pose().Orientation.Conjugate().Rotate(mgl32.Vec3{0, 1, 0})
	if up.Dot(ctrl.WorldUp()) < 1-1e-5 {
		t.Fatalf("up reset did not align local up with world up: %v", up)
	}
}

func TestUpResetIdempotent(t *testing.T) {
	rolled := mgl32.AnglesToQuat(0.4, -0.3, 0.5, mgl32.XYZ)
	ctrl := NewCameraController(WithPosition(-1, 0, 4), WithOrientation(rolled))

	if _, err := ctrl.Update(0.016, PointerState{}, MovementInput{ResetUp: true}); err != nil {
		t.Fatalf("first reset: %v", err)
	}
	first := ctrl.Pose().Orientation

	if _, err := ctrl.Update(0.016, PointerState{}, MovementInput{ResetUp: true}); err != nil {
		t.Fatalf("second reset: %v", err)
	}
	second := ctrl.Pose().Orientation

	// Compare via the dot product so q and -q count as the same rotation.
	dot := first.Dot(second)
	if math.Abs(float64(dot)) < 1-1e-5 {
		t.Fatalf("second reset moved the orientation: dot=%v", dot)
	}
}

func TestForwardThrustScenario(t *testing.T) {
	// Thrust forward for 10 ticks of 0.1s with default constants.
	start := mgl32.Vec3{-2, 1, 3}
	ctrl := NewCameraController(
		WithPosition(start.X(), start.Y(), start.Z()),
		WithLookAt(mgl32.Vec3{0.5, 0.5, 0}, mgl32.Vec3{0, 0, 1}),
		WithAcceleration(150),
		WithMaxSpeed(10),
		WithDamping(0.2),
	)

	forward := forwardOf(ctrl.Pose())
	wantForward := mgl32.Vec3{0.5, 0.5, 0}.Sub(start).Normalize()
	if !approxVec3(forward, wantForward, 1e-4) {
		t.Fatalf("look-at forward = %v, want %v", forward, wantForward)
	}

	prevDisplacement := float32(0)
	for i := 0; i < 10; i++ {
		pose, err := ctrl.Update(0.1, PointerState{}, MovementInput{Forward: true})
		if err != nil {
			t.Fatalf("tick %d: %v", i, err)
		}
		displacement := pose.Position.Sub(start).Len()
		if displacement <= prevDisplacement {
			t.Fatalf("tick %d: displacement not increasing: %v <= %v", i, displacement, prevDisplacement)
		}
		prevDisplacement = displacement
	}

	if speed := ctrl.Velocity().Len(); !approx(speed, 10, 1e-3) {
		t.Fatalf("final speed = %v, want 10", speed)
	}

	// Acceleration saturates the clamp on the first tick, so every tick
	// advances exactly maxSpeed*dt along the initial forward vector.
	offset := ctrl.Pose().Position.Sub(start)
	if !approx(offset.Len(), 10, 1e-2) {
		t.Fatalf("total displacement = %v, want 10", offset.Len())
	}
	if offset.Normalize().Dot(wantForward) < 0.9999 {
		t.Fatalf("displacement direction %v diverged from forward %v", offset.Normalize(), wantForward)
	}
}

func TestInvalidInputSkipsTick(t *testing.T) {
	nan := float32(math.NaN())

	ctrl := NewCameraController(WithPosition(1, 2, 3))
	ctrl.SetVelocity(mgl32.Vec3{1, 0, 0})
	before := ctrl.Pose()

	cases := []struct {
		name    string
		dt      float32
		pointer PointerState
	}{
		{"negative dt", -0.016, PointerState{}},
		{"nan dt", nan, PointerState{}},
		{"inf dt", float32(math.Inf(1)), PointerState{}},
		{"nan pointer", 0.016, PointerState{Position: mgl32.Vec2{nan, 0.5}, Dragging: true}},
	}
	for _, tc := range cases {
		pose, err := ctrl.Update(tc.dt, tc.pointer, MovementInput{Forward: true})
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("%s: err = %v, want ErrInvalidInput", tc.name, err)
		}
		if pose != before {
			t.Fatalf("%s: pose changed on rejected tick", tc.name)
		}
		if ctrl.Velocity() != (mgl32.Vec3{1, 0, 0}) {
			t.Fatalf("%s: velocity changed on rejected tick", tc.name)
		}
	}
}

func TestSetPoseNormalizesOrientation(t *testing.T) {
	ctrl := NewCameraController()
	ctrl.SetPose(Pose{
		Position:    mgl32.Vec3{1, 1, 1},
		Orientation: mgl32.Quat{W: 2, V: mgl32.Vec3{0, 0, 0}},
	})
	if norm := ctrl.Pose().Orientation.Len(); !approx(norm, 1, 1e-6) {
		t.Fatalf("SetPose stored a non-unit orientation: norm=%v", norm)
	}
}
