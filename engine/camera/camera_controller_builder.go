package camera

import "github.com/go-gl/mathgl/mgl32"

// CameraControllerOption is a functional option for configuring a fly controller.
type CameraControllerOption func(*flyControllerImpl)

// WithPosition sets the initial world-space position.
//
// Parameters:
//   - p: the starting position
//
// Returns:
//   - CameraControllerOption: option function to apply
func WithPosition(p mgl32.Vec3) CameraControllerOption {
	return func(fc *flyControllerImpl) {
		fc.position = p
	}
}

// WithInitialRotation applies a (pitch, yaw, roll) delta in degrees to the default
// orientation (looking down -Z). A yaw of -90 faces -X.
//
// Parameters:
//   - delta: rotation in degrees
//
// Returns:
//   - CameraControllerOption: option function to apply
func WithInitialRotation(delta mgl32.Vec3) CameraControllerOption {
	return func(fc *flyControllerImpl) {
		fc.pitch += delta.X()
		fc.yaw += delta.Y()
	}
}

// WithSpeed sets the movement speed in world units per millisecond.
func WithSpeed(speed float32) CameraControllerOption {
	return func(fc *flyControllerImpl) {
		fc.speed = speed
	}
}

// WithSensitivity sets the mouse-look sensitivity in degrees per pixel.
func WithSensitivity(sensitivity float32) CameraControllerOption {
	return func(fc *flyControllerImpl) {
		fc.sensitivity = sensitivity
	}
}

// WithPitchLimit sets the maximum absolute pitch in degrees.
func WithPitchLimit(limit float32) CameraControllerOption {
	return func(fc *flyControllerImpl) {
		fc.pitchLimit = limit
	}
}
