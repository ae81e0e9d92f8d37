package camera

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Carmen-Shannon/oxy-shadows/common"
)

// CameraController owns the camera pose and turns input into per-frame motion.
// The Camera reads Position and Forward from its controller to build the view matrix.
type CameraController interface {
	// Position returns the camera's world-space position.
	Position() mgl32.Vec3

	// SetPosition moves the camera to a world-space position.
	//
	// Parameters:
	//   - p: the new position
	SetPosition(p mgl32.Vec3)

	// Forward returns the unit view direction.
	Forward() mgl32.Vec3

	// Right returns the unit right vector (Forward x world up).
	Right() mgl32.Vec3

	// Yaw returns the heading angle in degrees. Yaw 0 looks down -Z.
	Yaw() float32

	// Pitch returns the elevation angle in degrees, clamped to the pitch limit.
	Pitch() float32

	// HandleKey updates the movement and mouse-look state from a key event.
	//
	// Parameters:
	//   - keyCode: the virtual key code
	//   - action: press or release
	//
	// Returns:
	//   - bool: true if the key is bound to camera movement
	HandleKey(keyCode uint32, action common.Action) bool

	// HandleMouseButton updates the mouse-look state from a mouse button event.
	//
	// Parameters:
	//   - button: the mouse button code
	//   - action: press or release
	//
	// Returns:
	//   - bool: true if the button is bound to mouse look
	HandleMouseButton(button int, action common.Action) bool

	// HeadingSpeed returns the signed speed along Forward, in units per millisecond.
	HeadingSpeed() float32

	// SidewaysSpeed returns the signed speed along Right, in units per millisecond.
	SidewaysSpeed() float32

	// MouseLookEnabled reports whether mouse motion currently rotates the camera.
	MouseLookEnabled() bool

	// RotationDelta returns the (pitch, yaw, roll) delta in degrees applied by the last Update.
	// It is exactly zero for any frame where mouse look was disabled.
	RotationDelta() mgl32.Vec3

	// Rotate applies a (pitch, yaw, roll) delta in degrees immediately. Roll is ignored.
	//
	// Parameters:
	//   - delta: rotation in degrees
	Rotate(delta mgl32.Vec3)

	// Update advances the pose by one frame.
	//
	// Parameters:
	//   - deltaMillis: frame time in milliseconds
	//   - mouseDX: horizontal cursor movement in pixels since the previous frame
	//   - mouseDY: vertical cursor movement in pixels, positive upward
	Update(deltaMillis, mouseDX, mouseDY float32)
}
