package camera

import (
	"math"
	"sync"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Carmen-Shannon/oxy-shadows/common"
)

// flyControllerImpl is a free-flight controller: WASD translates along the view axes and
// mouse motion changes yaw and pitch while mouse look is held.
type flyControllerImpl struct {
	mu *sync.Mutex

	position mgl32.Vec3
	worldUp  mgl32.Vec3

	// yaw and pitch are in degrees.
	yaw        float32
	pitch      float32
	pitchLimit float32

	forward mgl32.Vec3
	right   mgl32.Vec3

	speed       float32
	sensitivity float32

	headingSpeed  float32
	sidewaysSpeed float32

	// Mouse look is active while either trigger is held.
	lookKeyHeld    bool
	lookButtonHeld bool

	rotationDelta mgl32.Vec3
}

var _ CameraController = &flyControllerImpl{}

// NewFlyController creates a fly camera controller.
// Defaults: position origin, yaw 0 (looking down -Z), speed 0.05 units/ms,
// sensitivity 0.05 degrees per pixel, pitch limited to +/-89 degrees.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - CameraController: the newly created controller
func NewFlyController(options ...CameraControllerOption) CameraController {
	fc := &flyControllerImpl{
		mu:          &sync.Mutex{},
		worldUp:     mgl32.Vec3{0, 1, 0},
		pitchLimit:  89,
		speed:       0.05,
		sensitivity: 0.05,
	}
	for _, option := range options {
		option(fc)
	}
	fc.pitch = common.ClampF32(fc.pitch, -fc.pitchLimit, fc.pitchLimit)
	fc.updateAxes()
	return fc
}

// updateAxes recomputes forward and right from yaw and pitch. Caller must hold the mutex.
func (fc *flyControllerImpl) updateAxes() {
	yaw := float64(mgl32.DegToRad(fc.yaw))
	pitch := float64(mgl32.DegToRad(fc.pitch))
	fc.forward = mgl32.Vec3{
		float32(math.Sin(yaw) * math.Cos(pitch)),
		float32(math.Sin(pitch)),
		float32(-math.Cos(yaw) * math.Cos(pitch)),
	}.Normalize()
	fc.right = fc.forward.Cross(fc.worldUp).Normalize()
}

// rotate applies a (pitch, yaw, roll) delta. Caller must hold the mutex.
func (fc *flyControllerImpl) rotate(delta mgl32.Vec3) {
	fc.pitch = common.ClampF32(fc.pitch+delta.X(), -fc.pitchLimit, fc.pitchLimit)
	fc.yaw = float32(math.Mod(float64(fc.yaw+delta.Y()), 360))
	fc.updateAxes()
}

func (fc *flyControllerImpl) Position() mgl32.Vec3 {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	return fc.position
}

func (fc *flyControllerImpl) SetPosition(p mgl32.Vec3) {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	fc.position = p
}

func (fc *flyControllerImpl) Forward() mgl32.Vec3 {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	return fc.forward
}

func (fc *flyControllerImpl) Right() mgl32.Vec3 {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	return fc.right
}

func (fc *flyControllerImpl) Yaw() float32 {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	return fc.yaw
}

func (fc *flyControllerImpl) Pitch() float32 {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	return fc.pitch
}

func (fc *flyControllerImpl) HandleKey(keyCode uint32, action common.Action) bool {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	pressed := action.Held()
	switch keyCode {
	case common.KeyW:
		fc.headingSpeed = fc.pressedSpeed(pressed, 1)
	case common.KeyS:
		fc.headingSpeed = fc.pressedSpeed(pressed, -1)
	case common.KeyA:
		fc.sidewaysSpeed = fc.pressedSpeed(pressed, -1)
	case common.KeyD:
		fc.sidewaysSpeed = fc.pressedSpeed(pressed, 1)
	case common.KeySpace:
		fc.lookKeyHeld = pressed
	default:
		return false
	}
	return true
}

// pressedSpeed returns sign*speed on press and 0 on release.
func (fc *flyControllerImpl) pressedSpeed(pressed bool, sign float32) float32 {
	if !pressed {
		return 0
	}
	return sign * fc.speed
}

func (fc *flyControllerImpl) HandleMouseButton(button int, action common.Action) bool {
	if button != common.MouseButtonRight {
		return false
	}
	fc.mu.Lock()
	defer fc.mu.Unlock()
	fc.lookButtonHeld = action.Held()
	return true
}

func (fc *flyControllerImpl) HeadingSpeed() float32 {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	return fc.headingSpeed
}

func (fc *flyControllerImpl) SidewaysSpeed() float32 {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	return fc.sidewaysSpeed
}

func (fc *flyControllerImpl) MouseLookEnabled() bool {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	return fc.lookKeyHeld || fc.lookButtonHeld
}

func (fc *flyControllerImpl) RotationDelta() mgl32.Vec3 {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	return fc.rotationDelta
}

func (fc *flyControllerImpl) Rotate(delta mgl32.Vec3) {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	fc.rotate(delta)
}

func (fc *flyControllerImpl) Update(deltaMillis, mouseDX, mouseDY float32) {
	fc.mu.Lock()
	defer fc.mu.Unlock()

	fc.rotationDelta = mgl32.Vec3{}
	if fc.lookKeyHeld || fc.lookButtonHeld {
		fc.rotationDelta = mgl32.Vec3{mouseDY * fc.sensitivity, mouseDX * fc.sensitivity, 0}
		fc.rotate(fc.rotationDelta)
	}

	move := fc.forward.Mul(fc.headingSpeed * deltaMillis).Add(fc.right.Mul(fc.sidewaysSpeed * deltaMillis))
	fc.position = fc.position.Add(move)
}
