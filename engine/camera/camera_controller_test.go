package camera

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Carmen-Shannon/oxy-shadows/common"
)

func newDefaultFly() CameraController {
	return NewFlyController(
		WithPosition(mgl32.Vec3{50, 20, 0}),
		WithInitialRotation(mgl32.Vec3{0, -90, 0}),
	)
}

func assertVecInDelta(t *testing.T, want, got mgl32.Vec3) {
	t.Helper()
	for i := range want {
		assert.InDelta(t, want[i], got[i], 1e-5, "component %d of %v", i, got)
	}
}

func TestFlyControllerInitialOrientationFacesNegativeX(t *testing.T) {
	fc := newDefaultFly()

	assertVecInDelta(t, mgl32.Vec3{-1, 0, 0}, fc.Forward())
	assertVecInDelta(t, mgl32.Vec3{0, 0, -1}, fc.Right())
	assert.Equal(t, mgl32.Vec3{50, 20, 0}, fc.Position())
}

func TestRotationDeltaIsZeroWithoutMouseLook(t *testing.T) {
	fc := newDefaultFly()
	forward := fc.Forward()

	for i := 0; i < 10; i++ {
		fc.Update(16, 300, -120)
		assert.Equal(t, mgl32.Vec3{}, fc.RotationDelta())
	}
	assert.Equal(t, forward, fc.Forward())
}

func TestRotationDeltaUsesSensitivityWhileLooking(t *testing.T) {
	tests := []struct {
		name   string
		enable func(CameraController)
	}{
		{"space held", func(c CameraController) { c.HandleKey(common.KeySpace, common.ActionPress) }},
		{"right button held", func(c CameraController) { c.HandleMouseButton(common.MouseButtonRight, common.ActionPress) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fc := newDefaultFly()
			tt.enable(fc)
			require.True(t, fc.MouseLookEnabled())

			fc.Update(16, 10, 20)
			assertVecInDelta(t, mgl32.Vec3{1, 0.5, 0}, fc.RotationDelta())
			assert.InDelta(t, -89.5, fc.Yaw(), 1e-4)
			assert.InDelta(t, 1, fc.Pitch(), 1e-4)
		})
	}
}

func TestMouseLookStopsOnRelease(t *testing.T) {
	fc := newDefaultFly()
	fc.HandleMouseButton(common.MouseButtonRight, common.ActionPress)
	fc.Update(16, 10, 10)
	fc.HandleMouseButton(common.MouseButtonRight, common.ActionRelease)

	fc.Update(16, 10, 10)
	assert.False(t, fc.MouseLookEnabled())
	assert.Equal(t, mgl32.Vec3{}, fc.RotationDelta())
}

func TestPressReleaseReturnsSpeedToZero(t *testing.T) {
	tests := []struct {
		key      uint32
		heading  float32
		sideways float32
	}{
		{common.KeyW, 0.05, 0},
		{common.KeyS, -0.05, 0},
		{common.KeyA, 0, -0.05},
		{common.KeyD, 0, 0.05},
	}
	for _, tt := range tests {
		fc := newDefaultFly()
		require.True(t, fc.HandleKey(tt.key, common.ActionPress))
		assert.Equal(t, tt.heading, fc.HeadingSpeed())
		assert.Equal(t, tt.sideways, fc.SidewaysSpeed())

		fc.HandleKey(tt.key, common.ActionRelease)
		assert.Exactly(t, float32(0), fc.HeadingSpeed())
		assert.Exactly(t, float32(0), fc.SidewaysSpeed())
	}
}

func TestKeyRepeatKeepsMoving(t *testing.T) {
	fc := newDefaultFly()
	fc.HandleKey(common.KeyW, common.ActionPress)
	fc.HandleKey(common.KeyW, common.ActionRepeat)
	fc.HandleKey(common.KeyW, common.ActionRepeat)
	assert.Equal(t, float32(0.05), fc.HeadingSpeed())

	fc.HandleMouseButton(common.MouseButtonRight, common.ActionPress)
	fc.HandleMouseButton(common.MouseButtonRight, common.ActionRepeat)
	assert.True(t, fc.MouseLookEnabled())

	fc.HandleKey(common.KeyW, common.ActionRelease)
	assert.Exactly(t, float32(0), fc.HeadingSpeed())
}

func TestUnboundKeysAreIgnored(t *testing.T) {
	fc := newDefaultFly()
	assert.False(t, fc.HandleKey(common.KeyG, common.ActionPress))
	assert.False(t, fc.HandleMouseButton(common.MouseButtonLeft, common.ActionPress))
	assert.False(t, fc.MouseLookEnabled())
}

func TestTranslationScalesWithDeltaTime(t *testing.T) {
	fc := newDefaultFly()
	fc.HandleKey(common.KeyW, common.ActionPress)
	fc.Update(100, 0, 0)
	assertVecInDelta(t, mgl32.Vec3{45, 20, 0}, fc.Position())

	fc.HandleKey(common.KeyW, common.ActionRelease)
	fc.HandleKey(common.KeyD, common.ActionPress)
	fc.Update(20, 0, 0)
	assertVecInDelta(t, mgl32.Vec3{45, 20, -1}, fc.Position())
}

func TestPitchIsClamped(t *testing.T) {
	fc := newDefaultFly()
	fc.Rotate(mgl32.Vec3{200, 0, 0})
	assert.Equal(t, float32(89), fc.Pitch())

	fc.Rotate(mgl32.Vec3{-400, 0, 0})
	assert.Equal(t, float32(-89), fc.Pitch())
}
