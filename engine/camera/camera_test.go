package camera

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func assertMat4InDelta(t *testing.T, want, got mgl32.Mat4) {
	t.Helper()
	for i := range want {
		assert.InDelta(t, want[i], got[i], 1e-5, "element %d", i)
	}
}

func TestCameraViewLooksAlongControllerForward(t *testing.T) {
	ctrl := newDefaultFly()
	cam := NewCamera(WithController(ctrl), WithAspect(16.0/9.0))

	// Forward at yaw -90 is -X up to float rounding.
	assertVecInDelta(t, mgl32.Vec3{-1, 0, 0}, ctrl.Forward())

	want := mgl32.LookAtV(mgl32.Vec3{50, 20, 0}, mgl32.Vec3{49, 20, 0}, mgl32.Vec3{0, 1, 0})
	assertMat4InDelta(t, want, cam.ViewMatrix())

	exact := mgl32.LookAtV(ctrl.Position(), ctrl.Position().Add(ctrl.Forward()), mgl32.Vec3{0, 1, 0})
	assertMat4InDelta(t, exact, cam.ViewMatrix())
	assertMat4InDelta(t, cam.ProjectionMatrix().Mul4(cam.ViewMatrix()), cam.ViewProjectionMatrix())
}

func TestCameraSetAspectUpdatesProjection(t *testing.T) {
	cam := NewCamera(WithController(newDefaultFly()))
	before := cam.ProjectionMatrix()

	cam.SetAspect(1280.0 / 720.0)

	assert.Equal(t, float32(1280.0/720.0), cam.Aspect())
	assert.NotEqual(t, before, cam.ProjectionMatrix())
	assert.Equal(t, before[5], cam.ProjectionMatrix()[5], "vertical scale depends only on fov")
}

func TestCameraUpdateFollowsController(t *testing.T) {
	ctrl := newDefaultFly()
	cam := NewCamera(WithController(ctrl))

	ctrl.SetPosition(mgl32.Vec3{0, 5, 0})
	cam.Update()

	eye := cam.ViewMatrix().Inv().Col(3).Vec3()
	assert.InDelta(t, 5, eye.Y(), 1e-4)
	assert.InDelta(t, 0, eye.X(), 1e-4)
}

func TestCameraWithoutControllerKeepsIdentityView(t *testing.T) {
	cam := NewCamera()
	cam.Update()
	assert.Equal(t, mgl32.Ident4(), cam.ViewMatrix())
	assert.Nil(t, cam.Controller())
}
