package light

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultLight(t *testing.T) {
	l := NewDirectionalLight()

	want := mgl32.Vec3{0.5, -0.977, -0.5}.Normalize()
	assert.True(t, l.Direction().ApproxEqual(want))
	assert.InDelta(t, 1.0, l.Direction().Len(), 1e-6)
	assert.Equal(t, mgl32.Vec3{}, l.Target())
	assert.Equal(t, mgl32.Vec3{10000, 10000, 10000}, l.Color())
	assert.Equal(t, DefaultShadowBias, l.Bias())
	assert.Equal(t, DefaultShadowSettings(), l.Shadow())
}

func TestLightEyeIsBehindTarget(t *testing.T) {
	l := NewDirectionalLight(WithTarget(mgl32.Vec3{1, 2, 3}))

	want := l.Target().Sub(l.Direction().Mul(200))
	assert.True(t, l.Eye().ApproxEqual(want))
	assert.Equal(t, mgl32.LookAtV(want, l.Target(), mgl32.Vec3{0, 1, 0}), l.ViewMatrix())
}

func TestViewProjectionIsDeterministic(t *testing.T) {
	a := NewDirectionalLight()
	b := NewDirectionalLight()

	assert.Equal(t, a.ViewProjection(), b.ViewProjection())
	assert.Equal(t, a.ViewProjection(), a.ViewProjection())
	assert.Equal(t, a.ProjectionMatrix().Mul4(a.ViewMatrix()), a.ViewProjection())
}

func TestViewProjectionMapsTargetIntoDepthRange(t *testing.T) {
	l := NewDirectionalLight()
	clip := l.ViewProjection().Mul4x1(mgl32.Vec4{0, 0, 0, 1})

	// The target sits 200 units in front of the eye, inside [1, 650].
	assert.InDelta(t, 0, clip.X(), 1e-4)
	assert.InDelta(t, 0, clip.Y(), 1e-4)
	assert.InDelta(t, (200.0-1.0)/(650.0-1.0), clip.Z(), 1e-4)
	assert.InDelta(t, 1, clip.W(), 1e-6)

	// A point at the frustum edge lands on the NDC border.
	s := l.Shadow()
	right := l.ViewMatrix().Inv().Mul4x1(mgl32.Vec4{s.HalfExtent, 0, -200, 1})
	edge := l.ViewProjection().Mul4x1(right)
	assert.InDelta(t, 1, edge.X(), 1e-3)
}

func TestBuilderOptions(t *testing.T) {
	l := NewDirectionalLight(
		WithDirection(mgl32.Vec3{0, -2, 0}),
		WithColor(mgl32.Vec3{1, 2, 3}),
		WithShadow(ShadowSettings{HalfExtent: 10, Bias: 0.005}),
	)

	assert.Equal(t, mgl32.Vec3{0, -1, 0}, l.Direction())
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, l.Color())
	assert.Equal(t, float32(10), l.Shadow().HalfExtent)
	assert.Equal(t, DefaultShadowFar, l.Shadow().Far)
	assert.Equal(t, float32(0.005), l.Bias())

	ignored := NewDirectionalLight(WithDirection(mgl32.Vec3{}))
	assert.Equal(t, NewDirectionalLight().Direction(), ignored.Direction())
}

func TestGPULightUniformsMarshal(t *testing.T) {
	u := NewGPULightUniforms(NewDirectionalLight(WithDirection(mgl32.Vec3{0, -1, 0})))
	require.Equal(t, 48, u.Size())

	buf := u.Marshal()
	require.Len(t, buf, 48)
	assert.Equal(t, [4]float32{0, -1, 0, 0}, u.Direction)
	assert.Equal(t, float32(1), u.Color[3])
	// bias is the first word after the two vec4 fields.
	assert.Equal(t, []byte{0x6f, 0x12, 0x83, 0x3a}, buf[32:36])
}
