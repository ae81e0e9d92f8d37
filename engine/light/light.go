package light

import (
	"github.com/go-gl/mathgl/mgl32"
)

// directionalLightImpl is the implementation of the Light interface.
type directionalLightImpl struct {
	direction mgl32.Vec3
	target    mgl32.Vec3
	color     mgl32.Vec3
	shadow    ShadowSettings
}

// Light defines a single directional light that casts shadows.
//
// The light has no position, only a direction and a target point. Its shadow map is
// rendered from an eye placed a fixed distance back from the target along the light
// direction, through an orthographic projection. The light is immutable once built.
type Light interface {
	// Direction returns the normalized light direction, pointing from the light into the scene.
	//
	// Returns:
	//   - mgl32.Vec3: the unit direction
	Direction() mgl32.Vec3

	// Target returns the world-space point the shadow frustum is centred on.
	//
	// Returns:
	//   - mgl32.Vec3: the target position
	Target() mgl32.Vec3

	// Color returns the RGB radiance of the light. Values are not clamped to [0, 1].
	//
	// Returns:
	//   - mgl32.Vec3: color as (r, g, b)
	Color() mgl32.Vec3

	// Bias returns the depth bias subtracted before the shadow comparison.
	//
	// Returns:
	//   - float32: the bias
	Bias() float32

	// Shadow returns the orthographic shadow volume settings.
	//
	// Returns:
	//   - ShadowSettings: the shadow volume
	Shadow() ShadowSettings

	// Eye returns the position the shadow map is rendered from.
	//
	// Returns:
	//   - mgl32.Vec3: target - direction * distance
	Eye() mgl32.Vec3

	// ViewMatrix returns the light's look-at matrix.
	//
	// Returns:
	//   - mgl32.Mat4: LookAtV(eye, target, +Y)
	ViewMatrix() mgl32.Mat4

	// ProjectionMatrix returns the light's orthographic projection with WebGPU depth range.
	//
	// Returns:
	//   - mgl32.Mat4: the projection matrix
	ProjectionMatrix() mgl32.Mat4

	// ViewProjection returns ProjectionMatrix * ViewMatrix.
	//
	// Returns:
	//   - mgl32.Mat4: the light-space transform used by both render passes
	ViewProjection() mgl32.Mat4
}

var _ Light = &directionalLightImpl{}

// NewDirectionalLight creates a new directional Light. Without options it points
// along -normalize(-0.5, 0.977, 0.5) at the origin with a color of 10000 on every channel.
//
// Parameters:
//   - opts: variadic list of LightBuilderOption functions to configure the light
//
// Returns:
//   - Light: a new Light instance
func NewDirectionalLight(opts ...LightBuilderOption) Light {
	l := &directionalLightImpl{
		direction: mgl32.Vec3{-0.5, 0.977, 0.5}.Normalize().Mul(-1),
		target:    mgl32.Vec3{0, 0, 0},
		color:     mgl32.Vec3{10000, 10000, 10000},
		shadow:    DefaultShadowSettings(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *directionalLightImpl) Direction() mgl32.Vec3 {
	return l.direction
}

func (l *directionalLightImpl) Target() mgl32.Vec3 {
	return l.target
}

func (l *directionalLightImpl) Color() mgl32.Vec3 {
	return l.color
}

func (l *directionalLightImpl) Bias() float32 {
	return l.shadow.Bias
}

func (l *directionalLightImpl) Shadow() ShadowSettings {
	return l.shadow
}

func (l *directionalLightImpl) Eye() mgl32.Vec3 {
	return LightEye(l.direction, l.target, l.shadow.Distance)
}

func (l *directionalLightImpl) ViewMatrix() mgl32.Mat4 {
	return lightView(l.direction, l.target, l.shadow.Distance)
}

func (l *directionalLightImpl) ProjectionMatrix() mgl32.Mat4 {
	return lightProjection(l.shadow)
}

func (l *directionalLightImpl) ViewProjection() mgl32.Mat4 {
	return ComputeDirectionalLightVP(l.direction, l.target, l.shadow)
}
