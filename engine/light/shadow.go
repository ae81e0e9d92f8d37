package light

import (
	"github.com/Carmen-Shannon/oxy-shadows/common"
	"github.com/go-gl/mathgl/mgl32"
)

// ShadowMapResolution is the width and height in texels of the shadow depth texture.
const ShadowMapResolution = 1024

// DefaultShadowHalfExtent is the orthographic half-extent (in world units) of the
// directional light's shadow frustum around its target.
const DefaultShadowHalfExtent float32 = 75.0

// DefaultShadowNear is the near plane of the light's orthographic projection.
const DefaultShadowNear float32 = 1.0

// DefaultShadowFar is the far plane of the light's orthographic projection.
const DefaultShadowFar float32 = 650.0

// DefaultShadowDistance is how far back from the target, along the light direction,
// the light's eye is placed.
const DefaultShadowDistance float32 = 200.0

// DefaultShadowBias is the constant depth bias applied to shadow comparisons
// to reduce shadow acne artifacts.
const DefaultShadowBias float32 = 0.001

// ShadowSettings describes the orthographic volume a directional light renders its
// shadow map from.
type ShadowSettings struct {
	HalfExtent float32
	Near       float32
	Far        float32
	Distance   float32
	Bias       float32
}

// DefaultShadowSettings returns the shadow volume used when none is configured.
func DefaultShadowSettings() ShadowSettings {
	return ShadowSettings{
		HalfExtent: DefaultShadowHalfExtent,
		Near:       DefaultShadowNear,
		Far:        DefaultShadowFar,
		Distance:   DefaultShadowDistance,
		Bias:       DefaultShadowBias,
	}
}

// LightEye returns the position the light looks from: distance units back from
// target along the light direction.
//
// Parameters:
//   - direction: the normalized light direction (pointing from the light into the scene)
//   - target: the world-space point the light looks at
//   - distance: how far back the eye is placed
//
// Returns:
//   - mgl32.Vec3: the eye position
func LightEye(direction, target mgl32.Vec3, distance float32) mgl32.Vec3 {
	return target.Sub(direction.Mul(distance))
}

// ComputeDirectionalLightVP builds the light-space view-projection matrix for a
// directional light:
//
//	Ortho(-e, e, -e, e, near, far) * LookAtV(target - direction*distance, target, +Y)
//
// The result depends only on its inputs, so equal inputs produce bit-identical matrices.
//
// Parameters:
//   - direction: the normalized light direction
//   - target: the world-space point the light looks at
//   - s: the shadow volume
//
// Returns:
//   - mgl32.Mat4: the column-major light view-projection matrix
func ComputeDirectionalLightVP(direction, target mgl32.Vec3, s ShadowSettings) mgl32.Mat4 {
	return lightProjection(s).Mul4(lightView(direction, target, s.Distance))
}

func lightView(direction, target mgl32.Vec3, distance float32) mgl32.Mat4 {
	eye := LightEye(direction, target, distance)
	return mgl32.LookAtV(eye, target, mgl32.Vec3{0, 1, 0})
}

func lightProjection(s ShadowSettings) mgl32.Mat4 {
	e := s.HalfExtent
	return common.Ortho(-e, e, -e, e, s.Near, s.Far)
}
