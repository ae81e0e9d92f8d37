package light

import "github.com/go-gl/mathgl/mgl32"

// LightBuilderOption is a function that configures a Light instance during construction.
type LightBuilderOption func(*directionalLightImpl)

// WithDirection is an option builder that sets the direction of the light.
// The direction is normalized before storing; a zero vector is ignored.
//
// Parameters:
//   - dir: the light direction, pointing from the light into the scene
//
// Returns:
//   - LightBuilderOption: a function that applies the direction option to a directionalLightImpl
func WithDirection(dir mgl32.Vec3) LightBuilderOption {
	return func(l *directionalLightImpl) {
		if dir.Len() == 0 {
			return
		}
		l.direction = dir.Normalize()
	}
}

// WithTarget is an option builder that sets the point the shadow frustum is centred on.
//
// Parameters:
//   - target: the world-space target
//
// Returns:
//   - LightBuilderOption: a function that applies the target option to a directionalLightImpl
func WithTarget(target mgl32.Vec3) LightBuilderOption {
	return func(l *directionalLightImpl) {
		l.target = target
	}
}

// WithColor is an option builder that sets the RGB color of the light.
//
// Parameters:
//   - color: color as (r, g, b)
//
// Returns:
//   - LightBuilderOption: a function that applies the color option to a directionalLightImpl
func WithColor(color mgl32.Vec3) LightBuilderOption {
	return func(l *directionalLightImpl) {
		l.color = color
	}
}

// WithShadow is an option builder that replaces the light's shadow volume settings.
// Zero fields keep their defaults.
//
// Parameters:
//   - s: the shadow settings
//
// Returns:
//   - LightBuilderOption: a function that applies the shadow option to a directionalLightImpl
func WithShadow(s ShadowSettings) LightBuilderOption {
	return func(l *directionalLightImpl) {
		if s.HalfExtent > 0 {
			l.shadow.HalfExtent = s.HalfExtent
		}
		if s.Near > 0 {
			l.shadow.Near = s.Near
		}
		if s.Far > 0 {
			l.shadow.Far = s.Far
		}
		if s.Distance > 0 {
			l.shadow.Distance = s.Distance
		}
		if s.Bias > 0 {
			l.shadow.Bias = s.Bias
		}
	}
}
