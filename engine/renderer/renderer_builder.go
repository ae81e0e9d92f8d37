package renderer

import (
	"go.uber.org/zap"
)

// RendererBuilderOption is a functional option applied to a renderer during construction via NewRenderer.
type RendererBuilderOption func(*renderer)

// WithPresentMode sets the surface present mode which controls how frames are delivered to the display.
//
// Parameters:
//   - mode: the PresentMode to use (VSync or Uncapped)
//
// Returns:
//   - RendererBuilderOption: a function that applies the present mode option to a renderer
func WithPresentMode(mode PresentMode) RendererBuilderOption {
	return func(r *renderer) {
		r.options.presentMode = mode
	}
}

// WithMSAA sets the multisample anti-aliasing sample count of the main pass.
// When not specified, the default is MSAA4x. Shadow passes never multisample.
//
// Parameters:
//   - count: the MSAASampleCount to use (MSAAOff or MSAA4x)
//
// Returns:
//   - RendererBuilderOption: a function that applies the MSAA option to a renderer
func WithMSAA(count MSAASampleCount) RendererBuilderOption {
	return func(r *renderer) {
		r.options.sampleCount = count
	}
}

// WithGraphicsBackend sets the preferred adapter backend by name (vulkan, metal, d3d12,
// opengl). An empty or unknown name lets the adapter choose.
//
// Parameters:
//   - name: the backend name
//
// Returns:
//   - RendererBuilderOption: a function that applies the backend preference to a renderer
func WithGraphicsBackend(name string) RendererBuilderOption {
	return func(r *renderer) {
		r.options.backendName = name
		r.options.backendType = ParseGraphicsBackend(name)
	}
}

// WithForceSoftwareRenderer forces WGPU to use a CPU/software fallback adapter instead of
// hardware GPU acceleration. This requires a software Vulkan ICD to be installed on the system
// (e.g. SwiftShader or lavapipe).
//
// Parameters:
//   - force: true to force the software fallback adapter, false to use hardware (default)
//
// Returns:
//   - RendererBuilderOption: a function that applies the force software renderer option to a renderer
func WithForceSoftwareRenderer(force bool) RendererBuilderOption {
	return func(r *renderer) {
		r.options.forceFallbackAdapter = force
	}
}

// WithLogger sets the logger the renderer reports setup through.
func WithLogger(logger *zap.Logger) RendererBuilderOption {
	return func(r *renderer) {
		if logger != nil {
			r.logger = logger
		}
	}
}
