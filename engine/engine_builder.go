package engine

import (
	"time"

	"github.com/Carmen-Shannon/oxy-shadows/engine/renderer"

	"go.uber.org/zap"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithLogger sets the engine logger. The renderer receives a named child of it.
// A nil logger is ignored.
//
// Parameters:
//   - logger: the zap logger
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithLogger(logger *zap.Logger) EngineBuilderOption {
	return func(e *engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithPresentMode sets the swapchain presentation mode.
//
// Parameters:
//   - mode: the present mode (default VSync)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithPresentMode(mode renderer.PresentMode) EngineBuilderOption {
	return func(e *engine) {
		e.presentMode = mode
	}
}

// WithVSync selects VSync presentation when enabled and uncapped presentation otherwise.
//
// Parameters:
//   - enabled: whether to wait for vertical sync
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithVSync(enabled bool) EngineBuilderOption {
	if enabled {
		return WithPresentMode(renderer.PresentModeVSync)
	}
	return WithPresentMode(renderer.PresentModeUncapped)
}

// WithMSAA sets the multisample count of the main color pass.
//
// Parameters:
//   - count: the sample count (default 4x)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithMSAA(count renderer.MSAASampleCount) EngineBuilderOption {
	return func(e *engine) {
		e.msaa = count
	}
}

// WithFrameLimit sets an optional frame rate cap in frames per second.
// Pass 0 to uncap the loop (default).
//
// Parameters:
//   - fps: maximum frames per second (0 = uncapped)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithFrameLimit(fps float64) EngineBuilderOption {
	return func(e *engine) {
		if fps <= 0 {
			e.frameLimit = 0
			return
		}
		e.frameLimit = time.Duration(float64(time.Second) / fps)
	}
}
