package scene

import (
	"io/fs"

	"github.com/Carmen-Shannon/oxy-shadows/engine/config"
	"github.com/Carmen-Shannon/oxy-shadows/engine/renderer"

	"go.uber.org/zap"
)

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *shadowScene)

// WithName sets the scene name used in log entries.
//
// Parameters:
//   - name: the scene name
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithName(name string) SceneBuilderOption {
	return func(s *shadowScene) {
		s.name = name
	}
}

// WithConfig replaces the default configuration. Light, shadow, camera, window
// and object settings are all read from it.
//
// Parameters:
//   - cfg: the configuration
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithConfig(cfg config.Config) SceneBuilderOption {
	return func(s *shadowScene) {
		s.cfg = cfg
	}
}

// WithAssets sets the file system shaders and meshes are read from.
// Defaults to the embedded assets. A nil file system is ignored.
//
// Parameters:
//   - fsys: the asset file system
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithAssets(fsys fs.FS) SceneBuilderOption {
	return func(s *shadowScene) {
		if fsys != nil {
			s.assets = fsys
		}
	}
}

// WithLogger sets the scene logger. A nil logger is ignored.
//
// Parameters:
//   - logger: the zap logger
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithLogger(logger *zap.Logger) SceneBuilderOption {
	return func(s *shadowScene) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithRenderer attaches the renderer at construction time.
//
// Parameters:
//   - r: the renderer
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithRenderer(r renderer.Renderer) SceneBuilderOption {
	return func(s *shadowScene) {
		s.r = r
	}
}

// WithOverlay sets whether the scene starts with the debug overlay on. The overlay is on by default.
//
// Parameters:
//   - enabled: whether the overlay is on
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithOverlay(enabled bool) SceneBuilderOption {
	return func(s *shadowScene) {
		s.overlay = enabled
	}
}
