package window

// WindowBuilderOption is a functional option for configuring an engineWindow.
// Use the With* functions to create options.
type WindowBuilderOption func(w *engineWindow)

// WithConfig replaces the whole window configuration.
//
// Parameters:
//   - cfg: the configuration requested by the application
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithConfig(cfg Config) WindowBuilderOption {
	return func(w *engineWindow) {
		w.config = cfg
	}
}

// WithTitle sets the window title displayed in the title bar.
//
// Parameters:
//   - title: the window title text
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithTitle(title string) WindowBuilderOption {
	return func(w *engineWindow) {
		w.config.Title = title
	}
}

// WithWidth sets the initial window width.
//
// Parameters:
//   - width: initial width in screen coordinates
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithWidth(width int) WindowBuilderOption {
	return func(w *engineWindow) {
		w.config.Width = width
	}
}

// WithHeight sets the initial window height.
//
// Parameters:
//   - height: initial height in screen coordinates
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithHeight(height int) WindowBuilderOption {
	return func(w *engineWindow) {
		w.config.Height = height
	}
}

// WithRefreshRate sets the requested refresh rate in Hz.
func WithRefreshRate(hz int) WindowBuilderOption {
	return func(w *engineWindow) {
		w.config.RefreshRate = hz
	}
}

// WithResizable controls whether the user can resize the window.
func WithResizable(resizable bool) WindowBuilderOption {
	return func(w *engineWindow) {
		w.config.Resizable = resizable
	}
}

// WithBackend records the preferred graphics backend. The window itself does not use it;
// the renderer reads it back through Config.
func WithBackend(backend string) WindowBuilderOption {
	return func(w *engineWindow) {
		w.config.Backend = backend
	}
}
