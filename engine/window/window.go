package window

import (
	"runtime"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/pkg/errors"

	"github.com/Carmen-Shannon/oxy-shadows/common"
)

// Config is the initial window configuration requested by an application.
type Config struct {
	// Title is the window title displayed in the title bar.
	Title string
	// Width and Height are the requested client area size in screen coordinates.
	Width, Height int
	// RefreshRate is the requested refresh rate in Hz, only honoured for fullscreen windows by most platforms.
	RefreshRate int
	// Resizable allows the user to resize the window.
	Resizable bool
	// Backend is the preferred graphics backend name ("" lets the adapter choose).
	Backend string
}

// Window provides platform windowing and input event handling.
// Wraps platform-specific window implementations with a common interface.
type Window interface {
	// SetUpdateCallback sets the function called each message loop iteration.
	//
	// Parameters:
	//   - callback: function to call (or nil to disable)
	SetUpdateCallback(callback func())

	// SetResizeCallback sets the function called when the framebuffer is resized.
	//
	// Parameters:
	//   - callback: function receiving new width and height in pixels
	SetResizeCallback(callback func(width, height int))

	// SetKeyCallback sets the callback for key press and release events.
	// Key repeats are reported as presses.
	//
	// Parameters:
	//   - callback: function receiving the virtual key code and the action
	SetKeyCallback(callback func(keyCode uint32, action common.Action))

	// SetMouseButtonCallback sets the callback for mouse button press and release events.
	//
	// Parameters:
	//   - callback: function receiving the button code and the action
	SetMouseButtonCallback(callback func(button int, action common.Action))

	// ConsumeMouseDelta returns the cursor movement accumulated since the previous call and resets it.
	// Y grows upward, so moving the mouse up yields a positive dy.
	//
	// Returns:
	//   - float32: horizontal movement in pixels
	//   - float32: vertical movement in pixels
	ConsumeMouseDelta() (float32, float32)

	// SurfaceDescriptor returns a wgpu.SurfaceDescriptor suitable for creating a WebGPU surface.
	// The descriptor is created by the wgpuglfw bridge from the underlying GLFW window.
	//
	// Returns:
	//   - *wgpu.SurfaceDescriptor: the platform-specific surface descriptor, or nil if window is not initialized
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// IsRunning returns true if the window is still active.
	//
	// Returns:
	//   - bool: true if window is running, false if closed
	IsRunning() bool

	// RequestClose asks the message loop to stop after the current iteration.
	// The window stays alive until Close.
	RequestClose()

	// Close closes the window and releases platform resources.
	//
	// Returns:
	//   - error: error if close operation fails
	Close() error

	// ProcessMessages runs the window message loop.
	// Blocks until the window is closed. Calls the update callback each iteration.
	ProcessMessages()

	// Width returns the current framebuffer width in pixels.
	Width() int

	// Height returns the current framebuffer height in pixels.
	Height() int

	// Config returns the configuration the window was created with.
	Config() Config
}

// engineWindow is the implementation of the Window interface.
// Holds window configuration, GLFW state, and event callbacks.
type engineWindow struct {
	config Config

	// width and height are the current framebuffer size in pixels.
	width  int
	height int

	// internalWindow holds the platform-specific window data (glfwWindow).
	internalWindow any

	cursor cursorTracker

	onUpdate      func()
	onResize      func(width, height int)
	onKey         func(keyCode uint32, action common.Action)
	onMouseButton func(button int, action common.Action)
}

var _ Window = &engineWindow{}

// NewWindow creates and spawns a new Window with the specified options.
// Applies default values first, then each option in order.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Window: the spawned window
//   - error: error if the platform window cannot be created
func NewWindow(options ...WindowBuilderOption) (Window, error) {
	w := &engineWindow{
		config: Config{
			Title:       "oxy-shadows",
			Width:       1280,
			Height:      720,
			RefreshRate: 60,
			Resizable:   true,
		},
	}
	for _, opt := range options {
		opt(w)
	}
	w.width = w.config.Width
	w.height = w.config.Height
	if err := newPlatformWindow(w); err != nil {
		return nil, errors.Wrap(err, "create platform window")
	}
	return w, nil
}

func (w *engineWindow) SetUpdateCallback(callback func()) {
	w.onUpdate = callback
}

func (w *engineWindow) SetResizeCallback(callback func(width, height int)) {
	w.onResize = callback
}

func (w *engineWindow) SetKeyCallback(callback func(keyCode uint32, action common.Action)) {
	w.onKey = callback
}

func (w *engineWindow) SetMouseButtonCallback(callback func(button int, action common.Action)) {
	w.onMouseButton = callback
}

func (w *engineWindow) ConsumeMouseDelta() (float32, float32) {
	return w.cursor.consume()
}

func (w *engineWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return platformGetSurfaceDescriptor(w)
}

func (w *engineWindow) IsRunning() bool {
	return platformIsRunningCheck(w)
}

func (w *engineWindow) RequestClose() {
	platformRequestClose(w)
}

func (w *engineWindow) Close() error {
	return platformCloseWindow(w)
}

func (w *engineWindow) ProcessMessages() {
	for w.IsRunning() {
		if succ := platformProcessMessages(w); !succ {
			break
		}

		if w.onUpdate != nil {
			w.onUpdate()
		}

		runtime.Gosched()
	}
}

func (w *engineWindow) Width() int {
	return w.width
}

func (w *engineWindow) Height() int {
	return w.height
}

func (w *engineWindow) Config() Config {
	return w.config
}
