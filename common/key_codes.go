package common

// Virtual key codes for cross-platform input handling.
// These values match GLFW key codes which use ASCII values for printable keys.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Key
const (
	KeyW     = 87  // W key (ASCII)
	KeyA     = 65  // A key (ASCII)
	KeyS     = 83  // S key (ASCII)
	KeyD     = 68  // D key (ASCII)
	KeyG     = 71  // G key (ASCII)
	KeySpace = 32  // Spacebar (ASCII)
	KeyEsc   = 256 // Escape key (GLFW)
)

// Mouse button codes, matching glfw.MouseButton values.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#MouseButton
const (
	MouseButtonLeft   = 0
	MouseButtonRight  = 1
	MouseButtonMiddle = 2
)

// Action identifies whether an input event is a press, a key repeat or a release.
type Action uint8

const (
	ActionRelease Action = iota
	ActionPress
	// ActionRepeat is sent while a key is held down after its initial press.
	ActionRepeat
)

// Held reports whether the key or button is down after this event.
func (a Action) Held() bool {
	return a != ActionRelease
}

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionPress:
		return "press"
	case ActionRepeat:
		return "repeat"
	default:
		return "release"
	}
}
