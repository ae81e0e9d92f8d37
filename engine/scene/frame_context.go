package scene

// FrameContext carries the per-frame input the engine loop hands to Tick.
type FrameContext struct {
	// DeltaMillis is the time since the previous frame in milliseconds.
	DeltaMillis float32

	// MouseDeltaX is the horizontal cursor movement since the previous frame, in pixels.
	MouseDeltaX float32

	// MouseDeltaY is the vertical cursor movement since the previous frame, in pixels.
	MouseDeltaY float32

	// FrameIndex counts frames from zero.
	FrameIndex uint64
}
