package window

// cursorTracker turns absolute cursor positions into accumulated per-frame deltas.
// The first sample only records the position so the initial jump from (0,0) is discarded.
type cursorTracker struct {
	lastX, lastY float64
	dx, dy       float64
	seen         bool
}

// move records a new absolute cursor position in window coordinates (y grows downward).
func (c *cursorTracker) move(x, y float64) {
	if !c.seen {
		c.lastX, c.lastY = x, y
		c.seen = true
		return
	}
	c.dx += x - c.lastX
	c.dy += c.lastY - y
	c.lastX, c.lastY = x, y
}

// consume returns the accumulated delta and resets it.
func (c *cursorTracker) consume() (float32, float32) {
	dx, dy := c.dx, c.dy
	c.dx, c.dy = 0, 0
	return float32(dx), float32(dy)
}
