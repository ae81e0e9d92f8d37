package window

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCursorTrackerDiscardsFirstSample(t *testing.T) {
	var c cursorTracker
	c.move(400, 300)

	dx, dy := c.consume()
	assert.Zero(t, dx)
	assert.Zero(t, dy)
}

func TestCursorTrackerAccumulatesUntilConsumed(t *testing.T) {
	var c cursorTracker
	c.move(100, 100)
	c.move(110, 95)
	c.move(115, 90)

	dx, dy := c.consume()
	assert.Equal(t, float32(15), dx)
	assert.Equal(t, float32(10), dy, "moving the cursor up is a positive dy")

	dx, dy = c.consume()
	assert.Zero(t, dx)
	assert.Zero(t, dy)
}

func TestBuilderOptions(t *testing.T) {
	w := &engineWindow{}
	for _, opt := range []WindowBuilderOption{
		WithTitle("shadows"),
		WithWidth(1920),
		WithHeight(1080),
		WithRefreshRate(144),
		WithResizable(false),
		WithBackend("vulkan"),
	} {
		opt(w)
	}

	assert.Equal(t, Config{Title: "shadows", Width: 1920, Height: 1080, RefreshRate: 144, Backend: "vulkan"}, w.config)

	WithConfig(Config{Title: "x", Width: 1, Height: 2, Resizable: true})(w)
	assert.Equal(t, "x", w.config.Title)
	assert.True(t, w.config.Resizable)
}
