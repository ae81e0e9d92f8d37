package scene

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f32At(buf []byte, offset int) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(buf[offset:]))
}

func TestGPUGlobalUniformsLayout(t *testing.T) {
	vp := mgl32.Translate3D(1, 2, 3)
	lvp := mgl32.Scale3D(4, 5, 6)
	g := NewGPUGlobalUniforms(vp, lvp, mgl32.Vec3{7, 8, 9})

	assert.Equal(t, 144, g.Size())
	assert.Equal(t, mgl32.Vec4{7, 8, 9, 0}, g.CamPos)

	buf := g.Marshal()
	require.Len(t, buf, 144)

	// Column-major: translation sits in elements 12..14.
	assert.Equal(t, float32(1), f32At(buf, 12*4))
	assert.Equal(t, float32(3), f32At(buf, 14*4))
	assert.Equal(t, float32(4), f32At(buf, 64))
	assert.Equal(t, float32(6), f32At(buf, 64+10*4))
	assert.Equal(t, float32(7), f32At(buf, 128))
	assert.Equal(t, float32(9), f32At(buf, 136))
	assert.Equal(t, float32(0), f32At(buf, 140))
}
