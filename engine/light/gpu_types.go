package light

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/Carmen-Shannon/oxy-shadows/common"
	"github.com/go-gl/mathgl/mgl32"
)

// GPULightUniformsSource is the canonical WGSL definition of the LightUniforms struct.
// Matches GPULightUniforms layout exactly (48 bytes).
//
//go:embed assets/light_uniforms.wgsl
var GPULightUniformsSource string

// GPULightUniformsType is the WGSL type name declared by GPULightUniformsSource.
const GPULightUniformsType = "LightUniforms"

// GPULightUniforms is the GPU-aligned light block read by the lit fragment shader.
//
// Layout:
//
//	vec4<f32> direction  (16 bytes, offset 0)  w = 0
//	vec4<f32> color      (16 bytes, offset 16) w = 1
//	f32       bias       ( 4 bytes, offset 32)
//	f32 x3    padding    (12 bytes, offset 36)
type GPULightUniforms struct {
	Direction [4]float32
	Color     [4]float32
	Bias      float32
	_pad      [3]float32
}

// NewGPULightUniforms snapshots a Light into its GPU representation.
//
// Parameters:
//   - l: the light to convert
//
// Returns:
//   - GPULightUniforms: the uniform block
func NewGPULightUniforms(l Light) GPULightUniforms {
	d, c := l.Direction(), l.Color()
	return GPULightUniforms{
		Direction: [4]float32{d[0], d[1], d[2], 0},
		Color:     [4]float32{c[0], c[1], c[2], 1},
		Bias:      l.Bias(),
	}
}

// Size returns the size of the GPULightUniforms struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (48)
func (u *GPULightUniforms) Size() int {
	return int(unsafe.Sizeof(*u))
}

// Marshal serializes the GPULightUniforms struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 48-byte buffer ready for GPU upload
func (u *GPULightUniforms) Marshal() []byte {
	buf := make([]byte, 48)
	common.PutVec4(buf[0:16], mgl32.Vec4(u.Direction))
	common.PutVec4(buf[16:32], mgl32.Vec4(u.Color))
	binary.LittleEndian.PutUint32(buf[32:36], math.Float32bits(u.Bias))
	return buf
}
