package scene

import (
	_ "embed"
	"unsafe"

	"github.com/Carmen-Shannon/oxy-shadows/common"
	"github.com/go-gl/mathgl/mgl32"
)

// GPUGlobalUniformsSource is the canonical WGSL definition of the GlobalUniforms struct.
// Matches GPUGlobalUniforms layout exactly (144 bytes).
//
//go:embed assets/global_uniforms.wgsl
var GPUGlobalUniformsSource string

// GPUGlobalUniformsType is the WGSL type name declared by GPUGlobalUniformsSource.
const GPUGlobalUniformsType = "GlobalUniforms"

// GPUGlobalUniforms is the per-frame block bound at group 0 binding 0 of both passes.
//
// Layout:
//
//	mat4x4<f32> view_proj        (64 bytes, offset 0)
//	mat4x4<f32> light_view_proj  (64 bytes, offset 64)
//	vec4<f32>   cam_pos          (16 bytes, offset 128) w = 0
type GPUGlobalUniforms struct {
	ViewProj      mgl32.Mat4
	LightViewProj mgl32.Mat4
	CamPos        mgl32.Vec4
}

// NewGPUGlobalUniforms builds the block from the camera and light matrices.
//
// Parameters:
//   - viewProj: the camera view-projection matrix
//   - lightViewProj: the light view-projection matrix
//   - camPos: the camera world position
//
// Returns:
//   - GPUGlobalUniforms: the uniform block
func NewGPUGlobalUniforms(viewProj, lightViewProj mgl32.Mat4, camPos mgl32.Vec3) GPUGlobalUniforms {
	return GPUGlobalUniforms{
		ViewProj:      viewProj,
		LightViewProj: lightViewProj,
		CamPos:        camPos.Vec4(0),
	}
}

// Size returns the size of the GPUGlobalUniforms struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes (144)
func (g *GPUGlobalUniforms) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUGlobalUniforms struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 144-byte buffer ready for GPU upload
func (g *GPUGlobalUniforms) Marshal() []byte {
	buf := make([]byte, 144)
	common.PutMat4(buf[0:64], g.ViewProj)
	common.PutMat4(buf[64:128], g.LightViewProj)
	common.PutVec4(buf[128:144], g.CamPos)
	return buf
}
