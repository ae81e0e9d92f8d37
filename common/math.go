package common

import (
	"encoding/binary"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// clipDepthCorrection remaps OpenGL clip depth [-w, w] to the WebGPU range [0, w].
// Column-major: z' = 0.5*z + 0.5*w.
var clipDepthCorrection = mgl32.Mat4{
	1, 0, 0, 0,
	0, 1, 0, 0,
	0, 0, 0.5, 0,
	0, 0, 0.5, 1,
}

// Perspective creates a perspective projection matrix with WebGPU clip depth [0, 1].
// mgl32.Perspective targets OpenGL depth [-1, 1], so its result is remapped.
//
// Parameters:
//   - fovY: vertical field of view in radians
//   - aspect: viewport aspect ratio (width/height)
//   - near: near clipping plane distance (must be > 0)
//   - far: far clipping plane distance (must be > near)
//
// Returns:
//   - mgl32.Mat4: the column-major projection matrix
func Perspective(fovY, aspect, near, far float32) mgl32.Mat4 {
	return clipDepthCorrection.Mul4(mgl32.Perspective(fovY, aspect, near, far))
}

// Ortho creates an orthographic projection matrix with WebGPU clip depth [0, 1].
//
// Parameters:
//   - left, right, bottom, top: the view volume extents
//   - near, far: distances to the near and far planes
//
// Returns:
//   - mgl32.Mat4: the column-major projection matrix
func Ortho(left, right, bottom, top, near, far float32) mgl32.Mat4 {
	return clipDepthCorrection.Mul4(mgl32.Ortho(left, right, bottom, top, near, far))
}

// PutMat4 writes a column-major matrix into buf as 16 little-endian float32 values.
// buf must be at least 64 bytes long.
func PutMat4(buf []byte, m mgl32.Mat4) {
	for i, v := range m {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
}

// PutVec4 writes a vector into buf as 4 little-endian float32 values.
// buf must be at least 16 bytes long.
func PutVec4(buf []byte, v mgl32.Vec4) {
	for i, c := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(c))
	}
}

// ClampF32 restricts v to the closed range [lo, hi].
func ClampF32(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
