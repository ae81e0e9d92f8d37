package renderer

import (
	"strings"

	"github.com/cogentcore/webgpu/wgpu"
)

// RendererBackendType represents the type of rendering backend to use.
type RendererBackendType int

const (
	// BackendTypeWGPU represents the WebGPU rendering backend, the only backend.
	BackendTypeWGPU RendererBackendType = iota
)

// PresentMode controls how rendered frames are delivered to the display.
type PresentMode int

const (
	// PresentModeVSync synchronizes frame presentation with the display's vertical refresh.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents frames immediately without waiting for vertical sync.
	// May cause screen tearing.
	PresentModeUncapped
)

// MSAASampleCount represents the number of samples per pixel for multisample anti-aliasing.
type MSAASampleCount uint32

const (
	// MSAAOff disables multisampling (1 sample per pixel).
	MSAAOff MSAASampleCount = 1

	// MSAA4x enables 4x multisample anti-aliasing. Universally supported by WebGPU adapters.
	MSAA4x MSAASampleCount = 4
)

// DrawRange selects the indices of one sub-mesh within a mesh's shared buffers.
type DrawRange struct {
	IndexCount uint32
	FirstIndex uint32
	BaseVertex int32
}

// ParseGraphicsBackend maps a backend name to the wgpu adapter backend preference.
// Unknown and empty names map to wgpu.BackendTypeUndefined, letting the adapter choose.
//
// Parameters:
//   - name: one of vulkan, metal, d3d12, opengl (case-insensitive)
//
// Returns:
//   - wgpu.BackendType: the backend preference
func ParseGraphicsBackend(name string) wgpu.BackendType {
	switch strings.ToLower(name) {
	case "vulkan":
		return wgpu.BackendTypeVulkan
	case "metal":
		return wgpu.BackendTypeMetal
	case "d3d12":
		return wgpu.BackendTypeD3D12
	case "opengl":
		return wgpu.BackendTypeOpenGL
	default:
		return wgpu.BackendTypeUndefined
	}
}

// RendererBackend is the interface every rendering backend implementation satisfies.
type RendererBackend interface {
	wgpuRendererBackend
}
