package renderer

import (
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestParseGraphicsBackend(t *testing.T) {
	tests := map[string]wgpu.BackendType{
		"":        wgpu.BackendTypeUndefined,
		"vulkan":  wgpu.BackendTypeVulkan,
		"Metal":   wgpu.BackendTypeMetal,
		"d3d12":   wgpu.BackendTypeD3D12,
		"OPENGL":  wgpu.BackendTypeOpenGL,
		"glide3d": wgpu.BackendTypeUndefined,
	}
	for name, want := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, want, ParseGraphicsBackend(name))
		})
	}
}

func TestBuilderOptions(t *testing.T) {
	r := &renderer{logger: zap.NewNop()}
	logger := zap.NewExample()

	for _, opt := range []RendererBuilderOption{
		WithPresentMode(PresentModeUncapped),
		WithMSAA(MSAAOff),
		WithGraphicsBackend("vulkan"),
		WithForceSoftwareRenderer(true),
		WithLogger(logger),
		WithLogger(nil),
	} {
		opt(r)
	}

	assert.Equal(t, PresentModeUncapped, r.options.presentMode)
	assert.Equal(t, MSAAOff, r.options.sampleCount)
	assert.Equal(t, wgpu.BackendTypeVulkan, r.options.backendType)
	assert.Equal(t, "vulkan", r.options.backendName)
	assert.True(t, r.options.forceFallbackAdapter)
	assert.Same(t, logger, r.logger)
}
