package pipeline

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-shadows/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const vertexSource = `
struct VertexInput {
    @location(0) position: vec3<f32>,
};

struct Globals {
    view_proj: mat4x4<f32>,
};

struct Light {
    direction: vec4<f32>,
};

@group(0) @binding(0) var<uniform> globals: Globals;
@group(2) @binding(0) var<uniform> light: Light;

@vertex
fn vs_main(in: VertexInput) -> @builtin(position) vec4<f32> {
    return globals.view_proj * vec4<f32>(in.position, 1.0) + light.direction * 0.0;
}
`

const fragmentSource = `
struct Light {
    direction: vec4<f32>,
};

@group(2) @binding(0) var<uniform> light: Light;
@group(2) @binding(1) var s_ShadowMap: texture_depth_2d;
@group(2) @binding(2) var shadowSampler: sampler_comparison;

@fragment
fn fs_main() -> @location(0) vec4<f32> {
    return light.direction;
}
`

func newLitPipeline(t *testing.T) Pipeline {
	t.Helper()
	vs, err := shader.NewShader("vs", shader.StageVertex, vertexSource, nil)
	require.NoError(t, err)
	fs, err := shader.NewShader("fs", shader.StageFragment, fragmentSource, nil)
	require.NoError(t, err)
	return NewPipeline("lit", PipelineTypeRender, WithVertexShader(vs), WithFragmentShader(fs))
}

func TestDefaults(t *testing.T) {
	p := NewPipeline("shadow", PipelineTypeDepthOnly)

	assert.Equal(t, PipelineTypeDepthOnly, p.Type())
	assert.Equal(t, "shadow", p.PipelineKey())
	assert.True(t, p.DepthTestEnabled())
	assert.True(t, p.DepthWriteEnabled())
	assert.Equal(t, wgpu.CullModeNone, p.CullMode())
	assert.Zero(t, p.DepthBias())
	assert.Nil(t, p.Pipeline())
	assert.Nil(t, p.Shader(shader.StageVertex))
}

func TestBindingLookup(t *testing.T) {
	p := newLitPipeline(t)

	group, binding, ok := p.Binding("s_ShadowMap")
	require.True(t, ok)
	assert.Equal(t, 2, group)
	assert.Equal(t, 1, binding)

	group, binding, ok = p.Binding("globals")
	require.True(t, ok)
	assert.Equal(t, 0, group)
	assert.Equal(t, 0, binding)

	_, _, ok = p.Binding("s_Missing")
	assert.False(t, ok)
}

func TestBindGroupLayoutDescriptorsMergeVisibility(t *testing.T) {
	descs := newLitPipeline(t).BindGroupLayoutDescriptors()
	require.Len(t, descs, 2)

	group2 := descs[2]
	require.Len(t, group2.Entries, 3)
	assert.Equal(t, uint32(0), group2.Entries[0].Binding)
	assert.Equal(t, wgpu.ShaderStageVertex|wgpu.ShaderStageFragment, group2.Entries[0].Visibility)
	assert.Equal(t, wgpu.ShaderStageFragment, group2.Entries[1].Visibility)
	assert.Equal(t, wgpu.TextureSampleTypeDepth, group2.Entries[1].Texture.SampleType)
	assert.Equal(t, wgpu.SamplerBindingTypeComparison, group2.Entries[2].Sampler.Type)

	assert.Equal(t, wgpu.ShaderStageVertex, descs[0].Entries[0].Visibility)
}

func TestOptions(t *testing.T) {
	p := NewPipeline("shadow", PipelineTypeDepthOnly,
		WithCullMode(wgpu.CullModeFront),
		WithDepthBias(2, 1.5),
		WithDepthTestEnabled(false),
		WithDepthWriteEnabled(false),
	)
	assert.Equal(t, wgpu.CullModeFront, p.CullMode())
	assert.Equal(t, int32(2), p.DepthBias())
	assert.Equal(t, float32(1.5), p.DepthBiasSlopeScale())
	assert.False(t, p.DepthTestEnabled())
	assert.False(t, p.DepthWriteEnabled())
	require.NotPanics(t, p.Release)
}
