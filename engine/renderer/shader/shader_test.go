package shader

import (
	"testing"
	"testing/fstest"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testVertexStruct = `struct VertexInput {
    @location(0) position: vec3<f32>,
    @location(1) normal: vec3<f32>,
    @location(2) uv: vec2<f32>,
};`

const testGlobalsStruct = `struct GlobalUniforms {
    view_proj: mat4x4<f32>,
    light_view_proj: mat4x4<f32>,
    cam_pos: vec4<f32>,
};`

const testLitSource = `
//@oxy:include vertex
//@oxy:include globals
//@oxy:group 0 0 uniform globals globals

struct VertexOutput {
    @builtin(position) clip: vec4<f32>,
    @location(0) normal: vec3<f32>,
};

@vertex
fn vs_main(in: VertexInput) -> VertexOutput {
    var out: VertexOutput;
    out.clip = globals.view_proj * vec4<f32>(in.position, 1.0);
    out.normal = in.normal;
    return out;
}
`

const testFragmentSource = `
struct LightUniforms {
    direction: vec4<f32>,
    color: vec4<f32>,
    bias: f32,
};

@group(2) @binding(0) var<uniform> light: LightUniforms;
@group(2) @binding(1) var s_ShadowMap: texture_depth_2d;
@group(2) @binding(2) var shadowSampler: sampler_comparison;

@fragment
fn fs_main() -> @location(0) vec4<f32> {
    return light.color;
}
`

func testPreProcessor() PreProcessor {
	return NewPreProcessor(
		WithStruct("vertex", testVertexStruct, "VertexInput"),
		WithStruct("globals", testGlobalsStruct, "GlobalUniforms"),
	)
}

func TestPreProcessorExpandsAnnotations(t *testing.T) {
	pp := testPreProcessor()
	out, err := pp.Process(testLitSource)
	require.NoError(t, err)

	assert.Contains(t, out, "struct VertexInput")
	assert.Contains(t, out, "@group(0) @binding(0) var<uniform> globals: GlobalUniforms;")
	assert.NotContains(t, out, "@oxy:")
	require.Len(t, pp.Declarations(), 1)
	assert.Equal(t, AnnotationArg("globals"), pp.Declarations()[0].Args[1])
}

func TestPreProcessorErrors(t *testing.T) {
	tests := map[string]string{
		"unregistered include": "//@oxy:include camera",
		"unregistered group":   "//@oxy:group 0 0 uniform cam camera",
		"bad group number":     "//@oxy:group x 0 uniform globals globals",
		"bad address space":    "//@oxy:group 0 0 private globals globals",
		"unknown type":         "//@oxy:import globals",
		"empty":                "//@oxy:",
	}
	for name, src := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := testPreProcessor().Process(src)
			assert.Error(t, err)
		})
	}
}

func TestVertexShaderReflection(t *testing.T) {
	s, err := NewShader("lit_vs", StageVertex, testLitSource, testPreProcessor())
	require.NoError(t, err)

	assert.Equal(t, "vs_main", s.EntryPoint())

	layouts := s.VertexLayouts()
	require.Len(t, layouts, 1)
	assert.Equal(t, uint64(32), layouts[0].ArrayStride)
	require.Len(t, layouts[0].Attributes, 3)
	assert.Equal(t, uint64(24), layouts[0].Attributes[2].Offset)

	b, ok := s.Binding("globals")
	require.True(t, ok)
	assert.Equal(t, 0, b.Group)
	assert.Equal(t, 0, b.Binding)
	assert.Equal(t, uint64(144), b.Size)

	desc := s.BindGroupLayoutDescriptors()[0]
	require.Len(t, desc.Entries, 1)
	assert.Equal(t, wgpu.BufferBindingTypeUniform, desc.Entries[0].Buffer.Type)
	assert.Equal(t, wgpu.ShaderStageVertex, desc.Entries[0].Visibility)
}

func TestFragmentShaderReflection(t *testing.T) {
	s, err := NewShader("lit_fs", StageFragment, testFragmentSource, nil)
	require.NoError(t, err)

	assert.Nil(t, s.VertexLayouts())

	light, ok := s.Binding("light")
	require.True(t, ok)
	assert.Equal(t, uint64(48), light.Size)

	shadow, ok := s.Binding("s_ShadowMap")
	require.True(t, ok)
	assert.Equal(t, 2, shadow.Group)
	assert.Equal(t, 1, shadow.Binding)

	_, ok = s.Binding("u_Missing")
	assert.False(t, ok)

	entries := s.BindGroupLayoutDescriptors()[2].Entries
	require.Len(t, entries, 3)
	assert.Equal(t, wgpu.TextureSampleTypeDepth, entries[1].Texture.SampleType)
	assert.Equal(t, wgpu.TextureViewDimension2D, entries[1].Texture.ViewDimension)
	assert.Equal(t, wgpu.SamplerBindingTypeComparison, entries[2].Sampler.Type)
}

func TestNewShaderRequiresEntryPoint(t *testing.T) {
	_, err := NewShader("lit_fs", StageVertex, testFragmentSource, nil)
	assert.Error(t, err)
}

func TestNewShaderFromFile(t *testing.T) {
	fsys := fstest.MapFS{
		"shaders/lit.frag.wgsl": {Data: []byte(testFragmentSource)},
	}

	s, err := NewShaderFromFile(fsys, "lit_fs", StageFragment, "shaders/lit.frag.wgsl", nil)
	require.NoError(t, err)
	assert.Equal(t, "lit_fs", s.Module().Label)

	_, err = NewShaderFromFile(fsys, "missing", StageFragment, "shaders/none.wgsl", nil)
	assert.Error(t, err)
}

func TestComputeStructSizesResolvesNestedStructs(t *testing.T) {
	structs := parseStructBlocks(stripComments(`
struct Inner { a: vec3<f32>, b: f32, };
struct Outer { m: mat4x4<f32>, items: array<Inner, 2>, };
`))
	sizes := computeStructSizes(structs)
	assert.Equal(t, uint64(16), sizes["Inner"].size)
	assert.Equal(t, uint64(96), sizes["Outer"].size)
}
