package scene

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-shadows/engine/model"
	"github.com/Carmen-Shannon/oxy-shadows/engine/renderer/bind_group_provider"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testObject(name string, subs ...model.SubMesh) *sceneObject {
	return &sceneObject{
		name: name,
		mesh: model.NewMesh(
			model.WithName(name),
			model.WithSubMeshes(subs),
			model.WithMeshProvider(bind_group_provider.NewBindGroupProvider("mesh_"+name)),
		),
		transform: model.Transform{Scale: 1},
		provider:  bind_group_provider.NewBindGroupProvider("object_" + name),
	}
}

// The providers below hold a placeholder view and are never released.
func shadowMapWithView() bind_group_provider.BindGroupProvider {
	p := bind_group_provider.NewBindGroupProvider("light")
	p.SetTextureView(1, &wgpu.TextureView{})
	return p
}

func TestShadowPassDrawsEverySubMesh(t *testing.T) {
	r := newFakeRenderer(false)
	globals := bind_group_provider.NewBindGroupProvider("globals")
	pass := newShadowPass(globals, shadowMapWithView(), 1)

	objects := []*sceneObject{
		testObject("statue", model.SubMesh{IndexCount: 30}, model.SubMesh{IndexCount: 12, BaseIndex: 30, BaseVertex: 20}),
		testObject("plane", model.SubMesh{IndexCount: 6}),
	}
	require.NoError(t, pass.Render(r, objects))

	require.Len(t, r.shadowDraws, 3)
	assert.Equal(t, "mesh_statue", r.shadowDraws[0].mesh)
	assert.Equal(t, uint32(30), r.shadowDraws[1].rng.FirstIndex)
	assert.Equal(t, int32(20), r.shadowDraws[1].rng.BaseVertex)
	assert.Equal(t, "mesh_plane", r.shadowDraws[2].mesh)
	assert.Equal(t, []string{"globals", "object_plane"}, r.shadowDraws[2].bindGroups)
	assert.Equal(t, []string{"begin_shadow_frame", "begin_shadow_pass", "end_shadow_pass", "end_shadow_frame"}, r.calls)
}

func TestShadowPassRequiresDepthView(t *testing.T) {
	r := newFakeRenderer(false)
	pass := newShadowPass(bind_group_provider.NewBindGroupProvider("globals"), bind_group_provider.NewBindGroupProvider("light"), 1)

	err := pass.Render(r, []*sceneObject{testObject("plane", model.SubMesh{IndexCount: 6})})
	require.Error(t, err)
	assert.Empty(t, r.calls)
	assert.Empty(t, r.shadowDraws)
}

func TestLitPassBindsLightGroupOnlyWhenSet(t *testing.T) {
	globals := bind_group_provider.NewBindGroupProvider("globals")
	objects := []*sceneObject{testObject("plane", model.SubMesh{IndexCount: 6})}

	r := newFakeRenderer(false)
	require.NoError(t, newLitPass(globals, shadowMapWithView()).Render(r, objects))
	require.Len(t, r.litDraws, 1)
	assert.Equal(t, []string{"globals", "object_plane", "light"}, r.litDraws[0].bindGroups)
	assert.Equal(t, []string{"begin_frame", "end_frame", "present"}, r.calls)

	r = newFakeRenderer(false)
	require.NoError(t, newLitPass(globals, nil).Render(r, objects))
	require.Len(t, r.litDraws, 1)
	assert.Equal(t, []string{"globals", "object_plane"}, r.litDraws[0].bindGroups)
}

func TestLitPassSkipsFrameWhenSurfaceUnavailable(t *testing.T) {
	r := newFakeRenderer(false)
	r.failBegin = true

	err := newLitPass(bind_group_provider.NewBindGroupProvider("globals"), nil).
		Render(r, []*sceneObject{testObject("plane", model.SubMesh{IndexCount: 6})})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "begin frame")
	assert.Empty(t, r.litDraws)
	assert.Empty(t, r.calls)
}

func TestSceneObjectUniforms(t *testing.T) {
	obj := testObject("statue")
	obj.transform = model.Transform{Scale: 0.1, RotationY: 45}
	obj.color[3] = 1

	u := obj.uniforms()
	assert.Equal(t, obj.transform.Matrix(), u.Model)
	assert.Equal(t, float32(1), u.Color[3])
	assert.Empty(t, obj.drawRanges())
}
