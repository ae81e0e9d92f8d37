package model

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func triangle(offset float32) ImportedMesh {
	return ImportedMesh{
		Name: "tri",
		Vertices: []GPUVertex{
			{Position: [3]float32{offset, 0, 0}, Normal: [3]float32{0, 1, 0}},
			{Position: [3]float32{offset + 1, 0, 0}, Normal: [3]float32{0, 1, 0}},
			{Position: [3]float32{offset, 0, 1}, Normal: [3]float32{0, 1, 0}, TexCoord: [2]float32{0, 1}},
		},
		Indices: []uint32{0, 1, 2},
	}
}

func TestGPUVertexLayout(t *testing.T) {
	v := GPUVertex{TexCoord: [2]float32{0.25, 0.75}}
	require.Equal(t, 32, v.Size())

	buf := v.Marshal()
	require.Len(t, buf, 32)
	assert.Equal(t, float32(0.25), math.Float32frombits(binary.LittleEndian.Uint32(buf[24:28])))
	assert.Equal(t, float32(0.75), math.Float32frombits(binary.LittleEndian.Uint32(buf[28:32])))
}

func TestGPUObjectUniformsLayout(t *testing.T) {
	u := GPUObjectUniforms{
		Model: mgl32.Translate3D(1, 2, 3),
		Color: mgl32.Vec4{0.5, 0.5, 0.5, 1},
	}
	require.Equal(t, 80, u.Size())

	buf := u.Marshal()
	require.Len(t, buf, 80)
	assert.Equal(t, float32(2), math.Float32frombits(binary.LittleEndian.Uint32(buf[13*4:])))
	assert.Equal(t, float32(0.5), math.Float32frombits(binary.LittleEndian.Uint32(buf[64:68])))
	assert.Equal(t, float32(1), math.Float32frombits(binary.LittleEndian.Uint32(buf[76:80])))
}

func TestNewMeshFromImportedPacksSubMeshes(t *testing.T) {
	m, err := NewMeshFromImported(ImportedModel{
		Name:   "pair",
		Meshes: []ImportedMesh{triangle(0), {Name: "empty"}, triangle(5)},
	})
	require.NoError(t, err)

	assert.Equal(t, "pair", m.Name())
	assert.Equal(t, 6, m.VertexCount())
	assert.Equal(t, 6, m.IndexCount())
	assert.Len(t, m.VertexData(), 6*32)
	assert.Len(t, m.IndexData(), 6*4)
	assert.Equal(t, []SubMesh{
		{IndexCount: 3, BaseIndex: 0, BaseVertex: 0},
		{IndexCount: 3, BaseIndex: 3, BaseVertex: 3},
	}, m.SubMeshes())
	assert.InDelta(t, 6, m.BoundingRadius(), 1e-6)
	assert.Nil(t, m.MeshProvider())

	// Indices stay local to their sub-mesh.
	assert.Equal(t, uint32(0), binary.LittleEndian.Uint32(m.IndexData()[12:16]))
}

func TestNewMeshFromImportedEmpty(t *testing.T) {
	_, err := NewMeshFromImported(ImportedModel{Name: "nothing"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrEmptyMesh))
}

func TestMeshIDsAreUnique(t *testing.T) {
	a := NewMesh(WithName("a"))
	b := NewMesh(WithName("b"))
	assert.NotEqual(t, a.ID(), b.ID())
}

func TestTransformMatrix(t *testing.T) {
	tr := Transform{Scale: 0.1, RotationY: 45}
	p := tr.Matrix().Mul4x1(mgl32.Vec4{10, 0, 0, 1})

	// (10,0,0) scaled to (1,0,0), then rotated 45 degrees about +Y.
	assert.InDelta(t, math.Sqrt2/2, p.X(), 1e-5)
	assert.InDelta(t, -math.Sqrt2/2, p.Z(), 1e-5)

	identity := Transform{}.Matrix()
	assert.True(t, identity.ApproxEqual(mgl32.Ident4()))
}

func TestImportedMeshComputeBounds(t *testing.T) {
	m := triangle(2)
	m.ComputeBounds()
	assert.Equal(t, [3]float32{2, 0, 0}, m.BoundingMin)
	assert.Equal(t, [3]float32{3, 0, 1}, m.BoundingMax)
}
