package loader

import (
	"bytes"
	"sync"
	"testing"
	"testing/fstest"

	"github.com/Carmen-Shannon/oxy-shadows/engine/model"
	"github.com/Carmen-Shannon/oxy-shadows/engine/renderer/bind_group_provider"

	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const quadOBJ = `# unit quad facing +Y
o quad
v 0 0 0
v 1 0 0
v 1 0 1
v 0 0 1
vt 0 0
vt 1 0
vt 1 1
vt 0 1
vn 0 1 0
f 1/1/1 2/2/1 3/3/1 4/4/1
`

const bareTriangleOBJ = `o tri
v 0 0 0
v 1 0 0
v 0 1 0
f 1 2 3
`

type fakeUploader struct {
	mu     sync.Mutex
	labels []string
	counts []int
	err    error
}

func (f *fakeUploader) InitMeshBuffers(provider bind_group_provider.BindGroupProvider, vertexData, indexData []byte, indexCount int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.labels = append(f.labels, provider.Label())
	f.counts = append(f.counts, indexCount)
	return nil
}

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"meshes/quad.obj":  {Data: []byte(quadOBJ)},
		"meshes/tri.obj":   {Data: []byte(bareTriangleOBJ)},
		"meshes/notes.txt": {Data: []byte("not a mesh")},
		"meshes/empty.obj": {Data: []byte("# nothing here\n")},
	}
}

func TestLoadOBJTriangulatesAndDedupes(t *testing.T) {
	up := &fakeUploader{}
	l := NewLoader(testFS(), WithUploader(up))

	m, err := l.Load("meshes/quad.obj")
	require.NoError(t, err)

	assert.Equal(t, "quad", m.Name())
	assert.Equal(t, 4, m.VertexCount())
	assert.Equal(t, 6, m.IndexCount())
	require.Len(t, m.SubMeshes(), 1)
	assert.Equal(t, model.SubMesh{IndexCount: 6, BaseIndex: 0, BaseVertex: 0}, m.SubMeshes()[0])

	require.NotNil(t, m.MeshProvider())
	assert.Equal(t, []string{"meshes/quad.obj"}, up.labels)
	assert.Equal(t, []int{6}, up.counts)
}

func TestLoadLogsMeshIdentity(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	l := NewLoader(testFS(), WithLogger(zap.New(core)))

	m, err := l.Load("meshes/quad.obj")
	require.NoError(t, err)
	_, err = l.Load("meshes/quad.obj")
	require.NoError(t, err)

	entries := logs.FilterMessage("mesh loaded").All()
	require.Len(t, entries, 1)
	ctx := entries[0].ContextMap()
	assert.Equal(t, "meshes/quad.obj", ctx["path"])
	assert.Equal(t, m.ID().String(), ctx["mesh_id"])
}

func TestOBJBackendComputesMissingNormals(t *testing.T) {
	imported, err := newOBJLoaderBackend().Decode(testFS(), "meshes/tri.obj")
	require.NoError(t, err)
	require.Len(t, imported.Meshes, 1)

	mesh := imported.Meshes[0]
	require.Len(t, mesh.Vertices, 3)
	assert.Equal(t, []uint32{0, 1, 2}, mesh.Indices)
	for _, v := range mesh.Vertices {
		assert.InDelta(t, 0, v.Normal[0], 1e-6)
		assert.InDelta(t, 0, v.Normal[1], 1e-6)
		assert.InDelta(t, 1, v.Normal[2], 1e-6)
	}
	assert.Equal(t, [3]float32{0, 0, 0}, mesh.BoundingMin)
	assert.Equal(t, [3]float32{1, 1, 0}, mesh.BoundingMax)
}

func TestOBJBackendFlipsTextureV(t *testing.T) {
	imported, err := newOBJLoaderBackend().Decode(testFS(), "meshes/quad.obj")
	require.NoError(t, err)
	require.Len(t, imported.Meshes, 1)

	// Corner 3 carries vt 1 1.
	assert.Equal(t, [2]float32{1, 0}, imported.Meshes[0].Vertices[2].TexCoord)
}

func TestLoadCachesByPath(t *testing.T) {
	up := &fakeUploader{}
	l := NewLoader(testFS(), WithUploader(up))

	first, err := l.Load("meshes/quad.obj")
	require.NoError(t, err)
	second, err := l.Load("meshes/quad.obj")
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Len(t, up.labels, 1)
	assert.Same(t, first, l.Get("meshes/quad.obj"))
	assert.Len(t, l.Meshes(), 1)
	assert.Nil(t, l.Get("meshes/tri.obj"))
}

func TestLoadErrors(t *testing.T) {
	l := NewLoader(testFS())

	_, err := l.Load("meshes/notes.txt")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))

	_, err = l.Load("meshes/missing.obj")
	require.Error(t, err)

	_, err = l.Load("meshes/empty.obj")
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrEmptyMesh))

	up := &fakeUploader{err: errors.New("device lost")}
	_, err = NewLoader(testFS(), WithUploader(up)).Load("meshes/quad.obj")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "device lost")
}

func TestLoadAllKeepsOrder(t *testing.T) {
	up := &fakeUploader{}
	l := NewLoader(testFS(), WithUploader(up), WithWorkers(4))

	meshes, err := l.LoadAll("meshes/tri.obj", "meshes/quad.obj")
	require.NoError(t, err)
	require.Len(t, meshes, 2)

	assert.Equal(t, "tri", meshes[0].Name())
	assert.Equal(t, "quad", meshes[1].Name())
	assert.Equal(t, []string{"meshes/tri.obj", "meshes/quad.obj"}, up.labels)
}

func TestLoadAllUsesCache(t *testing.T) {
	cached := model.NewMesh(model.WithName("cached"))
	up := &fakeUploader{}
	l := NewLoader(testFS(), WithUploader(up), WithMesh("meshes/quad.obj", cached))

	meshes, err := l.LoadAll("meshes/quad.obj", "meshes/tri.obj")
	require.NoError(t, err)
	assert.Same(t, cached, meshes[0])
	assert.Equal(t, []string{"meshes/tri.obj"}, up.labels)
}

func TestLoadAllReportsFirstFailure(t *testing.T) {
	l := NewLoader(testFS())

	_, err := l.LoadAll("meshes/quad.obj", "meshes/notes.txt")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))
}

func TestLoadGLB(t *testing.T) {
	doc := gltf.NewDocument()
	positions := modeler.WritePosition(doc, [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 0, 1}})
	normals := modeler.WriteNormal(doc, [][3]float32{{0, 1, 0}, {0, 1, 0}, {0, 1, 0}})
	indices := modeler.WriteIndices(doc, []uint32{0, 2, 1})
	doc.Meshes = []*gltf.Mesh{{
		Name: "tri",
		Primitives: []*gltf.Primitive{{
			Indices: gltf.Index(indices),
			Attributes: map[string]int{
				gltf.POSITION: positions,
				gltf.NORMAL:   normals,
			},
		}},
	}}

	var buf bytes.Buffer
	enc := gltf.NewEncoder(&buf)
	enc.AsBinary = true
	require.NoError(t, enc.Encode(doc))

	fsys := fstest.MapFS{"meshes/tri.glb": {Data: buf.Bytes()}}
	m, err := NewLoader(fsys).Load("meshes/tri.glb")
	require.NoError(t, err)

	assert.Equal(t, "tri", m.Name())
	assert.Equal(t, 3, m.VertexCount())
	assert.Equal(t, 3, m.IndexCount())
	assert.InDelta(t, 1, m.BoundingRadius(), 1e-6)
}
