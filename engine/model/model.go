package model

import (
	"github.com/Carmen-Shannon/oxy-shadows/engine/renderer/bind_group_provider"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// ErrEmptyMesh is returned when an imported model has no drawable triangles.
var ErrEmptyMesh = errors.New("mesh has no triangles")

// mesh is the implementation of the Mesh interface.
type mesh struct {
	id                    uuid.UUID
	name                  string
	subMeshes             []SubMesh
	meshProvider          bind_group_provider.BindGroupProvider
	boundingRadius        float32
	vertexData, indexData []byte
	vertexCount           int
	indexCount            int
}

// Mesh defines the interface for loaded geometry.
// A Mesh holds one shared vertex buffer and one shared index buffer, split into
// SubMesh draw ranges. It is immutable after loading except for its GPU provider,
// which is attached once the renderer uploads the buffers.
type Mesh interface {
	// ID returns the unique identity assigned when the mesh was built.
	//
	// Returns:
	//   - uuid.UUID: the mesh id
	ID() uuid.UUID

	// Name retrieves the mesh identifier, usually the asset path.
	//
	// Returns:
	//   - string: the mesh name
	Name() string

	// SubMeshes returns the draw ranges, in the order they were imported.
	//
	// Returns:
	//   - []SubMesh: the sub-mesh draw ranges
	SubMeshes() []SubMesh

	// VertexData returns the packed vertex buffer payload.
	//
	// Returns:
	//   - []byte: the vertex data
	VertexData() []byte

	// IndexData returns the packed uint32 index buffer payload.
	//
	// Returns:
	//   - []byte: the index data
	IndexData() []byte

	// VertexCount returns the number of vertices in the shared vertex buffer.
	VertexCount() int

	// IndexCount returns the total number of indices across all sub-meshes.
	//
	// Returns:
	//   - int: the index count
	IndexCount() int

	// BoundingRadius returns the maximum vertex distance from the model origin.
	BoundingRadius() float32

	// MeshProvider retrieves the BindGroupProvider holding the GPU vertex and index buffers.
	// Nil until the mesh has been uploaded.
	//
	// Returns:
	//   - bind_group_provider.BindGroupProvider: the mesh provider
	MeshProvider() bind_group_provider.BindGroupProvider

	// SetMeshProvider attaches the BindGroupProvider created during upload.
	//
	// Parameters:
	//   - provider: the mesh provider
	SetMeshProvider(provider bind_group_provider.BindGroupProvider)
}

var _ Mesh = &mesh{}

// NewMesh creates a new Mesh instance with the specified options applied.
// A fresh id is generated unless WithID is given.
//
// Parameters:
//   - options: a variadic list of MeshBuilderOption functions to configure the Mesh
//
// Returns:
//   - Mesh: a new instance of Mesh configured with the provided options
func NewMesh(options ...MeshBuilderOption) Mesh {
	m := &mesh{id: uuid.New()}
	for _, opt := range options {
		opt(m)
	}
	return m
}

// NewMeshFromImported concatenates every ImportedMesh into one vertex and index
// buffer. Each ImportedMesh becomes a SubMesh whose BaseVertex and BaseIndex point
// at its slice of the shared buffers. Meshes without triangles are skipped.
//
// Parameters:
//   - imported: the decoded model
//
// Returns:
//   - Mesh: the packed mesh
//   - error: ErrEmptyMesh if no mesh contributes a triangle
func NewMeshFromImported(imported ImportedModel) (Mesh, error) {
	var (
		vertices  []GPUVertex
		indices   []uint32
		subMeshes []SubMesh
	)
	for _, im := range imported.Meshes {
		if len(im.Indices) < 3 || len(im.Vertices) == 0 {
			continue
		}
		subMeshes = append(subMeshes, SubMesh{
			IndexCount: uint32(len(im.Indices)),
			BaseIndex:  uint32(len(indices)),
			BaseVertex: int32(len(vertices)),
		})
		vertices = append(vertices, im.Vertices...)
		indices = append(indices, im.Indices...)
	}
	if len(subMeshes) == 0 {
		return nil, errors.Wrapf(ErrEmptyMesh, "model %s", imported.Name)
	}

	return NewMesh(
		WithName(imported.Name),
		WithSubMeshes(subMeshes),
		WithVertexData(MarshalVertices(vertices), len(vertices)),
		WithIndexData(MarshalIndices(indices), len(indices)),
		WithBoundingRadius(ComputeBoundingRadius(vertices)),
	), nil
}

func (m *mesh) ID() uuid.UUID {
	return m.id
}

func (m *mesh) Name() string {
	return m.name
}

func (m *mesh) SubMeshes() []SubMesh {
	return m.subMeshes
}

func (m *mesh) VertexData() []byte {
	return m.vertexData
}

func (m *mesh) IndexData() []byte {
	return m.indexData
}

func (m *mesh) VertexCount() int {
	return m.vertexCount
}

func (m *mesh) IndexCount() int {
	return m.indexCount
}

func (m *mesh) BoundingRadius() float32 {
	return m.boundingRadius
}

func (m *mesh) MeshProvider() bind_group_provider.BindGroupProvider {
	return m.meshProvider
}

func (m *mesh) SetMeshProvider(provider bind_group_provider.BindGroupProvider) {
	m.meshProvider = provider
}
