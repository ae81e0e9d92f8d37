package loader

import (
	"io/fs"
	"path"

	"github.com/Carmen-Shannon/oxy-shadows/engine/model"

	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// gltfLoaderBackend decodes glTF and GLB files. Each triangle-list primitive becomes
// one ImportedMesh. Node transforms are not applied; meshes are taken in their own space.
type gltfLoaderBackend struct{}

var _ loaderBackend = &gltfLoaderBackend{}

func newGLTFLoaderBackend() *gltfLoaderBackend {
	return &gltfLoaderBackend{}
}

func (b *gltfLoaderBackend) Decode(fsys fs.FS, name string) (*model.ImportedModel, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", name)
	}
	defer f.Close()

	// External buffers are resolved next to the document.
	dir, err := fs.Sub(fsys, path.Dir(name))
	if err != nil {
		return nil, errors.Wrapf(err, "resolve directory of %s", name)
	}

	doc := new(gltf.Document)
	if err := gltf.NewDecoderFS(f, dir).Decode(doc); err != nil {
		return nil, errors.Wrapf(err, "decode gltf %s", name)
	}

	imported := &model.ImportedModel{Name: modelName(name)}
	for mi, m := range doc.Meshes {
		for pi, prim := range m.Primitives {
			if prim.Mode != gltf.PrimitiveTriangles {
				continue
			}
			mesh, err := b.readPrimitive(doc, prim)
			if err != nil {
				return nil, errors.Wrapf(err, "%s: mesh %d primitive %d", name, mi, pi)
			}
			mesh.Name = m.Name
			imported.Meshes = append(imported.Meshes, mesh)
		}
	}
	return imported, nil
}

func (b *gltfLoaderBackend) readPrimitive(doc *gltf.Document, prim *gltf.Primitive) (model.ImportedMesh, error) {
	var mesh model.ImportedMesh

	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return mesh, errors.New("primitive has no POSITION attribute")
	}
	positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
	if err != nil {
		return mesh, errors.Wrap(err, "read positions")
	}

	var normals [][3]float32
	if idx, ok := prim.Attributes[gltf.NORMAL]; ok {
		if normals, err = modeler.ReadNormal(doc, doc.Accessors[idx], nil); err != nil {
			return mesh, errors.Wrap(err, "read normals")
		}
	}

	var uvs [][2]float32
	if idx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
		if uvs, err = modeler.ReadTextureCoord(doc, doc.Accessors[idx], nil); err != nil {
			return mesh, errors.Wrap(err, "read texture coordinates")
		}
	}

	mesh.Vertices = make([]model.GPUVertex, len(positions))
	for i, p := range positions {
		mesh.Vertices[i].Position = p
		if i < len(normals) {
			mesh.Vertices[i].Normal = normals[i]
		}
		if i < len(uvs) {
			mesh.Vertices[i].TexCoord = uvs[i]
		}
	}

	if prim.Indices != nil {
		if mesh.Indices, err = modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil); err != nil {
			return mesh, errors.Wrap(err, "read indices")
		}
	} else {
		mesh.Indices = make([]uint32, len(positions))
		for i := range mesh.Indices {
			mesh.Indices[i] = uint32(i)
		}
	}

	mesh.ComputeBounds()
	return mesh, nil
}
