package loader

import (
	"io/fs"
	"path"
	"strings"

	"github.com/Carmen-Shannon/oxy-shadows/engine/model"

	"github.com/pkg/errors"
)

// ErrUnsupportedFormat is returned when no backend is registered for a file extension.
var ErrUnsupportedFormat = errors.New("unsupported mesh format")

// loaderBackend decodes one mesh file format into CPU-side mesh data.
// Concrete implementations (objLoaderBackend, gltfLoaderBackend) handle format-specific details.
// Decode never touches the GPU so it is safe to call from worker goroutines.
type loaderBackend interface {
	// Decode reads and decodes the named file from fsys.
	//
	// Parameters:
	//   - fsys: the file system to read from
	//   - name: the slash-separated path of the file within fsys
	//
	// Returns:
	//   - *model.ImportedModel: the decoded model
	//   - error: error if the file cannot be read or parsed
	Decode(fsys fs.FS, name string) (*model.ImportedModel, error)
}

// defaultBackends returns the backends keyed by lower-case file extension.
func defaultBackends() map[string]loaderBackend {
	obj := newOBJLoaderBackend()
	gltf := newGLTFLoaderBackend()
	return map[string]loaderBackend{
		".obj":  obj,
		".gltf": gltf,
		".glb":  gltf,
	}
}

func modelName(name string) string {
	base := path.Base(name)
	return strings.TrimSuffix(base, path.Ext(base))
}
