package loader

import (
	"github.com/Carmen-Shannon/oxy-shadows/engine/model"

	"go.uber.org/zap"
)

// LoaderBuilderOption is a functional option for configuring a Loader via NewLoader.
type LoaderBuilderOption func(*loader)

// WithUploader is an option builder that sets the MeshUploader used to create GPU buffers
// for every decoded mesh. Without an uploader meshes stay CPU-side.
//
// Parameters:
//   - u: the uploader, usually the renderer
//
// Returns:
//   - LoaderBuilderOption: a function that applies the uploader option to a loader
func WithUploader(u MeshUploader) LoaderBuilderOption {
	return func(l *loader) {
		l.uploader = u
	}
}

// WithLogger is an option builder that sets the logger. A nil logger is ignored.
//
// Parameters:
//   - logger: the zap logger
//
// Returns:
//   - LoaderBuilderOption: a function that applies the logger option to a loader
func WithLogger(logger *zap.Logger) LoaderBuilderOption {
	return func(l *loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithWorkers is an option builder that bounds the number of decode workers LoadAll uses.
//
// Parameters:
//   - n: the maximum number of concurrent decodes, values below 1 are treated as 1
//
// Returns:
//   - LoaderBuilderOption: a function that applies the worker option to a loader
func WithWorkers(n int) LoaderBuilderOption {
	return func(l *loader) {
		l.workers = max(n, 1)
	}
}

// WithMesh is an option builder that pre-populates the mesh cache.
//
// Parameters:
//   - key: the cache key for the mesh
//   - mesh: the mesh to cache
//
// Returns:
//   - LoaderBuilderOption: a function that applies the mesh option to a loader
func WithMesh(key string, mesh model.Mesh) LoaderBuilderOption {
	return func(l *loader) {
		l.meshCache[key] = mesh
	}
}
