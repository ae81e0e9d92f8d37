package loader

import (
	"io/fs"
	"path"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-shadows/engine/model"
	"github.com/Carmen-Shannon/oxy-shadows/engine/renderer/bind_group_provider"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// MeshUploader creates GPU vertex and index buffers for decoded mesh data.
// The renderer satisfies it.
type MeshUploader interface {
	InitMeshBuffers(provider bind_group_provider.BindGroupProvider, vertexData, indexData []byte, indexCount int) error
}

// loader is the implementation of the Loader interface.
type loader struct {
	mu sync.RWMutex

	fsys     fs.FS
	uploader MeshUploader
	logger   *zap.Logger
	workers  int

	meshCache map[string]model.Mesh
	backends  map[string]loaderBackend
}

// Loader defines the public-facing interface for loading and caching meshes.
// It abstracts the file format (OBJ, glTF, GLB) behind a backend chosen by file
// extension and keeps every loaded mesh keyed by its path.
type Loader interface {
	// Load decodes a mesh file, uploads it and caches the result.
	// If the mesh is already cached (by path), the cached version is returned.
	//
	// Parameters:
	//   - name: the slash-separated path of the mesh within the loader's file system
	//
	// Returns:
	//   - model.Mesh: the loaded and cached mesh
	//   - error: ErrUnsupportedFormat for unknown extensions, or the decode/upload error
	Load(name string) (model.Mesh, error)

	// LoadAll decodes several mesh files concurrently on a worker pool, then uploads
	// them one by one on the calling goroutine. Meshes are returned in the order of names.
	//
	// Parameters:
	//   - names: the mesh paths to load
	//
	// Returns:
	//   - []model.Mesh: the loaded meshes, one per name
	//   - error: the first decode or upload error, in the order of names
	LoadAll(names ...string) ([]model.Mesh, error)

	// Get retrieves a cached mesh by path. Returns nil if not found.
	//
	// Parameters:
	//   - name: the cache key to look up
	//
	// Returns:
	//   - model.Mesh: the cached mesh or nil
	Get(name string) model.Mesh

	// Meshes returns a copy of the mesh cache.
	//
	// Returns:
	//   - map[string]model.Mesh: all cached meshes keyed by path
	Meshes() map[string]model.Mesh
}

var _ Loader = &loader{}

// NewLoader creates a new Loader reading from fsys with the options applied.
//
// Parameters:
//   - fsys: the file system mesh paths are resolved against
//   - options: a variadic list of LoaderBuilderOption functions to configure the Loader
//
// Returns:
//   - Loader: a new Loader instance
func NewLoader(fsys fs.FS, options ...LoaderBuilderOption) Loader {
	l := &loader{
		fsys:      fsys,
		logger:    zap.NewNop(),
		workers:   max(runtime.NumCPU()-1, 1),
		meshCache: make(map[string]model.Mesh),
		backends:  defaultBackends(),
	}

	for _, option := range options {
		option(l)
	}
	return l
}

func (l *loader) Load(name string) (model.Mesh, error) {
	if cached := l.Get(name); cached != nil {
		return cached, nil
	}

	imported, err := l.decode(name)
	if err != nil {
		return nil, err
	}
	return l.finish(name, imported)
}

func (l *loader) LoadAll(names ...string) ([]model.Mesh, error) {
	type result struct {
		imported *model.ImportedModel
		err      error
	}

	results := make([]result, len(names))
	pending := make([]int, 0, len(names))
	for i, name := range names {
		if l.Get(name) == nil {
			pending = append(pending, i)
		}
	}

	if len(pending) > 0 {
		pool := worker.NewDynamicWorkerPool(min(l.workers, len(pending)), len(pending), 1*time.Second)
		var wg sync.WaitGroup
		for _, i := range pending {
			wg.Add(1)
			idx := i
			pool.SubmitTask(worker.Task{
				ID:      idx,
				Payload: names[idx],
				Do: func() (any, error) {
					defer wg.Done()
					imported, err := l.decode(names[idx])
					results[idx] = result{imported: imported, err: err}
					return nil, err
				},
			})
		}
		wg.Wait()
		pool.Stop()
	}

	meshes := make([]model.Mesh, len(names))
	for i, name := range names {
		if results[i].err != nil {
			return nil, results[i].err
		}
		if results[i].imported == nil {
			// Cached before the call.
			if cached := l.Get(name); cached != nil {
				meshes[i] = cached
				continue
			}
			return nil, errors.Errorf("mesh %s was not decoded", name)
		}
		m, err := l.finish(name, results[i].imported)
		if err != nil {
			return nil, err
		}
		meshes[i] = m
	}
	return meshes, nil
}

func (l *loader) Get(name string) model.Mesh {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.meshCache[name]
}

func (l *loader) Meshes() map[string]model.Mesh {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make(map[string]model.Mesh, len(l.meshCache))
	for k, v := range l.meshCache {
		out[k] = v
	}
	return out
}

func (l *loader) decode(name string) (*model.ImportedModel, error) {
	backend, err := l.resolveBackend(name)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	imported, err := backend.Decode(l.fsys, name)
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", name)
	}
	l.logger.Debug("mesh decoded",
		zap.String("path", name),
		zap.Int("meshes", len(imported.Meshes)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return imported, nil
}

// finish packs the imported model, uploads it and stores it in the cache.
// A mesh cached concurrently under the same name wins.
func (l *loader) finish(name string, imported *model.ImportedModel) (model.Mesh, error) {
	if cached := l.Get(name); cached != nil {
		return cached, nil
	}

	m, err := model.NewMeshFromImported(*imported)
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", name)
	}

	provider := bind_group_provider.NewBindGroupProvider(name)
	if l.uploader != nil {
		if err := l.uploader.InitMeshBuffers(provider, m.VertexData(), m.IndexData(), m.IndexCount()); err != nil {
			return nil, errors.Wrapf(err, "upload %s", name)
		}
	}
	m.SetMeshProvider(provider)

	l.mu.Lock()
	l.meshCache[name] = m
	l.mu.Unlock()

	l.logger.Info("mesh loaded",
		zap.String("path", name),
		zap.Stringer("mesh_id", m.ID()),
		zap.Int("vertices", m.VertexCount()),
		zap.Int("indices", m.IndexCount()),
		zap.Int("submeshes", len(m.SubMeshes())),
	)
	return m, nil
}

func (l *loader) resolveBackend(name string) (loaderBackend, error) {
	ext := strings.ToLower(path.Ext(name))
	if b, ok := l.backends[ext]; ok {
		return b, nil
	}
	return nil, errors.Wrapf(ErrUnsupportedFormat, "%s", name)
}
