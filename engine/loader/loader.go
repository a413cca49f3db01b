package loader

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/Carmen-Shannon/anatomy-viewer/engine/model"
)

// LoaderBackendType identifies the geometry file format backend to use.
type LoaderBackendType int

const (
	// BackendTypeGLTF selects the glTF/GLB loader backend.
	BackendTypeGLTF LoaderBackendType = iota
)

// loader is the implementation of the Loader interface.
type loader struct {
	mu sync.RWMutex

	baseDir   string
	meshCache map[string]*model.Mesh

	backend loaderBackend
}

// Loader decodes geometry files into meshes and caches them by path. Structures that share
// a mesh file share the decoded mesh, so callers must treat returned meshes as read-only.
// Loader is safe for concurrent use.
type Loader interface {
	// Load decodes a geometry file, or returns the cached mesh for path.
	// Relative paths resolve against the loader's base directory.
	//
	// Parameters:
	//   - path: the file path of the geometry (.gltf or .glb)
	//
	// Returns:
	//   - *model.Mesh: the decoded mesh
	//   - error: error if the format is unsupported or decoding fails
	Load(path string) (*model.Mesh, error)

	// LoadBytes decodes in-memory geometry and caches it under name.
	//
	// Parameters:
	//   - name: the cache key, whose extension selects the backend
	//   - data: the file contents
	//
	// Returns:
	//   - *model.Mesh: the decoded mesh
	//   - error: error if decoding fails
	LoadBytes(name string, data []byte) (*model.Mesh, error)

	// Get retrieves a cached mesh by path. Returns nil if not found.
	Get(path string) *model.Mesh

	// Meshes returns a copy of the mesh cache keyed by path.
	Meshes() map[string]*model.Mesh
}

var _ Loader = &loader{}

// NewLoader creates a new Loader instance with the specified backend type and options applied.
//
// Parameters:
//   - backendType: the type of loader backend to use (e.g., BackendTypeGLTF)
//   - options: a variadic list of LoaderBuilderOption functions to configure the Loader
//
// Returns:
//   - Loader: a new instance of Loader configured with the provided backend and options
func NewLoader(backendType LoaderBackendType, options ...LoaderBuilderOption) Loader {
	l := &loader{
		mu:        sync.RWMutex{},
		meshCache: make(map[string]*model.Mesh),
	}

	switch backendType {
	case BackendTypeGLTF:
		l.backend = newGLTFLoaderBackend()
	}

	for _, option := range options {
		option(l)
	}
	return l
}

func (l *loader) Load(path string) (*model.Mesh, error) {
	if l.baseDir != "" && !filepath.IsAbs(path) {
		path = filepath.Join(l.baseDir, path)
	}

	if cached := l.Get(path); cached != nil {
		return cached, nil
	}

	backend, err := l.resolveBackend(path)
	if err != nil {
		return nil, err
	}

	m, err := backend.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}

	return l.store(path, m), nil
}

func (l *loader) LoadBytes(name string, data []byte) (*model.Mesh, error) {
	if cached := l.Get(name); cached != nil {
		return cached, nil
	}

	backend, err := l.resolveBackend(name)
	if err != nil {
		return nil, err
	}

	m, err := backend.LoadBytes(data, l.baseDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", name, err)
	}

	return l.store(name, m), nil
}

func (l *loader) Get(path string) *model.Mesh {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.meshCache[path]
}

func (l *loader) Meshes() map[string]*model.Mesh {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make(map[string]*model.Mesh, len(l.meshCache))
	for k, v := range l.meshCache {
		out[k] = v
	}
	return out
}

// store caches m under key unless a concurrent load got there first, and returns the
// cached mesh.
func (l *loader) store(key string, m *model.Mesh) *model.Mesh {
	l.mu.Lock()
	defer l.mu.Unlock()
	if cached, ok := l.meshCache[key]; ok {
		return cached
	}
	l.meshCache[key] = m
	return m
}

// resolveBackend selects the backend for the given file path based on its extension.
func (l *loader) resolveBackend(path string) (loaderBackend, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".gltf", ".glb":
		if l.backend == nil {
			return nil, fmt.Errorf("no backend configured for %s", ext)
		}
		return l.backend, nil
	default:
		return nil, fmt.Errorf("unsupported model format: %s", ext)
	}
}
