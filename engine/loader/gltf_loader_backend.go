package loader

import (
	"github.com/Carmen-Shannon/anatomy-viewer/engine/model"
)

// gltfLoaderBackendImpl is the implementation of gltfLoaderBackend.
type gltfLoaderBackendImpl struct{}

// gltfLoaderBackend is a loaderBackend implementation for glTF/GLB files.
// Each call uses a fresh parser so the backend is safe for concurrent use.
type gltfLoaderBackend interface {
	loaderBackend
}

var _ gltfLoaderBackend = &gltfLoaderBackendImpl{}

func newGLTFLoaderBackend() gltfLoaderBackend {
	return &gltfLoaderBackendImpl{}
}

func (b *gltfLoaderBackendImpl) Load(path string) (*model.Mesh, error) {
	parser := newGLTFParser()
	if err := parser.Parse(path); err != nil {
		return nil, err
	}
	return newGLTFMeshExtractor(parser).ExtractScene()
}

func (b *gltfLoaderBackendImpl) LoadBytes(data []byte, baseDir string) (*model.Mesh, error) {
	parser := newGLTFParser()
	if err := parser.ParseBytes(data, baseDir); err != nil {
		return nil, err
	}
	return newGLTFMeshExtractor(parser).ExtractScene()
}
