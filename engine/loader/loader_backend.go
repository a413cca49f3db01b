package loader

import "github.com/Carmen-Shannon/anatomy-viewer/engine/model"

// loaderBackend decodes one geometry file format into a mesh.
// Concrete implementations (e.g., gltfLoaderBackend) handle format-specific details.
type loaderBackend interface {
	// Load decodes the file at path.
	//
	// Parameters:
	//   - path: the file path to load
	//
	// Returns:
	//   - *model.Mesh: the decoded geometry
	//   - error: error if loading fails
	Load(path string) (*model.Mesh, error)

	// LoadBytes decodes an in-memory file.
	//
	// Parameters:
	//   - data: the file contents
	//   - baseDir: directory used to resolve external resources
	//
	// Returns:
	//   - *model.Mesh: the decoded geometry
	//   - error: error if loading fails
	LoadBytes(data []byte, baseDir string) (*model.Mesh, error)
}
