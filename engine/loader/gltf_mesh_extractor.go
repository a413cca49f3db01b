package loader

import (
	"fmt"

	"github.com/Carmen-Shannon/anatomy-viewer/engine/model"
	"github.com/go-gl/mathgl/mgl32"
)

// gltfMeshExtractorImpl is the implementation of the gltfMeshExtractor interface.
type gltfMeshExtractorImpl struct {
	parser gltfParser
}

// gltfMeshExtractor flattens the triangle geometry of a parsed document into one mesh.
type gltfMeshExtractor interface {
	// ExtractScene walks the default scene (or every root node when the document has no
	// scenes) and merges each triangle primitive, transformed by its node's world matrix.
	//
	// Returns:
	//   - *model.Mesh: the merged geometry
	//   - error: error if any primitive cannot be read
	ExtractScene() (*model.Mesh, error)

	// ExtractMesh merges the primitives of a single mesh in its own space.
	//
	// Parameters:
	//   - meshIndex: the index of the mesh
	//
	// Returns:
	//   - *model.Mesh: the merged geometry
	//   - error: error if any primitive cannot be read
	ExtractMesh(meshIndex int) (*model.Mesh, error)
}

var _ gltfMeshExtractor = &gltfMeshExtractorImpl{}

func newGLTFMeshExtractor(parser gltfParser) gltfMeshExtractor {
	return &gltfMeshExtractorImpl{parser: parser}
}

func (e *gltfMeshExtractorImpl) ExtractScene() (*model.Mesh, error) {
	doc := e.parser.Document()
	if doc == nil {
		return nil, fmt.Errorf("no document loaded")
	}

	out := model.NewMesh(nil, nil)
	if len(doc.Nodes) == 0 {
		for i := range doc.Meshes {
			m, err := e.ExtractMesh(i)
			if err != nil {
				return nil, err
			}
			out.Append(m, mgl32.Ident4())
		}
		return out, nil
	}

	visited := make([]bool, len(doc.Nodes))
	for _, root := range gltfRootNodes(doc) {
		if err := e.walkNode(root, mgl32.Ident4(), visited, out); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (e *gltfMeshExtractorImpl) ExtractMesh(meshIndex int) (*model.Mesh, error) {
	doc := e.parser.Document()
	if meshIndex < 0 || meshIndex >= len(doc.Meshes) {
		return nil, fmt.Errorf("mesh %d: %w", meshIndex, errAccessorOutOfRange)
	}

	out := model.NewMesh(nil, nil)
	for i := range doc.Meshes[meshIndex].Primitives {
		prim, err := e.extractPrimitive(&doc.Meshes[meshIndex].Primitives[i])
		if err != nil {
			return nil, fmt.Errorf("mesh %d primitive %d: %w", meshIndex, i, err)
		}
		out.Append(prim, mgl32.Ident4())
	}
	return out, nil
}

func (e *gltfMeshExtractorImpl) walkNode(index int, parent mgl32.Mat4, visited []bool, out *model.Mesh) error {
	doc := e.parser.Document()
	if index < 0 || index >= len(doc.Nodes) {
		return fmt.Errorf("node %d: %w", index, errAccessorOutOfRange)
	}
	// a node may only appear once in the hierarchy; guard against malformed cycles
	if visited[index] {
		return nil
	}
	visited[index] = true

	node := &doc.Nodes[index]
	world := parent.Mul4(gltfNodeMatrix(node))
	if node.Mesh != nil {
		m, err := e.ExtractMesh(*node.Mesh)
		if err != nil {
			return fmt.Errorf("node %d: %w", index, err)
		}
		out.Append(m, world)
	}
	for _, child := range node.Children {
		if err := e.walkNode(child, world, visited, out); err != nil {
			return err
		}
	}
	return nil
}

func (e *gltfMeshExtractorImpl) extractPrimitive(prim *gltfPrimitive) (*model.Mesh, error) {
	if prim.Mode != nil && *prim.Mode != gltfPrimitiveModeTriangles {
		return nil, fmt.Errorf("unsupported primitive mode: %d (only triangles supported)", *prim.Mode)
	}

	posAccessor, ok := prim.Attributes["POSITION"]
	if !ok {
		return nil, fmt.Errorf("primitive has no POSITION attribute")
	}

	positions, err := e.parser.ReadVec3Accessor(posAccessor)
	if err != nil {
		return nil, fmt.Errorf("failed to read positions: %w", err)
	}

	var indices []uint32
	if prim.Indices != nil {
		indices, err = e.parser.ReadIndicesAccessor(*prim.Indices)
		if err != nil {
			return nil, fmt.Errorf("failed to read indices: %w", err)
		}
		for _, idx := range indices {
			if int(idx) >= len(positions) {
				return nil, fmt.Errorf("index %d of %d vertices: %w", idx, len(positions), errAccessorOutOfRange)
			}
		}
	}

	return model.NewMesh(positions, indices), nil
}

// gltfRootNodes returns the root nodes of the default scene, the first scene when no default
// is set, or every node that is nobody's child when the document has no scenes.
func gltfRootNodes(doc *gltfDocument) []int {
	if len(doc.Scenes) > 0 {
		scene := 0
		if doc.Scene != nil && *doc.Scene >= 0 && *doc.Scene < len(doc.Scenes) {
			scene = *doc.Scene
		}
		return doc.Scenes[scene].Nodes
	}

	isChild := make([]bool, len(doc.Nodes))
	for _, n := range doc.Nodes {
		for _, c := range n.Children {
			if c >= 0 && c < len(isChild) {
				isChild[c] = true
			}
		}
	}
	var roots []int
	for i, child := range isChild {
		if !child {
			roots = append(roots, i)
		}
	}
	return roots
}

// gltfNodeMatrix returns the node's local transform, either its explicit matrix or T * R * S.
func gltfNodeMatrix(n *gltfNode) mgl32.Mat4 {
	if n.Matrix != nil {
		return mgl32.Mat4(*n.Matrix)
	}
	m := mgl32.Ident4()
	if n.Translation != nil {
		t := n.Translation
		m = m.Mul4(mgl32.Translate3D(t[0], t[1], t[2]))
	}
	if n.Rotation != nil {
		r := n.Rotation
		q := mgl32.Quat{W: r[3], V: mgl32.Vec3{r[0], r[1], r[2]}}
		m = m.Mul4(q.Normalize().Mat4())
	}
	if n.Scale != nil {
		s := n.Scale
		m = m.Mul4(mgl32.Scale3D(s[0], s[1], s[2]))
	}
	return m
}
