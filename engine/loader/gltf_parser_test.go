package loader

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// triangleBuffer packs one triangle as three float32 positions followed by uint16 indices.
func triangleBuffer() []byte {
	var buf bytes.Buffer
	positions := []mgl32.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 2, 0}}
	_ = binary.Write(&buf, binary.LittleEndian, positions)
	_ = binary.Write(&buf, binary.LittleEndian, []uint16{0, 1, 2})
	return buf.Bytes()
}

// triangleDocument describes triangleBuffer under a node translated by offset.
func triangleDocument(uri string, byteLength int, offset [3]float32) map[string]any {
	return map[string]any{
		"asset":  map[string]any{"version": "2.0"},
		"scene":  0,
		"scenes": []any{map[string]any{"nodes": []int{0}}},
		"nodes": []any{
			map[string]any{"children": []int{1}, "translation": offset},
			map[string]any{"mesh": 0},
		},
		"meshes": []any{map[string]any{"primitives": []any{
			map[string]any{"attributes": map[string]int{"POSITION": 0}, "indices": 1},
		}}},
		"accessors": []any{
			map[string]any{"bufferView": 0, "componentType": gltfComponentTypeFloat, "count": 3, "type": "VEC3"},
			map[string]any{"bufferView": 1, "componentType": gltfComponentTypeUnsignedShort, "count": 3, "type": "SCALAR"},
		},
		"bufferViews": []any{
			map[string]any{"buffer": 0, "byteOffset": 0, "byteLength": 36},
			map[string]any{"buffer": 0, "byteOffset": 36, "byteLength": 6},
		},
		"buffers": []any{buffer(uri, byteLength)},
	}
}

func buffer(uri string, byteLength int) map[string]any {
	b := map[string]any{"byteLength": byteLength}
	if uri != "" {
		b["uri"] = uri
	}
	return b
}

func gltfBytes(t *testing.T, offset [3]float32) []byte {
	t.Helper()
	data := triangleBuffer()
	uri := "data:application/octet-stream;base64," + base64.StdEncoding.EncodeToString(data)
	out, err := json.Marshal(triangleDocument(uri, len(data), offset))
	require.NoError(t, err)
	return out
}

func glbBytes(t *testing.T) []byte {
	t.Helper()
	bin := triangleBuffer()
	for len(bin)%4 != 0 {
		bin = append(bin, 0)
	}
	js, err := json.Marshal(triangleDocument("", len(triangleBuffer()), [3]float32{}))
	require.NoError(t, err)
	for len(js)%4 != 0 {
		js = append(js, ' ')
	}

	var out bytes.Buffer
	total := 12 + 8 + len(js) + 8 + len(bin)
	_ = binary.Write(&out, binary.LittleEndian, gltfGLBHeader{Magic: gltfGLBMagic, Version: gltfGLBVersion, Length: uint32(total)})
	_ = binary.Write(&out, binary.LittleEndian, gltfGLBChunkHeader{ChunkLength: uint32(len(js)), ChunkType: gltfGLBChunkJSON})
	out.Write(js)
	_ = binary.Write(&out, binary.LittleEndian, gltfGLBChunkHeader{ChunkLength: uint32(len(bin)), ChunkType: gltfGLBChunkBIN})
	out.Write(bin)
	return out.Bytes()
}

func TestGLTFBackendDecodesTriangle(t *testing.T) {
	tests := []struct {
		name string
		data func(t *testing.T) []byte
		min  mgl32.Vec3
		max  mgl32.Vec3
	}{
		{
			name: "gltf with data uri and node translation",
			data: func(t *testing.T) []byte { return gltfBytes(t, [3]float32{10, 0, -1}) },
			min:  mgl32.Vec3{10, 0, -1},
			max:  mgl32.Vec3{11, 2, -1},
		},
		{
			name: "glb with binary chunk",
			data: glbBytes,
			min:  mgl32.Vec3{0, 0, 0},
			max:  mgl32.Vec3{1, 2, 0},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mesh, err := newGLTFLoaderBackend().LoadBytes(tt.data(t), "")
			require.NoError(t, err)

			assert.Len(t, mesh.Positions, 3)
			assert.Equal(t, []uint32{0, 1, 2}, mesh.Indices)
			assert.Equal(t, 1, mesh.TriangleCount())
			assert.True(t, mesh.Min.ApproxEqual(tt.min), "min %v", mesh.Min)
			assert.True(t, mesh.Max.ApproxEqual(tt.max), "max %v", mesh.Max)
		})
	}
}

func TestGLTFExternalBufferResolvesAgainstFile(t *testing.T) {
	dir := t.TempDir()
	data := triangleBuffer()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tri.bin"), data, 0o644))
	js, err := json.Marshal(triangleDocument("tri.bin", len(data), [3]float32{}))
	require.NoError(t, err)
	path := filepath.Join(dir, "tri.gltf")
	require.NoError(t, os.WriteFile(path, js, 0o644))

	l := NewLoader(BackendTypeGLTF)
	mesh, err := l.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1, mesh.TriangleCount())

	again, err := l.Load(path)
	require.NoError(t, err)
	assert.Same(t, mesh, again, "second load is served from the cache")
	assert.Len(t, l.Meshes(), 1)
}

func TestGLTFParseErrors(t *testing.T) {
	tests := []struct {
		name   string
		data   func(t *testing.T) []byte
		target error
	}{
		{
			name: "wrong version",
			data: func(t *testing.T) []byte {
				return []byte(`{"asset":{"version":"1.0"}}`)
			},
			target: errInvalidGLTFVersion,
		},
		{
			name: "bad glb version",
			data: func(t *testing.T) []byte {
				b := glbBytes(t)
				binary.LittleEndian.PutUint32(b[4:8], 1)
				return b
			},
			target: errInvalidGLBVersion,
		},
		{
			name: "accessor past end of buffer",
			data: func(t *testing.T) []byte {
				data := triangleBuffer()
				uri := "data:application/octet-stream;base64," + base64.StdEncoding.EncodeToString(data)
				doc := triangleDocument(uri, len(data), [3]float32{})
				doc["accessors"].([]any)[0].(map[string]any)["count"] = 30
				out, err := json.Marshal(doc)
				require.NoError(t, err)
				return out
			},
			target: errAccessorOutOfRange,
		},
		{
			name: "index beyond vertex count",
			data: func(t *testing.T) []byte {
				data := triangleBuffer()
				binary.LittleEndian.PutUint16(data[40:42], 7)
				uri := "data:application/octet-stream;base64," + base64.StdEncoding.EncodeToString(data)
				out, err := json.Marshal(triangleDocument(uri, len(data), [3]float32{}))
				require.NoError(t, err)
				return out
			},
			target: errAccessorOutOfRange,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newGLTFLoaderBackend().LoadBytes(tt.data(t), "")
			assert.ErrorIs(t, err, tt.target)
		})
	}
}

func TestLoaderRejectsUnknownExtension(t *testing.T) {
	_, err := NewLoader(BackendTypeGLTF).Load("heart.obj")
	assert.ErrorContains(t, err, "unsupported model format")
}

func TestGLTFNodeMatrix(t *testing.T) {
	half := float32(0.70710677)
	n := &gltfNode{
		Translation: &[3]float32{1, 2, 3},
		Rotation:    &[4]float32{0, half, 0, half},
		Scale:       &[3]float32{2, 2, 2},
	}

	got := mgl32.TransformCoordinate(mgl32.Vec3{1, 0, 0}, gltfNodeMatrix(n))

	// scale to (2,0,0), rotate 90 degrees about y to (0,0,-2), translate
	assert.True(t, got.ApproxEqualThreshold(mgl32.Vec3{1, 2, 1}, 1e-5), "got %v", got)
}
