package scene_object

import (
	"github.com/Carmen-Shannon/anatomy-viewer/common"
	"github.com/go-gl/mathgl/mgl32"
)

// Material is the lighting description of a SceneObject.
type Material struct {
	Ambient   common.Color `yaml:"ambient"`
	Diffuse   common.Color `yaml:"diffuse"`
	Specular  common.Color `yaml:"specular"`
	Emissive  common.Color `yaml:"emissive"`
	Shininess float32      `yaml:"shininess"`
}

// Descriptor is the external description of a scene object as delivered by a loader.
// ID and Material are required.
type Descriptor struct {
	ID       string     `yaml:"id"`
	Name     string     `yaml:"name"`
	Link     string     `yaml:"link"`
	Layer    string     `yaml:"layer"`
	Material *Material  `yaml:"material"`
	Centroid mgl32.Vec3 `yaml:"centroid,flow"`
	Min      mgl32.Vec3 `yaml:"min,flow"`
	Max      mgl32.Vec3 `yaml:"max,flow"`

	// MeshPath points at a .gltf or .glb file. Empty means a box built from Min and Max.
	MeshPath string `yaml:"mesh"`
}

// Validate checks the required fields.
//
// Returns:
//   - error: ErrMissingID or ErrMissingMaterial, or nil
func (d Descriptor) Validate() error {
	if d.ID == "" {
		return ErrMissingID
	}
	if d.Material == nil {
		return ErrMissingMaterial
	}
	return nil
}

// DisplayName returns Name, falling back to ID.
func (d Descriptor) DisplayName() string {
	return common.Coalesce(d.Name, d.ID)
}
