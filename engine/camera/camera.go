package camera

import (
	"sync"

	"github.com/Carmen-Shannon/anatomy-viewer/common"
	"github.com/go-gl/mathgl/mgl32"
)

type cameraImpl struct {
	mu       *sync.Mutex
	position mgl32.Vec3
	eye      mgl32.Vec3
	up       mgl32.Vec3
	fov      float32
	aspect   float32
	near     float32
	far      float32

	viewMatrix           mgl32.Mat4
	projectionMatrix     mgl32.Mat4
	viewProjectionMatrix mgl32.Mat4
	inverseViewProj      mgl32.Mat4
}

// Camera is a perspective camera with a fixed orientation.
// It always looks along -EyeDirection; only its position moves.
type Camera interface {
	// Position returns the camera's world-space position.
	//
	// Returns:
	//   - mgl32.Vec3: world-space camera position
	Position() mgl32.Vec3

	// SetPosition moves the camera without changing its orientation.
	//
	// Parameters:
	//   - p: world-space position
	SetPosition(p mgl32.Vec3)

	// EyeDirection returns the unit vector from the rig center toward the camera.
	EyeDirection() mgl32.Vec3

	// Up returns the camera's up vector.
	Up() mgl32.Vec3

	// Fov returns the vertical field of view in radians.
	Fov() float32

	// Aspect returns the aspect ratio (width / height).
	Aspect() float32

	// SetAspect sets the aspect ratio and recomputes the projection.
	//
	// Parameters:
	//   - aspect: width / height of the camera's viewport
	SetAspect(aspect float32)

	// Near returns the near clip distance.
	Near() float32

	// Far returns the far clip distance.
	Far() float32

	// ViewMatrix returns the world-to-camera transform.
	ViewMatrix() mgl32.Mat4

	// ProjectionMatrix returns the perspective projection.
	ProjectionMatrix() mgl32.Mat4

	// ViewProjectionMatrix returns Projection * View.
	ViewProjectionMatrix() mgl32.Mat4

	// Unproject builds a world-space picking ray through a point in normalized device coordinates.
	//
	// Parameters:
	//   - ndc: x and y in [-1, 1], y pointing up
	//
	// Returns:
	//   - common.Ray: ray starting at the camera position
	Unproject(ndc mgl32.Vec2) common.Ray
}

var _ Camera = &cameraImpl{}

// NewCamera creates a new Camera with default perspective settings looking down -Z.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		mu:     &sync.Mutex{},
		eye:    mgl32.Vec3{0, 0, 1},
		up:     mgl32.Vec3{0, 1, 0},
		fov:    mgl32.DegToRad(45),
		aspect: 1.0,
		near:   0.01,
		far:    10000.0,
	}
	for _, option := range options {
		option(c)
	}
	c.eye = c.eye.Normalize()
	c.updateMatrices()
	return c
}

func (c *cameraImpl) Position() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.position
}

func (c *cameraImpl) SetPosition(p mgl32.Vec3) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.position = p
	c.updateMatrices()
}

func (c *cameraImpl) EyeDirection() mgl32.Vec3 {
	return c.eye
}

func (c *cameraImpl) Up() mgl32.Vec3 {
	return c.up
}

func (c *cameraImpl) Fov() float32 {
	return c.fov
}

func (c *cameraImpl) Aspect() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.aspect
}

func (c *cameraImpl) SetAspect(aspect float32) {
	if aspect <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.aspect = aspect
	c.updateMatrices()
}

func (c *cameraImpl) Near() float32 {
	return c.near
}

func (c *cameraImpl) Far() float32 {
	return c.far
}

func (c *cameraImpl) ViewMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewMatrix
}

func (c *cameraImpl) ProjectionMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projectionMatrix
}

func (c *cameraImpl) ViewProjectionMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewProjectionMatrix
}

func (c *cameraImpl) Unproject(ndc mgl32.Vec2) common.Ray {
	c.mu.Lock()
	defer c.mu.Unlock()
	nearPoint := common.TransformPoint(c.inverseViewProj, mgl32.Vec3{ndc.X(), ndc.Y(), -1})
	farPoint := common.TransformPoint(c.inverseViewProj, mgl32.Vec3{ndc.X(), ndc.Y(), 1})
	return common.NewRay(c.position, farPoint.Sub(nearPoint))
}

// updateMatrices recalculates the view, projection, view-projection and inverse matrices.
// Caller must hold the mutex.
func (c *cameraImpl) updateMatrices() {
	c.viewMatrix = mgl32.LookAtV(c.position, c.position.Sub(c.eye), c.up)
	c.projectionMatrix = mgl32.Perspective(c.fov, c.aspect, c.near, c.far)
	c.viewProjectionMatrix = c.projectionMatrix.Mul4(c.viewMatrix)
	c.inverseViewProj = c.viewProjectionMatrix.Inv()
}
