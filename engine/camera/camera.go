package camera

import (
	"sync"

	"github.com/go-gl/mathgl/mgl32"
)

// Camera turns the pose of its CameraController into the view-projection matrix the
// line renderer and the culling frustum consume. It is safe for concurrent use.
type Camera interface {
	// Aspect returns width / height of the viewport.
	Aspect() float32

	// SetAspect updates the viewport ratio after a resize. Non-positive values are ignored.
	//
	// Parameters:
	//   - aspect: width / height
	SetAspect(aspect float32)

	// ViewMatrix returns the world-to-eye transform from the last Update.
	ViewMatrix() mgl32.Mat4

	// ViewProjectionMatrix returns projection * view.
	//
	// Returns:
	//   - mgl32.Mat4: the clip-space transform for world-space points
	ViewProjectionMatrix() mgl32.Mat4

	// Controller returns the orbit controller driving the eye, or nil.
	Controller() CameraController

	// Update re-reads the controller pose. Call once per tick; a camera without a
	// controller keeps its identity view.
	Update()
}

type orbitCamera struct {
	mu sync.Mutex

	up                     mgl32.Vec3
	fovY, aspect           float32
	zNear, zFar            float32
	view, proj, cachedClip mgl32.Mat4

	ctrl CameraController
}

var _ Camera = &orbitCamera{}

// NewCamera returns a 45 degree perspective camera looking down -Z until a controller
// is attached with WithController.
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &orbitCamera{
		up:     mgl32.Vec3{0, 1, 0},
		fovY:   mgl32.DegToRad(45),
		aspect: 1,
		zNear:  0.05,
		zFar:   500,
		view:   mgl32.Ident4(),
	}
	for _, option := range options {
		option(c)
	}
	c.rebuild()
	return c
}

func (c *orbitCamera) Aspect() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.aspect
}

func (c *orbitCamera) SetAspect(aspect float32) {
	if aspect <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.aspect = aspect
	c.rebuild()
}

func (c *orbitCamera) ViewMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view
}

func (c *orbitCamera) ViewProjectionMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cachedClip
}

func (c *orbitCamera) Controller() CameraController {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ctrl
}

func (c *orbitCamera) Update() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.ctrl != nil {
		c.rebuild()
	}
}

// rebuild requires c.mu.
func (c *orbitCamera) rebuild() {
	c.proj = mgl32.Perspective(c.fovY, c.aspect, c.zNear, c.zFar)
	if c.ctrl != nil {
		c.view = mgl32.LookAtV(c.ctrl.Position(), c.ctrl.Target(), c.up)
	}
	c.cachedClip = c.proj.Mul4(c.view)
}
