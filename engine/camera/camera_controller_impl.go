package camera

import (
	"math"
	"sync"

	"github.com/go-gl/mathgl/mgl32"
)

type orbitController struct {
	mu sync.Mutex

	eye, pivot mgl32.Vec3

	radius, azimuth, elevation float32
	radiusLo, radiusHi         float32
	elevLo, elevHi             float32

	stepAngle   float32
	dragScale   float32
	zoomScale   float32
	panDistance float32
}

var _ CameraController = &orbitController{}

// frameMargin scales a subject's bounding radius into an orbit radius that fits a 45 degree view.
const frameMargin = 2.8

// NewCameraController returns a controller eight units from the origin, tilted slightly down,
// which suits a skeleton a few units tall.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - CameraController: the controller
func NewCameraController(options ...CameraControllerOption) CameraController {
	cc := &orbitController{
		radius:    8,
		elevation: math.Pi / 8,
		radiusLo:  0.25,
		radiusHi:  400,
		elevLo:    -math.Pi/2 + 0.05,
		elevHi:    math.Pi/2 - 0.05,

		stepAngle:   0.03,
		dragScale:   0.005,
		zoomScale:   0.5,
		panDistance: 0.05,
	}
	for _, option := range options {
		option(cc)
	}
	cc.settle()
	return cc
}

// settle clamps the spherical coordinates and places the eye. Requires cc.mu.
func (cc *orbitController) settle() {
	cc.radius = mgl32.Clamp(cc.radius, cc.radiusLo, cc.radiusHi)
	cc.elevation = mgl32.Clamp(cc.elevation, cc.elevLo, cc.elevHi)

	sa, ca := math.Sincos(float64(cc.azimuth))
	se, ce := math.Sincos(float64(cc.elevation))
	r := float64(cc.radius)
	cc.eye = cc.pivot.Add(mgl32.Vec3{float32(r * ce * sa), float32(r * se), float32(r * ce * ca)})
}

// slide moves pivot and eye along one of the view axes. Requires cc.mu.
func (cc *orbitController) slide(axis int, delta float32) {
	back := cc.eye.Sub(cc.pivot)
	if back.Len() < 1e-8 {
		return
	}
	back = back.Normalize()
	right := mgl32.Vec3{0, 1, 0}.Cross(back)
	if right.Len() < 1e-8 {
		return
	}
	right = right.Normalize()

	var dir mgl32.Vec3
	switch axis {
	case 0:
		dir = right
	case 1:
		dir = back.Cross(right)
	default:
		dir = back.Mul(-1)
	}
	step := dir.Mul(delta * cc.panDistance)
	cc.pivot = cc.pivot.Add(step)
	cc.eye = cc.eye.Add(step)
}

func (cc *orbitController) Position() mgl32.Vec3 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.eye
}

func (cc *orbitController) Target() mgl32.Vec3 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.pivot
}

func (cc *orbitController) SetTarget(target mgl32.Vec3) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.pivot = target
	cc.settle()
}

func (cc *orbitController) Frame(center mgl32.Vec3, radius float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.pivot = center
	if radius > 0 {
		cc.radius = radius * frameMargin
	}
	cc.settle()
}

func (cc *orbitController) Zoom(delta float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.radius *= float32(math.Pow(0.9, float64(2*delta*cc.zoomScale)))
	cc.settle()
}

func (cc *orbitController) turn(dAzimuth, dElevation float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.azimuth += dAzimuth
	cc.elevation += dElevation
	cc.settle()
}

func (cc *orbitController) OrbitLeft()  { cc.turn(-cc.stepAngle, 0) }
func (cc *orbitController) OrbitRight() { cc.turn(cc.stepAngle, 0) }
func (cc *orbitController) OrbitUp()    { cc.turn(0, cc.stepAngle) }
func (cc *orbitController) OrbitDown()  { cc.turn(0, -cc.stepAngle) }

func (cc *orbitController) Drag(dx, dy float32) {
	cc.turn(-dx*cc.dragScale, dy*cc.dragScale)
}

func (cc *orbitController) PanRight(delta float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.slide(0, delta)
}

func (cc *orbitController) PanUp(delta float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.slide(1, delta)
}

func (cc *orbitController) PanForward(delta float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.slide(2, delta)
}

func (cc *orbitController) Radius() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.radius
}

func (cc *orbitController) SetRadius(radius float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.radius = radius
	cc.settle()
}

func (cc *orbitController) Azimuth() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.azimuth
}

func (cc *orbitController) SetAzimuth(azimuth float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.azimuth = azimuth
	cc.settle()
}

func (cc *orbitController) Elevation() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.elevation
}

func (cc *orbitController) SetElevation(elevation float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.elevation = elevation
	cc.settle()
}

func (cc *orbitController) MinElevation() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.elevLo
}

func (cc *orbitController) MaxElevation() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.elevHi
}
