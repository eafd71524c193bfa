package camera

import (
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-anim/common"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestControllerSphericalPosition(t *testing.T) {
	cc := NewCameraController(WithRadius(4), WithElevation(0), WithAzimuth(0))
	assert.True(t, common.Near3(cc.Position(), mgl32.Vec3{0, 0, 4}, 1e-5))

	cc.SetAzimuth(math.Pi / 2)
	assert.True(t, common.Near3(cc.Position(), mgl32.Vec3{4, 0, 0}, 1e-5))

	cc.SetTarget(mgl32.Vec3{1, 2, 3})
	assert.True(t, common.Near3(cc.Position(), mgl32.Vec3{5, 2, 3}, 1e-5))
}

func TestControllerClamps(t *testing.T) {
	cc := NewCameraController(WithRadiusBounds(1, 10))

	cc.SetRadius(100)
	assert.Equal(t, float32(10), cc.Radius())
	cc.Zoom(1000)
	assert.Equal(t, float32(1), cc.Radius())

	cc.Drag(0, 1e6)
	assert.Equal(t, cc.MaxElevation(), cc.Elevation())
	cc.SetElevation(-10)
	assert.Equal(t, cc.MinElevation(), cc.Elevation())
}

func TestControllerZoomDirection(t *testing.T) {
	cc := NewCameraController(WithRadius(5))
	cc.Zoom(1)
	assert.Less(t, cc.Radius(), float32(5), "positive delta moves closer")
	cc.Zoom(-2)
	assert.Greater(t, cc.Radius(), float32(5))
}

func TestControllerFrame(t *testing.T) {
	cc := NewCameraController()
	cc.Frame(mgl32.Vec3{0, 1, 0}, 2)
	assert.Equal(t, mgl32.Vec3{0, 1, 0}, cc.Target())
	assert.InDelta(t, 2*frameMargin, cc.Radius(), 1e-5)
	assert.InDelta(t, cc.Radius(), cc.Position().Sub(cc.Target()).Len(), 1e-4)
}

func TestControllerPanKeepsOrbit(t *testing.T) {
	cc := NewCameraController(WithRadius(6), WithPanSpeed(1))
	offset := cc.Position().Sub(cc.Target())

	cc.PanRight(2)
	cc.PanUp(-1)
	assert.True(t, common.Near3(cc.Position().Sub(cc.Target()), offset, 1e-4))
	assert.InDelta(t, math.Sqrt(5), cc.Target().Len(), 1e-4)

	before := cc.Target()
	cc.PanForward(1)
	assert.InDelta(t, 1, cc.Target().Sub(before).Len(), 1e-4)
}

func TestCameraProjectsTargetToCenter(t *testing.T) {
	cc := NewCameraController(WithTarget(mgl32.Vec3{1, 1, 1}), WithRadius(5), WithAzimuth(0.7), WithElevation(0.3))
	cam := NewCamera(WithController(cc), WithAspect(16.0/9.0))

	clip := cam.ViewProjectionMatrix().Mul4x1(mgl32.Vec4{1, 1, 1, 1})
	ndc := clip.Vec3().Mul(1 / clip.W())
	assert.InDelta(t, 0, ndc.X(), 1e-4)
	assert.InDelta(t, 0, ndc.Y(), 1e-4)
	assert.Greater(t, clip.W(), float32(0), "target is in front of the camera")

	cc.OrbitRight()
	before := cam.ViewMatrix()
	cam.Update()
	assert.NotEqual(t, before, cam.ViewMatrix())
}

func TestCameraWithoutController(t *testing.T) {
	cam := NewCamera()
	assert.Nil(t, cam.Controller())
	assert.Equal(t, mgl32.Ident4(), cam.ViewMatrix())
	cam.SetAspect(-1)
	assert.Equal(t, float32(1), cam.Aspect())
	cam.Update()
}
