package camera

import "github.com/go-gl/mathgl/mgl32"

// CameraController owns the eye pose for a Camera. The eye sits on a sphere around a pivot
// (the target) described by radius, azimuth and elevation; orbiting moves along that sphere
// and panning slides pivot and eye together.
type CameraController interface {
	// Position returns the eye in world space.
	Position() mgl32.Vec3

	// Target returns the pivot the eye looks at.
	Target() mgl32.Vec3

	// SetTarget moves the pivot; the eye follows at the same offset.
	//
	// Parameters:
	//   - target: world-space pivot
	SetTarget(target mgl32.Vec3)

	// Frame pivots on center and backs off far enough to keep a sphere of the given radius in view.
	//
	// Parameters:
	//   - center: the point to orbit
	//   - radius: bounding radius of the subject; non-positive keeps the current distance
	Frame(center mgl32.Vec3, radius float32)

	// Zoom scales the orbit radius geometrically. Positive delta moves closer.
	Zoom(delta float32)

	// OrbitLeft, OrbitRight, OrbitUp and OrbitDown step the eye around the pivot by the orbit speed.
	OrbitLeft()
	OrbitRight()
	OrbitUp()
	OrbitDown()

	// Drag orbits by a cursor movement in pixels. Dragging right swings the eye left; dragging
	// down raises it.
	//
	// Parameters:
	//   - dx: horizontal movement
	//   - dy: vertical movement
	Drag(dx, dy float32)

	// PanRight, PanUp and PanForward translate pivot and eye along the view axes.
	PanRight(delta float32)
	PanUp(delta float32)
	PanForward(delta float32)

	Radius() float32
	SetRadius(radius float32)
	Azimuth() float32
	SetAzimuth(azimuth float32)
	Elevation() float32
	SetElevation(elevation float32)
	MinElevation() float32
	MaxElevation() float32
}
