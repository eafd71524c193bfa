package camera

import "github.com/go-gl/mathgl/mgl32"

// CameraControllerOption configures a CameraController at construction. Radius and elevation
// are clamped to their bounds after all options apply.
type CameraControllerOption func(*orbitController)

// WithRadius sets the starting distance from the pivot.
func WithRadius(radius float32) CameraControllerOption {
	return func(cc *orbitController) {
		cc.radius = radius
	}
}

// WithAzimuth sets the starting angle around +Y; 0 puts the eye on +Z.
func WithAzimuth(azimuth float32) CameraControllerOption {
	return func(cc *orbitController) {
		cc.azimuth = azimuth
	}
}

// WithElevation sets the starting angle above the horizontal plane.
func WithElevation(elevation float32) CameraControllerOption {
	return func(cc *orbitController) {
		cc.elevation = elevation
	}
}

// WithTarget sets the starting pivot.
func WithTarget(target mgl32.Vec3) CameraControllerOption {
	return func(cc *orbitController) {
		cc.pivot = target
	}
}

// WithRadiusBounds limits how close and how far Zoom and Frame may place the eye.
//
// Parameters:
//   - min: closest distance
//   - max: farthest distance
//
// Returns:
//   - CameraControllerOption: option function to apply
func WithRadiusBounds(min, max float32) CameraControllerOption {
	return func(cc *orbitController) {
		if min > 0 && max >= min {
			cc.radiusLo, cc.radiusHi = min, max
		}
	}
}

// WithMouseSensitivity sets radians of orbit per pixel dragged.
func WithMouseSensitivity(sensitivity float32) CameraControllerOption {
	return func(cc *orbitController) {
		cc.dragScale = sensitivity
	}
}

// WithPanSpeed sets world units moved per unit of pan delta.
func WithPanSpeed(speed float32) CameraControllerOption {
	return func(cc *orbitController) {
		cc.panDistance = speed
	}
}
