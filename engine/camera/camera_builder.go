package camera

// CameraBuilderOption configures a Camera at construction.
type CameraBuilderOption func(*orbitCamera)

// WithFov sets the vertical field of view in radians.
//
// Parameters:
//   - fov: field of view in radians
//
// Returns:
//   - CameraBuilderOption: option function to apply
func WithFov(fov float32) CameraBuilderOption {
	return func(c *orbitCamera) {
		if fov > 0 {
			c.fovY = fov
		}
	}
}

// WithAspect sets the initial width / height ratio.
func WithAspect(aspect float32) CameraBuilderOption {
	return func(c *orbitCamera) {
		if aspect > 0 {
			c.aspect = aspect
		}
	}
}

// WithNear moves the near clip plane.
func WithNear(near float32) CameraBuilderOption {
	return func(c *orbitCamera) {
		c.zNear = near
	}
}

// WithFar moves the far clip plane.
func WithFar(far float32) CameraBuilderOption {
	return func(c *orbitCamera) {
		c.zFar = far
	}
}

// WithController makes ctrl the source of the eye position and look-at target.
//
// Parameters:
//   - ctrl: the orbit controller
//
// Returns:
//   - CameraBuilderOption: option function to apply
func WithController(ctrl CameraController) CameraBuilderOption {
	return func(c *orbitCamera) {
		c.ctrl = ctrl
	}
}
