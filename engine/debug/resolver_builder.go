package debug

import "github.com/go-gl/mathgl/mgl32"

// ResolverBuilderOption is a functional option for configuring a Resolver.
type ResolverBuilderOption func(*resolver)

// WithAxisLength sets the basis axis segment length. Non-positive values keep the default.
//
// Parameters:
//   - length: the axis length in world units
//
// Returns:
//   - ResolverBuilderOption: a function that applies the axis length option to a resolver
func WithAxisLength(length float32) ResolverBuilderOption {
	return func(r *resolver) {
		if length > 0 {
			r.axisLength = length
		}
	}
}

// WithAxisColors overrides the X, Y and Z axis colors.
//
// Parameters:
//   - x: the X axis color
//   - y: the Y axis color
//   - z: the Z axis color
//
// Returns:
//   - ResolverBuilderOption: a function that applies the colors to a resolver
func WithAxisColors(x, y, z mgl32.Vec4) ResolverBuilderOption {
	return func(r *resolver) {
		r.axisColors = [3]mgl32.Vec4{x, y, z}
	}
}

// WithParentColor overrides the color of parent links.
//
// Parameters:
//   - c: the link color
//
// Returns:
//   - ResolverBuilderOption: a function that applies the color to a resolver
func WithParentColor(c mgl32.Vec4) ResolverBuilderOption {
	return func(r *resolver) {
		r.parentColor = c
	}
}
