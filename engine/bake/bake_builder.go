package bake

import (
	"github.com/Carmen-Shannon/oxy-anim/engine/debug"
	"github.com/Carmen-Shannon/oxy-anim/engine/renderer"

	"github.com/go-gl/mathgl/mgl32"
)

// BakerBuilderOption is a functional option for configuring a Baker.
type BakerBuilderOption func(b *baker)

// WithFPS sets the sampling rate in frames per second. Values <= 0 are ignored.
//
// Parameters:
//   - fps: frames per second
//
// Returns:
//   - BakerBuilderOption: option function to apply
func WithFPS(fps float64) BakerBuilderOption {
	return func(b *baker) {
		if fps > 0 {
			b.fps = fps
		}
	}
}

// WithSize sets the output image size in pixels. Non-positive values are ignored.
//
// Parameters:
//   - width: output width
//   - height: output height
//
// Returns:
//   - BakerBuilderOption: option function to apply
func WithSize(width, height int) BakerBuilderOption {
	return func(b *baker) {
		if width > 0 && height > 0 {
			b.width, b.height = width, height
		}
	}
}

// WithSupersample sets the supersampling factor of the software renderer.
//
// Parameters:
//   - s: the factor
//
// Returns:
//   - BakerBuilderOption: option function to apply
func WithSupersample(s renderer.Supersample) BakerBuilderOption {
	return func(b *baker) {
		b.supersample = s
	}
}

// WithLineWidth sets the line width in output pixels.
//
// Parameters:
//   - width: the line width
//
// Returns:
//   - BakerBuilderOption: option function to apply
func WithLineWidth(width float32) BakerBuilderOption {
	return func(b *baker) {
		b.lineWidth = width
	}
}

// WithClearColor sets the background color.
//
// Parameters:
//   - color: RGBA in [0, 1]
//
// Returns:
//   - BakerBuilderOption: option function to apply
func WithClearColor(color mgl32.Vec4) BakerBuilderOption {
	return func(b *baker) {
		b.clearColor = color
	}
}

// WithWorkers sets how many frames render concurrently (default runtime.NumCPU()).
//
// Parameters:
//   - n: the worker count
//
// Returns:
//   - BakerBuilderOption: option function to apply
func WithWorkers(n int) BakerBuilderOption {
	return func(b *baker) {
		b.workers = max(n, 1)
	}
}

// WithGrid toggles the floor grid and sets its options. The grid hue follows the frame time.
//
// Parameters:
//   - enabled: true to draw the grid
//   - options: grid options
//
// Returns:
//   - BakerBuilderOption: option function to apply
func WithGrid(enabled bool, options ...debug.GridBuilderOption) BakerBuilderOption {
	return func(b *baker) {
		b.grid = enabled
		b.gridOptions = options
	}
}

// WithResolver sets the hierarchy resolver used to draw skeletons.
//
// Parameters:
//   - r: the resolver
//
// Returns:
//   - BakerBuilderOption: option function to apply
func WithResolver(r debug.Resolver) BakerBuilderOption {
	return func(b *baker) {
		b.resolver = r
	}
}

// WithView sets the camera angles, in radians, the model is viewed from.
//
// Parameters:
//   - azimuth: rotation around the vertical axis
//   - elevation: angle above the horizon
//
// Returns:
//   - BakerBuilderOption: option function to apply
func WithView(azimuth, elevation float32) BakerBuilderOption {
	return func(b *baker) {
		b.azimuth, b.elevation = azimuth, elevation
	}
}

// WithLineCapacity sets the per-frame line vertex capacity.
//
// Parameters:
//   - capacity: the vertex capacity
//
// Returns:
//   - BakerBuilderOption: option function to apply
func WithLineCapacity(capacity int) BakerBuilderOption {
	return func(b *baker) {
		b.lineCap = capacity
	}
}
