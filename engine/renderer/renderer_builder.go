package renderer

import (
	"github.com/go-gl/mathgl/mgl32"
)

// RendererBuilderOption is a functional option applied to a renderer during construction via NewRenderer.
type RendererBuilderOption func(*renderer)

// WithSize sets the initial render target size. Non-positive values keep the default 1280x720.
//
// Parameters:
//   - width: the width in pixels
//   - height: the height in pixels
//
// Returns:
//   - RendererBuilderOption: a function that applies the size option to a renderer
func WithSize(width, height int) RendererBuilderOption {
	return func(r *renderer) {
		if width > 0 && height > 0 {
			r.width, r.height = width, height
		}
	}
}

// WithClearColor sets the background color.
//
// Parameters:
//   - color: RGBA in [0, 1]
//
// Returns:
//   - RendererBuilderOption: a function that applies the clear color option to a renderer
func WithClearColor(color mgl32.Vec4) RendererBuilderOption {
	return func(r *renderer) {
		r.clearColor = color
	}
}

// WithSupersample sets the software backend's per-axis sample multiplier. The GL backend ignores it.
// Values below 1 are treated as SupersampleOff.
//
// Parameters:
//   - s: the multiplier
//
// Returns:
//   - RendererBuilderOption: a function that applies the supersample option to a renderer
func WithSupersample(s Supersample) RendererBuilderOption {
	return func(r *renderer) {
		if s < SupersampleOff {
			s = SupersampleOff
		}
		r.supersample = s
	}
}

// WithLineWidth sets the line width in output pixels (default 1).
//
// Parameters:
//   - width: the line width; values below 1 are clamped to 1
//
// Returns:
//   - RendererBuilderOption: a function that applies the line width option to a renderer
func WithLineWidth(width float32) RendererBuilderOption {
	return func(r *renderer) {
		r.lineWidth = max(width, 1)
	}
}
