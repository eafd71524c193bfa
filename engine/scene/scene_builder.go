package scene

import (
	"github.com/Carmen-Shannon/oxy-anim/engine/debug"
	"github.com/Carmen-Shannon/oxy-anim/engine/game_object"
)

// SceneBuilderOption configures a Scene in NewScene.
type SceneBuilderOption func(s *scene)

// WithObjects is Add for each object at construction time; objects with ID 0 get a fresh ID.
func WithObjects(objects ...game_object.GameObject) SceneBuilderOption {
	return func(s *scene) {
		for _, obj := range objects {
			s.add(obj)
		}
	}
}

// WithComputeWorkers sets the number of worker goroutines that advance objects in Update.
// Defaults to runtime.NumCPU()-1. With 1 worker objects are updated inline on the calling goroutine.
//
// Parameters:
//   - n: worker count, raised to 1
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithComputeWorkers(n int) SceneBuilderOption {
	return func(s *scene) {
		if n < 1 {
			n = 1
		}
		s.computeWorkers = n
	}
}

// WithGrid replaces the default floor grid.
//
// Parameters:
//   - g: the grid
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithGrid(g debug.Grid) SceneBuilderOption {
	return func(s *scene) {
		s.grid = g
	}
}

// WithGridEnabled sets whether the grid is drawn (default true).
//
// Parameters:
//   - enabled: true to draw the grid
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithGridEnabled(enabled bool) SceneBuilderOption {
	return func(s *scene) {
		s.gridEnabled = enabled
	}
}

// WithResolver replaces the default hierarchy resolver.
//
// Parameters:
//   - r: the resolver
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithResolver(r debug.Resolver) SceneBuilderOption {
	return func(s *scene) {
		s.resolver = r
	}
}

// WithLineCapacity sets the vertex capacity of the scene's line buffer (default debug.DefaultLineCapacity).
//
// Parameters:
//   - capacity: the vertex capacity
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithLineCapacity(capacity int) SceneBuilderOption {
	return func(s *scene) {
		s.lineCap = capacity
	}
}

// WithCulling skips objects whose bounding sphere is outside the camera frustum when building
// lines (default false).
//
// Parameters:
//   - enabled: true to cull
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithCulling(enabled bool) SceneBuilderOption {
	return func(s *scene) {
		s.culling = enabled
	}
}
