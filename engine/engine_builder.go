package engine

import (
	"time"

	"github.com/Carmen-Shannon/oxy-anim/engine/profiler"
	"github.com/Carmen-Shannon/oxy-anim/engine/renderer"
	"github.com/Carmen-Shannon/oxy-anim/engine/scene"
	"github.com/Carmen-Shannon/oxy-anim/engine/window"
)

// EngineBuilderOption configures an Engine in NewEngine.
type EngineBuilderOption func(*engine)

// WithProfiling turns on the periodic tick timing log from the start.
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profiling.Store(enabled)
	}
}

// WithProfilerInterval sets how often profiling statistics are logged (default 1s).
//
// Parameters:
//   - interval: the reporting interval
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfilerInterval(interval time.Duration) EngineBuilderOption {
	return func(e *engine) {
		e.profiler = profiler.NewProfiler(interval)
	}
}

// WithTickRate sets how many times per second Run calls Step. Non-positive rates mean 60.
//
// Parameters:
//   - tps: ticks per second
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithTickRate(tps float64) EngineBuilderOption {
	return func(e *engine) {
		e.interval = tickInterval(tps)
	}
}

// WithMaxDelta caps the delta time handed to scenes in one tick, so a stalled process does not
// jump the animation by more than one loop (default 0.25s, 0 disables the cap).
//
// Parameters:
//   - seconds: the largest delta time in seconds
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithMaxDelta(seconds float64) EngineBuilderOption {
	return func(e *engine) {
		e.maxDelta = max(seconds, 0)
	}
}

// WithWindow sets the window the engine draws into and reads input from.
// Without a window the engine runs headless.
//
// Parameters:
//   - w: an open window
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindow(w window.Window) EngineBuilderOption {
	return func(e *engine) {
		e.window = w
	}
}

// WithRenderer sets the line renderer. With a window and no renderer, Run creates a GL renderer.
//
// Parameters:
//   - r: the renderer
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRenderer(r renderer.Renderer) EngineBuilderOption {
	return func(e *engine) {
		e.renderer = r
	}
}

// WithScene is AddScene at construction time.
func WithScene(key int, s scene.Scene) EngineBuilderOption {
	return func(e *engine) {
		e.scenes[key] = s
	}
}

// WithKeyBinding binds a key code to an action, replacing any existing binding for that key.
//
// Parameters:
//   - keyCode: a GLFW key code
//   - action: the action to perform on key press
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithKeyBinding(keyCode uint32, action Action) EngineBuilderOption {
	return func(e *engine) {
		e.keyBindings[keyCode] = action
	}
}
