package animator

import (
	"github.com/Carmen-Shannon/oxy-anim/engine/model"
)

// AnimatorBuilderOption is a functional option for configuring an Animator during construction.
type AnimatorBuilderOption func(*animator)

// WithTrack is an option builder that assigns the track the Animator plays.
//
// Parameters:
//   - track: the animation track
//
// Returns:
//   - AnimatorBuilderOption: a function that applies the track option to an animator
func WithTrack(track *model.AnimationTrack) AnimatorBuilderOption {
	return func(a *animator) {
		a.track = track
	}
}

// WithEnabled is an option builder that sets whether the Animator starts in animating mode.
//
// Parameters:
//   - enabled: true to start animating, false to start on the bind pose
//
// Returns:
//   - AnimatorBuilderOption: a function that applies the enabled option to an animator
func WithEnabled(enabled bool) AnimatorBuilderOption {
	return func(a *animator) {
		a.state.Enabled = enabled
	}
}

// WithStartTime is an option builder that sets the initial time accumulator.
//
// Parameters:
//   - seconds: the starting playback time
//
// Returns:
//   - AnimatorBuilderOption: a function that applies the start time option to an animator
func WithStartTime(seconds float64) AnimatorBuilderOption {
	return func(a *animator) {
		a.state.CurrentTime = seconds
	}
}

// WithPausePolicy is an option builder that sets whether time accumulates while disabled.
// Defaults to PauseAccumulate.
//
// Parameters:
//   - policy: the pause policy
//
// Returns:
//   - AnimatorBuilderOption: a function that applies the pause policy option to an animator
func WithPausePolicy(policy PausePolicy) AnimatorBuilderOption {
	return func(a *animator) {
		a.pausePolicy = policy
	}
}

// WithWrapPolicy is an option builder that sets how time wraps at the loop boundary.
// Defaults to WrapSingle.
//
// Parameters:
//   - policy: the wrap policy
//
// Returns:
//   - AnimatorBuilderOption: a function that applies the wrap policy option to an animator
func WithWrapPolicy(policy WrapPolicy) AnimatorBuilderOption {
	return func(a *animator) {
		a.wrapPolicy = policy
	}
}

// WithSpeed is an option builder that scales every tick's delta time. Negative values are treated as 0.
//
// Parameters:
//   - speed: the playback speed multiplier (default 1)
//
// Returns:
//   - AnimatorBuilderOption: a function that applies the speed option to an animator
func WithSpeed(speed float64) AnimatorBuilderOption {
	return func(a *animator) {
		a.speed = max(speed, 0)
	}
}

// WithValidation is an option builder that enables or disables track validation in SetTrack.
// Validation is on by default; disable it only for tracks already validated by a loader.
//
// Parameters:
//   - validate: false to skip validation
//
// Returns:
//   - AnimatorBuilderOption: a function that applies the validation option to an animator
func WithValidation(validate bool) AnimatorBuilderOption {
	return func(a *animator) {
		a.validate = validate
	}
}
