package animator

import (
	"fmt"
	"math"

	"github.com/Carmen-Shannon/oxy-anim/common"
	"github.com/Carmen-Shannon/oxy-anim/engine/model"
)

// PausePolicy selects what happens to the time accumulator while animation is disabled.
type PausePolicy int

const (
	// PauseAccumulate keeps advancing time while disabled, so resuming continues at a later point in the loop.
	PauseAccumulate PausePolicy = iota

	// PauseFreeze stops time while disabled, so resuming continues where playback was toggled off.
	PauseFreeze
)

// WrapPolicy selects how time is brought back into the loop once it passes the track duration.
type WrapPolicy int

const (
	// WrapSingle subtracts the duration once per tick. Ticks longer than the duration under-wrap.
	WrapSingle WrapPolicy = iota

	// WrapLoop reduces time modulo the duration, so any tick length stays inside the loop.
	WrapLoop
)

// PlaybackState is the mutable playback state of one animated instance.
type PlaybackState struct {
	// CurrentTime is the time accumulator in seconds.
	CurrentTime float64

	// Enabled selects sampled animation (true) or static display (false).
	Enabled bool

	// CurrentFrameIndex is the upper keyframe resolved on the last animating tick, or the keyframe
	// selected by manual stepping.
	CurrentFrameIndex int
}

// animator is the implementation of the Animator interface.
type animator struct {
	track *model.AnimationTrack
	state PlaybackState

	previousFrameIndex int
	fraction           float64
	inspecting         bool

	pausePolicy PausePolicy
	wrapPolicy  WrapPolicy
	speed       float64
	validate    bool

	searchType KeyframeSearchType
	resolver   keyframeResolver

	output model.Pose
}

// Animator drives one animated instance: it owns a PlaybackState, advances it every tick, and
// samples the track into an output pose.
//
// An Animator is not safe for concurrent use; exactly one goroutine ticks it and reads its output.
type Animator interface {
	// Track returns the track being played, or nil.
	//
	// Returns:
	//   - *model.AnimationTrack: the track
	Track() *model.AnimationTrack

	// SetTrack replaces the track. The track is validated unless validation was disabled; playback
	// time and the enabled flag are kept, frame indices and manual inspection are reset.
	//
	// Parameters:
	//   - track: the new track (nil detaches the animator)
	//
	// Returns:
	//   - error: the validation error, in which case the previous track is kept
	SetTrack(track *model.AnimationTrack) error

	// State returns a copy of the playback state.
	//
	// Returns:
	//   - PlaybackState: the current state
	State() PlaybackState

	// SetState overwrites the playback state. The frame index is wrapped into the keyframe range.
	//
	// Parameters:
	//   - state: the new state
	SetState(state PlaybackState)

	// Update advances playback by deltaTime seconds and samples the track.
	// While disabled the output is exactly the bind pose at every time, with one exception: after
	// AdvanceFrame or StepBackFrame in static mode it is the selected keyframe's pose until
	// ResetInspection or Toggle. Callers that need the bind pose unconditionally while disabled
	// must not step frames, or must call ResetInspection first.
	// While enabled the time accumulator is wrapped at the track duration, the bounding keyframe pair
	// is resolved, and every joint is blended.
	//
	// Parameters:
	//   - deltaTime: elapsed time in seconds
	//
	// Returns:
	//   - model.Pose: the output pose, valid until the next Update; nil without a track
	Update(deltaTime float64) model.Pose

	// Pose returns the output of the last Update without advancing.
	//
	// Returns:
	//   - model.Pose: the last output pose
	Pose() model.Pose

	// Toggle flips between animating and static display. Time is not reset and manual inspection is cleared.
	Toggle()

	// Enabled reports whether the animator is in animating mode.
	//
	// Returns:
	//   - bool: true while animating
	Enabled() bool

	// AdvanceFrame moves the frame index forward by one, wrapping to the first keyframe.
	// While disabled this selects that keyframe for static inspection; while enabled the next
	// Update resolves the frame index from time again.
	AdvanceFrame()

	// StepBackFrame moves the frame index back by one, wrapping to the last keyframe.
	// Inspection behaves as for AdvanceFrame.
	StepBackFrame()

	// ResetInspection leaves manual inspection so static display shows the bind pose again.
	ResetInspection()

	// Inspecting reports whether static display shows a manually selected keyframe.
	//
	// Returns:
	//   - bool: true while inspecting
	Inspecting() bool

	// PreviousFrameIndex returns the lower keyframe of the last animating tick.
	//
	// Returns:
	//   - int: the keyframe index
	PreviousFrameIndex() int

	// Fraction returns the interpolation fraction of the last animating tick.
	//
	// Returns:
	//   - float64: the fraction, normally in [0, 1]
	Fraction() float64
}

var _ Animator = &animator{}

// NewAnimator creates a new Animator with the given keyframe search strategy and options applied.
// When a track is supplied with WithTrack it is validated here; an invalid track panics, since
// sampling it would silently produce garbage.
//
// Parameters:
//   - searchType: the keyframe search strategy (SearchLinear matches the reference behavior)
//   - options: functional options to configure the animator
//
// Returns:
//   - Animator: the configured animator
func NewAnimator(searchType KeyframeSearchType, options ...AnimatorBuilderOption) Animator {
	a := &animator{
		speed:      1,
		validate:   true,
		searchType: searchType,
		resolver:   newKeyframeResolver(searchType),
	}
	for _, opt := range options {
		opt(a)
	}
	if a.track != nil {
		track := a.track
		a.track = nil
		if err := a.SetTrack(track); err != nil {
			panic(fmt.Sprintf("animator: invalid track: %v", err))
		}
	}
	return a
}

func (a *animator) Track() *model.AnimationTrack {
	return a.track
}

func (a *animator) SetTrack(track *model.AnimationTrack) error {
	if track != nil && a.validate {
		if err := track.Validate(); err != nil {
			return err
		}
	}
	a.track = track
	a.resolver.Reset()
	a.state.CurrentFrameIndex = 0
	a.previousFrameIndex = 0
	a.fraction = 0
	a.inspecting = false
	if track == nil {
		a.output = nil
		return nil
	}
	a.output = copyPose(a.output, track.BindPose)
	return nil
}

func (a *animator) State() PlaybackState {
	return a.state
}

func (a *animator) SetState(state PlaybackState) {
	if a.track != nil {
		state.CurrentFrameIndex = common.WrapIndex(state.CurrentFrameIndex, len(a.track.Keyframes))
	}
	a.state = state
}

func (a *animator) Update(deltaTime float64) model.Pose {
	if a.track == nil {
		return nil
	}
	mustBeSampleable(a.track)
	if a.state.Enabled || a.pausePolicy == PauseAccumulate {
		a.advance(deltaTime)
	}

	if !a.state.Enabled {
		if a.inspecting {
			a.output = copyPose(a.output, a.track.Keyframes[a.state.CurrentFrameIndex].Pose)
		} else {
			a.output = copyPose(a.output, a.track.BindPose)
		}
		return a.output
	}

	a.sample()
	return a.output
}

// advance moves the time accumulator and wraps it at the track duration.
func (a *animator) advance(deltaTime float64) {
	duration := a.track.Duration
	a.state.CurrentTime += deltaTime * a.speed

	switch a.wrapPolicy {
	case WrapLoop:
		if a.state.CurrentTime > duration || a.state.CurrentTime < 0 {
			a.state.CurrentTime = math.Mod(a.state.CurrentTime, duration)
			if a.state.CurrentTime < 0 {
				a.state.CurrentTime += duration
			}
		}
	default:
		if a.state.CurrentTime > duration {
			a.state.CurrentTime -= duration
		}
	}
}

// sample resolves the keyframe pair for the current time and blends it into the output buffer.
func (a *animator) sample() {
	keys := a.track.Keyframes
	if len(keys) == 1 {
		a.state.CurrentFrameIndex = 0
		a.previousFrameIndex = 0
		a.fraction = 0
		a.output = copyPose(a.output, keys[0].Pose)
		return
	}

	frame := a.resolver.Resolve(keys, a.state.CurrentTime)
	prev, t := Bracket(a.track, frame, a.state.CurrentTime)

	a.state.CurrentFrameIndex = frame
	a.previousFrameIndex = prev
	a.fraction = t
	a.output = BlendPose(a.output, keys[prev].Pose, keys[frame].Pose, a.track.BindPose, float32(t))
}

func (a *animator) Pose() model.Pose {
	return a.output
}

func (a *animator) Toggle() {
	a.state.Enabled = !a.state.Enabled
	a.inspecting = false
}

func (a *animator) Enabled() bool {
	return a.state.Enabled
}

func (a *animator) AdvanceFrame() {
	a.stepFrame(1)
}

func (a *animator) StepBackFrame() {
	a.stepFrame(-1)
}

func (a *animator) stepFrame(delta int) {
	if a.track == nil {
		return
	}
	a.state.CurrentFrameIndex = common.WrapIndex(a.state.CurrentFrameIndex+delta, len(a.track.Keyframes))
	if !a.state.Enabled {
		a.inspecting = true
	}
}

func (a *animator) ResetInspection() {
	a.inspecting = false
}

func (a *animator) Inspecting() bool {
	return a.inspecting
}

func (a *animator) PreviousFrameIndex() int {
	return a.previousFrameIndex
}

func (a *animator) Fraction() float64 {
	return a.fraction
}
