package game_object

import (
	"github.com/Carmen-Shannon/oxy-anim/engine/animator"
	"github.com/Carmen-Shannon/oxy-anim/engine/model"

	"github.com/go-gl/mathgl/mgl32"
)

// GameObjectBuilderOption configures a GameObject in NewGameObject.
type GameObjectBuilderOption func(*gameObject)

// WithID pins the scene key instead of letting the scene allocate one.
func WithID(id uint64) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.id = id
	}
}

// WithEnabled sets whether the GameObject is updated and drawn. Objects start enabled.
//
// Parameters:
//   - enabled: true to update and draw the object
//
// Returns:
//   - GameObjectBuilderOption: option function to apply
func WithEnabled(enabled bool) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.enabled.Store(enabled)
	}
}

// WithModel sets the asset. A model with a track gets its own animator unless WithAnimator is also given.
func WithModel(m model.Model) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.mdl = m
	}
}

// WithAnimator sets an existing Animator instead of letting the object create one from its model.
//
// Parameters:
//   - anim: the animator
//
// Returns:
//   - GameObjectBuilderOption: option function to apply
func WithAnimator(anim animator.Animator) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.animator = anim
	}
}

// WithKeyframeSearch sets the search strategy of the animator the object creates (default SearchCached).
//
// Parameters:
//   - searchType: the keyframe search strategy
//
// Returns:
//   - GameObjectBuilderOption: option function to apply
func WithKeyframeSearch(searchType animator.KeyframeSearchType) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.searchType = searchType
	}
}

// WithAnimatorOptions adds options for the animator the object creates, such as playback policies or a start time.
//
// Parameters:
//   - options: the animator options
//
// Returns:
//   - GameObjectBuilderOption: option function to apply
func WithAnimatorOptions(options ...animator.AnimatorBuilderOption) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.animOptions = append(obj.animOptions, options...)
	}
}

// WithPosition places the object; its skeleton is drawn translated by p.
func WithPosition(p mgl32.Vec3) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.position = p
	}
}
