package game_object

import (
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-anim/engine/animator"
	"github.com/Carmen-Shannon/oxy-anim/engine/debug"
	"github.com/Carmen-Shannon/oxy-anim/engine/model"

	"github.com/go-gl/mathgl/mgl32"
)

type gameObject struct {
	id       uint64
	enabled  atomic.Bool
	mdl      model.Model
	animator animator.Animator
	position mgl32.Vec3

	// searchType is used when the object builds its own animator from the model's track.
	searchType  animator.KeyframeSearchType
	animOptions []animator.AnimatorBuilderOption
}

// GameObject is one animated instance in a scene: a model, the Animator that owns its PlaybackState,
// and a world offset applied to everything it draws.
//
// Each GameObject has its own animator, so any number of objects can play the same track at
// independent phases.
type GameObject interface {
	// ID returns the key the scene stores the object under; 0 until the scene assigns one.
	ID() uint64

	// Enabled reports whether the scene advances and draws the object.
	Enabled() bool

	// Model returns the shared asset, or nil.
	Model() model.Model

	// Animator returns the playback driver, or nil for a static model.
	Animator() animator.Animator

	// Position returns the world offset of the object.
	//
	// Returns:
	//   - mgl32.Vec3: the offset
	Position() mgl32.Vec3

	// Update advances the object's animator by deltaTime seconds. Disabled objects are not advanced.
	//
	// Parameters:
	//   - deltaTime: elapsed time in seconds
	//
	// Returns:
	//   - model.Pose: the sampled pose, or nil without an animator
	Update(deltaTime float64) model.Pose

	// Pose returns the pose sampled by the last Update, or the bind pose before the first one.
	//
	// Returns:
	//   - model.Pose: the current pose, or nil without a track
	Pose() model.Pose

	// EmitLines writes the skeleton of the current pose, offset by Position, into buf.
	//
	// Parameters:
	//   - resolver: the hierarchy resolver
	//   - buf: the destination line buffer
	//
	// Returns:
	//   - int: the number of segments that did not fit
	EmitLines(resolver debug.Resolver, buf debug.LineBuffer) int

	// SetID is called by the scene when the object is added.
	SetID(id uint64)

	// SetEnabled hides and freezes the object when false.
	SetEnabled(enabled bool)

	// SetModel assigns a Model. When the object owns an animator its track is replaced with the
	// model's; otherwise a new animator is created for a model with a track.
	//
	// Parameters:
	//   - m: the new asset
	//
	// Returns:
	//   - error: the track validation error, in which case the object is unchanged
	SetModel(m model.Model) error

	// SetAnimator swaps in an externally built animator, which may drive a different track.
	SetAnimator(anim animator.Animator)

	// SetPosition sets the world offset.
	//
	// Parameters:
	//   - p: the new offset
	SetPosition(p mgl32.Vec3)
}

var _ GameObject = &gameObject{}

// NewGameObject returns an enabled object at the origin.
// If a model with a track is given and no animator is, one is created with the configured search
// type and animator options; an invalid track panics there, like animator.NewAnimator.
//
// Parameters:
//   - options: model, animator and placement
//
// Returns:
//   - GameObject: the object, not yet in any scene
func NewGameObject(options ...GameObjectBuilderOption) GameObject {
	obj := &gameObject{
		searchType: animator.SearchCached,
	}
	obj.enabled.Store(true)
	for _, option := range options {
		option(obj)
	}
	if obj.animator == nil && obj.mdl != nil && obj.mdl.Track() != nil {
		obj.animator = obj.newAnimator(obj.mdl.Track())
	}
	if obj.animator != nil && obj.animator.Pose() == nil {
		obj.animator.Update(0)
	}
	return obj
}

func (g *gameObject) newAnimator(track *model.AnimationTrack) animator.Animator {
	opts := append([]animator.AnimatorBuilderOption{animator.WithTrack(track)}, g.animOptions...)
	return animator.NewAnimator(g.searchType, opts...)
}

func (g *gameObject) ID() uint64 {
	return g.id
}

func (g *gameObject) Enabled() bool {
	return g.enabled.Load()
}

func (g *gameObject) Model() model.Model {
	return g.mdl
}

func (g *gameObject) Animator() animator.Animator {
	return g.animator
}

func (g *gameObject) Position() mgl32.Vec3 {
	return g.position
}

func (g *gameObject) Update(deltaTime float64) model.Pose {
	if g.animator == nil {
		return nil
	}
	if !g.enabled.Load() {
		return g.animator.Pose()
	}
	return g.animator.Update(deltaTime)
}

func (g *gameObject) Pose() model.Pose {
	if g.animator == nil {
		return nil
	}
	return g.animator.Pose()
}

func (g *gameObject) EmitLines(resolver debug.Resolver, buf debug.LineBuffer) int {
	pose := g.Pose()
	if pose == nil {
		return 0
	}
	return resolver.Emit(pose, g.position, buf)
}

func (g *gameObject) SetID(id uint64) {
	g.id = id
}

func (g *gameObject) SetEnabled(enabled bool) {
	g.enabled.Store(enabled)
}

func (g *gameObject) SetModel(m model.Model) error {
	var track *model.AnimationTrack
	if m != nil {
		track = m.Track()
	}
	switch {
	case g.animator != nil:
		if err := g.animator.SetTrack(track); err != nil {
			return err
		}
		g.animator.Update(0)
	case track != nil:
		if err := track.Validate(); err != nil {
			return err
		}
		g.animator = g.newAnimator(track)
		g.animator.Update(0)
	}
	g.mdl = m
	return nil
}

func (g *gameObject) SetAnimator(anim animator.Animator) {
	g.animator = anim
}

func (g *gameObject) SetPosition(p mgl32.Vec3) {
	g.position = p
}
