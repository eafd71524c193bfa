package game_object

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-anim/engine/animator"
	"github.com/Carmen-Shannon/oxy-anim/engine/debug"
	"github.com/Carmen-Shannon/oxy-anim/engine/model"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waveModel() model.Model {
	return model.FromImported(model.WaveModel("wave", 3, 8, 2))
}

func TestNewGameObjectCreatesAnimator(t *testing.T) {
	m := waveModel()
	obj := NewGameObject(WithID(7), WithModel(m))

	assert.Equal(t, uint64(7), obj.ID())
	assert.True(t, obj.Enabled())
	require.NotNil(t, obj.Animator())
	assert.Equal(t, m.Track().BindPose, obj.Pose(), "the object starts at the bind pose")
}

func TestGameObjectWithoutTrack(t *testing.T) {
	obj := NewGameObject(WithModel(model.NewModel(model.WithName("static"))))
	assert.Nil(t, obj.Animator())
	assert.Nil(t, obj.Update(0.1))

	buf := debug.NewLineBuffer(64)
	assert.Zero(t, obj.EmitLines(debug.NewResolver(), buf))
	assert.Zero(t, buf.Len())
}

func TestGameObjectUpdateRespectsEnabled(t *testing.T) {
	obj := NewGameObject(
		WithModel(waveModel()),
		WithAnimatorOptions(animator.WithEnabled(true)),
	)
	obj.Update(0.3)
	assert.InDelta(t, 0.3, obj.Animator().State().CurrentTime, 1e-12)

	obj.SetEnabled(false)
	obj.Update(0.3)
	assert.InDelta(t, 0.3, obj.Animator().State().CurrentTime, 1e-12, "disabled objects are not advanced")
}

func TestGameObjectsPlayIndependently(t *testing.T) {
	m := waveModel()
	a := NewGameObject(WithModel(m), WithAnimatorOptions(animator.WithEnabled(true)))
	b := NewGameObject(WithModel(m), WithAnimatorOptions(animator.WithEnabled(true), animator.WithStartTime(1)))

	a.Update(0.25)
	b.Update(0.25)
	assert.InDelta(t, 0.25, a.Animator().State().CurrentTime, 1e-12)
	assert.InDelta(t, 1.25, b.Animator().State().CurrentTime, 1e-12)
	assert.NotEqual(t, a.Pose(), b.Pose())
}

func TestGameObjectEmitLinesOffset(t *testing.T) {
	m := waveModel()
	offset := mgl32.Vec3{2, 0, -1}
	obj := NewGameObject(WithModel(m), WithPosition(offset))

	buf := debug.NewLineBuffer(256)
	require.Zero(t, obj.EmitLines(debug.NewResolver(), buf))

	pose := m.Track().BindPose
	require.Equal(t, debug.SegmentCount(pose)*2, buf.Len())
	assert.Equal(t, pose.Position(0).Add(offset), buf.Vertices()[0].Position)
}

func TestGameObjectSetModel(t *testing.T) {
	obj := NewGameObject()
	assert.Nil(t, obj.Animator())

	m := waveModel()
	require.NoError(t, obj.SetModel(m))
	require.NotNil(t, obj.Animator())
	assert.Equal(t, m, obj.Model())

	bad := model.NewModel(model.WithTrack(&model.AnimationTrack{Duration: 0}))
	assert.Error(t, obj.SetModel(bad))
	assert.Equal(t, m, obj.Model(), "a rejected model leaves the object unchanged")
}
