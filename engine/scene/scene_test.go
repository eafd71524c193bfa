package scene

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-anim/engine/animator"
	"github.com/Carmen-Shannon/oxy-anim/engine/camera"
	"github.com/Carmen-Shannon/oxy-anim/engine/debug"
	"github.com/Carmen-Shannon/oxy-anim/engine/game_object"
	"github.com/Carmen-Shannon/oxy-anim/engine/model"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newObjects(m model.Model, n int, enabled bool) []game_object.GameObject {
	objs := make([]game_object.GameObject, n)
	for i := range objs {
		objs[i] = game_object.NewGameObject(
			game_object.WithModel(m),
			game_object.WithPosition(mgl32.Vec3{float32(i), 0, 0}),
			game_object.WithAnimatorOptions(
				animator.WithEnabled(enabled),
				animator.WithStartTime(0.1*float64(i)),
			),
		)
	}
	return objs
}

func newTestScene(t *testing.T, options ...SceneBuilderOption) Scene {
	t.Helper()
	s := NewScene("test", camera.NewCamera(camera.WithController(camera.NewCameraController())), options...)
	t.Cleanup(s.Release)
	return s
}

func TestSceneRegistry(t *testing.T) {
	s := newTestScene(t, WithComputeWorkers(1))
	m := model.FromImported(model.WaveModel("wave", 3, 4, 1))

	objs := newObjects(m, 3, false)
	objs[1].SetID(10)
	for _, obj := range objs {
		s.Add(obj)
	}

	assert.Equal(t, 3, s.Count())
	ids := []uint64{}
	for _, obj := range s.Objects() {
		ids = append(ids, obj.ID())
	}
	assert.Equal(t, []uint64{1, 10, 11}, ids)
	assert.Same(t, objs[1], s.Get(10))

	s.Remove(10)
	assert.Nil(t, s.Get(10))
	assert.Equal(t, 2, s.Count())

	s.Clear()
	assert.Zero(t, s.Count())
}

func TestSceneParallelUpdateMatchesSequential(t *testing.T) {
	m := model.FromImported(model.WaveModel("wave", 4, 12, 2))
	seq := newTestScene(t, WithComputeWorkers(1), WithObjects(newObjects(m, 16, true)...))
	par := newTestScene(t, WithComputeWorkers(4), WithObjects(newObjects(m, 16, true)...))

	for tick := 0; tick < 40; tick++ {
		seq.Update(1.0 / 60)
		par.Update(1.0 / 60)
	}

	a, b := seq.Objects(), par.Objects()
	require.Len(t, b, len(a))
	for i := range a {
		assert.Equal(t, a[i].Animator().State(), b[i].Animator().State())
		assert.Equal(t, a[i].Pose(), b[i].Pose())
	}
}

func TestSceneLines(t *testing.T) {
	m := model.FromImported(model.WaveModel("wave", 3, 4, 1))
	objs := newObjects(m, 2, false)
	s := newTestScene(t, WithObjects(objs...), WithLineCapacity(1<<14))

	perObject := debug.SegmentCount(m.Track().BindPose) * 2
	gridVerts := s.Grid().LineCount() * 2

	buf := s.Lines()
	assert.Equal(t, gridVerts+2*perObject, buf.Len())
	assert.Zero(t, buf.Dropped())

	s.SetGridEnabled(false)
	assert.Equal(t, 2*perObject, s.Lines().Len())

	objs[0].SetEnabled(false)
	buf = s.Lines()
	require.Equal(t, perObject, buf.Len())
	assert.Equal(t, m.Track().BindPose.Position(0).Add(mgl32.Vec3{1, 0, 0}), buf.Vertices()[0].Position,
		"only the second object, offset by its position, is drawn")
}

func TestSceneLinesCulling(t *testing.T) {
	m := model.FromImported(model.WaveModel("wave", 3, 4, 1))
	near := newObjects(m, 1, false)[0]
	s := newTestScene(t, WithObjects(near), WithGridEnabled(false), WithCulling(true))
	s.FrameObjects()
	s.Camera().Update()

	perObject := debug.SegmentCount(m.Track().BindPose) * 2
	require.Equal(t, perObject, s.Lines().Len())

	s.Add(game_object.NewGameObject(
		game_object.WithModel(m),
		game_object.WithPosition(mgl32.Vec3{1000, 0, 0}),
	))
	assert.Equal(t, perObject, s.Lines().Len(), "the far object is culled")

	unculled := newTestScene(t, WithObjects(near), WithGridEnabled(false))
	unculled.Add(game_object.NewGameObject(
		game_object.WithModel(m),
		game_object.WithPosition(mgl32.Vec3{1000, 0, 0}),
	))
	assert.Equal(t, 2*perObject, unculled.Lines().Len())
}

func TestSceneDispatch(t *testing.T) {
	m := model.FromImported(model.WaveModel("wave", 3, 4, 1))
	s := newTestScene(t, WithObjects(newObjects(m, 3, false)...))

	s.Dispatch(animator.EventToggle)
	for _, obj := range s.Objects() {
		assert.True(t, obj.Animator().Enabled())
	}

	s.Dispatch(animator.EventToggle)
	s.Dispatch(animator.EventAdvanceFrame)
	for _, obj := range s.Objects() {
		assert.True(t, obj.Animator().Inspecting())
		assert.Equal(t, 1, obj.Animator().State().CurrentFrameIndex)
	}
}

func TestSceneFrameObjects(t *testing.T) {
	m := model.FromImported(model.WaveModel("wave", 3, 4, 1))
	s := newTestScene(t, WithObjects(newObjects(m, 1, false)...))

	s.FrameObjects()
	ctrl := s.Camera().Controller()
	assert.Equal(t, model.Center(m), ctrl.Target())
	assert.Greater(t, ctrl.Radius(), m.BoundingRadius())
}

func TestNewSceneRequiresCamera(t *testing.T) {
	assert.Panics(t, func() { NewScene("nil", nil) })
}
