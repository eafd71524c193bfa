package model

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-anim/common"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromImported(t *testing.T) {
	imported := WaveModel("wave", 4, 8, 2)
	m := FromImported(imported)

	assert.Equal(t, "wave", m.Name())
	assert.True(t, m.Skinned())
	assert.Same(t, imported.Track, m.Track())
	assert.Len(t, m.Materials(), 1)
	assert.Len(t, m.Mesh().Vertices, 8)

	// Chain height is 1.5; the farthest box corner sits at (0.1, 1.5, 0.1).
	want := mgl32.Vec3{0.1, 1.5, 0.1}.Len()
	assert.InDelta(t, want, m.BoundingRadius(), 1e-5)
}

func TestNewModelExplicitRadius(t *testing.T) {
	m := NewModel(WithName("static"), WithBoundingRadius(7))
	assert.False(t, m.Skinned())
	assert.Nil(t, m.Track())
	assert.Equal(t, float32(7), m.BoundingRadius())
}

func TestCenter(t *testing.T) {
	withMesh := FromImported(WaveModel("wave", 4, 2, 1))
	assert.True(t, common.Near3(Center(withMesh), mgl32.Vec3{0, 0.75, 0}, 1e-5))

	skeletonOnly := NewModel(WithTrack(WaveTrack(3, 2, 1)))
	assert.True(t, common.Near3(Center(skeletonOnly), mgl32.Vec3{0, 0.5, 0}, 1e-5))

	assert.Equal(t, mgl32.Vec3{}, Center(NewModel()))
}

func TestComputeBounds(t *testing.T) {
	mesh := ImportedMesh{Vertices: []Vertex{
		{Position: mgl32.Vec4{1, -2, 3, 1}},
		{Position: mgl32.Vec4{-4, 5, 0, 1}},
	}}
	mesh.ComputeBounds()
	assert.Equal(t, mgl32.Vec3{-4, -2, 0}, mesh.BoundingMin)
	assert.Equal(t, mgl32.Vec3{1, 5, 3}, mesh.BoundingMax)

	var empty ImportedMesh
	empty.ComputeBounds()
	assert.Equal(t, mgl32.Vec3{}, empty.BoundingMax)
}

func TestPoseHelpers(t *testing.T) {
	track := WaveTrack(3, 2, 1)
	clone := track.BindPose.Clone()
	require.Equal(t, track.BindPose, clone)
	clone[0].ParentIndex = 2
	assert.Equal(t, RootParent, track.BindPose[0].ParentIndex)

	assert.Equal(t, []int32{-1, 0, 1}, track.BindPose.Parents())
	assert.Equal(t, mgl32.Vec3{0, 1, 0}, track.BindPose.Position(2))
	assert.Equal(t, []float64{0, 0.5}, track.Keytimes())
	assert.Equal(t, 3, track.JointCount())
	assert.Equal(t, 2, track.KeyframeCount())
	assert.Nil(t, Pose(nil).Clone())
}

func TestMaterialComponentNames(t *testing.T) {
	assert.Equal(t, "diffuse", ComponentDiffuse.String())
	assert.Equal(t, "normalmap", ComponentNormalMap.String())
	assert.Equal(t, "unknown", MaterialComponentCount.String())
}
