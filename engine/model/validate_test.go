package model

import (
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-anim/common"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateAcceptsWaveTrack(t *testing.T) {
	for _, keys := range []int{1, 2, 5, 30} {
		require.NoError(t, WaveTrack(6, keys, 1.5).Validate(), "keyframes=%d", keys)
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*AnimationTrack)
		want   error
	}{
		{"zero duration", func(tr *AnimationTrack) { tr.Duration = 0 }, ErrInvalidDuration},
		{"negative duration", func(tr *AnimationTrack) { tr.Duration = -1 }, ErrInvalidDuration},
		{"nan duration", func(tr *AnimationTrack) { tr.Duration = math.NaN() }, ErrInvalidDuration},
		{"infinite duration", func(tr *AnimationTrack) { tr.Duration = math.Inf(1) }, ErrInvalidDuration},
		{"no keyframes", func(tr *AnimationTrack) { tr.Keyframes = nil }, ErrNoKeyframes},
		{"empty bind pose", func(tr *AnimationTrack) { tr.BindPose = nil }, ErrEmptyBindPose},
		{"keytime at duration", func(tr *AnimationTrack) { tr.Keyframes[3].Keytime = tr.Duration }, ErrKeytimeRange},
		{"negative keytime", func(tr *AnimationTrack) { tr.Keyframes[0].Keytime = -0.1 }, ErrKeytimeRange},
		{"duplicate keytime", func(tr *AnimationTrack) { tr.Keyframes[2].Keytime = tr.Keyframes[1].Keytime }, ErrKeytimeOrder},
		{"decreasing keytime", func(tr *AnimationTrack) {
			tr.Keyframes[1], tr.Keyframes[2] = tr.Keyframes[2], tr.Keyframes[1]
		}, ErrKeytimeOrder},
		{"short keyframe", func(tr *AnimationTrack) { tr.Keyframes[1].Pose = tr.Keyframes[1].Pose[:2] }, ErrJointCountMismatch},
		{"reparented keyframe joint", func(tr *AnimationTrack) { tr.Keyframes[2].Pose[3].ParentIndex = 0 }, ErrTopologyMismatch},
		{"parent out of range", func(tr *AnimationTrack) { tr.BindPose[1].ParentIndex = 9 }, ErrBadParent},
		{"self parent", func(tr *AnimationTrack) { tr.BindPose[2].ParentIndex = 2 }, ErrBadParent},
		{"negative parent", func(tr *AnimationTrack) { tr.BindPose[2].ParentIndex = -4 }, ErrBadParent},
		{"cycle", func(tr *AnimationTrack) { tr.BindPose[0].ParentIndex = 3 }, ErrCycle},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			track := WaveTrack(4, 4, 2)
			tc.mutate(track)
			err := track.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestValidateNilTrack(t *testing.T) {
	var track *AnimationTrack
	assert.Error(t, track.Validate())
}

func TestValidateHierarchyForest(t *testing.T) {
	pose := Pose{
		{ParentIndex: RootParent},
		{ParentIndex: 0},
		{ParentIndex: RootParent},
		{ParentIndex: 2},
		{ParentIndex: 1},
	}
	assert.NoError(t, ValidateHierarchy(pose))

	// Parents may follow their children in the array.
	reversed := Pose{
		{ParentIndex: 1},
		{ParentIndex: 2},
		{ParentIndex: RootParent},
	}
	assert.NoError(t, ValidateHierarchy(reversed))

	cycle := Pose{
		{ParentIndex: RootParent},
		{ParentIndex: 2},
		{ParentIndex: 3},
		{ParentIndex: 1},
	}
	assert.ErrorIs(t, ValidateHierarchy(cycle), ErrCycle)
}

func TestSkinningMatricesIdentityAtBind(t *testing.T) {
	track := WaveTrack(5, 3, 1)
	for _, m := range SkinningMatrices(track.BindPose, track.BindPose) {
		for c := 0; c < 4; c++ {
			assert.True(t, common.Near4(m.Col(c), mgl32.Ident4().Col(c), 1e-5))
		}
	}
}
