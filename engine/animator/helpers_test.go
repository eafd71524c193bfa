package animator

import (
	"github.com/Carmen-Shannon/oxy-anim/common"
	"github.com/Carmen-Shannon/oxy-anim/engine/model"

	"github.com/go-gl/mathgl/mgl32"
)

var yAxis = mgl32.Vec3{0, 1, 0}

func joint(rot mgl32.Quat, pos mgl32.Vec3, parent int32) model.Joint {
	return model.Joint{
		Transform:   common.WithTranslation(rot.Mat4(), pos.Vec4(1)),
		ParentIndex: parent,
	}
}

// quarterTurnTrack has a single root joint: identity at t=0, a 90 degree yaw with translation
// (1, 0, 0) at t=1, and a two second loop.
func quarterTurnTrack() *model.AnimationTrack {
	rest := model.Pose{joint(mgl32.QuatIdent(), mgl32.Vec3{}, -1)}
	turned := model.Pose{joint(mgl32.QuatRotate(mgl32.DegToRad(90), yAxis), mgl32.Vec3{1, 0, 0}, -1)}
	return &model.AnimationTrack{
		Duration: 2,
		BindPose: rest.Clone(),
		Keyframes: []model.Keyframe{
			{Keytime: 0, Pose: rest},
			{Keytime: 1, Pose: turned},
		},
	}
}

// chainTrack has three joints (0 root, 1 child of 0, 2 child of 1), four keyframes with a non-zero
// first keytime, and a bind pose distinct from every keyframe.
func chainTrack() *model.AnimationTrack {
	pose := func(angle float32, lift float32) model.Pose {
		q := mgl32.QuatRotate(angle, mgl32.Vec3{0, 0, 1})
		return model.Pose{
			joint(mgl32.QuatIdent(), mgl32.Vec3{0, lift, 0}, -1),
			joint(q, mgl32.Vec3{1, lift, 0}, 0),
			joint(q.Mul(q), mgl32.Vec3{2, lift, 0}, 1),
		}
	}
	return &model.AnimationTrack{
		Duration: 3,
		BindPose: pose(0, -1),
		Keyframes: []model.Keyframe{
			{Keytime: 0.25, Pose: pose(0.1, 0)},
			{Keytime: 1.0, Pose: pose(0.8, 0.5)},
			{Keytime: 1.75, Pose: pose(-0.4, 1)},
			{Keytime: 2.5, Pose: pose(1.3, 0.25)},
		},
	}
}

func posesNear(a, b model.Pose, threshold float32) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].ParentIndex != b[i].ParentIndex {
			return false
		}
		if !common.Near4(common.Translation(a[i].Transform), common.Translation(b[i].Transform), threshold) {
			return false
		}
		if !common.SameRotation(common.QuatFromMatrix(a[i].Transform), common.QuatFromMatrix(b[i].Transform), threshold) {
			return false
		}
	}
	return true
}
