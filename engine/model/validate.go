package model

import (
	"math"

	"github.com/pkg/errors"
)

// Track validation failures. Validate wraps them with the offending index; use errors.Cause or errors.Is to match.
var (
	ErrInvalidDuration    = errors.New("duration must be positive and finite")
	ErrNoKeyframes        = errors.New("track has no keyframes")
	ErrEmptyBindPose      = errors.New("bind pose has no joints")
	ErrJointCountMismatch = errors.New("keyframe joint count differs from bind pose")
	ErrTopologyMismatch   = errors.New("keyframe parent indices differ from bind pose")
	ErrKeytimeOrder       = errors.New("keytimes are not strictly increasing")
	ErrKeytimeRange       = errors.New("keytime outside [0, duration)")
	ErrBadParent          = errors.New("parent index out of range")
	ErrCycle              = errors.New("joint hierarchy contains a cycle")
)

// Validate checks every structural invariant the sampler relies on and returns the first violation.
//
// Returns:
//   - error: nil when the track is well formed
func (t *AnimationTrack) Validate() error {
	if t == nil {
		return errors.New("track is nil")
	}
	if !(t.Duration > 0) || math.IsInf(t.Duration, 0) {
		return errors.Wrapf(ErrInvalidDuration, "duration %v", t.Duration)
	}
	if len(t.Keyframes) == 0 {
		return ErrNoKeyframes
	}
	if len(t.BindPose) == 0 {
		return ErrEmptyBindPose
	}
	if err := ValidateHierarchy(t.BindPose); err != nil {
		return errors.Wrap(err, "bind pose")
	}

	prev := math.Inf(-1)
	for i, k := range t.Keyframes {
		if k.Keytime < 0 || k.Keytime >= t.Duration || math.IsNaN(k.Keytime) {
			return errors.Wrapf(ErrKeytimeRange, "keyframe %d keytime %v duration %v", i, k.Keytime, t.Duration)
		}
		if k.Keytime <= prev {
			return errors.Wrapf(ErrKeytimeOrder, "keyframe %d keytime %v after %v", i, k.Keytime, prev)
		}
		prev = k.Keytime

		if len(k.Pose) != len(t.BindPose) {
			return errors.Wrapf(ErrJointCountMismatch, "keyframe %d has %d joints, bind pose %d", i, len(k.Pose), len(t.BindPose))
		}
		for j := range k.Pose {
			if k.Pose[j].ParentIndex != t.BindPose[j].ParentIndex {
				return errors.Wrapf(ErrTopologyMismatch, "keyframe %d joint %d parent %d, bind pose %d",
					i, j, k.Pose[j].ParentIndex, t.BindPose[j].ParentIndex)
			}
		}
	}
	return nil
}

// ValidateHierarchy checks that every parent index is RootParent or a valid index other than the
// joint itself, and that following parents from any joint reaches a root.
//
// Parameters:
//   - p: the pose to check
//
// Returns:
//   - error: nil for a well formed forest
func ValidateHierarchy(p Pose) error {
	n := int32(len(p))
	for i, j := range p {
		if j.ParentIndex == RootParent {
			continue
		}
		if j.ParentIndex < 0 || j.ParentIndex >= n || j.ParentIndex == int32(i) {
			return errors.Wrapf(ErrBadParent, "joint %d parent %d", i, j.ParentIndex)
		}
	}

	// 0 = unvisited, 1 = on the current walk, 2 = known to reach a root
	state := make([]uint8, len(p))
	for i := range p {
		var path []int32
		cur := int32(i)
		for cur != RootParent && state[cur] != 2 {
			if state[cur] == 1 {
				return errors.Wrapf(ErrCycle, "joint %d", cur)
			}
			state[cur] = 1
			path = append(path, cur)
			cur = p[cur].ParentIndex
		}
		for _, v := range path {
			state[v] = 2
		}
	}
	return nil
}
