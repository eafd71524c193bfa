package animator

import (
	"fmt"
	"sort"

	"github.com/Carmen-Shannon/oxy-anim/common"
	"github.com/Carmen-Shannon/oxy-anim/engine/model"
)

// FindFrame returns the index of the first keyframe whose keytime is strictly greater than time.
// When no keyframe qualifies (time is in the tail segment after the last keyframe) it returns 0:
// the keyframe after the last one is the first one of the next loop.
//
// Parameters:
//   - keyframes: keyframes ordered by increasing keytime
//   - time: the playback time in seconds
//
// Returns:
//   - int: the upper keyframe index
func FindFrame(keyframes []model.Keyframe, time float64) int {
	for i := range keyframes {
		if keyframes[i].Keytime > time {
			return i
		}
	}
	return 0
}

// findFrameBinary is FindFrame using a binary search over the ordered keytimes.
func findFrameBinary(keyframes []model.Keyframe, time float64) int {
	i := sort.Search(len(keyframes), func(i int) bool {
		return keyframes[i].Keytime > time
	})
	if i == len(keyframes) {
		return 0
	}
	return i
}

// Bracket returns the keyframe preceding frame and the interpolation fraction of time between the two.
// For frame 0 the previous keyframe is the last one and the first keyframe is treated as occurring
// one full loop later, at duration + keyframes[0].Keytime. A time before the first keyframe (possible
// when the first keytime is not zero) is likewise shifted one loop later so the segment stays continuous.
//
// The fraction is not clamped. A time that was not wrapped back into [0, duration] yields a value
// outside [0, 1].
//
// Parameters:
//   - track: the animation track (at least two keyframes)
//   - frame: the upper keyframe index as returned by FindFrame
//   - time: the playback time in seconds
//
// Returns:
//   - prev: the lower keyframe index
//   - t: the interpolation fraction
func Bracket(track *model.AnimationTrack, frame int, time float64) (prev int, t float64) {
	keys := track.Keyframes
	prev = frame - 1
	upper := keys[frame].Keytime
	if prev < 0 {
		prev = len(keys) - 1
		upper = track.Duration + keys[frame].Keytime
		// Times before the first keyframe belong to the previous loop's tail segment.
		if time < keys[prev].Keytime {
			time += track.Duration
		}
	}
	lower := keys[prev].Keytime
	return prev, (time - lower) / (upper - lower)
}

// ResolveKeyframes resolves the bounding keyframe pair and fraction for time with a linear scan.
// A single-keyframe track resolves to (0, 0, 0).
//
// Parameters:
//   - track: the animation track
//   - time: the playback time in seconds
//
// Returns:
//   - prev: the lower keyframe index
//   - frame: the upper keyframe index
//   - t: the interpolation fraction
func ResolveKeyframes(track *model.AnimationTrack, time float64) (prev, frame int, t float64) {
	mustBeSampleable(track)
	if len(track.Keyframes) == 1 {
		return 0, 0, 0
	}
	frame = FindFrame(track.Keyframes, time)
	prev, t = Bracket(track, frame, time)
	return prev, frame, t
}

// BlendPose blends two poses joint by joint into dst and returns it.
// Positions (the translation rows) are interpolated linearly; rotations are extracted as quaternions,
// interpolated along the shorter arc, and converted back to a pure rotation basis. Parent indices are
// taken from bind. dst is reused when it has enough capacity.
//
// Parameters:
//   - dst: destination buffer (may be nil)
//   - a: the pose at t == 0
//   - b: the pose at t == 1
//   - bind: the bind pose providing parent indices
//   - t: the interpolation fraction
//
// Returns:
//   - model.Pose: the blended pose
func BlendPose(dst, a, b, bind model.Pose, t float32) model.Pose {
	n := len(bind)
	if len(a) != n || len(b) != n {
		panic(fmt.Sprintf("animator: cannot blend poses of %d and %d joints against a %d joint bind pose", len(a), len(b), n))
	}
	dst = resize(dst, n)

	for i := 0; i < n; i++ {
		position := common.Lerp4(common.Translation(a[i].Transform), common.Translation(b[i].Transform), t)
		rotation := common.Slerp(common.QuatFromMatrix(a[i].Transform), common.QuatFromMatrix(b[i].Transform), t)
		dst[i] = model.Joint{
			Transform:   common.WithTranslation(common.MatrixFromQuat(rotation), position),
			ParentIndex: bind[i].ParentIndex,
		}
	}
	return dst
}

// SampleAt samples track at time without any playback state: the result is what an enabled
// Animator would output after its time accumulator reached time. Time is used as given; callers
// wrap it into [0, duration] first.
//
// Parameters:
//   - track: the animation track
//   - time: the playback time in seconds
//
// Returns:
//   - model.Pose: a newly allocated pose
func SampleAt(track *model.AnimationTrack, time float64) model.Pose {
	mustBeSampleable(track)
	if len(track.Keyframes) == 1 {
		return copyPose(nil, track.Keyframes[0].Pose)
	}
	prev, frame, t := ResolveKeyframes(track, time)
	return BlendPose(nil, track.Keyframes[prev].Pose, track.Keyframes[frame].Pose, track.BindPose, float32(t))
}

// mustBeSampleable panics when track violates a precondition the sampler cannot recover from.
func mustBeSampleable(track *model.AnimationTrack) {
	switch {
	case track == nil:
		panic("animator: nil track")
	case !(track.Duration > 0):
		panic(fmt.Sprintf("animator: track duration must be positive, got %v", track.Duration))
	case len(track.Keyframes) == 0:
		panic("animator: track has no keyframes")
	}
}

// copyPose copies src into dst, reusing dst when it has enough capacity.
func copyPose(dst, src model.Pose) model.Pose {
	dst = resize(dst, len(src))
	copy(dst, src)
	return dst
}

func resize(p model.Pose, n int) model.Pose {
	if cap(p) < n {
		return make(model.Pose, n)
	}
	return p[:n]
}
