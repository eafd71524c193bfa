package animator

import (
	"github.com/Carmen-Shannon/oxy-anim/engine/model"
)

// KeyframeSearchType identifies the strategy an Animator uses to locate the upper keyframe each tick.
// All strategies resolve to the same keyframe; they differ only in cost.
type KeyframeSearchType int

const (
	// SearchLinear scans from the first keyframe every tick.
	SearchLinear KeyframeSearchType = iota

	// SearchBinary binary-searches the ordered keytimes.
	SearchBinary

	// SearchCached starts from the previous tick's result and only falls back to a binary search
	// when playback jumped.
	SearchCached
)

// String returns the configuration name of the search type.
func (s KeyframeSearchType) String() string {
	switch s {
	case SearchBinary:
		return "binary"
	case SearchCached:
		return "cached"
	default:
		return "linear"
	}
}

// ParseKeyframeSearch maps a configuration name to a KeyframeSearchType. Unknown names map to SearchLinear.
//
// Parameters:
//   - name: "linear", "binary" or "cached"
//
// Returns:
//   - KeyframeSearchType: the search type
func ParseKeyframeSearch(name string) KeyframeSearchType {
	switch name {
	case "binary":
		return SearchBinary
	case "cached":
		return SearchCached
	default:
		return SearchLinear
	}
}

// keyframeResolver finds the upper keyframe for a playback time.
type keyframeResolver interface {
	// Resolve returns the index of the first keyframe whose keytime exceeds time, or 0 if none does.
	Resolve(keyframes []model.Keyframe, time float64) int

	// Reset drops any cached state (called when the track changes).
	Reset()
}

func newKeyframeResolver(searchType KeyframeSearchType) keyframeResolver {
	switch searchType {
	case SearchBinary:
		return binaryResolver{}
	case SearchCached:
		return &cachedResolver{}
	default:
		return linearResolver{}
	}
}

type linearResolver struct{}

func (linearResolver) Resolve(keyframes []model.Keyframe, time float64) int {
	return FindFrame(keyframes, time)
}

func (linearResolver) Reset() {}

type binaryResolver struct{}

func (binaryResolver) Resolve(keyframes []model.Keyframe, time float64) int {
	return findFrameBinary(keyframes, time)
}

func (binaryResolver) Reset() {}

// cachedResolver remembers the last resolved frame. Playback normally stays in the same segment or
// moves to the next one, so both are checked before searching.
type cachedResolver struct {
	last int
}

func (c *cachedResolver) Resolve(keyframes []model.Keyframe, time float64) int {
	n := len(keyframes)
	if c.last >= n {
		c.last = 0
	}
	for _, f := range [2]int{c.last, (c.last + 1) % n} {
		if isUpperFrame(keyframes, f, time) {
			c.last = f
			return f
		}
	}
	c.last = findFrameBinary(keyframes, time)
	return c.last
}

func (c *cachedResolver) Reset() {
	c.last = 0
}

// isUpperFrame reports whether f is the first keyframe with keytime > time (or 0 when none is).
func isUpperFrame(keyframes []model.Keyframe, f int, time float64) bool {
	if f == 0 {
		return keyframes[0].Keytime > time || keyframes[len(keyframes)-1].Keytime <= time
	}
	return keyframes[f-1].Keytime <= time && keyframes[f].Keytime > time
}
