package debug

import (
	"github.com/Carmen-Shannon/oxy-anim/common"
	"github.com/Carmen-Shannon/oxy-anim/engine/model"

	"github.com/go-gl/mathgl/mgl32"
)

// DefaultAxisLength is the length of the basis axis segments drawn at each joint.
const DefaultAxisLength float32 = 0.25

// SegmentKind identifies what a Segment visualizes.
type SegmentKind uint8

const (
	SegmentAxisX SegmentKind = iota
	SegmentAxisY
	SegmentAxisZ
	SegmentParent
)

// String returns a short name for the kind.
func (k SegmentKind) String() string {
	switch k {
	case SegmentAxisX:
		return "x"
	case SegmentAxisY:
		return "y"
	case SegmentAxisZ:
		return "z"
	case SegmentParent:
		return "parent"
	default:
		return "unknown"
	}
}

// Segment is one drawable line of a skeleton wireframe.
type Segment struct {
	// Joint is the index of the joint the segment belongs to.
	Joint int
	Kind  SegmentKind
	From  mgl32.Vec3
	To    mgl32.Vec3
	Color mgl32.Vec4
}

// resolver is the implementation of the Resolver interface.
type resolver struct {
	axisLength  float32
	axisColors  [3]mgl32.Vec4
	parentColor mgl32.Vec4
}

// Resolver turns a pose into skeleton wireframe segments: three basis axes per joint and a link
// from every non-root joint to its parent. Resolving never modifies the pose.
type Resolver interface {
	// Resolve appends the segments of pose to dst.
	//
	// Parameters:
	//   - pose: the bind pose or a sampled pose
	//   - dst: the slice to append to (may be nil)
	//
	// Returns:
	//   - []Segment: dst extended by 3 segments per joint plus 1 per non-root joint
	Resolve(pose model.Pose, dst []Segment) []Segment

	// Emit writes the segments of pose into buf, offset by origin.
	//
	// Parameters:
	//   - pose: the pose to draw
	//   - origin: a world offset added to every point
	//   - buf: the destination line buffer
	//
	// Returns:
	//   - int: the number of segments that did not fit
	Emit(pose model.Pose, origin mgl32.Vec3, buf LineBuffer) int

	// AxisLength returns the basis axis segment length.
	//
	// Returns:
	//   - float32: the length
	AxisLength() float32
}

var _ Resolver = &resolver{}

// NewResolver creates a Resolver with the default axis length and the red/green/blue/white palette,
// then applies the options.
//
// Parameters:
//   - options: functional options to configure the resolver
//
// Returns:
//   - Resolver: the resolver
func NewResolver(options ...ResolverBuilderOption) Resolver {
	r := &resolver{
		axisLength:  DefaultAxisLength,
		axisColors:  [3]mgl32.Vec4{common.ColorRed, common.ColorGreen, common.ColorBlue},
		parentColor: common.ColorWhite,
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

func (r *resolver) AxisLength() float32 {
	return r.axisLength
}

func (r *resolver) Resolve(pose model.Pose, dst []Segment) []Segment {
	r.walk(pose, func(s Segment) {
		dst = append(dst, s)
	})
	return dst
}

func (r *resolver) Emit(pose model.Pose, origin mgl32.Vec3, buf LineBuffer) int {
	dropped := 0
	r.walk(pose, func(s Segment) {
		s.From = s.From.Add(origin)
		s.To = s.To.Add(origin)
		if !buf.AddSegment(s) {
			dropped++
		}
	})
	return dropped
}

// walk visits every segment of pose in joint order: X, Y, Z, then the parent link.
func (r *resolver) walk(pose model.Pose, visit func(Segment)) {
	for i := range pose {
		m := pose[i].Transform
		pos := common.Translation(m).Vec3()

		for axis := 0; axis < 3; axis++ {
			visit(Segment{
				Joint: i,
				Kind:  SegmentAxisX + SegmentKind(axis),
				From:  pos,
				To:    pos.Add(common.Axis(m, axis).Mul(r.axisLength)),
				Color: r.axisColors[axis],
			})
		}

		if p := pose[i].ParentIndex; p != model.RootParent {
			visit(Segment{
				Joint: i,
				Kind:  SegmentParent,
				From:  pos,
				To:    common.Translation(pose[p].Transform).Vec3(),
				Color: r.parentColor,
			})
		}
	}
}

// BuildLines resolves pose with the default palette and the given axis length.
//
// Parameters:
//   - pose: the pose to draw
//   - axisLength: the basis axis segment length
//
// Returns:
//   - []Segment: the segments
func BuildLines(pose model.Pose, axisLength float32) []Segment {
	return NewResolver(WithAxisLength(axisLength)).Resolve(pose, make([]Segment, 0, SegmentCount(pose)))
}

// SegmentCount returns how many segments Resolve produces for pose.
func SegmentCount(pose model.Pose) int {
	n := 3 * len(pose)
	for _, j := range pose {
		if j.ParentIndex != model.RootParent {
			n++
		}
	}
	return n
}
