package debug

import (
	"github.com/go-gl/mathgl/mgl32"
)

// DefaultLineCapacity is the default vertex capacity of a LineBuffer (two vertices per line).
const DefaultLineCapacity = 4096

// LineVertex is a single colored line endpoint, laid out for direct upload as a vertex buffer
// (3 floats position followed by 4 floats color).
type LineVertex struct {
	Position mgl32.Vec3
	Color    mgl32.Vec4
}

// lineBuffer is the implementation of the LineBuffer interface.
type lineBuffer struct {
	verts   []LineVertex
	dropped int
}

// LineBuffer is a fixed-capacity list of colored line segments rebuilt every frame.
// The backing array is allocated once; lines that do not fit are counted and discarded.
type LineBuffer interface {
	// AddLine appends one segment with a color per endpoint.
	//
	// Parameters:
	//   - a: the first endpoint
	//   - b: the second endpoint
	//   - colorA: the color at a
	//   - colorB: the color at b
	//
	// Returns:
	//   - bool: false if the buffer was full and the line was dropped
	AddLine(a, b mgl32.Vec3, colorA, colorB mgl32.Vec4) bool

	// AddSegment appends a resolved skeleton segment.
	//
	// Parameters:
	//   - s: the segment
	//
	// Returns:
	//   - bool: false if the buffer was full and the segment was dropped
	AddSegment(s Segment) bool

	// Clear empties the buffer and resets the dropped counter. Capacity is kept.
	Clear()

	// Vertices returns the vertices added since the last Clear. The slice aliases the buffer.
	//
	// Returns:
	//   - []LineVertex: two vertices per line
	Vertices() []LineVertex

	// Len returns the number of vertices in the buffer.
	//
	// Returns:
	//   - int: the vertex count
	Len() int

	// Cap returns the vertex capacity.
	//
	// Returns:
	//   - int: the capacity
	Cap() int

	// Dropped returns the number of lines discarded since the last Clear.
	//
	// Returns:
	//   - int: the dropped line count
	Dropped() int
}

var _ LineBuffer = &lineBuffer{}

// NewLineBuffer creates a LineBuffer holding capacity vertices. A capacity below 2 falls back
// to DefaultLineCapacity.
//
// Parameters:
//   - capacity: the vertex capacity
//
// Returns:
//   - LineBuffer: the empty buffer
func NewLineBuffer(capacity int) LineBuffer {
	if capacity < 2 {
		capacity = DefaultLineCapacity
	}
	return &lineBuffer{verts: make([]LineVertex, 0, capacity)}
}

func (b *lineBuffer) AddLine(a, c mgl32.Vec3, colorA, colorC mgl32.Vec4) bool {
	if len(b.verts)+2 > cap(b.verts) {
		b.dropped++
		return false
	}
	b.verts = append(b.verts, LineVertex{a, colorA}, LineVertex{c, colorC})
	return true
}

func (b *lineBuffer) AddSegment(s Segment) bool {
	return b.AddLine(s.From, s.To, s.Color, s.Color)
}

func (b *lineBuffer) Clear() {
	b.verts = b.verts[:0]
	b.dropped = 0
}

func (b *lineBuffer) Vertices() []LineVertex {
	return b.verts
}

func (b *lineBuffer) Len() int {
	return len(b.verts)
}

func (b *lineBuffer) Cap() int {
	return cap(b.verts)
}

func (b *lineBuffer) Dropped() int {
	return b.dropped
}
