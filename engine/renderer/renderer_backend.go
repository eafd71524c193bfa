package renderer

import (
	"image"

	"github.com/Carmen-Shannon/oxy-anim/engine/debug"

	"github.com/go-gl/mathgl/mgl32"
)

// RendererBackendType identifies the backend implementation used by the Renderer.
type RendererBackendType int

const (
	// BackendTypeSoftware rasterizes lines on the CPU into an in-memory image. It needs no window or GPU
	// and is what snapshots, bakes and tests use.
	BackendTypeSoftware RendererBackendType = iota

	// BackendTypeGL draws through OpenGL 4.1 core. The window's GL context must be current on the calling goroutine.
	BackendTypeGL
)

// String returns the backend name.
func (t RendererBackendType) String() string {
	switch t {
	case BackendTypeSoftware:
		return "software"
	case BackendTypeGL:
		return "gl"
	default:
		return "unknown"
	}
}

// Supersample is the per-axis sample multiplier of the software backend. Frames are rasterized at
// Supersample times the output size and filtered down in EndFrame.
type Supersample int

const (
	// SupersampleOff rasterizes at the output size.
	SupersampleOff Supersample = 1

	// Supersample2x rasterizes at twice the output size per axis.
	Supersample2x Supersample = 2

	// Supersample4x rasterizes at four times the output size per axis.
	Supersample4x Supersample = 4
)

// RendererBackend is the backend interface for the Renderer.
// Every method is called from the single goroutine that owns the renderer.
type RendererBackend interface {
	// BeginFrame clears the target to the clear color.
	BeginFrame() error

	// DrawLines draws vertex pairs as line segments transformed by viewProj.
	DrawLines(viewProj mgl32.Mat4, vertices []debug.LineVertex)

	// EndFrame finishes the frame so Snapshot sees it.
	EndFrame()

	// Resize changes the output size in pixels.
	Resize(width, height int)

	// SetClearColor sets the color BeginFrame clears to.
	SetClearColor(color mgl32.Vec4)

	// Snapshot copies the last finished frame.
	Snapshot() *image.RGBA

	// Release frees backend resources.
	Release()
}
