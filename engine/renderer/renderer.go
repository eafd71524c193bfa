package renderer

import (
	"image"
	"sync"

	"github.com/Carmen-Shannon/oxy-anim/engine/debug"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
)

var errFrameOpen = errors.New("renderer: frame already open")

const (
	defaultWidth  = 1280
	defaultHeight = 720
)

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	backendType RendererBackendType
	backend     RendererBackend

	width       int
	height      int
	clearColor  mgl32.Vec4
	supersample Supersample
	lineWidth   float32

	frames    uint64
	lineVerts uint64
	inFrame   bool
}

// Renderer draws colored line lists for the debug viewer.
//
// A frame is BeginFrame, any number of DrawLines calls, then EndFrame. The renderer holds no scene
// state of its own: callers pass the view-projection and the vertex pairs each frame, usually straight
// out of a debug.LineBuffer.
type Renderer interface {
	// BeginFrame clears the render target and opens a new frame.
	//
	// Returns:
	//   - error: an error if a frame is already open or the backend cannot begin
	BeginFrame() error

	// DrawLines draws vertices as a line list: vertex 2i and 2i+1 form one segment. A trailing odd vertex is ignored.
	// Segments are clipped to the view volume; nothing behind the camera is drawn.
	//
	// Parameters:
	//   - viewProj: the combined view-projection matrix (column-vector form)
	//   - vertices: the line vertices
	DrawLines(viewProj mgl32.Mat4, vertices []debug.LineVertex)

	// EndFrame closes the frame opened by BeginFrame.
	EndFrame()

	// Resize changes the render target size. Non-positive sizes are ignored.
	//
	// Parameters:
	//   - width: the new width in pixels
	//   - height: the new height in pixels
	Resize(width, height int)

	// Size returns the render target size in pixels.
	//
	// Returns:
	//   - int: the width
	//   - int: the height
	Size() (int, int)

	// Aspect returns width / height of the render target.
	Aspect() float32

	// SetClearColor sets the background color used by BeginFrame.
	//
	// Parameters:
	//   - color: RGBA in [0, 1]
	SetClearColor(color mgl32.Vec4)

	// Snapshot returns a copy of the last finished frame.
	//
	// Returns:
	//   - image.Image: an *image.RGBA of the render target size
	Snapshot() image.Image

	// Stats returns the number of finished frames and the total line vertices submitted.
	Stats() (frames uint64, vertices uint64)

	// Backend returns the backend type in use.
	Backend() RendererBackendType

	// Release frees the backend's resources. The renderer must not be used afterwards.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer creates a new Renderer with the specified backend type.
// BackendTypeGL must be created on the goroutine that owns the window's current GL context and panics
// if OpenGL cannot be initialized, like window creation does.
//
// Parameters:
//   - backendType: the backend to use
//   - options: variadic list of RendererBuilderOption functions to configure the Renderer
//
// Returns:
//   - Renderer: the configured renderer
func NewRenderer(backendType RendererBackendType, options ...RendererBuilderOption) Renderer {
	r := &renderer{
		mu:          &sync.Mutex{},
		backendType: backendType,
		width:       defaultWidth,
		height:      defaultHeight,
		clearColor:  mgl32.Vec4{0.08, 0.08, 0.1, 1},
		supersample: SupersampleOff,
		lineWidth:   1,
	}

	for _, opt := range options {
		opt(r)
	}

	switch backendType {
	case BackendTypeGL:
		backend, err := newGLRendererBackend(r.width, r.height, r.lineWidth)
		if err != nil {
			panic(err)
		}
		r.backend = backend
	case BackendTypeSoftware:
		fallthrough
	default:
		r.backend = newSoftwareRendererBackend(r.width, r.height, r.supersample, r.lineWidth)
	}

	r.backend.SetClearColor(r.clearColor)
	return r
}

func (r *renderer) BeginFrame() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.inFrame {
		return errFrameOpen
	}
	if err := r.backend.BeginFrame(); err != nil {
		return err
	}
	r.inFrame = true
	return nil
}

func (r *renderer) DrawLines(viewProj mgl32.Mat4, vertices []debug.LineVertex) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.inFrame || len(vertices) < 2 {
		return
	}
	r.backend.DrawLines(viewProj, vertices[:len(vertices)&^1])
	r.lineVerts += uint64(len(vertices) &^ 1)
}

func (r *renderer) EndFrame() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.inFrame {
		return
	}
	r.backend.EndFrame()
	r.inFrame = false
	r.frames++
}

func (r *renderer) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.width, r.height = width, height
	r.backend.Resize(width, height)
}

func (r *renderer) Size() (int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.width, r.height
}

func (r *renderer) Aspect() float32 {
	w, h := r.Size()
	return float32(w) / float32(h)
}

func (r *renderer) SetClearColor(color mgl32.Vec4) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clearColor = color
	r.backend.SetClearColor(color)
}

func (r *renderer) Snapshot() image.Image {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.backend.Snapshot()
}

func (r *renderer) Stats() (uint64, uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frames, r.lineVerts
}

func (r *renderer) Backend() RendererBackendType {
	return r.backendType
}

func (r *renderer) Release() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.backend.Release()
}
