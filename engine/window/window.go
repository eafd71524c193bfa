package window

import (
	"fmt"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// InputHandler receives window input. Every callback runs on the window's event thread
// (the thread that called NewWindow); nil callbacks are skipped.
type InputHandler struct {
	// KeyDown receives the GLFW key code on press and repeat.
	KeyDown func(keyCode uint32)

	// KeyUp receives the GLFW key code on release.
	KeyUp func(keyCode uint32)

	// Scroll receives the vertical wheel offset (positive = away from the user).
	Scroll func(delta float32)

	// Drag receives the cursor movement in pixels while the middle mouse button is held.
	Drag func(dx, dy float32)

	// Resize receives the new framebuffer size in pixels.
	Resize func(width, height int)
}

// Window is the viewer's on-screen surface: a GLFW window owning an OpenGL 4.1 core context.
//
// The window is created on the calling goroutine, which it locks to its OS thread; ProcessMessages
// and Close must be called there too. The GL context may be handed to another thread with
// DetachContext / MakeContextCurrent.
type Window interface {
	// SetInputHandler replaces the input callbacks.
	//
	// Parameters:
	//   - h: the callbacks
	SetInputHandler(h InputHandler)

	// SetUpdateCallback sets the function called after each event poll.
	//
	// Parameters:
	//   - callback: function to call (or nil to disable)
	SetUpdateCallback(callback func())

	// MakeContextCurrent binds the window's OpenGL context to the calling OS thread.
	MakeContextCurrent()

	// DetachContext releases the OpenGL context from the calling OS thread.
	DetachContext()

	// SwapBuffers presents the back buffer. Requires the context to be current.
	SwapBuffers()

	// SetTitle changes the title bar text.
	//
	// Parameters:
	//   - title: the new title
	SetTitle(title string)

	// IsRunning reports whether the window is still open.
	//
	// Returns:
	//   - bool: false once the window was closed by the user, Escape or Close
	IsRunning() bool

	// Close destroys the window and terminates GLFW.
	//
	// Returns:
	//   - error: an error if the window was already closed
	Close() error

	// ProcessMessages polls events until the window closes, calling the update callback after each poll.
	ProcessMessages()

	// Width returns the framebuffer width in pixels.
	Width() int

	// Height returns the framebuffer height in pixels.
	Height() int
}

type viewerWindow struct {
	title string
	vsync bool

	width, height       int
	minWidth, minHeight int
	maxWidth, maxHeight int

	handle *glfw.Window
	closed bool

	input    InputHandler
	onUpdate func()

	// middle-button drag state
	dragging     bool
	lastX, lastY float64
}

var _ Window = &viewerWindow{}

// NewWindow creates and shows a window with the given options.
// NewWindow panics if GLFW or the OpenGL context cannot be initialized.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Window: the open window, with its GL context current on the calling thread
func NewWindow(options ...WindowBuilderOption) Window {
	w := &viewerWindow{
		title:     "mbm viewer",
		vsync:     true,
		width:     1280,
		height:    720,
		minWidth:  320,
		minHeight: 240,
		maxWidth:  glfw.DontCare,
		maxHeight: glfw.DontCare,
	}
	for _, opt := range options {
		opt(w)
	}

	runtime.LockOSThread()
	if err := w.open(); err != nil {
		panic(fmt.Sprintf("failed to create window: %v", err))
	}
	return w
}

func (w *viewerWindow) SetInputHandler(h InputHandler) {
	w.input = h
}

func (w *viewerWindow) SetUpdateCallback(callback func()) {
	w.onUpdate = callback
}

func (w *viewerWindow) SetTitle(title string) {
	w.title = title
	if w.handle != nil {
		w.handle.SetTitle(title)
	}
}

func (w *viewerWindow) IsRunning() bool {
	return w.handle != nil && !w.closed && !w.handle.ShouldClose()
}

func (w *viewerWindow) ProcessMessages() {
	for w.IsRunning() {
		glfw.PollEvents()
		if w.onUpdate != nil {
			w.onUpdate()
		}
		runtime.Gosched()
	}
}

func (w *viewerWindow) Width() int {
	return w.width
}

func (w *viewerWindow) Height() int {
	return w.height
}
