package window

import (
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/pkg/errors"
)

// open initializes GLFW, creates the window with a 4.1 core context and installs the callbacks.
//
// GLFW reference: https://www.glfw.org/docs/latest/window_guide.html
func (w *viewerWindow) open() error {
	if err := glfw.Init(); err != nil {
		return errors.Wrap(err, "window: init GLFW")
	}

	// 4.1 core is the newest profile macOS offers.
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Samples, 4)

	win, err := glfw.CreateWindow(w.width, w.height, w.title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return errors.Wrap(err, "window: create")
	}
	w.handle = win

	win.SetSizeLimits(w.minWidth, w.minHeight, w.maxWidth, w.maxHeight)
	win.MakeContextCurrent()
	if w.vsync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	win.SetKeyCallback(w.onKey)
	win.SetScrollCallback(func(_ *glfw.Window, _, yoff float64) {
		if w.input.Scroll != nil {
			w.input.Scroll(float32(yoff))
		}
	})
	win.SetMouseButtonCallback(w.onMouseButton)
	win.SetCursorPosCallback(w.onCursor)

	// Framebuffer size, not window size: they differ on high-DPI displays and the renderer needs pixels.
	win.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		w.width, w.height = width, height
		if w.input.Resize != nil {
			w.input.Resize(width, height)
		}
	})
	w.width, w.height = win.GetFramebufferSize()
	return nil
}

func (w *viewerWindow) onKey(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
	if key == glfw.KeyEscape && action == glfw.Press {
		w.handle.SetShouldClose(true)
		return
	}
	switch action {
	case glfw.Press, glfw.Repeat:
		if w.input.KeyDown != nil {
			w.input.KeyDown(uint32(key))
		}
	case glfw.Release:
		if w.input.KeyUp != nil {
			w.input.KeyUp(uint32(key))
		}
	}
}

func (w *viewerWindow) onMouseButton(win *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
	if button != glfw.MouseButtonMiddle {
		return
	}
	switch action {
	case glfw.Press:
		w.dragging = true
		w.lastX, w.lastY = win.GetCursorPos()
	case glfw.Release:
		w.dragging = false
	}
}

func (w *viewerWindow) onCursor(_ *glfw.Window, x, y float64) {
	if !w.dragging {
		return
	}
	dx, dy := x-w.lastX, y-w.lastY
	w.lastX, w.lastY = x, y
	if w.input.Drag != nil && (dx != 0 || dy != 0) {
		w.input.Drag(float32(dx), float32(dy))
	}
}

func (w *viewerWindow) MakeContextCurrent() {
	if w.handle != nil {
		w.handle.MakeContextCurrent()
	}
}

func (w *viewerWindow) DetachContext() {
	glfw.DetachCurrentContext()
}

func (w *viewerWindow) SwapBuffers() {
	if w.handle != nil {
		w.handle.SwapBuffers()
	}
}

func (w *viewerWindow) Close() error {
	if w.handle == nil || w.closed {
		return errors.New("window: already closed")
	}
	w.closed = true
	w.handle.Destroy()
	glfw.Terminate()
	return nil
}
