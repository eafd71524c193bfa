package window

// WindowBuilderOption is a functional option for configuring a Window.
type WindowBuilderOption func(w *viewerWindow)

// WithTitle sets the title bar text.
//
// Parameters:
//   - title: the window title
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithTitle(title string) WindowBuilderOption {
	return func(w *viewerWindow) {
		w.title = title
	}
}

// WithWidth sets the requested window width in screen coordinates (default 1280).
//
// Parameters:
//   - width: the width
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithWidth(width int) WindowBuilderOption {
	return func(w *viewerWindow) {
		if width > 0 {
			w.width = width
		}
	}
}

// WithHeight sets the requested window height in screen coordinates (default 720).
//
// Parameters:
//   - height: the height
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithHeight(height int) WindowBuilderOption {
	return func(w *viewerWindow) {
		if height > 0 {
			w.height = height
		}
	}
}

// WithMinSize sets the smallest size the user can resize to (default 320x240).
func WithMinSize(width, height int) WindowBuilderOption {
	return func(w *viewerWindow) {
		w.minWidth, w.minHeight = width, height
	}
}

// WithMaxSize sets the largest size the user can resize to (default unbounded).
func WithMaxSize(width, height int) WindowBuilderOption {
	return func(w *viewerWindow) {
		w.maxWidth, w.maxHeight = width, height
	}
}

// WithVSync ties buffer swaps to the display refresh (default true).
//
// Parameters:
//   - vsync: true for a swap interval of 1, false for 0
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithVSync(vsync bool) WindowBuilderOption {
	return func(w *viewerWindow) {
		w.vsync = vsync
	}
}
