package common

// Virtual key codes for cross-platform input handling.
// These values match GLFW key codes which use ASCII values for printable keys.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Key
const (
	KeyB     = 66  // B key (ASCII): step back one keyframe
	KeyN     = 78  // N key (ASCII): advance one keyframe
	KeyV     = 86  // V key (ASCII): toggle animation
	KeyR     = 82  // R key (ASCII): reset inspection to bind pose
	KeyG     = 71  // G key (ASCII): toggle floor grid
	KeyA     = 65  // A key (ASCII): orbit left
	KeyD     = 68  // D key (ASCII): orbit right
	KeyW     = 87  // W key (ASCII): orbit up
	KeyS     = 83  // S key (ASCII): orbit down
	KeySpace = 32  // Spacebar (ASCII)
	KeyEsc   = 256 // Escape key (GLFW)
)
