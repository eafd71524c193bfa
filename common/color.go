package common

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Debug palette in linear RGBA.
var (
	ColorRed     = mgl32.Vec4{1, 0, 0, 1}
	ColorGreen   = mgl32.Vec4{0, 1, 0, 1}
	ColorBlue    = mgl32.Vec4{0, 0, 1, 1}
	ColorYellow  = mgl32.Vec4{1, 1, 0, 1}
	ColorCyan    = mgl32.Vec4{0, 1, 1, 1}
	ColorMagenta = mgl32.Vec4{1, 0, 1, 1}
	ColorWhite   = mgl32.Vec4{1, 1, 1, 1}
	ColorBlack   = mgl32.Vec4{0, 0, 0, 1}
	ColorGray    = mgl32.Vec4{0.5, 0.5, 0.5, 1}
)

// HSVToRGB converts a hue/saturation/value triple to an opaque RGBA color.
// Hue is expressed in turns: 0 and 1 are both red. Values outside [0, 1) wrap.
//
// Parameters:
//   - h: hue in turns
//   - s: saturation in [0, 1]
//   - v: value in [0, 1]
//
// Returns:
//   - mgl32.Vec4: the color with alpha 1
func HSVToRGB(h, s, v float32) mgl32.Vec4 {
	h = h - float32(math.Floor(float64(h)))
	sector := h * 6
	i := int(sector) % 6
	f := sector - float32(math.Floor(float64(sector)))

	p := v * (1 - s)
	q := v * (1 - s*f)
	t := v * (1 - s*(1-f))

	switch i {
	case 0:
		return mgl32.Vec4{v, t, p, 1}
	case 1:
		return mgl32.Vec4{q, v, p, 1}
	case 2:
		return mgl32.Vec4{p, v, t, 1}
	case 3:
		return mgl32.Vec4{p, q, v, 1}
	case 4:
		return mgl32.Vec4{t, p, v, 1}
	default:
		return mgl32.Vec4{v, p, q, 1}
	}
}
