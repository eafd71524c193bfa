package debug

import (
	"math"

	"github.com/Carmen-Shannon/oxy-anim/common"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	DefaultGridExtent   float32 = 10
	DefaultGridStep     float32 = 1
	DefaultGridHueSpeed float32 = 0.1

	gridBrightness float32 = 0.65
)

// grid is the implementation of the Grid interface.
type grid struct {
	extent   float32
	step     float32
	hueSpeed float32
	hue      float32
}

// Grid is a floor grid on the XZ plane whose color cycles through the hue wheel over time.
type Grid interface {
	// Update advances the hue by deltaTime * hue speed, restarting at red once it passes a full turn.
	//
	// Parameters:
	//   - deltaTime: elapsed time in seconds
	Update(deltaTime float64)

	// Color returns the current grid color.
	//
	// Returns:
	//   - mgl32.Vec4: the color
	Color() mgl32.Vec4

	// Hue returns the current hue in turns.
	//
	// Returns:
	//   - float32: the hue in [0, 1]
	Hue() float32

	// Emit writes the grid lines into buf.
	//
	// Parameters:
	//   - buf: the destination line buffer
	//
	// Returns:
	//   - int: the number of lines that did not fit
	Emit(buf LineBuffer) int

	// LineCount returns the number of lines Emit writes.
	//
	// Returns:
	//   - int: the line count
	LineCount() int
}

var _ Grid = &grid{}

// NewGrid creates a Grid spanning [-10, 10] at unit spacing with the given options applied.
//
// Parameters:
//   - options: functional options to configure the grid
//
// Returns:
//   - Grid: the grid
func NewGrid(options ...GridBuilderOption) Grid {
	g := &grid{
		extent:   DefaultGridExtent,
		step:     DefaultGridStep,
		hueSpeed: DefaultGridHueSpeed,
	}
	for _, opt := range options {
		opt(g)
	}
	return g
}

func (g *grid) Update(deltaTime float64) {
	g.hue += float32(deltaTime) * g.hueSpeed
	if g.hue > 1 {
		g.hue = 0
	}
}

func (g *grid) Hue() float32 {
	return g.hue
}

func (g *grid) Color() mgl32.Vec4 {
	return common.HSVToRGB(g.hue, 1, 1).Mul(gridBrightness)
}

// half returns the number of grid lines on each side of the origin.
func (g *grid) half() int {
	return int(math.Floor(float64(g.extent/g.step) + 1e-4))
}

func (g *grid) LineCount() int {
	return 2 * (2*g.half() + 1)
}

func (g *grid) Emit(buf LineBuffer) int {
	c := g.Color()
	n := g.half()
	e := g.extent
	dropped := 0
	for i := -n; i <= n; i++ {
		v := float32(i) * g.step
		if !buf.AddLine(mgl32.Vec3{-e, 0, v}, mgl32.Vec3{e, 0, v}, c, c) {
			dropped++
		}
		if !buf.AddLine(mgl32.Vec3{v, 0, -e}, mgl32.Vec3{v, 0, e}, c, c) {
			dropped++
		}
	}
	return dropped
}
