package debug

// GridBuilderOption is a functional option for configuring a Grid.
type GridBuilderOption func(*grid)

// WithExtent sets the half-size of the grid. Non-positive values keep the default.
//
// Parameters:
//   - extent: the grid spans [-extent, extent] on X and Z
//
// Returns:
//   - GridBuilderOption: a function that applies the extent option to a grid
func WithExtent(extent float32) GridBuilderOption {
	return func(g *grid) {
		if extent > 0 {
			g.extent = extent
		}
	}
}

// WithStep sets the spacing between grid lines. Non-positive values keep the default.
//
// Parameters:
//   - step: the line spacing
//
// Returns:
//   - GridBuilderOption: a function that applies the step option to a grid
func WithStep(step float32) GridBuilderOption {
	return func(g *grid) {
		if step > 0 {
			g.step = step
		}
	}
}

// WithHueSpeed sets how many hue turns the grid color advances per second.
//
// Parameters:
//   - speed: turns per second (0 freezes the color)
//
// Returns:
//   - GridBuilderOption: a function that applies the hue speed option to a grid
func WithHueSpeed(speed float32) GridBuilderOption {
	return func(g *grid) {
		g.hueSpeed = max(speed, 0)
	}
}
