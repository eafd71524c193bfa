package debug

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-anim/common"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGridLines(t *testing.T) {
	g := NewGrid()
	require.Equal(t, 42, g.LineCount())

	buf := NewLineBuffer(DefaultLineCapacity)
	assert.Zero(t, g.Emit(buf))
	assert.Equal(t, 84, buf.Len())

	v := buf.Vertices()
	assert.Equal(t, mgl32.Vec3{-10, 0, -10}, v[0].Position)
	assert.Equal(t, mgl32.Vec3{10, 0, -10}, v[1].Position)
	assert.Equal(t, mgl32.Vec3{10, 0, 10}, v[len(v)-1].Position)
	for _, vert := range v {
		assert.Zero(t, vert.Position.Y())
	}
}

func TestGridCustomSpacing(t *testing.T) {
	g := NewGrid(WithExtent(2), WithStep(0.5))
	assert.Equal(t, 18, g.LineCount())

	buf := NewLineBuffer(10)
	assert.Equal(t, 13, g.Emit(buf))
}

func TestGridHue(t *testing.T) {
	g := NewGrid()
	assert.Equal(t, mgl32.Vec4{0.65, 0, 0, 0.65}, g.Color())

	g.Update(5)
	assert.InDelta(t, 0.5, g.Hue(), 1e-6)
	assert.True(t, common.Near4(g.Color(), mgl32.Vec4{0, 0.65, 0.65, 0.65}, 1e-5))

	g.Update(6)
	assert.Zero(t, g.Hue(), "hue restarts once it passes a full turn")

	frozen := NewGrid(WithHueSpeed(0))
	frozen.Update(100)
	assert.Zero(t, frozen.Hue())
}
