package debug

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-anim/common"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestLineBufferCapacity(t *testing.T) {
	buf := NewLineBuffer(4)
	assert.Equal(t, 4, buf.Cap())

	assert.True(t, buf.AddLine(mgl32.Vec3{}, mgl32.Vec3{1, 0, 0}, common.ColorRed, common.ColorBlue))
	assert.True(t, buf.AddLine(mgl32.Vec3{}, mgl32.Vec3{0, 1, 0}, common.ColorGreen, common.ColorGreen))
	assert.False(t, buf.AddLine(mgl32.Vec3{}, mgl32.Vec3{0, 0, 1}, common.ColorBlue, common.ColorBlue))

	assert.Equal(t, 4, buf.Len())
	assert.Equal(t, 1, buf.Dropped())
	assert.Equal(t, common.ColorBlue, buf.Vertices()[1].Color)

	before := &buf.Vertices()[:1][0]
	buf.Clear()
	assert.Zero(t, buf.Len())
	assert.Zero(t, buf.Dropped())
	assert.Equal(t, 4, buf.Cap())

	buf.AddLine(mgl32.Vec3{}, mgl32.Vec3{1, 1, 1}, common.ColorWhite, common.ColorWhite)
	assert.Same(t, before, &buf.Vertices()[0], "Clear keeps the backing array")
}

func TestLineBufferDefaultCapacity(t *testing.T) {
	assert.Equal(t, DefaultLineCapacity, NewLineBuffer(0).Cap())
	assert.Equal(t, DefaultLineCapacity, NewLineBuffer(1).Cap())
}
