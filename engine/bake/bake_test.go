package bake

import (
	"bytes"
	"context"
	"testing"

	"github.com/Carmen-Shannon/oxy-anim/engine/model"
	"github.com/Carmen-Shannon/oxy-anim/engine/renderer"

	"github.com/HugoSmits86/nativewebp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBaker(options ...BakerBuilderOption) Baker {
	options = append([]BakerBuilderOption{
		WithSize(48, 32),
		WithSupersample(renderer.SupersampleOff),
		WithFPS(10),
		WithWorkers(3),
	}, options...)
	return NewBaker(options...)
}

func TestFrameCount(t *testing.T) {
	b := newTestBaker()
	tests := []struct {
		name     string
		duration float64
		want     int
	}{
		{"whole", 1, 10},
		{"fraction rounds up", 1.01, 11},
		{"short", 0.01, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, b.FrameCount(&model.AnimationTrack{Duration: tt.duration}))
		})
	}
	assert.Equal(t, uint(100), b.FrameDuration())
	assert.Equal(t, uint(33), NewBaker().FrameDuration())
}

func TestBakeMatchesSequentialFrames(t *testing.T) {
	m := model.FromImported(model.WaveModel("wave", 3, 5, 0.8))
	b := newTestBaker()

	frames, err := b.Bake(context.Background(), m)
	require.NoError(t, err)
	require.Len(t, frames, 8)

	for i, f := range frames {
		require.NotNil(t, f, "frame %d", i)
		assert.Equal(t, b.Frame(m, float64(i)/10, true).Pix, f.Pix, "frame %d", i)
	}
	assert.NotEqual(t, frames[0].Pix, frames[3].Pix, "the skeleton moves between frames")
}

func TestBakeRequiresTrack(t *testing.T) {
	_, err := newTestBaker().Bake(context.Background(), model.NewModel(model.WithName("static")))
	assert.ErrorContains(t, err, "no animation track")
}

func TestBakeCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := newTestBaker().Bake(ctx, model.FromImported(model.WaveModel("wave", 2, 4, 1)))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFrameBindPose(t *testing.T) {
	m := model.FromImported(model.WaveModel("wave", 3, 5, 1))
	b := newTestBaker(WithGrid(false))

	bind := b.Frame(m, 0.35, false)
	assert.Equal(t, bind.Pix, b.Frame(m, 0.7, false).Pix, "the bind pose ignores time")
	assert.NotEqual(t, bind.Pix, b.Frame(m, 0.35, true).Pix)
}

func TestEncodeStill(t *testing.T) {
	m := model.FromImported(model.WaveModel("wave", 3, 5, 1))
	b := newTestBaker()

	var buf bytes.Buffer
	require.NoError(t, b.EncodeStill(&buf, m, 0.25, true))

	img, err := nativewebp.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 48, img.Bounds().Dx())
	assert.Equal(t, 32, img.Bounds().Dy())
}

func TestEncodeAnimation(t *testing.T) {
	m := model.FromImported(model.WaveModel("wave", 3, 5, 0.5))
	b := newTestBaker()

	var buf bytes.Buffer
	require.NoError(t, b.EncodeAnimation(context.Background(), &buf, m))

	data := buf.Bytes()
	require.Greater(t, len(data), 12)
	assert.Equal(t, "RIFF", string(data[0:4]))
	assert.Equal(t, "WEBP", string(data[8:12]))
	assert.Equal(t, 1, bytes.Count(data, []byte("ANIM")))
	assert.Equal(t, 5, bytes.Count(data, []byte("ANMF")))
}
