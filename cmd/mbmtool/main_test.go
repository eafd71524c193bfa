package main

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/Carmen-Shannon/oxy-anim/engine/loader"
	"github.com/Carmen-Shannon/oxy-anim/engine/model"

	"github.com/HugoSmits86/nativewebp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func genSample(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "arm.mbm")
	var out bytes.Buffer
	require.NoError(t, run(context.Background(), []string{"gen", "-o", path, "-keyframes", "4"}, &out))
	assert.Contains(t, out.String(), "3 joints, 4 keyframes")
	return path
}

func TestGenThenInspect(t *testing.T) {
	path := genSample(t)

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), []string{"inspect", "-dump", path}, &out))
	text := out.String()
	assert.Contains(t, text, "joints:    3")
	assert.Contains(t, text, "keyframes: 4")
	assert.Contains(t, text, "keytimes:  [0 0.5 1 1.5]")
	assert.Contains(t, text, "valid:     yes")
	assert.Contains(t, text, "AnimationTrack")
}

func TestInspectTextures(t *testing.T) {
	dir := t.TempDir()
	img := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	img.SetNRGBA(0, 0, color.NRGBA{R: 10, A: 0x80})
	f, err := os.Create(filepath.Join(dir, "skin.png"))
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())

	src := model.WaveModel("wave", 3, 4, 1)
	src.MaterialPaths = []string{"skin.png", "missing.png"}
	path := filepath.Join(dir, "wave.mbm")
	require.NoError(t, loader.NewLoader(loader.BackendTypeMBM).Save(path, src))

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), []string{"inspect", "-textures", path}, &out))
	text := out.String()
	assert.Contains(t, text, "textures:")
	assert.Contains(t, text, "[0] skin.png: png 3x2 alpha")
	assert.Contains(t, text, "[1] missing.png: open texture")
}

func TestBakeStill(t *testing.T) {
	path := genSample(t)
	output := filepath.Join(t.TempDir(), "still.webp")

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), []string{
		"bake", "-o", output, "-still", "0.5", "-width", "32", "-height", "24", path,
	}, &out))
	assert.Contains(t, out.String(), output)

	f, err := os.Open(output)
	require.NoError(t, err)
	defer f.Close()
	img, err := nativewebp.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 32, img.Bounds().Dx())
	assert.Equal(t, 24, img.Bounds().Dy())
}

func TestBakeAnimationCancelled(t *testing.T) {
	path := genSample(t)
	output := filepath.Join(t.TempDir(), "loop.webp")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := run(ctx, []string{"bake", "-o", output, "-width", "16", "-height", "16", path}, &bytes.Buffer{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.NoFileExists(t, output)
}

func TestCommandErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"no command", nil},
		{"unknown command", []string{"explode"}},
		{"inspect without file", []string{"inspect"}},
		{"inspect missing file", []string{"inspect", filepath.Join(t.TempDir(), "none.mbm")}},
		{"bad charset", []string{"inspect", "-charset", "ebcdic", "x.mbm"}},
		{"gen without keyframes", []string{"gen", "-o", filepath.Join(t.TempDir(), "x.mbm"), "-keyframes", "0"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, run(context.Background(), tt.args, &bytes.Buffer{}))
		})
	}
}
