package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Carmen-Shannon/oxy-anim/engine/animator"
	"github.com/Carmen-Shannon/oxy-anim/engine/bake"
	"github.com/Carmen-Shannon/oxy-anim/engine/camera"
	"github.com/Carmen-Shannon/oxy-anim/engine/model"
	"github.com/Carmen-Shannon/oxy-anim/engine/scene"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

func TestLoadFile(t *testing.T) {
	cfg, err := Load(filepath.Join("testdata", "viewer.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "arm rig", cfg.Window.Title)
	assert.Equal(t, 800, cfg.Window.Width)
	assert.True(t, cfg.Window.Profiling)
	assert.False(t, cfg.Playback.EnabledAtStart)
	assert.Equal(t, "freeze", cfg.Playback.PausePolicy)
	assert.Equal(t, animator.SearchBinary, cfg.KeyframeSearch())
	assert.Equal(t, 20.0, cfg.Bake.FPS)

	// untouched keys keep their defaults
	d := Default()
	assert.Equal(t, d.Window.TickRate, cfg.Window.TickRate)
	assert.Equal(t, d.Playback.WrapPolicy, cfg.Playback.WrapPolicy)
	assert.Equal(t, d.Server, cfg.Server)
	assert.Equal(t, d.Debug.GridExtent, cfg.Debug.GridExtent)

	cm, err := cfg.Charmap()
	require.NoError(t, err)
	assert.Equal(t, charmap.CodePage437, cm)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParseEmptyIsDefault(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"unknown key", "window:\n  colour: red\n"},
		{"bad pause policy", "playback:\n  pause_policy: rewind\n"},
		{"bad wrap policy", "playback:\n  wrap_policy: bounce\n"},
		{"bad search", "playback:\n  search: guess\n"},
		{"bad supersample", "bake:\n  supersample: 3\n"},
		{"bad charset", "encoding:\n  charset: ebcdic\n"},
		{"malformed", "window: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestResolve(t *testing.T) {
	cfg := Config{Server: ServerConfig{Addr: ":9000"}}
	cfg.Resolve(Flags{Width: 640, FPS: 12, Output: "arm.webp", Profiling: true})

	assert.Equal(t, 640, cfg.Window.Width)
	assert.Equal(t, 640, cfg.Bake.Width)
	assert.Equal(t, 12.0, cfg.Bake.FPS)
	assert.Equal(t, "arm.webp", cfg.Bake.Output)
	assert.True(t, cfg.Window.Profiling)
	assert.Equal(t, ":9000", cfg.Server.Addr, "file value kept without a flag")

	d := Default()
	assert.Equal(t, d.Window.Height, cfg.Window.Height)
	assert.Equal(t, d.Window.TickRate, cfg.Window.TickRate)
	assert.Equal(t, d.Bake.Supersample, cfg.Bake.Supersample)
	assert.Equal(t, d.Server.StreamRate, cfg.Server.StreamRate)
	assert.Equal(t, 1.0, cfg.Playback.Speed)

	cfg.Resolve(Flags{Addr: ":7000"})
	assert.Equal(t, ":7000", cfg.Server.Addr)
}

func TestResolveIgnoresNegatives(t *testing.T) {
	cfg := Config{
		Window: WindowConfig{Width: -5, TickRate: -1},
		Bake:   BakeConfig{Workers: -2, Output: "keep.webp"},
	}
	cfg.Resolve(Flags{Height: -10, FPS: -3})

	d := Default()
	assert.Equal(t, d.Window.Width, cfg.Window.Width)
	assert.Equal(t, d.Window.Height, cfg.Window.Height)
	assert.Equal(t, d.Window.TickRate, cfg.Window.TickRate)
	assert.Equal(t, d.Bake.Height, cfg.Bake.Height)
	assert.Equal(t, d.Bake.FPS, cfg.Bake.FPS)
	assert.Equal(t, d.Bake.Workers, cfg.Bake.Workers)
	assert.Equal(t, "keep.webp", cfg.Bake.Output)
	assert.Equal(t, d.Window.Title, cfg.Window.Title)
}

func TestCharmap(t *testing.T) {
	tests := []struct {
		charset string
		want    *charmap.Charmap
	}{
		{"", charmap.Windows1252},
		{"windows-1252", charmap.Windows1252},
		{"UTF-8", nil},
		{"iso-8859-1", charmap.ISO8859_1},
		{"cp437", charmap.CodePage437},
	}
	for _, tt := range tests {
		cfg := Config{Encoding: EncodingConfig{Charset: tt.charset}}
		cm, err := cfg.Charmap()
		require.NoError(t, err, tt.charset)
		assert.Equal(t, tt.want, cm, tt.charset)
	}

	cfg := Config{Encoding: EncodingConfig{Charset: "koi8"}}
	_, err := cfg.Charmap()
	assert.Error(t, err)
}

func TestAnimatorOptions(t *testing.T) {
	track := model.WaveModel("wave", 3, 4, 2).Track

	cfg := Default()
	cfg.Playback.EnabledAtStart = false
	options, err := cfg.AnimatorOptions()
	require.NoError(t, err)

	anim := animator.NewAnimator(cfg.KeyframeSearch(), append(options, animator.WithTrack(track))...)
	assert.False(t, anim.Enabled())

	anim.Update(0.5)
	assert.InDelta(t, 0.5, anim.State().CurrentTime, 1e-9, "accumulate runs the clock while disabled")

	cfg.Playback.PausePolicy = "freeze"
	cfg.Playback.Speed = 2
	options, err = cfg.AnimatorOptions()
	require.NoError(t, err)
	anim = animator.NewAnimator(cfg.KeyframeSearch(), append(options, animator.WithTrack(track))...)
	anim.Update(0.5)
	assert.Equal(t, 0.0, anim.State().CurrentTime, "freeze stops the clock while disabled")
	anim.Toggle()
	anim.Update(0.25)
	assert.InDelta(t, 0.5, anim.State().CurrentTime, 1e-9)

	cfg.Playback.PausePolicy = "sideways"
	_, err = cfg.AnimatorOptions()
	assert.Error(t, err)
}

func TestSceneOptions(t *testing.T) {
	cfg := Default()
	cfg.Debug.Grid = false
	cfg.Debug.AxisLength = 0.5

	s := scene.NewScene("main", camera.NewCamera(), cfg.SceneOptions()...)
	assert.False(t, s.GridEnabled())
	assert.Equal(t, float32(0.5), s.Resolver().AxisLength())
}

func TestBakerOptions(t *testing.T) {
	cfg := Default()
	cfg.Bake.FPS = 20
	options, err := cfg.BakerOptions()
	require.NoError(t, err)

	b := bake.NewBaker(options...)
	assert.Equal(t, uint(50), b.FrameDuration())

	cfg.Bake.Supersample = 8
	_, err = cfg.BakerOptions()
	assert.Error(t, err)
}

func TestLoaderOptions(t *testing.T) {
	cfg := Default()
	options, err := cfg.LoaderOptions()
	require.NoError(t, err)
	assert.Len(t, options, 1)
}
