package config

import (
	"bytes"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/Carmen-Shannon/oxy-anim/common"
	"github.com/Carmen-Shannon/oxy-anim/engine/animator"
	"github.com/Carmen-Shannon/oxy-anim/engine/bake"
	"github.com/Carmen-Shannon/oxy-anim/engine/debug"
	"github.com/Carmen-Shannon/oxy-anim/engine/loader"
	"github.com/Carmen-Shannon/oxy-anim/engine/renderer"
	"github.com/Carmen-Shannon/oxy-anim/engine/scene"

	"github.com/pkg/errors"
	"golang.org/x/text/encoding/charmap"
	"gopkg.in/yaml.v3"
)

// Config holds the settings shared by the viewer and the command line tool.
type Config struct {
	Window   WindowConfig   `yaml:"window"`
	Playback PlaybackConfig `yaml:"playback"`
	Debug    DebugConfig    `yaml:"debug"`
	Server   ServerConfig   `yaml:"server"`
	Bake     BakeConfig     `yaml:"bake"`
	Encoding EncodingConfig `yaml:"encoding"`
}

// WindowConfig configures the interactive viewer.
type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	// TickRate is the engine update rate in ticks per second.
	TickRate float64 `yaml:"tick_rate"`
	// FrameLimit syncs buffer swaps to the display refresh.
	FrameLimit bool `yaml:"frame_limit"`
	Profiling  bool `yaml:"profiling"`
}

// PlaybackConfig configures every animator created from this config.
type PlaybackConfig struct {
	EnabledAtStart bool    `yaml:"enabled_at_start"`
	PausePolicy    string  `yaml:"pause_policy"`
	WrapPolicy     string  `yaml:"wrap_policy"`
	Search         string  `yaml:"search"`
	Speed          float64 `yaml:"speed"`
}

// DebugConfig configures the skeleton overlay and floor grid.
type DebugConfig struct {
	AxisLength float32 `yaml:"axis_length"`
	Grid       bool    `yaml:"grid"`
	GridExtent float32 `yaml:"grid_extent"`
	GridStep   float32 `yaml:"grid_step"`
	HueSpeed   float32 `yaml:"hue_speed"`
}

// ServerConfig configures the inspection server.
type ServerConfig struct {
	Addr string `yaml:"addr"`
	// StreamRate is the playback websocket message rate in Hz.
	StreamRate float64 `yaml:"stream_rate"`
}

// BakeConfig configures offline rendering to animated WebP.
type BakeConfig struct {
	FPS         float64 `yaml:"fps"`
	Width       int     `yaml:"width"`
	Height      int     `yaml:"height"`
	Supersample int     `yaml:"supersample"`
	Workers     int     `yaml:"workers"`
	Output      string  `yaml:"output"`
}

// EncodingConfig selects the charset of material paths stored in model files.
type EncodingConfig struct {
	Charset string `yaml:"charset"`
}

// Flags holds command line values that override config file settings.
// Zero values leave the file setting untouched.
type Flags struct {
	Width     int
	Height    int
	TickRate  float64
	Profiling bool
	Search    string
	Addr      string
	FPS       float64
	Workers   int
	Output    string
	Charset   string
}

// Default returns the configuration used when no file is given.
//
// Returns:
//   - Config: the default configuration
func Default() Config {
	return Config{
		Window: WindowConfig{
			Title:      "mbm viewer",
			Width:      1280,
			Height:     720,
			TickRate:   60,
			FrameLimit: true,
		},
		Playback: PlaybackConfig{
			EnabledAtStart: true,
			PausePolicy:    "accumulate",
			WrapPolicy:     "single",
			Search:         "cached",
			Speed:          1,
		},
		Debug: DebugConfig{
			AxisLength: 0.25,
			Grid:       true,
			GridExtent: 10,
			GridStep:   1,
			HueSpeed:   0.1,
		},
		Server: ServerConfig{
			Addr:       ":8080",
			StreamRate: 30,
		},
		Bake: BakeConfig{
			FPS:         30,
			Width:       320,
			Height:      240,
			Supersample: 2,
			Workers:     runtime.NumCPU(),
			Output:      "out.webp",
		},
		Encoding: EncodingConfig{
			Charset: "windows-1252",
		},
	}
}

// Load reads a YAML config file over the defaults. Keys missing from the file keep their
// default values; unknown keys are an error.
//
// Parameters:
//   - path: the file to read
//
// Returns:
//   - Config: the loaded configuration
//   - error: a read, parse or validation error
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrapf(err, "config: read %s", path)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, errors.Wrapf(err, "config: %s", path)
	}
	return cfg, nil
}

// Parse decodes YAML over the defaults and validates the result.
//
// Parameters:
//   - data: the YAML document
//
// Returns:
//   - Config: the parsed configuration
//   - error: a parse or validation error
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && err != io.EOF {
		return Config{}, errors.Wrap(err, "config: parse")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first setting that names an unknown policy, strategy or charset.
//
// Returns:
//   - error: nil if every named setting is known
func (c *Config) Validate() error {
	if _, err := animator.ParsePausePolicy(c.Playback.PausePolicy); err != nil {
		return errors.Wrap(err, "config: playback.pause_policy")
	}
	if _, err := animator.ParseWrapPolicy(c.Playback.WrapPolicy); err != nil {
		return errors.Wrap(err, "config: playback.wrap_policy")
	}
	switch c.Playback.Search {
	case "", "linear", "binary", "cached":
	default:
		return errors.Errorf("config: playback.search: unknown strategy %q", c.Playback.Search)
	}
	if _, err := supersample(c.Bake.Supersample); err != nil {
		return err
	}
	if _, err := c.Charmap(); err != nil {
		return err
	}
	return nil
}

// Resolve applies command line overrides, then fills any unset numeric or string field with its
// default.
//
// Parameters:
//   - flags: the command line values
func (c *Config) Resolve(flags Flags) {
	d := Default()

	c.Window.Title = common.Coalesce(c.Window.Title, d.Window.Title)
	c.Window.Width = common.Coalesce(positive(flags.Width), positive(c.Window.Width), d.Window.Width)
	c.Window.Height = common.Coalesce(positive(flags.Height), positive(c.Window.Height), d.Window.Height)
	c.Window.TickRate = common.Coalesce(positive(flags.TickRate), positive(c.Window.TickRate), d.Window.TickRate)
	c.Window.Profiling = c.Window.Profiling || flags.Profiling

	c.Playback.Search = common.Coalesce(flags.Search, c.Playback.Search)
	c.Playback.Speed = common.Coalesce(positive(c.Playback.Speed), d.Playback.Speed)

	c.Server.Addr = common.Coalesce(flags.Addr, c.Server.Addr, d.Server.Addr)
	c.Server.StreamRate = common.Coalesce(positive(c.Server.StreamRate), d.Server.StreamRate)

	c.Bake.FPS = common.Coalesce(positive(flags.FPS), positive(c.Bake.FPS), d.Bake.FPS)
	c.Bake.Width = common.Coalesce(positive(flags.Width), positive(c.Bake.Width), d.Bake.Width)
	c.Bake.Height = common.Coalesce(positive(flags.Height), positive(c.Bake.Height), d.Bake.Height)
	c.Bake.Supersample = common.Coalesce(positive(c.Bake.Supersample), d.Bake.Supersample)
	c.Bake.Workers = common.Coalesce(positive(flags.Workers), positive(c.Bake.Workers), d.Bake.Workers)
	c.Bake.Output = common.Coalesce(flags.Output, c.Bake.Output, d.Bake.Output)

	c.Encoding.Charset = common.Coalesce(flags.Charset, c.Encoding.Charset)
}

// positive maps negative values to zero so Coalesce treats them as unset.
func positive[T int | float64](v T) T {
	return max(v, 0)
}

// charmaps maps charset names to their decoders. utf-8 maps to nil, which the loader reads as UTF-8.
var charmaps = map[string]*charmap.Charmap{
	"":             charmap.Windows1252,
	"windows-1252": charmap.Windows1252,
	"cp1252":       charmap.Windows1252,
	"utf-8":        nil,
	"utf8":         nil,
	"iso-8859-1":   charmap.ISO8859_1,
	"latin1":       charmap.ISO8859_1,
	"cp437":        charmap.CodePage437,
	"ibm437":       charmap.CodePage437,
}

// Charmap resolves encoding.charset.
//
// Returns:
//   - *charmap.Charmap: the charmap, or nil for UTF-8
//   - error: an error for unknown charsets
func (c *Config) Charmap() (*charmap.Charmap, error) {
	cm, ok := charmaps[strings.ToLower(c.Encoding.Charset)]
	if !ok {
		return nil, errors.Errorf("config: encoding.charset: unknown charset %q", c.Encoding.Charset)
	}
	return cm, nil
}

// KeyframeSearch resolves playback.search.
func (c *Config) KeyframeSearch() animator.KeyframeSearchType {
	return animator.ParseKeyframeSearch(c.Playback.Search)
}

// AnimatorOptions builds the animator options for playback. The track is not included.
//
// Returns:
//   - []animator.AnimatorBuilderOption: the options
//   - error: an error for unknown policy names
func (c *Config) AnimatorOptions() ([]animator.AnimatorBuilderOption, error) {
	pause, err := animator.ParsePausePolicy(c.Playback.PausePolicy)
	if err != nil {
		return nil, errors.Wrap(err, "config: playback.pause_policy")
	}
	wrap, err := animator.ParseWrapPolicy(c.Playback.WrapPolicy)
	if err != nil {
		return nil, errors.Wrap(err, "config: playback.wrap_policy")
	}
	options := []animator.AnimatorBuilderOption{
		animator.WithEnabled(c.Playback.EnabledAtStart),
		animator.WithPausePolicy(pause),
		animator.WithWrapPolicy(wrap),
	}
	if c.Playback.Speed > 0 {
		options = append(options, animator.WithSpeed(c.Playback.Speed))
	}
	return options, nil
}

// ResolverOptions builds the hierarchy resolver options.
func (c *Config) ResolverOptions() []debug.ResolverBuilderOption {
	if c.Debug.AxisLength <= 0 {
		return nil
	}
	return []debug.ResolverBuilderOption{debug.WithAxisLength(c.Debug.AxisLength)}
}

// GridOptions builds the floor grid options.
func (c *Config) GridOptions() []debug.GridBuilderOption {
	var options []debug.GridBuilderOption
	if c.Debug.GridExtent > 0 {
		options = append(options, debug.WithExtent(c.Debug.GridExtent))
	}
	if c.Debug.GridStep > 0 {
		options = append(options, debug.WithStep(c.Debug.GridStep))
	}
	options = append(options, debug.WithHueSpeed(c.Debug.HueSpeed))
	return options
}

// SceneOptions builds the scene options for the debug overlay.
//
// Returns:
//   - []scene.SceneBuilderOption: grid, grid visibility and resolver options
func (c *Config) SceneOptions() []scene.SceneBuilderOption {
	return []scene.SceneBuilderOption{
		scene.WithGrid(debug.NewGrid(c.GridOptions()...)),
		scene.WithGridEnabled(c.Debug.Grid),
		scene.WithResolver(debug.NewResolver(c.ResolverOptions()...)),
	}
}

// BakerOptions builds the options of the offline renderer.
//
// Returns:
//   - []bake.BakerBuilderOption: the options
//   - error: an error for an unsupported supersample factor
func (c *Config) BakerOptions() ([]bake.BakerBuilderOption, error) {
	ss, err := supersample(c.Bake.Supersample)
	if err != nil {
		return nil, err
	}
	options := []bake.BakerBuilderOption{
		bake.WithSupersample(ss),
		bake.WithGrid(c.Debug.Grid, c.GridOptions()...),
		bake.WithResolver(debug.NewResolver(c.ResolverOptions()...)),
	}
	if c.Bake.FPS > 0 {
		options = append(options, bake.WithFPS(c.Bake.FPS))
	}
	if c.Bake.Width > 0 && c.Bake.Height > 0 {
		options = append(options, bake.WithSize(c.Bake.Width, c.Bake.Height))
	}
	if c.Bake.Workers > 0 {
		options = append(options, bake.WithWorkers(c.Bake.Workers))
	}
	return options, nil
}

// LoaderOptions builds the model loader options.
//
// Returns:
//   - []loader.LoaderBuilderOption: the charmap option
//   - error: an error for unknown charsets
func (c *Config) LoaderOptions() ([]loader.LoaderBuilderOption, error) {
	cm, err := c.Charmap()
	if err != nil {
		return nil, err
	}
	return []loader.LoaderBuilderOption{loader.WithCharmap(cm)}, nil
}

func supersample(n int) (renderer.Supersample, error) {
	switch n {
	case 0, 2:
		return renderer.Supersample2x, nil
	case 1:
		return renderer.SupersampleOff, nil
	case 4:
		return renderer.Supersample4x, nil
	}
	return renderer.SupersampleOff, errors.Errorf("config: bake.supersample: unsupported factor %d", n)
}
