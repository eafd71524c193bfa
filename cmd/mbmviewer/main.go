package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"

	"github.com/Carmen-Shannon/oxy-anim/config"
	"github.com/Carmen-Shannon/oxy-anim/engine"
	"github.com/Carmen-Shannon/oxy-anim/engine/camera"
	"github.com/Carmen-Shannon/oxy-anim/engine/game_object"
	"github.com/Carmen-Shannon/oxy-anim/engine/loader"
	"github.com/Carmen-Shannon/oxy-anim/engine/model"
	"github.com/Carmen-Shannon/oxy-anim/engine/scene"
	"github.com/Carmen-Shannon/oxy-anim/engine/window"
)

func main() {
	configFile := flag.String("config", "", "Path to a YAML config file")
	width := flag.Int("width", 0, "Window width (default: 1280)")
	height := flag.Int("height", 0, "Window height (default: 720)")
	tickRate := flag.Float64("tps", 0, "Engine ticks per second (default: 60)")
	profile := flag.Bool("profile", false, "Log profiler stats every second")
	search := flag.String("search", "", "Keyframe search: linear, binary or cached")
	charset := flag.String("charset", "", "Material path charset (default: windows-1252)")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: mbmviewer [flags] [file.mbm]\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg := config.Default()
	if *configFile != "" {
		var err error
		if cfg, err = config.Load(*configFile); err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	}
	cfg.Resolve(config.Flags{
		Width:     *width,
		Height:    *height,
		TickRate:  *tickRate,
		Profiling: *profile,
		Search:    *search,
		Charset:   *charset,
	})
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	// ── Model ───────────────────────────────────────────────────────────
	mdl, err := loadModel(&cfg, flag.Arg(0))
	if err != nil {
		log.Fatalf("Failed to load model: %v", err)
	}
	if mdl.Track() == nil {
		log.Printf("%s has no skeleton; showing the grid only", mdl.Name())
	}

	// ── Engine + Window ─────────────────────────────────────────────────
	eng := engine.NewEngine(
		engine.WithProfiling(cfg.Window.Profiling),
		engine.WithTickRate(cfg.Window.TickRate),
		engine.WithWindow(window.NewWindow(
			window.WithTitle(fmt.Sprintf("%s - %s", cfg.Window.Title, mdl.Name())),
			window.WithWidth(cfg.Window.Width),
			window.WithHeight(cfg.Window.Height),
			window.WithVSync(cfg.Window.FrameLimit),
		)),
	)

	// ── Camera ──────────────────────────────────────────────────────────
	cam := camera.NewCamera(
		camera.WithFov(float32(45.0*math.Pi/180.0)),
		camera.WithAspect(float32(eng.Window().Width())/float32(eng.Window().Height())),
		camera.WithNear(0.01),
		camera.WithFar(10000),
		camera.WithController(camera.NewCameraController(
			camera.WithElevation(0.35),
			camera.WithAzimuth(0.6),
			camera.WithRadiusBounds(0.1, 20000),
			camera.WithMouseSensitivity(0.005),
		)),
	)

	// ── Scene ───────────────────────────────────────────────────────────
	animOptions, err := cfg.AnimatorOptions()
	if err != nil {
		log.Fatalf("Invalid playback config: %v", err)
	}
	obj := game_object.NewGameObject(
		game_object.WithModel(mdl),
		game_object.WithKeyframeSearch(cfg.KeyframeSearch()),
		game_object.WithAnimatorOptions(animOptions...),
	)
	sc := scene.NewScene(mdl.Name(), cam, append(cfg.SceneOptions(), scene.WithObjects(obj), scene.WithCulling(true))...)
	sc.FrameObjects()
	eng.AddScene(0, sc)

	printControls(mdl)

	log.Printf("Starting viewer for %s", mdl.Name())
	eng.Run()
}

// loadModel reads path, or builds the generated sample rig when path is empty.
func loadModel(cfg *config.Config, path string) (model.Model, error) {
	if path == "" {
		return model.FromImported(model.WaveModel("sample", 3, 8, 2)), nil
	}
	options, err := cfg.LoaderOptions()
	if err != nil {
		return nil, err
	}
	return loader.NewLoader(loader.BackendTypeMBM, options...).Load(path)
}

func printControls(mdl model.Model) {
	fmt.Println("╔══════════════════════════════════════════════════════╗")
	fmt.Println("║  MBM Viewer - Skeletal Animation Inspector          ║")
	fmt.Println("╠══════════════════════════════════════════════════════╣")
	fmt.Println("║  Camera: A/D/W/S=Orbit  Scroll=Zoom                 ║")
	fmt.Println("║          Middle-mouse drag=Orbit  Space=Frame model  ║")
	fmt.Println("║  V:      Toggle animation                           ║")
	fmt.Println("║  N / B:  Next / previous keyframe (paused)          ║")
	fmt.Println("║  R:      Back to the bind pose                      ║")
	fmt.Println("║  G:      Toggle grid                                ║")
	fmt.Println("║  Esc:    Quit                                       ║")
	if track := mdl.Track(); track != nil {
		fmt.Printf("║  Joints: %-4d Keyframes: %-4d Duration: %-8.3fs   ║\n",
			len(track.BindPose), len(track.Keyframes), track.Duration)
	}
	fmt.Println("╚══════════════════════════════════════════════════════╝")
}
