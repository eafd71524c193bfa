package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/Carmen-Shannon/oxy-anim/config"
	"github.com/Carmen-Shannon/oxy-anim/engine/bake"
	"github.com/Carmen-Shannon/oxy-anim/engine/debug"
	"github.com/Carmen-Shannon/oxy-anim/engine/loader"
	"github.com/Carmen-Shannon/oxy-anim/engine/model"
	"github.com/Carmen-Shannon/oxy-anim/engine/server"

	"github.com/pkg/errors"
)

const usage = `usage: mbmtool <command> [flags]

commands:
  inspect [-dump] [-textures] file.mbm             print the asset summary
  bake    [-config c.yaml] [-o out.webp] [-still t] file.mbm
                                                   render the loop (or one still) to WebP
  serve   [-config c.yaml] [-addr :8080] file.mbm  serve the inspection API
  gen     [-o sample.mbm]                          write a generated sample rig
`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run dispatches one subcommand. Output meant for the user goes to stdout.
func run(ctx context.Context, args []string, stdout io.Writer) error {
	if len(args) == 0 {
		fmt.Fprint(os.Stderr, usage)
		return errors.New("missing command")
	}
	switch args[0] {
	case "inspect":
		return runInspect(args[1:], stdout)
	case "bake":
		return runBake(ctx, args[1:], stdout)
	case "serve":
		return runServe(ctx, args[1:])
	case "gen":
		return runGen(args[1:], stdout)
	case "help", "-h", "--help":
		fmt.Fprint(stdout, usage)
		return nil
	}
	fmt.Fprint(os.Stderr, usage)
	return errors.Errorf("unknown command %q", args[0])
}

// loadConfig reads path over the defaults, or returns the defaults when path is empty.
func loadConfig(path string, flags config.Flags) (config.Config, error) {
	cfg := config.Default()
	if path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return cfg, err
		}
	}
	cfg.Resolve(flags)
	return cfg, cfg.Validate()
}

func loadModel(cfg *config.Config, fs *flag.FlagSet) (model.Model, error) {
	if fs.NArg() != 1 {
		return nil, errors.Errorf("%s: expected one model file", fs.Name())
	}
	options, err := cfg.LoaderOptions()
	if err != nil {
		return nil, err
	}
	return loader.NewLoader(loader.BackendTypeMBM, options...).Load(fs.Arg(0))
}

func runInspect(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("inspect", flag.ContinueOnError)
	dump := fs.Bool("dump", false, "Dump the full animation track")
	textures := fs.Bool("textures", false, "Decode every referenced texture")
	charset := fs.String("charset", "", "Material path charset (default: windows-1252)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg, err := loadConfig("", config.Flags{Charset: *charset})
	if err != nil {
		return err
	}
	m, err := loadModel(&cfg, fs)
	if err != nil {
		return err
	}

	w := bufio.NewWriter(stdout)
	writeSummary(w, m)
	if *textures {
		writeTextures(w, m)
	}
	if *dump && m.Track() != nil {
		fmt.Fprintln(w)
		fmt.Fprint(w, dumpString(m.Track()))
	}
	return w.Flush()
}

func runBake(ctx context.Context, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("bake", flag.ContinueOnError)
	configFile := fs.String("config", "", "Path to a YAML config file")
	output := fs.String("o", "", "Output WebP file (default: out.webp)")
	still := fs.Float64("still", -1, "Render a single frame at this time in seconds")
	bindPose := fs.Bool("bind", false, "With -still, render the bind pose")
	fps := fs.Float64("fps", 0, "Frames per second (default: 30)")
	width := fs.Int("width", 0, "Frame width")
	height := fs.Int("height", 0, "Frame height")
	workers := fs.Int("workers", 0, "Number of render workers (default: NumCPU)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg, err := loadConfig(*configFile, config.Flags{
		Output:  *output,
		FPS:     *fps,
		Width:   *width,
		Height:  *height,
		Workers: *workers,
	})
	if err != nil {
		return err
	}
	m, err := loadModel(&cfg, fs)
	if err != nil {
		return err
	}
	options, err := cfg.BakerOptions()
	if err != nil {
		return err
	}
	b := bake.NewBaker(options...)

	f, err := os.Create(cfg.Bake.Output)
	if err != nil {
		return errors.Wrapf(err, "bake: create %s", cfg.Bake.Output)
	}
	w := bufio.NewWriter(f)
	if *still >= 0 {
		err = b.EncodeStill(w, m, *still, !*bindPose)
	} else {
		err = b.EncodeAnimation(ctx, w, m)
	}
	if err == nil {
		err = w.Flush()
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(cfg.Bake.Output)
		return err
	}
	fmt.Fprintf(stdout, "wrote %s\n", cfg.Bake.Output)
	return nil
}

func runServe(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	configFile := fs.String("config", "", "Path to a YAML config file")
	addr := fs.String("addr", "", "Listen address (default: :8080)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg, err := loadConfig(*configFile, config.Flags{Addr: *addr})
	if err != nil {
		return err
	}
	m, err := loadModel(&cfg, fs)
	if err != nil {
		return err
	}
	animOptions, err := cfg.AnimatorOptions()
	if err != nil {
		return err
	}
	bakerOptions, err := cfg.BakerOptions()
	if err != nil {
		return err
	}
	resolver := debug.NewResolver(cfg.ResolverOptions()...)

	srv := server.NewServer(m,
		server.WithAddr(cfg.Server.Addr),
		server.WithStreamRate(cfg.Server.StreamRate),
		server.WithResolver(resolver),
		server.WithBaker(bake.NewBaker(append(bakerOptions, bake.WithResolver(resolver))...)),
		server.WithPlayback(cfg.KeyframeSearch(), animOptions...),
	)
	return srv.ListenAndServe(ctx)
}

func runGen(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("gen", flag.ContinueOnError)
	output := fs.String("o", "sample.mbm", "Output model file")
	joints := fs.Int("joints", 3, "Number of joints in the chain")
	keyframes := fs.Int("keyframes", 8, "Number of keyframes")
	duration := fs.Float64("duration", 2, "Loop duration in seconds")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *joints < 1 || *keyframes < 1 || *duration <= 0 {
		return errors.New("gen: joints and keyframes must be positive, duration greater than zero")
	}

	m := model.WaveModel("sample", *joints, *keyframes, *duration)
	if err := loader.NewLoader(loader.BackendTypeMBM).Save(*output, m); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "wrote %s (%d joints, %d keyframes, %gs)\n", *output, *joints, *keyframes, *duration)
	return nil
}
