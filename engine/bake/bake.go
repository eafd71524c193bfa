package bake

import (
	"context"
	"image"
	"io"
	"log"
	"math"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/oxy-anim/engine/animator"
	"github.com/Carmen-Shannon/oxy-anim/engine/camera"
	"github.com/Carmen-Shannon/oxy-anim/engine/debug"
	"github.com/Carmen-Shannon/oxy-anim/engine/model"
	"github.com/Carmen-Shannon/oxy-anim/engine/renderer"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/HugoSmits86/nativewebp"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	xdraw "golang.org/x/image/draw"
)

// Baker renders a model's animation offline into images and WebP files.
// Every frame is sampled at its own time with no shared playback state, so frames render in parallel.
type Baker interface {
	// FrameCount returns how many frames one loop of track takes at the baker's frame rate.
	//
	// Parameters:
	//   - track: the animation track
	//
	// Returns:
	//   - int: ceil(duration * fps), at least 1
	FrameCount(track *model.AnimationTrack) int

	// FrameDuration returns how long each frame is shown in milliseconds.
	//
	// Returns:
	//   - uint: 1000 / fps, at least 1
	FrameDuration() uint

	// Frame renders one still of m. With enabled false the bind pose is drawn.
	//
	// Parameters:
	//   - m: the model
	//   - seconds: the animation time
	//   - enabled: false to draw the bind pose instead of the sampled pose
	//
	// Returns:
	//   - *image.RGBA: the rendered frame
	Frame(m model.Model, seconds float64, enabled bool) *image.RGBA

	// Bake renders one loop of m's animation on the worker pool.
	//
	// Parameters:
	//   - ctx: cancels outstanding frames
	//   - m: the model (must have a track)
	//
	// Returns:
	//   - []*image.RGBA: the frames in time order
	//   - error: ctx's error, or an error if m has no track
	Bake(ctx context.Context, m model.Model) ([]*image.RGBA, error)

	// EncodeAnimation bakes m and writes an animated, forever-looping WebP to w.
	//
	// Parameters:
	//   - ctx: cancels outstanding frames
	//   - w: the destination
	//   - m: the model (must have a track)
	//
	// Returns:
	//   - error: a bake or encode error
	EncodeAnimation(ctx context.Context, w io.Writer, m model.Model) error

	// EncodeStill writes a single WebP frame of m at the given time to w.
	//
	// Parameters:
	//   - w: the destination
	//   - m: the model
	//   - seconds: the animation time
	//   - enabled: false to draw the bind pose
	//
	// Returns:
	//   - error: an encode error
	EncodeStill(w io.Writer, m model.Model, seconds float64, enabled bool) error
}

type baker struct {
	fps         float64
	width       int
	height      int
	supersample renderer.Supersample
	lineWidth   float32
	clearColor  mgl32.Vec4
	workers     int

	grid        bool
	gridOptions []debug.GridBuilderOption
	resolver    debug.Resolver
	lineCap     int

	azimuth   float32
	elevation float32
}

var _ Baker = &baker{}

// NewBaker creates a Baker. Defaults: 30 fps, 320x240, 2x supersampling, one worker per CPU,
// grid on, a three-quarter view from slightly above.
//
// Parameters:
//   - options: functional options to configure the baker
//
// Returns:
//   - Baker: the newly created baker
func NewBaker(options ...BakerBuilderOption) Baker {
	b := &baker{
		fps:         30,
		width:       320,
		height:      240,
		supersample: renderer.Supersample2x,
		lineWidth:   1,
		clearColor:  mgl32.Vec4{0.08, 0.08, 0.1, 1},
		workers:     runtime.NumCPU(),
		grid:        true,
		lineCap:     debug.DefaultLineCapacity,
		azimuth:     mgl32.DegToRad(35),
		elevation:   mgl32.DegToRad(20),
	}
	for _, option := range options {
		option(b)
	}
	if b.resolver == nil {
		b.resolver = debug.NewResolver()
	}
	return b
}

func (b *baker) FrameCount(track *model.AnimationTrack) int {
	if track == nil {
		return 1
	}
	return max(int(math.Ceil(track.Duration*b.fps)), 1)
}

func (b *baker) FrameDuration() uint {
	return max(uint(math.Round(1000/b.fps)), 1)
}

// viewProjection frames m's bounds from the baker's viewing angle.
func (b *baker) viewProjection(m model.Model) mgl32.Mat4 {
	ctrl := camera.NewCameraController(
		camera.WithAzimuth(b.azimuth),
		camera.WithElevation(b.elevation),
	)
	ctrl.Frame(model.Center(m), max(m.BoundingRadius(), 0.5))
	cam := camera.NewCamera(
		camera.WithController(ctrl),
		camera.WithAspect(float32(b.width)/float32(b.height)),
	)
	return cam.ViewProjectionMatrix()
}

func (b *baker) newRenderer() renderer.Renderer {
	return renderer.NewRenderer(renderer.BackendTypeSoftware,
		renderer.WithSize(b.width, b.height),
		renderer.WithSupersample(b.supersample),
		renderer.WithLineWidth(b.lineWidth),
		renderer.WithClearColor(b.clearColor),
	)
}

// pose returns the pose drawn at seconds, wrapped into one loop.
func pose(m model.Model, seconds float64, enabled bool) model.Pose {
	track := m.Track()
	if track == nil {
		return nil
	}
	if !enabled {
		return track.BindPose
	}
	return animator.SampleAt(track, math.Mod(seconds, track.Duration))
}

// render draws one frame into r using a fresh line buffer.
func (b *baker) render(r renderer.Renderer, viewProj mgl32.Mat4, m model.Model, seconds float64, enabled bool) *image.RGBA {
	buf := debug.NewLineBuffer(b.lineCap)
	if b.grid {
		g := debug.NewGrid(b.gridOptions...)
		g.Update(seconds)
		g.Emit(buf)
	}
	if p := pose(m, seconds, enabled); p != nil {
		b.resolver.Emit(p, mgl32.Vec3{}, buf)
	}
	if buf.Dropped() > 0 {
		log.Printf("[Bake] frame at %.3fs dropped %d line vertices", seconds, buf.Dropped())
	}

	if err := r.BeginFrame(); err != nil {
		log.Printf("[Bake] frame at %.3fs: %v", seconds, err)
		return image.NewRGBA(image.Rect(0, 0, b.width, b.height))
	}
	r.DrawLines(viewProj, buf.Vertices())
	r.EndFrame()
	return toRGBA(r.Snapshot())
}

func (b *baker) Frame(m model.Model, seconds float64, enabled bool) *image.RGBA {
	r := b.newRenderer()
	defer r.Release()
	return b.render(r, b.viewProjection(m), m, seconds, enabled)
}

func (b *baker) Bake(ctx context.Context, m model.Model) ([]*image.RGBA, error) {
	track := m.Track()
	if track == nil {
		return nil, errors.Errorf("bake: model %q has no animation track", m.Name())
	}

	count := b.FrameCount(track)
	frames := make([]*image.RGBA, count)
	viewProj := b.viewProjection(m)
	workers := min(max(b.workers, 1), count)

	// Each worker renders into one of these; a task takes a renderer, draws, and gives it back.
	renderers := make(chan renderer.Renderer, workers)
	for range workers {
		renderers <- b.newRenderer()
	}
	defer func() {
		close(renderers)
		for r := range renderers {
			r.Release()
		}
	}()

	pool := worker.NewDynamicWorkerPool(workers, workers*2, time.Second)
	defer pool.Stop()

	start := time.Now()
	var rendered atomic.Int64
	var wg sync.WaitGroup
	for i := range count {
		if ctx.Err() != nil {
			break
		}
		wg.Add(1)
		pool.SubmitTask(worker.Task{
			ID: i,
			Do: func() (any, error) {
				defer wg.Done()
				if ctx.Err() != nil {
					return nil, ctx.Err()
				}
				r := <-renderers
				defer func() { renderers <- r }()
				frames[i] = b.render(r, viewProj, m, float64(i)/b.fps, true)
				rendered.Add(1)
				return nil, nil
			},
		})
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, "bake: cancelled")
	}
	log.Printf("[Bake] %s: %d frames at %.0f fps in %v", m.Name(), rendered.Load(), b.fps, time.Since(start).Round(time.Millisecond))
	return frames, nil
}

func (b *baker) EncodeAnimation(ctx context.Context, w io.Writer, m model.Model) error {
	frames, err := b.Bake(ctx, m)
	if err != nil {
		return err
	}

	ani := &nativewebp.Animation{
		Images:    make([]image.Image, len(frames)),
		Durations: make([]uint, len(frames)),
		Disposals: make([]uint, len(frames)),
		LoopCount: 0,
	}
	for i, f := range frames {
		ani.Images[i] = f
		ani.Durations[i] = b.FrameDuration()
	}
	if err := nativewebp.EncodeAll(w, ani, nil); err != nil {
		return errors.Wrap(err, "bake: encode animation")
	}
	return nil
}

func (b *baker) EncodeStill(w io.Writer, m model.Model, seconds float64, enabled bool) error {
	if err := nativewebp.Encode(w, b.Frame(m, seconds, enabled), nil); err != nil {
		return errors.Wrap(err, "bake: encode still")
	}
	return nil
}

// toRGBA returns img as an *image.RGBA, converting only when needed.
func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	out := image.NewRGBA(img.Bounds())
	xdraw.Draw(out, out.Bounds(), img, img.Bounds().Min, xdraw.Src)
	return out
}
