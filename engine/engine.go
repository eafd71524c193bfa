package engine

import (
	"log"
	"runtime"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/oxy-anim/engine/profiler"
	"github.com/Carmen-Shannon/oxy-anim/engine/renderer"
	"github.com/Carmen-Shannon/oxy-anim/engine/scene"
	"github.com/Carmen-Shannon/oxy-anim/engine/window"
)

// engine is driven by one tick goroutine that owns every scene, the renderer and the GL
// context; the window's event thread only queues commands for it.
type engine struct {
	rateUpdates chan time.Duration
	commands    chan func()

	running atomic.Bool
	wg      sync.WaitGroup

	done      chan struct{}
	doneOnce  sync.Once
	closeOnce sync.Once

	window   window.Window
	renderer renderer.Renderer

	profiler  *profiler.Profiler
	profiling atomic.Bool

	interval     time.Duration // guarded by mu
	maxDelta     float64
	tickCallback func(deltaTime float64)

	keyBindings map[uint32]Action

	mu     *sync.RWMutex
	scenes map[int]scene.Scene
}

// Engine drives the viewer: a fixed-rate tick that advances every scene, rebuilds its
// debug lines and draws them.
type Engine interface {
	// Window returns the viewer window, or nil when headless.
	Window() window.Window

	// Renderer returns the line renderer. With a window and no explicit renderer this is nil
	// until Run has created the GL renderer on the tick goroutine.
	//
	// Returns:
	//   - renderer.Renderer: the renderer or nil
	Renderer() renderer.Renderer

	// EnableProfiler starts logging tick timings and line counts.
	EnableProfiler()

	// DisableProfiler stops the timing log.
	DisableProfiler()

	// SetTickRate sets the engine tick rate in ticks per second.
	//
	// Parameters:
	//   - tps: target ticks per second (defaults to 60 if <= 0)
	SetTickRate(tps float64)

	// SetTickCallback registers a function called on the tick goroutine after each tick.
	//
	// Parameters:
	//   - callback: receives the tick's delta time in seconds
	SetTickCallback(callback func(deltaTime float64))

	// AddScene puts s in the draw list under key, replacing any scene already there.
	// Lower keys update and draw first.
	//
	// Parameters:
	//   - key: draw order
	//   - s: the scene
	AddScene(key int, s scene.Scene)

	// RemoveScene drops the scene under key.
	RemoveScene(key int)

	// Scene returns the scene under key, or nil.
	Scene(key int) scene.Scene

	// Scenes returns a snapshot of the draw list.
	//
	// Returns:
	//   - map[int]scene.Scene: scenes by draw order key
	Scenes() map[int]scene.Scene

	// Submit queues cmd to run on the tick goroutine before the next tick.
	// Commands are dropped with a log line when the queue is full.
	//
	// Parameters:
	//   - cmd: the command
	//
	// Returns:
	//   - bool: true if the command was queued
	Submit(cmd func()) bool

	// HandleKey queues the action bound to keyCode, if any.
	//
	// Parameters:
	//   - keyCode: a GLFW key code
	//
	// Returns:
	//   - bool: true if the key is bound
	HandleKey(keyCode uint32) bool

	// Step runs one tick synchronously: queued commands, scene updates, line rebuild and draw.
	// Run calls Step from its own goroutine; call Step directly only when Run is not active.
	//
	// Parameters:
	//   - deltaTime: elapsed time in seconds (clamped to the max delta)
	Step(deltaTime float64)

	// Run starts the tick loop and blocks until the window closes or Quit is called.
	Run()

	// Quit stops Run. Further calls do nothing.
	Quit()
}

var _ Engine = &engine{}

// NewEngine builds an engine ticking at 60 Hz with the default key bindings.
// When a window is supplied its input and resize callbacks are routed to the tick goroutine.
//
// Parameters:
//   - options: window, renderer, scenes and timing
//
// Returns:
//   - Engine: an engine ready for Run or Step
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		rateUpdates: make(chan time.Duration, 1),
		commands:    make(chan func(), 256),
		done:        make(chan struct{}),
		mu:          &sync.RWMutex{},
		scenes:      make(map[int]scene.Scene),
		interval:    tickInterval(60),
		maxDelta:    0.25,
		keyBindings: DefaultKeyBindings(),
	}

	for _, opt := range options {
		opt(e)
	}
	if e.profiler == nil {
		e.profiler = profiler.NewProfiler(time.Second)
	}

	if e.window != nil {
		e.bindWindow()
	}
	return e
}

// bindWindow installs the window input handler. Its callbacks run on the window's event thread
// and only queue work for the tick goroutine.
func (e *engine) bindWindow() {
	e.window.SetInputHandler(window.InputHandler{
		KeyDown: func(keyCode uint32) {
			e.HandleKey(keyCode)
		},
		Scroll: func(delta float32) {
			e.Submit(func() {
				e.eachController(func(s scene.Scene) {
					s.Camera().Controller().Zoom(delta)
				})
			})
		},
		Drag: func(dx, dy float32) {
			e.Submit(func() {
				e.eachController(func(s scene.Scene) {
					s.Camera().Controller().Drag(dx, dy)
				})
			})
		},
		Resize: func(width, height int) {
			if width <= 0 || height <= 0 {
				return
			}
			e.Submit(func() {
				if e.renderer != nil {
					e.renderer.Resize(width, height)
				}
				for _, s := range e.sortedScenes() {
					s.Camera().SetAspect(float32(width) / float32(height))
				}
			})
		},
	})
}

// eachController calls fn for every scene whose camera has a controller.
func (e *engine) eachController(fn func(s scene.Scene)) {
	for _, s := range e.sortedScenes() {
		if s.Camera().Controller() != nil {
			fn(s)
		}
	}
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Renderer() renderer.Renderer {
	return e.renderer
}

func (e *engine) Run() {
	e.running.Store(true)
	defer e.running.Store(false)
	if e.window == nil {
		e.wg.Add(2)
		go e.tickLoop()
		go e.awaitDone()
		e.wg.Wait()
		return
	}

	// The GL context moves to the tick goroutine; GLFW events stay on this thread.
	e.window.DetachContext()
	e.window.SetUpdateCallback(func() {
		select {
		case <-e.done:
			e.closeWindow()
		default:
		}
	})

	e.wg.Add(2)
	go e.tickLoop()
	go e.awaitDone()

	e.window.ProcessMessages()
	e.closeWindow()
}

// closeWindow stops the tick goroutine, waits for it to release the GL renderer, then
// destroys the window.
func (e *engine) closeWindow() {
	e.closeOnce.Do(func() {
		e.stop()
		e.wg.Wait()
		if err := e.window.Close(); err != nil {
			log.Printf("[Engine] close window: %v", err)
		}
	})
}

func (e *engine) Quit() {
	e.stop()
}

func (e *engine) stop() {
	e.doneOnce.Do(func() {
		close(e.done)
	})
}

// tickLoop calls Step at the configured rate until stopped. With a window it owns the GL
// context and creates the GL renderer if none was supplied. A panic in a tick stops the
// engine instead of the process.
func (e *engine) tickLoop() {
	defer e.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[Engine] tick goroutine recovered from panic: %v", r)
			e.stop()
		}
	}()

	if e.window != nil {
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()
		e.window.MakeContextCurrent()
		defer e.window.DetachContext()

		if e.renderer == nil {
			e.renderer = renderer.NewRenderer(renderer.BackendTypeGL,
				renderer.WithSize(e.window.Width(), e.window.Height()))
			for _, s := range e.sortedScenes() {
				s.Camera().SetAspect(e.renderer.Aspect())
			}
		}
		defer e.renderer.Release()
	}

	e.mu.RLock()
	ticker := time.NewTicker(e.interval)
	e.mu.RUnlock()
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-e.done:
			return
		case now := <-ticker.C:
			e.Step(now.Sub(last).Seconds())
			last = now
		case d := <-e.rateUpdates:
			ticker.Reset(d)
		}
	}
}

func (e *engine) awaitDone() {
	defer e.wg.Done()
	<-e.done
}

func (e *engine) Step(deltaTime float64) {
	e.drainCommands()

	if deltaTime < 0 {
		deltaTime = 0
	}
	if e.maxDelta > 0 && deltaTime > e.maxDelta {
		deltaTime = e.maxDelta
	}

	scenes := e.sortedScenes()
	start := time.Now()
	for _, s := range scenes {
		s.Update(deltaTime)
	}
	work := time.Since(start)

	vertices := 0
	if e.renderer != nil && e.renderer.BeginFrame() == nil {
		for _, s := range scenes {
			cam := s.Camera()
			cam.Update()
			lines := s.Lines()
			vertices += lines.Len()
			e.renderer.DrawLines(cam.ViewProjectionMatrix(), lines.Vertices())
		}
		e.renderer.EndFrame()
		if e.window != nil {
			e.window.SwapBuffers()
		}
	}

	if e.tickCallback != nil {
		e.tickCallback(deltaTime)
	}

	if e.profiling.Load() && e.profiler != nil {
		e.profiler.Tick(work, vertices)
	}
}

// drainCommands runs every queued command without blocking.
func (e *engine) drainCommands() {
	for {
		select {
		case cmd := <-e.commands:
			cmd()
		default:
			return
		}
	}
}

func (e *engine) Submit(cmd func()) bool {
	select {
	case e.commands <- cmd:
		return true
	default:
		log.Printf("[Engine] command queue full, dropping command")
		return false
	}
}

func (e *engine) HandleKey(keyCode uint32) bool {
	action, ok := e.keyBindings[keyCode]
	if !ok {
		return false
	}
	return e.Submit(func() {
		for _, s := range e.sortedScenes() {
			action.apply(s)
		}
	})
}

// sortedScenes returns the registered scenes in ascending key order.
func (e *engine) sortedScenes() []scene.Scene {
	e.mu.RLock()
	defer e.mu.RUnlock()
	order := make([]int, 0, len(e.scenes))
	for key := range e.scenes {
		order = append(order, key)
	}
	sort.Ints(order)
	out := make([]scene.Scene, len(order))
	for i, key := range order {
		out[i] = e.scenes[key]
	}
	return out
}

func (e *engine) EnableProfiler() {
	e.profiling.Store(true)
}

func (e *engine) DisableProfiler() {
	e.profiling.Store(false)
}

// SetTickRate may be called from any goroutine. It applies immediately when the loop is running;
// a newer rate replaces one still pending.
func (e *engine) SetTickRate(tps float64) {
	d := tickInterval(tps)
	e.mu.Lock()
	e.interval = d
	e.mu.Unlock()
	if !e.running.Load() {
		select {
		case <-e.rateUpdates:
		default:
		}
		return
	}
	for {
		select {
		case e.rateUpdates <- d:
			return
		default:
		}
		select {
		case <-e.rateUpdates:
		default:
		}
	}
}

// tickInterval converts a rate in ticks per second to a ticker interval. Rates <= 0 mean 60.
func tickInterval(tps float64) time.Duration {
	if tps <= 0 {
		tps = 60
	}
	return time.Duration(float64(time.Second) / tps)
}

func (e *engine) SetTickCallback(callback func(deltaTime float64)) {
	e.tickCallback = callback
}

func (e *engine) AddScene(key int, s scene.Scene) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.scenes[key] = s
}

func (e *engine) RemoveScene(key int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.scenes, key)
}

func (e *engine) Scene(key int) scene.Scene {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.scenes[key]
}

func (e *engine) Scenes() map[int]scene.Scene {
	e.mu.RLock()
	defer e.mu.RUnlock()
	snapshot := make(map[int]scene.Scene, len(e.scenes))
	for key, s := range e.scenes {
		snapshot[key] = s
	}
	return snapshot
}
