package scene

import (
	"runtime"
	"slices"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-anim/common"
	"github.com/Carmen-Shannon/oxy-anim/engine/animator"
	"github.com/Carmen-Shannon/oxy-anim/engine/camera"
	"github.com/Carmen-Shannon/oxy-anim/engine/debug"
	"github.com/Carmen-Shannon/oxy-anim/engine/game_object"
	"github.com/Carmen-Shannon/oxy-anim/engine/model"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/go-gl/mathgl/mgl32"
)

// cullPadding scales the bind-pose bounding radius when culling animated objects.
const cullPadding = 1.5

// Scene holds the animated objects being inspected, the camera looking at them, and the floor grid.
// Each tick the owner calls Update and then Lines, and hands the line buffer to a renderer.
//
// Update, Lines and Dispatch must be called from one goroutine (the tick loop). Add, Remove and the
// accessors may be called from anywhere.
type Scene interface {
	// Name returns the name of the scene.
	//
	// Returns:
	//   - string: the scene name
	Name() string

	// Camera returns the scene camera.
	//
	// Returns:
	//   - camera.Camera: the camera
	Camera() camera.Camera

	// SetCamera replaces the scene camera.
	//
	// Parameters:
	//   - cam: the new camera (must not be nil)
	SetCamera(cam camera.Camera)

	// Grid returns the floor grid.
	//
	// Returns:
	//   - debug.Grid: the grid
	Grid() debug.Grid

	// GridEnabled reports whether the grid is drawn.
	//
	// Returns:
	//   - bool: true if the grid is drawn
	GridEnabled() bool

	// SetGridEnabled shows or hides the grid.
	//
	// Parameters:
	//   - enabled: true to draw the grid
	SetGridEnabled(enabled bool)

	// Resolver returns the hierarchy resolver used to draw skeletons.
	//
	// Returns:
	//   - debug.Resolver: the resolver
	Resolver() debug.Resolver

	// Add registers an object, assigning it an ID if it has none.
	//
	// Parameters:
	//   - obj: the object to add
	//
	// Returns:
	//   - uint64: the object's ID
	Add(obj game_object.GameObject) uint64

	// Get returns the object with the given ID, or nil.
	//
	// Parameters:
	//   - id: the object ID
	//
	// Returns:
	//   - game_object.GameObject: the object, or nil if id is unknown
	Get(id uint64) game_object.GameObject

	// Remove unregisters the object with the given ID.
	//
	// Parameters:
	//   - id: the object ID
	Remove(id uint64)

	// Objects returns the registered objects ordered by ID.
	//
	// Returns:
	//   - []game_object.GameObject: the objects
	Objects() []game_object.GameObject

	// Count returns the number of registered objects.
	//
	// Returns:
	//   - int: the object count
	Count() int

	// Clear removes every object.
	Clear()

	// Update advances the grid hue and every enabled object's animator by deltaTime seconds.
	// With more than one compute worker the objects are advanced in parallel; each object is
	// touched by exactly one task, and Update returns only after every task has finished.
	//
	// Parameters:
	//   - deltaTime: elapsed time in seconds
	Update(deltaTime float64)

	// Lines rebuilds the scene's line buffer from the grid and every enabled object's pose.
	// With culling on, objects outside the camera frustum are skipped.
	// The returned buffer is reused by the next call.
	//
	// Returns:
	//   - debug.LineBuffer: the line buffer
	Lines() debug.LineBuffer

	// Dispatch applies a playback event to every object's animator.
	//
	// Parameters:
	//   - e: the event
	Dispatch(e animator.Event)

	// FrameObjects points the camera controller at the combined bounds of all objects.
	FrameObjects()

	// Release stops the compute workers. The scene must not be updated afterwards.
	Release()
}

type scene struct {
	mu *sync.RWMutex

	name string
	cam  camera.Camera

	registry map[uint64]game_object.GameObject
	nextID   uint64

	grid        debug.Grid
	gridEnabled bool
	resolver    debug.Resolver
	lines       debug.LineBuffer
	lineCap     int
	culling     bool

	// ordered is reused each tick to hold the enabled objects.
	ordered []game_object.GameObject

	// computePool runs per-object updates. Workers persist across ticks; a WaitGroup
	// gives the per-tick barrier since pool.Wait() is meant for draining, not frame sync.
	computePool    worker.DynamicWorkerPool
	computeWorkers int
}

var _ Scene = &scene{}

// NewScene creates a new Scene looking through cam. NewScene panics if cam is nil.
//
// Parameters:
//   - name: label returned by Name
//   - cam: the viewing camera, required
//   - options: objects, workers, grid and overlays
//
// Returns:
//   - Scene: the scene; a worker pool is started when more than one worker is configured
func NewScene(name string, cam camera.Camera, options ...SceneBuilderOption) Scene {
	if cam == nil {
		panic("scene: NewScene requires a non-nil Camera")
	}

	s := &scene{
		mu:             &sync.RWMutex{},
		name:           name,
		cam:            cam,
		registry:       make(map[uint64]game_object.GameObject),
		nextID:         1,
		gridEnabled:    true,
		lineCap:        debug.DefaultLineCapacity,
		computeWorkers: max(runtime.NumCPU()-1, 1),
	}

	for _, option := range options {
		option(s)
	}

	if s.grid == nil {
		s.grid = debug.NewGrid()
	}
	if s.resolver == nil {
		s.resolver = debug.NewResolver()
	}
	s.lines = debug.NewLineBuffer(s.lineCap)

	if s.computeWorkers > 1 {
		s.computePool = worker.NewDynamicWorkerPool(s.computeWorkers, 256, 1*time.Second)
	}
	return s
}

func (s *scene) Name() string {
	return s.name
}

func (s *scene) Camera() camera.Camera {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cam
}

func (s *scene) SetCamera(cam camera.Camera) {
	if cam == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cam = cam
}

func (s *scene) Grid() debug.Grid {
	return s.grid
}

func (s *scene) GridEnabled() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.gridEnabled
}

func (s *scene) SetGridEnabled(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gridEnabled = enabled
}

func (s *scene) Resolver() debug.Resolver {
	return s.resolver
}

func (s *scene) Add(obj game_object.GameObject) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.add(obj)
}

func (s *scene) add(obj game_object.GameObject) uint64 {
	if obj.ID() == 0 {
		obj.SetID(s.nextID)
	}
	if obj.ID() >= s.nextID {
		s.nextID = obj.ID() + 1
	}
	s.registry[obj.ID()] = obj
	return obj.ID()
}

func (s *scene) Get(id uint64) game_object.GameObject {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.registry[id]
}

func (s *scene) Remove(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.registry, id)
}

func (s *scene) Objects() []game_object.GameObject {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sorted(nil, false)
}

// sorted appends the registered objects to dst in ID order, optionally only the enabled ones.
// The caller holds s.mu.
func (s *scene) sorted(dst []game_object.GameObject, enabledOnly bool) []game_object.GameObject {
	for _, obj := range s.registry {
		if enabledOnly && !obj.Enabled() {
			continue
		}
		dst = append(dst, obj)
	}
	slices.SortFunc(dst, func(a, b game_object.GameObject) int {
		switch {
		case a.ID() < b.ID():
			return -1
		case a.ID() > b.ID():
			return 1
		}
		return 0
	})
	return dst
}

func (s *scene) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.registry)
}

func (s *scene) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.registry)
}

func (s *scene) Update(deltaTime float64) {
	s.grid.Update(deltaTime)

	s.mu.RLock()
	s.ordered = s.sorted(s.ordered[:0], true)
	s.mu.RUnlock()

	if s.computePool == nil || len(s.ordered) < 2 {
		for _, obj := range s.ordered {
			obj.Update(deltaTime)
		}
		return
	}

	var wg sync.WaitGroup
	for i, obj := range s.ordered {
		wg.Add(1)
		s.computePool.SubmitTask(worker.Task{
			ID: i,
			Do: func() (any, error) {
				defer wg.Done()
				obj.Update(deltaTime)
				return nil, nil
			},
		})
	}
	wg.Wait()
}

func (s *scene) Lines() debug.LineBuffer {
	s.mu.RLock()
	gridEnabled := s.gridEnabled
	s.ordered = s.sorted(s.ordered[:0], true)
	s.mu.RUnlock()

	s.lines.Clear()
	if gridEnabled {
		s.grid.Emit(s.lines)
	}

	var frustum common.Frustum
	if s.culling {
		frustum = common.FrustumFromMatrix(s.cam.ViewProjectionMatrix())
	}
	for _, obj := range s.ordered {
		if s.culling && !visible(frustum, obj) {
			continue
		}
		obj.EmitLines(s.resolver, s.lines)
	}
	return s.lines
}

// visible tests the object's bounding sphere against f. The bind-pose radius is padded
// because animated joints may reach past it.
func visible(f common.Frustum, obj game_object.GameObject) bool {
	m := obj.Model()
	if m == nil {
		return true
	}
	return f.ContainsSphere(model.Center(m).Add(obj.Position()), m.BoundingRadius()*cullPadding+0.01)
}

func (s *scene) Dispatch(e animator.Event) {
	s.mu.RLock()
	objs := s.sorted(nil, false)
	s.mu.RUnlock()

	for _, obj := range objs {
		if a := obj.Animator(); a != nil {
			animator.Apply(a, e)
		}
	}
}

func (s *scene) FrameObjects() {
	ctrl := s.Camera().Controller()
	if ctrl == nil {
		return
	}
	objs := s.Objects()
	if len(objs) == 0 {
		return
	}

	var lo, hi mgl32.Vec3
	first := true
	for _, obj := range objs {
		m := obj.Model()
		if m == nil {
			continue
		}
		c := model.Center(m).Add(obj.Position())
		r := m.BoundingRadius()
		ext := mgl32.Vec3{r, r, r}
		if first {
			lo, hi = c.Sub(ext), c.Add(ext)
			first = false
			continue
		}
		for k := 0; k < 3; k++ {
			lo[k] = min(lo[k], c[k]-r)
			hi[k] = max(hi[k], c[k]+r)
		}
	}
	if first {
		return
	}
	ctrl.Frame(lo.Add(hi).Mul(0.5), hi.Sub(lo).Len()*0.5)
}

func (s *scene) Release() {
	if s.computePool != nil {
		s.computePool.Stop()
	}
}
