package profiler

import (
	"log"
	"runtime"
	"time"
)

// Profiler aggregates per-tick timings and logs one summary line per interval together with
// heap and GC figures.
type Profiler struct {
	tickCount      int
	workTotal      time.Duration
	vertexTotal    uint64
	lastTime       time.Time
	updateInterval time.Duration
	mem            runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64

	// now is swapped in tests.
	now func() time.Time
	// logf is swapped in tests.
	logf func(format string, args ...any)
}

// Stats is a snapshot of one reporting interval.
type Stats struct {
	TicksPerSecond  float64
	MeanWork        time.Duration
	VerticesPerTick float64
	HeapMB          float64
	AllocRateMB     float64
	GCCount         uint32
	LastPauseUs     uint64
	MaxPauseUs      uint64
	SysMB           float64
}

// NewProfiler creates a new Profiler reporting every interval.
// An interval <= 0 defaults to 1 second.
//
// Parameters:
//   - interval: how often statistics are logged
//
// Returns:
//   - *Profiler: a profiler whose first interval starts now
func NewProfiler(interval time.Duration) *Profiler {
	if interval <= 0 {
		interval = time.Second
	}
	return &Profiler{
		lastTime:       time.Now(),
		updateInterval: interval,
		now:            time.Now,
		logf:           log.Printf,
	}
}

// Tick records one engine tick and, once the interval has elapsed, logs and resets the totals.
//
// Parameters:
//   - work: time spent updating the scene and building lines this tick
//   - vertices: line vertices submitted to the renderer this tick
//
// Returns:
//   - *Stats: the interval's statistics if they were logged this tick, nil otherwise
func (p *Profiler) Tick(work time.Duration, vertices int) *Stats {
	p.tickCount++
	p.workTotal += work
	p.vertexTotal += uint64(vertices)

	now := p.now()
	elapsed := now.Sub(p.lastTime)
	if elapsed < p.updateInterval {
		return nil
	}

	stats := &Stats{
		TicksPerSecond:  float64(p.tickCount) / elapsed.Seconds(),
		MeanWork:        p.workTotal / time.Duration(p.tickCount),
		VerticesPerTick: float64(p.vertexTotal) / float64(p.tickCount),
	}

	runtime.ReadMemStats(&p.mem)
	stats.HeapMB = float64(p.mem.Alloc) / 1024 / 1024
	stats.SysMB = float64(p.mem.Sys) / 1024 / 1024

	stats.AllocRateMB = float64(p.mem.TotalAlloc-p.lastTotalAlloc) / 1024 / 1024 / elapsed.Seconds()

	// PauseNs is a circular buffer of the last 256 GC pauses.
	gcCount := p.mem.NumGC
	stats.GCCount = gcCount
	if gcCount > 0 {
		stats.LastPauseUs = p.mem.PauseNs[(gcCount-1)%256] / 1000

		from := p.lastGCCount
		if gcCount-from > 256 {
			from = gcCount - 256
		}
		for i := from; i < gcCount; i++ {
			stats.MaxPauseUs = max(stats.MaxPauseUs, p.mem.PauseNs[i%256]/1000)
		}
	}

	p.logf("[Profiler] TPS: %.2f | Sample: %v | Verts: %.0f | Heap: %.2f MB | Alloc Rate: %.2f MB/s | GC: %d (last: %d µs, max: %d µs) | Sys: %.2f MB",
		stats.TicksPerSecond, stats.MeanWork, stats.VerticesPerTick, stats.HeapMB, stats.AllocRateMB,
		stats.GCCount, stats.LastPauseUs, stats.MaxPauseUs, stats.SysMB)

	p.tickCount = 0
	p.workTotal = 0
	p.vertexTotal = 0
	p.lastTime = now
	p.lastGCCount = gcCount
	p.lastTotalAlloc = p.mem.TotalAlloc
	return stats
}
