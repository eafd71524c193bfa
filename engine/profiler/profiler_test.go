package profiler

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfilerReportsPerInterval(t *testing.T) {
	p := NewProfiler(time.Second)
	start := time.Unix(100, 0)
	clock := start
	p.lastTime = start
	p.now = func() time.Time { return clock }

	var lines []string
	p.logf = func(format string, args ...any) { lines = append(lines, fmt.Sprintf(format, args...)) }

	for i := 0; i < 9; i++ {
		clock = clock.Add(100 * time.Millisecond)
		assert.Nil(t, p.Tick(2*time.Millisecond, 10))
	}
	clock = clock.Add(100 * time.Millisecond)
	stats := p.Tick(4*time.Millisecond, 20)
	require.NotNil(t, stats)

	assert.InDelta(t, 10, stats.TicksPerSecond, 1e-9)
	assert.Equal(t, 2200*time.Microsecond, stats.MeanWork)
	assert.InDelta(t, 11, stats.VerticesPerTick, 1e-9)
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "[Profiler] TPS: 10.00")

	clock = clock.Add(100 * time.Millisecond)
	assert.Nil(t, p.Tick(time.Millisecond, 0), "counters restart after a report")
}

func TestNewProfilerDefaultInterval(t *testing.T) {
	assert.Equal(t, time.Second, NewProfiler(0).updateInterval)
	assert.Equal(t, 250*time.Millisecond, NewProfiler(250*time.Millisecond).updateInterval)
}
