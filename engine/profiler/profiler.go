package profiler

import (
	"log"
	"runtime"
	"time"
)

// Profiler tracks tick rate, tick-interval jitter, and memory statistics for
// performance monitoring. Outputs stats to the log at a configurable interval.
type Profiler struct {
	tickCount      int
	lastTime       time.Time
	lastTick       time.Time
	minInterval    time.Duration
	maxInterval    time.Duration
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastTotalAlloc uint64
}

// NewProfiler creates a new Profiler with default settings.
// Update interval defaults to 1 second.
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler() *Profiler {
	now := time.Now()
	return &Profiler{
		lastTime:       now,
		lastTick:       now,
		updateInterval: time.Second,
	}
}

// Tick should be called once per engine tick to track timing.
// Logs performance statistics when the update interval has elapsed:
// ticks per second, min/max tick interval since the last report (jitter),
// heap usage, allocation rate, GC count, and total memory.
//
// Returns:
//   - bool: true if stats were logged this tick, false otherwise
func (p *Profiler) Tick() bool {
	now := time.Now()

	interval := now.Sub(p.lastTick)
	p.lastTick = now
	if p.tickCount == 0 || interval < p.minInterval {
		p.minInterval = interval
	}
	if interval > p.maxInterval {
		p.maxInterval = interval
	}
	p.tickCount++

	elapsed := now.Sub(p.lastTime)
	if elapsed < p.updateInterval {
		return false
	}

	tps := float64(p.tickCount) / elapsed.Seconds()

	runtime.ReadMemStats(&p.memStats)
	// Alloc: bytes of live heap objects. TotalAlloc: cumulative heap bytes
	// (increases forever, tracks churn). Sys: memory obtained from the OS.
	allocMB := float64(p.memStats.Alloc) / 1024 / 1024
	sysMB := float64(p.memStats.Sys) / 1024 / 1024

	allocDelta := p.memStats.TotalAlloc - p.lastTotalAlloc
	allocRateMB := float64(allocDelta) / 1024 / 1024 / elapsed.Seconds()

	log.Printf("[Profiler] TPS: %.2f | Tick: %.2f-%.2f ms | Heap: %.2f MB | Alloc Rate: %.2f MB/s | GC: %d | Sys: %.2f MB",
		tps,
		float64(p.minInterval.Microseconds())/1000,
		float64(p.maxInterval.Microseconds())/1000,
		allocMB, allocRateMB, p.memStats.NumGC, sysMB)

	p.tickCount = 0
	p.minInterval = 0
	p.maxInterval = 0
	p.lastTime = now
	p.lastTotalAlloc = p.memStats.TotalAlloc
	return true
}
