package telemetry

import "github.com/pthm-cable/flare/particle"

// Collector turns the cumulative counters of a particle.System into
// per-window deltas.
type Collector struct {
	windowDuration float64

	windowStart float64
	frames      int
	last        particle.Stats

	energies []float64
}

// NewCollector creates a collector whose windows last windowDurationSec
// seconds of simulation time.
func NewCollector(windowDurationSec float64) *Collector {
	if windowDurationSec <= 0 {
		windowDurationSec = 1
	}
	return &Collector{windowDuration: windowDurationSec}
}

// RecordFrame counts a rendered frame in the current window.
func (c *Collector) RecordFrame() {
	c.frames++
}

// ShouldFlush returns true once now has reached the end of the window.
func (c *Collector) ShouldFlush(now float64) bool {
	return now-c.windowStart >= c.windowDuration
}

// WindowDuration returns the window length in seconds.
func (c *Collector) WindowDuration() float64 {
	return c.windowDuration
}

// Flush produces a WindowStats ending at now and starts the next window.
// stats is the system's cumulative counters; particles is its live buffer,
// sampled for the energy and size distribution.
func (c *Collector) Flush(now float64, stats particle.Stats, poolFree int, particles []*particle.Particle) WindowStats {
	ws := WindowStats{
		WindowStart: c.windowStart,
		WindowEnd:   now,
		Frames:      c.frames,

		Live:     stats.Live,
		Capacity: stats.Capacity,
		PoolFree: poolFree,

		Emitted:      stats.Emitted - c.last.Emitted,
		Removed:      stats.Removed - c.last.Removed,
		Dropped:      stats.Dropped - c.last.Dropped,
		SpawnErrors:  stats.SpawnErrors - c.last.SpawnErrors,
		Steps:        stats.Steps - c.last.Steps,
		SkippedSteps: stats.SkippedSteps - c.last.SkippedSteps,
		Flushes:      stats.Flushes - c.last.Flushes,
		Triangles:    stats.Triangles - c.last.Triangles,
	}

	if offered := ws.Emitted + ws.Dropped; offered > 0 {
		ws.DropRate = float64(ws.Dropped) / float64(offered)
	}
	if ws.Capacity > 0 {
		ws.Occupancy = float64(ws.Live) / float64(ws.Capacity)
	}
	if ws.Flushes > 0 {
		ws.TrianglesPerFlush = float64(ws.Triangles) / float64(ws.Flushes)
	}

	c.energies = c.energies[:0]
	var sizeSum float64
	for _, p := range particles {
		c.energies = append(c.energies, float64(p.Energy))
		sizeSum += float64(p.Size)
	}
	ws.EnergyMean, ws.EnergyP10, ws.EnergyP50, ws.EnergyP90 = ComputeEnergyStats(c.energies)
	if len(particles) > 0 {
		ws.SizeMean = sizeSum / float64(len(particles))
	}

	c.windowStart = now
	c.frames = 0
	c.last = stats
	return ws
}
