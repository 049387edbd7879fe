package game

import (
	"errors"
	"log/slog"

	"github.com/pthm-cable/flare/particle"
	"github.com/pthm-cable/flare/telemetry"
)

// Update advances the scene and the particle system by dt seconds of host
// time, then flushes telemetry when a window closes. It is a no-op while
// paused.
func (g *Game) Update(dt float64) error {
	if g.paused {
		return nil
	}

	perf := g.perfCollector
	if g.tickOpen {
		perf.EndTick()
	}
	perf.StartTick()
	g.tickOpen = true

	perf.StartPhase(telemetry.PhaseMotion)
	g.motion.Update(float32(dt))
	perf.StartPhase(telemetry.PhaseAnchors)
	g.anchors.Update(g.emitters)
	perf.EndPhase()

	err := g.system.Update(dt)
	if err != nil {
		g.lastErr = err
		if errors.Is(err, particle.ErrReentrant) {
			return err
		}
		slog.Warn("emission failed", "error", err)
	}

	g.frames++
	g.collector.RecordFrame()

	perf.StartPhase(telemetry.PhaseTelemetry)
	g.flushTelemetry()
	perf.EndPhase()

	return err
}

// Draw submits the live particles to sink.
func (g *Game) Draw(sink particle.RenderSink) error {
	if err := g.system.Draw(sink); err != nil {
		g.lastErr = err
		return err
	}
	return nil
}

// flushTelemetry closes the stats window once it has elapsed in simulation
// time, then logs and writes it.
func (g *Game) flushTelemetry() {
	now := g.system.Time()
	if !g.collector.ShouldFlush(now) {
		return
	}

	stats := g.collector.Flush(now, g.system.Stats(), g.pool.Free(), g.system.Particles())
	perfStats := g.perfCollector.Stats()

	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if g.outputManager != nil {
		if err := g.outputManager.WriteTelemetry(stats); err != nil {
			slog.Error("failed to write telemetry", "error", err)
		}
		if err := g.outputManager.WritePerf(perfStats, now); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}
}
