package particle

import "log/slog"

// Stats holds cumulative counters for a System.
type Stats struct {
	Live         int    // Particles currently in the active buffer
	Capacity     int    // Active buffer size
	Emitted      uint64 // Particles appended to the active buffer
	Removed      uint64 // Particles returned to the pool after dying
	Dropped      uint64 // Particles rejected by OverflowReject
	SpawnErrors  uint64 // Emit calls that reported a pool failure
	Steps        uint64 // Fixed steps simulated
	SkippedSteps uint64 // Steps skipped by the MaxSteps guard
	Flushes      uint64 // Batches submitted to render sinks
	Triangles    uint64 // Triangles submitted to render sinks
}

// LogValue implements slog.LogValuer for structured logging.
func (s Stats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("live", s.Live),
		slog.Int("capacity", s.Capacity),
		slog.Uint64("emitted", s.Emitted),
		slog.Uint64("removed", s.Removed),
		slog.Uint64("dropped", s.Dropped),
		slog.Uint64("spawn_errors", s.SpawnErrors),
		slog.Uint64("steps", s.Steps),
		slog.Uint64("skipped_steps", s.SkippedSteps),
		slog.Uint64("flushes", s.Flushes),
		slog.Uint64("triangles", s.Triangles),
	)
}
