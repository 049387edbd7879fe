package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStart float64 `csv:"-"`
	WindowEnd   float64 `csv:"sim_time"`
	Frames      int     `csv:"frames"`

	// Sampled at window end
	Live     int `csv:"live"`
	Capacity int `csv:"capacity"`
	PoolFree int `csv:"pool_free"`

	// Counter deltas over the window
	Emitted      uint64 `csv:"emitted"`
	Removed      uint64 `csv:"removed"`
	Dropped      uint64 `csv:"dropped"`
	SpawnErrors  uint64 `csv:"spawn_errors"`
	Steps        uint64 `csv:"steps"`
	SkippedSteps uint64 `csv:"skipped_steps"`
	Flushes      uint64 `csv:"flushes"`
	Triangles    uint64 `csv:"triangles"`

	DropRate          float64 `csv:"drop_rate"`           // Dropped / (emitted + dropped)
	Occupancy         float64 `csv:"occupancy"`           // Live / capacity
	TrianglesPerFlush float64 `csv:"triangles_per_flush"` // Mean batch size

	// Remaining lifetime distribution of live particles
	EnergyMean float64 `csv:"energy_mean"`
	EnergyP10  float64 `csv:"energy_p10"`
	EnergyP50  float64 `csv:"energy_p50"`
	EnergyP90  float64 `csv:"energy_p90"`

	SizeMean float64 `csv:"size_mean"`
}

// ComputeEnergyStats returns the mean and the 10th, 50th and 90th empirical
// quantiles of values. values is not modified.
func ComputeEnergyStats(values []float64) (mean, p10, p50, p90 float64) {
	if len(values) == 0 {
		return 0, 0, 0, 0
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mean = stat.Mean(sorted, nil)
	p10 = stat.Quantile(0.10, stat.Empirical, sorted, nil)
	p50 = stat.Quantile(0.50, stat.Empirical, sorted, nil)
	p90 = stat.Quantile(0.90, stat.Empirical, sorted, nil)
	return mean, p10, p50, p90
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Float64("window_start", s.WindowStart),
		slog.Float64("sim_time", s.WindowEnd),
		slog.Int("frames", s.Frames),
		slog.Int("live", s.Live),
		slog.Int("capacity", s.Capacity),
		slog.Int("pool_free", s.PoolFree),
		slog.Uint64("emitted", s.Emitted),
		slog.Uint64("removed", s.Removed),
		slog.Uint64("dropped", s.Dropped),
		slog.Uint64("spawn_errors", s.SpawnErrors),
		slog.Uint64("steps", s.Steps),
		slog.Uint64("skipped_steps", s.SkippedSteps),
		slog.Uint64("flushes", s.Flushes),
		slog.Uint64("triangles", s.Triangles),
		slog.Float64("drop_rate", s.DropRate),
		slog.Float64("occupancy", s.Occupancy),
		slog.Float64("triangles_per_flush", s.TrianglesPerFlush),
		slog.Float64("energy_mean", s.EnergyMean),
		slog.Float64("energy_p10", s.EnergyP10),
		slog.Float64("energy_p50", s.EnergyP50),
		slog.Float64("energy_p90", s.EnergyP90),
		slog.Float64("size_mean", s.SizeMean),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats", "window", s)
}
