package telemetry

import (
	"log/slog"
	"time"

	"gonum.org/v1/gonum/floats"

	"github.com/pthm-cable/flare/particle"
)

// Phase names for a frame. They match the systems registry IDs and
// particle.Phase names.
const (
	PhaseMotion     = "motion"
	PhaseAnchors    = "anchors"
	PhaseEmitting   = "emitting"
	PhaseSimulating = "simulating"
	PhaseRemoving   = "removing"
	PhaseDrawing    = "drawing"
	PhaseHUD        = "hud"
	PhaseTelemetry  = "telemetry"
)

// framePhases lists the phases in frame order for logging and CSV export.
var framePhases = []string{
	PhaseMotion, PhaseAnchors, PhaseEmitting, PhaseSimulating,
	PhaseRemoving, PhaseDrawing, PhaseHUD, PhaseTelemetry,
}

// PerfSample holds timing data for a single frame.
type PerfSample struct {
	Total  time.Duration
	Phases map[string]time.Duration
}

// PerfCollector times frame phases over a rolling window of frames.
type PerfCollector struct {
	ring  []PerfSample
	next  int
	count int

	cur        PerfSample
	frameStart time.Time
	phase      string
	phaseStart time.Time

	// Wall time between presented frames
	lastPresent time.Time
	presentGap  time.Duration
}

// NewPerfCollector creates a collector averaging over windowSize frames.
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{ring: make([]PerfSample, windowSize)}
}

// StartTick begins timing a new frame.
func (p *PerfCollector) StartTick() {
	p.frameStart = time.Now()
	p.cur = PerfSample{Phases: make(map[string]time.Duration, len(framePhases))}
	p.phase = ""
}

// StartPhase closes the running phase, if any, and starts timing phase.
func (p *PerfCollector) StartPhase(phase string) {
	now := time.Now()
	p.closePhase(now)
	p.phase = phase
	p.phaseStart = now
}

// EndPhase stops timing the current phase. Time until the next StartPhase
// counts toward the frame but no phase.
func (p *PerfCollector) EndPhase() {
	p.closePhase(time.Now())
	p.phase = ""
}

func (p *PerfCollector) closePhase(now time.Time) {
	if p.phase == "" || p.cur.Phases == nil {
		return
	}
	p.cur.Phases[p.phase] += now.Sub(p.phaseStart)
}

// PhaseHook returns a hook for particle.System.SetPhaseHook that times the
// system's phases. Returning to idle ends the current phase.
func (p *PerfCollector) PhaseHook() particle.PhaseHook {
	return func(ph particle.Phase) {
		if ph == particle.PhaseIdle {
			p.EndPhase()
			return
		}
		p.StartPhase(ph.String())
	}
}

// EndTick finishes the frame and stores its sample in the ring.
func (p *PerfCollector) EndTick() {
	now := time.Now()
	p.closePhase(now)
	p.phase = ""
	p.cur.Total = now.Sub(p.frameStart)

	p.ring[p.next] = p.cur
	p.next = (p.next + 1) % len(p.ring)
	if p.count < len(p.ring) {
		p.count++
	}
}

// RecordFrame marks a presented frame for FPS measurement.
func (p *PerfCollector) RecordFrame() {
	now := time.Now()
	if !p.lastPresent.IsZero() {
		p.presentGap = now.Sub(p.lastPresent)
	}
	p.lastPresent = now
}

// PerfStats holds aggregated performance statistics.
type PerfStats struct {
	AvgTickDuration time.Duration
	MinTickDuration time.Duration
	MaxTickDuration time.Duration

	PhaseAvg map[string]time.Duration
	PhasePct map[string]float64 // Percent of the average frame

	TicksPerSecond float64

	FrameDuration time.Duration
	FPS           float64
}

// Stats aggregates the samples currently in the window.
func (p *PerfCollector) Stats() PerfStats {
	out := PerfStats{
		PhaseAvg:      make(map[string]time.Duration),
		PhasePct:      make(map[string]float64),
		FrameDuration: p.presentGap,
	}
	if p.presentGap > 0 {
		out.FPS = float64(time.Second) / float64(p.presentGap)
	}
	if p.count == 0 {
		return out
	}

	totals := make([]float64, p.count)
	sums := make(map[string]time.Duration)
	for i, s := range p.ring[:p.count] {
		totals[i] = float64(s.Total)
		for name, d := range s.Phases {
			sums[name] += d
		}
	}

	n := float64(p.count)
	avg := time.Duration(floats.Sum(totals) / n)
	out.AvgTickDuration = avg
	out.MinTickDuration = time.Duration(floats.Min(totals))
	out.MaxTickDuration = time.Duration(floats.Max(totals))
	if avg > 0 {
		out.TicksPerSecond = float64(time.Second) / float64(avg)
	}

	for name, sum := range sums {
		pa := time.Duration(float64(sum) / n)
		out.PhaseAvg[name] = pa
		if avg > 0 {
			out.PhasePct[name] = float64(pa) / float64(avg) * 100
		}
	}
	return out
}

// LogStats logs performance statistics.
func (s PerfStats) LogStats() {
	attrs := []any{
		"avg_tick_us", s.AvgTickDuration.Microseconds(),
		"max_tick_us", s.MaxTickDuration.Microseconds(),
		"ticks_per_sec", int(s.TicksPerSecond),
	}
	if s.FPS > 0 {
		attrs = append(attrs, "fps", int(s.FPS))
	}
	for _, phase := range framePhases {
		if pct, ok := s.PhasePct[phase]; ok && pct > 0.1 {
			attrs = append(attrs, phase+"_pct", float64(int(pct*10))/10)
		}
	}
	slog.Info("perf", attrs...)
}

// LogValue implements slog.LogValuer for structured logging.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("avg_tick_us", s.AvgTickDuration.Microseconds()),
		slog.Int64("min_tick_us", s.MinTickDuration.Microseconds()),
		slog.Int64("max_tick_us", s.MaxTickDuration.Microseconds()),
		slog.Float64("ticks_per_sec", s.TicksPerSecond),
	}
	if s.FPS > 0 {
		attrs = append(attrs, slog.Float64("fps", s.FPS))
	}
	for _, phase := range framePhases {
		if pct, ok := s.PhasePct[phase]; ok {
			attrs = append(attrs, slog.Float64(phase+"_pct", pct))
		}
	}
	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is a flat struct for CSV export of performance stats.
type PerfStatsCSV struct {
	SimTime       float64 `csv:"sim_time"`
	AvgTickUS     int64   `csv:"avg_tick_us"`
	MinTickUS     int64   `csv:"min_tick_us"`
	MaxTickUS     int64   `csv:"max_tick_us"`
	TicksPerSec   float64 `csv:"ticks_per_sec"`
	FPS           float64 `csv:"fps"`
	MotionPct     float64 `csv:"motion_pct"`
	AnchorsPct    float64 `csv:"anchors_pct"`
	EmittingPct   float64 `csv:"emitting_pct"`
	SimulatingPct float64 `csv:"simulating_pct"`
	RemovingPct   float64 `csv:"removing_pct"`
	DrawingPct    float64 `csv:"drawing_pct"`
	HUDPct        float64 `csv:"hud_pct"`
	TelemetryPct  float64 `csv:"telemetry_pct"`
}

// ToCSV converts PerfStats to a flat CSV-friendly struct.
func (s PerfStats) ToCSV(simTime float64) PerfStatsCSV {
	return PerfStatsCSV{
		SimTime:       simTime,
		AvgTickUS:     s.AvgTickDuration.Microseconds(),
		MinTickUS:     s.MinTickDuration.Microseconds(),
		MaxTickUS:     s.MaxTickDuration.Microseconds(),
		TicksPerSec:   s.TicksPerSecond,
		FPS:           s.FPS,
		MotionPct:     s.PhasePct[PhaseMotion],
		AnchorsPct:    s.PhasePct[PhaseAnchors],
		EmittingPct:   s.PhasePct[PhaseEmitting],
		SimulatingPct: s.PhasePct[PhaseSimulating],
		RemovingPct:   s.PhasePct[PhaseRemoving],
		DrawingPct:    s.PhasePct[PhaseDrawing],
		HUDPct:        s.PhasePct[PhaseHUD],
		TelemetryPct:  s.PhasePct[PhaseTelemetry],
	}
}
