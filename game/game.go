// Package game wires a particle.System, the anchor scene, telemetry and the
// camera into a frame loop driven by one of the render backends.
package game

import (
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/flare/camera"
	"github.com/pthm-cable/flare/config"
	"github.com/pthm-cable/flare/particle"
	"github.com/pthm-cable/flare/systems"
	"github.com/pthm-cable/flare/telemetry"
)

// Options configures a Game beyond the YAML configuration.
type Options struct {
	Seed           int64   // RNG seed; 0 = simulation.seed from config
	LogStats       bool    // Log each telemetry window via slog
	StatsWindowSec float64 // Telemetry window override (0 = use config)
	OutputDir      string  // CSV logs and config snapshot; empty = disabled

	// Texture is bound to the particle system. Its concrete type must match
	// the render backend; nil draws untextured quads.
	Texture particle.Texture

	// StatsCallback, when set, receives every flushed telemetry window.
	StatsCallback func(telemetry.WindowStats)
}

// Game holds the complete demo state.
type Game struct {
	cfg *config.Config
	rng *rand.Rand

	pool     *particle.Pool[*particle.Particle]
	system   *particle.System
	emitters []*particle.Emitter

	force      *particle.ForceUpdater
	turbulence *particle.TurbulenceUpdater
	integrator *Integrator
	property   *particle.PropertyUpdater

	// Scene
	world    *ecs.World
	motion   *systems.MotionSystem
	anchors  *systems.AnchorSystem
	registry *systems.SystemRegistry

	camera *camera.Camera

	// Telemetry
	collector     *telemetry.Collector
	perfCollector *telemetry.PerfCollector
	outputManager *telemetry.OutputManager
	statsCallback func(telemetry.WindowStats)
	logStats      bool
	tickOpen      bool

	// State
	frames   int
	paused   bool
	lastErr  error
	overflow uint64
}

// New builds a Game from cfg.
func New(cfg *config.Config, opts Options) (*Game, error) {
	seed := opts.Seed
	if seed == 0 {
		seed = cfg.Simulation.Seed
	}

	g := &Game{
		cfg:           cfg,
		rng:           rand.New(rand.NewSource(seed)),
		registry:      systems.NewSystemRegistry(),
		statsCallback: opts.StatsCallback,
		logStats:      opts.LogStats,
		camera: camera.New(
			cfg.Derived.ScreenW32, cfg.Derived.ScreenH32,
			cfg.Derived.WorldW32, cfg.Derived.WorldH32,
		),
	}

	if err := g.buildSystem(seed); err != nil {
		return nil, err
	}
	g.system.SetTexture(opts.Texture)
	g.buildScene()

	window := cfg.Telemetry.StatsWindow
	if opts.StatsWindowSec > 0 {
		window = opts.StatsWindowSec
	}
	g.collector = telemetry.NewCollector(window)
	g.perfCollector = telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow)
	g.system.SetPhaseHook(g.perfCollector.PhaseHook())

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("creating output manager: %w", err)
	}
	g.outputManager = om
	if err := om.WriteConfig(cfg); err != nil {
		om.Close()
		return nil, fmt.Errorf("writing config snapshot: %w", err)
	}

	slog.Info("game created",
		"seed", seed,
		"emitters", len(g.emitters),
		"updaters", len(g.system.Updaters()),
		"anchors", len(cfg.Anchors),
		"capacity", cfg.Simulation.Capacity,
		"overflow", cfg.Derived.Overflow.String(),
	)
	return g, nil
}

// Unload flushes and closes telemetry output.
func (g *Game) Unload() error {
	if g.outputManager == nil {
		return nil
	}
	if err := g.outputManager.Close(); err != nil {
		return fmt.Errorf("closing output: %w", err)
	}
	return nil
}

// Config returns the configuration the game was built from.
func (g *Game) Config() *config.Config { return g.cfg }

// System returns the particle system.
func (g *Game) System() *particle.System { return g.system }

// Emitters returns the emitters in config order.
func (g *Game) Emitters() []*particle.Emitter { return g.emitters }

// Camera returns the view camera.
func (g *Game) Camera() *camera.Camera { return g.camera }

// Registry returns the phase registry used for perf labels.
func (g *Game) Registry() *systems.SystemRegistry { return g.registry }

// Perf returns the frame perf collector.
func (g *Game) Perf() *telemetry.PerfCollector { return g.perfCollector }

// Output returns the output manager, nil when output is disabled.
func (g *Game) Output() *telemetry.OutputManager { return g.outputManager }

// Stats returns the particle system counters.
func (g *Game) Stats() particle.Stats { return g.system.Stats() }

// SimTime returns the simulation clock in seconds.
func (g *Game) SimTime() float64 { return g.system.Time() }

// Frames returns the number of Update calls that advanced the simulation.
func (g *Game) Frames() int { return g.frames }

// Paused reports whether Update is a no-op.
func (g *Game) Paused() bool { return g.paused }

// TogglePause flips the paused state.
func (g *Game) TogglePause() {
	g.paused = !g.paused
	slog.Info("pause toggled", "paused", g.paused)
}

// Clear kills every live particle and returns them to the pool.
func (g *Game) Clear() {
	g.system.Clear()
	slog.Info("particles cleared", "pool_free", g.pool.Free())
}

// LastError returns the most recent error reported by Update or Draw.
func (g *Game) LastError() error { return g.lastErr }
