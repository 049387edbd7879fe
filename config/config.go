// Package config provides configuration loading and access for the particle demo.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/flare/particle"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all demo configuration parameters.
type Config struct {
	Screen     ScreenConfig     `yaml:"screen"`
	World      WorldConfig      `yaml:"world"`
	Simulation SimulationConfig `yaml:"simulation"`
	Texture    TextureConfig    `yaml:"texture"`
	Emitters   []EmitterConfig  `yaml:"emitters"`
	Updaters   UpdatersConfig   `yaml:"updaters"`
	Anchors    []AnchorConfig   `yaml:"anchors"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`
	Tune       TuneConfig       `yaml:"tune"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	TargetFPS  int    `yaml:"target_fps"`
	Title      string `yaml:"title"`
	Background Color  `yaml:"background"`
}

// WorldConfig holds the scene bounds anchors bounce inside.
type WorldConfig struct {
	Width  int `yaml:"width"`  // World width in world units (0 = use screen width)
	Height int `yaml:"height"` // World height in world units (0 = use screen height)
}

// SimulationConfig holds particle system sizing and stepping.
type SimulationConfig struct {
	Step           float64 `yaml:"step"`            // Fixed simulation step in seconds
	Capacity       int     `yaml:"capacity"`        // Initial active buffer size
	Overflow       string  `yaml:"overflow"`        // "grow" or "reject"
	BatchTriangles int     `yaml:"batch_triangles"` // Triangles per render submission
	MaxSteps       int     `yaml:"max_steps"`       // Steps per frame before skipping ahead (0 = unlimited)
	PoolCapacity   int     `yaml:"pool_capacity"`   // Initial free-list size (0 = capacity)
	Seed           int64   `yaml:"seed"`            // RNG seed (0 = time based)
}

// TextureConfig selects the particle sprite.
type TextureConfig struct {
	Path  string `yaml:"path"`  // Image file; empty = generated soft disc
	Size  int    `yaml:"size"`  // Generated sprite size in pixels
	Blend string `yaml:"blend"` // "alpha" or "additive"
}

// EmitterConfig describes one emitter: where it sits, when it fires and how
// its particles start.
type EmitterConfig struct {
	Name         string              `yaml:"name"`
	Position     Vec                 `yaml:"position"`
	Enabled      *bool               `yaml:"enabled,omitempty"` // nil = enabled
	Spawn        SpawnConfig         `yaml:"spawn"`
	Initializers []InitializerConfig `yaml:"initializers"`
}

// SpawnConfig holds the emission schedule.
type SpawnConfig struct {
	Interval Range    `yaml:"interval"` // Seconds between bursts
	Count    IntRange `yaml:"count"`    // Particles per burst
}

// InitializerConfig holds the ranges sampled for each new particle.
type InitializerConfig struct {
	Lifetime Range `yaml:"lifetime"` // Seconds
	Size     Range `yaml:"size"`     // World units
	Speed    Range `yaml:"speed"`    // World units per second
	Angle    Range `yaml:"angle"`    // Degrees from "up"
	Distance Range `yaml:"distance"` // Spawn radius around the emitter
	OffsetX  Range `yaml:"offset_x"`
	OffsetY  Range `yaml:"offset_y"`
	Color    Color `yaml:"color"`
}

// UpdatersConfig holds the updater chain, applied in field order.
type UpdatersConfig struct {
	Force      ForceConfig      `yaml:"force"`
	Turbulence TurbulenceConfig `yaml:"turbulence"`
	Integrate  IntegrateConfig  `yaml:"integrate"`
	Property   PropertyConfig   `yaml:"property"`
}

// ForceConfig holds constant wind and gravity.
type ForceConfig struct {
	Enabled bool    `yaml:"enabled"`
	Wind    float64 `yaml:"wind"`    // Added to Force.X every step
	Gravity float64 `yaml:"gravity"` // Added to Force.Y every step
}

// TurbulenceConfig holds the noise force field.
type TurbulenceConfig struct {
	Enabled   bool    `yaml:"enabled"`
	Strength  float64 `yaml:"strength"`
	Scale     float64 `yaml:"scale"`      // World units per noise cell
	TimeScale float64 `yaml:"time_scale"` // Noise evolution speed
}

// IntegrateConfig holds the demo's Euler integrator that consumes Force.
type IntegrateConfig struct {
	Enabled bool    `yaml:"enabled"`
	Drag    float64 `yaml:"drag"` // Fraction of velocity lost per second
}

// PropertyConfig holds energy decay, color gradients and growth.
type PropertyConfig struct {
	Enabled   bool            `yaml:"enabled"`
	Red       []GradientPoint `yaml:"red"`
	Green     []GradientPoint `yaml:"green"`
	Blue      []GradientPoint `yaml:"blue"`
	Alpha     []GradientPoint `yaml:"alpha"`
	Growth    float64         `yaml:"growth"`     // Size multiplier reached at end of life
	SizeCurve []GradientPoint `yaml:"size_curve"` // Optional extra size factor over life
}

// AnchorConfig moves an emitter around the world.
type AnchorConfig struct {
	Emitter  string `yaml:"emitter"`  // Emitter name
	Velocity Vec    `yaml:"velocity"` // World units per second
	Bounce   bool   `yaml:"bounce"`   // Reflect off world bounds instead of wrapping
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"`          // Seconds of sim time per stats window
	PerfCollectorWindow int     `yaml:"perf_collector_window"` // Frames averaged by the perf collector
}

// TuneConfig holds the headless parameter search settings.
type TuneConfig struct {
	TargetLive  int     `yaml:"target_live"`  // Desired steady-state live count
	WarmupSec   float64 `yaml:"warmup_sec"`   // Simulated seconds ignored before measuring
	MeasureSec  float64 `yaml:"measure_sec"`  // Simulated seconds measured
	FrameDT     float64 `yaml:"frame_dt"`     // Host frame length used by the headless run
	MaxEvals    int     `yaml:"max_evals"`    // Nelder-Mead evaluation budget
	DropPenalty float64 `yaml:"drop_penalty"` // Cost per dropped particle
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	ScreenW32    float32
	ScreenH32    float32
	WorldW32     float32
	WorldH32     float32
	Overflow     particle.OverflowPolicy
	EmitterIndex map[string]int
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used. The result is validated.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Only overwrites fields present in the file; lists are replaced whole.
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.computeDerived()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

// Parse decodes YAML over the embedded defaults without touching the filesystem.
func Parse(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.computeDerived()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)

	// World dimensions default to screen size if not specified
	worldW := c.World.Width
	if worldW == 0 {
		worldW = c.Screen.Width
	}
	worldH := c.World.Height
	if worldH == 0 {
		worldH = c.Screen.Height
	}
	c.Derived.WorldW32 = float32(worldW)
	c.Derived.WorldH32 = float32(worldH)

	if c.Simulation.PoolCapacity == 0 {
		c.Simulation.PoolCapacity = c.Simulation.Capacity
	}

	// Unknown policies are reported by Validate.
	c.Derived.Overflow, _ = particle.ParseOverflowPolicy(c.Simulation.Overflow)

	c.Derived.EmitterIndex = make(map[string]int, len(c.Emitters))
	for i := range c.Emitters {
		em := &c.Emitters[i]
		if em.Name == "" {
			em.Name = fmt.Sprintf("emitter-%d", i)
		}
		c.Derived.EmitterIndex[em.Name] = i
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
