package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pthm-cable/flare/particle"
)

// SystemConfig returns the engine sizing for the simulation section.
func (c *Config) SystemConfig() particle.SystemConfig {
	return particle.SystemConfig{
		Capacity:       c.Simulation.Capacity,
		Overflow:       c.Derived.Overflow,
		Step:           c.Simulation.Step,
		BatchTriangles: c.Simulation.BatchTriangles,
		MaxSteps:       c.Simulation.MaxSteps,
	}
}

// ProducerConfig returns the emission schedule of the emitter.
func (e EmitterConfig) ProducerConfig() particle.ProducerConfig {
	return particle.ProducerConfig{
		Interval: e.Spawn.Interval.Seconds(),
		Count:    e.Spawn.Count.Particle(),
	}
}

// IsEnabled reports whether the emitter starts enabled.
func (e EmitterConfig) IsEnabled() bool {
	return e.Enabled == nil || *e.Enabled
}

// Particle converts to the engine's initializer ranges.
func (i InitializerConfig) Particle() particle.InitializerConfig {
	return particle.InitializerConfig{
		Lifetime: i.Lifetime.Particle(),
		Size:     i.Size.Particle(),
		Speed:    i.Speed.Particle(),
		Angle:    i.Angle.Particle(),
		Distance: i.Distance.Particle(),
		OffsetX:  i.OffsetX.Particle(),
		OffsetY:  i.OffsetY.Particle(),
		Color:    i.Color.Particle(),
	}
}

// PropertyUpdater builds the decay/color/growth updater.
func (p PropertyConfig) PropertyUpdater() (*particle.PropertyUpdater, error) {
	var grads [4]particle.Gradient
	for i, pts := range [][]GradientPoint{p.Red, p.Green, p.Blue, p.Alpha} {
		g, err := Gradient(pts)
		if err != nil {
			return nil, scoped("updaters.property."+channelNames[i], err)
		}
		grads[i] = g
	}
	u, err := particle.NewPropertyUpdater(grads[0], grads[1], grads[2], grads[3], float32(p.Growth))
	if err != nil {
		return nil, scoped("updaters.property", err)
	}
	if len(p.SizeCurve) > 0 {
		curve, err := Gradient(p.SizeCurve)
		if err != nil {
			return nil, scoped("updaters.property.size_curve", err)
		}
		u.SizeCurve = curve
	}
	return u, nil
}

// TurbulenceUpdater builds the noise updater seeded with seed. Scale is a
// cell size here and a frequency in the engine.
func (t TurbulenceConfig) TurbulenceUpdater(seed int64) (*particle.TurbulenceUpdater, error) {
	var freq float64
	if t.Scale > 0 {
		freq = 1 / t.Scale
	}
	u, err := particle.NewTurbulenceUpdater(particle.TurbulenceConfig{
		Strength:  float32(t.Strength),
		Scale:     float32(freq),
		TimeScale: float32(t.TimeScale),
		Seed:      seed,
	})
	if err != nil {
		return nil, scoped("updaters.turbulence", err)
	}
	return u, nil
}

var channelNames = [4]string{"red", "green", "blue", "alpha"}

// Validate checks every section against the engine's rules. Each problem is a
// *particle.ConfigError whose Field is the YAML path.
func (c *Config) Validate() error {
	var errs []error
	field := func(path, format string, args ...any) {
		errs = append(errs, &particle.ConfigError{Field: path, Reason: fmt.Sprintf(format, args...)})
	}

	if c.Screen.Width <= 0 || c.Screen.Height <= 0 {
		field("screen", "size %dx%d must be positive", c.Screen.Width, c.Screen.Height)
	}
	if c.World.Width < 0 || c.World.Height < 0 {
		field("world", "size %dx%d is negative", c.World.Width, c.World.Height)
	}
	if _, err := particle.ParseOverflowPolicy(c.Simulation.Overflow); err != nil {
		errs = append(errs, scoped("simulation", err))
	} else {
		errs = append(errs, scoped("simulation", c.SystemConfig().Validate()))
	}
	if c.Simulation.PoolCapacity < 0 {
		field("simulation.pool_capacity", "%d is negative", c.Simulation.PoolCapacity)
	}

	switch c.Texture.Blend {
	case "", "alpha", "additive":
	default:
		field("texture.blend", "unknown mode %q", c.Texture.Blend)
	}
	if c.Texture.Path == "" && c.Texture.Size < 1 {
		field("texture.size", "%d must be >= 1 for the generated sprite", c.Texture.Size)
	}

	seen := make(map[string]bool, len(c.Emitters))
	for i, em := range c.Emitters {
		path := fmt.Sprintf("emitters[%d]", i)
		if seen[em.Name] {
			field(path+".name", "duplicate name %q", em.Name)
		}
		seen[em.Name] = true
		errs = append(errs, scoped(path+".spawn", em.ProducerConfig().Validate()))
		for j, ic := range em.Initializers {
			errs = append(errs, scoped(fmt.Sprintf("%s.initializers[%d]", path, j), ic.Particle().Validate()))
		}
	}

	if c.Updaters.Property.Enabled {
		if _, err := c.Updaters.Property.PropertyUpdater(); err != nil {
			errs = append(errs, err)
		}
	}
	if c.Updaters.Turbulence.Enabled {
		if _, err := c.Updaters.Turbulence.TurbulenceUpdater(0); err != nil {
			errs = append(errs, err)
		}
	}
	if c.Updaters.Integrate.Drag < 0 {
		field("updaters.integrate.drag", "%g is negative", c.Updaters.Integrate.Drag)
	}

	for i, a := range c.Anchors {
		if _, ok := c.Derived.EmitterIndex[a.Emitter]; !ok {
			field(fmt.Sprintf("anchors[%d].emitter", i), "no emitter named %q", a.Emitter)
		}
	}

	if c.Telemetry.StatsWindow <= 0 {
		field("telemetry.stats_window", "%g must be > 0", c.Telemetry.StatsWindow)
	}
	if c.Telemetry.PerfCollectorWindow < 1 {
		field("telemetry.perf_collector_window", "%d must be >= 1", c.Telemetry.PerfCollectorWindow)
	}
	return errors.Join(errs...)
}

// scoped rewrites engine field names ("producer.interval") into YAML paths
// ("emitters[0].spawn.interval"). Joined errors are rewritten element-wise.
func scoped(path string, err error) error {
	if err == nil {
		return nil
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		var out []error
		for _, e := range joined.Unwrap() {
			out = append(out, scoped(path, e))
		}
		return errors.Join(out...)
	}
	var ce *particle.ConfigError
	if errors.As(err, &ce) {
		name := ce.Field
		if i := strings.LastIndexByte(name, '.'); i >= 0 {
			name = name[i+1:]
		}
		return &particle.ConfigError{Field: path + "." + name, Reason: ce.Reason}
	}
	return fmt.Errorf("%s: %w", path, err)
}
