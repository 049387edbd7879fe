package particle

import (
	"errors"
	"math/rand"
)

// Initializer sets the starting state of a freshly produced particle.
type Initializer interface {
	Initialize(p *Particle)
}

// InitializerFunc adapts a function to the Initializer interface.
type InitializerFunc func(p *Particle)

// Initialize calls f(p).
func (f InitializerFunc) Initialize(p *Particle) {
	f(p)
}

// InitializerConfig holds the ranges sampled for each new particle.
// Angles are in degrees; 0 points up (negative Y).
type InitializerConfig struct {
	Lifetime Range // Seconds
	Size     Range
	Speed    Range
	Angle    Range // Emission cone around "up"
	Distance Range // Radial spawn distance from the emitter
	OffsetX  Range
	OffsetY  Range
	Color    Color
}

// Validate checks every range.
func (c InitializerConfig) Validate() error {
	errs := []error{
		c.Lifetime.Validate("initializer.lifetime"),
		c.Size.Validate("initializer.size"),
		c.Speed.Validate("initializer.speed"),
		c.Angle.Validate("initializer.angle"),
		c.Distance.Validate("initializer.distance"),
		c.OffsetX.Validate("initializer.offset_x"),
		c.OffsetY.Validate("initializer.offset_y"),
	}
	if c.Lifetime.Min <= 0 {
		errs = append(errs, configErr("initializer.lifetime", "min %g must be > 0", c.Lifetime.Min))
	}
	if c.Size.Min < 0 {
		errs = append(errs, configErr("initializer.size", "min %g is negative", c.Size.Min))
	}
	return errors.Join(errs...)
}

// RandomInitializer samples lifetime, motion, placement and size uniformly.
type RandomInitializer struct {
	cfg InitializerConfig
	rng *rand.Rand
}

// NewRandomInitializer validates cfg and returns the initializer.
func NewRandomInitializer(cfg InitializerConfig, rng *rand.Rand) (*RandomInitializer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, configErr("initializer.rng", "must not be nil")
	}
	return &RandomInitializer{cfg: cfg, rng: rng}, nil
}

// Config returns the sampled ranges.
func (r *RandomInitializer) Config() InitializerConfig {
	return r.cfg
}

// Initialize randomizes p.
func (r *RandomInitializer) Initialize(p *Particle) {
	life := r.cfg.Lifetime.Sample(r.rng)
	p.InitialEnergy = life
	p.Energy = life

	speed := r.cfg.Speed.Sample(r.rng)
	angle := r.cfg.Angle.Sample(r.rng)
	p.Velocity = Vec2{X: 0, Y: -speed}.Rotate(angle)

	// Disc placement: radial distance at a uniform heading, then jitter.
	dist := r.cfg.Distance.Sample(r.rng)
	heading := r.rng.Float32() * 360
	pos := Vec2{X: dist, Y: 0}.Rotate(heading)
	pos.X += r.cfg.OffsetX.Sample(r.rng)
	pos.Y += r.cfg.OffsetY.Sample(r.rng)
	p.Position = pos

	size := r.cfg.Size.Sample(r.rng)
	p.Size = size
	p.InitialSize = size

	p.Color = r.cfg.Color
}
