package particle

import (
	perlin "github.com/aquilax/go-perlin"
)

// TurbulenceConfig parameterizes a TurbulenceUpdater.
type TurbulenceConfig struct {
	Strength  float32 // Peak force contribution
	Scale     float32 // Spatial frequency (1/world units)
	TimeScale float32 // Temporal frequency (1/seconds)
	Seed      int64
}

// Validate rejects non-positive frequencies.
func (c TurbulenceConfig) Validate() error {
	if c.Scale <= 0 {
		return configErr("turbulence.scale", "%g must be > 0", c.Scale)
	}
	if c.TimeScale < 0 {
		return configErr("turbulence.time_scale", "%g is negative", c.TimeScale)
	}
	return nil
}

// TurbulenceUpdater adds a Perlin-noise force field into Particle.Force.
// Like ForceUpdater it only contributes force.
type TurbulenceUpdater struct {
	cfg   TurbulenceConfig
	noise *perlin.Perlin
}

// NewTurbulenceUpdater validates cfg and seeds the noise field.
func NewTurbulenceUpdater(cfg TurbulenceConfig) (*TurbulenceUpdater, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &TurbulenceUpdater{
		cfg:   cfg,
		noise: perlin.NewPerlin(2, 2, 3, cfg.Seed),
	}, nil
}

// Update samples the field at the particle's position and clock.
func (u *TurbulenceUpdater) Update(p *Particle, delta float32) {
	x := float64(p.Position.X * u.cfg.Scale)
	y := float64(p.Position.Y * u.cfg.Scale)
	t := (p.Time + float64(delta)) * float64(u.cfg.TimeScale)

	// Offset the second sample so the two axes decorrelate.
	nx := u.noise.Noise3D(x, y, t)
	ny := u.noise.Noise3D(x+31.7, y+17.3, t)

	p.Force.X += float32(nx) * u.cfg.Strength
	p.Force.Y += float32(ny) * u.cfg.Strength
}
