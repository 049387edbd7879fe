package particle

// Particle is a single simulated entity.
//
// Clocks are float64 seconds on the owning System's timeline; everything else
// is float32. A particle is either live in a System's active buffer or free in
// its Pool, never both.
type Particle struct {
	Position Vec2
	Velocity Vec2

	// Force accumulates contributions from force-style updaters. Nothing in
	// this package integrates or clears it; install an Updater after the
	// force contributors to consume it.
	Force Vec2

	Color       Color
	Size        float32
	InitialSize float32 // Size at spawn, baseline for growth

	Energy        float32 // Remaining lifetime in seconds
	InitialEnergy float32 // Lifetime at spawn, denominator for lifetime fraction

	CreationTime float64
	Time         float64 // Last watermark this particle was advanced to
}

// NewParticle is the default Pool factory.
func NewParticle() (*Particle, error) {
	return &Particle{}, nil
}

// Reset zeroes every field.
func (p *Particle) Reset() {
	*p = Particle{}
}

// Alive reports whether the particle still has energy.
func (p *Particle) Alive() bool {
	return p.Energy > 0
}

// LifetimeFraction returns how much of the lifetime has elapsed, in [0, 1].
func (p *Particle) LifetimeFraction() float32 {
	if p.InitialEnergy <= 0 {
		return 1
	}
	return clamp01((p.InitialEnergy - p.Energy) / p.InitialEnergy)
}
