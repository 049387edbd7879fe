package particle

import "errors"

// Updater mutates a particle given the time elapsed since it was last advanced.
type Updater interface {
	Update(p *Particle, delta float32)
}

// UpdaterFunc adapts a function to the Updater interface.
type UpdaterFunc func(p *Particle, delta float32)

// Update calls f(p, delta).
func (f UpdaterFunc) Update(p *Particle, delta float32) {
	f(p, delta)
}

// ForceUpdater adds a constant wind (X) and gravity (Y) into Particle.Force on
// every call, independent of delta. It neither integrates nor clears the force.
type ForceUpdater struct {
	Wind    float32
	Gravity float32
}

// Update accumulates wind and gravity.
func (u *ForceUpdater) Update(p *Particle, _ float32) {
	p.Force.X += u.Wind
	p.Force.Y += u.Gravity
}

// PropertyUpdater drains energy and derives color and size from the elapsed
// lifetime fraction. It should run every step.
type PropertyUpdater struct {
	Red, Green, Blue, Alpha Gradient

	// Growth is the size multiplier reached at the end of the lifetime.
	Growth float32

	// SizeCurve, when set, further scales size by its value at the lifetime fraction.
	SizeCurve Gradient
}

// NewPropertyUpdater validates the gradients and returns the updater.
func NewPropertyUpdater(r, g, b, a Gradient, growth float32) (*PropertyUpdater, error) {
	u := &PropertyUpdater{Red: r, Green: g, Blue: b, Alpha: a, Growth: growth}
	if err := u.Validate(); err != nil {
		return nil, err
	}
	return u, nil
}

// Validate checks that every color channel has a curve and growth is non-negative.
func (u *PropertyUpdater) Validate() error {
	var errs []error
	for _, ch := range []struct {
		name string
		g    Gradient
	}{
		{"property.red", u.Red},
		{"property.green", u.Green},
		{"property.blue", u.Blue},
		{"property.alpha", u.Alpha},
	} {
		if ch.g.IsZero() {
			errs = append(errs, configErr(ch.name, "gradient has no points"))
		}
	}
	if u.Growth < 0 {
		errs = append(errs, configErr("property.growth", "%g is negative", u.Growth))
	}
	return errors.Join(errs...)
}

// Update drains delta seconds of energy and restyles p.
func (u *PropertyUpdater) Update(p *Particle, delta float32) {
	p.Energy -= delta
	f := p.LifetimeFraction()

	p.Color = Color{
		R: u.Red.Sample(f),
		G: u.Green.Sample(f),
		B: u.Blue.Sample(f),
		A: u.Alpha.Sample(f),
	}

	scale := 1 + f*(u.Growth-1)
	if !u.SizeCurve.IsZero() {
		scale *= u.SizeCurve.Sample(f)
	}
	p.Size = p.InitialSize * scale
}
