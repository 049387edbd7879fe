package game

import "github.com/pthm-cable/flare/particle"

// Integrator consumes the force accumulated by earlier updaters with
// semi-implicit Euler, applies linear drag and clears the force.
type Integrator struct {
	Drag float32 // Fraction of velocity lost per second
}

// Update implements particle.Updater.
func (in *Integrator) Update(p *particle.Particle, dt float32) {
	p.Velocity.X += p.Force.X * dt
	p.Velocity.Y += p.Force.Y * dt

	damp := 1 - in.Drag*dt
	if damp < 0 {
		damp = 0
	}
	p.Velocity.X *= damp
	p.Velocity.Y *= damp

	p.Position.X += p.Velocity.X * dt
	p.Position.Y += p.Velocity.Y * dt

	p.Force = particle.Vec2{}
}
