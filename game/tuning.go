package game

import "github.com/pthm-cable/flare/particle"

// Tunable is a live parameter a UI can expose. Value points into an updater
// owned by the game; writes take effect on the next step.
type Tunable struct {
	ID     string
	Label  string
	Min    float32
	Max    float32
	Format string // Printf format for the value; "" = "%.2f"
	Value  *float32
}

// Tunables returns the parameters of the enabled updaters.
func (g *Game) Tunables() []Tunable {
	var ts []Tunable
	if g.force != nil {
		ts = append(ts,
			Tunable{ID: "wind", Label: "Wind", Min: -400, Max: 400, Format: "%.0f", Value: &g.force.Wind},
			Tunable{ID: "gravity", Label: "Gravity", Min: -400, Max: 400, Format: "%.0f", Value: &g.force.Gravity},
		)
	}
	if g.integrator != nil {
		ts = append(ts, Tunable{ID: "drag", Label: "Drag", Min: 0, Max: 5, Value: &g.integrator.Drag})
	}
	if g.property != nil {
		ts = append(ts, Tunable{ID: "growth", Label: "Growth", Min: 0, Max: 4, Value: &g.property.Growth})
	}
	return ts
}

// EmitterInfo describes an emitter for overlays.
type EmitterInfo struct {
	Name     string
	Position particle.Vec2
	Enabled  bool
}

// EmitterInfo returns the current emitter positions.
func (g *Game) EmitterInfo() []EmitterInfo {
	out := make([]EmitterInfo, len(g.emitters))
	for i, e := range g.emitters {
		out[i] = EmitterInfo{Name: e.Name(), Position: e.Offset(), Enabled: e.Enabled()}
	}
	return out
}

// ToggleEmitter flips emitter i on or off. Out-of-range indexes are ignored.
func (g *Game) ToggleEmitter(i int) {
	if i < 0 || i >= len(g.emitters) {
		return
	}
	e := g.emitters[i]
	e.SetEnabled(!e.Enabled())
}
