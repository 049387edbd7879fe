package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/flare/particle"
)

// Inspector shows the fields of the particle under the cursor. Particles are
// recycled through the pool, so it picks afresh every frame instead of
// holding a pointer.
type Inspector struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewInspector creates a new inspector panel.
func NewInspector(x, y, width int32) *Inspector {
	return &Inspector{renderer: NewRenderer(), x: x, y: y, width: width}
}

// SetPosition updates the inspector position.
func (ins *Inspector) SetPosition(x, y int32) {
	ins.x = x
	ins.y = y
}

// Pick returns the live particle closest to (wx, wy) within radius world
// units, or nil.
func Pick(ps []*particle.Particle, wx, wy, radius float32) *particle.Particle {
	var best *particle.Particle
	bestD := radius * radius
	for _, p := range ps {
		dx := p.Position.X - wx
		dy := p.Position.Y - wy
		if d := dx*dx + dy*dy; d <= bestD {
			best, bestD = p, d
		}
	}
	return best
}

// Draw renders the panel for p. A nil p draws nothing.
func (ins *Inspector) Draw(p *particle.Particle) {
	if p == nil {
		return
	}
	r := ins.renderer
	pad := r.Theme.Padding
	r.DrawPanel(ins.x, ins.y, ins.width, r.Theme.LineHeight*9+pad*2)

	x := ins.x + pad
	y := r.DrawSectionHeader(x, ins.y+pad, "Particle")
	y = r.DrawLabelValue(x, y, "Position", fmt.Sprintf("%.1f, %.1f", p.Position.X, p.Position.Y))
	y = r.DrawLabelValue(x, y, "Velocity", fmt.Sprintf("%.1f, %.1f", p.Velocity.X, p.Velocity.Y))
	y = r.DrawLabelValue(x, y, "Size", fmt.Sprintf("%.1f (from %.1f)", p.Size, p.InitialSize))
	y = r.DrawLabelValue(x, y, "Energy", fmt.Sprintf("%.2fs of %.2fs", p.Energy, p.InitialEnergy))
	y = r.DrawLoadBar(x, y, "Age", p.LifetimeFraction(), ins.width-pad*2)
	y = r.DrawLabelValue(x, y, "Born", fmt.Sprintf("%.3fs", p.CreationTime))

	rl.DrawText("Color:", x, y, r.Theme.FontSize, r.Theme.LabelColor)
	rl.DrawRectangle(x+r.Theme.LabelWidth, y+1, 12, 12, rl.Color{
		R: uint8(clamp01(p.Color.R) * 255),
		G: uint8(clamp01(p.Color.G) * 255),
		B: uint8(clamp01(p.Color.B) * 255),
		A: 255,
	})
	rl.DrawText(fmt.Sprintf("a %.2f", p.Color.A), x+r.Theme.LabelWidth+18, y, r.Theme.FontSize, r.Theme.ValueColor)
}
