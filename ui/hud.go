package ui

import (
	"fmt"
	"sort"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/flare/particle"
	"github.com/pthm-cable/flare/systems"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title    string
	Stats    particle.Stats
	Emitters int
	SimTime  float64
	FPS      int32
	Paused   bool
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{renderer: NewRenderer()}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	r := h.renderer
	s := data.Stats

	rl.DrawText(data.Title, 10, 10, 20, rl.White)

	rl.DrawText(
		fmt.Sprintf("Live: %d / %d | Emitters: %d | FPS: %d", s.Live, s.Capacity, data.Emitters, data.FPS),
		10, 35, 16, rl.LightGray,
	)
	rl.DrawText(
		fmt.Sprintf("Time: %.1fs | Steps: %d | Dropped: %d | Flushes: %d", data.SimTime, s.Steps, s.Dropped, s.Flushes),
		10, 55, 16, rl.LightGray,
	)

	var load float32
	if s.Capacity > 0 {
		load = float32(s.Live) / float32(s.Capacity)
	}
	y := r.DrawLoadBar(10, 77, "Buffer", load, 260)

	if data.Paused {
		rl.DrawText("PAUSED", 10, y+2, 16, rl.Yellow)
	}
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// PerfPanel renders per-phase frame timing.
type PerfPanel struct {
	renderer *Renderer
	registry *systems.SystemRegistry
	x, y     int32
}

// NewPerfPanel creates a performance panel that labels phases through reg.
func NewPerfPanel(x, y int32, reg *systems.SystemRegistry) *PerfPanel {
	return &PerfPanel{renderer: NewRenderer(), registry: reg, x: x, y: y}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders phase averages, slowest first.
func (p *PerfPanel) Draw(phaseAvg map[string]time.Duration, total time.Duration) {
	names := make([]string, 0, len(phaseAvg))
	for name := range phaseAvg {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return phaseAvg[names[i]] > phaseAvg[names[j]] })

	x, y := p.x, p.y
	rl.DrawText("Frame Phases", x, y, 16, rl.White)
	y += 20
	rl.DrawText(fmt.Sprintf("Total: %s", total.Round(time.Microsecond)), x, y, 14, rl.Yellow)
	y += 16

	for _, name := range names {
		avg := phaseAvg[name]
		var pct float64
		if total > 0 {
			pct = float64(avg) / float64(total) * 100
		}
		color := rl.LightGray
		if pct > 40 {
			color = rl.Red
		} else if pct > 20 {
			color = rl.Orange
		}
		rl.DrawText(
			fmt.Sprintf("%-10s %8s %5.1f%%", p.registry.GetName(name), avg.Round(time.Microsecond), pct),
			x, y, 12, color,
		)
		y += 14
	}
}
