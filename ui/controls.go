package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/flare/game"
)

// PanelActions reports the buttons pressed this frame.
type PanelActions struct {
	TogglePause bool
	Clear       bool
	Reset       bool
}

// TuningPanel renders raygui sliders for live parameters.
type TuningPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	visible  bool

	tunables []game.Tunable
	initial  []float32
}

// NewTuningPanel creates a hidden panel for tunables. The current values are
// remembered for Reset.
func NewTuningPanel(x, y, width int32, tunables []game.Tunable) *TuningPanel {
	initial := make([]float32, len(tunables))
	for i, t := range tunables {
		initial[i] = *t.Value
	}
	return &TuningPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
		tunables: tunables,
		initial:  initial,
	}
}

// Toggle switches panel visibility.
func (c *TuningPanel) Toggle() bool {
	c.visible = !c.visible
	return c.visible
}

// IsVisible returns whether the panel is shown.
func (c *TuningPanel) IsVisible() bool {
	return c.visible
}

// SetPosition updates the panel position.
func (c *TuningPanel) SetPosition(x, y int32) {
	c.x = x
	c.y = y
}

// Reset restores every tunable to its value at construction.
func (c *TuningPanel) Reset() {
	for i, t := range c.tunables {
		*t.Value = c.initial[i]
	}
}

// Draw renders the panel and applies slider changes. paused selects the
// pause button label.
func (c *TuningPanel) Draw(paused bool) PanelActions {
	var act PanelActions
	if !c.visible {
		return act
	}

	r := c.renderer
	pad := r.Theme.Padding
	const rowHeight = 38
	height := int32(len(c.tunables))*rowHeight + pad*3 + 60
	r.DrawPanel(c.x, c.y, c.width, height)

	x := float32(c.x + pad)
	y := c.y + pad
	y = r.DrawSectionHeader(c.x+pad, y, "Tuning")

	sliderW := float32(c.width - pad*2 - 60)
	for _, t := range c.tunables {
		rl.DrawText(t.Label, int32(x), y, r.Theme.FontSize, r.Theme.LabelColor)
		y += 14
		v := gui.SliderBar(
			rl.Rectangle{X: x, Y: float32(y), Width: sliderW, Height: 16},
			"", "",
			*t.Value, t.Min, t.Max,
		)
		if v != *t.Value {
			*t.Value = v
		}
		rl.DrawText(formatValue(t.Format, *t.Value), int32(x+sliderW+6), y+2, r.Theme.FontSize, r.Theme.ValueColor)
		y += rowHeight - 14
	}

	y += pad
	bw := (float32(c.width) - float32(pad)*4) / 3
	label := "Pause"
	if paused {
		label = "Resume"
	}
	act.TogglePause = gui.Button(rl.Rectangle{X: x, Y: float32(y), Width: bw, Height: 28}, label)
	act.Clear = gui.Button(rl.Rectangle{X: x + bw + float32(pad), Y: float32(y), Width: bw, Height: 28}, "Clear")
	act.Reset = gui.Button(rl.Rectangle{X: x + 2*(bw+float32(pad)), Y: float32(y), Width: bw, Height: 28}, "Reset")
	if act.Reset {
		c.Reset()
	}
	return act
}

func formatValue(format string, v float32) string {
	if format == "" {
		format = "%.2f"
	}
	return fmt.Sprintf(format, v)
}
