package ui

import (
	"fmt"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/flare/camera"
	"github.com/pthm-cable/flare/particle"
)

// OverlayID uniquely identifies an overlay.
type OverlayID string

// Overlay IDs for the particle demo.
const (
	OverlayHUD       OverlayID = "hud"
	OverlayPerf      OverlayID = "perf"
	OverlayEmitters  OverlayID = "emitters"
	OverlayBounds    OverlayID = "bounds"
	OverlayAdditive  OverlayID = "blend_additive"
	OverlayAlphaOver OverlayID = "blend_alpha"
)

// OverlayDescriptor defines an overlay that can be toggled.
type OverlayDescriptor struct {
	ID        OverlayID
	Name      string
	Key       int32  // Keyboard key to toggle (0 = no key)
	KeyLabel  string // Key label for display
	Category  string
	Exclusive []OverlayID // Disabled when this one is enabled
}

// OverlayRegistry manages overlay state and metadata.
type OverlayRegistry struct {
	descriptors []OverlayDescriptor
	byID        map[OverlayID]OverlayDescriptor
	enabled     map[OverlayID]bool
}

// NewOverlayRegistry creates a registry with the demo overlays. The HUD is
// on; blendAdditive picks which blend overlay starts enabled.
func NewOverlayRegistry(blendAdditive bool) *OverlayRegistry {
	reg := &OverlayRegistry{
		byID:    make(map[OverlayID]OverlayDescriptor),
		enabled: make(map[OverlayID]bool),
	}
	reg.registerDefaults()
	reg.SetEnabled(OverlayHUD, true)
	if blendAdditive {
		reg.SetEnabled(OverlayAdditive, true)
	} else {
		reg.SetEnabled(OverlayAlphaOver, true)
	}
	return reg
}

func (r *OverlayRegistry) registerDefaults() {
	r.Register(OverlayDescriptor{ID: OverlayHUD, Name: "HUD", Key: rl.KeyH, KeyLabel: "H", Category: "info"})
	r.Register(OverlayDescriptor{ID: OverlayPerf, Name: "Frame Phases", Key: rl.KeyP, KeyLabel: "P", Category: "info"})

	r.Register(OverlayDescriptor{ID: OverlayEmitters, Name: "Emitters", Key: rl.KeyE, KeyLabel: "E", Category: "debug"})
	r.Register(OverlayDescriptor{ID: OverlayBounds, Name: "World Bounds", Key: rl.KeyB, KeyLabel: "B", Category: "debug"})

	r.Register(OverlayDescriptor{
		ID: OverlayAdditive, Name: "Additive Blend", Key: rl.KeyA, KeyLabel: "A", Category: "render",
		Exclusive: []OverlayID{OverlayAlphaOver},
	})
	r.Register(OverlayDescriptor{
		ID: OverlayAlphaOver, Name: "Alpha Blend", Key: rl.KeyO, KeyLabel: "O", Category: "render",
		Exclusive: []OverlayID{OverlayAdditive},
	})
}

// Register adds an overlay to the registry.
func (r *OverlayRegistry) Register(desc OverlayDescriptor) {
	r.descriptors = append(r.descriptors, desc)
	r.byID[desc.ID] = desc
}

// Toggle switches an overlay on/off and returns the new state.
func (r *OverlayRegistry) Toggle(id OverlayID) bool {
	if _, ok := r.byID[id]; !ok {
		return false
	}
	r.SetEnabled(id, !r.enabled[id])
	return r.enabled[id]
}

// SetEnabled explicitly sets an overlay's state.
func (r *OverlayRegistry) SetEnabled(id OverlayID, enabled bool) {
	desc, ok := r.byID[id]
	if !ok {
		return
	}

	r.enabled[id] = enabled

	// If enabling, disable exclusive overlays
	if enabled {
		for _, excl := range desc.Exclusive {
			r.enabled[excl] = false
		}
	}
}

// IsEnabled returns whether an overlay is active.
func (r *OverlayRegistry) IsEnabled(id OverlayID) bool {
	return r.enabled[id]
}

// HandleKeyPress checks if a key corresponds to an overlay toggle.
// Returns the overlay ID and new state if a toggle occurred.
func (r *OverlayRegistry) HandleKeyPress(key int32) (OverlayID, bool, bool) {
	for _, desc := range r.descriptors {
		if desc.Key == key {
			newState := r.Toggle(desc.ID)
			return desc.ID, newState, true
		}
	}
	return "", false, false
}

// Legend returns "[H] HUD  [P] Frame Phases ..." for the controls line.
func (r *OverlayRegistry) Legend() string {
	var b strings.Builder
	for i, desc := range r.descriptors {
		if i > 0 {
			b.WriteString("  ")
		}
		fmt.Fprintf(&b, "[%s] %s", desc.KeyLabel, desc.Name)
	}
	return b.String()
}

// EmitterMarker is an emitter position and label drawn by the emitters overlay.
type EmitterMarker struct {
	Name     string
	Position particle.Vec2
	Enabled  bool
}

// DrawEmitterMarkers draws a cross and label at each emitter.
func DrawEmitterMarkers(cam *camera.Camera, markers []EmitterMarker) {
	for _, m := range markers {
		sx, sy := cam.WorldToScreen(m.Position.X, m.Position.Y)
		col := rl.Green
		if !m.Enabled {
			col = rl.Gray
		}
		x, y := int32(sx), int32(sy)
		rl.DrawLine(x-6, y, x+6, y, col)
		rl.DrawLine(x, y-6, x, y+6, col)
		rl.DrawText(m.Name, x+8, y-6, 12, col)
	}
}

// DrawWorldBounds outlines the world rectangle.
func DrawWorldBounds(cam *camera.Camera, worldW, worldH float32) {
	x0, y0 := cam.WorldToScreen(0, 0)
	x1, y1 := cam.WorldToScreen(worldW, worldH)
	rl.DrawRectangleLinesEx(rl.Rectangle{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}, 1, rl.DarkGray)
}
