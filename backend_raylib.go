package main

import (
	"fmt"
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/flare/config"
	"github.com/pthm-cable/flare/game"
	"github.com/pthm-cable/flare/renderer"
	"github.com/pthm-cable/flare/renderer/sprite"
	"github.com/pthm-cable/flare/telemetry"
	"github.com/pthm-cable/flare/ui"
)

const controlsLegend = "[Space] Pause  [C] Clear  [T] Tune  [1-9] Emitters  [Home] Camera  "

// raylibView owns the window-side state around a Game.
type raylibView struct {
	g   *game.Game
	cfg *config.Config

	particles *renderer.ParticleRenderer
	hud       *ui.HUD
	perf      *ui.PerfPanel
	tuning    *ui.TuningPanel
	inspector *ui.Inspector
	overlays  *ui.OverlayRegistry

	width, height int32
}

func runRaylib(cfg *config.Config, opts runOptions) error {
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), cfg.Screen.Title)
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	img, err := sprite.FromConfig(cfg.Texture)
	if err != nil {
		return fmt.Errorf("loading sprite: %w", err)
	}
	tex := renderer.NewTexture(img)
	defer tex.Unload()

	gopts := opts.game
	gopts.Texture = tex
	g, err := game.New(cfg, gopts)
	if err != nil {
		return err
	}
	defer g.Unload()

	v := newRaylibView(g, cfg)
	for !rl.WindowShouldClose() {
		v.handleResize()
		v.handleInput()

		if err := g.Update(float64(rl.GetFrameTime())); err != nil {
			return err
		}
		v.draw()

		if frameLimitReached(g, opts.maxFrames) {
			slog.Info("max frames reached", "frames", g.Frames())
			break
		}
	}
	return nil
}

func newRaylibView(g *game.Game, cfg *config.Config) *raylibView {
	additive := cfg.Texture.Blend == "additive"

	v := &raylibView{
		g:         g,
		cfg:       cfg,
		particles: renderer.NewParticleRenderer(g.Camera(), renderer.ParseBlend(cfg.Texture.Blend)),
		hud:       ui.NewHUD(),
		tuning:    ui.NewTuningPanel(10, 110, 260, g.Tunables()),
		overlays:  ui.NewOverlayRegistry(additive),
		width:     int32(cfg.Screen.Width),
		height:    int32(cfg.Screen.Height),
	}
	v.perf = ui.NewPerfPanel(v.width-230, 10, g.Registry())
	v.inspector = ui.NewInspector(v.width-230, v.height-180, 220)
	return v
}

func (v *raylibView) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w, h := int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight())
	if w == v.width && h == v.height {
		return
	}
	v.width, v.height = w, h
	v.g.Camera().Resize(float32(w), float32(h))
	v.perf.SetPosition(w-230, 10)
	v.inspector.SetPosition(w-230, h-180)
}

// handleInput processes keyboard and mouse input for one frame.
func (v *raylibView) handleInput() {
	g := v.g

	for key := rl.GetKeyPressed(); key != 0; key = rl.GetKeyPressed() {
		switch {
		case key == rl.KeySpace:
			g.TogglePause()
		case key == rl.KeyC:
			g.Clear()
		case key == rl.KeyT:
			v.tuning.Toggle()
		case key == rl.KeyF11:
			rl.ToggleFullscreen()
		case key == rl.KeyHome:
			g.Camera().Reset()
		case key >= rl.KeyOne && key <= rl.KeyNine:
			g.ToggleEmitter(int(key - rl.KeyOne))
		default:
			if id, on, ok := v.overlays.HandleKeyPress(key); ok {
				slog.Debug("overlay toggled", "overlay", id, "enabled", on)
				v.applyBlend()
			}
		}
	}

	cam := g.Camera()
	panSpeed := float32(8.0) / cam.Zoom
	if rl.IsKeyDown(rl.KeyRight) {
		cam.Pan(panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyLeft) {
		cam.Pan(-panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyDown) {
		cam.Pan(0, panSpeed)
	}
	if rl.IsKeyDown(rl.KeyUp) {
		cam.Pan(0, -panSpeed)
	}

	// Zoom toward the cursor
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		m := rl.GetMousePosition()
		cam.ZoomAt(m.X, m.Y, 1+wheel*0.1)
	}
	if rl.IsMouseButtonDown(rl.MouseButtonRight) {
		d := rl.GetMouseDelta()
		cam.Pan(-d.X/cam.Zoom, -d.Y/cam.Zoom)
	}
}

// applyBlend follows the render overlays; alpha blending is the fallback
// when neither is enabled.
func (v *raylibView) applyBlend() {
	if v.overlays.IsEnabled(ui.OverlayAdditive) {
		v.particles.SetBlend(rl.BlendAdditive)
		return
	}
	v.particles.SetBlend(rl.BlendAlpha)
}

func (v *raylibView) draw() {
	g := v.g
	cam := g.Camera()

	rl.BeginDrawing()
	r, gr, b, a := v.cfg.Screen.Background.RGBA8()
	rl.ClearBackground(rl.Color{R: r, G: gr, B: b, A: a})

	if err := g.Draw(v.particles); err != nil {
		slog.Error("draw failed", "error", err)
	}

	perf := g.Perf()
	perf.StartPhase(telemetry.PhaseHUD)

	if v.overlays.IsEnabled(ui.OverlayBounds) {
		ui.DrawWorldBounds(cam, v.cfg.Derived.WorldW32, v.cfg.Derived.WorldH32)
	}
	if v.overlays.IsEnabled(ui.OverlayEmitters) {
		infos := g.EmitterInfo()
		markers := make([]ui.EmitterMarker, len(infos))
		for i, e := range infos {
			markers[i] = ui.EmitterMarker{Name: e.Name, Position: e.Position, Enabled: e.Enabled}
		}
		ui.DrawEmitterMarkers(cam, markers)
	}

	if v.overlays.IsEnabled(ui.OverlayHUD) {
		v.hud.Draw(ui.HUDData{
			Title:    v.cfg.Screen.Title,
			Stats:    g.Stats(),
			Emitters: len(g.Emitters()),
			SimTime:  g.SimTime(),
			FPS:      rl.GetFPS(),
			Paused:   g.Paused(),
		})
		v.hud.DrawControls(v.height, controlsLegend+v.overlays.Legend())
	}
	if v.overlays.IsEnabled(ui.OverlayPerf) {
		ps := perf.Stats()
		v.perf.Draw(ps.PhaseAvg, ps.AvgTickDuration)
	}

	m := rl.GetMousePosition()
	wx, wy := cam.ScreenToWorld(m.X, m.Y)
	v.inspector.Draw(ui.Pick(g.System().Particles(), wx, wy, 8/cam.Zoom))

	act := v.tuning.Draw(g.Paused())
	if act.TogglePause {
		g.TogglePause()
	}
	if act.Clear {
		g.Clear()
	}

	perf.EndPhase()
	rl.EndDrawing()
	perf.RecordFrame()
}
