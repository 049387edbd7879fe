package game

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pthm-cable/flare/config"
	"github.com/pthm-cable/flare/particle"
	"github.com/pthm-cable/flare/telemetry"
)

// sceneYAML has one still emitter riding a bouncing anchor and no motion
// updaters, so particle positions equal the anchor position at spawn.
const sceneYAML = `
screen: {width: 200, height: 100}
simulation: {step: 0.01, capacity: 64, overflow: reject, batch_triangles: 16, max_steps: 0, seed: 7}
emitters:
  - name: a
    position: [50, 50]
    spawn: {interval: 0.25, count: 2}
    initializers:
      - {lifetime: 10, size: 4, speed: 0, angle: 0, distance: 0, color: white}
anchors:
  - {emitter: a, velocity: [20, 0], bounce: true}
updaters:
  force: {enabled: false}
  turbulence: {enabled: false}
  integrate: {enabled: false}
telemetry: {stats_window: 0.5, perf_collector_window: 8}
`

func newSceneGame(t *testing.T, opts Options) *Game {
	t.Helper()
	cfg, err := config.Parse([]byte(sceneYAML))
	if err != nil {
		t.Fatalf("config.Parse: %v", err)
	}
	g, err := New(cfg, opts)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { g.Unload() })
	return g
}

func TestNewBuildsUpdaterChainInOrder(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("config.Load: %v", err)
	}
	g, err := New(cfg, Options{Seed: 1})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer g.Unload()

	ups := g.System().Updaters()
	if len(ups) != 4 {
		t.Fatalf("expected 4 updaters, got %d", len(ups))
	}
	if _, ok := ups[0].(*particle.ForceUpdater); !ok {
		t.Errorf("updater 0 is %T, want force", ups[0])
	}
	if _, ok := ups[1].(*particle.TurbulenceUpdater); !ok {
		t.Errorf("updater 1 is %T, want turbulence", ups[1])
	}
	if _, ok := ups[2].(*Integrator); !ok {
		t.Errorf("updater 2 is %T, want integrator", ups[2])
	}
	if _, ok := ups[3].(*particle.PropertyUpdater); !ok {
		t.Errorf("updater 3 is %T, want property", ups[3])
	}
	if len(g.Emitters()) != len(cfg.Emitters) {
		t.Errorf("expected %d emitters, got %d", len(cfg.Emitters), len(g.Emitters()))
	}
}

func TestUpdateEmitsAtAnchorAndDraws(t *testing.T) {
	g := newSceneGame(t, Options{})

	if err := g.Update(0.3); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got := g.Stats().Live; got != 2 {
		t.Fatalf("expected 2 live particles, got %d", got)
	}
	for _, p := range g.System().Particles() {
		if math.Abs(float64(p.Position.X-56)) > 1e-3 || math.Abs(float64(p.Position.Y-50)) > 1e-3 {
			t.Errorf("expected spawn at anchor (56, 50), got %+v", p.Position)
		}
	}

	if err := g.Update(0.3); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got := g.Stats().Live; got != 4 {
		t.Fatalf("expected 4 live particles, got %d", got)
	}

	var tris int
	err := g.Draw(particle.SinkFunc(func(batch []particle.Triangle, _ particle.Texture) error {
		tris += len(batch)
		return nil
	}))
	if err != nil {
		t.Fatalf("Draw: %v", err)
	}
	if tris != 8 {
		t.Errorf("expected 8 triangles, got %d", tris)
	}
}

func TestPausedUpdateIsNoop(t *testing.T) {
	g := newSceneGame(t, Options{})
	g.TogglePause()
	if err := g.Update(1); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if g.SimTime() != 0 || g.Frames() != 0 {
		t.Errorf("paused game advanced: time %v frames %d", g.SimTime(), g.Frames())
	}
	g.TogglePause()
	g.Update(0.1)
	if g.Frames() != 1 {
		t.Errorf("expected 1 frame after resuming, got %d", g.Frames())
	}
}

func TestClearReturnsParticles(t *testing.T) {
	g := newSceneGame(t, Options{})
	g.Update(0.3)
	g.Clear()
	if g.Stats().Live != 0 {
		t.Errorf("expected no live particles after Clear, got %d", g.Stats().Live)
	}
}

func TestTelemetryWindowFlushes(t *testing.T) {
	var windows []telemetry.WindowStats
	g := newSceneGame(t, Options{StatsCallback: func(ws telemetry.WindowStats) {
		windows = append(windows, ws)
	}})

	g.Update(0.3)
	if len(windows) != 0 {
		t.Fatalf("window flushed early")
	}
	g.Update(0.3)
	if len(windows) != 1 {
		t.Fatalf("expected one window, got %d", len(windows))
	}
	ws := windows[0]
	if ws.Emitted != 4 || ws.Frames != 2 || ws.Live != 4 {
		t.Errorf("unexpected window %+v", ws)
	}
}

func TestOutputDirReceivesTelemetry(t *testing.T) {
	dir := t.TempDir()
	g := newSceneGame(t, Options{OutputDir: dir})

	g.Update(0.3)
	g.Update(0.3)
	if err := g.Unload(); err != nil {
		t.Fatalf("Unload: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "telemetry.csv"))
	if err != nil {
		t.Fatalf("reading telemetry.csv: %v", err)
	}
	if n := len(strings.Split(strings.TrimSpace(string(data)), "\n")); n != 2 {
		t.Errorf("expected header plus one row, got %d lines", n)
	}
	if _, err := os.Stat(filepath.Join(dir, "config.yaml")); err != nil {
		t.Errorf("config snapshot missing: %v", err)
	}
}

func TestSameSeedIsDeterministic(t *testing.T) {
	run := func() []particle.Vec2 {
		cfg, err := config.Load("")
		if err != nil {
			t.Fatalf("config.Load: %v", err)
		}
		g, err := New(cfg, Options{Seed: 99})
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		defer g.Unload()
		for i := 0; i < 30; i++ {
			g.Update(1.0 / 60)
		}
		var out []particle.Vec2
		for _, p := range g.System().Particles() {
			out = append(out, p.Position)
		}
		return out
	}

	a, b := run(), run()
	if len(a) == 0 || len(a) != len(b) {
		t.Fatalf("expected equal non-empty runs, got %d and %d particles", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("particle %d differs: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestTunablesWriteThrough(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("config.Load: %v", err)
	}
	g, err := New(cfg, Options{Seed: 1})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer g.Unload()

	ids := map[string]Tunable{}
	for _, tu := range g.Tunables() {
		ids[tu.ID] = tu
	}
	for _, id := range []string{"wind", "gravity", "drag", "growth"} {
		if _, ok := ids[id]; !ok {
			t.Errorf("missing tunable %q", id)
		}
	}

	*ids["wind"].Value = 42
	if g.force.Wind != 42 {
		t.Errorf("expected wind 42 on the force updater, got %v", g.force.Wind)
	}
}

func TestToggleEmitter(t *testing.T) {
	g := newSceneGame(t, Options{})
	g.ToggleEmitter(0)
	g.ToggleEmitter(5)
	if g.EmitterInfo()[0].Enabled {
		t.Error("emitter 0 should be disabled")
	}
	g.Update(0.3)
	if g.Stats().Live != 0 {
		t.Errorf("disabled emitter produced %d particles", g.Stats().Live)
	}
}

func TestIntegrator(t *testing.T) {
	tests := []struct {
		name    string
		drag    float32
		wantVX  float32
		wantPos float32
	}{
		{"no drag", 0, 5, 2.5},
		{"drag halves", 1, 2.5, 1.25},
		{"drag saturates", 10, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &particle.Particle{Force: particle.Vec2{X: 10}}
			(&Integrator{Drag: tt.drag}).Update(p, 0.5)
			if math.Abs(float64(p.Velocity.X-tt.wantVX)) > 1e-5 {
				t.Errorf("velocity %v, want %v", p.Velocity.X, tt.wantVX)
			}
			if math.Abs(float64(p.Position.X-tt.wantPos)) > 1e-5 {
				t.Errorf("position %v, want %v", p.Position.X, tt.wantPos)
			}
			if p.Force != (particle.Vec2{}) {
				t.Errorf("force not cleared: %+v", p.Force)
			}
		})
	}
}
