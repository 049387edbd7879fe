package systems

import (
	"math"
	"math/rand"
	"testing"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/flare/components"
	"github.com/pthm-cable/flare/particle"
)

func TestMotionSystemBounces(t *testing.T) {
	w := ecs.NewWorld()
	mapper := ecs.NewMap3[components.Position, components.Velocity, components.Anchor](w)
	e := mapper.NewEntity(
		&components.Position{X: 95, Y: 50},
		&components.Velocity{X: 20, Y: 0},
		&components.Anchor{Bounce: true},
	)

	sys := NewMotionSystem(w, Bounds{Width: 100, Height: 100})
	sys.Update(0.5)

	pos := ecs.NewMap1[components.Position](w).Get(e)
	vel := ecs.NewMap1[components.Velocity](w).Get(e)
	if math.Abs(float64(pos.X-95)) > 1e-4 {
		t.Errorf("expected reflected X 95, got %v", pos.X)
	}
	if vel.X != -20 {
		t.Errorf("expected velocity to flip, got %v", vel.X)
	}
}

func TestMotionSystemWraps(t *testing.T) {
	w := ecs.NewWorld()
	mapper := ecs.NewMap3[components.Position, components.Velocity, components.Anchor](w)
	e := mapper.NewEntity(
		&components.Position{X: 5, Y: 98},
		&components.Velocity{X: -20, Y: 10},
		&components.Anchor{},
	)

	sys := NewMotionSystem(w, Bounds{Width: 100, Height: 100})
	sys.Update(0.5)

	pos := ecs.NewMap1[components.Position](w).Get(e)
	vel := ecs.NewMap1[components.Velocity](w).Get(e)
	if math.Abs(float64(pos.X-95)) > 1e-4 || math.Abs(float64(pos.Y-3)) > 1e-4 {
		t.Errorf("expected wrapped position (95, 3), got (%v, %v)", pos.X, pos.Y)
	}
	if vel.X != -20 || vel.Y != 10 {
		t.Errorf("wrapping should keep velocity, got %+v", *vel)
	}
}

func TestBounceStaysInBounds(t *testing.T) {
	tests := []struct {
		name     string
		x, v     float32
		wantX    float32
		wantSign float32
	}{
		{"inside", 50, 10, 50, 1},
		{"past far wall", 110, 10, 90, -1},
		{"past near wall", -5, -10, 5, 1},
		{"far overshoot", 350, 10, 0, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, v := bounce(tt.x, tt.v, 100)
			if x != tt.wantX {
				t.Errorf("x = %v, want %v", x, tt.wantX)
			}
			if v*tt.wantSign <= 0 {
				t.Errorf("v = %v, want sign %v", v, tt.wantSign)
			}
		})
	}
}

func TestAnchorSystemMovesEmitters(t *testing.T) {
	w := ecs.NewWorld()
	mapper := ecs.NewMap2[components.Position, components.Anchor](w)
	mapper.NewEntity(&components.Position{X: 12, Y: 34}, &components.Anchor{Emitter: 1})
	mapper.NewEntity(&components.Position{X: 1, Y: 1}, &components.Anchor{Emitter: 7})

	pool, _ := particle.NewPool(4, particle.NewParticle)
	var emitters []*particle.Emitter
	for i := 0; i < 2; i++ {
		prod, err := particle.NewProducer(particle.ProducerConfig{
			Interval: particle.TimeRange{Min: 1, Max: 1},
			Count:    particle.IntRange{Min: 1, Max: 1},
		}, pool, rand.New(rand.NewSource(1)))
		if err != nil {
			t.Fatalf("NewProducer: %v", err)
		}
		emitters = append(emitters, particle.NewEmitter(pool, prod))
	}

	NewAnchorSystem(w).Update(emitters)

	if got := emitters[1].Offset(); got != (particle.Vec2{X: 12, Y: 34}) {
		t.Errorf("expected emitter 1 at (12, 34), got %+v", got)
	}
	if got := emitters[0].Offset(); got != (particle.Vec2{}) {
		t.Errorf("emitter 0 has no anchor, got %+v", got)
	}
}

func TestRegistryNamesFramePhases(t *testing.T) {
	reg := NewSystemRegistry()
	for _, p := range []particle.Phase{particle.PhaseEmitting, particle.PhaseSimulating, particle.PhaseRemoving, particle.PhaseDrawing} {
		if _, ok := reg.Get(p.String()); !ok {
			t.Errorf("phase %v is not registered", p)
		}
	}
	if reg.GetName("unknown") != "unknown" {
		t.Error("unknown IDs should fall back to the ID")
	}
	if len(reg.ByCategory("scene")) != 2 {
		t.Errorf("expected 2 scene systems, got %d", len(reg.ByCategory("scene")))
	}
}
