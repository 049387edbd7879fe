package particle

import (
	"errors"
	"math"
	"testing"
)

func testPropertyUpdater(t *testing.T, growth float32) *PropertyUpdater {
	t.Helper()
	u, err := NewPropertyUpdater(
		LinearGradient(1, 0),
		LinearGradient(0, 1),
		ConstantGradient(0.5),
		LinearGradient(1, 0),
		growth,
	)
	if err != nil {
		t.Fatalf("NewPropertyUpdater: %v", err)
	}
	return u
}

func TestForceUpdaterAccumulates(t *testing.T) {
	u := &ForceUpdater{Wind: 2, Gravity: 9}
	var p Particle

	u.Update(&p, 0)
	u.Update(&p, 0.5)
	u.Update(&p, 3)

	if p.Force != (Vec2{X: 6, Y: 27}) {
		t.Errorf("expected force (6, 27) regardless of delta, got %+v", p.Force)
	}
	if p.Velocity != (Vec2{}) || p.Position != (Vec2{}) {
		t.Error("force updater must not integrate")
	}
}

func TestPropertyUpdaterDecay(t *testing.T) {
	u := testPropertyUpdater(t, 3)
	p := Particle{Energy: 2, InitialEnergy: 2, Size: 10, InitialSize: 10}

	u.Update(&p, 0)
	if p.Energy != 2 {
		t.Errorf("zero delta should not drain, got %v", p.Energy)
	}
	if p.Color != (Color{R: 1, G: 0, B: 0.5, A: 1}) {
		t.Errorf("expected birth color, got %+v", p.Color)
	}
	if p.Size != 10 {
		t.Errorf("expected initial size, got %v", p.Size)
	}

	u.Update(&p, 1)
	if p.Energy != 1 {
		t.Errorf("expected energy 1, got %v", p.Energy)
	}
	if !near(p.Color.R, 0.5) || !near(p.Color.G, 0.5) || !near(p.Color.A, 0.5) {
		t.Errorf("expected mid-life color, got %+v", p.Color)
	}
	if !near(p.Size, 20) {
		t.Errorf("expected size 20 at half life with growth 3, got %v", p.Size)
	}

	u.Update(&p, 1.5)
	if p.Alive() {
		t.Errorf("expected particle to be dead, energy %v", p.Energy)
	}
	if !near(p.Size, 30) || !near(p.Color.A, 0) {
		t.Errorf("expected end-of-life style, got size %v alpha %v", p.Size, p.Color.A)
	}
}

func TestPropertyUpdaterEnergyNonIncreasing(t *testing.T) {
	u := testPropertyUpdater(t, 1)
	p := Particle{Energy: 5, InitialEnergy: 5, InitialSize: 1}
	prev := p.Energy
	for _, d := range []float32{0, 0.1, 0, 0.7, 1.3, 0.01, 4} {
		u.Update(&p, d)
		if p.Energy > prev {
			t.Fatalf("energy rose from %v to %v", prev, p.Energy)
		}
		if p.Energy > p.InitialEnergy {
			t.Fatalf("energy %v exceeds initial %v", p.Energy, p.InitialEnergy)
		}
		prev = p.Energy
	}
}

func TestPropertyUpdaterSizeCurve(t *testing.T) {
	u := testPropertyUpdater(t, 1)
	u.SizeCurve = LinearGradient(1, 0)
	p := Particle{Energy: 4, InitialEnergy: 4, InitialSize: 8}

	u.Update(&p, 2)
	if !near(p.Size, 4) {
		t.Errorf("expected size curve to halve size, got %v", p.Size)
	}
}

func TestPropertyUpdaterZeroLifetime(t *testing.T) {
	u := testPropertyUpdater(t, 2)
	p := Particle{InitialSize: 1}
	u.Update(&p, 0)
	if math.IsNaN(float64(p.Size)) || math.IsNaN(float64(p.Color.R)) {
		t.Fatal("zero initial energy produced NaN")
	}
	if !near(p.Size, 2) {
		t.Errorf("zero lifetime should read as fully aged, got size %v", p.Size)
	}
}

func TestPropertyUpdaterValidation(t *testing.T) {
	_, err := NewPropertyUpdater(Gradient{}, ConstantGradient(1), ConstantGradient(1), ConstantGradient(1), 1)
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig for empty channel, got %v", err)
	}
	_, err = NewPropertyUpdater(ConstantGradient(1), ConstantGradient(1), ConstantGradient(1), ConstantGradient(1), -1)
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig for negative growth, got %v", err)
	}
}

func TestTurbulenceUpdaterDeterministic(t *testing.T) {
	cfg := TurbulenceConfig{Strength: 5, Scale: 0.05, TimeScale: 0.5, Seed: 99}
	a, err := NewTurbulenceUpdater(cfg)
	if err != nil {
		t.Fatalf("NewTurbulenceUpdater: %v", err)
	}
	b, _ := NewTurbulenceUpdater(cfg)

	pa := Particle{Position: Vec2{X: 13.3, Y: 71.9}, Time: 1.25}
	pb := pa
	a.Update(&pa, 0.1)
	b.Update(&pb, 0.1)

	if pa.Force != pb.Force {
		t.Errorf("same seed should give same force: %+v vs %+v", pa.Force, pb.Force)
	}
	if math.IsNaN(float64(pa.Force.X)) || math.IsNaN(float64(pa.Force.Y)) {
		t.Fatal("turbulence produced NaN")
	}
	if pa.Velocity != (Vec2{}) {
		t.Error("turbulence must only contribute force")
	}
}

func TestTurbulenceValidation(t *testing.T) {
	if _, err := NewTurbulenceUpdater(TurbulenceConfig{Strength: 1}); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig for zero scale, got %v", err)
	}
}
