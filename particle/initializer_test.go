package particle

import (
	"errors"
	"math"
	"math/rand"
	"testing"
)

func fixed(v float32) Range {
	return Range{Min: v, Max: v}
}

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-4
}

func TestRandomInitializerFixedRanges(t *testing.T) {
	tests := []struct {
		name    string
		speed   float32
		angle   float32
		wantVel Vec2
	}{
		{"straight up", 10, 0, Vec2{X: 0, Y: -10}},
		{"quarter turn", 10, 90, Vec2{X: 10, Y: 0}},
		{"half turn", 4, 180, Vec2{X: 0, Y: 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			init, err := NewRandomInitializer(InitializerConfig{
				Lifetime: fixed(2),
				Size:     fixed(5),
				Speed:    fixed(tt.speed),
				Angle:    fixed(tt.angle),
				OffsetX:  fixed(3),
				OffsetY:  fixed(4),
				Color:    Color{R: 1, G: 0.5, B: 0.25, A: 1},
			}, rand.New(rand.NewSource(7)))
			if err != nil {
				t.Fatalf("NewRandomInitializer: %v", err)
			}

			var p Particle
			init.Initialize(&p)

			if p.Energy != 2 || p.InitialEnergy != 2 {
				t.Errorf("expected energy 2/2, got %v/%v", p.Energy, p.InitialEnergy)
			}
			if !near(p.Velocity.X, tt.wantVel.X) || !near(p.Velocity.Y, tt.wantVel.Y) {
				t.Errorf("expected velocity %+v, got %+v", tt.wantVel, p.Velocity)
			}
			if !near(p.Position.X, 3) || !near(p.Position.Y, 4) {
				t.Errorf("expected position (3, 4), got %+v", p.Position)
			}
			if p.Size != 5 || p.InitialSize != 5 {
				t.Errorf("expected size 5/5, got %v/%v", p.Size, p.InitialSize)
			}
			if p.Color != (Color{R: 1, G: 0.5, B: 0.25, A: 1}) {
				t.Errorf("unexpected color %+v", p.Color)
			}
		})
	}
}

func TestRandomInitializerDiscPlacement(t *testing.T) {
	init, err := NewRandomInitializer(InitializerConfig{
		Lifetime: fixed(1),
		Distance: fixed(5),
	}, rand.New(rand.NewSource(3)))
	if err != nil {
		t.Fatalf("NewRandomInitializer: %v", err)
	}

	for i := 0; i < 100; i++ {
		var p Particle
		init.Initialize(&p)
		r := math.Hypot(float64(p.Position.X), float64(p.Position.Y))
		if math.Abs(r-5) > 1e-3 {
			t.Fatalf("expected spawn on radius 5, got %f", r)
		}
	}
}

func TestRandomInitializerSamplesWithinRanges(t *testing.T) {
	cfg := InitializerConfig{
		Lifetime: Range{Min: 0.5, Max: 1.5},
		Size:     Range{Min: 2, Max: 8},
		Speed:    Range{Min: 10, Max: 20},
		Angle:    Range{Min: -30, Max: 30},
	}
	init, _ := NewRandomInitializer(cfg, rand.New(rand.NewSource(11)))

	for i := 0; i < 200; i++ {
		var p Particle
		init.Initialize(&p)
		if p.Energy < 0.5 || p.Energy > 1.5 {
			t.Fatalf("lifetime %v outside range", p.Energy)
		}
		if p.Size < 2 || p.Size > 8 {
			t.Fatalf("size %v outside range", p.Size)
		}
		speed := math.Hypot(float64(p.Velocity.X), float64(p.Velocity.Y))
		if speed < 10-1e-3 || speed > 20+1e-3 {
			t.Fatalf("speed %v outside range", speed)
		}
		// Within 30 degrees of up means the upward component dominates.
		if p.Velocity.Y > 0 {
			t.Fatalf("velocity %+v points down", p.Velocity)
		}
	}
}

func TestInitializerValidation(t *testing.T) {
	tests := []struct {
		name string
		cfg  InitializerConfig
	}{
		{"inverted lifetime", InitializerConfig{Lifetime: Range{Min: 2, Max: 1}}},
		{"zero lifetime", InitializerConfig{Lifetime: Range{}}},
		{"inverted speed", InitializerConfig{Lifetime: fixed(1), Speed: Range{Min: 5, Max: 1}}},
		{"negative size", InitializerConfig{Lifetime: fixed(1), Size: Range{Min: -1, Max: 1}}},
		{"inverted offset", InitializerConfig{Lifetime: fixed(1), OffsetY: Range{Min: 1, Max: -1}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRandomInitializer(tt.cfg, rand.New(rand.NewSource(1)))
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}
