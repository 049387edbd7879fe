package main

import (
	"math"
	"testing"

	"github.com/pthm-cable/flare/config"
)

func TestNormalizeRoundTrip(t *testing.T) {
	pv := NewParamVector()
	raw := []float64{0.5, 2, 7}
	back := pv.Denormalize(pv.Normalize(raw))
	for i := range raw {
		if math.Abs(back[i]-raw[i]) > 1e-9 {
			t.Errorf("param %d: got %v, want %v", i, back[i], raw[i])
		}
	}
}

func TestClamp(t *testing.T) {
	pv := NewParamVector()
	got := pv.Clamp([]float64{-1, 100, 1})
	want := []float64{0.1, 10, 1}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("param %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestApplyToConfigScalesFirstEmitter(t *testing.T) {
	base, err := config.Load("")
	if err != nil {
		t.Fatalf("config.Load: %v", err)
	}
	before := base.Emitters[0]
	beforeLifetime := before.Initializers[0].Lifetime

	pv := NewParamVector()
	cfg := pv.ApplyToConfig(base, []float64{2, 0.1, 0.5})

	em := cfg.Emitters[0]
	if em.Spawn.Interval.Min != before.Spawn.Interval.Min*2 || em.Spawn.Interval.Max != before.Spawn.Interval.Max*2 {
		t.Errorf("interval not doubled: %+v from %+v", em.Spawn.Interval, before.Spawn.Interval)
	}
	if em.Spawn.Count.Min < 1 || em.Spawn.Count.Max < em.Spawn.Count.Min {
		t.Errorf("count out of order: %+v", em.Spawn.Count)
	}
	if em.Initializers[0].Lifetime.Max != beforeLifetime.Max*0.5 {
		t.Errorf("lifetime not halved: %+v", em.Initializers[0].Lifetime)
	}

	// base untouched
	if base.Emitters[0].Spawn.Interval != before.Spawn.Interval {
		t.Error("base config emitter was modified")
	}
	if base.Emitters[0].Initializers[0].Lifetime != beforeLifetime {
		t.Error("base config initializer was modified")
	}
}

func TestScaleIntRange(t *testing.T) {
	tests := []struct {
		in    config.IntRange
		scale float64
		want  config.IntRange
	}{
		{config.IntRange{Min: 2, Max: 4}, 2, config.IntRange{Min: 4, Max: 8}},
		{config.IntRange{Min: 2, Max: 4}, 0.1, config.IntRange{Min: 1, Max: 1}},
		{config.IntRange{Min: 0, Max: 0}, 3, config.IntRange{Min: 1, Max: 1}},
	}
	for _, tt := range tests {
		if got := scaleIntRange(tt.in, tt.scale); got != tt.want {
			t.Errorf("scaleIntRange(%+v, %v) = %+v, want %+v", tt.in, tt.scale, got, tt.want)
		}
	}
}
