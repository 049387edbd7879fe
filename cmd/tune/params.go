package main

import (
	"math"
	"slices"

	"github.com/pthm-cable/flare/config"
)

// ParamSpec defines a single tunable parameter.
type ParamSpec struct {
	Name    string  // Column name in the log
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Starting value
}

// ParamVector holds the searched parameters. Each is a multiplier applied to
// both ends of a range on the first emitter, so the configured spread is
// kept.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of tunable parameters.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			{Name: "interval_scale", Path: "emitters[0].spawn.interval", Min: 0.1, Max: 10, Default: 1},
			{Name: "count_scale", Path: "emitters[0].spawn.count", Min: 0.1, Max: 10, Default: 1},
			{Name: "lifetime_scale", Path: "emitters[0].initializers[*].lifetime", Min: 0.1, Max: 10, Default: 1},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the starting values.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw values to the [0,1] search space.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	out := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		out[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return out
}

// Denormalize converts [0,1] values back to raw values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	out := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		out[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return out
}

// Clamp bounds every value to its spec.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	out := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		out[i] = min(max(v[i], spec.Min), spec.Max)
	}
	return out
}

// ApplyToConfig returns a copy of base with the clamped values applied to
// its first emitter. base is not modified.
func (pv *ParamVector) ApplyToConfig(base *config.Config, values []float64) *config.Config {
	cfg := *base
	if len(cfg.Emitters) == 0 {
		return &cfg
	}
	v := pv.Clamp(values)
	intervalScale, countScale, lifetimeScale := v[0], v[1], v[2]

	cfg.Emitters = slices.Clone(base.Emitters)
	em := &cfg.Emitters[0]
	em.Initializers = slices.Clone(em.Initializers)

	em.Spawn.Interval = scaleRange(em.Spawn.Interval, intervalScale)
	em.Spawn.Count = scaleIntRange(em.Spawn.Count, countScale)
	for i := range em.Initializers {
		em.Initializers[i].Lifetime = scaleRange(em.Initializers[i].Lifetime, lifetimeScale)
	}
	return &cfg
}

func scaleRange(r config.Range, s float64) config.Range {
	return config.Range{Min: r.Min * s, Max: r.Max * s}
}

// scaleIntRange rounds the scaled bounds, keeping at least one particle per
// burst and Min <= Max.
func scaleIntRange(r config.IntRange, s float64) config.IntRange {
	lo := max(1, int(math.Round(float64(r.Min)*s)))
	hi := max(lo, int(math.Round(float64(r.Max)*s)))
	return config.IntRange{Min: lo, Max: hi}
}
