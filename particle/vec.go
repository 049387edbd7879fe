package particle

import (
	"math"
	"math/rand"
)

// Vec2 is a 2D vector in world units.
type Vec2 struct {
	X, Y float32
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Rotate returns v rotated by deg degrees.
func (v Vec2) Rotate(deg float32) Vec2 {
	rad := float64(deg) * math.Pi / 180
	sin, cos := math.Sincos(rad)
	return Vec2{
		X: v.X*float32(cos) - v.Y*float32(sin),
		Y: v.X*float32(sin) + v.Y*float32(cos),
	}
}

// Color is a straight-alpha RGBA color with channels in [0, 1].
type Color struct {
	R, G, B, A float32
}

// White is opaque white.
var White = Color{R: 1, G: 1, B: 1, A: 1}

// Range is a closed float interval sampled uniformly.
type Range struct {
	Min, Max float32
}

// Sample returns a uniform value in [Min, Max].
func (r Range) Sample(rng *rand.Rand) float32 {
	if r.Max == r.Min {
		return r.Min
	}
	return r.Min + rng.Float32()*(r.Max-r.Min)
}

// Validate rejects inverted intervals.
func (r Range) Validate(field string) error {
	if r.Max < r.Min {
		return configErr(field, "max %g < min %g", r.Max, r.Min)
	}
	return nil
}

// TimeRange is a closed interval of seconds sampled uniformly. It stays in
// float64 so schedule boundaries line up with the system clock.
type TimeRange struct {
	Min, Max float64
}

// Sample returns a uniform value in [Min, Max].
func (r TimeRange) Sample(rng *rand.Rand) float64 {
	if r.Max == r.Min {
		return r.Min
	}
	return r.Min + rng.Float64()*(r.Max-r.Min)
}

// Validate rejects inverted intervals.
func (r TimeRange) Validate(field string) error {
	if r.Max < r.Min {
		return configErr(field, "max %g < min %g", r.Max, r.Min)
	}
	return nil
}

// IntRange is a closed integer interval sampled uniformly.
type IntRange struct {
	Min, Max int
}

// Sample returns a uniform value in [Min, Max].
func (r IntRange) Sample(rng *rand.Rand) int {
	if r.Max <= r.Min {
		return r.Min
	}
	return r.Min + rng.Intn(r.Max-r.Min+1)
}

// Validate rejects inverted or negative intervals.
func (r IntRange) Validate(field string) error {
	if r.Min < 0 {
		return configErr(field, "min %d is negative", r.Min)
	}
	if r.Max < r.Min {
		return configErr(field, "max %d < min %d", r.Max, r.Min)
	}
	return nil
}

func clamp01(x float32) float32 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
