// Package systems contains ECS systems for the scene around the particle system.
package systems

import (
	"math"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/flare/components"
)

// Bounds represents the world bounds.
type Bounds struct {
	Width, Height float32
}

// MotionSystem moves anchored entities and keeps them inside the bounds.
type MotionSystem struct {
	filter ecs.Filter3[components.Position, components.Velocity, components.Anchor]
	bounds Bounds
}

// NewMotionSystem creates a new motion system.
func NewMotionSystem(w *ecs.World, bounds Bounds) *MotionSystem {
	return &MotionSystem{
		filter: *ecs.NewFilter3[components.Position, components.Velocity, components.Anchor](w),
		bounds: bounds,
	}
}

// SetBounds changes the world bounds.
func (s *MotionSystem) SetBounds(bounds Bounds) {
	s.bounds = bounds
}

// Update advances every anchor by dt seconds.
func (s *MotionSystem) Update(dt float32) {
	query := s.filter.Query()
	for query.Next() {
		pos, vel, anchor := query.Get()

		pos.X += vel.X * dt
		pos.Y += vel.Y * dt

		if anchor.Bounce {
			pos.X, vel.X = bounce(pos.X, vel.X, s.bounds.Width)
			pos.Y, vel.Y = bounce(pos.Y, vel.Y, s.bounds.Height)
		} else {
			pos.X = wrap(pos.X, s.bounds.Width)
			pos.Y = wrap(pos.Y, s.bounds.Height)
		}
	}
}

// bounce folds x back into [0, size] and flips v when it crossed a wall.
func bounce(x, v, size float32) (float32, float32) {
	if size <= 0 {
		return x, v
	}
	if x < 0 {
		x = -x
		v = absf(v)
	}
	if x > size {
		x = 2*size - x
		v = -absf(v)
	}
	// A step longer than the world lands outside again; clamp.
	return clamp(x, 0, size), v
}

// wrap maps x into [0, size).
func wrap(x, size float32) float32 {
	if size <= 0 {
		return x
	}
	r := float32(math.Mod(float64(x), float64(size)))
	if r < 0 {
		r += size
	}
	return r
}
