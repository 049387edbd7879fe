package particle

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/interp"
)

// GradientPoint is a control point of a Gradient.
type GradientPoint struct {
	Pos   float32 // Lifetime fraction, usually in [0, 1]
	Value float32
}

// Gradient is a piecewise-linear curve over the lifetime fraction.
// Outside the first and last point the curve holds the end values.
type Gradient struct {
	points []GradientPoint
	curve  *interp.PiecewiseLinear // nil when all points share one position
	lo, hi float32
}

// NewGradient sorts the points by position and returns the curve. Points
// at the same position collapse to the last one given.
func NewGradient(points ...GradientPoint) (Gradient, error) {
	if len(points) == 0 {
		return Gradient{}, configErr("gradient", "needs at least one point")
	}
	sorted := make([]GradientPoint, len(points))
	copy(sorted, points)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Pos < sorted[j].Pos
	})
	return fitGradient(sorted)
}

// ConstantGradient returns a gradient that always yields v.
func ConstantGradient(v float32) Gradient {
	return Gradient{points: []GradientPoint{{Pos: 0, Value: v}}}
}

// LinearGradient returns a two-point gradient from a at 0 to b at 1.
func LinearGradient(a, b float32) Gradient {
	g, err := fitGradient([]GradientPoint{{Pos: 0, Value: a}, {Pos: 1, Value: b}})
	if err != nil {
		panic(err)
	}
	return g
}

func fitGradient(sorted []GradientPoint) (Gradient, error) {
	xs := make([]float64, 0, len(sorted))
	ys := make([]float64, 0, len(sorted))
	for _, p := range sorted {
		if n := len(xs); n > 0 && float64(p.Pos) == xs[n-1] {
			ys[n-1] = float64(p.Value)
			continue
		}
		xs = append(xs, float64(p.Pos))
		ys = append(ys, float64(p.Value))
	}
	g := Gradient{points: sorted, lo: sorted[0].Value, hi: sorted[0].Value}
	for _, p := range sorted[1:] {
		g.lo = min(g.lo, p.Value)
		g.hi = max(g.hi, p.Value)
	}
	if len(xs) < 2 {
		return g, nil
	}
	var pl interp.PiecewiseLinear
	if err := pl.Fit(xs, ys); err != nil {
		return Gradient{}, fmt.Errorf("%w: gradient: %v", ErrInvalidConfig, err)
	}
	g.curve = &pl
	return g, nil
}

// IsZero reports whether the gradient has no points.
func (g Gradient) IsZero() bool {
	return len(g.points) == 0
}

// Points returns a copy of the control points.
func (g Gradient) Points() []GradientPoint {
	out := make([]GradientPoint, len(g.points))
	copy(out, g.points)
	return out
}

// Sample evaluates the gradient at t. An empty gradient yields 0.
func (g Gradient) Sample(t float32) float32 {
	n := len(g.points)
	if n == 0 {
		return 0
	}
	if g.curve == nil {
		return g.points[n-1].Value
	}
	v := float32(g.curve.Predict(float64(t)))
	// Narrowing can land one ulp past an end value.
	if v < g.lo {
		return g.lo
	}
	if v > g.hi {
		return g.hi
	}
	return v
}
