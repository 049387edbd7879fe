package config

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/flare/particle"
)

// Vec is a 2D point. YAML accepts [x, y] or {x: .., y: ..}.
type Vec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (v *Vec) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.SequenceNode {
		var xs []float64
		if err := node.Decode(&xs); err != nil {
			return err
		}
		if len(xs) != 2 {
			return fmt.Errorf("line %d: vector needs 2 values, got %d", node.Line, len(xs))
		}
		v.X, v.Y = xs[0], xs[1]
		return nil
	}
	type plain Vec
	return node.Decode((*plain)(v))
}

// MarshalYAML implements yaml.Marshaler.
func (v Vec) MarshalYAML() (any, error) {
	return []float64{v.X, v.Y}, nil
}

// Particle converts to the engine's vector type.
func (v Vec) Particle() particle.Vec2 {
	return particle.Vec2{X: float32(v.X), Y: float32(v.Y)}
}

// Range is a closed interval. YAML accepts a scalar (fixed value),
// [min, max] or {min: .., max: ..}.
type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (r *Range) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var x float64
		if err := node.Decode(&x); err != nil {
			return err
		}
		r.Min, r.Max = x, x
		return nil
	case yaml.SequenceNode:
		var xs []float64
		if err := node.Decode(&xs); err != nil {
			return err
		}
		if len(xs) != 2 {
			return fmt.Errorf("line %d: range needs [min, max], got %d values", node.Line, len(xs))
		}
		r.Min, r.Max = xs[0], xs[1]
		return nil
	}
	type plain Range
	return node.Decode((*plain)(r))
}

// MarshalYAML implements yaml.Marshaler.
func (r Range) MarshalYAML() (any, error) {
	if r.Min == r.Max {
		return r.Min, nil
	}
	return []float64{r.Min, r.Max}, nil
}

// Particle converts to the engine's range type.
func (r Range) Particle() particle.Range {
	return particle.Range{Min: float32(r.Min), Max: float32(r.Max)}
}

// Seconds converts to the engine's float64 time range.
func (r Range) Seconds() particle.TimeRange {
	return particle.TimeRange{Min: r.Min, Max: r.Max}
}

// IntRange is a closed integer interval with the same YAML forms as Range.
type IntRange struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (r *IntRange) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var x int
		if err := node.Decode(&x); err != nil {
			return err
		}
		r.Min, r.Max = x, x
		return nil
	case yaml.SequenceNode:
		var xs []int
		if err := node.Decode(&xs); err != nil {
			return err
		}
		if len(xs) != 2 {
			return fmt.Errorf("line %d: range needs [min, max], got %d values", node.Line, len(xs))
		}
		r.Min, r.Max = xs[0], xs[1]
		return nil
	}
	type plain IntRange
	return node.Decode((*plain)(r))
}

// MarshalYAML implements yaml.Marshaler.
func (r IntRange) MarshalYAML() (any, error) {
	if r.Min == r.Max {
		return r.Min, nil
	}
	return []int{r.Min, r.Max}, nil
}

// Particle converts to the engine's range type.
func (r IntRange) Particle() particle.IntRange {
	return particle.IntRange{Min: r.Min, Max: r.Max}
}

// Color is an RGBA color with channels in [0, 1]. YAML accepts [r, g, b],
// [r, g, b, a], a CSS color name ("orange") or hex ("#ff8800", "#ff880080").
type Color struct {
	R, G, B, A float64
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (c *Color) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.SequenceNode:
		var xs []float64
		if err := node.Decode(&xs); err != nil {
			return err
		}
		switch len(xs) {
		case 3:
			*c = Color{R: xs[0], G: xs[1], B: xs[2], A: 1}
		case 4:
			*c = Color{R: xs[0], G: xs[1], B: xs[2], A: xs[3]}
		default:
			return fmt.Errorf("line %d: color needs 3 or 4 channels, got %d", node.Line, len(xs))
		}
		return nil
	case yaml.ScalarNode:
		parsed, err := ParseColor(node.Value)
		if err != nil {
			return fmt.Errorf("line %d: %w", node.Line, err)
		}
		*c = parsed
		return nil
	}
	return fmt.Errorf("line %d: unsupported color form", node.Line)
}

// MarshalYAML implements yaml.Marshaler.
func (c Color) MarshalYAML() (any, error) {
	return []float64{c.R, c.G, c.B, c.A}, nil
}

// ParseColor resolves a CSS color name or a #rrggbb / #rrggbbaa hex string.
func ParseColor(s string) (Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if strings.HasPrefix(s, "#") {
		hex := s[1:]
		if len(hex) != 6 && len(hex) != 8 {
			return Color{}, fmt.Errorf("color %q: expected #rrggbb or #rrggbbaa", s)
		}
		if len(hex) == 6 {
			hex += "ff"
		}
		v, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return Color{}, fmt.Errorf("color %q: %w", s, err)
		}
		return Color{
			R: float64(v>>24&0xff) / 255,
			G: float64(v>>16&0xff) / 255,
			B: float64(v>>8&0xff) / 255,
			A: float64(v&0xff) / 255,
		}, nil
	}
	rgba, ok := colornames.Map[s]
	if !ok {
		return Color{}, fmt.Errorf("unknown color name %q", s)
	}
	return Color{
		R: float64(rgba.R) / 255,
		G: float64(rgba.G) / 255,
		B: float64(rgba.B) / 255,
		A: float64(rgba.A) / 255,
	}, nil
}

// Particle converts to the engine's color type.
func (c Color) Particle() particle.Color {
	return particle.Color{R: float32(c.R), G: float32(c.G), B: float32(c.B), A: float32(c.A)}
}

// RGBA8 returns the color as 8-bit channels.
func (c Color) RGBA8() (r, g, b, a uint8) {
	to8 := func(x float64) uint8 {
		if x <= 0 {
			return 0
		}
		if x >= 1 {
			return 255
		}
		return uint8(x*255 + 0.5)
	}
	return to8(c.R), to8(c.G), to8(c.B), to8(c.A)
}

// GradientPoint is a control point. YAML accepts [pos, value] or {pos: .., value: ..}.
type GradientPoint struct {
	Pos   float64 `yaml:"pos"`
	Value float64 `yaml:"value"`
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (p *GradientPoint) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.SequenceNode {
		var xs []float64
		if err := node.Decode(&xs); err != nil {
			return err
		}
		if len(xs) != 2 {
			return fmt.Errorf("line %d: gradient point needs [pos, value], got %d values", node.Line, len(xs))
		}
		p.Pos, p.Value = xs[0], xs[1]
		return nil
	}
	type plain GradientPoint
	return node.Decode((*plain)(p))
}

// MarshalYAML implements yaml.Marshaler.
func (p GradientPoint) MarshalYAML() (any, error) {
	return []float64{p.Pos, p.Value}, nil
}

// Gradient builds the engine curve from control points.
func Gradient(points []GradientPoint) (particle.Gradient, error) {
	pts := make([]particle.GradientPoint, len(points))
	for i, p := range points {
		pts[i] = particle.GradientPoint{Pos: float32(p.Pos), Value: float32(p.Value)}
	}
	return particle.NewGradient(pts...)
}
