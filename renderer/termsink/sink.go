// Package termsink renders particle batches as colored glyphs on a terminal.
package termsink

import (
	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/flare/camera"
	"github.com/pthm-cable/flare/particle"
)

// ramp maps accumulated coverage to glyphs, faintest first.
var ramp = []rune(" .:-=+*#%@")

type cell struct {
	r, g, b, a float32
}

// Sink samples each terminal cell center against the submitted triangles,
// blends the covering colors and draws the result on a tcell screen between
// Begin and End. Textures are ignored; a terminal cell is far coarser than
// any sprite.
type Sink struct {
	screen tcell.Screen
	cam    *camera.Camera

	cols, rows int
	cells      []cell
}

// NewSink wraps an initialized screen. cam's viewport is in world-sized
// pixels; each cell covers viewport/size of it.
func NewSink(screen tcell.Screen, cam *camera.Camera) *Sink {
	return &Sink{screen: screen, cam: cam}
}

// Begin resets the accumulation buffer to the current screen size.
func (s *Sink) Begin() {
	s.cols, s.rows = s.screen.Size()
	n := s.cols * s.rows
	if cap(s.cells) < n {
		s.cells = make([]cell, n)
	}
	s.cells = s.cells[:n]
	clear(s.cells)
}

// Submit implements particle.RenderSink.
func (s *Sink) Submit(batch []particle.Triangle, _ particle.Texture) error {
	if s.cols == 0 || s.rows == 0 {
		return nil
	}
	cw := s.cam.ViewportW / float32(s.cols)
	ch := s.cam.ViewportH / float32(s.rows)

	for i := range batch {
		tri := &batch[i]
		if !s.cam.TriangleVisible(tri) {
			continue
		}
		a := s.cam.Project(tri[0].Pos)
		b := s.cam.Project(tri[1].Pos)
		c := s.cam.Project(tri[2].Pos)
		if edge(a, b, c.X, c.Y) == 0 {
			continue
		}

		x0 := clampInt(int(min(a.X, b.X, c.X)/cw), 0, s.cols-1)
		x1 := clampInt(int(max(a.X, b.X, c.X)/cw), 0, s.cols-1)
		y0 := clampInt(int(min(a.Y, b.Y, c.Y)/ch), 0, s.rows-1)
		y1 := clampInt(int(max(a.Y, b.Y, c.Y)/ch), 0, s.rows-1)

		col := tri[0].Color
		for cy := y0; cy <= y1; cy++ {
			py := (float32(cy) + 0.5) * ch
			for cx := x0; cx <= x1; cx++ {
				px := (float32(cx) + 0.5) * cw
				if !inside(a, b, c, px, py) {
					continue
				}
				blend(&s.cells[cy*s.cols+cx], col)
			}
		}
	}
	return nil
}

// blend composites col over dst with straight alpha.
func blend(dst *cell, col particle.Color) {
	sa := col.A
	dst.r = col.R*sa + dst.r*(1-sa)
	dst.g = col.G*sa + dst.g*(1-sa)
	dst.b = col.B*sa + dst.b*(1-sa)
	dst.a = sa + dst.a*(1-sa)
}

// End draws the accumulated cells and shows the screen.
func (s *Sink) End() {
	s.screen.Clear()
	for cy := 0; cy < s.rows; cy++ {
		for cx := 0; cx < s.cols; cx++ {
			c := s.cells[cy*s.cols+cx]
			idx := int(c.a * float32(len(ramp)-1))
			if idx <= 0 {
				continue
			}
			style := tcell.StyleDefault.Foreground(tcell.NewRGBColor(
				int32(unit8(c.r/c.a)), int32(unit8(c.g/c.a)), int32(unit8(c.b/c.a))))
			s.screen.SetContent(cx, cy, ramp[idx], nil, style)
		}
	}
	s.screen.Show()
}

// Glyph returns the rune drawn at (x, y) after End.
func (s *Sink) Glyph(x, y int) rune {
	r, _, _, _ := s.screen.GetContent(x, y)
	return r
}

// inside reports whether (px, py) lies in triangle abc of either winding.
func inside(a, b, c particle.Vec2, px, py float32) bool {
	d1 := edge(a, b, px, py)
	d2 := edge(b, c, px, py)
	d3 := edge(c, a, px, py)
	hasNeg := d1 < 0 || d2 < 0 || d3 < 0
	hasPos := d1 > 0 || d2 > 0 || d3 > 0
	return !(hasNeg && hasPos)
}

func edge(a, b particle.Vec2, px, py float32) float32 {
	return (px-b.X)*(a.Y-b.Y) - (a.X-b.X)*(py-b.Y)
}

func unit8(x float32) uint8 {
	if x <= 0 {
		return 0
	}
	if x >= 1 {
		return 255
	}
	return uint8(x*255 + 0.5)
}

func clampInt(x, lo, hi int) int {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
