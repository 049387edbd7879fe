// Package snapshot rasterizes particle batches in software with gg and saves
// frames as PNG files. It needs no window and backs headless runs.
package snapshot

import (
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/gogpu/gg"

	"github.com/pthm-cable/flare/camera"
	"github.com/pthm-cable/flare/particle"
	"github.com/pthm-cable/flare/renderer/sprite"
)

// ErrForeignTexture is returned when a batch is bound to a texture that is
// not a *sprite.Texture.
var ErrForeignTexture = errors.New("snapshot: texture is not a sprite texture")

// Sink fills every triangle with its vertex color. Textured batches have
// their alpha scaled by the sprite's mean coverage, which approximates the
// sprite's brightness without per-pixel sampling.
type Sink struct {
	dc         *gg.Context
	cam        *camera.Camera
	background gg.RGBA

	coverage map[*sprite.Texture]float64
}

// NewSink creates a width x height canvas projecting through cam.
func NewSink(width, height int, cam *camera.Camera, background particle.Color) *Sink {
	return &Sink{
		dc:         gg.NewContext(width, height),
		cam:        cam,
		background: gg.RGBA2(float64(background.R), float64(background.G), float64(background.B), float64(background.A)),
		coverage:   make(map[*sprite.Texture]float64),
	}
}

// Begin clears the canvas to the background color.
func (s *Sink) Begin() {
	s.dc.ClearWithColor(s.background)
}

// Submit implements particle.RenderSink.
func (s *Sink) Submit(batch []particle.Triangle, tex particle.Texture) error {
	alphaScale := 1.0
	if tex != nil {
		t, ok := tex.(*sprite.Texture)
		if !ok {
			return fmt.Errorf("%w: %T", ErrForeignTexture, tex)
		}
		alphaScale = s.textureCoverage(t)
	}

	for i := range batch {
		tri := &batch[i]
		if !s.cam.TriangleVisible(tri) {
			continue
		}
		c := tri[0].Color
		s.dc.SetRGBA(float64(c.R), float64(c.G), float64(c.B), float64(c.A)*alphaScale)
		for j, v := range tri {
			p := s.cam.Project(v.Pos)
			if j == 0 {
				s.dc.MoveTo(float64(p.X), float64(p.Y))
			} else {
				s.dc.LineTo(float64(p.X), float64(p.Y))
			}
		}
		s.dc.ClosePath()
		if err := s.dc.Fill(); err != nil {
			return fmt.Errorf("filling triangle: %w", err)
		}
	}
	return nil
}

func (s *Sink) textureCoverage(t *sprite.Texture) float64 {
	if c, ok := s.coverage[t]; ok {
		return c
	}
	c := MeanAlpha(t.Img)
	s.coverage[t] = c
	return c
}

// MeanAlpha returns the average alpha of img in [0, 1].
func MeanAlpha(img image.Image) float64 {
	b := img.Bounds()
	if b.Empty() {
		return 0
	}
	var sum float64
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			_, _, _, a := img.At(x, y).RGBA()
			sum += float64(a) / 0xffff
		}
	}
	return sum / float64(b.Dx()*b.Dy())
}

// Image returns a copy of the canvas.
func (s *Sink) Image() image.Image {
	return s.dc.Image()
}

// SavePNG writes the canvas to path, creating parent directories.
func (s *Sink) SavePNG(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating snapshot dir: %w", err)
	}
	if err := s.dc.SavePNG(path); err != nil {
		return fmt.Errorf("saving snapshot: %w", err)
	}
	return nil
}

// Close releases the canvas.
func (s *Sink) Close() error {
	return s.dc.Close()
}
