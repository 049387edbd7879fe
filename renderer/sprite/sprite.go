// Package sprite builds the CPU-side particle image shared by every backend.
package sprite

import (
	"fmt"
	"image"

	"github.com/gogpu/gg"

	"github.com/pthm-cable/flare/config"
)

// SoftDisc renders a white disc of the given diameter whose alpha falls off
// from the center to the rim.
func SoftDisc(size int) (image.Image, error) {
	if size < 1 {
		return nil, fmt.Errorf("sprite size %d must be >= 1", size)
	}
	dc := gg.NewContext(size, size)
	defer dc.Close()

	r := float64(size) / 2
	dc.ClearWithColor(gg.RGBA2(1, 1, 1, 0))
	dc.SetFillBrush(gg.NewRadialGradientBrush(r, r, 0, r).
		AddColorStop(0, gg.RGBA2(1, 1, 1, 1)).
		AddColorStop(0.35, gg.RGBA2(1, 1, 1, 0.8)).
		AddColorStop(1, gg.RGBA2(1, 1, 1, 0)))
	dc.DrawCircle(r, r, r)
	if err := dc.Fill(); err != nil {
		return nil, fmt.Errorf("filling sprite: %w", err)
	}
	if err := dc.FlushGPU(); err != nil {
		return nil, fmt.Errorf("flushing sprite: %w", err)
	}
	return dc.Image(), nil
}

// Load reads a PNG, JPEG or WebP sprite from disk.
func Load(path string) (image.Image, error) {
	buf, err := gg.LoadImage(path)
	if err != nil {
		return nil, fmt.Errorf("loading sprite %s: %w", path, err)
	}
	return buf.ToStdImage(), nil
}

// FromConfig loads the configured sprite, or generates a soft disc when no
// path is set.
func FromConfig(cfg config.TextureConfig) (image.Image, error) {
	if cfg.Path != "" {
		return Load(cfg.Path)
	}
	return SoftDisc(cfg.Size)
}

// Texture is a particle.Texture for sinks that sample the image on the CPU.
type Texture struct {
	Img image.Image
}

// Size implements particle.Texture.
func (t *Texture) Size() (w, h int) {
	b := t.Img.Bounds()
	return b.Dx(), b.Dy()
}
