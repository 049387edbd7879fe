package snapshot

import (
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/pthm-cable/flare/camera"
	"github.com/pthm-cable/flare/particle"
	"github.com/pthm-cable/flare/renderer/sprite"
)

type otherTexture struct{}

func (otherTexture) Size() (int, int) { return 1, 1 }

func drawQuad(t *testing.T, s *Sink, x, y, size float32, c particle.Color, tex particle.Texture) {
	t.Helper()
	p := &particle.Particle{Position: particle.Vec2{X: x, Y: y}, Size: size, Color: c}
	q := particle.Quad(p, 0, 0)
	if err := s.Submit(q[:], tex); err != nil {
		t.Fatalf("Submit: %v", err)
	}
}

func TestSinkFillsQuad(t *testing.T) {
	cam := camera.New(64, 64, 64, 64)
	s := NewSink(64, 64, cam, particle.Color{A: 1})
	defer s.Close()

	s.Begin()
	drawQuad(t, s, 32, 32, 16, particle.Color{R: 1, A: 1}, nil)

	img := s.Image()
	r, g, b, _ := img.At(36, 30).RGBA()
	if r < 0xf000 || g > 0x1000 || b > 0x1000 {
		t.Errorf("expected red inside the quad, got %d %d %d", r, g, b)
	}
	r, _, _, _ = img.At(4, 4).RGBA()
	if r > 0x1000 {
		t.Errorf("expected background outside the quad, got red %d", r)
	}
}

func TestSinkBeginClears(t *testing.T) {
	cam := camera.New(32, 32, 32, 32)
	s := NewSink(32, 32, cam, particle.Color{A: 1})
	defer s.Close()

	s.Begin()
	drawQuad(t, s, 16, 16, 32, particle.White, nil)
	s.Begin()

	r, _, _, _ := s.Image().At(16, 16).RGBA()
	if r > 0x1000 {
		t.Errorf("expected cleared canvas, got red %d", r)
	}
}

func TestSinkSavePNG(t *testing.T) {
	cam := camera.New(16, 16, 16, 16)
	s := NewSink(16, 16, cam, particle.Color{A: 1})
	defer s.Close()

	s.Begin()
	drawQuad(t, s, 8, 8, 4, particle.White, nil)

	path := filepath.Join(t.TempDir(), "frames", "frame_0001.png")
	if err := s.SavePNG(path); err != nil {
		t.Fatalf("SavePNG: %v", err)
	}
	if info, err := os.Stat(path); err != nil || info.Size() == 0 {
		t.Fatalf("expected a non-empty PNG, stat err %v", err)
	}
}

func TestSinkRejectsForeignTexture(t *testing.T) {
	cam := camera.New(16, 16, 16, 16)
	s := NewSink(16, 16, cam, particle.Color{A: 1})
	defer s.Close()

	p := &particle.Particle{Size: 2}
	q := particle.Quad(p, 1, 1)
	if err := s.Submit(q[:], otherTexture{}); !errors.Is(err, ErrForeignTexture) {
		t.Errorf("expected ErrForeignTexture, got %v", err)
	}
}

func TestMeanAlpha(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.Set(0, 0, color.NRGBA{A: 255})
	img.Set(1, 0, color.NRGBA{A: 0})
	if got := MeanAlpha(img); got != 0.5 {
		t.Errorf("expected 0.5, got %v", got)
	}

	tex := &sprite.Texture{Img: img}
	cam := camera.New(16, 16, 16, 16)
	s := NewSink(16, 16, cam, particle.Color{A: 1})
	defer s.Close()
	drawQuad(t, s, 8, 8, 4, particle.White, tex)
	if s.coverage[tex] != 0.5 {
		t.Errorf("expected cached coverage 0.5, got %v", s.coverage[tex])
	}
}
