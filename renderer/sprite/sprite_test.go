package sprite

import (
	"path/filepath"
	"testing"

	"github.com/gogpu/gg"

	"github.com/pthm-cable/flare/config"
)

func TestSoftDiscFalloff(t *testing.T) {
	img, err := SoftDisc(32)
	if err != nil {
		t.Fatalf("SoftDisc: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 32 || b.Dy() != 32 {
		t.Fatalf("expected 32x32, got %v", b)
	}

	_, _, _, center := img.At(16, 16).RGBA()
	_, _, _, edge := img.At(30, 16).RGBA()
	_, _, _, corner := img.At(0, 0).RGBA()
	if center <= edge {
		t.Errorf("alpha should fall off: center %d, edge %d", center, edge)
	}
	if corner != 0 {
		t.Errorf("corner outside the disc should be transparent, got %d", corner)
	}
}

func TestSoftDiscRejectsZeroSize(t *testing.T) {
	if _, err := SoftDisc(0); err == nil {
		t.Fatal("expected error for zero size")
	}
}

func TestFromConfigLoadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dot.png")
	dc := gg.NewContext(8, 4)
	dc.ClearWithColor(gg.RGBA2(1, 0, 0, 1))
	if err := dc.SavePNG(path); err != nil {
		t.Fatalf("SavePNG: %v", err)
	}
	dc.Close()

	img, err := FromConfig(config.TextureConfig{Path: path})
	if err != nil {
		t.Fatalf("FromConfig: %v", err)
	}
	tex := &Texture{Img: img}
	if w, h := tex.Size(); w != 8 || h != 4 {
		t.Errorf("expected 8x4, got %dx%d", w, h)
	}
}

func TestFromConfigMissingFile(t *testing.T) {
	if _, err := FromConfig(config.TextureConfig{Path: filepath.Join(t.TempDir(), "missing.png")}); err == nil {
		t.Fatal("expected error for a missing sprite")
	}
}
