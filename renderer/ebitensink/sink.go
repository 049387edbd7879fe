// Package ebitensink renders particle batches with Ebitengine.
package ebitensink

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/pthm-cable/flare/camera"
	"github.com/pthm-cable/flare/particle"
)

// ErrForeignTexture is returned when a batch is bound to a texture that was
// not created by this package.
var ErrForeignTexture = errors.New("ebitensink: texture not created by ebiten backend")

// ErrNoTarget is returned when Submit is called outside Begin/End.
var ErrNoTarget = errors.New("ebitensink: no target image")

// Texture wraps an ebiten image so it can be bound to a particle.System.
type Texture struct {
	img *ebiten.Image
}

// NewTexture copies img to the GPU.
func NewTexture(img image.Image) *Texture {
	return &Texture{img: ebiten.NewImageFromImage(img)}
}

// Size implements particle.Texture.
func (t *Texture) Size() (w, h int) {
	b := t.img.Bounds()
	return b.Dx(), b.Dy()
}

// Sink converts particle triangles to ebiten vertices and draws them on the
// target image set by Begin.
type Sink struct {
	cam   *camera.Camera
	blend ebiten.Blend

	target *ebiten.Image
	white  *ebiten.Image

	vertices []ebiten.Vertex
	indices  []uint16
}

// NewSink creates a sink projecting through cam. blend is "alpha" or "additive".
func NewSink(cam *camera.Camera, blend string) *Sink {
	white := ebiten.NewImage(3, 3)
	white.Fill(color.White)
	return &Sink{
		cam:   cam,
		blend: ParseBlend(blend),
		white: white.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image),
	}
}

// ParseBlend maps a config blend name to an ebiten blend.
func ParseBlend(name string) ebiten.Blend {
	if name == "additive" {
		return ebiten.BlendLighter
	}
	return ebiten.BlendSourceOver
}

// Begin sets the image the following batches are drawn on.
func (s *Sink) Begin(target *ebiten.Image) {
	s.target = target
}

// End releases the target image.
func (s *Sink) End() {
	s.target = nil
}

// Submit implements particle.RenderSink.
func (s *Sink) Submit(batch []particle.Triangle, tex particle.Texture) error {
	if s.target == nil {
		return ErrNoTarget
	}
	src := s.white
	if tex != nil {
		t, ok := tex.(*Texture)
		if !ok {
			return fmt.Errorf("%w: %T", ErrForeignTexture, tex)
		}
		src = t.img
	}

	op := &ebiten.DrawTrianglesOptions{Blend: s.blend}
	for len(batch) > 0 {
		n := min(len(batch), MaxTrianglesPerDraw)
		s.vertices, s.indices = AppendTriangles(s.vertices[:0], s.indices[:0], batch[:n], s.cam, tex == nil)
		if len(s.indices) > 0 {
			s.target.DrawTriangles(s.vertices, s.indices, src, op)
		}
		batch = batch[n:]
	}
	return nil
}

// MaxTrianglesPerDraw keeps vertex indices within uint16.
const MaxTrianglesPerDraw = 65535 / 3

// AppendTriangles projects the visible triangles of batch through cam and
// appends them as ebiten vertices and indices. Untextured triangles sample
// the white pixel at (1, 1).
func AppendTriangles(vs []ebiten.Vertex, is []uint16, batch []particle.Triangle, cam *camera.Camera, untextured bool) ([]ebiten.Vertex, []uint16) {
	for i := range batch {
		tri := &batch[i]
		if !cam.TriangleVisible(tri) {
			continue
		}
		base := uint16(len(vs))
		for _, v := range tri {
			p := cam.Project(v.Pos)
			sx, sy := v.UV.X, v.UV.Y
			if untextured {
				sx, sy = 1, 1
			}
			vs = append(vs, ebiten.Vertex{
				DstX:   p.X,
				DstY:   p.Y,
				SrcX:   sx,
				SrcY:   sy,
				ColorR: v.Color.R,
				ColorG: v.Color.G,
				ColorB: v.Color.B,
				ColorA: v.Color.A,
			})
		}
		is = append(is, base, base+1, base+2)
	}
	return vs, is
}
