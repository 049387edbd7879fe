// Package renderer draws particle batches with raylib.
package renderer

import (
	"errors"
	"fmt"
	"image"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/flare/camera"
	"github.com/pthm-cable/flare/particle"
)

// ErrForeignTexture is returned when a batch is bound to a texture that was
// not created by this package.
var ErrForeignTexture = errors.New("renderer: texture not created by raylib backend")

// Texture wraps a GPU texture so it can be bound to a particle.System.
type Texture struct {
	tex rl.Texture2D
}

// NewTexture uploads img. Must be called after the raylib window is created.
func NewTexture(img image.Image) *Texture {
	rlImg := rl.NewImageFromImage(img)
	tex := rl.LoadTextureFromImage(rlImg)
	rl.SetTextureFilter(tex, rl.FilterBilinear)
	rl.UnloadImage(rlImg)
	return &Texture{tex: tex}
}

// Size implements particle.Texture.
func (t *Texture) Size() (w, h int) {
	return int(t.tex.Width), int(t.tex.Height)
}

// Unload frees the GPU texture.
func (t *Texture) Unload() {
	rl.UnloadTexture(t.tex)
}

// ParseBlend maps a config blend name to a raylib blend mode.
func ParseBlend(name string) rl.BlendMode {
	if name == "additive" {
		return rl.BlendAdditive
	}
	return rl.BlendAlpha
}

// ParticleRenderer submits particle triangles through rlgl immediate mode.
// Must be used between BeginDrawing and EndDrawing.
type ParticleRenderer struct {
	cam   *camera.Camera
	blend rl.BlendMode

	culled uint64
}

// NewParticleRenderer creates a renderer projecting through cam.
func NewParticleRenderer(cam *camera.Camera, blend rl.BlendMode) *ParticleRenderer {
	return &ParticleRenderer{cam: cam, blend: blend}
}

// SetBlend changes the blend mode used for subsequent batches.
func (r *ParticleRenderer) SetBlend(blend rl.BlendMode) {
	r.blend = blend
}

// Culled returns the number of off-screen triangles skipped so far.
func (r *ParticleRenderer) Culled() uint64 {
	return r.culled
}

// Submit implements particle.RenderSink.
func (r *ParticleRenderer) Submit(batch []particle.Triangle, tex particle.Texture) error {
	var id uint32
	invW, invH := float32(0), float32(0)
	if tex != nil {
		t, ok := tex.(*Texture)
		if !ok {
			return fmt.Errorf("%w: %T", ErrForeignTexture, tex)
		}
		id = t.tex.ID
		invW, invH = 1/float32(t.tex.Width), 1/float32(t.tex.Height)
	}

	rl.BeginBlendMode(r.blend)
	rl.SetTexture(id)
	rl.Begin(rl.Triangles)

	for i := range batch {
		tri := &batch[i]
		if !r.cam.TriangleVisible(tri) {
			r.culled++
			continue
		}
		for _, v := range tri {
			c := ToColor(v.Color)
			rl.Color4ub(c.R, c.G, c.B, c.A)
			rl.TexCoord2f(v.UV.X*invW, v.UV.Y*invH)
			sx, sy := r.cam.WorldToScreen(v.Pos.X, v.Pos.Y)
			rl.Vertex2f(sx, sy)
		}
	}

	rl.End()
	rl.SetTexture(0)
	rl.EndBlendMode()
	return nil
}

// ToColor converts a [0, 1] particle color to 8-bit raylib color.
func ToColor(c particle.Color) rl.Color {
	return rl.Color{R: to8(c.R), G: to8(c.G), B: to8(c.B), A: to8(c.A)}
}

func to8(x float32) uint8 {
	if x <= 0 {
		return 0
	}
	if x >= 1 {
		return 255
	}
	return uint8(x*255 + 0.5)
}
