package particle

// Vertex is one corner of a rendered triangle.
// UV is in texels of the bound texture and is meaningless without one.
type Vertex struct {
	Pos   Vec2
	UV    Vec2
	Color Color
}

// Triangle is three vertices in submission order.
type Triangle [3]Vertex

// Texture is the render-side image bound while drawing particles. Sinks
// type-assert it to their own concrete texture type.
type Texture interface {
	Size() (w, h int)
}

// RenderSink consumes batches of triangles. Submit is synchronous: the batch
// slice is reused once it returns. tex may be nil.
type RenderSink interface {
	Submit(batch []Triangle, tex Texture) error
}

// SinkFunc adapts a function to the RenderSink interface.
type SinkFunc func(batch []Triangle, tex Texture) error

// Submit calls f(batch, tex).
func (f SinkFunc) Submit(batch []Triangle, tex Texture) error {
	return f(batch, tex)
}

// Quad returns the two triangles covering p's square, with UVs spanning
// [0, uvW] x [0, uvH].
func Quad(p *Particle, uvW, uvH float32) [2]Triangle {
	half := p.Size / 2
	x0, y0 := p.Position.X-half, p.Position.Y-half
	x1, y1 := p.Position.X+half, p.Position.Y+half
	c := p.Color

	tl := Vertex{Pos: Vec2{X: x0, Y: y0}, UV: Vec2{X: 0, Y: 0}, Color: c}
	tr := Vertex{Pos: Vec2{X: x1, Y: y0}, UV: Vec2{X: uvW, Y: 0}, Color: c}
	bl := Vertex{Pos: Vec2{X: x0, Y: y1}, UV: Vec2{X: 0, Y: uvH}, Color: c}
	br := Vertex{Pos: Vec2{X: x1, Y: y1}, UV: Vec2{X: uvW, Y: uvH}, Color: c}

	return [2]Triangle{
		{tl, bl, tr},
		{tr, bl, br},
	}
}
