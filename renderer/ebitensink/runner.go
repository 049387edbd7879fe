package ebitensink

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/pthm-cable/flare/particle"
)

// Frame is the per-frame work driven by the ebiten loop.
type Frame interface {
	Update(dt float64) error
	Draw(sink particle.RenderSink) error
	Stats() particle.Stats
}

// Runner adapts a Frame to ebiten.Game.
type Runner struct {
	frame      Frame
	sink       *Sink
	width      int
	height     int
	background color.Color
	paused     bool
}

// NewRunner creates a runner with a fixed logical screen size.
func NewRunner(frame Frame, sink *Sink, width, height int, background color.Color) *Runner {
	return &Runner{
		frame:      frame,
		sink:       sink,
		width:      width,
		height:     height,
		background: background,
	}
}

// Update implements ebiten.Game.
func (r *Runner) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		r.paused = !r.paused
	}
	if r.paused {
		return nil
	}
	return r.frame.Update(1 / float64(ebiten.TPS()))
}

// Draw implements ebiten.Game.
func (r *Runner) Draw(screen *ebiten.Image) {
	screen.Fill(r.background)

	r.sink.Begin(screen)
	err := r.frame.Draw(r.sink)
	r.sink.End()

	st := r.frame.Stats()
	msg := fmt.Sprintf("TPS: %0.1f  FPS: %0.1f\nLive: %d/%d  Dropped: %d  Flushes: %d",
		ebiten.ActualTPS(), ebiten.ActualFPS(), st.Live, st.Capacity, st.Dropped, st.Flushes)
	if err != nil {
		msg += "\n" + err.Error()
	}
	ebitenutil.DebugPrint(screen, msg)
}

// Layout implements ebiten.Game.
func (r *Runner) Layout(outsideWidth, outsideHeight int) (int, int) {
	return r.width, r.height
}

// Run opens the window and blocks until it is closed.
func Run(r *Runner, title string) error {
	ebiten.SetWindowSize(r.width, r.height)
	ebiten.SetWindowTitle(title)
	if err := ebiten.RunGame(r); err != nil {
		return fmt.Errorf("ebiten: %w", err)
	}
	return nil
}
