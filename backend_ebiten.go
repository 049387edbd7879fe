package main

import (
	"fmt"
	"image/color"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/pthm-cable/flare/config"
	"github.com/pthm-cable/flare/game"
	"github.com/pthm-cable/flare/renderer/ebitensink"
	"github.com/pthm-cable/flare/renderer/sprite"
)

// limitedFrame ends the ebiten loop once the game reaches max frames.
type limitedFrame struct {
	*game.Game
	max int
}

func (f limitedFrame) Update(dt float64) error {
	if err := f.Game.Update(dt); err != nil {
		return err
	}
	if frameLimitReached(f.Game, f.max) {
		slog.Info("max frames reached", "frames", f.Frames())
		return ebiten.Termination
	}
	return nil
}

func runEbiten(cfg *config.Config, opts runOptions) error {
	img, err := sprite.FromConfig(cfg.Texture)
	if err != nil {
		return fmt.Errorf("loading sprite: %w", err)
	}

	gopts := opts.game
	gopts.Texture = ebitensink.NewTexture(img)
	g, err := game.New(cfg, gopts)
	if err != nil {
		return err
	}
	defer g.Unload()

	ebiten.SetTPS(cfg.Screen.TargetFPS)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	r, gr, b, a := cfg.Screen.Background.RGBA8()
	runner := ebitensink.NewRunner(
		limitedFrame{Game: g, max: opts.maxFrames},
		ebitensink.NewSink(g.Camera(), cfg.Texture.Blend),
		cfg.Screen.Width, cfg.Screen.Height,
		color.RGBA{R: r, G: gr, B: b, A: a},
	)
	return ebitensink.Run(runner, cfg.Screen.Title)
}
