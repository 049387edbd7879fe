package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/pthm-cable/flare/config"
	"github.com/pthm-cable/flare/game"
	"github.com/pthm-cable/flare/renderer/snapshot"
	"github.com/pthm-cable/flare/renderer/sprite"
)

// runPNG steps the game at a fixed frame rate without a window and saves
// every snapshotEvery-th frame as a PNG. It stops at max frames or on
// interrupt.
func runPNG(cfg *config.Config, opts runOptions) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	img, err := sprite.FromConfig(cfg.Texture)
	if err != nil {
		return fmt.Errorf("loading sprite: %w", err)
	}

	gopts := opts.game
	gopts.Texture = &sprite.Texture{Img: img}
	g, err := game.New(cfg, gopts)
	if err != nil {
		return err
	}
	defer g.Unload()

	sink := snapshot.NewSink(cfg.Screen.Width, cfg.Screen.Height, g.Camera(), cfg.Screen.Background.Particle())
	defer sink.Close()

	fps := cfg.Screen.TargetFPS
	if fps <= 0 {
		fps = 60
	}
	dt := 1 / float64(fps)

	saved := 0
	for ctx.Err() == nil {
		if err := g.Update(dt); err != nil {
			return err
		}

		if opts.snapshotEvery > 0 && g.Frames()%opts.snapshotEvery == 0 {
			sink.Begin()
			if err := g.Draw(sink); err != nil {
				return err
			}
			path := framePath(g, saved)
			if err := sink.SavePNG(path); err != nil {
				return err
			}
			saved++
			slog.Debug("frame saved", "path", path, "sim_time", g.SimTime())
		}
		g.Perf().RecordFrame()

		if frameLimitReached(g, opts.maxFrames) {
			break
		}
	}

	slog.Info("png run finished", "frames", g.Frames(), "saved", saved, "sim_time", g.SimTime())
	return nil
}

// framePath places frames under the output directory, or ./frames when
// output is disabled.
func framePath(g *game.Game, n int) string {
	if p := g.Output().FramePath(n); p != "" {
		return p
	}
	return filepath.Join("frames", fmt.Sprintf("frame_%06d.png", n))
}
