package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/flare/config"
	"github.com/pthm-cable/flare/game"
	"github.com/pthm-cable/flare/renderer/termsink"
)

func runTerminal(cfg *config.Config, opts runOptions) error {
	// Log lines would tear the screen; send them to the output dir or drop them.
	restore, err := redirectLogs(opts.game.OutputDir)
	if err != nil {
		return err
	}
	defer restore()

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initializing screen: %w", err)
	}
	defer screen.Fini()

	g, err := game.New(cfg, opts.game)
	if err != nil {
		return err
	}
	defer g.Unload()

	sink := termsink.NewSink(screen, g.Camera())

	fps := cfg.Screen.TargetFPS
	if fps <= 0 {
		fps = 30
	}
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	last := time.Now()
	for {
		select {
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
					return nil
				}
				if ev.Key() == tcell.KeyRune {
					switch r := ev.Rune(); {
					case r == 'q':
						return nil
					case r == ' ':
						g.TogglePause()
					case r == 'c':
						g.Clear()
					case r >= '1' && r <= '9':
						g.ToggleEmitter(int(r - '1'))
					}
				}
			case *tcell.EventResize:
				screen.Sync()
			}

		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now
			if err := g.Update(dt); err != nil {
				return err
			}

			sink.Begin()
			if err := g.Draw(sink); err != nil {
				return err
			}
			sink.End()
			g.Perf().RecordFrame()

			if frameLimitReached(g, opts.maxFrames) {
				slog.Info("max frames reached", "frames", g.Frames())
				return nil
			}
		}
	}
}

// redirectLogs points the default logger at dir/flare.log, or discards
// output when dir is empty. The returned func restores the previous logger.
func redirectLogs(dir string) (func(), error) {
	prev := slog.Default()
	var w io.Writer = io.Discard
	var f *os.File
	if dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating output directory: %w", err)
		}
		var err error
		f, err = os.Create(filepath.Join(dir, "flare.log"))
		if err != nil {
			return nil, fmt.Errorf("creating log file: %w", err)
		}
		w = f
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(w, nil)))
	return func() {
		slog.SetDefault(prev)
		if f != nil {
			f.Close()
		}
	}, nil
}
