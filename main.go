package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/pthm-cable/flare/config"
	"github.com/pthm-cable/flare/game"
)

// runOptions carries the CLI settings every backend needs.
type runOptions struct {
	game          game.Options
	maxFrames     int
	snapshotEvery int
}

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	backend := flag.String("backend", "raylib", "Render backend: raylib, ebiten, term or png")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	statsWindow := flag.Float64("stats-window", 0, "Stats window size in seconds (0 = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs, config snapshot and PNG frames")
	seed := flag.Int64("seed", 0, "RNG seed (0 = simulation.seed, or time-based if that is 0 too)")
	maxFrames := flag.Int("max-frames", 0, "Stop after N frames (0 = unlimited)")
	snapshotEvery := flag.Int("snapshot-every", 60, "png backend: save a frame every N frames")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	rngSeed := *seed
	if rngSeed == 0 && cfg.Simulation.Seed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	opts := runOptions{
		game: game.Options{
			Seed:           rngSeed,
			LogStats:       *logStats,
			StatsWindowSec: *statsWindow,
			OutputDir:      *outputDir,
		},
		maxFrames:     *maxFrames,
		snapshotEvery: *snapshotEvery,
	}

	slog.Info("starting",
		"backend", *backend,
		"seed", rngSeed,
		"max_frames", *maxFrames,
		"output_dir", *outputDir,
	)

	if err := run(*backend, cfg, opts); err != nil {
		slog.Error("run failed", "backend", *backend, "error", err)
		os.Exit(1)
	}
}

func run(backend string, cfg *config.Config, opts runOptions) error {
	switch backend {
	case "raylib":
		return runRaylib(cfg, opts)
	case "ebiten":
		return runEbiten(cfg, opts)
	case "term":
		return runTerminal(cfg, opts)
	case "png":
		return runPNG(cfg, opts)
	default:
		return fmt.Errorf("unknown backend %q (want raylib, ebiten, term or png)", backend)
	}
}

// frameLimitReached reports whether a run capped at limit frames is done.
func frameLimitReached(g *game.Game, limit int) bool {
	return limit > 0 && g.Frames() >= limit
}
