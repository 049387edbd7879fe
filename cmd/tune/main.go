// Package main searches emitter spawn and lifetime settings with Nelder-Mead
// so the headless steady-state live count hits a target without dropping
// particles.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/optimize"

	"github.com/pthm-cable/flare/config"
)

// EvalRecord is one row of tune_log.csv.
type EvalRecord struct {
	Eval          int     `csv:"eval"`
	Cost          float64 `csv:"cost"`
	IntervalScale float64 `csv:"interval_scale"`
	CountScale    float64 `csv:"count_scale"`
	LifetimeScale float64 `csv:"lifetime_scale"`
	MeanLive      float64 `csv:"mean_live"`
	DropRate      float64 `csv:"drop_rate"`
}

// formatDuration formats a duration as HhMMmSSs or MmSSs.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second

	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	}
	return fmt.Sprintf("%dm%02ds", m, s)
}

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	seeds := flag.Int("seeds", 3, "Number of seeds per evaluation")
	maxEvals := flag.Int("max-evals", 0, "Maximum number of evaluations (0 = tune.max_evals)")
	target := flag.Int("target", 0, "Target live count (0 = tune.target_live)")
	outputDir := flag.String("output", "", "Output directory for results")
	flag.Parse()

	if *outputDir == "" {
		log.Fatal("--output is required")
	}
	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		log.Fatalf("failed to create output directory: %v", err)
	}

	// Every evaluation builds games; keep their info logs out of the progress output
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))

	if err := config.Init(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	baseCfg := config.Cfg()
	if len(baseCfg.Emitters) == 0 {
		log.Fatal("config has no emitters to tune")
	}
	if *maxEvals > 0 {
		baseCfg.Tune.MaxEvals = *maxEvals
	}
	if *target > 0 {
		baseCfg.Tune.TargetLive = *target
	}
	evals := baseCfg.Tune.MaxEvals

	params := NewParamVector()
	evalSeeds := make([]int64, *seeds)
	for i := range evalSeeds {
		evalSeeds[i] = int64(i*1000 + 42)
	}
	evaluator := NewFitnessEvaluator(params, evalSeeds, baseCfg)

	logPath := filepath.Join(*outputDir, "tune_log.csv")
	logFile, err := os.Create(logPath)
	if err != nil {
		log.Fatalf("failed to create log file: %v", err)
	}
	defer logFile.Close()

	evalCount := 0
	bestCost := 1e9
	var bestParams []float64
	startTime := time.Now()

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			clamped := params.Clamp(params.Denormalize(x))
			cost := evaluator.Evaluate(clamped)
			evalCount++

			if cost < bestCost {
				bestCost = cost
				bestParams = clamped
			}

			meanLive, dropRate := evaluator.Last()
			rec := []EvalRecord{{
				Eval:          evalCount,
				Cost:          cost,
				IntervalScale: clamped[0],
				CountScale:    clamped[1],
				LifetimeScale: clamped[2],
				MeanLive:      meanLive,
				DropRate:      dropRate,
			}}
			if evalCount == 1 {
				err = gocsv.Marshal(rec, logFile)
			} else {
				err = gocsv.MarshalWithoutHeaders(rec, logFile)
			}
			if err != nil {
				log.Printf("failed to write log row: %v", err)
			}

			elapsed := time.Since(startTime)
			remaining := time.Duration(evals-evalCount) * (elapsed / time.Duration(evalCount))
			fmt.Printf("Eval %d/%d: live=%.0f drop=%.3f cost=%.4f (best=%.4f) | elapsed: %s, ETA: %s\n",
				evalCount, evals, meanLive, dropRate, cost, bestCost,
				formatDuration(elapsed), formatDuration(remaining))
			return cost
		},
	}

	settings := &optimize.Settings{FuncEvaluations: evals}
	method := &optimize.NelderMead{SimplexSize: 0.1}

	fmt.Printf("Starting Nelder-Mead with %d parameters, max_evals=%d, target_live=%d\n",
		params.Dim(), evals, baseCfg.Tune.TargetLive)
	fmt.Printf("Seeds per evaluation: %d, warmup %.1fs, measure %.1fs\n",
		*seeds, baseCfg.Tune.WarmupSec, baseCfg.Tune.MeasureSec)

	initX := params.Normalize(params.DefaultVector())
	if _, err := optimize.Minimize(problem, initX, settings, method); err != nil {
		log.Printf("optimization ended: %v", err)
	}
	if bestParams == nil {
		log.Fatal("no evaluation completed")
	}

	fmt.Printf("\nOptimization complete after %d evaluations in %s\n", evalCount, formatDuration(time.Since(startTime)))
	fmt.Printf("Best cost: %.4f\n", bestCost)
	fmt.Println("\nBest parameters:")
	for i, spec := range params.Specs {
		fmt.Printf("  %s (%s): %.4f\n", spec.Name, spec.Path, bestParams[i])
	}

	bestCfg := params.ApplyToConfig(baseCfg, bestParams)
	configOutPath := filepath.Join(*outputDir, "best_config.yaml")
	if err := bestCfg.WriteYAML(configOutPath); err != nil {
		log.Printf("failed to write best config: %v", err)
	} else {
		fmt.Printf("\nBest config saved to: %s\n", configOutPath)
	}
}
