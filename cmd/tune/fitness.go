package main

import (
	"math"
	"sync"

	"github.com/pthm-cable/flare/config"
	"github.com/pthm-cable/flare/game"
)

// FitnessEvaluator runs headless simulations and scores how close the
// steady-state live count lands to the target.
type FitnessEvaluator struct {
	params *ParamVector
	seeds  []int64
	base   *config.Config
	tune   config.TuneConfig

	mu   sync.Mutex
	last runResult
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, seeds []int64, base *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params: params,
		seeds:  seeds,
		base:   base,
		tune:   base.Tune,
	}
}

// runResult holds the measurements from one run, or the seed average.
type runResult struct {
	meanLive float64
	dropRate float64 // dropped / (emitted + dropped) during measurement
	overflow float64 // peak live count beyond the configured capacity, as a fraction of it
	err      error
}

// Last returns the averaged measurements of the most recent Evaluate call.
func (fe *FitnessEvaluator) Last() (meanLive, dropRate float64) {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.last.meanLive, fe.last.dropRate
}

// Evaluate computes the cost of a raw parameter vector (lower = better).
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	cfg := fe.params.ApplyToConfig(fe.base, x)

	results := make([]runResult, len(fe.seeds))
	var wg sync.WaitGroup
	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			results[idx] = fe.runSimulation(cfg, s)
		}(i, seed)
	}
	wg.Wait()

	var avg runResult
	for _, r := range results {
		if r.err != nil {
			return math.Inf(1)
		}
		avg.meanLive += r.meanLive
		avg.dropRate += r.dropRate
		avg.overflow += r.overflow
	}
	n := float64(len(results))
	avg.meanLive /= n
	avg.dropRate /= n
	avg.overflow /= n

	fe.mu.Lock()
	fe.last = avg
	fe.mu.Unlock()

	return fe.cost(avg)
}

// cost is the relative distance from the target plus the drop penalty, which
// also applies to growth past the configured capacity.
func (fe *FitnessEvaluator) cost(r runResult) float64 {
	target := math.Max(float64(fe.tune.TargetLive), 1)
	return math.Abs(r.meanLive-target)/target + fe.tune.DropPenalty*(r.dropRate+r.overflow)
}

// runSimulation warms the system up, then averages the live count over the
// measurement window.
func (fe *FitnessEvaluator) runSimulation(cfg *config.Config, seed int64) runResult {
	g, err := game.New(cfg, game.Options{Seed: seed})
	if err != nil {
		return runResult{err: err}
	}
	defer g.Unload()

	dt := fe.tune.FrameDT
	if dt <= 0 {
		dt = 1.0 / 60
	}
	warmupFrames := int(fe.tune.WarmupSec / dt)
	measureFrames := max(1, int(fe.tune.MeasureSec/dt))

	for range warmupFrames {
		if err := g.Update(dt); err != nil {
			return runResult{err: err}
		}
	}

	start := g.Stats()
	var liveSum float64
	peak := 0
	for range measureFrames {
		if err := g.Update(dt); err != nil {
			return runResult{err: err}
		}
		live := g.Stats().Live
		liveSum += float64(live)
		peak = max(peak, live)
	}
	end := g.Stats()

	res := runResult{meanLive: liveSum / float64(measureFrames)}
	if capacity := cfg.Simulation.Capacity; capacity > 0 && peak > capacity {
		res.overflow = float64(peak-capacity) / float64(capacity)
	}
	emitted := float64(end.Emitted - start.Emitted)
	dropped := float64(end.Dropped - start.Dropped)
	if total := emitted + dropped; total > 0 {
		res.dropRate = dropped / total
	}
	return res
}
