package main

import (
	"math"
	"testing"

	"github.com/pthm-cable/flare/config"
)

func TestCost(t *testing.T) {
	fe := &FitnessEvaluator{tune: config.TuneConfig{TargetLive: 100, DropPenalty: 4}}
	tests := []struct {
		name string
		r    runResult
		want float64
	}{
		{"on target", runResult{meanLive: 100}, 0},
		{"half", runResult{meanLive: 50}, 0.5},
		{"drops", runResult{meanLive: 100, dropRate: 0.25}, 1},
		{"overflow", runResult{meanLive: 100, overflow: 0.5}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := fe.cost(tt.r); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("cost = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEvaluateIsFinite(t *testing.T) {
	base, err := config.Load("")
	if err != nil {
		t.Fatalf("config.Load: %v", err)
	}
	base.Tune.WarmupSec = 0.2
	base.Tune.MeasureSec = 0.2

	pv := NewParamVector()
	fe := NewFitnessEvaluator(pv, []int64{1, 2}, base)
	cost := fe.Evaluate(pv.DefaultVector())
	if math.IsInf(cost, 0) || math.IsNaN(cost) {
		t.Fatalf("expected finite cost, got %v", cost)
	}
	if live, _ := fe.Last(); live <= 0 {
		t.Errorf("expected particles during measurement, got mean live %v", live)
	}
}
