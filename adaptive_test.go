// ABOUTME: Tests for the adaptive parameter controller
// ABOUTME: Covers the linear schedules, diversity reactions and the G=1 clamp

package main

import (
	"math"
	"testing"

	"course-scheduler/config"
)

func testController(mutate func(*config.Config)) controller {
	cfg := config.DefaultConfig()
	cfg.Generations = 100
	mutate(&cfg)

	return controller{cfg: cfg}
}

func TestMutationRateDecay(t *testing.T) {
	c := testController(func(cfg *config.Config) { cfg.MutationRate = 0.3 })

	// Healthy diversity: plain linear decay from 0.3 toward the 0.1 floor
	if got := c.mutationRate(0, 1); got != 0.3 {
		t.Errorf("rate at g=0 = %v, want 0.3", got)
	}

	mid := c.mutationRate(50, 1)
	if math.Abs(mid-0.2) > 1e-9 {
		t.Errorf("rate at g=G/2 = %v, want 0.2", mid)
	}

	for g := 1; g < 100; g++ {
		if c.mutationRate(g, 1) > c.mutationRate(g-1, 1) {
			t.Fatalf("rate increased at g=%d despite healthy diversity", g)
		}
	}
}

func TestMutationRateDiversityBoost(t *testing.T) {
	c := testController(func(cfg *config.Config) { cfg.MutationRate = 0.3 })

	// At g=0 the boost factor is 1: collapsed diversity changes nothing yet
	if got := c.mutationRate(0, 0); got != 0.3 {
		t.Errorf("boosted rate at g=0 = %v, want 0.3", got)
	}

	// At the last generation the factor reaches 8, clamped into [0,1]
	unboosted := c.mutationRate(99, 1)
	boosted := c.mutationRate(99, 0)

	if math.Abs(unboosted-0.102) > 1e-9 {
		t.Errorf("unboosted final rate = %v, want 0.102", unboosted)
	}

	if math.Abs(boosted-0.816) > 1e-9 {
		t.Errorf("boosted final rate = %v, want 0.816 (8x)", boosted)
	}

	// Diversity at the threshold does not boost
	at := c.mutationRate(99, c.cfg.DiversityThreshold)
	if at != unboosted {
		t.Errorf("rate at exact threshold = %v, want %v", at, unboosted)
	}
}

func TestMutationRateClamped(t *testing.T) {
	c := testController(func(cfg *config.Config) { cfg.MutationRate = 1.0 })

	for g := range 100 {
		rate := c.mutationRate(g, 0)
		if rate < 0 || rate > 1 {
			t.Fatalf("rate %v out of [0,1] at g=%d", rate, g)
		}
	}
}

func TestContinuityWeightRamp(t *testing.T) {
	c := testController(func(cfg *config.Config) { cfg.ContinuityPenalty = 10 })

	if got := c.continuityWeight(0); got != 10 {
		t.Errorf("weight at g=0 = %v, want 10", got)
	}

	if got := c.continuityWeight(99); got != 50 {
		t.Errorf("weight at g=G-1 = %v, want 50", got)
	}

	// An initial weight above the final one is allowed: the ramp descends
	c = testController(func(cfg *config.Config) { cfg.ContinuityPenalty = 80 })

	if got := c.continuityWeight(0); got != 80 {
		t.Errorf("descending weight at g=0 = %v, want 80", got)
	}

	if got := c.continuityWeight(99); got != 50 {
		t.Errorf("descending weight at g=G-1 = %v, want 50", got)
	}
}

func TestEliteCount(t *testing.T) {
	c := testController(func(cfg *config.Config) {
		cfg.EliteFractionMin = 0.02
		cfg.EliteFractionMax = 0.10
	})

	if got := c.eliteCount(0, 1, 100); got != 2 {
		t.Errorf("elites at g=0 = %d, want 2", got)
	}

	if got := c.eliteCount(99, 1, 100); got < 2 || got > 10 {
		t.Errorf("elites at g=G-1 = %d, want within [2,10]", got)
	}

	// Collapsed diversity contracts all the way back to the minimum
	if got := c.eliteCount(99, 0, 100); got != 2 {
		t.Errorf("elites with zero diversity = %d, want 2", got)
	}

	// At least one elite survives even with tiny populations and fractions
	if got := c.eliteCount(0, 1, 3); got != 1 {
		t.Errorf("elites with population 3 = %d, want 1", got)
	}
}

func TestSingleGenerationClamp(t *testing.T) {
	c := testController(func(cfg *config.Config) {
		cfg.Generations = 1
		cfg.MutationRate = 0.3
		cfg.ContinuityPenalty = 10
	})

	// g/G is defined as 1 when G=1: everything sits at its end value and no
	// division by zero can occur.
	if got := c.ratio(0); got != 1 {
		t.Errorf("ratio with G=1 = %v, want 1", got)
	}

	if got := c.anchor(0); got != 1 {
		t.Errorf("anchor with G=1 = %v, want 1", got)
	}

	if got := c.mutationRate(0, 1); math.Abs(got-0.1) > 1e-9 {
		t.Errorf("rate with G=1 = %v, want 0.1", got)
	}

	if got := c.continuityWeight(0); got != 50 {
		t.Errorf("weight with G=1 = %v, want 50", got)
	}
}
