package algo

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elektrokombinacija/mapf-fair-research/internal/core"
)

func TestComputeMetrics_Basic(t *testing.T) {
	grid := makeGrid(3)
	starts := []core.Location{loc(0, 0), loc(2, 0)}
	goals := []core.Location{loc(0, 2), loc(2, 2)}
	heuristics := []HeuristicTable{
		ComputeHeuristics(grid, goals[0]),
		ComputeHeuristics(grid, goals[1]),
	}
	paths := []core.Path{
		{loc(0, 0), loc(0, 1), loc(0, 2)},            // optimal: stretch 1.0
		{loc(2, 0), loc(2, 0), loc(2, 1), loc(2, 2)}, // one wait: stretch 1.5
	}

	m := ComputeMetrics(paths, starts, heuristics)

	assert.Equal(t, 5, m.SOC)
	assert.Equal(t, 3, m.Makespan)
	assert.InDelta(t, 1.5, m.MaxStretch, 1e-9)
	assert.InDelta(t, 1.25, m.AvgStretch, 1e-9)
}

func TestComputeMetrics_ZeroOptimal(t *testing.T) {
	grid := makeGrid(2)
	starts := []core.Location{loc(0, 0)}
	heuristics := []HeuristicTable{ComputeHeuristics(grid, loc(0, 0))}

	// Start equals goal and the agent stays put: perfectly fair.
	m := ComputeMetrics([]core.Path{{loc(0, 0)}}, starts, heuristics)
	assert.Equal(t, 1.0, m.MaxStretch)

	// Forced off its zero-length optimum: maximally unfair.
	m = ComputeMetrics([]core.Path{{loc(0, 0), loc(0, 1), loc(0, 0)}}, starts, heuristics)
	assert.True(t, math.IsInf(m.MaxStretch, 1))
}

func TestFairCBS_WeightedMatchesCBSOnSwap(t *testing.T) {
	inst := swapInstance()

	sol, err := NewFairCBS(SplittingStandard, 1.0, 0, 0).Solve(inst)
	require.NoError(t, err)
	assert.Equal(t, 4, sol.SOC)
	assert.Empty(t, DetectCollisions(sol.Paths))

	// A heavy stretch weight cannot improve on the swap: every feasible
	// resolution detours one agent, so max stretch stays 3.
	weighted, err := NewFairCBS(SplittingStandard, 1.0, 100.0, 0).Solve(inst)
	require.NoError(t, err)
	assert.Equal(t, 4, weighted.SOC)
	assert.InDelta(t, 3.0, weighted.MaxStretch, 1e-9)
}

func TestFairCBS_BoundInfeasibleBelowOne(t *testing.T) {
	inst := swapInstance()

	// The root holds each agent's independent optimum, so its max stretch
	// is exactly 1.0; only a bound below that can fail at the root.
	_, err := NewFairCBS(SplittingStandard, 1.0, 0, 0.9).Solve(inst)
	assert.True(t, errors.Is(err, ErrBoundInfeasible))
	assert.False(t, errors.Is(err, ErrSearchExhausted),
		"bound infeasibility must be distinct from exhaustion")
}

func TestFairCBS_BoundedSwap(t *testing.T) {
	inst := swapInstance()

	// Any resolution of the swap stretches one agent to 3.0.
	_, err := NewFairCBS(SplittingStandard, 1.0, 0, 2.0).Solve(inst)
	assert.True(t, errors.Is(err, ErrSearchExhausted))

	sol, err := NewFairCBS(SplittingStandard, 1.0, 0, 3.0).Solve(inst)
	require.NoError(t, err)
	assert.LessOrEqual(t, sol.MaxStretch, 3.0)
	assert.Empty(t, DetectCollisions(sol.Paths))
}

func TestFairCBS_BoundMonotonicity(t *testing.T) {
	inst := swapInstance()

	// Failing for K2 implies failing for any tighter K1 < K2.
	_, err2 := NewFairCBS(SplittingStandard, 1.0, 0, 2.0).Solve(inst)
	require.Error(t, err2)
	_, err1 := NewFairCBS(SplittingStandard, 1.0, 0, 1.5).Solve(inst)
	assert.Error(t, err1, "a tighter bound is never easier")

	// Succeeding for K1 implies the achieved stretch also satisfies any
	// looser K2 > K1.
	sol, err := NewFairCBS(SplittingStandard, 1.0, 0, 3.0).Solve(inst)
	require.NoError(t, err)
	assert.LessOrEqual(t, sol.MaxStretch, 3.0)
	looser, err := NewFairCBS(SplittingStandard, 1.0, 0, 4.0).Solve(inst)
	require.NoError(t, err)
	assert.LessOrEqual(t, looser.MaxStretch, 3.0)
}

func TestFairCBS_BottleneckBounded(t *testing.T) {
	// Four agents crossing a single-cell gap in both directions. Bounded
	// mode must either return a bound-satisfying solution or report a
	// distinct failure, never a silently-violating plan.
	inst := &core.Instance{
		Map: makeBottleneck(5, 5, 2),
		Starts: []core.Location{
			loc(0, 0), loc(4, 0), loc(0, 4), loc(4, 4),
		},
		Goals: []core.Location{
			loc(0, 4), loc(4, 4), loc(0, 0), loc(4, 0),
		},
	}

	solver := NewFairCBS(SplittingStandard, 1.0, 0, 1.2)
	sol, err := solver.Solve(inst)
	if err != nil {
		assert.True(t, errors.Is(err, ErrSearchExhausted) || errors.Is(err, ErrBoundInfeasible),
			"unexpected failure kind: %v", err)
		return
	}
	assert.LessOrEqual(t, sol.MaxStretch, 1.2)
	assert.Empty(t, DetectCollisions(sol.Paths))
}

func TestFairCBS_DisjointBounded(t *testing.T) {
	inst := swapInstance()
	solver := NewFairCBS(SplittingDisjoint, 1.0, 0, 3.0)

	sol, err := solver.Solve(inst)
	require.NoError(t, err)
	assert.LessOrEqual(t, sol.MaxStretch, 3.0)
	assert.Empty(t, DetectCollisions(sol.Paths))
}
