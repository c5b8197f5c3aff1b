// Package algo implements fair multi-agent path finding solvers: space-time
// A* for single agents, conflict detection, constraint splitting, and the
// high-level Conflict-Based Search with an optional fairness extension.
package algo

import (
	"errors"
	"math"

	"github.com/elektrokombinacija/mapf-fair-research/internal/core"
)

// Solver is the interface for multi-agent planners.
type Solver interface {
	// Solve attempts to find a collision-free solution for the instance.
	Solve(inst *core.Instance) (*core.Solution, error)

	// Name returns the algorithm name.
	Name() string
}

// Terminal solve outcomes. All four are distinct and inspectable with
// errors.Is; none is retried.
var (
	// ErrNoInitialPath reports an agent with no path to its goal even under
	// zero constraints (disconnected map or unreachable goal).
	ErrNoInitialPath = errors.New("algo: no path to goal with empty constraints")

	// ErrBoundInfeasible reports that the unconstrained optimum already
	// violates the configured stretch bound, so no solution can be fair
	// enough regardless of search effort.
	ErrBoundInfeasible = errors.New("algo: stretch bound violated by unconstrained optimum")

	// ErrSearchExhausted reports that the open list emptied without a
	// collision-free (and, under a bound, fair-enough) node: the instance
	// has no feasible solution under the chosen splitting strategy.
	ErrSearchExhausted = errors.New("algo: search exhausted without a solution")

	// ErrExpansionLimit reports that the caller-imposed node expansion
	// budget ran out before the search reached a terminal outcome.
	ErrExpansionLimit = errors.New("algo: node expansion limit reached")
)

// SplittingMode selects how a collision is converted into branching
// constraints.
type SplittingMode int

const (
	// SplittingStandard emits one negative constraint per involved agent.
	SplittingStandard SplittingMode = iota
	// SplittingDisjoint emits a positive and a negative constraint on a
	// single randomly chosen agent.
	SplittingDisjoint
)

func (m SplittingMode) String() string {
	if m == SplittingDisjoint {
		return "disjoint"
	}
	return "standard"
}

// Stats counts high-level search effort.
type Stats struct {
	Generated int // nodes pushed to the open list
	Expanded  int // nodes popped for expansion
}

// ComputeMetrics derives the summary metrics for a set of paths. The
// optimal cost of an agent is its heuristic value at its own start (its
// unconstrained shortest-path length). A zero-length optimum yields stretch
// 1.0 when the actual cost is also zero and +Inf otherwise: an agent whose
// start equals its goal but is forced onto a detour is maximally unfair.
func ComputeMetrics(paths []core.Path, starts []core.Location, heuristics []HeuristicTable) core.Metrics {
	m := core.Metrics{
		SOC:       core.SumOfCosts(paths),
		Makespan:  core.MakespanOf(paths),
		Stretches: make([]float64, len(paths)),
	}
	sum := 0.0
	for i, p := range paths {
		actual := float64(p.Cost())
		optimal := math.Inf(1)
		if h, ok := heuristics[i][starts[i]]; ok {
			optimal = float64(h)
		}
		var stretch float64
		switch {
		case optimal == 0 && actual == 0:
			stretch = 1.0
		case optimal == 0:
			stretch = math.Inf(1)
		default:
			stretch = actual / optimal
		}
		m.Stretches[i] = stretch
		sum += stretch
		if stretch > m.MaxStretch {
			m.MaxStretch = stretch
		}
	}
	if len(paths) > 0 {
		m.AvgStretch = sum / float64(len(paths))
	}
	return m
}
