package algo

import (
	"fmt"

	"github.com/elektrokombinacija/mapf-fair-research/internal/core"
)

// Prioritized plans agents sequentially in id order. Each committed path is
// turned into constraints for all later agents: its cells at their
// timesteps, the reverse of its moves at their arrival times, and a
// goal-holding window once the agent has settled. Fast and incomplete: a
// bad priority order can make a solvable instance fail.
type Prioritized struct{}

// NewPrioritized creates a prioritized planner.
func NewPrioritized() *Prioritized { return &Prioritized{} }

func (p *Prioritized) Name() string { return "Prioritized" }

// Solve plans each agent against the constraints accumulated from all
// higher-priority paths.
func (p *Prioritized) Solve(inst *core.Instance) (*core.Solution, error) {
	heuristics := make([]HeuristicTable, inst.NumAgents())
	for i, goal := range inst.Goals {
		heuristics[i] = ComputeHeuristics(inst.Map, goal)
	}

	// Shared horizon: every agent's search is capped at the same bound the
	// goal-hold constraints run to, so no later path can outlast a hold and
	// slip into a parked agent's cell.
	horizon := inst.Map.Rows() * inst.Map.Cols() * inst.NumAgents()

	var (
		paths       []core.Path
		constraints []core.Constraint
	)
	for i := 0; i < inst.NumAgents(); i++ {
		if _, reachable := heuristics[i][inst.Starts[i]]; !reachable {
			return nil, fmt.Errorf("agent %d: %w", i, ErrNoInitialPath)
		}

		path, ok := SpaceTimeAStar(inst.Map, inst.Starts[i], inst.Goals[i],
			heuristics[i], i, constraints, horizon)
		if !ok {
			return nil, fmt.Errorf("agent %d: %w", i, ErrSearchExhausted)
		}
		paths = append(paths, path)

		// Vertex constraints: later agents may not enter this path's cells
		// at the times it occupies them.
		for t, loc := range path {
			for j := i + 1; j < inst.NumAgents(); j++ {
				constraints = append(constraints, core.VertexConstraint(j, loc, t, false))
			}
		}
		// Edge constraints: forbid the opposite move at its arrival time.
		for t := 0; t < len(path)-1; t++ {
			for j := i + 1; j < inst.NumAgents(); j++ {
				constraints = append(constraints, core.EdgeConstraint(j, path[t+1], path[t], t+1, false))
			}
		}
		// Goal holding: the agent parks at its goal through the horizon.
		goal := path[len(path)-1]
		for t := len(path) - 1; t <= horizon; t++ {
			for j := i + 1; j < inst.NumAgents(); j++ {
				constraints = append(constraints, core.VertexConstraint(j, goal, t, false))
			}
		}
	}

	m := ComputeMetrics(paths, inst.Starts, heuristics)
	return &core.Solution{Paths: paths, Metrics: m}, nil
}
