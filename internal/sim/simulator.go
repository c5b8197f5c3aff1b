// Package sim steps a solved instance through discrete timesteps, for
// solution validation and for playback in the visualizer.
package sim

import (
	"fmt"

	"github.com/elektrokombinacija/mapf-fair-research/internal/algo"
	"github.com/elektrokombinacija/mapf-fair-research/internal/core"
)

// Simulator replays a set of per-agent paths over the planning horizon.
// Agents that finish early wait at their goals, matching the collision
// model of the planner.
type Simulator struct {
	inst  *core.Instance
	paths []core.Path
}

// New creates a simulator over the instance and its solved paths.
func New(inst *core.Instance, paths []core.Path) *Simulator {
	return &Simulator{inst: inst, paths: paths}
}

// Makespan is the last timestep at which any agent still moves.
func (s *Simulator) Makespan() int {
	return core.MakespanOf(s.paths)
}

// PositionsAt returns every agent's location at timestep t.
func (s *Simulator) PositionsAt(t int) []core.Location {
	locs := make([]core.Location, len(s.paths))
	for i, p := range s.paths {
		locs[i] = p.At(t)
	}
	return locs
}

// Violations re-runs pairwise collision detection over the paths. A valid
// solution returns an empty list.
func (s *Simulator) Violations() []core.Collision {
	return algo.DetectCollisions(s.paths)
}

// Verify checks that the paths realize the instance: correct count, each
// path starts at its agent's start and ends at its goal, every step is a
// legal unit move over free cells, and no pair of agents ever collides.
func (s *Simulator) Verify() error {
	if len(s.paths) != s.inst.NumAgents() {
		return fmt.Errorf("sim: %d paths for %d agents", len(s.paths), s.inst.NumAgents())
	}
	for i, p := range s.paths {
		if len(p) == 0 {
			return fmt.Errorf("sim: agent %d has an empty path", i)
		}
		if p[0] != s.inst.Starts[i] {
			return fmt.Errorf("sim: agent %d starts at %v, want %v", i, p[0], s.inst.Starts[i])
		}
		if p[len(p)-1] != s.inst.Goals[i] {
			return fmt.Errorf("sim: agent %d ends at %v, want %v", i, p[len(p)-1], s.inst.Goals[i])
		}
		for t, loc := range p {
			if s.inst.Map.Blocked(loc) {
				return fmt.Errorf("sim: agent %d occupies blocked cell %v at t=%d", i, loc, t)
			}
			if t > 0 && !unitMove(p[t-1], loc) {
				return fmt.Errorf("sim: agent %d makes illegal move %v -> %v at t=%d", i, p[t-1], loc, t)
			}
		}
	}
	if c := s.Violations(); len(c) > 0 {
		first := c[0]
		return fmt.Errorf("sim: agents %d and %d collide at t=%d", first.A1, first.A2, first.Timestep)
	}
	return nil
}

// unitMove reports whether from->to is a wait or a single cardinal step.
func unitMove(from, to core.Location) bool {
	for _, d := range core.MoveDeltas {
		if from.Add(d) == to {
			return true
		}
	}
	return false
}
