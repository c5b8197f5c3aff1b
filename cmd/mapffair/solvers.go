package main

import (
	"fmt"
	"math/rand"

	"github.com/elektrokombinacija/mapf-fair-research/internal/algo"
)

// solverSpec describes one solver configuration, from flags or a
// benchmark config file.
type solverSpec struct {
	Name          string  `yaml:"name"`
	Solver        string  `yaml:"solver"`
	Disjoint      bool    `yaml:"disjoint"`
	Alpha         float64 `yaml:"alpha"`
	Beta          float64 `yaml:"beta"`
	Bound         float64 `yaml:"bound"`
	Seed          int64   `yaml:"seed"`
	MaxExpansions int     `yaml:"max_expansions"`
}

// buildSolver instantiates the configured solver. Solver is one of
// "cbs", "fair" or "prioritized".
func buildSolver(spec solverSpec) (algo.Solver, error) {
	mode := algo.SplittingStandard
	if spec.Disjoint {
		mode = algo.SplittingDisjoint
	}
	seed := spec.Seed
	if seed == 0 {
		seed = 1
	}

	switch spec.Solver {
	case "cbs":
		s := algo.NewCBS(mode)
		s.MaxExpansions = spec.MaxExpansions
		s.RNG = rand.New(rand.NewSource(seed))
		return s, nil
	case "fair":
		s := algo.NewFairCBS(mode, spec.Alpha, spec.Beta, spec.Bound)
		s.MaxExpansions = spec.MaxExpansions
		s.RNG = rand.New(rand.NewSource(seed))
		return s, nil
	case "prioritized":
		return algo.NewPrioritized(), nil
	default:
		return nil, fmt.Errorf("unknown solver %q (want cbs, fair or prioritized)", spec.Solver)
	}
}
