// Package gen produces random benchmark instances. All generation is
// driven by an explicit rand source so the same seed reproduces the same
// instance.
package gen

import (
	"fmt"
	"math/rand"

	"github.com/elektrokombinacija/mapf-fair-research/internal/algo"
	"github.com/elektrokombinacija/mapf-fair-research/internal/core"
)

const maxAttempts = 100

// Random generates an instance with uniformly scattered obstacles.
// Density is the fraction of cells blocked. Starts are pairwise distinct,
// goals are pairwise distinct, and every agent's goal is reachable from
// its start; obstacle layouts that cannot host the agents are redrawn.
func Random(rng *rand.Rand, rows, cols, agents int, density float64) (*core.Instance, error) {
	for attempt := 0; attempt < maxAttempts; attempt++ {
		grid := core.NewGrid(rows, cols)
		for r := range grid {
			for c := range grid[r] {
				if rng.Float64() < density {
					grid[r][c] = true
				}
			}
		}

		inst, ok := placeAgents(rng, grid, agents)
		if ok {
			return inst, nil
		}
	}
	return nil, fmt.Errorf("gen: no solvable %dx%d layout with %d agents at density %.2f after %d attempts",
		rows, cols, agents, density, maxAttempts)
}

// Bottleneck generates an instance split by a vertical wall with the
// given number of open gap cells. Even-numbered agents cross left to
// right, odd-numbered agents right to left, forcing contention at the
// gaps.
func Bottleneck(rng *rand.Rand, rows, cols, agents, gaps int) (*core.Instance, error) {
	if cols < 3 {
		return nil, fmt.Errorf("gen: bottleneck needs at least 3 columns, got %d", cols)
	}
	if gaps < 1 {
		gaps = 1
	}
	if gaps > rows {
		gaps = rows
	}

	wall := cols / 2
	for attempt := 0; attempt < maxAttempts; attempt++ {
		grid := core.NewGrid(rows, cols)
		for r := 0; r < rows; r++ {
			grid[r][wall] = true
		}
		for _, r := range rng.Perm(rows)[:gaps] {
			grid[r][wall] = false
		}

		var left, right []core.Location
		for _, loc := range grid.FreeCells() {
			switch {
			case loc.Col < wall:
				left = append(left, loc)
			case loc.Col > wall:
				right = append(right, loc)
			}
		}
		if len(left) < agents || len(right) < agents {
			continue
		}

		leftPick := sample(rng, left, agents)
		rightPick := sample(rng, right, agents)

		inst := &core.Instance{Map: grid}
		for i := 0; i < agents; i++ {
			if i%2 == 0 {
				inst.Starts = append(inst.Starts, leftPick[i])
				inst.Goals = append(inst.Goals, rightPick[i])
			} else {
				inst.Starts = append(inst.Starts, rightPick[i])
				inst.Goals = append(inst.Goals, leftPick[i])
			}
		}
		if allReachable(inst) {
			return inst, nil
		}
	}
	return nil, fmt.Errorf("gen: no solvable %dx%d bottleneck layout with %d agents after %d attempts",
		rows, cols, agents, maxAttempts)
}

// placeAgents draws distinct starts and distinct goals from the free
// cells and checks reachability.
func placeAgents(rng *rand.Rand, grid core.Grid, agents int) (*core.Instance, bool) {
	free := grid.FreeCells()
	if len(free) < agents {
		return nil, false
	}

	inst := &core.Instance{
		Map:    grid,
		Starts: sample(rng, free, agents),
		Goals:  sample(rng, free, agents),
	}
	if !allReachable(inst) {
		return nil, false
	}
	return inst, true
}

func allReachable(inst *core.Instance) bool {
	for i, goal := range inst.Goals {
		h := algo.ComputeHeuristics(inst.Map, goal)
		if _, ok := h[inst.Starts[i]]; !ok {
			return false
		}
	}
	return true
}

// sample returns n locations drawn without replacement.
func sample(rng *rand.Rand, cells []core.Location, n int) []core.Location {
	picked := make([]core.Location, len(cells))
	copy(picked, cells)
	rng.Shuffle(len(picked), func(i, j int) {
		picked[i], picked[j] = picked[j], picked[i]
	})
	return picked[:n]
}
