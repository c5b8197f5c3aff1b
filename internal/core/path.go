package core

// Path is a sequence of locations indexed by timestep: path[0] is the
// start, path[len-1] the goal.
type Path []Location

// At returns the location occupied at timestep t. Timesteps beyond the
// final index yield the last location: the agent waits at its goal
// indefinitely, which keeps collision checking symmetric across paths of
// different lengths.
func (p Path) At(t int) Location {
	if t < 0 {
		return p[0]
	}
	if t >= len(p) {
		return p[len(p)-1]
	}
	return p[t]
}

// Cost is the number of moves, len(path)-1.
func (p Path) Cost() int {
	if len(p) == 0 {
		return 0
	}
	return len(p) - 1
}

// SumOfCosts totals the per-agent path costs.
func SumOfCosts(paths []Path) int {
	sum := 0
	for _, p := range paths {
		sum += p.Cost()
	}
	return sum
}

// MakespanOf returns the longest individual path cost.
func MakespanOf(paths []Path) int {
	max := 0
	for _, p := range paths {
		if c := p.Cost(); c > max {
			max = c
		}
	}
	return max
}

// CopyPaths returns a shallow copy of the path vector. Child search nodes
// take their own copy so siblings never share mutable state.
func CopyPaths(paths []Path) []Path {
	out := make([]Path, len(paths))
	copy(out, paths)
	return out
}
