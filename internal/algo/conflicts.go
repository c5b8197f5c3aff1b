package algo

import (
	"github.com/elektrokombinacija/mapf-fair-research/internal/core"
)

// DetectCollision scans a pair of paths and returns the first vertex or
// edge collision in time, or nil. Agents are assumed to wait at their goal
// beyond the end of their own path, so both paths can always be indexed up
// to the longer horizon. A1/A2 are left zero; DetectCollisions fills them.
func DetectCollision(p1, p2 core.Path) *core.Collision {
	horizon := len(p1)
	if len(p2) > horizon {
		horizon = len(p2)
	}
	for t := 0; t < horizon; t++ {
		l1, l2 := p1.At(t), p2.At(t)
		if l1 == l2 {
			return &core.Collision{Vertex: l1, Timestep: t}
		}
		if t > 0 {
			prev1, prev2 := p1.At(t-1), p2.At(t-1)
			if prev1 == l2 && prev2 == l1 {
				// Swap: report at arrival time with A1's direction.
				return &core.Collision{IsEdge: true, From: prev1, To: l1, Timestep: t}
			}
		}
	}
	return nil
}

// DetectCollisions runs pairwise detection over every unordered agent pair
// and returns the first collision per colliding pair. The high-level search
// always resolves the first entry; later collisions on a pair surface again
// once the first is resolved by a branch.
func DetectCollisions(paths []core.Path) []core.Collision {
	var collisions []core.Collision
	for i := 0; i < len(paths); i++ {
		for j := i + 1; j < len(paths); j++ {
			if c := DetectCollision(paths[i], paths[j]); c != nil {
				c.A1, c.A2 = i, j
				collisions = append(collisions, *c)
			}
		}
	}
	return collisions
}
