package algo

import (
	"math/rand"

	"github.com/elektrokombinacija/mapf-fair-research/internal/core"
)

// StandardSplit converts a collision into two negative constraints, one per
// involved agent. A vertex collision forbids each agent the cell at that
// timestep. An edge collision is direction-sensitive: A1 is forbidden the
// move From->To and A2 the reverse move To->From, which breaks the swap
// without forbidding a legitimate non-swapping crossing.
func StandardSplit(c core.Collision) []core.Constraint {
	if c.IsEdge {
		return []core.Constraint{
			core.EdgeConstraint(c.A1, c.From, c.To, c.Timestep, false),
			core.EdgeConstraint(c.A2, c.To, c.From, c.Timestep, false),
		}
	}
	return []core.Constraint{
		core.VertexConstraint(c.A1, c.Vertex, c.Timestep, false),
		core.VertexConstraint(c.A2, c.Vertex, c.Timestep, false),
	}
}

// DisjointSplit converts a collision into a positive and a negative
// constraint on a single agent, chosen uniformly from the colliding pair.
// The two constraints exhaustively partition the chosen agent's behavior at
// that timestep, so the children's path spaces are disjoint. The agent
// choice is the one sanctioned source of non-determinism in the search; it
// draws from the supplied source so tests can fix the seed.
func DisjointSplit(c core.Collision, rng *rand.Rand) []core.Constraint {
	agent := c.A1
	if rng.Intn(2) == 1 {
		agent = c.A2
	}
	// The collision's own location is kept verbatim for either choice; for
	// an edge that is A1's direction. Combined with the implicit-negative
	// rule and ViolatingAgents this is what resolves the collision in the
	// positive child.
	if c.IsEdge {
		return []core.Constraint{
			core.EdgeConstraint(agent, c.From, c.To, c.Timestep, true),
			core.EdgeConstraint(agent, c.From, c.To, c.Timestep, false),
		}
	}
	return []core.Constraint{
		core.VertexConstraint(agent, c.Vertex, c.Timestep, true),
		core.VertexConstraint(agent, c.Vertex, c.Timestep, false),
	}
}

// ViolatingAgents returns the ids of every other agent whose current path
// conflicts with a positive constraint: occupying its cell at its
// timestep, or for an edge, sitting at From at the departure step, at To
// at the arrival step, or traversing the reverse edge. Those agents must
// be replanned together with the constrained one, because the positive
// constraint implicitly forbids them those states.
func ViolatingAgents(paths []core.Path, c core.Constraint) []int {
	var violators []int
	for i, p := range paths {
		if i == c.Agent {
			continue
		}
		if c.IsEdge {
			prev, curr := p.At(c.Timestep-1), p.At(c.Timestep)
			if prev == c.From || curr == c.To || (prev == c.To && curr == c.From) {
				violators = append(violators, i)
			}
		} else if p.At(c.Timestep) == c.Vertex {
			violators = append(violators, i)
		}
	}
	return violators
}
