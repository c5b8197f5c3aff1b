package algo

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elektrokombinacija/mapf-fair-research/internal/core"
)

func TestStandardSplit_Vertex(t *testing.T) {
	c := core.Collision{A1: 2, A2: 5, Vertex: loc(1, 1), Timestep: 3}

	constraints := StandardSplit(c)
	require.Len(t, constraints, 2)

	for i, agent := range []int{2, 5} {
		assert.Equal(t, agent, constraints[i].Agent)
		assert.False(t, constraints[i].Positive)
		assert.False(t, constraints[i].IsEdge)
		assert.Equal(t, loc(1, 1), constraints[i].Vertex)
		assert.Equal(t, 3, constraints[i].Timestep)
	}
}

func TestStandardSplit_EdgeDirections(t *testing.T) {
	c := core.Collision{A1: 0, A2: 1, IsEdge: true, From: loc(0, 0), To: loc(0, 1), Timestep: 1}

	constraints := StandardSplit(c)
	require.Len(t, constraints, 2)

	// A1 is forbidden its own direction, A2 the reverse.
	assert.Equal(t, loc(0, 0), constraints[0].From)
	assert.Equal(t, loc(0, 1), constraints[0].To)
	assert.Equal(t, loc(0, 1), constraints[1].From)
	assert.Equal(t, loc(0, 0), constraints[1].To)
}

func TestDisjointSplit_PartitionsOneAgent(t *testing.T) {
	c := core.Collision{A1: 0, A2: 1, Vertex: loc(1, 1), Timestep: 2}
	rng := rand.New(rand.NewSource(7))

	chosen := map[int]bool{}
	for i := 0; i < 32; i++ {
		constraints := DisjointSplit(c, rng)
		require.Len(t, constraints, 2)

		// Both constraints target the same agent, one positive one negative.
		assert.Equal(t, constraints[0].Agent, constraints[1].Agent)
		assert.True(t, constraints[0].Positive)
		assert.False(t, constraints[1].Positive)
		assert.Equal(t, loc(1, 1), constraints[0].Vertex)
		assert.Equal(t, 2, constraints[0].Timestep)

		chosen[constraints[0].Agent] = true
	}
	assert.True(t, chosen[0] && chosen[1], "both agents should be chosen across draws")
}

func TestDisjointSplit_EdgeKeepsCollisionDirection(t *testing.T) {
	c := core.Collision{A1: 0, A2: 1, IsEdge: true, From: loc(0, 0), To: loc(0, 1), Timestep: 1}
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < 8; i++ {
		constraints := DisjointSplit(c, rng)
		for _, con := range constraints {
			assert.Equal(t, loc(0, 0), con.From)
			assert.Equal(t, loc(0, 1), con.To)
		}
	}
}

func TestViolatingAgents_Vertex(t *testing.T) {
	paths := []core.Path{
		{loc(0, 0), loc(0, 1)},
		{loc(1, 1), loc(0, 1)}, // occupies (0,1) at t=1
		{loc(2, 2), loc(2, 1)},
	}
	c := core.VertexConstraint(0, loc(0, 1), 1, true)

	violators := ViolatingAgents(paths, c)
	assert.Equal(t, []int{1}, violators, "the constrained agent itself is skipped")
}

func TestViolatingAgents_Edge(t *testing.T) {
	paths := []core.Path{
		{loc(0, 0), loc(0, 1)},
		{loc(0, 0), loc(0, 1)}, // same traversal as the constraint
		{loc(0, 1), loc(0, 0)}, // reverse traversal, the swap itself
		{loc(1, 0), loc(1, 1)}, // touches neither endpoint at the relevant steps
		{loc(1, 1), loc(0, 1)}, // arrives at To at the arrival step
	}
	c := core.EdgeConstraint(0, loc(0, 0), loc(0, 1), 1, true)

	violators := ViolatingAgents(paths, c)
	assert.Equal(t, []int{1, 2, 4}, violators)
}

// TestSplitSoundness checks that for either splitter, replanning the
// affected agents under each branch's constraint removes the original
// collision between the pair.
func TestSplitSoundness(t *testing.T) {
	// Two agents crossing the center of an open 3x3 grid.
	grid := makeGrid(3)
	starts := []core.Location{loc(1, 0), loc(0, 1)}
	goals := []core.Location{loc(1, 2), loc(2, 1)}

	heuristics := []HeuristicTable{
		ComputeHeuristics(grid, goals[0]),
		ComputeHeuristics(grid, goals[1]),
	}
	var paths []core.Path
	for i := range starts {
		p, ok := SpaceTimeAStar(grid, starts[i], goals[i], heuristics[i], i, nil, 0)
		require.True(t, ok)
		paths = append(paths, p)
	}

	collision := DetectCollision(paths[0], paths[1])
	require.NotNil(t, collision)
	collision.A1, collision.A2 = 0, 1

	splits := [][]core.Constraint{
		StandardSplit(*collision),
		DisjointSplit(*collision, rand.New(rand.NewSource(3))),
	}
	for _, pair := range splits {
		for _, constraint := range pair {
			replanned := core.CopyPaths(paths)
			affected := []int{constraint.Agent}
			if constraint.Positive {
				affected = append(affected, ViolatingAgents(paths, constraint)...)
			}
			feasible := true
			for _, agent := range affected {
				p, ok := SpaceTimeAStar(grid, starts[agent], goals[agent],
					heuristics[agent], agent, []core.Constraint{constraint}, 0)
				if !ok {
					feasible = false
					break
				}
				replanned[agent] = p
			}
			if !feasible {
				continue // a pruned branch is an acceptable outcome
			}

			again := DetectCollision(replanned[0], replanned[1])
			if again != nil {
				same := again.Timestep == collision.Timestep &&
					again.IsEdge == collision.IsEdge &&
					again.Vertex == collision.Vertex &&
					again.From == collision.From && again.To == collision.To
				assert.False(t, same, "the split must resolve the specific collision")
			}
		}
	}
}
