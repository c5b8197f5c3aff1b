package algo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elektrokombinacija/mapf-fair-research/internal/core"
)

func TestDetectCollision_None(t *testing.T) {
	p1 := core.Path{loc(0, 0), loc(0, 1), loc(0, 2)}
	p2 := core.Path{loc(2, 0), loc(2, 1), loc(2, 2)}

	assert.Nil(t, DetectCollision(p1, p2))
}

func TestDetectCollision_Vertex(t *testing.T) {
	p1 := core.Path{loc(0, 0), loc(0, 1), loc(0, 2)}
	p2 := core.Path{loc(1, 1), loc(0, 1), loc(1, 1)}

	c := DetectCollision(p1, p2)
	require.NotNil(t, c)
	assert.False(t, c.IsEdge)
	assert.Equal(t, loc(0, 1), c.Vertex)
	assert.Equal(t, 1, c.Timestep)
}

func TestDetectCollision_Edge(t *testing.T) {
	p1 := core.Path{loc(0, 0), loc(0, 1)}
	p2 := core.Path{loc(0, 1), loc(0, 0)}

	c := DetectCollision(p1, p2)
	require.NotNil(t, c)
	assert.True(t, c.IsEdge)
	assert.Equal(t, loc(0, 0), c.From)
	assert.Equal(t, loc(0, 1), c.To)
	assert.Equal(t, 1, c.Timestep, "edge collisions are stamped with the arrival time")
}

func TestDetectCollision_Symmetry(t *testing.T) {
	p1 := core.Path{loc(0, 0), loc(0, 1), loc(0, 2)}
	p2 := core.Path{loc(0, 2), loc(0, 1), loc(0, 0)}

	c12 := DetectCollision(p1, p2)
	c21 := DetectCollision(p2, p1)
	require.NotNil(t, c12)
	require.NotNil(t, c21)

	assert.Equal(t, c12.Timestep, c21.Timestep)
	assert.Equal(t, c12.IsEdge, c21.IsEdge)
	if c12.IsEdge {
		// Swapping the argument order reverses the reported direction.
		assert.Equal(t, c12.From, c21.To)
		assert.Equal(t, c12.To, c21.From)
	} else {
		assert.Equal(t, c12.Vertex, c21.Vertex)
	}
}

func TestDetectCollision_SharedStart(t *testing.T) {
	// Two agents with an identical start: immediate vertex collision.
	p1 := core.Path{loc(0, 0), loc(0, 1)}
	p2 := core.Path{loc(0, 0), loc(1, 0)}

	c := DetectCollision(p1, p2)
	require.NotNil(t, c)
	assert.False(t, c.IsEdge)
	assert.Equal(t, loc(0, 0), c.Vertex)
	assert.Equal(t, 0, c.Timestep)
}

func TestDetectCollision_WaitingAtGoal(t *testing.T) {
	// The shorter path waits at its goal; a later arrival there still
	// collides.
	p1 := core.Path{loc(0, 0), loc(0, 1)}
	p2 := core.Path{loc(2, 1), loc(1, 1), loc(0, 1)}

	c := DetectCollision(p1, p2)
	require.NotNil(t, c)
	assert.Equal(t, loc(0, 1), c.Vertex)
	assert.Equal(t, 2, c.Timestep)
}

func TestDetectCollisions_PairsAndIDs(t *testing.T) {
	paths := []core.Path{
		{loc(0, 0), loc(0, 1)},
		{loc(0, 1), loc(0, 0)}, // swaps with agent 0
		{loc(2, 2), loc(2, 2)}, // clear of both
	}

	collisions := DetectCollisions(paths)
	require.Len(t, collisions, 1)
	assert.Equal(t, 0, collisions[0].A1)
	assert.Equal(t, 1, collisions[0].A2)
}

func TestDetectCollisions_FirstPerPairOnly(t *testing.T) {
	// The pair collides twice; only the earliest is reported until a
	// branch resolves it.
	paths := []core.Path{
		{loc(0, 0), loc(0, 1), loc(0, 2), loc(1, 2)},
		{loc(1, 1), loc(0, 1), loc(0, 2), loc(0, 1)},
	}

	collisions := DetectCollisions(paths)
	require.Len(t, collisions, 1)
	assert.Equal(t, 1, collisions[0].Timestep)
}
