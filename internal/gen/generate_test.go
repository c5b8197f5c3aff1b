package gen

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	inst, err := Random(rng, 8, 8, 4, 0.2)
	require.NoError(t, err)

	require.NoError(t, inst.Validate())
	assert.Equal(t, 4, inst.NumAgents())
	assert.True(t, allReachable(inst))

	seenStarts := map[[2]int]bool{}
	seenGoals := map[[2]int]bool{}
	for i := range inst.Starts {
		assert.False(t, seenStarts[[2]int{inst.Starts[i].Row, inst.Starts[i].Col}])
		assert.False(t, seenGoals[[2]int{inst.Goals[i].Row, inst.Goals[i].Col}])
		seenStarts[[2]int{inst.Starts[i].Row, inst.Starts[i].Col}] = true
		seenGoals[[2]int{inst.Goals[i].Row, inst.Goals[i].Col}] = true
	}
}

func TestRandomDeterministic(t *testing.T) {
	a, err := Random(rand.New(rand.NewSource(42)), 10, 10, 6, 0.15)
	require.NoError(t, err)
	b, err := Random(rand.New(rand.NewSource(42)), 10, 10, 6, 0.15)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestRandomTooDense(t *testing.T) {
	_, err := Random(rand.New(rand.NewSource(1)), 3, 3, 9, 0.9)
	assert.Error(t, err)
}

func TestBottleneck(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	inst, err := Bottleneck(rng, 6, 9, 4, 2)
	require.NoError(t, err)

	require.NoError(t, inst.Validate())
	assert.Equal(t, 4, inst.NumAgents())
	assert.True(t, allReachable(inst))

	wall := 9 / 2
	open := 0
	for r := 0; r < 6; r++ {
		if !inst.Map[r][wall] {
			open++
		}
	}
	assert.Equal(t, 2, open)

	// Agents alternate crossing direction.
	for i := range inst.Starts {
		if i%2 == 0 {
			assert.Less(t, inst.Starts[i].Col, wall)
			assert.Greater(t, inst.Goals[i].Col, wall)
		} else {
			assert.Greater(t, inst.Starts[i].Col, wall)
			assert.Less(t, inst.Goals[i].Col, wall)
		}
	}
}

func TestBottleneckTooNarrow(t *testing.T) {
	_, err := Bottleneck(rand.New(rand.NewSource(1)), 4, 2, 1, 1)
	assert.Error(t, err)
}
