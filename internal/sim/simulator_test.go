package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elektrokombinacija/mapf-fair-research/internal/core"
)

func openInstance(agents int) *core.Instance {
	inst := &core.Instance{Map: core.NewGrid(3, 3)}
	switch agents {
	case 1:
		inst.Starts = []core.Location{{Row: 0, Col: 0}}
		inst.Goals = []core.Location{{Row: 2, Col: 2}}
	case 2:
		inst.Starts = []core.Location{{Row: 0, Col: 0}, {Row: 2, Col: 0}}
		inst.Goals = []core.Location{{Row: 0, Col: 2}, {Row: 2, Col: 2}}
	}
	return inst
}

func TestPositionsAt(t *testing.T) {
	inst := openInstance(2)
	paths := []core.Path{
		{{Row: 0, Col: 0}, {Row: 0, Col: 1}, {Row: 0, Col: 2}},
		{{Row: 2, Col: 0}, {Row: 2, Col: 1}, {Row: 2, Col: 1}, {Row: 2, Col: 2}},
	}
	s := New(inst, paths)

	assert.Equal(t, 3, s.Makespan())
	assert.Equal(t, []core.Location{{Row: 0, Col: 0}, {Row: 2, Col: 0}}, s.PositionsAt(0))
	assert.Equal(t, []core.Location{{Row: 0, Col: 1}, {Row: 2, Col: 1}}, s.PositionsAt(1))
	// Agent 0 is done at t=2 and holds its goal afterwards.
	assert.Equal(t, []core.Location{{Row: 0, Col: 2}, {Row: 2, Col: 2}}, s.PositionsAt(3))
	assert.Equal(t, []core.Location{{Row: 0, Col: 2}, {Row: 2, Col: 2}}, s.PositionsAt(10))
}

func TestVerify_Valid(t *testing.T) {
	inst := openInstance(2)
	paths := []core.Path{
		{{Row: 0, Col: 0}, {Row: 0, Col: 1}, {Row: 0, Col: 2}},
		{{Row: 2, Col: 0}, {Row: 2, Col: 1}, {Row: 2, Col: 2}},
	}
	require.NoError(t, New(inst, paths).Verify())
	assert.Empty(t, New(inst, paths).Violations())
}

func TestVerify_Failures(t *testing.T) {
	inst := openInstance(1)

	cases := map[string][]core.Path{
		"missing path": {},
		"empty path":   {{}},
		"wrong start":  {{{Row: 0, Col: 1}, {Row: 0, Col: 2}, {Row: 1, Col: 2}, {Row: 2, Col: 2}}},
		"wrong goal":   {{{Row: 0, Col: 0}, {Row: 0, Col: 1}, {Row: 0, Col: 2}}},
		"diagonal move": {
			{{Row: 0, Col: 0}, {Row: 1, Col: 1}, {Row: 2, Col: 2}},
		},
		"teleport": {
			{{Row: 0, Col: 0}, {Row: 2, Col: 2}},
		},
	}
	for name, paths := range cases {
		assert.Error(t, New(inst, paths).Verify(), name)
	}
}

func TestVerify_BlockedCell(t *testing.T) {
	inst := openInstance(1)
	inst.Map[1][2] = true
	paths := []core.Path{{{Row: 0, Col: 0}, {Row: 0, Col: 1}, {Row: 0, Col: 2}, {Row: 1, Col: 2}, {Row: 2, Col: 2}}}
	err := New(inst, paths).Verify()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "blocked")
}

func TestVerify_Collision(t *testing.T) {
	inst := openInstance(2)
	// Both agents pass through (1,1) at t=1.
	paths := []core.Path{
		{{Row: 0, Col: 0}, {Row: 1, Col: 0}, {Row: 1, Col: 1}, {Row: 0, Col: 1}, {Row: 0, Col: 2}},
		{{Row: 2, Col: 0}, {Row: 2, Col: 1}, {Row: 1, Col: 1}, {Row: 2, Col: 1}, {Row: 2, Col: 2}},
	}
	s := New(inst, paths)
	require.Error(t, s.Verify())
	v := s.Violations()
	require.NotEmpty(t, v)
	assert.Equal(t, 2, v[0].Timestep)
	assert.False(t, v[0].IsEdge)
	assert.Equal(t, core.Location{Row: 1, Col: 1}, v[0].Vertex)
}
