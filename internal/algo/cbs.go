package algo

import (
	"container/heap"
	"fmt"
	"math/rand"

	"github.com/sirupsen/logrus"

	"github.com/elektrokombinacija/mapf-fair-research/internal/core"
)

// CBS implements Conflict-Based Search: a best-first search over a binary
// constraint tree whose leaves are collision-free multi-agent plans. The
// first collision-free node popped is cost-optimal, because children never
// cost less than their parents (added constraints only restrict the state
// space) and the open list is ordered by cost.
type CBS struct {
	// Splitting selects the branching strategy.
	Splitting SplittingMode

	// MaxExpansions, when positive, aborts the search with
	// ErrExpansionLimit after that many node expansions. This is the
	// caller-imposed budget layered on top of the search; it is checked
	// between expansions, never inside one.
	MaxExpansions int

	// RNG drives disjoint splitting's agent choice. Defaults to a fixed
	// seed for reproducible runs; supply a source to vary it.
	RNG *rand.Rand

	// Log receives per-node trace output at Debug level.
	Log logrus.FieldLogger

	// Stats is populated during Solve.
	Stats Stats
}

// NewCBS creates a CBS solver with the given splitting mode.
func NewCBS(mode SplittingMode) *CBS {
	return &CBS{Splitting: mode}
}

func (c *CBS) Name() string {
	return "CBS-" + c.Splitting.String()
}

// cbsNode is a node in the constraint tree. Each node owns its own
// constraint set snapshot and its own path vector; siblings never share
// mutable state.
type cbsNode struct {
	constraints []core.Constraint
	paths       []core.Path
	collisions  []core.Collision
	cost        int
	order       int // generation counter, deterministic tie-break
	index       int // heap index
}

type cbsHeap []*cbsNode

func (h cbsHeap) Len() int { return len(h) }
func (h cbsHeap) Less(i, j int) bool {
	if h[i].cost != h[j].cost {
		return h[i].cost < h[j].cost
	}
	if len(h[i].collisions) != len(h[j].collisions) {
		return len(h[i].collisions) < len(h[j].collisions)
	}
	return h[i].order < h[j].order
}
func (h cbsHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}
func (h *cbsHeap) Push(x any) {
	n := x.(*cbsNode)
	n.index = len(*h)
	*h = append(*h, n)
}
func (h *cbsHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	old[n-1] = nil
	*h = old[0 : n-1]
	return x
}

// Solve runs the high-level search.
func (c *CBS) Solve(inst *core.Instance) (*core.Solution, error) {
	rng := c.RNG
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	log := c.Log
	if log == nil {
		log = logrus.StandardLogger()
	}
	c.Stats = Stats{}

	heuristics := make([]HeuristicTable, inst.NumAgents())
	for i, goal := range inst.Goals {
		heuristics[i] = ComputeHeuristics(inst.Map, goal)
	}

	root := &cbsNode{}
	for i := 0; i < inst.NumAgents(); i++ {
		path, ok := SpaceTimeAStar(inst.Map, inst.Starts[i], inst.Goals[i], heuristics[i], i, nil, 0)
		if !ok {
			return nil, fmt.Errorf("agent %d: %w", i, ErrNoInitialPath)
		}
		root.paths = append(root.paths, path)
	}
	root.cost = core.SumOfCosts(root.paths)
	root.collisions = DetectCollisions(root.paths)

	open := &cbsHeap{}
	heap.Init(open)
	c.push(open, root, log)

	for open.Len() > 0 {
		if c.MaxExpansions > 0 && c.Stats.Expanded >= c.MaxExpansions {
			return nil, ErrExpansionLimit
		}
		node := heap.Pop(open).(*cbsNode)
		c.Stats.Expanded++
		log.WithFields(logrus.Fields{"order": node.order, "cost": node.cost,
			"collisions": len(node.collisions)}).Debug("expand node")

		if len(node.collisions) == 0 {
			m := ComputeMetrics(node.paths, inst.Starts, heuristics)
			return &core.Solution{Paths: node.paths, Metrics: m}, nil
		}

		collision := node.collisions[0]
		for _, constraint := range c.split(collision, rng) {
			child, ok := expandChild(inst, node, constraint, heuristics)
			if !ok {
				continue // infeasible branch, sibling may still succeed
			}
			child.cost = core.SumOfCosts(child.paths)
			child.collisions = DetectCollisions(child.paths)
			c.push(open, child, log)
		}
	}

	return nil, ErrSearchExhausted
}

func (c *CBS) push(open *cbsHeap, node *cbsNode, log logrus.FieldLogger) {
	node.order = c.Stats.Generated
	c.Stats.Generated++
	heap.Push(open, node)
	log.WithFields(logrus.Fields{"order": node.order, "cost": node.cost,
		"collisions": len(node.collisions)}).Debug("generate node")
}

func (c *CBS) split(collision core.Collision, rng *rand.Rand) []core.Constraint {
	if c.Splitting == SplittingDisjoint {
		return DisjointSplit(collision, rng)
	}
	return StandardSplit(collision)
}

// expandChild builds a child node from a parent plus one new constraint:
// the constraint set grows by one, paths are copied, and every agent the
// constraint affects is replanned under the child's full constraint set.
// Returns false when some affected agent has no path, in which case the
// whole branch is discarded.
func expandChild(inst *core.Instance, parent *cbsNode, constraint core.Constraint, heuristics []HeuristicTable) (*cbsNode, bool) {
	child := &cbsNode{
		constraints: append(append([]core.Constraint{}, parent.constraints...), constraint),
		paths:       core.CopyPaths(parent.paths),
	}

	replan := []int{constraint.Agent}
	if constraint.Positive {
		replan = append(replan, ViolatingAgents(parent.paths, constraint)...)
	}
	for _, agent := range replan {
		path, ok := SpaceTimeAStar(inst.Map, inst.Starts[agent], inst.Goals[agent],
			heuristics[agent], agent, child.constraints, 0)
		if !ok {
			return nil, false
		}
		child.paths[agent] = path
	}
	return child, true
}
