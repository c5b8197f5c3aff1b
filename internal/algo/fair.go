package algo

import (
	"container/heap"
	"fmt"
	"math/rand"

	"github.com/sirupsen/logrus"

	"github.com/elektrokombinacija/mapf-fair-research/internal/core"
)

// FairCBS extends Conflict-Based Search with a per-agent stretch metric
// (actual path cost over unconstrained optimal cost) and two orthogonal,
// combinable policy knobs:
//
//   - Weighted mode: the node ordering cost becomes Alpha*SOC +
//     Beta*MaxStretch. This only nudges which collision-free node is found
//     first; it forbids nothing, so fairness is not guaranteed.
//   - Bounded mode (StretchBound > 0): any node whose max stretch exceeds
//     the bound is pruned outright, a hard branch-and-bound cut. A returned
//     solution satisfies the bound, or no such solution exists. A root that
//     already violates the bound fails with ErrBoundInfeasible, distinct
//     from search exhaustion.
type FairCBS struct {
	Splitting SplittingMode

	Alpha float64
	Beta  float64

	// StretchBound prunes nodes with MaxStretch above it; 0 disables the
	// bound.
	StretchBound float64

	// MaxExpansions, when positive, aborts with ErrExpansionLimit after
	// that many expansions.
	MaxExpansions int

	RNG *rand.Rand
	Log logrus.FieldLogger

	Stats Stats
}

// NewFairCBS creates a fairness-aware CBS solver. alpha/beta weight the
// objective; bound <= 0 disables the hard stretch bound.
func NewFairCBS(mode SplittingMode, alpha, beta, bound float64) *FairCBS {
	return &FairCBS{Splitting: mode, Alpha: alpha, Beta: beta, StretchBound: bound}
}

func (f *FairCBS) Name() string {
	if f.StretchBound > 0 {
		return fmt.Sprintf("FairCBS-bounded-%.2f", f.StretchBound)
	}
	return fmt.Sprintf("FairCBS-weighted-%.1f-%.1f", f.Alpha, f.Beta)
}

// fairNode augments the CBS node with the fairness metrics that drive
// ordering and pruning.
type fairNode struct {
	constraints []core.Constraint
	paths       []core.Path
	collisions  []core.Collision
	cost        float64 // Alpha*soc + Beta*maxStretch
	soc         int
	maxStretch  float64
	order       int
	index       int
}

type fairHeap []*fairNode

func (h fairHeap) Len() int { return len(h) }
func (h fairHeap) Less(i, j int) bool {
	if h[i].cost != h[j].cost {
		return h[i].cost < h[j].cost
	}
	if len(h[i].collisions) != len(h[j].collisions) {
		return len(h[i].collisions) < len(h[j].collisions)
	}
	return h[i].order < h[j].order
}
func (h fairHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}
func (h *fairHeap) Push(x any) {
	n := x.(*fairNode)
	n.index = len(*h)
	*h = append(*h, n)
}
func (h *fairHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	old[n-1] = nil
	*h = old[0 : n-1]
	return x
}

// Solve runs the fairness-aware high-level search.
func (f *FairCBS) Solve(inst *core.Instance) (*core.Solution, error) {
	rng := f.RNG
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	log := f.Log
	if log == nil {
		log = logrus.StandardLogger()
	}
	f.Stats = Stats{}

	heuristics := make([]HeuristicTable, inst.NumAgents())
	for i, goal := range inst.Goals {
		heuristics[i] = ComputeHeuristics(inst.Map, goal)
	}

	root := &fairNode{}
	for i := 0; i < inst.NumAgents(); i++ {
		path, ok := SpaceTimeAStar(inst.Map, inst.Starts[i], inst.Goals[i], heuristics[i], i, nil, 0)
		if !ok {
			return nil, fmt.Errorf("agent %d: %w", i, ErrNoInitialPath)
		}
		root.paths = append(root.paths, path)
	}
	root.collisions = DetectCollisions(root.paths)
	rootMetrics := ComputeMetrics(root.paths, inst.Starts, heuristics)
	root.soc = rootMetrics.SOC
	root.maxStretch = rootMetrics.MaxStretch
	if f.StretchBound > 0 && root.maxStretch > f.StretchBound {
		return nil, fmt.Errorf("bound %.3f, unconstrained max stretch %.3f: %w",
			f.StretchBound, root.maxStretch, ErrBoundInfeasible)
	}
	root.cost = f.Alpha*float64(root.soc) + f.Beta*root.maxStretch

	open := &fairHeap{}
	heap.Init(open)
	f.push(open, root, log)

	for open.Len() > 0 {
		if f.MaxExpansions > 0 && f.Stats.Expanded >= f.MaxExpansions {
			return nil, ErrExpansionLimit
		}
		node := heap.Pop(open).(*fairNode)
		f.Stats.Expanded++
		log.WithFields(logrus.Fields{"order": node.order, "cost": node.cost, "soc": node.soc,
			"maxStretch": node.maxStretch, "collisions": len(node.collisions)}).Debug("expand node")

		if len(node.collisions) == 0 {
			m := ComputeMetrics(node.paths, inst.Starts, heuristics)
			return &core.Solution{Paths: node.paths, Metrics: m}, nil
		}

		collision := node.collisions[0]
		var split []core.Constraint
		if f.Splitting == SplittingDisjoint {
			split = DisjointSplit(collision, rng)
		} else {
			split = StandardSplit(collision)
		}

		for _, constraint := range split {
			expanded, ok := f.expandChild(inst, node, constraint, heuristics)
			if !ok {
				continue // infeasible branch
			}
			metrics := ComputeMetrics(expanded.paths, inst.Starts, heuristics)
			if f.StretchBound > 0 && metrics.MaxStretch > f.StretchBound {
				continue // branch-and-bound cut: never pushed
			}
			expanded.soc = metrics.SOC
			expanded.maxStretch = metrics.MaxStretch
			expanded.collisions = DetectCollisions(expanded.paths)
			expanded.cost = f.Alpha*float64(expanded.soc) + f.Beta*expanded.maxStretch
			f.push(open, expanded, log)
		}
	}

	return nil, ErrSearchExhausted
}

func (f *FairCBS) push(open *fairHeap, node *fairNode, log logrus.FieldLogger) {
	node.order = f.Stats.Generated
	f.Stats.Generated++
	heap.Push(open, node)
	log.WithFields(logrus.Fields{"order": node.order, "cost": node.cost,
		"collisions": len(node.collisions)}).Debug("generate node")
}

func (f *FairCBS) expandChild(inst *core.Instance, parent *fairNode, constraint core.Constraint, heuristics []HeuristicTable) (*fairNode, bool) {
	child := &fairNode{
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
