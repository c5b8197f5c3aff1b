package algo

import (
	"container/heap"

	"github.com/elektrokombinacija/mapf-fair-research/internal/core"
)

// HeuristicTable maps every cell reachable from a goal to its exact
// shortest-path distance to that goal. Absent entries mean unreachable and
// must be treated as infinite cost.
type HeuristicTable map[core.Location]int

// hNode for the Dijkstra priority queue.
type hNode struct {
	loc   core.Location
	cost  int
	index int
}

type hHeap []*hNode

func (h hHeap) Len() int           { return len(h) }
func (h hHeap) Less(i, j int) bool { return h[i].cost < h[j].cost }
func (h hHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}
func (h *hHeap) Push(x any) {
	n := x.(*hNode)
	n.index = len(*h)
	*h = append(*h, n)
}
func (h *hHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	old[n-1] = nil
	*h = old[0 : n-1]
	return x
}

// ComputeHeuristics builds the cost-to-goal table for one goal with a
// uniform-cost expansion from the goal outward. All edges cost 1, so this
// is equivalent to breadth-first search, but the Dijkstra form keeps it
// composable with non-uniform costs. There is no error path: unreachable
// cells are simply absent from the table.
func ComputeHeuristics(grid core.Grid, goal core.Location) HeuristicTable {
	table := make(HeuristicTable)
	if grid.Blocked(goal) {
		return table
	}

	open := &hHeap{}
	heap.Init(open)
	heap.Push(open, &hNode{loc: goal, cost: 0})
	table[goal] = 0

	for open.Len() > 0 {
		curr := heap.Pop(open).(*hNode)
		if curr.cost > table[curr.loc] {
			continue // stale entry
		}
		for _, d := range core.MoveDeltas[1:] {
			next := curr.loc.Add(d)
			if grid.Blocked(next) {
				continue
			}
			cost := curr.cost + 1
			if known, ok := table[next]; !ok || cost < known {
				table[next] = cost
				heap.Push(open, &hNode{loc: next, cost: cost})
			}
		}
	}
	return table
}
