package algo

import (
	"container/heap"

	"github.com/elektrokombinacija/mapf-fair-research/internal/core"
)

// spaceTimeState is a (location, timestep) search state.
type spaceTimeState struct {
	loc core.Location
	t   int
}

// astarNode for the open list.
type astarNode struct {
	state  spaceTimeState
	g      int // timesteps elapsed
	h      int // heuristic cost-to-goal
	parent *astarNode
	order  int // generation counter, deterministic tie-break
	index  int // heap index
}

type astarHeap []*astarNode

func (h astarHeap) Len() int { return len(h) }
func (h astarHeap) Less(i, j int) bool {
	fi, fj := h[i].g+h[i].h, h[j].g+h[j].h
	if fi != fj {
		return fi < fj
	}
	if h[i].h != h[j].h {
		return h[i].h < h[j].h // prefer states closer to the goal
	}
	return h[i].order < h[j].order
}
func (h astarHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}
func (h *astarHeap) Push(x any) {
	n := x.(*astarNode)
	n.index = len(*h)
	*h = append(*h, n)
}
func (h *astarHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	old[n-1] = nil
	*h = old[0 : n-1]
	return x
}

// SpaceTimeAStar plans a minimum-cost path for one agent from start to goal
// in the (location, timestep) state space, honoring the given constraints.
// Five actions per state: four cardinal moves and a wait, each costing one
// timestep. maxTimestep > 0 bounds the search depth; states beyond it are
// pruned, not expanded. The second return value is false when the open list
// empties without reaching an accepting goal state: no path exists for this
// agent under these constraints.
func SpaceTimeAStar(
	grid core.Grid,
	start, goal core.Location,
	h HeuristicTable,
	agent int,
	constraints []core.Constraint,
	maxTimestep int,
) (core.Path, bool) {
	startH, ok := h[start]
	if !ok {
		return nil, false // goal unreachable from start even without constraints
	}

	table := buildConstraintTable(constraints, agent)
	earliestGoal := table.earliestGoalTimestep(goal)

	open := &astarHeap{}
	heap.Init(open)

	generated := 0
	root := &astarNode{state: spaceTimeState{loc: start, t: 0}, g: 0, h: startH, order: generated}
	generated++
	heap.Push(open, root)

	// Best f seen per state; nodes are re-pushed when a cheaper route to
	// the same state appears.
	best := map[spaceTimeState]int{root.state: root.g + root.h}

	for open.Len() > 0 {
		curr := heap.Pop(open).(*astarNode)

		if maxTimestep > 0 && curr.state.t > maxTimestep {
			continue
		}
		if curr.state.loc == goal && curr.state.t >= earliestGoal {
			return reconstructPath(curr), true
		}

		for _, d := range core.MoveDeltas {
			next := curr.state.loc.Add(d)
			if grid.Blocked(next) {
				continue
			}
			nextH, reachable := h[next]
			if !reachable {
				continue
			}
			nextTime := curr.state.t + 1
			if maxTimestep > 0 && nextTime > maxTimestep {
				continue
			}
			if table.violates(curr.state.loc, next, nextTime) {
				continue
			}

			child := &astarNode{
				state:  spaceTimeState{loc: next, t: nextTime},
				g:      curr.g + 1,
				h:      nextH,
				parent: curr,
				order:  generated,
			}
			if f, seen := best[child.state]; seen && child.g+child.h >= f {
				continue
			}
			best[child.state] = child.g + child.h
			generated++
			heap.Push(open, child)
		}
	}

	return nil, false
}

func reconstructPath(node *astarNode) core.Path {
	var path core.Path
	for n := node; n != nil; n = n.parent {
		path = append(path, n.state.loc)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
