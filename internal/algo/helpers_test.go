package algo

import (
	"github.com/elektrokombinacija/mapf-fair-research/internal/core"
)

// makeGrid creates an all-free n x n grid.
func makeGrid(n int) core.Grid {
	return core.NewGrid(n, n)
}

// makeBottleneck creates a rows x cols grid with a vertical wall down the
// middle column and a single-cell gap, forcing agents to queue.
func makeBottleneck(rows, cols, gapRow int) core.Grid {
	g := core.NewGrid(rows, cols)
	mid := cols / 2
	for r := 0; r < rows; r++ {
		g[r][mid] = r != gapRow
	}
	return g
}

// loc is shorthand for building locations in tests.
func loc(r, c int) core.Location {
	return core.Location{Row: r, Col: c}
}

// swapInstance is the 3x3 head-on swap: two agents exchanging adjacent
// cells on the top row.
func swapInstance() *core.Instance {
	return &core.Instance{
		Map:    makeGrid(3),
		Starts: []core.Location{loc(0, 0), loc(0, 1)},
		Goals:  []core.Location{loc(0, 1), loc(0, 0)},
	}
}
