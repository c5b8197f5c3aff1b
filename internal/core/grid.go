// Package core defines domain models for fair grid MAPF.
package core

// Location is a grid cell identified by (row, col).
type Location struct {
	Row, Col int
}

// Add returns the location offset by a delta.
func (l Location) Add(d Location) Location {
	return Location{Row: l.Row + d.Row, Col: l.Col + d.Col}
}

// MoveDeltas are the five unit actions: wait plus the four cardinal moves.
// Waiting costs the same as moving so the low-level search can delay to
// avoid a constraint.
var MoveDeltas = [5]Location{
	{0, 0},  // wait
	{0, -1}, // west
	{1, 0},  // south
	{0, 1},  // east
	{-1, 0}, // north
}

// Grid is a rows x cols obstacle matrix. true marks a blocked cell.
// Immutable for the duration of a solve.
type Grid [][]bool

// NewGrid creates an all-free grid of the given dimensions.
func NewGrid(rows, cols int) Grid {
	g := make(Grid, rows)
	for r := range g {
		g[r] = make([]bool, cols)
	}
	return g
}

// Rows returns the number of rows.
func (g Grid) Rows() int { return len(g) }

// Cols returns the number of columns.
func (g Grid) Cols() int {
	if len(g) == 0 {
		return 0
	}
	return len(g[0])
}

// InBounds reports whether the location lies inside the grid.
func (g Grid) InBounds(l Location) bool {
	return l.Row >= 0 && l.Row < g.Rows() && l.Col >= 0 && l.Col < g.Cols()
}

// Blocked reports whether the cell is an obstacle. Out-of-bounds cells are
// treated as blocked.
func (g Grid) Blocked(l Location) bool {
	if !g.InBounds(l) {
		return true
	}
	return g[l.Row][l.Col]
}

// FreeCells returns every unblocked location in row-major order.
func (g Grid) FreeCells() []Location {
	var cells []Location
	for r := 0; r < g.Rows(); r++ {
		for c := 0; c < g.Cols(); c++ {
			if !g[r][c] {
				cells = append(cells, Location{Row: r, Col: c})
			}
		}
	}
	return cells
}
