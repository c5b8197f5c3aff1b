package core

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Instance is a grid MAPF problem: an obstacle map plus one start and one
// goal per agent. Agent id = slice index.
type Instance struct {
	Map    Grid
	Starts []Location
	Goals  []Location
}

// NumAgents returns the number of agents.
func (inst *Instance) NumAgents() int { return len(inst.Starts) }

// Validate checks instance consistency: a rectangular non-empty map,
// matching start/goal counts, and in-bounds unblocked endpoints.
func (inst *Instance) Validate() error {
	if inst.Map.Rows() == 0 || inst.Map.Cols() == 0 {
		return fmt.Errorf("core: map must have at least one row and one column")
	}
	cols := inst.Map.Cols()
	for r, row := range inst.Map {
		if len(row) != cols {
			return fmt.Errorf("core: map row %d has %d columns, want %d", r, len(row), cols)
		}
	}
	if len(inst.Starts) != len(inst.Goals) {
		return fmt.Errorf("core: %d starts but %d goals", len(inst.Starts), len(inst.Goals))
	}
	for i := range inst.Starts {
		if inst.Map.Blocked(inst.Starts[i]) {
			return fmt.Errorf("core: agent %d start %v is blocked or out of bounds", i, inst.Starts[i])
		}
		if inst.Map.Blocked(inst.Goals[i]) {
			return fmt.Errorf("core: agent %d goal %v is blocked or out of bounds", i, inst.Goals[i])
		}
	}
	return nil
}

// LoadInstance reads an instance from a text file.
//
// Format:
//
//	rows cols
//	<rows lines of '@' (obstacle) and '.' (free); whitespace ignored>
//	numAgents
//	<numAgents lines of: startRow startCol goalRow goalCol>
func LoadInstance(path string) (*Instance, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	inst, err := ReadInstance(f)
	if err != nil {
		return nil, fmt.Errorf("core: parsing %s: %w", path, err)
	}
	return inst, nil
}

// ReadInstance parses the instance text format from r.
func ReadInstance(r io.Reader) (*Instance, error) {
	br := bufio.NewReader(r)

	var rows, cols int
	if _, err := fmt.Fscan(br, &rows, &cols); err != nil {
		return nil, fmt.Errorf("reading dimensions: %w", err)
	}

	grid := make(Grid, 0, rows)
	for len(grid) < rows {
		line, err := br.ReadString('\n')
		if err != nil && line == "" {
			return nil, fmt.Errorf("reading map row %d: %w", len(grid), err)
		}
		cells := strings.Join(strings.Fields(line), "")
		if cells == "" {
			continue
		}
		if len(cells) != cols {
			return nil, fmt.Errorf("map row %d has %d cells, want %d", len(grid), len(cells), cols)
		}
		row := make([]bool, cols)
		for c, ch := range cells {
			switch ch {
			case '@':
				row[c] = true
			case '.':
			default:
				return nil, fmt.Errorf("map row %d: unexpected cell %q", len(grid), ch)
			}
		}
		grid = append(grid, row)
	}

	var n int
	if _, err := fmt.Fscan(br, &n); err != nil {
		return nil, fmt.Errorf("reading agent count: %w", err)
	}
	inst := &Instance{Map: grid}
	for i := 0; i < n; i++ {
		var s, g Location
		if _, err := fmt.Fscan(br, &s.Row, &s.Col, &g.Row, &g.Col); err != nil {
			return nil, fmt.Errorf("reading agent %d: %w", i, err)
		}
		inst.Starts = append(inst.Starts, s)
		inst.Goals = append(inst.Goals, g)
	}

	if err := inst.Validate(); err != nil {
		return nil, err
	}
	return inst, nil
}

// SaveInstance writes the instance to a file in the text format.
func SaveInstance(path string, inst *Instance) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteInstance(f, inst); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// WriteInstance writes the instance text format to w.
func WriteInstance(w io.Writer, inst *Instance) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%d %d\n", inst.Map.Rows(), inst.Map.Cols())
	for _, row := range inst.Map {
		for _, blocked := range row {
			if blocked {
				bw.WriteByte('@')
			} else {
				bw.WriteByte('.')
			}
		}
		bw.WriteByte('\n')
	}
	fmt.Fprintf(bw, "%d\n", inst.NumAgents())
	for i := range inst.Starts {
		fmt.Fprintf(bw, "%d %d %d %d\n",
			inst.Starts[i].Row, inst.Starts[i].Col,
			inst.Goals[i].Row, inst.Goals[i].Col)
	}
	return bw.Flush()
}
