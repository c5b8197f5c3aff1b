// Package state manages the visualizer's view of a solved instance.
package state

import (
	"github.com/elektrokombinacija/mapf-fair-research/internal/core"
)

// CellSize is the world-space edge length of one grid cell.
const CellSize = 50.0

// Point is a world-space position.
type Point struct {
	X, Y float64
}

// CellCenter returns the world-space center of a grid cell.
func CellCenter(loc core.Location) Point {
	return Point{
		X: (float64(loc.Col) + 0.5) * CellSize,
		Y: (float64(loc.Row) + 0.5) * CellSize,
	}
}

// State holds everything the widgets render: the instance, its solution,
// and the playback cursor.
type State struct {
	Instance *core.Instance
	Solution *core.Solution
	Playback *PlaybackState
}

// NewState creates the visualization state for a solved instance.
func NewState(inst *core.Instance, sol *core.Solution) *State {
	makespan := 0
	if sol != nil {
		makespan = sol.Makespan
	}
	return &State{
		Instance: inst,
		Solution: sol,
		Playback: NewPlaybackState(makespan),
	}
}

// CurrentPositions returns every agent's interpolated world position at
// the current playback time.
func (s *State) CurrentPositions() []Point {
	if s.Solution == nil {
		return nil
	}
	positions := make([]Point, len(s.Solution.Paths))
	for i, p := range s.Solution.Paths {
		positions[i] = interpolate(p, s.Playback.CurrentTime)
	}
	return positions
}

// interpolate places an agent between the cells it occupies at the
// timesteps surrounding t. Outside the path the agent sits at its
// endpoint, matching the wait-at-goal collision model.
func interpolate(p core.Path, t float64) Point {
	if len(p) == 0 {
		return Point{}
	}
	if t <= 0 {
		return CellCenter(p[0])
	}
	last := len(p) - 1
	if t >= float64(last) {
		return CellCenter(p[last])
	}

	lo := int(t)
	from := CellCenter(p[lo])
	to := CellCenter(p[lo+1])
	alpha := t - float64(lo)
	return Point{
		X: from.X + alpha*(to.X-from.X),
		Y: from.Y + alpha*(to.Y-from.Y),
	}
}

// PathHistory returns the cells an agent has visited up to the current
// playback time, ending at its interpolated position. Used for trails.
func (s *State) PathHistory(agent int) []Point {
	if s.Solution == nil || agent >= len(s.Solution.Paths) {
		return nil
	}
	p := s.Solution.Paths[agent]
	if len(p) == 0 {
		return nil
	}

	t := s.Playback.CurrentTime
	var history []Point
	for i, loc := range p {
		if float64(i) > t {
			break
		}
		history = append(history, CellCenter(loc))
	}
	if len(history) > 0 {
		history = append(history, interpolate(p, t))
	}
	return history
}

// PathFuture returns the cells an agent has yet to visit, starting from
// its interpolated position.
func (s *State) PathFuture(agent int) []Point {
	if s.Solution == nil || agent >= len(s.Solution.Paths) {
		return nil
	}
	p := s.Solution.Paths[agent]
	if len(p) == 0 {
		return nil
	}

	t := s.Playback.CurrentTime
	future := []Point{interpolate(p, t)}
	for i, loc := range p {
		if float64(i) > t {
			future = append(future, CellCenter(loc))
		}
	}
	if len(future) < 2 {
		return nil
	}
	return future
}
