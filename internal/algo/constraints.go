package algo

import (
	"github.com/elektrokombinacija/mapf-fair-research/internal/core"
)

// constraintTable indexes a flat constraint list into per-timestep negative
// and positive buckets for one agent, giving O(1) lookup during the
// low-level search.
type constraintTable struct {
	neg map[int][]core.Constraint
	pos map[int][]core.Constraint
}

// buildConstraintTable buckets the constraints addressed to agent. A
// positive constraint addressed to a different agent converts into an
// implicit negative constraint for this agent at the same location and
// timestep: forcing one agent into a cell simultaneously forbids every
// other agent from that cell at that time. This table construction is the
// single source of truth for that cross-agent rule.
func buildConstraintTable(constraints []core.Constraint, agent int) *constraintTable {
	t := &constraintTable{
		neg: make(map[int][]core.Constraint),
		pos: make(map[int][]core.Constraint),
	}
	for _, c := range constraints {
		switch {
		case c.Agent == agent && c.Positive:
			t.pos[c.Timestep] = append(t.pos[c.Timestep], c)
		case c.Agent == agent:
			t.neg[c.Timestep] = append(t.neg[c.Timestep], c)
		case c.Positive && c.IsEdge:
			// Forcing another agent through From->To keeps this agent out of
			// From at the departure step, out of To at the arrival step, and
			// off the reverse traversal.
			t.neg[c.Timestep-1] = append(t.neg[c.Timestep-1],
				core.VertexConstraint(agent, c.From, c.Timestep-1, false))
			t.neg[c.Timestep] = append(t.neg[c.Timestep],
				core.VertexConstraint(agent, c.To, c.Timestep, false),
				core.EdgeConstraint(agent, c.To, c.From, c.Timestep, false))
		case c.Positive:
			t.neg[c.Timestep] = append(t.neg[c.Timestep],
				core.VertexConstraint(agent, c.Vertex, c.Timestep, false))
		}
		// A negative constraint on someone else has no effect here.
	}
	return t
}

// matches reports whether the move curr->next (a wait when curr == next)
// is the state or move the constraint addresses.
func matches(c core.Constraint, curr, next core.Location) bool {
	if c.IsEdge {
		return curr == c.From && next == c.To
	}
	return next == c.Vertex
}

// violates reports whether the move curr->next arriving at nextTime is
// forbidden: it matches a negative constraint, or positive constraints
// exist for nextTime and the move satisfies none of them. A positive
// constraint at a timestep is exclusive: when any exist, the agent's move
// must match one.
func (t *constraintTable) violates(curr, next core.Location, nextTime int) bool {
	for _, c := range t.neg[nextTime] {
		if matches(c, curr, next) {
			return true
		}
	}
	if pos := t.pos[nextTime]; len(pos) > 0 {
		for _, c := range pos {
			if matches(c, curr, next) {
				return false
			}
		}
		return true
	}
	return false
}

// earliestGoalTimestep scans negative vertex constraints on the goal cell.
// If the goal is forbidden at time t, the agent may not settle there until
// strictly after t, otherwise a future constraint would force it to move
// again after "arriving".
func (t *constraintTable) earliestGoalTimestep(goal core.Location) int {
	earliest := 0
	for ts, list := range t.neg {
		for _, c := range list {
			if !c.IsEdge && c.Vertex == goal && ts+1 > earliest {
				earliest = ts + 1
			}
		}
	}
	return earliest
}
