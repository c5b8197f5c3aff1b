package core

// Constraint restricts one agent's motion at a single timestep. A negative
// constraint forbids the state or move, a positive one requires it.
// Constraints are immutable once created; a search node's constraint set is
// its parent's set plus exactly one new constraint.
type Constraint struct {
	Agent    int
	Timestep int
	Positive bool
	// Vertex constraints
	Vertex Location
	// Edge constraints (ordered: the move From -> To arriving at Timestep)
	IsEdge   bool
	From, To Location
}

// VertexConstraint builds a constraint on occupying a cell at a timestep.
func VertexConstraint(agent int, loc Location, timestep int, positive bool) Constraint {
	return Constraint{Agent: agent, Vertex: loc, Timestep: timestep, Positive: positive}
}

// EdgeConstraint builds a constraint on traversing from->to arriving at
// timestep. Direction matters: forbidding from->to does not forbid to->from.
func EdgeConstraint(agent int, from, to Location, timestep int, positive bool) Constraint {
	return Constraint{Agent: agent, IsEdge: true, From: from, To: to, Timestep: timestep, Positive: positive}
}

// Collision records the first conflict found between two agents' paths.
// For a vertex collision both agents occupy Vertex at Timestep. For an edge
// collision A1 traverses From->To and A2 traverses To->From, both arriving
// at Timestep.
type Collision struct {
	A1, A2   int
	Timestep int
	IsEdge   bool
	Vertex   Location
	From, To Location
}
