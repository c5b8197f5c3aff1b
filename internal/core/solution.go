package core

// Metrics summarizes a set of paths: sum-of-costs, makespan, and the
// per-agent stretch ratios (actual cost / unconstrained optimal cost).
type Metrics struct {
	SOC        int
	Makespan   int
	MaxStretch float64
	AvgStretch float64
	Stretches  []float64
}

// Solution is a complete multi-agent plan: one path per agent, already
// validated to be mutually collision-free, plus summary metrics.
type Solution struct {
	Paths []Path
	Metrics
}
