package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/elektrokombinacija/mapf-fair-research/internal/core"
	"github.com/elektrokombinacija/mapf-fair-research/internal/sim"
)

var solveOpts struct {
	spec      solverSpec
	verify    bool
	pathsFile string
}

var solveCmd = &cobra.Command{
	Use:   "solve <instance-file>",
	Short: "Solve a single instance and report its metrics",
	Args:  cobra.ExactArgs(1),
	RunE:  runSolve,
}

func init() {
	f := solveCmd.Flags()
	f.StringVar(&solveOpts.spec.Solver, "solver", "cbs", "solver: cbs, fair or prioritized")
	f.BoolVar(&solveOpts.spec.Disjoint, "disjoint", false, "use disjoint splitting")
	f.Float64Var(&solveOpts.spec.Alpha, "alpha", 1.0, "fair solver: weight on sum of costs")
	f.Float64Var(&solveOpts.spec.Beta, "beta", 10.0, "fair solver: weight on max stretch")
	f.Float64Var(&solveOpts.spec.Bound, "bound", 0, "fair solver: hard stretch bound (0 disables)")
	f.Int64Var(&solveOpts.spec.Seed, "seed", 1, "seed for disjoint splitting's agent choice")
	f.IntVar(&solveOpts.spec.MaxExpansions, "max-expansions", 0, "abort after this many node expansions (0 = unlimited)")
	f.BoolVar(&solveOpts.verify, "verify", false, "re-check the solution with the simulator")
	f.StringVar(&solveOpts.pathsFile, "paths", "", "write the solution as JSON to this file")
}

func runSolve(cmd *cobra.Command, args []string) error {
	log := logrus.StandardLogger()

	inst, err := core.LoadInstance(args[0])
	if err != nil {
		return err
	}

	solver, err := buildSolver(solveOpts.spec)
	if err != nil {
		return err
	}

	log.WithFields(logrus.Fields{
		"instance": args[0],
		"agents":   inst.NumAgents(),
		"grid":     fmt.Sprintf("%dx%d", inst.Map.Rows(), inst.Map.Cols()),
		"solver":   solver.Name(),
	}).Info("solving")

	start := time.Now()
	sol, err := solver.Solve(inst)
	elapsed := time.Since(start)
	if err != nil {
		return fmt.Errorf("%s: %w", solver.Name(), err)
	}

	log.WithFields(logrus.Fields{
		"soc":         sol.SOC,
		"makespan":    sol.Makespan,
		"max_stretch": fmt.Sprintf("%.3f", sol.MaxStretch),
		"avg_stretch": fmt.Sprintf("%.3f", sol.AvgStretch),
		"runtime":     elapsed.Round(time.Microsecond),
	}).Info("solved")

	if solveOpts.verify {
		if err := sim.New(inst, sol.Paths).Verify(); err != nil {
			return fmt.Errorf("verification failed: %w", err)
		}
		log.Info("solution verified")
	}

	if solveOpts.pathsFile != "" {
		if err := writeSolution(solveOpts.pathsFile, solver.Name(), sol); err != nil {
			return err
		}
		log.WithField("file", solveOpts.pathsFile).Info("solution written")
	}
	return nil
}

// solutionFile is the JSON shape written by --paths.
type solutionFile struct {
	Solver     string     `json:"solver"`
	SOC        int        `json:"soc"`
	Makespan   int        `json:"makespan"`
	MaxStretch float64    `json:"max_stretch"`
	AvgStretch float64    `json:"avg_stretch"`
	Stretches  []float64  `json:"stretches"`
	Paths      [][][2]int `json:"paths"`
}

func writeSolution(path, solverName string, sol *core.Solution) error {
	out := solutionFile{
		Solver:     solverName,
		SOC:        sol.SOC,
		Makespan:   sol.Makespan,
		MaxStretch: sol.MaxStretch,
		AvgStretch: sol.AvgStretch,
		Stretches:  sol.Stretches,
	}
	for _, p := range sol.Paths {
		cells := make([][2]int, len(p))
		for t, loc := range p {
			cells[t] = [2]int{loc.Row, loc.Col}
		}
		out.Paths = append(out.Paths, cells)
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
