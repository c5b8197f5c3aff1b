// Command mapffairvis solves a grid MAPF instance and plays the solution
// back in a GUI.
//
// Controls: space toggles playback, left/right arrows step one timestep,
// up/down arrows change speed, Home rewinds, R resets the camera, and the
// scrubber at the bottom seeks.
package main

import (
	"os"

	"gioui.org/app"
	"gioui.org/unit"
	"github.com/sirupsen/logrus"
	flag "github.com/spf13/pflag"

	"github.com/elektrokombinacija/mapf-fair-research/internal/algo"
	"github.com/elektrokombinacija/mapf-fair-research/internal/core"
	"github.com/elektrokombinacija/mapf-fair-research/internal/vis"
)

func main() {
	var (
		instancePath = flag.String("instance", "", "instance file to load (default: a built-in demo)")
		solverName   = flag.String("solver", "cbs", "solver: cbs, fair or prioritized")
		disjoint     = flag.Bool("disjoint", false, "use disjoint splitting")
		alpha        = flag.Float64("alpha", 1.0, "fair solver: weight on sum of costs")
		beta         = flag.Float64("beta", 10.0, "fair solver: weight on max stretch")
		bound        = flag.Float64("bound", 0, "fair solver: hard stretch bound (0 disables)")
	)
	flag.Parse()

	log := logrus.StandardLogger()

	inst := demoInstance()
	if *instancePath != "" {
		loaded, err := core.LoadInstance(*instancePath)
		if err != nil {
			log.WithError(err).Fatal("loading instance")
		}
		inst = loaded
	}

	mode := algo.SplittingStandard
	if *disjoint {
		mode = algo.SplittingDisjoint
	}

	var solver algo.Solver
	switch *solverName {
	case "cbs":
		solver = algo.NewCBS(mode)
	case "fair":
		solver = algo.NewFairCBS(mode, *alpha, *beta, *bound)
	case "prioritized":
		solver = algo.NewPrioritized()
	default:
		log.Fatalf("unknown solver %q", *solverName)
	}

	sol, err := solver.Solve(inst)
	if err != nil {
		log.WithError(err).Fatal("solving")
	}
	log.WithFields(logrus.Fields{
		"solver":      solver.Name(),
		"soc":         sol.SOC,
		"makespan":    sol.Makespan,
		"max_stretch": sol.MaxStretch,
	}).Info("solved")

	go func() {
		window := new(app.Window)
		window.Option(
			app.Title("MAPF Fair Visualizer"),
			app.Size(unit.Dp(1200), unit.Dp(900)),
		)

		if err := vis.NewApp(inst, sol).Run(window); err != nil {
			log.Fatal(err)
		}
		os.Exit(0)
	}()
	app.Main()
}

// demoInstance is an 8x8 map with a two-gap wall and four agents crossing
// it in both directions.
func demoInstance() *core.Instance {
	grid := core.NewGrid(8, 8)
	for r := 0; r < 8; r++ {
		if r != 2 && r != 5 {
			grid[r][4] = true
		}
	}
	return &core.Instance{
		Map: grid,
		Starts: []core.Location{
			{Row: 0, Col: 0}, {Row: 3, Col: 1}, {Row: 7, Col: 7}, {Row: 4, Col: 6},
		},
		Goals: []core.Location{
			{Row: 0, Col: 7}, {Row: 3, Col: 6}, {Row: 7, Col: 0}, {Row: 4, Col: 1},
		},
	}
}
