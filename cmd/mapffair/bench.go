package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/elektrokombinacija/mapf-fair-research/internal/algo"
	"github.com/elektrokombinacija/mapf-fair-research/internal/core"
	"github.com/elektrokombinacija/mapf-fair-research/internal/sim"
)

var benchOpts struct {
	inputDir      string
	outputFile    string
	configFile    string
	maxExpansions int
}

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Run the solver suite over a directory of instances",
	Long: `bench runs every configured solver on every instance file in the input
directory and writes one CSV row per run. Without --config it runs the
default suite: prioritized planning, plain CBS with both splitting
strategies, weighted fair CBS at two fairness weights, and bounded fair
CBS at three stretch bounds.`,
	RunE: runBench,
}

func init() {
	f := benchCmd.Flags()
	f.StringVar(&benchOpts.inputDir, "input", "testdata/instances", "directory of instance files")
	f.StringVar(&benchOpts.outputFile, "output", "results/benchmark.csv", "output CSV file")
	f.StringVar(&benchOpts.configFile, "config", "", "YAML experiment config (overrides the default suite)")
	f.IntVar(&benchOpts.maxExpansions, "max-expansions", 50000, "per-run node expansion budget (0 = unlimited)")
}

// defaultSuite is the standard experiment grid.
func defaultSuite() []solverSpec {
	return []solverSpec{
		{Name: "Prioritized", Solver: "prioritized"},
		{Name: "CBS-standard", Solver: "cbs"},
		{Name: "CBS-disjoint", Solver: "cbs", Disjoint: true},
		{Name: "FairCBS-w10", Solver: "fair", Alpha: 1, Beta: 10},
		{Name: "FairCBS-w50", Solver: "fair", Alpha: 1, Beta: 50},
		{Name: "FairCBS-b2.0", Solver: "fair", Alpha: 1, Bound: 2.0},
		{Name: "FairCBS-b1.5", Solver: "fair", Alpha: 1, Bound: 1.5},
		{Name: "FairCBS-b1.2", Solver: "fair", Alpha: 1, Bound: 1.2},
	}
}

type benchConfig struct {
	Experiments []solverSpec `yaml:"experiments"`
}

func loadSuite(path string) ([]solverSpec, error) {
	if path == "" {
		return defaultSuite(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg benchConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if len(cfg.Experiments) == 0 {
		return nil, fmt.Errorf("%s defines no experiments", path)
	}
	for i := range cfg.Experiments {
		if cfg.Experiments[i].Name == "" {
			cfg.Experiments[i].Name = cfg.Experiments[i].Solver
		}
	}
	return cfg.Experiments, nil
}

// benchResult is one CSV row.
type benchResult struct {
	Timestamp  string
	GoVersion  string
	OS         string
	Arch       string
	Instance   string
	NumAgents  int
	GridSize   string
	Solver     string
	Success    bool
	Error      string
	RuntimeMs  float64
	SOC        int
	Makespan   int
	MaxStretch float64
	AvgStretch float64
	Generated  int
	Expanded   int
}

func runBench(cmd *cobra.Command, args []string) error {
	log := logrus.StandardLogger()

	suite, err := loadSuite(benchOpts.configFile)
	if err != nil {
		return err
	}

	files, err := filepath.Glob(filepath.Join(benchOpts.inputDir, "*.txt"))
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no instance files in %s (generate some with: mapffair gen)", benchOpts.inputDir)
	}
	sort.Strings(files)

	log.WithFields(logrus.Fields{
		"instances": len(files),
		"solvers":   len(suite),
		"runs":      len(files) * len(suite),
	}).Info("starting benchmark")

	var results []benchResult
	for _, file := range files {
		inst, err := core.LoadInstance(file)
		if err != nil {
			log.WithError(err).WithField("file", file).Warn("skipping instance")
			continue
		}
		for _, spec := range suite {
			r := runOne(log, file, inst, spec)
			results = append(results, r)
		}
	}

	if err := writeCSV(benchOpts.outputFile, results); err != nil {
		return err
	}
	log.WithField("file", benchOpts.outputFile).Info("results written")

	printSummary(results)
	return nil
}

func runOne(log *logrus.Logger, file string, inst *core.Instance, spec solverSpec) benchResult {
	r := benchResult{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		GoVersion: runtime.Version(),
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
		Instance:  filepath.Base(file),
		NumAgents: inst.NumAgents(),
		GridSize:  fmt.Sprintf("%dx%d", inst.Map.Rows(), inst.Map.Cols()),
		Solver:    spec.Name,
	}

	if spec.MaxExpansions == 0 {
		spec.MaxExpansions = benchOpts.maxExpansions
	}
	solver, err := buildSolver(spec)
	if err != nil {
		r.Error = err.Error()
		return r
	}

	entry := log.WithFields(logrus.Fields{"instance": r.Instance, "solver": spec.Name})
	entry.Debug("running")

	start := time.Now()
	sol, err := solver.Solve(inst)
	r.RuntimeMs = float64(time.Since(start).Microseconds()) / 1000.0

	if err != nil {
		r.Error = errKind(err)
		entry.WithField("error", r.Error).Debug("failed")
		return r
	}

	if verr := sim.New(inst, sol.Paths).Verify(); verr != nil {
		r.Error = "invalid_solution"
		entry.WithError(verr).Error("solver returned an invalid solution")
		return r
	}

	r.Success = true
	r.SOC = sol.SOC
	r.Makespan = sol.Makespan
	r.MaxStretch = sol.MaxStretch
	r.AvgStretch = sol.AvgStretch
	switch s := solver.(type) {
	case *algo.CBS:
		r.Generated, r.Expanded = s.Stats.Generated, s.Stats.Expanded
	case *algo.FairCBS:
		r.Generated, r.Expanded = s.Stats.Generated, s.Stats.Expanded
	}
	entry.WithFields(logrus.Fields{
		"soc":         r.SOC,
		"max_stretch": fmt.Sprintf("%.3f", r.MaxStretch),
		"runtime_ms":  fmt.Sprintf("%.2f", r.RuntimeMs),
	}).Debug("solved")
	return r
}

// errKind maps terminal solve errors to stable CSV labels.
func errKind(err error) string {
	switch {
	case errors.Is(err, algo.ErrNoInitialPath):
		return "no_initial_path"
	case errors.Is(err, algo.ErrBoundInfeasible):
		return "bound_infeasible"
	case errors.Is(err, algo.ErrSearchExhausted):
		return "exhausted"
	case errors.Is(err, algo.ErrExpansionLimit):
		return "expansion_limit"
	default:
		return "error"
	}
}

func writeCSV(path string, results []benchResult) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{
		"timestamp", "go_version", "os", "arch",
		"instance", "num_agents", "grid_size", "solver",
		"success", "error", "runtime_ms",
		"soc", "makespan", "max_stretch", "avg_stretch",
		"generated", "expanded",
	}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, r := range results {
		row := []string{
			r.Timestamp, r.GoVersion, r.OS, r.Arch,
			r.Instance, fmt.Sprintf("%d", r.NumAgents), r.GridSize, r.Solver,
			fmt.Sprintf("%t", r.Success), r.Error, fmt.Sprintf("%.3f", r.RuntimeMs),
			fmt.Sprintf("%d", r.SOC), fmt.Sprintf("%d", r.Makespan),
			fmt.Sprintf("%.4f", r.MaxStretch), fmt.Sprintf("%.4f", r.AvgStretch),
			fmt.Sprintf("%d", r.Generated), fmt.Sprintf("%d", r.Expanded),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return w.Error()
}

func printSummary(results []benchResult) {
	type agg struct {
		runs, successes int
		runtimeMs       float64
		soc             int
		maxStretch      float64
	}
	bySolver := make(map[string]*agg)
	for _, r := range results {
		a, ok := bySolver[r.Solver]
		if !ok {
			a = &agg{}
			bySolver[r.Solver] = a
		}
		a.runs++
		if r.Success {
			a.successes++
			a.runtimeMs += r.RuntimeMs
			a.soc += r.SOC
			a.maxStretch += r.MaxStretch
		}
	}

	var names []string
	for name := range bySolver {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Println("\n=== BENCHMARK SUMMARY ===")
	fmt.Printf("%-16s %6s %8s %13s %8s %12s\n",
		"Solver", "Runs", "Success", "Avg Time(ms)", "Avg SOC", "Avg MaxStr")
	fmt.Println(strings.Repeat("-", 68))
	for _, name := range names {
		a := bySolver[name]
		avgTime, avgSOC, avgStretch := 0.0, 0.0, 0.0
		if a.successes > 0 {
			avgTime = a.runtimeMs / float64(a.successes)
			avgSOC = float64(a.soc) / float64(a.successes)
			avgStretch = a.maxStretch / float64(a.successes)
		}
		fmt.Printf("%-16s %6d %8d %13.2f %8.1f %12.3f\n",
			name, a.runs, a.successes, avgTime, avgSOC, avgStretch)
	}
}
