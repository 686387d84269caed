package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/copyleftdev/STEPPE/internal/benchmark"
	"github.com/copyleftdev/STEPPE/internal/benchmark/synthetic"
	"github.com/copyleftdev/STEPPE/internal/config"
	"github.com/copyleftdev/STEPPE/internal/optimization"
	"github.com/copyleftdev/STEPPE/internal/optimization/gridsearch"
	"github.com/copyleftdev/STEPPE/internal/optimization/randomsearch"
	"github.com/copyleftdev/STEPPE/internal/runner"
	"github.com/copyleftdev/STEPPE/internal/store"
)

var (
	runBenchmark  string
	runAlgorithms []string
	runIterations int
	runThreads    int
	runOutputDir  string
	runSeed       uint64
	runTraces     bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the benchmark suite and write convergence traces",
	Long: `Runs every selected benchmark x algorithm pair, writes the combined
convergence traces as a CSV summary, and optionally a JSONL trace per pair.`,
	RunE: runSuite,
}

func init() {
	runCmd.Flags().StringVarP(&runBenchmark, "benchmark", "b", "all", "Benchmark to run, or \"all\"")
	runCmd.Flags().StringSliceVarP(&runAlgorithms, "algorithm", "a",
		[]string{randomsearch.Name, gridsearch.Name}, "Algorithms to run (repeatable)")
	runCmd.Flags().IntVarP(&runIterations, "iterations", "i",
		config.GetEnvAsInt("RUN_ITERATIONS", 20000), "Trial budget per pair")
	runCmd.Flags().IntVarP(&runThreads, "threads", "t",
		config.GetEnvAsInt("RUN_WORKERS", 4), "Concurrent pairs")
	runCmd.Flags().StringVarP(&runOutputDir, "output", "o",
		config.GetEnv("RUN_OUTPUT_DIR", "outputs"), "Output directory")
	runCmd.Flags().Uint64Var(&runSeed, "seed", 0, "Seed for stochastic algorithms (0 uses the clock)")
	runCmd.Flags().BoolVar(&runTraces, "traces", false, "Also write a JSONL trace per pair")
	rootCmd.AddCommand(runCmd)
}

// newAlgorithm resolves an algorithm name to a constructor for fresh
// instances, so concurrent pairs never share optimizer state.
func newAlgorithm(name string, seed uint64) (runner.Algorithm, error) {
	switch name {
	case randomsearch.Name:
		return runner.Algorithm{
			Name: name,
			New:  func() optimization.Optimizer { return randomsearch.New(seed) },
		}, nil
	case gridsearch.Name:
		return runner.Algorithm{
			Name: name,
			New:  func() optimization.Optimizer { return gridsearch.New() },
		}, nil
	default:
		return runner.Algorithm{}, fmt.Errorf("unknown algorithm %q", name)
	}
}

func runSuite(cmd *cobra.Command, args []string) error {
	suite := synthetic.Suite()

	var benches []benchmark.Benchmark
	if runBenchmark == "all" {
		benches = suite.All()
	} else {
		b, ok := suite.Get(runBenchmark)
		if !ok {
			return fmt.Errorf("unknown benchmark %q (see \"steppe list\")", runBenchmark)
		}
		benches = []benchmark.Benchmark{b}
	}

	algs := make([]runner.Algorithm, 0, len(runAlgorithms))
	for _, name := range runAlgorithms {
		alg, err := newAlgorithm(name, runSeed)
		if err != nil {
			return err
		}
		algs = append(algs, alg)
	}

	logger.Info("starting suite", map[string]interface{}{
		"benchmarks": len(benches),
		"algorithms": len(algs),
		"iterations": runIterations,
		"threads":    runThreads,
	})

	r := runner.New(logger, runIterations, runThreads)
	results := r.RunSuite(cmd.Context(), benches, algs)

	rows := make([]store.ResultRow, 0, len(results))
	failed := 0
	for _, res := range results {
		if res.Err != nil {
			failed++
			continue
		}
		rows = append(rows, store.ResultRow{
			Benchmark: res.Benchmark,
			Optimizer: res.Algorithm,
			Trace:     res.Trace,
		})
	}

	csvPath := filepath.Join(runOutputDir, fmt.Sprintf("results-%d.csv", time.Now().Unix()))
	if err := store.WriteCSV(csvPath, rows); err != nil {
		return err
	}

	if runTraces {
		if err := writeTraces(results); err != nil {
			return err
		}
	}

	for _, res := range results {
		if res.Err != nil {
			fmt.Printf("%-14s %-14s FAILED: %v\n", res.Benchmark, res.Algorithm, res.Err)
			continue
		}
		fmt.Printf("%-14s %-14s best=%-14.6g mean=%-14.6g %s\n",
			res.Benchmark, res.Algorithm, res.Best, res.Mean, res.Duration.Round(time.Millisecond))
	}
	fmt.Printf("Wrote %s (%d pairs, %d failed)\n", csvPath, len(results), failed)

	return nil
}

func writeTraces(results []runner.Result) error {
	for _, res := range results {
		if res.Err != nil {
			continue
		}

		tw, err := store.NewTraceWriter(runOutputDir, res.Benchmark+"-"+res.Algorithm)
		if err != nil {
			return err
		}
		now := time.Now()
		for i, v := range res.Trace {
			if err := tw.Write(store.TraceEntry{Iteration: i, Value: v, Timestamp: now}); err != nil {
				tw.Close()
				return err
			}
		}
		if err := tw.Close(); err != nil {
			return err
		}
	}
	return nil
}
