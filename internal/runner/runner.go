// Package runner executes benchmark x algorithm pairs over a bounded worker
// pool and aggregates per-pair results. Each pair evaluates serially inside
// its own control loop; concurrency exists only between pairs, which is safe
// because every pair gets a fresh optimizer instance.
package runner

import (
	"context"
	"os"
	"sync"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/copyleftdev/STEPPE/internal/benchmark"
	"github.com/copyleftdev/STEPPE/internal/logging"
	"github.com/copyleftdev/STEPPE/internal/optimization"
)

// Algorithm names a search algorithm and constructs fresh instances of it.
// The constructor runs once per pair so no optimizer state is ever shared
// between concurrently running loops.
type Algorithm struct {
	Name string
	New  func() optimization.Optimizer
}

// Result is the outcome of one benchmark x algorithm pair.
type Result struct {
	Benchmark string
	Algorithm string

	// Trace is the per-trial objective trace, zero-filled past an early
	// stop. Nil when the pair failed.
	Trace []float64

	// Best and Mean summarise the trace including its zero fill, matching
	// what the CSV output carries.
	Best          float64
	BestIteration int
	Mean          float64

	Duration time.Duration

	// Err records why the pair produced no trace, such as an
	// unsupported-kind rejection from grid search. A failed pair does not
	// abort the suite.
	Err error
}

// Runner drives suites of benchmark x algorithm pairs.
type Runner struct {
	logger     *logging.Logger
	iterations int
	workers    int
}

// New creates a runner. A nil logger falls back to stderr at info level;
// iterations and workers are clamped to at least one.
func New(logger *logging.Logger, iterations, workers int) *Runner {
	if logger == nil {
		logger = logging.New(logging.InfoLevel, os.Stderr)
	}
	if iterations < 1 {
		iterations = 1
	}
	if workers < 1 {
		workers = 1
	}
	return &Runner{logger: logger, iterations: iterations, workers: workers}
}

// RunPair executes one control loop and wraps the trace in a Result.
func (r *Runner) RunPair(bench benchmark.Benchmark, alg Algorithm) Result {
	res := Result{
		Benchmark: bench.Name(),
		Algorithm: alg.Name,
	}

	start := time.Now()
	trace, err := optimization.Loop(bench, alg.New(), r.iterations)
	res.Duration = time.Since(start)

	if err != nil {
		res.Err = err
		return res
	}

	res.Trace = trace
	res.BestIteration = floats.MinIdx(trace)
	res.Best = trace[res.BestIteration]
	res.Mean = stat.Mean(trace, nil)
	return res
}

// RunSuite fans every benchmark x algorithm pair over the worker pool and
// returns results in deterministic (benchmark, algorithm) declaration order.
// Cancelling ctx stops pairs that have not started; running pairs finish
// their loop.
func (r *Runner) RunSuite(ctx context.Context, benches []benchmark.Benchmark, algs []Algorithm) []Result {
	type pair struct {
		bench benchmark.Benchmark
		alg   Algorithm
	}

	pairs := make([]pair, 0, len(benches)*len(algs))
	for _, b := range benches {
		for _, a := range algs {
			pairs = append(pairs, pair{bench: b, alg: a})
		}
	}

	results := make([]Result, len(pairs))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < r.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				p := pairs[idx]

				if err := ctx.Err(); err != nil {
					results[idx] = Result{
						Benchmark: p.bench.Name(),
						Algorithm: p.alg.Name,
						Err:       err,
					}
					continue
				}

				res := r.RunPair(p.bench, p.alg)
				results[idx] = res

				if res.Err != nil {
					r.logger.Warn("pair failed", map[string]interface{}{
						"benchmark": res.Benchmark,
						"algorithm": res.Algorithm,
						"error":     res.Err.Error(),
					})
					continue
				}
				r.logger.Info("pair completed", map[string]interface{}{
					"benchmark":   res.Benchmark,
					"algorithm":   res.Algorithm,
					"best":        res.Best,
					"best_iter":   res.BestIteration,
					"duration_ms": res.Duration.Milliseconds(),
				})
			}
		}()
	}

	for i := range pairs {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return results
}
