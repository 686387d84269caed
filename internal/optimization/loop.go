package optimization

import (
	"github.com/copyleftdev/STEPPE/internal/benchmark"
)

// Step runs a single trial: generate parameters under id, evaluate them, and
// deliver the result. ok is false when the optimizer signalled exhaustion, in
// which case nothing was evaluated.
func Step(bench benchmark.Benchmark, opt Optimizer, id int) (value float64, ok bool, err error) {
	params := opt.GenerateParameters(id)
	if params == nil {
		return 0, false, nil
	}

	value, err = bench.Evaluate(params)
	if err != nil {
		return 0, true, err
	}

	opt.ReceiveTrialResults(id, params, value)
	return value, true, nil
}

// Loop drives opt against bench for up to maxIterations trials and returns
// the per-trial trace of objective values. The trace always has length
// maxIterations; entries past an early stop keep their zero fill. The
// optimizer's Clear always runs before Loop returns, so the instance can be
// reused for an independent run.
func Loop(bench benchmark.Benchmark, opt Optimizer, maxIterations int) ([]float64, error) {
	trace := make([]float64, maxIterations)

	if err := opt.UpdateSearchSpace(bench.SearchSpace()); err != nil {
		return nil, err
	}
	defer opt.Clear()

	for i := 0; i < maxIterations; i++ {
		value, ok, err := Step(bench, opt, i)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		trace[i] = value
	}

	return trace, nil
}
