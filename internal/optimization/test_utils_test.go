package optimization

import (
	"github.com/copyleftdev/STEPPE/internal/space"
	"github.com/copyleftdev/STEPPE/internal/values"
)

// quadraticBench is a two-dimensional sum-of-squares objective used
// throughout the loop tests.
type quadraticBench struct {
	evaluations int
}

func (b *quadraticBench) Name() string { return "quadratic" }

func (b *quadraticBench) SearchSpace() space.Space {
	return space.Space{
		space.NewUniform("0", -5, 5),
		space.NewUniform("1", -5, 5),
	}
}

func (b *quadraticBench) Evaluate(params *values.Node) (float64, error) {
	if err := space.Validate(b.SearchSpace(), params); err != nil {
		return 0, err
	}
	b.evaluations++
	x := params.GetFloatAt(0)
	y := params.GetFloatAt(1)
	return x*x + y*y, nil
}

// scriptedOptimizer emits a fixed assignment a limited number of times, then
// signals exhaustion. It records the protocol calls it receives.
type scriptedOptimizer struct {
	TrialSet

	budget    int
	emit      func(id int) *values.Node
	generated int
	received  []Trial
	updates   int
	cleared   int
	updateErr error
}

func constantParams(x, y float64) func(id int) *values.Node {
	return func(int) *values.Node {
		root := values.NewNode("params")
		root.Add(values.NewFloat("0", x))
		root.Add(values.NewFloat("1", y))
		return root
	}
}

func (o *scriptedOptimizer) UpdateSearchSpace(ss space.Space) error {
	o.updates++
	return o.updateErr
}

func (o *scriptedOptimizer) GenerateParameters(id int) *values.Node {
	if o.generated >= o.budget {
		return nil
	}
	o.generated++
	params := o.emit(id)
	o.Add(id, params)
	return params
}

func (o *scriptedOptimizer) ReceiveTrialResults(id int, params *values.Node, value float64) {
	o.Remove(id)
	o.received = append(o.received, Trial{ID: id, Params: params, Value: value})
}

func (o *scriptedOptimizer) Clear() {
	o.TrialSet.Clear()
	o.cleared++
}
