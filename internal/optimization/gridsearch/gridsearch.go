// Package gridsearch exhaustively enumerates the finite cross-product of a
// search space: every combination exactly once, in the stable order fixed by
// parameter declaration order, with a terminal signal once the product is
// spent. Continuous distributions have no finite enumeration and are rejected
// when the space is installed.
package gridsearch

import (
	"github.com/copyleftdev/STEPPE/internal/optimization"
	"github.com/copyleftdev/STEPPE/internal/space"
	"github.com/copyleftdev/STEPPE/internal/values"
)

// Name is the identifier used in registries, result files and the CLI.
const Name = "grid_search"

// Optimizer walks the cross-product with a mixed-radix odometer over the
// unpacked space. Not safe for use from multiple goroutines; run one instance
// per concurrent loop.
type Optimizer struct {
	optimization.TrialSet

	root      *pspace
	exhausted bool
	best      *optimization.Trial
}

// New creates a grid-search optimizer. It holds no state until a space is
// installed.
func New() *Optimizer {
	return &Optimizer{exhausted: true}
}

// Name returns the algorithm identifier.
func (o *Optimizer) Name() string { return Name }

// UpdateSearchSpace unpacks ss into the enumerable pspace form, resetting all
// enumeration and best-trial state. It fails with an unsupported-kind error
// when ss contains a parameter without a finite value set; the optimizer then
// stays exhausted.
func (o *Optimizer) UpdateSearchSpace(ss space.Space) error {
	o.TrialSet.Clear()
	o.best = nil
	o.root = nil
	o.exhausted = true

	root, err := unpack("parameters", ss)
	if err != nil {
		return err
	}

	o.root = root
	// A space holding an empty candidate list has zero combinations and is
	// exhausted before the first call.
	o.exhausted = root.count() == 0
	return nil
}

// GenerateParameters emits the current combination and advances the odometer.
// It returns nil once every combination has been produced; the control loop
// treats that as the stop signal regardless of remaining budget.
func (o *Optimizer) GenerateParameters(id int) *values.Node {
	if o.exhausted {
		return nil
	}

	root := values.NewNode(o.root.name)
	o.root.emit(root)
	if o.root.advance() {
		o.exhausted = true
	}

	o.Add(id, root)
	return root
}

// ReceiveTrialResults releases the trial retained under id and keeps the
// (params, value) pair with the smallest value seen so far, dropping
// superseded ones. Unknown ids are ignored.
func (o *Optimizer) ReceiveTrialResults(id int, params *values.Node, value float64) {
	o.Remove(id)

	if o.best == nil || value < o.best.Value {
		o.best = &optimization.Trial{ID: id, Params: params, Value: value}
	}
}

// BestTrial returns the lowest-valued trial delivered so far, or nil before
// the first result.
func (o *Optimizer) BestTrial() *optimization.Trial {
	return o.best
}

// Clear releases retained trials and the best-trial record and rewinds the
// enumeration, so the instance can be reused for an independent run over the
// same space.
func (o *Optimizer) Clear() {
	o.TrialSet.Clear()
	o.best = nil
	if o.root != nil {
		o.root.reset()
		o.exhausted = o.root.count() == 0
	}
}
