// Package randomsearch implements the baseline search algorithm: every trial
// is an independent, unconstrained draw from the search space. There is no
// history between calls and no exhaustion signal; the control loop's
// iteration budget is the only stopping condition.
package randomsearch

import (
	"time"

	"golang.org/x/exp/rand"

	"github.com/copyleftdev/STEPPE/internal/optimization"
	"github.com/copyleftdev/STEPPE/internal/space"
	"github.com/copyleftdev/STEPPE/internal/values"
)

// Name is the identifier used in registries, result files and the CLI.
const Name = "random_search"

// Optimizer draws one complete assignment per trial. Not safe for use from
// multiple goroutines; run one instance per concurrent loop.
type Optimizer struct {
	optimization.TrialSet

	space space.Space
	rng   *rand.Rand
}

// New creates a random-search optimizer. Seed 0 derives the seed from the
// wall clock, so independent runs explore differently by default.
func New(seed uint64) *Optimizer {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &Optimizer{rng: rand.New(rand.NewSource(seed))}
}

// Name returns the algorithm identifier.
func (o *Optimizer) Name() string { return Name }

// UpdateSearchSpace installs the space subsequent trials are drawn from.
// Random search accepts every parameter kind.
func (o *Optimizer) UpdateSearchSpace(ss space.Space) error {
	o.space = ss
	return nil
}

// GenerateParameters draws one complete assignment. It always succeeds: the
// returned tree is retained under id until its result arrives or Clear runs.
func (o *Optimizer) GenerateParameters(id int) *values.Node {
	root := values.NewNode("parameters")
	for _, p := range o.space {
		root.Add(sample(p, o.rng))
	}
	o.Add(id, root)
	return root
}

// ReceiveTrialResults releases the tree retained under id. Random search
// keeps no further state per trial; unknown ids are ignored.
func (o *Optimizer) ReceiveTrialResults(id int, params *values.Node, value float64) {
	o.Remove(id)
}

// sample resolves one parameter to a concrete value. A choice is resolved
// structurally: one option is picked uniformly and the entire chosen subtree
// is expanded inside a node named after the choice, exactly as if the option
// were its own sub-space. The branch index itself is never recorded.
func sample(p space.Param, rng *rand.Rand) values.Value {
	switch sp := p.(type) {
	case *space.Categorical[int]:
		return values.NewInt(sp.Name(), sp.Sample(rng))
	case *space.Categorical[float64]:
		return values.NewFloat(sp.Name(), sp.Sample(rng))
	case *space.Categorical[string]:
		return values.NewStr(sp.Name(), sp.Sample(rng))
	case *space.RandInt:
		return values.NewInt(sp.Name(), sp.Sample(rng))
	case *space.Uniform:
		return values.NewFloat(sp.Name(), sp.Sample(rng))
	case *space.QUniform:
		return values.NewFloat(sp.Name(), sp.Sample(rng))
	case *space.LogUniform:
		return values.NewFloat(sp.Name(), sp.Sample(rng))
	case *space.QLogUniform:
		return values.NewFloat(sp.Name(), sp.Sample(rng))
	case *space.Normal:
		return values.NewFloat(sp.Name(), sp.Sample(rng))
	case *space.QNormal:
		return values.NewFloat(sp.Name(), sp.Sample(rng))
	case *space.LogNormal:
		return values.NewFloat(sp.Name(), sp.Sample(rng))
	case *space.QLogNormal:
		return values.NewFloat(sp.Name(), sp.Sample(rng))
	case *space.Choice:
		opt := sp.Options()[rng.Intn(sp.Count())]
		nested := values.NewNode(sp.Name())
		nested.Add(sample(opt, rng))
		return nested
	default:
		panic("randomsearch: unknown parameter kind")
	}
}
