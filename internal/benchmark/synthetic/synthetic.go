// Package synthetic provides a representative subset of the Jamil & Yang
// catalogue of synthetic objective functions. Each function carries its box
// bounds as a search space, its known optimum for regression checks, and a
// property bitmask describing its shape.
package synthetic

import (
	"strconv"

	"github.com/copyleftdev/STEPPE/internal/benchmark"
	"github.com/copyleftdev/STEPPE/internal/space"
	"github.com/copyleftdev/STEPPE/internal/values"
)

// Property is a bitmask describing a function's shape.
type Property uint16

const (
	Continuous Property = 1 << iota
	Differentiable
	Separable
	Scalable
	Multimodal
	Convex
)

// Has reports whether all bits in p are set.
func (pr Property) Has(p Property) bool { return pr&p == p }

// Function is one synthetic objective over a fixed-arity float vector. Its
// dimensions are named "0".."d-1", the convention positional value access
// resolves through.
type Function struct {
	name      string
	dims      int
	space     space.Space
	props     Property
	optimum   float64
	optimumAt []float64
	eval      func(x []float64) float64
}

// newBox creates a function whose every dimension shares the same bounds.
func newBox(name string, dims int, lower, upper float64, props Property,
	optimum float64, optimumAt []float64, eval func(x []float64) float64) *Function {

	ss := make(space.Space, dims)
	for i := range ss {
		ss[i] = space.NewUniform(strconv.Itoa(i), lower, upper)
	}
	return &Function{
		name:      name,
		dims:      dims,
		space:     ss,
		props:     props,
		optimum:   optimum,
		optimumAt: optimumAt,
		eval:      eval,
	}
}

// newManual creates a function over an explicitly constructed space, for
// functions with asymmetric per-dimension bounds.
func newManual(name string, ss space.Space, props Property,
	optimum float64, optimumAt []float64, eval func(x []float64) float64) *Function {

	return &Function{
		name:      name,
		dims:      len(ss),
		space:     ss,
		props:     props,
		optimum:   optimum,
		optimumAt: optimumAt,
		eval:      eval,
	}
}

// Name identifies the function in registries and result files.
func (f *Function) Name() string { return f.name }

// Dims returns the arity of the input vector.
func (f *Function) Dims() int { return f.dims }

// Properties returns the shape bitmask.
func (f *Function) Properties() Property { return f.props }

// SearchSpace returns the function's box bounds as a search space. The space
// is owned by the function and must not be modified.
func (f *Function) SearchSpace() space.Space { return f.space }

// Evaluate validates params against the function's own space and scores the
// extracted vector. A malformed tree is reported as the mismatch error, never
// read.
func (f *Function) Evaluate(params *values.Node) (float64, error) {
	if err := space.Validate(f.space, params); err != nil {
		return 0, err
	}
	return f.eval(f.vector(params)), nil
}

// vector extracts the positional float vector. Callers run Validate first.
func (f *Function) vector(params *values.Node) []float64 {
	x := make([]float64, f.dims)
	for i := range x {
		x[i] = params.GetFloatAt(i)
	}
	return x
}

// OptimumValue returns the known global minimum.
func (f *Function) OptimumValue() float64 { return f.optimum }

// OptimumParams returns parameters that evaluate to the optimum, or nil when
// no exact location is documented.
func (f *Function) OptimumParams() *values.Node {
	if f.optimumAt == nil {
		return nil
	}
	root := values.NewNode("parameters")
	for i, v := range f.optimumAt {
		root.Add(values.NewFloat(strconv.Itoa(i), v))
	}
	return root
}

var _ benchmark.Benchmark = (*Function)(nil)
var _ benchmark.Reference = (*Function)(nil)
