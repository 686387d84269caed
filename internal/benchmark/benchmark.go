// Package benchmark defines the contract objective functions expose to the
// optimization loop, and a registry for looking them up by name.
package benchmark

import (
	"fmt"
	"sort"
	"sync"

	"github.com/copyleftdev/STEPPE/internal/space"
	"github.com/copyleftdev/STEPPE/internal/values"
)

// Benchmark is one objective function together with the search space its
// parameters are drawn from.
type Benchmark interface {
	// Name identifies the benchmark in registries and result files.
	Name() string

	// SearchSpace returns the space optimizers draw candidate assignments
	// from. The returned space is owned by the benchmark and must not be
	// modified.
	SearchSpace() space.Space

	// Evaluate scores one assignment. Implementations validate the tree
	// against their own space first and return the mismatch error rather
	// than reading a malformed tree.
	Evaluate(params *values.Node) (float64, error)
}

// Reference is implemented by benchmarks with a known optimum, used for
// regression tests and reporting.
type Reference interface {
	// OptimumValue returns (one of) the known global minima.
	OptimumValue() float64

	// OptimumParams returns parameters that evaluate to the optimum. The
	// set need not be unique for multimodal functions.
	OptimumParams() *values.Node
}

// Registry is a concurrency-safe collection of benchmarks keyed by name.
type Registry struct {
	mu      sync.RWMutex
	benches map[string]Benchmark
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		benches: make(map[string]Benchmark),
	}
}

// Register adds b to the registry. Duplicate names are rejected.
func (r *Registry) Register(b Benchmark) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.benches[b.Name()]; exists {
		return fmt.Errorf("benchmark %q is already registered", b.Name())
	}
	r.benches[b.Name()] = b
	return nil
}

// Get looks up a benchmark by name.
func (r *Registry) Get(name string) (Benchmark, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.benches[name]
	return b, ok
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.benches))
	for name := range r.benches {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// All returns the registered benchmarks in name order.
func (r *Registry) All() []Benchmark {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.benches))
	for name := range r.benches {
		names = append(names, name)
	}
	sort.Strings(names)

	all := make([]Benchmark, 0, len(names))
	for _, name := range names {
		all = append(all, r.benches[name])
	}
	return all
}

// Len returns the number of registered benchmarks.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.benches)
}
