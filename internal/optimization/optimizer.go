// Package optimization defines the protocol search algorithms implement and
// the control loop that drives them against a benchmark.
package optimization

import (
	"github.com/copyleftdev/STEPPE/internal/space"
	"github.com/copyleftdev/STEPPE/internal/values"
)

// Optimizer is the lifecycle every search algorithm implements. The driving
// loop calls UpdateSearchSpace once per run, then alternates
// GenerateParameters and ReceiveTrialResults until the iteration budget runs
// out or the algorithm signals exhaustion, and finishes with Clear.
//
// An Optimizer is single-threaded: one instance must not be shared between
// concurrently running loops.
type Optimizer interface {
	// UpdateSearchSpace installs the space subsequent trials are drawn
	// from, resetting any enumeration state. Algorithms reject spaces they
	// cannot search, such as continuous distributions handed to an
	// exhaustive enumerator.
	UpdateSearchSpace(ss space.Space) error

	// GenerateParameters returns the next candidate assignment for the
	// given trial id, or nil once the algorithm has exhausted its search.
	// The returned tree is retained under id until ReceiveTrialResults or
	// Clear releases it.
	GenerateParameters(id int) *values.Node

	// ReceiveTrialResults delivers the evaluation result for a previously
	// generated trial, releasing the retained tree. Unknown ids are
	// ignored so callers may deliver defensively.
	ReceiveTrialResults(id int, params *values.Node, value float64)

	// Clear resets all per-run state, releasing any undelivered trials.
	Clear()
}

// Trial pairs a generated assignment with its evaluated objective value.
type Trial struct {
	ID     int
	Params *values.Node
	Value  float64
}
