package optimization

import (
	"github.com/copyleftdev/STEPPE/internal/values"
)

// TrialSet is the id-keyed retained state shared by optimizer
// implementations: every generated tree is held here until its result
// arrives. The zero value is ready to use.
type TrialSet struct {
	trials map[int]*values.Node
}

// Add retains params under id. Adding to an id that is already present
// replaces the entry; the superseded tree is released.
func (ts *TrialSet) Add(id int, params *values.Node) {
	if ts.trials == nil {
		ts.trials = make(map[int]*values.Node)
	}
	ts.trials[id] = params
}

// Remove releases the tree retained under id and reports whether one was
// present. Removing an unknown id is a no-op.
func (ts *TrialSet) Remove(id int) bool {
	if _, ok := ts.trials[id]; !ok {
		return false
	}
	delete(ts.trials, id)
	return true
}

// Get returns the tree retained under id, or nil.
func (ts *TrialSet) Get(id int) *values.Node {
	return ts.trials[id]
}

// Len returns the number of retained trials.
func (ts *TrialSet) Len() int {
	return len(ts.trials)
}

// Clear drains every retained trial.
func (ts *TrialSet) Clear() {
	ts.trials = nil
}
