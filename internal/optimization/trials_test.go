package optimization

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/copyleftdev/STEPPE/internal/values"
)

func TestTrialSetZeroValue(t *testing.T) {
	var ts TrialSet

	assert.Equal(t, 0, ts.Len())
	assert.Nil(t, ts.Get(1))
	assert.False(t, ts.Remove(1))

	ts.Add(1, values.NewNode("params"))
	assert.Equal(t, 1, ts.Len())
}

func TestTrialSetReplaceOnDuplicateID(t *testing.T) {
	var ts TrialSet

	first := values.NewNode("first")
	second := values.NewNode("second")

	ts.Add(7, first)
	ts.Add(7, second)

	// A resubmitted id replaces the entry; the superseded tree is released.
	assert.Equal(t, 1, ts.Len())
	assert.Same(t, second, ts.Get(7))
}

func TestTrialSetRemove(t *testing.T) {
	var ts TrialSet

	ts.Add(0, values.NewNode("a"))
	ts.Add(1, values.NewNode("b"))

	assert.True(t, ts.Remove(0))
	assert.False(t, ts.Remove(0), "removing an unknown id is a no-op")
	assert.Equal(t, 1, ts.Len())

	ts.Clear()
	assert.Equal(t, 0, ts.Len())
	assert.Nil(t, ts.Get(1))
}
