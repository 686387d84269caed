package errors

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCapturesStack(t *testing.T) {
	err := New("boom").WithOperation("run").WithComponent("runner")

	assert.Contains(t, err.Error(), "boom")
	assert.Contains(t, err.Error(), "operation=run")
	assert.Contains(t, err.Error(), "component=runner")
	assert.NotEmpty(t, err.StackTrace())
}

func TestWrapPreservesChain(t *testing.T) {
	inner := stderrors.New("disk full")
	err := Wrap(inner, "writing results failed")

	require.NotNil(t, err)
	assert.True(t, Is(err, inner))
	assert.Equal(t, inner, Unwrap(err))

	var e *Error
	assert.True(t, As(err, &e))
	assert.Equal(t, "writing results failed", e.Message)
}

func TestWrapNil(t *testing.T) {
	assert.Nil(t, Wrap(nil, "nothing"))
	assert.Nil(t, Wrapf(nil, "nothing %d", 1))
}

func TestWrapExistingErrorKeepsStack(t *testing.T) {
	original := Errorf("original %s", "failure")
	stack := original.StackTrace()

	wrapped := Wrap(original, "outer context")
	assert.Equal(t, stack, wrapped.StackTrace(), "wrapping an *Error preserves its trace")
	assert.Equal(t, "outer context", wrapped.Message)
}
