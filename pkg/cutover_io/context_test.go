package cutover_io

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewContextPopulatesRuntime(t *testing.T) {
	rc := NewContext(context.Background(), "release-cut")

	require.NotNil(t, rc.Ctx)
	require.NotNil(t, rc.Log)
	require.NotNil(t, rc.Span)
	assert.Equal(t, "release-cut", rc.Command)
	assert.False(t, rc.Timestamp.IsZero())
}

func TestHandlePanicConvertsToError(t *testing.T) {
	rc := NewContext(context.Background(), "test")

	var err error
	func() {
		defer rc.HandlePanic(&err)
		panic("boom")
	}()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}

func TestHandlePanicLeavesErrorUntouchedWithoutPanic(t *testing.T) {
	rc := NewContext(context.Background(), "test")

	var err error
	func() {
		defer rc.HandlePanic(&err)
	}()

	assert.NoError(t, err)
}
