package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapPreservesSentinel(t *testing.T) {
	err := Wrap(ErrWorkspaceUnavailable, "ping failed")

	assert.True(t, Is(err, ErrWorkspaceUnavailable))
	assert.Equal(t, "ping failed: workspace api unavailable", err.Error())
}

func TestWrapfFormatsContext(t *testing.T) {
	err := Wrapf(ErrUnknownTool, "%s", "drop_workspace")

	assert.True(t, Is(err, ErrUnknownTool))
	assert.Equal(t, "drop_workspace: unknown tool", err.Error())
}

func TestWrapNilIsNil(t *testing.T) {
	assert.Nil(t, Wrap(nil, "context"))
	assert.Nil(t, Wrapf(nil, "context %d", 1))
}
