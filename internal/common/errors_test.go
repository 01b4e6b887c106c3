package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFailure_IsMatchesKindAndCause(t *testing.T) {
	cause := errors.New("dial tcp: refused")
	f := NewFailure(ErrConnectivity, "cannot reach server", cause)

	require.ErrorIs(t, f, ErrConnectivity)
	require.ErrorIs(t, f, cause)
	assert.NotErrorIs(t, f, ErrUnauthorized)
	assert.Equal(t, "cannot reach server: dial tcp: refused", f.Error())
}

func TestFailure_WrappedStillMatches(t *testing.T) {
	err := fmt.Errorf("generate: %w", Precondition("upload a video first"))

	require.ErrorIs(t, err, ErrPreconditionFailed)
	assert.Equal(t, "upload a video first", Message(err))
}

func TestMessage_PlainError(t *testing.T) {
	assert.Equal(t, "boom", Message(errors.New("boom")))
	assert.Equal(t, "", Message(nil))
}
