package helpers

import (
	"errors"
	"io"
	"testing"

	"stock-dashboard/src/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietHandler() *ErrorHandler {
	h := NewErrorHandler(logger.NewLoggerWithWriter(nil, "ErrorHandler", io.Discard))
	h.baseDelay = 0
	return h
}

func TestExecuteWithRetryEventuallySucceeds(t *testing.T) {
	h := quietHandler()
	calls := 0
	err := h.ExecuteWithRetry("storage initialize", func() error {
		calls++
		if calls < 3 {
			return errors.New("not yet")
		}
		return nil
	}, 3)

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
	assert.Equal(t, 0, h.ErrorCount())
}

func TestExecuteWithRetryWrapsByKind(t *testing.T) {
	h := quietHandler()
	cause := errors.New("connection refused")

	err := h.ExecuteWithRetry("database initialize", func() error { return cause }, 2)
	require.Error(t, err)

	var dbErr *DatabaseError
	require.True(t, errors.As(err, &dbErr))
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, 1, h.ErrorCount())
}

func TestHandleCountsErrors(t *testing.T) {
	h := quietHandler()
	h.Handle(nil, "noop")
	h.Handle(errors.New("boom"), "notify")
	assert.Equal(t, 1, h.ErrorCount())

	h.ResetErrorCount()
	assert.Equal(t, 0, h.ErrorCount())
}

func TestIsValidation(t *testing.T) {
	assert.True(t, IsValidation(NewValidationError("bad theme %q", "blue")))
	assert.False(t, IsValidation(NewNetworkError("down", nil)))
	assert.Equal(t, "send failed: eof", NewNotificationError("send failed", errors.New("eof")).Error())
}
