package mediawiki

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetryWithBackoff_EventualSuccess(t *testing.T) {
	attempts := 0
	err := RetryWithBackoff(context.Background(), func() error {
		attempts++
		if attempts < 3 {
			return errors.New("connection reset")
		}
		return nil
	}, 5, time.Millisecond)

	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
}

func TestRetryWithBackoff_ReturnsLastError(t *testing.T) {
	attempts := 0
	err := RetryWithBackoff(context.Background(), func() error {
		attempts++
		return fmt.Errorf("attempt %d", attempts)
	}, 3, time.Millisecond)

	require.Error(t, err)
	assert.Equal(t, "attempt 3", err.Error())
	assert.Equal(t, 3, attempts)
}

func TestRetryWithBackoff_PermanentStopsImmediately(t *testing.T) {
	cause := errors.New("bad request")
	attempts := 0
	err := RetryWithBackoff(context.Background(), func() error {
		attempts++
		return fmt.Errorf("search: %w", Permanent(cause))
	}, 5, time.Millisecond)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, 1, attempts)
}

func TestPermanentNil(t *testing.T) {
	assert.NoError(t, Permanent(nil))
}

func TestRetryWithBackoff_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	attempts := 0
	err := RetryWithBackoff(ctx, func() error {
		attempts++
		if attempts == 2 {
			cancel()
		}
		return errors.New("unavailable")
	}, 10, time.Millisecond)

	assert.ErrorIs(t, err, context.Canceled)
	assert.LessOrEqual(t, attempts, 2)
}

func TestRetryWithBackoff_OperationReturnsContextError(t *testing.T) {
	attempts := 0
	err := RetryWithBackoff(context.Background(), func() error {
		attempts++
		return fmt.Errorf("get: %w", context.DeadlineExceeded)
	}, 5, time.Millisecond)

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 1, attempts)
}

func TestRetryWithBackoff_InvalidMaxAttempts(t *testing.T) {
	for _, n := range []int{0, -1} {
		attempts := 0
		err := RetryWithBackoff(context.Background(), func() error {
			attempts++
			return nil
		}, n, time.Millisecond)

		assert.ErrorIs(t, err, ErrInvalidMaxAttempts)
		assert.Zero(t, attempts)
	}
}
