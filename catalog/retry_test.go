package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastPolicy(attempts int) RetryPolicy {
	return RetryPolicy{MaxAttempts: attempts, BaseDelay: time.Millisecond}
}

func TestRetryWithBackoff_EventualSuccess(t *testing.T) {
	attempts := 0
	err := RetryWithBackoff(context.Background(), fastPolicy(5), func(ctx context.Context) error {
		attempts++
		if attempts < 3 {
			return errors.New("temporary error")
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
}

func TestRetryWithBackoff_AllAttemptsFail(t *testing.T) {
	attempts := 0
	expectedErr := errors.New("persistent error")
	err := RetryWithBackoff(context.Background(), fastPolicy(3), func(ctx context.Context) error {
		attempts++
		return expectedErr
	})
	assert.Equal(t, expectedErr, err)
	assert.Equal(t, 3, attempts)
}

func TestRetryWithBackoff_Permanent(t *testing.T) {
	attempts := 0
	cause := errors.New("bad input")
	err := RetryWithBackoff(context.Background(), fastPolicy(5), func(ctx context.Context) error {
		attempts++
		return Permanent(cause)
	})
	assert.Equal(t, cause, err)
	assert.Equal(t, 1, attempts)
	assert.NoError(t, Permanent(nil))
}

func TestRetryWithBackoff_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	attempts := 0
	err := RetryWithBackoff(ctx, fastPolicy(10), func(ctx context.Context) error {
		attempts++
		if attempts == 2 {
			cancel()
		}
		return errors.New("error")
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 2, attempts)
}

func TestRetryWithBackoff_InvalidPolicy(t *testing.T) {
	for _, attempts := range []int{0, -1} {
		called := false
		err := RetryWithBackoff(context.Background(), fastPolicy(attempts), func(ctx context.Context) error {
			called = true
			return nil
		})
		assert.ErrorIs(t, err, ErrInvalidMaxAttempts)
		assert.False(t, called)
	}
}

func TestRetryPolicy_Delay(t *testing.T) {
	policy := RetryPolicy{MaxAttempts: 6, BaseDelay: 10 * time.Millisecond, MaxDelay: 50 * time.Millisecond}

	assert.Equal(t, 10*time.Millisecond, policy.delay(1))
	assert.Equal(t, 20*time.Millisecond, policy.delay(2))
	assert.Equal(t, 40*time.Millisecond, policy.delay(3))
	assert.Equal(t, 50*time.Millisecond, policy.delay(4))
	assert.Equal(t, 50*time.Millisecond, policy.delay(5))

	unbounded := RetryPolicy{BaseDelay: time.Millisecond}
	assert.Equal(t, 8*time.Millisecond, unbounded.delay(4))
}
