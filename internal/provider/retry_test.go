package provider

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastRetryConfig(retries int) RetryConfig {
	return RetryConfig{
		MaxRetries:      retries,
		InitialInterval: time.Millisecond,
		MaxInterval:     5 * time.Millisecond,
		Multiplier:      2.0,
	}
}

func TestWithRetry_SucceedsFirstTry(t *testing.T) {
	calls := 0
	got, err := WithRetry(context.Background(), fastRetryConfig(3), func() (string, error) {
		calls++
		return "ok", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", got)
	assert.Equal(t, 1, calls)
}

func TestWithRetry_RetriesRetryableErrors(t *testing.T) {
	calls := 0
	got, err := WithRetry(context.Background(), fastRetryConfig(3), func() (string, error) {
		calls++
		if calls < 3 {
			return "", &ProviderError{Code: ErrCodeRateLimit, Message: "slow down"}
		}
		return "ok", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", got)
	assert.Equal(t, 3, calls)
}

func TestWithRetry_DoesNotRetryAuthErrors(t *testing.T) {
	calls := 0
	_, err := WithRetry(context.Background(), fastRetryConfig(3), func() (string, error) {
		calls++
		return "", &ProviderError{Code: ErrCodeAuthentication, Message: "bad key"}
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAuthentication)
	assert.Equal(t, 1, calls)
}

func TestWithRetry_ExhaustsAttempts(t *testing.T) {
	calls := 0
	_, err := WithRetry(context.Background(), fastRetryConfig(2), func() (string, error) {
		calls++
		return "", &ProviderError{Code: ErrCodeProviderUnavailable}
	})
	require.Error(t, err)
	assert.Equal(t, 3, calls) // first call + 2 retries
}

func TestWithRetry_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := WithRetry(ctx, fastRetryConfig(5), func() (string, error) {
		return "", &ProviderError{Code: ErrCodeRateLimit}
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWithRetry_ZeroMaxIntervalDoesNotPanic(t *testing.T) {
	cfg := RetryConfig{
		MaxRetries:      2,
		InitialInterval: time.Millisecond,
	}

	calls := 0
	assert.NotPanics(t, func() {
		_, err := WithRetry(context.Background(), cfg, func() (string, error) {
			calls++
			return "", &ProviderError{Code: ErrCodeRateLimit}
		})
		assert.Error(t, err)
	})
	assert.Equal(t, 3, calls)
}

func TestWithRetry_NonProviderErrorsAreRetried(t *testing.T) {
	calls := 0
	got, err := WithRetry(context.Background(), fastRetryConfig(1), func() (int, error) {
		calls++
		if calls == 1 {
			return 0, errors.New("connection reset")
		}
		return 42, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 42, got)
	assert.Equal(t, 2, calls)
}
