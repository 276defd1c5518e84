package retry

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRetryer(t *testing.T) {
	retryer := NewRetryer[int](RetryerOptions[int]{})

	options := RetryerOptions[int]{
		Algorithm:  AlgorithmFibonacci,
		MaxRetries: 3,
		MinDelay:   50 * time.Millisecond,
		MaxDelay:   2*time.Second + 500*time.Millisecond,
	}

	require.Equal(t, Retryer[int]{options: options}, retryer)
}

func TestRetryerDo(t *testing.T) {
	var called int

	payload, err := NewRetryer[struct{}](RetryerOptions[struct{}]{}).Do(func(_ *Context) (struct{}, error) {
		called++
		return struct{}{}, nil
	})

	require.NoError(t, err)
	require.Equal(t, struct{}{}, payload)
	require.Equal(t, 1, called)
}

func TestRetryerDoWithError(t *testing.T) {
	var called int

	payload, err := NewRetryer[int](RetryerOptions[int]{MinDelay: time.Millisecond}).Do(func(_ *Context) (int, error) {
		called++
		return 0, assert.AnError
	})

	var retriesExhausted *RetriesExhaustedError

	require.ErrorAs(t, err, &retriesExhausted)
	require.ErrorIs(t, err, assert.AnError)
	require.True(t, IsRetriesExhausted(err))
	require.Zero(t, payload)

	require.Equal(t, 3, called)
}

func TestRetryerDoWithAbort(t *testing.T) {
	var called int

	payload, err := NewRetryer[struct{}](RetryerOptions[struct{}]{}).Do(func(_ *Context) (struct{}, error) {
		called++
		return struct{}{}, NewAbortRetriesError(assert.AnError)
	})

	var aborted *RetriesAbortedError

	require.ErrorAs(t, err, &aborted)
	require.ErrorIs(t, aborted.err, assert.AnError)
	require.True(t, IsRetriesAborted(err))
	require.Zero(t, payload)
	require.Equal(t, 1, called)
}

func TestRetryerDoWithLogFuncAllButLast(t *testing.T) {
	var (
		called  int
		options = RetryerOptions[int]{
			MinDelay: time.Millisecond,
			Log: func(ctx *Context, _ int, _ error) {
				require.NotNil(t, ctx)
				require.Equal(t, called+1, ctx.Attempt())
				called++
			},
		}
	)

	_, err := NewRetryer[int](options).Do(func(_ *Context) (int, error) { return 0, assert.AnError })
	require.Error(t, err)
	require.Equal(t, 2, called)
}

func TestRetryerDoCleanupAllButLast(t *testing.T) {
	var (
		cleanupCalled int
		fnCalled      int
	)

	options := RetryerOptions[int]{
		MinDelay: time.Millisecond,
		Cleanup:  func(_ int) { cleanupCalled++ },
	}

	payload, err := NewRetryer[int](options).Do(func(_ *Context) (int, error) {
		fnCalled++
		return 0, assert.AnError
	})

	var retriesExhausted *RetriesExhaustedError

	require.ErrorAs(t, err, &retriesExhausted)
	require.Zero(t, payload)

	require.Equal(t, 2, cleanupCalled)
	require.Equal(t, 3, fnCalled)
}

func TestRetryerDoShouldNotRetry(t *testing.T) {
	var (
		called  int
		options = RetryerOptions[int]{ShouldRetry: func(_ *Context, _ int, _ error) bool { return false }}
	)

	_, err := NewRetryer[int](options).Do(func(_ *Context) (int, error) { called++; return 0, assert.AnError })
	require.ErrorIs(t, err, assert.AnError)
	require.False(t, IsRetriesExhausted(err))
	require.Equal(t, 1, called)
}

func TestRetryerDoWithContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var called int

	_, err := NewRetryer[int](RetryerOptions[int]{}).DoWithContext(ctx, func(_ *Context) (int, error) {
		called++
		return 0, nil
	})

	require.True(t, IsRetriesAborted(err))
	require.Zero(t, called)
}

func TestRetryerDoSucceedsAfterFailures(t *testing.T) {
	var called int

	options := RetryerOptions[int]{MaxRetries: 5, MinDelay: time.Millisecond}

	payload, err := NewRetryer[int](options).Do(func(_ *Context) (int, error) {
		called++

		if called < 3 {
			return 0, assert.AnError
		}

		return 42, nil
	})

	require.NoError(t, err)
	require.Equal(t, 42, payload)
	require.Equal(t, 3, called)
}

func TestRetryerDuration(t *testing.T) {
	type testCase struct {
		name      string
		algorithm Algorithm
		attempt   int
		expected  time.Duration
	}

	cases := []testCase{
		{
			name:      "LinearFirst",
			algorithm: AlgorithmLinear,
			attempt:   1,
			expected:  50 * time.Millisecond,
		},
		{
			name:      "LinearThird",
			algorithm: AlgorithmLinear,
			attempt:   3,
			expected:  150 * time.Millisecond,
		},
		{
			name:      "ExponentialFirst",
			algorithm: AlgorithmExponential,
			attempt:   1,
			expected:  100 * time.Millisecond,
		},
		{
			name:      "ExponentialThird",
			algorithm: AlgorithmExponential,
			attempt:   3,
			expected:  400 * time.Millisecond,
		},
		{
			name:      "FibonacciFourth",
			algorithm: AlgorithmFibonacci,
			attempt:   4,
			expected:  150 * time.Millisecond,
		},
		{
			name:      "ClampedToMaxDelay",
			algorithm: AlgorithmExponential,
			attempt:   50,
			expected:  2*time.Second + 500*time.Millisecond,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			retryer := NewRetryer[int](RetryerOptions[int]{Algorithm: tc.algorithm})
			require.Equal(t, tc.expected, retryer.Duration(tc.attempt))
		})
	}
}

func TestRetryerDurationWithJitter(t *testing.T) {
	options := RetryerOptions[int]{
		Algorithm: AlgorithmLinear,
		MinJitter: 10 * time.Millisecond,
		MaxJitter: 20 * time.Millisecond,
	}

	retryer := NewRetryer[int](options)

	for i := 0; i < 100; i++ {
		duration := retryer.Duration(1)
		require.GreaterOrEqual(t, duration, 60*time.Millisecond)
		require.LessOrEqual(t, duration, 70*time.Millisecond)
	}
}
