package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDo_FirstAttemptSucceeds(t *testing.T) {
	attempts := 0
	err := Do(context.Background(), func() error {
		attempts++
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 1, attempts)
}

func TestDo_SucceedsAfterRetries(t *testing.T) {
	attempts := 0
	err := Do(context.Background(), func() error {
		attempts++
		if attempts < 3 {
			return errors.New("not yet visible")
		}
		return nil
	}, WithDelay(time.Millisecond))

	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
}

func TestDo_ExhaustsAttemptBudget(t *testing.T) {
	attempts := 0
	underlying := errors.New("persistent error")

	err := Do(context.Background(), func() error {
		attempts++
		return underlying
	}, WithMaxAttempts(3), WithDelay(time.Millisecond))

	require.Error(t, err)
	assert.ErrorIs(t, err, underlying)
	assert.Equal(t, 3, attempts, "MaxAttempts is the total attempt count")
}

func TestFixed_ConstantDelay(t *testing.T) {
	p := Fixed(3, 10*time.Millisecond)

	attempts := 0
	var gaps []time.Duration
	last := time.Now()

	err := p.Do(context.Background(), func() error {
		now := time.Now()
		if attempts > 0 {
			gaps = append(gaps, now.Sub(last))
		}
		last = now
		attempts++
		return errors.New("never visible")
	})

	require.Error(t, err)
	assert.Equal(t, 3, attempts)
	require.Len(t, gaps, 2)
	for _, gap := range gaps {
		assert.GreaterOrEqual(t, gap, 10*time.Millisecond)
		assert.Less(t, gap, 100*time.Millisecond, "multiplier 1 must not grow the delay")
	}
}

func TestDo_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	attempts := 0
	err := Do(ctx, func() error {
		attempts++
		return errors.New("error")
	}, WithDelay(time.Millisecond))

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, attempts)
}

func TestDo_FatalNotRetried(t *testing.T) {
	attempts := 0
	err := Do(context.Background(), func() error {
		attempts++
		return Fatal(errors.New("permission denied"))
	}, WithDelay(time.Millisecond))

	require.Error(t, err)
	assert.True(t, IsFatal(err))
	assert.Equal(t, 1, attempts)
}

func TestDo_BackoffGrowsAndCaps(t *testing.T) {
	p := Policy{
		MaxAttempts: 4,
		Delay:       time.Millisecond,
		MaxDelay:    2 * time.Millisecond,
		Multiplier:  2.0,
	}

	attempts := 0
	err := p.Do(context.Background(), func() error {
		attempts++
		return errors.New("error")
	})

	require.Error(t, err)
	assert.Equal(t, 4, attempts)
}

func TestIsFatal_PlainError(t *testing.T) {
	assert.False(t, IsFatal(errors.New("plain")))
	assert.True(t, IsFatal(Fatal(errors.New("wrapped"))))
	assert.NoError(t, Fatal(nil))
}
