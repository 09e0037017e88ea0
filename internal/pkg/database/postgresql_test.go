package database

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestBound_UnblocksStalledCall(t *testing.T) {
	db := &DB{queryTimeout: 30 * time.Millisecond}

	ctx, cancel := db.Bound(context.Background())
	defer cancel()

	// A query that never returns rows only unblocks through the deadline.
	stalled := func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	}

	start := time.Now()
	err := stalled(ctx)

	require.ErrorIs(t, err, context.DeadlineExceeded)
	require.Less(t, time.Since(start), time.Second)
}

func TestBound_KeepsEarlierCallerDeadline(t *testing.T) {
	db := &DB{queryTimeout: time.Hour}

	parent, cancelParent := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancelParent()

	ctx, cancel := db.Bound(parent)
	defer cancel()

	deadline, ok := ctx.Deadline()
	require.True(t, ok)
	require.LessOrEqual(t, time.Until(deadline), 10*time.Millisecond)
}

func TestBound_DefaultsWhenUnconfigured(t *testing.T) {
	db := &DB{}

	ctx, cancel := db.Bound(context.Background())
	defer cancel()

	deadline, ok := ctx.Deadline()
	require.True(t, ok)
	require.LessOrEqual(t, time.Until(deadline), defaultQueryTimeout)
}

func TestRetry_DeadlineExpiryIsRetryable(t *testing.T) {
	db := &DB{queryTimeout: 10 * time.Millisecond}

	calls := 0
	err := Retry(context.Background(), 3, func(ctx context.Context) error {
		calls++
		bound, cancel := db.Bound(ctx)
		defer cancel()
		if calls == 1 {
			<-bound.Done()
			return bound.Err()
		}
		return nil
	})

	require.NoError(t, err)
	require.Equal(t, 2, calls)
}

func TestRetry_StopsWhenCallerCancels(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	err := Retry(ctx, 3, func(ctx context.Context) error {
		calls++
		return context.DeadlineExceeded
	})

	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, 1, calls)
}
