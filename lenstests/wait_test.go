package lenstests_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pitabwire/lens/lenstests"
)

func TestWaitForCondition(t *testing.T) {
	ctx := context.Background()

	var attempts atomic.Int64
	err := lenstests.WaitForCondition(ctx, func() (bool, error) {
		return attempts.Add(1) >= 3, nil
	}, time.Second, time.Millisecond)
	require.NoError(t, err)
	require.GreaterOrEqual(t, attempts.Load(), int64(3))
}

func TestWaitForConditionTimesOut(t *testing.T) {
	err := lenstests.WaitForCondition(context.Background(), func() (bool, error) {
		return false, nil
	}, 20*time.Millisecond, 5*time.Millisecond)
	require.ErrorContains(t, err, "condition not met")
}

func TestWaitForConditionPropagatesErrors(t *testing.T) {
	boom := errors.New("boom")
	err := lenstests.WaitForCondition(context.Background(), func() (bool, error) {
		return false, boom
	}, time.Second, time.Millisecond)
	require.ErrorIs(t, err, boom)
}

func TestWaitForConditionHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := lenstests.WaitForCondition(ctx, func() (bool, error) {
		return false, nil
	}, time.Second, 10*time.Millisecond)
	require.ErrorIs(t, err, context.Canceled)
}
