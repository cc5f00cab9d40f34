package sync

import (
	"context"
	gosync "sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunInBatches(t *testing.T) {
	t.Run("processes every item and pauses between batches", func(t *testing.T) {
		var mu gosync.Mutex
		var processed []int
		var pauses int

		sleep := func(ctx context.Context, d time.Duration) error {
			pauses++
			return nil
		}

		err := RunInBatches(context.Background(), []int{1, 2, 3, 4, 5}, 2, time.Second, sleep, func(ctx context.Context, item int) {
			mu.Lock()
			processed = append(processed, item)
			mu.Unlock()
		})

		require.NoError(t, err)
		assert.ElementsMatch(t, []int{1, 2, 3, 4, 5}, processed)
		// three batches, no pause after the last
		assert.Equal(t, 2, pauses)
	})

	t.Run("no pause for a single batch", func(t *testing.T) {
		var pauses int
		sleep := func(ctx context.Context, d time.Duration) error {
			pauses++
			return nil
		}

		err := RunInBatches(context.Background(), []int{1, 2}, 10, time.Second, sleep, func(ctx context.Context, item int) {})

		require.NoError(t, err)
		assert.Equal(t, 0, pauses)
	})

	t.Run("stops on cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		var calls int
		err := RunInBatches(ctx, []int{1, 2, 3}, 1, 0, noPause, func(ctx context.Context, item int) {
			calls++
		})

		require.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 0, calls)
	})

	t.Run("treats non-positive size as one", func(t *testing.T) {
		var mu gosync.Mutex
		var processed []int

		err := RunInBatches(context.Background(), []int{1, 2}, 0, 0, noPause, func(ctx context.Context, item int) {
			mu.Lock()
			processed = append(processed, item)
			mu.Unlock()
		})

		require.NoError(t, err)
		assert.Equal(t, []int{1, 2}, processed)
	})
}
