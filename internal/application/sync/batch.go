package sync

import (
	"context"
	"sync"
	"time"
)

// SleepFunc pauses for d unless the context is cancelled first. Swapped out
// in tests.
type SleepFunc func(ctx context.Context, d time.Duration) error

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// RunInBatches processes items in fixed-size batches. Items within a batch
// run concurrently, batches run one after another with a pause in between to
// respect remote rate limits. fn handles its own failures; the only error
// returned here is context cancellation.
func RunInBatches[T any](ctx context.Context, items []T, size int, pause time.Duration, sleep SleepFunc, fn func(ctx context.Context, item T)) error {
	if size <= 0 {
		size = 1
	}
	if sleep == nil {
		sleep = sleepCtx
	}

	for start := 0; start < len(items); start += size {
		if err := ctx.Err(); err != nil {
			return err
		}

		end := start + size
		if end > len(items) {
			end = len(items)
		}

		var wg sync.WaitGroup
		for i := start; i < end; i++ {
			wg.Add(1)
			go func(item T) {
				defer wg.Done()
				fn(ctx, item)
			}(items[i])
		}
		wg.Wait()

		if end < len(items) && pause > 0 {
			if err := sleep(ctx, pause); err != nil {
				return err
			}
		}
	}
	return nil
}
