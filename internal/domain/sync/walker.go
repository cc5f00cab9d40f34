package sync

import (
	"context"
	"fmt"
	"time"
)

// Page is one page of a cursor-paginated remote listing. Cursor is the
// opaque token of the LAST item on the page; the next fetch must be issued
// with exactly that cursor.
type Page[T any] struct {
	Items   []T
	Cursor  string
	HasMore bool
}

// FetchFunc fetches one page. An empty cursor requests the first page.
type FetchFunc[T any] func(ctx context.Context, cursor string) (Page[T], error)

// Walker traverses a cursor-paginated listing as a lazy, finite,
// non-restartable sequence. A transient fetch failure re-requests the SAME
// page after a pause, so no page is ever skipped; once retries are
// exhausted the walk aborts and the error propagates to the caller.
type Walker[T any] struct {
	fetch      FetchFunc[T]
	maxRetries int
	retryPause time.Duration

	// sleep is swapped out in tests
	sleep func(ctx context.Context, d time.Duration) error
}

// WalkerOption configures a Walker.
type WalkerOption[T any] func(*Walker[T])

// WithRetries sets the per-page retry budget.
func WithRetries[T any](n int) WalkerOption[T] {
	return func(w *Walker[T]) { w.maxRetries = n }
}

// WithRetryPause sets the pause between retries of the same page.
func WithRetryPause[T any](d time.Duration) WalkerOption[T] {
	return func(w *Walker[T]) { w.retryPause = d }
}

// NewWalker creates a Walker over the given fetch function.
func NewWalker[T any](fetch FetchFunc[T], opts ...WalkerOption[T]) *Walker[T] {
	w := &Walker[T]{
		fetch:      fetch,
		maxRetries: 5,
		retryPause: 2 * time.Second,
		sleep:      sleepCtx,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Walk invokes fn for every item across all pages, in listing order. It
// stops at the first page whose HasMore is false, or when fn returns an
// error, or when the per-page retry budget is exhausted.
func (w *Walker[T]) Walk(ctx context.Context, fn func(item T) error) error {
	cursor := ""
	for {
		page, err := w.fetchWithRetry(ctx, cursor)
		if err != nil {
			return err
		}

		for _, item := range page.Items {
			if err := fn(item); err != nil {
				return err
			}
		}

		if !page.HasMore {
			return nil
		}
		cursor = page.Cursor
	}
}

// fetchWithRetry requests the same cursor until it succeeds or the retry
// budget runs out.
func (w *Walker[T]) fetchWithRetry(ctx context.Context, cursor string) (Page[T], error) {
	var lastErr error
	for attempt := 1; attempt <= w.maxRetries; attempt++ {
		page, err := w.fetch(ctx, cursor)
		if err == nil {
			return page, nil
		}
		lastErr = err

		if attempt < w.maxRetries {
			if err := w.sleep(ctx, w.retryPause); err != nil {
				return Page[T]{}, err
			}
		}
	}
	return Page[T]{}, fmt.Errorf("%w: %v", ErrWalkerExhausted, lastErr)
}

// sleepCtx pauses for d unless the context is cancelled first.
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
