package pool

import (
	"context"
	"errors"
	"sync"
)

// WorkFunc processes one item and may return an error.
type WorkFunc[T any] func(ctx context.Context, item T) error

// ForEach processes items with a bounded number of concurrent workers and
// returns the joined errors, if any. Cancelling ctx stops feeding new items;
// items already picked up run to completion under the same ctx.
func ForEach[T any](ctx context.Context, items []T, workers int, fn WorkFunc[T]) error {
	if workers < 1 {
		workers = 1
	}

	var wg sync.WaitGroup
	tasks := make(chan T)
	var mu sync.Mutex
	var errs []error

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for item := range tasks {
				if ctx.Err() != nil {
					return
				}
				if err := fn(ctx, item); err != nil {
					mu.Lock()
					errs = append(errs, err)
					mu.Unlock()
				}
			}
		}()
	}

feed:
	for _, item := range items {
		select {
		case tasks <- item:
		case <-ctx.Done():
			break feed
		}
	}
	close(tasks)
	wg.Wait()

	return errors.Join(errs...)
}
