// Package fanout runs a function across a slice of items with bounded
// concurrency, preserving input order in the results. The application layer
// uses it to warm several cache keys in one pass.
//
// It manages goroutines, a semaphore channel, and context cancellation,
// nothing else.
package fanout

import (
	"context"
	"sync"
)

// Result holds the outcome of processing a single item. Either Value is
// populated or Err is non-nil.
type Result[R any] struct {
	Value R
	Err   error
}

// Run executes fn for each item using at most maxWorkers concurrent
// goroutines and returns results in input order.
//
// A goroutine still waiting for a semaphore slot when ctx is cancelled
// records ctx.Err() without calling fn. Goroutines that already hold a
// slot run to completion; fn checks ctx itself if it supports
// cancellation.
//
// Run blocks until every goroutine finishes. An empty items slice returns
// an empty non-nil slice. maxWorkers must be >= 1.
func Run[T, R any](ctx context.Context, maxWorkers int, items []T, fn func(context.Context, T) (R, error)) []Result[R] {
	if len(items) == 0 {
		return []Result[R]{}
	}

	results := make([]Result[R], len(items))
	sem := make(chan struct{}, maxWorkers)
	var wg sync.WaitGroup

	for i, item := range items {
		wg.Add(1)
		go func(idx int, it T) {
			defer wg.Done()

			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				results[idx] = Result[R]{Err: ctx.Err()}
				return
			}

			val, err := fn(ctx, it)
			results[idx] = Result[R]{Value: val, Err: err}
		}(i, item)
	}

	wg.Wait()
	return results
}
