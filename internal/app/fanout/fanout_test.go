package fanout

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestRun_PreservesOrder(t *testing.T) {
	t.Parallel()

	items := []int{1, 2, 3, 4, 5}
	results := Run(context.Background(), 2, items, func(_ context.Context, n int) (int, error) {
		return n * 10, nil
	})

	if len(results) != len(items) {
		t.Fatalf("len(results) = %d, want %d", len(results), len(items))
	}
	for i, r := range results {
		if r.Err != nil {
			t.Errorf("results[%d].Err = %v, want nil", i, r.Err)
		}
		if r.Value != items[i]*10 {
			t.Errorf("results[%d] = %d, want %d", i, r.Value, items[i]*10)
		}
	}
}

func TestRun_EmptyItems(t *testing.T) {
	t.Parallel()

	results := Run(context.Background(), 4, nil, func(context.Context, int) (int, error) {
		t.Error("fn called for empty input")
		return 0, nil
	})
	if results == nil || len(results) != 0 {
		t.Errorf("Run(empty) = %v, want empty non-nil slice", results)
	}
}

func TestRun_PartialFailures(t *testing.T) {
	t.Parallel()

	wantErr := errors.New("odd number")
	results := Run(context.Background(), 3, []int{1, 2, 3, 4}, func(_ context.Context, n int) (int, error) {
		if n%2 == 1 {
			return 0, wantErr
		}
		return n, nil
	})

	for i, n := range []int{1, 2, 3, 4} {
		if n%2 == 1 && !errors.Is(results[i].Err, wantErr) {
			t.Errorf("results[%d].Err = %v, want %v", i, results[i].Err, wantErr)
		}
		if n%2 == 0 && results[i].Err != nil {
			t.Errorf("results[%d].Err = %v, want nil", i, results[i].Err)
		}
	}
}

func TestRun_BoundedConcurrency(t *testing.T) {
	t.Parallel()

	const maxWorkers = 2
	var inFlight, peak atomic.Int32
	var mu sync.Mutex

	Run(context.Background(), maxWorkers, make([]int, 20), func(context.Context, int) (int, error) {
		n := inFlight.Add(1)
		mu.Lock()
		if n > peak.Load() {
			peak.Store(n)
		}
		mu.Unlock()
		inFlight.Add(-1)
		return 0, nil
	})

	if p := peak.Load(); p > maxWorkers {
		t.Errorf("peak concurrency = %d, want <= %d", p, maxWorkers)
	}
}

func TestRun_CancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// With one worker and a pre-cancelled context, goroutines waiting for
	// the held semaphore slot must record the context error instead of
	// running.
	results := Run(ctx, 1, make([]int, 8), func(context.Context, int) (int, error) {
		time.Sleep(10 * time.Millisecond)
		return 1, nil
	})

	cancelled := 0
	for _, r := range results {
		if errors.Is(r.Err, context.Canceled) {
			cancelled++
		}
	}
	if cancelled == 0 {
		t.Error("no goroutine observed the cancelled context")
	}
}
