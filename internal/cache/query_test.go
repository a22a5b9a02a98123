package cache

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

// fakeClock is a manually advanced time source.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

// countingFetch returns a fetch func that counts invocations and serves the
// given values in sequence, repeating the last one.
func countingFetch(calls *int, values ...string) FetchFunc[string] {
	var mu sync.Mutex
	return func(_ context.Context) (string, error) {
		mu.Lock()
		defer mu.Unlock()
		idx := *calls
		*calls++
		if idx >= len(values) {
			idx = len(values) - 1
		}
		return values[idx], nil
	}
}

func TestRead_MissThenHit(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	s := New(WithFreshness(30*time.Second), WithClock(clock.Now))
	key := List("projects")

	calls := 0
	fetch := countingFetch(&calls, "first")

	res := Read(context.Background(), s, key, fetch)
	if !res.IsSuccess() || res.Value != "first" {
		t.Fatalf("first Read() = %+v, want success %q", res, "first")
	}
	if calls != 1 {
		t.Fatalf("fetch calls = %d, want 1", calls)
	}

	res = Read(context.Background(), s, key, fetch)
	if !res.IsSuccess() || res.Value != "first" {
		t.Fatalf("second Read() = %+v, want cached %q", res, "first")
	}
	if calls != 1 {
		t.Errorf("fetch calls after cached read = %d, want 1", calls)
	}
}

func TestRead_ExpiredEntryRefetches(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	s := New(WithFreshness(30*time.Second), WithClock(clock.Now))
	key := List("projects")

	calls := 0
	fetch := countingFetch(&calls, "old", "new")

	Read(context.Background(), s, key, fetch)
	clock.Advance(31 * time.Second)

	res := Read(context.Background(), s, key, fetch)
	if !res.IsSuccess() || res.Value != "new" {
		t.Fatalf("Read() after expiry = %+v, want refetched %q", res, "new")
	}
	if calls != 2 {
		t.Errorf("fetch calls = %d, want 2", calls)
	}
}

func TestRead_StaleServesAndRefreshesInBackground(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	s := New(
		WithFreshness(30*time.Second),
		WithRefreshAfter(10*time.Second),
		WithClock(clock.Now),
	)
	key := List("projects")

	var mu sync.Mutex
	refreshed := make(chan struct{})
	first := true
	fetch := func(_ context.Context) (string, error) {
		mu.Lock()
		defer mu.Unlock()
		if first {
			first = false
			return "old", nil
		}
		defer close(refreshed)
		return "new", nil
	}

	Read(context.Background(), s, key, fetch)
	clock.Advance(15 * time.Second)

	// Past the refresh threshold but within freshness: the stale value is
	// served without blocking.
	res := Read(context.Background(), s, key, fetch)
	if !res.IsSuccess() || res.Value != "old" {
		t.Fatalf("stale Read() = %+v, want served %q", res, "old")
	}

	select {
	case <-refreshed:
	case <-time.After(2 * time.Second):
		t.Fatal("background refresh never ran")
	}

	// The refresh goroutine may still be writing back; poll briefly.
	deadline := time.Now().Add(2 * time.Second)
	for {
		if v, ok := s.Peek(key); ok && v == "new" {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("refreshed value never reached the cache")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestRead_FetchErrorDoesNotPopulate(t *testing.T) {
	t.Parallel()

	s := New()
	key := List("projects")
	wantErr := errors.New("backend down")

	res := Read(context.Background(), s, key, func(_ context.Context) (string, error) {
		return "", wantErr
	})
	if !res.IsError() || !errors.Is(res.Err, wantErr) {
		t.Fatalf("Read() = %+v, want error %v", res, wantErr)
	}
	if _, ok := s.Peek(key); ok {
		t.Error("failed fetch populated the cache")
	}
}

func TestRead_CancelledFetchLeavesCacheUntouched(t *testing.T) {
	t.Parallel()

	s := New()
	key := List("projects")

	started := make(chan struct{})
	fetch := func(ctx context.Context) (string, error) {
		close(started)
		<-ctx.Done()
		return "", ctx.Err()
	}

	done := make(chan Result[string], 1)
	go func() {
		done <- Read(context.Background(), s, key, fetch)
	}()

	<-started
	// A write on the same namespace aborts the read.
	_ = s.Mutate(context.Background(), Mutation{
		Name:        "test.write",
		Invalidates: []Key{Root("projects")},
		Call:        func(context.Context) error { return nil },
	})

	res := <-done
	if !res.IsError() || !errors.Is(res.Err, context.Canceled) {
		t.Fatalf("cancelled Read() = %+v, want context.Canceled", res)
	}
	if _, ok := s.Peek(key); ok {
		t.Error("cancelled fetch populated the cache")
	}
}

func TestInspect(t *testing.T) {
	t.Parallel()

	t.Run("unresolved when never fetched", func(t *testing.T) {
		t.Parallel()
		s := New()
		res := Inspect[string](s, List("projects"))
		if !res.IsUnresolved() {
			t.Errorf("Inspect() = %+v, want unresolved", res)
		}
	})

	t.Run("success when cached", func(t *testing.T) {
		t.Parallel()
		s := New()
		s.Put(List("projects"), "cached")
		res := Inspect[string](s, List("projects"))
		if !res.IsSuccess() || res.Value != "cached" {
			t.Errorf("Inspect() = %+v, want success %q", res, "cached")
		}
	})

	t.Run("loading while a fetch is in flight", func(t *testing.T) {
		t.Parallel()
		s := New()
		key := List("projects")

		started := make(chan struct{})
		release := make(chan struct{})
		go Read(context.Background(), s, key, func(_ context.Context) (string, error) {
			close(started)
			<-release
			return "done", nil
		})

		<-started
		res := Inspect[string](s, key)
		close(release)
		if res.Status != StatusLoading {
			t.Errorf("Inspect() status = %v, want loading", res.Status)
		}
	})
}

func TestUnresolved(t *testing.T) {
	t.Parallel()

	res := Unresolved[int]()
	if !res.IsUnresolved() || res.Err != nil || res.Value != 0 {
		t.Errorf("Unresolved() = %+v, want zero unresolved result", res)
	}
}
