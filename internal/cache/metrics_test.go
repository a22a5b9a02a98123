package cache

import (
	"context"
	"testing"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/plannery/plannery-go/internal/platform/telemetry"
)

// counterSum collects the current total of a named counter across all its
// attribute sets.
func counterSum(t *testing.T, rm metricdata.ResourceMetrics, name string) int64 {
	t.Helper()
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != name {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				t.Fatalf("%s data = %T, want Sum[int64]", name, m.Data)
			}
			var total int64
			for _, dp := range sum.DataPoints {
				total += dp.Value
			}
			return total
		}
	}
	return 0
}

func TestStore_RecordsReadAndMutationMetrics(t *testing.T) {
	t.Parallel()

	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	metrics, err := telemetry.NewMetrics(mp)
	if err != nil {
		t.Fatalf("NewMetrics() error = %v", err)
	}

	clock := newFakeClock()
	s := New(WithClock(clock.Now), WithMetrics(metrics))
	ctx := context.Background()
	key := List("projects")
	fetch := func(context.Context) ([]string, error) {
		return []string{"a"}, nil
	}

	if res := Read(ctx, s, key, fetch); !res.IsSuccess() {
		t.Fatalf("first Read = %+v, want success", res)
	}
	if res := Read(ctx, s, key, fetch); !res.IsSuccess() {
		t.Fatalf("second Read = %+v, want success", res)
	}

	err = s.Mutate(ctx, Mutation{
		Name:        "projects.create",
		Invalidates: []Key{Root("projects")},
		Call:        func(context.Context) error { return nil },
	})
	if err != nil {
		t.Fatalf("Mutate() error = %v", err)
	}

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(ctx, &rm); err != nil {
		t.Fatalf("collecting metrics: %v", err)
	}

	// One miss plus one hit.
	if got := counterSum(t, rm, "plannery_cache_read_total"); got != 2 {
		t.Errorf("cache read total = %d, want 2", got)
	}
	if got := counterSum(t, rm, "plannery_mutation_total"); got != 1 {
		t.Errorf("mutation total = %d, want 1", got)
	}
}
