package workpool

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"
)

func TestMap_PreservesInputOrder(t *testing.T) {
	t.Parallel()

	inputs := []int{5, 4, 3, 2, 1}
	results, errs, err := Map(context.Background(), 3, inputs, func(_ context.Context, item int) (string, error) {
		time.Sleep(time.Duration(item) * time.Millisecond)
		return fmt.Sprintf("n%d", item), nil
	})
	if err != nil {
		t.Fatalf("map: %v", err)
	}
	for i, item := range inputs {
		if errs[i] != nil {
			t.Fatalf("item %d: %v", i, errs[i])
		}
		if want := fmt.Sprintf("n%d", item); results[i] != want {
			t.Fatalf("result[%d]: got %q, want %q", i, results[i], want)
		}
	}
}

func TestMap_BoundsConcurrency(t *testing.T) {
	t.Parallel()

	const limit = 2
	var inFlight, peak atomic.Int32

	inputs := []int{1, 2, 3, 4, 5}
	results, errs, err := Map(context.Background(), limit, inputs, func(_ context.Context, item int) (int, error) {
		current := inFlight.Add(1)
		for {
			observed := peak.Load()
			if current <= observed || peak.CompareAndSwap(observed, current) {
				break
			}
		}
		time.Sleep(20 * time.Millisecond)
		inFlight.Add(-1)
		return item * 10, nil
	})
	if err != nil {
		t.Fatalf("map: %v", err)
	}

	if got := peak.Load(); got > limit {
		t.Fatalf("observed %d concurrent workers, limit is %d", got, limit)
	}
	for i := range inputs {
		if errs[i] != nil || results[i] != inputs[i]*10 {
			t.Fatalf("item %d incomplete: result=%d err=%v", i, results[i], errs[i])
		}
	}
}

func TestMap_IsolatesItemFailures(t *testing.T) {
	t.Parallel()

	errBoom := fmt.Errorf("boom")
	inputs := []int{0, 1, 2}
	results, errs, err := Map(context.Background(), 2, inputs, func(_ context.Context, item int) (int, error) {
		if item == 1 {
			return 0, errBoom
		}
		return item + 100, nil
	})
	if err != nil {
		t.Fatalf("map: %v", err)
	}

	if errs[1] == nil {
		t.Fatalf("item 1 should carry its error")
	}
	if results[0] != 100 || results[2] != 102 {
		t.Fatalf("healthy items should complete, got %v", results)
	}
	if results[1] != 0 {
		t.Fatalf("failed item should leave zero value, got %d", results[1])
	}
}

func TestMap_EmptyInput(t *testing.T) {
	t.Parallel()

	results, errs, err := Map(context.Background(), 3, nil, func(_ context.Context, item int) (int, error) {
		return item, nil
	})
	if err != nil {
		t.Fatalf("map: %v", err)
	}
	if len(results) != 0 || len(errs) != 0 {
		t.Fatalf("empty input should produce empty slices")
	}
}
