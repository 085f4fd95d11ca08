// Package workpool provides an order-preserving bounded fan-out over a
// fixed-size worker pool.
package workpool

import (
	"context"
	"sync"

	"github.com/panjf2000/ants/v2"
)

// Map runs fn for every input with at most workers goroutines in flight.
// results[i] always corresponds to inputs[i]. A failed item leaves its
// zero value in place and its error in errs[i]; one item never aborts the
// others, and Map returns only after every item finished.
func Map[In, Out any](ctx context.Context, workers int, inputs []In, fn func(ctx context.Context, item In) (Out, error)) ([]Out, []error, error) {
	results := make([]Out, len(inputs))
	errs := make([]error, len(inputs))
	if len(inputs) == 0 {
		return results, errs, nil
	}

	if workers < 1 {
		workers = 1
	}
	if workers > len(inputs) {
		workers = len(inputs)
	}

	pool, err := ants.NewPool(workers)
	if err != nil {
		return nil, nil, err
	}
	defer pool.Release()

	var wg sync.WaitGroup
	for i, item := range inputs {
		i, item := i, item
		wg.Add(1)
		if submitErr := pool.Submit(func() {
			defer wg.Done()
			results[i], errs[i] = fn(ctx, item)
		}); submitErr != nil {
			wg.Done()
			errs[i] = submitErr
		}
	}
	wg.Wait()

	return results, errs, nil
}
