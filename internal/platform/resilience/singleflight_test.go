package resilience

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

var errUnexpectedValue = errors.New("unexpected value")

func TestSingleFlight_CollapsesConcurrentCalls(t *testing.T) {
	t.Parallel()

	var flight SingleFlight
	var executions atomic.Int32

	const workers = 32
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)
	errCh := make(chan error, workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			val, err, _ := flight.Do("predictions:42", func() (any, error) {
				executions.Add(1)
				time.Sleep(20 * time.Millisecond)
				return "payload", nil
			})
			if err != nil {
				errCh <- err
				return
			}
			if got, _ := val.(string); got != "payload" {
				errCh <- errUnexpectedValue
			}
		}()
	}

	close(start)
	wg.Wait()
	close(errCh)
	for err := range errCh {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if got := executions.Load(); got != 1 {
		t.Fatalf("fn executed %d times, want 1", got)
	}
}

func TestSingleFlight_DistinctKeysRunIndependently(t *testing.T) {
	t.Parallel()

	var flight SingleFlight
	var executions atomic.Int32

	for _, key := range []string{"predictions:1", "predictions:2"} {
		_, err, shared := flight.Do(key, func() (any, error) {
			executions.Add(1)
			return key, nil
		})
		if err != nil || shared {
			t.Fatalf("key %s: err=%v shared=%v", key, err, shared)
		}
	}
	if got := executions.Load(); got != 2 {
		t.Fatalf("fn executed %d times, want 2", got)
	}
}
