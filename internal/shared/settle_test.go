package shared

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/goleak"
)

func TestSettle(t *testing.T) {
	defer goleak.VerifyNone(t)

	t.Run("keeps task order regardless of completion order", func(t *testing.T) {
		delays := []time.Duration{30 * time.Millisecond, 0, 10 * time.Millisecond, 5 * time.Millisecond}
		tasks := make([]func(context.Context) (int, error), len(delays))
		for i, d := range delays {
			tasks[i] = func(ctx context.Context) (int, error) {
				time.Sleep(d)
				return i, nil
			}
		}

		got := Fulfilled(Settle(context.Background(), 3, tasks))
		if diff := cmp.Diff([]int{0, 1, 2, 3}, got); diff != "" {
			t.Errorf("unexpected order (-want +got):\n%s", diff)
		}
	})

	t.Run("failures are isolated", func(t *testing.T) {
		boom := errors.New("boom")
		tasks := []func(context.Context) (string, error){
			func(context.Context) (string, error) { return "a", nil },
			func(context.Context) (string, error) { return "", boom },
			func(context.Context) (string, error) { return "c", nil },
		}

		results := Settle(context.Background(), 2, tasks)
		if len(results) != 3 {
			t.Fatalf("expected 3 results, got %d", len(results))
		}
		if !errors.Is(results[1].Err, boom) {
			t.Errorf("expected task 1 to carry its error, got %v", results[1].Err)
		}
		if diff := cmp.Diff([]string{"a", "c"}, Fulfilled(results)); diff != "" {
			t.Errorf("unexpected values (-want +got):\n%s", diff)
		}
	})

	t.Run("never exceeds the concurrency limit", func(t *testing.T) {
		var inFlight, peak atomic.Int32
		tasks := make([]func(context.Context) (struct{}, error), 8)
		for i := range tasks {
			tasks[i] = func(context.Context) (struct{}, error) {
				n := inFlight.Add(1)
				for {
					p := peak.Load()
					if n <= p || peak.CompareAndSwap(p, n) {
						break
					}
				}
				time.Sleep(5 * time.Millisecond)
				inFlight.Add(-1)
				return struct{}{}, nil
			}
		}

		Settle(context.Background(), 3, tasks)
		if p := peak.Load(); p > 3 {
			t.Errorf("expected at most 3 tasks in flight, saw %d", p)
		}
	})

	t.Run("empty task list", func(t *testing.T) {
		if got := Settle[int](context.Background(), 3, nil); len(got) != 0 {
			t.Errorf("expected no results, got %d", len(got))
		}
	})
}
