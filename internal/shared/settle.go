package shared

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Result is the settled outcome of one task: exactly one of Value or Err is meaningful.
type Result[T any] struct {
	Value T
	Err   error
}

// OK reports whether the task succeeded.
func (r Result[T]) OK() bool { return r.Err == nil }

// Settle runs tasks with at most limit in flight and waits for all of them.
//
// A failing task never cancels or fails the others; its error is stored in its own [Result].
// Results are returned in task order regardless of completion order. limit <= 0 means no limit.
func Settle[T any](ctx context.Context, limit int, tasks []func(context.Context) (T, error)) []Result[T] {
	results := make([]Result[T], len(tasks))

	var g errgroup.Group
	if limit > 0 {
		g.SetLimit(limit)
	}

	for i, task := range tasks {
		g.Go(func() error {
			v, err := task(ctx)
			results[i] = Result[T]{Value: v, Err: err}
			return nil
		})
	}

	_ = g.Wait()
	return results
}

// Fulfilled returns the values of successful results, in order.
func Fulfilled[T any](results []Result[T]) []T {
	values := make([]T, 0, len(results))
	for _, r := range results {
		if r.OK() {
			values = append(values, r.Value)
		}
	}
	return values
}
