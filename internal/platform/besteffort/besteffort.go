// Package besteffort runs cleanup work whose individual failures must never
// fail the enclosing operation.
package besteffort

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Outcome records what happened to a single item of a batch.
type Outcome[T any] struct {
	Item T
	Err  error
}

// Run calls fn for every item concurrently and waits for all of them to
// settle. Outcomes are returned in input order. Run never fails as a whole;
// callers inspect (or log) the per-item errors.
func Run[T any](ctx context.Context, items []T, fn func(context.Context, T) error) []Outcome[T] {
	out := make([]Outcome[T], len(items))
	if len(items) == 0 {
		return out
	}

	// plain Group: a failing item must not cancel its siblings
	var g errgroup.Group
	for i, item := range items {
		g.Go(func() error {
			out[i] = Outcome[T]{Item: item, Err: fn(ctx, item)}
			return nil
		})
	}
	_ = g.Wait()

	return out
}

// Failed returns only the outcomes that carry an error.
func Failed[T any](outcomes []Outcome[T]) []Outcome[T] {
	var failed []Outcome[T]
	for _, o := range outcomes {
		if o.Err != nil {
			failed = append(failed, o)
		}
	}
	return failed
}
