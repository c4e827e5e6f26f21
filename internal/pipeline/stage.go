// Package pipeline provides the bounded fan-out/fan-in primitive used by the
// retrieval and summarization stages.
package pipeline

import (
	"context"
	"sync"

	"golang.org/x/sync/semaphore"
)

// Result wraps the output of one task with its error and input position.
type Result[Out any] struct {
	Value Out
	Err   error
	Index int
}

// Stage describes a concurrent processing stage. Limit bounds the number of
// tasks in flight at once; each input is processed exactly once.
type Stage[In, Out any] struct {
	Name    string
	Limit   int64
	Process func(ctx context.Context, input In) (Out, error)
}

// Run fans the stage's Process function out over all inputs with at most
// Limit tasks in flight, then joins. It returns only after every input has
// reached a terminal result; a failing task never cancels its siblings.
// Results are positioned by input index, so collection order is stable even
// though completion order is not.
func Run[In, Out any](ctx context.Context, stage Stage[In, Out], inputs []In) []Result[Out] {
	if len(inputs) == 0 {
		return nil
	}

	limit := stage.Limit
	if limit <= 0 {
		limit = 1
	}

	sem := semaphore.NewWeighted(limit)
	results := make([]Result[Out], len(inputs))

	var wg sync.WaitGroup
	for i, input := range inputs {
		wg.Add(1)
		go func(idx int, in In) {
			defer wg.Done()

			if err := sem.Acquire(ctx, 1); err != nil {
				results[idx] = Result[Out]{Err: err, Index: idx}
				return
			}
			defer sem.Release(1)

			out, err := stage.Process(ctx, in)
			results[idx] = Result[Out]{Value: out, Err: err, Index: idx}
		}(i, input)
	}

	wg.Wait()
	return results
}
