package worker

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
)

// Result pairs one input with its outcome. Results keep the input order
// regardless of which worker finished first; import order matters for
// deterministic entry sequences.
type Result[T any, R any] struct {
	Input T
	Value R
	Err   error
}

// Pool fans a slice of independent inputs out to a bounded set of
// goroutines. It is used for local parse work only; provider calls are
// dispatched sequentially elsewhere.
type Pool[T any, R any] struct {
	workers int
	fn      func(ctx context.Context, input T) (R, error)
}

func NewPool[T any, R any](workers int, fn func(ctx context.Context, input T) (R, error)) *Pool[T, R] {
	if workers < 1 {
		workers = 1
	}
	return &Pool[T, R]{workers: workers, fn: fn}
}

// Run processes all inputs and returns results indexed like the inputs.
func (p *Pool[T, R]) Run(ctx context.Context, inputs []T) []Result[T, R] {
	results := make([]Result[T, R], len(inputs))
	indexes := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < p.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range indexes {
				value, err := p.fn(ctx, inputs[idx])
				results[idx] = Result[T, R]{Input: inputs[idx], Value: value, Err: err}
				if err != nil {
					log.Error().Err(err).Int("index", idx).Msg("Task failed")
				}
			}
		}()
	}

	for i := range inputs {
		select {
		case <-ctx.Done():
			close(indexes)
			wg.Wait()
			return results
		case indexes <- i:
		}
	}
	close(indexes)
	wg.Wait()
	return results
}

// Batch splits items into consecutive slices of at most size elements.
func Batch[T any](items []T, size int) [][]T {
	if size <= 0 {
		size = 1
	}
	var batches [][]T
	for i := 0; i < len(items); i += size {
		end := min(i+size, len(items))
		batches = append(batches, items[i:end])
	}
	return batches
}
