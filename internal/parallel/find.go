package parallel

import (
	"context"
	"sync/atomic"

	"github.com/aryankumar/chunkflow/internal/chunk"
	"github.com/aryankumar/chunkflow/internal/executor"
)

// NotFound is returned by the search kernels when no element qualifies
const NotFound = -1

// FindIf returns the index of the first element of items, in source order,
// for which pred returns true, or NotFound.
func FindIf[T any](ctx context.Context, ex *executor.Executor, items []T, pred func(T) bool, part chunk.Partitioner, opts ...Option) (int, error) {
	return find(ctx, ex, items, pred, true, part, newOptions("find-if", opts))
}

// FindIfNot returns the index of the first element of items, in source order,
// for which pred returns false, or NotFound.
func FindIfNot[T any](ctx context.Context, ex *executor.Executor, items []T, pred func(T) bool, part chunk.Partitioner, opts ...Option) (int, error) {
	return find(ctx, ex, items, pred, false, part, newOptions("find-if-not", opts))
}

// find gives every task its own result slot and reduces the slots by minimum
// once the batch completes. bound holds the smallest match seen so far and only
// serves to skip chunks that start at or after it.
func find[T any](ctx context.Context, ex *executor.Executor, items []T, pred func(T) bool, want bool, part chunk.Partitioner, o *options) (int, error) {
	if err := validate(ex, part, pred == nil); err != nil {
		return NotFound, err
	}

	// run rejects plans with more tasks than workers
	found := make([]int, ex.WorkerCount())
	for i := range found {
		found[i] = NotFound
	}

	var bound atomic.Int64
	bound.Store(int64(len(items)))

	err := run(ctx, ex, len(items), part, o, func(t int, c chunk.Chunk) bool {
		// later chunks of this task start even further right
		if int64(c.Start) >= bound.Load() {
			return true
		}

		for i := c.Start; i < c.Stop; i++ {
			if pred(items[i]) == want {
				found[t] = i
				lower(&bound, int64(i))
				return true
			}
		}
		return false
	})
	if err != nil {
		return NotFound, err
	}

	best := NotFound
	for _, idx := range found {
		if idx != NotFound && (best == NotFound || idx < best) {
			best = idx
		}
	}
	return best, nil
}

// lower atomically sets v to min(v, x)
func lower(v *atomic.Int64, x int64) {
	for {
		cur := v.Load()
		if x >= cur || v.CompareAndSwap(cur, x) {
			return
		}
	}
}
