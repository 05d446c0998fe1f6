package parallel

import (
	"context"

	"github.com/aryankumar/chunkflow/internal/chunk"
	"github.com/aryankumar/chunkflow/internal/executor"
	"golang.org/x/exp/constraints"
)

// ForEachIndex calls op(i) for every i in the range [begin, end) stepping by step.
// A negative step walks downward from begin toward end.
func ForEachIndex[I constraints.Integer](ctx context.Context, ex *executor.Executor, begin, end, step I, op func(I), part chunk.Partitioner, opts ...Option) error {
	if err := validate(ex, part, op == nil); err != nil {
		return err
	}

	r, err := chunk.NewRange(begin, end, step)
	if err != nil {
		return err
	}

	o := newOptions("for-each-index", opts)
	return run(ctx, ex, r.Len(), part, o, func(_ int, c chunk.Chunk) bool {
		for p := c.Start; p < c.Stop; p++ {
			op(r.At(p))
		}
		return false
	})
}

// ForEach calls op on every element of items
func ForEach[T any](ctx context.Context, ex *executor.Executor, items []T, op func(T), part chunk.Partitioner, opts ...Option) error {
	if err := validate(ex, part, op == nil); err != nil {
		return err
	}

	o := newOptions("for-each", opts)
	return run(ctx, ex, len(items), part, o, func(_ int, c chunk.Chunk) bool {
		for _, v := range items[c.Start:c.Stop] {
			op(v)
		}
		return false
	})
}

// ForEachPtr calls op with a pointer to every element of items, for in-place updates
func ForEachPtr[T any](ctx context.Context, ex *executor.Executor, items []T, op func(*T), part chunk.Partitioner, opts ...Option) error {
	if err := validate(ex, part, op == nil); err != nil {
		return err
	}

	o := newOptions("for-each-ptr", opts)
	return run(ctx, ex, len(items), part, o, func(_ int, c chunk.Chunk) bool {
		for i := c.Start; i < c.Stop; i++ {
			op(&items[i])
		}
		return false
	})
}
